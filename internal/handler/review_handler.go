package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edutrack/activity-api/internal/dto"
	"github.com/edutrack/activity-api/internal/service"
	"github.com/edutrack/activity-api/internal/utils"
)

// ReviewHandler exposes the faculty review workflow endpoints.
type ReviewHandler struct {
	reviews    service.ReviewService
	activities service.ActivityService
	logger     zerolog.Logger
}

// NewReviewHandler constructs a handler instance.
func NewReviewHandler(reviews service.ReviewService, activities service.ActivityService, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviews:    reviews,
		activities: activities,
		logger:     logger.With().Str("component", "review_handler").Logger(),
	}
}

// Register binds the review routes.
func (h *ReviewHandler) Register(router fiber.Router) {
	router.Get("/queue", h.queue)
	router.Post("/:id/begin", h.begin)
	router.Post("/:id", h.review)
}

func (h *ReviewHandler) queue(c *fiber.Ctx) error {
	reviewerID := userIDFromContext(c)
	if reviewerID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}
	offset, err := parseQueryInt(c, "offset")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid offset")
	}

	activities, err := h.activities.ListReviewQueue(requestContext(c), reviewerID, limit, offset)
	if err != nil {
		return utils.SendError(c, statusForError(err), err.Error())
	}

	return utils.SendSuccess(c, "review queue", activities)
}

func (h *ReviewHandler) begin(c *fiber.Ctx) error {
	reviewerID := userIDFromContext(c)
	if reviewerID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	id, err := parseParamUint(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid activity id")
	}

	activity, err := h.reviews.Begin(requestContext(c), id, reviewerID)
	if err != nil {
		return utils.SendError(c, statusForError(err), err.Error())
	}

	return utils.SendSuccess(c, "review started", activity)
}

func (h *ReviewHandler) review(c *fiber.Ctx) error {
	reviewerID := userIDFromContext(c)
	if reviewerID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	id, err := parseParamUint(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid activity id")
	}

	var payload dto.ReviewRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	outcome, err := h.reviews.Review(requestContext(c), id, reviewerID, payload)
	if err != nil {
		return utils.SendError(c, statusForError(err), err.Error())
	}

	return utils.SendSuccess(c, "review recorded", outcome)
}
