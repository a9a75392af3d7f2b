package handler

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edutrack/activity-api/internal/dto"
	"github.com/edutrack/activity-api/internal/service"
	"github.com/edutrack/activity-api/internal/utils"
)

// StatisticsHandler exposes read-only aggregation endpoints for dashboards.
type StatisticsHandler struct {
	service service.StatisticsService
	logger  zerolog.Logger
}

// NewStatisticsHandler constructs a handler instance.
func NewStatisticsHandler(service service.StatisticsService, logger zerolog.Logger) *StatisticsHandler {
	return &StatisticsHandler{
		service: service,
		logger:  logger.With().Str("component", "statistics_handler").Logger(),
	}
}

// Register binds the statistics routes.
func (h *StatisticsHandler) Register(router fiber.Router) {
	router.Get("/me", h.mySummary)
	router.Get("/summary", h.summary)
	router.Get("/trend", h.trend)
}

// mySummary scopes the summary to the authenticated student.
func (h *StatisticsHandler) mySummary(c *fiber.Ctx) error {
	studentID := userIDFromContext(c)
	if studentID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	filter := dto.StatisticsFilter{StudentID: &studentID}
	if err := applyDateRange(c, &filter); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	summary, err := h.service.Summary(requestContext(c), filter)
	if err != nil {
		return utils.SendError(c, statusForError(err), err.Error())
	}

	return utils.SendSuccess(c, "statistics summary", summary)
}

func (h *StatisticsHandler) summary(c *fiber.Ctx) error {
	filter, err := filterFromQuery(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	summary, err := h.service.Summary(requestContext(c), filter)
	if err != nil {
		return utils.SendError(c, statusForError(err), err.Error())
	}

	return utils.SendSuccess(c, "statistics summary", summary)
}

func (h *StatisticsHandler) trend(c *fiber.Ctx) error {
	filter, err := filterFromQuery(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	trend, err := h.service.MonthlyTrend(requestContext(c), filter)
	if err != nil {
		return utils.SendError(c, statusForError(err), err.Error())
	}

	return utils.SendSuccess(c, "monthly trend", trend)
}

func filterFromQuery(c *fiber.Ctx) (dto.StatisticsFilter, error) {
	var filter dto.StatisticsFilter

	if raw, err := parseQueryInt(c, "student_id"); err != nil {
		return filter, fiber.NewError(fiber.StatusBadRequest, "invalid student_id")
	} else if raw > 0 {
		studentID := uint(raw)
		filter.StudentID = &studentID
	}

	if department := strings.TrimSpace(c.Query("department")); department != "" {
		filter.Department = &department
	}

	if err := applyDateRange(c, &filter); err != nil {
		return filter, err
	}

	return filter, nil
}

func applyDateRange(c *fiber.Ctx, filter *dto.StatisticsFilter) error {
	if raw := strings.TrimSpace(c.Query("from")); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid from date")
		}
		filter.From = &parsed
	}
	if raw := strings.TrimSpace(c.Query("to")); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid to date")
		}
		filter.To = &parsed
	}
	return nil
}
