package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/edutrack/activity-api/internal/config"
	"github.com/edutrack/activity-api/internal/handler"
	"github.com/edutrack/activity-api/internal/middleware"
	"github.com/edutrack/activity-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ActivityHandler     *handler.ActivityHandler
	StudentHandler      *handler.StudentHandler
	ReviewHandler       *handler.ReviewHandler
	NotificationHandler *handler.NotificationHandler
	StatisticsHandler   *handler.StatisticsHandler
	JWTMiddleware       fiber.Handler
	SubmitRateLimit     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	// Common v1 group for health & headers
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.ActivityHandler != nil {
		activities := app.Group("/api/v1/activities", jwtMiddleware)
		if deps.SubmitRateLimit != nil {
			// Only submissions are rate limited; reads stay unthrottled.
			activities.Use(func(c *fiber.Ctx) error {
				if c.Method() == fiber.MethodPost {
					return deps.SubmitRateLimit(c)
				}
				return c.Next()
			})
		}
		deps.ActivityHandler.Register(activities)
	}

	if deps.StudentHandler != nil {
		students := app.Group("/api/v1/students", jwtMiddleware)
		deps.StudentHandler.Register(students)
	}

	if deps.ReviewHandler != nil {
		reviews := app.Group("/api/v1/reviews", jwtMiddleware, middleware.RequireRole("faculty", "admin"))
		deps.ReviewHandler.Register(reviews)
	}

	if deps.NotificationHandler != nil {
		notifications := app.Group("/api/v1/notifications", jwtMiddleware)
		deps.NotificationHandler.Register(notifications)
	}

	if deps.StatisticsHandler != nil {
		statistics := app.Group("/api/v1/statistics", jwtMiddleware)
		deps.StatisticsHandler.Register(statistics)
	}
}
