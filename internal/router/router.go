package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Afaq499/cms/internal/config"
	"github.com/Afaq499/cms/internal/handler"
	"github.com/Afaq499/cms/internal/middleware"
	"github.com/Afaq499/cms/internal/models"
	"github.com/Afaq499/cms/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler         *handler.AuthHandler
	AdminUserHandler    *handler.AdminUserHandler
	DegreeHandler       *handler.DegreeHandler
	AssignmentHandler   *handler.AssignmentHandler
	QuizHandler         *handler.QuizHandler
	ProgressHandler     *handler.ProgressHandler
	GdbHandler          *handler.GdbHandler
	LectureVideoHandler *handler.LectureVideoHandler
	FeeHandler          *handler.FeeHandler
	DashboardHandler    *handler.DashboardHandler
	ReportHandler       *handler.ReportHandler
	ChatbotHandler      *handler.ChatbotHandler
	JWTMiddleware       fiber.Handler
	ChatbotRateLimit    int
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil (handler tests).
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	staff := middleware.RequireRole(models.RoleTeacher, models.RoleAdmin)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth"))
	}

	if deps.AdminUserHandler != nil {
		admin := api.Group("/admin", jwtMiddleware, adminOnly)
		deps.AdminUserHandler.Register(admin)
	}

	if deps.DegreeHandler != nil {
		degrees := api.Group("/degrees", jwtMiddleware)
		deps.DegreeHandler.Register(degrees)
	}

	if deps.AssignmentHandler != nil {
		assignments := api.Group("/assignments", jwtMiddleware)
		deps.AssignmentHandler.Register(assignments)
	}

	if deps.QuizHandler != nil {
		quizzes := api.Group("/quizzes", jwtMiddleware)
		deps.QuizHandler.Register(quizzes)
	}

	if deps.ProgressHandler != nil {
		progress := api.Group("/progress", jwtMiddleware)
		deps.ProgressHandler.Register(progress)
	}

	if deps.GdbHandler != nil {
		gdbs := api.Group("/gdbs", jwtMiddleware)
		deps.GdbHandler.Register(gdbs)
	}

	if deps.LectureVideoHandler != nil {
		videos := api.Group("/videos", jwtMiddleware)
		deps.LectureVideoHandler.Register(videos)
	}

	if deps.FeeHandler != nil {
		fees := api.Group("/fees", jwtMiddleware, staff)
		deps.FeeHandler.Register(fees)
	}

	if deps.DashboardHandler != nil {
		dashboard := api.Group("/dashboard", jwtMiddleware)
		deps.DashboardHandler.Register(dashboard)
	}

	if deps.ReportHandler != nil {
		reports := api.Group("/reports", jwtMiddleware, staff)
		deps.ReportHandler.Register(reports)
	}

	if deps.ChatbotHandler != nil {
		chatbot := api.Group("/chatbot", jwtMiddleware,
			middleware.RateLimit("chatbot", deps.ChatbotRateLimit, time.Minute))
		deps.ChatbotHandler.Register(chatbot)
	}
}
