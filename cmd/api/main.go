package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Afaq499/cms/internal/config"
	"github.com/Afaq499/cms/internal/database"
	"github.com/Afaq499/cms/internal/handler"
	"github.com/Afaq499/cms/internal/middleware"
	"github.com/Afaq499/cms/internal/models"
	"github.com/Afaq499/cms/internal/repository"
	"github.com/Afaq499/cms/internal/router"
	"github.com/Afaq499/cms/internal/service"
	"github.com/Afaq499/cms/pkg/ai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Degree{},
		&models.Assignment{},
		&models.Quiz{},
		&models.QuizSubmission{},
		&models.Progress{},
		&models.Gdb{},
		&models.LectureVideo{},
		&models.Fee{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("redis url not configured, dashboard caching disabled")
	}

	var assistant ai.Assistant
	if cfg.OpenAIAPIKey != "" {
		openAIAssistant, err := ai.NewOpenAIAssistant(ai.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
			Logger:  logger,
		})
		if err != nil {
			log.Fatalf("failed to create assistant: %v", err)
		}
		assistant = openAIAssistant
	} else {
		logger.Warn().Msg("openai api key not configured, chatbot disabled")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	degreeRepo := repository.NewDegreeRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	quizSubmissionRepo := repository.NewQuizSubmissionRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	gdbRepo := repository.NewGdbRepository(db)
	videoRepo := repository.NewLectureVideoRepository(db)
	feeRepo := repository.NewFeeRepository(db)

	catalogService := service.NewCatalogService(userRepo, degreeRepo, logger)
	dashboardService := service.NewDashboardService(catalogService, assignmentRepo, quizRepo, videoRepo, gdbRepo, progressRepo, redisClient, cfg.DashboardCacheTTL, logger)
	authService := service.NewAuthService(userRepo, validate, cfg.JWTSecret, cfg.TokenTTL, logger)
	userService := service.NewUserService(userRepo, degreeRepo, progressRepo, dashboardService, validate, logger)
	degreeService := service.NewDegreeService(degreeRepo, validate, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, validate, logger)
	quizService := service.NewQuizService(quizRepo, quizSubmissionRepo, assignmentRepo, progressRepo, validate, logger)
	progressService := service.NewProgressService(progressRepo, dashboardService, validate, logger)
	gdbService := service.NewGdbService(gdbRepo, validate, logger)
	videoService := service.NewLectureVideoService(videoRepo, validate, logger)
	feeService := service.NewFeeService(feeRepo, validate, logger)
	reportService := service.NewReportService(userRepo, progressRepo, assignmentRepo, logger)
	chatbotService := service.NewChatbotService(dashboardService, assistant, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:         handler.NewAuthHandler(authService, logger),
		AdminUserHandler:    handler.NewAdminUserHandler(userService, logger),
		DegreeHandler:       handler.NewDegreeHandler(degreeService, logger),
		AssignmentHandler:   handler.NewAssignmentHandler(assignmentService, logger),
		QuizHandler:         handler.NewQuizHandler(quizService, logger),
		ProgressHandler:     handler.NewProgressHandler(progressService, logger),
		GdbHandler:          handler.NewGdbHandler(gdbService, logger),
		LectureVideoHandler: handler.NewLectureVideoHandler(videoService, logger),
		FeeHandler:          handler.NewFeeHandler(feeService, logger),
		DashboardHandler:    handler.NewDashboardHandler(dashboardService, logger),
		ReportHandler:       handler.NewReportHandler(reportService, logger),
		ChatbotHandler:      handler.NewChatbotHandler(chatbotService, logger),
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
		ChatbotRateLimit:    cfg.ChatbotRateLimit,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
