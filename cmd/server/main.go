package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fadilmartias/interview-coach/internal/cache"
	"github.com/fadilmartias/interview-coach/internal/config"
	"github.com/fadilmartias/interview-coach/internal/domain/fiber/handler"
	"github.com/fadilmartias/interview-coach/internal/job"
	applog "github.com/fadilmartias/interview-coach/internal/logger"
	"github.com/fadilmartias/interview-coach/internal/metrics"
	"github.com/fadilmartias/interview-coach/internal/middleware"
	"github.com/fadilmartias/interview-coach/internal/prompts"
	"github.com/fadilmartias/interview-coach/internal/repository"
	"github.com/fadilmartias/interview-coach/internal/service"
	"github.com/fadilmartias/interview-coach/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	appLog, err := applog.New(appConfig.Env)
	if err != nil {
		log.Fatalf("Could not create logger: %v", err)
	}
	defer appLog.Sync()

	llmConfig, err := config.LoadLLMConfig()
	if err != nil {
		appLog.Fatal("invalid LLM configuration", "error", err)
	}
	coachConfig, err := config.LoadCoachConfig()
	if err != nil {
		appLog.Fatal("invalid coach configuration", "error", err)
	}

	app := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		BodyLimit: 6 * 1024 * 1024,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"success": false, "message": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, " + middleware.OwnerHeader,
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(metrics.Middleware())
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	app.Get("/metrics", metrics.Handler())

	db := ConnectDB(appLog)

	pointerRepo := repository.NewPointerRepository(db)
	sessionRepo := repository.NewFeedbackSessionRepository(db)

	gateway, err := service.NewGateway(ctx, llmConfig, appLog)
	if err != nil {
		appLog.Fatal("could not create LLM gateway", "error", err)
	}
	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		appLog.Fatal("could not load prompts", "error", err)
	}
	matcher := service.NewSimilarityService(coachConfig.MatchUpdateThreshold)
	analyzer := service.NewAnalyzerService(gateway, promptManager, matcher, appLog)

	var questionCache usecase.QuestionCache
	if redisConfig := config.LoadRedisConfig(); redisConfig.Enabled() {
		rdb, err := cache.NewRedisClient(ctx, redisConfig)
		if err != nil {
			appLog.Warn("redis unavailable, practice questions will not be cached", "addr", redisConfig.Addr, "error", err)
		} else {
			defer rdb.Close()
			questionCache = cache.NewQuestionCache(rdb, redisConfig.QuestionCacheTTL, appLog)
		}
	}

	feedbackUC := usecase.NewFeedbackUsecase(pointerRepo, sessionRepo, analyzer, questionCache, appLog)
	reconciliationUC := usecase.NewReconciliationUsecase(pointerRepo, matcher, analyzer, coachConfig, appLog)
	progressUC := usecase.NewProgressUsecase(pointerRepo, coachConfig)

	api := app.Group("/", middleware.RequireOwner())
	handler.NewFeedbackHandler(feedbackUC).RegisterRoutes(api)
	handler.NewPointerHandler(reconciliationUC).RegisterRoutes(api)
	handler.NewProgressHandler(progressUC).RegisterRoutes(api)

	plateauJob := job.NewPlateauScanJob(pointerRepo, coachConfig, appLog)
	if err := plateauJob.Start(); err != nil {
		appLog.Fatal("could not start plateau scan", "error", err)
	}
	defer plateauJob.Stop()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		appLog.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			appLog.Error("shutdown failed", "error", err)
		}
	}()

	appLog.Info("server running", "port", appConfig.Port, "provider", gateway.ProviderName())
	if err := app.Listen(appConfig.Port); err != nil {
		appLog.Fatal("server stopped", "error", err)
	}
}

func ConnectDB(appLog *applog.Logger) *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	db, err := gorm.Open(postgres.Open(dbConfig.DSN()), &gorm.Config{})
	if err != nil {
		appLog.Fatal("could not connect to database", "error", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		appLog.Fatal("could not get database instance", "error", err)
	}
	if !appConfig.IsProduction() {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	if err := repository.AutoMigrate(db); err != nil {
		appLog.Fatal("migration failed", "error", err)
	}
	return db
}
