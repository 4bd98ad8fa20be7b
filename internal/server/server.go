package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/mansoorceksport/nutrimetrics/internal/config"
	"github.com/mansoorceksport/nutrimetrics/internal/engine"
	"github.com/mansoorceksport/nutrimetrics/internal/handler"
	"github.com/mansoorceksport/nutrimetrics/internal/middleware"
	"github.com/mansoorceksport/nutrimetrics/internal/repository"
	"github.com/mansoorceksport/nutrimetrics/internal/service"
	"github.com/mansoorceksport/nutrimetrics/internal/telemetry"
	"github.com/mansoorceksport/nutrimetrics/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// AppDependencies holds the dependencies required to start the application
type AppDependencies struct {
	Config      *config.Config
	MongoDB     *mongo.Database
	RedisClient *redis.Client
	Logger      *logger.Logger

	// Optional. Engine defaults to the wall clock, Metrics to no instruments.
	Engine  *engine.Engine
	Metrics *telemetry.Instruments
}

// NewApp creates and configures the Fiber application with the given dependencies
func NewApp(deps AppDependencies) *fiber.App {
	log := deps.Logger
	if log == nil {
		log = logger.NewNop()
	}
	eng := deps.Engine
	if eng == nil {
		eng = engine.New()
	}
	cfg := deps.Config

	// Repositories
	measurementRepo := repository.NewMongoMeasurementRepository(deps.MongoDB)
	profileRepo := repository.NewMongoProfileRepository(deps.MongoDB)
	entryRepo := repository.NewMongoFoodEntryRepository(deps.MongoDB)
	cacheRepo := repository.NewRedisCacheRepository(deps.RedisClient)
	foodRepo := repository.NewCachedFoodRepository(repository.NewMongoFoodRepository(deps.MongoDB), cacheRepo)

	// Services
	profileService := service.NewProfileService(profileRepo, measurementRepo, cacheRepo, eng, deps.Metrics, log)
	measurementService := service.NewMeasurementService(measurementRepo, profileRepo, profileService, cacheRepo, eng, deps.Metrics, log)
	weightService := service.NewWeightService(measurementRepo, profileRepo, cacheRepo, eng, cfg.Cache.OverviewTTL, deps.Metrics, log)
	nutritionService := service.NewNutritionService(foodRepo, entryRepo, profileRepo, cacheRepo, eng, cfg.Cache.DailyStatsTTL, deps.Metrics, log)

	// Handlers
	profileHandler := handler.NewProfileHandler(profileService)
	measurementHandler := handler.NewMeasurementHandler(measurementService)
	weightHandler := handler.NewWeightHandler(weightService)
	nutritionHandler := handler.NewNutritionHandler(nutritionService, eng.Now)
	calculatorHandler := handler.NewCalculatorHandler(eng)

	app := fiber.New(fiber.Config{
		AppName:      "NutriMetrics API",
		BodyLimit:    cfg.Server.BodyLimitMB * 1024 * 1024,
		ErrorHandler: newErrorHandler(log),
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(requestLogger(log))
	app.Use(telemetry.FiberMiddleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Correlation-ID",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "nutrimetrics",
		})
	})

	v1 := app.Group("/v1")

	// Public calculator
	v1.Post("/calculator/preview", calculatorHandler.Preview)

	// ===========================================
	// USER API - /v1/me/*
	// ===========================================
	me := v1.Group("/me")
	me.Use(middleware.VerifyToken(cfg.JWT.Secret))
	me.Use(middleware.IdempotencyMiddleware(deps.RedisClient, cfg.Cache.IdempotencyTTL, log))

	me.Get("/profile", profileHandler.GetProfile)
	me.Put("/profile", profileHandler.UpdateProfile)
	me.Post("/profile/calorie-goal", profileHandler.RecalculateCalorieGoal)
	me.Get("/profile/metabolism", profileHandler.GetMetabolism)

	me.Get("/measurements", measurementHandler.ListMeasurements)
	me.Post("/measurements", measurementHandler.RecordMeasurement)

	weight := me.Group("/weight")
	weight.Get("/", weightHandler.GetData)
	weight.Get("/overview", weightHandler.GetOverview)
	weight.Get("/progress", weightHandler.GetProgress)
	weight.Get("/trend", weightHandler.GetTrend)
	weight.Get("/chart", weightHandler.GetChart)
	weight.Get("/stats", weightHandler.GetStats)
	weight.Get("/body-metrics", weightHandler.GetBodyMetrics)

	me.Post("/foods", nutritionHandler.CreateFood)
	me.Get("/foods/:id", nutritionHandler.GetFood)
	me.Post("/food-entries", nutritionHandler.LogFood)
	me.Delete("/food-entries/:id", nutritionHandler.RemoveEntry)
	me.Get("/nutrition/daily", nutritionHandler.GetDailyStats)

	return app
}

// requestLogger writes one structured line per request
func requestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		log.Infow("request",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"latency", time.Since(start).String(),
		)
		return nil
	}
}

func newErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		msg := err.Error()
		if code == fiber.StatusInternalServerError {
			log.Errorw("unhandled error", "path", c.Path(), "error", err)
			msg = "internal server error"
		}
		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   msg,
		})
	}
}
