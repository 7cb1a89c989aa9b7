package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/ratetask/rating-platform/docs"
	"github.com/ratetask/rating-platform/internal/api/handler"
	"github.com/ratetask/rating-platform/internal/api/middleware"
	"github.com/ratetask/rating-platform/internal/core/domain"
	"github.com/ratetask/rating-platform/internal/core/ports"
	"github.com/ratetask/rating-platform/internal/core/service"
	mongodb "github.com/ratetask/rating-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/ratetask/rating-platform/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, generator ports.ResponseGenerator, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("ratetask"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	taskRepo := mongodb.NewTaskRepository(db)
	convRepo := mongodb.NewConversationRepository(db)
	ratingRepo := mongodb.NewRatingRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	genCache := redisdb.NewGenerationCache(rdb)

	taskService := service.NewTaskService(taskRepo, convRepo, userRepo, generator, genCache, log)
	ratingService := service.NewRatingService(ratingRepo, convRepo, log)
	adminService := service.NewAdminService(taskRepo, convRepo, ratingRepo, userRepo, log)
	authService := service.NewAuthService(userRepo, jwtSecret, 7*24*time.Hour)
	userService := service.NewUserService(userRepo, taskRepo, convRepo, ratingRepo, log)

	taskHandler := handler.NewTaskHandler(taskService, adminService)
	chatHandler := handler.NewChatHandler(taskService)
	ratingHandler := handler.NewRatingHandler(ratingService)
	adminHandler := handler.NewAdminHandler(adminService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	authRequired := middleware.Auth(jwtSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- API routes ---
	apiGroup := e.Group("/api")

	apiGroup.POST("/auth/register", authHandler.Register)
	apiGroup.POST("/auth/login", authHandler.Login)

	apiGroup.POST("/tasks", taskHandler.Create)
	apiGroup.GET("/tasks/:id", taskHandler.Get)
	apiGroup.POST("/tasks/:id/complete", taskHandler.Complete)
	apiGroup.POST("/chat", chatHandler.Chat)
	apiGroup.POST("/ratings", ratingHandler.Upsert)
	apiGroup.PATCH("/ratings/:id", ratingHandler.Patch)

	apiGroup.GET("/users/:id/stats", userHandler.Stats)
	apiGroup.GET("/users/:id/history", userHandler.History)

	// --- Admin correction routes ---
	apiGroup.PATCH("/conversations/:id", adminHandler.PatchConversation, authRequired, adminOnly)

	adminGroup := apiGroup.Group("/admin", authRequired, adminOnly)
	adminGroup.GET("/tasks", adminHandler.ListTasks)
	adminGroup.GET("/tasks/:id", adminHandler.TaskDetail)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
