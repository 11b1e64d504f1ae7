package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskhub/task-manager-api/internal/api/handler"
	"github.com/taskhub/task-manager-api/internal/api/middleware"
	"github.com/taskhub/task-manager-api/internal/core/service"
	"github.com/taskhub/task-manager-api/internal/core/token"
	"github.com/taskhub/task-manager-api/internal/infrastructure/config"
	mongodb "github.com/taskhub/task-manager-api/internal/infrastructure/db/mongo"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}))
	e.Use(echoprometheus.NewMiddleware("taskapi"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, taskRepo, issuer, log)
	taskService := service.NewTaskService(taskRepo, userRepo, log)
	authHandler := handler.NewAuthHandler(authService, cfg.Production(), cfg.CookieMaxAge)
	taskHandler := handler.NewTaskHandler(taskService)
	authMiddleware := middleware.Auth(issuer, userRepo)

	// --- Auth routes ---
	// The upstream API mounts the same user router under both prefixes;
	// clients exist for each, so both are kept.
	for _, g := range []*echo.Group{e.Group("/api/v1/users"), e.Group("/api/v1/auth")} {
		g.POST("/register", authHandler.Register)
		g.POST("/login", authHandler.Login)
		g.POST("/logout", authHandler.Logout)
		g.GET("/userDetails", authHandler.UserDetails, authMiddleware)
	}

	// --- Task routes (all protected) ---
	tasks := e.Group("/api/v1", authMiddleware)
	tasks.POST("/add-task", taskHandler.Add)
	tasks.GET("/get-task/:id", taskHandler.Get)
	tasks.PUT("/edit-task/:id", taskHandler.Edit)
	tasks.DELETE("/delete-task/:id", taskHandler.Delete)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/", handler.Root)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	e.RouteNotFound("/*", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "Route not found")
	})

	return e
}
