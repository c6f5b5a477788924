package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/alihassan1221/service-booking-platform/internal/api/handler"
	"github.com/alihassan1221/service-booking-platform/internal/api/middleware"
	"github.com/alihassan1221/service-booking-platform/internal/core/domain"
	"github.com/alihassan1221/service-booking-platform/internal/core/service"
	"github.com/alihassan1221/service-booking-platform/internal/infrastructure/config"
	mongodb "github.com/alihassan1221/service-booking-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/alihassan1221/service-booking-platform/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Binder = &handler.StrictBinder{}
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("booking"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	bookingRepo := mongodb.NewBookingRepository(db)
	limiter := redisdb.NewLoginLimiter(rdb, 0, 0)

	authService := service.NewAuthService(userRepo, limiter, cfg.JWT.Secret, cfg.JWT.TTL, log)
	bookingService := service.NewBookingService(bookingRepo, userRepo, log)
	userService := service.NewUserService(userRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	userHandler := handler.NewUserHandler(userService)

	authMW := middleware.Auth(cfg.JWT.Secret, userRepo)

	// --- Auth routes (public) ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)

	// --- Booking routes ---
	bookings := e.Group("/api/bookings", authMW)
	bookings.GET("", bookingHandler.List, middleware.RBAC(domain.RoleUser, domain.RoleManager, domain.RoleAdmin))
	bookings.POST("", bookingHandler.Create, middleware.RBAC(domain.RoleUser))
	bookings.GET("/:id", bookingHandler.Get, middleware.RBAC(domain.RoleUser, domain.RoleManager, domain.RoleAdmin))
	bookings.PUT("/:id", bookingHandler.Update, middleware.RBAC(domain.RoleUser, domain.RoleManager, domain.RoleAdmin))
	bookings.DELETE("/:id", bookingHandler.Delete, middleware.RBAC(domain.RoleUser, domain.RoleAdmin))

	// --- User management routes ---
	users := e.Group("/api/users", authMW)
	users.GET("", userHandler.List, middleware.RBAC(domain.RoleAdmin, domain.RoleManager))
	users.POST("/managers", userHandler.CreateManager, middleware.RBAC(domain.RoleAdmin))
	users.PUT("/:id", userHandler.Update, middleware.RBAC(domain.RoleAdmin, domain.RoleManager))
	users.DELETE("/:id", userHandler.Delete, middleware.RBAC(domain.RoleAdmin))

	// --- Health probes, metrics, API docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
