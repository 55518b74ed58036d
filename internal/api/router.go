package api

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/dosmed/drug-ordering-system/internal/api/handler"
	"github.com/dosmed/drug-ordering-system/internal/api/middleware"
	"github.com/dosmed/drug-ordering-system/internal/core/domain"
	"github.com/dosmed/drug-ordering-system/internal/core/ports"
	"github.com/dosmed/drug-ordering-system/internal/core/service"
	"github.com/dosmed/drug-ordering-system/internal/core/session"
	"github.com/dosmed/drug-ordering-system/internal/infrastructure/db/redis"
	"github.com/dosmed/drug-ordering-system/internal/infrastructure/db/sqlite"
)

// RouterConfig carries everything the router needs to assemble the
// application. Redis may be nil: the session registry then falls back to
// process memory, which is fine for a single instance.
type RouterConfig struct {
	DB         *sqlx.DB
	Redis      *goredis.Client
	JWTSecret  string
	SessionTTL time.Duration // zero means the registry default
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("dos"))

	// --- Dependencies ---
	users := sqlite.NewUserRepository(cfg.DB, cfg.Log)
	drugs := sqlite.NewDrugRepository(cfg.DB, cfg.Log)
	orders := sqlite.NewOrderRepository(cfg.DB, cfg.Log)

	var sessions ports.SessionRegistry
	if cfg.Redis != nil {
		sessions = redis.NewSessionRegistry(cfg.Redis, cfg.SessionTTL, cfg.Log)
	} else {
		sessions = session.NewRegistry(cfg.Log)
	}

	svc := service.NewOrderingService(users, drugs, orders, sessions, cfg.Log)

	authHandler := handler.NewAuthHandler(svc, cfg.JWTSecret)
	userHandler := handler.NewUserHandler(svc)
	drugHandler := handler.NewDrugHandler(svc)
	orderHandler := handler.NewOrderHandler(svc)

	auth := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	pharmacy := middleware.RBAC(domain.RoleAdmin, domain.RolePharmacyStaff)
	hospital := middleware.RBAC(domain.RoleHospitalStaff)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, auth)

	// --- User administration (admin only) ---
	usersGroup := e.Group("/users", auth)
	usersGroup.POST("", userHandler.Provision, adminOnly)
	usersGroup.POST("/import", userHandler.Import, adminOnly)
	usersGroup.PUT("/:id", userHandler.Update, adminOnly)
	usersGroup.POST("/:id/password", userHandler.ChangePassword)

	// --- Catalog ---
	drugsGroup := e.Group("/drugs", auth)
	drugsGroup.GET("/available", drugHandler.Available)
	drugsGroup.POST("", drugHandler.Add, pharmacy)
	drugsGroup.PUT("/:id", drugHandler.Update, pharmacy)
	drugsGroup.DELETE("/:id", drugHandler.Remove, pharmacy)

	// --- Orders ---
	ordersGroup := e.Group("/orders", auth)
	ordersGroup.POST("", orderHandler.Place, hospital)
	ordersGroup.GET("", orderHandler.List, pharmacy)
	ordersGroup.POST("/:id/complete", orderHandler.Complete, pharmacy)
	ordersGroup.DELETE("/:id", orderHandler.Cancel, pharmacy)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(cfg.DB, cfg.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
