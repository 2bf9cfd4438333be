package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/platformkit/identity-api/docs"
	"github.com/platformkit/identity-api/internal/api/handler"
	"github.com/platformkit/identity-api/internal/api/middleware"
	"github.com/platformkit/identity-api/internal/core/domain"
	"github.com/platformkit/identity-api/internal/core/ports"
	healthhandlers "github.com/platformkit/identity-api/internal/infrastructure/http/handlers"
)

// Dependencies bundles everything the router wires into routes.
type Dependencies struct {
	AuthService ports.AuthService
	UserService ports.UserService
	Resolver    ports.IdentityResolver
	Presence    ports.PresenceTracker
	Mongo       *mongo.Database
	Redis       *redis.Client
	Logger      zerolog.Logger
}

// NewRouter builds the Echo instance with all routes registered. Every
// non-public route is wired as authenticate-then-require: token resolution
// always runs strictly before role evaluation.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("identity"))

	authHandler := handler.NewAuthHandler(deps.AuthService)
	userHandler := handler.NewUserHandler(deps.UserService, deps.Presence)
	authn := middleware.Authenticate(deps.Resolver)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh, authn, middleware.Require(middleware.AnyAuthenticated()))

	// --- Self-service routes: target bound to the caller's own id ---
	me := e.Group("/me", authn, middleware.Require(middleware.AnyAuthenticated()))
	me.GET("", userHandler.Me)
	me.PUT("", userHandler.UpdateMe)

	// --- Directory administration ---
	users := e.Group("/users", authn)
	users.GET("", userHandler.List, middleware.Require(middleware.RolesIn(domain.RoleAdmin, domain.RoleManager)))
	users.GET("/:id", userHandler.Get, middleware.Require(middleware.RolesIn(domain.RoleAdmin, domain.RoleManager)))
	users.PUT("/:id", userHandler.Update, middleware.Require(middleware.RolesIn(domain.RoleAdmin)))
	users.DELETE("/:id", userHandler.Deactivate, middleware.Require(middleware.RolesIn(domain.RoleAdmin)))

	// --- Health probes (no auth required) ---
	healthHandler := healthhandlers.NewHealthHandler()
	healthDepsHandler := healthhandlers.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
