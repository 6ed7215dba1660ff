package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/updates-app/updates-backend/internal/api/handler"
	"github.com/updates-app/updates-backend/internal/api/middleware"
	"github.com/updates-app/updates-backend/internal/core/domain"
	"github.com/updates-app/updates-backend/internal/core/ports"
	"github.com/updates-app/updates-backend/internal/core/service"
)

// Deps carries the constructed services the router wires into handlers.
type Deps struct {
	Mongo        *mongo.Database
	Redis        *redis.Client
	AuthService  ports.AuthService
	ResetService ports.PasswordResetService
	Assignments  ports.AssignmentService
	Tokens       *service.TokenIssuer
	Log          zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("updates"))

	authHandler := handler.NewAuthHandler(deps.AuthService, deps.ResetService)
	assignmentHandler := handler.NewAssignmentHandler(deps.Assignments)
	authMiddleware := middleware.Auth(deps.Tokens)
	superuserOnly := middleware.RBAC(domain.RoleSuperuser)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/register", authHandler.Register)
	auth.POST("/verify-token", authHandler.VerifyToken)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)
	auth.GET("/profile", authHandler.Profile, authMiddleware)
	auth.PUT("/profile", authHandler.UpdateProfile, authMiddleware)
	auth.POST("/change-password", authHandler.ChangePassword, authMiddleware)
	auth.POST("/enroll", authHandler.Enroll, authMiddleware)

	// --- Assignment ledger (superuser only) ---
	admin := e.Group("/admin", authMiddleware, superuserOnly)
	admin.GET("/assignments/:userID", assignmentHandler.List)
	admin.POST("/assignments", assignmentHandler.Assign)
	admin.DELETE("/assignments/:userID/:churchID", assignmentHandler.Unassign)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
