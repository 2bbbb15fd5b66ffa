package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/civicflow/civic-portal/docs"
	"github.com/civicflow/civic-portal/internal/api/handler"
	"github.com/civicflow/civic-portal/internal/api/middleware"
	"github.com/civicflow/civic-portal/internal/core/domain"
	"github.com/civicflow/civic-portal/internal/core/guard"
	"github.com/civicflow/civic-portal/internal/core/ports"
)

// Dependencies carries everything the router needs to wire the portal.
type Dependencies struct {
	Auth   ports.AuthAPI
	Issues ports.IssueAPI
	Users  ports.UserAPI
	Admin  ports.AdminAPI
	Ngo    ports.NgoAPI
	Audit  ports.AuditRecorder

	CookieName   string
	SecureCookie bool

	Redis *redis.Client
	Mongo *mongo.Database

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("civicportal"))

	// Every request gets a session hydrated from its cookie before any
	// guard runs. Route decisions never race identity resolution.
	e.Use(middleware.Session(middleware.SessionConfig{
		API:          deps.Auth,
		Audit:        deps.Audit,
		CookieName:   deps.CookieName,
		SecureCookie: deps.SecureCookie,
		Logger:       deps.Logger,
	}))

	// --- Handlers ---
	invalidator, _ := deps.Auth.(ports.ProfileInvalidator)
	authHandler := handler.NewAuthHandler(invalidator)
	portalHandler := handler.NewPortalHandler(deps.Issues, deps.Users)
	adminHandler := handler.NewAdminHandler(deps.Admin, deps.Issues)
	ngoHandler := handler.NewNgoHandler(deps.Ngo)
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Redis, deps.Mongo)

	// --- Public routes ---
	e.GET("/", portalHandler.Home)
	e.GET("/issues", portalHandler.Issues)
	e.GET("/issues/:id", portalHandler.Issue)
	e.GET(guard.UnauthorizedPath, portalHandler.Unauthorized)

	e.POST("/login", authHandler.Login)
	e.POST("/register", authHandler.Register)
	// NGO sign-in is the same flow behind its own path; the backend decides
	// the role.
	e.POST("/ngo/login", authHandler.Login)
	e.POST("/ngo/register", authHandler.RegisterNgo)
	e.POST("/logout", authHandler.Logout)

	// --- Authenticated routes ---
	authed := middleware.Guard(guard.Authenticated())
	e.GET("/dashboard", portalHandler.Dashboard, authed)
	e.POST("/issues", portalHandler.CreateIssue, authed)
	e.POST("/issues/:id/vote", portalHandler.Vote, authed)
	e.GET("/profile", portalHandler.Profile, authed)
	e.PUT("/profile", portalHandler.UpdateProfile, authed)
	e.GET("/settings", portalHandler.Settings, authed)
	e.PUT("/settings", portalHandler.UpdateSettings, authed)

	// --- Admin routes ---
	admin := e.Group("/admin", middleware.Guard(guard.AdminOnly()))
	admin.GET("", adminHandler.Dashboard)
	admin.GET("/users", adminHandler.Users)
	admin.PUT("/users/:id/role", adminHandler.ChangeRole)
	admin.GET("/issues", adminHandler.Issues)
	admin.PATCH("/issues/:id/assign", adminHandler.AssignIssue)

	// --- NGO routes ---
	ngo := e.Group("/ngo", middleware.Guard(guard.RoleOnly(domain.RoleNgo)))
	ngo.GET("/dashboard", ngoHandler.Dashboard)
	ngo.PATCH("/issues/:id/status", ngoHandler.UpdateStatus)

	// --- Operational endpoints ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
