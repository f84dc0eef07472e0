package handler

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Cha17/gowra-sub000/internal/auth"
	authmw "github.com/Cha17/gowra-sub000/internal/middleware"
	"github.com/Cha17/gowra-sub000/internal/service"
	"github.com/Cha17/gowra-sub000/pkg/config"
	"github.com/Cha17/gowra-sub000/pkg/logger"
	"github.com/Cha17/gowra-sub000/pkg/middleware"
)

// RouterDeps bundles what the router needs from the container
type RouterDeps struct {
	Config    *config.Config
	Log       *logger.Logger
	Tokens    *auth.TokenManager
	AuthSvc   service.AuthService
	EventSvc  service.EventService
	Health    *HealthHandler
	Auth      *AuthHandler
	Event     *EventHandler
	Reg       *RegistrationHandler
	Payment   *PaymentHandler
	Admin     *AdminHandler
	RateLimit *middleware.RateLimiter
}

// NewRouter builds the gin engine with the full middleware chain and all
// API routes.
func NewRouter(d RouterDeps) *gin.Engine {
	if d.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(d.Log))
	if d.Config.OTel.Enabled {
		r.Use(otelgin.Middleware(d.Config.OTel.ServiceName))
	}

	r.GET("/health", d.Health.Health)
	r.GET("/ready", d.Health.Ready)

	requireAuth := authmw.RequireAuth(d.Tokens, d.AuthSvc)
	requireOrganizer := authmw.RequireOrganizer()
	requireOwnership := authmw.RequireEventOwnership(d.EventSvc)
	requireAdmin := authmw.RequireAdmin()

	api := r.Group("/api")

	authRoutes := api.Group("/auth")
	if d.RateLimit != nil {
		// Credential endpoints only; authenticated traffic is not limited.
		authRoutes.Use(middleware.RateLimit(d.RateLimit))
	}
	{
		authRoutes.POST("/register", d.Auth.Register)
		authRoutes.POST("/login", d.Auth.Login)
		authRoutes.POST("/refresh", d.Auth.Refresh)
		authRoutes.GET("/me", requireAuth, d.Auth.Me)
		authRoutes.POST("/upgrade-to-organizer", requireAuth, d.Auth.UpgradeToOrganizer)
	}

	events := api.Group("/events")
	{
		events.GET("", d.Event.List)
		events.GET("/:id", d.Event.Get)
		events.POST("", requireAuth, requireOrganizer, d.Event.Create)
		events.PUT("/:id", requireAuth, requireOrganizer, requireOwnership, d.Event.Update)
		events.DELETE("/:id", requireAuth, requireOrganizer, requireOwnership, d.Event.Delete)
		events.POST("/:id/publish", requireAuth, requireOrganizer, requireOwnership, d.Event.Publish)
		events.GET("/:id/analytics", requireAuth, requireOrganizer, requireOwnership, d.Event.Analytics)
	}

	registrations := api.Group("/registrations", requireAuth)
	{
		registrations.POST("", d.Reg.Create)
		registrations.GET("", d.Reg.ListMine)
		registrations.DELETE("/:id", d.Reg.Cancel)
	}

	payments := api.Group("/payments", requireAuth)
	{
		payments.POST("/process", d.Payment.Process)
		payments.GET("/history", d.Payment.History)
		payments.POST("/:id/refund", requireAdmin, d.Payment.Refund)
	}

	admin := api.Group("/admin", requireAuth, requireAdmin)
	{
		admin.GET("/stats", d.Admin.Stats)
		admin.GET("/users", d.Admin.ListUsers)
		admin.GET("/events", d.Admin.ListEvents)
		admin.GET("/registrations", d.Admin.ListRegistrations)
		admin.POST("/events", d.Admin.CreateEvent)
		admin.PUT("/events/:id", d.Admin.UpdateEvent)
		admin.DELETE("/events/:id", d.Admin.DeleteEvent)
		admin.PUT("/registrations/:id/status", d.Admin.OverrideRegistrationStatus)
	}

	return r
}
