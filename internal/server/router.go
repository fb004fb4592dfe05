package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/college-events-api/internal/handler"
	"github.com/noah-isme/college-events-api/internal/middleware"
	"github.com/noah-isme/college-events-api/internal/models"
	"github.com/noah-isme/college-events-api/internal/service"
	"github.com/noah-isme/college-events-api/pkg/config"
	"github.com/noah-isme/college-events-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/college-events-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/college-events-api/pkg/middleware/requestid"
)

// Handlers groups every HTTP handler mounted by the router.
type Handlers struct {
	Events        *handler.EventHandler
	Registrations *handler.RegistrationHandler
	Calendar      *handler.CalendarHandler
	Session       *handler.SessionHandler
	Profile       *handler.ProfileHandler
	Dashboard     *handler.DashboardHandler
	Metrics       *handler.MetricsHandler
}

// Deps carries the collaborators the router needs besides handlers.
type Deps struct {
	Config   *config.Config
	Logger   *zap.Logger
	Sessions *service.SessionService
	Metrics  *service.MetricsService
}

// NewRouter builds the gin engine with the full route table.
func NewRouter(deps Deps, h Handlers) *gin.Engine {
	cfg := deps.Config
	logr := deps.Logger
	if logr == nil {
		logr = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if cfg.Metrics.Enabled && deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	if cfg.Metrics.Enabled {
		r.GET("/metrics", h.Metrics.Prometheus)
	}
	if cfg.Docs.Enabled && cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(apiPrefix(cfg.APIPrefix))
	api.Use(middleware.WithResponseMeta())

	api.GET("/session", h.Session.Current)
	api.POST("/session/switch", middleware.Audit(logr, "session.switch"), h.Session.Switch)

	secured := api.Group("")
	secured.Use(middleware.Session(deps.Sessions))

	admin := middleware.RequireRoles(models.RoleAdmin)
	coordinator := middleware.RequireRoles(models.RoleCoordinator)
	staff := middleware.RequireRoles(models.RoleAdmin, models.RoleCoordinator)
	student := middleware.RequireRoles(models.RoleStudent)

	events := secured.Group("/events")
	events.GET("", h.Events.List)
	events.GET("/:id", h.Events.Get)
	events.POST("", coordinator, middleware.Audit(logr, "event.publish"), h.Events.Publish)
	events.PATCH("/:id/status", admin, middleware.Audit(logr, "event.decide"), h.Events.SetStatus)
	events.DELETE("/:id", admin, middleware.Audit(logr, "event.delete"), h.Events.Delete)
	events.GET("/:id/roster", staff, h.Events.Roster)
	events.POST("/:id/registration", student, middleware.Audit(logr, "registration.create"), h.Registrations.Register)
	events.DELETE("/:id/registration", student, middleware.Audit(logr, "registration.withdraw"), h.Registrations.Withdraw)

	secured.GET("/registrations/me", h.Registrations.Mine)

	secured.GET("/session/draft", coordinator, h.Events.Draft)
	secured.PUT("/session/draft", coordinator, h.Events.SaveDraft)

	calendar := secured.Group("/calendar")
	calendar.GET("", h.Calendar.Month)
	calendar.POST("/navigate", h.Calendar.Navigate)
	calendar.POST("/select", h.Calendar.Select)
	calendar.DELETE("/select", h.Calendar.Clear)
	calendar.GET("/feed.ics", h.Calendar.Feed)

	secured.GET("/dashboard", staff, h.Dashboard.Summary)

	secured.GET("/profile", h.Profile.Get)
	secured.PUT("/profile", middleware.Audit(logr, "profile.update"), h.Profile.Update)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "route not found"}})
	})

	return r
}

func apiPrefix(raw string) string {
	prefix := "/" + strings.Trim(strings.TrimSpace(raw), "/")
	if prefix == "/" {
		return ""
	}
	return prefix
}
