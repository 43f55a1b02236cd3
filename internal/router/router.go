package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-timetable-api/internal/handler"
	"github.com/noah-isme/sma-timetable-api/internal/middleware"
	"github.com/noah-isme/sma-timetable-api/internal/models"
	"github.com/noah-isme/sma-timetable-api/pkg/config"
	"github.com/noah-isme/sma-timetable-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/sma-timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sma-timetable-api/pkg/middleware/requestid"
)

// Handlers groups every HTTP handler mounted by the router.
type Handlers struct {
	Calendar     *handler.CalendarHandler
	Timetable    *handler.TimetableHandler
	Availability *handler.AvailabilityHandler
	Substitute   *handler.SubstituteHandler
	Swap         *handler.SwapHandler
	Room         *handler.RoomHandler
	Metrics      *handler.MetricsHandler
}

// New builds the gin engine with middleware and routes.
func New(cfg *config.Config, logr *zap.Logger, tokens middleware.TokenValidator, observer middleware.RequestObserver, h Handlers) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(observer))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix, middleware.JWT(tokens))
	admin := middleware.RequireRoles(models.RoleAdmin)
	staff := middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher)

	calendars := api.Group("/calendars")
	calendars.GET("", h.Calendar.List)
	calendars.GET("/active", h.Calendar.Active)
	calendars.GET("/:id", h.Calendar.Get)
	calendars.POST("", admin, h.Calendar.Create)
	calendars.POST("/:id/activate", admin, h.Calendar.Activate)
	calendars.DELETE("/:id", admin, h.Calendar.Delete)
	calendars.PUT("/:id/periods", admin, h.Calendar.UpsertPeriod)
	calendars.DELETE("/:id/periods/:number", admin, h.Calendar.RemovePeriod)
	calendars.PUT("/:id/shifts", admin, h.Calendar.UpsertShift)
	calendars.DELETE("/:id/shifts/:shiftId", admin, h.Calendar.RemoveShift)

	timetable := api.Group("/timetable")
	timetable.GET("/entries", h.Timetable.List)
	timetable.GET("/entries/:id", h.Timetable.Get)
	timetable.POST("/entries", admin, h.Timetable.Create)
	timetable.PUT("/entries/:id", admin, h.Timetable.Update)
	timetable.DELETE("/entries/:id", admin, h.Timetable.Deactivate)
	timetable.GET("/classes/:classId/sections/:sectionId/grid", h.Timetable.ClassGrid)
	timetable.GET("/teachers/:id/entries", h.Timetable.ByTeacher)
	timetable.GET("/rooms/:id/entries", h.Timetable.ByRoom)
	timetable.GET("/days/:day/entries", h.Timetable.ByDay)
	timetable.GET("/conflicts", h.Timetable.Conflicts)
	timetable.GET("/summary", h.Timetable.Summary)

	availability := api.Group("/availability")
	availability.GET("/teachers", h.Availability.Teachers)
	availability.GET("/rooms", h.Availability.Rooms)
	availability.GET("/leave", h.Availability.Leave)
	availability.GET("/substitutes", h.Availability.Substitutes)

	substitutes := api.Group("/substitutes")
	substitutes.GET("", h.Substitute.List)
	substitutes.GET("/:id", h.Substitute.Get)
	substitutes.POST("", admin, h.Substitute.Create)
	substitutes.POST("/:id/confirm", admin, h.Substitute.Confirm)
	substitutes.POST("/:id/complete", admin, h.Substitute.Complete)
	substitutes.POST("/:id/cancel", admin, h.Substitute.Cancel)

	swaps := api.Group("/swaps")
	swaps.GET("", h.Swap.List)
	swaps.GET("/:id", h.Swap.Get)
	swaps.POST("", staff, h.Swap.Request)
	swaps.POST("/:id/approve", admin, h.Swap.Approve)
	swaps.POST("/:id/reject", admin, h.Swap.Reject)
	swaps.POST("/:id/cancel", staff, h.Swap.Cancel)

	rooms := api.Group("/rooms")
	rooms.GET("", h.Room.List)
	rooms.GET("/:id", h.Room.Get)
	rooms.POST("", admin, h.Room.Create)
	rooms.PUT("/:id", admin, h.Room.Update)
	rooms.DELETE("/:id", admin, h.Room.Deactivate)

	return r
}
