package handlers

import (
	"immunotrack/internal/logger"
	"immunotrack/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint (also the publisher's pre-send probe target)
	router.GET("/health", h.health)

	h.registerAPIRoutes(router)

	// Live telemetry stream (HTTP upgrade) — same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		h.registerTemperatureRoutes(api)
		h.registerAlertRoutes(api)
	}
}

func (h *Handler) registerTemperatureRoutes(api *gin.RouterGroup) {
	temperature := api.Group("/temperature")
	{
		// Body example: {"sensor_id":"sensor-001","temperature":4.5,"timestamp":"2026-08-26T12:00:00Z"}
		temperature.POST("", h.submitReading)
		temperature.GET("/latest", h.getLatestReading)
		temperature.GET("/all", h.getAllReadings)
		temperature.GET("/count", h.getReadingCount)
	}
}

func (h *Handler) registerAlertRoutes(api *gin.RouterGroup) {
	alerts := api.Group("/alerts")
	{
		alerts.GET("", h.listAlerts)
		alerts.GET("/latest", h.getLatestAlert)
		alerts.GET("/count", h.getAlertCount)
		alerts.POST("/simulate", h.simulateAlert)
		alerts.DELETE("", h.clearAlerts)
	}
}
