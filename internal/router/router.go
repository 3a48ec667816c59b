package router

import (
	"time"

	"github.com/cronmon-dev/cronmon/internal/handlers"
	"github.com/cronmon-dev/cronmon/internal/metrics"
	"github.com/cronmon-dev/cronmon/internal/types"
	"github.com/cronmon-dev/cronmon/internal/ws"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(h *handlers.Handler, m *metrics.Metrics) *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Check-in endpoint; GET so a bare curl in a crontab works, POST for
	// clients that prefer it.
	r.GET("/ping/:monitor_id", h.Ping)
	r.POST("/ping/:monitor_id", h.Ping)

	r.GET("/metrics", gin.WrapH(m.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws", ws.Serve)

		monitors := api.Group("/monitors")
		{
			monitors.POST("", h.CreateMonitor)
			monitors.GET("", h.ListMonitors)
			monitors.GET("/:monitor_id", h.GetMonitor)
			monitors.DELETE("/:monitor_id", h.DeleteMonitor)
		}
	}

	return r
}
