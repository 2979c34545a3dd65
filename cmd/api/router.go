package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(r *gin.Engine, h *Handler) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		api.GET("/status", h.authHandler.GetStatus)

		auth := api.Group("/auth")
		{
			auth.GET("/mail/url", h.authHandler.GetMailAuthURL)
			auth.POST("/mail/callback", h.authHandler.MailCallback)
			auth.POST("/ai/key", h.authHandler.UpdateAIKey)
		}

		api.GET("/settings", h.settingsHandler.GetSettings)
		api.PATCH("/settings", h.settingsHandler.UpdateSettings)

		filters := api.Group("/filters")
		{
			filters.GET("", h.filterHandler.GetFilters)
			filters.POST("", h.filterHandler.CreateFilter)
			filters.GET("/:id", h.filterHandler.GetFilterByID)
			filters.PATCH("/:id", h.filterHandler.UpdateFilter)
			filters.DELETE("/:id", h.filterHandler.DeleteFilter)
			filters.POST("/:id/toggle", h.filterHandler.ToggleFilter)
		}

		api.GET("/logs", h.processingHandler.GetLogs)
		api.GET("/logs/:id", h.processingHandler.GetLogByID)
		api.GET("/stats", h.processingHandler.GetStats)
		api.POST("/process", h.processingHandler.Process)
	}
}
