package routes

import (
	"github.com/gin-gonic/gin"

	"courtbot/handlers"
)

// RegisterRoutes wires the HTTP surface: the Telegram webhook and the health
// probe.
func RegisterRoutes(r *gin.Engine, webhook *handlers.WebhookHandler) {
	r.GET("/healthz", handlers.HealthHandler)

	tg := r.Group("/telegram")
	{
		tg.POST("/webhook/:token", webhook.Handle)
	}
}
