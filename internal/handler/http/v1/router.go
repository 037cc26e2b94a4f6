package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Публичные маршруты регистрации
	api.POST("/register", h.register)
	api.POST("/verify", h.verify)

	// Публичные маршруты оповещений
	alerts := api.Group("/alerts")
	{
		alerts.GET("/history", h.alertHistory)
		alerts.GET("/recent", h.alertsRecent)
		alerts.GET("/summary", h.alertsSummary)
	}

	// Маршруты для персонала, защищенные API-ключом
	staff := api.Group("/")
	staff.Use(APIKeyAuthMiddleware(h.cfg, h.logger))
	{
		staff.POST("/broadcast", h.broadcast)
		staff.GET("/broadcast/areas", h.broadcastAreas)
		staff.POST("/reports/health", h.reportHealth)
		staff.POST("/reports/crime", h.reportCrime)
		staff.GET("/stats", h.getStats)
	}

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
