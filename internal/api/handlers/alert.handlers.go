package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// SetupAlertHandlers registers the alert log endpoints
func SetupAlertHandlers(router *gin.RouterGroup, deps Deps) {
	alertGroup := router.Group("/alerts")

	alertGroup.GET("", func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
		if err != nil || limit <= 0 {
			limit = 100
		}

		alerts, err := deps.Alerts.ListRecent(c.Request.Context(), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, alerts)
	})
}
