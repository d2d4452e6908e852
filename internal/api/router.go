package api

import (
	routes "seawatch/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupRouter initializes all application routes
func SetupRouter(r *gin.Engine, deps routes.Deps) {
	// API group
	api := r.Group("/api")

	routes.SetupMainHandlers(r.Group(""))
	routes.SetupZoneHandlers(api)
	routes.SetupVesselHandlers(api)
	routes.SetupAlertHandlers(api, deps)
	routes.SetupIngestHandlers(api, deps)
}
