package routes

import (
	"net/http"
	"strconv"

	"seawatch/internal/config"
	"seawatch/internal/service/vessel"

	"github.com/gin-gonic/gin"
)

// SetupVesselHandlers registers the vessel position endpoints
func SetupVesselHandlers(router *gin.RouterGroup) {
	vesselGroup := router.Group("/vessels")

	vesselGroup.GET("/live", LiveVessels)
	vesselGroup.GET("/near", VesselsNear)
}

// LiveVessels returns the positions observed within the recency window,
// for the map display
func LiveVessels(c *gin.Context) {
	positions := vessel.GetVesselService().RecentPositions(config.PositionRecencyWindow)
	c.JSON(http.StatusOK, positions)
}

// VesselsNear returns vessels within a radius of a coordinate
func VesselsNear(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	radius, radErr := strconv.ParseFloat(c.DefaultQuery("radius", "10000"), 64)
	if latErr != nil || lonErr != nil || radErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat, lon and radius must be numeric"})
		return
	}

	positions := vessel.GetVesselService().VesselsNear(lat, lon, radius)
	c.JSON(http.StatusOK, positions)
}
