package routes

import (
	"net/http"

	"seawatch/internal/service/zone"

	"github.com/gin-gonic/gin"
)

// SetupZoneHandlers registers the restricted zone endpoints. Authorization
// lives in the fronting proxy; the admin identity arrives as a header.
func SetupZoneHandlers(router *gin.RouterGroup) {
	zoneGroup := router.Group("/zones")

	zoneGroup.GET("", ListZones)
	zoneGroup.POST("", CreateZone)
	zoneGroup.PUT("/:id", UpdateZone)
	zoneGroup.DELETE("/:id", DeleteZone)
}

type zoneResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Geometry    string `json:"geometry"`
}

// ListZones returns the zone catalog in evaluation order
func ListZones(c *gin.Context) {
	zones := zone.GetZoneService().AllZones()

	result := make([]zoneResponse, 0, len(zones))
	for _, z := range zones {
		result = append(result, zoneResponse{
			ID:          z.ID,
			Name:        z.Name,
			Description: z.Description,
			Geometry:    z.Geometry,
		})
	}
	c.JSON(http.StatusOK, result)
}

type createZoneRequest struct {
	Name        string `json:"name" binding:"required"`
	Geometry    string `json:"geometry" binding:"required"`
	Description string `json:"description"`
}

// CreateZone adds a restricted zone
func CreateZone(c *gin.Context) {
	var req createZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := zone.GetZoneService().CreateZone(c.Request.Context(), req.Name, req.Geometry, req.Description, c.GetHeader("X-User-Id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": created.ID})
}

type updateZoneRequest struct {
	Name        *string `json:"name"`
	Geometry    *string `json:"geometry"`
	Description *string `json:"description"`
}

// UpdateZone patches the provided fields of a zone
func UpdateZone(c *gin.Context) {
	var req updateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := zone.GetZoneService().UpdateZone(c.Request.Context(), c.Param("id"), req.Name, req.Geometry, req.Description)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": updated.ID})
}

// DeleteZone removes a zone
func DeleteZone(c *gin.Context) {
	if err := zone.GetZoneService().DeleteZone(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
