package routes

import (
	"context"
	"net/http"
	"time"

	"seawatch/internal/ais"
	"seawatch/internal/config"
	"seawatch/internal/ingest"
	"seawatch/internal/model"
	"seawatch/internal/service/alert"

	"github.com/gin-gonic/gin"
)

// Deps carries the non-singleton collaborators the handlers need.
type Deps struct {
	Processor *ingest.Processor
	Collector *ais.Collector
	Alerts    *alert.PGAlertStore
	MMSIs     func(ctx context.Context) ([]string, error)
}

// SetupIngestHandlers registers the ingestion endpoints
func SetupIngestHandlers(router *gin.RouterGroup, deps Deps) {
	ingestGroup := router.Group("/ingest")

	// Direct batch ingestion of position reports
	ingestGroup.POST("/positions", func(c *gin.Context) {
		var reports []model.PositionReport
		if err := c.ShouldBindJSON(&reports); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		summary := deps.Processor.ProcessBatch(c.Request.Context(), reports)
		c.JSON(http.StatusOK, summary)
	})

	// Open one AIS collection window and process whatever it yields
	ingestGroup.POST("/run", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), config.IngestCollectionWindow+time.Minute)
		defer cancel()

		mmsis, err := deps.MMSIs(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if len(mmsis) == 0 {
			c.JSON(http.StatusOK, gin.H{"handled": 0, "message": "No registered vessels"})
			return
		}

		reports, err := deps.Collector.Collect(ctx, mmsis, config.IngestCollectionWindow)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		summary := deps.Processor.ProcessBatch(ctx, reports)
		c.JSON(http.StatusOK, summary)
	})
}
