package main

import (
	"context"
	"log"

	"seawatch/internal/ais"
	"seawatch/internal/api"
	routes "seawatch/internal/api/handlers"
	"seawatch/internal/config"
	"seawatch/internal/ingest"
	"seawatch/internal/notify"
	"seawatch/internal/postgres"
	"seawatch/internal/redis"
	"seawatch/internal/service/alert"
	"seawatch/internal/service/profile"
	"seawatch/internal/service/tracker"
	"seawatch/internal/service/vessel"
	"seawatch/internal/service/zone"
	"seawatch/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize PostgreSQL and Redis
	postgres.Init(cfg.DBUrl)
	redis.Init(cfg.RedisUrl)

	// Initialize and wire services
	processor, deps := initializeServices(cfg)

	// Start background workers
	worker.StartAllWorkers(worker.Deps{
		Processor: processor,
		Collector: deps.Collector,
		MMSIs:     deps.MMSIs,
	})
	vessel.GetVesselService().StartPersistenceWorkers()

	// Setup and run API server
	r := gin.Default()
	api.SetupRouter(r, deps)
	if err := r.Run(cfg.Port); err != nil {
		log.Fatalf("API server stopped: %v", err)
	}
}

func initializeServices(cfg config.Config) (*ingest.Processor, routes.Deps) {
	ctx := context.Background()

	zoneService := zone.GetZoneService()
	if err := zoneService.InitService(ctx); err != nil {
		log.Fatalf("Failed to initialize zone service: %v", err)
	}

	vesselService := vessel.GetVesselService()
	if err := vesselService.InitService(ctx); err != nil {
		log.Fatalf("Failed to initialize vessel service: %v", err)
	}

	notifier, err := notify.NewTwilioNotifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber)
	if err != nil {
		log.Fatalf("Failed to configure SMS delivery: %v", err)
	}

	profiles := profile.GetProfileService()
	alertStore := alert.NewPGAlertStore()
	dispatcher := alert.NewDispatcher(profiles, notifier, alertStore)
	zoneTracker := tracker.NewTracker(zoneService)
	processor := ingest.NewProcessor(vesselService, zoneTracker, dispatcher)
	collector := ais.NewCollector(cfg.AisStreamUrl, cfg.AisStreamApiKey)

	return processor, routes.Deps{
		Processor: processor,
		Collector: collector,
		Alerts:    alertStore,
		MMSIs:     profiles.RegisteredMMSIs,
	}
}
