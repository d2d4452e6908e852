package worker

import (
	"context"
	"log"

	"seawatch/internal/ais"
	"seawatch/internal/ingest"
)

// Deps are the collaborators the background workers drive.
type Deps struct {
	Processor *ingest.Processor
	Collector *ais.Collector
	MMSIs     func(ctx context.Context) ([]string, error)
}

// StartAllWorkers initializes and starts all background workers
func StartAllWorkers(deps Deps) {
	log.Println("Starting all workers...")

	StartIngestWorker(deps)

	log.Println("All workers started")
}
