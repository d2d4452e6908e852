package worker

import (
	"context"
	"log"
	"time"

	"seawatch/internal/config"
)

// StartIngestWorker periodically opens an AIS collection window and runs
// the batch through the processor. A failed window only skips one cycle.
func StartIngestWorker(deps Deps) {
	ticker := time.NewTicker(config.IngestWorkerInterval)
	go func() {
		for range ticker.C {
			runIngestCycle(deps)
		}
	}()

	log.Println("Ingest worker started with interval:", config.IngestWorkerInterval)
}

func runIngestCycle(deps Deps) {
	ctx, cancel := context.WithTimeout(context.Background(), config.IngestCollectionWindow+time.Minute)
	defer cancel()

	mmsis, err := deps.MMSIs(ctx)
	if err != nil {
		log.Printf("Ingest worker: failed to list registered vessels: %v", err)
		return
	}
	if len(mmsis) == 0 {
		return
	}

	reports, err := deps.Collector.Collect(ctx, mmsis, config.IngestCollectionWindow)
	if err != nil {
		log.Printf("Ingest worker: AIS collection failed: %v", err)
		return
	}
	if len(reports) == 0 {
		return
	}

	summary := deps.Processor.ProcessBatch(ctx, reports)
	log.Printf("Ingest worker: handled=%d discarded=%d skipped=%d transitions=%d alerts=%d deliveryFailures=%d",
		summary.Handled, summary.Discarded, summary.Skipped, summary.Transitions, summary.Alerts, summary.DeliveryFailures)
}
