package ingest

import (
	"context"
	"log"
	"math"
	"sort"
	"sync"
	"sync/atomic"

	"seawatch/internal/model"
	"seawatch/internal/service/tracker"
)

// PositionStore applies a report to the latest-position state. It reports
// whether the write was applied (stale and duplicate reports are not).
type PositionStore interface {
	UpsertPosition(report model.PositionReport) bool
}

// TransitionEvaluator re-evaluates zone membership for a report.
type TransitionEvaluator interface {
	Evaluate(report model.PositionReport) []tracker.Transition
}

// EntryDispatcher delivers the alert for one Entry transition. The bool
// reports whether an SMS actually went out; a silent skip returns false, nil.
type EntryDispatcher interface {
	DispatchEntryAlert(ctx context.Context, event tracker.Transition) (bool, error)
}

// Summary describes what happened to one batch.
type Summary struct {
	Handled          int `json:"handled"`
	Skipped          int `json:"skipped"`
	Discarded        int `json:"discarded"`
	Transitions      int `json:"transitions"`
	Alerts           int `json:"alerts"`
	DeliveryFailures int `json:"delivery_failures"`
}

// Processor drives a batch of position reports through the latest-position
// store, the transition tracker and the alert dispatcher.
type Processor struct {
	positions  PositionStore
	tracker    TransitionEvaluator
	dispatcher EntryDispatcher
}

// NewProcessor wires a processor from its collaborators.
func NewProcessor(positions PositionStore, tracker TransitionEvaluator, dispatcher EntryDispatcher) *Processor {
	return &Processor{
		positions:  positions,
		tracker:    tracker,
		dispatcher: dispatcher,
	}
}

// validReport filters out reports the batch boundary rejects: missing MMSI,
// non-finite or out-of-range coordinates, missing timestamp.
func validReport(report model.PositionReport) bool {
	if report.MMSI == "" || report.Timestamp <= 0 {
		return false
	}
	if math.IsNaN(report.Lat) || math.IsInf(report.Lat, 0) ||
		math.IsNaN(report.Lon) || math.IsInf(report.Lon, 0) {
		return false
	}
	if math.Abs(report.Lat) > 90 || math.Abs(report.Lon) > 180 {
		return false
	}
	return true
}

// ProcessBatch handles a finite, possibly empty batch. Malformed reports
// are skipped individually with a warning. Reports are grouped per vessel
// and each group is applied in timestamp order; groups run concurrently,
// so a slow alert delivery for one vessel does not hold up the others.
// A partial batch from a cut-off collection window is normal input.
func (p *Processor) ProcessBatch(ctx context.Context, reports []model.PositionReport) Summary {
	var summary Summary

	groups := make(map[string][]model.PositionReport)
	for _, report := range reports {
		if !validReport(report) {
			log.Printf("data-quality: skipping malformed position report %+v", report)
			summary.Skipped++
			continue
		}
		groups[report.MMSI] = append(groups[report.MMSI], report)
	}

	var handled, discarded, transitions, alerts, deliveryFailures int64

	var wg sync.WaitGroup
	wg.Add(len(groups))
	for _, group := range groups {
		go func(group []model.PositionReport) {
			defer wg.Done()

			sort.Slice(group, func(i, j int) bool {
				return group[i].Timestamp < group[j].Timestamp
			})

			for _, report := range group {
				if ctx.Err() != nil {
					// Caller gave up, drop the rest of the group
					return
				}
				if !p.positions.UpsertPosition(report) {
					// Stale or duplicate report, no re-evaluation
					atomic.AddInt64(&discarded, 1)
					continue
				}
				atomic.AddInt64(&handled, 1)

				for _, transition := range p.tracker.Evaluate(report) {
					atomic.AddInt64(&transitions, 1)
					log.Printf("Vessel %s %s zone %q at (%.4f, %.4f)",
						transition.MMSI, transitionVerb(transition.Type), transition.ZoneName,
						transition.Lat, transition.Lon)

					if transition.Type != tracker.TransitionEntry {
						continue
					}
					delivered, err := p.dispatcher.DispatchEntryAlert(ctx, transition)
					if err != nil {
						// Safety-relevant: the owner was not warned
						log.Printf("alert-delivery: %v", err)
						atomic.AddInt64(&deliveryFailures, 1)
						continue
					}
					if delivered {
						atomic.AddInt64(&alerts, 1)
					}
				}
			}
		}(group)
	}
	wg.Wait()

	summary.Handled = int(handled)
	summary.Discarded = int(discarded)
	summary.Transitions = int(transitions)
	summary.Alerts = int(alerts)
	summary.DeliveryFailures = int(deliveryFailures)
	return summary
}

func transitionVerb(t tracker.TransitionType) string {
	if t == tracker.TransitionEntry {
		return "entered"
	}
	return "left"
}
