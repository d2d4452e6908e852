package alert

import (
	"context"
	"fmt"
	"log"

	"seawatch/internal/config"
	"seawatch/internal/model"
	"seawatch/internal/notify"
	"seawatch/internal/service/tracker"
	"seawatch/internal/util"
)

// ContactResolver maps a vessel to its owner's contact details. Returns
// (nil, nil) when the vessel is not registered to anyone.
type ContactResolver interface {
	ResolveByMMSI(ctx context.Context, mmsi string) (*model.FisherProfile, error)
}

// AlertStore appends alert records.
type AlertStore interface {
	RecordAlert(ctx context.Context, alert *model.AlertLog) error
}

// Dispatcher turns Entry transitions into at most one SMS each. It is only
// ever fed transition events, never raw position reports, so the per-entry
// guarantee is structural.
type Dispatcher struct {
	resolver ContactResolver
	notifier notify.Notifier
	store    AlertStore
}

// NewDispatcher wires a dispatcher from its collaborators.
func NewDispatcher(resolver ContactResolver, notifier notify.Notifier, store AlertStore) *Dispatcher {
	return &Dispatcher{
		resolver: resolver,
		notifier: notifier,
		store:    store,
	}
}

// AlertMessage renders the SMS body for a zone entry.
func AlertMessage(fisherName, zoneName string, lat, lon float64) string {
	return fmt.Sprintf(
		"Hello %s, your vessel has entered the restricted zone: %s at coordinates (%.4f, %.4f). Please take appropriate action. - Maritime Monitor",
		fisherName, zoneName, lat, lon,
	)
}

// DispatchEntryAlert delivers the alert for one Entry transition and records
// it. A vessel with no resolvable contact (unregistered, no phone, alerts
// disabled) is skipped silently with a warning and no record is written.
// Delivery failure is returned to the caller and also leaves no record: a
// logged alert means the owner was actually warned.
//
// The first return value reports whether an SMS actually went out, so the
// caller can tell a delivery from a silent skip.
func (d *Dispatcher) DispatchEntryAlert(ctx context.Context, event tracker.Transition) (bool, error) {
	if event.Type != tracker.TransitionEntry {
		return false, fmt.Errorf("dispatch called with %s event for vessel %s", event.Type, event.MMSI)
	}

	profile, err := d.resolver.ResolveByMMSI(ctx, event.MMSI)
	if err != nil {
		return false, fmt.Errorf("resolve contact for MMSI %s: %w", event.MMSI, err)
	}
	if profile == nil || profile.Phone == "" || !profile.AlertsEnabled {
		log.Printf("Fisher profile or phone not found for MMSI %s during alert check, skipping delivery", event.MMSI)
		return false, nil
	}

	message := AlertMessage(profile.Name, event.ZoneName, event.Lat, event.Lon)

	deliveryCtx, cancel := context.WithTimeout(ctx, config.DeliveryTimeout)
	defer cancel()
	if err := d.notifier.Send(deliveryCtx, profile.Phone, message); err != nil {
		return false, fmt.Errorf("alert delivery to %s failed for zone %s: %w", profile.Phone, event.ZoneName, err)
	}

	record := &model.AlertLog{
		ID:              util.ShortUUID(),
		FisherProfileID: profile.ID,
		Lat:             event.Lat,
		Lon:             event.Lon,
		Timestamp:       event.Timestamp,
		AlertType:       model.AlertTypeRestrictedZoneEntry,
		Details:         fmt.Sprintf("Entered restricted zone: %s", event.ZoneName),
	}
	if err := d.store.RecordAlert(ctx, record); err != nil {
		return true, fmt.Errorf("record alert for MMSI %s: %w", event.MMSI, err)
	}

	log.Printf("SMS alert sent to %s for zone %s", profile.Phone, event.ZoneName)
	return true, nil
}
