package tracker

import (
	"seawatch/internal/model"
	"seawatch/internal/service/storage"
)

// TransitionType marks the direction of a zone membership change.
type TransitionType string

const (
	TransitionEntry TransitionType = "zone_entry"
	TransitionExit  TransitionType = "zone_exit"
)

// Transition is emitted when a vessel's zone membership changes. Reports
// that keep a vessel in the same state produce nothing.
type Transition struct {
	Type      TransitionType `json:"type"`
	MMSI      string         `json:"mmsi"`
	ZoneID    string         `json:"zone_id"`
	ZoneName  string         `json:"zone_name"`
	Lat       float64        `json:"lat"`
	Lon       float64        `json:"lon"`
	Timestamp int64          `json:"timestamp"`
}

// ZoneLookup is the slice of the zone catalog the tracker needs.
type ZoneLookup interface {
	// FirstZoneContaining returns the zone a point is attributed to, or nil.
	// The catalog's ordering decides which zone wins when several contain
	// the point.
	FirstZoneContaining(lat, lng float64) *model.Zone
	// HasZones reports whether a usable catalog is loaded at all.
	HasZones() bool
}

// membership is the per-vessel "currently inside" state. Empty ZoneID means
// the vessel is outside every zone.
type membership struct {
	ZoneID   string
	ZoneName string
}

// Tracker turns per-report zone membership into edge-triggered transitions:
// a vessel drifting inside a zone produces one Entry when it crosses in, not
// one event per position report.
type Tracker struct {
	zones ZoneLookup
	state storage.Storage[string, membership]
}

// NewTracker creates a tracker over the given zone catalog.
func NewTracker(zones ZoneLookup) *Tracker {
	return &Tracker{
		zones: zones,
		state: storage.NewShardedMemoryStorage[string, membership](8, nil),
	}
}

// Evaluate re-evaluates a vessel's membership for one position report and
// returns the resulting transitions, oldest first. A jump straight from
// zone A into zone B yields Exit(A) then Entry(B). The read-modify-write of
// the per-vessel state runs under the storage's per-key lock, so two
// concurrent reports for the same vessel cannot both observe "outside" and
// double-emit an Entry.
//
// With no zone catalog available the report is a no-op and the state is
// left untouched.
func (t *Tracker) Evaluate(report model.PositionReport) []Transition {
	if !t.zones.HasZones() {
		return nil
	}

	var transitions []Transition
	t.state.Update(report.MMSI, func(current membership, exists bool) (membership, bool) {
		zone := t.zones.FirstZoneContaining(report.Lat, report.Lon)

		next := membership{}
		if zone != nil {
			next = membership{ZoneID: zone.ID, ZoneName: zone.Name}
		}

		if exists && next.ZoneID == current.ZoneID {
			// No membership change, nothing to record
			return current, false
		}

		if exists && current.ZoneID != "" {
			transitions = append(transitions, Transition{
				Type:      TransitionExit,
				MMSI:      report.MMSI,
				ZoneID:    current.ZoneID,
				ZoneName:  current.ZoneName,
				Lat:       report.Lat,
				Lon:       report.Lon,
				Timestamp: report.Timestamp,
			})
		}
		if next.ZoneID != "" {
			transitions = append(transitions, Transition{
				Type:      TransitionEntry,
				MMSI:      report.MMSI,
				ZoneID:    next.ZoneID,
				ZoneName:  next.ZoneName,
				Lat:       report.Lat,
				Lon:       report.Lon,
				Timestamp: report.Timestamp,
			})
		}

		return next, true
	})

	return transitions
}

// CurrentZone returns the zone id the vessel is currently attributed to,
// or "" when outside (or never seen).
func (t *Tracker) CurrentZone(mmsi string) string {
	current, ok := t.state.Get(mmsi)
	if !ok {
		return ""
	}
	return current.ZoneID
}
