package alert

import (
	"context"
	"errors"
	"strings"
	"testing"

	"seawatch/internal/model"
	"seawatch/internal/service/tracker"
)

type fakeResolver struct {
	profile *model.FisherProfile
	err     error
}

func (f *fakeResolver) ResolveByMMSI(ctx context.Context, mmsi string) (*model.FisherProfile, error) {
	return f.profile, f.err
}

type fakeNotifier struct {
	sent []string
	to   []string
	err  error
}

func (f *fakeNotifier) Send(ctx context.Context, toPhone, body string) error {
	if f.err != nil {
		return f.err
	}
	f.to = append(f.to, toPhone)
	f.sent = append(f.sent, body)
	return nil
}

type fakeStore struct {
	records []*model.AlertLog
	err     error
}

func (f *fakeStore) RecordAlert(ctx context.Context, alert *model.AlertLog) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, alert)
	return nil
}

func entryEvent() tracker.Transition {
	return tracker.Transition{
		Type:      tracker.TransitionEntry,
		MMSI:      "123456789",
		ZoneID:    "zone-coastal",
		ZoneName:  "Coastal Buffer",
		Lat:       36.85,
		Lon:       3.2,
		Timestamp: 100,
	}
}

func TestDispatchEntryAlertDeliversAndRecords(t *testing.T) {
	resolver := &fakeResolver{profile: &model.FisherProfile{
		ID:            "profile-1",
		Name:          "Karim",
		MMSI:          "123456789",
		Phone:         "+213555000111",
		AlertsEnabled: true,
	}}
	notifier := &fakeNotifier{}
	store := &fakeStore{}
	d := NewDispatcher(resolver, notifier, store)

	delivered, err := d.DispatchEntryAlert(context.Background(), entryEvent())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !delivered {
		t.Fatal("successful dispatch must report delivery")
	}

	if len(notifier.sent) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(notifier.sent))
	}
	if notifier.to[0] != "+213555000111" {
		t.Errorf("delivered to %s", notifier.to[0])
	}

	body := notifier.sent[0]
	for _, fragment := range []string{"Karim", "Coastal Buffer", "(36.8500, 3.2000)"} {
		if !strings.Contains(body, fragment) {
			t.Errorf("message %q missing %q", body, fragment)
		}
	}

	if len(store.records) != 1 {
		t.Fatalf("expected 1 alert record, got %d", len(store.records))
	}
	record := store.records[0]
	if record.AlertType != model.AlertTypeRestrictedZoneEntry {
		t.Errorf("alert type = %s", record.AlertType)
	}
	if record.FisherProfileID != "profile-1" || record.Timestamp != 100 {
		t.Errorf("record fields wrong: %+v", record)
	}
	if record.Details != "Entered restricted zone: Coastal Buffer" {
		t.Errorf("details = %q", record.Details)
	}
}

func TestDispatchEntryAlertNoTargetSkipsSilently(t *testing.T) {
	cases := []struct {
		name    string
		profile *model.FisherProfile
	}{
		{"unregistered vessel", nil},
		{"no phone", &model.FisherProfile{ID: "p", Name: "N", AlertsEnabled: true}},
		{"alerts disabled", &model.FisherProfile{ID: "p", Name: "N", Phone: "+1", AlertsEnabled: false}},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &fakeNotifier{}
			store := &fakeStore{}
			d := NewDispatcher(&fakeResolver{profile: tt.profile}, notifier, store)

			delivered, err := d.DispatchEntryAlert(context.Background(), entryEvent())
			if err != nil {
				t.Fatalf("no-target skip must not error: %v", err)
			}
			if delivered {
				t.Error("silent skip must not report a delivery")
			}
			if len(notifier.sent) != 0 {
				t.Errorf("expected zero deliveries, got %d", len(notifier.sent))
			}
			if len(store.records) != 0 {
				t.Errorf("expected zero alert records, got %d", len(store.records))
			}
		})
	}
}

func TestDispatchEntryAlertDeliveryFailurePropagates(t *testing.T) {
	resolver := &fakeResolver{profile: &model.FisherProfile{
		ID: "profile-1", Name: "Karim", Phone: "+213555000111", AlertsEnabled: true,
	}}
	notifier := &fakeNotifier{err: errors.New("twilio SMS failed: 503")}
	store := &fakeStore{}
	d := NewDispatcher(resolver, notifier, store)

	delivered, err := d.DispatchEntryAlert(context.Background(), entryEvent())
	if err == nil {
		t.Fatal("delivery failure must propagate")
	}
	if delivered {
		t.Error("failed delivery must not report as delivered")
	}
	if len(store.records) != 0 {
		t.Errorf("failed delivery must not be recorded, got %d records", len(store.records))
	}
}

func TestDispatchEntryAlertResolverFailurePropagates(t *testing.T) {
	d := NewDispatcher(&fakeResolver{err: errors.New("store down")}, &fakeNotifier{}, &fakeStore{})

	if _, err := d.DispatchEntryAlert(context.Background(), entryEvent()); err == nil {
		t.Fatal("resolver failure must propagate")
	}
}

func TestDispatchRejectsNonEntryEvents(t *testing.T) {
	notifier := &fakeNotifier{}
	d := NewDispatcher(&fakeResolver{}, notifier, &fakeStore{})

	exit := entryEvent()
	exit.Type = tracker.TransitionExit
	if _, err := d.DispatchEntryAlert(context.Background(), exit); err == nil {
		t.Fatal("exit events are not dispatchable")
	}
	if len(notifier.sent) != 0 {
		t.Errorf("exit event must not deliver anything")
	}
}
