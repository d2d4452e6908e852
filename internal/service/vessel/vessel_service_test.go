package vessel

import (
	"sync"
	"testing"
	"time"

	"seawatch/internal/model"
)

func TestUpsertPositionNewerWins(t *testing.T) {
	s := NewVesselService()

	if !s.UpsertPosition(model.PositionReport{MMSI: "123456789", Lat: 36.85, Lon: 3.2, Timestamp: 100}) {
		t.Fatal("first report must apply")
	}

	// Equal timestamp: discarded
	if s.UpsertPosition(model.PositionReport{MMSI: "123456789", Lat: 1, Lon: 1, Timestamp: 100}) {
		t.Error("duplicate timestamp must be discarded")
	}

	// Older timestamp: discarded
	if s.UpsertPosition(model.PositionReport{MMSI: "123456789", Lat: 1, Lon: 1, Timestamp: 50}) {
		t.Error("older report must be discarded")
	}

	position, ok := s.GetPosition("123456789")
	if !ok || position.Lat != 36.85 || position.Timestamp != 100 {
		t.Fatalf("stored position corrupted: %+v", position)
	}

	// Newer timestamp: applied
	if !s.UpsertPosition(model.PositionReport{MMSI: "123456789", Lat: 36.9, Lon: 3.3, Timestamp: 200}) {
		t.Error("newer report must apply")
	}
	position, _ = s.GetPosition("123456789")
	if position.Timestamp != 200 || position.Lat != 36.9 {
		t.Fatalf("newer report not stored: %+v", position)
	}
}

func TestUpsertPositionConcurrentSameVessel(t *testing.T) {
	s := NewVesselService()

	// The same report raced from many goroutines applies exactly once
	var wg sync.WaitGroup
	applied := make(chan bool, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			applied <- s.UpsertPosition(model.PositionReport{MMSI: "123456789", Lat: 36.85, Lon: 3.2, Timestamp: 100})
		}()
	}
	wg.Wait()
	close(applied)

	count := 0
	for ok := range applied {
		if ok {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("replayed report applied %d times, want 1", count)
	}
}

func TestRecentPositions(t *testing.T) {
	s := NewVesselService()

	now := time.Now().UnixMilli()
	s.UpsertPosition(model.PositionReport{MMSI: "fresh", Lat: 36.85, Lon: 3.2, Timestamp: now - time.Minute.Milliseconds()})
	s.UpsertPosition(model.PositionReport{MMSI: "stale", Lat: 36.85, Lon: 3.2, Timestamp: now - 2*time.Hour.Milliseconds()})

	recent := s.RecentPositions(30 * time.Minute)
	if len(recent) != 1 || recent[0].MMSI != "fresh" {
		t.Fatalf("expected only the fresh vessel, got %+v", recent)
	}
}

func TestVesselsNear(t *testing.T) {
	s := NewVesselService()

	s.UpsertPosition(model.PositionReport{MMSI: "close", Lat: 36.85, Lon: 3.2, Timestamp: 100})
	s.UpsertPosition(model.PositionReport{MMSI: "far", Lat: 40.0, Lon: 10.0, Timestamp: 100})

	near := s.VesselsNear(36.85, 3.21, 5000)
	if len(near) != 1 || near[0].MMSI != "close" {
		t.Fatalf("expected only the close vessel, got %+v", near)
	}
}
