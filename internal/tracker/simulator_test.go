package tracker

import (
	"context"
	"database/sql"
	"math"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"tailoringStorefront/internal/geo"
	"tailoringStorefront/internal/realtime"
	"tailoringStorefront/models"
)

type memLocations struct {
	mu     sync.Mutex
	writes map[string][]models.DeliveryLocation
	gone   map[string]bool
}

func newMemLocations() *memLocations {
	return &memLocations{writes: map[string][]models.DeliveryLocation{}, gone: map[string]bool{}}
}

func (m *memLocations) UpdateDeliveryLocation(_ context.Context, id string, loc models.DeliveryLocation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gone[id] {
		return sql.ErrNoRows
	}
	m.writes[id] = append(m.writes[id], loc)
	return nil
}

func (m *memLocations) count(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.writes[id])
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met in time")
}

var salem = geo.Point{Lat: 11.6643, Lng: 78.1460}

func TestSimulator_PushesJitteredPositions(t *testing.T) {
	locs := newMemLocations()
	hub := realtime.NewHub()
	defer hub.Close()
	sub, err := hub.Subscribe(context.Background())
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer sub.Close()

	s := New(locs, hub, salem, 10*time.Millisecond, zap.NewNop())
	defer s.Close()

	if !s.Start("o1") {
		t.Fatalf("Start returned false")
	}
	if s.Start("o1") {
		t.Fatalf("second Start must be a no-op")
	}
	waitFor(t, func() bool { return locs.count("o1") >= 3 })

	select {
	case e := <-sub.Events():
		if e.OrderID != "o1" || e.Kind != realtime.KindLocation {
			t.Fatalf("event = %+v", e)
		}
	case <-time.After(time.Second):
		t.Fatalf("no location event published")
	}

	locs.mu.Lock()
	for _, l := range locs.writes["o1"] {
		if math.Abs(l.Lat-salem.Lat) > Jitter || math.Abs(l.Lng-salem.Lng) > Jitter {
			t.Fatalf("position %v,%v outside jitter", l.Lat, l.Lng)
		}
	}
	locs.mu.Unlock()

	s.Stop("o1")
	if s.Tracking("o1") {
		t.Fatalf("still tracking after Stop")
	}
	n := locs.count("o1")
	time.Sleep(50 * time.Millisecond)
	if got := locs.count("o1"); got > n+1 {
		t.Fatalf("pushes continued after Stop: %d -> %d", n, got)
	}
	s.Stop("o1")
}

func TestSimulator_StopsWhenOrderVanishes(t *testing.T) {
	locs := newMemLocations()
	locs.gone["ghost"] = true
	s := New(locs, nil, salem, 5*time.Millisecond, zap.NewNop())
	defer s.Close()

	s.Start("ghost")
	waitFor(t, func() bool { return !s.Tracking("ghost") })
}

func TestSimulator_CloseStopsAll(t *testing.T) {
	locs := newMemLocations()
	s := New(locs, nil, salem, 5*time.Millisecond, zap.NewNop())
	s.Start("a")
	s.Start("b")
	s.Close()
	if s.Tracking("a") || s.Tracking("b") {
		t.Fatalf("orders still tracked after Close")
	}
	if s.Start("c") {
		t.Fatalf("Start after Close must fail")
	}
}
