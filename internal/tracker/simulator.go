// Package tracker pushes simulated positions for orders that are out for delivery.
package tracker

import (
	"context"
	"database/sql"
	"errors"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"tailoringStorefront/internal/geo"
	"tailoringStorefront/internal/realtime"
	"tailoringStorefront/models"
)

// Jitter is the maximum offset in degrees applied to each simulated position.
const Jitter = 0.0005

// LocationWriter stores the last known position of an order.
type LocationWriter interface {
	UpdateDeliveryLocation(ctx context.Context, id string, loc models.DeliveryLocation) error
}

// Simulator runs one ticker per tracked order. The zero value is not usable; use New.
type Simulator struct {
	orders   LocationWriter
	feed     realtime.Publisher
	origin   geo.Point
	interval time.Duration
	log      *zap.Logger
	rand     func() float64

	mu      sync.Mutex
	running map[string]context.CancelFunc
	closed  bool
	wg      sync.WaitGroup
}

func New(orders LocationWriter, feed realtime.Publisher, origin geo.Point, interval time.Duration, log *zap.Logger) *Simulator {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	return &Simulator{
		orders:   orders,
		feed:     feed,
		origin:   origin,
		interval: interval,
		log:      log,
		rand:     rand.Float64,
		running:  map[string]context.CancelFunc{},
	}
}

// Start begins pushing positions for orderID. It reports false when the order is already
// tracked or the simulator is closed.
func (s *Simulator) Start(orderID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	if _, ok := s.running[orderID]; ok {
		return false
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.running[orderID] = cancel
	s.wg.Add(1)
	go s.run(ctx, orderID)
	s.log.Info("tracking started", zap.String("order_id", orderID))
	return true
}

// Stop ends tracking of orderID. Stopping an untracked order is a no-op.
func (s *Simulator) Stop(orderID string) {
	s.mu.Lock()
	cancel, ok := s.running[orderID]
	delete(s.running, orderID)
	s.mu.Unlock()
	if ok {
		cancel()
		s.log.Info("tracking stopped", zap.String("order_id", orderID))
	}
}

// Tracking reports whether orderID is being tracked.
func (s *Simulator) Tracking(orderID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.running[orderID]
	return ok
}

// Close stops every ticker and waits for them to exit.
func (s *Simulator) Close() {
	s.mu.Lock()
	s.closed = true
	for id, cancel := range s.running {
		cancel()
		delete(s.running, id)
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Simulator) run(ctx context.Context, orderID string) {
	defer s.wg.Done()
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := s.push(ctx, orderID); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					s.log.Warn("tracked order disappeared", zap.String("order_id", orderID))
					s.Stop(orderID)
					return
				}
				if ctx.Err() == nil {
					s.log.Warn("push simulated location", zap.String("order_id", orderID), zap.Error(err))
				}
			}
		}
	}
}

func (s *Simulator) push(ctx context.Context, orderID string) error {
	loc := models.DeliveryLocation{
		Lat:       s.origin.Lat + (s.rand()*2-1)*Jitter,
		Lng:       s.origin.Lng + (s.rand()*2-1)*Jitter,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.orders.UpdateDeliveryLocation(ctx, orderID, loc); err != nil {
		return err
	}
	realtime.Announce(ctx, s.feed, s.log, orderID, realtime.KindLocation)
	return nil
}
