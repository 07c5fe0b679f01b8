// Package realtime carries order change notifications to live views.
// Subscribers re-fetch what they display on every event; events carry no state.
package realtime

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Kind names what happened to an order.
type Kind string

const (
	KindCreated  Kind = "order.created"
	KindUpdated  Kind = "order.updated"
	KindLocation Kind = "order.location"
)

// Event is a change notification for one order.
type Event struct {
	OrderID string    `json:"order_id"`
	Kind    Kind      `json:"kind"`
	At      time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Subscription delivers events until closed. Slow readers miss events.
type Subscription interface {
	Events() <-chan Event
	Close() error
}

type Subscriber interface {
	Subscribe(ctx context.Context) (Subscription, error)
}

// Feed is a publish/subscribe change feed.
type Feed interface {
	Publisher
	Subscriber
	Close() error
}

// subscriberBuffer is the per-subscriber queue length.
const subscriberBuffer = 16

// Announce publishes a change for orderID and logs, rather than returns, a failure.
func Announce(ctx context.Context, pub Publisher, log *zap.Logger, orderID string, kind Kind) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, Event{OrderID: orderID, Kind: kind, At: time.Now().UTC()}); err != nil {
		log.Warn("publish order change", zap.String("order_id", orderID), zap.String("kind", string(kind)), zap.Error(err))
	}
}
