package payment

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tailoringStorefront/internal/apperr"
	"tailoringStorefront/internal/realtime"
	"tailoringStorefront/models"
)

// OrderStore is the part of the order repository the verifier needs.
type OrderStore interface {
	GetByID(ctx context.Context, id string) (*models.Order, error)
	MarkPaid(ctx context.Context, id, sessionID string) (bool, error)
}

// Notifier sends the order confirmation without blocking.
type Notifier interface {
	OrderConfirmed(o *models.Order)
}

// Verifier settles orders whose hosted checkout has completed. Verifying the same session
// any number of times marks the order paid once and notifies once.
type Verifier struct {
	gateway  Gateway
	orders   OrderStore
	notifier Notifier
	feed     realtime.Publisher
	log      *zap.Logger
}

func NewVerifier(gateway Gateway, orders OrderStore, notifier Notifier, feed realtime.Publisher, log *zap.Logger) *Verifier {
	return &Verifier{gateway: gateway, orders: orders, notifier: notifier, feed: feed, log: log}
}

// Verify checks the session with the provider and marks its order paid.
func (v *Verifier) Verify(ctx context.Context, sessionID string) (*models.Order, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, apperr.Validation("sessionId is required")
	}
	if v.gateway == nil {
		return nil, apperr.Precondition("online payment is not available")
	}
	s, err := v.gateway.GetSession(ctx, sessionID)
	if err != nil {
		v.log.Error("retrieve checkout session", zap.String("session_id", sessionID), zap.Error(err))
		return nil, apperr.Remote("retrieve checkout session", err)
	}
	if !s.Paid {
		return nil, apperr.ErrPaymentIncomplete
	}
	if s.OrderID == "" {
		return nil, apperr.ErrMissingOrderReference
	}

	o, err := v.orders.GetByID(ctx, s.OrderID)
	if err != nil {
		return nil, apperr.Remote("load order", err)
	}
	if o == nil {
		return nil, apperr.ErrOrderNotFound
	}
	if o.PaymentStatus == models.PaymentStatusPaid {
		return o, nil
	}

	changed, err := v.orders.MarkPaid(ctx, o.ID, sessionID)
	if err != nil {
		return nil, apperr.Remote("mark order paid", err)
	}
	if !changed {
		// Another verification won the race.
		return o, nil
	}
	paid, err := v.orders.GetByID(ctx, o.ID)
	if err != nil || paid == nil {
		return nil, apperr.Remote("reload order", fmt.Errorf("order %s: %v", o.ID, err))
	}
	v.log.Info("payment verified", zap.String("order_id", paid.ID), zap.String("session_id", sessionID))
	if v.notifier != nil {
		v.notifier.OrderConfirmed(paid)
	}
	realtime.Announce(ctx, v.feed, v.log, paid.ID, realtime.KindUpdated)
	return paid, nil
}
