package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"tailoringStorefront/models"
)

// Dispatcher sends order confirmations in the background. Failures are logged and dropped.
type Dispatcher struct {
	sender  Sender
	log     *zap.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewDispatcher(sender Sender, log *zap.Logger) *Dispatcher {
	return &Dispatcher{sender: sender, log: log, timeout: 15 * time.Second}
}

// OrderConfirmed queues the confirmation e-mail for o and returns immediately.
// Orders without an e-mail address are skipped.
func (d *Dispatcher) OrderConfirmed(o *models.Order) {
	if o == nil || o.Email == "" {
		return
	}
	msg, err := OrderConfirmation(o)
	if err != nil {
		d.log.Error("render confirmation", zap.String("order_id", o.ID), zap.Error(err))
		return
	}
	orderID := o.ID
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		if err := d.sender.Send(ctx, msg); err != nil {
			d.log.Error("send confirmation", zap.String("order_id", orderID), zap.Error(err))
			return
		}
		d.log.Info("confirmation sent", zap.String("order_id", orderID))
	}()
}

// Wait blocks until queued sends have finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
