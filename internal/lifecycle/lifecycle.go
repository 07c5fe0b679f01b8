// Package lifecycle holds the order production and delivery state rules.
//
// Production status is edited freely by admins. Delivery status advances one step at a
// time once the garment is ready, and cash-on-delivery orders become paid in the same
// write that marks them delivered.
package lifecycle

import (
	"tailoringStorefront/internal/apperr"
	"tailoringStorefront/models"
)

var orderOrdinals = map[models.OrderStatus]int{
	models.OrderStatusPending:          0,
	models.OrderStatusConfirmed:        1,
	models.OrderStatusStitching:        2,
	models.OrderStatusStitched:         3,
	models.OrderStatusReadyForDelivery: 4,
	models.OrderStatusDelivered:        5,
}

// deliverySequence is the delivery sub-state machine in order.
var deliverySequence = []models.DeliveryStatus{
	models.DeliveryStatusPending,
	models.DeliveryStatusAssigned,
	models.DeliveryStatusPickedUp,
	models.DeliveryStatusOutForDelivery,
	models.DeliveryStatusDelivered,
}

// OrderStatuses lists production statuses in progress order.
func OrderStatuses() []models.OrderStatus {
	return []models.OrderStatus{
		models.OrderStatusPending,
		models.OrderStatusConfirmed,
		models.OrderStatusStitching,
		models.OrderStatusStitched,
		models.OrderStatusReadyForDelivery,
		models.OrderStatusDelivered,
	}
}

// OrderOrdinal returns the progress ordinal of s.
func OrderOrdinal(s models.OrderStatus) (int, bool) {
	n, ok := orderOrdinals[s]
	return n, ok
}

// DeliveryOrdinal returns the progress ordinal of s.
func DeliveryOrdinal(s models.DeliveryStatus) (int, bool) {
	for i, d := range deliverySequence {
		if d == s {
			return i, true
		}
	}
	return 0, false
}

func ValidOrderStatus(s models.OrderStatus) bool {
	_, ok := orderOrdinals[s]
	return ok
}

func ValidDeliveryStatus(s models.DeliveryStatus) bool {
	_, ok := DeliveryOrdinal(s)
	return ok
}

// NextDeliveryStatus returns the status following s, or false when s is terminal or unknown.
func NextDeliveryStatus(s models.DeliveryStatus) (models.DeliveryStatus, bool) {
	i, ok := DeliveryOrdinal(s)
	if !ok || i+1 >= len(deliverySequence) {
		return "", false
	}
	return deliverySequence[i+1], true
}

// ReadyForDelivery reports whether production has reached ready_for_delivery.
func ReadyForDelivery(o *models.Order) bool {
	n, ok := OrderOrdinal(o.Status)
	return ok && n >= orderOrdinals[models.OrderStatusReadyForDelivery]
}

// CheckStatusEdit validates an admin production-status write. Any known status is accepted,
// including skips and reverts.
func CheckStatusEdit(s models.OrderStatus) error {
	if !ValidOrderStatus(s) {
		return apperr.Validation("invalid order status %q", s)
	}
	return nil
}

// AssignableDeliveryStatuses are the delivery states in which an order may be (re)assigned.
var AssignableDeliveryStatuses = []models.DeliveryStatus{
	models.DeliveryStatusPending,
	models.DeliveryStatusAssigned,
}

// CheckAssignable reports whether o may be handed to driver d.
func CheckAssignable(o *models.Order, d *models.Driver) error {
	if o == nil {
		return apperr.ErrOrderNotFound
	}
	if d == nil {
		return apperr.ErrDriverNotFound
	}
	if !ReadyForDelivery(o) {
		return apperr.Precondition("order must be ready_for_delivery before assignment (status is %s)", o.Status)
	}
	if o.DeliveryStatus != models.DeliveryStatusPending && o.DeliveryStatus != models.DeliveryStatusAssigned {
		return apperr.Precondition("order already %s and cannot be reassigned", o.DeliveryStatus)
	}
	if d.Status == models.DriverStatusInactive {
		return apperr.Precondition("driver %s is inactive", d.PersonnelNumber)
	}
	return nil
}

// DeliveryTransition is a planned driver-side delivery step.
type DeliveryTransition struct {
	From models.DeliveryStatus
	To   models.DeliveryStatus
	// MarkPaid is set when the step settles a cash-on-delivery payment.
	MarkPaid bool
}

// PlanDeliveryTransition validates moving o to the delivery status to.
// Drivers advance one step at a time from assigned onwards. Delivering an unpaid COD order
// requires cashCollected and settles the payment; online payments are never touched here.
func PlanDeliveryTransition(o *models.Order, to models.DeliveryStatus, cashCollected bool) (DeliveryTransition, error) {
	if o == nil {
		return DeliveryTransition{}, apperr.ErrOrderNotFound
	}
	if !ValidDeliveryStatus(to) {
		return DeliveryTransition{}, apperr.Validation("invalid delivery status %q", to)
	}
	if !ReadyForDelivery(o) {
		return DeliveryTransition{}, apperr.Precondition("order is not ready for delivery (status is %s)", o.Status)
	}
	if o.DeliveryStatus == models.DeliveryStatusPending {
		return DeliveryTransition{}, apperr.Precondition("order has not been assigned")
	}
	next, ok := NextDeliveryStatus(o.DeliveryStatus)
	if !ok {
		return DeliveryTransition{}, apperr.Precondition("order is already %s", o.DeliveryStatus)
	}
	if to != next {
		return DeliveryTransition{}, apperr.Precondition("cannot move from %s to %s; next step is %s", o.DeliveryStatus, to, next)
	}
	t := DeliveryTransition{From: o.DeliveryStatus, To: to}
	if to == models.DeliveryStatusDelivered && o.PaymentMethod == models.PaymentMethodCOD && o.PaymentStatus == models.PaymentStatusPendingCOD {
		if !cashCollected {
			return DeliveryTransition{}, apperr.Precondition("confirm cash collection before marking a cash-on-delivery order delivered")
		}
		t.MarkPaid = true
	}
	return t, nil
}
