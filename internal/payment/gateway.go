// Package payment talks to the hosted checkout provider and verifies completed payments.
package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

// CheckoutRequest describes a single-item hosted checkout for an order.
type CheckoutRequest struct {
	OrderID    string
	Title      string
	Email      string
	Amount     decimal.Decimal
	SuccessURL string
	CancelURL  string
}

// Session is the provider's view of a checkout session.
type Session struct {
	ID      string
	URL     string
	Paid    bool
	OrderID string // from session metadata; empty when absent
}

// Gateway is a hosted payment provider.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*Session, error)
	GetSession(ctx context.Context, id string) (*Session, error)
}

// MinorUnits converts an amount to the provider's smallest currency unit (paise for INR).
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
