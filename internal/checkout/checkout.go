// Package checkout turns a completed order form into an order, either paid online through the
// hosted checkout or placed as cash on delivery.
package checkout

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tailoringStorefront/internal/apperr"
	"tailoringStorefront/internal/cart"
	"tailoringStorefront/internal/payment"
	"tailoringStorefront/internal/realtime"
	"tailoringStorefront/models"
)

// Contact identifies the customer placing the order.
type Contact struct {
	UserID       string `json:"userId"`
	CustomerName string `json:"customerName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
}

// Submission is everything needed to create an order.
type Submission struct {
	Contact
	DesignID            string               `json:"designId"`
	DesignTitle         string               `json:"designTitle"`
	BasePrice           decimal.Decimal      `json:"basePrice"`
	IncludeMeasurements bool                 `json:"includeMeasurements"`
	Measurements        models.Measurements  `json:"measurements,omitempty"`
	PaymentMethod       models.PaymentMethod `json:"paymentMethod"`
}

// Validate checks the required fields.
func (s Submission) Validate() error {
	if strings.TrimSpace(s.CustomerName) == "" {
		return apperr.Validation("customerName is required")
	}
	if strings.TrimSpace(s.Email) == "" || !strings.Contains(s.Email, "@") {
		return apperr.Validation("a valid email is required")
	}
	if strings.TrimSpace(s.DesignTitle) == "" && strings.TrimSpace(s.DesignID) == "" {
		return apperr.Validation("designTitle or designId is required")
	}
	if !s.BasePrice.IsPositive() {
		return apperr.Validation("basePrice must be positive")
	}
	switch s.PaymentMethod {
	case models.PaymentMethodOnline, models.PaymentMethodCOD:
	default:
		return apperr.Validation("paymentMethod must be online or cod")
	}
	return nil
}

// Total is the base price plus the measurement surcharge when measurements were included.
func (s Submission) Total(surcharge decimal.Decimal) decimal.Decimal {
	if s.IncludeMeasurements {
		return s.BasePrice.Add(surcharge)
	}
	return s.BasePrice
}

// Result is returned to the storefront after a submission.
type Result struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId,omitempty"`
	URL     string `json:"url"`
}

// OrderCreator persists new orders.
type OrderCreator interface {
	Create(ctx context.Context, o *models.Order) (*models.Order, error)
}

type Service struct {
	orders    OrderCreator
	gateway   payment.Gateway
	notifier  payment.Notifier
	feed      realtime.Publisher
	surcharge decimal.Decimal
	log       *zap.Logger
}

func NewService(orders OrderCreator, gateway payment.Gateway, notifier payment.Notifier, feed realtime.Publisher, surcharge decimal.Decimal, log *zap.Logger) *Service {
	return &Service{orders: orders, gateway: gateway, notifier: notifier, feed: feed, surcharge: surcharge, log: log}
}

// Submit dispatches on the payment method. c, when not nil, is cleared on success.
func (s *Service) Submit(ctx context.Context, sub Submission, origin string, c *cart.Cart) (*Result, error) {
	if sub.PaymentMethod == models.PaymentMethodCOD {
		return s.PlaceCOD(ctx, sub, origin, c)
	}
	return s.StartOnline(ctx, sub, origin, c)
}

// StartOnline records a pending order and opens a hosted checkout for it.
// The returned URL is the provider's payment page.
func (s *Service) StartOnline(ctx context.Context, sub Submission, origin string, c *cart.Cart) (*Result, error) {
	sub.PaymentMethod = models.PaymentMethodOnline
	if err := sub.Validate(); err != nil {
		return nil, err
	}
	if s.gateway == nil {
		return nil, apperr.Precondition("online payment is not available")
	}
	o, err := s.create(ctx, sub, models.PaymentStatusPendingPayment)
	if err != nil {
		return nil, err
	}

	origin = strings.TrimRight(origin, "/")
	session, err := s.gateway.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		OrderID:    o.ID,
		Title:      "Tailoring Service: " + titleOrDefault(o.DesignTitle),
		Email:      o.Email,
		Amount:     o.Amount,
		SuccessURL: fmt.Sprintf("%s/track?session_id={CHECKOUT_SESSION_ID}&order_id=%s", origin, url.QueryEscape(o.ID)),
		CancelURL:  origin + "/order",
	})
	if err != nil {
		s.log.Error("create checkout session", zap.String("order_id", o.ID), zap.Error(err))
		return nil, apperr.Remote("create checkout session", err)
	}
	if c != nil {
		c.Clear()
	}
	s.log.Info("checkout started", zap.String("order_id", o.ID), zap.String("session_id", session.ID))
	return &Result{Success: true, OrderID: o.ID, URL: session.URL}, nil
}

// PlaceCOD records a cash-on-delivery order and sends the confirmation right away.
func (s *Service) PlaceCOD(ctx context.Context, sub Submission, origin string, c *cart.Cart) (*Result, error) {
	if sub.PaymentMethod != models.PaymentMethodCOD {
		return nil, apperr.Validation("paymentMethod must be cod")
	}
	if err := sub.Validate(); err != nil {
		return nil, err
	}
	o, err := s.create(ctx, sub, models.PaymentStatusPendingCOD)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.OrderConfirmed(o)
	}
	if c != nil {
		c.Clear()
	}
	s.log.Info("cod order placed", zap.String("order_id", o.ID))
	return &Result{
		Success: true,
		OrderID: o.ID,
		URL:     strings.TrimRight(origin, "/") + "/track?order_id=" + url.QueryEscape(o.ID),
	}, nil
}

func (s *Service) create(ctx context.Context, sub Submission, ps models.PaymentStatus) (*models.Order, error) {
	var m models.Measurements
	if sub.IncludeMeasurements && len(sub.Measurements) > 0 {
		m = sub.Measurements
	}
	o, err := s.orders.Create(ctx, &models.Order{
		UserID:         sub.UserID,
		CustomerName:   strings.TrimSpace(sub.CustomerName),
		Email:          strings.TrimSpace(sub.Email),
		Phone:          strings.TrimSpace(sub.Phone),
		Address:        strings.TrimSpace(sub.Address),
		DesignID:       sub.DesignID,
		DesignTitle:    strings.TrimSpace(sub.DesignTitle),
		Amount:         sub.Total(s.surcharge),
		Status:         models.OrderStatusPending,
		PaymentStatus:  ps,
		PaymentMethod:  sub.PaymentMethod,
		DeliveryStatus: models.DeliveryStatusPending,
		Measurements:   m,
	})
	if err != nil {
		s.log.Error("create order", zap.Error(err))
		return nil, apperr.Remote("create order", err)
	}
	realtime.Announce(ctx, s.feed, s.log, o.ID, realtime.KindCreated)
	return o, nil
}

func titleOrDefault(t string) string {
	if t == "" {
		return "Custom Order"
	}
	return t
}
