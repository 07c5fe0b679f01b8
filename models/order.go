package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the production progress of an order.
type OrderStatus string

const (
	OrderStatusPending          OrderStatus = "pending"
	OrderStatusConfirmed        OrderStatus = "confirmed"
	OrderStatusStitching        OrderStatus = "stitching"
	OrderStatusStitched         OrderStatus = "stitched"
	OrderStatusReadyForDelivery OrderStatus = "ready_for_delivery"
	OrderStatusDelivered        OrderStatus = "delivered"
)

// PaymentStatus tracks whether the order has been paid for.
type PaymentStatus string

const (
	PaymentStatusPendingPayment PaymentStatus = "pending_payment"
	PaymentStatusPendingCOD     PaymentStatus = "pending_cod"
	PaymentStatusPaid           PaymentStatus = "paid"
)

// PaymentMethod is how the customer chose to pay.
type PaymentMethod string

const (
	PaymentMethodOnline PaymentMethod = "online"
	PaymentMethodCOD    PaymentMethod = "cod"
)

// DeliveryStatus tracks the physical handoff of a finished garment.
// It is independent of OrderStatus.
type DeliveryStatus string

const (
	DeliveryStatusPending        DeliveryStatus = "pending"
	DeliveryStatusAssigned       DeliveryStatus = "assigned"
	DeliveryStatusPickedUp       DeliveryStatus = "picked_up"
	DeliveryStatusOutForDelivery DeliveryStatus = "out_for_delivery"
	DeliveryStatusDelivered      DeliveryStatus = "delivered"
)

// Measurements is a free-form key/value map; the keys depend on the garment category.
type Measurements map[string]string

// DeliveryLocation is the last reported position of an order in transit.
type DeliveryLocation struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Order maps to the `orders` table.
type Order struct {
	ID           string          `db:"id" json:"id"`
	UserID       string          `db:"user_id" json:"user_id,omitempty"`
	CustomerName string          `db:"customer_name" json:"customer_name"`
	Email        string          `db:"email" json:"email"`
	Phone        string          `db:"phone" json:"phone,omitempty"`
	Address      string          `db:"address" json:"address,omitempty"`
	DesignID     string          `db:"design_id" json:"design_id,omitempty"`
	DesignTitle  string          `db:"design_title" json:"design_title"`
	Amount       decimal.Decimal `db:"amount" json:"amount"`

	Status           OrderStatus    `db:"status" json:"status"`
	PaymentStatus    PaymentStatus  `db:"payment_status" json:"payment_status"`
	PaymentMethod    PaymentMethod  `db:"payment_method" json:"payment_method"`
	PaymentSessionID string         `db:"payment_session_id" json:"-"`
	DeliveryStatus   DeliveryStatus `db:"delivery_status" json:"delivery_status"`

	// AssignedTo is the driver id; nil until an admin assigns one.
	AssignedTo       *int64            `db:"assigned_to" json:"assigned_to,omitempty"`
	Measurements     Measurements      `db:"measurements" json:"measurements,omitempty"`
	DeliveryLocation *DeliveryLocation `db:"delivery_location" json:"delivery_location,omitempty"`

	CreatedAt string `db:"created_at" json:"created_at"`
	UpdatedAt string `db:"updated_at" json:"updated_at"`
}
