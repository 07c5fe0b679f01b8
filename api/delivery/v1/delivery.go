// Package deliveryv1 defines tailoring.delivery.v1.DeliveryService, the delivery personnel console.
package deliveryv1

import (
	commonv1 "tailoringStorefront/api/common/v1"
)

type GetProfileRequest struct{}

type GetProfileResponse struct {
	Driver *commonv1.Driver `json:"driver"`
}

type GetAssignedOrdersRequest struct{}

type GetAssignedOrdersResponse struct {
	Orders []*commonv1.Order `json:"orders"`
}

type UpdateDeliveryStatusRequest struct {
	OrderId        string `json:"order_id"`
	DeliveryStatus string `json:"delivery_status"`
	// CashCollected confirms payment was received when delivering a cash-on-delivery order.
	CashCollected bool `json:"cash_collected,omitempty"`
}

type UpdateDeliveryStatusResponse struct {
	Order *commonv1.Order `json:"order"`
}

type SaveMeasurementsRequest struct {
	OrderId      string            `json:"order_id"`
	Measurements map[string]string `json:"measurements"`
}

type SaveMeasurementsResponse struct {
	Order *commonv1.Order `json:"order"`
}

// UpdateLocationRequest reports the caller's position. With OrderId set the position is also
// recorded on that order.
type UpdateLocationRequest struct {
	OrderId string  `json:"order_id,omitempty"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

type UpdateLocationResponse struct {
	Driver *commonv1.Driver `json:"driver"`
	Order  *commonv1.Order  `json:"order,omitempty"`
}
