// Package adminv1 defines tailoring.admin.v1.AdminService, the shop admin console.
package adminv1

import (
	commonv1 "tailoringStorefront/api/common/v1"
)

type GetOrdersRequest struct {
	StatusFilter         []string `json:"status_filter,omitempty"`
	DeliveryStatusFilter []string `json:"delivery_status_filter,omitempty"`
	AssignedTo           *int64   `json:"assigned_to,omitempty"`
	PageSize             int32    `json:"page_size,omitempty"`
	PageToken            string   `json:"page_token,omitempty"`
}

func (x *GetOrdersRequest) GetPageSize() int32 {
	if x != nil {
		return x.PageSize
	}
	return 0
}

func (x *GetOrdersRequest) GetPageToken() string {
	if x != nil {
		return x.PageToken
	}
	return ""
}

type GetOrdersResponse struct {
	Orders        []*commonv1.Order `json:"orders"`
	NextPageToken string            `json:"next_page_token,omitempty"`
}

type UpdateOrderStatusRequest struct {
	OrderId string `json:"order_id"`
	Status  string `json:"status"`
}

type UpdateOrderStatusResponse struct {
	Order *commonv1.Order `json:"order"`
}

type AssignDriverRequest struct {
	OrderId  string `json:"order_id"`
	DriverId int64  `json:"driver_id"`
}

type AssignDriverResponse struct {
	Order *commonv1.Order `json:"order"`
}

type RankDriversRequest struct{}

// RankedDriver is an active driver with the distance to the shop, when known.
type RankedDriver struct {
	Driver     *commonv1.Driver `json:"driver"`
	DistanceKm *float64         `json:"distance_km,omitempty"`
}

type RankDriversResponse struct {
	Origin  *commonv1.Location `json:"origin"`
	Drivers []*RankedDriver    `json:"drivers"`
}

type CreateDriverRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

type CreateDriverResponse struct {
	Driver *commonv1.Driver `json:"driver"`
}

type GetDriversRequest struct {
	Status               *string `json:"status,omitempty"`
	NameOrNumberContains *string `json:"name_or_number_contains,omitempty"`
	PageSize             int32   `json:"page_size,omitempty"`
	PageToken            string  `json:"page_token,omitempty"`
}

func (x *GetDriversRequest) GetPageSize() int32 {
	if x != nil {
		return x.PageSize
	}
	return 0
}

func (x *GetDriversRequest) GetPageToken() string {
	if x != nil {
		return x.PageToken
	}
	return ""
}

type GetDriversResponse struct {
	Drivers       []*commonv1.Driver `json:"drivers"`
	NextPageToken string             `json:"next_page_token,omitempty"`
}

type UpdateDriverStatusRequest struct {
	DriverId int64  `json:"driver_id"`
	Status   string `json:"status"`
}

type UpdateDriverStatusResponse struct {
	Driver *commonv1.Driver `json:"driver"`
}

type GetStatsRequest struct{}

type GetStatsResponse struct {
	TotalOrders      int64 `json:"total_orders"`
	PendingDelivery  int64 `json:"pending_delivery"`
	ActiveDeliveries int64 `json:"active_deliveries"`
	TotalDrivers     int64 `json:"total_drivers"`
}

// DeliveryMarker is one order on the live map.
type DeliveryMarker struct {
	OrderId         string             `json:"order_id"`
	CustomerName    string             `json:"customer_name"`
	Address         string             `json:"address,omitempty"`
	DeliveryStatus  string             `json:"delivery_status"`
	Location        *commonv1.Location `json:"location"`
	DriverId        *int64             `json:"driver_id,omitempty"`
	DriverName      string             `json:"driver_name,omitempty"`
	PersonnelNumber string             `json:"personnel_number,omitempty"`
}

type GetDeliveryLocationsRequest struct{}

type GetDeliveryLocationsResponse struct {
	Markers []*DeliveryMarker `json:"markers"`
}

type WatchDeliveryLocationsRequest struct{}
