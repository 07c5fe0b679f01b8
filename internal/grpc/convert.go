package grpcserver

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	commonv1 "tailoringStorefront/api/common/v1"
	"tailoringStorefront/models"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	cursorSeparator = "|"
)

func pageSize(n int32) int {
	size := int(n)
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return size
}

// encodeCursor builds an opaque next_page_token from the created_at and id of the last row.
func encodeCursor(createdAt, id string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(createdAt + cursorSeparator + id))
}

// decodeCursor parses a page_token produced by encodeCursor.
func decodeCursor(token string) (createdAt, id string, err error) {
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", "", fmt.Errorf("base64: %w", err)
	}
	parts := strings.SplitN(string(b), cursorSeparator, 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid cursor format")
	}
	return parts[0], parts[1], nil
}

func toProtoOrder(o *models.Order) *commonv1.Order {
	if o == nil {
		return nil
	}
	out := &commonv1.Order{
		Id:             o.ID,
		CustomerName:   o.CustomerName,
		Email:          o.Email,
		Phone:          o.Phone,
		Address:        o.Address,
		DesignId:       o.DesignID,
		DesignTitle:    o.DesignTitle,
		Amount:         o.Amount.StringFixed(2),
		Status:         string(o.Status),
		PaymentStatus:  string(o.PaymentStatus),
		PaymentMethod:  string(o.PaymentMethod),
		DeliveryStatus: string(o.DeliveryStatus),
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	if o.AssignedTo != nil {
		v := *o.AssignedTo
		out.AssignedTo = &v
	}
	if len(o.Measurements) > 0 {
		out.Measurements = make(map[string]string, len(o.Measurements))
		for k, v := range o.Measurements {
			out.Measurements[k] = v
		}
	}
	if o.DeliveryLocation != nil {
		out.DeliveryLocation = toProtoLocation(*o.DeliveryLocation)
	}
	return out
}

func toProtoOrders(list []models.Order) []*commonv1.Order {
	out := make([]*commonv1.Order, 0, len(list))
	for i := range list {
		out = append(out, toProtoOrder(&list[i]))
	}
	return out
}

func toProtoLocation(l models.DeliveryLocation) *commonv1.Location {
	out := &commonv1.Location{Lat: l.Lat, Lng: l.Lng}
	if !l.UpdatedAt.IsZero() {
		out.UpdatedAt = l.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return out
}

func toProtoDriver(d *models.Driver) *commonv1.Driver {
	if d == nil {
		return nil
	}
	out := &commonv1.Driver{
		Id:              d.ID,
		Name:            d.Name,
		PersonnelNumber: d.PersonnelNumber,
		Phone:           d.Phone,
		Status:          string(d.Status),
		CreatedAt:       d.CreatedAt,
	}
	if d.HasLocation() {
		lat, lng := *d.Lat, *d.Lng
		out.Lat, out.Lng = &lat, &lng
	}
	return out
}
