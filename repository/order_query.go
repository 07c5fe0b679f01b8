package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tailoringStorefront/models"
)

// ListOrdersAdminParams represents filters and pagination for ListAdmin (admin).
type ListOrdersAdminParams struct {
	Statuses         []models.OrderStatus
	DeliveryStatuses []models.DeliveryStatus
	AssignedTo       *int64
	PageSize         int
	AfterCreatedAt   string // keyset cursor: created_at of the last row seen
	AfterID          string // keyset cursor: id of the last row seen
}

// ListAdmin returns orders matching filters ordered by created_at desc, id desc with keyset pagination.
func (r *OrderRepository) ListAdmin(ctx context.Context, p ListOrdersAdminParams) ([]models.Order, error) {
	if p.PageSize <= 0 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var where []string
	var args []any

	if len(p.Statuses) > 0 {
		placeholders := make([]string, len(p.Statuses))
		for i, s := range p.Statuses {
			placeholders[i] = "?"
			args = append(args, string(s))
		}
		where = append(where, "status IN ("+strings.Join(placeholders, ",")+")")
	}
	if len(p.DeliveryStatuses) > 0 {
		placeholders := make([]string, len(p.DeliveryStatuses))
		for i, s := range p.DeliveryStatuses {
			placeholders[i] = "?"
			args = append(args, string(s))
		}
		where = append(where, "delivery_status IN ("+strings.Join(placeholders, ",")+")")
	}
	if p.AssignedTo != nil {
		where = append(where, "assigned_to = ?")
		args = append(args, *p.AssignedTo)
	}
	if p.AfterCreatedAt != "" && p.AfterID != "" {
		where = append(where, "(created_at < ? OR (created_at = ? AND id < ?))")
		args = append(args, p.AfterCreatedAt, p.AfterCreatedAt, p.AfterID)
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, p.PageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderRows(rows)
}

// ListByDriver returns the driver's orders that are not yet delivered, newest first.
func (r *OrderRepository) ListByDriver(ctx context.Context, driverID int64) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `SELECT `+orderColumns+` FROM orders
WHERE assigned_to = ? AND delivery_status <> ?
ORDER BY created_at DESC, id DESC`, driverID, string(models.DeliveryStatusDelivered))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrderRows(rows)
}

// DeliveryLocationRow is one marker of the live delivery map.
type DeliveryLocationRow struct {
	OrderID         string                  `json:"order_id"`
	CustomerName    string                  `json:"customer_name"`
	Address         string                  `json:"address"`
	DeliveryStatus  models.DeliveryStatus   `json:"delivery_status"`
	Location        models.DeliveryLocation `json:"location"`
	DriverID        *int64                  `json:"driver_id,omitempty"`
	DriverName      string                  `json:"driver_name,omitempty"`
	PersonnelNumber string                  `json:"personnel_number,omitempty"`
}

// ListDeliveryLocations returns orders in transit that have reported a position, with their driver.
func (r *OrderRepository) ListDeliveryLocations(ctx context.Context) ([]DeliveryLocationRow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `
SELECT o.id, o.customer_name, o.address, o.delivery_status, o.delivery_location, o.assigned_to, d.name, d.personnel_number
FROM orders o
LEFT JOIN delivery_personnel d ON d.id = o.assigned_to
WHERE o.delivery_status IN (?, ?)
  AND o.delivery_location IS NOT NULL
ORDER BY o.created_at DESC, o.id DESC`,
		string(models.DeliveryStatusAssigned), string(models.DeliveryStatusOutForDelivery))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DeliveryLocationRow
	for rows.Next() {
		var row DeliveryLocationRow
		var status, location string
		var driverID sql.NullInt64
		var driverName, number sql.NullString
		if err := rows.Scan(&row.OrderID, &row.CustomerName, &row.Address, &status, &location, &driverID, &driverName, &number); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(location), &row.Location); err != nil {
			return nil, fmt.Errorf("order %s delivery location: %w", row.OrderID, err)
		}
		row.DeliveryStatus = models.DeliveryStatus(status)
		if driverID.Valid {
			v := driverID.Int64
			row.DriverID = &v
		}
		row.DriverName = driverName.String
		row.PersonnelNumber = number.String
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DashboardStats are the admin dashboard counters.
type DashboardStats struct {
	TotalOrders      int64 `json:"total_orders"`
	PendingDelivery  int64 `json:"pending_delivery"`
	ActiveDeliveries int64 `json:"active_deliveries"`
	TotalDrivers     int64 `json:"total_drivers"`
}

// Stats computes the dashboard counters in a single query.
func (r *OrderRepository) Stats(ctx context.Context) (*DashboardStats, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var s DashboardStats
	err := r.db.QueryRowContext(ctx, `
SELECT
  (SELECT COUNT(*) FROM orders),
  (SELECT COUNT(*) FROM orders WHERE delivery_status = ?),
  (SELECT COUNT(*) FROM orders WHERE delivery_status IN (?, ?)),
  (SELECT COUNT(*) FROM delivery_personnel)`,
		string(models.DeliveryStatusPending),
		string(models.DeliveryStatusAssigned), string(models.DeliveryStatusOutForDelivery)).
		Scan(&s.TotalOrders, &s.PendingDelivery, &s.ActiveDeliveries, &s.TotalDrivers)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// scanOrderRows is a helper to scan rows into Order objects.
func scanOrderRows(rows *sql.Rows) ([]models.Order, error) {
	var out []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
