package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tailoringStorefront/models"
)

// nowExpr renders the current time in the layout of created_at/updated_at.
const nowExpr = `strftime('%Y-%m-%d %H:%M:%f', 'now')`

const orderColumns = `id, user_id, customer_name, email, phone, address, design_id, design_title, amount,
status, payment_status, payment_method, payment_session_id, delivery_status, assigned_to,
measurements, delivery_location, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// OrderRepository is the core repository for Order entities.
// It handles basic CRUD operations and the guarded state writes.
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts a new order and returns the stored row. A UUID is generated when ID is empty;
// Status and DeliveryStatus default to pending.
func (r *OrderRepository) Create(ctx context.Context, o *models.Order) (*models.Order, error) {
	if o == nil {
		return nil, errors.New("order is nil")
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = models.OrderStatusPending
	}
	if o.DeliveryStatus == "" {
		o.DeliveryStatus = models.DeliveryStatusPending
	}
	measurements, err := marshalNullable(o.Measurements, len(o.Measurements) > 0)
	if err != nil {
		return nil, fmt.Errorf("encode measurements: %w", err)
	}
	location, err := marshalNullable(o.DeliveryLocation, o.DeliveryLocation != nil)
	if err != nil {
		return nil, fmt.Errorf("encode delivery location: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err = r.db.ExecContext(ctx, `INSERT INTO orders (id, user_id, customer_name, email, phone, address, design_id, design_title, amount,
status, payment_status, payment_method, payment_session_id, delivery_status, assigned_to, measurements, delivery_location)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		o.ID, o.UserID, o.CustomerName, o.Email, o.Phone, o.Address, o.DesignID, o.DesignTitle, o.Amount.String(),
		string(o.Status), string(o.PaymentStatus), string(o.PaymentMethod), nullString(o.PaymentSessionID),
		string(o.DeliveryStatus), o.AssignedTo, measurements, location)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	o2, err := r.GetByID(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	if o2 == nil {
		return nil, fmt.Errorf("created order not found: id=%s", o.ID)
	}
	return o2, nil
}

// GetByID fetches an order by its ID. Returns nil, nil when absent.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	o, err := scanOrder(r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return o, err
}

// UpdateStatus writes the production status unconditionally. Returns sql.ErrNoRows for an unknown id.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET status = ?, updated_at = `+nowExpr+` WHERE id = ?`, string(status), id)
	return requireRow(res, err, sql.ErrNoRows)
}

// AssignDriver hands the order to a driver and moves delivery to assigned.
// The write only applies while the order is ready for delivery and not yet picked up;
// otherwise ErrConflict is returned.
func (r *OrderRepository) AssignDriver(ctx context.Context, id string, driverID int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `
UPDATE orders SET assigned_to = ?, delivery_status = ?, updated_at = `+nowExpr+`
WHERE id = ?
  AND status IN (?, ?)
  AND delivery_status IN (?, ?)`,
		driverID, string(models.DeliveryStatusAssigned), id,
		string(models.OrderStatusReadyForDelivery), string(models.OrderStatusDelivered),
		string(models.DeliveryStatusPending), string(models.DeliveryStatusAssigned))
	return requireRow(res, err, ErrConflict)
}

// TransitionDelivery moves an order assigned to driverID from one delivery status to the next.
// With markPaid the pending cash-on-delivery payment is settled in the same statement.
// ErrConflict is returned when the order is no longer in the expected state.
func (r *OrderRepository) TransitionDelivery(ctx context.Context, id string, driverID int64, from, to models.DeliveryStatus, markPaid bool) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var (
		res sql.Result
		err error
	)
	if markPaid {
		res, err = r.db.ExecContext(ctx, `
UPDATE orders SET delivery_status = ?, payment_status = ?, updated_at = `+nowExpr+`
WHERE id = ? AND assigned_to = ? AND delivery_status = ? AND payment_method = ? AND payment_status = ?`,
			string(to), string(models.PaymentStatusPaid),
			id, driverID, string(from), string(models.PaymentMethodCOD), string(models.PaymentStatusPendingCOD))
	} else {
		res, err = r.db.ExecContext(ctx, `
UPDATE orders SET delivery_status = ?, updated_at = `+nowExpr+`
WHERE id = ? AND assigned_to = ? AND delivery_status = ?`,
			string(to), id, driverID, string(from))
	}
	return requireRow(res, err, ErrConflict)
}

// MarkPaid records a verified online payment. It reports whether this call performed the
// transition; an order that is already paid is left untouched and yields false.
func (r *OrderRepository) MarkPaid(ctx context.Context, id, sessionID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `
UPDATE orders SET payment_status = ?, status = ?, payment_session_id = ?, updated_at = `+nowExpr+`
WHERE id = ? AND payment_status <> ?`,
		string(models.PaymentStatusPaid), string(models.OrderStatusConfirmed), nullString(sessionID),
		id, string(models.PaymentStatusPaid))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// UpdateMeasurements replaces the measurement map of an order.
func (r *OrderRepository) UpdateMeasurements(ctx context.Context, id string, m models.Measurements) error {
	raw, err := marshalNullable(m, len(m) > 0)
	if err != nil {
		return fmt.Errorf("encode measurements: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET measurements = ?, updated_at = `+nowExpr+` WHERE id = ?`, raw, id)
	return requireRow(res, err, sql.ErrNoRows)
}

// UpdateDeliveryLocation overwrites the last known position of an order (last write wins).
func (r *OrderRepository) UpdateDeliveryLocation(ctx context.Context, id string, loc models.DeliveryLocation) error {
	if loc.UpdatedAt.IsZero() {
		loc.UpdatedAt = time.Now().UTC()
	}
	raw, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("encode delivery location: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET delivery_location = ?, updated_at = `+nowExpr+` WHERE id = ?`, string(raw), id)
	return requireRow(res, err, sql.ErrNoRows)
}

func requireRow(res sql.Result, err error, none error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return none
	}
	return nil
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var o models.Order
	var amount, status, payStatus, payMethod, delStatus string
	var sessionID, measurements, location sql.NullString
	var assigned sql.NullInt64
	if err := row.Scan(&o.ID, &o.UserID, &o.CustomerName, &o.Email, &o.Phone, &o.Address, &o.DesignID, &o.DesignTitle, &amount,
		&status, &payStatus, &payMethod, &sessionID, &delStatus, &assigned,
		&measurements, &location, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	if err := o.Amount.Scan(amount); err != nil {
		return nil, fmt.Errorf("order %s amount: %w", o.ID, err)
	}
	o.Status = models.OrderStatus(status)
	o.PaymentStatus = models.PaymentStatus(payStatus)
	o.PaymentMethod = models.PaymentMethod(payMethod)
	o.DeliveryStatus = models.DeliveryStatus(delStatus)
	if sessionID.Valid {
		o.PaymentSessionID = sessionID.String
	}
	if assigned.Valid {
		v := assigned.Int64
		o.AssignedTo = &v
	}
	if measurements.Valid && measurements.String != "" {
		if err := json.Unmarshal([]byte(measurements.String), &o.Measurements); err != nil {
			return nil, fmt.Errorf("order %s measurements: %w", o.ID, err)
		}
	}
	if location.Valid && location.String != "" {
		var loc models.DeliveryLocation
		if err := json.Unmarshal([]byte(location.String), &loc); err != nil {
			return nil, fmt.Errorf("order %s delivery location: %w", o.ID, err)
		}
		o.DeliveryLocation = &loc
	}
	return &o, nil
}

func marshalNullable(v any, present bool) (any, error) {
	if !present {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
