package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"tailoringStorefront/models"
)

// DriverRepository persists delivery personnel.
type DriverRepository struct {
	db *sql.DB
}

func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{db: db}
}

const driverColumns = `id, name, personnel_number, phone, password_hash, status, lat, lng, created_at`

// Create inserts a driver. Status defaults to active. A taken personnel number yields ErrDuplicate.
func (r *DriverRepository) Create(ctx context.Context, d *models.Driver) (*models.Driver, error) {
	if d == nil {
		return nil, errors.New("driver is nil")
	}
	if d.Status == "" {
		d.Status = models.DriverStatusActive
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `INSERT INTO delivery_personnel (name, personnel_number, phone, password_hash, status, lat, lng) VALUES (?,?,?,?,?,?,?)`,
		d.Name, d.PersonnelNumber, d.Phone, d.PasswordHash, string(d.Status), d.Lat, d.Lng)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	d2, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d2 == nil {
		return nil, fmt.Errorf("created driver not found: id=%d", id)
	}
	return d2, nil
}

func (r *DriverRepository) GetByID(ctx context.Context, id int64) (*models.Driver, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanDriver(r.db.QueryRowContext(ctx, `SELECT `+driverColumns+` FROM delivery_personnel WHERE id = ?`, id))
}

// GetByPersonnelNumber looks a driver up by the DP-#### number used to sign in.
func (r *DriverRepository) GetByPersonnelNumber(ctx context.Context, number string) (*models.Driver, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanDriver(r.db.QueryRowContext(ctx, `SELECT `+driverColumns+` FROM delivery_personnel WHERE personnel_number = ?`, number))
}

// UpdateStatus sets the availability of a driver. Returns sql.ErrNoRows for an unknown id.
func (r *DriverRepository) UpdateStatus(ctx context.Context, id int64, status models.DriverStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `UPDATE delivery_personnel SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateLocation records the driver's current position.
func (r *DriverRepository) UpdateLocation(ctx context.Context, id int64, lat, lng float64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `UPDATE delivery_personnel SET lat = ?, lng = ? WHERE id = ?`, lat, lng, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListActive returns drivers available for assignment in fetch (id) order.
func (r *DriverRepository) ListActive(ctx context.Context) ([]models.Driver, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `SELECT `+driverColumns+` FROM delivery_personnel WHERE status = ? ORDER BY id ASC`, string(models.DriverStatusActive))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDriverRows(rows)
}

// ListDriversAdminParams contains filters and pagination for admin GetDrivers.
type ListDriversAdminParams struct {
	Status               *models.DriverStatus
	NameOrNumberContains *string
	PageSize             int
	AfterID              int64 // keyset cursor; results have id < AfterID
}

// ListAdmin returns drivers newest-first with optional filters.
func (r *DriverRepository) ListAdmin(ctx context.Context, p ListDriversAdminParams) ([]models.Driver, error) {
	if p.PageSize <= 0 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	where := make([]string, 0, 3)
	args := make([]any, 0, 5)

	if p.Status != nil {
		where = append(where, "status = ?")
		args = append(args, string(*p.Status))
	}
	if p.NameOrNumberContains != nil && strings.TrimSpace(*p.NameOrNumberContains) != "" {
		like := "%" + strings.TrimSpace(*p.NameOrNumberContains) + "%"
		where = append(where, "(name LIKE ? OR personnel_number LIKE ?)")
		args = append(args, like, like)
	}
	if p.AfterID > 0 {
		where = append(where, "id < ?")
		args = append(args, p.AfterID)
	}

	query := "SELECT " + driverColumns + " FROM delivery_personnel"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, p.PageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDriverRows(rows)
}

func scanDriver(row rowScanner) (*models.Driver, error) {
	var d models.Driver
	var status string
	var lat, lng sql.NullFloat64
	if err := row.Scan(&d.ID, &d.Name, &d.PersonnelNumber, &d.Phone, &d.PasswordHash, &status, &lat, &lng, &d.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	d.Status = models.DriverStatus(status)
	if lat.Valid && lng.Valid {
		la, ln := lat.Float64, lng.Float64
		d.Lat, d.Lng = &la, &ln
	}
	return &d, nil
}

func scanDriverRows(rows *sql.Rows) ([]models.Driver, error) {
	var out []models.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
