package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"tailoringStorefront/models"
)

// DesignRepository reads the catalog seeded by migration.
type DesignRepository struct {
	db *sql.DB
}

func NewDesignRepository(db *sql.DB) *DesignRepository {
	return &DesignRepository{db: db}
}

func (r *DesignRepository) List(ctx context.Context) ([]models.Design, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, category, image, base_price FROM designs ORDER BY sort_order, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Design
	for rows.Next() {
		d, err := scanDesign(rows)
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

// GetByID returns nil, nil for an unknown design.
func (r *DesignRepository) GetByID(ctx context.Context, id string) (*models.Design, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	d, err := scanDesign(r.db.QueryRowContext(ctx, `SELECT id, title, category, image, base_price FROM designs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return d, err
}

func scanDesign(row rowScanner) (*models.Design, error) {
	var d models.Design
	var price string
	if err := row.Scan(&d.ID, &d.Title, &d.Category, &d.Image, &price); err != nil {
		return nil, err
	}
	if err := d.BasePrice.Scan(price); err != nil {
		return nil, err
	}
	return &d, nil
}
