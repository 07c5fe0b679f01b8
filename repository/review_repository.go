package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tailoringStorefront/models"
)

// ReviewRepository stores customer reviews. Reviews are append-only.
type ReviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create appends a review and returns the stored record.
func (r *ReviewRepository) Create(ctx context.Context, rv *models.Review) (*models.Review, error) {
	if rv == nil {
		return nil, errors.New("review is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `INSERT INTO reviews (name, rating, comment, image) VALUES (?,?,?,?)`,
		rv.Name, rv.Rating, rv.Comment, nullString(rv.Image))
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	var out models.Review
	var image sql.NullString
	err = r.db.QueryRowContext(ctx, `SELECT id, name, rating, comment, image, created_at FROM reviews WHERE id = ?`, id).
		Scan(&out.ID, &out.Name, &out.Rating, &out.Comment, &image, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("read back review %d: %w", id, err)
	}
	out.Image = image.String
	return &out, nil
}

// List returns reviews newest first.
func (r *ReviewRepository) List(ctx context.Context, limit int) ([]models.Review, error) {
	if limit <= 0 || limit > 200 {
		limit = 200
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, rating, comment, image, created_at FROM reviews ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Review
	for rows.Next() {
		var rv models.Review
		var image sql.NullString
		if err := rows.Scan(&rv.ID, &rv.Name, &rv.Rating, &rv.Comment, &image, &rv.CreatedAt); err != nil {
			return nil, err
		}
		rv.Image = image.String
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
