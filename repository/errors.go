package repository

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrConflict is returned by conditional updates whose WHERE clause matched no row
	// because the record changed state concurrently.
	ErrConflict = errors.New("record changed concurrently")
	// ErrDuplicate is returned when a unique constraint rejects an insert.
	ErrDuplicate = errors.New("duplicate record")
)

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique || se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
