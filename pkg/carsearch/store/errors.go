package store

import (
	"database/sql"
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a query matches no rows.
	ErrNotFound = errors.New("store: record not found")

	// ErrDuplicate is returned on unique constraint violations.
	ErrDuplicate = errors.New("store: duplicate key")
)

// mapError converts driver errors into the package's sentinel errors so
// callers never have to inspect driver-specific types.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrDuplicate
	}
	return err
}
