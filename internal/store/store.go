// Package store is the access layer over the persistent tables. Every
// lookup and mutation is scoped to the owning user: a row that does not
// exist and a row owned by someone else are indistinguishable to callers,
// both surface ErrNotFound.
package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound covers both "does not exist" and "not yours".
	ErrNotFound = errors.New("not found")
	// ErrConflict covers duplicate names and deletes blocked by dependents.
	ErrConflict = errors.New("conflict")
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// isUniqueViolation recognizes unique-index errors from both drivers. The
// index is the source of truth for name uniqueness; the pre-checks in this
// package only provide the friendlier fast path.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

func asStoreErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isUniqueViolation(err):
		return ErrConflict
	default:
		return err
	}
}
