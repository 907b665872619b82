package repository

import (
	"errors"
	"fmt"

	"pharmacare/internal/domain"

	"github.com/lib/pq"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
)

// wrapStoreError classifies a driver error. Constraint violations become
// domain errors whose text carries no constraint or table names, since it
// reaches API clients. Everything else is reported as the store being
// unavailable.
func wrapStoreError(action string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return fmt.Errorf("%w: could not %s", domain.ErrConflict, action)
		case pqForeignKeyViolation:
			return fmt.Errorf("%w: could not %s: referenced record does not exist", domain.ErrInvalidInput, action)
		case pqCheckViolation:
			return fmt.Errorf("%w: could not %s: value out of range", domain.ErrInvalidInput, action)
		}
	}
	return fmt.Errorf("%w: could not %s: %w", domain.ErrStoreUnavailable, action, err)
}
