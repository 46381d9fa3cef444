package postgres

import (
	"errors"
	"fmt"
	"parcels/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

// classify tags store failures with the domain error the caller can act on.
// Unknown errors are returned as is.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "23505", "23503", "23514", "23502": // unique, foreign key, check, not null
		return fmt.Errorf("%w: %w", domain.ErrIntegrity, err)
	case "55P03", "40001", "40P01": // lock timeout, serialization failure, deadlock
		return fmt.Errorf("%w: %w", domain.ErrConcurrency, err)
	}
	return err
}
