package apierr

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// MapStore maps gorm, Postgres and SQLite failures onto error codes.
func MapStore(op string, err error) error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return Wrap(CodeNotFound, op, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Wrap(CodeConflict, op, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return Wrap(CodeStore, op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505":
			return Wrap(CodeConflict, op, err) // unique_violation
		case "23503":
			return Wrap(CodeValidation, op, err) // foreign_key_violation
		}
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "unique constraint failed"),
		strings.Contains(msg, "duplicate key"):
		return Wrap(CodeConflict, op, err)
	case strings.Contains(msg, "foreign key constraint failed"):
		return Wrap(CodeValidation, op, err)
	default:
		return Wrap(CodeStore, op, err)
	}
}
