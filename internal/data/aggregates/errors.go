package aggregates

import (
	"errors"
	"strings"

	"github.com/yungbote/redmane-backend/internal/platform/apierr"
)

var (
	// ErrValidation indicates caller input validation failure.
	ErrValidation = errors.New("aggregate validation")
	// ErrConflict indicates a uniqueness or state conflict.
	ErrConflict = errors.New("aggregate conflict")
)

// ValidationError tags an error as validation failure.
func ValidationError(msg string) error {
	return errors.Join(ErrValidation, errors.New(strings.TrimSpace(msg)))
}

// ConflictError tags an error as conflict failure.
func ConflictError(msg string) error {
	return errors.Join(ErrConflict, errors.New(strings.TrimSpace(msg)))
}

// MapError maps aggregate and store failures into coded errors.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var coded *apierr.Error
	if errors.As(err, &coded) {
		return err
	}
	switch {
	case errors.Is(err, ErrValidation):
		return apierr.Wrap(apierr.CodeValidation, op, err)
	case errors.Is(err, ErrConflict):
		return apierr.Wrap(apierr.CodeConflict, op, err)
	}
	return apierr.MapStore(op, err)
}
