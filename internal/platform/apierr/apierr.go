package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Code standardizes failure semantics across the store, the HTTP surface and the tracker.
type Code string

const (
	CodeValidation    Code = "validation"
	CodeNotFound      Code = "not_found"
	CodeConflict      Code = "conflict"
	CodeConfiguration Code = "configuration"
	CodeStore         Code = "store"
	CodeTransport     Code = "transport"
	CodeIO            Code = "io"
)

// Error is the canonical error wrapper.
type Error struct {
	Code    Code
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	msg := strings.TrimSpace(e.Message)
	switch {
	case op != "" && msg != "":
		return fmt.Sprintf("%s: %s (%s)", op, msg, e.Code)
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Code)
	case msg != "":
		return fmt.Sprintf("%s (%s)", msg, e.Code)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

func New(code Code, op, message string, cause error) error {
	return &Error{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

// Wrap annotates err with code unless err already carries one.
func Wrap(code Code, op string, err error) error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		return err
	}
	return New(code, op, err.Error(), err)
}

func NotFound(op, format string, args ...any) error {
	return New(CodeNotFound, op, fmt.Sprintf(format, args...), nil)
}

func Validation(op, format string, args ...any) error {
	return New(CodeValidation, op, fmt.Sprintf(format, args...), nil)
}

func Configuration(op, format string, args ...any) error {
	return New(CodeConfiguration, op, fmt.Sprintf(format, args...), nil)
}

func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

func CodeOf(err error) Code {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Code
}

// HTTPStatus maps an error onto the status the HTTP surface answers with.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
