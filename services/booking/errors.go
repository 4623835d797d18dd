package booking

import (
	"errors"
	"fmt"
)

// Error codes for the booking transaction, mapped to HTTP statuses at the
// handler layer.
const (
	CodeNotFound            = "notFound"
	CodeConflict            = "conflict"
	CodeInvalidArgument     = "invalidArgument"
	CodeUpstreamUnavailable = "upstreamUnavailable"
)

// BookingError carries a stable code alongside a human-readable message.
type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewNotFoundError(format string, args ...any) error {
	return &BookingError{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewConflictError(format string, args ...any) error {
	return &BookingError{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

func NewInvalidArgumentError(format string, args ...any) error {
	return &BookingError{Code: CodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

func NewUpstreamError(format string, args ...any) error {
	return &BookingError{Code: CodeUpstreamUnavailable, Message: fmt.Sprintf(format, args...)}
}

// ErrorCode extracts the booking error code, or "" for foreign errors.
func ErrorCode(err error) string {
	var be *BookingError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
