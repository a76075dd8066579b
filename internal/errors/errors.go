package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a chart engine error code.
type ErrorCode string

const (
	ErrInvalidInput         ErrorCode = "INVALID_INPUT"          // 400
	ErrUnsupportedDateRange ErrorCode = "UNSUPPORTED_DATE_RANGE" // 422
	ErrInvariantViolation   ErrorCode = "INVARIANT_VIOLATION"    // 500
	ErrInternal             ErrorCode = "INTERNAL"               // 500
)

// ChartError represents a structured error with code, status, and details.
type ChartError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *ChartError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidInput creates a 400 error for a caller-correctable bad field.
func NewInvalidInput(field, msg string) *ChartError {
	return &ChartError{
		Code:    ErrInvalidInput,
		Status:  400,
		Message: fmt.Sprintf("%s: %s", field, msg),
		Details: map[string]any{"field": field},
	}
}

// NewUnsupportedDateRange creates a 422 error for a date outside the lunar table.
func NewUnsupportedDateRange(date string, minYear, maxYear int) *ChartError {
	return &ChartError{
		Code:    ErrUnsupportedDateRange,
		Status:  422,
		Message: fmt.Sprintf("date %s outside supported range %d-%d", date, minYear, maxYear),
		Details: map[string]any{"date": date, "min_year": minYear, "max_year": maxYear},
	}
}

// NewInvariantViolation creates a 500 error for a lookup that must never miss.
func NewInvariantViolation(msg string) *ChartError {
	return &ChartError{
		Code:    ErrInvariantViolation,
		Status:  500,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *ChartError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &ChartError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Invariant panics with an INVARIANT_VIOLATION error. The engine's tables are
// total over valid input, so a miss is a defect rather than a caller error.
func Invariant(format string, args ...any) {
	panic(NewInvariantViolation(fmt.Sprintf(format, args...)))
}

// As finds the first ChartError in err's chain.
func As(err error) (*ChartError, bool) {
	var cErr *ChartError
	if stderrors.As(err, &cErr) {
		return cErr, true
	}
	return nil, false
}

// Is checks if an error (or anything it wraps) is a ChartError with the given code.
func Is(err error, code ErrorCode) bool {
	cErr, ok := As(err)
	return ok && cErr.Code == code
}

// FromPanic converts a recovered panic value into a ChartError.
// Invariant panics keep their code; anything else becomes INTERNAL.
func FromPanic(v any) *ChartError {
	switch p := v.(type) {
	case *ChartError:
		return p
	case error:
		return NewInternal(p)
	default:
		return NewInternal(fmt.Errorf("%v", p))
	}
}
