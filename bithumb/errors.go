package bithumb

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/bithumb/api"
)

var (
	// ErrMissingField reports a payload key that the endpoint contract says is always present.
	ErrMissingField = errors.New("missing field")
	// ErrFieldType reports a payload value of the wrong JSON type or an unparsable number.
	ErrFieldType = errors.New("unexpected field type")

	ErrAllCurrency = errors.New("ALL is not a single currency; use GetAllPrices")
	ErrInterval    = errors.New("unsupported candlestick interval")
	ErrSide        = errors.New("side must be bid or ask")
	ErrPrice       = errors.New("price must be a finite positive number")
)

// StatusError is returned whenever a response envelope carries a status
// other than "0000". Raw holds the full response body for diagnostics.
type StatusError struct {
	Status  string
	Message string
	Raw     []byte
}

func newStatusError(resp *api.Response) *StatusError {
	return &StatusError{
		Status:  resp.Status,
		Message: resp.Message,
		Raw:     resp.Raw,
	}
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("wrong status %s: %s", e.Status, e.Raw)
	}
	return fmt.Sprintf("wrong status %s: %s", e.Status, e.Message)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, status string) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == status
}

// FieldError describes a payload that did not match the endpoint contract.
type FieldError struct {
	Field string
	Value any
	Err   error
}

func (e *FieldError) Error() string {
	if errors.Is(e.Err, ErrMissingField) {
		return fmt.Sprintf("field %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("field %q (%T %v): %v", e.Field, e.Value, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }
