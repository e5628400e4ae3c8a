package bithumb

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/bithumb/api"
)

// Normalize is the single success/failure control point. A "0000" status
// hands the envelope to extract; anything else becomes a *StatusError.
func Normalize[T any](resp *api.Response, extract func(*api.Response) (T, error)) (T, error) {
	var zero T
	if resp == nil {
		return zero, errors.New("nil response")
	}
	if resp.Status != api.StatusOK {
		return zero, newStatusError(resp)
	}
	return extract(resp)
}

// normalize chains a transport call into Normalize.
func normalize[T any](resp *api.Response, err error, extract func(*api.Response) (T, error)) (T, error) {
	if err != nil {
		var zero T
		return zero, err
	}
	return Normalize(resp, extract)
}

func object(field string, v any) (map[string]any, error) {
	if v == nil {
		return nil, &FieldError{Field: field, Err: ErrMissingField}
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &FieldError{Field: field, Value: v, Err: ErrFieldType}
	}
	return m, nil
}

// firstRecord unwraps payloads that put a single record inside a
// one-element list. A bare object is accepted as the record itself.
func firstRecord(v any) (map[string]any, error) {
	switch t := v.(type) {
	case []any:
		if len(t) == 0 {
			return nil, &FieldError{Field: "data[0]", Err: ErrMissingField}
		}
		return object("data[0]", t[0])
	default:
		return object("data", v)
	}
}

func lookup(m map[string]any, key string) (any, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, &FieldError{Field: key, Err: ErrMissingField}
	}
	return v, nil
}

func decimalField(m map[string]any, key string) (decimal.Decimal, error) {
	v, err := lookup(m, key)
	if err != nil {
		return decimal.Zero, err
	}
	return toDecimal(key, v)
}

// optDecimalField returns zero for an absent key but still rejects a
// present value that does not parse.
func optDecimalField(m map[string]any, key string) (decimal.Decimal, error) {
	if v, ok := m[key]; ok && v != nil {
		return toDecimal(key, v)
	}
	return decimal.Zero, nil
}

func floatField(m map[string]any, key string) (float64, error) {
	v, err := lookup(m, key)
	if err != nil {
		return 0, err
	}
	return toFloat(key, v)
}

func stringField(m map[string]any, key string) (string, error) {
	v, err := lookup(m, key)
	if err != nil {
		return "", err
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	default:
		return "", &FieldError{Field: key, Value: v, Err: ErrFieldType}
	}
}

func toDecimal(field string, v any) (decimal.Decimal, error) {
	var (
		d   decimal.Decimal
		err error
	)
	switch t := v.(type) {
	case string:
		d, err = decimal.NewFromString(t)
	case json.Number:
		d, err = decimal.NewFromString(t.String())
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			err = errors.New("not finite")
		} else {
			d = decimal.NewFromFloat(t)
		}
	default:
		return decimal.Zero, &FieldError{Field: field, Value: v, Err: ErrFieldType}
	}
	if err != nil {
		return decimal.Zero, &FieldError{Field: field, Value: v, Err: fmt.Errorf("%w: %v", ErrFieldType, err)}
	}
	return d, nil
}

func toFloat(field string, v any) (float64, error) {
	var (
		f   float64
		err error
	)
	switch t := v.(type) {
	case string:
		f, err = strconv.ParseFloat(t, 64)
	case json.Number:
		f, err = t.Float64()
	case float64:
		f = t
	default:
		return 0, &FieldError{Field: field, Value: v, Err: ErrFieldType}
	}
	if err != nil {
		return 0, &FieldError{Field: field, Value: v, Err: fmt.Errorf("%w: %v", ErrFieldType, err)}
	}
	return f, nil
}

func toInt64(field string, v any) (int64, error) {
	var (
		n   int64
		err error
	)
	switch t := v.(type) {
	case json.Number:
		n, err = t.Int64()
	case string:
		n, err = strconv.ParseInt(t, 10, 64)
	case float64:
		n = int64(t)
	default:
		return 0, &FieldError{Field: field, Value: v, Err: ErrFieldType}
	}
	if err != nil {
		return 0, &FieldError{Field: field, Value: v, Err: fmt.Errorf("%w: %v", ErrFieldType, err)}
	}
	return n, nil
}
