package api

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
)

// StatusOK is the only status code the exchange uses for success.
const StatusOK = "0000"

// numbers stay json.Number so epoch milliseconds and prices are never
// rounded through float64 before the caller converts them.
var decoder = sonic.Config{UseNumber: true}.Froze()

// Response is the decoded status envelope every endpoint replies with.
type Response struct {
	Status  string
	Message string
	// OrderID is set by the placement endpoints, which return it beside
	// data rather than inside it.
	OrderID string
	// Data is the decoded payload: map[string]any, []any or nil.
	Data any
	// Raw is the response body as received.
	Raw []byte
}

// OK reports whether the envelope carries the success status.
func (r *Response) OK() bool {
	return r != nil && r.Status == StatusOK
}

// DecodeResponse parses a raw body into its status envelope.
func DecodeResponse(body []byte) (*Response, error) {
	var m map[string]any
	if err := decoder.Unmarshal(body, &m); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errors.New("empty response body")
	}

	return &Response{
		Status:  scalar(m["status"]),
		Message: scalar(m["message"]),
		OrderID: scalar(m["order_id"]),
		Data:    m["data"],
		Raw:     body,
	}, nil
}

func scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
