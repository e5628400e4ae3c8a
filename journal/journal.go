// Package journal keeps a local record of order events accepted by the
// exchange and exports candle series for offline analysis.
package journal

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/bithumb/bithumb"
	"github.com/rustyeddy/bithumb/pkg/id"
)

// Entry is one journaled order event.
type Entry struct {
	ID              string
	Time            time.Time
	Kind            bithumb.OrderKind
	Side            bithumb.Side
	OrderCurrency   string
	PaymentCurrency string
	OrderID         string
	Price           decimal.Decimal
	Units           decimal.Decimal
}

// Order returns the descriptor the entry refers to.
func (e Entry) Order() bithumb.OrderDescriptor {
	return bithumb.OrderDescriptor{
		Side:            e.Side,
		OrderCurrency:   e.OrderCurrency,
		OrderID:         e.OrderID,
		PaymentCurrency: e.PaymentCurrency,
	}
}

// FromEvent converts a client order event into an entry with a fresh id.
func FromEvent(ev bithumb.OrderEvent) Entry {
	t := ev.Time
	if t.IsZero() {
		t = time.Now()
	}
	return Entry{
		ID:              id.At(t),
		Time:            t.UTC(),
		Kind:            ev.Kind,
		Side:            ev.Order.Side,
		OrderCurrency:   ev.Order.OrderCurrency,
		PaymentCurrency: ev.Order.PaymentCurrency,
		OrderID:         ev.Order.OrderID,
		Price:           ev.Price,
		Units:           ev.Units,
	}
}

type Journal interface {
	Record(Entry) error
	Close() error
}
