package bithumb

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// All is the sentinel currency meaning every listed market.
const All = "ALL"

// Side of an order.
type Side string

const (
	Bid Side = "bid" // buy
	Ask Side = "ask" // sell
)

// ParseSide accepts bid/ask and the buy/sell aliases.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bid", "buy":
		return Bid, nil
	case "ask", "sell":
		return Ask, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrSide, s)
	}
}

func (s Side) valid() bool { return s == Bid || s == Ask }

// OrderDescriptor references an order held by the exchange. It is produced
// by limit placement and consumed by the status, detail and cancel calls.
type OrderDescriptor struct {
	Side            Side
	OrderCurrency   string
	OrderID         string
	PaymentCurrency string
}

func (o OrderDescriptor) String() string {
	return fmt.Sprintf("%s %s/%s #%s", o.Side, o.OrderCurrency, o.PaymentCurrency, o.OrderID)
}

// Ticker is the 24h snapshot of one market.
type Ticker struct {
	Opening decimal.Decimal // opening_price
	Closing decimal.Decimal // closing_price
	High    decimal.Decimal // max_price
	Low     decimal.Decimal // min_price
	Average decimal.Decimal // average_price, zero when the API omits it
	Volume  decimal.Decimal // units_traded

	PrevClosing        decimal.Decimal // prev_closing_price
	TradeValue         decimal.Decimal // acc_trade_value
	Volume24H          decimal.Decimal // units_traded_24H
	TradeValue24H      decimal.Decimal // acc_trade_value_24H
	Fluctuation24H     decimal.Decimal // fluctate_24H
	FluctuationRate24H decimal.Decimal // fluctate_rate_24H
}

func parseTicker(m map[string]any) (Ticker, error) {
	var (
		t   Ticker
		err error
	)
	required := []struct {
		key string
		dst *decimal.Decimal
	}{
		{"opening_price", &t.Opening},
		{"closing_price", &t.Closing},
		{"max_price", &t.High},
		{"min_price", &t.Low},
		{"units_traded", &t.Volume},
	}
	for _, f := range required {
		if *f.dst, err = decimalField(m, f.key); err != nil {
			return Ticker{}, err
		}
	}

	optional := []struct {
		key string
		dst *decimal.Decimal
	}{
		{"average_price", &t.Average},
		{"prev_closing_price", &t.PrevClosing},
		{"acc_trade_value", &t.TradeValue},
		{"units_traded_24H", &t.Volume24H},
		{"acc_trade_value_24H", &t.TradeValue24H},
		{"fluctate_24H", &t.Fluctuation24H},
		{"fluctate_rate_24H", &t.FluctuationRate24H},
	}
	for _, f := range optional {
		if *f.dst, err = optDecimalField(m, f.key); err != nil {
			return Ticker{}, err
		}
	}
	return t, nil
}

// MarketDetail is the (low, high, average, volume) summary of a market.
type MarketDetail struct {
	Low     float64
	High    float64
	Average float64
	Volume  float64
}

// Balance holds the coin and KRW positions of an account. The KRW pair is
// always reported, whatever the queried coin.
type Balance struct {
	Total    float64 // total_<coin>
	InUse    float64 // in_use_<coin>
	TotalKRW float64 // total_krw
	InUseKRW float64 // in_use_krw
}

// Level is one price level of an order book.
type Level struct {
	Price    decimal.Decimal
	Quantity decimal.Decimal
}

// OrderBook is a typed view of a single-market depth payload.
type OrderBook struct {
	Timestamp       time.Time
	OrderCurrency   string
	PaymentCurrency string
	Bids            []Level
	Asks            []Level
}

// OrderDetail is one fill record of an order.
type OrderDetail struct {
	TransactionDate string  `mapstructure:"transaction_date"`
	Type            string  `mapstructure:"type"`
	OrderCurrency   string  `mapstructure:"order_currency"`
	PaymentCurrency string  `mapstructure:"payment_currency"`
	UnitsTraded     float64 `mapstructure:"units_traded"`
	Price           float64 `mapstructure:"price"`
	Fee             float64 `mapstructure:"fee"`
	FeeCurrency     string  `mapstructure:"fee_currency"`
	Total           float64 `mapstructure:"total"`

	// Raw is the record as returned, including keys not mapped above.
	Raw map[string]any `mapstructure:"-"`
}

// OrderKind tells the journal what happened to an order.
type OrderKind string

const (
	KindLimit  OrderKind = "limit"
	KindMarket OrderKind = "market"
	KindCancel OrderKind = "cancel"
)

// OrderEvent is passed to hooks registered with Private.OnOrder after the
// exchange accepted a placement or cancellation.
type OrderEvent struct {
	Kind  OrderKind
	Order OrderDescriptor
	Price decimal.Decimal // zero for market orders and cancels
	Units decimal.Decimal // quantized units; zero for cancels
	Time  time.Time
}
