package bithumb

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/bithumb/api"
)

// Public exposes the market data endpoints. It holds no state besides the
// transport and needs no credentials.
type Public struct {
	api api.PublicAPI
}

// NewPublic wraps a transport; nil selects a default api.Client.
func NewPublic(p api.PublicAPI) *Public {
	if p == nil {
		p = api.NewClient("", 0)
	}
	return &Public{api: p}
}

func paymentOrDefault(paymentCurrency string) string {
	if paymentCurrency == "" {
		return api.DefaultPaymentCurrency
	}
	return strings.ToUpper(paymentCurrency)
}

// ListTickers returns the codes of every market quoted in paymentCurrency,
// sorted. Scalar metadata such as the snapshot date is not a market.
func (p *Public) ListTickers(ctx context.Context, paymentCurrency string) ([]string, error) {
	resp, err := p.api.Ticker(ctx, All, paymentOrDefault(paymentCurrency))
	return normalize(resp, err, func(r *api.Response) ([]string, error) {
		data, err := object("data", r.Data)
		if err != nil {
			return nil, err
		}
		codes := make([]string, 0, len(data))
		for k, v := range data {
			if _, ok := v.(map[string]any); ok {
				codes = append(codes, k)
			}
		}
		sort.Strings(codes)
		return codes, nil
	})
}

// GetTicker returns the snapshot of one market.
func (p *Public) GetTicker(ctx context.Context, orderCurrency, paymentCurrency string) (Ticker, error) {
	orderCurrency = strings.ToUpper(orderCurrency)
	if orderCurrency == All {
		return Ticker{}, ErrAllCurrency
	}
	resp, err := p.api.Ticker(ctx, orderCurrency, paymentOrDefault(paymentCurrency))
	return normalize(resp, err, func(r *api.Response) (Ticker, error) {
		data, err := object("data", r.Data)
		if err != nil {
			return Ticker{}, err
		}
		return parseTicker(data)
	})
}

// GetPrice returns the last traded (closing) price of one market. The ALL
// sentinel is rejected with ErrAllCurrency; use GetAllPrices for every market.
func (p *Public) GetPrice(ctx context.Context, orderCurrency, paymentCurrency string) (decimal.Decimal, error) {
	orderCurrency = strings.ToUpper(orderCurrency)
	if orderCurrency == All {
		return decimal.Zero, ErrAllCurrency
	}
	resp, err := p.api.Ticker(ctx, orderCurrency, paymentOrDefault(paymentCurrency))
	return normalize(resp, err, func(r *api.Response) (decimal.Decimal, error) {
		data, err := object("data", r.Data)
		if err != nil {
			return decimal.Zero, err
		}
		return decimalField(data, "closing_price")
	})
}

// GetAllPrices returns the snapshot of every market keyed by currency,
// without the top-level date field.
func (p *Public) GetAllPrices(ctx context.Context, paymentCurrency string) (map[string]Ticker, error) {
	resp, err := p.api.Ticker(ctx, All, paymentOrDefault(paymentCurrency))
	return normalize(resp, err, func(r *api.Response) (map[string]Ticker, error) {
		data, err := object("data", r.Data)
		if err != nil {
			return nil, err
		}
		out := make(map[string]Ticker, len(data))
		for code, v := range data {
			m, ok := v.(map[string]any)
			if !ok {
				continue
			}
			t, err := parseTicker(m)
			if err != nil {
				var fe *FieldError
				if errors.As(err, &fe) {
					fe.Field = code + "." + fe.Field
				}
				return nil, err
			}
			out[code] = t
		}
		return out, nil
	})
}

// GetMarketDetail returns the 24h (low, high, average, volume) of one market.
func (p *Public) GetMarketDetail(ctx context.Context, orderCurrency, paymentCurrency string) (MarketDetail, error) {
	t, err := p.GetTicker(ctx, orderCurrency, paymentCurrency)
	if err != nil {
		return MarketDetail{}, err
	}
	return MarketDetail{
		Low:     asFloat(t.Low),
		High:    asFloat(t.High),
		Average: asFloat(t.Average),
		Volume:  asFloat(t.Volume),
	}, nil
}

func asFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// GetOrderBook returns the depth payload as sent by the exchange.
func (p *Public) GetOrderBook(ctx context.Context, currency, paymentCurrency string) (map[string]any, error) {
	resp, err := p.api.Orderbook(ctx, strings.ToUpper(currency), paymentOrDefault(paymentCurrency))
	return normalize(resp, err, func(r *api.Response) (map[string]any, error) {
		return object("data", r.Data)
	})
}

// ParseOrderBook converts a single-market depth payload from GetOrderBook.
// ALL payloads nest one book per currency and must be split by the caller.
func ParseOrderBook(data map[string]any) (OrderBook, error) {
	var (
		ob  OrderBook
		err error
	)
	ts, err := lookup(data, "timestamp")
	if err != nil {
		return OrderBook{}, err
	}
	ms, err := toInt64("timestamp", ts)
	if err != nil {
		return OrderBook{}, err
	}
	ob.Timestamp = time.UnixMilli(ms).UTC()

	if ob.OrderCurrency, err = stringField(data, "order_currency"); err != nil {
		return OrderBook{}, err
	}
	if ob.PaymentCurrency, err = stringField(data, "payment_currency"); err != nil {
		return OrderBook{}, err
	}
	if ob.Bids, err = parseLevels(data, "bids"); err != nil {
		return OrderBook{}, err
	}
	if ob.Asks, err = parseLevels(data, "asks"); err != nil {
		return OrderBook{}, err
	}
	return ob, nil
}

func parseLevels(data map[string]any, key string) ([]Level, error) {
	v, err := lookup(data, key)
	if err != nil {
		return nil, err
	}
	list, ok := v.([]any)
	if !ok {
		return nil, &FieldError{Field: key, Value: v, Err: ErrFieldType}
	}

	levels := make([]Level, 0, len(list))
	for _, item := range list {
		m, err := object(key, item)
		if err != nil {
			return nil, err
		}
		var l Level
		if l.Price, err = decimalField(m, "price"); err != nil {
			return nil, err
		}
		if l.Quantity, err = decimalField(m, "quantity"); err != nil {
			return nil, err
		}
		levels = append(levels, l)
	}
	return levels, nil
}

// GetCandlestick returns the candle history of one market. Rows keep the
// response order; repeated timestamps keep their first row.
func (p *Public) GetCandlestick(ctx context.Context, orderCurrency, paymentCurrency string, interval Interval) (*CandleSeries, error) {
	iv, err := ParseInterval(string(interval))
	if err != nil {
		return nil, err
	}
	orderCurrency = strings.ToUpper(orderCurrency)
	paymentCurrency = paymentOrDefault(paymentCurrency)

	resp, err := p.api.Candlestick(ctx, orderCurrency, paymentCurrency, string(iv))
	return normalize(resp, err, func(r *api.Response) (*CandleSeries, error) {
		s, err := buildCandleSeries(r.Data)
		if err != nil {
			return nil, err
		}
		s.OrderCurrency = orderCurrency
		s.PaymentCurrency = paymentCurrency
		s.Interval = iv
		return s, nil
	})
}
