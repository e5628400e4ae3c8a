package bithumb

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/bithumb/api"
)

// StatusOrderGone is returned by the order status endpoint once an order is
// fully filled or no longer known. GetOrderRemaining reads it as zero
// remaining rather than as a failure.
const StatusOrderGone = "5600"

// Private exposes the credentialed endpoints on top of Public. The key
// pair lives in the transport, which signs every request.
type Private struct {
	*Public
	api   api.PrivateAPI
	log   *slog.Logger
	hooks []func(OrderEvent)
	now   func() time.Time
}

// NewPrivate wraps a signing transport.
func NewPrivate(p api.PrivateAPI) *Private {
	return &Private{
		Public: NewPublic(p),
		api:    p,
		log:    slog.Default().With(slog.String("component", "bithumb")),
		now:    time.Now,
	}
}

// New builds a Private client against the production API.
func New(connectKey, secretKey string) (*Private, error) {
	p, err := api.NewPrivate(api.NewClient("", 0), connectKey, secretKey)
	if err != nil {
		return nil, err
	}
	return NewPrivate(p), nil
}

// SetLogger replaces the order logger.
func (c *Private) SetLogger(l *slog.Logger) {
	if l != nil {
		c.log = l
	}
}

// OnOrder registers fn to run after every accepted placement or cancel.
// Register hooks before the client is shared.
func (c *Private) OnOrder(fn func(OrderEvent)) {
	c.hooks = append(c.hooks, fn)
}

func (c *Private) emit(ev OrderEvent) {
	ev.Time = c.now()
	c.log.Info("order event",
		"kind", ev.Kind,
		"side", ev.Order.Side,
		"currency", ev.Order.OrderCurrency,
		"order_id", ev.Order.OrderID)
	for _, fn := range c.hooks {
		fn(ev)
	}
}

// GetTradingFee returns the account's fee rate for a market.
func (c *Private) GetTradingFee(ctx context.Context, orderCurrency, paymentCurrency string) (decimal.Decimal, error) {
	resp, err := c.api.Account(ctx, strings.ToUpper(orderCurrency), paymentOrDefault(paymentCurrency))
	return normalize(resp, err, func(r *api.Response) (decimal.Decimal, error) {
		data, err := object("data", r.Data)
		if err != nil {
			return decimal.Zero, err
		}
		return decimalField(data, "trade_fee")
	})
}

// GetBalance returns the holdings of currency and of KRW.
func (c *Private) GetBalance(ctx context.Context, currency string) (Balance, error) {
	resp, err := c.api.Balance(ctx, strings.ToUpper(currency))
	return normalize(resp, err, func(r *api.Response) (Balance, error) {
		data, err := object("data", r.Data)
		if err != nil {
			return Balance{}, err
		}
		coin := strings.ToLower(currency)

		var b Balance
		for _, f := range []struct {
			key string
			dst *float64
		}{
			{"total_" + coin, &b.Total},
			{"in_use_" + coin, &b.InUse},
			{"total_krw", &b.TotalKRW},
			{"in_use_krw", &b.InUseKRW},
		} {
			if *f.dst, err = floatField(data, f.key); err != nil {
				return Balance{}, err
			}
		}
		return b, nil
	})
}

// PlaceLimitOrder quantizes units, submits a limit order and returns the
// descriptor used to track it.
func (c *Private) PlaceLimitOrder(ctx context.Context, side Side, currency string, price, units float64, paymentCurrency string) (OrderDescriptor, error) {
	if !side.valid() {
		return OrderDescriptor{}, fmt.Errorf("%w: %q", ErrSide, side)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return OrderDescriptor{}, fmt.Errorf("%w: %v", ErrPrice, price)
	}
	currency = strings.ToUpper(currency)
	paymentCurrency = paymentOrDefault(paymentCurrency)
	p := decimal.NewFromFloat(price)
	q := Quantize(units)

	resp, err := c.api.Place(ctx, string(side), p.String(), formatUnits(q), currency, paymentCurrency)
	od, err := normalize(resp, err, func(r *api.Response) (OrderDescriptor, error) {
		if r.OrderID == "" {
			return OrderDescriptor{}, &FieldError{Field: "order_id", Err: ErrMissingField}
		}
		return OrderDescriptor{
			Side:            side,
			OrderCurrency:   currency,
			OrderID:         r.OrderID,
			PaymentCurrency: paymentCurrency,
		}, nil
	})
	if err != nil {
		return OrderDescriptor{}, err
	}

	c.emit(OrderEvent{Kind: KindLimit, Order: od, Price: p, Units: q})
	return od, nil
}

// BuyLimitOrder is PlaceLimitOrder with side bid.
func (c *Private) BuyLimitOrder(ctx context.Context, currency string, price, units float64, paymentCurrency string) (OrderDescriptor, error) {
	return c.PlaceLimitOrder(ctx, Bid, currency, price, units, paymentCurrency)
}

// SellLimitOrder is PlaceLimitOrder with side ask.
func (c *Private) SellLimitOrder(ctx context.Context, currency string, price, units float64, paymentCurrency string) (OrderDescriptor, error) {
	return c.PlaceLimitOrder(ctx, Ask, currency, price, units, paymentCurrency)
}

// PlaceMarketOrder quantizes units and submits a market order. The success
// envelope is returned as is; its OrderID carries the assigned id.
func (c *Private) PlaceMarketOrder(ctx context.Context, side Side, currency string, units float64, paymentCurrency string) (*api.Response, error) {
	currency = strings.ToUpper(currency)
	paymentCurrency = paymentOrDefault(paymentCurrency)
	q := Quantize(units)

	var (
		resp *api.Response
		err  error
	)
	switch side {
	case Bid:
		resp, err = c.api.MarketBuy(ctx, currency, paymentCurrency, formatUnits(q))
	case Ask:
		resp, err = c.api.MarketSell(ctx, currency, paymentCurrency, formatUnits(q))
	default:
		return nil, fmt.Errorf("%w: %q", ErrSide, side)
	}

	resp, err = normalize(resp, err, func(r *api.Response) (*api.Response, error) {
		return r, nil
	})
	if err != nil {
		return nil, err
	}

	c.emit(OrderEvent{
		Kind: KindMarket,
		Order: OrderDescriptor{
			Side:            side,
			OrderCurrency:   currency,
			OrderID:         resp.OrderID,
			PaymentCurrency: paymentCurrency,
		},
		Units: q,
	})
	return resp, nil
}

// BuyMarketOrder is PlaceMarketOrder with side bid.
func (c *Private) BuyMarketOrder(ctx context.Context, currency string, units float64, paymentCurrency string) (*api.Response, error) {
	return c.PlaceMarketOrder(ctx, Bid, currency, units, paymentCurrency)
}

// SellMarketOrder is PlaceMarketOrder with side ask.
func (c *Private) SellMarketOrder(ctx context.Context, currency string, units float64, paymentCurrency string) (*api.Response, error) {
	return c.PlaceMarketOrder(ctx, Ask, currency, units, paymentCurrency)
}

// GetOrderRemaining returns the unfilled quantity of an order. An order the
// exchange reports as gone (StatusOrderGone) has nothing remaining.
func (c *Private) GetOrderRemaining(ctx context.Context, od OrderDescriptor) (float64, error) {
	resp, err := c.api.Orders(ctx, string(od.Side), od.OrderCurrency, od.OrderID, paymentOrDefault(od.PaymentCurrency))
	if err == nil && resp != nil && resp.Status == StatusOrderGone {
		return 0, nil
	}
	return normalize(resp, err, func(r *api.Response) (float64, error) {
		rec, err := firstRecord(r.Data)
		if err != nil {
			return 0, err
		}
		return floatField(rec, "units_remaining")
	})
}

// GetOrderDetail returns the fill record of an order.
func (c *Private) GetOrderDetail(ctx context.Context, od OrderDescriptor) (OrderDetail, error) {
	resp, err := c.api.OrderDetail(ctx, string(od.Side), od.OrderCurrency, od.OrderID, paymentOrDefault(od.PaymentCurrency))
	return normalize(resp, err, func(r *api.Response) (OrderDetail, error) {
		rec, err := firstRecord(r.Data)
		if err != nil {
			return OrderDetail{}, err
		}
		return decodeOrderDetail(rec)
	})
}

func decodeOrderDetail(rec map[string]any) (OrderDetail, error) {
	var d OrderDetail
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &d,
	})
	if err != nil {
		return OrderDetail{}, err
	}
	if err := dec.Decode(rec); err != nil {
		return OrderDetail{}, &FieldError{Field: "data[0]", Value: rec, Err: fmt.Errorf("%w: %v", ErrFieldType, err)}
	}
	d.Raw = rec
	return d, nil
}

// CancelOrder cancels an order. It reports true only for a "0000" status;
// any other status returns false together with the *StatusError.
func (c *Private) CancelOrder(ctx context.Context, od OrderDescriptor) (bool, error) {
	resp, err := c.api.Cancel(ctx, string(od.Side), od.OrderCurrency, od.OrderID, paymentOrDefault(od.PaymentCurrency))
	ok, err := normalize(resp, err, func(r *api.Response) (bool, error) {
		return true, nil
	})
	if err != nil {
		return false, err
	}

	c.emit(OrderEvent{Kind: KindCancel, Order: od})
	return ok, nil
}
