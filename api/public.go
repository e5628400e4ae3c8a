package api

import (
	"context"
	"strings"
)

// PublicAPI is the unauthenticated endpoint family.
type PublicAPI interface {
	Ticker(ctx context.Context, orderCurrency, paymentCurrency string) (*Response, error)
	Orderbook(ctx context.Context, orderCurrency, paymentCurrency string) (*Response, error)
	Candlestick(ctx context.Context, orderCurrency, paymentCurrency, interval string) (*Response, error)
}

var _ PublicAPI = (*Client)(nil)

// Ticker fetches /public/ticker. orderCurrency may be ALL.
func (c *Client) Ticker(ctx context.Context, orderCurrency, paymentCurrency string) (*Response, error) {
	return c.Get(ctx, "/public/ticker/"+pair(orderCurrency, paymentCurrency), nil)
}

// Orderbook fetches /public/orderbook. orderCurrency may be ALL.
func (c *Client) Orderbook(ctx context.Context, orderCurrency, paymentCurrency string) (*Response, error) {
	return c.Get(ctx, "/public/orderbook/"+pair(orderCurrency, paymentCurrency), nil)
}

// Candlestick fetches /public/candlestick for one interval (1m, 3m, ... 24h).
func (c *Client) Candlestick(ctx context.Context, orderCurrency, paymentCurrency, interval string) (*Response, error) {
	return c.Get(ctx, "/public/candlestick/"+pair(orderCurrency, paymentCurrency)+"/"+strings.ToLower(interval), nil)
}
