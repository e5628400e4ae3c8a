package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
)

// PrivateAPI is the signed endpoint family. Implementations hold the key
// pair and sign every request.
type PrivateAPI interface {
	PublicAPI
	Account(ctx context.Context, orderCurrency, paymentCurrency string) (*Response, error)
	Balance(ctx context.Context, currency string) (*Response, error)
	Place(ctx context.Context, side, price, units, orderCurrency, paymentCurrency string) (*Response, error)
	MarketBuy(ctx context.Context, orderCurrency, paymentCurrency, units string) (*Response, error)
	MarketSell(ctx context.Context, orderCurrency, paymentCurrency, units string) (*Response, error)
	Orders(ctx context.Context, side, orderCurrency, orderID, paymentCurrency string) (*Response, error)
	OrderDetail(ctx context.Context, side, orderCurrency, orderID, paymentCurrency string) (*Response, error)
	Cancel(ctx context.Context, side, orderCurrency, orderID, paymentCurrency string) (*Response, error)
}

var _ PrivateAPI = (*Private)(nil)

// Private is the signed transport.
type Private struct {
	*Client
	connectKey string
	secretKey  string
	nonce      nonceSource
}

// NewPrivate wraps c with the given key pair. Both keys are required.
func NewPrivate(c *Client, connectKey, secretKey string) (*Private, error) {
	if connectKey == "" || secretKey == "" {
		return nil, errors.New("connect key and secret key are required")
	}
	if c == nil {
		c = NewClient("", 0)
	}
	return &Private{
		Client:     c,
		connectKey: connectKey,
		secretKey:  secretKey,
	}, nil
}

// Call posts params to a private endpoint with authentication headers.
func (p *Private) Call(ctx context.Context, path string, params url.Values) (*Response, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("endpoint", path)
	body := params.Encode()
	nonce := p.nonce.next()

	header := http.Header{}
	header.Set("Api-Key", p.connectKey)
	header.Set("Api-Nonce", nonce)
	header.Set("Api-Sign", Sign(p.secretKey, path, body, nonce))

	return p.post(ctx, path, body, header)
}

// Account fetches /info/account (member info and trade fee).
func (p *Private) Account(ctx context.Context, orderCurrency, paymentCurrency string) (*Response, error) {
	return p.Call(ctx, "/info/account", marketParams(orderCurrency, paymentCurrency))
}

// Balance fetches /info/balance for currency (or ALL).
func (p *Private) Balance(ctx context.Context, currency string) (*Response, error) {
	params := url.Values{}
	params.Set("currency", strings.ToUpper(currency))
	return p.Call(ctx, "/info/balance", params)
}

// Place submits a limit order to /trade/place.
func (p *Private) Place(ctx context.Context, side, price, units, orderCurrency, paymentCurrency string) (*Response, error) {
	params := marketParams(orderCurrency, paymentCurrency)
	params.Set("type", side)
	params.Set("price", price)
	params.Set("units", units)
	return p.Call(ctx, "/trade/place", params)
}

// MarketBuy submits a market buy to /trade/market_buy.
func (p *Private) MarketBuy(ctx context.Context, orderCurrency, paymentCurrency, units string) (*Response, error) {
	params := marketParams(orderCurrency, paymentCurrency)
	params.Set("units", units)
	return p.Call(ctx, "/trade/market_buy", params)
}

// MarketSell submits a market sell to /trade/market_sell.
func (p *Private) MarketSell(ctx context.Context, orderCurrency, paymentCurrency, units string) (*Response, error) {
	params := marketParams(orderCurrency, paymentCurrency)
	params.Set("units", units)
	return p.Call(ctx, "/trade/market_sell", params)
}

// Orders fetches the open state of one order from /info/orders.
func (p *Private) Orders(ctx context.Context, side, orderCurrency, orderID, paymentCurrency string) (*Response, error) {
	return p.Call(ctx, "/info/orders", orderParams(side, orderCurrency, orderID, paymentCurrency))
}

// OrderDetail fetches fills of one order from /info/order_detail.
func (p *Private) OrderDetail(ctx context.Context, side, orderCurrency, orderID, paymentCurrency string) (*Response, error) {
	return p.Call(ctx, "/info/order_detail", orderParams(side, orderCurrency, orderID, paymentCurrency))
}

// Cancel cancels one order via /trade/cancel.
func (p *Private) Cancel(ctx context.Context, side, orderCurrency, orderID, paymentCurrency string) (*Response, error) {
	return p.Call(ctx, "/trade/cancel", orderParams(side, orderCurrency, orderID, paymentCurrency))
}

func marketParams(orderCurrency, paymentCurrency string) url.Values {
	params := url.Values{}
	params.Set("order_currency", strings.ToUpper(orderCurrency))
	params.Set("payment_currency", strings.ToUpper(payment(paymentCurrency)))
	return params
}

func orderParams(side, orderCurrency, orderID, paymentCurrency string) url.Values {
	params := marketParams(orderCurrency, paymentCurrency)
	params.Set("type", side)
	params.Set("order_id", orderID)
	return params
}
