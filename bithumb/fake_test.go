package bithumb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/bithumb/api"
)

type fakeCall struct {
	method string
	args   []string
}

// fakeAPI replays canned envelopes per endpoint and records every call.
type fakeAPI struct {
	t         *testing.T
	responses map[string]*api.Response
	errs      map[string]error
	calls     []fakeCall
}

func newFake(t *testing.T) *fakeAPI {
	return &fakeAPI{
		t:         t,
		responses: map[string]*api.Response{},
		errs:      map[string]error{},
	}
}

// on registers the raw JSON body returned by method.
func (f *fakeAPI) on(method, body string) *fakeAPI {
	resp, err := api.DecodeResponse([]byte(body))
	require.NoError(f.t, err)
	f.responses[method] = resp
	return f
}

func (f *fakeAPI) fail(method string, err error) *fakeAPI {
	f.errs[method] = err
	return f
}

func (f *fakeAPI) reply(method string, args ...string) (*api.Response, error) {
	f.calls = append(f.calls, fakeCall{method: method, args: args})
	if err := f.errs[method]; err != nil {
		return nil, err
	}
	resp, ok := f.responses[method]
	require.True(f.t, ok, "unexpected call to %s", method)
	return resp, nil
}

func (f *fakeAPI) last() fakeCall {
	require.NotEmpty(f.t, f.calls)
	return f.calls[len(f.calls)-1]
}

func (f *fakeAPI) Ticker(_ context.Context, oc, pc string) (*api.Response, error) {
	return f.reply("Ticker", oc, pc)
}

func (f *fakeAPI) Orderbook(_ context.Context, oc, pc string) (*api.Response, error) {
	return f.reply("Orderbook", oc, pc)
}

func (f *fakeAPI) Candlestick(_ context.Context, oc, pc, iv string) (*api.Response, error) {
	return f.reply("Candlestick", oc, pc, iv)
}

func (f *fakeAPI) Account(_ context.Context, oc, pc string) (*api.Response, error) {
	return f.reply("Account", oc, pc)
}

func (f *fakeAPI) Balance(_ context.Context, c string) (*api.Response, error) {
	return f.reply("Balance", c)
}

func (f *fakeAPI) Place(_ context.Context, side, price, units, oc, pc string) (*api.Response, error) {
	return f.reply("Place", side, price, units, oc, pc)
}

func (f *fakeAPI) MarketBuy(_ context.Context, oc, pc, units string) (*api.Response, error) {
	return f.reply("MarketBuy", oc, pc, units)
}

func (f *fakeAPI) MarketSell(_ context.Context, oc, pc, units string) (*api.Response, error) {
	return f.reply("MarketSell", oc, pc, units)
}

func (f *fakeAPI) Orders(_ context.Context, side, oc, id, pc string) (*api.Response, error) {
	return f.reply("Orders", side, oc, id, pc)
}

func (f *fakeAPI) OrderDetail(_ context.Context, side, oc, id, pc string) (*api.Response, error) {
	return f.reply("OrderDetail", side, oc, id, pc)
}

func (f *fakeAPI) Cancel(_ context.Context, side, oc, id, pc string) (*api.Response, error) {
	return f.reply("Cancel", side, oc, id, pc)
}

var _ api.PrivateAPI = (*fakeAPI)(nil)
