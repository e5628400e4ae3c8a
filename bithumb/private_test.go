package bithumb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestPrivate(f *fakeAPI) (*Private, *[]OrderEvent) {
	c := NewPrivate(f)
	c.now = func() time.Time { return fixedNow }
	var events []OrderEvent
	c.OnOrder(func(ev OrderEvent) { events = append(events, ev) })
	return c, &events
}

func TestNewRequiresKeys(t *testing.T) {
	_, err := New("", "secret")
	assert.Error(t, err)
	_, err = New("key", "")
	assert.Error(t, err)

	c, err := New("key", "secret")
	require.NoError(t, err)
	assert.NotNil(t, c.Public)
}

func TestGetTradingFee(t *testing.T) {
	f := newFake(t).on("Account", `{"status":"0000","data":{"created":"1388118018000","account_id":"A000105A","trade_fee":"0.0025","balance":"665.40127447"}}`)
	c, _ := newTestPrivate(f)

	got, err := c.GetTradingFee(context.Background(), "btc", "")
	require.NoError(t, err)
	assert.Equal(t, "0.0025", got.String())
	assert.Equal(t, []string{"BTC", "KRW"}, f.last().args)
}

func TestGetBalance(t *testing.T) {
	f := newFake(t).on("Balance", `{"status":"0000","data":{
		"total_btc":"665.40127447","total_krw":305507280,
		"in_use_btc":"127.43629364","in_use_krw":8839047.0,
		"available_btc":"537.96498083","available_krw":"294304133"
	}}`)
	c, _ := newTestPrivate(f)

	got, err := c.GetBalance(context.Background(), "BTC")
	require.NoError(t, err)
	assert.Equal(t, Balance{
		Total:    665.40127447,
		InUse:    127.43629364,
		TotalKRW: 305507280,
		InUseKRW: 8839047,
	}, got)
	assert.Equal(t, []string{"BTC"}, f.last().args)
}

func TestGetBalanceMissingCoin(t *testing.T) {
	f := newFake(t).on("Balance", `{"status":"0000","data":{"total_krw":"1","in_use_krw":"0"}}`)
	c, _ := newTestPrivate(f)

	_, err := c.GetBalance(context.Background(), "ETH")
	require.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "total_eth")
}

func TestPlaceLimitOrder(t *testing.T) {
	f := newFake(t).on("Place", `{"status":"0000","order_id":"1428646963419","data":[]}`)
	c, events := newTestPrivate(f)

	od, err := c.PlaceLimitOrder(context.Background(), Bid, "btc", 9000000, 0.12345, "")
	require.NoError(t, err)
	assert.Equal(t, OrderDescriptor{
		Side:            Bid,
		OrderCurrency:   "BTC",
		OrderID:         "1428646963419",
		PaymentCurrency: "KRW",
	}, od)
	assert.Equal(t, []string{"bid", "9000000", "0.1234", "BTC", "KRW"}, f.last().args)

	require.Len(t, *events, 1)
	ev := (*events)[0]
	assert.Equal(t, KindLimit, ev.Kind)
	assert.Equal(t, od, ev.Order)
	assert.Equal(t, "9000000", ev.Price.String())
	assert.Equal(t, "0.1234", ev.Units.String())
	assert.Equal(t, fixedNow, ev.Time)
}

func TestSellLimitOrder(t *testing.T) {
	f := newFake(t).on("Place", `{"status":"0000","order_id":"77"}`)
	c, _ := newTestPrivate(f)

	od, err := c.SellLimitOrder(context.Background(), "ETH", 2500000.5, 3, "KRW")
	require.NoError(t, err)
	assert.Equal(t, Ask, od.Side)
	assert.Equal(t, []string{"ask", "2500000.5", "3.0000", "ETH", "KRW"}, f.last().args)

	_, err = c.BuyLimitOrder(context.Background(), "ETH", 1, 1, "")
	require.NoError(t, err)
	assert.Equal(t, "bid", f.last().args[0])
}

func TestPlaceLimitOrderValidation(t *testing.T) {
	f := newFake(t)
	c, events := newTestPrivate(f)

	_, err := c.PlaceLimitOrder(context.Background(), Side("hold"), "BTC", 1, 1, "")
	assert.ErrorIs(t, err, ErrSide)

	_, err = c.PlaceLimitOrder(context.Background(), Bid, "BTC", 0, 1, "")
	assert.ErrorIs(t, err, ErrPrice)

	_, err = c.PlaceLimitOrder(context.Background(), Bid, "BTC", -5, 1, "")
	assert.ErrorIs(t, err, ErrPrice)

	assert.Empty(t, f.calls)
	assert.Empty(t, *events)
}

func TestPlaceLimitOrderRejected(t *testing.T) {
	f := newFake(t).on("Place", `{"status":"5600","message":"insufficient balance"}`)
	c, events := newTestPrivate(f)

	_, err := c.PlaceLimitOrder(context.Background(), Bid, "BTC", 100, 1, "")
	assert.True(t, IsStatus(err, "5600"))
	assert.Empty(t, *events, "rejected orders are not journaled")
}

func TestPlaceLimitOrderMissingID(t *testing.T) {
	f := newFake(t).on("Place", `{"status":"0000"}`)
	c, _ := newTestPrivate(f)

	_, err := c.PlaceLimitOrder(context.Background(), Bid, "BTC", 100, 1, "")
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestPlaceMarketOrder(t *testing.T) {
	f := newFake(t).
		on("MarketBuy", `{"status":"0000","order_id":"m1","data":[{"cont_id":"1","units":"0.1","price":"500000"}]}`).
		on("MarketSell", `{"status":"0000","order_id":"m2"}`)
	c, events := newTestPrivate(f)

	resp, err := c.BuyMarketOrder(context.Background(), "btc", 0.10009, "")
	require.NoError(t, err)
	assert.Equal(t, "m1", resp.OrderID)
	assert.Equal(t, fakeCall{method: "MarketBuy", args: []string{"BTC", "KRW", "0.1000"}}, f.last())

	resp, err = c.SellMarketOrder(context.Background(), "ETH", 2, "")
	require.NoError(t, err)
	assert.Equal(t, "m2", resp.OrderID)
	assert.Equal(t, fakeCall{method: "MarketSell", args: []string{"ETH", "KRW", "2.0000"}}, f.last())

	require.Len(t, *events, 2)
	assert.Equal(t, KindMarket, (*events)[0].Kind)
	assert.Equal(t, "m1", (*events)[0].Order.OrderID)
	assert.True(t, (*events)[0].Price.IsZero())
	assert.Equal(t, Ask, (*events)[1].Order.Side)

	_, err = c.PlaceMarketOrder(context.Background(), Side("x"), "BTC", 1, "")
	assert.ErrorIs(t, err, ErrSide)
}

func TestGetOrderRemaining(t *testing.T) {
	od := OrderDescriptor{Side: Bid, OrderCurrency: "BTC", OrderID: "42", PaymentCurrency: "KRW"}

	t.Run("open", func(t *testing.T) {
		f := newFake(t).on("Orders", `{"status":"0000","data":[{"order_id":"42","units":"1.0","units_remaining":"0.25"}]}`)
		c, _ := newTestPrivate(f)

		got, err := c.GetOrderRemaining(context.Background(), od)
		require.NoError(t, err)
		assert.Equal(t, 0.25, got)
		assert.Equal(t, []string{"bid", "BTC", "42", "KRW"}, f.last().args)
	})

	t.Run("gone", func(t *testing.T) {
		f := newFake(t).on("Orders", `{"status":"5600","message":"no orders"}`)
		c, _ := newTestPrivate(f)

		got, err := c.GetOrderRemaining(context.Background(), od)
		require.NoError(t, err)
		assert.Zero(t, got)
	})

	t.Run("other failure", func(t *testing.T) {
		f := newFake(t).on("Orders", `{"status":"5300","message":"Invalid Apikey"}`)
		c, _ := newTestPrivate(f)

		_, err := c.GetOrderRemaining(context.Background(), od)
		assert.True(t, IsStatus(err, "5300"))
	})

	t.Run("transport", func(t *testing.T) {
		boom := errors.New("timeout")
		f := newFake(t).fail("Orders", boom)
		c, _ := newTestPrivate(f)

		_, err := c.GetOrderRemaining(context.Background(), od)
		assert.ErrorIs(t, err, boom)
	})
}

func TestGetOrderDetail(t *testing.T) {
	f := newFake(t).on("OrderDetail", `{"status":"0000","data":[{
		"transaction_date":"1428024598967","type":"ask","order_currency":"BTC","payment_currency":"KRW",
		"units_traded":"0.0017","price":"264000","fee":0,"fee_currency":"KRW","total":"449","extra":"x"
	}]}`)
	c, _ := newTestPrivate(f)

	od := OrderDescriptor{Side: Ask, OrderCurrency: "BTC", OrderID: "1428024598967", PaymentCurrency: "KRW"}
	got, err := c.GetOrderDetail(context.Background(), od)
	require.NoError(t, err)

	assert.Equal(t, "1428024598967", got.TransactionDate)
	assert.Equal(t, "ask", got.Type)
	assert.Equal(t, 0.0017, got.UnitsTraded)
	assert.Equal(t, 264000.0, got.Price)
	assert.Zero(t, got.Fee)
	assert.Equal(t, 449.0, got.Total)
	assert.Equal(t, "x", got.Raw["extra"])
}

func TestGetOrderDetailEmpty(t *testing.T) {
	f := newFake(t).on("OrderDetail", `{"status":"0000","data":[]}`)
	c, _ := newTestPrivate(f)

	_, err := c.GetOrderDetail(context.Background(), OrderDescriptor{Side: Bid, OrderCurrency: "BTC", OrderID: "1"})
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestCancelOrder(t *testing.T) {
	od := OrderDescriptor{Side: Bid, OrderCurrency: "BTC", OrderID: "42", PaymentCurrency: "KRW"}

	f := newFake(t).on("Cancel", `{"status":"0000"}`)
	c, events := newTestPrivate(f)

	ok, err := c.CancelOrder(context.Background(), od)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"bid", "BTC", "42", "KRW"}, f.last().args)
	require.Len(t, *events, 1)
	assert.Equal(t, KindCancel, (*events)[0].Kind)

	f = newFake(t).on("Cancel", `{"status":"5600","message":"already filled"}`)
	c, events = newTestPrivate(f)

	ok, err = c.CancelOrder(context.Background(), od)
	assert.False(t, ok)
	assert.True(t, IsStatus(err, "5600"))
	assert.Empty(t, *events)
}

func TestOrderDescriptorString(t *testing.T) {
	od := OrderDescriptor{Side: Ask, OrderCurrency: "ETH", OrderID: "9", PaymentCurrency: "KRW"}
	assert.Equal(t, "ask ETH/KRW #9", od.String())
}

func TestParseSide(t *testing.T) {
	for in, want := range map[string]Side{"bid": Bid, "BUY": Bid, " ask": Ask, "sell": Ask} {
		got, err := ParseSide(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseSide("hodl")
	assert.ErrorIs(t, err, ErrSide)
}
