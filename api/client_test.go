package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 5*time.Second)
}

func TestNewClient(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c := NewClient("", 0)
		assert.Equal(t, BaseURL, c.baseURL)
		assert.Equal(t, defaultTimeout, c.httpClient.Timeout)
		assert.NotNil(t, c.log)
	})

	t.Run("trailing slash trimmed", func(t *testing.T) {
		c := NewClient("http://example.test/", time.Second)
		assert.Equal(t, "http://example.test", c.baseURL)
		assert.Equal(t, time.Second, c.httpClient.Timeout)
	})
}

func TestTicker_PathAndEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/public/ticker/BTC_KRW", r.URL.Path)
		w.Write([]byte(`{"status":"0000","data":{"closing_price":"9000000","date":1417141032622}}`))
	})

	resp, err := c.Ticker(context.Background(), "btc", "")
	require.NoError(t, err)
	assert.True(t, resp.OK())

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "9000000", data["closing_price"])
	assert.Equal(t, json.Number("1417141032622"), data["date"])
	assert.Contains(t, string(resp.Raw), `"closing_price"`)
}

func TestOrderbookAndCandlestickPaths(t *testing.T) {
	var paths []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Write([]byte(`{"status":"0000","data":[]}`))
	})

	ctx := context.Background()
	_, err := c.Orderbook(ctx, "ETH", "KRW")
	require.NoError(t, err)
	_, err = c.Candlestick(ctx, "ETH", "KRW", "1H")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/public/orderbook/ETH_KRW",
		"/public/candlestick/ETH_KRW/1h",
	}, paths)
}

func TestErrorStatusIsNotTransportError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"5500","message":"Invalid Parameter"}`))
	})

	resp, err := c.Ticker(context.Background(), "NOPE", "KRW")
	require.NoError(t, err)
	assert.False(t, resp.OK())
	assert.Equal(t, "5500", resp.Status)
	assert.Equal(t, "Invalid Parameter", resp.Message)
	assert.Nil(t, resp.Data)
}

func TestHTTPError(t *testing.T) {
	t.Run("plain body", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("upstream down\n"))
		})

		_, err := c.Ticker(context.Background(), "BTC", "KRW")
		require.Error(t, err)

		var httpErr *HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
		assert.Equal(t, "upstream down", httpErr.Body)
	})

	t.Run("envelope body", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"status":"5300","message":"Invalid Apikey"}`))
		})

		resp, err := c.Ticker(context.Background(), "BTC", "KRW")
		require.NoError(t, err)
		assert.Equal(t, "5300", resp.Status)
	})

	t.Run("success envelope on server error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"status":"0000","data":{}}`))
		})

		resp, err := c.Ticker(context.Background(), "BTC", "KRW")
		assert.Nil(t, resp)

		var httpErr *HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	})
}

func TestMalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance</html>`))
	})

	_, err := c.Ticker(context.Background(), "BTC", "KRW")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestContextCancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"0000"}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Ticker(ctx, "BTC", "KRW")
	assert.ErrorIs(t, err, context.Canceled)
}
