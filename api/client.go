package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// BaseURL is the production REST endpoint.
	BaseURL = "https://api.bithumb.com"

	// DefaultPaymentCurrency is the quote currency used when a caller leaves it empty.
	DefaultPaymentCurrency = "KRW"

	defaultTimeout = 30 * time.Second
	maxErrorBody   = 64 * 1024
)

// HTTPError represents a non-200 response that did not carry a status
// envelope. Such a response almost always means the request never reached
// the exchange's application layer (gateway errors, bad paths, maintenance).
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server responded with a %d status code", e.StatusCode)
	}
	return fmt.Sprintf("server responded with a %d status code: %s", e.StatusCode, e.Body)
}

// Client is the unsigned REST transport. It implements PublicAPI and is
// safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a client against baseURL (BaseURL when empty). A zero
// timeout selects the default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: slog.Default().With(slog.String("component", "api")),
	}
}

// SetLogger replaces the request logger.
func (c *Client) SetLogger(l *slog.Logger) {
	if l != nil {
		c.log = l
	}
}

// SetHTTPClient replaces the underlying http.Client.
func (c *Client) SetHTTPClient(h *http.Client) {
	if h != nil {
		c.httpClient = h
	}
}

// Get issues a GET against path with params as the query string.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (*Response, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return c.do(req, path)
}

// post issues a form-encoded POST. body must already be encoded so that a
// signature computed over it matches the bytes on the wire.
func (c *Client) post(ctx context.Context, path, body string, header http.Header) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	return c.do(req, path)
}

func (c *Client) do(req *http.Request, path string) (*Response, error) {
	httpClient := c.httpClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response %s: %w", path, err)
	}

	c.log.Debug("request",
		"method", req.Method,
		"path", path,
		"http_status", resp.StatusCode,
		"elapsed", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		// Some rejections come back as 4xx with a regular status envelope;
		// those are handed on so the status code decides. A success status
		// on a failed HTTP exchange is not trusted.
		if r, derr := DecodeResponse(body); derr == nil && r.Status != "" && r.Status != StatusOK {
			return r, nil
		}
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	r, err := DecodeResponse(body)
	if err != nil {
		return nil, fmt.Errorf("decode response %s: %w", path, err)
	}
	return r, nil
}

func pair(orderCurrency, paymentCurrency string) string {
	return strings.ToUpper(orderCurrency) + "_" + strings.ToUpper(payment(paymentCurrency))
}

func payment(paymentCurrency string) string {
	if paymentCurrency == "" {
		return DefaultPaymentCurrency
	}
	return paymentCurrency
}
