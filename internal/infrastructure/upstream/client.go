// Package upstream is the gateway's client for the remote business API.
// Every call is at-most-once: no retries, no backoff. Failures are
// normalized into *Error before they leave this package.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/posadmin/backoffice/internal/infrastructure/telemetry"
)

// ContentTypeJSON and ContentTypeCSV are the request body types the remote
// API accepts.
const (
	ContentTypeJSON = "application/json"
	ContentTypeCSV  = "text/csv"
)

// Client wraps an HTTP client with base-URL prefixing, bearer injection and
// error normalization.
type Client struct {
	httpClient *http.Client
	baseURL    string
	plain      bool
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the client logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// Plain disables bearer injection. Used for unauthenticated endpoints
// such as login.
func Plain() Option {
	return func(c *Client) { c.plain = true }
}

// NewClient creates an upstream client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("upstream base URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid upstream base URL: %w", err)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// request describes one upstream call.
type request struct {
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
}

// RequestOption customizes one call.
type RequestOption func(*request)

// WithQueryParam adds a query string parameter.
func WithQueryParam(key, value string) RequestOption {
	return func(r *request) {
		if r.query == nil {
			r.query = url.Values{}
		}
		r.query.Set(key, value)
	}
}

// do executes one request. The bearer token is attached unless the client is
// plain or the token is empty. The response body is returned raw; any
// transport failure or non-2xx status comes back as *Error.
func (c *Client) do(ctx context.Context, token string, req request) ([]byte, error) {
	target, err := c.buildURL(req.path, req.query)
	if err != nil {
		return nil, &Error{Code: CodeBadResponse, Message: "Something went wrong. Please try again.", Details: map[string]any{"cause": err.Error()}}
	}

	var bodyReader io.Reader
	if req.body != nil {
		bodyReader = bytes.NewReader(req.body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, bodyReader)
	if err != nil {
		return nil, normalizeTransportError(err)
	}

	contentType := req.contentType
	if contentType == "" {
		contentType = ContentTypeJSON
	}
	if req.body != nil {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", ContentTypeJSON)
	if !c.plain && token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	spanCtx, span := telemetry.StartClientSpan(ctx, req.method, req.path)
	defer span.End()
	httpReq = httpReq.WithContext(spanCtx)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		telemetry.RecordError(span, err)
		c.logger.Warn("Upstream call failed",
			zap.String("method", req.method),
			zap.String("path", req.path),
			zap.Error(err))
		return nil, normalizeTransportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, normalizeTransportError(err)
	}

	telemetry.SetStatusCode(span, resp.StatusCode)
	c.logger.Debug("Upstream call completed",
		zap.String("method", req.method),
		zap.String("path", req.path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, normalizeHTTPError(resp.StatusCode, respBody)
	}
	return respBody, nil
}

// buildURL joins the path onto the base URL. Absolute URLs pass through
// unchanged.
func (c *Client) buildURL(path string, query url.Values) (string, error) {
	var target string
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		target = path
	} else {
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		target = c.baseURL + path
	}

	u, err := url.Parse(target)
	if err != nil {
		return "", err
	}
	if len(query) > 0 {
		q := u.Query()
		for key, values := range query {
			for _, value := range values {
				q.Add(key, value)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// Get performs a GET and decodes the response into T.
func Get[T any](ctx context.Context, c *Client, token, path string, opts ...RequestOption) (T, error) {
	return roundTrip[T](ctx, c, token, request{method: http.MethodGet, path: path}, opts)
}

// Post performs a JSON POST and decodes the response into T.
func Post[T any](ctx context.Context, c *Client, token, path string, body any, opts ...RequestOption) (T, error) {
	var zero T
	raw, err := json.Marshal(body)
	if err != nil {
		return zero, &Error{Code: CodeBadResponse, Message: "Something went wrong. Please try again.", Details: map[string]any{"cause": err.Error()}}
	}
	return roundTrip[T](ctx, c, token, request{method: http.MethodPost, path: path, body: raw}, opts)
}

// Put performs a JSON PUT and decodes the response into T.
func Put[T any](ctx context.Context, c *Client, token, path string, body any, opts ...RequestOption) (T, error) {
	var zero T
	raw, err := json.Marshal(body)
	if err != nil {
		return zero, &Error{Code: CodeBadResponse, Message: "Something went wrong. Please try again.", Details: map[string]any{"cause": err.Error()}}
	}
	return roundTrip[T](ctx, c, token, request{method: http.MethodPut, path: path, body: raw}, opts)
}

// Delete performs a DELETE and decodes the response into T.
func Delete[T any](ctx context.Context, c *Client, token, path string, opts ...RequestOption) (T, error) {
	return roundTrip[T](ctx, c, token, request{method: http.MethodDelete, path: path}, opts)
}

// PostRaw performs a POST with a caller-supplied body and content type,
// bypassing JSON serialization. Used for CSV bulk uploads.
func PostRaw[T any](ctx context.Context, c *Client, token, path string, body []byte, contentType string, opts ...RequestOption) (T, error) {
	return roundTrip[T](ctx, c, token, request{method: http.MethodPost, path: path, body: body, contentType: contentType}, opts)
}

func roundTrip[T any](ctx context.Context, c *Client, token string, req request, opts []RequestOption) (T, error) {
	var result T
	for _, opt := range opts {
		opt(&req)
	}
	raw, err := c.do(ctx, token, req)
	if err != nil {
		return result, err
	}
	if len(raw) == 0 {
		return result, nil
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return result, &Error{
			Code:    CodeBadResponse,
			Message: "Something went wrong. Please try again.",
			Details: map[string]any{"cause": err.Error()},
		}
	}
	return result, nil
}
