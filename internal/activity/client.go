package activity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// RecommendationFetcher is implemented by *Client and can be faked in tests.
type RecommendationFetcher interface {
	Recommend(ctx context.Context, req RecommendRequest) (*RecommendResponse, error)
	EstimatedTime(ctx context.Context, userID any) (*EstimatedTimeResponse, error)
}

var _ RecommendationFetcher = (*Client)(nil)

// Client talks to the activities HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	timeout   time.Duration
	userAgent string
	logger    *zap.Logger
}

const (
	// DefaultBaseURL is the activities endpoint of a local backend.
	DefaultBaseURL   = "http://localhost:8080/api/v1/activities"
	defaultUserAgent = "wtd/0.1"

	opRecommend     = "recommend"
	opEstimatedTime = "estimated-time"
)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets a per-request timeout. Zero leaves requests unbounded.
// The timeout applies to a copy of the http.Client, so one passed with
// WithHTTPClient is never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger failures are reported to.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient builds a Client for the given base URL (DefaultBaseURL when empty).
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c, nil
}

// BaseURL returns the normalized activities endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Recommend asks the recommendation service for places matching req.
func (c *Client) Recommend(ctx context.Context, req RecommendRequest) (*RecommendResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, c.fail(opRecommend, fmt.Errorf("encode request: %w", err))
	}

	resp, err := c.send(ctx, http.MethodPost, "recommend", bytes.NewReader(body))
	if err != nil {
		return nil, c.fail(opRecommend, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		var eb errorBody
		// An undecodable error body counts as having no message.
		if err := json.NewDecoder(resp.Body).Decode(&eb); err != nil {
			eb = errorBody{}
		}
		msg := strings.TrimSpace(eb.Message)
		if msg == "" {
			msg = DefaultRecommendMessage
		}
		return nil, c.fail(opRecommend, &APIError{Op: opRecommend, Status: resp.StatusCode, Message: msg})
	}

	var payload RecommendResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, c.fail(opRecommend, fmt.Errorf("decode response: %w", err))
	}
	return &payload, nil
}

// EstimatedTime fetches the estimated charge time for a user. userID may be
// any integer type or a string.
func (c *Client) EstimatedTime(ctx context.Context, userID any) (*EstimatedTimeResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	id := strings.TrimSpace(fmt.Sprint(userID))
	if userID == nil || id == "" {
		return nil, c.fail(opEstimatedTime, fmt.Errorf("user id required"))
	}

	resp, err := c.send(ctx, http.MethodGet, "estimated-time/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, c.fail(opEstimatedTime, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, c.fail(opEstimatedTime, &APIError{Op: opEstimatedTime, Status: resp.StatusCode, Message: DefaultEstimatedTimeMessage})
	}

	var payload EstimatedTimeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, c.fail(opEstimatedTime, fmt.Errorf("decode response: %w", err))
	}
	return &payload, nil
}

func (c *Client) send(ctx context.Context, method, rel string, body io.Reader) (*http.Response, error) {
	reqURL := c.baseURL.JoinPath(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	return resp, nil
}

// fail logs err and hands it back for returning.
func (c *Client) fail(op string, err error) error {
	fields := []zap.Field{zap.String("op", op), zap.Error(err)}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		fields = append(fields, zap.Int("status", apiErr.Status), zap.String("detail", apiErr.Detail()))
	}
	c.logger.Error("activities api request failed", fields...)
	return err
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api base url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
