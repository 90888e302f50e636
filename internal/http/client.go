// Package http implements the rate-limited, retrying transport. It is the
// sole place request timing and retry bookkeeping occur; no other package
// talks to the network.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/opendata-io/ckan-client/internal/constants"
	"github.com/opendata-io/ckan-client/pkg/ckan"
)

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Clock abstracts wall-clock time so tests can verify rate-limit spacing
// without sleeping.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// Request represents an HTTP request.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   interface{}
}

// Response represents an HTTP response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client is an HTTP client with a minimum inter-request delay and a bounded
// exponential-backoff retry policy. One Client belongs to one session; its
// rate-limit timestamp is not shared across clients.
type Client struct {
	baseURL     string
	userAgent   string
	logger      Logger
	debug       bool
	attempts    int
	backoffBase time.Duration
	backoffMax  time.Duration
	timeout     time.Duration
	rateLimit   time.Duration
	clock       Clock
	throttle    *throttle
	retryable   *retryablehttp.Client
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig sets the total attempt budget and the backoff unit/cap.
// The wait before attempt n+1 is backoffBase * 2^n, capped at backoffMax.
func WithRetryConfig(attempts int, backoffBase, backoffMax time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.backoffBase = backoffBase
		c.backoffMax = backoffMax
	}
}

// WithRateLimit sets the minimum delay between consecutive requests,
// applied across retries.
func WithRateLimit(delay time.Duration) Option {
	return func(c *Client) {
		c.rateLimit = delay
	}
}

// WithTimeout bounds a single HTTP attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithClock substitutes the wall clock. Tests use a fake.
func WithClock(clock Clock) Option {
	return func(c *Client) {
		c.clock = clock
	}
}

// NewClient creates a new transport for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL:     baseURL,
		userAgent:   "ckan-client/1.0",
		attempts:    constants.DefaultRetryMax,
		backoffBase: constants.DefaultBackoffBase,
		backoffMax:  constants.DefaultBackoffMax,
		timeout:     constants.DefaultHTTPTimeout,
		rateLimit:   constants.DefaultRateLimit,
		clock:       realClock{},
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.attempts < 1 {
		client.attempts = 1
	}

	client.throttle = &throttle{
		base:  http.DefaultTransport,
		clock: client.clock,
		delay: client.rateLimit,
	}

	retryable := retryablehttp.NewClient()
	retryable.Logger = nil
	retryable.RetryMax = client.attempts - 1
	retryable.RetryWaitMin = client.backoffBase
	retryable.RetryWaitMax = client.backoffMax
	retryable.CheckRetry = checkRetry
	retryable.Backoff = exponentialBackoff
	retryable.HTTPClient = &http.Client{
		Timeout:   client.timeout,
		Transport: client.throttle,
	}

	client.retryable = retryable

	return client
}

// checkRetry treats every transport-level error and every non-2xx status as
// retryable. Application-level failures arrive as 2xx envelopes with
// success=false and are not retried; they never reach this layer as errors.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil || resp == nil {
		return true, nil
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return true, nil
	}

	return false, nil
}

// exponentialBackoff waits base * 2^attempt, attempt starting at 1 for the
// wait after the first failure. attemptNum arrives zero-based.
func exponentialBackoff(base, max time.Duration, attemptNum int, _ *http.Response) time.Duration {
	wait := base << uint(attemptNum+1)
	if wait > max || wait < base {
		wait = max
	}

	return wait
}

// Do executes a request with rate limiting and retries.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	requestURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		requestURL += "?" + req.Query.Encode()
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, requestURL, req.Body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"path":   req.Path,
			"query":  req.Query.Encode(),
		})
	}

	resp, err := c.retryable.Do(httpReq)
	if err != nil {
		return nil, &ckan.TransportError{Endpoint: req.Path, Attempts: c.attempts, Err: err}
	}

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ckan.TransportError{Endpoint: req.Path, Attempts: c.attempts, Err: err}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"path":        req.Path,
			"status_code": resp.StatusCode,
		})
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	data, err := marshalBody(body)
	if err != nil {
		return nil, err
	}

	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: data})
}

func marshalBody(body interface{}) ([]byte, error) {
	if body == nil {
		return nil, nil
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	return data, nil
}

// LastRequestAt returns the timestamp of the most recent request attempt.
// It is monotonically non-decreasing across the session and advances after
// every attempt, success or failure.
func (c *Client) LastRequestAt() time.Time {
	return c.throttle.last
}

// throttle is a RoundTripper that enforces the minimum inter-request delay
// beneath the retry loop, so the rate limit applies even across retries.
// The client is single-threaded by contract, so no lock guards last.
type throttle struct {
	base  http.RoundTripper
	clock Clock
	delay time.Duration
	last  time.Time
}

func (t *throttle) RoundTrip(req *http.Request) (*http.Response, error) {
	t.wait()

	resp, err := t.base.RoundTrip(req)

	t.record()

	return resp, err
}

func (t *throttle) wait() {
	if t.delay <= 0 || t.last.IsZero() {
		return
	}

	elapsed := t.clock.Now().Sub(t.last)
	if elapsed < t.delay {
		t.clock.Sleep(t.delay - elapsed)
	}
}

func (t *throttle) record() {
	now := t.clock.Now()
	if now.After(t.last) {
		t.last = now
	}
}
