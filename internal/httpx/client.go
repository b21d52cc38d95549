package httpx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

const maxResponseBodySize = 1 << 20 // 1MB

// connection pooling limits to prevent resource exhaustion; each engine
// worker owns its own Client, so the per-host limits stay small
const (
	defaultMaxIdleConns        = 10
	defaultMaxIdleConnsPerHost = 2
	defaultMaxConnsPerHost     = 2
	defaultIdleConnTimeout     = 60 * time.Second
)

// Param is a single query parameter. A nil Value emits just the key.
type Param struct {
	Key   string
	Value *string
}

// KV builds a key=value query parameter.
func KV(key, value string) Param {
	return Param{Key: key, Value: &value}
}

// Flag builds a value-less query parameter (just the key).
func Flag(key string) Param {
	return Param{Key: key}
}

// Response holds the result of a single HTTP request made by [Client].
//
// Response captures the body (limited to 1MB), status code, transport
// latency, and any error that occurred. Errors are carried in the Error
// field rather than returned separately so callers always get timings.
type Response struct {
	// Body contains the HTTP response body, limited to 1MB.
	Body []byte

	// StatusCode is the HTTP status code. Zero if the request failed
	// before receiving a response.
	StatusCode int

	// Latency is the total transport time for the request.
	Latency time.Duration

	// Error contains any error that occurred during the request.
	Error error
}

// Ok reports whether the request completed with a 2xx status.
func (r Response) Ok() bool {
	return r.Error == nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// HeaderHook mutates the request headers immediately before a request is
// sent. Hooks run after the default headers (user agent) are applied.
type HeaderHook func(h http.Header)

// Client is an HTTP client wrapper for the telemetry bridge.
//
// Client uses per-request timeouts via context rather than a global
// timeout, carries a cookie jar, and sets a configurable User-Agent on
// every request. Clients MUST NOT be shared between engine workers: the
// header hook and user agent are applied per request without locking, so
// each worker owns exactly one Client.
type Client struct {
	httpClient *http.Client
	userAgent  string
	hook       HeaderHook
}

// NewClient creates a [Client] with the given User-Agent.
//
// The client is configured with small connection pooling limits (one
// worker, one host) and a fresh in-memory cookie jar. Timeouts are applied
// per request via [Client.Get] and [Client.Post].
func NewClient(userAgent string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		userAgent: userAgent,
		httpClient: &http.Client{
			Jar: jar,
			// no default timeout - per-request timeouts via context
			Transport: &http.Transport{
				MaxIdleConns:        defaultMaxIdleConns,
				MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
				MaxConnsPerHost:     defaultMaxConnsPerHost,
				IdleConnTimeout:     defaultIdleConnTimeout,
			},
		},
	}
}

// SetHeaderHook installs a hook invoked before every request.
// Not safe to call concurrently with in-flight requests.
func (c *Client) SetHeaderHook(hook HeaderHook) {
	c.hook = hook
}

// Get performs an HTTP GET and returns a structured [Response].
//
// When params are present they replace the URL's query component; keys
// with a nil value are emitted bare.
func (c *Client) Get(ctx context.Context, url string, params []Param, timeout time.Duration) Response {
	return c.do(ctx, http.MethodGet, WithQuery(url, params), nil, "", timeout)
}

// Post performs an HTTP POST with the given body and content type.
func (c *Client) Post(ctx context.Context, url string, body []byte, contentType string, timeout time.Duration) Response {
	return c.do(ctx, http.MethodPost, url, body, contentType, timeout)
}

func (c *Client) do(ctx context.Context, method, url string, body []byte, contentType string, timeout time.Duration) Response {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return Response{
			Latency: time.Since(start),
			Error:   fmt.Errorf("failed to create request: %w", err),
		}
	}

	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.hook != nil {
		c.hook(req.Header)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{
			Latency: time.Since(start),
			Error:   fmt.Errorf("request failed: %w", err),
		}
	}
	defer func() { _ = resp.Body.Close() }()

	limitedReader := io.LimitReader(resp.Body, maxResponseBodySize)
	raw, err := io.ReadAll(limitedReader)
	if err != nil {
		return Response{
			StatusCode: resp.StatusCode,
			Latency:    time.Since(start),
			Error:      fmt.Errorf("failed to read response body: %w", err),
		}
	}

	return Response{
		Body:       raw,
		StatusCode: resp.StatusCode,
		Latency:    time.Since(start),
	}
}

// WithQuery joins params with "&" and replaces the query component of url.
// With no params the url is returned unchanged.
func WithQuery(url string, params []Param) string {
	if len(params) == 0 {
		return url
	}

	base := url
	if i := strings.IndexByte(base, '?'); i >= 0 {
		base = base[:i]
	}

	var sb strings.Builder
	sb.WriteString(base)
	for i, p := range params {
		if i == 0 {
			sb.WriteByte('?')
		} else {
			sb.WriteByte('&')
		}
		sb.WriteString(p.Key)
		if p.Value != nil {
			sb.WriteByte('=')
			sb.WriteString(*p.Value)
		}
	}
	return sb.String()
}

// Close closes all idle connections in the client's connection pool.
//
// Safe to call multiple times. After Close the client remains usable but
// new connections will be established as needed.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	if transport, ok := c.httpClient.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}
