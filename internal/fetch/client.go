package fetch

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Default client settings.
const (
	defaultUserAgent   = "shoecheck/1.0"
	defaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// formContentType is the content type of reminder form posts.
	formContentType = "application/x-www-form-urlencoded"
)

// Response is an HTTP response with its body already read and closed.
type Response struct {
	// URL is the requested URL.
	URL string

	// StatusCode is the HTTP status code.
	StatusCode int

	// StatusText is the reason phrase without the code, e.g. "Not Found".
	StatusText string

	// Body is the response body, truncated to the client's max body size.
	// Empty for HEAD requests and form posts.
	Body []byte

	// Truncated is set when the body was longer than the max body size.
	Truncated bool
}

// Client performs GET, HEAD and form POST requests.
// It is safe to reuse across the whole run; requests are issued one at a time
// by the callers.
type Client struct {
	// httpClient performs the requests.
	httpClient *http.Client

	// limiter spaces requests out. Nil means no pacing.
	limiter *rate.Limiter

	// userAgent is the User-Agent header to use.
	userAgent string

	// maxBodySize limits the size of response bodies to read.
	maxBodySize int64

	// logger receives debug output for each request.
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
// The timeout passed to NewClient is not applied to a replaced client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithMaxBodySize sets the maximum response body size. Zero keeps the default.
func WithMaxBodySize(size int64) Option {
	return func(c *Client) {
		if size > 0 {
			c.maxBodySize = size
		}
	}
}

// WithDelay makes consecutive requests at least d apart.
// The first request is never delayed. Zero disables pacing.
func WithDelay(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.limiter = rate.NewLimiter(rate.Every(d), 1)
		} else {
			c.limiter = nil
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client. A zero timeout leaves the platform defaults in
// place, matching a plain http.Client.
func NewClient(timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: timeout},
		userAgent:   defaultUserAgent,
		maxBodySize: defaultMaxBodySize,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Get fetches a page and reads its body.
func (c *Client) Get(ctx context.Context, pageURL string) (*Response, error) {
	return c.do(ctx, http.MethodGet, pageURL, nil, "", true)
}

// Head requests only the headers of a resource.
func (c *Client) Head(ctx context.Context, resourceURL string) (*Response, error) {
	return c.do(ctx, http.MethodHead, resourceURL, nil, "", false)
}

// PostForm submits form as application/x-www-form-urlencoded.
// The response body is drained and discarded.
func (c *Client) PostForm(ctx context.Context, endpoint string, form url.Values) (*Response, error) {
	return c.do(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()), formContentType, false)
}

// do performs one request. Every non-nil error is a *Error.
// The response body is closed before do returns on every path.
func (c *Client) do(ctx context.Context, method, target string, body io.Reader, contentType string, readBody bool) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &Error{Op: method, URL: target, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &Error{Op: method, URL: target, Err: err}
	}

	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if method == http.MethodGet {
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	}

	c.logger.Debug("sending request", "method", method, "url", target)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "url", target, "error", err)
		return nil, &Error{Op: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	result := &Response{
		URL:        target,
		StatusCode: resp.StatusCode,
		StatusText: statusText(resp),
	}

	if readBody {
		// One extra byte tells a body of exactly maxBodySize from a longer one.
		data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize+1))
		if err != nil {
			return nil, &Error{Op: method, URL: target, Err: err}
		}
		if int64(len(data)) > c.maxBodySize {
			data = data[:c.maxBodySize]
			result.Truncated = true
			c.logger.Warn("response body truncated, listings past the limit are not checked",
				"url", target,
				"limit", c.maxBodySize,
			)
		}
		result.Body = data
	} else {
		// Drain so the connection can be reused. The status is already known,
		// so a failure here does not invalidate the response.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, c.maxBodySize))
	}

	c.logger.Debug("received response",
		"method", method,
		"url", target,
		"status", resp.StatusCode,
		"bytes", len(result.Body),
	)

	return result, nil
}

// statusText extracts the reason phrase from resp.Status ("404 Not Found").
// Falls back to the standard text for the code when the server sent none.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
