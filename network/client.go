// Package network loads documents, descriptor files and scripts from local
// paths and from file, http(s) and data URLs.
package network

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"

	"github.com/chrisuehlinger/htmlkit/config"
	"github.com/chrisuehlinger/htmlkit/logging"
)

// ErrTooLarge is returned when a body exceeds the configured size limit.
var ErrTooLarge = errors.New("response body too large")

// Client is an HTTP client with cookie support and a body size limit.
type Client struct {
	httpClient   *http.Client
	userAgent    string
	maxBytes     int64
	maxRedirects int
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithMaxRedirects sets the maximum number of redirects to follow.
func WithMaxRedirects(n int) ClientOption {
	return func(c *Client) {
		c.maxRedirects = n
	}
}

// WithTransport replaces the HTTP transport.
func WithTransport(rt http.RoundTripper) ClientOption {
	return func(c *Client) {
		c.httpClient.Transport = rt
	}
}

// NewClient creates a client from the network configuration.
func NewClient(cfg config.NetworkConfig, opts ...ClientOption) (*Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{
		PublicSuffixList: publicsuffix.List,
	})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	c := &Client{
		userAgent:    cfg.UserAgent,
		maxBytes:     cfg.MaxBytes,
		maxRedirects: 10,
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   30 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				ForceAttemptHTTP2:   true,
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.httpClient.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= c.maxRedirects {
			return fmt.Errorf("stopped after %d redirects", c.maxRedirects)
		}
		return nil
	}
	return c, nil
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode  int
	Headers     http.Header
	Body        []byte
	ContentType string
	URL         *url.URL // final URL after redirects
}

// Get performs an HTTP GET request and reads the whole body.
func (c *Client) Get(ctx context.Context, urlStr string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", urlStr, err)
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	body, err := readLimited(reader, c.maxBytes)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", urlStr, err)
	}

	logging.L().Named("network").Debug("Fetched URL.",
		zap.String("url", urlStr),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)))

	return &Response{
		StatusCode:  resp.StatusCode,
		Headers:     resp.Header,
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		URL:         resp.Request.URL,
	}, nil
}

// readLimited reads r fully. A positive limit caps the number of bytes.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, limit)
	}
	return body, nil
}

// ParseContentType splits a Content-Type header into media type and charset.
func ParseContentType(contentType string) (mediaType string, charset string) {
	if contentType == "" {
		return "application/octet-stream", ""
	}

	parts := strings.Split(contentType, ";")
	mediaType = strings.ToLower(strings.TrimSpace(parts[0]))
	for _, part := range parts[1:] {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if ok && strings.EqualFold(key, "charset") {
			charset = strings.ToLower(strings.Trim(value, `"`))
			break
		}
	}
	return mediaType, charset
}
