package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout = 30 * time.Second
	maxBodySize    = 10 << 20 // 10 MB
)

// Client issues one HTTP request per backend operation. It is safe for
// concurrent use once constructed.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	jar        http.CookieJar
	logger     *slog.Logger
	timeout    time.Duration
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client. Its Jar should be nil:
// cookies are attached per operation by the Client itself.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithJar sets the cookie store used by credentialed operations.
func WithJar(jar http.CookieJar) Option {
	return func(c *Client) { c.jar = jar }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithTimeout sets the timeout of the default HTTP client. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host are required", baseURL)
	}
	if u.Path == "" {
		u.Path = "/"
	}

	c := &Client{
		baseURL: u,
		logger:  slog.Default(),
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Timeout:   c.timeout,
			Transport: NewLoggingTransport(nil, c.logger),
		}
	}
	return c, nil
}

// BaseURL returns a copy of the URL every endpoint is resolved against.
func (c *Client) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

// URL resolves an endpoint path against the base URL.
func (c *Client) URL(endpoint string) *url.URL {
	return c.baseURL.JoinPath(endpoint)
}

// call describes a single backend operation.
type call struct {
	op           string
	method       string
	path         string
	body         any
	credentialed bool
}

type response struct {
	status int
	body   []byte
}

// roundTrip performs the request and reads the whole body. Only transport
// and encoding failures are reported; the status is left to the caller.
func (c *Client) roundTrip(ctx context.Context, cl call) (response, error) {
	var reader io.Reader
	if cl.body != nil {
		data, err := json.Marshal(cl.body)
		if err != nil {
			return response{}, transportError(cl.op, err)
		}
		reader = bytes.NewReader(data)
	}

	u := c.URL(cl.path)
	req, err := http.NewRequestWithContext(ctx, cl.method, u.String(), reader)
	if err != nil {
		return response{}, transportError(cl.op, err)
	}
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.credentialed {
		c.attachCookies(ctx, req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return response{}, transportError(cl.op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return response{}, transportError(cl.op, err)
	}

	if cl.credentialed && c.jar != nil {
		if cookies := resp.Cookies(); len(cookies) > 0 {
			c.jar.SetCookies(jarURL(req.URL), cookies)
		}
	}

	return response{status: resp.StatusCode, body: body}, nil
}

// send is roundTrip plus strict status checking: every non-2xx answer
// becomes an *Error carrying the body text.
func (c *Client) send(ctx context.Context, cl call) ([]byte, error) {
	resp, err := c.roundTrip(ctx, cl)
	if err != nil {
		return nil, err
	}
	if resp.status < 200 || resp.status > 299 {
		return nil, statusError(cl.op, resp.status, bodyMessage(resp))
	}
	return resp.body, nil
}

func (c *Client) sendText(ctx context.Context, cl call) (string, error) {
	body, err := c.send(ctx, cl)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func sendJSON[T any](ctx context.Context, c *Client, cl call) (T, error) {
	var out T
	body, err := c.send(ctx, cl)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, transportError(cl.op, err)
	}
	return out, nil
}

func (c *Client) attachCookies(ctx context.Context, req *http.Request) {
	if c.jar != nil {
		for _, cookie := range c.jar.Cookies(jarURL(req.URL)) {
			req.AddCookie(cookie)
		}
	}
	for _, cookie := range cookiesFromContext(ctx) {
		req.AddCookie(cookie)
	}
}

// jarURL upgrades plain-http loopback URLs to https for cookie lookups so
// that Secure cookies set by a local backend are kept and sent, matching
// how browsers treat localhost as a secure context.
func jarURL(u *url.URL) *url.URL {
	if u.Scheme != "http" || !isLoopback(u.Hostname()) {
		return u
	}
	cp := *u
	cp.Scheme = "https"
	return &cp
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func bodyMessage(resp response) string {
	msg := strings.TrimRight(string(resp.body), "\r\n")
	if msg == "" {
		return http.StatusText(resp.status)
	}
	return msg
}
