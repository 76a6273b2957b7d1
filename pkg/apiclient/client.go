package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-hclog"
)

// Response is a completed exchange with a 2xx status.
type Response struct {
	StatusCode int
	Header     http.Header
	Data       []byte
}

// Decode unmarshals the response payload into v.
func (r *Response) Decode(v any) error {
	if len(r.Data) == 0 {
		return fmt.Errorf("empty response body")
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// ResponseInterceptor observes every completed exchange. Exactly one of resp
// and err is non-nil. Interceptors cannot alter the outcome; they are the
// hook for cross-cutting concerns such as outage notification.
type ResponseInterceptor func(resp *Response, err error)

// Client is the single point of outbound request construction against the
// annotation backend. It is safe for concurrent use.
type Client struct {
	config     *Config
	baseURL    *url.URL
	loginURL   string
	client     *http.Client
	logger     hclog.Logger
	redirector AuthRedirector

	// redirected is set by the first 401; later ones do not navigate again.
	redirected atomic.Bool

	mu           sync.RWMutex
	interceptors []ResponseInterceptor
}

// Option customizes a Client.
type Option func(*Client)

// WithLogger sets the client logger.
func WithLogger(logger hclog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRedirector sets what happens on an authentication failure.
func WithRedirector(r AuthRedirector) Option {
	return func(c *Client) {
		c.redirector = r
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// New creates a new API client
func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("invalid API client config: config is nil")
	}
	cfg.applyDefaults()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid API client config: %w", err)
	}

	baseURL, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid API client config: %w", err)
	}

	c := &Client{
		config:   cfg,
		baseURL:  baseURL,
		loginURL: cfg.ResolveLoginURL(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = hclog.NewNullLogger()
	}
	c.logger = c.logger.Named("apiclient")

	if c.redirector == nil {
		c.redirector = &BrowserRedirector{Logger: c.logger}
	}

	if c.client == nil {
		hc, err := cfg.NewHTTPClient()
		if err != nil {
			return nil, err
		}
		c.client = hc
	}

	if cfg.SessionCookie != "" && c.client.Jar != nil {
		c.client.Jar.SetCookies(baseURL, []*http.Cookie{{
			Name:  "sessionid",
			Value: cfg.SessionCookie,
			Path:  "/",
		}})
	}

	return c, nil
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// LoginURL returns the login entry point used on authentication failures.
func (c *Client) LoginURL() string {
	return c.loginURL
}

// HTTPClient returns the underlying HTTP client.
func (c *Client) HTTPClient() *http.Client {
	return c.client
}

// Use registers an interceptor. Interceptors run in registration order after
// the built-in authentication handling.
func (c *Client) Use(interceptor ResponseInterceptor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.interceptors = append(c.interceptors, interceptor)
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, config ...RequestConfig) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil, firstConfig(config))
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any, config ...RequestConfig) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, body, firstConfig(config))
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any, config ...RequestConfig) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, body, firstConfig(config))
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any, config ...RequestConfig) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, path, body, firstConfig(config))
}

// Delete performs a DELETE request. It accepts two call styles:
//
//	Delete(ctx, path, RequestConfig{Data: body})  // body inside the config
//	Delete(ctx, path, body, RequestConfig{...})   // body, then optional config
//
// The second argument is taken as a config when it is a RequestConfig or a
// string-keyed map of any value type holding any of the keys "data",
// "params", "headers" or "timeout".
func (c *Client) Delete(ctx context.Context, path string, dataOrConfig any, config ...RequestConfig) (*Response, error) {
	cfg, isConfig, err := asRequestConfig(dataOrConfig)
	if err != nil {
		return nil, err
	}
	if isConfig {
		return c.Do(ctx, http.MethodDelete, path, nil, cfg)
	}
	return c.Do(ctx, http.MethodDelete, path, dataOrConfig, firstConfig(config))
}

// Do executes a request against the API. path is relative to the base URL
// and may already carry a query string.
func (c *Client) Do(ctx context.Context, method, path string, body any, cfg *RequestConfig) (*Response, error) {
	if cfg == nil {
		cfg = &RequestConfig{}
	}
	if body == nil && cfg.Data != nil {
		body = cfg.Data
	}

	resp, err := c.send(ctx, method, path, body, cfg)
	if err != nil && IsUnauthorized(err) {
		c.redirectToLogin()
	}
	c.intercept(resp, err)

	return resp, err
}

func (c *Client) send(ctx context.Context, method, path string, body any, cfg *RequestConfig) (*Response, error) {
	endpoint := c.buildURL(path, cfg.Params)

	bodyReader, isJSON, err := encodeBody(body)
	if err != nil {
		return nil, err
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)
	if isJSON {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.csrfToken(); token != "" {
		req.Header.Set(c.config.CSRFHeaderName, token)
	}
	for k, v := range cfg.Headers {
		req.Header.Set(k, v)
	}

	c.logger.Debug("sending request", "method", method, "url", endpoint)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	// Read response body
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// Handle HTTP errors
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("request returned error status",
			"method", method,
			"url", endpoint,
			"status", resp.StatusCode,
		)
		return nil, &HTTPError{
			Method:     method,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Data:       respBody,
		}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Data:       respBody,
	}, nil
}

// buildURL joins path to the base URL and appends the encoded params.
func (c *Client) buildURL(path string, params Params) string {
	endpoint := c.baseURL.String() + "/" + strings.TrimLeft(path, "/")

	query := params.Encode()
	if query == "" {
		return endpoint
	}
	if strings.Contains(endpoint, "?") {
		return endpoint + "&" + query
	}
	return endpoint + "?" + query
}

// csrfToken returns the CSRF cookie value the backend set, if any.
func (c *Client) csrfToken() string {
	if c.client.Jar == nil {
		return ""
	}
	for _, cookie := range c.client.Jar.Cookies(c.baseURL) {
		if cookie.Name == c.config.CSRFCookieName {
			return cookie.Value
		}
	}
	return ""
}

// ResetRedirect re-arms the login redirect after the user has logged in
// again, or between test cases.
func (c *Client) ResetRedirect() {
	c.redirected.Store(false)
}

func (c *Client) redirectToLogin() {
	if !c.redirected.CompareAndSwap(false, true) {
		c.logger.Debug("login redirect already issued", "url", c.loginURL)
		return
	}
	if err := c.redirector.Redirect(c.loginURL); err != nil {
		c.logger.Error("failed to redirect to login", "url", c.loginURL, "error", err)
	}
}

func (c *Client) intercept(resp *Response, err error) {
	c.mu.RLock()
	interceptors := make([]ResponseInterceptor, len(c.interceptors))
	copy(interceptors, c.interceptors)
	c.mu.RUnlock()

	for _, fn := range interceptors {
		fn(resp, err)
	}
}

// encodeBody turns a request body into a reader. Readers, byte slices and
// strings are sent as-is; anything else is marshaled to JSON.
func encodeBody(body any) (io.Reader, bool, error) {
	switch v := body.(type) {
	case nil:
		return nil, false, nil
	case io.Reader:
		return v, false, nil
	case []byte:
		return bytes.NewReader(v), false, nil
	case string:
		return strings.NewReader(v), false, nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, false, fmt.Errorf("failed to marshal request body: %w", err)
		}
		return bytes.NewReader(data), true, nil
	}
}
