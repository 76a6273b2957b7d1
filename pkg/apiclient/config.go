package apiclient

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	defaultCSRFCookieName = "csrftoken"
	defaultCSRFHeaderName = "X-CSRFToken"
	defaultUserAgent      = "annotator"
	defaultLoginPath      = "/login"
)

// Config contains the fixed configuration of an API client. Base URL,
// credentials and parameter serialization are decided here and never per
// request.
//
// Example configuration (HCL):
//
//	api {
//	  base_url   = "https://annotate.example.com/v1"
//	  timeout    = "30s"
//	  tls_verify = true
//	}
type Config struct {
	// BaseURL is the API root every request path is appended to.
	// Example: "https://annotate.example.com/v1"
	BaseURL string `json:"baseUrl"`

	// LoginURL is where the user is sent on an authentication failure.
	// Default: "/login" on the host of BaseURL.
	LoginURL string `json:"loginUrl,omitempty"`

	// CSRFCookieName is the cookie whose value is echoed in CSRFHeaderName.
	// Default: "csrftoken"
	CSRFCookieName string `json:"csrfCookieName,omitempty"`

	// CSRFHeaderName is the header carrying the CSRF token.
	// Default: "X-CSRFToken"
	CSRFHeaderName string `json:"csrfHeaderName,omitempty"`

	// SessionCookie, when set, seeds the cookie jar with a session id so the
	// client is authenticated without going through the login flow.
	SessionCookie string `json:"-"`

	// TLSVerify controls TLS certificate verification
	// Set to false only for development/testing with self-signed certs
	TLSVerify *bool `json:"tlsVerify,omitempty"`

	// Timeout is the transport default. Zero means no client-side timeout.
	Timeout time.Duration `json:"timeout,omitempty"`

	// UserAgent is added to all requests
	UserAgent string `json:"userAgent,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	tlsVerify := true
	return &Config{
		CSRFCookieName: defaultCSRFCookieName,
		CSRFHeaderName: defaultCSRFHeaderName,
		TLSVerify:      &tlsVerify,
		UserAgent:      defaultUserAgent,
	}
}

// applyDefaults fills zero values from DefaultConfig.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.TLSVerify == nil {
		c.TLSVerify = defaults.TLSVerify
	}
	if c.CSRFCookieName == "" {
		c.CSRFCookieName = defaults.CSRFCookieName
	}
	if c.CSRFHeaderName == "" {
		c.CSRFHeaderName = defaults.CSRFHeaderName
	}
	if c.UserAgent == "" {
		c.UserAgent = defaults.UserAgent
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required, validation.By(httpURL)),
		validation.Field(&c.LoginURL, validation.By(optionalURL)),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
}

func httpURL(value interface{}) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("must use http or https scheme, got: %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("must include a host")
	}
	return nil
}

func optionalURL(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	// Relative login paths are resolved against BaseURL.
	if _, err := url.Parse(s); err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	return nil
}

// ResolveLoginURL returns the absolute login entry point.
func (c *Config) ResolveLoginURL() string {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return defaultLoginPath
	}
	login := c.LoginURL
	if login == "" {
		login = defaultLoginPath
	}
	ref, err := url.Parse(login)
	if err != nil {
		return login
	}
	return base.ResolveReference(ref).String()
}

// NewHTTPClient creates a configured HTTP client with a cookie jar, which is
// how the session and CSRF cookies travel with every request.
func (c *Config) NewHTTPClient() (*http.Client, error) {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	// Configure TLS verification
	if c.TLSVerify != nil && !*c.TLSVerify {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &http.Client{
		Timeout:   c.Timeout,
		Transport: transport,
		Jar:       jar,
	}, nil
}
