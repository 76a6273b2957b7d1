package config

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/annotation-forge/annotator/pkg/apiclient"
	"github.com/annotation-forge/annotator/pkg/notifications/backends"
	"github.com/annotation-forge/annotator/pkg/outage"
	"github.com/annotation-forge/annotator/pkg/repository"
)

// Config contains the annotator configuration.
type Config struct {
	// LogLevel is the level of the root logger ("trace" through "error").
	LogLevel string `hcl:"log_level,optional"`

	// API configures the general annotation backend client.
	API *API `hcl:"api,block"`

	// LegacyAPI configures the second client instance used by older call
	// sites. Defaults to a copy of API.
	LegacyAPI *API `hcl:"legacy_api,block"`

	// Comparison configures the two-user comparison.
	Comparison *Comparison `hcl:"comparison,block"`

	// Outage configures the service-unavailable notification.
	Outage *Outage `hcl:"outage,block"`

	// Backends configures where notifications are delivered.
	Backends *backends.Config `hcl:"backends,block"`
}

// API configures an annotation backend client.
type API struct {
	BaseURL       string `hcl:"base_url"`
	LoginURL      string `hcl:"login_url,optional"`
	SessionCookie string `hcl:"session_cookie,optional"`
	TLSVerify     *bool  `hcl:"tls_verify,optional"`
	Timeout       string `hcl:"timeout,optional"`
	UserAgent     string `hcl:"user_agent,optional"`
}

// Comparison configures the two-user comparison.
type Comparison struct {
	// FallbackUsers are queried when neither compared user has annotations.
	FallbackUsers []string `hcl:"fallback_users,optional"`

	// DisableFallback turns the fallback off.
	DisableFallback bool `hcl:"disable_fallback,optional"`
}

// Outage configures the service-unavailable notification.
type Outage struct {
	Message string `hcl:"message,optional"`

	// Headless suppresses the notification even on a terminal.
	Headless bool `hcl:"headless,optional"`

	DispatchTimeout string `hcl:"dispatch_timeout,optional"`
}

// Validate validates the configuration.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.LogLevel, validation.In(
			"", "trace", "debug", "info", "warn", "error")),
		validation.Field(&c.API, validation.Required),
		validation.Field(&c.LegacyAPI),
		validation.Field(&c.Comparison),
		validation.Field(&c.Outage),
	)
}

// Validate validates an API block.
func (a API) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.BaseURL, validation.Required),
		validation.Field(&a.Timeout, validation.By(isDuration)),
	)
}

// Validate validates the comparison block.
func (c Comparison) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.FallbackUsers, validation.When(
			!c.DisableFallback && c.FallbackUsers != nil,
			validation.Length(2, 2),
			validation.Each(validation.Required),
		)),
	)
}

// Validate validates the outage block.
func (o Outage) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.DispatchTimeout, validation.By(isDuration)),
	)
}

func isDuration(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := time.ParseDuration(s); err != nil {
		return fmt.Errorf("must be a duration such as \"30s\"")
	}
	return nil
}

// NewConfig parses an HCL configuration file, applies defaults and
// validates the result.
func NewConfig(filename string) (*Config, error) {
	c := &Config{}
	if err := hclsimple.DecodeFile(filename, nil, c); err != nil {
		return nil, fmt.Errorf("error decoding configuration: %w", err)
	}
	return c, c.finalize()
}

// Parse is NewConfig for configuration held in memory. filename only picks
// the syntax (".hcl" or ".json") and labels diagnostics.
func Parse(filename string, src []byte) (*Config, error) {
	c := &Config{}
	if err := hclsimple.Decode(filename, src, nil, c); err != nil {
		return nil, fmt.Errorf("error decoding configuration: %w", err)
	}
	return c, c.finalize()
}

func (c *Config) finalize() error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	c.applyDefaults()
	return nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LegacyAPI == nil && c.API != nil {
		legacy := *c.API
		c.LegacyAPI = &legacy
	}
	if c.Comparison == nil {
		c.Comparison = &Comparison{}
	}
	if c.Comparison.FallbackUsers == nil {
		c.Comparison.FallbackUsers = []string{
			repository.DefaultFallbackUsers[0],
			repository.DefaultFallbackUsers[1],
		}
	}
	if c.Outage == nil {
		c.Outage = &Outage{}
	}
	if c.Outage.Message == "" {
		c.Outage.Message = outage.DefaultMessage
	}
}

// ClientConfig converts an API block to the HTTP client configuration.
func (a *API) ClientConfig() (*apiclient.Config, error) {
	cfg := apiclient.DefaultConfig()
	cfg.BaseURL = a.BaseURL
	cfg.SessionCookie = a.SessionCookie
	if a.LoginURL != "" {
		cfg.LoginURL = a.LoginURL
	}
	if a.TLSVerify != nil {
		cfg.TLSVerify = a.TLSVerify
	}
	if a.UserAgent != "" {
		cfg.UserAgent = a.UserAgent
	}
	if a.Timeout != "" {
		d, err := time.ParseDuration(a.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout: %w", err)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}

// FallbackPair returns the configured fallback users, or two empty strings
// when the fallback is disabled.
func (c *Comparison) FallbackPair() (string, string) {
	if c.DisableFallback || len(c.FallbackUsers) != 2 {
		return "", ""
	}
	return c.FallbackUsers[0], c.FallbackUsers[1]
}

// DispatchTimeoutDuration returns the parsed dispatch timeout, zero when
// unset.
func (o *Outage) DispatchTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(o.DispatchTimeout)
	return d
}
