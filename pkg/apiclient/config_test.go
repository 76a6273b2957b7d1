package apiclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		config    *Config
		wantError bool
		errorMsg  string
	}{
		{
			name:   "Valid config",
			config: &Config{BaseURL: "https://annotate.example.com/v1"},
		},
		{
			name:      "Missing base URL",
			config:    &Config{},
			wantError: true,
			errorMsg:  "baseUrl",
		},
		{
			name:      "Invalid URL scheme",
			config:    &Config{BaseURL: "ftp://annotate.example.com"},
			wantError: true,
			errorMsg:  "scheme",
		},
		{
			name:      "Missing host",
			config:    &Config{BaseURL: "http:///v1"},
			wantError: true,
			errorMsg:  "host",
		},
		{
			name:      "Negative timeout",
			config:    &Config{BaseURL: "https://annotate.example.com", Timeout: -1 * time.Second},
			wantError: true,
			errorMsg:  "timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConfig_ResolveLoginURL(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		expected string
	}{
		{
			name:     "default login at host root",
			config:   Config{BaseURL: "https://annotate.example.com/v1"},
			expected: "https://annotate.example.com/login",
		},
		{
			name:     "relative login path",
			config:   Config{BaseURL: "https://annotate.example.com/v1", LoginURL: "/auth/login"},
			expected: "https://annotate.example.com/auth/login",
		},
		{
			name:     "absolute login URL",
			config:   Config{BaseURL: "https://annotate.example.com/v1", LoginURL: "https://sso.example.com/login"},
			expected: "https://sso.example.com/login",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.ResolveLoginURL())
		})
	}
}

func TestNew_AppliesDefaults(t *testing.T) {
	cfg := &Config{BaseURL: "https://annotate.example.com/v1"}

	client, err := New(cfg)
	require.NoError(t, err)

	assert.NotNil(t, cfg.TLSVerify, "TLSVerify should have a default value")
	assert.Equal(t, "csrftoken", cfg.CSRFCookieName)
	assert.Equal(t, "X-CSRFToken", cfg.CSRFHeaderName)
	assert.Equal(t, "https://annotate.example.com/v1", client.BaseURL())
	assert.Equal(t, "https://annotate.example.com/login", client.LoginURL())
	assert.NotNil(t, client.HTTPClient().Jar)
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(&Config{BaseURL: "not a url"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid API client config")

	_, err = New(nil)
	require.Error(t, err)
}
