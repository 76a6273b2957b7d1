package backends

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/annotation-forge/annotator/pkg/notifications"
)

// NtfyBackend sends push notifications via ntfy.sh
type NtfyBackend struct {
	serverURL       string
	topic           string
	client          *http.Client
	maxRetries      int
	initialInterval time.Duration
}

// NtfyBackendConfig holds configuration for the ntfy backend
type NtfyBackendConfig struct {
	// ServerURL is the ntfy server URL (e.g., "https://ntfy.sh")
	ServerURL string

	// Topic is the ntfy topic to send notifications to
	Topic string

	// Timeout for HTTP requests (optional, defaults to 10s)
	Timeout time.Duration

	// MaxRetries for retryable delivery failures (optional, defaults to 3)
	MaxRetries int

	// InitialInterval is the first retry delay (optional, defaults to 500ms)
	InitialInterval time.Duration
}

// NewNtfyBackend creates a new ntfy backend
func NewNtfyBackend(cfg NtfyBackendConfig) *NtfyBackend {
	// Default values
	if cfg.ServerURL == "" {
		cfg.ServerURL = "https://ntfy.sh"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.InitialInterval == 0 {
		cfg.InitialInterval = 500 * time.Millisecond
	}

	return &NtfyBackend{
		serverURL: cfg.ServerURL,
		topic:     cfg.Topic,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		maxRetries:      cfg.MaxRetries,
		initialInterval: cfg.InitialInterval,
	}
}

// Name returns the backend identifier
func (b *NtfyBackend) Name() string {
	return "ntfy"
}

// Handle pushes the notification, retrying retryable failures with
// exponential backoff.
func (b *NtfyBackend) Handle(ctx context.Context, n *notifications.Notification) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = b.initialInterval

	operation := func() error {
		err := b.send(ctx, n)
		var backendErr *BackendError
		if errors.As(err, &backendErr) && !backendErr.Retryable {
			return backoff.Permanent(err)
		}
		return err
	}

	return backoff.Retry(operation,
		backoff.WithContext(backoff.WithMaxRetries(policy, uint64(b.maxRetries)), ctx))
}

func (b *NtfyBackend) send(ctx context.Context, n *notifications.Notification) error {
	url := fmt.Sprintf("%s/%s", b.serverURL, b.topic)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBufferString(n.Message))
	if err != nil {
		return NewBackendError("ntfy", "send", false, fmt.Errorf("failed to create ntfy request: %w", err))
	}

	req.Header.Set("Title", n.Source)
	req.Header.Set("Priority", ntfyPriority(n.Type))
	req.Header.Set("Tags", string(n.Type))

	resp, err := b.client.Do(req)
	if err != nil {
		// Network errors are retryable
		return NewBackendError("ntfy", "send", true, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return NewBackendError("ntfy", "send", isRetryableHTTPStatus(resp.StatusCode),
			fmt.Errorf("ntfy request failed with status %d", resp.StatusCode))
	}

	return nil
}

// ntfyPriority maps a notification type to an ntfy priority (1=min, 3=default, 5=max)
func ntfyPriority(t notifications.NotificationType) string {
	switch t {
	case notifications.NotificationTypeError:
		return "5"
	case notifications.NotificationTypeWarning:
		return "4"
	default:
		return "3"
	}
}

// isRetryableHTTPStatus determines if an HTTP status code represents a retryable error
func isRetryableHTTPStatus(status int) bool {
	// Retryable: 5xx (server errors), 429 (rate limit), 408 (timeout)
	// Permanent: 4xx (client errors, except 429 and 408)
	switch {
	case status >= 500:
		return true
	case status == http.StatusTooManyRequests:
		return true
	case status == http.StatusRequestTimeout:
		return true
	default:
		return false
	}
}
