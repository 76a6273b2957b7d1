package backends

import (
	"context"
	"fmt"

	"github.com/annotation-forge/annotator/pkg/notifications"
)

// Backend delivers notifications to one destination: the log, the CLI error
// stream (console), an ntfy topic, a Kafka topic read by the notifier relay,
// or memory for embedding UIs.
type Backend interface {
	// Name is the key the Registry stores the backend under.
	Name() string

	// Handle delivers n. It must be safe for concurrent use, since outage
	// notifications can be raised from any in-flight request.
	Handle(ctx context.Context, n *notifications.Notification) error
}

// BackendError is a delivery failure. Retryable tells the ntfy retry loop
// whether another attempt can succeed.
type BackendError struct {
	Backend   string // "ntfy", "kafka", "console", ...
	Operation string // "send", "publish", "marshal", "print"
	Retryable bool
	Err       error
}

func (e *BackendError) Error() string {
	kind := "permanent"
	if e.Retryable {
		kind = "retryable"
	}
	return fmt.Sprintf("%s backend: %s failed (%s): %v", e.Backend, e.Operation, kind, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether the failed delivery may be attempted again.
func (e *BackendError) IsRetryable() bool {
	return e.Retryable
}

// NewBackendError wraps err as a failure of operation on backend.
func NewBackendError(backend, operation string, retryable bool, err error) *BackendError {
	return &BackendError{
		Backend:   backend,
		Operation: operation,
		Retryable: retryable,
		Err:       err,
	}
}
