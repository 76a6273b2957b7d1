package backends

import (
	"context"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/annotation-forge/annotator/pkg/notifications"
)

// LogBackend writes notifications to the log. It is the terminal equivalent
// of a snackbar: the message lands where the user is already looking.
type LogBackend struct {
	logger hclog.Logger
}

// NewLogBackend creates a new log backend
func NewLogBackend(logger hclog.Logger) *LogBackend {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &LogBackend{
		logger: logger.Named("notification"),
	}
}

// Name returns the backend identifier
func (b *LogBackend) Name() string {
	return "log"
}

// Handle logs the notification at the level matching its type
func (b *LogBackend) Handle(ctx context.Context, n *notifications.Notification) error {
	args := []interface{}{
		"id", n.ID,
		"source", n.Source,
		"timestamp", n.Timestamp.Format(time.RFC3339),
	}

	switch n.Type {
	case notifications.NotificationTypeError:
		b.logger.Error(n.Message, args...)
	case notifications.NotificationTypeWarning:
		b.logger.Warn(n.Message, args...)
	default:
		b.logger.Info(n.Message, args...)
	}

	return nil
}
