package notifications

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// NotificationType is the severity of a user-facing notification
type NotificationType string

const (
	NotificationTypeError   NotificationType = "error"
	NotificationTypeWarning NotificationType = "warning"
	NotificationTypeInfo    NotificationType = "info"
	NotificationTypeSuccess NotificationType = "success"
)

// Notification is the envelope handed to notification backends. It mirrors
// the "open notification" action of the UI store: a message and a type.
type Notification struct {
	ID        string           `json:"id"`        // Unique notification ID (UUID)
	Type      NotificationType `json:"type"`      // Severity
	Message   string           `json:"message"`   // Text shown to the user
	Source    string           `json:"source"`    // Component that raised it
	Timestamp time.Time        `json:"timestamp"` // When raised
}

// New builds a notification with a fresh ID and timestamp.
func New(notifType NotificationType, source, message string) *Notification {
	return &Notification{
		ID:        uuid.New().String(),
		Type:      notifType,
		Message:   message,
		Source:    source,
		Timestamp: time.Now(),
	}
}

// Dispatcher delivers a notification to wherever the user will see it.
type Dispatcher interface {
	Dispatch(ctx context.Context, n *Notification) error
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(ctx context.Context, n *Notification) error

// Dispatch calls f(ctx, n).
func (f DispatcherFunc) Dispatch(ctx context.Context, n *Notification) error {
	return f(ctx, n)
}
