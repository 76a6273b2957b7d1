package backends

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/annotation-forge/annotator/pkg/notifications"
)

// ConsoleBackend shows notifications to the person at the terminal, the CLI
// counterpart of a UI snackbar.
type ConsoleBackend struct {
	emit func(string)
}

// NewConsoleBackend creates a console backend that emits each rendered
// notification through emit (e.g. cli.Ui.Error).
func NewConsoleBackend(emit func(string)) *ConsoleBackend {
	return &ConsoleBackend{emit: emit}
}

// Name returns the backend identifier
func (b *ConsoleBackend) Name() string {
	return "console"
}

// Handle renders the notification as a single highlighted line
func (b *ConsoleBackend) Handle(ctx context.Context, n *notifications.Notification) error {
	if b.emit == nil {
		return NewBackendError("console", "print", false, fmt.Errorf("no output configured"))
	}
	b.emit(render(n))
	return nil
}

func render(n *notifications.Notification) string {
	label := "[" + strings.ToUpper(string(n.Type)) + "]"
	return consoleColor(n.Type).Sprint(label) + " " + n.Message
}

func consoleColor(t notifications.NotificationType) *color.Color {
	switch t {
	case notifications.NotificationTypeError:
		return color.New(color.FgRed, color.Bold)
	case notifications.NotificationTypeWarning:
		return color.New(color.FgYellow, color.Bold)
	case notifications.NotificationTypeSuccess:
		return color.New(color.FgGreen)
	default:
		return color.New(color.FgCyan)
	}
}
