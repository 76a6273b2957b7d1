package outage

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/annotation-forge/annotator/pkg/apiclient"
	"github.com/annotation-forge/annotator/pkg/notifications"
)

const (
	// DefaultMessage is shown when the backend reports 503.
	DefaultMessage = "Base de dados indisponível"

	// Source tags notifications raised by the listener.
	Source = "outage"

	defaultDispatchTimeout = 10 * time.Second
)

// Listener turns 503 responses into a single user-facing error notification.
type Listener struct {
	State         *State
	Dispatcher    notifications.Dispatcher
	RenderContext RenderContext
	Message       string

	// DispatchTimeout bounds a single dispatch (defaults to 10s).
	DispatchTimeout time.Duration

	Logger hclog.Logger
}

// NewListener creates a listener with the default message and a fresh state.
func NewListener(dispatcher notifications.Dispatcher, rc RenderContext, logger hclog.Logger) *Listener {
	return &Listener{
		State:         NewState(),
		Dispatcher:    dispatcher,
		RenderContext: rc,
		Message:       DefaultMessage,
		Logger:        logger,
	}
}

// Attach installs the listener on every given client.
func (l *Listener) Attach(clients ...*apiclient.Client) {
	for _, c := range clients {
		if c != nil {
			c.Use(l.Observe)
		}
	}
}

// Observe is an apiclient.ResponseInterceptor. It never alters the outcome
// of the request it observes.
func (l *Listener) Observe(_ *apiclient.Response, err error) {
	if err == nil {
		return
	}
	var httpErr *apiclient.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusServiceUnavailable {
		return
	}

	logger := l.logger()
	if l.RenderContext == nil || !l.RenderContext.Interactive() {
		logger.Debug("service unavailable, no render context", "url", httpErr.URL)
		return
	}
	if l.State == nil || l.Dispatcher == nil {
		return
	}
	if !l.State.MarkNotified() {
		return
	}

	message := l.Message
	if message == "" {
		message = DefaultMessage
	}
	timeout := l.DispatchTimeout
	if timeout <= 0 {
		timeout = defaultDispatchTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	n := notifications.New(notifications.NotificationTypeError, Source, message)
	if err := l.Dispatcher.Dispatch(ctx, n); err != nil {
		logger.Error("failed to dispatch outage notification", "id", n.ID, "error", err)
		return
	}
	logger.Info("service unavailable, user notified", "url", httpErr.URL, "id", n.ID)
}

func (l *Listener) logger() hclog.Logger {
	if l.Logger == nil {
		return hclog.NewNullLogger()
	}
	return l.Logger.Named("outage")
}
