package backends

import (
	"context"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annotation-forge/annotator/pkg/notifications"
)

func TestMemoryBackend(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()

	assert.Equal(t, "memory", backend.Name())

	require.NoError(t, backend.Handle(ctx, notifications.New(notifications.NotificationTypeInfo, "test", "one")))
	require.NoError(t, backend.Handle(ctx, notifications.New(notifications.NotificationTypeInfo, "test", "two")))
	assert.Equal(t, 2, backend.Count())
	assert.Equal(t, "two", backend.Notifications()[1].Message)

	backend.FailWith(errors.New("full"))
	require.Error(t, backend.Handle(ctx, notifications.New(notifications.NotificationTypeInfo, "test", "three")))
	assert.Equal(t, 2, backend.Count())

	backend.Reset()
	assert.Zero(t, backend.Count())
}

func TestLogBackendHandle(t *testing.T) {
	backend := NewLogBackend(hclog.NewNullLogger())
	assert.Equal(t, "log", backend.Name())

	for _, typ := range []notifications.NotificationType{
		notifications.NotificationTypeError,
		notifications.NotificationTypeWarning,
		notifications.NotificationTypeInfo,
	} {
		err := backend.Handle(context.Background(), notifications.New(typ, "test", "message"))
		require.NoError(t, err)
	}
}

func TestBackendError(t *testing.T) {
	inner := errors.New("connection reset")
	err := NewBackendError("ntfy", "send", true, inner)

	assert.Equal(t, "ntfy backend: send failed (retryable): connection reset", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.True(t, err.IsRetryable())

	permanent := NewBackendError("kafka", "marshal", false, inner)
	assert.Contains(t, permanent.Error(), "permanent")
}

func TestConsoleBackend(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	var lines []string
	backend := NewConsoleBackend(func(s string) { lines = append(lines, s) })
	assert.Equal(t, "console", backend.Name())

	require.NoError(t, backend.Handle(context.Background(),
		notifications.New(notifications.NotificationTypeError, "outage", "Base de dados indisponível")))
	require.NoError(t, backend.Handle(context.Background(),
		notifications.New(notifications.NotificationTypeSuccess, "sync", "done")))

	assert.Equal(t, []string{
		"[ERROR] Base de dados indisponível",
		"[SUCCESS] done",
	}, lines)

	err := NewConsoleBackend(nil).Handle(context.Background(), notifications.New(notifications.NotificationTypeInfo, "x", "y"))
	require.Error(t, err)
}
