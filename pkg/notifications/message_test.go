package notifications

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	n := New(NotificationTypeError, "outage", "Base de dados indisponível")

	_, err := uuid.Parse(n.ID)
	require.NoError(t, err, "ID should be a UUID")
	assert.Equal(t, NotificationTypeError, n.Type)
	assert.Equal(t, "outage", n.Source)
	assert.Equal(t, "Base de dados indisponível", n.Message)
	assert.False(t, n.Timestamp.IsZero())

	assert.NotEqual(t, n.ID, New(NotificationTypeError, "outage", "again").ID)
}

func TestNotificationJSON(t *testing.T) {
	n := New(NotificationTypeWarning, "repository", "unexpected response")

	data, err := json.Marshal(n)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, "warning", fields["type"])
	assert.Equal(t, "unexpected response", fields["message"])
	assert.Contains(t, fields, "id")
	assert.Contains(t, fields, "timestamp")
}

func TestDispatcherFunc(t *testing.T) {
	var got *Notification
	d := DispatcherFunc(func(ctx context.Context, n *Notification) error {
		got = n
		return nil
	})

	n := New(NotificationTypeInfo, "test", "hello")
	require.NoError(t, d.Dispatch(context.Background(), n))
	assert.Same(t, n, got)
}
