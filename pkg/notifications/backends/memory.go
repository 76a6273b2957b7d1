package backends

import (
	"context"
	"sync"

	"github.com/annotation-forge/annotator/pkg/notifications"
)

// MemoryBackend keeps every notification it receives. Embedding UIs read
// them back with Notifications; tests use it to count deliveries.
type MemoryBackend struct {
	mu            sync.RWMutex
	notifications []*notifications.Notification
	failWith      error
}

// NewMemoryBackend creates a new memory backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		notifications: make([]*notifications.Notification, 0),
	}
}

// Name returns the backend identifier
func (b *MemoryBackend) Name() string {
	return "memory"
}

// Handle records the notification, or returns the injected failure
func (b *MemoryBackend) Handle(ctx context.Context, n *notifications.Notification) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failWith != nil {
		return b.failWith
	}
	b.notifications = append(b.notifications, n)
	return nil
}

// Notifications returns a copy of all recorded notifications
func (b *MemoryBackend) Notifications() []*notifications.Notification {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]*notifications.Notification, len(b.notifications))
	copy(out, b.notifications)
	return out
}

// Count returns the number of recorded notifications
func (b *MemoryBackend) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.notifications)
}

// FailWith makes every following Handle call return err (nil restores success)
func (b *MemoryBackend) FailWith(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failWith = err
}

// Reset clears all recorded notifications
func (b *MemoryBackend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notifications = make([]*notifications.Notification, 0)
}
