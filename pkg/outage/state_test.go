package outage

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_MarkNotifiedOnce(t *testing.T) {
	s := NewState()
	assert.False(t, s.Notified())

	assert.True(t, s.MarkNotified())
	assert.False(t, s.MarkNotified())
	assert.True(t, s.Notified())

	s.Reset()
	assert.False(t, s.Notified())
	assert.True(t, s.MarkNotified())
}

func TestState_ConcurrentMarkNotified(t *testing.T) {
	var s State
	var winners atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.MarkNotified() {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), winners.Load())
}

func TestRenderContexts(t *testing.T) {
	assert.True(t, StaticContext(true).Interactive())
	assert.False(t, StaticContext(false).Interactive())
	assert.False(t, NewTerminalContext(true).Interactive())
}
