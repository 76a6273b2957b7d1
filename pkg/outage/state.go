package outage

import "sync/atomic"

// State records whether the outage notification has already been shown.
// The zero value is ready to use. A single State is shared by every listener
// that should notify at most once per process.
type State struct {
	notified atomic.Bool
}

// NewState returns a fresh, un-notified state.
func NewState() *State {
	return &State{}
}

// MarkNotified flips the state to notified. It returns true only for the
// caller that performed the flip.
func (s *State) MarkNotified() bool {
	return s.notified.CompareAndSwap(false, true)
}

// Notified reports whether the notification has been shown.
func (s *State) Notified() bool {
	return s.notified.Load()
}

// Reset clears the flag so the next outage notifies again.
func (s *State) Reset() {
	s.notified.Store(false)
}
