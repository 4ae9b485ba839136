// Package debounce delays propagation of a rapidly changing string until it
// has been stable for a quiet period.
package debounce

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultDelay is the quiet period used when none is configured.
const DefaultDelay = 300 * time.Millisecond

var lastID atomic.Int64

// SettledMsg is delivered when a quiet period ends. Only the message from the
// most recent Set settles the value; older ones are ignored.
type SettledMsg struct {
	id  int64
	gen int
}

// Value is a debounced string.
type Value struct {
	id      int64
	delay   time.Duration
	gen     int
	pending string
	settled string
}

// New creates a Value with the given quiet period.
func New(delay time.Duration) Value {
	if delay < 0 {
		delay = 0
	}
	return Value{id: lastID.Add(1), delay: delay}
}

// Delay returns the quiet period.
func (v *Value) Delay() time.Duration { return v.delay }

// Pending returns the latest raw value.
func (v *Value) Pending() string { return v.pending }

// Settled returns the debounced value.
func (v *Value) Settled() string { return v.settled }

// Set records a new raw value and restarts the quiet period. The returned
// command must be run by the Bubble Tea program.
func (v *Value) Set(s string) tea.Cmd {
	v.pending = s
	v.gen++
	msg := SettledMsg{id: v.id, gen: v.gen}
	if v.delay == 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(v.delay, func(time.Time) tea.Msg { return msg })
}

// Update consumes a SettledMsg. It reports whether the settled value changed.
func (v *Value) Update(msg tea.Msg) bool {
	m, ok := msg.(SettledMsg)
	if !ok || m.id != v.id || m.gen != v.gen {
		return false
	}
	return v.Flush()
}

// Flush settles the pending value immediately. It reports whether the
// settled value changed.
func (v *Value) Flush() bool {
	// Invalidate any tick still in flight.
	v.gen++
	if v.settled == v.pending {
		return false
	}
	v.settled = v.pending
	return true
}
