package debounce

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestRapidSetsSettleOnce(t *testing.T) {
	v := New(0)

	var msgs []tea.Msg
	for _, s := range []string{"m", "mi", "mil", "milk"} {
		msgs = append(msgs, v.Set(s)())
	}

	changes := 0
	for _, m := range msgs {
		if v.Update(m) {
			changes++
		}
	}
	if changes != 1 {
		t.Errorf("got %d settles, want 1", changes)
	}
	if v.Settled() != "milk" {
		t.Errorf("settled = %q, want milk", v.Settled())
	}
}

func TestStaleTickIgnored(t *testing.T) {
	v := New(0)
	first := v.Set("a")()
	v.Set("ab")

	if v.Update(first) {
		t.Error("tick from an earlier Set must not settle")
	}
	if v.Settled() != "" {
		t.Errorf("settled = %q, want empty", v.Settled())
	}
}

func TestSettleSameValueNoChange(t *testing.T) {
	v := New(0)
	v.Update(v.Set("x")())
	if v.Update(v.Set("x")()) {
		t.Error("settling to the same value should not report a change")
	}
}

func TestOtherValuesMessagesIgnored(t *testing.T) {
	a, b := New(0), New(0)
	msg := a.Set("hello")()
	b.Set("hello")

	if b.Update(msg) {
		t.Error("message from another Value must be ignored")
	}
	if !a.Update(msg) {
		t.Error("a should settle on its own message")
	}
}

func TestFlushSettlesImmediately(t *testing.T) {
	v := New(time.Hour)
	v.Set("now")
	if !v.Flush() {
		t.Fatal("Flush should settle pending value")
	}
	if v.Settled() != "now" {
		t.Errorf("settled = %q", v.Settled())
	}
	if v.Flush() {
		t.Error("second Flush has nothing to settle")
	}
}

func TestTickWaitsQuietPeriod(t *testing.T) {
	const delay = 30 * time.Millisecond
	v := New(delay)

	start := time.Now()
	msg := v.Set("q")()
	elapsed := time.Since(start)

	if elapsed < delay {
		t.Errorf("tick fired after %v, want >= %v", elapsed, delay)
	}
	if !v.Update(msg) {
		t.Error("tick should settle value")
	}
	if v.Settled() != "q" {
		t.Errorf("settled = %q", v.Settled())
	}
}

func TestNegativeDelayClamped(t *testing.T) {
	v := New(-time.Second)
	if v.Delay() != 0 {
		t.Errorf("delay = %v, want 0", v.Delay())
	}
}
