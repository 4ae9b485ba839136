package keymap

import (
	"reflect"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

func TestLookup(t *testing.T) {
	r := newDefaultRegistry()

	tests := []struct {
		context, key, want string
	}{
		{ContextList, "n", "new-note"},
		{ContextList, "x", "delete-note"},
		{ContextList, "right", "next-page"},
		{ContextList, "home", "first-page"},
		{ContextSearch, "esc", "blur-search"},
		{ContextSearch, "n", ""},
		{ContextForm, "ctrl+s", "submit"},
		{ContextPreview, "q", "back"},
		{"nowhere", "q", ""},
	}
	for _, tt := range tests {
		if got := r.Lookup(tt.context, tt.key); got != tt.want {
			t.Errorf("Lookup(%q, %q) = %q, want %q", tt.context, tt.key, got, tt.want)
		}
	}
}

func TestUserOverride(t *testing.T) {
	r := newDefaultRegistry()
	r.SetUserOverride("a", "new-note")

	if got := r.Lookup(ContextList, "a"); got != "new-note" {
		t.Errorf("override not applied: %q", got)
	}
	// Only contexts that have the command are affected.
	if got := r.Lookup(ContextSearch, "a"); got != "" {
		t.Errorf("override leaked into search context: %q", got)
	}
	if got := r.Lookup(ContextList, "n"); got != "new-note" {
		t.Errorf("default key should still work: %q", got)
	}
}

func TestOverrideShadowsDefault(t *testing.T) {
	r := newDefaultRegistry()
	r.SetUserOverride("r", "new-note")

	if got := r.Lookup(ContextList, "r"); got != "new-note" {
		t.Errorf("Lookup(r) = %q, want new-note", got)
	}
	if keys := r.Keys(ContextList, "refresh"); len(keys) != 0 {
		t.Errorf("refresh keys = %v, want none once shadowed", keys)
	}
}

func TestKeys(t *testing.T) {
	r := newDefaultRegistry()
	r.SetUserOverride("ctrl+d", "delete-note")

	got := r.Keys(ContextList, "delete-note")
	want := []string{"d", "x", "ctrl+d"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Keys = %v, want %v", got, want)
	}
}

func TestBindingMatches(t *testing.T) {
	r := newDefaultRegistry()
	b := r.Binding(ContextList, "next-page")

	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyRight},
		{Type: tea.KeyRunes, Runes: []rune{'l'}},
		{Type: tea.KeyPgDown},
	} {
		if !key.Matches(msg, b) {
			t.Errorf("binding should match %q", msg.String())
		}
	}
	if b.Help().Desc != "next page" {
		t.Errorf("help desc = %q", b.Help().Desc)
	}
}

func TestBindingUnknownDisabled(t *testing.T) {
	r := newDefaultRegistry()
	if r.Binding(ContextSearch, "new-note").Enabled() {
		t.Error("binding for a command missing from the context should be disabled")
	}
}

func TestHelpFor(t *testing.T) {
	r := newDefaultRegistry()
	km := r.HelpFor(ContextForm)

	short := km.ShortHelp()
	if len(short) != 4 {
		t.Fatalf("got %d help entries, want 4", len(short))
	}
	if short[0].Help().Desc != "next field" {
		t.Errorf("first entry = %q", short[0].Help().Desc)
	}

	full := km.FullHelp()
	n := 0
	for _, col := range full {
		n += len(col)
	}
	if n != len(short) {
		t.Errorf("full help has %d entries, want %d", n, len(short))
	}
}
