package notelist

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/notehub/internal/note"
)

func sampleNotes(n int) []note.Note {
	notes := make([]note.Note, n)
	for i := range notes {
		notes[i] = note.Note{
			ID:      fmt.Sprintf("n%d", i+1),
			Title:   fmt.Sprintf("Note %d", i+1),
			Content: "body",
			Tag:     note.TagWork,
		}
	}
	return notes
}

func TestSetNotesKeepsSelectionByID(t *testing.T) {
	m := New(nil)
	m.SetNotes(sampleNotes(5))
	m.MoveCursor(3) // n4

	// n1 deleted: n4 moves up one row
	m.SetNotes(sampleNotes(5)[1:])
	sel, ok := m.Selected()
	if !ok || sel.ID != "n4" {
		t.Errorf("selected = %q, want n4", sel.ID)
	}
	if m.Cursor() != 2 {
		t.Errorf("cursor = %d, want 2", m.Cursor())
	}
}

func TestSetNotesClampsWhenSelectionGone(t *testing.T) {
	m := New(nil)
	m.SetNotes(sampleNotes(5))
	m.CursorBottom()

	m.SetNotes(sampleNotes(2))
	if m.Cursor() != 1 {
		t.Errorf("cursor = %d, want 1", m.Cursor())
	}

	m.SetNotes(nil)
	if _, ok := m.Selected(); ok {
		t.Error("empty list should have no selection")
	}
}

func TestMoveCursorBounds(t *testing.T) {
	m := New(nil)
	m.SetNotes(sampleNotes(3))

	m.MoveCursor(-1)
	if m.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0", m.Cursor())
	}
	m.MoveCursor(10)
	if m.Cursor() != 2 {
		t.Errorf("cursor = %d, want 2", m.Cursor())
	}
	m.CursorTop()
	if m.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0 after top", m.Cursor())
	}
}

func TestRequestDelete(t *testing.T) {
	m := New(nil)
	m.SetNotes(sampleNotes(2))
	m.MoveCursor(1)

	cmd := m.RequestDelete()
	if cmd == nil {
		t.Fatal("expected delete command")
	}
	got, ok := cmd().(DeleteMsg)
	if !ok || got.ID != "n2" || got.Title != "Note 2" {
		t.Errorf("got %+v, want delete of n2", got)
	}
}

func TestRequestDeleteEmpty(t *testing.T) {
	m := New(nil)
	if m.RequestDelete() != nil {
		t.Error("empty list should not request a delete")
	}
}

func TestConcurrentDeletesIndependent(t *testing.T) {
	deleting := map[string]bool{"n1": true}
	m := New(func(id string) bool { return deleting[id] })
	m.SetNotes(sampleNotes(3))

	if m.RequestDelete() != nil {
		t.Error("n1 is in flight; its delete should be disabled")
	}

	m.MoveCursor(1)
	cmd := m.RequestDelete()
	if cmd == nil {
		t.Fatal("n2 delete should be enabled while n1 is in flight")
	}
	if got := cmd().(DeleteMsg); got.ID != "n2" {
		t.Errorf("got delete for %q, want n2", got.ID)
	}

	deleting["n2"] = true
	if m.RequestDelete() != nil {
		t.Error("n2 is now in flight; its delete should be disabled")
	}
	m.MoveCursor(1)
	if m.RequestDelete() == nil {
		t.Error("n3 delete should still be enabled")
	}
}

func TestViewShowsDeletingState(t *testing.T) {
	deleting := map[string]bool{"n2": true}
	m := New(func(id string) bool { return deleting[id] })
	m.SetSize(80, 20)
	m.SetNotes(sampleNotes(3))

	lines := strings.Split(ansi.Strip(m.View()), "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want 6", len(lines))
	}
	if !strings.Contains(lines[0], "del") || strings.Contains(lines[0], "deleting") {
		t.Errorf("selected row should offer delete: %q", lines[0])
	}
	if !strings.Contains(lines[2], "deleting…") {
		t.Errorf("in-flight row should show deleting: %q", lines[2])
	}
	if strings.Contains(lines[4], "del") {
		t.Errorf("idle unselected row should not show delete: %q", lines[4])
	}
}

func TestViewRowContents(t *testing.T) {
	m := New(nil)
	m.SetSize(60, 10)
	m.SetNotes([]note.Note{{ID: "a", Title: "Groceries", Content: "milk\neggs", Tag: note.TagShopping}})

	v := ansi.Strip(m.View())
	for _, want := range []string{"Groceries", "Shopping", "milk eggs"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q:\n%s", want, v)
		}
	}
	for _, line := range strings.Split(v, "\n") {
		if w := ansi.StringWidth(line); w > 60 {
			t.Errorf("line width %d exceeds 60: %q", w, line)
		}
	}
}

func TestViewEmpty(t *testing.T) {
	m := New(nil)
	m.SetEmptyText(`No notes match "zzz"`)
	if v := ansi.Strip(m.View()); v != `No notes match "zzz"` {
		t.Errorf("empty view = %q", v)
	}
}

func TestViewScrollsToCursor(t *testing.T) {
	m := New(nil)
	m.SetSize(60, 4) // two rows
	m.SetNotes(sampleNotes(5))
	m.CursorBottom()

	v := ansi.Strip(m.View())
	if !strings.Contains(v, "Note 5") || !strings.Contains(v, "Note 4") {
		t.Errorf("expected last two notes visible:\n%s", v)
	}
	if strings.Contains(v, "Note 1") {
		t.Errorf("first note should be scrolled out:\n%s", v)
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"", 10, ""},
		{"short", 10, "short"},
		{"  spaced\n\nout  ", 20, "spaced out"},
		{"abcdefghijkl", 5, "abcd…"},
	}
	for _, tt := range tests {
		if got := Excerpt(tt.in, tt.width); got != tt.want {
			t.Errorf("Excerpt(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
