package preview

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/notehub/internal/note"
)

func TestMarkdown(t *testing.T) {
	n := note.Note{
		ID:        "1",
		Title:     "Standup",
		Content:   "  - yesterday\n- today  ",
		Tag:       note.TagMeeting,
		CreatedAt: time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC),
	}
	md := Markdown(n)
	for _, want := range []string{"# Standup", "`Meeting`", "Mar 5, 2024 09:30", "- yesterday\n- today\n"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestMarkdownEmptyContent(t *testing.T) {
	md := Markdown(note.Note{Title: "Empty", Tag: note.TagTodo})
	if !strings.Contains(md, "_No content_") {
		t.Errorf("expected placeholder:\n%s", md)
	}
	if strings.Contains(md, "·") {
		t.Errorf("zero time should not be shown:\n%s", md)
	}
}

func TestViewRendersNote(t *testing.T) {
	m := New("notty")
	m.SetSize(60, 20)
	m.SetNote(note.Note{ID: "a", Title: "Groceries", Content: "milk and eggs", Tag: note.TagShopping}, true)

	v := ansi.Strip(m.View())
	for _, want := range []string{"Groceries", "Shopping", "milk and eggs"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q:\n%s", want, v)
		}
	}
	if m.NoteID() != "a" {
		t.Errorf("NoteID() = %q", m.NoteID())
	}
}

func TestClearNote(t *testing.T) {
	m := New("notty")
	m.SetNote(note.Note{ID: "a", Title: "Groceries", Tag: note.TagShopping}, true)
	m.SetNote(note.Note{}, false)

	if m.NoteID() != "" {
		t.Errorf("NoteID() = %q, want empty", m.NoteID())
	}
	if v := ansi.Strip(m.View()); !strings.Contains(v, "No note selected") {
		t.Errorf("cleared view = %q", v)
	}
}

func TestNewNoteScrollsToTop(t *testing.T) {
	m := New("notty")
	m.SetSize(40, 3)
	long := strings.Repeat("line\n\n", 40)
	m.SetNote(note.Note{ID: "a", Title: "Long", Content: long, Tag: note.TagWork}, true)

	m.ScrollDown(5)
	if m.AtTop() {
		t.Fatal("expected to scroll away from top")
	}
	m.SetNote(note.Note{ID: "b", Title: "Other", Content: long, Tag: note.TagWork}, true)
	if !m.AtTop() {
		t.Error("switching notes should reset scroll")
	}
}

func TestRendererReusedForSameWidth(t *testing.T) {
	m := New("notty")
	m.SetSize(50, 10)
	m.SetNote(note.Note{ID: "a", Title: "One", Tag: note.TagTodo}, true)
	r := m.renderer

	m.SetNote(note.Note{ID: "b", Title: "Two", Tag: note.TagTodo}, true)
	if m.renderer != r {
		t.Error("renderer should be reused when the width is unchanged")
	}

	m.SetSize(70, 10)
	if m.renderer == r {
		t.Error("renderer should be rebuilt for a new width")
	}
}
