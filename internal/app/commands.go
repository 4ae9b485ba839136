package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/notehub/internal/api"
	"github.com/marcus/notehub/internal/note"
	"github.com/marcus/notehub/internal/query"
)

// Client is the part of the notes API the app talks to.
type Client interface {
	List(ctx context.Context, params api.ListParams) (*note.Page, error)
	Create(ctx context.Context, req api.CreateRequest) (*note.Note, error)
	Delete(ctx context.Context, id string) (*note.Note, error)
}

// Message types for tea.Cmd
type (
	// NotesLoadedMsg carries the outcome of a list fetch. Ticket decides
	// whether the result is still wanted.
	NotesLoadedMsg struct {
		Ticket query.Ticket
		Page   *note.Page
		Err    error
	}

	// NoteCreatedMsg reports a finished create.
	NoteCreatedMsg struct {
		Note *note.Note
		Err  error
	}

	// NoteDeletedMsg reports a finished delete.
	NoteDeletedMsg struct {
		ID    string
		Title string
		Err   error
	}
)

func listNotes(c Client, t query.Ticket, perPage int) tea.Cmd {
	return func() tea.Msg {
		page, err := c.List(context.Background(), api.ListParams{
			Page:    t.Key.Page,
			PerPage: perPage,
			Search:  t.Key.Search,
		})
		return NotesLoadedMsg{Ticket: t, Page: page, Err: err}
	}
}

func createNote(c Client, req api.CreateRequest) tea.Cmd {
	return func() tea.Msg {
		n, err := c.Create(context.Background(), req)
		return NoteCreatedMsg{Note: n, Err: err}
	}
}

func deleteNote(c Client, id, title string) tea.Cmd {
	return func() tea.Msg {
		_, err := c.Delete(context.Background(), id)
		return NoteDeletedMsg{ID: id, Title: title, Err: err}
	}
}
