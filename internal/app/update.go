package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/notehub/internal/api"
	"github.com/marcus/notehub/internal/debounce"
	"github.com/marcus/notehub/internal/form"
	"github.com/marcus/notehub/internal/keymap"
	appmsg "github.com/marcus/notehub/internal/msg"
	"github.com/marcus/notehub/internal/note"
	"github.com/marcus/notehub/internal/notelist"
	"github.com/marcus/notehub/internal/state"
)

// Update handles all messages and returns the updated model and commands.
// Any cache change to the observed key during the update is copied into the
// list before layout.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	if m.changed.take(m.notes.Key()) {
		m.applyResult()
	}
	m.layout()
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case debounce.SettledMsg:
		if !m.search.Update(msg) {
			return nil
		}
		return m.searchSettled()

	case NotesLoadedMsg:
		return m.handleNotesLoaded(msg)

	case notelist.DeleteMsg:
		if m.deleting[msg.ID] {
			return nil
		}
		m.deleting[msg.ID] = true
		slog.Debug("delete note", "id", msg.ID)
		return deleteNote(m.client, msg.ID, msg.Title)

	case NoteDeletedMsg:
		return m.handleNoteDeleted(msg)

	case form.SubmitMsg:
		if m.form == nil || m.createPending {
			return nil
		}
		m.createPending = true
		m.form.SetSubmitting(true)
		slog.Debug("create note", "title", msg.Values.Title, "tag", msg.Values.Tag)
		return createNote(m.client, api.CreateRequest{
			Title:   msg.Values.Title,
			Content: msg.Values.Content,
			Tag:     note.Tag(msg.Values.Tag),
		})

	case form.CancelMsg:
		if !m.createPending {
			m.closeForm()
		}
		return nil

	case NoteCreatedMsg:
		return m.handleNoteCreated(msg)

	case appmsg.ToastMsg:
		m.statusSeq++
		m.statusMsg = msg.Message
		m.statusIsError = msg.IsError
		d := msg.Duration
		if d <= 0 {
			d = m.cfg.UI.ToastDuration
		}
		return appmsg.ExpireToast(m.statusSeq, d)

	case appmsg.ToastExpiredMsg:
		if msg.Seq == m.statusSeq {
			m.statusMsg = ""
			m.statusIsError = false
		}
		return nil
	}

	// Cursor blink and other input-internal messages.
	if m.activeContext == keymap.ContextSearch {
		_, cmd := m.searchbox.Update(msg)
		return cmd
	}
	return nil
}

// handleNotesLoaded resolves a fetch. Superseded results are dropped by the
// cache; results for a key other than the current one are cached but leave
// the view alone.
func (m *Model) handleNotesLoaded(msg NotesLoadedMsg) tea.Cmd {
	if !m.cache.Resolve(msg.Ticket, msg.Page, msg.Err) {
		slog.Debug("drop superseded notes result", "key", msg.Ticket.Key.String())
		return nil
	}
	if msg.Err != nil {
		m.lastError = msg.Err
		slog.Error("list notes", "key", msg.Ticket.Key.String(), "err", msg.Err)
	}
	if msg.Ticket.Key != m.currentKey() {
		return nil
	}
	return m.clampPage()
}

func (m *Model) handleNoteDeleted(msg NoteDeletedMsg) tea.Cmd {
	delete(m.deleting, msg.ID)
	d := m.cfg.UI.ToastDuration

	if msg.Err != nil {
		m.lastError = msg.Err
		slog.Error("delete note", "id", msg.ID, "err", msg.Err)
		toast := appmsg.ShowError(fmt.Sprintf("Could not delete %q", msg.Title), msg.Err, d)
		if errors.Is(msg.Err, api.ErrNotFound) {
			// Already gone on the server; resync the list.
			return tea.Batch(toast, m.invalidateNotes())
		}
		m.applyResult()
		return toast
	}

	slog.Info("note deleted", "id", msg.ID)
	return tea.Batch(
		m.invalidateNotes(),
		appmsg.ShowToast(fmt.Sprintf("Deleted %q", msg.Title), d),
	)
}

func (m *Model) handleNoteCreated(msg NoteCreatedMsg) tea.Cmd {
	m.createPending = false
	if m.form != nil {
		m.form.SetSubmitting(false)
	}
	d := m.cfg.UI.ToastDuration

	if msg.Err != nil {
		m.lastError = msg.Err
		slog.Error("create note", "err", msg.Err)
		return appmsg.ShowError("Could not create note", msg.Err, d)
	}

	m.closeForm()
	title := ""
	if msg.Note != nil {
		title = msg.Note.Title
		slog.Info("note created", "id", msg.Note.ID)
	}
	return tea.Batch(
		m.invalidateNotes(),
		appmsg.ShowToast(fmt.Sprintf("Created %q", title), d),
	)
}

// searchSettled runs when the debounced search changes.
func (m *Model) searchSettled() tea.Cmd {
	if err := state.SetLastSearch(m.search.Settled()); err != nil {
		slog.Warn("save last search", "err", err)
	}
	return m.syncQuery()
}

// handleKeyMsg routes keyboard input to the active modal or context.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch m.activeModal() {
	case ModalCreate:
		switch cmd := m.keymap.Lookup(keymap.ContextForm, msg.String()); cmd {
		case "quit":
			return tea.Quit
		case "":
			return m.form.Update(msg)
		default:
			return m.form.Command(cmd)
		}

	case ModalHelp:
		switch m.keymap.Lookup(keymap.ContextList, msg.String()) {
		case "quit":
			return tea.Quit
		case "toggle-help":
			m.showHelp = false
		}
		if msg.Type == tea.KeyEsc {
			m.showHelp = false
		}
		return nil
	}

	switch m.activeContext {
	case keymap.ContextSearch:
		return m.handleSearchKey(msg)
	case keymap.ContextPreview:
		return m.handlePreviewKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch m.keymap.Lookup(keymap.ContextSearch, msg.String()) {
	case "quit":
		return tea.Quit

	case "blur-search":
		m.searchbox.Blur()
		m.activeContext = keymap.ContextList
		// Leaving the box applies the search without waiting out the delay.
		if m.search.Flush() {
			return m.searchSettled()
		}
		return nil

	case "clear-search":
		if m.searchbox.Value() == "" {
			return nil
		}
		m.searchbox.SetValue("")
		return m.setSearch("")
	}

	changed, cmd := m.searchbox.Update(msg)
	if !changed {
		return cmd
	}
	return tea.Batch(cmd, m.setSearch(m.searchbox.Value()))
}

func (m *Model) handleListKey(msg tea.KeyMsg) tea.Cmd {
	if m.pager.Visible() {
		if target, changed := m.pager.Update(msg); changed {
			return m.setPage(target)
		}
	}

	switch m.keymap.Lookup(keymap.ContextList, msg.String()) {
	case "quit":
		return tea.Quit
	case "new-note":
		return m.openForm()
	case "focus-search":
		m.activeContext = keymap.ContextSearch
		return m.searchbox.Focus()
	case "delete-note":
		return m.list.RequestDelete()
	case "cursor-down":
		m.list.MoveCursor(1)
		m.syncPreview()
	case "cursor-up":
		m.list.MoveCursor(-1)
		m.syncPreview()
	case "cursor-top":
		m.list.CursorTop()
		m.syncPreview()
	case "cursor-bottom":
		m.list.CursorBottom()
		m.syncPreview()
	case "refresh":
		return m.invalidateNotes()
	case "open-preview":
		if _, ok := m.list.Selected(); ok {
			m.activeContext = keymap.ContextPreview
			m.syncPreview()
		}
	case "toggle-preview":
		m.togglePreview()
	case "grow-preview":
		m.resizePreview(previewStep)
	case "shrink-preview":
		m.resizePreview(-previewStep)
	case "yank":
		return m.yankSelected()
	case "toggle-help":
		m.showHelp = !m.showHelp
	}
	return nil
}

func (m *Model) handlePreviewKey(msg tea.KeyMsg) tea.Cmd {
	switch m.keymap.Lookup(keymap.ContextPreview, msg.String()) {
	case "quit":
		return tea.Quit
	case "back":
		m.activeContext = keymap.ContextList
	case "scroll-down":
		m.preview.ScrollDown(1)
	case "scroll-up":
		m.preview.ScrollUp(1)
	case "yank":
		return m.yankSelected()
	}
	return nil
}

// yankSelected copies the selected note's content to the system clipboard.
func (m *Model) yankSelected() tea.Cmd {
	n, ok := m.list.Selected()
	if !ok {
		return nil
	}
	d := m.cfg.UI.ToastDuration
	if err := clipboard.WriteAll(n.Content); err != nil {
		return appmsg.ShowError("Copy failed", err, d)
	}
	return appmsg.ShowToast("Copied note content", d)
}
