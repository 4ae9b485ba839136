// Package notelist renders one page of notes with a selection cursor and a
// per-note delete affordance.
package notelist

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/notehub/internal/note"
	"github.com/marcus/notehub/internal/styles"
)

const (
	rowHeight     = 2 // title line + excerpt line
	cursorGlyph   = "▸ "
	deleteLabel   = "del"
	deletingLabel = "deleting…"
	ellipsis      = "…"
)

// DeleteMsg asks the owner to delete the note with ID.
type DeleteMsg struct {
	ID    string
	Title string
}

// Model is the note list. It never changes notes itself; the owner replaces
// them with SetNotes after each fetch.
type Model struct {
	notes      []note.Note
	cursor     int
	offset     int
	width      int
	height     int
	emptyText  string
	isDeleting func(id string) bool
}

// New creates an empty list. isDeleting reports whether a delete for id is in
// flight; it may be nil.
func New(isDeleting func(id string) bool) Model {
	if isDeleting == nil {
		isDeleting = func(string) bool { return false }
	}
	return Model{
		width:      60,
		height:     rowHeight * 10,
		emptyText:  "No notes yet. Press n to create one.",
		isDeleting: isDeleting,
	}
}

// SetNotes replaces the rows. The cursor stays on the same note when it is
// still present, otherwise it keeps its index within bounds.
func (m *Model) SetNotes(notes []note.Note) {
	selected := ""
	if n, ok := m.Selected(); ok {
		selected = n.ID
	}
	m.notes = notes

	if selected != "" {
		for i, n := range notes {
			if n.ID == selected {
				m.cursor = i
				m.ensureVisible()
				return
			}
		}
	}
	m.cursor = clamp(m.cursor, 0, max(0, len(notes)-1))
	m.ensureVisible()
}

// Notes returns the current rows.
func (m *Model) Notes() []note.Note { return m.notes }

// Len returns the number of rows.
func (m *Model) Len() int { return len(m.notes) }

// Cursor returns the selected row index.
func (m *Model) Cursor() int { return m.cursor }

// Selected returns the note under the cursor.
func (m *Model) Selected() (note.Note, bool) {
	if m.cursor < 0 || m.cursor >= len(m.notes) {
		return note.Note{}, false
	}
	return m.notes[m.cursor], true
}

// SetSize sets the render area.
func (m *Model) SetSize(width, height int) {
	m.width = max(20, width)
	m.height = max(rowHeight, height)
	m.ensureVisible()
}

// SetEmptyText sets the text shown when there are no rows.
func (m *Model) SetEmptyText(s string) { m.emptyText = s }

// MoveCursor moves the selection by delta rows.
func (m *Model) MoveCursor(delta int) {
	if len(m.notes) == 0 {
		return
	}
	m.cursor = clamp(m.cursor+delta, 0, len(m.notes)-1)
	m.ensureVisible()
}

// CursorTop selects the first row.
func (m *Model) CursorTop() {
	m.cursor = 0
	m.ensureVisible()
}

// CursorBottom selects the last row.
func (m *Model) CursorBottom() {
	m.cursor = max(0, len(m.notes)-1)
	m.ensureVisible()
}

// RequestDelete returns a command emitting DeleteMsg for the selected note, or
// nil when there is no selection or its delete is already in flight.
func (m *Model) RequestDelete() tea.Cmd {
	n, ok := m.Selected()
	if !ok || m.isDeleting(n.ID) {
		return nil
	}
	return func() tea.Msg {
		return DeleteMsg{ID: n.ID, Title: n.Title}
	}
}

func (m *Model) visibleRows() int {
	return max(1, m.height/rowHeight)
}

func (m *Model) ensureVisible() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	m.offset = clamp(m.offset, 0, max(0, len(m.notes)-rows))
}

// View renders the visible rows.
func (m *Model) View() string {
	if len(m.notes) == 0 {
		return styles.Muted.Render(m.emptyText)
	}

	end := min(len(m.notes), m.offset+m.visibleRows())
	rows := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		rows = append(rows, m.renderRow(m.notes[i], i == m.cursor))
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderRow(n note.Note, selected bool) string {
	prefix := "  "
	if selected {
		prefix = styles.ListCursor.Render(cursorGlyph)
	}

	tag := styles.TagStyle(n.Tag.String()).Render(n.Tag.String())
	action := m.renderAction(n.ID, selected)
	right := tag + " " + action

	titleWidth := m.width - lipgloss.Width(prefix) - lipgloss.Width(right) - 1
	title := ansi.Truncate(n.Title, max(1, titleWidth), ellipsis)
	titleStyle := styles.ListItemNormal
	if selected {
		titleStyle = styles.ListItemSelected
	}
	title = titleStyle.Bold(true).Render(title)

	gap := max(1, m.width-lipgloss.Width(prefix)-lipgloss.Width(title)-lipgloss.Width(right))
	line1 := prefix + title + strings.Repeat(" ", gap) + right

	excerptWidth := max(1, m.width-2)
	line2 := "  " + styles.ListExcerpt.Render(Excerpt(n.Content, excerptWidth))

	return line1 + "\n" + line2
}

// renderAction draws the delete affordance. It is shown on the selected row
// and on any row whose delete is in flight.
func (m *Model) renderAction(id string, selected bool) string {
	switch {
	case m.isDeleting(id):
		return styles.ButtonDisabled.Padding(0, 1).Render(deletingLabel)
	case selected:
		return styles.ButtonDanger.Padding(0, 1).Render(deleteLabel)
	default:
		return strings.Repeat(" ", lipgloss.Width(deleteLabel)+2)
	}
}

// Excerpt flattens content to one line and truncates it to width cells.
func Excerpt(content string, width int) string {
	flat := strings.Join(strings.Fields(content), " ")
	if flat == "" {
		return ""
	}
	return ansi.Truncate(flat, width, ellipsis)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
