// Package preview renders a single note as markdown in a scrollable pane.
package preview

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"

	"github.com/marcus/notehub/internal/note"
	"github.com/marcus/notehub/internal/styles"
)

const minWrapWidth = 20

// Model is the preview pane.
type Model struct {
	style string
	vp    viewport.Model

	renderer      *glamour.TermRenderer
	rendererWidth int

	note     note.Note
	hasNote  bool
	rendered string // cache key: id + width
}

// New creates an empty preview. style is a glamour standard style name or
// "auto".
func New(style string) Model {
	return Model{style: style, vp: viewport.New(40, 10)}
}

// SetSize resizes the pane and re-renders for the new width.
func (m *Model) SetSize(width, height int) {
	if width == m.vp.Width && height == m.vp.Height {
		return
	}
	m.vp.Width = max(1, width)
	m.vp.Height = max(1, height)
	m.refresh()
}

// SetNote shows n. ok=false clears the pane.
func (m *Model) SetNote(n note.Note, ok bool) {
	if !ok {
		m.hasNote = false
		m.note = note.Note{}
		m.vp.SetContent(styles.Muted.Render("No note selected"))
		m.rendered = ""
		return
	}
	if m.hasNote && n == m.note {
		return
	}
	changed := !m.hasNote || n.ID != m.note.ID
	m.note = n
	m.hasNote = true
	m.rendered = ""
	m.refresh()
	if changed {
		m.vp.GotoTop()
	}
}

// NoteID returns the id of the shown note, or "".
func (m *Model) NoteID() string {
	if !m.hasNote {
		return ""
	}
	return m.note.ID
}

// ScrollDown scrolls by n lines.
func (m *Model) ScrollDown(n int) { m.vp.ScrollDown(n) }

// ScrollUp scrolls by n lines.
func (m *Model) ScrollUp(n int) { m.vp.ScrollUp(n) }

// AtTop reports whether the pane is scrolled to the top.
func (m *Model) AtTop() bool { return m.vp.AtTop() }

// View renders the pane.
func (m *Model) View() string {
	return m.vp.View()
}

func (m *Model) refresh() {
	if !m.hasNote {
		return
	}
	key := fmt.Sprintf("%s@%d", m.note.ID, m.vp.Width)
	if key == m.rendered {
		return
	}
	m.vp.SetContent(m.render(m.vp.Width))
	m.rendered = key
}

func (m *Model) render(width int) string {
	md := Markdown(m.note)
	r, err := m.rendererFor(width)
	if err != nil {
		slog.Debug("glamour renderer", "err", err)
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		slog.Debug("glamour render", "id", m.note.ID, "err", err)
		return md
	}
	return strings.TrimRight(out, "\n")
}

func (m *Model) rendererFor(width int) (*glamour.TermRenderer, error) {
	wrap := max(minWrapWidth, width-2)
	if m.renderer != nil && m.rendererWidth == wrap {
		return m.renderer, nil
	}

	styleOpt := glamour.WithStandardStyle(m.style)
	if m.style == "auto" || m.style == "" {
		styleOpt = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(wrap))
	if err != nil {
		return nil, err
	}
	m.renderer = r
	m.rendererWidth = wrap
	return r, nil
}

// Markdown formats n as a markdown document.
func Markdown(n note.Note) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", n.Title)
	fmt.Fprintf(&b, "`%s`", n.Tag)
	if !n.CreatedAt.IsZero() {
		fmt.Fprintf(&b, " · %s", n.CreatedAt.Format("Jan 2, 2006 15:04"))
	}
	b.WriteString("\n\n")
	if content := strings.TrimSpace(n.Content); content != "" {
		b.WriteString(content)
		b.WriteString("\n")
	} else {
		b.WriteString("_No content_\n")
	}
	return b.String()
}
