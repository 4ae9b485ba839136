// Package searchbox is the free-text note filter input.
//
// The box is controlled: it reports every change to its owner immediately and
// does no debouncing of its own.
package searchbox

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/notehub/internal/styles"
)

const (
	defaultPlaceholder = "Search notes"
	defaultWidth       = 30
	maxQueryLen        = 100
)

// Model wraps a text input.
type Model struct {
	input textinput.Model
}

// New creates an empty, blurred search box.
func New() Model {
	ti := textinput.New()
	ti.Placeholder = defaultPlaceholder
	ti.Prompt = "/ "
	ti.CharLimit = maxQueryLen
	ti.Width = defaultWidth
	ti.PromptStyle = styles.Muted
	ti.PlaceholderStyle = styles.Subtle
	return Model{input: ti}
}

// Value returns the current text.
func (m *Model) Value() string { return m.input.Value() }

// SetValue replaces the text without reporting a change.
func (m *Model) SetValue(s string) { m.input.SetValue(s) }

// SetWidth sets the visible input width.
func (m *Model) SetWidth(w int) {
	if w > 0 {
		m.input.Width = w
	}
}

// Focus gives the box keyboard focus.
func (m *Model) Focus() tea.Cmd { return m.input.Focus() }

// Blur removes keyboard focus.
func (m *Model) Blur() { m.input.Blur() }

// Focused reports whether the box has focus.
func (m *Model) Focused() bool { return m.input.Focused() }

// Update feeds msg to the input. It reports whether the text changed so the
// owner can react in the same update.
func (m *Model) Update(msg tea.Msg) (changed bool, cmd tea.Cmd) {
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	return m.input.Value() != before, cmd
}

// View renders the box.
func (m *Model) View() string {
	style := styles.PanelInactive
	if m.input.Focused() {
		style = styles.PanelActive
	}
	return style.Render(m.input.View())
}
