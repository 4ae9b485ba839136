package modal

import (
	tea "github.com/charmbracelet/bubbletea"
)

const (
	DefaultWidth  = 60
	MinModalWidth = 30
	ModalPadding  = 6 // border(2) + horizontal padding(4)
)

// Option configures a Modal.
type Option func(*Modal)

// WithWidth sets the preferred modal width.
func WithWidth(w int) Option {
	return func(m *Modal) {
		if w > 0 {
			m.width = w
		}
	}
}

// WithPrimaryAction sets the action returned when Enter is pressed on an
// element that has no action of its own.
func WithPrimaryAction(action string) Option {
	return func(m *Modal) { m.primaryAction = action }
}

// Modal is a declarative dialog built from sections. Key handling returns
// action ids; the owner decides what they mean.
type Modal struct {
	title         string
	width         int
	sections      []Section
	primaryAction string

	focusIdx int
}

// New creates a new Modal with the given title and options.
func New(title string, opts ...Option) *Modal {
	m := &Modal{
		title: title,
		width: DefaultWidth,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddSection adds a section to the modal. Returns the modal for chaining.
func (m *Modal) AddSection(s Section) *Modal {
	m.sections = append(m.sections, s)
	return m
}

// HandleKey processes keyboard input.
// Returns:
//   - action: "cancel" for Esc, a button id for Enter on a button, the
//     primary action for Enter elsewhere, or whatever the focused section returns
//   - cmd: any tea.Cmd from bubbles models (cursor blink, etc.)
func (m *Modal) HandleKey(msg tea.KeyMsg) (action string, cmd tea.Cmd) {
	switch msg.String() {
	case "esc":
		return "cancel", nil

	case "tab":
		m.CycleFocus(1)
		return "", nil

	case "shift+tab":
		m.CycleFocus(-1)
		return "", nil

	case "enter":
		focusID := m.currentFocusID()
		if focusID == "" {
			return "", nil
		}
		section := m.focusedSection(focusID)
		if section == nil {
			return "", nil
		}
		action, cmd = section.Update(msg, focusID)
		if action != "" || consumesEnter(section, focusID) {
			return action, cmd
		}
		if m.primaryAction != "" {
			return m.primaryAction, cmd
		}
		return focusID, cmd

	default:
		focusID := m.currentFocusID()
		if section := m.focusedSection(focusID); section != nil {
			return section.Update(msg, focusID)
		}
		return "", nil
	}
}

// SetFocus moves focus to the element with the given id. Unknown ids are
// ignored.
func (m *Modal) SetFocus(id string) {
	for i, fid := range m.focusIDs() {
		if fid == id {
			m.focusIdx = i
			return
		}
	}
}

// FocusedID returns the currently focused element ID.
func (m *Modal) FocusedID() string {
	return m.currentFocusID()
}

// focusIDs lists focusable element ids in section order. Hidden sections
// contribute nothing.
func (m *Modal) focusIDs() []string {
	var ids []string
	for _, s := range m.sections {
		ids = append(ids, s.Focusables()...)
	}
	return ids
}

func (m *Modal) currentFocusID() string {
	ids := m.focusIDs()
	if len(ids) == 0 {
		return ""
	}
	if m.focusIdx < 0 || m.focusIdx >= len(ids) {
		return ids[0]
	}
	return ids[m.focusIdx]
}

// CycleFocus moves focus by delta (1 for next, -1 for previous), wrapping at
// either end.
func (m *Modal) CycleFocus(delta int) {
	ids := m.focusIDs()
	if len(ids) == 0 {
		return
	}
	m.focusIdx = (m.focusIdx + delta + len(ids)) % len(ids)
}

// focusedSection returns the section owning focusID.
func (m *Modal) focusedSection(focusID string) Section {
	if focusID == "" {
		return nil
	}
	for _, s := range m.sections {
		for _, id := range s.Focusables() {
			if id == focusID {
				return s
			}
		}
	}
	return nil
}
