package modal

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/notehub/internal/styles"
)

// Section is one block of modal content. Sections that take focus list their
// element ids in Focusables and receive keys for those ids in Update.
type Section interface {
	Render(contentWidth int, focusID string) string
	Focusables() []string
	Update(msg tea.KeyMsg, focusID string) (action string, cmd tea.Cmd)
}

// enterConsumer is implemented by sections that use Enter themselves, so the
// modal must not fall back to the primary action.
type enterConsumer interface {
	ConsumesEnter(focusID string) bool
}

func consumesEnter(s Section, focusID string) bool {
	c, ok := s.(enterConsumer)
	return ok && c.ConsumesEnter(focusID)
}

// static is embedded by sections without focusable elements.
type static struct{}

func (static) Focusables() []string { return nil }

func (static) Update(tea.KeyMsg, string) (string, tea.Cmd) { return "", nil }

// Text renders wrapped body text.
func Text(s string) Section { return textSection{text: s} }

type textSection struct {
	static
	text string
}

func (s textSection) Render(contentWidth int, _ string) string {
	return styles.Body.Width(contentWidth).Render(s.text)
}

// Spacer renders a blank line.
func Spacer() Section { return spacerSection{} }

type spacerSection struct{ static }

func (spacerSection) Render(int, string) string { return " " }

// Dynamic renders whatever fn returns at render time. An empty string hides
// the section.
func Dynamic(fn func(contentWidth int) string) Section { return dynamicSection{fn: fn} }

type dynamicSection struct {
	static
	fn func(int) string
}

func (s dynamicSection) Render(contentWidth int, _ string) string { return s.fn(contentWidth) }

// When shows s only while cond holds. A hidden section takes no focus.
func When(cond func() bool, s Section) Section { return whenSection{cond: cond, inner: s} }

type whenSection struct {
	cond  func() bool
	inner Section
}

func (s whenSection) Render(contentWidth int, focusID string) string {
	if !s.cond() {
		return ""
	}
	return s.inner.Render(contentWidth, focusID)
}

func (s whenSection) Focusables() []string {
	if !s.cond() {
		return nil
	}
	return s.inner.Focusables()
}

func (s whenSection) Update(msg tea.KeyMsg, focusID string) (string, tea.Cmd) {
	if !s.cond() {
		return "", nil
	}
	return s.inner.Update(msg, focusID)
}

func (s whenSection) ConsumesEnter(focusID string) bool {
	return s.cond() && consumesEnter(s.inner, focusID)
}

// InputWithLabel renders a labeled single-line input bound to model.
func InputWithLabel(id, label string, model *textinput.Model) Section {
	return &inputSection{id: id, label: label, model: model}
}

type inputSection struct {
	id    string
	label string
	model *textinput.Model
}

func (s *inputSection) Render(contentWidth int, focusID string) string {
	syncFocus(s.model, s.id == focusID)
	s.model.Width = max(1, contentWidth-lipgloss.Width(s.model.Prompt)-1)
	return labeled(s.label, s.model.View(), s.id == focusID)
}

func (s *inputSection) Focusables() []string { return []string{s.id} }

func (s *inputSection) Update(msg tea.KeyMsg, focusID string) (string, tea.Cmd) {
	if focusID != s.id {
		return "", nil
	}
	syncFocus(s.model, true)
	var cmd tea.Cmd
	*s.model, cmd = s.model.Update(msg)
	return "", cmd
}

// TextareaWithLabel renders a labeled multi-line input bound to model.
// Enter inserts a newline.
func TextareaWithLabel(id, label string, model *textarea.Model) Section {
	return &textareaSection{id: id, label: label, model: model}
}

type textareaSection struct {
	id    string
	label string
	model *textarea.Model
}

func (s *textareaSection) Render(contentWidth int, focusID string) string {
	if s.id == focusID {
		if !s.model.Focused() {
			s.model.Focus()
		}
	} else if s.model.Focused() {
		s.model.Blur()
	}
	s.model.SetWidth(max(1, contentWidth))
	return labeled(s.label, s.model.View(), s.id == focusID)
}

func (s *textareaSection) Focusables() []string { return []string{s.id} }

func (s *textareaSection) Update(msg tea.KeyMsg, focusID string) (string, tea.Cmd) {
	if focusID != s.id {
		return "", nil
	}
	if !s.model.Focused() {
		s.model.Focus()
	}
	var cmd tea.Cmd
	*s.model, cmd = s.model.Update(msg)
	return "", cmd
}

func (s *textareaSection) ConsumesEnter(focusID string) bool { return focusID == s.id }

// Choice renders a one-of selector. Left/right cycle through options.
func Choice(id, label string, options []string, selected *int) Section {
	return &choiceSection{id: id, label: label, options: options, selected: selected}
}

type choiceSection struct {
	id       string
	label    string
	options  []string
	selected *int
}

func (s *choiceSection) Render(_ int, focusID string) string {
	parts := make([]string, 0, len(s.options))
	for i, opt := range s.options {
		switch {
		case i == *s.selected && focusID == s.id:
			parts = append(parts, styles.ButtonFocused.Render(opt))
		case i == *s.selected:
			parts = append(parts, styles.Button.Render(opt))
		default:
			parts = append(parts, styles.Muted.Padding(0, 2).Render(opt))
		}
	}
	return labeled(s.label, strings.Join(parts, " "), focusID == s.id)
}

func (s *choiceSection) Focusables() []string { return []string{s.id} }

func (s *choiceSection) Update(msg tea.KeyMsg, focusID string) (string, tea.Cmd) {
	if focusID != s.id || len(s.options) == 0 {
		return "", nil
	}
	n := len(s.options)
	switch msg.String() {
	case "left", "h":
		*s.selected = (*s.selected - 1 + n) % n
	case "right", "l", " ":
		*s.selected = (*s.selected + 1) % n
	}
	return "", nil
}

// Button is one entry of a Buttons row.
type Button struct {
	Label    string
	ID       string
	disabled func() bool
}

// BtnOption configures a Button.
type BtnOption func(*Button)

// BtnDisabled disables the button while fn returns true.
func BtnDisabled(fn func() bool) BtnOption { return func(b *Button) { b.disabled = fn } }

// Btn creates a button whose action is id.
func Btn(label, id string, opts ...BtnOption) Button {
	b := Button{Label: label, ID: id}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b Button) isDisabled() bool { return b.disabled != nil && b.disabled() }

// Buttons renders a row of buttons. Enter on an enabled button returns its id;
// Enter on a disabled one does nothing.
func Buttons(btns ...Button) Section { return buttonsSection{btns: btns} }

type buttonsSection struct {
	btns []Button
}

func (s buttonsSection) Render(_ int, focusID string) string {
	parts := make([]string, 0, len(s.btns))
	for _, b := range s.btns {
		style := styles.Button
		switch {
		case b.isDisabled():
			style = styles.ButtonDisabled
		case b.ID == focusID:
			style = styles.ButtonFocused
		}
		parts = append(parts, style.Render(b.Label))
	}
	return strings.Join(parts, "  ")
}

func (s buttonsSection) Focusables() []string {
	ids := make([]string, len(s.btns))
	for i, b := range s.btns {
		ids[i] = b.ID
	}
	return ids
}

func (s buttonsSection) Update(msg tea.KeyMsg, focusID string) (string, tea.Cmd) {
	if msg.String() != "enter" {
		return "", nil
	}
	for _, b := range s.btns {
		if b.ID == focusID && !b.isDisabled() {
			return b.ID, nil
		}
	}
	return "", nil
}

func (s buttonsSection) ConsumesEnter(focusID string) bool {
	for _, b := range s.btns {
		if b.ID == focusID {
			return true
		}
	}
	return false
}

func syncFocus(ti *textinput.Model, focused bool) {
	switch {
	case focused && !ti.Focused():
		ti.Focus()
	case !focused && ti.Focused():
		ti.Blur()
	}
}

func labeled(label, body string, focused bool) string {
	if label == "" {
		return body
	}
	l := styles.FieldLabel.Render(label)
	if focused {
		l = styles.FieldLabel.Foreground(styles.Primary).Render(label)
	}
	return l + "\n" + body
}
