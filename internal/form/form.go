// Package form is the create-note form: a title input, a content area, a tag
// selector and submit/cancel buttons inside a modal.
package form

import (
	"fmt"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/notehub/internal/modal"
	"github.com/marcus/notehub/internal/note"
	"github.com/marcus/notehub/internal/styles"
)

// Commands accepted by Command. They match the form-context command ids in
// the keymap.
const (
	CmdNextField = "next-field"
	CmdPrevField = "prev-field"
	CmdSubmit    = "submit"
	CmdCancel    = "cancel"
)

const contentRows = 6

// SubmitMsg carries valid, normalized values to the owner.
type SubmitMsg struct {
	Values Values
}

// CancelMsg tells the owner the user dismissed the form.
type CancelMsg struct{}

// Model is the form. It must stay addressable: the modal sections hold
// pointers into it.
type Model struct {
	title   textinput.Model
	content textarea.Model
	tagIdx  int
	tags    []string

	modal *modal.Modal

	errors     map[string]string
	touched    map[string]bool
	submitting bool
}

// New creates an empty form with the default tag selected.
func New() *Model {
	title := textinput.New()
	title.Placeholder = "What is this note about?"
	title.CharLimit = note.TitleMaxLen * 2 // over-long titles are reported, not cut
	title.Prompt = ""

	content := textarea.New()
	content.Placeholder = "Optional details"
	content.ShowLineNumbers = false
	content.CharLimit = 0
	content.SetHeight(contentRows)

	tags := make([]string, 0, len(note.Tags()))
	for _, t := range note.Tags() {
		tags = append(tags, t.String())
	}

	m := &Model{
		title:   title,
		content: content,
		tags:    tags,
		errors:  make(map[string]string),
		touched: make(map[string]bool),
	}
	m.tagIdx = indexOf(tags, note.DefaultTag.String())
	m.modal = m.buildModal()
	return m
}

func (m *Model) buildModal() *modal.Modal {
	busy := func() bool { return m.submitting }
	return modal.New("New note",
		modal.WithWidth(64),
		modal.WithPrimaryAction(CmdSubmit),
	).
		AddSection(modal.InputWithLabel(FieldTitle, "Title", &m.title)).
		AddSection(m.errorLine(FieldTitle)).
		AddSection(modal.TextareaWithLabel(FieldContent, "Content", &m.content)).
		AddSection(modal.Dynamic(m.contentCounter)).
		AddSection(m.errorLine(FieldContent)).
		AddSection(modal.Choice(FieldTag, "Tag", m.tags, &m.tagIdx)).
		AddSection(m.errorLine(FieldTag)).
		AddSection(modal.Spacer()).
		AddSection(modal.Buttons(
			modal.Btn(" Create note ", CmdSubmit, modal.BtnDisabled(busy)),
			modal.Btn(" Cancel ", CmdCancel, modal.BtnDisabled(busy)),
		)).
		AddSection(modal.When(busy, modal.Text(styles.StatusLoading.Render("Saving…"))))
}

func (m *Model) errorLine(field string) modal.Section {
	return modal.Dynamic(func(int) string {
		if e := m.errors[field]; e != "" {
			return styles.FieldError.Render(e)
		}
		return ""
	})
}

func (m *Model) contentCounter(int) string {
	n := utf8.RuneCountInString(m.content.Value())
	s := fmt.Sprintf("%d/%d", n, note.ContentMaxLen)
	if n > note.ContentMaxLen {
		return styles.FieldError.Render(s)
	}
	return styles.Subtle.Render(s)
}

// Init focuses the title field.
func (m *Model) Init() tea.Cmd {
	return m.title.Focus()
}

// Values returns the current raw field values.
func (m *Model) Values() Values {
	return Values{
		Title:   m.title.Value(),
		Content: m.content.Value(),
		Tag:     m.tags[m.tagIdx],
	}
}

// SetValues replaces the field values. A tag that is not one of the known
// tags leaves the selection unchanged.
func (m *Model) SetValues(v Values) {
	m.title.SetValue(v.Title)
	m.content.SetValue(v.Content)
	if i := indexOf(m.tags, v.Tag); i >= 0 {
		m.tagIdx = i
	}
}

// Errors returns the current field errors.
func (m *Model) Errors() map[string]string { return m.errors }

// FocusedField returns the id of the focused element.
func (m *Model) FocusedField() string { return m.modal.FocusedID() }

// Submitting reports whether a create is in flight.
func (m *Model) Submitting() bool { return m.submitting }

// SetSubmitting disables both buttons while a create is in flight.
func (m *Model) SetSubmitting(b bool) { m.submitting = b }

// Update handles keys that are not bound to a form command: text entry,
// tag selection and Enter. It returns SubmitMsg or CancelMsg commands when
// the user completes the form.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	before := m.modal.FocusedID()
	action, cmd := m.modal.HandleKey(km)
	m.trackBlur(before)

	switch action {
	case CmdSubmit:
		return m.submit()
	case CmdCancel:
		return m.cancel()
	}
	return cmd
}

// Command runs a form command resolved from the keymap. Unknown commands are
// ignored.
func (m *Model) Command(name string) tea.Cmd {
	switch name {
	case CmdNextField, CmdPrevField:
		before := m.modal.FocusedID()
		delta := 1
		if name == CmdPrevField {
			delta = -1
		}
		m.modal.CycleFocus(delta)
		m.trackBlur(before)
	case CmdSubmit:
		return m.submit()
	case CmdCancel:
		return m.cancel()
	}
	return nil
}

// trackBlur marks the field that held focus before a key as touched once
// focus leaves it, then revalidates every touched field.
func (m *Model) trackBlur(before string) {
	if before != m.modal.FocusedID() && isField(before) {
		m.touched[before] = true
	}
	m.revalidateTouched()
}

func (m *Model) cancel() tea.Cmd {
	if m.submitting {
		return nil
	}
	return func() tea.Msg { return CancelMsg{} }
}

// submit validates every field. Invalid forms show all errors and emit
// nothing.
func (m *Model) submit() tea.Cmd {
	if m.submitting {
		return nil
	}
	for _, f := range []string{FieldTitle, FieldContent, FieldTag} {
		m.touched[f] = true
	}
	m.errors = Validate(m.Values())
	if len(m.errors) > 0 {
		m.focusFirstError()
		return nil
	}
	v := m.Values().Normalized()
	return func() tea.Msg { return SubmitMsg{Values: v} }
}

func (m *Model) focusFirstError() {
	for _, f := range []string{FieldTitle, FieldContent, FieldTag} {
		if _, ok := m.errors[f]; ok {
			m.modal.SetFocus(f)
			return
		}
	}
}

func (m *Model) revalidateTouched() {
	all := Validate(m.Values())
	for f := range m.touched {
		if e, ok := all[f]; ok {
			m.errors[f] = e
		} else {
			delete(m.errors, f)
		}
	}
}

// View renders the form modal for a screen of the given size.
func (m *Model) View(width, height int) string {
	return m.modal.Render(width, height)
}

func isField(id string) bool {
	return id == FieldTitle || id == FieldContent || id == FieldTag
}

func indexOf(ss []string, s string) int {
	for i, v := range ss {
		if v == s {
			return i
		}
	}
	return -1
}
