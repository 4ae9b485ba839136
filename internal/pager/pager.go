// Package pager renders page controls for the note list.
//
// Pages are 1-based at the package boundary. The underlying bubbles
// paginator counts from zero, so every value crossing the boundary is shifted
// by one.
package pager

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/notehub/internal/styles"
)

const (
	breakLabel    = "..."
	previousLabel = "<"
	nextLabel     = ">"

	// siblings is how many pages are shown on each side of the current one;
	// boundary is how many are always shown at each end.
	siblings = 1
	boundary = 1
)

// KeyMap holds the page navigation bindings. Prev and Next are handed to the
// paginator; First and Last are handled here.
type KeyMap struct {
	Prev  key.Binding
	Next  key.Binding
	First key.Binding
	Last  key.Binding
}

// DefaultKeyMap returns the paginator's prev/next keys plus home/end.
func DefaultKeyMap() KeyMap {
	p := paginator.DefaultKeyMap
	return KeyMap{
		Prev:  p.PrevPage,
		Next:  p.NextPage,
		First: key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first page")),
		Last:  key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last page")),
	}
}

// Model is the page control.
type Model struct {
	p    paginator.Model
	keys KeyMap
}

// New creates a pager showing page 1 of 1.
func New() Model {
	p := paginator.New()
	p.Type = paginator.Arabic
	p.PerPage = 1
	p.SetTotalPages(1)
	m := Model{p: p}
	m.SetKeyMap(DefaultKeyMap())
	return m
}

// SetKeyMap replaces the navigation bindings.
func (m *Model) SetKeyMap(km KeyMap) {
	m.keys = km
	m.p.KeyMap.PrevPage = km.Prev
	m.p.KeyMap.NextPage = km.Next
}

// Set updates the current page (1-based) and the page count.
func (m *Model) Set(page, totalPages int) {
	if totalPages < 1 {
		totalPages = 1
	}
	m.p.TotalPages = totalPages
	m.p.Page = clamp(page, 1, totalPages) - 1
}

// Page returns the current 1-based page.
func (m *Model) Page() int { return m.p.Page + 1 }

// TotalPages returns the page count.
func (m *Model) TotalPages() int { return m.p.TotalPages }

// Visible reports whether there is more than one page to choose from.
func (m *Model) Visible() bool { return m.p.TotalPages > 1 }

// KeyMap returns the navigation bindings.
func (m *Model) KeyMap() KeyMap { return m.keys }

// Update handles navigation keys. It returns the 1-based target page and
// whether the page changed.
func (m *Model) Update(msg tea.Msg) (target int, changed bool) {
	before := m.p.Page

	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, m.keys.First):
			m.p.Page = 0
		case key.Matches(km, m.keys.Last):
			m.p.Page = m.p.TotalPages - 1
		default:
			m.p, _ = m.p.Update(msg)
		}
	}

	return m.p.Page + 1, m.p.Page != before
}

// Items returns the page numbers to render; 0 marks a break.
func (m *Model) Items() []int {
	total := m.p.TotalPages
	cur := m.p.Page + 1

	var items []int
	for i := 1; i <= total; i++ {
		show := i <= boundary ||
			i > total-boundary ||
			(i >= cur-siblings && i <= cur+siblings)
		if show {
			items = append(items, i)
			continue
		}
		if len(items) > 0 && items[len(items)-1] != 0 {
			items = append(items, 0)
		}
	}
	return items
}

// View renders "< 1 ... 4 5 6 ... 10 >".
func (m *Model) View() string {
	parts := make([]string, 0, len(m.Items())+2)

	if m.p.Page == 0 {
		parts = append(parts, styles.PageDisabled.Render(previousLabel))
	} else {
		parts = append(parts, styles.PageNormal.Render(previousLabel))
	}

	cur := m.p.Page + 1
	for _, n := range m.Items() {
		switch n {
		case 0:
			parts = append(parts, styles.PageDisabled.Render(breakLabel))
		case cur:
			parts = append(parts, styles.PageActive.Render(strconv.Itoa(n)))
		default:
			parts = append(parts, styles.PageNormal.Render(strconv.Itoa(n)))
		}
	}

	if m.p.OnLastPage() {
		parts = append(parts, styles.PageDisabled.Render(nextLabel))
	} else {
		parts = append(parts, styles.PageNormal.Render(nextLabel))
	}

	return strings.Join(parts, "")
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
