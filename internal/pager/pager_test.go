package pager

import (
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestSetTranslatesToOneBased(t *testing.T) {
	m := New()
	m.Set(3, 5)
	if m.p.Page != 2 {
		t.Errorf("paginator page = %d, want 2", m.p.Page)
	}
	if m.Page() != 3 {
		t.Errorf("Page() = %d, want 3", m.Page())
	}
	if m.TotalPages() != 5 {
		t.Errorf("TotalPages() = %d, want 5", m.TotalPages())
	}
}

func TestSetClamps(t *testing.T) {
	tests := []struct {
		page, total int
		wantPage    int
		wantTotal   int
	}{
		{0, 5, 1, 5},
		{9, 5, 5, 5},
		{1, 0, 1, 1},
		{4, -2, 1, 1},
	}
	for _, tt := range tests {
		m := New()
		m.Set(tt.page, tt.total)
		if m.Page() != tt.wantPage || m.TotalPages() != tt.wantTotal {
			t.Errorf("Set(%d, %d): got page %d of %d, want %d of %d",
				tt.page, tt.total, m.Page(), m.TotalPages(), tt.wantPage, tt.wantTotal)
		}
	}
}

func TestNextKey(t *testing.T) {
	m := New()
	m.Set(3, 5)

	target, changed := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if !changed || target != 4 {
		t.Errorf("right: got (%d, %v), want (4, true)", target, changed)
	}

	target, changed = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if !changed || target != 3 {
		t.Errorf("left: got (%d, %v), want (3, true)", target, changed)
	}
}

func TestNoChangeAtEdges(t *testing.T) {
	m := New()
	m.Set(5, 5)
	if _, changed := m.Update(tea.KeyMsg{Type: tea.KeyRight}); changed {
		t.Error("next on last page should not change")
	}

	m.Set(1, 5)
	if _, changed := m.Update(tea.KeyMsg{Type: tea.KeyLeft}); changed {
		t.Error("prev on first page should not change")
	}
}

func TestHomeEnd(t *testing.T) {
	m := New()
	m.Set(3, 7)

	target, changed := m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	if !changed || target != 7 {
		t.Errorf("end: got (%d, %v), want (7, true)", target, changed)
	}
	target, changed = m.Update(tea.KeyMsg{Type: tea.KeyHome})
	if !changed || target != 1 {
		t.Errorf("home: got (%d, %v), want (1, true)", target, changed)
	}
}

func TestNonKeyIgnored(t *testing.T) {
	m := New()
	m.Set(2, 4)
	if _, changed := m.Update(tea.WindowSizeMsg{Width: 80}); changed {
		t.Error("non-key message should not change page")
	}
}

func TestVisible(t *testing.T) {
	m := New()
	if m.Visible() {
		t.Error("single page should hide controls")
	}
	m.Set(1, 0)
	if m.Visible() {
		t.Error("zero pages should hide controls")
	}
	m.Set(1, 2)
	if !m.Visible() {
		t.Error("two pages should show controls")
	}
}

func TestItems(t *testing.T) {
	tests := []struct {
		page, total int
		want        []int
	}{
		{5, 10, []int{1, 0, 4, 5, 6, 0, 10}},
		{1, 10, []int{1, 2, 0, 10}},
		{10, 10, []int{1, 0, 9, 10}},
		{2, 4, []int{1, 2, 3, 4}},
		{1, 1, []int{1}},
	}
	for _, tt := range tests {
		m := New()
		m.Set(tt.page, tt.total)
		if got := m.Items(); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Items() for %d of %d = %v, want %v", tt.page, tt.total, got, tt.want)
		}
	}
}

func TestViewShowsBreaks(t *testing.T) {
	m := New()
	m.Set(5, 10)
	v := m.View()
	for _, want := range []string{"<", ">", "...", "10"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q: %q", want, v)
		}
	}
}

func TestSetKeyMap(t *testing.T) {
	m := New()
	m.Set(2, 5)

	km := DefaultKeyMap()
	km.Next = key.NewBinding(key.WithKeys("ctrl+n"))
	m.SetKeyMap(km)

	if _, changed := m.Update(tea.KeyMsg{Type: tea.KeyRight}); changed {
		t.Error("replaced next key should no longer navigate")
	}
	target, changed := m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	if !changed || target != 3 {
		t.Errorf("ctrl+n: got (%d, %v), want (3, true)", target, changed)
	}
}
