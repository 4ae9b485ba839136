package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/notehub/internal/keymap"
	"github.com/marcus/notehub/internal/state"
	"github.com/marcus/notehub/internal/styles"
	"github.com/marcus/notehub/internal/ui"
)

const (
	headerGap     = 1 // blank line between header and content
	footerHeight  = 1
	pagerHeight   = 1
	minWidth      = 40
	minHeight     = 12
	minSplitWidth = 90 // narrower terminals hide the preview pane
	panelChrome   = 4  // border + horizontal padding of a panel
)

// layout sizes the components for the current window and state. It runs
// after every update so the view never has to mutate anything.
func (m *Model) layout() {
	if !m.ready {
		return
	}

	m.searchbox.SetWidth(clampInt(m.width/3, 10, 40))
	m.help.Width = m.width

	bodyH := m.bodyHeight()
	if m.activeContext == keymap.ContextPreview {
		m.preview.SetSize(m.width, bodyH)
		return
	}

	listW, previewW := m.splitWidths()
	m.list.SetSize(listW, bodyH)
	if previewW > 0 {
		m.preview.SetSize(previewW-panelChrome, bodyH-2)
	}
}

// bodyHeight is the space left for the list or preview.
func (m *Model) bodyHeight() int {
	h := m.height - lipgloss.Height(m.renderHeader()) - headerGap
	if m.pager.Visible() && m.activeContext != keymap.ContextPreview {
		h -= pagerHeight
	}
	if m.showFooter {
		h -= footerHeight
	}
	return max(1, h)
}

// splitWidths returns the list and preview widths. previewW is 0 when the
// preview pane is hidden.
func (m *Model) splitWidths() (listW, previewW int) {
	if !m.showPreview || m.width < minSplitWidth {
		return m.width, 0
	}
	previewW = m.width * state.GetPreviewWidth() / 100
	return m.width - previewW - 1, previewW
}

// View renders the entire application UI.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.width < minWidth || m.height < minHeight {
		msg := fmt.Sprintf("Terminal too small (%dx%d)\nMinimum: %dx%d",
			m.width, m.height, minWidth, minHeight)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			styles.StatusError.Render(msg))
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString(strings.Repeat("\n", headerGap+1))

	b.WriteString(lipgloss.NewStyle().
		Height(m.bodyHeight()).
		MaxHeight(m.bodyHeight()).
		Render(m.renderBody()))

	if m.pager.Visible() && m.activeContext != keymap.ContextPreview {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.pager.View()))
	}

	if m.showFooter {
		b.WriteString("\n")
		b.WriteString(m.renderFooter())
	}

	// Overlay modals (priority order via activeModal)
	bg := b.String()
	switch m.activeModal() {
	case ModalCreate:
		bg = ui.OverlayModal(bg, m.form.View(m.width, m.height), m.width, m.height)
	case ModalHelp:
		bg = m.renderHelpOverlay(bg)
	}

	if m.statusMsg != "" {
		bg = m.renderToast(bg)
	}
	return bg
}

// renderHeader renders the logo, search box and fetch status.
func (m *Model) renderHeader() string {
	return lipgloss.JoinHorizontal(lipgloss.Center,
		styles.Logo.Render("notehub"),
		"  ",
		m.searchbox.View(),
		"  ",
		m.renderStatus(),
	)
}

// renderStatus shows the loading and error indicators. They are independent:
// a refetch after a failure shows both.
func (m *Model) renderStatus() string {
	r := m.notes.Result()

	var parts []string
	if r.IsFetching {
		parts = append(parts, m.spinner.View()+styles.StatusLoading.Render("Loading…"))
	}
	if r.IsError {
		parts = append(parts, styles.StatusError.Render("Something went wrong"))
	}
	if n := len(m.deleting); n > 0 {
		parts = append(parts, styles.Muted.Render(fmt.Sprintf("deleting %d", n)))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) renderBody() string {
	if m.activeContext == keymap.ContextPreview {
		return m.preview.View()
	}

	listW, previewW := m.splitWidths()
	list := lipgloss.NewStyle().Width(listW).Render(m.list.View())
	if previewW == 0 {
		return list
	}
	pane := styles.PanelInactive.
		Width(previewW - 2).
		Height(m.bodyHeight() - 2).
		Render(m.preview.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, list, " ", pane)
}

// renderFooter renders the short help for the active context.
func (m *Model) renderFooter() string {
	return m.help.View(m.keymap.HelpFor(m.activeContext))
}

// renderHelpOverlay renders every list binding in a modal.
func (m *Model) renderHelpOverlay(content string) string {
	h := m.help
	h.ShowAll = true

	var b strings.Builder
	b.WriteString(styles.ModalTitle.Render("Keys"))
	b.WriteString("\n")
	b.WriteString(h.View(m.keymap.HelpFor(keymap.ContextList)))
	b.WriteString("\n\n")
	b.WriteString(styles.Muted.Render("Esc to close"))

	modal := styles.PanelActive.Render(b.String())
	return ui.OverlayModal(content, modal, m.width, m.height)
}

// renderToast draws the status message in the bottom-right corner.
func (m *Model) renderToast(content string) string {
	style := styles.ToastSuccess
	if m.statusIsError {
		style = styles.ToastError
	}
	maxW := max(10, m.width-4)
	toast := style.MaxWidth(maxW).Render(m.statusMsg)

	x := m.width - lipgloss.Width(toast) - 1
	y := m.height - 1
	if m.showFooter {
		y -= footerHeight
	}
	return ui.OverlayAt(content, toast, x, y, m.height)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
