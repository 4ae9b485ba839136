package modal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/notehub/internal/styles"
)

// Render renders the modal box sized for a screenW x screenH terminal. The
// result is meant to be composited over the background with ui.OverlayModal.
func (m *Modal) Render(screenW, screenH int) string {
	modalWidth := m.clampWidth(screenW)
	focusID := m.currentFocusID()

	var (
		parts   []string
		focusY  int
		focusH  int
		offsetY int
	)
	for _, s := range m.sections {
		c := s.Render(m.contentWidth(modalWidth), focusID)
		if c == "" {
			continue
		}
		h := lipgloss.Height(c)
		for _, id := range s.Focusables() {
			if id == focusID {
				focusY, focusH = offsetY, h
			}
		}
		parts = append(parts, c)
		offsetY += h
	}
	body := strings.Join(parts, "\n")

	headerLines := 0
	if m.title != "" {
		headerLines = 2 // title + margin
	}
	maxBody := max(1, desiredModalInnerHeight(screenH)-headerLines)
	body = sliceLines(body, scrollOffset(offsetY, focusY, focusH, maxBody), maxBody)

	var inner strings.Builder
	if m.title != "" {
		inner.WriteString(styles.ModalTitle.Render(m.title))
		inner.WriteString("\n")
	}
	inner.WriteString(body)

	return m.modalStyle(modalWidth).Render(inner.String())
}

func (m *Modal) clampWidth(screenW int) int {
	maxWidth := max(1, screenW-4)
	minWidth := min(MinModalWidth, maxWidth)
	return clamp(m.width, minWidth, maxWidth)
}

func (m *Modal) contentWidth(modalWidth int) int {
	return max(1, modalWidth-ModalPadding)
}

// scrollOffset returns the first body line to show so the focused element,
// spanning focusH lines from focusY, stays in view.
func scrollOffset(total, focusY, focusH, height int) int {
	if total <= height {
		return 0
	}
	return clamp(focusY+focusH-height, 0, total-height)
}

// modalStyle returns the lipgloss style for the modal box.
func (m *Modal) modalStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Primary).
		Background(styles.BgSecondary).
		Padding(1, 2).
		Width(width)
}

// desiredModalInnerHeight is the tallest the modal content may be.
func desiredModalInnerHeight(screenH int) int {
	return max(1, screenH-6)
}

// sliceLines returns height lines of content starting at offset.
func sliceLines(content string, offset, height int) string {
	lines := strings.Split(content, "\n")
	if offset >= len(lines) {
		offset = max(0, len(lines)-1)
	}
	lines = lines[offset:]
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func clamp(v, minVal, maxVal int) int {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
