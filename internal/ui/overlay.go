// Package ui holds rendering helpers shared by the views.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DimStyle greys out the list behind an open modal. Background styling is
// stripped first since faint does not combine reliably with existing colors.
var DimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))

const resetSequence = "\x1b[0m"

// OverlayModal centers fg over a dimmed copy of background and returns exactly
// height lines.
func OverlayModal(background, fg string, width, height int) string {
	fgLines := strings.Split(fg, "\n")
	x := max(0, (width-blockWidth(fgLines))/2)
	y := max(0, (height-len(fgLines))/2)
	return overlay(background, fgLines, x, y, height, true)
}

// OverlayAt draws fg over background with its top-left corner at (x, y),
// leaving the background styling intact.
func OverlayAt(background, fg string, x, y, height int) string {
	return overlay(background, strings.Split(fg, "\n"), max(0, x), max(0, y), height, false)
}

func overlay(background string, fgLines []string, x, y, height int, dim bool) string {
	bgLines := strings.Split(background, "\n")
	if height <= 0 {
		height = len(bgLines)
	}
	fgWidth := blockWidth(fgLines)

	out := make([]string, height)
	for row := range out {
		bg := ""
		if row < len(bgLines) {
			bg = bgLines[row]
		}
		i := row - y
		if i < 0 || i >= len(fgLines) {
			if dim {
				bg = dimmed(bg)
			}
			out[row] = bg
			continue
		}
		out[row] = splice(bg, fgLines[i], x, fgWidth, dim)
	}
	return strings.Join(out, "\n")
}

// splice replaces columns [x, x+w) of bg with fg.
func splice(bg, fg string, x, w int, dim bool) string {
	src := bg
	if dim {
		src = ansi.Strip(bg)
	}
	bgWidth := ansi.StringWidth(src)

	var b strings.Builder
	left := ansi.Truncate(src, x, "")
	if dim {
		left = dimmed(left)
	} else if left != "" {
		left += resetSequence
	}
	b.WriteString(left)
	if pad := x - ansi.StringWidth(ansi.Strip(left)); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}

	b.WriteString(fg)
	if pad := w - ansi.StringWidth(fg); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}

	if end := x + w; bgWidth > end {
		right := ansi.Cut(src, end, bgWidth)
		if dim {
			right = dimmed(right)
		}
		b.WriteString(right)
	}
	return b.String()
}

func dimmed(s string) string {
	plain := ansi.Strip(s)
	if plain == "" {
		return ""
	}
	return DimStyle.Render(plain)
}

// blockWidth returns the widest line's visible width.
func blockWidth(lines []string) int {
	w := 0
	for _, l := range lines {
		w = max(w, ansi.StringWidth(l))
	}
	return w
}
