// Package textutil provides unicode-aware width helpers for TUI rendering.
package textutil

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// TruncateEllipsis is the unicode ellipsis appended to truncated text.
const TruncateEllipsis = "…"

// VisualWidth returns the number of terminal columns s occupies.
func VisualWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens plain text to at most maxWidth columns, ending in an
// ellipsis when anything was cut. Wide runes are never split.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisualWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, TruncateEllipsis)
}

// Gap returns the number of spaces needed between two styled strings so that
// together they span width columns. It is never less than atLeast.
func Gap(left, right string, width, atLeast int) int {
	n := width - lipgloss.Width(left) - lipgloss.Width(right)
	if n < atLeast {
		return atLeast
	}
	return n
}
