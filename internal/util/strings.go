// Package util provides small text helpers shared by the terminal front end
// and the headless commands.
package util

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Ellipsis marks truncated text.
const Ellipsis = "..."

// CollapseSpace trims s and joins its words with single spaces, the way a
// browser lays out the text content of an element.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TruncateString truncates a string to maxLen runes, adding "..." if truncated.
// It does not account for ANSI escape codes or wide characters; use
// TruncateANSI for styled terminal output.
func TruncateString(s string, maxLen int) string {
	if maxLen <= len(Ellipsis) {
		return Ellipsis
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-len(Ellipsis)]) + Ellipsis
}

// TruncateANSI truncates a string to maxWidth visual columns, adding "..." if
// truncated. Escape sequences are preserved. A non-positive maxWidth means
// no limit.
func TruncateANSI(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return s
	}
	if maxWidth <= len(Ellipsis) {
		return Ellipsis
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	// ansi.Truncate includes the tail in the final width calculation
	return ansi.Truncate(s, maxWidth, Ellipsis)
}
