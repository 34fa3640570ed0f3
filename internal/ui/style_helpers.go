package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BgStyle renders adjacent segments on one background color. lipgloss resets
// the background after every styled segment, so separators and spaces have to
// be painted explicitly or the bar shows gaps.
type BgStyle struct {
	bg lipgloss.Color
}

// NewBgStyle creates a background helper for the given color.
func NewBgStyle(bgColor string) BgStyle {
	return BgStyle{bg: lipgloss.Color(bgColor)}
}

// Render renders text with style on the helper's background.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	return style.Background(b.bg).Render(text)
}

// Spaces returns n painted spaces.
func (b BgStyle) Spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Background(b.bg).Render(strings.Repeat(" ", n))
}

// Sep returns a painted separator.
func (b BgStyle) Sep(sep string) string {
	return lipgloss.NewStyle().Background(b.bg).Render(sep)
}

// Join joins non-empty parts with a painted separator.
func (b BgStyle) Join(parts []string, sep string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, b.Sep(sep))
}
