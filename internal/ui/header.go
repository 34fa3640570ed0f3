package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the status line: counts, highlight state, fetch state.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth
	sep := bg.Spaces(2)

	parts := []string{bg.Render("roster", styles.Logo)}

	// User count out of the fetched list
	count := fmt.Sprintf("%d", len(m.state.Users))
	if m.state.HasSnapshot {
		count = fmt.Sprintf("%d/%d", len(m.state.Users), len(m.state.Snapshot))
	}
	label := "Users:"
	if compact {
		label = "U:"
	}
	parts = append(parts, bg.Render(label, styles.MutedText)+bg.Spaces(1)+bg.Render(count, styles.Text))

	if m.state.HighlightRows {
		parts = append(parts, bg.Render("● Color", styles.SuccessText))
	} else {
		parts = append(parts, bg.Render("○ Color", styles.FaintText))
	}

	switch {
	case m.inFlight > 0:
		parts = append(parts, bg.Render(m.spinner.View(), styles.AccentText)+bg.Spaces(1)+
			bg.Render("Fetching", styles.WarningText))
	case m.lastErr != nil:
		limit := 60
		if compact {
			limit = 30
		}
		parts = append(parts, bg.Render("ERROR "+truncate(m.lastErr.Error(), limit), styles.DangerText))
	}

	if !m.lastFetched.IsZero() && !compact {
		parts = append(parts, bg.Render("Fetched", styles.FaintText)+bg.Spaces(1)+
			bg.Render(m.lastFetched.Format("15:04:05"), styles.InfoText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, sep))
}

// renderCommandBar renders the key hints below the header.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	bindings := m.keys.ShortHelp()
	if m.width >= LayoutCompactWidth {
		bindings = append(bindings[:len(bindings):len(bindings)], m.keys.Logs, m.keys.CycleTheme)
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(bindings))
	for _, b := range bindings {
		segments = append(segments, renderBinding(b, bg, styles, colon))
	}

	bar := bg.Join(segments, bg.Spaces(2))
	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Width(m.width).
		Padding(0, 1).
		Render(strings.TrimRight(bar, " "))
}

func renderBinding(b key.Binding, bg BgStyle, styles Styles, colon string) string {
	h := b.Help()
	return bg.Render(h.Key, styles.AccentText) + colon + bg.Render(h.Desc, styles.MutedText)
}
