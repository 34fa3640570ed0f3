package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the help overlay from the key map.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	h := m.help
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning))
	h.Styles.FullDesc = styles.Text
	h.Styles.FullSeparator = styles.FaintText
	h.FullSeparator = "   "

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")
	b.WriteString(h.FullHelpView(m.keys.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(m.renderThemeList(styles))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("Press any key to close"))

	modalWidth := max(min(m.width-4, helpModalSize*2), helpModalSize)
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(modalWidth)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

// renderThemeList lists the themes T cycles through, current one highlighted.
func (m Model) renderThemeList(styles Styles) string {
	names := ThemeNames()
	parts := make([]string, 0, len(names))
	for _, name := range names {
		if name == m.theme.Name {
			parts = append(parts, styles.AccentText.Bold(true).Render("["+name+"]"))
			continue
		}
		parts = append(parts, styles.MutedText.Render(name))
	}
	return styles.MutedText.Render("Themes: ") + strings.Join(parts, " ")
}
