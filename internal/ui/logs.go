package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/roster/internal/logtail"
)

// logLinesMsg carries the tail of the log file.
type logLinesMsg struct {
	lines []string
	err   error
}

// readLogsCmd reads the last maxLines lines of the log file.
func readLogsCmd(path string, maxLines int) tea.Cmd {
	return func() tea.Msg {
		if strings.TrimSpace(path) == "" {
			return logLinesMsg{}
		}
		lines, err := logtail.Read(path, maxLines)
		return logLinesMsg{lines: lines, err: err}
	}
}

// renderLogs renders the log overlay: recent dispatches on top, the log file
// tail below.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	width := max(m.width, 20)
	inner := width - 4

	var b strings.Builder

	// Dispatch history
	b.WriteString(styles.AccentText.Bold(true).Render("Recent actions"))
	b.WriteString("\n")
	history := m.store.History()
	if len(history) == 0 {
		b.WriteString(styles.FaintText.Render("(none)"))
		b.WriteString("\n")
	}
	if len(history) > historyLines {
		history = history[len(history)-historyLines:]
	}
	for _, d := range history {
		mark := styles.FaintText.Render("·")
		if d.Changed {
			mark = styles.SuccessText.Render("•")
		}
		line := fmt.Sprintf("%s %s", d.At.Format("15:04:05"), d.Action)
		b.WriteString(mark + " " + styles.Text.Render(truncate(line, inner-2)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Log tail
	title := "Log"
	if m.logPath != "" {
		title = "Log " + truncateMiddle(m.logPath, max(inner-4, 10))
	}
	b.WriteString(styles.AccentText.Bold(true).Render(title))
	b.WriteString("\n")

	used := len(history) + 4
	room := max(m.height-used-4, 1)
	switch {
	case m.logErr != nil:
		b.WriteString(styles.DangerText.Render("read log: " + m.logErr.Error()))
	case len(m.logLines) == 0:
		b.WriteString(styles.FaintText.Render("(log is empty)"))
	default:
		lines := m.logLines
		if len(lines) > room {
			lines = lines[len(lines)-room:]
		}
		for i, line := range lines {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(m.logLineStyle(line, styles).Render(truncate(line, inner)))
		}
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(0, 1).
		Width(width - 2)
	footer := styles.FaintText.Render("esc/L close  q quit")
	return box.Render(b.String()) + "\n" + footer
}

func (m Model) logLineStyle(line string, styles Styles) lipgloss.Style {
	switch logtail.Level(line) {
	case "error":
		return styles.DangerText
	case "warn":
		return styles.WarningText
	case "debug", "trace":
		return styles.FaintText
	default:
		return styles.Text
	}
}
