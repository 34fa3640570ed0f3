package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/five82/roster/internal/state"
)

var tableHeaders = []string{"First Name", "Last Name", "Country", "Action"}

const deleteHint = "[d] Delete"

// visibleRows returns how many data rows fit in the current window.
func (m Model) visibleRows() int {
	rows := m.height - headerLines - cmdBarLines - tableChrome
	return max(rows, minTableRows)
}

// selectedUser returns the user under the cursor, or nil when the table is empty.
func (m Model) selectedUser() *state.User {
	if m.selectedRow < 0 || m.selectedRow >= len(m.state.Users) {
		return nil
	}
	u := m.state.Users[m.selectedRow]
	return &u
}

func (m *Model) moveSelection(delta int) {
	m.selectedRow += delta
	m.scrollToSelection()
}

// scrollToSelection clamps the selection to the list and moves the visible
// window so the selection stays on screen.
func (m *Model) scrollToSelection() {
	n := len(m.state.Users)
	if n == 0 {
		m.selectedRow = 0
		m.topRow = 0
		return
	}
	m.selectedRow = clamp(m.selectedRow, 0, n-1)

	visible := m.visibleRows()
	if m.selectedRow < m.topRow {
		m.topRow = m.selectedRow
	}
	if m.selectedRow >= m.topRow+visible {
		m.topRow = m.selectedRow - visible + 1
	}
	m.topRow = clamp(m.topRow, 0, max(n-visible, 0))
}

// rowStyle picks the cell style for a data row. idx is the row's position in
// the displayed list, not in the visible window.
func (m Model) rowStyle(idx int, styles Styles) lipgloss.Style {
	switch {
	case idx == m.selectedRow:
		return styles.SelectedCell
	case m.state.RowHighlighted(idx):
		return styles.StripeCell
	default:
		return styles.Cell
	}
}

// renderTable renders the visible window of the user table.
func (m Model) renderTable() string {
	styles := m.theme.Styles()

	if len(m.state.Users) == 0 {
		return m.renderEmptyTable(styles)
	}

	visible := m.visibleRows()
	end := min(m.topRow+visible, len(m.state.Users))
	window := m.state.Users[m.topRow:end]

	rows := make([][]string, 0, len(window))
	for i, u := range window {
		action := ""
		if m.topRow+i == m.selectedRow {
			action = deleteHint
		}
		rows = append(rows, []string{u.FirstName, u.LastName, u.Country, action})
	}

	top := m.topRow
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Border))).
		Headers(tableHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.HeaderCell
			}
			return m.rowStyle(top+row, styles)
		})
	if m.width > 0 {
		t = t.Width(m.width)
	}
	return t.String()
}

func (m Model) renderEmptyTable(styles Styles) string {
	var msg string
	switch {
	case m.inFlight > 0:
		msg = styles.WarningText.Render(m.spinner.View() + " Fetching users...")
	case m.lastErr != nil:
		msg = styles.DangerText.Render("Fetch failed: "+truncate(m.lastErr.Error(), 80)) +
			"\n\n" + styles.MutedText.Render("Press r to retry")
	case m.state.HasSnapshot:
		msg = styles.MutedText.Render("No users left. Press u to restore the fetched list.")
	default:
		msg = styles.MutedText.Render("No users loaded. Press r to fetch.")
	}

	height := max(m.height-headerLines-cmdBarLines, 1)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Width(max(m.width-2, 0)).
		Height(max(height-2, 1)).
		Align(lipgloss.Center, lipgloss.Center)
	return box.Render(strings.TrimRight(msg, "\n"))
}
