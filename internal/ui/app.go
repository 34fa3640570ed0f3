package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hashicorp/go-hclog"

	"github.com/five82/roster/internal/directory"
	"github.com/five82/roster/internal/prefs"
	"github.com/five82/roster/internal/state"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Fetcher   directory.UserFetcher
	Store     *state.Store
	Logger    hclog.Logger
	LogPath   string
	ThemeName string
	PrefsPath string
}

// Model is the root application state for Bubble Tea. The table contents live
// in the state.Store; Model only keeps view concerns (selection, scrolling,
// overlays) and fetch bookkeeping.
type Model struct {
	// Configuration
	ctx       context.Context
	fetcher   directory.UserFetcher
	store     *state.Store
	logger    hclog.Logger
	logPath   string
	prefsPath string
	keys      keyMap

	// UI state
	theme   Theme
	width   int
	height  int
	ready   bool
	help    help.Model
	spinner spinner.Model

	// Data state
	state state.AppState

	// Table state
	selectedRow int
	topRow      int

	// Fetch state
	fetchSeq    uint64 // sequence of the most recently started fetch
	inFlight    int
	lastFetched time.Time
	lastErr     error

	// Overlays
	showHelp bool
	showLogs bool
	logLines []string
	logErr   error
}

// New creates a new Bubble Tea model. When a fetcher is configured the first
// fetch is already counted as started; Init issues it.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = themeOrder[0]
	}
	theme := GetTheme(themeName)

	m := Model{
		ctx:       ctx,
		fetcher:   opts.Fetcher,
		store:     store,
		logger:    logger.Named("ui"),
		logPath:   opts.LogPath,
		prefsPath: opts.PrefsPath,
		keys:      DefaultKeyMap(),
		theme:     theme,
		help:      help.New(),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))),
		),
		state: store.State(),
	}
	if m.fetcher != nil {
		m.fetchSeq = 1
		m.inFlight = 1
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.fetcher == nil {
		return nil
	}
	return tea.Batch(fetchUsersCmd(m.ctx, m.fetcher, m.fetchSeq), m.spinner.Tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.scrollToSelection()
		return m, nil

	case usersFetchedMsg:
		m.handleUsersFetched(msg)
		return m, nil

	case logLinesMsg:
		m.logLines = msg.lines
		m.logErr = msg.err
		return m, nil

	case spinner.TickMsg:
		if m.inFlight == 0 {
			// Let the tick chain lapse until the next fetch starts.
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.showLogs {
		return m.renderLogs()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.showLogs {
		switch {
		case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Logs):
			m.showLogs = false
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		m.showLogs = true
		return m, readLogsCmd(m.logPath, logTailLines)

	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil

	case key.Matches(msg, m.keys.Sort):
		m.dispatch(state.SortByCountry{})
	case key.Matches(msg, m.keys.Toggle):
		m.dispatch(state.ToggleHighlight{})
	case key.Matches(msg, m.keys.Restore):
		m.dispatch(state.RestoreUsers{})
	case key.Matches(msg, m.keys.Delete):
		if u := m.selectedUser(); u != nil {
			m.dispatch(state.DeleteUser{ID: u.ID})
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, m.startFetch()

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
		m.scrollToSelection()
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = len(m.state.Users) - 1
		m.scrollToSelection()
	case key.Matches(msg, m.keys.PageUp):
		m.moveSelection(-m.visibleRows())
	case key.Matches(msg, m.keys.PageDown):
		m.moveSelection(m.visibleRows())
	}

	return m, nil
}

// dispatch runs an action through the store and keeps the selection on the
// same user when it survives the transition.
func (m *Model) dispatch(action state.Action) {
	var selectedID string
	if u := m.selectedUser(); u != nil {
		selectedID = u.ID
	}

	next, changed := m.store.Dispatch(action)
	m.logger.Debug("dispatch", "action", action.String(), "changed", changed, "users", len(next.Users))
	m.state = next

	if selectedID != "" {
		for i, u := range m.state.Users {
			if u.ID == selectedID {
				m.selectedRow = i
				m.scrollToSelection()
				return
			}
		}
	}
	m.scrollToSelection()
}

// startFetch begins a new fetch. Fetches already in flight keep running but
// their responses will be dropped as stale.
func (m *Model) startFetch() tea.Cmd {
	if m.fetcher == nil {
		return nil
	}
	m.fetchSeq++
	m.inFlight++
	m.logger.Debug("refresh requested", "seq", m.fetchSeq, "in_flight", m.inFlight)

	cmds := []tea.Cmd{fetchUsersCmd(m.ctx, m.fetcher, m.fetchSeq)}
	if m.inFlight == 1 {
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// handleUsersFetched applies a fetch result. Only the most recently started
// fetch may update the table.
func (m *Model) handleUsersFetched(msg usersFetchedMsg) {
	if m.inFlight > 0 {
		m.inFlight--
	}
	if msg.seq != m.fetchSeq {
		m.logger.Debug("dropping stale fetch result", "seq", msg.seq, "latest", m.fetchSeq)
		return
	}
	if msg.err != nil {
		m.lastErr = msg.err
		m.logger.Error("fetch failed; keeping current table", "seq", msg.seq, "error", msg.err)
		return
	}
	m.lastErr = nil
	m.lastFetched = msg.at
	m.logger.Debug("applying fetch result", "seq", msg.seq, "users", len(msg.users), "elapsed", msg.elapsed)
	m.dispatch(state.SetUsers{Users: msg.users})
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
	if strings.TrimSpace(m.prefsPath) == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
		m.logger.Warn("save prefs failed", "path", m.prefsPath, "error", err)
	}
}

// renderMain renders header, command bar and table.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderTable())
	return b.String()
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(opts Options) error {
	m := New(opts)
	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		progOpts = append(progOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, progOpts...)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
		return nil
	}
	return err
}
