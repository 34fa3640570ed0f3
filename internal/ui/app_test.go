package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/roster/internal/prefs"
	"github.com/five82/roster/internal/state"
)

type stubFetcher struct {
	users []state.User
	err   error
	calls int
}

func (s *stubFetcher) FetchUsers(context.Context) ([]state.User, error) {
	s.calls++
	return s.users, s.err
}

var testUsers = []state.User{
	{FirstName: "Ada", LastName: "Lovelace", Country: "United Kingdom", ID: "u1"},
	{FirstName: "Bruno", LastName: "Silva", Country: "Brazil", ID: "u2"},
	{FirstName: "Chloé", LastName: "Martin", Country: "France", ID: "u3"},
	{FirstName: "Dana", LastName: "Cohen", Country: "Brazil", ID: "u4"},
}

func newTestModel(t *testing.T, fetcher *stubFetcher) Model {
	t.Helper()
	opts := Options{Store: &state.Store{}}
	if fetcher != nil {
		opts.Fetcher = fetcher
	}
	m := New(opts)
	return update(m, tea.WindowSizeMsg{Width: 120, Height: 30})
}

func loadedModel(t *testing.T) Model {
	t.Helper()
	m := newTestModel(t, &stubFetcher{users: testUsers})
	return update(m, usersFetchedMsg{seq: 1, users: testUsers})
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	}
	return m
}

func userIDs(users []state.User) string {
	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return strings.Join(ids, ",")
}

func TestInitStartsFetch(t *testing.T) {
	fetcher := &stubFetcher{users: testUsers}
	m := New(Options{Fetcher: fetcher})
	if m.Init() == nil {
		t.Fatal("Init() = nil, want fetch command")
	}
	if m.inFlight != 1 || m.fetchSeq != 1 {
		t.Fatalf("inFlight=%d fetchSeq=%d, want 1/1", m.inFlight, m.fetchSeq)
	}

	m = New(Options{})
	if m.Init() != nil {
		t.Fatal("Init() without fetcher should be nil")
	}
}

func TestFetchUsersCmd(t *testing.T) {
	fetcher := &stubFetcher{users: testUsers}
	msg := fetchUsersCmd(context.Background(), fetcher, 7)()
	got, ok := msg.(usersFetchedMsg)
	if !ok {
		t.Fatalf("msg = %T, want usersFetchedMsg", msg)
	}
	if got.seq != 7 || len(got.users) != len(testUsers) || got.err != nil {
		t.Fatalf("unexpected msg: %+v", got)
	}
	if fetcher.calls != 1 {
		t.Fatalf("calls = %d, want 1", fetcher.calls)
	}
}

func TestFetchedUsersReachStore(t *testing.T) {
	m := loadedModel(t)
	if got := userIDs(m.state.Users); got != "u1,u2,u3,u4" {
		t.Fatalf("Users = %s", got)
	}
	if !m.state.HasSnapshot {
		t.Fatal("HasSnapshot = false after fetch")
	}
	if m.inFlight != 0 {
		t.Fatalf("inFlight = %d, want 0", m.inFlight)
	}
	if m.lastFetched.IsZero() {
		t.Fatal("lastFetched not set")
	}
	if !state.Equal(m.state, m.store.State()) {
		t.Fatal("model state out of sync with store")
	}
}

// runCmd executes cmd and flattens batches into the messages they produce.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, runCmd(c)...)
	}
	return out
}

func TestRefreshCallsFetcher(t *testing.T) {
	fetcher := &stubFetcher{users: testUsers}
	m := newTestModel(t, fetcher)
	m = update(m, usersFetchedMsg{seq: 1, users: testUsers})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = next.(Model)

	var fetched []usersFetchedMsg
	for _, msg := range runCmd(cmd) {
		if f, ok := msg.(usersFetchedMsg); ok {
			fetched = append(fetched, f)
		}
	}
	if fetcher.calls != 1 {
		t.Fatalf("fetcher calls = %d, want 1", fetcher.calls)
	}
	if len(fetched) != 1 || fetched[0].seq != m.fetchSeq {
		t.Fatalf("fetched = %+v, want one result with seq %d", fetched, m.fetchSeq)
	}

	m = update(m, fetched[0])
	if m.inFlight != 0 || userIDs(m.state.Users) != "u1,u2,u3,u4" {
		t.Fatalf("after refresh: inFlight=%d users=%s", m.inFlight, userIDs(m.state.Users))
	}
}

func TestStaleFetchDropped(t *testing.T) {
	m := loadedModel(t)
	m = press(m, "r")
	m = press(m, "r")
	if m.fetchSeq != 3 || m.inFlight != 2 {
		t.Fatalf("fetchSeq=%d inFlight=%d, want 3/2", m.fetchSeq, m.inFlight)
	}

	newest := []state.User{{FirstName: "Zed", Country: "Chile", ID: "z1"}}
	older := []state.User{{FirstName: "Old", Country: "Peru", ID: "o1"}}

	// The newer fetch finishes first; the older response must not overwrite it.
	m = update(m, usersFetchedMsg{seq: 3, users: newest})
	m = update(m, usersFetchedMsg{seq: 2, users: older})

	if got := userIDs(m.state.Users); got != "z1" {
		t.Fatalf("Users = %s, want z1", got)
	}
	if got := userIDs(m.state.Snapshot); got != "z1" {
		t.Fatalf("Snapshot = %s, want z1", got)
	}
	if m.inFlight != 0 {
		t.Fatalf("inFlight = %d, want 0", m.inFlight)
	}
}

func TestFetchErrorKeepsTable(t *testing.T) {
	m := loadedModel(t)
	m = press(m, "r")
	m = update(m, usersFetchedMsg{seq: 2, err: errors.New("boom")})

	if m.lastErr == nil {
		t.Fatal("lastErr not recorded")
	}
	if got := userIDs(m.state.Users); got != "u1,u2,u3,u4" {
		t.Fatalf("Users changed on error: %s", got)
	}
	if !strings.Contains(m.View(), "boom") {
		t.Fatal("error not shown in status line")
	}

	m = press(m, "r")
	m = update(m, usersFetchedMsg{seq: 3, users: testUsers})
	if m.lastErr != nil {
		t.Fatalf("lastErr = %v after successful fetch", m.lastErr)
	}
}

func TestSortKeepsSelection(t *testing.T) {
	m := loadedModel(t)
	m = press(m, "j", "j") // u3 France
	if u := m.selectedUser(); u == nil || u.ID != "u3" {
		t.Fatalf("selected = %+v, want u3", u)
	}

	m = press(m, "s")
	if got := userIDs(m.state.Users); got != "u2,u4,u3,u1" {
		t.Fatalf("sorted = %s, want u2,u4,u3,u1", got)
	}
	if u := m.selectedUser(); u == nil || u.ID != "u3" {
		t.Fatalf("selected after sort = %+v, want u3", u)
	}
}

func TestDeleteAndRestore(t *testing.T) {
	m := loadedModel(t)
	m = press(m, "j", "d")
	if got := userIDs(m.state.Users); got != "u1,u3,u4" {
		t.Fatalf("after delete = %s", got)
	}
	if u := m.selectedUser(); u == nil || u.ID != "u3" {
		t.Fatalf("selected after delete = %+v, want u3", u)
	}

	m = press(m, "G", "x")
	if got := userIDs(m.state.Users); got != "u1,u3" {
		t.Fatalf("after second delete = %s", got)
	}
	if m.selectedRow != 1 {
		t.Fatalf("selectedRow = %d, want clamp to 1", m.selectedRow)
	}

	m = press(m, "u")
	if got := userIDs(m.state.Users); got != "u1,u2,u3,u4" {
		t.Fatalf("after restore = %s", got)
	}
}

func TestDeleteOnEmptyTable(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(m, "d", "u")
	if len(m.state.Users) != 0 || m.state.HasSnapshot {
		t.Fatalf("state changed: %+v", m.state)
	}
	if !strings.Contains(m.View(), "No users loaded") {
		t.Fatal("empty state message missing")
	}
}

func TestToggleHighlightRowStyles(t *testing.T) {
	m := loadedModel(t)
	m = press(m, "G") // selection on row 3, away from the rows checked below
	styles := m.theme.Styles()
	stripe := lipgloss.Color(m.theme.StripeBg)

	if bg := m.rowStyle(0, styles).GetBackground(); bg == stripe {
		t.Fatal("row 0 striped before toggle")
	}

	m = press(m, "c")
	if !m.state.HighlightRows {
		t.Fatal("HighlightRows = false after toggle")
	}
	if bg := m.rowStyle(0, styles).GetBackground(); bg != stripe {
		t.Fatalf("row 0 background = %v, want stripe", bg)
	}
	if bg := m.rowStyle(1, styles).GetBackground(); bg == stripe {
		t.Fatal("row 1 should not be striped")
	}
	if bg := m.rowStyle(2, styles).GetBackground(); bg != stripe {
		t.Fatalf("row 2 background = %v, want stripe", bg)
	}
	if bg := m.rowStyle(3, styles).GetBackground(); bg != lipgloss.Color(m.theme.SelectionBg) {
		t.Fatalf("selected row background = %v, want selection", bg)
	}

	m = press(m, "c")
	if bg := m.rowStyle(0, styles).GetBackground(); bg == stripe {
		t.Fatal("row 0 still striped after second toggle")
	}
}

func TestViewRendersTable(t *testing.T) {
	m := loadedModel(t)
	view := m.View()
	for _, want := range []string{"First Name", "Country", "Ada", "Lovelace", "Brazil", deleteHint, "4/4"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestScrollFollowsSelection(t *testing.T) {
	users := make([]state.User, 50)
	for i := range users {
		users[i] = state.User{FirstName: "U", Country: "X", ID: string(rune('A' + i))}
	}
	m := newTestModel(t, &stubFetcher{})
	m = update(m, tea.WindowSizeMsg{Width: 120, Height: 12})
	m = update(m, usersFetchedMsg{seq: 1, users: users})

	visible := m.visibleRows()
	m = press(m, "G")
	if m.selectedRow != 49 {
		t.Fatalf("selectedRow = %d, want 49", m.selectedRow)
	}
	if m.topRow != 50-visible {
		t.Fatalf("topRow = %d, want %d", m.topRow, 50-visible)
	}
	m = press(m, "g")
	if m.selectedRow != 0 || m.topRow != 0 {
		t.Fatalf("after top: selected=%d top=%d", m.selectedRow, m.topRow)
	}
}

func TestHelpOverlay(t *testing.T) {
	m := loadedModel(t)
	m = press(m, "?")
	if !m.showHelp {
		t.Fatal("help not shown")
	}
	view := m.View()
	if !strings.Contains(view, "Keyboard Shortcuts") {
		t.Fatal("help view missing title")
	}
	if !strings.Contains(view, "[Nightfox]") || !strings.Contains(view, "Slate") {
		t.Fatal("help view missing theme list")
	}
	// Any key closes help without acting on it.
	m = press(m, "s")
	if m.showHelp {
		t.Fatal("help still shown")
	}
	if got := userIDs(m.state.Users); got != "u1,u2,u3,u4" {
		t.Fatalf("key leaked through help: %s", got)
	}
}

func TestLogOverlay(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "roster.log")
	content := "2026-01-02T10:00:00.000Z [INFO]  roster: started\n2026-01-02T10:00:01.000Z [ERROR] roster.ui: fetch failed\n"
	if err := os.WriteFile(logPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m := New(Options{Store: &state.Store{}, LogPath: logPath})
	m = update(m, tea.WindowSizeMsg{Width: 120, Height: 30})
	m = press(m, "c")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("L")})
	m = next.(Model)
	if !m.showLogs || cmd == nil {
		t.Fatal("log overlay not opened")
	}
	m = update(m, cmd())
	view := m.View()
	if !strings.Contains(view, "fetch failed") {
		t.Fatal("log tail missing from overlay")
	}
	if !strings.Contains(view, "ToggleHighlight") {
		t.Fatal("dispatch history missing from overlay")
	}

	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showLogs {
		t.Fatal("esc did not close logs")
	}
}

func TestCycleThemeSavesPrefs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	m := New(Options{Store: &state.Store{}, PrefsPath: path, ThemeName: "Nightfox"})
	m = press(m, "T")
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	if got := prefs.Load(path).Theme; got != "Kanagawa" {
		t.Fatalf("saved theme = %q, want Kanagawa", got)
	}
}

func TestQuit(t *testing.T) {
	m := loadedModel(t)
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("%s: no command", msg)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%s: command is not quit", msg)
		}
	}
}
