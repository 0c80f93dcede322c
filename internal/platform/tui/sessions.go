package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/blockfall/internal/storage"
)

// maxSessions is how many log rows the sessions screen loads.
const maxSessions = 100

var sessionHeaders = []string{"User", "Remote", "Mode", "Games", "Started", "Duration"}

// SessionsKeyMap defines the key bindings for the sessions screen.
type SessionsKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k SessionsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k SessionsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultSessionsKeyMap returns default key bindings.
func DefaultSessionsKeyMap() SessionsKeyMap {
	return SessionsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "tab"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// sessionCells formats sessions for display, newest first as given.
func sessionCells(sessions []storage.Session, now time.Time) [][]string {
	cells := make([][]string, len(sessions))
	for i, s := range sessions {
		mode := s.Mode
		if mode == "" {
			mode = "-"
		}
		dur := s.Duration(now).Round(time.Second).String()
		if s.Open() {
			dur += " (live)"
		}
		cells[i] = []string{
			s.User,
			s.Remote,
			mode,
			humanize.Comma(int64(s.GamesPlayed)),
			humanize.RelTime(s.StartedAt, now, "ago", "from now"),
			dur,
		}
	}
	return cells
}

// SessionRows converts sessions to rows for a bubbles table.
func SessionRows(sessions []storage.Session, now time.Time) []table.Row {
	cells := sessionCells(sessions, now)
	rows := make([]table.Row, len(cells))
	for i, c := range cells {
		rows[i] = table.Row(c)
	}
	return rows
}

// statsLine summarises the whole log in one line.
func statsLine(st storage.Stats) string {
	return fmt.Sprintf("%s sessions, %s games, %s players",
		humanize.Comma(int64(st.Sessions)),
		humanize.Comma(int64(st.Games)),
		humanize.Comma(int64(st.Users)))
}

// WriteSessions prints the log as a plain bordered table, for use outside
// the alt screen.
func WriteSessions(w io.Writer, sessions []storage.Session, st storage.Stats, now time.Time) error {
	if _, err := fmt.Fprintln(w, statsLine(st)); err != nil {
		return err
	}
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions recorded yet.")
		return err
	}

	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		Headers(sessionHeaders...).
		Rows(sessionCells(sessions, now)...)
	_, err := fmt.Fprintln(w, t.String())
	return err
}

// SessionsModel is the Bubble Tea model for the session log screen.
type SessionsModel struct {
	store     *storage.Store
	sessions  []storage.Session
	stats     storage.Stats
	loadErr   error
	now       func() time.Time
	table     table.Model
	help      help.Model
	keys      SessionsKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewSessionsModel creates a sessions screen and loads the log.
func NewSessionsModel(store *storage.Store, width, height int) SessionsModel {
	m := SessionsModel{
		store:  store,
		now:    time.Now,
		help:   help.New(),
		keys:   DefaultSessionsKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a table sized to the window.
func (m *SessionsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: sessionHeaders[0], Width: 12},
		{Title: sessionHeaders[1], Width: 16},
		{Title: sessionHeaders[2], Width: 16},
		{Title: sessionHeaders[3], Width: 6},
		{Title: sessionHeaders[4], Width: 16},
		{Title: sessionHeaders[5], Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // title, stats, help and borders
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the log from the store and fills the table.
func (m *SessionsModel) load() {
	m.sessions, m.loadErr = nil, nil
	if m.store == nil {
		m.table.SetRows(nil)
		return
	}

	sessions, err := m.store.RecentSessions(maxSessions)
	if err != nil {
		m.loadErr = err
	} else {
		m.sessions = sessions
	}
	if st, err := m.store.Stats(); err == nil {
		m.stats = st
	}
	m.table.SetRows(SessionRows(m.sessions, m.now()))
	m.table.GotoTop()
}

// Init initializes the sessions model.
func (m SessionsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the sessions screen.
func (m SessionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(SessionRows(m.sessions, m.now()))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the sessions screen.
func (m SessionsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	b.WriteString(centerText(menuTitleStyle.Render("SESSIONS"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(menuDimStyle.Render(statsLine(m.stats)), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var content string
	switch {
	case m.loadErr != nil:
		content = menuDimStyle.Render("Could not read the session log:\n" + m.loadErr.Error())
	case len(m.sessions) == 0:
		content = menuDimStyle.Italic(true).Padding(1, 4).Render("No sessions recorded yet.")
	default:
		content = m.table.View()
	}
	b.WriteString(centerText(boxStyle.Render(content), m.width))
	b.WriteString("\n\n")
	b.WriteString(menuDimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// IsGoingBack returns true if user wants to go back to the menu.
func (m SessionsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m SessionsModel) IsQuitting() bool {
	return m.quitting
}

// RunSessions runs the sessions screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunSessions(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewSessionsModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(SessionsModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
