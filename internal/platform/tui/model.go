package tui

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// helpHeight is the number of rows reserved under the game for key help.
const helpHeight = 1

// resizer is implemented by games that can follow the window without a reset.
type resizer interface {
	Resize(w, h int)
}

// GameModel runs one game inside Bubble Tea. It is used directly for
// local play and embedded in SessionModel for SSH sessions.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	sessionID  int64 // session log row, 0 when not logging
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       GameKeyMap
	help       help.Model
	allowBack  bool // esc/b returns to a menu instead of doing nothing
	exitOnBack bool // the model owns its program and quits on back
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for game. The game must already be configured.
func NewGameModel(game registry.Game, store *storage.Store, sessionID int64, logger *log.Logger, cfg core.RuntimeConfig) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpHeight, 0)),
		store:      store,
		sessionID:  sessionID,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       DefaultGameKeyMap(),
		help:       help.New(),
	}
}

// WithBack lets esc/b leave the game when it is idle, paused or over.
// A running game ignores it so a stray esc does not throw the game away.
func (m GameModel) WithBack() GameModel {
	m.allowBack = true
	return m
}

// gameConfig is the runtime config seen by the game: the help row is not
// part of its screen.
func (m GameModel) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = max(cfg.ScreenH-helpHeight, 0)
	return cfg
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey records the action for the next frame. Platform keys
// (quit, back, screenshot) are handled here and never reach the game.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionNone:
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		if m.allowBack && !m.gameState.Playing {
			m.backToMenu = true
			if m.exitOnBack {
				return m, tea.Quit
			}
		}
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize follows the window. Games that cannot resize in place are reset.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	cfg := m.gameConfig()
	m.screen.Resize(cfg.ScreenW, cfg.ScreenH)
	m.help.Width = msg.Width

	if r, ok := m.game.(resizer); ok {
		r.Resize(cfg.ScreenW, cfg.ScreenH)
	} else if !m.gameState.GameOver {
		m.game.Reset(cfg)
	}

	return m, nil
}

// handleTick runs one simulation frame.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if result.Started {
		m.recordGame()
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// recordGame counts a started game in the session log. Failures are
// logged and otherwise ignored.
func (m GameModel) recordGame() {
	if m.store == nil || m.sessionID == 0 {
		return
	}
	if err := m.store.RecordGame(m.sessionID, m.game.ID()); err != nil {
		m.logger.Warn("could not record game", "session", m.sessionID, "error", err)
	}
}

// saveScreenshot saves the current screen to a text file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".blockfall", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// beginSession opens a session log row. It returns 0 when there is no
// store or the insert fails.
func beginSession(store *storage.Store, logger *log.Logger, username, remote string) int64 {
	if store == nil {
		return 0
	}
	id, err := store.BeginSession(username, remote)
	if err != nil {
		logger.Warn("could not begin session", "user", username, "error", err)
		return 0
	}
	return id
}

// endSession closes a session log row opened by beginSession.
func endSession(store *storage.Store, logger *log.Logger, id int64) {
	if store == nil || id == 0 {
		return
	}
	if err := store.EndSession(id); err != nil {
		logger.Warn("could not end session", "session", id, "error", err)
	}
}

// LocalUser returns the name of the user running the process.
func LocalUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "unknown"
}

// LocalSession opens a session log row for the user at the terminal. It
// returns the row id and a function that closes the row.
func LocalSession(store *storage.Store, logger *log.Logger) (int64, func()) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	id := beginSession(store, logger, LocalUser(), "local")
	return id, func() { endSession(store, logger, id) }
}

// Run plays game in the current terminal until the user quits.
// The run is recorded as one local session when store is not nil.
func Run(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) error {
	id, end := LocalSession(store, logger)
	defer end()

	model := NewGameModel(game, store, id, logger, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}

// PlayFromMenu plays game and reports whether the user asked to go back
// to the menu rather than quit.
func PlayFromMenu(game registry.Game, store *storage.Store, sessionID int64, logger *log.Logger, cfg core.RuntimeConfig) (back bool, err error) {
	model := NewGameModel(game, store, sessionID, logger, cfg).WithBack()
	model.exitOnBack = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(GameModel)
	return ok && m.BackToMenu(), nil
}
