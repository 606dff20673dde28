package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blank-arcade/internal/core"
	"github.com/vovakirdan/blank-arcade/internal/session"
)

// GameModel is the Bubble Tea model that drives one session.
// The session is stepped once per tick message; Bubble Tea delivers
// messages one at a time so steps never interleave.
type GameModel struct {
	env        Env
	sess       *session.Session
	screen     *core.Screen
	config     core.RuntimeConfig
	input      core.InputFrame
	state      core.GameState
	keyMapper  *KeyMapper
	loop       uint64
	exitOnBack bool // Standalone play has no menu to return to
	quitting   bool
	backToMenu bool
	runSaved   bool // Whether the current game over has been recorded
}

// NewGameModel creates a game model for sess.
func NewGameModel(env Env, sess *session.Session, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	m := GameModel{
		env:       env,
		sess:      sess,
		config:    cfg,
		input:     core.NewInputFrame(),
		keyMapper: NewKeyMapper(),
		loop:      nextLoop(),
	}
	gc := m.gameConfig()
	m.screen = core.NewScreen(gc.ScreenW, gc.ScreenH)
	return m
}

// gameConfig reserves the bottom line for the status bar.
func (m GameModel) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = max(cfg.ScreenH-1, 1)
	return cfg
}

// Init resets the session and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	ctx, cancel := storeContext()
	defer cancel()
	m.sess.Reset(ctx, m.gameConfig())
	return tickCmd(m.config.TickRate, m.loop)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()
	case runSavedMsg:
		if msg.Err != nil {
			m.env.logger().Error("could not record run", "game", msg.GameID, "score", msg.Score, "error", msg.Err)
		}
		return m, nil
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.input) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.input.Has(core.ActionBack) {
		m.input.Clear()
		if m.exitOnBack {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
	}
	return m, nil
}

func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	gc := m.gameConfig()
	m.screen.Resize(gc.ScreenW, gc.ScreenH)

	// Layout depends on the screen size, so a running game restarts.
	if !m.state.GameOver {
		ctx, cancel := storeContext()
		defer cancel()
		m.sess.Resize(ctx, gc.ScreenW, gc.ScreenH)
		m.state = m.sess.State()
	}
	return m, nil
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	res := m.sess.Step(m.input)
	m.state = res.State
	m.input.Clear()

	next := tickCmd(m.config.TickRate, m.loop)
	if !m.state.GameOver {
		m.runSaved = false
		return m, next
	}
	if m.runSaved {
		return m, next
	}

	m.runSaved = true
	if m.env.Store == nil || m.state.Score <= 0 {
		return m, next
	}
	return m, tea.Batch(next, saveRunCmd(m.env.Store, m.sess.Identity().UserID, m.sess.GameID(), m.state.Score))
}

// saveScreenshot writes the current frame as plain text under ~/.arcade.
func (m *GameModel) saveScreenshot() {
	m.sess.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.env.logger().Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.env.logger().Warn("screenshot skipped", "error", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.sess.GameID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.env.logger().Warn("screenshot failed", "path", path, "error", err)
		return
	}
	m.env.logger().Debug("screenshot saved", "path", path)
}

// View renders the game followed by the status bar.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.sess.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.statusLine()
}

func (m GameModel) statusLine() string {
	left := fmt.Sprintf("%s  Score: %d", m.sess.Title(), m.state.Score)
	if m.state.Paused {
		left += "  [paused]"
	}
	right := fmt.Sprintf("%s  Best: %d", m.sess.Identity().DisplayName, m.sess.Best())
	return renderStatusBar(m.config.ScreenW, left, right)
}

// State returns the state seen on the last tick.
func (m GameModel) State() core.GameState {
	return m.state
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays gameID in the current terminal until the player quits.
func Run(env Env, gameID string, cfg core.RuntimeConfig) error {
	sess, err := env.newSession(gameID)
	if err != nil {
		return err
	}

	model := NewGameModel(env, sess, cfg)
	model.exitOnBack = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
