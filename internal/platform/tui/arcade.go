package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blank-arcade/internal/core"
)

type screenKind int

const (
	screenMenu screenKind = iota
	screenGame
	screenScoreboard
)

// ArcadeModel manages one player's visit: menu, games and the scoreboard.
// It backs both the local menu command and every SSH connection.
type ArcadeModel struct {
	env        Env
	config     core.RuntimeConfig
	current    screenKind
	menu       MenuModel
	game       GameModel
	scoreboard ScoreboardModel
	quitting   bool
}

// NewArcadeModel creates the model, starting at the menu.
func NewArcadeModel(env Env, cfg core.RuntimeConfig) ArcadeModel {
	return ArcadeModel{
		env:    env,
		config: cfg,
		menu:   NewMenuModel(env, cfg),
	}
}

// Init initializes the arcade.
func (m ArcadeModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m ArcadeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}
	if saved, ok := msg.(runSavedMsg); ok && m.current != screenGame {
		if saved.Err != nil {
			m.env.logger().Error("could not record run", "game", saved.GameID, "score", saved.Score, "error", saved.Err)
		}
		return m, nil
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenScoreboard:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode. The menu signals its
// outcome with tea.Quit, which is swallowed here.
func (m ArcadeModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.current = screenScoreboard
		m.scoreboard = NewScoreboardModel(m.env, m.config.ScreenW, m.config.ScreenH)
		return m, m.scoreboard.Init()

	case m.menu.Selected() != nil:
		sess, err := m.env.newSession(m.menu.Selected().GameID)
		if err != nil {
			m.env.logger().Error("could not start game", "game", m.menu.Selected().GameID, "error", err)
			m.menu = NewMenuModel(m.env, m.config)
			return m, nil
		}
		cfg := m.config
		cfg.Seed = 0
		m.game = NewGameModel(m.env, sess, cfg)
		m.current = screenGame
		return m, m.game.Init()
	}
	return m, cmd
}

func (m ArcadeModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(GameModel); ok {
		m.game = game
	}

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.game.BackToMenu():
		return m.showMenu()
	}
	return m, cmd
}

func (m ArcadeModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		return m.showMenu()
	}
	return m, cmd
}

func (m ArcadeModel) showMenu() (tea.Model, tea.Cmd) {
	m.current = screenMenu
	m.menu = NewMenuModel(m.env, m.config)
	return m, m.menu.Init()
}

// View renders the active screen.
func (m ArcadeModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.current {
	case screenGame:
		return m.game.View()
	case screenScoreboard:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}

// RunArcade runs the menu-driven arcade in the current terminal.
func RunArcade(env Env, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(NewArcadeModel(env, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
