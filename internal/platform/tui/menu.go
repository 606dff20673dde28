package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blank-arcade/internal/core"
	"github.com/vovakirdan/blank-arcade/internal/registry"
)

// MenuItem is one line of the game picker.
type MenuItem struct {
	GameID string
	Title  string
	Best   int // Player's best score, 0 when unknown
}

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	menuHintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel picks a game or opens the scoreboard. It quits its program
// on a choice; ArcadeModel reads the choice back.
type MenuModel struct {
	env            Env
	items          []MenuItem
	cursor         int
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates a menu listing every registered game.
func NewMenuModel(env Env, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		items = append(items, MenuItem{GameID: g.ID, Title: g.Title})
	}

	m := MenuModel{
		env:       env,
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	m.loadBest()
	return m
}

// loadBest fills in the player's best score per game.
func (m *MenuModel) loadBest() {
	if m.env.Store == nil {
		return
	}
	ctx, cancel := storeContext()
	defer cancel()

	user := m.env.Identity.UserID
	for i := range m.items {
		best, err := m.env.Store.BestScore(ctx, user, m.items[i].GameID)
		if err != nil {
			m.env.logger().Warn("could not load best score", "game", m.items[i].GameID, "error", err)
			continue
		}
		m.items[i].Best = best
	}
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}
	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}
	return m, nil
}

func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("B L A N K   A R C A D E"), m.width))
	b.WriteString("\n\n")

	who := m.env.Identity.DisplayName
	if who == "" {
		who = m.env.Identity.UserID
	}
	if who == "" {
		who = "guest"
	}
	b.WriteString(centerText(fmt.Sprintf("Playing as %s. Select a game", who), m.width))
	b.WriteString("\n")
	if m.env.Lobby != nil {
		b.WriteString(centerText(menuHintStyle.Render(onlineLine(m.env.Lobby.Players())), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, item := range m.items {
		line := fmt.Sprintf("  %-16s best %d", item.Title, item.Best)
		if i == m.cursor {
			line = menuSelectedStyle.Render("> " + line[2:])
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	hint := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(menuHintStyle.Render(hint), m.width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the chosen game, nil until Enter is pressed.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the runtime config including the latest window size.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// onlineLine summarises who else is connected.
func onlineLine(players []string) string {
	switch n := len(players); {
	case n <= 1:
		return "Nobody else is online"
	case n <= 4:
		return "Online: " + strings.Join(players, ", ")
	default:
		return fmt.Sprintf("Online: %s and %d more", strings.Join(players[:3], ", "), n-3)
	}
}
