package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blank-arcade/internal/core"
)

// gameKeys binds key names to in-game actions. Quit keys are listed so
// MapKey can report them; they are never forwarded to a game.
var gameKeys = map[string]core.Action{
	"ctrl+c": core.ActionQuit,
	"q":      core.ActionQuit,
	"up":     core.ActionUp,
	"w":      core.ActionUp,
	"k":      core.ActionUp,
	"down":   core.ActionDown,
	"s":      core.ActionDown,
	"j":      core.ActionDown,
	"left":   core.ActionLeft,
	"a":      core.ActionLeft,
	"h":      core.ActionLeft,
	"right":  core.ActionRight,
	"d":      core.ActionRight,
	"l":      core.ActionRight,
	"enter":  core.ActionConfirm,
	" ":      core.ActionConfirm,
	"b":      core.ActionBack,
	"p":      core.ActionPause,
	"esc":    core.ActionPause,
	"r":      core.ActionRestart,
}

// MenuAction is what a key means on the menu screen.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

var menuKeys = map[string]MenuAction{
	"ctrl+c": MenuActionQuit,
	"q":      MenuActionQuit,
	"up":     MenuActionUp,
	"w":      MenuActionUp,
	"k":      MenuActionUp,
	"down":   MenuActionDown,
	"s":      MenuActionDown,
	"j":      MenuActionDown,
	"enter":  MenuActionSelect,
	" ":      MenuActionSelect,
	"b":      MenuActionBack,
	"esc":    MenuActionBack,
	"tab":    MenuActionScoreboard,
}

// KeyMapper turns Bubble Tea key messages into actions.
type KeyMapper struct{}

func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey returns the action bound to msg, ActionNone when unbound, and
// whether msg asks to quit the program.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (core.Action, bool) {
	action := gameKeys[msg.String()]
	return action, action == core.ActionQuit
}

// MapKeyToFrame adds the action bound to msg to frame and reports whether
// msg was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, quit := km.MapKey(msg)
	if !quit {
		frame.Set(action)
	}
	return quit
}

// MapKeyToMenuAction returns the menu action bound to msg.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	return menuKeys[msg.String()]
}
