package core

import "strings"

// Action is a player intent, independent of the key that produced it.
type Action uint8

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionConfirm // start a game from its title screen
	ActionBack    // leave to the menu
	ActionRestart
	ActionQuit
	ActionPause
	actionCount
)

var actionNames = [actionCount]string{
	ActionNone:    "None",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionConfirm: "Confirm",
	ActionBack:    "Back",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
	ActionPause:   "Pause",
}

func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return "Unknown"
}

// directionalOrder fixes which direction wins when several were pressed
// within one tick.
var directionalOrder = [...]Action{ActionUp, ActionDown, ActionLeft, ActionRight}

// InputFrame is the set of actions collected for one player during one
// tick. The zero value is an empty frame.
type InputFrame struct {
	bits uint16
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set adds a to the frame. ActionNone is ignored.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone || a >= actionCount {
		return
	}
	f.bits |= 1 << a
}

// Has reports whether a was triggered this tick.
func (f InputFrame) Has(a Action) bool {
	return a < actionCount && f.bits&(1<<a) != 0
}

// Direction returns the first directional action in the frame.
// At most one direction is consumed per tick.
func (f InputFrame) Direction() (Action, bool) {
	for _, a := range directionalOrder {
		if f.Has(a) {
			return a, true
		}
	}
	return ActionNone, false
}

// Len returns the number of distinct actions in the frame.
func (f InputFrame) Len() int {
	n := 0
	for b := f.bits; b != 0; b &= b - 1 {
		n++
	}
	return n
}

// Clear empties the frame for the next tick.
func (f *InputFrame) Clear() {
	f.bits = 0
}

func (f InputFrame) String() string {
	names := make([]string, 0, f.Len())
	for a := ActionUp; a < actionCount; a++ {
		if f.Has(a) {
			names = append(names, a.String())
		}
	}
	return "[" + strings.Join(names, " ") + "]"
}
