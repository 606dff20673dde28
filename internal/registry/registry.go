// Package registry keeps the table of playable games.
// Each game package registers a factory from init(); the CLI, the TUI and the
// SSH server only ever see games through this package.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/blank-arcade/internal/core"
)

// ErrUnknownGame is returned by Create for an unregistered ID.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is what the platform drives. Implementations hold only simulation
// state: input mapping, timing and terminal output live in the platform.
type Game interface {
	// ID is the stable identifier used on the command line and in the score
	// store, e.g. "alphabet2048".
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a new session with the given screen size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render projects the current state into dst.
	Render(dst *core.Screen)

	// State returns score and lifecycle flags.
	State() core.GameState
}

// Hinter is implemented by games that describe their own key bindings.
type Hinter interface {
	Controls() string
}

// GameInfo describes a registered game without instantiating it.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game instance.
type Factory func() Game

type entry struct {
	info GameInfo
	new  Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a game factory. Registering an ID twice panics.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{info: GameInfo{ID: id, Title: f().Title()}, new: f}
}

// List returns every registered game ordered by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	games := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		games = append(games, e.info)
	}
	slices.SortFunc(games, func(a, b GameInfo) int { return strings.Compare(a.ID, b.ID) })
	return games
}

func Lookup(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.info, ok
}

// Create returns a new, not yet reset, instance of game id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return e.new(), nil
}

func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}

// Controls returns the key hint of g, or a generic one.
func Controls(g Game) string {
	if h, ok := g.(Hinter); ok {
		return h.Controls()
	}
	return "Arrows: Move | P: Pause | R: Restart | Q: Quit"
}
