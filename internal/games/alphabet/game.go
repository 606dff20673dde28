// Package alphabet implements Alphabet 2048: a 4x4 sliding-tile puzzle where
// two equal letters merge into the next letter of the alphabet.
package alphabet

import (
	"math/rand"
	"sync"
	"time"

	"github.com/vovakirdan/blank-arcade/internal/core"
	"github.com/vovakirdan/blank-arcade/internal/registry"
)

// GameID is the registry and score-store identifier.
const GameID = "alphabet2048"

// Phase is the session state of one game.
type Phase int

const (
	PhaseTitle    Phase = iota // Waiting for the player to start
	PhasePlaying               // Accepting moves
	PhaseSettling              // Move applied, new tile not yet spawned
	PhaseGameOver              // Board full with no merge left
)

// Options tune the game wrapper around the engine.
type Options struct {
	// SettleDelay is the pause between a move and the tile spawn.
	// Input is ignored meanwhile. Zero spawns immediately.
	SettleDelay time.Duration
}

// DefaultOptions returns the options used when nothing was configured.
func DefaultOptions() Options {
	return Options{SettleDelay: 100 * time.Millisecond}
}

var (
	optionsMu sync.RWMutex
	options   = DefaultOptions()
)

// SetOptions changes the options used by games created afterwards.
func SetOptions(o Options) {
	optionsMu.Lock()
	defer optionsMu.Unlock()
	options = o
}

func currentOptions() Options {
	optionsMu.RLock()
	defer optionsMu.RUnlock()
	return options
}

// Game wraps the tile-merge engine with input handling, the settle delay and
// rendering.
type Game struct {
	opts Options
	cfg  core.RuntimeConfig
	rng  *rand.Rand
	tick uint64

	grid        Grid
	score       int
	moves       int
	phase       Phase
	settleTicks int
	lastSpawn   core.Coord
	hasSpawn    bool

	// Screen dimensions
	screenW int
	screenH int

	paused   bool
	tooSmall bool
}

// New creates a game using the package options.
func New() *Game {
	return NewWithOptions(currentOptions())
}

// NewWithOptions creates a game with explicit options.
func NewWithOptions(o Options) *Game {
	return &Game{opts: o}
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Alphabet 2048"
}

// Reset starts over at the title screen with a freshly seeded board.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.newBoard()
	g.phase = PhaseTitle
	g.checkScreenSize()
}

func (g *Game) newBoard() {
	g.grid = NewGame(g.rng)
	g.score = 0
	g.moves = 0
	g.settleTicks = 0
	g.hasSpawn = false
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	// Board (21 wide, 9 tall) + HUD (3 lines) + footer
	minW := 25
	minH := 14
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick. At most one move is applied per tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	switch g.phase {
	case PhaseTitle:
		if in.Has(core.ActionConfirm) {
			g.phase = PhasePlaying
		}
		return core.StepResult{State: g.State()}
	case PhaseGameOver:
		if in.Has(core.ActionRestart) {
			g.newBoard()
			g.phase = PhasePlaying
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.newBoard()
		g.phase = PhasePlaying
		g.paused = false
		return core.StepResult{State: g.State(), Moved: true}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.phase == PhaseSettling {
		g.settleTicks--
		if g.settleTicks <= 0 {
			g.finishMove()
		}
		return core.StepResult{State: g.State()}
	}

	a, ok := in.Direction()
	if !ok {
		return core.StepResult{State: g.State()}
	}
	dir, _ := DirectionForAction(a)
	moved := g.Move(dir)
	return core.StepResult{State: g.State(), Moved: moved}
}

// Move applies one directional move. It reports whether the board changed;
// a move that changes nothing never spawns a tile.
func (g *Game) Move(dir Direction) bool {
	if g.phase != PhasePlaying {
		return false
	}

	res := ApplyMove(g.grid, dir)
	if !res.Moved {
		return false
	}

	g.grid = res.Grid
	g.score += res.Score
	g.moves++

	if g.opts.SettleDelay <= 0 {
		g.finishMove()
		return true
	}
	g.phase = PhaseSettling
	g.settleTicks = g.cfg.TicksFor(g.opts.SettleDelay)
	return true
}

// finishMove spawns the post-move tile and checks for the end of the game.
func (g *Game) finishMove() {
	var ok bool
	g.grid, g.lastSpawn, ok = SpawnTile(g.grid, g.rng)
	g.hasSpawn = ok
	g.settleTicks = 0

	if IsGameOver(g.grid) {
		g.phase = PhaseGameOver
		return
	}
	g.phase = PhasePlaying
}

// Grid returns a copy of the current board.
func (g *Game) Grid() Grid {
	return g.grid
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.phase == PhaseGameOver,
		Paused:   g.paused || g.tooSmall,
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | P: Pause | R: Restart | B: Menu | Q: Quit"
}
