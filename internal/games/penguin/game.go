// Package penguin implements Penguin: guide a growing line of penguins around
// a square ice field, catch fish and avoid the edges and your own tail.
package penguin

import (
	"math/rand"
	"sync"
	"time"

	"github.com/vovakirdan/blank-arcade/internal/core"
	"github.com/vovakirdan/blank-arcade/internal/registry"
)

// GameID is the registry and score-store identifier.
const GameID = "penguin"

// Phase is the session state of one game.
type Phase int

const (
	PhaseTitle    Phase = iota // Waiting for the player to start
	PhasePlaying               // Ticking
	PhaseCollided              // Hit the edge or the body
	PhaseCleared               // Body covers the whole field
)

// Options tune the game wrapper around the engine.
type Options struct {
	GridSize     int
	TickInterval time.Duration // Time between two body moves
}

// DefaultOptions returns the options used when nothing was configured.
func DefaultOptions() Options {
	return Options{
		GridSize:     DefaultGridSize,
		TickInterval: 200 * time.Millisecond,
	}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.GridSize < 3 {
		o.GridSize = d.GridSize
	}
	if o.TickInterval <= 0 {
		o.TickInterval = d.TickInterval
	}
	return o
}

var (
	optionsMu sync.RWMutex
	options   = DefaultOptions()
)

// SetOptions changes the options used by games created afterwards.
func SetOptions(o Options) {
	optionsMu.Lock()
	defer optionsMu.Unlock()
	options = o.normalized()
}

func currentOptions() Options {
	optionsMu.RLock()
	defer optionsMu.RUnlock()
	return options
}

// Game wraps the movement engine with input buffering, pacing and rendering.
type Game struct {
	opts Options
	cfg  core.RuntimeConfig
	rng  *rand.Rand
	tick uint64

	state       State
	nextHeading core.Heading // Buffered until the next body move
	score       int
	phase       Phase

	moveEveryTicks int
	moveTicker     int

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
	return &Game{opts: o.normalized()}
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
	return "Penguin"
}

// Reset starts over at the title screen.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.moveEveryTicks = cfg.TicksFor(g.opts.TickInterval)
	g.paused = false
	g.newRound()
	g.phase = PhaseTitle
	g.checkScreenSize()
}

func (g *Game) newRound() {
	g.state = NewGame(g.opts.GridSize, g.rng)
	g.nextHeading = g.state.Heading
	g.score = 0
	g.moveTicker = 0
}

// checkScreenSize checks if the field plus HUD fits on screen.
func (g *Game) checkScreenSize() {
	w, h := g.fieldSize()
	g.tooSmall = g.screenW < w || g.screenH < h+hudHeight+1
}

// Step advances the game by one tick.
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
	case PhaseCollided, PhaseCleared:
		// The engine must not tick past the end of a round.
		if in.Has(core.ActionRestart) {
			g.newRound()
			g.phase = PhasePlaying
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.newRound()
		g.paused = false
		return core.StepResult{State: g.State(), Moved: true}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if a, ok := in.Direction(); ok {
		if h, ok := core.HeadingForAction(a); ok {
			g.Turn(h)
		}
	}

	g.moveTicker++
	if g.moveTicker < g.moveEveryTicks {
		return core.StepResult{State: g.State()}
	}
	g.moveTicker = 0
	moved := g.advance()
	return core.StepResult{State: g.State(), Moved: moved}
}

// Turn buffers a heading change for the next body move. A reversal of the
// heading used by the last move is ignored and keeps the earlier request.
func (g *Game) Turn(h core.Heading) {
	if SetHeading(g.state.Heading, h) == h {
		g.nextHeading = h
	}
}

// advance runs one engine tick and reports whether the body moved.
func (g *Game) advance() bool {
	g.state.Heading = g.nextHeading
	res := Tick(g.opts.GridSize, g.state, g.rng)
	if res.Collided {
		g.phase = PhaseCollided
		return false
	}

	g.state.Body = res.Body
	g.state.Food = res.Food
	if res.AteFood {
		g.score++
		if len(res.Body) >= g.opts.GridSize*g.opts.GridSize {
			g.phase = PhaseCleared
		}
	}
	return true
}

// Body returns a copy of the current body, head first.
func (g *Game) Body() Body {
	return g.state.Body.Clone()
}

// Food returns the fish position.
func (g *Game) Food() core.Coord {
	return g.state.Food
}

// Heading returns the heading of the last move.
func (g *Game) Heading() core.Heading {
	return g.state.Heading
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.phase == PhaseCollided || g.phase == PhaseCleared,
		Paused:   g.paused || g.tooSmall,
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Steer | P: Pause | R: Restart | B: Menu | Q: Quit"
}
