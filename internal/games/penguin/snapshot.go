package penguin

// GameStateType represents the current game state.
type GameStateType string

const (
	StateTitle       GameStateType = "title"
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateCollided    GameStateType = "collided"
	StateCleared     GameStateType = "cleared"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick    uint64
	Score   int
	BodyLen int
	HeadX   int
	HeadY   int
	Heading string
	FoodX   int
	FoodY   int
	State   GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.phase == PhaseTitle:
		state = StateTitle
	case g.phase == PhaseCollided:
		state = StateCollided
	case g.phase == PhaseCleared:
		state = StateCleared
	case g.paused:
		state = StatePaused
	}

	head, _ := g.state.Body.Head()
	return Snapshot{
		Tick:    g.tick,
		Score:   g.score,
		BodyLen: len(g.state.Body),
		HeadX:   head.X,
		HeadY:   head.Y,
		Heading: g.state.Heading.String(),
		FoodX:   g.state.Food.X,
		FoodY:   g.state.Food.Y,
		State:   state,
	}
}
