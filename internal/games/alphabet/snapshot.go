package alphabet

// GameStateType represents the current game state.
type GameStateType string

const (
	StateTitle       GameStateType = "title"
	StatePlaying     GameStateType = "playing"
	StateSettling    GameStateType = "settling"
	StateGameOver    GameStateType = "game_over"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Score     int
	Moves     int
	Rows      []string // Board letters, '.' for empty
	MaxLetter string
	TileSum   int
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.phase == PhaseTitle:
		state = StateTitle
	case g.phase == PhaseGameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	case g.phase == PhaseSettling:
		state = StateSettling
	}

	return Snapshot{
		Tick:      g.tick,
		Score:     g.score,
		Moves:     g.moves,
		Rows:      g.grid.Rows(),
		MaxLetter: MaxLetter(g.grid).String(),
		TileSum:   TileSum(g.grid),
		State:     state,
	}
}
