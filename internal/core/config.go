package core

import "time"

// DefaultTickRate is used whenever a config leaves TickRate unset.
const DefaultTickRate = 60

// RuntimeConfig is what a game learns about its host when it is reset.
type RuntimeConfig struct {
	ScreenW  int // columns available to the game
	ScreenH  int // rows available to the game
	TickRate int // Step calls per second
	Seed     int64
}

// DefaultConfig is an 80x24 terminal at DefaultTickRate. A zero Seed asks
// the platform layer to seed from the clock.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: DefaultTickRate}
}

// TicksFor converts a wall-clock interval into a whole number of ticks,
// never less than one.
func (c RuntimeConfig) TicksFor(d time.Duration) int {
	rate := c.TickRate
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return Max(int(d*time.Duration(rate)/time.Second), 1)
}

// GameState is the part of a game the platform shows and records.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
}

// StepResult reports one tick. Moved is false when the tick changed nothing.
type StepResult struct {
	State GameState
	Moved bool
}
