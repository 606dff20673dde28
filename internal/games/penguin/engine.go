package penguin

import (
	"math/rand"

	"github.com/vovakirdan/blank-arcade/internal/core"
)

// DefaultGridSize is the side of the square play field.
const DefaultGridSize = 15

// Body is the penguin line, head first. Cells never repeat.
type Body []core.Coord

// Head returns the leading cell. An empty body has no head.
func (b Body) Head() (core.Coord, bool) {
	if len(b) == 0 {
		return core.Coord{}, false
	}
	return b[0], true
}

// Contains reports whether c is occupied by the body.
func (b Body) Contains(c core.Coord) bool {
	for _, seg := range b {
		if seg == c {
			return true
		}
	}
	return false
}

// Clone returns an independent copy.
func (b Body) Clone() Body {
	if b == nil {
		return nil
	}
	out := make(Body, len(b))
	copy(out, b)
	return out
}

// State is everything the engine needs to advance one tick.
type State struct {
	Body    Body
	Food    core.Coord
	Heading core.Heading
}

// TickResult is the outcome of Tick. On a collision Body and Food are the
// values that went in.
type TickResult struct {
	Body     Body
	Food     core.Coord
	AteFood  bool
	Collided bool
}

// NewGame places a one-cell body in the middle of the field, facing right,
// and drops the first fish.
func NewGame(size int, rng *rand.Rand) State {
	body := Body{{X: size / 2, Y: size / 2}}
	food, _ := SpawnFood(size, body, rng)
	return State{
		Body:    body,
		Food:    food,
		Heading: core.HeadingRight,
	}
}

// SpawnFood picks a uniformly random cell that the body does not cover.
// It reports false when the body fills the whole field.
func SpawnFood(size int, body Body, rng *rand.Rand) (core.Coord, bool) {
	total := size * size
	if size <= 0 || len(body) >= total {
		return core.Coord{X: -1, Y: -1}, false
	}

	// Resample while the field is mostly free; enumerate once it gets crowded.
	if len(body) < total/2 {
		for {
			c := core.Coord{X: rng.Intn(size), Y: rng.Intn(size)}
			if !body.Contains(c) {
				return c, true
			}
		}
	}

	free := make([]core.Coord, 0, total-len(body))
	for y := range size {
		for x := range size {
			c := core.Coord{X: x, Y: y}
			if !body.Contains(c) {
				free = append(free, c)
			}
		}
	}
	if len(free) == 0 {
		return core.Coord{X: -1, Y: -1}, false
	}
	return free[rng.Intn(len(free))], true
}

// SetHeading returns requested unless it points straight back along current.
func SetHeading(current, requested core.Heading) core.Heading {
	if !requested.Valid() || requested == current.Opposite() {
		return current
	}
	return requested
}

// Tick advances the body one cell along the state's heading.
// The input body is never modified; a collision leaves body and food as they
// were. An empty body is a no-op.
func Tick(size int, s State, rng *rand.Rand) TickResult {
	head, ok := s.Body.Head()
	if !ok {
		return TickResult{Body: s.Body, Food: s.Food}
	}

	next := head.Add(s.Heading.Vector())
	if !next.InBounds(size) || s.Body.Contains(next) {
		return TickResult{Body: s.Body, Food: s.Food, Collided: true}
	}

	ate := next == s.Food
	keep := len(s.Body) - 1
	if ate {
		keep = len(s.Body)
	}

	body := make(Body, 0, keep+1)
	body = append(body, next)
	body = append(body, s.Body[:keep]...)

	food := s.Food
	if ate {
		food, _ = SpawnFood(size, body, rng)
	}

	return TickResult{Body: body, Food: food, AteFood: ate}
}
