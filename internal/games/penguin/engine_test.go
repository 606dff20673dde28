package penguin

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/blank-arcade/internal/core"
)

func TestNewGame(t *testing.T) {
	s := NewGame(DefaultGridSize, rand.New(rand.NewSource(1)))

	if diff := cmp.Diff(Body{{X: 7, Y: 7}}, s.Body); diff != "" {
		t.Errorf("initial body mismatch (-want +got):\n%s", diff)
	}
	if s.Heading != core.HeadingRight {
		t.Errorf("initial heading = %v, want right", s.Heading)
	}
	if !s.Food.InBounds(DefaultGridSize) || s.Body.Contains(s.Food) {
		t.Errorf("food %v must be on the field and off the body", s.Food)
	}
}

func TestSetHeading(t *testing.T) {
	tests := []struct {
		current   core.Heading
		requested core.Heading
		want      core.Heading
	}{
		{core.HeadingRight, core.HeadingLeft, core.HeadingRight},
		{core.HeadingRight, core.HeadingUp, core.HeadingUp},
		{core.HeadingRight, core.HeadingRight, core.HeadingRight},
		{core.HeadingLeft, core.HeadingRight, core.HeadingLeft},
		{core.HeadingUp, core.HeadingDown, core.HeadingUp},
		{core.HeadingDown, core.HeadingUp, core.HeadingDown},
		{core.HeadingDown, core.HeadingLeft, core.HeadingLeft},
		{core.HeadingUp, core.Heading(9), core.HeadingUp},
	}

	for _, tt := range tests {
		if got := SetHeading(tt.current, tt.requested); got != tt.want {
			t.Errorf("SetHeading(%s, %s) = %s, want %s", tt.current, tt.requested, got, tt.want)
		}
	}
}

func TestTickEatsFood(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	s := State{
		Body:    Body{{X: 7, Y: 7}},
		Food:    core.Coord{X: 8, Y: 7},
		Heading: core.HeadingRight,
	}

	res := Tick(DefaultGridSize, s, rng)

	if !res.AteFood || res.Collided {
		t.Fatalf("expected food eaten without collision, got %+v", res)
	}
	if diff := cmp.Diff(Body{{X: 8, Y: 7}, {X: 7, Y: 7}}, res.Body); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
	if !res.Food.InBounds(DefaultGridSize) || res.Body.Contains(res.Food) {
		t.Errorf("respawned food %v must be on the field and off the body", res.Food)
	}
}

func TestTickSlides(t *testing.T) {
	s := State{
		Body:    Body{{X: 3, Y: 3}, {X: 2, Y: 3}, {X: 1, Y: 3}},
		Food:    core.Coord{X: 10, Y: 10},
		Heading: core.HeadingDown,
	}

	res := Tick(DefaultGridSize, s, rand.New(rand.NewSource(1)))

	want := Body{{X: 3, Y: 4}, {X: 3, Y: 3}, {X: 2, Y: 3}}
	if diff := cmp.Diff(want, res.Body); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
	if res.AteFood || res.Collided {
		t.Errorf("unexpected flags %+v", res)
	}
	if res.Food != s.Food {
		t.Errorf("food moved from %v to %v without being eaten", s.Food, res.Food)
	}
}

func TestTickCollisions(t *testing.T) {
	tests := []struct {
		name    string
		body    Body
		heading core.Heading
	}{
		{"right wall", Body{{X: 14, Y: 5}}, core.HeadingRight},
		{"left wall", Body{{X: 0, Y: 5}}, core.HeadingLeft},
		{"top wall", Body{{X: 5, Y: 0}}, core.HeadingUp},
		{"bottom wall", Body{{X: 5, Y: 14}}, core.HeadingDown},
		{"own body", Body{{X: 2, Y: 2}, {X: 3, Y: 2}, {X: 3, Y: 3}, {X: 2, Y: 3}, {X: 1, Y: 3}}, core.HeadingDown},
		{"own tail", Body{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 2}, {X: 1, Y: 2}}, core.HeadingDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			food := core.Coord{X: 9, Y: 9}
			before := tt.body.Clone()

			res := Tick(DefaultGridSize, State{Body: tt.body, Food: food, Heading: tt.heading}, rand.New(rand.NewSource(1)))

			if !res.Collided {
				t.Fatal("expected a collision")
			}
			if res.AteFood {
				t.Error("a collision never eats")
			}
			if diff := cmp.Diff(before, res.Body); diff != "" {
				t.Errorf("body changed on collision (-want +got):\n%s", diff)
			}
			if res.Food != food {
				t.Errorf("food changed on collision: %v", res.Food)
			}
		})
	}
}

func TestTickLeavesInputUntouched(t *testing.T) {
	body := Body{{X: 4, Y: 4}, {X: 3, Y: 4}}
	before := body.Clone()

	Tick(DefaultGridSize, State{Body: body, Food: core.Coord{X: 5, Y: 4}, Heading: core.HeadingRight}, rand.New(rand.NewSource(1)))
	Tick(DefaultGridSize, State{Body: body, Food: core.Coord{X: 0, Y: 0}, Heading: core.HeadingUp}, rand.New(rand.NewSource(1)))

	if diff := cmp.Diff(before, body); diff != "" {
		t.Errorf("Tick modified its input (-want +got):\n%s", diff)
	}
}

func TestTickEmptyBody(t *testing.T) {
	food := core.Coord{X: 1, Y: 1}
	res := Tick(DefaultGridSize, State{Food: food, Heading: core.HeadingRight}, rand.New(rand.NewSource(1)))

	if res.Collided || res.AteFood || len(res.Body) != 0 || res.Food != food {
		t.Errorf("empty body should be a no-op, got %+v", res)
	}
}

func TestGrowthLaw(t *testing.T) {
	const size = 8
	rng := rand.New(rand.NewSource(2024))
	headings := []core.Heading{core.HeadingUp, core.HeadingDown, core.HeadingLeft, core.HeadingRight}

	for round := range 50 {
		s := NewGame(size, rng)
		for range 500 {
			s.Heading = SetHeading(s.Heading, headings[rng.Intn(len(headings))])
			res := Tick(size, s, rng)
			if res.Collided {
				break
			}

			want := len(s.Body)
			if res.AteFood {
				want++
			}
			if len(res.Body) != want {
				t.Fatalf("round %d: body length %d -> %d (ate=%v)", round, len(s.Body), len(res.Body), res.AteFood)
			}

			seen := make(map[core.Coord]bool, len(res.Body))
			for _, c := range res.Body {
				if seen[c] {
					t.Fatalf("round %d: duplicate body cell %v", round, c)
				}
				seen[c] = true
			}
			if len(res.Body) < size*size && seen[res.Food] {
				t.Fatalf("round %d: food %v on the body", round, res.Food)
			}

			s.Body, s.Food = res.Body, res.Food
		}
	}
}

func TestSpawnFoodCrowded(t *testing.T) {
	const size = 3
	var body Body
	for y := range size {
		for x := range size {
			if x == 2 && y == 1 {
				continue
			}
			body = append(body, core.Coord{X: x, Y: y})
		}
	}

	food, ok := SpawnFood(size, body, rand.New(rand.NewSource(5)))
	if !ok || food != (core.Coord{X: 2, Y: 1}) {
		t.Errorf("SpawnFood = %v, %v; want the only free cell", food, ok)
	}

	body = append(body, core.Coord{X: 2, Y: 1})
	if _, ok := SpawnFood(size, body, rand.New(rand.NewSource(5))); ok {
		t.Error("SpawnFood should fail on a full field")
	}
}
