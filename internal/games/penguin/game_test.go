package penguin

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/blank-arcade/internal/core"
)

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func testConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

// fastOptions moves the body on every tick.
func fastOptions(size int) Options {
	return Options{GridSize: size, TickInterval: time.Second / 60}
}

func playingGame(t *testing.T, opts Options, seed int64) *Game {
	t.Helper()
	g := NewWithOptions(opts)
	g.Reset(testConfig(seed))
	g.Step(frame(core.ActionConfirm))
	if g.Phase() != PhasePlaying {
		t.Fatalf("phase after confirm = %v, want playing", g.Phase())
	}
	return g
}

func TestGameStartsOnTitle(t *testing.T) {
	g := NewWithOptions(fastOptions(15))
	g.Reset(testConfig(1))

	for range 10 {
		g.Step(frame())
	}
	if g.Phase() != PhaseTitle {
		t.Fatalf("phase = %v, want title", g.Phase())
	}
	if diff := cmp.Diff(Body{{X: 7, Y: 7}}, g.Body()); diff != "" {
		t.Errorf("body moved before the game started (-want +got):\n%s", diff)
	}
}

func TestMovePacing(t *testing.T) {
	// 200ms at 60 ticks per second: one move every 12 ticks.
	g := playingGame(t, DefaultOptions(), 3)
	g.state.Food = core.Coord{X: 0, Y: 0}

	for i := range 11 {
		if res := g.Step(frame()); res.Moved {
			t.Fatalf("tick %d: body moved early", i)
		}
	}
	if res := g.Step(frame()); !res.Moved {
		t.Fatal("body should move on the 12th tick")
	}

	head, _ := g.Body().Head()
	if head != (core.Coord{X: 8, Y: 7}) {
		t.Errorf("head = %v, want (8,7)", head)
	}
}

func TestEatingScoresAndGrows(t *testing.T) {
	g := playingGame(t, fastOptions(15), 4)
	g.state.Food = core.Coord{X: 8, Y: 7}

	res := g.Step(frame())

	if res.State.Score != 1 {
		t.Errorf("score = %d, want 1", res.State.Score)
	}
	if diff := cmp.Diff(Body{{X: 8, Y: 7}, {X: 7, Y: 7}}, g.Body()); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
	if g.Body().Contains(g.Food()) {
		t.Errorf("new food %v spawned on the body", g.Food())
	}
}

func TestReversalIsBuffered(t *testing.T) {
	g := playingGame(t, DefaultOptions(), 5)
	g.state.Food = core.Coord{X: 0, Y: 0}

	// Up then Left before the next move: Left reverses the last heading and
	// must not replace the buffered Up.
	g.Step(frame(core.ActionUp))
	g.Step(frame(core.ActionLeft))
	for range 10 {
		g.Step(frame())
	}

	if g.Heading() != core.HeadingUp {
		t.Errorf("heading = %s, want up", g.Heading())
	}
	head, _ := g.Body().Head()
	if head != (core.Coord{X: 7, Y: 6}) {
		t.Errorf("head = %v, want (7,6)", head)
	}
}

func TestCollisionEndsRound(t *testing.T) {
	g := playingGame(t, fastOptions(5), 6)
	g.state.Food = core.Coord{X: 0, Y: 4}

	// Start at (2,2) facing right: (3,2), (4,2), then the wall.
	for range 3 {
		g.Step(frame())
	}
	if g.Phase() != PhaseCollided || !g.State().GameOver {
		t.Fatalf("phase = %v, want collided", g.Phase())
	}

	frozen := g.Snapshot()
	g.Step(frame(core.ActionUp))
	g.Step(frame())
	after := g.Snapshot()
	frozen.Tick, after.Tick = 0, 0
	if diff := cmp.Diff(frozen, after); diff != "" {
		t.Errorf("state changed after the collision (-want +got):\n%s", diff)
	}

	g.Step(frame(core.ActionRestart))
	if g.Phase() != PhasePlaying {
		t.Errorf("phase after restart = %v, want playing", g.Phase())
	}
	if g.State().Score != 0 || len(g.Body()) != 1 {
		t.Errorf("restart should start a fresh round, got %+v", g.Snapshot())
	}
}

func TestPauseStopsTicks(t *testing.T) {
	g := playingGame(t, fastOptions(15), 7)
	g.state.Food = core.Coord{X: 0, Y: 0}

	g.Step(frame(core.ActionPause))
	before := g.Body()
	for range 5 {
		g.Step(frame())
	}
	if diff := cmp.Diff(before, g.Body()); diff != "" {
		t.Errorf("body moved while paused (-want +got):\n%s", diff)
	}

	g.Step(frame(core.ActionPause))
	head, _ := g.Body().Head()
	if head == before[0] {
		t.Error("body should move again after unpausing")
	}
}

func TestDeterminism(t *testing.T) {
	g1 := playingGame(t, fastOptions(15), 12345)
	g2 := playingGame(t, fastOptions(15), 12345)

	for i := range 100 {
		in := frame()
		switch i {
		case 3:
			in.Set(core.ActionDown)
		case 6:
			in.Set(core.ActionLeft)
		case 9:
			in.Set(core.ActionUp)
		}
		g1.Step(in)
		g2.Step(in)
	}

	if diff := cmp.Diff(g1.Snapshot(), g2.Snapshot()); diff != "" {
		t.Errorf("same seed and input diverged (-g1 +g2):\n%s", diff)
	}
}

func TestOptionsNormalized(t *testing.T) {
	g := NewWithOptions(Options{GridSize: 1})
	if g.opts.GridSize != DefaultGridSize || g.opts.TickInterval != 200*time.Millisecond {
		t.Errorf("invalid options not replaced by defaults: %+v", g.opts)
	}
}

func TestRenderShowsField(t *testing.T) {
	g := playingGame(t, fastOptions(15), 3)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Fish: 0", "@@", "><"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered field missing %q:\n%s", want, out)
		}
	}
}

func TestStepReportsStateAfterMove(t *testing.T) {
	g := playingGame(t, fastOptions(3), 8)
	g.state.Food = core.Coord{X: 2, Y: 1}

	// Start at (1,1) facing right: the first move eats, the second leaves
	// the field.
	if res := g.Step(frame()); res.State.Score != 1 || res.State.GameOver {
		t.Fatalf("eating step returned %+v, want score 1", res.State)
	}
	res := g.Step(frame())
	if diff := cmp.Diff(g.State(), res.State); diff != "" {
		t.Errorf("step result lags the game (-game +result):\n%s", diff)
	}
	if !res.State.GameOver {
		t.Errorf("colliding step returned %+v, want game over", res.State)
	}
}
