package session

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/vovakirdan/blank-arcade/internal/core"
	"github.com/vovakirdan/blank-arcade/internal/games/alphabet"
	"github.com/vovakirdan/blank-arcade/internal/games/penguin"
	"github.com/vovakirdan/blank-arcade/internal/registry"
	"github.com/vovakirdan/blank-arcade/internal/scoring"
)

// scriptedGame returns a preset score on every step.
type scriptedGame struct {
	scores []int
	step   int
	state  core.GameState
	resets int
}

func (g *scriptedGame) ID() string    { return "scripted" }
func (g *scriptedGame) Title() string { return "Scripted" }
func (g *scriptedGame) Reset(core.RuntimeConfig) {
	g.step = 0
	g.state = core.GameState{}
	g.resets++
}

func (g *scriptedGame) Step(core.InputFrame) core.StepResult {
	if g.step < len(g.scores) {
		g.state.Score = g.scores[g.step]
		g.step++
	} else {
		g.state.GameOver = true
	}
	return core.StepResult{State: g.state}
}

func (g *scriptedGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "scripted") }
func (g *scriptedGame) State() core.GameState   { return g.state }

type recordingReporter struct {
	mu      sync.Mutex
	reports []scoring.Report
	closed  bool
}

func (r *recordingReporter) Report(rep scoring.Report) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return false
	}
	r.reports = append(r.reports, rep)
	return true
}

type bestLookup map[string]int

func (b bestLookup) BestScore(_ context.Context, userID, gameID string) (int, error) {
	return b[userID+"/"+gameID], nil
}

var quiet = log.New(io.Discard)

func TestSessionReportsNewBests(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rep := &recordingReporter{}
	game := &scriptedGame{scores: []int{0, 2, 2, 1, 6, 6}}

	s := New(game, Options{
		Identity: Identity{UserID: "u-1", DisplayName: "Ada"},
		Reporter: rep,
		Logger:   quiet,
		Now:      func() time.Time { return at },
	})
	s.Reset(context.Background(), core.DefaultConfig())

	for range 8 {
		s.Step(core.NewInputFrame())
	}

	want := []scoring.Report{
		{SessionID: s.ID(), UserID: "u-1", DisplayName: "Ada", GameID: "scripted", Score: 2, At: at},
		{SessionID: s.ID(), UserID: "u-1", DisplayName: "Ada", GameID: "scripted", Score: 6, At: at},
	}
	if diff := cmp.Diff(want, rep.reports); diff != "" {
		t.Errorf("reports mismatch (-want +got):\n%s", diff)
	}
	if s.Best() != 6 {
		t.Errorf("Best = %d, want 6", s.Best())
	}
	if !s.State().GameOver {
		t.Error("scripted game should be over")
	}
}

func TestSessionSeedsBestFromStore(t *testing.T) {
	rep := &recordingReporter{}
	game := &scriptedGame{scores: []int{5, 10, 11}}

	s := New(game, Options{
		Identity: Identity{UserID: "u-2"},
		Reporter: rep,
		Best:     bestLookup{"u-2/scripted": 10},
		Logger:   quiet,
	})
	s.Reset(context.Background(), core.DefaultConfig())

	for range 3 {
		s.Step(core.NewInputFrame())
	}

	if len(rep.reports) != 1 || rep.reports[0].Score != 11 {
		t.Errorf("only 11 beats the stored 10, got %+v", rep.reports)
	}
}

func TestSessionDefaults(t *testing.T) {
	s := New(&scriptedGame{}, Options{Logger: quiet})

	if _, err := uuid.Parse(s.ID()); err != nil {
		t.Errorf("session ID %q is not a UUID: %v", s.ID(), err)
	}
	if s.Identity() != (Identity{UserID: "guest", DisplayName: "guest"}) {
		t.Errorf("Identity = %+v, want guest", s.Identity())
	}

	other := New(&scriptedGame{}, Options{Logger: quiet})
	if other.ID() == s.ID() {
		t.Error("sessions must get distinct IDs")
	}
}

func TestSessionWithoutReporter(t *testing.T) {
	s := New(&scriptedGame{scores: []int{3}}, Options{Logger: quiet})
	s.Reset(context.Background(), core.DefaultConfig())

	if res := s.Step(core.NewInputFrame()); res.State.Score != 3 {
		t.Errorf("score = %d, want 3", res.State.Score)
	}
}

func TestSessionClosedReporter(t *testing.T) {
	rep := &recordingReporter{closed: true}
	s := New(&scriptedGame{scores: []int{3}}, Options{Reporter: rep, Logger: quiet})
	s.Reset(context.Background(), core.DefaultConfig())

	s.Step(core.NewInputFrame())
	if len(rep.reports) != 0 {
		t.Error("closed reporter should not record")
	}
}

func TestSessionResize(t *testing.T) {
	game := &scriptedGame{}
	s := New(game, Options{Logger: quiet})
	s.Reset(context.Background(), core.DefaultConfig())

	s.Resize(context.Background(), 100, 40)

	if game.resets != 2 {
		t.Errorf("resets = %d, want 2", game.resets)
	}
	if s.cfg.ScreenW != 100 || s.cfg.ScreenH != 40 {
		t.Errorf("config after resize = %+v", s.cfg)
	}
}

func TestCreate(t *testing.T) {
	s, err := Create(alphabet.GameID, Options{Logger: quiet})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.GameID() != alphabet.GameID || s.Title() != "Alphabet 2048" {
		t.Errorf("unexpected game %q %q", s.GameID(), s.Title())
	}
	if s.Controls() == "" {
		t.Error("Controls should not be empty")
	}

	if _, err := Create("missing", Options{Logger: quiet}); !errors.Is(err, registry.ErrUnknownGame) {
		t.Errorf("Create(missing) error = %v", err)
	}
}

func TestSessionSerialisesAccess(t *testing.T) {
	s, err := Create(alphabet.GameID, Options{Logger: quiet, Reporter: &recordingReporter{}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	s.Reset(context.Background(), core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})

	confirm := core.NewInputFrame()
	confirm.Set(core.ActionConfirm)
	s.Step(confirm)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		actions := []core.Action{core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionDown}
		for i := range 400 {
			in := core.NewInputFrame()
			in.Set(actions[i%len(actions)])
			s.Step(in)
		}
	}()
	go func() {
		defer wg.Done()
		screen := core.NewScreen(80, 24)
		for range 100 {
			s.Render(screen)
			_ = s.State()
		}
	}()
	wg.Wait()
}

func TestSessionReportsOnTheScoringTick(t *testing.T) {
	// A 3x3 field moving every tick: from (1,1) facing right the first move
	// reaches (2,1) and the second leaves the field. Pick a seed whose first
	// fish sits at (2,1).
	opts := penguin.Options{GridSize: 3, TickInterval: time.Second / 60}
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
	for seed := int64(1); ; seed++ {
		if seed > 500 {
			t.Fatal("no seed places the first fish at (2,1)")
		}
		g := penguin.NewWithOptions(opts)
		g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
		if g.Food() == (core.Coord{X: 2, Y: 1}) {
			cfg.Seed = seed
			break
		}
	}

	rep := &recordingReporter{}
	game := penguin.NewWithOptions(opts)
	s := New(game, Options{Identity: Identity{UserID: "u-3"}, Reporter: rep, Logger: quiet})
	s.Reset(context.Background(), cfg)

	confirm := core.NewInputFrame()
	confirm.Set(core.ActionConfirm)
	s.Step(confirm)

	res := s.Step(core.NewInputFrame())
	if res.State.Score != 1 {
		t.Fatalf("eating tick returned %+v, want score 1", res.State)
	}
	if len(rep.reports) != 1 || rep.reports[0].Score != 1 {
		t.Fatalf("fish not reported on the tick it was eaten: %+v", rep.reports)
	}

	res = s.Step(core.NewInputFrame())
	if !res.State.GameOver || !s.State().GameOver {
		t.Errorf("colliding tick returned %+v, want game over", res.State)
	}
	if diff := cmp.Diff(game.State(), res.State); diff != "" {
		t.Errorf("step result lags the game (-game +result):\n%s", diff)
	}
}
