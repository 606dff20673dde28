package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/blank-arcade/internal/core"
)

type stubGame struct {
	id    string
	state core.GameState
}

func (s *stubGame) ID() string                           { return s.id }
func (s *stubGame) Title() string                        { return "Stub " + s.id }
func (s *stubGame) Reset(core.RuntimeConfig)             {}
func (s *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{State: s.state} }
func (s *stubGame) Render(*core.Screen)                  {}
func (s *stubGame) State() core.GameState                { return s.state }

type hintedGame struct{ stubGame }

func (hintedGame) Controls() string { return "custom keys" }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub_a", func() Game { return &stubGame{id: "stub_a"} })

	if !Exists("stub_a") {
		t.Fatal("stub_a should be registered")
	}

	info, ok := Lookup("stub_a")
	if !ok || info.Title != "Stub stub_a" {
		t.Errorf("Lookup = %+v, %v", info, ok)
	}

	g, err := Create("stub_a")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "stub_a" {
		t.Errorf("created game ID = %q", g.ID())
	}

	found := false
	for _, gi := range List() {
		if gi.ID == "stub_a" {
			found = true
		}
	}
	if !found {
		t.Error("List should include stub_a")
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("no_such_game")
	if !errors.Is(err, ErrUnknownGame) {
		t.Errorf("Create error = %v, want ErrUnknownGame", err)
	}
}

func TestRegisterTwicePanics(t *testing.T) {
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("second Register should panic")
		}
	}()
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })
}

func TestControls(t *testing.T) {
	if got := Controls(&hintedGame{}); got != "custom keys" {
		t.Errorf("Controls(hinted) = %q", got)
	}
	if got := Controls(&stubGame{}); got == "" {
		t.Error("Controls should fall back to a generic hint")
	}
}
