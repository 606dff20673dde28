// Package session binds one game instance to one player.
//
// A Session is the single writer of its game: Reset, Step, Render and State
// are serialised by a mutex, so a renderer on another goroutine never sees a
// half-applied move. After every step the score is compared with the
// player's best and new bests are handed to the scoring reporter without
// waiting for storage.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/blank-arcade/internal/core"
	"github.com/vovakirdan/blank-arcade/internal/registry"
	"github.com/vovakirdan/blank-arcade/internal/scoring"
)

// Reporter accepts score reports without blocking.
type Reporter interface {
	Report(r scoring.Report) bool
}

// Identity names the player who owns a session.
type Identity struct {
	UserID      string
	DisplayName string
}

// Options configure a Session.
type Options struct {
	Identity Identity
	Reporter Reporter           // Nil disables score reporting
	Best     scoring.BestLookup // Seeds the best score; nil starts at 0
	Logger   *log.Logger
	Now      func() time.Time
}

// Session owns exactly one game for one player.
type Session struct {
	id       string
	identity Identity
	reporter Reporter
	best     scoring.BestLookup
	tracker  *scoring.Tracker
	logger   *log.Logger
	now      func() time.Time

	mu   sync.Mutex
	game registry.Game
	cfg  core.RuntimeConfig
	last core.GameState
}

// New creates a session around game. The game is not reset; call Reset
// before the first Step.
func New(game registry.Game, opts Options) *Session {
	if opts.Identity.UserID == "" {
		opts.Identity.UserID = "guest"
	}
	if opts.Identity.DisplayName == "" {
		opts.Identity.DisplayName = opts.Identity.UserID
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	id := uuid.NewString()
	return &Session{
		id:       id,
		identity: opts.Identity,
		reporter: opts.Reporter,
		best:     opts.Best,
		tracker:  scoring.NewTracker(opts.Identity.UserID),
		logger:   opts.Logger.With("session", id[:8], "user", opts.Identity.UserID, "game", game.ID()),
		now:      opts.Now,
		game:     game,
	}
}

// Create builds a session for a registered game.
func Create(gameID string, opts Options) (*Session, error) {
	g, err := registry.Create(gameID)
	if err != nil {
		return nil, err
	}
	return New(g, opts), nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Identity returns the owning player.
func (s *Session) Identity() Identity {
	return s.identity
}

// GameID returns the ID of the wrapped game.
func (s *Session) GameID() string {
	return s.game.ID()
}

// Title returns the wrapped game's display name.
func (s *Session) Title() string {
	return s.game.Title()
}

// Controls returns the key hints of the wrapped game.
func (s *Session) Controls() string {
	return registry.Controls(s.game)
}

// Reset restarts the game and reloads the player's best score.
func (s *Session) Reset(ctx context.Context, cfg core.RuntimeConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg = cfg
	s.game.Reset(cfg)
	s.last = s.game.State()

	if err := s.tracker.Load(ctx, s.best, s.game.ID()); err != nil {
		s.logger.Warn("could not load best score", "error", err)
	}
	s.logger.Debug("session reset", "seed", cfg.Seed, "best", s.tracker.Best(s.game.ID()))
}

// Resize changes the screen size and restarts the game.
func (s *Session) Resize(ctx context.Context, width, height int) {
	s.mu.Lock()
	cfg := s.cfg
	s.mu.Unlock()

	cfg.ScreenW = width
	cfg.ScreenH = height
	s.Reset(ctx, cfg)
}

// Step advances the game by one tick and reports a new best score.
func (s *Session) Step(in core.InputFrame) core.StepResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.game.Step(in)
	if res.State.GameOver && !s.last.GameOver {
		s.logger.Info("game over", "score", res.State.Score)
	}
	s.last = res.State

	gameID := s.game.ID()
	if s.tracker.Observe(gameID, res.State.Score) {
		s.report(gameID, res.State.Score)
	}
	return res
}

func (s *Session) report(gameID string, score int) {
	if s.reporter == nil {
		return
	}
	ok := s.reporter.Report(scoring.Report{
		SessionID:   s.id,
		UserID:      s.identity.UserID,
		DisplayName: s.identity.DisplayName,
		GameID:      gameID,
		Score:       score,
		At:          s.now(),
	})
	if !ok {
		s.logger.Warn("score reporter closed, best not saved", "score", score)
	}
}

// Render draws the game into dst.
func (s *Session) Render(dst *core.Screen) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game.Render(dst)
}

// State returns the game state.
func (s *Session) State() core.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.State()
}

// Best returns the best score known for this player and game.
func (s *Session) Best() int {
	return s.tracker.Best(s.game.ID())
}
