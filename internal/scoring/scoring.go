// Package scoring is the boundary between running games and score storage.
// Games never talk to it directly: a session observes the score after each
// step and hands new bests to a Reporter, which delivers them to a Sink in
// the background.
package scoring

import (
	"context"
	"sync"
	"time"
)

// Report is one new best score for a user and game.
type Report struct {
	SessionID   string
	UserID      string
	DisplayName string
	GameID      string
	Score       int
	At          time.Time
}

// Sink receives score reports. Implementations keep only the highest score
// per user and game.
type Sink interface {
	ReportScore(ctx context.Context, r Report) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, r Report) error

// ReportScore calls f.
func (f SinkFunc) ReportScore(ctx context.Context, r Report) error {
	return f(ctx, r)
}

// Discard is a Sink that drops every report.
var Discard Sink = SinkFunc(func(context.Context, Report) error { return nil })

// BestLookup reads the stored best score. Missing entries read as 0.
type BestLookup interface {
	BestScore(ctx context.Context, userID, gameID string) (int, error)
}

// Tracker remembers the best known score per game for one user.
type Tracker struct {
	userID string

	mu   sync.Mutex
	best map[string]int
}

// NewTracker creates an empty tracker for userID.
func NewTracker(userID string) *Tracker {
	return &Tracker{
		userID: userID,
		best:   make(map[string]int),
	}
}

// UserID returns the user the tracker belongs to.
func (t *Tracker) UserID() string {
	return t.userID
}

// Load seeds the best score of gameID from storage. A nil lookup leaves the
// best at 0.
func (t *Tracker) Load(ctx context.Context, lookup BestLookup, gameID string) error {
	if lookup == nil {
		return nil
	}
	score, err := lookup.BestScore(ctx, t.userID, gameID)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if score > t.best[gameID] {
		t.best[gameID] = score
	}
	return nil
}

// Best returns the best known score for gameID.
func (t *Tracker) Best(gameID string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.best[gameID]
}

// Observe records score and reports whether it beats the previous best.
func (t *Tracker) Observe(gameID string, score int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if score <= t.best[gameID] {
		return false
	}
	t.best[gameID] = score
	return true
}
