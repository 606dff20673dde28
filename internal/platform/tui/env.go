package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blank-arcade/internal/session"
	"github.com/vovakirdan/blank-arcade/internal/storage"
)

// storeTimeout bounds every store call made from the UI goroutine.
const storeTimeout = 2 * time.Second

// Env is what every screen of one player's visit shares.
type Env struct {
	Store    *storage.Store   // Nil runs without persistence
	Reporter session.Reporter // Receives new best scores; nil disables reporting
	Identity session.Identity
	Lobby    *session.Lobby // Players on the same server; nil when playing locally
	Logger   *log.Logger
}

func (e Env) logger() *log.Logger {
	if e.Logger == nil {
		return log.Default()
	}
	return e.Logger
}

// newSession creates a session for gameID owned by the env's player.
func (e Env) newSession(gameID string) (*session.Session, error) {
	opts := session.Options{
		Identity: e.Identity,
		Reporter: e.Reporter,
		Logger:   e.logger(),
	}
	if e.Store != nil {
		opts.Best = e.Store
	}
	return session.Create(gameID, opts)
}

func storeContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}

// runSavedMsg reports the outcome of recording a finished run.
type runSavedMsg struct {
	GameID string
	Score  int
	ID     int64
	Err    error
}

// saveRunCmd records a finished run in the history table off the UI loop.
func saveRunCmd(store *storage.Store, userID, gameID string, score int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := storeContext()
		defer cancel()
		id, err := store.SaveScore(ctx, userID, gameID, score)
		return runSavedMsg{GameID: gameID, Score: score, ID: id, Err: err}
	}
}
