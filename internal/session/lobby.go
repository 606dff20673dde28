package session

import (
	"slices"
	"strings"
	"sync"
)

// Lobby tracks the players connected to a shared server.
// Safe for concurrent use.
type Lobby struct {
	mu      sync.RWMutex
	players map[string]Identity // Keyed by connection ID
}

// NewLobby creates an empty lobby.
func NewLobby() *Lobby {
	return &Lobby{
		players: make(map[string]Identity),
	}
}

// Join records a connection. Joining twice with the same ID replaces the
// identity.
func (l *Lobby) Join(connID string, id Identity) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.players[connID] = id
}

// Leave removes a connection. Unknown IDs are ignored.
func (l *Lobby) Leave(connID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.players, connID)
}

// Count returns the number of open connections.
func (l *Lobby) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.players)
}

// Players returns the distinct user IDs online, sorted.
func (l *Lobby) Players() []string {
	l.mu.RLock()
	users := make([]string, 0, len(l.players))
	for _, id := range l.players {
		users = append(users, id.UserID)
	}
	l.mu.RUnlock()

	slices.SortFunc(users, strings.Compare)
	return slices.Compact(users)
}
