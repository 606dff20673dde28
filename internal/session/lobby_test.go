package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLobbyJoinLeave(t *testing.T) {
	l := NewLobby()
	if l.Count() != 0 {
		t.Fatalf("new lobby count = %d", l.Count())
	}

	l.Join("c1", Identity{UserID: "bob"})
	l.Join("c2", Identity{UserID: "alice"})
	l.Join("c3", Identity{UserID: "bob"})

	if l.Count() != 3 {
		t.Errorf("Count() = %d, want 3", l.Count())
	}
	if diff := cmp.Diff([]string{"alice", "bob"}, l.Players()); diff != "" {
		t.Errorf("Players() mismatch (-want +got):\n%s", diff)
	}

	l.Leave("c1")
	l.Leave("unknown")
	if l.Count() != 2 {
		t.Errorf("Count() after leave = %d, want 2", l.Count())
	}
	if diff := cmp.Diff([]string{"alice", "bob"}, l.Players()); diff != "" {
		t.Errorf("bob has a second connection (-want +got):\n%s", diff)
	}

	l.Leave("c3")
	if diff := cmp.Diff([]string{"alice"}, l.Players()); diff != "" {
		t.Errorf("Players() mismatch (-want +got):\n%s", diff)
	}
}

func TestLobbyConcurrent(t *testing.T) {
	l := NewLobby()
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := fmt.Sprintf("c%d", i)
			l.Join(id, Identity{UserID: fmt.Sprintf("u%d", i%5)})
			_ = l.Players()
			if i%2 == 0 {
				l.Leave(id)
			}
		}()
	}
	wg.Wait()

	if l.Count() != 25 {
		t.Errorf("Count() = %d, want 25", l.Count())
	}
}
