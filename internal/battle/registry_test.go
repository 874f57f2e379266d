package battle

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacticbot/tacticbot/internal/domain"
)

func newSession(challenger, opponent string) *Session {
	return &Session{
		ID:           uuid.New(),
		ChallengerID: challenger,
		OpponentID:   opponent,
		State:        domain.SessionStatePending,
		Selections:   make(map[string][]string),
		Arranged:     make(map[string]bool),
		rowChoices:   make(map[string]map[string]domain.Row),
		CreatedAt:    time.Now(),
	}
}

func TestRegistryPairCollision(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(newSession("alice", "bob")))
	assert.ErrorIs(t, r.Register(newSession("alice", "bob")), domain.ErrAlreadyInSession)
	// The reversed pair is the same pair.
	assert.ErrorIs(t, r.Register(newSession("bob", "alice")), domain.ErrAlreadyInSession)
	// Overlapping participants collide too.
	assert.ErrorIs(t, r.Register(newSession("bob", "carol")), domain.ErrAlreadyInSession)
	// A disjoint pair registers fine.
	assert.NoError(t, r.Register(newSession("carol", "dave")))
	assert.Equal(t, 2, r.Len())
}

func TestRegistryRemove(t *testing.T) {
	r := NewRegistry()
	s := newSession("alice", "bob")
	require.NoError(t, r.Register(s))

	r.Remove(s)
	assert.Nil(t, r.ByPlayer("alice"))
	assert.Nil(t, r.ByPlayer("bob"))
	assert.NoError(t, r.Register(newSession("alice", "bob")))
}

// TestRegistryConcurrentRegistration hammers registration of the same pair
// from many goroutines; exactly one may win.
func TestRegistryConcurrentRegistration(t *testing.T) {
	r := NewRegistry()

	const attempts = 64
	var wg sync.WaitGroup
	wins := make(chan *Session, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(flip bool) {
			defer wg.Done()
			s := newSession("alice", "bob")
			if flip {
				s = newSession("bob", "alice")
			}
			if err := r.Register(s); err == nil {
				wins <- s
			}
		}(i%2 == 0)
	}
	wg.Wait()
	close(wins)

	var winners []*Session
	for s := range wins {
		winners = append(winners, s)
	}
	require.Len(t, winners, 1)
	assert.Same(t, winners[0], r.ByPlayer("alice"))
	assert.Same(t, winners[0], r.ByPlayer("bob"))
}

func TestRegistrySnapshotOrder(t *testing.T) {
	r := NewRegistry()
	first := newSession("a", "b")
	first.CreatedAt = time.Now().Add(-time.Minute)
	second := newSession("c", "d")

	require.NoError(t, r.Register(second))
	require.NoError(t, r.Register(first))

	snap := r.Snapshot()
	require.Len(t, snap, 2)
	assert.Same(t, first, snap[0])
	assert.Same(t, second, snap[1])
}
