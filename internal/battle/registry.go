package battle

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tacticbot/tacticbot/internal/domain"
)

// Session carries one challenge from issuance through negotiation and combat.
// All access goes through the owning service, which holds the session lock.
type Session struct {
	ID           uuid.UUID
	ChallengerID string
	OpponentID   string
	Location     string
	State        domain.SessionState

	// Selections maps a player to their chosen unit ids during setup.
	Selections map[string][]string
	// Arranged tracks which players have confirmed a formation.
	Arranged map[string]bool
	// rowChoices maps a player to their unit row assignments.
	rowChoices map[string]map[string]domain.Row

	// Deadline bounds the current negotiation phase. The sweep expires
	// pending and selecting sessions past it; an arranging session gets
	// the default formation instead.
	Deadline time.Time

	Battle    *domain.Battle
	CreatedAt time.Time

	mu sync.Mutex
}

func (s *Session) lock()   { s.mu.Lock() }
func (s *Session) unlock() { s.mu.Unlock() }

// Active reports whether the session still occupies its participants.
func (s *Session) Active() bool {
	switch s.State {
	case domain.SessionStateCompleted, domain.SessionStateSurrendered, domain.SessionStateExpired:
		return false
	}
	return true
}

// pairKey builds the unordered participant key, so a second challenge
// between the same two players collides regardless of direction.
func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

// Registry is the in-memory index of live sessions. Registration is an
// atomic insert-if-absent under one mutex, so two concurrent challenges
// between overlapping players can never both register.
type Registry struct {
	mu       sync.Mutex
	byPair   map[string]*Session
	byPlayer map[string]*Session
}

// NewRegistry creates an empty session registry.
func NewRegistry() *Registry {
	return &Registry{
		byPair:   make(map[string]*Session),
		byPlayer: make(map[string]*Session),
	}
}

// Register inserts the session if neither participant is occupied and the
// pair has no live session. Returns domain.ErrAlreadyInSession otherwise.
func (r *Registry) Register(s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byPair[pairKey(s.ChallengerID, s.OpponentID)]; ok {
		return domain.ErrAlreadyInSession
	}
	if _, ok := r.byPlayer[s.ChallengerID]; ok {
		return domain.ErrAlreadyInSession
	}
	if _, ok := r.byPlayer[s.OpponentID]; ok {
		return domain.ErrAlreadyInSession
	}

	r.byPair[pairKey(s.ChallengerID, s.OpponentID)] = s
	r.byPlayer[s.ChallengerID] = s
	r.byPlayer[s.OpponentID] = s
	return nil
}

// ByPlayer returns the live session the player participates in, or nil.
func (r *Registry) ByPlayer(playerID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byPlayer[playerID]
}

// Remove drops the session from all indexes.
func (r *Registry) Remove(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pairKey(s.ChallengerID, s.OpponentID)
	if r.byPair[key] == s {
		delete(r.byPair, key)
	}
	if r.byPlayer[s.ChallengerID] == s {
		delete(r.byPlayer, s.ChallengerID)
	}
	if r.byPlayer[s.OpponentID] == s {
		delete(r.byPlayer, s.OpponentID)
	}
}

// Snapshot returns the live sessions in a stable order for sweeping.
func (r *Registry) Snapshot() []*Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions := make([]*Session, 0, len(r.byPair))
	for _, s := range r.byPair {
		sessions = append(sessions, s)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})
	return sessions
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byPair)
}
