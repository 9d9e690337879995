// Package session holds the signed-in customer identity. The identity is an
// explicit value passed to whoever needs it, with a load/clear lifecycle,
// instead of an ambient lookup.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Customer is the cached identity record, the only durable state the portal
// keeps about a user.
type Customer struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// Context is one signed-in session.
type Context struct {
	Token     string
	Customer  Customer
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Store is an in-memory session table with TTL expiry, checked on load.
type Store struct {
	mu  sync.Mutex
	ttl time.Duration
	now func() time.Time

	sessions map[string]Context
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]Context),
	}
}

// Save creates a fresh session for the customer and returns it.
func (s *Store) Save(customer Customer) Context {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sc := Context{
		Token:     uuid.NewString(),
		Customer:  customer,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	s.sessions[sc.Token] = sc
	return sc
}

// Load resolves a token to its session. Expired sessions are dropped and
// reported as absent.
func (s *Store) Load(token string) (Context, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.sessions[token]
	if !ok {
		return Context{}, false
	}

	if s.now().After(sc.ExpiresAt) {
		delete(s.sessions, token)
		return Context{}, false
	}

	return sc, true
}

// Sweep removes every expired session and returns their tokens so callers
// can tear down whatever they keyed on them.
func (s *Store) Sweep() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var expired []string
	for token, sc := range s.sessions {
		if now.After(sc.ExpiresAt) {
			delete(s.sessions, token)
			expired = append(expired, token)
		}
	}
	return expired
}

// Clear ends a session. Clearing an unknown token is a no-op.
func (s *Store) Clear(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
}
