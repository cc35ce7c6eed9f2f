// Package session implements the in-process bearer-token store used to
// authenticate donors. Tokens live only in memory; a restart invalidates
// every session.
package session

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long an issued token stays valid.
const DefaultTTL = 24 * time.Hour

const tokenBytes = 32

type entry struct {
	donorID   uuid.UUID
	expiresAt time.Time
}

// Store maps opaque bearer tokens to donor identities with time-based
// expiry. It is safe for concurrent use. Construct one per process and
// inject it wherever requests are authenticated.
type Store struct {
	mu       sync.Mutex
	sessions map[string]entry
	ttl      time.Duration
	now      func() time.Time
}

// NewStore returns a Store with the default 24 hour token lifetime.
func NewStore() *Store {
	return NewStoreWithTTL(DefaultTTL)
}

// NewStoreWithTTL returns a Store with a custom token lifetime.
func NewStoreWithTTL(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Issue creates a new token bound to the given donor and returns it.
// Concurrent calls for the same donor produce independent tokens that
// are all valid until they expire.
func (s *Store) Issue(donorID uuid.UUID) string {
	buf := make([]byte, tokenBytes)
	rand.Read(buf)
	token := base64.RawURLEncoding.EncodeToString(buf)

	s.mu.Lock()
	s.sessions[token] = entry{donorID: donorID, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()

	return token
}

// Validate looks up a token and returns the bound donor ID. Expired
// tokens are deleted on lookup; there is no background sweep. A valid
// token stays usable until it expires.
func (s *Store) Validate(token string) (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[token]
	if !ok {
		return uuid.Nil, false
	}
	if e.expiresAt.Before(s.now()) {
		delete(s.sessions, token)
		return uuid.Nil, false
	}
	return e.donorID, true
}

// Len reports the number of stored sessions, including any that have
// expired but not yet been looked up.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
