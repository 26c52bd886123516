package interview

import (
	"context"
	"sync"

	apperrors "github.com/interview-coach-team/interview-coach/errors"
	"github.com/interview-coach-team/interview-coach/internal/usecase/vision"
)

// ActiveSession bundles everything that lives for the duration of one
// interview: the dialogue state machine, the behavioral metrics pipeline and
// the auto-save loop's cancel handle.
type ActiveSession struct {
	Dialogue *Session
	Tracker  *vision.Tracker
	Sampler  *vision.Sampler

	cancelAutoSave context.CancelFunc
	finalizeOnce   sync.Once
}

// Store is the registry of live sessions, keyed by user. Traffic is
// human-paced, so a single mutex over a map is all the concurrency machinery
// this needs.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*ActiveSession
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{sessions: make(map[string]*ActiveSession)}
}

// Get returns the live session for a user
func (st *Store) Get(userKey string) (*ActiveSession, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[userKey]
	return s, ok
}

// Create registers a session for a user. When racing creates arrive for the
// same user exactly one wins; the rest get SESSION_ALREADY_ACTIVE.
func (st *Store) Create(userKey string, s *ActiveSession) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, exists := st.sessions[userKey]; exists {
		return apperrors.ErrSessionAlreadyActive(userKey)
	}
	st.sessions[userKey] = s
	return nil
}

// Remove drops the session for a user, if any
func (st *Store) Remove(userKey string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, userKey)
}

// Len returns the number of live sessions
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Drain atomically empties the store and returns what was live, for shutdown
// finalization.
func (st *Store) Drain() []*ActiveSession {
	st.mu.Lock()
	defer st.mu.Unlock()
	drained := make([]*ActiveSession, 0, len(st.sessions))
	for _, s := range st.sessions {
		drained = append(drained, s)
	}
	st.sessions = make(map[string]*ActiveSession)
	return drained
}
