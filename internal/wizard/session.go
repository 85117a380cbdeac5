package wizard

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// ValidationResult is the outcome of a customer-number directory lookup,
// keyed to the exact input string that produced it. Results for superseded
// inputs stay stored but can never satisfy the guard for a newer input.
type ValidationResult struct {
	CustomerNumber string
	Valid          bool
}

// Session is one customer's in-flight intake. Sessions live only in memory:
// abandonment or a service restart discards them with no side effects, and
// no ticket exists until Submit succeeds.
type Session struct {
	ID          string
	CurrentStep Step
	Form        FormData
	// RMANumber is set once, at submission.
	RMANumber string

	validation *ValidationResult
	lastActive time.Time
}

// RecordValidation stores a lookup result for the number it was requested
// with. Arrival order does not matter: the guard compares the stored key
// against the current input, so the last typed input wins.
func (s *Session) RecordValidation(customerNumber string, valid bool) {
	s.validation = &ValidationResult{CustomerNumber: customerNumber, Valid: valid}
}

// Validation returns the stored lookup result, if any.
func (s *Session) Validation() *ValidationResult {
	return s.validation
}

// CompleteSubmission marks the session terminal after a ticket was created.
func (s *Session) CompleteSubmission(rmaNumber string) {
	s.RMANumber = rmaNumber
	s.CurrentStep = StepDoneSubmitted
}

// Store holds live sessions. Access to a session must go through With so
// per-session mutations are serialized.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates a session store with the given idle TTL.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Start creates a fresh session positioned at the category step.
func (st *Store) Start() *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	session := &Session{
		ID:          uuid.NewString(),
		CurrentStep: StepCategory,
		lastActive:  st.now(),
	}
	st.sessions[session.ID] = session
	return session
}

// With runs fn against the session under the store lock and refreshes its
// idle timer. It returns false when the session does not exist or expired.
func (st *Store) With(id string, fn func(*Session) error) (bool, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	session, ok := st.sessions[id]
	if !ok {
		return false, nil
	}
	if st.ttl > 0 && st.now().Sub(session.lastActive) > st.ttl {
		delete(st.sessions, id)
		return false, nil
	}
	session.lastActive = st.now()
	return true, fn(session)
}

// Delete discards a session. Abandonment has no other side effect.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// Sweep removes sessions idle past the TTL and returns how many it dropped.
func (st *Store) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.ttl <= 0 {
		return 0
	}
	now := st.now()
	removed := 0
	for id, session := range st.sessions {
		if now.Sub(session.lastActive) > st.ttl {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
