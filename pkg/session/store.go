package session

import (
	"sync"
	"time"

	"vineyard-assistant/internal/constant"
	"vineyard-assistant/pkg/llm"
)

// UserSession holds one user's dialog history. The system turn is never
// stored here; it is injected fresh on every generation call.
type UserSession struct {
	Context      []llm.Message
	LastActivity time.Time
}

// Store keeps per-user sessions with idle-timeout expiry. Every exported
// operation first sweeps expired sessions across all users, so a session
// idle beyond the timeout is never visible to any reader. All mutation is
// atomic behind the store mutex; two racing requests for one user
// interleave at exchange granularity (last writer wins) but can never
// corrupt the map.
type Store struct {
	mu          sync.Mutex
	sessions    map[int64]*UserSession
	idleTimeout time.Duration
	maxTurns    int
}

// NewStore creates a session store. maxTurns caps history length per user
// (oldest exchange dropped first); 0 disables the cap.
func NewStore(idleTimeout time.Duration, maxTurns int) *Store {
	return &Store{
		sessions:    make(map[int64]*UserSession),
		idleTimeout: idleTimeout,
		maxTurns:    maxTurns,
	}
}

// sweep removes every session idle beyond the timeout. Caller holds mu.
func (s *Store) sweep() {
	cutoff := time.Now().Add(-s.idleTimeout)
	for userID, sess := range s.sessions {
		if sess.LastActivity.Before(cutoff) {
			delete(s.sessions, userID)
		}
	}
}

// getOrCreate returns the user's session, synthesizing an empty one if
// absent. Caller holds mu and has already swept.
func (s *Store) getOrCreate(userID int64) *UserSession {
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &UserSession{LastActivity: time.Now()}
		s.sessions[userID] = sess
	}
	return sess
}

// GetOrCreate sweeps, then returns a snapshot of the user's session,
// creating an empty one if absent.
func (s *Store) GetOrCreate(userID int64) UserSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()

	sess := s.getOrCreate(userID)
	return UserSession{
		Context:      append([]llm.Message(nil), sess.Context...),
		LastActivity: sess.LastActivity,
	}
}

// Context sweeps, then returns a copy of the user's dialog history.
// Read-only: an absent session yields nil and is not synthesized, so a
// request that later fails leaves the store exactly as it found it.
func (s *Store) Context(userID int64) []llm.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()

	sess, ok := s.sessions[userID]
	if !ok {
		return nil
	}
	return append([]llm.Message(nil), sess.Context...)
}

// RecordExchange appends one user turn and one assistant turn to the
// session and refreshes its idle deadline.
func (s *Store) RecordExchange(userID int64, userText, assistantText string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()

	sess := s.getOrCreate(userID)
	sess.Context = append(sess.Context,
		llm.Message{Role: constant.ChatMessageRoleUser, Content: userText},
		llm.Message{Role: constant.ChatMessageRoleAssistant, Content: assistantText},
	)

	// Drop oldest exchanges beyond the cap, whole pairs at a time
	if s.maxTurns > 0 && len(sess.Context) > s.maxTurns {
		drop := len(sess.Context) - s.maxTurns
		if drop%2 != 0 {
			drop++
		}
		sess.Context = append([]llm.Message(nil), sess.Context[drop:]...)
	}

	sess.LastActivity = time.Now()
}

// Clear removes the user's session entirely.
func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// Len reports how many sessions are currently live (after a sweep).
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	return len(s.sessions)
}
