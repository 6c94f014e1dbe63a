package session

import (
	"errors"
	"sync"
	"time"
)

// ErrNoActiveSession is returned by manager operations that require an
// active session when the user has none.
var ErrNoActiveSession = errors.New("no active workout session")

// Manager holds at most one active session per user. Sessions live
// purely in process memory: a restart discards any workout in
// progress that was never ended.
//
// The interaction model is one user driving one session, but requests
// for the same user can still overlap at the HTTP layer, so mutations
// are serialized behind a single mutex.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Start begins a new session for the user. If one is already active it
// is returned unchanged; starting is idempotent while active.
func (m *Manager) Start(userID string) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.sessions[userID]; ok {
		return existing.clone(), false
	}
	s := newSession()
	m.sessions[userID] = s
	return s.clone(), true
}

// Get returns a snapshot of the user's active session.
func (m *Manager) Get(userID string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[userID]
	if !ok {
		return Session{}, ErrNoActiveSession
	}
	return s.clone(), nil
}

// AddExercises appends exercises to the user's active session.
func (m *Manager) AddExercises(userID string, items []NewExercise) (Session, error) {
	return m.mutate(userID, func(s *Session) {
		s.AddExercises(items)
	})
}

// RemoveExercise removes an exercise from the user's active session.
func (m *Manager) RemoveExercise(userID, exerciseID string) (Session, error) {
	return m.mutate(userID, func(s *Session) {
		s.RemoveExercise(exerciseID)
	})
}

// AddSet appends a zeroed set to an exercise in the active session.
func (m *Manager) AddSet(userID, exerciseID string) (Session, error) {
	return m.mutate(userID, func(s *Session) {
		s.AddSet(exerciseID)
	})
}

// UpdateSet writes reps or weight on a set in the active session.
func (m *Manager) UpdateSet(userID, exerciseID, setID string, field SetField, value float64) (Session, error) {
	return m.mutate(userID, func(s *Session) {
		s.UpdateSet(exerciseID, setID, field, value)
	})
}

// RemoveSet removes a set row from an exercise in the active session.
func (m *Manager) RemoveSet(userID, exerciseID, setID string) (Session, error) {
	return m.mutate(userID, func(s *Session) {
		s.RemoveSet(exerciseID, setID)
	})
}

// BuildSavePayload snapshots the active session into its persistence
// shape without clearing it. The session is only discarded once the
// gateway write succeeds, so a failed save leaves everything in place
// for a retry.
func (m *Manager) BuildSavePayload(userID string, endedAt time.Time) (SavePayload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[userID]
	if !ok {
		return SavePayload{}, ErrNoActiveSession
	}
	return s.BuildSavePayload(endedAt), nil
}

// Discard drops the user's active session, saved or not.
func (m *Manager) Discard(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

func (m *Manager) mutate(userID string, fn func(*Session)) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[userID]
	if !ok {
		return Session{}, ErrNoActiveSession
	}
	fn(s)
	return s.clone(), nil
}
