package booking

import (
	"sync"

	"courtbot/models"
)

// SessionRepository owns every in-progress dialogue session, keyed by user
// id. Sessions are ephemeral process state; restart loses them, which only
// costs a user their half-finished dialogue.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]models.Session)}
}

// Get returns the user's session, or a fresh idle one.
func (r *SessionRepository) Get(userID string) models.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.sessions[userID]; ok {
		return s
	}
	return models.Session{UserID: userID, Stage: models.StageIdle, Resource: models.ResourceCourt}
}

// Put stores the session.
func (r *SessionRepository) Put(s models.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.UserID] = s
}

// Reset discards the user's session, returning them to idle.
func (r *SessionRepository) Reset(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, userID)
}
