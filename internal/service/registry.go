package service

import (
	"fmt"
	"sync"

	"github.com/rocketscienceinc/tictactoe-relay/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-relay/internal/entity"
)

type SessionRegistry interface {
	Register(session *entity.Session) error
	Lookup(sessionID string) (*entity.Session, bool)
	LookupByParticipant(participantID string) (*entity.Session, bool)
	// Remove is idempotent and reports whether the session was still registered.
	Remove(sessionID string) bool
	HasActiveSession(participantID string) bool
	Len() int
}

type sessionRegistry struct {
	mu            sync.RWMutex
	sessions      map[string]*entity.Session
	byParticipant map[string]string
}

func NewSessionRegistry() SessionRegistry {
	return &sessionRegistry{
		sessions:      make(map[string]*entity.Session),
		byParticipant: make(map[string]string),
	}
}

func (that *sessionRegistry) Register(session *entity.Session) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[session.ID()]; ok {
		return fmt.Errorf("%w: %s", apperror.ErrSessionExists, session.ID())
	}

	participants := session.Participants()
	for _, p := range participants {
		if existing, ok := that.activeSessionOf(p.ID); ok {
			return fmt.Errorf("%w: %s is in session %s", apperror.ErrAlreadyInSession, p.ID, existing)
		}
	}

	that.sessions[session.ID()] = session
	for _, p := range participants {
		that.byParticipant[p.ID] = session.ID()
	}

	return nil
}

func (that *sessionRegistry) Lookup(sessionID string) (*entity.Session, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	session, ok := that.sessions[sessionID]

	return session, ok
}

func (that *sessionRegistry) LookupByParticipant(participantID string) (*entity.Session, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	sessionID, ok := that.byParticipant[participantID]
	if !ok {
		return nil, false
	}

	session, ok := that.sessions[sessionID]

	return session, ok
}

func (that *sessionRegistry) Remove(sessionID string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, ok := that.sessions[sessionID]
	if !ok {
		return false
	}

	delete(that.sessions, sessionID)
	for _, p := range session.Participants() {
		// the index may already point at a newer session for this participant
		if that.byParticipant[p.ID] == sessionID {
			delete(that.byParticipant, p.ID)
		}
	}

	return true
}

// HasActiveSession ignores a session that is closed but not removed yet.
func (that *sessionRegistry) HasActiveSession(participantID string) bool {
	that.mu.RLock()
	defer that.mu.RUnlock()

	_, ok := that.activeSessionOf(participantID)

	return ok
}

// activeSessionOf must be called with mu held.
func (that *sessionRegistry) activeSessionOf(participantID string) (string, bool) {
	sessionID, ok := that.byParticipant[participantID]
	if !ok {
		return "", false
	}

	session, ok := that.sessions[sessionID]
	if !ok || session.State().IsClosed() {
		return "", false
	}

	return sessionID, true
}

func (that *sessionRegistry) Len() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.sessions)
}
