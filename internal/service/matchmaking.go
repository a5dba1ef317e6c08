package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-relay/internal/apperror"
)

type MatchmakingQueue interface {
	// Enqueue appends a participant to the tail and returns its 1-based position.
	Enqueue(participantID string) (int, error)
	// TryPair removes the two oldest participants, in arrival order.
	TryPair() (string, string, bool)
	Remove(participantID string) bool
	Contains(participantID string) bool
	Len() int
	// Expired removes and returns every participant that has waited longer than maxWait.
	Expired(now time.Time, maxWait time.Duration) []string
}

type activeSessions interface {
	HasActiveSession(participantID string) bool
}

type waitingParticipant struct {
	id         string
	enqueuedAt time.Time
}

type matchmakingQueue struct {
	sessions activeSessions
	now      func() time.Time

	mu      sync.Mutex
	waiting []waitingParticipant
	queued  map[string]struct{}
}

func NewMatchmakingQueue(sessions activeSessions) MatchmakingQueue {
	return &matchmakingQueue{
		sessions: sessions,
		now:      time.Now,
		queued:   make(map[string]struct{}),
	}
}

func (that *matchmakingQueue) Enqueue(participantID string) (int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.queued[participantID]; ok {
		return 0, fmt.Errorf("%w: %s", apperror.ErrAlreadyQueued, participantID)
	}

	if that.sessions != nil && that.sessions.HasActiveSession(participantID) {
		return 0, fmt.Errorf("%w: %s has an active session", apperror.ErrAlreadyQueued, participantID)
	}

	that.waiting = append(that.waiting, waitingParticipant{id: participantID, enqueuedAt: that.now()})
	that.queued[participantID] = struct{}{}

	return len(that.waiting), nil
}

func (that *matchmakingQueue) TryPair() (string, string, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if len(that.waiting) < 2 {
		return "", "", false
	}

	first, second := that.waiting[0], that.waiting[1]
	that.waiting = that.waiting[2:]
	delete(that.queued, first.id)
	delete(that.queued, second.id)

	return first.id, second.id, true
}

func (that *matchmakingQueue) Remove(participantID string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.queued[participantID]; !ok {
		return false
	}

	for i, w := range that.waiting {
		if w.id == participantID {
			that.waiting = append(that.waiting[:i], that.waiting[i+1:]...)
			break
		}
	}
	delete(that.queued, participantID)

	return true
}

func (that *matchmakingQueue) Contains(participantID string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	_, ok := that.queued[participantID]

	return ok
}

func (that *matchmakingQueue) Len() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.waiting)
}

func (that *matchmakingQueue) Expired(now time.Time, maxWait time.Duration) []string {
	that.mu.Lock()
	defer that.mu.Unlock()

	var expired []string
	kept := that.waiting[:0]
	for _, w := range that.waiting {
		if now.Sub(w.enqueuedAt) > maxWait {
			expired = append(expired, w.id)
			delete(that.queued, w.id)
			continue
		}
		kept = append(kept, w)
	}
	that.waiting = kept

	return expired
}
