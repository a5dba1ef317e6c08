package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrParticipantNotFound = errors.New("participant not found")

const participantKeyPrefix = "participant:"

// ParticipantRepository keeps the participant -> active session index next to the session mirror.
type ParticipantRepository interface {
	SetSession(ctx context.Context, participantID, sessionID string) error
	GetSessionID(ctx context.Context, participantID string) (string, error)
	// ReleaseSession drops the entry only while it still points at sessionID.
	ReleaseSession(ctx context.Context, participantID, sessionID string) error
}

// compare-and-delete, so closing an old session never clears a newer entry.
var releaseSessionScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type dbParticipant struct {
	client *redis.Client
	ttl    time.Duration
}

func NewParticipantRepository(client *redis.Client, ttl time.Duration) ParticipantRepository {
	return &dbParticipant{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbParticipant) SetSession(ctx context.Context, participantID, sessionID string) error {
	if err := that.client.Set(ctx, participantKeyPrefix+participantID, sessionID, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set participant: %w", err)
	}

	return nil
}

func (that *dbParticipant) GetSessionID(ctx context.Context, participantID string) (string, error) {
	sessionID, err := that.client.Get(ctx, participantKeyPrefix+participantID).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrParticipantNotFound
	}

	if err != nil {
		return "", fmt.Errorf("failed to get participant by id: %w", err)
	}

	return sessionID, nil
}

func (that *dbParticipant) ReleaseSession(ctx context.Context, participantID, sessionID string) error {
	err := releaseSessionScript.Run(ctx, that.client, []string{participantKeyPrefix + participantID}, sessionID).Err()
	if err != nil {
		return fmt.Errorf("failed to release participant session: %w", err)
	}

	return nil
}
