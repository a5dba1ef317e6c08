package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-relay/internal/entity"
	"github.com/rocketscienceinc/tictactoe-relay/internal/repository"
)

// SnapshotMirror copies live session state to external storage off the hot path.
type SnapshotMirror interface {
	// Publish never blocks. It reports false when the snapshot was dropped.
	Publish(snapshot entity.SessionSnapshot) bool
	// Run drains published snapshots until ctx is done.
	Run(ctx context.Context)
}

type sessionStore interface {
	CreateOrUpdate(ctx context.Context, snapshot *entity.SessionSnapshot) error
	DeleteByID(ctx context.Context, id string) error
}

type participantStore interface {
	SetSession(ctx context.Context, participantID, sessionID string) error
	ReleaseSession(ctx context.Context, participantID, sessionID string) error
}

type redisMirror struct {
	logger       *slog.Logger
	sessions     sessionStore
	participants participantStore

	queue chan entity.SessionSnapshot
}

func NewSnapshotMirror(logger *slog.Logger, sessions sessionStore, participants participantStore, buffer int) SnapshotMirror {
	if buffer < 1 {
		buffer = 1
	}

	return &redisMirror{
		logger:       logger.With("component", "mirror"),
		sessions:     sessions,
		participants: participants,
		queue:        make(chan entity.SessionSnapshot, buffer),
	}
}

func (that *redisMirror) Publish(snapshot entity.SessionSnapshot) bool {
	select {
	case that.queue <- snapshot:
		return true
	default:
		that.logger.Warn("mirror queue is full, snapshot dropped", "session_id", snapshot.ID, "state", snapshot.State)
		return false
	}
}

func (that *redisMirror) Run(ctx context.Context) {
	log := that.logger.With("method", "Run")
	log.Info("mirror started")

	for {
		select {
		case <-ctx.Done():
			log.Info("mirror stopped")
			return
		case snapshot := <-that.queue:
			// writes outlive the request that produced them
			that.apply(context.WithoutCancel(ctx), snapshot)
		}
	}
}

func (that *redisMirror) apply(ctx context.Context, snapshot entity.SessionSnapshot) {
	log := that.logger.With("method", "apply", "session_id", snapshot.ID)

	if snapshot.State.IsClosed() {
		if err := that.sessions.DeleteByID(ctx, snapshot.ID); err != nil {
			if errors.Is(err, repository.ErrSessionNotFound) {
				log.Debug("session was never mirrored")
			} else {
				log.Error("failed to delete session", "error", err)
			}
		}

		// a member may already be indexed to a newer session
		for _, p := range snapshot.Participants {
			if err := that.participants.ReleaseSession(ctx, p.ID, snapshot.ID); err != nil {
				log.Error("failed to release participant", "participant_id", p.ID, "error", err)
			}
		}

		return
	}

	if err := that.sessions.CreateOrUpdate(ctx, &snapshot); err != nil {
		log.Error("failed to mirror session", "error", err)
		return
	}

	// the index only changes when the session is created
	if snapshot.MovesPlayed > 0 {
		return
	}

	for _, p := range snapshot.Participants {
		if err := that.participants.SetSession(ctx, p.ID, snapshot.ID); err != nil {
			log.Error("failed to index participant", "participant_id", p.ID, "error", err)
		}
	}
}

type noopMirror struct{}

// NewNoopMirror is used when redis mirroring is disabled.
func NewNoopMirror() SnapshotMirror {
	return noopMirror{}
}

func (noopMirror) Publish(entity.SessionSnapshot) bool { return true }

func (noopMirror) Run(ctx context.Context) {
	<-ctx.Done()
}
