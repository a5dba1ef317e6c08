package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rocketscienceinc/tictactoe-relay/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-relay/internal/entity"
	"github.com/rocketscienceinc/tictactoe-relay/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-relay/internal/service"
)

const (
	tracerName = "github.com/rocketscienceinc/tictactoe-relay/internal/usecase"

	registerAttempts = 3
)

const (
	reasonOpponentDisconnected = "opponent_disconnected"
	reasonOpponentLeft         = "opponent_left"
	reasonInconsistentSession  = "inconsistent_session"
)

type notifier interface {
	Send(participantID string, event entity.Event) error
}

type snapshotMirror interface {
	Publish(snapshot entity.SessionSnapshot) bool
}

type Options struct {
	// MaxWait bounds how long a participant may search. Zero disables the timeout.
	MaxWait       time.Duration
	SweepInterval time.Duration
}

// GameManager owns the matchmaking queue and the session registry and is the
// only place that turns client intents into session changes and events.
type GameManager struct {
	logger   *slog.Logger
	queue    service.MatchmakingQueue
	registry service.SessionRegistry
	mirror   snapshotMirror
	notifier notifier
	metrics  *metrics.Metrics
	tracer   trace.Tracer
	options  Options

	newSessionID func() string

	// matchMu covers enqueue through registration, and queue removals,
	// so a participant is never paired twice.
	matchMu sync.Mutex
}

func NewGameManager(
	logger *slog.Logger,
	queue service.MatchmakingQueue,
	registry service.SessionRegistry,
	mirror snapshotMirror,
	notifier notifier,
	m *metrics.Metrics,
	options Options,
) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		queue:    queue,
		registry: registry,
		mirror:   mirror,
		notifier: notifier,
		metrics:  m,
		tracer:   otel.Tracer(tracerName),
		options:  options,

		newSessionID: uuid.NewString,
	}
}

// FindMatch queues the participant and pairs the two oldest waiting participants
// when possible. The first of the pair plays X.
func (that *GameManager) FindMatch(ctx context.Context, participantID string) (err error) {
	_, span := that.startSpan(ctx, entity.ActionFindMatch, participantID)
	defer func() { endSpan(span, err) }()

	log := that.logger.With("method", "FindMatch", "participant_id", participantID)

	that.matchMu.Lock()
	defer that.matchMu.Unlock()

	if that.registry.HasActiveSession(participantID) {
		return fmt.Errorf("%w: %s", apperror.ErrAlreadyInSession, participantID)
	}

	position, err := that.queue.Enqueue(participantID)
	if err != nil {
		return fmt.Errorf("failed to enqueue: %w", err)
	}

	first, second, ok := that.queue.TryPair()
	that.metrics.SetQueueLength(that.queue.Len())

	if !ok {
		that.send(participantID, entity.ActionSearching, entity.SearchingPayload{Position: position})
		log.Info("participant is searching", "position", position)

		return nil
	}

	session, err := that.createSession(first, second)
	if err != nil {
		log.Error("failed to create session", "first", first, "second", second, "error", err)

		// the requester learns about it from the returned error
		other := first
		if other == participantID {
			other = second
		}
		that.reject(other, entity.ActionMatchRejected, err)

		return err
	}

	span.SetAttributes(attribute.String("session.id", session.ID()))

	// published before anyone can move, so the mirror sees creation first
	that.mirror.Publish(session.Snapshot())

	for _, p := range session.Participants() {
		opponent, _ := session.Opponent(p.ID)
		that.send(p.ID, entity.ActionMatchFound, entity.MatchFoundPayload{
			Symbol:     p.Symbol,
			SessionID:  session.ID(),
			OpponentID: opponent.ID,
		})
	}

	that.metrics.MatchCreated()
	that.metrics.SetActiveSessions(that.registry.Len())

	log.Info("match found", "session_id", session.ID(), "x", first, "o", second)

	return nil
}

// MakeMove applies a move for the participant's current session and broadcasts
// the result to both members. Rejections are returned to the caller only.
func (that *GameManager) MakeMove(ctx context.Context, participantID string, intent entity.MoveIntent) (outcome entity.MoveOutcome, err error) {
	_, span := that.startSpan(ctx, entity.ActionMakeMove, participantID)
	defer func() {
		if err != nil {
			that.metrics.Move(apperror.Reason(err))
		}
		endSpan(span, err)
	}()

	log := that.logger.With("method", "MakeMove", "participant_id", participantID, "cell", intent.Cell)

	session, ok := that.registry.LookupByParticipant(participantID)
	if !ok {
		return entity.MoveOutcome{}, fmt.Errorf("%w: %s", apperror.ErrNoActiveSession, participantID)
	}

	span.SetAttributes(attribute.String("session.id", session.ID()))

	if intent.SessionID != "" && intent.SessionID != session.ID() {
		return entity.MoveOutcome{}, fmt.Errorf("%w: %s is not in session %s", apperror.ErrNoActiveSession, participantID, intent.SessionID)
	}

	symbol, ok := session.SymbolOf(participantID)
	if !ok {
		that.abortSession(session, reasonInconsistentSession)
		return entity.MoveOutcome{}, fmt.Errorf("%w: registry points %s at %s", apperror.ErrUnknownParticipant, participantID, session.ID())
	}

	if intent.Symbol != entity.SymbolNone && intent.Symbol != symbol {
		return entity.MoveOutcome{}, fmt.Errorf("%w: %s plays %s, not %s", apperror.ErrIllegalMove, participantID, symbol, intent.Symbol)
	}

	session.Sequence(func() {
		outcome, err = session.SubmitMove(participantID, intent.Cell)
		if err != nil {
			return
		}

		// the mirror has to see a close before any later session of these members
		that.mirror.Publish(session.Snapshot())

		that.broadcast(session, entity.ActionMoveMade, entity.MoveMadePayload{
			SessionID:  outcome.SessionID,
			Index:      outcome.Cell,
			Symbol:     outcome.Symbol,
			NextTurn:   outcome.NextTurn,
			Terminal:   outcome.Terminal.Outcome,
			Winner:     outcome.Terminal.Winner,
			MoveNumber: outcome.MoveNumber,
		})

		if outcome.Terminal.IsTerminal() {
			that.broadcast(session, entity.ActionMatchEnded, entity.MatchEndedPayload{
				SessionID: session.ID(),
				Result:    outcome.Terminal.Outcome,
				Winner:    outcome.Terminal.Winner,
			})
			that.closeSession(session, string(outcome.Terminal.Outcome))
		}
	})

	if err != nil {
		log.Debug("move rejected", "reason", apperror.Reason(err))
		return entity.MoveOutcome{}, fmt.Errorf("failed to submit move: %w", err)
	}

	that.metrics.Move(metrics.MoveAccepted)

	if outcome.Terminal.IsTerminal() {
		log.Info("match ended", "session_id", session.ID(), "result", outcome.Terminal.Outcome, "winner", outcome.Terminal.Winner)
	}

	return outcome, nil
}

// Disconnect releases everything the participant holds. An in-progress session is
// abandoned and the opponent is told; a finished one is left alone.
func (that *GameManager) Disconnect(ctx context.Context, participantID string) {
	_, span := that.startSpan(ctx, "disconnect", participantID)
	defer span.End()

	log := that.logger.With("method", "Disconnect", "participant_id", participantID)

	that.matchMu.Lock()
	dequeued := that.queue.Remove(participantID)
	session, ok := that.registry.LookupByParticipant(participantID)
	that.matchMu.Unlock()

	if dequeued {
		that.metrics.SetQueueLength(that.queue.Len())
		log.Info("participant left the queue")
	}

	if !ok {
		return
	}

	if err := that.abandon(session, participantID, reasonOpponentDisconnected); err != nil {
		log.Warn("failed to abandon session", "session_id", session.ID(), "error", err)
	}
}

// LeaveMatch abandons the current session on request. The opponent sees the same
// opponentLeft event as on disconnect.
func (that *GameManager) LeaveMatch(ctx context.Context, participantID string) (err error) {
	_, span := that.startSpan(ctx, entity.ActionLeaveMatch, participantID)
	defer func() { endSpan(span, err) }()

	session, ok := that.registry.LookupByParticipant(participantID)
	if !ok {
		return fmt.Errorf("%w: %s", apperror.ErrNoActiveSession, participantID)
	}

	return that.abandon(session, participantID, reasonOpponentLeft)
}

// CancelSearch takes a waiting participant out of the queue.
func (that *GameManager) CancelSearch(ctx context.Context, participantID string) (err error) {
	_, span := that.startSpan(ctx, entity.ActionCancelSearch, participantID)
	defer func() { endSpan(span, err) }()

	that.matchMu.Lock()
	removed := that.queue.Remove(participantID)
	that.matchMu.Unlock()

	if !removed {
		return fmt.Errorf("%w: %s", apperror.ErrNotQueued, participantID)
	}

	that.metrics.SetQueueLength(that.queue.Len())
	that.send(participantID, entity.ActionSearchCancelled, entity.EmptyPayload{})

	return nil
}

// RunSweeper drops participants that searched longer than MaxWait until ctx is done.
// It returns immediately when the timeout is disabled.
func (that *GameManager) RunSweeper(ctx context.Context) {
	if that.options.MaxWait <= 0 {
		return
	}

	interval := that.options.SweepInterval
	if interval <= 0 {
		interval = that.options.MaxWait
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			that.sweep(now)
		}
	}
}

func (that *GameManager) sweep(now time.Time) {
	that.matchMu.Lock()
	expired := that.queue.Expired(now, that.options.MaxWait)
	that.matchMu.Unlock()

	if len(expired) == 0 {
		return
	}

	that.metrics.SetQueueLength(that.queue.Len())

	for _, participantID := range expired {
		that.send(participantID, entity.ActionSearchTimedOut, entity.EmptyPayload{})
	}

	that.logger.Info("search timed out", "method", "sweep", "participants", len(expired))
}

func (that *GameManager) createSession(first, second string) (*entity.Session, error) {
	var err error

	for range registerAttempts {
		session := entity.NewSession(that.newSessionID(), first, second)

		err = that.registry.Register(session)
		if err == nil {
			return session, nil
		}

		if !errors.Is(err, apperror.ErrSessionExists) {
			break
		}
	}

	return nil, fmt.Errorf("failed to register session: %w", err)
}

func (that *GameManager) abandon(session *entity.Session, participantID, reason string) error {
	var err error

	session.Sequence(func() {
		var opponent entity.Participant

		opponent, err = session.Disconnect(participantID)
		if err != nil {
			return
		}

		that.mirror.Publish(session.Snapshot())
		that.send(opponent.ID, entity.ActionOpponentLeft, entity.SessionClosedPayload{
			SessionID: session.ID(),
			Reason:    reason,
		})
		that.closeSession(session, metrics.ResultAbandoned)
	})

	switch {
	case errors.Is(err, apperror.ErrUnknownParticipant):
		that.abortSession(session, reasonInconsistentSession)
		return fmt.Errorf("failed to abandon session: %w", err)
	case errors.Is(err, apperror.ErrSessionClosed):
		// terminal sessions are normally gone already
		that.registry.Remove(session.ID())
		return fmt.Errorf("failed to abandon session: %w", err)
	case err != nil:
		return fmt.Errorf("failed to abandon session: %w", err)
	}

	that.logger.Info("session abandoned", "method", "abandon", "session_id", session.ID(), "participant_id", participantID)

	return nil
}

// abortSession tears down a session whose bookkeeping no longer adds up.
// Only that session is affected.
func (that *GameManager) abortSession(session *entity.Session, reason string) {
	var wasOpen bool

	session.Sequence(func() {
		wasOpen = session.Abort()
		that.mirror.Publish(session.Snapshot())
		that.broadcast(session, entity.ActionSessionAborted, entity.SessionClosedPayload{
			SessionID: session.ID(),
			Reason:    reason,
		})
		that.registry.Remove(session.ID())
	})

	that.metrics.SetActiveSessions(that.registry.Len())

	if wasOpen {
		that.metrics.MatchFinished(metrics.ResultAborted)
	}

	that.logger.Error("session aborted", "method", "abortSession", "session_id", session.ID(), "reason", reason)
}

func (that *GameManager) closeSession(session *entity.Session, result string) {
	that.registry.Remove(session.ID())
	that.metrics.MatchFinished(result)
	that.metrics.SetActiveSessions(that.registry.Len())
}

func (that *GameManager) broadcast(session *entity.Session, action string, payload any) {
	for _, p := range session.Participants() {
		that.send(p.ID, action, payload)
	}
}

func (that *GameManager) send(participantID, action string, payload any) {
	if err := that.notifier.Send(participantID, entity.Event{Action: action, Payload: payload}); err != nil {
		that.logger.Warn("failed to notify participant", "participant_id", participantID, "action", action, "error", err)
	}
}

func (that *GameManager) reject(participantID, action string, err error) {
	that.send(participantID, action, entity.RejectedPayload{
		Reason: apperror.Reason(err),
		Error:  err.Error(),
	})
}

func (that *GameManager) startSpan(ctx context.Context, action, participantID string) (context.Context, trace.Span) {
	return that.tracer.Start(ctx, "gateway."+action,
		trace.WithAttributes(attribute.String("participant.id", participantID)),
	)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	span.End()
}
