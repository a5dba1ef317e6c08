package entity

import (
	"fmt"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-relay/internal/apperror"
)

type SessionState string

const (
	SessionInProgress SessionState = "in_progress"
	SessionWon        SessionState = "won"
	SessionDrawn      SessionState = "drawn"
	SessionAbandoned  SessionState = "abandoned"
)

func (that SessionState) IsClosed() bool {
	return that != SessionInProgress
}

// MoveOutcome describes an accepted move. NextTurn is empty once the board is decided.
type MoveOutcome struct {
	SessionID  string   `json:"session_id"`
	Cell       int      `json:"cell"`
	Symbol     Symbol   `json:"symbol"`
	NextTurn   Symbol   `json:"next_turn"`
	Terminal   Terminal `json:"terminal"`
	MoveNumber int      `json:"move_number"`
}

// SessionSnapshot is a point-in-time copy of a session, safe to hand to other goroutines.
type SessionSnapshot struct {
	ID           string            `json:"id"`
	Participants [2]Participant    `json:"participants"`
	Board        [BoardSize]Symbol `json:"board"`
	Turn         Symbol            `json:"turn"`
	State        SessionState      `json:"state"`
	Terminal     Terminal          `json:"terminal"`
	MovesPlayed  int               `json:"moves_played"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// Session is one match between two participants. All mutation goes through its own lock,
// so separate sessions never contend with each other.
type Session struct {
	id           string
	participants [2]Participant
	createdAt    time.Time

	seq sync.Mutex

	mu        sync.Mutex
	board     *Board
	state     SessionState
	updatedAt time.Time
}

// NewSession pairs first as X and second as O. X moves first.
func NewSession(id, first, second string) *Session {
	now := time.Now().UTC()

	return &Session{
		id: id,
		participants: [2]Participant{
			{ID: first, Symbol: SymbolX},
			{ID: second, Symbol: SymbolO},
		},
		createdAt: now,
		board:     NewBoard(),
		state:     SessionInProgress,
		updatedAt: now,
	}
}

// Sequence runs fn exclusively against other Sequence calls on this session.
// Callers wrap a state change and the notifications it produces, so members
// observe events in the order the changes were applied.
func (that *Session) Sequence(fn func()) {
	that.seq.Lock()
	defer that.seq.Unlock()

	fn()
}

func (that *Session) ID() string {
	return that.id
}

func (that *Session) Participants() [2]Participant {
	return that.participants
}

func (that *Session) HasParticipant(participantID string) bool {
	_, ok := that.member(participantID)
	return ok
}

// SymbolOf returns the symbol assigned to a member.
func (that *Session) SymbolOf(participantID string) (Symbol, bool) {
	p, ok := that.member(participantID)
	if !ok {
		return SymbolNone, false
	}

	return p.Symbol, true
}

// Opponent returns the other member of the session.
func (that *Session) Opponent(participantID string) (Participant, bool) {
	switch participantID {
	case that.participants[0].ID:
		return that.participants[1], true
	case that.participants[1].ID:
		return that.participants[0], true
	default:
		return Participant{}, false
	}
}

func (that *Session) State() SessionState {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.state
}

// SubmitMove validates and applies a move for a member.
// Cell errors take precedence over turn errors: an occupied cell is always an illegal move.
func (that *Session) SubmitMove(participantID string, cell int) (MoveOutcome, error) {
	p, ok := that.member(participantID)
	if !ok {
		return MoveOutcome{}, fmt.Errorf("%w: %s", apperror.ErrUnknownParticipant, participantID)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.state.IsClosed() {
		return MoveOutcome{}, fmt.Errorf("%w: session %s is %s", apperror.ErrSessionClosed, that.id, that.state)
	}

	if err := that.board.ValidateCell(cell); err != nil {
		return MoveOutcome{}, err
	}

	if p.Symbol != that.board.Turn {
		return MoveOutcome{}, fmt.Errorf("%w: turn belongs to %s", apperror.ErrNotYourTurn, that.board.Turn)
	}

	terminal, err := that.board.ApplyMove(cell, p.Symbol)
	if err != nil {
		return MoveOutcome{}, fmt.Errorf("failed to apply move: %w", err)
	}

	switch terminal.Outcome {
	case OutcomeWin:
		that.state = SessionWon
	case OutcomeDraw:
		that.state = SessionDrawn
	case OutcomeInProgress:
	}

	that.updatedAt = time.Now().UTC()

	outcome := MoveOutcome{
		SessionID:  that.id,
		Cell:       cell,
		Symbol:     p.Symbol,
		NextTurn:   that.board.Turn,
		Terminal:   terminal,
		MoveNumber: that.board.MovesPlayed(),
	}

	if terminal.IsTerminal() {
		outcome.NextTurn = SymbolNone
	}

	return outcome, nil
}

// Disconnect abandons an in-progress session and returns the member who stays behind.
// A session that already reached a terminal state is left as is.
func (that *Session) Disconnect(participantID string) (Participant, error) {
	opponent, ok := that.Opponent(participantID)
	if !ok {
		return Participant{}, fmt.Errorf("%w: %s", apperror.ErrUnknownParticipant, participantID)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.state.IsClosed() {
		return opponent, fmt.Errorf("%w: session %s is %s", apperror.ErrSessionClosed, that.id, that.state)
	}

	that.state = SessionAbandoned
	that.updatedAt = time.Now().UTC()

	return opponent, nil
}

// Abort closes the session regardless of its state. Returns false if it was already closed.
func (that *Session) Abort() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	wasOpen := !that.state.IsClosed()
	that.state = SessionAbandoned
	that.updatedAt = time.Now().UTC()

	return wasOpen
}

func (that *Session) Snapshot() SessionSnapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return SessionSnapshot{
		ID:           that.id,
		Participants: that.participants,
		Board:        that.board.Cells,
		Turn:         that.board.Turn,
		State:        that.state,
		Terminal:     that.board.Terminal,
		MovesPlayed:  that.board.MovesPlayed(),
		CreatedAt:    that.createdAt,
		UpdatedAt:    that.updatedAt,
	}
}

// participants never change after construction, so member lookups need no lock.
func (that *Session) member(participantID string) (Participant, bool) {
	for _, p := range that.participants {
		if p.ID == participantID {
			return p, true
		}
	}

	return Participant{}, false
}
