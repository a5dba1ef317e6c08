package apperror

import "errors"

var (
	ErrIllegalMove        = errors.New("illegal move")
	ErrNotYourTurn        = errors.New("it's not your turn")
	ErrUnknownParticipant = errors.New("participant is not a member of this session")
	ErrSessionClosed      = errors.New("session is already closed")
	ErrAlreadyQueued      = errors.New("participant is already queued")
	ErrAlreadyInSession   = errors.New("participant is already in a session")
	ErrNotQueued          = errors.New("participant is not searching for a match")
	ErrNoActiveSession    = errors.New("no active session")
	ErrSessionExists      = errors.New("session already exists")
	ErrBadRequest         = errors.New("bad request")
)

// Reason codes sent to clients in rejection payloads.
const (
	ReasonIllegalMove        = "illegal_move"
	ReasonNotYourTurn        = "not_your_turn"
	ReasonUnknownParticipant = "unknown_participant"
	ReasonSessionClosed      = "session_closed"
	ReasonAlreadyQueued      = "already_queued"
	ReasonAlreadyInSession   = "already_in_session"
	ReasonNotQueued          = "not_queued"
	ReasonNoActiveSession    = "no_active_session"
	ReasonBadRequest         = "bad_request"
	ReasonInternal           = "internal"
)

var reasons = []struct {
	err    error
	reason string
}{
	{ErrIllegalMove, ReasonIllegalMove},
	{ErrNotYourTurn, ReasonNotYourTurn},
	{ErrUnknownParticipant, ReasonUnknownParticipant},
	{ErrSessionClosed, ReasonSessionClosed},
	{ErrAlreadyQueued, ReasonAlreadyQueued},
	{ErrAlreadyInSession, ReasonAlreadyInSession},
	{ErrNotQueued, ReasonNotQueued},
	{ErrNoActiveSession, ReasonNoActiveSession},
	{ErrBadRequest, ReasonBadRequest},
}

// Reason maps an error to the reason code clients see. Anything outside the
// taxonomy is reported as internal.
func Reason(err error) string {
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}

	return ReasonInternal
}
