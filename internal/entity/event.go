package entity

// Actions exchanged with clients.
const (
	ActionConnected       = "connected"
	ActionFindMatch       = "findMatch"
	ActionSearching       = "searching"
	ActionMatchFound      = "matchFound"
	ActionMatchRejected   = "matchRejected"
	ActionMakeMove        = "makeMove"
	ActionMoveMade        = "moveMade"
	ActionMoveRejected    = "moveRejected"
	ActionMatchEnded      = "matchEnded"
	ActionOpponentLeft    = "opponentLeft"
	ActionSessionAborted  = "sessionAborted"
	ActionCancelSearch    = "cancelSearch"
	ActionSearchCancelled = "searchCancelled"
	ActionSearchTimedOut  = "searchTimedOut"
	ActionLeaveMatch      = "leaveMatch"
	ActionError           = "error"
)

// Event is an outbound notification for one participant.
type Event struct {
	Action  string
	Payload any
}

type ConnectedPayload struct {
	ParticipantID string `json:"participantId"`
}

type SearchingPayload struct {
	Position int `json:"position"`
}

type MatchFoundPayload struct {
	Symbol     Symbol `json:"symbol"`
	SessionID  string `json:"sessionId"`
	OpponentID string `json:"opponentId"`
}

type MoveMadePayload struct {
	SessionID  string  `json:"sessionId"`
	Index      int     `json:"index"`
	Symbol     Symbol  `json:"symbol"`
	NextTurn   Symbol  `json:"nextTurn"`
	Terminal   Outcome `json:"terminal"`
	Winner     Symbol  `json:"winner,omitempty"`
	MoveNumber int     `json:"moveNumber"`
}

type MatchEndedPayload struct {
	SessionID string  `json:"sessionId"`
	Result    Outcome `json:"result"`
	Winner    Symbol  `json:"winner,omitempty"`
}

type SessionClosedPayload struct {
	SessionID string `json:"sessionId"`
	Reason    string `json:"reason,omitempty"`
}

type RejectedPayload struct {
	Reason string `json:"reason"`
	Error  string `json:"error"`
}

type EmptyPayload struct{}

// MoveIntent is a makeMove request. SessionID and Symbol are optional cross-checks.
type MoveIntent struct {
	Cell      int
	Symbol    Symbol
	SessionID string
}
