package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-relay/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-relay/internal/entity"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type outgoing struct {
	Action  string `json:"action"`
	Payload any    `json:"payload"`
}

// MakeMovePayload is the makeMove request. Index is accepted as an alias of CellIndex.
type MakeMovePayload struct {
	CellIndex *int          `json:"cellIndex,omitempty"`
	Index     *int          `json:"index,omitempty"`
	Symbol    entity.Symbol `json:"symbol,omitempty"`
	Room      string        `json:"room,omitempty"`
}

func (that *MakeMovePayload) intent() (entity.MoveIntent, error) {
	cell := that.CellIndex
	if cell == nil {
		cell = that.Index
	}

	if cell == nil {
		return entity.MoveIntent{}, fmt.Errorf("%w: cellIndex is required", apperror.ErrBadRequest)
	}

	if that.Symbol != entity.SymbolNone && !that.Symbol.IsValid() {
		return entity.MoveIntent{}, fmt.Errorf("%w: unknown symbol %q", apperror.ErrBadRequest, that.Symbol)
	}

	return entity.MoveIntent{
		Cell:      *cell,
		Symbol:    that.Symbol,
		SessionID: that.Room,
	}, nil
}

func decodeMessage(data []byte) (*Message, error) {
	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal message: %v", apperror.ErrBadRequest, err)
	}

	if message.Action == "" {
		return nil, fmt.Errorf("%w: action is required", apperror.ErrBadRequest)
	}

	return &message, nil
}

func encodeEvent(event entity.Event) ([]byte, error) {
	payload := event.Payload
	if payload == nil {
		payload = entity.EmptyPayload{}
	}

	data, err := json.Marshal(outgoing{Action: event.Action, Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	return data, nil
}
