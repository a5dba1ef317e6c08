package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-relay/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-relay/internal/entity"
)

func (that *Server) handleFindMatch(ctx context.Context, conn *connection, _ *Message) error {
	if err := that.uGame.FindMatch(ctx, conn.id); err != nil {
		return fmt.Errorf("failed to find match: %w", err)
	}

	return nil
}

func (that *Server) handleMakeMove(ctx context.Context, conn *connection, msg *Message) error {
	var payload MakeMovePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("%w: failed to unmarshal payload: %v", apperror.ErrBadRequest, err)
	}

	intent, err := payload.intent()
	if err != nil {
		return err
	}

	if _, err = that.uGame.MakeMove(ctx, conn.id, intent); err != nil {
		return fmt.Errorf("failed to make move: %w", err)
	}

	return nil
}

func (that *Server) handleCancelSearch(ctx context.Context, conn *connection, _ *Message) error {
	if err := that.uGame.CancelSearch(ctx, conn.id); err != nil {
		return fmt.Errorf("failed to cancel search: %w", err)
	}

	return nil
}

func (that *Server) handleLeaveMatch(ctx context.Context, conn *connection, _ *Message) error {
	if err := that.uGame.LeaveMatch(ctx, conn.id); err != nil {
		return fmt.Errorf("failed to leave match: %w", err)
	}

	return nil
}

// reject answers only the requester.
func (that *Server) reject(conn *connection, action string, err error) {
	if sendErr := that.hub.Send(conn.id, entity.Event{
		Action: action,
		Payload: entity.RejectedPayload{
			Reason: apperror.Reason(err),
			Error:  err.Error(),
		},
	}); sendErr != nil {
		that.logger.Warn("failed to send rejection", "participant_id", conn.id, "error", sendErr)
	}
}

func rejectionAction(action string) string {
	switch action {
	case entity.ActionFindMatch:
		return entity.ActionMatchRejected
	case entity.ActionMakeMove:
		return entity.ActionMoveRejected
	default:
		return entity.ActionError
	}
}
