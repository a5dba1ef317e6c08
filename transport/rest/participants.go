package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-relay/internal/repository"
)

type participantReader interface {
	GetSessionID(ctx context.Context, participantID string) (string, error)
}

type ParticipantSessionResponse struct {
	ParticipantID string `json:"participantId"`
	SessionID     string `json:"sessionId"`
}

type ParticipantHandler interface {
	GetParticipantSession(w http.ResponseWriter, r *http.Request)
}

type participantHandler struct {
	logger       *slog.Logger
	participants participantReader
}

func NewParticipantHandler(logger *slog.Logger, participants participantReader) ParticipantHandler {
	return &participantHandler{
		logger:       logger,
		participants: participants,
	}
}

// GetParticipantSession resolves the live session a participant is playing in.
func (that *participantHandler) GetParticipantSession(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "GetParticipantSession")

	id := chi.URLParam(r, "id")

	sessionID, err := that.participants.GetSessionID(r.Context(), id)
	if errors.Is(err, repository.ErrParticipantNotFound) {
		http.Error(w, "participant has no active session", http.StatusNotFound)
		return
	}

	if err != nil {
		log.Error("failed to get participant session", "participant_id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(ParticipantSessionResponse{ParticipantID: id, SessionID: sessionID}); err != nil {
		log.Error("failed to encode participant session", "participant_id", id, "error", err)
	}
}
