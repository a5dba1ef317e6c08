package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-relay/internal/entity"
	"github.com/rocketscienceinc/tictactoe-relay/internal/repository"
)

type sessionReader interface {
	GetByID(ctx context.Context, id string) (*entity.SessionSnapshot, error)
}

type SessionHandler interface {
	GetSession(w http.ResponseWriter, r *http.Request)
}

type sessionHandler struct {
	logger   *slog.Logger
	sessions sessionReader
}

func NewSessionHandler(logger *slog.Logger, sessions sessionReader) SessionHandler {
	return &sessionHandler{
		logger:   logger,
		sessions: sessions,
	}
}

// GetSession returns the mirrored snapshot of a live session.
func (that *sessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "GetSession")

	id := chi.URLParam(r, "id")

	snapshot, err := that.sessions.GetByID(r.Context(), id)
	if errors.Is(err, repository.ErrSessionNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	if err != nil {
		log.Error("failed to get session", "session_id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(snapshot); err != nil {
		log.Error("failed to encode session", "session_id", id, "error", err)
	}
}
