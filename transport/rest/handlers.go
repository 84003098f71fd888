package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

type tallyReader interface {
	GetBySessionID(ctx context.Context, sessionID string) (entity.Tally, error)
}

type gameReader interface {
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	ListBySession(ctx context.Context, sessionID string) ([]*entity.Game, error)
}

type tallyResponse struct {
	SessionID string `json:"session_id"`
	entity.Tally
}

type handlers struct {
	logger    *slog.Logger
	sessionID string
	tallies   tallyReader
	games     gameReader
}

// getTally answers with the current session's tally. No finished game yet means zeros.
func (that *handlers) getTally(w http.ResponseWriter, r *http.Request) {
	tally, err := that.tallies.GetBySessionID(r.Context(), that.sessionID)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		that.fail(w, "failed to get tally", err)
		return
	}

	that.writeJSON(w, http.StatusOK, tallyResponse{SessionID: that.sessionID, Tally: tally})
}

func (that *handlers) listGames(w http.ResponseWriter, r *http.Request) {
	games, err := that.games.ListBySession(r.Context(), that.sessionID)
	if err != nil {
		that.fail(w, "failed to list games", err)
		return
	}

	that.writeJSON(w, http.StatusOK, games)
}

func (that *handlers) getGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetByID(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, apperror.ErrNotFound) {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	if err != nil {
		that.fail(w, "failed to get game", err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) fail(w http.ResponseWriter, msg string, err error) {
	that.logger.Error(msg, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
