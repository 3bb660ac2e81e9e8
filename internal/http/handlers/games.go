package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/game-catalog-service/internal/app/games"
	"github.com/preston-bernstein/game-catalog-service/internal/http/requestutil"
	"github.com/preston-bernstein/game-catalog-service/internal/logging"
)

// CreateGame persists a new game from the JSON body.
func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var in games.CreateInput
	if err := requestutil.DecodeJSON(w, r, &in); err != nil {
		logging.WarnContext(r.Context(), h.logger, "create game rejected", logging.Err(err))
		writeError(w, r, http.StatusUnprocessableEntity, msgInvalidBody, h.logger)
		return
	}

	game, err := h.svc.Create(r.Context(), in)
	if err != nil {
		h.writeGameError(w, r, err, http.StatusUnprocessableEntity)
		return
	}
	logging.InfoContext(r.Context(), h.logger, "game created", slog.String(logging.FieldGameID, game.ID))
	writeJSON(w, http.StatusCreated, game, h.logger)
}

// ListGames returns every game in the catalog.
func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Games(r.Context())
	if err != nil {
		h.writeGameError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, list, h.logger)
}

// GetGame returns a single game. Absent ids answer 404; malformed ids answer 422.
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := h.svc.GameByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeGameError(w, r, err, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, game, h.logger)
}

// UpdateGame applies the supplied fields to the game named by the body's id.
func (h *Handler) UpdateGame(w http.ResponseWriter, r *http.Request) {
	var in games.UpdateInput
	if err := requestutil.DecodeJSON(w, r, &in); err != nil {
		logging.WarnContext(r.Context(), h.logger, "update game rejected", logging.Err(err))
		writeError(w, r, http.StatusUnprocessableEntity, msgInvalidBody, h.logger)
		return
	}

	game, err := h.svc.Update(r.Context(), in)
	if err != nil {
		h.writeGameError(w, r, err, http.StatusUnprocessableEntity)
		return
	}
	logging.InfoContext(r.Context(), h.logger, "game updated", slog.String(logging.FieldGameID, game.ID))
	writeJSON(w, http.StatusOK, game, h.logger)
}

// DestroyGame removes the game named in the path.
func (h *Handler) DestroyGame(w http.ResponseWriter, r *http.Request) {
	game, err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeGameError(w, r, err, http.StatusUnprocessableEntity)
		return
	}
	logging.InfoContext(r.Context(), h.logger, "game removed", slog.String(logging.FieldGameID, game.ID))
	writeJSON(w, http.StatusOK, map[string]string{
		"success": fmt.Sprintf("%s was removed from the catalog", game.Title),
	}, h.logger)
}
