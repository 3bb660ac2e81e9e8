package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/game-catalog-service/internal/app/games"
	"github.com/preston-bernstein/game-catalog-service/internal/http/middleware"
	"github.com/preston-bernstein/game-catalog-service/internal/http/requestutil"
	"github.com/preston-bernstein/game-catalog-service/internal/logging"
	"github.com/preston-bernstein/game-catalog-service/internal/store"
)

const (
	msgCannotFindGame  = "Cannot find game by that id"
	msgGameNotFound    = "game not found"
	msgInvalidBody     = "invalid request body"
	msgInternalFailure = "internal server error"
)

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", logging.Err(err))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get(requestutil.HeaderRequestID)
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

// writeGameError maps service and store errors to responses. notFoundStatus selects how an
// absent document is reported: 422 on write paths, 404 on lookups, 500 where nothing can be absent.
func (h *Handler) writeGameError(w http.ResponseWriter, r *http.Request, err error, notFoundStatus int) {
	if vErr, ok := games.AsValidationError(err); ok {
		writeError(w, r, http.StatusUnprocessableEntity, vErr.Error(), h.logger)
		return
	}
	switch {
	case errors.Is(err, store.ErrInvalidID):
		writeError(w, r, http.StatusUnprocessableEntity, msgCannotFindGame, h.logger)
	case errors.Is(err, store.ErrNotFound) && notFoundStatus != http.StatusInternalServerError:
		msg := msgCannotFindGame
		if notFoundStatus == http.StatusNotFound {
			msg = msgGameNotFound
		}
		writeError(w, r, notFoundStatus, msg, h.logger)
	case errors.Is(err, context.Canceled):
		// Client went away; nobody is left to read the body.
		logging.WarnContext(r.Context(), h.logger, "request canceled", logging.Err(err))
		writeError(w, r, http.StatusServiceUnavailable, "request canceled", h.logger)
	default:
		logging.ErrorContext(r.Context(), h.logger, "game request failed", err)
		writeError(w, r, http.StatusInternalServerError, msgInternalFailure, h.logger)
	}
}
