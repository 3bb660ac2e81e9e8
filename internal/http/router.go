package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/preston-bernstein/game-catalog-service/internal/http/handlers"
	"github.com/preston-bernstein/game-catalog-service/internal/http/middleware"
	"github.com/preston-bernstein/game-catalog-service/internal/metrics"
)

// NewRouter registers the game catalog routes on a chi router wrapped in request logging.
func NewRouter(handler *handlers.Handler, logger *slog.Logger, recorder *metrics.Recorder) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logging(logger, recorder))
	r.Use(chimiddleware.Recoverer)

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	r.Get("/health", handler.Health)
	r.Get("/ready", handler.Ready)

	r.Post("/api/game/create", handler.CreateGame)
	r.Get("/api/game/get", handler.ListGames)
	r.Get("/api/game/get/{id}", handler.GetGame)
	r.Delete("/api/game/destroy/{id}", handler.DestroyGame)
	r.Put("/api/game/update", handler.UpdateGame)
	return r
}
