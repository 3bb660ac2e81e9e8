package server

import (
	"context"

	"github.com/preston-bernstein/game-catalog-service/internal/monitor"
)

// StoreMonitor defines the minimal health monitor behavior needed by the server.
type StoreMonitor interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() monitor.Status
}
