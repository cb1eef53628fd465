package ports

import (
	"context"
	"time"

	"github.com/xvierd/fokus/internal/domain"
)

// MCPHandler defines the interface for MCP server operations.
// This is a driving port (called by the application layer).
type MCPHandler interface {
	// Start begins serving MCP requests.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the server.
	Stop() error

	// IsRunning returns true if the server is active.
	IsRunning() bool
}

// HistoryProvider exposes read-only history queries.
// This is a driven port (implemented by the services layer).
type HistoryProvider interface {
	// Today returns the minutes focused on the day containing now.
	Today(ctx context.Context, now time.Time) (domain.DailySummary, error)

	// Rows returns the whole history in display order.
	Rows(ctx context.Context) ([]domain.DailySummary, error)

	// Recent returns one row per day for the last n days ending at now,
	// oldest first, including days with no focus.
	Recent(ctx context.Context, now time.Time, n int) ([]domain.DailySummary, error)
}
