// Package ports defines the interfaces (driven and driving ports) between
// the fokus core and its infrastructure, following hexagonal architecture
// principles.
package ports

import (
	"context"

	"github.com/xvierd/fokus/internal/domain"
)

// HistoryStore persists the per-day focus history.
// This is a driven port (implemented by adapters).
type HistoryStore interface {
	// Load returns the stored history. A missing store yields an empty
	// history, never an error.
	Load(ctx context.Context) (domain.History, error)

	// Save replaces the stored history with h.
	Save(ctx context.Context, h domain.History) error

	// Close releases the underlying resources.
	Close() error
}

// Backend names accepted by the storage factory.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)
