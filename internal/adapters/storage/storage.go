// Package storage provides the history persistence adapters: a JSON file
// and a SQLite database.
package storage

import (
	"fmt"
	"path/filepath"

	"github.com/xvierd/fokus/internal/logger"
	"github.com/xvierd/fokus/internal/ports"
)

// File names inside the data directory.
const (
	JSONFileName   = "history.json"
	SQLiteFileName = "history.db"
)

// Open returns the history store for backend rooted at dataDir.
func Open(backend, dataDir string, log *logger.Logger) (ports.HistoryStore, error) {
	switch backend {
	case "", ports.BackendJSON:
		return NewJSONFile(filepath.Join(dataDir, JSONFileName), log), nil
	case ports.BackendSQLite:
		return NewSQLite(filepath.Join(dataDir, SQLiteFileName))
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
