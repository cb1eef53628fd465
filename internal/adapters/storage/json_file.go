package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xvierd/fokus/internal/domain"
	"github.com/xvierd/fokus/internal/logger"
	"github.com/xvierd/fokus/internal/ports"
)

// backupLayout names the copy kept when history.json cannot be parsed.
const backupLayout = "20060102_150405"

// JSONFile implements ports.HistoryStore as a single pretty-printed JSON
// object mapping days to minutes.
type JSONFile struct {
	path string
	log  *logger.Logger
	now  func() time.Time
}

// Ensure JSONFile implements ports.HistoryStore.
var _ ports.HistoryStore = (*JSONFile)(nil)

// NewJSONFile returns a store backed by the file at path.
func NewJSONFile(path string, log *logger.Logger) *JSONFile {
	return &JSONFile{path: path, log: log, now: time.Now}
}

// Path returns the file the store reads and writes.
func (s *JSONFile) Path() string {
	return s.path
}

// Load implements ports.HistoryStore. A missing file is created empty. A
// file that cannot be parsed is copied aside to a timestamped .bak file and
// replaced by an empty history.
func (s *JSONFile) Load(ctx context.Context) (domain.History, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		h := domain.NewHistory()
		return h, s.Save(ctx, h)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	h := domain.NewHistory()
	if err := json.Unmarshal(data, &h); err != nil {
		backup, berr := s.backup(data)
		if berr != nil {
			return nil, fmt.Errorf("history is corrupt and could not be backed up: %w", berr)
		}
		s.log.Warn("history file is corrupt (%v), backed up to %s", err, backup)
		h = domain.NewHistory()
		return h, s.Save(ctx, h)
	}
	if h == nil {
		h = domain.NewHistory()
	}
	return h, nil
}

// Save implements ports.HistoryStore. The file is written to a temporary
// name and renamed so a crash never leaves it half written.
func (s *JSONFile) Save(_ context.Context, h domain.History) error {
	if h == nil {
		h = domain.NewHistory()
	}
	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace history: %w", err)
	}
	return nil
}

// Close implements ports.HistoryStore.
func (s *JSONFile) Close() error {
	return nil
}

func (s *JSONFile) backup(data []byte) (string, error) {
	ext := filepath.Ext(s.path)
	base := strings.TrimSuffix(s.path, ext)
	name := fmt.Sprintf("%s_%s%s.bak", base, s.now().Format(backupLayout), ext)
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return "", err
	}
	return name, nil
}
