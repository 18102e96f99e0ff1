package vacation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Decode parses a vacation artifact. Both a bare JSON array and an object
// with an "events" array are accepted.
func Decode(r io.Reader) ([]Period, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read vacations: %w", err)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return []Period{}, nil
	}

	var periods []Period
	if raw[0] == '{' {
		var wrapped struct {
			Events []Period `json:"events"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, fmt.Errorf("failed to parse vacations: %w", err)
		}
		periods = wrapped.Events
	} else if err := json.Unmarshal(raw, &periods); err != nil {
		return nil, fmt.Errorf("failed to parse vacations: %w", err)
	}

	if periods == nil {
		periods = []Period{}
	}
	sortByStart(periods)
	return periods, nil
}

// Store reads and writes the vacation artifact on disk
type Store struct {
	filePath string
	logger   *zap.Logger
}

// NewStore creates a new Store for filePath
func NewStore(filePath string, logger *zap.Logger) *Store {
	return &Store{
		filePath: filePath,
		logger:   logger,
	}
}

// Load loads the periods from file
func (s *Store) Load() ([]Period, error) {
	file, err := os.Open(s.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open vacations file: %w", err)
	}
	defer file.Close()

	periods, err := Decode(file)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Vacations file loaded",
		zap.String("file", s.filePath),
		zap.Int("periods", len(periods)))

	return periods, nil
}

// LoadIndex loads the periods and wraps them in an Index.
// A missing or broken file yields an empty index and a warning.
func (s *Store) LoadIndex(opts ...Option) *Index {
	periods, err := s.Load()
	if err != nil {
		level := s.logger.Warn
		if errors.Is(err, os.ErrNotExist) {
			level = s.logger.Info
		}
		level("Vacations unavailable, continuing without them",
			zap.String("file", s.filePath),
			zap.Error(err))
	}
	return NewIndex(periods, opts...)
}

// Save writes the periods to file as indented JSON
func (s *Store) Save(periods []Period) error {
	data, err := json.MarshalIndent(periods, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal vacations: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	if err := os.WriteFile(s.filePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write vacations file: %w", err)
	}

	s.logger.Info("Vacations file saved",
		zap.String("file", s.filePath),
		zap.Int("periods", len(periods)))

	return nil
}
