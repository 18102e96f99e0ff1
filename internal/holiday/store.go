package holiday

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Decode parses a holiday artifact: {"2024": [{"date": ..., "localName": ...}], ...}
func Decode(r io.Reader) (Dataset, error) {
	var data Dataset
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse holidays: %w", err)
	}
	if data == nil {
		data = Dataset{}
	}
	return data, nil
}

// Store reads and writes the holiday artifact on disk
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

// Load loads the dataset from file
func (s *Store) Load() (Dataset, error) {
	file, err := os.Open(s.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open holidays file: %w", err)
	}
	defer file.Close()

	data, err := Decode(file)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Holidays file loaded",
		zap.String("file", s.filePath),
		zap.Int("years", len(data)))

	return data, nil
}

// LoadIndex loads the dataset and wraps it in an Index.
// A missing or broken file yields an empty index and a warning.
func (s *Store) LoadIndex(opts ...Option) *Index {
	data, err := s.Load()
	if err != nil {
		level := s.logger.Warn
		if errors.Is(err, os.ErrNotExist) {
			level = s.logger.Info
		}
		level("Holidays unavailable, continuing without them",
			zap.String("file", s.filePath),
			zap.Error(err))
		data = Dataset{}
	}
	return NewIndex(data, opts...)
}

// Save writes the dataset to file as compact JSON
func (s *Store) Save(data Dataset) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal holidays: %w", err)
	}

	if dir := filepath.Dir(s.filePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}

	if err := os.WriteFile(s.filePath, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write holidays file: %w", err)
	}

	s.logger.Info("Holidays file saved",
		zap.String("file", s.filePath),
		zap.Int("years", len(data)))

	return nil
}
