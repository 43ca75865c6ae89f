package repository

import (
	"encoding/json"
	"fmt"
	"os"

	"courtwatch-backend/models"
)

// JSONStore is the structured output store: one JSON array holding every
// decision ever persisted. Writes replace the whole document so the file
// always stays a single valid array.
type JSONStore struct {
	path string
}

// NewJSONStore creates a JSON store at the given path
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path returns the file path of the store
func (s *JSONStore) Path() string {
	return s.path
}

// Load reads the full document. A missing file surfaces as a wrapped
// os.ErrNotExist so callers can distinguish first runs from corruption.
func (s *JSONStore) Load() ([]models.Decision, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read structured store: %w", err)
	}

	var decisions []models.Decision
	if err := json.Unmarshal(data, &decisions); err != nil {
		return nil, fmt.Errorf("failed to parse structured store: %w", err)
	}
	return decisions, nil
}

// Rewrite replaces the document with the given collection
func (s *JSONStore) Rewrite(decisions []models.Decision) error {
	data, err := json.MarshalIndent(decisions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode structured store: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write structured store: %w", err)
	}
	return nil
}
