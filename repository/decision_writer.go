package repository

import (
	"errors"
	"fmt"
	"os"

	"courtwatch-backend/models"

	"go.uber.org/zap"
)

// DecisionWriter appends a classified batch to both output stores. The
// tabular store is appended; the structured store is loaded, extended
// and rewritten in full. A failure between the two writes leaves the
// stores holding different id sets; that state is detectable and is
// corrected only by the next run re-deriving history as the id union.
type DecisionWriter struct {
	csv    *CSVStore
	json   *JSONStore
	logger *zap.Logger
}

// NewDecisionWriter creates a writer over the two output stores
func NewDecisionWriter(csv *CSVStore, json *JSONStore, logger *zap.Logger) *DecisionWriter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DecisionWriter{csv: csv, json: json, logger: logger}
}

// Persist appends the batch to the tabular store, then rewrites the
// structured store with the batch concatenated onto its prior contents
func (w *DecisionWriter) Persist(batch []models.Decision) error {
	if len(batch) == 0 {
		return nil
	}

	if err := w.csv.Append(batch); err != nil {
		return fmt.Errorf("tabular store write failed: %w", err)
	}

	existing, err := w.json.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("structured store read failed: %w", err)
	}

	if err := w.json.Rewrite(append(existing, batch...)); err != nil {
		return fmt.Errorf("structured store write failed: %w", err)
	}

	w.logger.Info("persisted decisions",
		zap.Int("count", len(batch)),
		zap.String("tabular", w.csv.Path()),
		zap.String("structured", w.json.Path()))
	return nil
}
