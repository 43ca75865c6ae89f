package repository

import (
	"errors"
	"os"

	"go.uber.org/zap"
)

// HistoryStore reports the set of opinion ids already persisted, as the
// union of the ids found in each output store independently. A store
// that is absent or malformed is skipped with a warning; the load never
// fails. It only reads; writes go through the DecisionWriter.
type HistoryStore struct {
	csv    *CSVStore
	json   *JSONStore
	logger *zap.Logger
}

// NewHistoryStore creates a history store over the two output stores
func NewHistoryStore(csv *CSVStore, json *JSONStore, logger *zap.Logger) *HistoryStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryStore{csv: csv, json: json, logger: logger}
}

// LoadKnownIDs returns the union of opinion ids across both stores
func (h *HistoryStore) LoadKnownIDs() map[int64]struct{} {
	known := make(map[int64]struct{})

	if ids, err := h.csv.ReadIDs(); err != nil {
		h.warnSkipped("tabular", h.csv.Path(), err)
	} else {
		for id := range ids {
			known[id] = struct{}{}
		}
	}

	if decisions, err := h.json.Load(); err != nil {
		h.warnSkipped("structured", h.json.Path(), err)
	} else {
		for i := range decisions {
			known[decisions[i].OpinionID] = struct{}{}
		}
	}

	return known
}

func (h *HistoryStore) warnSkipped(kind, path string, err error) {
	if errors.Is(err, os.ErrNotExist) {
		h.logger.Warn("output store not found, skipping for history",
			zap.String("store", kind),
			zap.String("path", path))
		return
	}
	h.logger.Warn("output store unreadable, skipping for history",
		zap.String("store", kind),
		zap.String("path", path),
		zap.Error(err))
}
