package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"courtwatch-backend/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DecisionSource fetches recent decisions, most recent first
type DecisionSource interface {
	Fetch(ctx context.Context, lookbackDays, maxRecords int) ([]models.Decision, error)
}

// Analyzer classifies one decision; it never fails, only degrades
type Analyzer interface {
	Analyze(ctx context.Context, caseName, text string) models.Analysis
}

// History reports the opinion ids already persisted
type History interface {
	LoadKnownIDs() map[int64]struct{}
}

// Writer appends a classified batch to the output stores
type Writer interface {
	Persist(batch []models.Decision) error
}

var (
	ErrSourceNotSet   = errors.New("decision source not set")
	ErrAnalyzerNotSet = errors.New("analyzer not set")
	ErrHistoryNotSet  = errors.New("history store not set")
	ErrWriterNotSet   = errors.New("decision writer not set")
)

// PipelineService runs one fetch -> deduplicate -> classify -> persist
// pass. Execution is strictly sequential; the only scheduling concern is
// the pacing delay between classification calls. Retries live in the
// analyzer, not here.
type PipelineService struct {
	source   DecisionSource
	analyzer Analyzer
	history  History
	writer   Writer
	logger   *zap.Logger

	lookbackDays int
	maxRecords   int
	pacing       time.Duration
	sleep        func(time.Duration)
	now          func() time.Time
}

// PipelineServiceOption is a functional option for PipelineService
type PipelineServiceOption func(*PipelineService)

// PipelineWithSource sets the decision source
func PipelineWithSource(source DecisionSource) PipelineServiceOption {
	return func(s *PipelineService) {
		s.source = source
	}
}

// PipelineWithAnalyzer sets the analyzer
func PipelineWithAnalyzer(analyzer Analyzer) PipelineServiceOption {
	return func(s *PipelineService) {
		s.analyzer = analyzer
	}
}

// PipelineWithHistory sets the history store
func PipelineWithHistory(history History) PipelineServiceOption {
	return func(s *PipelineService) {
		s.history = history
	}
}

// PipelineWithWriter sets the decision writer
func PipelineWithWriter(writer Writer) PipelineServiceOption {
	return func(s *PipelineService) {
		s.writer = writer
	}
}

// PipelineWithLogger sets the logger
func PipelineWithLogger(logger *zap.Logger) PipelineServiceOption {
	return func(s *PipelineService) {
		s.logger = logger
	}
}

// PipelineWithWindow sets the fetch window: lookback days and record cap
func PipelineWithWindow(lookbackDays, maxRecords int) PipelineServiceOption {
	return func(s *PipelineService) {
		s.lookbackDays = lookbackDays
		s.maxRecords = maxRecords
	}
}

// PipelineWithPacing sets the delay applied after each classification
// call except the last
func PipelineWithPacing(d time.Duration) PipelineServiceOption {
	return func(s *PipelineService) {
		s.pacing = d
	}
}

// PipelineWithSleep replaces the pacing sleep, for deterministic tests
func PipelineWithSleep(sleep func(time.Duration)) PipelineServiceOption {
	return func(s *PipelineService) {
		s.sleep = sleep
	}
}

// PipelineWithClock replaces the wall clock, for deterministic tests
func PipelineWithClock(now func() time.Time) PipelineServiceOption {
	return func(s *PipelineService) {
		s.now = now
	}
}

// NewPipelineService creates a new pipeline service
func NewPipelineService(opts ...PipelineServiceOption) *PipelineService {
	s := &PipelineService{
		logger:       zap.NewNop(),
		lookbackDays: 30,
		maxRecords:   10,
		pacing:       2 * time.Second,
		sleep:        time.Sleep,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RunResult summarizes one pipeline run
type RunResult struct {
	RunID    uuid.UUID
	Fetched  int
	Known    int
	Analyzed int
	Tally    map[string]int
}

// Run executes one pass. Zero fetched records or zero new records after
// deduplication ends the run early with nothing written. Batch order is
// preserved end to end.
func (s *PipelineService) Run(ctx context.Context) (*RunResult, error) {
	if s.source == nil {
		return nil, ErrSourceNotSet
	}
	if s.analyzer == nil {
		return nil, ErrAnalyzerNotSet
	}
	if s.history == nil {
		return nil, ErrHistoryNotSet
	}
	if s.writer == nil {
		return nil, ErrWriterNotSet
	}

	result := &RunResult{
		RunID: uuid.New(),
		Tally: make(map[string]int),
	}
	logger := s.logger.With(zap.String("run_id", result.RunID.String()))

	logger.Info("fetching recent decisions",
		zap.Int("lookback_days", s.lookbackDays),
		zap.Int("max_records", s.maxRecords))
	decisions, err := s.source.Fetch(ctx, s.lookbackDays, s.maxRecords)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	result.Fetched = len(decisions)
	if len(decisions) == 0 {
		logger.Info("no recent decisions found")
		return result, nil
	}

	known := s.history.LoadKnownIDs()
	fresh := decisions[:0]
	for i := range decisions {
		if _, seen := known[decisions[i].OpinionID]; seen {
			continue
		}
		fresh = append(fresh, decisions[i])
	}
	result.Known = result.Fetched - len(fresh)
	if len(fresh) == 0 {
		logger.Info("all recent decisions already analyzed",
			zap.Int("fetched", result.Fetched))
		return result, nil
	}

	analyzedDate := s.now().Format("2006-01-02")
	for i := range fresh {
		d := &fresh[i]
		logger.Info("analyzing decision",
			zap.Int("index", i+1),
			zap.Int("total", len(fresh)),
			zap.String("case", d.CaseName))

		analysis := s.analyzer.Analyze(ctx, d.CaseName, d.RawText)
		d.ApplyAnalysis(analysis, analyzedDate)
		result.Tally[analysis.Classification]++

		if i < len(fresh)-1 {
			s.sleep(s.pacing)
		}
	}

	if err := s.writer.Persist(fresh); err != nil {
		return nil, fmt.Errorf("persist failed: %w", err)
	}
	result.Analyzed = len(fresh)

	logger.Info("run complete",
		zap.Int("fetched", result.Fetched),
		zap.Int("skipped", result.Known),
		zap.Int("analyzed", result.Analyzed))
	return result, nil
}
