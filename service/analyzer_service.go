package service

import (
	"context"
	"time"

	"courtwatch-backend/models"

	"go.uber.org/zap"
)

// AnalyzerService classifies the political leaning of one decision at a
// time. Failures never propagate to the caller: every outcome is a
// uniform Analysis, with sentinel fields standing in for missing or
// erroneous data.
type AnalyzerService struct {
	generator        Generator
	logger           *zap.Logger
	minTextChars     int
	shortTextVerdict string
	maxAttempts      int
	cooldown         time.Duration
	sleep            func(time.Duration)
}

// AnalyzerServiceOption is a functional option for AnalyzerService
type AnalyzerServiceOption func(*AnalyzerService)

// AnalyzerWithGenerator sets the content generator
func AnalyzerWithGenerator(g Generator) AnalyzerServiceOption {
	return func(s *AnalyzerService) {
		s.generator = g
	}
}

// AnalyzerWithLogger sets the logger
func AnalyzerWithLogger(logger *zap.Logger) AnalyzerServiceOption {
	return func(s *AnalyzerService) {
		s.logger = logger
	}
}

// AnalyzerWithMinTextChars sets the minimum text length below which the
// remote service is not called
func AnalyzerWithMinTextChars(n int) AnalyzerServiceOption {
	return func(s *AnalyzerService) {
		s.minTextChars = n
	}
}

// AnalyzerWithShortTextVerdict sets the classification sentinel used for
// short or missing text
func AnalyzerWithShortTextVerdict(verdict string) AnalyzerServiceOption {
	return func(s *AnalyzerService) {
		s.shortTextVerdict = verdict
	}
}

// AnalyzerWithRetryPolicy sets the bounded rate-limit retry: total
// attempt count and the fixed cooldown between attempts
func AnalyzerWithRetryPolicy(maxAttempts int, cooldown time.Duration) AnalyzerServiceOption {
	return func(s *AnalyzerService) {
		s.maxAttempts = maxAttempts
		s.cooldown = cooldown
	}
}

// AnalyzerWithSleep replaces the cooldown sleep, for deterministic tests
func AnalyzerWithSleep(sleep func(time.Duration)) AnalyzerServiceOption {
	return func(s *AnalyzerService) {
		s.sleep = sleep
	}
}

// NewAnalyzerService creates a new analyzer service
func NewAnalyzerService(opts ...AnalyzerServiceOption) *AnalyzerService {
	s := &AnalyzerService{
		logger:           zap.NewNop(),
		minTextChars:     200,
		shortTextVerdict: models.ClassificationInsufficient,
		maxAttempts:      2,
		cooldown:         30 * time.Second,
		sleep:            time.Sleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze classifies one decision. Text below the minimum threshold
// short-circuits without a remote call. A rate-limit signal triggers the
// bounded cooldown retry; any other failure yields an Error sentinel
// result carrying the failure description.
func (s *AnalyzerService) Analyze(ctx context.Context, caseName, text string) models.Analysis {
	if len(text) < s.minTextChars {
		return s.shortTextResult()
	}
	if s.generator == nil {
		return errorResult("generator not set")
	}

	prompt := BuildPrompt(caseName, text)

	var raw string
	var err error
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		raw, err = s.generator.Generate(ctx, prompt)
		if err == nil {
			return ParseAnalysis(raw)
		}
		if !IsRateLimited(err) {
			break
		}
		if attempt < s.maxAttempts-1 {
			s.logger.Warn("classification rate limited, cooling down",
				zap.String("case", caseName),
				zap.Duration("cooldown", s.cooldown),
				zap.Error(err))
			s.sleep(s.cooldown)
		}
	}

	s.logger.Error("classification failed",
		zap.String("case", caseName),
		zap.Error(err))
	return errorResult(err.Error())
}

func (s *AnalyzerService) shortTextResult() models.Analysis {
	return models.Analysis{
		Classification: s.shortTextVerdict,
		Confidence:     models.ConfidenceNA,
		Reasoning:      "Not enough text to analyze",
		Summary:        "No text available for summary",
	}
}

func errorResult(description string) models.Analysis {
	return models.Analysis{
		Classification: models.ClassificationError,
		Confidence:     models.ConfidenceNA,
		Reasoning:      description,
		Summary:        "Error generating summary",
	}
}
