package main

import (
	"context"
	"log"
	"os"
	"time"

	"courtwatch-backend/config"
	"courtwatch-backend/courtlistener"
	"courtwatch-backend/repository"
	"courtwatch-backend/service"
	"courtwatch-backend/storage"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file from project root (relative to cmd/tracker/)
	// Try current directory first, then project root
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	logger, err := newLogger()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("configuration error", zap.Error(err))
	}
	if cfg.CourtListenerToken == "" {
		logger.Warn("COURTLISTENER_TOKEN not set, querying without authentication")
	}

	ctx := context.Background()

	geminiClient, err := service.NewGeminiClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		logger.Fatal("failed to initialize Gemini client", zap.Error(err))
	}
	defer geminiClient.Close()

	source := courtlistener.NewClient(cfg.CourtListenerURL,
		courtlistener.WithToken(cfg.CourtListenerToken),
		courtlistener.WithCourt(cfg.Court),
		courtlistener.WithMaxTextChars(cfg.MaxTextChars),
		courtlistener.WithLookupInterval(cfg.LookupInterval),
		courtlistener.WithLogger(logger),
	)

	analyzer := service.NewAnalyzerService(
		service.AnalyzerWithGenerator(service.NewGeminiGenerator(geminiClient, cfg.GeminiModel)),
		service.AnalyzerWithMinTextChars(cfg.MinTextChars),
		service.AnalyzerWithShortTextVerdict(cfg.ShortTextVerdict),
		service.AnalyzerWithRetryPolicy(cfg.MaxAttempts, cfg.Cooldown),
		service.AnalyzerWithLogger(logger),
	)

	csvStore := repository.NewCSVStore(cfg.CSVPath)
	jsonStore := repository.NewJSONStore(cfg.JSONPath)

	pipeline := service.NewPipelineService(
		service.PipelineWithSource(source),
		service.PipelineWithAnalyzer(analyzer),
		service.PipelineWithHistory(repository.NewHistoryStore(csvStore, jsonStore, logger)),
		service.PipelineWithWriter(repository.NewDecisionWriter(csvStore, jsonStore, logger)),
		service.PipelineWithWindow(cfg.LookbackDays, cfg.MaxRecords),
		service.PipelineWithPacing(cfg.PacingDelay),
		service.PipelineWithLogger(logger),
	)

	result, err := pipeline.Run(ctx)
	if err != nil {
		logger.Fatal("pipeline run failed", zap.Error(err))
	}

	for classification, count := range result.Tally {
		logger.Info("classification tally",
			zap.String("classification", classification),
			zap.Int("count", count))
	}
	logger.Info("run finished",
		zap.String("run_id", result.RunID.String()),
		zap.Int("fetched", result.Fetched),
		zap.Int("skipped", result.Known),
		zap.Int("analyzed", result.Analyzed))

	if result.Analyzed > 0 && config.CleanEnv("ARCHIVE_RESULTS") == "true" {
		archiveOutputs(ctx, logger, result, cfg)
	}
}

// archiveOutputs uploads both output stores to the configured storage
// backend. Best-effort operational tooling: failures are logged, not
// fatal, since the local stores remain authoritative.
func archiveOutputs(ctx context.Context, logger *zap.Logger, result *service.RunResult, cfg *config.Config) {
	backend, err := storage.NewStorageFromEnv()
	if err != nil {
		logger.Error("failed to initialize archive storage", zap.Error(err))
		return
	}

	now := time.Now()
	for _, path := range []string{cfg.CSVPath, cfg.JSONPath} {
		f, err := os.Open(path)
		if err != nil {
			logger.Error("failed to open output store for archive",
				zap.String("path", path), zap.Error(err))
			continue
		}
		key := storage.ArchiveKey(result.RunID, now, path)
		if _, err := backend.Upload(ctx, key, f); err != nil {
			logger.Error("archive upload failed",
				zap.String("key", key), zap.Error(err))
		} else {
			logger.Info("archived output store", zap.String("key", key))
		}
		f.Close()
	}
}

func newLogger() (*zap.Logger, error) {
	if config.CleanEnv("APP_DEBUG") == "true" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
