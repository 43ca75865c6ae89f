package main

import (
	"context"
	"log"

	"courtwatch-backend/config"
	"courtwatch-backend/courtlistener"
	"courtwatch-backend/repository"
	"courtwatch-backend/service"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger, err := zap.NewProduction()
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
	logger.Info("done",
		zap.Int("fetched", result.Fetched),
		zap.Int("skipped", result.Known),
		zap.Int("analyzed", result.Analyzed))
}
