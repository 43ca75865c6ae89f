// Command export uploads the two output stores to the configured storage
// backend (local directory or S3) under a timestamped archive key.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"courtwatch-backend/config"
	"courtwatch-backend/storage"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	backend, err := storage.NewStorageFromEnv()
	if err != nil {
		logger.Fatal("failed to initialize storage", zap.Error(err))
	}

	ctx := context.Background()
	exportID := uuid.New()
	now := time.Now()
	uploaded := 0

	for _, path := range []string{config.CSVPathFromEnv(), config.JSONPathFromEnv()} {
		f, err := os.Open(path)
		if err != nil {
			logger.Warn("output store not found, skipping",
				zap.String("path", path), zap.Error(err))
			continue
		}

		key := storage.ArchiveKey(exportID, now, path)
		if _, err := backend.Upload(ctx, key, f); err != nil {
			f.Close()
			logger.Fatal("upload failed", zap.String("key", key), zap.Error(err))
		}
		f.Close()

		logger.Info("uploaded", zap.String("path", path), zap.String("key", key))
		uploaded++
	}

	logger.Info("export complete",
		zap.String("export_id", exportID.String()),
		zap.Int("files", uploaded))
}
