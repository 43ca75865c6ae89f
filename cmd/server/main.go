package main

import (
	"log"
	"os"

	"courtwatch-backend/config"
	"courtwatch-backend/handlers"
	"courtwatch-backend/repository"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file from project root (relative to cmd/server/)
	// Try current directory first, then project root
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

	jsonStore := repository.NewJSONStore(config.JSONPathFromEnv())
	decisionsHandler := handlers.NewDecisionsHandler(jsonStore, logger)

	// Setup Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API routes (read-only; the pipeline is the only writer)
	api := r.Group("/api")
	{
		api.GET("/decisions", decisionsHandler.ListDecisions)
		api.GET("/decisions/:id", decisionsHandler.GetDecision)
		api.GET("/stats", decisionsHandler.GetStats)
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info("server starting", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
