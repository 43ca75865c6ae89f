package handlers

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"

	"courtwatch-backend/models"
	"courtwatch-backend/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DecisionsHandler serves the persisted decisions read-only. It loads
// from the structured store on each request and never writes.
type DecisionsHandler struct {
	store  *repository.JSONStore
	logger *zap.Logger
}

// NewDecisionsHandler creates a new decisions handler
func NewDecisionsHandler(store *repository.JSONStore, logger *zap.Logger) *DecisionsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DecisionsHandler{store: store, logger: logger}
}

func (h *DecisionsHandler) load(c *gin.Context) ([]models.Decision, bool) {
	decisions, err := h.store.Load()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, true
		}
		h.logger.Error("failed to load structured store", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORE_READ_FAILED",
				"message": err.Error(),
			},
		})
		return nil, false
	}
	return decisions, true
}

// ListDecisions handles GET /api/decisions
func (h *DecisionsHandler) ListDecisions(c *gin.Context) {
	decisions, ok := h.load(c)
	if !ok {
		return
	}

	if filter := c.Query("classification"); filter != "" {
		filtered := make([]models.Decision, 0, len(decisions))
		for i := range decisions {
			if strings.EqualFold(decisions[i].Classification, filter) {
				filtered = append(filtered, decisions[i])
			}
		}
		decisions = filtered
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_LIMIT",
					"message": "limit must be a non-negative integer",
				},
			})
			return
		}
		if limit < len(decisions) {
			decisions = decisions[:limit]
		}
	}

	if decisions == nil {
		decisions = []models.Decision{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    decisions,
	})
}

// GetDecision handles GET /api/decisions/:id
func (h *DecisionsHandler) GetDecision(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid opinion ID format",
			},
		})
		return
	}

	decisions, ok := h.load(c)
	if !ok {
		return
	}

	for i := range decisions {
		if decisions[i].OpinionID == id {
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"data":    decisions[i],
			})
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "NOT_FOUND",
			"message": "No decision with that opinion ID",
		},
	})
}

// GetStats handles GET /api/stats
func (h *DecisionsHandler) GetStats(c *gin.Context) {
	decisions, ok := h.load(c)
	if !ok {
		return
	}

	tally := make(map[string]int)
	for i := range decisions {
		tally[decisions[i].Classification]++
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"total":           len(decisions),
			"classifications": tally,
		},
	})
}
