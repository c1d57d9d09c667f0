package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Real-Lux/Farm-App-sub001/internal/service/catalog"
)

// SuggestionHandler serves availability queries: lot listings and ranked
// suggestions.
type SuggestionHandler struct {
	svc    *catalog.Service
	logger *zap.Logger
}

// NewSuggestionHandler constructs the HTTP handler adapter.
func NewSuggestionHandler(svc *catalog.Service, logger *zap.Logger) *SuggestionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SuggestionHandler{svc: svc, logger: logger}
}

// Suggest ranks candidate lots for a race/age/quantity/delivery request.
func (h *SuggestionHandler) Suggest(c *gin.Context) {
	var query catalog.SuggestionQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		h.logger.Warn("invalid suggestion query", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	suggestions, err := h.svc.SuggestLots(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("failed ranking lots", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rank lots"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// ListLots returns active lots, optionally filtered by species and race.
func (h *SuggestionHandler) ListLots(c *gin.Context) {
	species := c.Query("species")
	race := c.Query("race")

	lots, err := h.svc.ListAvailableLots(c.Request.Context(), species, race)
	if err != nil {
		h.logger.Error("failed listing lots", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list lots"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lots": lots})
}
