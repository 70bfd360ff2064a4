package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/ai-hrms/hr-management-api/internal/errors"
	"github.com/ai-hrms/hr-management-api/internal/middleware"
	"github.com/ai-hrms/hr-management-api/internal/services"
)

// IntelligenceHandler exposes the workforce intelligence endpoints.
type IntelligenceHandler struct {
	intelligence *services.IntelligenceService
	productivity *services.ProductivityService
	aiService    *services.AIService
}

// NewIntelligenceHandler creates a new IntelligenceHandler. aiService
// may be nil when no API key is configured.
func NewIntelligenceHandler(intelligence *services.IntelligenceService, productivity *services.ProductivityService, aiService *services.AIService) *IntelligenceHandler {
	return &IntelligenceHandler{
		intelligence: intelligence,
		productivity: productivity,
		aiService:    aiService,
	}
}

// Recommend returns the ranked employee recommendations for a task.
// With ?insight=true and a configured AI service, a natural-language
// summary is attached; insight failures never fail the request.
func (h *IntelligenceHandler) Recommend(c *gin.Context) {
	orgID, exists := middleware.GetOrganizationID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.intelligence.Recommend(taskID, orgID)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to compute recommendations")
		return
	}

	if h.aiService != nil && c.Query("insight") == "true" && len(result.Recommendations) > 0 {
		insight, err := h.aiService.SummarizeRecommendations(c.Request.Context(), result)
		if err != nil {
			log.Printf("recommendation insight unavailable: %v", err)
		} else {
			result.AIInsight = insight
		}
	}

	c.JSON(http.StatusOK, result)
}

// RecalculateScores recomputes productivity scores for every employee of
// the organization and returns the refreshed summaries. Per-employee
// failures are reported without failing the batch.
func (h *IntelligenceHandler) RecalculateScores(c *gin.Context) {
	orgID, exists := middleware.GetOrganizationID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	summaries, failures, err := h.productivity.RecalculateAll(orgID)
	if err != nil {
		apierrors.InternalError(c, "Failed to recalculate scores")
		return
	}

	response := gin.H{
		"message":   "Scores recalculated",
		"employees": summaries,
	}
	if len(failures) > 0 {
		response["failures"] = failures
	}

	c.JSON(http.StatusOK, response)
}
