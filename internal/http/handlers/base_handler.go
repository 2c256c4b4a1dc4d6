// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"planit/internal/ai"
	"planit/internal/modules/aiusage"
	"planit/internal/modules/itinerary"
	"planit/internal/modules/plan"
)

type errorResponse struct {
	Error        string `json:"error"`
	FinishReason string `json:"finishReason,omitempty"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeServiceError maps module and generation errors to a status and a user-safe message.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, aiusage.ErrInsufficientTokens):
		writeError(c, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, itinerary.ErrRefineInFlight):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, itinerary.ErrSessionNotFound), errors.Is(err, plan.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, plan.ErrBadRequest), errors.Is(err, ai.ErrValidationFailure):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ai.ErrTransportFailure):
		log.Printf("AI Error: %v", err)
		writeError(c, http.StatusServiceUnavailable, "The AI service could not be reached. Please try again.")
	case errors.Is(err, ai.ErrEmptyResponse), errors.Is(err, ai.ErrMalformedResponse), errors.Is(err, ai.ErrInvalidPlanStructure):
		writeJSON(c, http.StatusBadGateway, errorResponse{Error: err.Error(), FinishReason: ai.FinishReasonOf(err)})
	default:
		log.Printf("internal error on %s: %v", c.FullPath(), err)
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
