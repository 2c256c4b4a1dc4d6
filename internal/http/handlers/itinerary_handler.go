// README: AI itinerary handlers (generate, refine, ideas), guarded by the monthly allowance.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"planit/internal/http/middleware"
	"planit/internal/modules/aiusage"
	"planit/internal/modules/itinerary"
	"planit/internal/types"
)

// generationTimeout bounds one backend round-trip made on behalf of an HTTP request.
const generationTimeout = 2 * time.Minute

type ItineraryHandler struct {
	svc   *itinerary.Service
	usage *aiusage.Service
}

// NewItineraryHandler wires the handler. usage may be nil to disable the allowance.
func NewItineraryHandler(svc *itinerary.Service, usage *aiusage.Service) *ItineraryHandler {
	return &ItineraryHandler{svc: svc, usage: usage}
}

type generateReq struct {
	Preferences types.Preferences `json:"preferences"`
}

type generateResp struct {
	SessionID string          `json:"sessionId"`
	Plan      types.SavedPlan `json:"plan"`
}

type refineReq struct {
	Instruction string `json:"instruction"`
}

type ideasReq struct {
	Prompt string `json:"prompt"`
}

// Generate handles POST /api/itineraries.
func (h *ItineraryHandler) Generate(c *gin.Context) {
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	var resp generateResp
	err := h.metered(c, func(ctx context.Context) error {
		saved, err := h.svc.GenerateInitial(ctx, req.Preferences)
		if err != nil {
			return err
		}
		id, err := h.svc.StartSession(ctx, middleware.CallerUID(c), saved)
		if err != nil {
			return err
		}
		resp = generateResp{SessionID: id, Plan: saved}
		return nil
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, resp)
}

// Refine handles POST /api/itineraries/sessions/:id/refine.
func (h *ItineraryHandler) Refine(c *gin.Context) {
	var req refineReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	var res itinerary.RefineResult
	err := h.metered(c, func(ctx context.Context) error {
		var err error
		res, err = h.svc.RefineSession(ctx, middleware.CallerUID(c), c.Param("id"), req.Instruction)
		return err
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, res)
}

// Session handles GET /api/itineraries/sessions/:id.
func (h *ItineraryHandler) Session(c *gin.Context) {
	saved, err := h.svc.Session(c.Request.Context(), middleware.CallerUID(c), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, saved)
}

// EndSession handles DELETE /api/itineraries/sessions/:id.
func (h *ItineraryHandler) EndSession(c *gin.Context) {
	if err := h.svc.EndSession(c.Request.Context(), middleware.CallerUID(c), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Ideas handles POST /api/ideas.
func (h *ItineraryHandler) Ideas(c *gin.Context) {
	var req ideasReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	var ideas []types.BrowserActivity
	err := h.metered(c, func(ctx context.Context) error {
		var err error
		ideas, err = h.svc.GenerateIdeas(ctx, req.Prompt)
		return err
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"ideas": ideas})
}

// Usage handles GET /api/usage.
func (h *ItineraryHandler) Usage(c *gin.Context) {
	if h.usage == nil {
		writeError(c, http.StatusNotFound, "usage tracking disabled")
		return
	}
	u, err := h.usage.Usage(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, u)
}

// metered runs fn under the generation timeout, charging the caller one token.
func (h *ItineraryHandler) metered(c *gin.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(c.Request.Context(), generationTimeout)
	defer cancel()
	if h.usage == nil {
		return fn(ctx)
	}
	return h.usage.Guard(ctx, middleware.CallerUID(c), func() error { return fn(ctx) })
}
