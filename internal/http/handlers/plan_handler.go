// README: Manual plan handlers (CRUD, import from an itinerary, calendar export).
package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"planit/internal/http/middleware"
	"planit/internal/modules/plan"
	"planit/internal/types"
)

type PlanHandler struct {
	svc *plan.Service
}

func NewPlanHandler(svc *plan.Service) *PlanHandler {
	return &PlanHandler{svc: svc}
}

type createPlanReq struct {
	Name string `json:"name"`
}

type fromItineraryReq struct {
	Itinerary types.Itinerary `json:"itinerary"`
}

// Create handles POST /api/plans.
func (h *PlanHandler) Create(c *gin.Context) {
	var req createPlanReq
	// An empty body is allowed and yields a default name.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest, "invalid json")
			return
		}
	}
	p, err := h.svc.Create(c.Request.Context(), middleware.CallerUID(c), req.Name)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, p)
}

// FromItinerary handles POST /api/plans/from-itinerary.
func (h *PlanHandler) FromItinerary(c *gin.Context) {
	var req fromItineraryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	p, err := h.svc.FromItinerary(c.Request.Context(), middleware.CallerUID(c), req.Itinerary)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, p)
}

// List handles GET /api/plans.
func (h *PlanHandler) List(c *gin.Context) {
	plans, err := h.svc.List(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"plans": plans})
}

// Get handles GET /api/plans/:id.
func (h *PlanHandler) Get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), middleware.CallerUID(c), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, p)
}

// Update handles PUT /api/plans/:id.
func (h *PlanHandler) Update(c *gin.Context) {
	var p types.Plan
	if err := c.ShouldBindJSON(&p); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	p.ID = c.Param("id")
	updated, err := h.svc.Update(c.Request.Context(), middleware.CallerUID(c), p)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, updated)
}

// Delete handles DELETE /api/plans/:id.
func (h *PlanHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.CallerUID(c), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportICS handles GET /api/plans/:id/ics.
func (h *PlanHandler) ExportICS(c *gin.Context) {
	id := c.Param("id")
	body, err := h.svc.ExportICS(c.Request.Context(), middleware.CallerUID(c), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.ics"`, strings.ReplaceAll(id, `"`, "")))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}
