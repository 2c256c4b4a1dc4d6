// README: API gateway; registers gin routes and delegates to module services.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"planit/internal/http/handlers"
	"planit/internal/http/middleware"
	"planit/internal/infra"
	"planit/internal/modules/aiusage"
	"planit/internal/modules/itinerary"
	"planit/internal/modules/plan"
)

type ServerDeps struct {
	Itinerary *itinerary.Service
	Plans     *plan.Service
	// Usage is optional; without it generation is not metered.
	Usage    *aiusage.Service
	Verifier infra.TokenVerifier
	// RatePerMinute limits generation calls per caller.
	RatePerMinute int
}

// NewRouter builds the gin engine with every API route.
func NewRouter(deps ServerDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logging())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api", middleware.Auth(deps.Verifier))

	itineraries := handlers.NewItineraryHandler(deps.Itinerary, deps.Usage)
	generation := api.Group("", middleware.NewRateLimiter(deps.RatePerMinute).Limit())
	generation.POST("/itineraries", itineraries.Generate)
	generation.POST("/itineraries/sessions/:id/refine", itineraries.Refine)
	generation.POST("/ideas", itineraries.Ideas)
	api.GET("/itineraries/sessions/:id", itineraries.Session)
	api.DELETE("/itineraries/sessions/:id", itineraries.EndSession)
	api.GET("/usage", itineraries.Usage)

	plans := handlers.NewPlanHandler(deps.Plans)
	api.POST("/plans", plans.Create)
	api.POST("/plans/from-itinerary", plans.FromItinerary)
	api.GET("/plans", plans.List)
	api.GET("/plans/:id", plans.Get)
	api.PUT("/plans/:id", plans.Update)
	api.DELETE("/plans/:id", plans.Delete)
	api.GET("/plans/:id/ics", plans.ExportICS)

	return r
}
