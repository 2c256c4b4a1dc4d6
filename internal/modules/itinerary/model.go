// README: Itinerary module errors and result values.
package itinerary

import (
	"errors"

	"planit/internal/types"
)

var (
	// ErrRefineInFlight rejects a refinement while another one on the same session is unresolved.
	ErrRefineInFlight = errors.New("a refinement for this itinerary is already in progress")
	// ErrSessionNotFound is returned for unknown or expired session ids.
	ErrSessionNotFound = errors.New("session not found")
)

// RefineResult is the outcome of one successful refinement turn.
type RefineResult struct {
	Itinerary types.Itinerary `json:"itinerary"`
	History   []types.Turn    `json:"history"`
}

// SavedPlan folds the result back into the persisted form.
func (r RefineResult) SavedPlan() types.SavedPlan {
	return types.SavedPlan{Itinerary: r.Itinerary, ChatHistory: r.History}
}
