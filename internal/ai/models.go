// README: Request/reply values exchanged with the generation backend.
package ai

import (
	"github.com/google/generative-ai-go/genai"

	"planit/internal/types"
)

// Mode selects the request template.
type Mode string

const (
	ModeInitial    Mode = "initial"
	ModeRefinement Mode = "refinement"
	ModeIdeas      Mode = "ideas"
)

// Request is one generation exchange. History is only sent for refinement.
type Request struct {
	Mode              Mode
	SystemInstruction string
	History           []types.Turn
	Prompt            string
	Schema            *genai.Schema

	// Temperature and MaxOutputTokens fall back to the provider defaults for Mode when zero.
	Temperature     float32
	MaxOutputTokens int32
}

// Reply is the untouched text of a single candidate plus its citations.
type Reply struct {
	Text         string
	Sources      []types.Source
	FinishReason string
}

// Options tune the Gemini provider per request mode.
type Options struct {
	Model                string
	ItineraryTemperature float32
	ItineraryMaxTokens   int32
	IdeasTemperature     float32
	IdeasMaxTokens       int32
}

// DefaultOptions favor constraint satisfaction for itineraries and variety for ideas.
func DefaultOptions() Options {
	return Options{
		Model:                "gemini-2.5-flash",
		ItineraryTemperature: 0.3,
		ItineraryMaxTokens:   8192,
		IdeasTemperature:     0.7,
		IdeasMaxTokens:       2048,
	}
}
