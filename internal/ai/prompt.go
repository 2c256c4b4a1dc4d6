// README: Prompt construction for itinerary generation and refinement.
package ai

import (
	"fmt"
	"strings"

	"planit/internal/types"
)

// InitialPrompt is the fixed user turn of a first generation request.
const InitialPrompt = "Please generate the initial itinerary based on my preferences."

const fallbackCity = "the user's specified city"

// CityFromAddress picks the locality out of a formatted address: the first of the last two
// comma-separated segments ("Street, City, Country" -> "City").
func CityFromAddress(address string) string {
	parts := strings.Split(address, ",")
	if len(parts) < 2 {
		return fallbackCity
	}
	city := strings.TrimSpace(parts[len(parts)-2])
	if city == "" {
		return fallbackCity
	}
	return city
}

// SystemInstruction derives the system prompt from prefs. The same string is sent on the
// initial request and on every refinement of the resulting itinerary.
func SystemInstruction(prefs types.Preferences) string {
	city := CityFromAddress(prefs.Location.Address)

	return fmt.Sprintf(`
You are "planIt"—a world-class AI concierge and expert on %[1]s. Your mission is to craft a hyper-personalized, logistically flawless weekend itinerary.
PRIMARY DIRECTIVES:
1.  LOCATION IS PARAMOUNT: Generate an itinerary ONLY for %[1]s.
2.  JSON ONLY & SCHEMA PERFECT: Your output MUST be a single, valid JSON object that strictly conforms to the provided schema. No prose or markdown.
3.  HARD CONSTRAINTS: Strictly satisfy all user preferences:
    -   Dates: %[2]s to %[3]s
    -   Budget (per person): %[4]s
    -   Vibe: %[5]s; Group: %[6]s
    -   Interests: %[7]s
    -   Pace: %[8]s
4. LOGISTICS & REALISM: Group activities geographically to minimize travel. Ensure commute times in `+"`travelInfo`"+` are realistic for %[1]s.
5. SPECIAL EVENTS: For each day, try to find one real, time-sensitive event in %[1]s matching the user's interests and dates. Set `+"`isSpecialEvent`"+` to `+"`true`"+` for these, and never more than one per day.
`,
		city,
		prefs.Dates.Start, prefs.Dates.End,
		prefs.Budget,
		prefs.Vibe, prefs.Group,
		strings.Join(prefs.Interests, ", "),
		prefs.Pace,
	)
}

// RefinementPrompt wraps a user's change request so the reply stays machine readable.
func RefinementPrompt(instruction string) string {
	return fmt.Sprintf(`Please update the itinerary based on this request: "%s". Important: Your entire response must be ONLY the raw, updated JSON object for the itinerary, conforming to the original schema. Do not include markdown, comments, or any other text.`, instruction)
}

// IdeasPrompt asks for palette ideas matching a free-text request.
func IdeasPrompt(request string) string {
	return fmt.Sprintf(`Based on the following request, generate a list of 5 creative and relevant weekend activity ideas. The request is: "%s".`, request)
}
