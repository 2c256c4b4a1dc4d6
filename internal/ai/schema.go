// README: Response schemas the generation backend is constrained to.
package ai

import (
	"github.com/google/generative-ai-go/genai"

	"planit/internal/types"
)

func str(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: desc}
}

// ItinerarySchema is the shape of a full weekend itinerary.
func ItinerarySchema() *genai.Schema {
	location := &genai.Schema{
		Type:        genai.TypeObject,
		Description: "The location of the activity. Must contain at least an address.",
		Properties: map[string]*genai.Schema{
			"name":    str("The optional name of the place (e.g., 'Kashi Vishwanath Temple')."),
			"address": str("The full, specific address of the location."),
		},
		Required: []string{"address"},
	}

	travel := &genai.Schema{
		Type:        genai.TypeObject,
		Description: "Details on the travel from the previous location to this activity. For the first activity of the day, this is from the user's home.",
		Properties: map[string]*genai.Schema{
			"mode":     str("Recommended mode of transport (e.g., 'Ride-Sharing', 'Auto-Rickshaw', 'Walk')."),
			"duration": str("Estimated travel time (e.g., 'Approx. 15 mins')."),
		},
		Required: []string{"mode", "duration"},
	}

	activity := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"time":        str("Suggested time for the activity (e.g., '8:00 PM', '11:00 AM - 1:00 PM'). This field is mandatory."),
			"title":       str("The name of the activity or place (e.g., 'Evening Ganga Aarti at Dashashwamedh Ghat')."),
			"description": str("A brief, appealing description of the activity, including a pro-tip."),
			"location":    location,
			"category": {
				Type:        genai.TypeString,
				Enum:        types.Strings(types.Categories),
				Description: "The category of the activity. Use 'Special Event' for time-sensitive events you discover.",
			},
			"estimatedCost": str("An estimated cost for this specific activity (e.g., 'Approx. ₹1200', 'Free'). This field is mandatory."),
			"isSpecialEvent": {
				Type:        genai.TypeBoolean,
				Description: "Set to true if this is a specific, date-sensitive event (like a concert, festival, or exhibition) you discovered.",
			},
			"bookingPartner": {
				Type:        genai.TypeString,
				Enum:        types.Strings(types.BookingPartners),
				Description: "Suggested booking partner, if applicable.",
				Nullable:    true,
			},
			"travelInfo": travel,
		},
		Required: []string{"time", "title", "description", "location", "category", "estimatedCost", "isSpecialEvent", "travelInfo"},
	}

	day := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"day":        str("The day of the week and date. MUST be 'Saturday, [Date]' or 'Sunday, [Date]' etc."),
			"theme":      str("A short theme for the day's activities (e.g., 'Spiritual Sunrise & Silk Weaving')."),
			"activities": {Type: genai.TypeArray, Items: activity},
		},
		Required: []string{"day", "theme", "activities"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":              str("A catchy, short, and descriptive title for the entire weekend plan. For example, 'Varanasi Voyage: A Spiritual & Culinary Journey'."),
			"totalEstimatedCost": str("The total estimated cost for the entire weekend plan. This should be a single string, e.g., 'Approx. ₹4,500'."),
			"itinerary": {
				Type:        genai.TypeArray,
				Description: "An array of daily plans, covering all requested days.",
				Items:       day,
			},
		},
		Required: []string{"title", "totalEstimatedCost", "itinerary"},
	}
}

// IdeasSchema is a flat list of palette ideas.
func IdeasSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"title":    {Type: genai.TypeString},
				"category": {Type: genai.TypeString, Enum: types.Strings(types.ManualCategories)},
				"notes":    str("A short, engaging one-sentence description for the activity."),
			},
			Required: []string{"title", "category", "notes"},
		},
	}
}
