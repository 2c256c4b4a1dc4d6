// README: Generated itinerary shape and the conversation turns that refine it.
package types

type Location struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address"`
}

// TravelInfo describes the leg from the previous stop. For the first activity of a day the
// leg starts at the user's origin.
type TravelInfo struct {
	Mode     string  `json:"mode"`
	Duration string  `json:"duration"`
	Distance *string `json:"distance,omitempty"`
	From     *string `json:"from,omitempty"`
}

type Activity struct {
	Time           string          `json:"time"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Location       Location        `json:"location"`
	Category       Category        `json:"category"`
	EstimatedCost  string          `json:"estimatedCost"`
	IsSpecialEvent bool            `json:"isSpecialEvent"`
	BookingPartner *BookingPartner `json:"bookingPartner,omitempty"`
	TravelInfo     TravelInfo      `json:"travelInfo"`
}

// DayPlan.Day combines a weekday and a human date, e.g. "Saturday, June 14, 2025".
type DayPlan struct {
	Day        string     `json:"day"`
	Theme      string     `json:"theme"`
	Activities []Activity `json:"activities"`
}

// Source is a grounding citation reported by the backend.
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title,omitempty"`
}

type Itinerary struct {
	Title              string      `json:"title"`
	TotalEstimatedCost string      `json:"totalEstimatedCost"`
	Days               []DayPlan   `json:"itinerary"`
	Preferences        Preferences `json:"preferences"`
	Sources            []Source    `json:"sources"`
}

// Role tags a conversation turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one opaque message of a refinement conversation.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// SavedPlan is an Itinerary plus the conversation needed to keep refining it.
type SavedPlan struct {
	Itinerary
	ChatHistory []Turn `json:"chatHistory"`
}
