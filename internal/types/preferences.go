// README: Planning request value object sent to the generation backend.
package types

import "strings"

// GeoPoint is the user's origin as resolved by the preference form.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

// HasCoordinates reports whether a latitude/longitude pair was supplied.
func (g GeoPoint) HasCoordinates() bool {
	return g.Latitude != 0 || g.Longitude != 0
}

// DateRange is inclusive on both ends. Dates are kept as the strings the form produced.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Preferences describes one planning request. It is carried read-only inside every
// Itinerary it produces.
type Preferences struct {
	Location       GeoPoint  `json:"location"`
	Dates          DateRange `json:"dates"`
	Pace           string    `json:"pace"`
	Vibe           string    `json:"vibe"`
	Budget         string    `json:"budget"`
	Interests      []string  `json:"interests"`
	DietaryNeeds   []string  `json:"dietaryNeeds"`
	Group          string    `json:"group"`
	Distance       string    `json:"distance"`
	Occasion       string    `json:"occasion"`
	Accommodation  []string  `json:"accommodation"`
	Transportation string    `json:"transportation"`
}

// HasInterests is false when every interest is blank.
func (p Preferences) HasInterests() bool {
	for _, in := range p.Interests {
		if strings.TrimSpace(in) != "" {
			return true
		}
	}
	return false
}

// HasDates requires both ends of the range.
func (p Preferences) HasDates() bool {
	return strings.TrimSpace(p.Dates.Start) != "" && strings.TrimSpace(p.Dates.End) != ""
}
