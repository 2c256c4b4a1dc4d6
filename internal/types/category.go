// README: Activity category enumerations for generated and manually edited plans.
package types

// Category is the 14-way label the generation backend assigns to an Activity.
type Category string

const (
	CategoryDining            Category = "Dining"
	CategoryEntertainment     Category = "Entertainment"
	CategoryRelaxation        Category = "Relaxation"
	CategoryActivity          Category = "Activity"
	CategoryNightlife         Category = "Nightlife"
	CategoryShopping          Category = "Shopping"
	CategoryCulture           Category = "Culture"
	CategoryHistoryHeritage   Category = "History & Heritage"
	CategoryNatureParks       Category = "Nature & Parks"
	CategorySpecialEvent      Category = "Special Event"
	CategoryOutdoorActivities Category = "Outdoor Activities"
	CategoryTravel            Category = "Travel"
	CategoryArtCulture        Category = "Art & Culture"
	CategoryLiveMusic         Category = "Live Music"
)

// Categories lists every Category in schema order.
var Categories = []Category{
	CategoryDining,
	CategoryEntertainment,
	CategoryRelaxation,
	CategoryActivity,
	CategoryNightlife,
	CategoryShopping,
	CategoryCulture,
	CategoryHistoryHeritage,
	CategoryNatureParks,
	CategorySpecialEvent,
	CategoryOutdoorActivities,
	CategoryTravel,
	CategoryArtCulture,
	CategoryLiveMusic,
}

// ManualCategory is the 6-way label used by the schedule editor and the ideas palette.
type ManualCategory string

const (
	ManualDining        ManualCategory = "Dining"
	ManualOutdoors      ManualCategory = "Outdoors"
	ManualRelaxing      ManualCategory = "Relaxing"
	ManualEntertainment ManualCategory = "Entertainment"
	ManualFamily        ManualCategory = "Family"
	ManualCulture       ManualCategory = "Culture"
)

var ManualCategories = []ManualCategory{
	ManualDining,
	ManualOutdoors,
	ManualRelaxing,
	ManualEntertainment,
	ManualFamily,
	ManualCulture,
}

// BookingPartner is an optional hint about where an activity can be booked.
type BookingPartner string

const (
	PartnerZomato     BookingPartner = "Zomato"
	PartnerBookMyShow BookingPartner = "BookMyShow"
	PartnerInternal   BookingPartner = "Internal"
)

var BookingPartners = []BookingPartner{PartnerZomato, PartnerBookMyShow, PartnerInternal}

// Strings converts a typed enumeration into the plain values a schema enum expects.
func Strings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
