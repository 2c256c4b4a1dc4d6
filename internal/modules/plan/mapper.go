// README: Conversion of a generated itinerary into an editable manual plan.
package plan

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"planit/internal/types"
)

// CategoryTable maps generated activity categories to editor categories.
// Anything missing maps to ManualEntertainment.
var CategoryTable = map[types.Category]types.ManualCategory{
	types.CategoryDining:            types.ManualDining,
	types.CategoryEntertainment:     types.ManualEntertainment,
	types.CategoryRelaxation:        types.ManualRelaxing,
	types.CategoryActivity:          types.ManualOutdoors,
	types.CategoryNightlife:         types.ManualEntertainment,
	types.CategoryShopping:          types.ManualCulture,
	types.CategoryCulture:           types.ManualCulture,
	types.CategoryHistoryHeritage:   types.ManualCulture,
	types.CategoryNatureParks:       types.ManualOutdoors,
	types.CategorySpecialEvent:      types.ManualEntertainment,
	types.CategoryOutdoorActivities: types.ManualOutdoors,
	types.CategoryTravel:            types.ManualOutdoors,
	types.CategoryArtCulture:        types.ManualCulture,
	types.CategoryLiveMusic:         types.ManualEntertainment,
}

func ManualCategoryFor(c types.Category) types.ManualCategory {
	if m, ok := CategoryTable[c]; ok {
		return m
	}
	return types.ManualEntertainment
}

// dateLayouts are tried in order on the part of a day label after the first comma.
var dateLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
}

// yearlessLayouts need a year from elsewhere.
var yearlessLayouts = []string{"January 2", "Jan 2", "2 January", "2 Jan"}

// ToManualPlan converts it into a Plan with fresh ids. It never fails: labels it cannot
// date get an empty date and unknown categories become Entertainment.
func ToManualPlan(it types.Itinerary) types.Plan {
	year := yearOf(it.Preferences.Dates.Start)
	return types.Plan{
		ID:   uuid.NewString(),
		Name: it.Title,
		Days: lo.Map(it.Days, func(d types.DayPlan, _ int) types.Day {
			name, date := splitDayLabel(d.Day, year)
			return types.Day{
				ID:   uuid.NewString(),
				Name: name,
				Date: date,
				Activities: lo.Map(d.Activities, func(a types.Activity, _ int) types.ManualActivity {
					return types.ManualActivity{
						ID:       uuid.NewString(),
						Title:    a.Title,
						Time:     a.Time,
						Notes:    a.Description,
						Category: ManualCategoryFor(a.Category),
					}
				}),
			}
		}),
	}
}

// splitDayLabel turns "Saturday, June 14, 2025" into ("Saturday", "2025-06-14").
func splitDayLabel(label string, year int) (string, string) {
	name, rest, found := strings.Cut(label, ",")
	name = strings.TrimSpace(name)
	if !found {
		return name, ""
	}
	return name, parseDate(strings.TrimSpace(rest), year)
}

func parseDate(s string, year int) string {
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(time.DateOnly)
		}
	}
	if year == 0 {
		return ""
	}
	for _, layout := range yearlessLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Format(time.DateOnly)
		}
	}
	return ""
}

func yearOf(isoDate string) int {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(isoDate))
	if err != nil {
		return 0
	}
	return t.Year()
}

// NewPlan is an empty weekend plan with Saturday and Sunday.
func NewPlan(name string) types.Plan {
	return types.Plan{
		ID:   uuid.NewString(),
		Name: name,
		Days: []types.Day{
			{ID: uuid.NewString(), Name: "Saturday", Activities: []types.ManualActivity{}},
			{ID: uuid.NewString(), Name: "Sunday", Activities: []types.ManualActivity{}},
		},
	}
}
