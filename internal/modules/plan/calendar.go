// README: iCalendar export of a manual plan.
package plan

import (
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"planit/internal/types"
)

const productID = "-//planit//weekend planner//EN"

var timeLayouts = []string{"3:04 PM", "3:04PM", "15:04", "3 PM", "3PM"}

// ExportICS renders p as an iCalendar document. Days without a date are skipped.
// Activities with a parsable time become one-hour events, the rest span the whole day.
func ExportICS(p types.Plan, now time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(p.Name)

	for _, day := range p.Days {
		date, err := time.Parse(time.DateOnly, day.Date)
		if err != nil {
			continue
		}
		for _, a := range day.Activities {
			e := cal.AddEvent(a.ID)
			e.SetDtStampTime(now)
			e.SetSummary(a.Title)
			if a.Notes != "" {
				e.SetDescription(a.Notes)
			}
			e.AddProperty(ics.ComponentPropertyCategories, string(a.Category))

			if start, ok := startOn(date, a.Time); ok {
				e.SetStartAt(start)
				e.SetEndAt(start.Add(time.Hour))
			} else {
				e.SetAllDayStartAt(date)
				e.SetAllDayEndAt(date.AddDate(0, 0, 1))
			}
		}
	}
	return cal.Serialize()
}

func startOn(date time.Time, clock string) (time.Time, bool) {
	clock = strings.ToUpper(strings.TrimSpace(clock))
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, clock); err == nil {
			return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
