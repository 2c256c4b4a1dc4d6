package itinerary

import (
	"context"
	"fmt"
	"sync"

	"planit/internal/ai"
	"planit/internal/types"
)

// fakeGenerator replays canned replies in order and records every request.
type fakeGenerator struct {
	mu       sync.Mutex
	replies  []fakeReply
	requests []ai.Request
}

type fakeReply struct {
	reply *ai.Reply
	err   error
}

func (f *fakeGenerator) Generate(_ context.Context, req ai.Request) (*ai.Reply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if len(f.replies) == 0 {
		return nil, fmt.Errorf("fakeGenerator: no reply queued")
	}
	next := f.replies[0]
	f.replies = f.replies[1:]
	return next.reply, next.err
}

func (f *fakeGenerator) queue(text string, sources ...types.Source) *fakeGenerator {
	f.replies = append(f.replies, fakeReply{reply: &ai.Reply{Text: text, Sources: sources}})
	return f
}

func (f *fakeGenerator) fail(err error) *fakeGenerator {
	f.replies = append(f.replies, fakeReply{err: err})
	return f
}

func itineraryJSON(title string) string {
	return fmt.Sprintf(`{"title":%q,"totalEstimatedCost":"Approx. ₹4,500","itinerary":[{"day":"Saturday, June 14, 2025","theme":"Ghats","activities":[
		{"time":"6:00 AM","title":"Sunrise boat ride","description":"Row past the ghats.","location":{"name":"Assi Ghat","address":"Assi Ghat, Varanasi"},"category":"Nature & Parks","estimatedCost":"₹500","isSpecialEvent":false,"bookingPartner":null,"travelInfo":{"mode":"Walk","duration":"Approx. 10 mins"}}
	]}]}`, title)
}

func samplePreferences() types.Preferences {
	return types.Preferences{
		Location:  types.GeoPoint{Latitude: 25.28, Longitude: 82.99, Address: "Assi Ghat, Varanasi, India"},
		Dates:     types.DateRange{Start: "2025-06-14", End: "2025-06-15"},
		Pace:      "Relaxed",
		Vibe:      "Spiritual",
		Budget:    "₹5,000",
		Group:     "Couple",
		Interests: []string{"Food", "History"},
	}
}

func samplePlan() types.SavedPlan {
	return types.SavedPlan{
		Itinerary: types.Itinerary{
			Title:       "Varanasi Voyage",
			Days:        []types.DayPlan{{Day: "Saturday, June 14, 2025", Theme: "Ghats"}},
			Preferences: samplePreferences(),
		},
		ChatHistory: []types.Turn{
			{Role: types.RoleUser, Content: ai.InitialPrompt},
			{Role: types.RoleModel, Content: itineraryJSON("Varanasi Voyage")},
		},
	}
}
