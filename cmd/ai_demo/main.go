package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"planit/internal/ai"
	"planit/internal/modules/itinerary"
	"planit/internal/modules/plan"
	"planit/internal/types"
)

func main() {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	provider, err := ai.NewGeminiProvider(ctx, apiKey, ai.DefaultOptions())
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer provider.Close()

	saturday := nextSaturday(time.Now())
	prefs := types.Preferences{
		Location:  types.GeoPoint{Latitude: 18.5204, Longitude: 73.8567, Address: "FC Road, Shivajinagar, Pune, Maharashtra, India"},
		Dates:     types.DateRange{Start: saturday.Format(time.DateOnly), End: saturday.AddDate(0, 0, 1).Format(time.DateOnly)},
		Pace:      "Balanced",
		Vibe:      "Foodie",
		Budget:    "₹6,000",
		Group:     "Friends",
		Interests: []string{"Street food", "History", "Live music"},
	}

	svc := itinerary.NewService(provider, nil, nil)
	saved, err := svc.GenerateInitial(ctx, prefs)
	if err != nil {
		log.Fatalf("Error generating itinerary: %v (finish reason %q)", err, ai.FinishReasonOf(err))
	}
	fmt.Printf("Itinerary: %s (%s)\n", saved.Title, saved.TotalEstimatedCost)
	printDays(saved.Days)

	session := itinerary.NewSession(provider, saved)
	instruction := "Make Sunday more relaxed and add one rooftop dinner."
	fmt.Printf("\nUser: %s\n", instruction)
	res, err := session.Refine(ctx, instruction)
	if err != nil {
		log.Fatalf("Error refining itinerary: %v", err)
	}
	fmt.Printf("Refined: %s (history: %d turns)\n", res.Itinerary.Title, len(res.History))
	printDays(res.Itinerary.Days)

	manual := plan.ToManualPlan(res.Itinerary)
	out, _ := json.MarshalIndent(manual, "", "  ")
	fmt.Printf("\nManual plan:\n%s\n", out)
}

func printDays(days []types.DayPlan) {
	for _, d := range days {
		fmt.Printf("  %s: %s\n", d.Day, d.Theme)
		for _, a := range d.Activities {
			fmt.Printf("    %-9s %s [%s] %s\n", a.Time, a.Title, a.Category, a.EstimatedCost)
		}
	}
}

func nextSaturday(from time.Time) time.Time {
	days := (int(time.Saturday) - int(from.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return from.AddDate(0, 0, days)
}
