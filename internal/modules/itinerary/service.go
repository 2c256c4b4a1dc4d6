// README: Itinerary generation, palette ideas and stored refinement sessions.
package itinerary

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"planit/internal/ai"
	"planit/internal/types"
)

// AddressResolver turns coordinates into a formatted address.
type AddressResolver interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (string, error)
}

// Service orchestrates generation requests against the backend.
type Service struct {
	gen      ai.Generator
	store    *Store
	resolver AddressResolver

	// inflight holds the session ids this process is refining right now.
	inflight sync.Map
}

// NewService wires a Service. store and resolver may be nil; stored sessions and address
// resolution are then unavailable.
func NewService(gen ai.Generator, store *Store, resolver AddressResolver) *Service {
	return &Service{gen: gen, store: store, resolver: resolver}
}

// GenerateInitial produces the first itinerary for prefs. The returned plan already carries
// the opening exchange in its history so the first refinement sees the itinerary.
func (s *Service) GenerateInitial(ctx context.Context, prefs types.Preferences) (types.SavedPlan, error) {
	if !prefs.HasInterests() {
		return types.SavedPlan{}, ai.Validation("at least one interest is required")
	}
	if !prefs.HasDates() {
		return types.SavedPlan{}, ai.Validation("start and end dates are required")
	}
	prefs = s.resolveAddress(ctx, prefs)

	reply, err := s.gen.Generate(ctx, ai.Request{
		Mode:              ai.ModeInitial,
		SystemInstruction: ai.SystemInstruction(prefs),
		Prompt:            ai.InitialPrompt,
		Schema:            ai.ItinerarySchema(),
	})
	if err != nil {
		log.Printf("AI Error: generate itinerary: %v", err)
		return types.SavedPlan{}, err
	}

	parsed, err := decodeItinerary(reply.Text)
	if err != nil {
		return types.SavedPlan{}, err
	}

	return types.SavedPlan{
		Itinerary: finalize(parsed, prefs, reply.Sources),
		ChatHistory: []types.Turn{
			{Role: types.RoleUser, Content: ai.InitialPrompt},
			{Role: types.RoleModel, Content: reply.Text},
		},
	}, nil
}

// GenerateIdeas returns palette suggestions for a free-text request.
func (s *Service) GenerateIdeas(ctx context.Context, prompt string) ([]types.BrowserActivity, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ai.Validation("a prompt is required")
	}

	reply, err := s.gen.Generate(ctx, ai.Request{
		Mode:   ai.ModeIdeas,
		Prompt: ai.IdeasPrompt(prompt),
		Schema: ai.IdeasSchema(),
	})
	if err != nil {
		log.Printf("AI Error: generate ideas: %v", err)
		return nil, err
	}

	var ideas []types.BrowserActivity
	if err := ai.Decode(reply.Text, ai.IdeasSchema(), &ideas); err != nil {
		return nil, err
	}
	for i := range ideas {
		if !lo.Contains(types.ManualCategories, ideas[i].Category) {
			ideas[i].Category = types.ManualEntertainment
		}
	}
	return ideas, nil
}

// StartSession stores plan for uid and returns the handle used for later refinements.
func (s *Service) StartSession(ctx context.Context, uid string, plan types.SavedPlan) (string, error) {
	id := uuid.NewString()
	if err := s.store.Save(ctx, id, uid, plan); err != nil {
		return "", err
	}
	return id, nil
}

// Session returns the stored plan behind id. Sessions of other users read as ErrSessionNotFound.
func (s *Service) Session(ctx context.Context, uid, id string) (types.SavedPlan, error) {
	return s.store.Load(ctx, id, uid)
}

// EndSession discards the stored conversation.
func (s *Service) EndSession(ctx context.Context, uid, id string) error {
	if _, err := s.store.Load(ctx, id, uid); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

// RefineSession applies one refinement to a stored session. A concurrent refinement of the
// same id is rejected with ErrRefineInFlight: the in-process flag catches overlap here before
// Redis is touched, the Redis lock catches it across processes. The stored plan only changes
// after a successful round-trip.
func (s *Service) RefineSession(ctx context.Context, uid, id, instruction string) (RefineResult, error) {
	if _, busy := s.inflight.LoadOrStore(id, struct{}{}); busy {
		return RefineResult{}, ErrRefineInFlight
	}
	defer s.inflight.Delete(id)

	token, err := s.store.Lock(ctx, id)
	if err != nil {
		return RefineResult{}, err
	}
	defer func() {
		if err := s.store.Unlock(context.WithoutCancel(ctx), id, token); err != nil {
			log.Printf("session %s: unlock: %v", id, err)
		}
	}()

	plan, err := s.store.Load(ctx, id, uid)
	if err != nil {
		return RefineResult{}, err
	}

	res, err := Refine(ctx, s.gen, plan, instruction)
	if err != nil {
		return RefineResult{}, err
	}
	if err := s.store.Save(ctx, id, uid, res.SavedPlan()); err != nil {
		return RefineResult{}, err
	}
	return res, nil
}

func (s *Service) resolveAddress(ctx context.Context, prefs types.Preferences) types.Preferences {
	if s.resolver == nil || strings.TrimSpace(prefs.Location.Address) != "" || !prefs.Location.HasCoordinates() {
		return prefs
	}
	addr, err := s.resolver.ReverseGeocode(ctx, prefs.Location.Latitude, prefs.Location.Longitude)
	if err != nil {
		log.Printf("Geocode Error: %v", err)
		return prefs
	}
	prefs.Location.Address = addr
	return prefs
}

func decodeItinerary(raw string) (types.Itinerary, error) {
	var it types.Itinerary
	if err := ai.Decode(raw, ai.ItinerarySchema(), &it); err != nil {
		return types.Itinerary{}, err
	}
	if len(it.Days) == 0 {
		log.Printf("sanitize: itinerary without days: %q", raw)
		return types.Itinerary{}, ai.Malformed("itinerary has no days", raw, nil)
	}
	return it, nil
}

// finalize attaches the carried preferences and the usable grounding sources.
func finalize(it types.Itinerary, prefs types.Preferences, sources []types.Source) types.Itinerary {
	it.Preferences = prefs
	it.Sources = groundedSources(sources)
	return it
}

// groundedSources keeps sources with a uri, first occurrence wins.
func groundedSources(sources []types.Source) []types.Source {
	withURI := lo.Filter(sources, func(s types.Source, _ int) bool {
		return strings.TrimSpace(s.URI) != ""
	})
	return lo.UniqBy(withURI, func(s types.Source) string { return s.URI })
}
