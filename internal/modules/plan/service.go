// README: Manual plan operations (create, import from an itinerary, edit, export).
package plan

import (
	"context"
	"fmt"
	"strings"
	"time"

	"planit/internal/types"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Create stores an empty weekend plan. A blank name becomes "New Weekend Plan N".
func (s *Service) Create(ctx context.Context, uid, name string) (*types.Plan, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		n, err := s.store.Count(ctx, uid)
		if err != nil {
			return nil, err
		}
		name = fmt.Sprintf("New Weekend Plan %d", n+1)
	}
	p := NewPlan(name)
	if err := s.store.Create(ctx, uid, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// FromItinerary maps a generated itinerary and stores the result.
func (s *Service) FromItinerary(ctx context.Context, uid string, it types.Itinerary) (*types.Plan, error) {
	if len(it.Days) == 0 {
		return nil, ErrBadRequest
	}
	p := ToManualPlan(it)
	if err := s.store.Create(ctx, uid, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update saves an edited plan. Activities without an id are rejected.
func (s *Service) Update(ctx context.Context, uid string, p types.Plan) (*types.Plan, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, ErrBadRequest
	}
	for _, d := range p.Days {
		for _, a := range d.Activities {
			if a.ID == "" || strings.TrimSpace(a.Title) == "" {
				return nil, ErrBadRequest
			}
		}
	}
	if err := s.store.Update(ctx, uid, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) Get(ctx context.Context, uid, id string) (*types.Plan, error) {
	return s.store.Get(ctx, uid, id)
}

func (s *Service) List(ctx context.Context, uid string) ([]types.Plan, error) {
	return s.store.List(ctx, uid)
}

func (s *Service) Delete(ctx context.Context, uid, id string) error {
	return s.store.Delete(ctx, uid, id)
}

func (s *Service) ExportICS(ctx context.Context, uid, id string) (string, error) {
	p, err := s.store.Get(ctx, uid, id)
	if err != nil {
		return "", err
	}
	return ExportICS(*p, time.Now().UTC()), nil
}
