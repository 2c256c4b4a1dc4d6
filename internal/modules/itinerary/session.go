// README: Refinement conversation state and its single-flight guard.
package itinerary

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"

	"planit/internal/ai"
	"planit/internal/types"
)

// Refine is one refinement turn as a pure transition: (plan, instruction) -> (itinerary', history').
// plan is never modified; the returned history is a fresh slice.
func Refine(ctx context.Context, gen ai.Generator, plan types.SavedPlan, instruction string) (RefineResult, error) {
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return RefineResult{}, ai.Validation("a refinement instruction is required")
	}

	history := seedHistory(plan)
	prompt := ai.RefinementPrompt(instruction)

	reply, err := gen.Generate(ctx, ai.Request{
		Mode:              ai.ModeRefinement,
		SystemInstruction: ai.SystemInstruction(plan.Preferences),
		History:           history,
		Prompt:            prompt,
		Schema:            ai.ItinerarySchema(),
	})
	if err != nil {
		log.Printf("AI Error: refine itinerary: %v", err)
		return RefineResult{}, err
	}

	parsed, err := decodeItinerary(reply.Text)
	if err != nil {
		return RefineResult{}, ai.InvalidPlanStructure(err)
	}

	next := make([]types.Turn, 0, len(history)+2)
	next = append(next, history...)
	next = append(next,
		types.Turn{Role: types.RoleUser, Content: prompt},
		types.Turn{Role: types.RoleModel, Content: reply.Text},
	)

	return RefineResult{
		Itinerary: finalize(parsed, plan.Preferences, reply.Sources),
		History:   next,
	}, nil
}

// seedHistory returns a copy of the plan's history. Plans saved without history get a
// synthetic opening exchange holding the current itinerary so the backend has context.
func seedHistory(plan types.SavedPlan) []types.Turn {
	if len(plan.ChatHistory) > 0 {
		return append([]types.Turn(nil), plan.ChatHistory...)
	}
	body, err := json.Marshal(struct {
		Title              string          `json:"title"`
		TotalEstimatedCost string          `json:"totalEstimatedCost"`
		Days               []types.DayPlan `json:"itinerary"`
	}{plan.Title, plan.TotalEstimatedCost, plan.Days})
	if err != nil {
		return nil
	}
	return []types.Turn{
		{Role: types.RoleUser, Content: ai.InitialPrompt},
		{Role: types.RoleModel, Content: string(body)},
	}
}

// State of a Session.
type State string

const (
	StateIdle       State = "idle"
	StateRequesting State = "requesting"
	StateFailed     State = "failed"
)

// Session owns one in-process conversation. At most one Refine runs at a time; a second
// call while one is outstanding fails fast with ErrRefineInFlight. Failed is not terminal.
type Session struct {
	gen ai.Generator

	mu      sync.Mutex
	plan    types.SavedPlan
	state   State
	lastErr error
}

func NewSession(gen ai.Generator, plan types.SavedPlan) *Session {
	plan.ChatHistory = append([]types.Turn(nil), plan.ChatHistory...)
	return &Session{gen: gen, plan: plan, state: StateIdle}
}

// Refine runs one turn and, on success only, replaces the session's plan and history.
// Cancelling ctx aborts the call; a caller that abandoned the session simply drops the result.
func (s *Session) Refine(ctx context.Context, instruction string) (RefineResult, error) {
	s.mu.Lock()
	if s.state == StateRequesting {
		s.mu.Unlock()
		return RefineResult{}, ErrRefineInFlight
	}
	s.state = StateRequesting
	current := s.plan
	s.mu.Unlock()

	res, err := Refine(ctx, s.gen, current, instruction)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateFailed
		s.lastErr = err
		return RefineResult{}, err
	}
	s.plan = res.SavedPlan()
	s.state = StateIdle
	s.lastErr = nil
	return res, nil
}

// Plan returns a snapshot of the current plan.
func (s *Session) Plan() types.SavedPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.plan
	p.ChatHistory = append([]types.Turn(nil), s.plan.ChatHistory...)
	return p
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err is the error of the last failed turn, nil after a success.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Reset clears the conversation while keeping the current itinerary.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateRequesting {
		return ErrRefineInFlight
	}
	s.plan.ChatHistory = nil
	s.state = StateIdle
	s.lastErr = nil
	return nil
}
