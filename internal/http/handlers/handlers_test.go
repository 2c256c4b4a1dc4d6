// README: Handler tests: routing, auth, error-to-status mapping and quota metering.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/redis/go-redis/v9"

	"planit/internal/ai"
	"planit/internal/http/handlers"
	httpmiddleware "planit/internal/http/middleware"
	"planit/internal/infra"
	"planit/internal/modules/aiusage"
	"planit/internal/modules/itinerary"
	"planit/internal/modules/plan"
	"planit/internal/types"
)

type stubTokenVerifier struct {
	token *infra.FirebaseToken
	err   error
}

func (s *stubTokenVerifier) VerifyIDToken(_ context.Context, _ string) (*infra.FirebaseToken, error) {
	return s.token, s.err
}

// scriptedGenerator returns the queued replies in order.
type scriptedGenerator struct {
	replies []*ai.Reply
	errs    []error
}

func (g *scriptedGenerator) Generate(_ context.Context, _ ai.Request) (*ai.Reply, error) {
	if len(g.replies) == 0 {
		return nil, errors.New("no reply queued")
	}
	r, err := g.replies[0], g.errs[0]
	g.replies, g.errs = g.replies[1:], g.errs[1:]
	return r, err
}

func (g *scriptedGenerator) reply(text string) *scriptedGenerator {
	g.replies = append(g.replies, &ai.Reply{Text: text})
	g.errs = append(g.errs, nil)
	return g
}

func (g *scriptedGenerator) fail(err error) *scriptedGenerator {
	g.replies = append(g.replies, nil)
	g.errs = append(g.errs, err)
	return g
}

const itineraryText = `{"title":"Pune Weekend","totalEstimatedCost":"₹3,000","itinerary":[{"day":"Saturday, June 14, 2025","theme":"Old city","activities":[
	{"time":"10:00 AM","title":"Shaniwar Wada","description":"Fort walk.","location":{"address":"Shaniwar Peth, Pune"},"category":"History & Heritage","estimatedCost":"₹25","isSpecialEvent":false,"travelInfo":{"mode":"Auto","duration":"Approx. 15 mins"}}
]}]}`

type testEnv struct {
	router *gin.Engine
	mock   pgxmock.PgxPoolIface
	redis  *miniredis.Miniredis
}

func newTestEnv(t *testing.T, gen ai.Generator, metered bool) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	t.Cleanup(mock.Close)

	var usage *aiusage.Service
	if metered {
		usage = aiusage.NewService(aiusage.NewStore(mock, 3))
	}

	itSvc := itinerary.NewService(gen, itinerary.NewStore(rdb, time.Hour), nil)
	ih := handlers.NewItineraryHandler(itSvc, usage)
	ph := handlers.NewPlanHandler(plan.NewService(plan.NewStore(mock)))

	r := gin.New()
	api := r.Group("/api", httpmiddleware.Auth(&stubTokenVerifier{token: &infra.FirebaseToken{UID: "user-1"}}))
	api.POST("/itineraries", ih.Generate)
	api.POST("/itineraries/sessions/:id/refine", ih.Refine)
	api.GET("/itineraries/sessions/:id", ih.Session)
	api.DELETE("/itineraries/sessions/:id", ih.EndSession)
	api.POST("/ideas", ih.Ideas)
	api.POST("/plans/from-itinerary", ph.FromItinerary)
	api.GET("/plans/:id", ph.Get)
	api.GET("/plans/:id/ics", ph.ExportICS)
	api.DELETE("/plans/:id", ph.Delete)

	return &testEnv{router: r, mock: mock, redis: mr}
}

func (e *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer token")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func preferences() types.Preferences {
	return types.Preferences{
		Location:  types.GeoPoint{Address: "FC Road, Pune, India"},
		Dates:     types.DateRange{Start: "2025-06-14", End: "2025-06-15"},
		Interests: []string{"History"},
	}
}

func TestGenerateThenRefine(t *testing.T) {
	gen := (&scriptedGenerator{}).reply(itineraryText).reply(strings.Replace(itineraryText, "Pune Weekend", "Slower Pune", 1))
	env := newTestEnv(t, gen, false)

	w := env.do(http.MethodPost, "/api/itineraries", map[string]any{"preferences": preferences()})
	if w.Code != http.StatusCreated {
		t.Fatalf("generate: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		SessionID string          `json:"sessionId"`
		Plan      types.SavedPlan `json:"plan"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.SessionID == "" || created.Plan.Title != "Pune Weekend" || len(created.Plan.ChatHistory) != 2 {
		t.Fatalf("unexpected response: %+v", created)
	}

	w = env.do(http.MethodPost, "/api/itineraries/sessions/"+created.SessionID+"/refine", map[string]string{"instruction": "slower please"})
	if w.Code != http.StatusOK {
		t.Fatalf("refine: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var refined itinerary.RefineResult
	_ = json.Unmarshal(w.Body.Bytes(), &refined)
	if refined.Itinerary.Title != "Slower Pune" || len(refined.History) != 4 {
		t.Fatalf("unexpected refine result: %+v", refined)
	}

	w = env.do(http.MethodGet, "/api/itineraries/sessions/"+created.SessionID, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Slower Pune") {
		t.Fatalf("session not updated: %d %s", w.Code, w.Body.String())
	}
}

func TestErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		gen    *scriptedGenerator
		path   string
		body   any
		status int
		want   string
	}{
		{"validation", &scriptedGenerator{}, "/api/itineraries", map[string]any{"preferences": types.Preferences{}}, http.StatusBadRequest, "interest"},
		{"malformed", (&scriptedGenerator{}).reply("Sorry, I can't."), "/api/itineraries", map[string]any{"preferences": preferences()}, http.StatusBadGateway, "malformed JSON"},
		{"blocked", (&scriptedGenerator{}).fail(&ai.Error{Kind: ai.ErrEmptyResponse, Message: "The AI's response was blocked due to: SAFETY.", FinishReason: "SAFETY"}), "/api/ideas", map[string]string{"prompt": "x"}, http.StatusBadGateway, `"finishReason":"SAFETY"`},
		{"transport", (&scriptedGenerator{}).fail(&ai.Error{Kind: ai.ErrTransportFailure, Err: errors.New("dial tcp")}), "/api/ideas", map[string]string{"prompt": "x"}, http.StatusServiceUnavailable, "could not be reached"},
		{"unknown session", &scriptedGenerator{}, "/api/itineraries/sessions/nope/refine", map[string]string{"instruction": "x"}, http.StatusNotFound, "session not found"},
		{"bad json", &scriptedGenerator{}, "/api/ideas", "not an object", http.StatusBadRequest, "invalid json"},
	}
	for _, tc := range cases {
		env := newTestEnv(t, tc.gen, false)
		w := env.do(http.MethodPost, tc.path, tc.body)
		if w.Code != tc.status {
			t.Errorf("%s: expected %d, got %d: %s", tc.name, tc.status, w.Code, w.Body.String())
			continue
		}
		if !strings.Contains(w.Body.String(), tc.want) {
			t.Errorf("%s: body %s does not contain %q", tc.name, w.Body.String(), tc.want)
		}
	}
}

func TestRefineWhileLockedIsConflict(t *testing.T) {
	gen := (&scriptedGenerator{}).reply(itineraryText)
	env := newTestEnv(t, gen, false)

	w := env.do(http.MethodPost, "/api/itineraries", map[string]any{"preferences": preferences()})
	var created struct {
		SessionID string `json:"sessionId"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	// Another instance holds the refine lock.
	if err := env.redis.Set("planit:session:"+created.SessionID+":lock", "other"); err != nil {
		t.Fatalf("seed lock: %v", err)
	}
	w = env.do(http.MethodPost, "/api/itineraries/sessions/"+created.SessionID+"/refine", map[string]string{"instruction": "x"})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestForeignSessionIsNotFound(t *testing.T) {
	env := newTestEnv(t, &scriptedGenerator{}, false)

	body, _ := json.Marshal(map[string]any{
		"owner": "user-2",
		"plan":  types.SavedPlan{Itinerary: types.Itinerary{Title: "Someone else's trip"}},
	})
	if err := env.redis.Set("planit:session:theirs", string(body)); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	for _, req := range []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/api/itineraries/sessions/theirs", nil},
		{http.MethodPost, "/api/itineraries/sessions/theirs/refine", map[string]string{"instruction": "x"}},
		{http.MethodDelete, "/api/itineraries/sessions/theirs", nil},
	} {
		w := env.do(req.method, req.path, req.body)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s %s: expected 404, got %d: %s", req.method, req.path, w.Code, w.Body.String())
		}
		if strings.Contains(w.Body.String(), "Someone else") {
			t.Errorf("%s %s leaked the foreign plan", req.method, req.path)
		}
	}
	if !env.redis.Exists("planit:session:theirs") {
		t.Fatalf("foreign session was deleted")
	}
}

func TestQuotaExhausted(t *testing.T) {
	env := newTestEnv(t, &scriptedGenerator{}, true)

	env.mock.ExpectExec(`UPDATE ai_usage SET`).WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	env.mock.ExpectExec(`INSERT INTO ai_usage`).WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	env.mock.ExpectExec(`UPDATE ai_usage SET`).WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	w := env.do(http.MethodPost, "/api/ideas", map[string]string{"prompt": "museums"})
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d: %s", w.Code, w.Body.String())
	}
	if err := env.mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPlanFromItineraryAndExport(t *testing.T) {
	env := newTestEnv(t, &scriptedGenerator{}, false)
	now := time.Now()

	var it types.Itinerary
	if err := json.Unmarshal([]byte(itineraryText), &it); err != nil {
		t.Fatalf("fixture: %v", err)
	}

	env.mock.ExpectQuery(`INSERT INTO plans`).
		WithArgs(pgxmock.AnyArg(), "user-1", "Pune Weekend", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	w := env.do(http.MethodPost, "/api/plans/from-itinerary", map[string]any{"itinerary": it})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var p types.Plan
	_ = json.Unmarshal(w.Body.Bytes(), &p)
	if len(p.Days) != 1 || p.Days[0].Date != "2025-06-14" || p.Days[0].Activities[0].Category != types.ManualCulture {
		t.Fatalf("unexpected plan: %+v", p)
	}

	days, _ := json.Marshal(p.Days)
	env.mock.ExpectQuery(`SELECT id, name, days, created_at, updated_at`).WithArgs(p.ID, "user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "days", "created_at", "updated_at"}).
			AddRow(p.ID, p.Name, days, now, now))

	w = env.do(http.MethodGet, "/api/plans/"+p.ID+"/ics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("ics: expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !strings.Contains(w.Body.String(), "SUMMARY:Shaniwar Wada") {
		t.Fatalf("event missing:\n%s", w.Body.String())
	}

	env.mock.ExpectExec(`DELETE FROM plans`).WithArgs("gone", "user-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	if w = env.do(http.MethodDelete, "/api/plans/gone", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	if err := env.mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(httpmiddleware.Auth(&stubTokenVerifier{err: errors.New("expired")}))
	r.POST("/api/ideas", handlers.NewItineraryHandler(nil, nil).Ideas)

	req := httptest.NewRequest(http.MethodPost, "/api/ideas", strings.NewReader(`{"prompt":"x"}`))
	req.Header.Set("Authorization", "Bearer expired")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
