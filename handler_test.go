package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lg/peso-certo-api/internal/clock"
	"lg/peso-certo-api/internal/flow"
	"lg/peso-certo-api/internal/plan"
	"lg/peso-certo-api/internal/profile"
	"lg/peso-certo-api/internal/questionnaire"
	"lg/peso-certo-api/internal/store"
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

type testServer struct {
	router *gin.Engine
	h      *Handler
	clock  *clock.Manual
	mem    *store.Memory
}

// setupTest builds a router over an in-memory session with a stopped clock.
// passcodeHash and token may be empty to leave auth off.
func setupTest(t *testing.T, mem *store.Memory, passcodeHash, token string) testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if mem == nil {
		mem = store.NewMemory()
	}
	clk := clock.NewManual(testNow)
	app := flow.New(flow.Options{
		Clock:     clk,
		Scheduler: clock.NewManualScheduler(),
		Gateway:   store.NewGateway(mem, zap.NewNop()),
		Logger:    zap.NewNop(),
	})
	app.Start(context.Background())
	t.Cleanup(app.Close)

	h := newHandler(app, zap.NewNop(), passcodeHash, token)
	return testServer{router: newRouter(h, "http://localhost:5173"), h: h, clock: clk, mem: mem}
}

// seedDashboard stores a profile and plan so the session starts at the
// dashboard.
func seedDashboard(t *testing.T) *store.Memory {
	t.Helper()
	mem := store.NewMemory()
	p := profile.New()
	p.Set(profile.FieldCurrentWeight, 80)
	p.Set(profile.FieldTargetWeight, 70)
	pl := plan.Generate(p)
	if err := store.NewGateway(mem, zap.NewNop()).Save(context.Background(), store.Snapshot{Profile: p, Plan: &pl}); err != nil {
		t.Fatal(err)
	}
	return mem
}

// doRequest sends a request with an optional JSON body and headers.
func doRequest(router *gin.Engine, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, w.Code, w.Body.String())
	}
}

/* ─── Flow ───────────────────────────────────────────────────────────── */

func TestFlow_WelcomeToOnboarding(t *testing.T) {
	ts := setupTest(t, nil, "", "")

	w := doRequest(ts.router, "GET", "/api/flow", "")
	expectStatus(t, w, http.StatusOK)
	if v := decode[flow.View](t, w); v.Phase != flow.Welcome || v.Today != "2026-03-10" {
		t.Errorf("view = %+v, want welcome on 2026-03-10", v)
	}

	for _, want := range []flow.Phase{flow.Intro, flow.Onboarding} {
		w := doRequest(ts.router, "POST", "/api/flow/next", "")
		expectStatus(t, w, http.StatusOK)
		if got := decode[phaseResponse](t, w).Phase; got != want {
			t.Errorf("next phase = %s, want %s", got, want)
		}
	}

	w = doRequest(ts.router, "POST", "/api/flow/next", "")
	expectStatus(t, w, http.StatusConflict)
}

func TestFlow_BackFromIntro(t *testing.T) {
	ts := setupTest(t, nil, "", "")
	doRequest(ts.router, "POST", "/api/flow/next", "")

	w := doRequest(ts.router, "POST", "/api/flow/back", "")
	expectStatus(t, w, http.StatusOK)
	if got := decode[phaseResponse](t, w).Phase; got != flow.Welcome {
		t.Errorf("phase = %s, want welcome", got)
	}
}

/* ─── Onboarding ─────────────────────────────────────────────────────── */

func startOnboarding(ts testServer) {
	doRequest(ts.router, "POST", "/api/flow/next", "")
	doRequest(ts.router, "POST", "/api/flow/next", "")
}

func TestOnboarding_AnswerValidation(t *testing.T) {
	ts := setupTest(t, nil, "", "")

	w := doRequest(ts.router, "PUT", "/api/onboarding/answers/gender", `{"value":"female"}`)
	expectStatus(t, w, http.StatusConflict)

	startOnboarding(ts)
	cases := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"unknown question", "/api/onboarding/answers/shoeSize", `{"value":"42"}`, http.StatusNotFound},
		{"unknown option", "/api/onboarding/answers/gender", `{"value":"robot"}`, http.StatusBadRequest},
		{"missing value", "/api/onboarding/answers/gender", `{}`, http.StatusBadRequest},
		{"malformed body", "/api/onboarding/answers/gender", `{"value":`, http.StatusBadRequest},
		{"multi-select as text", "/api/onboarding/answers/habits", `{"value":"eat-late"}`, http.StatusBadRequest},
		{"valid select", "/api/onboarding/answers/gender", `{"value":"female"}`, http.StatusOK},
		{"valid multi-select", "/api/onboarding/answers/habits", `{"value":["eat-late"]}`, http.StatusOK},
		{"numeric as string", "/api/onboarding/answers/height", `{"value":"170"}`, http.StatusOK},
		{"NaN height", "/api/onboarding/answers/height", `{"value":"NaN"}`, http.StatusBadRequest},
		{"infinite weight", "/api/onboarding/answers/currentWeight", `{"value":"-Inf"}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(ts.router, "PUT", tc.path, tc.body)
			expectStatus(t, w, tc.status)
		})
	}

	w = doRequest(ts.router, "GET", "/api/profile", "")
	expectStatus(t, w, http.StatusOK)
	p := decode[profile.Profile](t, w)
	if h, _ := p.Number(profile.FieldHeight); h != 170 {
		t.Errorf("height = %v, want 170 stored as a number", h)
	}
	if _, ok := p.Get(profile.FieldCurrentWeight); ok {
		t.Error("infinite weight was stored")
	}
}

func TestOnboarding_ToggleAndAdvance(t *testing.T) {
	ts := setupTest(t, nil, "", "")
	startOnboarding(ts)

	w := doRequest(ts.router, "POST", "/api/onboarding/advance", "")
	expectStatus(t, w, http.StatusOK)
	if got := decode[advanceResponse](t, w).Step; got != "blocked" {
		t.Errorf("advance unanswered step = %q, want blocked", got)
	}

	w = doRequest(ts.router, "POST", "/api/onboarding/answers/simpleGoals/toggle", `{"value":"health"}`)
	expectStatus(t, w, http.StatusOK)
	if !decode[flow.QuestionView](t, w).CanAdvance {
		t.Error("canAdvance false after selecting a goal")
	}

	w = doRequest(ts.router, "POST", "/api/onboarding/advance", "")
	expectStatus(t, w, http.StatusOK)
	resp := decode[advanceResponse](t, w)
	if resp.Step != "moved" || resp.Onboarding == nil || resp.Onboarding.Position.Index != 1 {
		t.Errorf("advance response = %+v, want moved to question 1", resp)
	}

	w = doRequest(ts.router, "POST", "/api/onboarding/retreat", "")
	expectStatus(t, w, http.StatusOK)
	if r := decode[retreatResponse](t, w); !r.Moved || r.Onboarding.Question.ID != profile.FieldSimpleGoals {
		t.Errorf("retreat response = %+v, want back at simpleGoals", r)
	}

	w = doRequest(ts.router, "POST", "/api/onboarding/answers/gender/toggle", `{"value":"female"}`)
	expectStatus(t, w, http.StatusBadRequest)
}

// TestOnboarding_CompleteGeneratesPlan answers every question through the
// API and checks the plan appears and the generating phase starts.
func TestOnboarding_CompleteGeneratesPlan(t *testing.T) {
	ts := setupTest(t, nil, "", "")
	expectStatus(t, doRequest(ts.router, "GET", "/api/plan", ""), http.StatusNotFound)
	startOnboarding(ts)

	w := doRequest(ts.router, "GET", "/api/onboarding/questions", "")
	expectStatus(t, w, http.StatusOK)
	questions := decode[catalogResponse](t, w).Questions

	numbers := map[string]string{"height": "170", "currentWeight": "70", "targetWeight": "65"}
	var last advanceResponse
	for _, q := range questions {
		var body string
		switch {
		case q.Type == questionnaire.NumericInput:
			body = `{"value":` + numbers[q.ID] + `}`
		case q.Type == questionnaire.MultiSelect:
			body = `{"value":["` + q.Options[0].Value + `"]}`
		case q.ID == profile.FieldGender:
			body = `{"value":"female"}`
		case q.ID == profile.FieldActivityLevel:
			body = `{"value":"moderate"}`
		case q.ID == profile.FieldAge:
			body = `{"value":"25"}`
		default:
			body = `{"value":"` + q.Options[0].Value + `"}`
		}
		expectStatus(t, doRequest(ts.router, "PUT", "/api/onboarding/answers/"+q.ID, body), http.StatusOK)

		w := doRequest(ts.router, "POST", "/api/onboarding/advance", "")
		expectStatus(t, w, http.StatusOK)
		last = decode[advanceResponse](t, w)
	}

	if last.Step != "completed" || last.Phase != flow.Generating {
		t.Fatalf("last advance = %+v, want completed and generating", last)
	}
	w = doRequest(ts.router, "GET", "/api/plan", "")
	expectStatus(t, w, http.StatusOK)
	if p := decode[plan.Plan](t, w); p.DailyCalories != 1846 || p.BMICategory != "normal" {
		t.Errorf("plan calories %d category %q, want 1846 normal", p.DailyCalories, p.BMICategory)
	}
	if _, ok := ts.mem.Dump()[store.KeyPlan]; !ok {
		t.Error("plan not saved")
	}
}

/* ─── Progress ───────────────────────────────────────────────────────── */

func TestProgress_PatchAndRead(t *testing.T) {
	ts := setupTest(t, seedDashboard(t), "", "")

	expectStatus(t, doRequest(ts.router, "PATCH", "/api/progress/today", `{"waterGlasses":3}`), http.StatusOK)
	w := doRequest(ts.router, "PATCH", "/api/progress/today", `{"exerciseMinutes":20,"weight":75}`)
	expectStatus(t, w, http.StatusOK)

	w = doRequest(ts.router, "GET", "/api/progress/2026-03-10", "")
	expectStatus(t, w, http.StatusOK)
	rec := decode[map[string]any](t, w)
	if rec["waterGlasses"] != 3.0 || rec["exerciseMinutes"] != 20.0 || rec["weight"] != 75.0 {
		t.Errorf("record = %v, want both patches merged", rec)
	}

	w = doRequest(ts.router, "GET", "/api/progress", "")
	expectStatus(t, w, http.StatusOK)
	var summary struct {
		Records []map[string]any `json:"records"`
		Totals  struct {
			Days         int `json:"days"`
			WaterGlasses int `json:"waterGlasses"`
		} `json:"totals"`
		WeightProgress float64 `json:"weightProgress"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatal(err)
	}
	if len(summary.Records) != 1 || summary.Totals.Days != 1 || summary.Totals.WaterGlasses != 3 {
		t.Errorf("summary = %+v, want one day with 3 glasses", summary)
	}
	if summary.WeightProgress != 50 {
		t.Errorf("weightProgress = %v, want 50", summary.WeightProgress)
	}
}

func TestProgress_Validation(t *testing.T) {
	ts := setupTest(t, seedDashboard(t), "", "")

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"negative water", "PATCH", "/api/progress/today", `{"waterGlasses":-1}`, http.StatusBadRequest},
		{"empty patch", "PATCH", "/api/progress/today", `{}`, http.StatusBadRequest},
		{"zero weight", "PATCH", "/api/progress/today", `{"weight":0}`, http.StatusBadRequest},
		{"bad date", "GET", "/api/progress/10-03-2026", "", http.StatusBadRequest},
		{"no record", "GET", "/api/progress/2026-03-01", "", http.StatusNotFound},
		{"bad limit", "GET", "/api/progress?limit=abc", "", http.StatusBadRequest},
		{"negative limit", "GET", "/api/progress?limit=-1", "", http.StatusBadRequest},
		{"empty today", "GET", "/api/progress/today", "", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expectStatus(t, doRequest(ts.router, tc.method, tc.path, tc.body), tc.status)
		})
	}
}

func TestProgress_EmptyRecordsIsArray(t *testing.T) {
	ts := setupTest(t, seedDashboard(t), "", "")
	w := doRequest(ts.router, "GET", "/api/progress", "")
	expectStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), `"records":[]`) {
		t.Errorf("body = %s, want an empty records array", w.Body.String())
	}
}

func TestProgress_PatchOutsideDashboard(t *testing.T) {
	ts := setupTest(t, nil, "", "")
	expectStatus(t, doRequest(ts.router, "PATCH", "/api/progress/today", `{"waterGlasses":1}`), http.StatusConflict)
}

func TestReset(t *testing.T) {
	ts := setupTest(t, seedDashboard(t), "", "")

	w := doRequest(ts.router, "POST", "/api/reset", "")
	expectStatus(t, w, http.StatusOK)
	if got := decode[phaseResponse](t, w).Phase; got != flow.Welcome {
		t.Errorf("phase = %s, want welcome", got)
	}
	expectStatus(t, doRequest(ts.router, "GET", "/api/plan", ""), http.StatusNotFound)
	if docs := ts.mem.Dump(); len(docs) != 0 {
		t.Errorf("storage after reset = %v, want empty", docs)
	}
}
