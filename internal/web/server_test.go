package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/verdix/verdix/api"
	"github.com/verdix/verdix/internal/config"
	"github.com/verdix/verdix/internal/deadlines"
	"github.com/verdix/verdix/internal/metrics"
	"github.com/verdix/verdix/internal/models"
	"github.com/verdix/verdix/internal/rubric"
	"github.com/verdix/verdix/internal/store"
)

type testApp struct {
	t       *testing.T
	handler http.Handler
	store   store.Store
	cookies map[string]*http.Cookie
}

func newTestApp(t *testing.T, backend func(store.Schema) store.Store, now time.Time) *testApp {
	t.Helper()
	return newTestAppWithConfig(t, backend, now, func(conf *config.Config) {
		conf.Cache.TracksTTL = 0
	})
}

func newTestAppWithConfig(t *testing.T, backend func(store.Schema) store.Store, now time.Time, configure func(*config.Config)) *testApp {
	t.Helper()
	conf := config.Default()
	conf.Registration.Timezone = "UTC"
	configure(conf)

	rb := rubric.MustLoad("pitch-5")
	schema := store.SchemaFor(conf, rb.Columns())
	s := backend(schema)

	clock := func() time.Time { return now }
	countdown, err := NewCountdown(conf, clock)
	require.NoError(t, err)

	srv, err := newServer(conf, zap.NewNop(), components{
		store:     s,
		rubric:    rb,
		countdown: countdown,
		metrics:   metrics.New(),
		now:       clock,
	})
	require.NoError(t, err)
	t.Cleanup(srv.roster.Stop)

	engine, err := srv.engine()
	require.NoError(t, err)

	return &testApp{t: t, handler: engine, store: s, cookies: make(map[string]*http.Cookie)}
}

func memoryBackend(schema store.Schema) store.Store {
	memory := store.NewMemoryStore(schema)
	for _, track := range []models.TrackRecord{{Name: "Fintech", Venue: "Hall A"}, {Name: "Healthtech"}} {
		_ = memory.Append(context.Background(), "Config", track.Values())
	}
	return memory
}

type brokenStore struct {
	store.Store
}

func (brokenStore) ReadAll(context.Context, string) ([]models.Row, error) {
	return nil, errors.New("googleapi: Error 429: Quota exceeded")
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	for _, cookie := range a.cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	for _, cookie := range w.Result().Cookies() {
		a.cookies[cookie.Name] = cookie
	}
	return w
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (a *testApp) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req)
}

func (a *testApp) rows(table string) []models.Row {
	rows, err := a.store.ReadAll(context.Background(), table)
	require.NoError(a.t, err)
	return rows
}

var beforeDeadline = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func registrationForm() url.Values {
	return url.Values{
		"kind":              {"new"},
		"team_name":         {"Rocket Labs"},
		"track":             {"Fintech"},
		"team_leaders":      {"Alice (CEO), Bob (CTO)"},
		"student_id":        {"12345678"},
		"university":        {"Sunway University"},
		"faculty":           {"School of Science and Technology"},
		"programme":         {"BSc Computer Science"},
		"industries":        {"FinTech", "Agentic AI"},
		"stage":             {"1. Concept & Ideation (Pre-Product)"},
		"value_proposition": {"Payments for everyone"},
		"deck_link":         {"https://example.com/deck"},
	}
}

func TestPing(t *testing.T) {
	app := newTestApp(t, memoryBackend, beforeDeadline)
	w := app.get("/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "pong "))
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestRegistrationPage(t *testing.T) {
	app := newTestApp(t, memoryBackend, beforeDeadline)

	w := app.get("/register")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Startup Registration")
	assert.Contains(t, body, `<option value="Healthtech"`)
	assert.Contains(t, body, `data-unit="days">05</div>`)
	assert.Contains(t, body, `data-remaining="475140"`)
	assert.Contains(t, body, "Agentic AI")
}

func TestClockScriptReloadsOnce(t *testing.T) {
	app := newTestApp(t, memoryBackend, beforeDeadline)

	w := app.get("/static/verdix.js")
	require.Equal(t, http.StatusOK, w.Code)
	script := w.Body.String()
	assert.Contains(t, script, "dataset.remaining")
	assert.Contains(t, script, "sessionStorage")
	assert.NotContains(t, script, "Date.now()")
}

func TestRegistrationMissingFields(t *testing.T) {
	app := newTestApp(t, memoryBackend, beforeDeadline)

	w := app.post("/register", url.Values{"team_name": {"Rocket Labs"}, "track": {"Fintech"}})
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Please fill in the missing fields: Team Leaders, Student ID / IC No")
	assert.Contains(t, body, `value="Rocket Labs"`)
	assert.Empty(t, app.rows("Teams"))
}

func TestRegistrationSuccess(t *testing.T) {
	app := newTestApp(t, memoryBackend, beforeDeadline)

	w := app.post("/register", registrationForm())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Rocket Labs successfully registered.")

	rows := app.rows("Teams")
	require.Len(t, rows, 1)
	assert.Equal(t, "FinTech, Agentic AI", rows[0].Get(models.ColumnIndustry))
	assert.Equal(t, "2026-03-10 12:00:00", rows[0].Get(models.ColumnTimestamp))
}

func TestRegistrationClosed(t *testing.T) {
	app := newTestApp(t, memoryBackend, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC))

	assert.Contains(t, app.get("/register").Body.String(), "Registration is officially closed.")

	w := app.post("/register", registrationForm())
	assert.Contains(t, w.Body.String(), "Registration is officially closed.")
	assert.Empty(t, app.rows("Teams"))
}

func TestStoreFailureIsShownVerbatim(t *testing.T) {
	app := newTestApp(t, func(schema store.Schema) store.Store {
		return brokenStore{store.NewMemoryStore(schema)}
	}, beforeDeadline)

	w := app.get("/register")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Connection Error: ")
	assert.Contains(t, w.Body.String(), "Quota exceeded")
}

func TestJudgeFlow(t *testing.T) {
	app := newTestApp(t, memoryBackend, beforeDeadline)
	require.Equal(t, http.StatusOK, app.post("/register", registrationForm()).Code)

	w := app.get("/judge")
	assert.Contains(t, w.Body.String(), "Enter Judge Name")

	w = app.post("/judge/login", url.Values{"judge_name": {"Judge Dredd"}})
	require.Equal(t, http.StatusFound, w.Code)

	w = app.get("/judge?track=Fintech")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Judge Dredd")
	assert.Contains(t, body, "Venue: <b>Hall A</b>")
	assert.Contains(t, body, "Showing <b>1</b> teams in Fintech")
	assert.Contains(t, body, `id="rocket-labs"`)

	w = app.get("/judge?track=Healthtech")
	assert.Contains(t, w.Body.String(), "Showing <b>0</b> teams in Healthtech")

	form := url.Values{"team": {"Rocket Labs"}, "track": {"Fintech"}, "comment": {"Great demo"}}
	for i, score := range []string{"5", "4", "3", "2", "1", "0", "5"} {
		form.Set(scoreField(i), score)
	}
	w = app.post("/judge/score", form)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/judge?track=Fintech#rocket-labs", w.Header().Get("Location"))

	rows := app.rows("Scores")
	require.Len(t, rows, 1)
	assert.Equal(t, "Judge Dredd", rows[0].Get(models.ColumnJudgeName))
	assert.Equal(t, "5", rows[0].Get("Story Telling"))

	w = app.get("/judge?track=Fintech")
	assert.Contains(t, w.Body.String(), "Score saved for Rocket Labs!")

	form.Set(scoreField(0), "9")
	app.post("/judge/score", form)
	assert.Contains(t, app.get("/judge?track=Fintech").Body.String(), "outside 0-5")
	assert.Len(t, app.rows("Scores"), 1)

	app.get("/judge/logout")
	assert.Contains(t, app.get("/judge").Body.String(), "Enter Judge Name")
}

func TestScoreRequiresJudgeSession(t *testing.T) {
	app := newTestApp(t, memoryBackend, beforeDeadline)

	w := app.post("/judge/score", url.Values{"team": {"Rocket Labs"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Empty(t, app.rows("Scores"))
}

func TestJudgePortalWithoutTracks(t *testing.T) {
	app := newTestApp(t, func(schema store.Schema) store.Store {
		return store.NewMemoryStore(schema)
	}, beforeDeadline)

	app.post("/judge/login", url.Values{"judge_name": {"Judge"}})
	assert.Contains(t, app.get("/judge").Body.String(), "No tracks configured in &#39;Config&#39; tab.")
}

func TestJudgePortalRereadsEmptyConfig(t *testing.T) {
	app := newTestAppWithConfig(t, func(schema store.Schema) store.Store {
		return store.NewMemoryStore(schema)
	}, beforeDeadline, func(conf *config.Config) {
		conf.Cache.TracksTTL = time.Hour
	})

	app.post("/judge/login", url.Values{"judge_name": {"Judge"}})
	assert.Contains(t, app.get("/judge").Body.String(), "No tracks configured")

	track := models.TrackRecord{Name: "Fintech", Venue: "Hall A"}
	require.NoError(t, app.store.Append(context.Background(), "Config", track.Values()))

	body := app.get("/judge").Body.String()
	assert.NotContains(t, body, "No tracks configured")
	assert.Contains(t, body, "Venue: <b>Hall A</b>")
}

func TestLeaderboardFlow(t *testing.T) {
	app := newTestApp(t, memoryBackend, beforeDeadline)

	assert.Contains(t, app.get("/leaderboard").Body.String(), "Admin Password")

	w := app.post("/leaderboard/login", url.Values{"passphrase": {"wrong"}})
	assert.Contains(t, w.Body.String(), "Incorrect password")

	w = app.post("/leaderboard/login", url.Values{"passphrase": {config.DefaultLeaderboardPassphrase}})
	require.Equal(t, http.StatusFound, w.Code)

	assert.Contains(t, app.get("/leaderboard").Body.String(), "Waiting for the first scores to come in...")

	for _, record := range []models.ScoreRecord{
		{JudgeName: "A", TeamName: "Rocket Labs", Track: "Fintech", Scores: []int{5, 5, 5, 5, 5, 5, 5}},
		{JudgeName: "B", TeamName: "Rocket Labs", Track: "Fintech", Scores: []int{3, 3, 3, 3, 3, 3, 3}},
		{JudgeName: "A", TeamName: "GreenLeaf", Track: "Healthtech", Scores: []int{1, 1, 1, 1, 1, 1, 1}},
	} {
		require.NoError(t, app.store.Append(context.Background(), "Scores", record.Values()))
	}

	body := app.get("/leaderboard").Body.String()
	assert.Contains(t, body, "28.00 pts")
	assert.Contains(t, body, `<div class="value">Rocket Labs</div>`)
	assert.Contains(t, body, `<div class="value">2</div>`)

	body = app.get("/leaderboard?track=Healthtech").Body.String()
	assert.Contains(t, body, `<div class="value">GreenLeaf</div>`)

	app.get("/leaderboard/logout")
	assert.Contains(t, app.get("/leaderboard").Body.String(), "Admin Password")
}

func TestApi(t *testing.T) {
	app := newTestApp(t, memoryBackend, beforeDeadline)
	require.Equal(t, http.StatusOK, app.post("/register", registrationForm()).Code)

	w := app.get("/api/leaderboard")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil)
	req.Header.Set(tokenHeader, config.DefaultLeaderboardPassphrase)
	w = app.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	leaderboard := api.LeaderboardResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &leaderboard))
	assert.True(t, leaderboard.Ok)
	assert.True(t, leaderboard.Empty)

	teams := api.TeamsResponse{}
	w = app.get("/api/teams?track=Fintech")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &teams))
	require.Len(t, teams.Teams, 1)
	assert.Equal(t, "Rocket Labs", teams.Teams[0].Name)
	assert.Equal(t, []string{"FinTech", "Agentic AI"}, teams.Teams[0].Industries)

	countdown := api.CountdownResponse{}
	w = app.get("/api/countdown")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &countdown))
	assert.Equal(t, deadlines.Remaining{Days: 5, Hours: 11, Minutes: 59}, countdown.Remaining)
	assert.Equal(t, "2026-03-15 23:59:00", countdown.Deadline)
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(t, memoryBackend, beforeDeadline)
	app.post("/register", url.Values{})

	w := app.get("/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `verdix_validation_failures_total{form="registration"} 1`)
}
