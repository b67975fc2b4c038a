package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"leadscout-engine/internal/archive"
	"leadscout-engine/internal/classify"
	"leadscout-engine/internal/config"
	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/events"
	"leadscout-engine/internal/poll"
	"leadscout-engine/internal/search"
	"leadscout-engine/internal/store"
)

type testAPI struct {
	handler http.Handler
	store   *store.LeadStore
	deps    Deps
	dataDir string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	cfg := config.Default()
	cfg.App.DataDir = t.TempDir()
	cfg.Sources.Sample.Seed = 7

	cfgVal := &atomic.Value{}
	cfgVal.Store(cfg)

	st := store.New(nil)
	hub := events.NewHub()
	userCfg := filepath.Join(cfg.App.DataDir, "leadscout.yml")

	d := Deps{
		Store:       st,
		Hub:         hub,
		Poller:      poll.NewPoller(cfgVal, st, hub, zap.NewNop(), nil),
		Log:         zap.NewNop(),
		CfgVal:      cfgVal,
		UserCfgPath: userCfg,
		LoadCfg: func() (config.Config, error) {
			return config.Load(userCfg)
		},
		NewOrchestrator: func(cfg config.Config) (*search.Orchestrator, error) {
			src, ok := poll.BuildSearchSource(cfg, zap.NewNop())
			if !ok {
				return nil, fmt.Errorf("%w: no result source enabled", domain.ErrSourceUnavailable)
			}
			return search.New(src, st, classify.Tagger{Extra: cfg.Tagging.RoleRules}, zap.NewNop()), nil
		},
	}

	return &testAPI{handler: NewRouter(d), store: st, deps: d, dataDir: cfg.App.DataDir}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decodeResp(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func errCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var e APIError
	decodeResp(t, rec, &e)
	return e.Error.Code
}

func TestHealth(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		OK   bool   `json:"ok"`
		Time string `json:"time"`
	}
	decodeResp(t, rec, &resp)
	assert.True(t, resp.OK)
	_, err := time.Parse(time.RFC3339, resp.Time)
	assert.NoError(t, err)
}

func TestIndexListsEndpoints(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status    string            `json:"status"`
		Endpoints map[string]string `json:"endpoints"`
	}
	decodeResp(t, rec, &resp)
	assert.Equal(t, "success", resp.Status)
	assert.Contains(t, resp.Endpoints, "POST /api/search/people")
}

func TestRequestIDRoundTrip(t *testing.T) {
	a := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))

	rec = a.do(t, http.MethodGet, "/health", nil)
	assert.Len(t, rec.Header().Get("X-Request-ID"), 32)
}

func TestSearchPeople(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodPost, "/api/search/people",
		map[string]any{"keywords": "software", "limit": 3})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count   int              `json:"count"`
		Results []*domain.Person `json:"results"`
	}
	decodeResp(t, rec, &resp)
	assert.Equal(t, 3, resp.Count)
	require.Len(t, resp.Results, 3)
	for _, p := range resp.Results {
		assert.Empty(t, p.Tags)
	}
	assert.Len(t, a.store.All(), 3)
}

func TestSearchRequiresKeywords(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodPost, "/api/search/people", map[string]any{"limit": 3})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_argument", errCode(t, rec))

	var e APIError
	decodeResp(t, rec, &e)
	assert.NotEmpty(t, e.Error.RequestID)
}

func TestSearchRejectsBadJSON(t *testing.T) {
	a := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/search/people",
		bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_json", errCode(t, rec))
}

func TestSearchNoSourceConfigured(t *testing.T) {
	a := newTestAPI(t)

	cfg := a.deps.CfgVal.Load().(config.Config)
	cfg.Sources.Sample.Enabled = false
	a.deps.CfgVal.Store(cfg)

	rec := a.do(t, http.MethodPost, "/api/search/people",
		map[string]any{"keywords": "software"})
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "source_unavailable", errCode(t, rec))
}

func TestSearchCombinedAutoTagsByDefault(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodPost, "/api/search/combined",
		map[string]any{"keywords": "software", "limit": 2})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count     int               `json:"count"`
		People    []*domain.Person  `json:"people"`
		Companies []*domain.Company `json:"companies"`
	}
	decodeResp(t, rec, &resp)
	assert.Equal(t, 4, resp.Count)
	require.Len(t, resp.People, 2)
	require.Len(t, resp.Companies, 2)
	for _, p := range resp.People {
		assert.Contains(t, p.Tags, "software_professional")
	}
	for _, c := range resp.Companies {
		assert.NotEmpty(t, c.Category)
	}
}

func TestSearchCombinedAutoTagOptOut(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodPost, "/api/search/combined",
		map[string]any{"keywords": "software", "limit": 2, "auto_tag": false})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		People []*domain.Person `json:"people"`
	}
	decodeResp(t, rec, &resp)
	require.Len(t, resp.People, 2)
	for _, p := range resp.People {
		assert.Empty(t, p.Tags)
	}
}

func TestSearchByName(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodPost, "/api/search/name", map[string]any{"name": "Jordan"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Query   string `json:"query"`
		Type    string `json:"type"`
		Results struct {
			People    []*domain.Person  `json:"people"`
			Companies []*domain.Company `json:"companies"`
		} `json:"results"`
	}
	decodeResp(t, rec, &resp)
	assert.Equal(t, "Jordan", resp.Query)
	assert.Equal(t, "auto", resp.Type)
	assert.Len(t, resp.Results.People, 5)
	assert.Len(t, resp.Results.Companies, 5)
}

func TestSearchByNameValidation(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodPost, "/api/search/name", map[string]any{"name": "  "})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(t, http.MethodPost, "/api/search/name",
		map[string]any{"name": "Jordan", "type": "robot"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_argument", errCode(t, rec))
}

// seedPeople runs a people search and returns the stored leads.
func seedPeople(t *testing.T, a *testAPI, n int) []*domain.Person {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/api/search/people",
		map[string]any{"keywords": "software", "limit": n})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Results []*domain.Person `json:"results"`
	}
	decodeResp(t, rec, &resp)
	require.Len(t, resp.Results, n)
	return resp.Results
}

func TestTagLead(t *testing.T) {
	a := newTestAPI(t)
	people := seedPeople(t, a, 2)

	rec := a.do(t, http.MethodPost, "/api/tag",
		map[string]any{"id": people[0].ID, "tag": "warm"})
	require.Equal(t, http.StatusOK, rec.Code)

	var tagged domain.Person
	decodeResp(t, rec, &tagged)
	assert.Contains(t, tagged.Tags, "warm")

	rec = a.do(t, http.MethodGet, "/api/leads/tags/warm", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var byTag struct {
		Tag   string `json:"tag"`
		Count int    `json:"count"`
	}
	decodeResp(t, rec, &byTag)
	assert.Equal(t, "warm", byTag.Tag)
	assert.Equal(t, 1, byTag.Count)
}

func TestTagUnknownLead(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodPost, "/api/tag",
		map[string]any{"id": "ghost", "tag": "warm"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errCode(t, rec))
}

func TestTagPublishesEvent(t *testing.T) {
	a := newTestAPI(t)
	people := seedPeople(t, a, 1)

	ch := a.deps.Hub.Subscribe()
	defer a.deps.Hub.Unsubscribe(ch)

	rec := a.do(t, http.MethodPost, "/api/tag",
		map[string]any{"id": people[0].ID, "tag": "warm"})
	require.Equal(t, http.StatusOK, rec.Code)

	select {
	case msg := <-ch:
		var ev events.Event
		require.NoError(t, json.Unmarshal([]byte(msg), &ev))
		assert.Equal(t, events.TypeLeadTagged, ev.Type)
		assert.NotEmpty(t, ev.RequestID)
	case <-time.After(time.Second):
		t.Fatal("no event published")
	}
}

func TestLeadsListAndGet(t *testing.T) {
	a := newTestAPI(t)
	people := seedPeople(t, a, 3)

	rec := a.do(t, http.MethodGet, "/api/leads", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Count int `json:"count"`
	}
	decodeResp(t, rec, &list)
	assert.Equal(t, 3, list.Count)

	rec = a.do(t, http.MethodGet, "/api/leads/"+people[1].ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.Person
	decodeResp(t, rec, &got)
	assert.Equal(t, people[1].ID, got.ID)

	rec = a.do(t, http.MethodGet, "/api/leads/ghost", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLeadsListFilteredByTags(t *testing.T) {
	a := newTestAPI(t)
	people := seedPeople(t, a, 3)

	rec := a.do(t, http.MethodPost, "/api/tag",
		map[string]any{"id": people[1].ID, "tag": "warm"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(t, http.MethodGet, "/api/leads?tags=warm,ghost", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Count int              `json:"count"`
		Leads []*domain.Person `json:"leads"`
	}
	decodeResp(t, rec, &list)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, people[1].ID, list.Leads[0].ID)

	rec = a.do(t, http.MethodGet, "/api/leads?tags=ghost", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeResp(t, rec, &list)
	assert.Equal(t, 0, list.Count)
}

func TestLeadsByCategory(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodPost, "/api/search/companies",
		map[string]any{"keywords": "software", "limit": 2})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Results []*domain.Company `json:"results"`
	}
	decodeResp(t, rec, &resp)
	require.NotEmpty(t, resp.Results)

	rec = a.do(t, http.MethodGet, "/api/leads/categories/"+resp.Results[0].Category, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var byCat struct {
		Count int `json:"count"`
	}
	decodeResp(t, rec, &byCat)
	assert.GreaterOrEqual(t, byCat.Count, 1)
}

func TestReport(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodPost, "/api/search/combined",
		map[string]any{"keywords": "software", "limit": 2})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(t, http.MethodGet, "/api/report", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		TotalLeads   int               `json:"total_leads"`
		PeopleCount  int               `json:"people_count"`
		CompanyCount int               `json:"company_count"`
		Tags         map[string]int    `json:"tags"`
		People       []*domain.Person  `json:"people"`
		Companies    []*domain.Company `json:"companies"`
	}
	decodeResp(t, rec, &resp)
	assert.Equal(t, 4, resp.TotalLeads)
	assert.Equal(t, 2, resp.PeopleCount)
	assert.Equal(t, 2, resp.CompanyCount)
	assert.Len(t, resp.People, 2)
	assert.Len(t, resp.Companies, 2)
	assert.Contains(t, resp.Tags, "software_professional")
}

func TestReportExport(t *testing.T) {
	a := newTestAPI(t)
	seedPeople(t, a, 2)

	rec := a.do(t, http.MethodPost, "/api/report/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		OK   bool   `json:"ok"`
		Path string `json:"path"`
	}
	decodeResp(t, rec, &resp)
	assert.True(t, resp.OK)
	assert.Equal(t, filepath.Join(a.dataDir, "leads_report.txt"), resp.Path)

	b, err := os.ReadFile(resp.Path)
	require.NoError(t, err)
	assert.NotEmpty(t, b)
}

func TestSaveAndLoad(t *testing.T) {
	a := newTestAPI(t)
	seedPeople(t, a, 2)

	rec := a.do(t, http.MethodPost, "/api/save", map[string]any{"filename": "out.json"})
	require.Equal(t, http.StatusOK, rec.Code)
	var saved struct {
		Saved int    `json:"saved"`
		Path  string `json:"path"`
	}
	decodeResp(t, rec, &saved)
	assert.Equal(t, 2, saved.Saved)
	assert.Equal(t, filepath.Join(a.dataDir, "out.json"), saved.Path)
	_, err := os.Stat(saved.Path)
	require.NoError(t, err)

	rec = a.do(t, http.MethodPost, "/api/load", map[string]any{"filename": "out.json"})
	require.Equal(t, http.StatusOK, rec.Code)
	var loaded struct {
		Loaded int `json:"loaded"`
	}
	decodeResp(t, rec, &loaded)
	assert.Equal(t, 2, loaded.Loaded)
}

func TestSaveTagSubset(t *testing.T) {
	a := newTestAPI(t)
	people := seedPeople(t, a, 3)

	rec := a.do(t, http.MethodPost, "/api/tag",
		map[string]any{"id": people[0].ID, "tag": "warm"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(t, http.MethodPost, "/api/save",
		map[string]any{"filename": "warm.json", "tag": "warm"})
	require.Equal(t, http.StatusOK, rec.Code)
	var saved struct {
		Saved int `json:"saved"`
	}
	decodeResp(t, rec, &saved)
	assert.Equal(t, 1, saved.Saved)
}

func TestSaveEmptyCSV(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodPost, "/api/save",
		map[string]any{"filename": "empty.csv", "format": "csv"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "empty_collection", errCode(t, rec))
}

func TestLoadMissingFile(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodPost, "/api/load", map[string]any{"filename": "nope.json"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errCode(t, rec))
}

func TestLoadMalformedFile(t *testing.T) {
	a := newTestAPI(t)

	path := filepath.Join(a.dataDir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	rec := a.do(t, http.MethodPost, "/api/load", map[string]any{"filename": "bad.json"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "parse_error", errCode(t, rec))
}

func TestLoadRequiresFilename(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodPost, "/api/load", map[string]any{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_argument", errCode(t, rec))
}

func TestPollStatusAndRun(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodGet, "/api/poll/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var st poll.Status
	decodeResp(t, rec, &st)
	assert.False(t, st.Running)
	assert.Empty(t, st.LastRunAt)

	rec = a.do(t, http.MethodPost, "/api/poll/run", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var run struct {
		OK bool `json:"ok"`
	}
	decodeResp(t, rec, &run)
	assert.True(t, run.OK)

	require.Eventually(t, func() bool {
		rec := a.do(t, http.MethodGet, "/api/poll/status", nil)
		var st poll.Status
		decodeResp(t, rec, &st)
		return !st.Running && st.LastRunAt != ""
	}, 2*time.Second, 10*time.Millisecond)
}

func TestConfigGetPutRoundTrip(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodGet, "/config", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cfg config.Config
	decodeResp(t, rec, &cfg)
	assert.Equal(t, config.DefaultPort, cfg.App.Port)

	cfg.App.Port = 39000
	rec = a.do(t, http.MethodPut, "/config", cfg)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	_, err := os.Stat(a.deps.UserCfgPath)
	require.NoError(t, err)

	live := a.deps.CfgVal.Load().(config.Config)
	assert.Equal(t, 39000, live.App.Port)

	rec = a.do(t, http.MethodGet, "/config", nil)
	decodeResp(t, rec, &cfg)
	assert.Equal(t, 39000, cfg.App.Port)
}

func TestConfigPutRejectsUnknownFields(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodPut, "/config", map[string]any{"turbo": true})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_json", errCode(t, rec))
}

func TestConfigPutRejectsInvalidValues(t *testing.T) {
	a := newTestAPI(t)

	cfg := config.Default()
	cfg.App.Port = -5
	rec := a.do(t, http.MethodPut, "/config", cfg)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var vr config.Validation
	decodeResp(t, rec, &vr)
	assert.NotEmpty(t, vr.Errors)
	assert.Contains(t, vr.Errors, "app.port must be 1..65535")
}

func TestConfigValidateReportsWarnings(t *testing.T) {
	a := newTestAPI(t)

	cfg := a.deps.CfgVal.Load().(config.Config)
	cfg.Polling.IntervalSeconds = 5
	a.deps.CfgVal.Store(cfg)

	rec := a.do(t, http.MethodGet, "/config/validate", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var vr config.Validation
	decodeResp(t, rec, &vr)
	assert.Empty(t, vr.Errors)
	assert.NotEmpty(t, vr.Warnings)
}

func TestConfigPath(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodGet, "/config/path", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Path string `json:"path"`
	}
	decodeResp(t, rec, &resp)
	assert.Equal(t, a.deps.UserCfgPath, resp.Path)
}

func TestArchiveDisabled(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodGet, "/api/archive", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "archive_disabled", errCode(t, rec))

	rec = a.do(t, http.MethodGet, "/api/archive/stats", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestArchiveRecentAndStats(t *testing.T) {
	a := newTestAPI(t)

	db, err := archive.Open(filepath.Join(a.dataDir, "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, archive.Migrate(db.Pool))

	a.deps.Archive = db
	a.handler = NewRouter(a.deps)

	p := &domain.Person{ID: "p-1", Name: "Dana Reyes", Headline: "CTO at Quarry"}
	added, err := archive.InsertLeadIgnore(db.Pool, p, "sample")
	require.NoError(t, err)
	require.True(t, added)

	rec := a.do(t, http.MethodGet, "/api/archive?limit=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var recent struct {
		Count int           `json:"count"`
		Rows  []archive.Row `json:"rows"`
	}
	decodeResp(t, rec, &recent)
	assert.Equal(t, 1, recent.Count)
	require.Len(t, recent.Rows, 1)
	assert.Equal(t, "p-1", recent.Rows[0].LeadID)

	rec = a.do(t, http.MethodGet, "/api/archive/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats struct {
		Total  int            `json:"total"`
		ByKind map[string]int `json:"by_kind"`
	}
	decodeResp(t, rec, &stats)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.ByKind["person"])
}

func TestTagRewritesArchivedPayload(t *testing.T) {
	a := newTestAPI(t)

	db, err := archive.Open(filepath.Join(a.dataDir, "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, archive.Migrate(db.Pool))

	a.deps.Archive = db
	a.handler = NewRouter(a.deps)

	people := seedPeople(t, a, 1)
	lead, err := a.store.Find(people[0].ID)
	require.NoError(t, err)
	added, err := archive.InsertLeadIgnore(db.Pool, lead, "sample")
	require.NoError(t, err)
	require.True(t, added)

	rec := a.do(t, http.MethodPost, "/api/tag",
		map[string]any{"id": people[0].ID, "tag": "warm"})
	require.Equal(t, http.StatusOK, rec.Code)

	rows, err := archive.ListRecent(context.Background(), db.Pool, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	var archived domain.Person
	require.NoError(t, json.Unmarshal(rows[0].Payload, &archived))
	assert.Contains(t, archived.Tags, "warm")
}

func TestServeSSE(t *testing.T) {
	hub := events.NewHub()
	h := EventsHandler{Hub: hub}

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/events", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		h.ServeSSE(rec, req)
		close(done)
	}()

	// Give the handler a moment to subscribe before publishing.
	time.Sleep(50 * time.Millisecond)
	hub.Publish(events.MakeEvent("", events.TypeLeadCreated, 1,
		map[string]any{"id": "p-1"}))
	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	body := rec.Body.String()
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Contains(t, body, `"type":"ping"`)
	assert.Contains(t, body, `"type":"lead_created"`)
}

func TestCorsPreflight(t *testing.T) {
	a := newTestAPI(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/leads", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
