package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"aura/internal/adapters/sqlite"
	"aura/internal/domain"
	"aura/internal/ports"
	"aura/internal/services/correlation"
	"aura/internal/services/investigations"
	"aura/internal/services/tools"
	"aura/internal/workers/correlator"
)

type fixture struct {
	srv  *httptest.Server
	orch *investigations.Orchestrator
}

func newFixture(t *testing.T, exec ports.ToolExecutor) *fixture {
	t.Helper()
	log := zap.NewNop().Sugar()
	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "aura.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cat := tools.DefaultCatalog()
	for i := range cat {
		cat[i].MinDuration = 0
		cat[i].MaxDuration = 300 * time.Millisecond
		cat[i].RatePerMinute = 0
	}
	if exec == nil {
		exec = ports.ToolExecutorFunc(func(ctx context.Context, toolID, target string, _ map[string]any) (domain.ToolResult, error) {
			conf := map[string]int{"holehe": 90, "h8mail": 80}[toolID]
			return domain.ToolResult{Status: domain.ResultSuccess, FindingsCount: 2, ConfidenceScore: conf}, nil
		})
	}
	reg := tools.NewRegistry(cat, tools.DefaultMapping())
	engine := correlation.NewEngine(db, correlation.DefaultWeights(), correlation.DefaultThresholds(), log)
	orch := investigations.New(reg, tools.NewLimiters(cat), exec, investigations.NewStore(), investigations.NewHub(log),
		correlation.NewIngestor(engine, db, log), investigations.Config{Workers: 3, Grace: 50 * time.Millisecond}, log)
	t.Cleanup(orch.Close)

	s := New(orch, reg, engine, db, correlator.EngineProcessor{Engine: engine, Log: log}, db, nil, log)
	srv := httptest.NewServer(s.Routes())
	t.Cleanup(srv.Close)
	return &fixture{srv: srv, orch: orch}
}

func (f *fixture) do(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, f.srv.URL+path, rd)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestHealthz(t *testing.T) {
	f := newFixture(t, nil)
	code, body := f.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}

func TestInvestigateWaitReturnsSummary(t *testing.T) {
	f := newFixture(t, nil)
	code, body := f.do(t, http.MethodPost, "/investigate?wait=true&timeout=5",
		map[string]any{"target": "Alice@Example.com", "target_type": "email"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "completed", body["status"])
	assert.Equal(t, "alice@example.com", body["target"])
	summary := body["summary"].(map[string]any)
	assert.EqualValues(t, 85, summary["overall_confidence"])
	assert.EqualValues(t, 2, summary["tools_successful"])
	assert.EqualValues(t, 2, summary["tools_total"])
}

func TestInvestigateAsyncLifecycle(t *testing.T) {
	release := make(chan struct{})
	exec := ports.ToolExecutorFunc(func(ctx context.Context, toolID, target string, _ map[string]any) (domain.ToolResult, error) {
		select {
		case <-release:
		case <-ctx.Done():
			return domain.ToolResult{}, ctx.Err()
		}
		return domain.ToolResult{Status: domain.ResultSuccess, ConfidenceScore: 50}, nil
	})
	f := newFixture(t, exec)

	code, body := f.do(t, http.MethodPost, "/investigate", map[string]any{"target": "johndoe", "tools": []string{"sherlock"}})
	require.Equal(t, http.StatusAccepted, code)
	id := body["investigation_id"].(string)
	assert.Equal(t, "username", body["target_type"])
	assert.NotEmpty(t, body["estimated_completion"])
	assert.Len(t, body["tools_selected"], 1)

	code, body = f.do(t, http.MethodGet, "/investigations/"+id, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "running", body["status"])

	code, _ = f.do(t, http.MethodGet, "/results/"+id, nil)
	assert.Equal(t, http.StatusConflict, code)

	code, body = f.do(t, http.MethodPost, "/investigations/"+id+"/stop", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "stopped", body["status"])
	close(release)

	code, body = f.do(t, http.MethodGet, "/results/"+id, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "stopped", body["status"])

	code, body = f.do(t, http.MethodGet, "/investigations/INV-unknown", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "not found", body["error"])
}

func TestInvestigateValidation(t *testing.T) {
	f := newFixture(t, nil)
	code, body := f.do(t, http.MethodPost, "/investigate", map[string]any{"target": "", "target_type": "email"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "target", body["field"])

	code, body = f.do(t, http.MethodPost, "/investigate", map[string]any{"target": "a@b.io", "target_type": "email", "tools": []string{"sherlock"}})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "tools", body["field"])

	code, _ = f.do(t, http.MethodPost, "/investigate?wait=maybe", map[string]any{"target": "a@b.io"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestToolsCatalog(t *testing.T) {
	f := newFixture(t, nil)
	code, body := f.do(t, http.MethodGet, "/tools", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 19, body["total_tools"])
	assert.Len(t, body["available"], 19)
	assert.Contains(t, body["categorized"], "network")
	first := body["available"].([]any)[0].(map[string]any)
	assert.Equal(t, "0-0.3s", first["execution_time"])
	assert.EqualValues(t, 0, first["min_duration_ms"])
	assert.EqualValues(t, 300, first["max_duration_ms"])

	code, body = f.do(t, http.MethodGet, "/tools/email", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["total_tools"])
	holehe := body["tools"].([]any)[0].(map[string]any)
	assert.Equal(t, "holehe", holehe["id"])
	assert.Equal(t, "0-0.3s", holehe["execution_time"])

	code, _ = f.do(t, http.MethodGet, "/tools/astrology", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestExecuteEndpoint(t *testing.T) {
	f := newFixture(t, nil)
	code, body := f.do(t, http.MethodPost, "/execute/holehe", map[string]any{"parameters": map[string]any{"target": "a@b.io"}})
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body["execution_id"], "EXEC-")
	res := body["result"].(map[string]any)
	assert.EqualValues(t, 90, res["confidence_score"])

	code, _ = f.do(t, http.MethodPost, "/execute/BAD!", map[string]any{"target": "x"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestCorrelationEndpoints(t *testing.T) {
	f := newFixture(t, nil)
	markers := map[string]string{"email": "Shared@Example.com"}

	code, a := f.do(t, http.MethodPost, "/profiles?correlate=true", map[string]any{"platform": "twitter", "username": "@shadow", "identity_markers": markers})
	require.Equal(t, http.StatusCreated, code)
	require.NotNil(t, a["unified_identity_id"])
	identity := int64(a["unified_identity_id"].(float64))

	code, b := f.do(t, http.MethodPost, "/profiles", map[string]any{"platform": "reddit", "username": "shadow_r", "identity_markers": markers})
	require.Equal(t, http.StatusCreated, code)
	assert.Nil(t, b["unified_identity_id"])
	bID := int64(b["id"].(float64))

	code, body := f.do(t, http.MethodPost, "/profiles/"+itoa(bID)+"/correlate", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, identity, body["unified_identity_id"])

	code, _ = f.do(t, http.MethodPost, "/identities/"+itoa(identity)+"/alerts", map[string]any{"severity": "high", "title": "doxxing"})
	require.Equal(t, http.StatusCreated, code)
	code, _ = f.do(t, http.MethodPost, "/identities/"+itoa(identity)+"/alerts", map[string]any{"severity": "urgent", "title": "x"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = f.do(t, http.MethodGet, "/identities/"+itoa(identity)+"/risk", nil)
	require.Equal(t, http.StatusOK, code)
	// two platforms 0.2, one alert 0.05, high severity 0.3
	assert.InDelta(t, 0.55, body["risk_score"].(float64), 1e-9)

	code, body = f.do(t, http.MethodGet, "/identities?min_risk=0.5&platform=reddit", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["count"])

	code, body = f.do(t, http.MethodGet, "/identities/"+itoa(identity), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["profiles"], 2)

	code, _ = f.do(t, http.MethodGet, "/identities/999", nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = f.do(t, http.MethodGet, "/profiles/abc", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = f.do(t, http.MethodPost, "/comments", map[string]any{"profile_id": bID, "content": "same text"})
	require.Equal(t, http.StatusCreated, code)
	assert.EqualValues(t, identity, body["unified_identity_id"])

	code, body = f.do(t, http.MethodGet, "/networks", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 0, body["count"])
}

func TestMalformedRequestsNameTheField(t *testing.T) {
	f := newFixture(t, nil)
	code, body := f.do(t, http.MethodGet, "/profiles/abc", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "id", body["field"])

	code, body = f.do(t, http.MethodGet, "/identities?limit=many", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "limit", body["field"])

	resp, err := http.Post(f.srv.URL+"/investigate", "application/json", bytes.NewBufferString("{not json"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "body", out["field"])

	code, body = f.do(t, http.MethodPost, "/comments", map[string]any{"profile_id": 1, "content": "x", "toxicity_score": -0.5})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "toxicity_score", body["field"])
}

type downStore struct{}

func (downStore) Ping(context.Context) error { return errors.New("connection refused") }

func TestHealthzReportsUnreachableStore(t *testing.T) {
	s := New(nil, tools.NewDefaultRegistry(), nil, nil, nil, downStore{}, nil, zap.NewNop().Sugar())
	srv := httptest.NewServer(s.Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "unavailable", out["status"])
}

func itoa(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}
