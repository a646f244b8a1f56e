package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"aura/internal/domain"
	"aura/internal/ports"
	"aura/internal/services/investigations"
	"aura/internal/services/tools"
)

func testServer(t *testing.T, perMinute int) *httptest.Server {
	t.Helper()
	cat := tools.DefaultCatalog()
	for i := range cat {
		cat[i].MinDuration = 0
		cat[i].MaxDuration = 200 * time.Millisecond
		cat[i].RatePerMinute = 0
	}
	exec := ports.ToolExecutorFunc(func(ctx context.Context, toolID, target string, _ map[string]any) (domain.ToolResult, error) {
		return domain.ToolResult{Status: domain.ResultSuccess, FindingsCount: 1, ConfidenceScore: 70}, nil
	})
	log := zap.NewNop().Sugar()
	reg := tools.NewRegistry(cat, tools.DefaultMapping())
	hub := investigations.NewHub(log)
	orch := investigations.New(reg, tools.NewLimiters(cat), exec, investigations.NewStore(), hub, nil,
		investigations.Config{Workers: 2, Grace: 50 * time.Millisecond}, log)
	t.Cleanup(orch.Close)

	srv := httptest.NewServer(NewHandler(orch, hub, reg, perMinute, log))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func read(t *testing.T, c *websocket.Conn) map[string]any {
	t.Helper()
	require.NoError(t, c.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, data, err := c.ReadMessage()
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

// readUntil returns every message up to and including the first of type want.
func readUntil(t *testing.T, c *websocket.Conn, want string) []map[string]any {
	t.Helper()
	var out []map[string]any
	for i := 0; i < 50; i++ {
		m := read(t, c)
		out = append(out, m)
		if m["type"] == want {
			return out
		}
	}
	t.Fatalf("no %s message", want)
	return nil
}

func types(msgs []map[string]any) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i], _ = m["type"].(string)
	}
	return out
}

func TestWelcome(t *testing.T) {
	c := dial(t, testServer(t, 60))
	m := read(t, c)
	assert.Equal(t, MsgWelcome, m["type"])
	assert.EqualValues(t, 19, m["available_tools"])
	assert.NotEmpty(t, m["timestamp"])
}

func TestStartInvestigationStreamsEvents(t *testing.T) {
	c := dial(t, testServer(t, 60))
	read(t, c)

	require.NoError(t, c.WriteJSON(Command{Type: CmdStartInvestigation, Target: "alice@example.com", TargetType: "email"}))
	msgs := readUntil(t, c, string(domain.EventInvestigationCompleted))

	got := types(msgs)
	assert.Equal(t, string(domain.EventInvestigationStarted), got[0])
	assert.Equal(t, 2, strings.Count(strings.Join(got, ","), string(domain.EventToolCompleted)))

	last := msgs[len(msgs)-1]
	id, _ := last["investigation_id"].(string)
	require.True(t, strings.HasPrefix(id, "INV-"))
	summary := last["summary"].(map[string]any)
	assert.EqualValues(t, 2, summary["tools_successful"])

	require.NoError(t, c.WriteJSON(Command{Type: CmdStatus, InvestigationID: id}))
	st := readUntil(t, c, MsgInvestigationStatus)
	inv := st[len(st)-1]["investigation"].(map[string]any)
	assert.Equal(t, "completed", inv["status"])
}

func TestUnknownInvestigationAndCommand(t *testing.T) {
	c := dial(t, testServer(t, 60))
	read(t, c)

	require.NoError(t, c.WriteJSON(Command{Type: CmdStopInvestigation, InvestigationID: "INV-missing"}))
	m := read(t, c)
	assert.Equal(t, MsgInvestigationNotFound, m["type"])
	assert.Equal(t, "INV-missing", m["investigation_id"])

	require.NoError(t, c.WriteJSON(Command{Type: "chat"}))
	m = read(t, c)
	assert.Equal(t, MsgError, m["type"])

	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte("{not json")))
	m = read(t, c)
	assert.Equal(t, MsgError, m["type"])

	require.NoError(t, c.WriteJSON(Command{Type: CmdStartInvestigation, Target: ""}))
	m = read(t, c)
	assert.Equal(t, MsgError, m["type"])
	assert.Equal(t, "target", m["field"])
}

func TestExecuteTool(t *testing.T) {
	c := dial(t, testServer(t, 60))
	read(t, c)

	require.NoError(t, c.WriteJSON(Command{Type: CmdExecuteTool, Tool: "whois", Parameters: map[string]any{"target": "example.com"}}))
	msgs := readUntil(t, c, MsgToolExecutionCompleted)
	assert.Equal(t, []string{MsgToolExecutionStarted, MsgToolExecutionCompleted}, types(msgs))
	assert.Equal(t, msgs[0]["execution_id"], msgs[1]["execution_id"])
	res := msgs[1]["result"].(map[string]any)
	assert.Equal(t, "whois", res["tool"])

	require.NoError(t, c.WriteJSON(Command{Type: CmdExecuteTool, Tool: "nope", Target: "x"}))
	msgs = readUntil(t, c, MsgToolExecutionError)
	assert.Equal(t, MsgToolExecutionError, msgs[len(msgs)-1]["type"])
}

func TestCommandRateLimit(t *testing.T) {
	c := dial(t, testServer(t, 6))
	read(t, c)

	limited := false
	for i := 0; i < 5 && !limited; i++ {
		require.NoError(t, c.WriteJSON(Command{Type: CmdStatus, InvestigationID: "INV-x"}))
		m := read(t, c)
		if m["type"] == MsgError && m["error"] == "rate limit exceeded" {
			limited = true
		}
	}
	assert.True(t, limited)
}
