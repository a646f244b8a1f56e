package investigations

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"aura/internal/domain"
	"aura/internal/ports"
	"aura/internal/services/tools"
)

type recordingIngestor struct {
	mu   sync.Mutex
	invs []domain.Investigation
}

func (r *recordingIngestor) Ingest(_ context.Context, inv domain.Investigation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invs = append(r.invs, inv)
	return nil
}

func (r *recordingIngestor) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.invs)
}

func fastCatalog() []domain.Tool {
	cat := tools.DefaultCatalog()
	for i := range cat {
		cat[i].MinDuration = 0
		cat[i].MaxDuration = 200 * time.Millisecond
		cat[i].RatePerMinute = 0
	}
	return cat
}

func newTestOrchestrator(t *testing.T, exec ports.ToolExecutor, ingest ports.FindingsIngestor) (*Orchestrator, *Hub) {
	t.Helper()
	cat := fastCatalog()
	hub := NewHub(zap.NewNop().Sugar())
	o := New(tools.NewRegistry(cat, tools.DefaultMapping()), tools.NewLimiters(cat), exec, NewStore(), hub, ingest,
		Config{Workers: 3, Grace: 50 * time.Millisecond}, zap.NewNop().Sugar())
	t.Cleanup(o.Close)
	return o, hub
}

func resultsByTool(byTool map[string]domain.ToolResult) ports.ToolExecutor {
	return ports.ToolExecutorFunc(func(ctx context.Context, toolID, target string, params map[string]any) (domain.ToolResult, error) {
		res, ok := byTool[toolID]
		if !ok {
			return domain.ToolResult{}, errors.New("unexpected tool " + toolID)
		}
		return res, nil
	})
}

// collect reads events until investigation_completed arrives or the timeout elapses.
func collect(t *testing.T, sub ports.Subscription, timeout time.Duration) []domain.Event {
	t.Helper()
	var out []domain.Event
	deadline := time.After(timeout)
	for {
		select {
		case ev := <-sub.Events():
			out = append(out, ev)
			if ev.Type == domain.EventInvestigationCompleted {
				return out
			}
		case <-deadline:
			return out
		}
	}
}

func TestEmailInvestigationSummary(t *testing.T) {
	ingest := &recordingIngestor{}
	o, hub := newTestOrchestrator(t, resultsByTool(map[string]domain.ToolResult{
		"holehe": {Status: domain.ResultSuccess, FindingsCount: 3, ConfidenceScore: 90},
		"h8mail": {Status: domain.ResultSuccess, FindingsCount: 2, ConfidenceScore: 80},
	}), ingest)
	sub := hub.Subscribe(32)
	defer sub.Close()

	ctx := context.Background()
	started, err := o.Start(ctx, ports.StartRequest{Target: "John@Example.com", TargetType: "email", Observer: sub})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRunning, started.Status)
	assert.Equal(t, "john@example.com", started.Target)
	require.Len(t, started.ToolsSelected, 2)
	assert.Equal(t, "holehe", started.ToolsSelected[0].ID)
	assert.True(t, started.EstimatedCompletion.After(started.CreatedAt))

	events := collect(t, sub, 2*time.Second)
	require.NoError(t, o.Wait(ctx, started.ID))

	require.NotEmpty(t, events)
	assert.Equal(t, domain.EventInvestigationStarted, events[0].Type)
	last := events[len(events)-1]
	require.Equal(t, domain.EventInvestigationCompleted, last.Type)
	require.NotNil(t, last.Summary)
	assert.Equal(t, 85.0, last.Summary.OverallConfidence)
	assert.Equal(t, 2, last.Summary.ToolsSuccessful)
	assert.Equal(t, 2, last.Summary.ToolsTotal)
	assert.Equal(t, 5, last.Summary.TotalFindings)
	assert.Equal(t, 2, last.Summary.HighConfidence)
	assert.Len(t, last.Results, 2)

	inv, err := o.Results(ctx, started.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, inv.Status)
	assert.Equal(t, 100.0, inv.Progress)
	assert.Equal(t, 1, ingest.count())
}

func TestEventOrderingAndProgress(t *testing.T) {
	o, hub := newTestOrchestrator(t, resultsByTool(map[string]domain.ToolResult{
		"shodan":          {FindingsCount: 1, ConfidenceScore: 70},
		"ip_intelligence": {FindingsCount: 1, ConfidenceScore: 60},
		"port_scanner":    {FindingsCount: 4, ConfidenceScore: 40},
	}), nil)
	sub := hub.Subscribe(64)
	defer sub.Close()

	started, err := o.Start(context.Background(), ports.StartRequest{Target: "8.8.8.8", Observer: sub})
	require.NoError(t, err)
	assert.Equal(t, domain.TargetIP, started.TargetType)

	events := collect(t, sub, 2*time.Second)
	startedTools := map[string]bool{}
	progress := 0.0
	for _, ev := range events {
		assert.GreaterOrEqual(t, ev.Progress, progress, "progress must not decrease")
		assert.LessOrEqual(t, ev.Progress, 100.0)
		progress = ev.Progress
		switch ev.Type {
		case domain.EventToolStarted:
			startedTools[ev.Tool] = true
		case domain.EventToolCompleted, domain.EventToolError:
			assert.True(t, startedTools[ev.Tool], "terminal event before tool_started for %s", ev.Tool)
		}
	}
	assert.Equal(t, domain.EventInvestigationCompleted, events[len(events)-1].Type)
	assert.Len(t, startedTools, 3)
}

func TestFailingToolDoesNotAbortSiblings(t *testing.T) {
	exec := ports.ToolExecutorFunc(func(ctx context.Context, toolID, target string, params map[string]any) (domain.ToolResult, error) {
		if toolID == "port_scanner" {
			return domain.ToolResult{}, errors.New("connection refused")
		}
		return domain.ToolResult{FindingsCount: 1, ConfidenceScore: 50}, nil
	})
	o, hub := newTestOrchestrator(t, exec, nil)
	sub := hub.Subscribe(64)
	defer sub.Close()

	started, err := o.Start(context.Background(), ports.StartRequest{Target: "10.0.0.1", TargetType: "ip", Observer: sub})
	require.NoError(t, err)
	events := collect(t, sub, 2*time.Second)
	require.NoError(t, o.Wait(context.Background(), started.ID))

	var toolErrors int
	for _, ev := range events {
		if ev.Type == domain.EventToolError {
			toolErrors++
			assert.Equal(t, "port_scanner", ev.Tool)
			assert.Contains(t, ev.Error, "connection refused")
		}
	}
	assert.Equal(t, 1, toolErrors)

	inv, err := o.Results(context.Background(), started.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, inv.Status)
	assert.Equal(t, 2, inv.Summary.ToolsSuccessful)
	assert.Equal(t, 1, inv.Summary.ToolsFailed)
	assert.Equal(t, 3, inv.Summary.ToolsTotal)
}

func TestErrorResultCountsAsFailure(t *testing.T) {
	o, _ := newTestOrchestrator(t, resultsByTool(map[string]domain.ToolResult{
		"exifread": {Status: domain.ResultError, Error: "unsupported format"},
	}), nil)
	started, err := o.Start(context.Background(), ports.StartRequest{Target: "https://example.com/a.png"})
	require.NoError(t, err)
	require.NoError(t, o.Wait(context.Background(), started.ID))

	inv, err := o.Results(context.Background(), started.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, inv.Status)
	assert.Equal(t, 0, inv.Summary.ToolsSuccessful)
	assert.Equal(t, 0.0, inv.Summary.OverallConfidence)
	assert.Equal(t, "unsupported format", inv.Runs[0].Error)
}

func TestTimeoutFailsTool(t *testing.T) {
	exec := ports.ToolExecutorFunc(func(ctx context.Context, toolID, target string, params map[string]any) (domain.ToolResult, error) {
		time.Sleep(2 * time.Second) // ignores ctx
		return domain.ToolResult{ConfidenceScore: 99}, nil
	})
	o, _ := newTestOrchestrator(t, exec, nil)
	started, err := o.Start(context.Background(), ports.StartRequest{Target: "cryptic", TargetType: "username", Tools: []string{"sherlock"}})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, o.Wait(ctx, started.ID))

	inv, err := o.Results(ctx, started.ID)
	require.NoError(t, err)
	require.Len(t, inv.Runs, 1)
	assert.Equal(t, domain.RunFailed, inv.Runs[0].Status)
	assert.Contains(t, inv.Runs[0].Error, "timed out")
}

func TestStopHaltsEvents(t *testing.T) {
	release := make(chan struct{})
	exec := ports.ToolExecutorFunc(func(ctx context.Context, toolID, target string, params map[string]any) (domain.ToolResult, error) {
		select {
		case <-ctx.Done():
			return domain.ToolResult{}, ctx.Err()
		case <-release:
			return domain.ToolResult{ConfidenceScore: 10}, nil
		}
	})
	o, hub := newTestOrchestrator(t, exec, nil)
	sub := hub.Subscribe(64)
	defer sub.Close()

	ctx := context.Background()
	started, err := o.Start(ctx, ports.StartRequest{Target: "ghost", TargetType: "username", Observer: sub})
	require.NoError(t, err)

	// wait until at least one tool is running
	for ev := range sub.Events() {
		if ev.Type == domain.EventToolStarted {
			break
		}
	}

	status, err := o.Stop(ctx, started.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusStopped, status.Status)
	close(release)

	select {
	case ev := <-sub.Events():
		if ev.Type != domain.EventToolStarted {
			t.Fatalf("got event %s after stop", ev.Type)
		}
	case <-time.After(300 * time.Millisecond):
	}
	select {
	case ev := <-sub.Events():
		t.Fatalf("got event %s after stop", ev.Type)
	case <-time.After(300 * time.Millisecond):
	}

	got, err := o.Status(ctx, started.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusStopped, got.Status)
	require.NoError(t, o.Wait(ctx, started.ID))

	again, err := o.Stop(ctx, started.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusStopped, again.Status)
}

func TestCloseCancelsQueuedRuns(t *testing.T) {
	running := make(chan struct{}, 1)
	exec := ports.ToolExecutorFunc(func(ctx context.Context, toolID, target string, params map[string]any) (domain.ToolResult, error) {
		running <- struct{}{}
		<-ctx.Done()
		return domain.ToolResult{}, ctx.Err()
	})
	cat := fastCatalog()
	for i := range cat {
		cat[i].MaxDuration = 10 * time.Second
	}
	ingest := &recordingIngestor{}
	o := New(tools.NewRegistry(cat, tools.DefaultMapping()), tools.NewLimiters(cat), exec, NewStore(), NewHub(zap.NewNop().Sugar()), ingest,
		Config{Workers: 1, Grace: 50 * time.Millisecond}, zap.NewNop().Sugar())

	ctx := context.Background()
	started, err := o.Start(ctx, ports.StartRequest{Target: "8.8.8.8", TargetType: "ip"})
	require.NoError(t, err)
	require.Len(t, started.ToolsSelected, 3)
	<-running

	o.Close()
	wctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	require.NoError(t, o.Wait(wctx, started.ID))

	inv, err := o.Results(ctx, started.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusStopped, inv.Status)
	for _, run := range inv.Runs {
		assert.Equal(t, domain.RunFailed, run.Status, run.ToolID)
	}
	assert.Equal(t, "cancelled", inv.Runs[2].Error)
	assert.Equal(t, 3, inv.Summary.ToolsFailed)
	assert.Zero(t, ingest.count())
}

func TestStopCancelsPendingRuns(t *testing.T) {
	exec := ports.ToolExecutorFunc(func(ctx context.Context, toolID, target string, params map[string]any) (domain.ToolResult, error) {
		<-ctx.Done()
		return domain.ToolResult{}, ctx.Err()
	})
	o, _ := newTestOrchestrator(t, exec, nil)
	ctx := context.Background()
	started, err := o.Start(ctx, ports.StartRequest{Target: "8.8.8.8", TargetType: "ip"})
	require.NoError(t, err)

	status, err := o.Stop(ctx, started.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusStopped, status.Status)
	assert.Equal(t, 3, status.ToolsCompleted)
	assert.Equal(t, 3, status.ToolsFailed)
}

func TestUnknownTargetTypeUsesGenericTools(t *testing.T) {
	o, _ := newTestOrchestrator(t, resultsByTool(map[string]domain.ToolResult{
		"sherlock": {ConfidenceScore: 50},
		"holehe":   {ConfidenceScore: 50},
	}), nil)
	started, err := o.Start(context.Background(), ports.StartRequest{Target: "coo coo", TargetType: "carrier-pigeon"})
	require.NoError(t, err)
	assert.Equal(t, domain.TargetGeneric, started.TargetType)
	require.Len(t, started.ToolsSelected, 2)
	assert.Equal(t, "sherlock", started.ToolsSelected[0].ID)
	assert.Equal(t, "holehe", started.ToolsSelected[1].ID)
}

func TestStartValidation(t *testing.T) {
	o, _ := newTestOrchestrator(t, resultsByTool(nil), nil)
	ctx := context.Background()
	var verr *domain.ValidationError

	_, err := o.Start(ctx, ports.StartRequest{Target: "  ", TargetType: "username"})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "target", verr.Field)

	_, err = o.Start(ctx, ports.StartRequest{Target: "x", TargetType: "no spaces allowed"})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "target_type", verr.Field)

	_, err = o.Start(ctx, ports.StartRequest{Target: "a@b.io", TargetType: "email", Tools: []string{"torbot"}})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "tools", verr.Field)

	_, err = o.Status(ctx, "INV-missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = o.Results(ctx, "INV-missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = o.Stop(ctx, "INV-missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResultsWhileRunning(t *testing.T) {
	release := make(chan struct{})
	exec := ports.ToolExecutorFunc(func(ctx context.Context, toolID, target string, params map[string]any) (domain.ToolResult, error) {
		<-release
		return domain.ToolResult{}, nil
	})
	o, _ := newTestOrchestrator(t, exec, nil)
	started, err := o.Start(context.Background(), ports.StartRequest{Target: "example.com"})
	require.NoError(t, err)

	_, err = o.Results(context.Background(), started.ID)
	assert.ErrorIs(t, err, domain.ErrInProgress)
	close(release)
	require.NoError(t, o.Wait(context.Background(), started.ID))
	_, err = o.Results(context.Background(), started.ID)
	assert.NoError(t, err)
}

func TestExecuteTool(t *testing.T) {
	o, _ := newTestOrchestrator(t, resultsByTool(map[string]domain.ToolResult{
		"whois": {FindingsCount: 1, ConfidenceScore: 140},
	}), nil)
	ctx := context.Background()

	res, err := o.ExecuteTool(ctx, ports.ExecuteRequest{ToolID: "whois", Target: "example.org"})
	require.NoError(t, err)
	assert.Equal(t, domain.ResultSuccess, res.Status)
	assert.Equal(t, 100, res.ConfidenceScore)

	res, err = o.ExecuteTool(ctx, ports.ExecuteRequest{ToolID: "shodan", Target: "example.org"})
	require.NoError(t, err)
	assert.Equal(t, domain.ResultError, res.Status)

	var verr *domain.ValidationError
	_, err = o.ExecuteTool(ctx, ports.ExecuteRequest{ToolID: "nmap", Target: "example.org"})
	assert.True(t, errors.As(err, &verr))
	_, err = o.ExecuteTool(ctx, ports.ExecuteRequest{ToolID: "whois"})
	assert.True(t, errors.As(err, &verr))
}

func TestStoreSweep(t *testing.T) {
	s := NewStore()
	now := time.Now()
	_, cancel := context.WithCancel(context.Background())
	defer cancel()
	old := &entry{inv: domain.Investigation{ID: "old", Status: domain.StatusCompleted, CreatedAt: now.Add(-25 * time.Hour)}, cancel: cancel, done: make(chan struct{})}
	stuck := &entry{inv: domain.Investigation{ID: "stuck", Status: domain.StatusRunning, CreatedAt: now.Add(-30 * time.Hour)}, cancel: cancel, done: make(chan struct{})}
	fresh := &entry{inv: domain.Investigation{ID: "fresh", Status: domain.StatusRunning, CreatedAt: now}, cancel: cancel, done: make(chan struct{})}
	s.put(old)
	s.put(stuck)
	s.put(fresh)

	assert.Equal(t, 2, s.Sweep(now, 24*time.Hour))
	assert.Equal(t, 1, s.Len())
	_, ok := s.get("fresh")
	assert.True(t, ok)
	assert.Equal(t, domain.StatusStopped, stuck.inv.Status)
	select {
	case <-stuck.done:
	default:
		t.Fatal("swept running investigation was not released")
	}
}
