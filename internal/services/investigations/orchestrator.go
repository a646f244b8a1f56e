package investigations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"aura/internal/domain"
	"aura/internal/ports"
	"aura/internal/services/targets"
	"aura/internal/services/tools"
)

type Config struct {
	// Workers bounds concurrent tool runs per investigation.
	Workers int
	// Grace is added to a tool's maximum duration to form its timeout.
	Grace time.Duration
	// IngestTimeout bounds the hand-off of completed results to persistence.
	IngestTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Workers < 1 {
		c.Workers = 3
	}
	if c.Grace <= 0 {
		c.Grace = 10 * time.Second
	}
	if c.IngestTimeout <= 0 {
		c.IngestTimeout = 30 * time.Second
	}
	return c
}

// Orchestrator runs investigations: it selects tools, dispatches them with
// bounded concurrency and aggregates their results.
type Orchestrator struct {
	registry *tools.Registry
	limiters *tools.Limiters
	exec     ports.ToolExecutor
	store    *Store
	hub      *Hub
	ingest   ports.FindingsIngestor
	cfg      Config
	log      *zap.SugaredLogger
	now      func() time.Time

	base     context.Context
	shutdown context.CancelFunc
}

func New(registry *tools.Registry, limiters *tools.Limiters, exec ports.ToolExecutor, store *Store, hub *Hub, ingest ports.FindingsIngestor, cfg Config, log *zap.SugaredLogger) *Orchestrator {
	base, cancel := context.WithCancel(context.Background())
	return &Orchestrator{
		registry: registry,
		limiters: limiters,
		exec:     exec,
		store:    store,
		hub:      hub,
		ingest:   ingest,
		cfg:      cfg.withDefaults(),
		log:      log,
		now:      time.Now,
		base:     base,
		shutdown: cancel,
	}
}

// Close cancels every running investigation.
func (o *Orchestrator) Close() { o.shutdown() }

func (o *Orchestrator) Start(ctx context.Context, req ports.StartRequest) (domain.Started, error) {
	tt, detect, err := targets.ParseType(req.TargetType)
	if err != nil {
		return domain.Started{}, err
	}
	if detect {
		tt = targets.Detect(req.Target)
	}
	target, err := targets.Normalize(tt, req.Target)
	if err != nil {
		return domain.Started{}, err
	}
	selected, err := o.registry.Select(tt, req.Tools)
	if err != nil {
		return domain.Started{}, err
	}

	now := o.now()
	inv := domain.Investigation{
		ID:         "INV-" + uuid.NewString(),
		Target:     target,
		TargetType: tt,
		Status:     domain.StatusPending,
		Runs:       make([]domain.ToolRun, len(selected)),
		Options:    req.Options,
		CreatedAt:  now,
	}
	toolIDs := make([]string, len(selected))
	started := make([]domain.SelectedTool, len(selected))
	for i, t := range selected {
		inv.Runs[i] = domain.ToolRun{ID: uuid.NewString(), InvestigationID: inv.ID, ToolID: t.ID, Status: domain.RunQueued}
		toolIDs[i] = t.ID
		started[i] = domain.SelectedTool{ID: t.ID, Name: t.Name, Category: t.Category, EstimatedTime: t.MeanDuration().String()}
	}

	runCtx, cancel := context.WithCancel(o.base)
	e := &entry{inv: inv, cancel: cancel, done: make(chan struct{})}
	o.store.put(e)
	if req.Observer != nil {
		req.Observer.Follow(inv.ID)
	}

	e.mu.Lock()
	e.inv.Status = domain.StatusRunning
	e.inv.StartedAt = &now
	o.emit(domain.Event{
		Type:            domain.EventInvestigationStarted,
		InvestigationID: inv.ID,
		Target:          target,
		ToolsSelected:   toolIDs,
		Status:          domain.StatusRunning,
	})
	e.mu.Unlock()

	o.log.Infow("investigation started", "investigation_id", inv.ID, "target_type", tt, "tools", toolIDs)
	go o.run(runCtx, e, selected, toolParams(req.Options))

	return domain.Started{
		ID:                  inv.ID,
		Target:              target,
		TargetType:          tt,
		ToolsSelected:       started,
		Status:              domain.StatusRunning,
		CreatedAt:           now,
		EstimatedCompletion: tools.EstimateCompletion(now, selected),
	}, nil
}

func toolParams(opts map[string]any) map[string]any {
	if p, ok := opts["parameters"].(map[string]any); ok {
		return p
	}
	return nil
}

func (o *Orchestrator) run(ctx context.Context, e *entry, selected []domain.Tool, params map[string]any) {
	defer func() {
		if r := recover(); r != nil {
			o.log.Errorw("investigation panicked", "investigation_id", e.inv.ID, "panic", r)
			o.fail(e)
		}
	}()

	g := new(errgroup.Group)
	g.SetLimit(o.cfg.Workers)
	for i, tool := range selected {
		if ctx.Err() != nil {
			break
		}
		i, tool := i, tool
		g.Go(func() error {
			o.runTool(ctx, e, i, tool, params)
			return nil
		})
	}
	_ = g.Wait()
	o.finish(ctx, e)
}

func (o *Orchestrator) runTool(ctx context.Context, e *entry, idx int, tool domain.Tool, params map[string]any) {
	if err := o.limiters.Wait(ctx, tool.ID); err != nil {
		if ctx.Err() == nil && o.startTool(e, idx) {
			o.finishTool(e, idx, domain.ToolResult{}, fmt.Errorf("rate limit: %w", err), 0)
		}
		return
	}
	if !o.startTool(e, idx) {
		return
	}
	start := o.now()
	tctx, cancel := context.WithTimeout(ctx, tool.MaxDuration+o.cfg.Grace)
	res, err := o.invoke(tctx, tool.ID, e.inv.Target, params)
	cancel()
	o.finishTool(e, idx, res, err, o.now().Sub(start))
}

type outcome struct {
	res domain.ToolResult
	err error
}

// invoke calls the executor in its own goroutine so that an executor which
// ignores ctx cannot hold the run past its deadline.
func (o *Orchestrator) invoke(ctx context.Context, toolID, target string, params map[string]any) (domain.ToolResult, error) {
	ch := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- outcome{err: fmt.Errorf("tool %s panicked: %v", toolID, r)}
			}
		}()
		res, err := o.exec.Execute(ctx, toolID, target, params)
		ch <- outcome{res: res, err: err}
	}()
	select {
	case out := <-ch:
		return out.res, out.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return domain.ToolResult{}, fmt.Errorf("tool %s timed out", toolID)
		}
		return domain.ToolResult{}, ctx.Err()
	}
}

func (o *Orchestrator) startTool(e *entry, idx int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.inv.Status.Terminal() {
		return false
	}
	now := o.now()
	run := &e.inv.Runs[idx]
	run.Status = domain.RunRunning
	run.StartedAt = &now
	o.emit(domain.Event{
		Type:            domain.EventToolStarted,
		InvestigationID: e.inv.ID,
		Tool:            run.ToolID,
		Progress:        e.inv.Progress,
		Status:          e.inv.Status,
	})
	return true
}

func (o *Orchestrator) finishTool(e *entry, idx int, res domain.ToolResult, err error, elapsed time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.inv.Status.Terminal() {
		return
	}
	now := o.now()
	run := &e.inv.Runs[idx]
	run.FinishedAt = &now
	run.Duration = elapsed
	if err == nil && res.Status == domain.ResultError {
		err = errors.New(res.Error)
		if res.Error == "" {
			err = errors.New("tool reported an error")
		}
	}
	if err != nil {
		run.Status = domain.RunFailed
		run.Error = err.Error()
		e.inv.Progress = progressOf(e.inv.Runs)
		o.log.Warnw("tool failed", "investigation_id", e.inv.ID, "tool", run.ToolID, "error", err)
		o.emit(domain.Event{
			Type:            domain.EventToolError,
			InvestigationID: e.inv.ID,
			Tool:            run.ToolID,
			Error:           run.Error,
			Progress:        e.inv.Progress,
			Status:          e.inv.Status,
		})
		return
	}

	res.Tool = run.ToolID
	res.Status = domain.ResultSuccess
	res.ConfidenceScore = clamp(res.ConfidenceScore, 0, 100)
	if res.FindingsCount < 0 {
		res.FindingsCount = 0
	}
	if res.ExecutionTimeMS == 0 {
		res.ExecutionTimeMS = elapsed.Milliseconds()
	}
	run.Status = domain.RunSucceeded
	run.Result = &res
	e.inv.Progress = progressOf(e.inv.Runs)
	o.emit(domain.Event{
		Type:            domain.EventToolCompleted,
		InvestigationID: e.inv.ID,
		Tool:            run.ToolID,
		Result:          &res,
		Progress:        e.inv.Progress,
		Status:          e.inv.Status,
	})
}

func (o *Orchestrator) finish(ctx context.Context, e *entry) {
	e.mu.Lock()
	if e.inv.Status.Terminal() {
		e.mu.Unlock()
		e.markDone()
		return
	}
	now := o.now()
	if ctx.Err() != nil && pending(e.inv.Runs) > 0 {
		o.abandon(e, now)
		return
	}
	e.inv.Status = domain.StatusCompleted
	e.inv.CompletedAt = &now
	e.inv.Progress = 100
	e.inv.Summary = summarize(e.inv.Runs, now.Sub(e.inv.CreatedAt))
	inv := snapshot(&e.inv)
	o.emit(domain.Event{
		Type:            domain.EventInvestigationCompleted,
		InvestigationID: inv.ID,
		Target:          inv.Target,
		Progress:        100,
		Status:          inv.Status,
		Results:         inv.Runs,
		Summary:         inv.Summary,
	})
	e.mu.Unlock()
	e.cancel()

	o.log.Infow("investigation completed", "investigation_id", inv.ID,
		"tools_successful", inv.Summary.ToolsSuccessful, "tools_total", inv.Summary.ToolsTotal,
		"total_findings", inv.Summary.TotalFindings)

	if o.ingest != nil && o.base.Err() == nil {
		ctx, cancel := context.WithTimeout(o.base, o.cfg.IngestTimeout)
		if err := o.ingest.Ingest(ctx, inv); err != nil {
			o.log.Errorw("ingest findings", "investigation_id", inv.ID, "error", err)
		}
		cancel()
	}
	e.markDone()
}

// abandon closes out an investigation whose context was cancelled before
// every tool ran, typically on shutdown. Unstarted and in-flight runs fail
// as cancelled, the investigation is stopped and nothing is ingested.
// Called with e.mu held.
func (o *Orchestrator) abandon(e *entry, now time.Time) {
	cancelPending(e.inv.Runs, now)
	e.inv.Status = domain.StatusStopped
	e.inv.CompletedAt = &now
	e.inv.Summary = summarize(e.inv.Runs, now.Sub(e.inv.CreatedAt))
	id, summary := e.inv.ID, e.inv.Summary
	e.mu.Unlock()
	e.cancel()

	o.log.Warnw("investigation cancelled", "investigation_id", id,
		"tools_successful", summary.ToolsSuccessful, "tools_total", summary.ToolsTotal)
	e.markDone()
}

func cancelPending(runs []domain.ToolRun, now time.Time) {
	for i := range runs {
		if runs[i].Status.Terminal() {
			continue
		}
		runs[i].Status = domain.RunFailed
		runs[i].Error = "cancelled"
		runs[i].FinishedAt = &now
	}
}

func pending(runs []domain.ToolRun) int {
	n := 0
	for _, r := range runs {
		if !r.Status.Terminal() {
			n++
		}
	}
	return n
}

func (o *Orchestrator) fail(e *entry) {
	e.mu.Lock()
	if !e.inv.Status.Terminal() {
		now := o.now()
		e.inv.Status = domain.StatusFailed
		e.inv.CompletedAt = &now
		e.inv.Summary = summarize(e.inv.Runs, now.Sub(e.inv.CreatedAt))
	}
	e.mu.Unlock()
	e.cancel()
	e.markDone()
}

// emit must be called with the investigation's lock held.
func (o *Orchestrator) emit(ev domain.Event) {
	ev.Timestamp = o.now()
	o.hub.Publish(ev)
}

// Stop cancels a running investigation. Its status becomes stopped, runs that
// had not finished fail as cancelled and no further events are emitted for it.
// Stopping a finished investigation is a no-op.
func (o *Orchestrator) Stop(_ context.Context, id string) (domain.StatusReport, error) {
	e, ok := o.store.get(id)
	if !ok {
		return domain.StatusReport{}, domain.ErrNotFound
	}
	e.mu.Lock()
	if e.inv.Status.Terminal() {
		r := report(&e.inv)
		e.mu.Unlock()
		return r, nil
	}
	now := o.now()
	cancelPending(e.inv.Runs, now)
	e.inv.Status = domain.StatusStopped
	e.inv.CompletedAt = &now
	e.inv.Summary = summarize(e.inv.Runs, now.Sub(e.inv.CreatedAt))
	r := report(&e.inv)
	e.mu.Unlock()

	e.cancel()
	e.markDone()
	o.log.Infow("investigation stopped", "investigation_id", id)
	return r, nil
}

func (o *Orchestrator) Status(_ context.Context, id string) (domain.StatusReport, error) {
	e, ok := o.store.get(id)
	if !ok {
		return domain.StatusReport{}, domain.ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return report(&e.inv), nil
}

// Results returns the full investigation once it is terminal.
func (o *Orchestrator) Results(_ context.Context, id string) (domain.Investigation, error) {
	e, ok := o.store.get(id)
	if !ok {
		return domain.Investigation{}, domain.ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.inv.Status.Terminal() {
		return domain.Investigation{}, domain.ErrInProgress
	}
	return snapshot(&e.inv), nil
}

// Wait blocks until the investigation is terminal and its findings are handed off.
func (o *Orchestrator) Wait(ctx context.Context, id string) error {
	e, ok := o.store.get(id)
	if !ok {
		return domain.ErrNotFound
	}
	select {
	case <-e.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ExecuteTool runs a single tool outside any investigation. Tool failures are
// reported in the result; the error is reserved for invalid requests.
func (o *Orchestrator) ExecuteTool(ctx context.Context, req ports.ExecuteRequest) (domain.ToolResult, error) {
	sel, err := o.registry.Select(domain.TargetGeneric, []string{req.ToolID})
	if err != nil {
		return domain.ToolResult{}, err
	}
	tool := sel[0]
	if req.Target == "" {
		return domain.ToolResult{}, domain.Invalid("target", "must not be empty")
	}
	if err := o.limiters.Wait(ctx, tool.ID); err != nil {
		return domain.ToolResult{}, err
	}
	start := o.now()
	tctx, cancel := context.WithTimeout(ctx, tool.MaxDuration+o.cfg.Grace)
	defer cancel()
	res, err := o.invoke(tctx, tool.ID, req.Target, req.Params)
	elapsed := o.now().Sub(start)
	if err != nil {
		return domain.ToolResult{Tool: tool.ID, Status: domain.ResultError, Error: err.Error(), ExecutionTimeMS: elapsed.Milliseconds()}, nil
	}
	res.Tool = tool.ID
	if res.Status == "" {
		res.Status = domain.ResultSuccess
	}
	res.ConfidenceScore = clamp(res.ConfidenceScore, 0, 100)
	if res.ExecutionTimeMS == 0 {
		res.ExecutionTimeMS = elapsed.Milliseconds()
	}
	return res, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
