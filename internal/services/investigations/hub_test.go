package investigations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"aura/internal/domain"
)

func TestHubRoutesByFollow(t *testing.T) {
	hub := NewHub(zap.NewNop().Sugar())
	a := hub.Subscribe(4)
	b := hub.Subscribe(4)
	a.Follow("INV-1")
	b.Follow("INV-2")

	hub.Publish(domain.Event{Type: domain.EventToolStarted, InvestigationID: "INV-1", Tool: "whois"})
	hub.Publish(domain.Event{Type: domain.EventToolCompleted, InvestigationID: "INV-1", Tool: "whois"})

	assert.Len(t, a.Events(), 2)
	assert.Len(t, b.Events(), 0)
	first := <-a.Events()
	assert.Equal(t, domain.EventToolStarted, first.Type)

	a.Unfollow("INV-1")
	hub.Publish(domain.Event{Type: domain.EventToolStarted, InvestigationID: "INV-1"})
	assert.Len(t, a.Events(), 1)

	a.Close()
	a.Close()
	assert.Equal(t, 1, hub.Subscribers())
	hub.Publish(domain.Event{InvestigationID: "INV-1"})
	b.Close()
	assert.Equal(t, 0, hub.Subscribers())
}

func TestHubDropsWhenFull(t *testing.T) {
	hub := NewHub(zap.NewNop().Sugar())
	s := hub.Subscribe(1)
	s.Follow("INV-1")
	hub.Publish(domain.Event{InvestigationID: "INV-1", Tool: "a"})
	hub.Publish(domain.Event{InvestigationID: "INV-1", Tool: "b"})
	ev := <-s.Events()
	assert.Equal(t, "a", ev.Tool)
	assert.Len(t, s.Events(), 0)
}

func TestHubAlwaysDeliversCompletion(t *testing.T) {
	hub := NewHub(zap.NewNop().Sugar())
	s := hub.Subscribe(2)
	s.Follow("INV-1")
	hub.Publish(domain.Event{Type: domain.EventToolStarted, InvestigationID: "INV-1", Tool: "a"})
	hub.Publish(domain.Event{Type: domain.EventToolCompleted, InvestigationID: "INV-1", Tool: "a"})
	hub.Publish(domain.Event{Type: domain.EventInvestigationCompleted, InvestigationID: "INV-1"})

	assert.Len(t, s.Events(), 2)
	first := <-s.Events()
	assert.Equal(t, domain.EventToolCompleted, first.Type)
	last := <-s.Events()
	assert.Equal(t, domain.EventInvestigationCompleted, last.Type)
}

func TestSummarizeBuckets(t *testing.T) {
	runs := []domain.ToolRun{
		{Status: domain.RunSucceeded, Result: &domain.ToolResult{FindingsCount: 2, ConfidenceScore: 95}},
		{Status: domain.RunSucceeded, Result: &domain.ToolResult{FindingsCount: 1, ConfidenceScore: 60}},
		{Status: domain.RunSucceeded, Result: &domain.ToolResult{FindingsCount: 0, ConfidenceScore: 10}},
		{Status: domain.RunFailed, Error: "boom"},
	}
	s := summarize(runs, 0)
	assert.Equal(t, 3, s.TotalFindings)
	assert.Equal(t, 55.0, s.OverallConfidence)
	assert.Equal(t, 1, s.HighConfidence)
	assert.Equal(t, 1, s.MediumConfidence)
	assert.Equal(t, 1, s.LowConfidence)
	assert.Equal(t, 1, s.ToolsFailed)
	assert.Equal(t, 4, s.ToolsTotal)
	assert.Equal(t, 75.0, progressOf(runs))
}
