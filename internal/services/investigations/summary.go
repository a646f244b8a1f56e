package investigations

import (
	"fmt"
	"math"
	"time"

	"aura/internal/domain"
)

const (
	highConfidence   = 80
	mediumConfidence = 50
)

func summarize(runs []domain.ToolRun, elapsed time.Duration) *domain.Summary {
	s := &domain.Summary{ToolsTotal: len(runs)}
	confidence := 0
	for _, r := range runs {
		switch r.Status {
		case domain.RunSucceeded:
			s.ToolsSuccessful++
			if r.Result == nil {
				continue
			}
			s.TotalFindings += r.Result.FindingsCount
			confidence += r.Result.ConfidenceScore
			switch {
			case r.Result.ConfidenceScore >= highConfidence:
				s.HighConfidence++
			case r.Result.ConfidenceScore >= mediumConfidence:
				s.MediumConfidence++
			default:
				s.LowConfidence++
			}
		case domain.RunFailed:
			s.ToolsFailed++
		}
	}
	if s.ToolsSuccessful > 0 {
		s.OverallConfidence = math.Round(float64(confidence)/float64(s.ToolsSuccessful)*100) / 100
	}
	s.ExecutionTime = fmt.Sprintf("%.1fs", elapsed.Seconds())
	return s
}

func progressOf(runs []domain.ToolRun) float64 {
	if len(runs) == 0 {
		return 100
	}
	done := 0
	for _, r := range runs {
		if r.Status.Terminal() {
			done++
		}
	}
	return math.Round(float64(done)/float64(len(runs))*10000) / 100
}

func report(inv *domain.Investigation) domain.StatusReport {
	r := domain.StatusReport{
		ID:          inv.ID,
		Target:      inv.Target,
		TargetType:  inv.TargetType,
		Status:      inv.Status,
		Progress:    inv.Progress,
		ToolsTotal:  len(inv.Runs),
		StartedAt:   inv.StartedAt,
		CompletedAt: inv.CompletedAt,
	}
	for _, run := range inv.Runs {
		switch run.Status {
		case domain.RunSucceeded:
			r.ToolsSucceeded++
			r.ToolsCompleted++
		case domain.RunFailed:
			r.ToolsFailed++
			r.ToolsCompleted++
		}
	}
	return r
}

func snapshot(inv *domain.Investigation) domain.Investigation {
	out := *inv
	out.Runs = append([]domain.ToolRun(nil), inv.Runs...)
	return out
}
