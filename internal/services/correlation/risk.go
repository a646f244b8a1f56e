package correlation

import (
	"math"

	"aura/internal/domain"
)

// RiskScore combines platform spread, toxicity, alert volume and the worst
// alert severity into a value in [0,1].
func RiskScore(in domain.RiskInputs, w Weights) float64 {
	score := math.Min(float64(in.PlatformCount)*w.PerPlatform, w.PlatformCap)
	if in.CommentCount > 0 {
		score += float64(in.ToxicComments) / float64(in.CommentCount) * w.Toxicity
	}
	score += math.Min(float64(in.AlertCount)*w.PerAlert, w.AlertCap)
	score += w.Severity[in.MaxSeverity]
	score = math.Max(0, math.Min(score, 1))
	return math.Round(score*10000) / 10000
}
