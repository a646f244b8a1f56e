package correlation

import (
	"time"

	"aura/internal/domain"
)

// Weights are the terms of the risk score.
type Weights struct {
	PerPlatform float64
	PlatformCap float64
	Toxicity    float64
	PerAlert    float64
	AlertCap    float64
	Severity    map[domain.Severity]float64
}

func DefaultWeights() Weights {
	return Weights{
		PerPlatform: 0.1,
		PlatformCap: 0.3,
		Toxicity:    0.4,
		PerAlert:    0.05,
		AlertCap:    0.2,
		Severity: map[domain.Severity]float64{
			domain.SeverityLow:      0.1,
			domain.SeverityMedium:   0.2,
			domain.SeverityHigh:     0.3,
			domain.SeverityCritical: 0.5,
		},
	}
}

// Thresholds drive signal generation and network detection.
type Thresholds struct {
	EmailMatch      float64
	EvidenceMatch   float64
	BioSimilarity   float64
	HighConfidence  float64
	ToxicAbove      float64
	ProximityWindow time.Duration
	NetworkLookback time.Duration
	MinTemporal     int
	MinContent      int
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		EmailMatch:      0.95,
		EvidenceMatch:   0.9,
		BioSimilarity:   0.7,
		HighConfidence:  0.8,
		ToxicAbove:      0.7,
		ProximityWindow: 5 * time.Minute,
		NetworkLookback: 24 * time.Hour,
		MinTemporal:     3,
		MinContent:      2,
	}
}
