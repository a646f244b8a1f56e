package correlation

import (
	"sort"
	"strings"
	"unicode"

	"aura/internal/domain"
)

// Signals compares p against every other profile and returns the links found.
// A pair yields at most one signal per type.
func Signals(p domain.Profile, others []domain.Profile, th Thresholds) []domain.CorrelationSignal {
	var out []domain.CorrelationSignal
	email := strings.ToLower(p.Email())
	bio := trigrams(p.Bio)
	for _, o := range others {
		if o.ID == p.ID {
			continue
		}
		if email != "" && strings.EqualFold(o.Email(), email) {
			out = append(out, domain.CorrelationSignal{Type: domain.SignalExactMarker, Source: p.ID, Target: o.ID, Confidence: th.EmailMatch})
		}
		if len(bio) > 0 {
			if sim := similarity(bio, trigrams(o.Bio)); sim >= th.BioSimilarity {
				out = append(out, domain.CorrelationSignal{Type: domain.SignalBio, Source: p.ID, Target: o.ID, Confidence: sim})
			}
		}
		if p.EvidenceHash != "" && p.EvidenceHash == o.EvidenceHash && p.Platform != o.Platform {
			out = append(out, domain.CorrelationSignal{Type: domain.SignalContentHash, Source: p.ID, Target: o.ID, Confidence: th.EvidenceMatch})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Target < out[j].Target })
	return out
}

func highConfidence(signals []domain.CorrelationSignal, min float64) []domain.CorrelationSignal {
	var out []domain.CorrelationSignal
	for _, s := range signals {
		if s.Confidence >= min {
			out = append(out, s)
		}
	}
	return out
}

// trigrams splits text the way pg_trgm does: lowercased alphanumeric words,
// each padded with two leading blanks and one trailing blank.
func trigrams(text string) map[string]struct{} {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return nil
	}
	set := make(map[string]struct{})
	for _, w := range words {
		padded := []rune("  " + w + " ")
		for i := 0; i+3 <= len(padded); i++ {
			set[string(padded[i:i+3])] = struct{}{}
		}
	}
	return set
}

func similarity(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	shared := 0
	for g := range a {
		if _, ok := b[g]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(a)+len(b)-shared)
}

// BioSimilarity is the trigram similarity of two free-text bios.
func BioSimilarity(a, b string) float64 {
	return similarity(trigrams(a), trigrams(b))
}
