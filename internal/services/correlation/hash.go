package correlation

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"aura/internal/domain"
)

// MasterHash fingerprints the union of the members' identity markers.
func MasterHash(members []domain.Profile) string {
	seen := map[string]bool{}
	var pairs []string
	add := func(k, v string) {
		k, v = strings.ToLower(strings.TrimSpace(k)), strings.ToLower(strings.TrimSpace(v))
		if k == "" || v == "" {
			return
		}
		pair := k + ":" + v
		if !seen[pair] {
			seen[pair] = true
			pairs = append(pairs, pair)
		}
	}
	for _, p := range members {
		add("profile", p.Platform+"/"+p.Username)
		for k, v := range p.IdentityMarkers {
			add(k, v)
		}
	}
	sort.Strings(pairs)
	sum := sha256.Sum256([]byte(strings.Join(pairs, "|")))
	return hex.EncodeToString(sum[:])
}

// EvidenceHash fingerprints the raw data captured for a profile. A profile
// with no captured data has no fingerprint.
func EvidenceHash(p domain.Profile) string {
	if strings.TrimSpace(p.Bio) == "" && len(p.IdentityMarkers) == 0 {
		return ""
	}
	keys := make([]string, 0, len(p.IdentityMarkers))
	for k := range p.IdentityMarkers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(p.Bio)
	for _, k := range keys {
		b.WriteString("|" + k + "=" + p.IdentityMarkers[k])
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// ContentHash fingerprints comment text exactly as posted.
func ContentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
