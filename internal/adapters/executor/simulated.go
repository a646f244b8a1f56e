// Package executor holds the tool executors the orchestrator dispatches to.
package executor

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"time"

	"aura/internal/domain"
	"aura/internal/ports"
)

// Simulated produces deterministic, category-shaped results without touching
// the network. The same tool and target always yield the same result.
type Simulated struct {
	catalog ports.ToolCatalog
	// Scale multiplies the simulated run time; 0 returns immediately.
	Scale float64
}

func NewSimulated(catalog ports.ToolCatalog, scale float64) *Simulated {
	return &Simulated{catalog: catalog, Scale: scale}
}

func seed(toolID, target string) int64 {
	h := fnv.New64a()
	h.Write([]byte(toolID))
	h.Write([]byte{0})
	h.Write([]byte(strings.ToLower(target)))
	return int64(h.Sum64() >> 1)
}

func (s *Simulated) Execute(ctx context.Context, toolID, target string, _ map[string]any) (domain.ToolResult, error) {
	tool, ok := s.catalog.Get(toolID)
	if !ok {
		return domain.ToolResult{}, fmt.Errorf("unknown tool %q", toolID)
	}
	rng := rand.New(rand.NewSource(seed(toolID, target)))

	span := tool.MaxDuration - tool.MinDuration
	d := tool.MinDuration
	if span > 0 {
		d += time.Duration(rng.Int63n(int64(span)))
	}
	wait := time.Duration(float64(d) * s.Scale)
	if wait > 0 {
		t := time.NewTimer(wait)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return domain.ToolResult{}, ctx.Err()
		case <-t.C:
		}
	}

	data, findings := simulate(tool.Category, target, rng)
	return domain.ToolResult{
		Tool:            toolID,
		Status:          domain.ResultSuccess,
		FindingsCount:   findings,
		ConfidenceScore: 50 + rng.Intn(50),
		Data:            data,
		ExecutionTimeMS: d.Milliseconds(),
	}, nil
}

var (
	platforms   = []string{"twitter", "instagram", "github", "reddit", "tiktok", "twitch", "mastodon", "telegram"}
	sites       = []string{"twitter", "spotify", "adobe", "dropbox", "linkedin", "pinterest", "discord"}
	breaches    = []string{"LinkedIn 2012", "Adobe 2013", "Dropbox 2012", "Canva 2019", "Collection #1"}
	commonPorts = []int{21, 22, 25, 53, 80, 110, 143, 443, 3306, 5432, 8080, 8443}
	services    = map[int]string{21: "ftp", 22: "ssh", 25: "smtp", 53: "dns", 80: "http", 110: "pop3", 143: "imap", 443: "https", 3306: "mysql", 5432: "postgresql", 8080: "http-alt", 8443: "https-alt"}
	countries   = []string{"FR", "DE", "US", "NL", "GB", "CA"}
)

func sample[T any](rng *rand.Rand, from []T, n int) []T {
	idx := rng.Perm(len(from))
	if n > len(from) {
		n = len(from)
	}
	out := make([]T, n)
	for i := 0; i < n; i++ {
		out[i] = from[idx[i]]
	}
	return out
}

func simulate(category domain.ToolCategory, target string, rng *rand.Rand) (domain.ToolData, int) {
	handle := strings.TrimPrefix(target, "@")
	if i := strings.IndexByte(handle, '@'); i > 0 {
		handle = handle[:i]
	}
	switch category {
	case domain.CategoryUsername:
		var d domain.UsernameData
		for _, p := range sample(rng, platforms, 1+rng.Intn(5)) {
			d.Profiles = append(d.Profiles, domain.FoundProfile{Platform: p, Username: handle, URL: "https://" + p + ".com/" + handle})
		}
		return d, len(d.Profiles)
	case domain.CategorySocial:
		p := platforms[rng.Intn(2)]
		d := domain.SocialData{
			Profile:   domain.FoundProfile{Platform: p, Username: handle, URL: "https://" + p + ".com/" + handle},
			Followers: rng.Intn(5000),
			Posts:     rng.Intn(900),
		}
		return d, 1
	case domain.CategoryEmail:
		d := domain.EmailData{Email: target, RegisteredSites: sample(rng, sites, rng.Intn(4))}
		return d, len(d.RegisteredSites)
	case domain.CategoryBreach:
		var d domain.BreachData
		for _, b := range sample(rng, breaches, rng.Intn(3)) {
			d.Breaches = append(d.Breaches, domain.Breach{Name: b, DataTypes: []string{"email", "password"}})
		}
		return d, len(d.Breaches)
	case domain.CategoryPhone:
		return domain.PhoneData{Number: target, CountryCode: countries[rng.Intn(len(countries))], LineType: "mobile", Valid: true}, 1
	case domain.CategoryDomain:
		d := domain.DomainData{Domain: target, Registrar: "Example Registrar", Created: "2015-03-12"}
		for _, sub := range sample(rng, []string{"www", "mail", "api", "dev", "vpn", "cdn"}, 1+rng.Intn(4)) {
			d.Subdomains = append(d.Subdomains, sub+"."+target)
		}
		return d, len(d.Subdomains)
	case domain.CategoryNetwork:
		d := domain.NetworkData{IP: target, Country: countries[rng.Intn(len(countries))], ASN: fmt.Sprintf("AS%d", 1000+rng.Intn(60000))}
		for _, p := range sample(rng, commonPorts, 1+rng.Intn(4)) {
			d.OpenPorts = append(d.OpenPorts, p)
			d.Services = append(d.Services, domain.Service{Port: p, Name: services[p]})
		}
		return d, len(d.OpenPorts)
	case domain.CategoryDarknet:
		d := domain.DarknetData{Address: target, Online: rng.Intn(4) > 0}
		if d.Online {
			d.Pages = []string{"/", "/about"}
			if rng.Intn(2) == 0 {
				d.Vulnerabilities = []string{"apache mod_status exposed"}
			}
		}
		return d, len(d.Pages) + len(d.Vulnerabilities)
	case domain.CategoryImage:
		return domain.ImageData{Camera: "Canon EOS 80D", Taken: "2021:07:14 16:02:11", Software: "GIMP 2.10"}, 3
	case domain.CategoryCrypto:
		return domain.CryptoData{Address: target, Chain: "bitcoin", Balance: float64(rng.Intn(100000)) / 1000, Transactions: rng.Intn(200)}, 1
	}
	return domain.GenericData{}, 0
}
