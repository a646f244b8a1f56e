package tools

import (
	"sort"
	"time"

	"aura/internal/domain"
)

// Registry is the immutable tool catalog built at startup.
type Registry struct {
	tools    []domain.Tool
	byID     map[string]domain.Tool
	defaults map[domain.TargetType][]string
}

func sec(f float64) time.Duration { return time.Duration(f * float64(time.Second)) }

// DefaultCatalog returns the built-in tool definitions.
func DefaultCatalog() []domain.Tool {
	return []domain.Tool{
		{ID: "phoneinfoga", Name: "PhoneInfoga", Category: domain.CategoryPhone, Description: "Phone number carrier and footprint lookup",
			TargetTypes: []domain.TargetType{domain.TargetPhone}, Params: []string{"number"}, MinDuration: sec(5), MaxDuration: sec(15), RatePerMinute: 30},
		{ID: "phonenumbers", Name: "Phone Numbers", Category: domain.CategoryPhone, Description: "Number parsing and validation",
			TargetTypes: []domain.TargetType{domain.TargetPhone}, Params: []string{"number", "region"}, MinDuration: sec(0.1), MaxDuration: sec(0.5), RatePerMinute: 600},
		{ID: "onionscan", Name: "OnionScan", Category: domain.CategoryDarknet, Description: "Hidden service exposure scan",
			TargetTypes: []domain.TargetType{domain.TargetOnionURL}, Params: []string{"url"}, MinDuration: sec(30), MaxDuration: sec(120), RatePerMinute: 5},
		{ID: "torbot", Name: "TorBot", Category: domain.CategoryDarknet, Description: "Onion site crawler",
			TargetTypes: []domain.TargetType{domain.TargetOnionURL}, Params: []string{"url", "depth"}, MinDuration: sec(20), MaxDuration: sec(90), RatePerMinute: 5},
		{ID: "sherlock", Name: "Sherlock", Category: domain.CategoryUsername, Description: "Username search across social networks",
			TargetTypes: []domain.TargetType{domain.TargetUsername}, Params: []string{"username"}, MinDuration: sec(15), MaxDuration: sec(45), RatePerMinute: 20},
		{ID: "maigret", Name: "Maigret", Category: domain.CategoryUsername, Description: "Username dossier collection",
			TargetTypes: []domain.TargetType{domain.TargetUsername}, Params: []string{"username"}, MinDuration: sec(30), MaxDuration: sec(120), RatePerMinute: 10},
		{ID: "shodan", Name: "Shodan", Category: domain.CategoryNetwork, Description: "Internet-facing host search",
			TargetTypes: []domain.TargetType{domain.TargetIP, domain.TargetDomain}, Params: []string{"query"}, MinDuration: sec(2), MaxDuration: sec(10), RatePerMinute: 60},
		{ID: "ip_intelligence", Name: "IP Intelligence", Category: domain.CategoryNetwork, Description: "Geolocation and ASN lookup",
			TargetTypes: []domain.TargetType{domain.TargetIP}, Params: []string{"ip"}, MinDuration: sec(1), MaxDuration: sec(3), RatePerMinute: 120},
		{ID: "port_scanner", Name: "Port Scanner", Category: domain.CategoryNetwork, Description: "TCP port discovery",
			TargetTypes: []domain.TargetType{domain.TargetIP, domain.TargetDomain}, Params: []string{"host", "ports"}, MinDuration: sec(5), MaxDuration: sec(30), RatePerMinute: 20},
		{ID: "ssl_analyzer", Name: "SSL Analyzer", Category: domain.CategoryNetwork, Description: "Certificate and cipher inspection",
			TargetTypes: []domain.TargetType{domain.TargetDomain, domain.TargetIP}, Params: []string{"host"}, MinDuration: sec(2), MaxDuration: sec(8), RatePerMinute: 60},
		{ID: "network_mapper", Name: "Network Mapper", Category: domain.CategoryNetwork, Description: "Service and topology mapping",
			TargetTypes: []domain.TargetType{domain.TargetIP, domain.TargetDomain}, Params: []string{"host"}, MinDuration: sec(10), MaxDuration: sec(60), RatePerMinute: 10},
		{ID: "holehe", Name: "Holehe", Category: domain.CategoryEmail, Description: "Email account registration check",
			TargetTypes: []domain.TargetType{domain.TargetEmail}, Params: []string{"email"}, MinDuration: sec(10), MaxDuration: sec(30), RatePerMinute: 20},
		{ID: "h8mail", Name: "h8mail", Category: domain.CategoryBreach, Description: "Breach corpus search",
			TargetTypes: []domain.TargetType{domain.TargetEmail}, Params: []string{"email"}, MinDuration: sec(5), MaxDuration: sec(20), RatePerMinute: 20},
		{ID: "subfinder", Name: "Subfinder", Category: domain.CategoryDomain, Description: "Passive subdomain enumeration",
			TargetTypes: []domain.TargetType{domain.TargetDomain}, Params: []string{"domain"}, MinDuration: sec(10), MaxDuration: sec(60), RatePerMinute: 10},
		{ID: "whois", Name: "WHOIS", Category: domain.CategoryDomain, Description: "Registration record lookup",
			TargetTypes: []domain.TargetType{domain.TargetDomain, domain.TargetIP}, Params: []string{"domain"}, MinDuration: sec(1), MaxDuration: sec(5), RatePerMinute: 60},
		{ID: "twitter", Name: "Twitter", Category: domain.CategorySocial, Description: "Public profile and timeline lookup",
			TargetTypes: []domain.TargetType{domain.TargetUsername}, Params: []string{"username"}, MinDuration: sec(10), MaxDuration: sec(30), RatePerMinute: 15},
		{ID: "instagram", Name: "Instagram", Category: domain.CategorySocial, Description: "Public profile lookup",
			TargetTypes: []domain.TargetType{domain.TargetUsername}, Params: []string{"username"}, MinDuration: sec(15), MaxDuration: sec(45), RatePerMinute: 10},
		{ID: "exifread", Name: "ExifRead", Category: domain.CategoryImage, Description: "Image metadata extraction",
			TargetTypes: []domain.TargetType{domain.TargetImage}, Params: []string{"url"}, MinDuration: sec(0.5), MaxDuration: sec(2), RatePerMinute: 120},
		{ID: "blockchain", Name: "Blockchain Explorer", Category: domain.CategoryCrypto, Description: "Wallet balance and transaction history",
			TargetTypes: []domain.TargetType{domain.TargetCryptoAddress}, Params: []string{"address"}, MinDuration: sec(3), MaxDuration: sec(15), RatePerMinute: 30},
	}
}

// DefaultMapping is the tool selection used when a request names no tools.
func DefaultMapping() map[domain.TargetType][]string {
	return map[domain.TargetType][]string{
		domain.TargetEmail:         {"holehe", "h8mail"},
		domain.TargetUsername:      {"sherlock", "maigret"},
		domain.TargetDomain:        {"subfinder", "whois"},
		domain.TargetIP:            {"shodan", "ip_intelligence", "port_scanner"},
		domain.TargetPhone:         {"phoneinfoga", "phonenumbers"},
		domain.TargetOnionURL:      {"onionscan", "torbot"},
		domain.TargetImage:         {"exifread"},
		domain.TargetCryptoAddress: {"blockchain"},
		domain.TargetGeneric:       {"sherlock", "holehe"},
	}
}

func NewRegistry(catalog []domain.Tool, mapping map[domain.TargetType][]string) *Registry {
	r := &Registry{
		tools:    make([]domain.Tool, 0, len(catalog)),
		byID:     make(map[string]domain.Tool, len(catalog)),
		defaults: make(map[domain.TargetType][]string, len(mapping)),
	}
	for _, t := range catalog {
		r.tools = append(r.tools, t)
		r.byID[t.ID] = t
	}
	for tt, ids := range mapping {
		r.defaults[tt] = append([]string(nil), ids...)
	}
	return r
}

func NewDefaultRegistry() *Registry { return NewRegistry(DefaultCatalog(), DefaultMapping()) }

func (r *Registry) Get(id string) (domain.Tool, bool) {
	t, ok := r.byID[id]
	return t, ok
}

// List returns the catalog in definition order.
func (r *Registry) List() []domain.Tool {
	return append([]domain.Tool(nil), r.tools...)
}

func (r *Registry) ByCategory(category domain.ToolCategory) []domain.Tool {
	var out []domain.Tool
	for _, t := range r.tools {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// Categories returns the distinct categories, sorted.
func (r *Registry) Categories() []domain.ToolCategory {
	seen := map[domain.ToolCategory]bool{}
	var out []domain.ToolCategory
	for _, t := range r.tools {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Select resolves the tools an investigation runs. An explicit list is
// validated against the catalog and the target type; otherwise the default
// mapping for tt applies, falling back to the generic set.
func (r *Registry) Select(tt domain.TargetType, explicit []string) ([]domain.Tool, error) {
	if len(explicit) == 0 {
		ids, ok := r.defaults[tt]
		if !ok {
			ids = r.defaults[domain.TargetGeneric]
		}
		out := make([]domain.Tool, 0, len(ids))
		for _, id := range ids {
			if t, ok := r.byID[id]; ok {
				out = append(out, t)
			}
		}
		if len(out) == 0 {
			return nil, domain.Invalid("tools", "no tools available for target type "+string(tt))
		}
		return out, nil
	}

	seen := make(map[string]bool, len(explicit))
	out := make([]domain.Tool, 0, len(explicit))
	for _, id := range explicit {
		if !validToolID(id) {
			return nil, domain.Invalid("tools", "malformed tool id "+quote(id))
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		t, ok := r.byID[id]
		if !ok {
			return nil, domain.Invalid("tools", "unknown tool "+quote(id))
		}
		if !t.Accepts(tt) {
			return nil, domain.Invalid("tools", "tool "+quote(id)+" does not accept target type "+string(tt))
		}
		out = append(out, t)
	}
	return out, nil
}

// EstimateCompletion adds the mean duration of every selected tool to now.
func EstimateCompletion(now time.Time, selected []domain.Tool) time.Time {
	var total time.Duration
	for _, t := range selected {
		total += t.MeanDuration()
	}
	return now.Add(total)
}

func validToolID(id string) bool {
	if id == "" || len(id) > 64 {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '_', c == '-':
		default:
			return false
		}
	}
	return true
}

func quote(s string) string { return "\"" + s + "\"" }
