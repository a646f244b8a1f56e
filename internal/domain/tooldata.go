package domain

import (
	"encoding/json"
	"fmt"
)

type ToolCategory string

const (
	CategoryPhone    ToolCategory = "phone"
	CategoryEmail    ToolCategory = "email"
	CategoryBreach   ToolCategory = "breach"
	CategoryUsername ToolCategory = "username"
	CategoryDomain   ToolCategory = "domain"
	CategoryNetwork  ToolCategory = "network"
	CategoryDarknet  ToolCategory = "darknet"
	CategorySocial   ToolCategory = "social"
	CategoryImage    ToolCategory = "image"
	CategoryCrypto   ToolCategory = "crypto"
	CategoryGeneric  ToolCategory = "generic"
)

// ToolData is the category-specific payload of a tool result.
type ToolData interface {
	Category() ToolCategory
}

// FoundProfile is an account a username or social tool found on some platform.
type FoundProfile struct {
	Platform string            `json:"platform"`
	Username string            `json:"username"`
	URL      string            `json:"url,omitempty"`
	Bio      string            `json:"bio,omitempty"`
	Markers  map[string]string `json:"markers,omitempty"`
}

type UsernameData struct {
	Profiles []FoundProfile `json:"profiles"`
}

type EmailData struct {
	Email           string   `json:"email"`
	RegisteredSites []string `json:"registered_sites"`
}

type Breach struct {
	Name      string   `json:"name"`
	Date      string   `json:"date,omitempty"`
	DataTypes []string `json:"data_types,omitempty"`
}

type BreachData struct {
	Breaches []Breach `json:"breaches"`
}

type PhoneData struct {
	Number      string `json:"number"`
	CountryCode string `json:"country_code,omitempty"`
	Carrier     string `json:"carrier,omitempty"`
	LineType    string `json:"line_type,omitempty"`
	Valid       bool   `json:"valid"`
}

type DomainData struct {
	Domain     string   `json:"domain"`
	Subdomains []string `json:"subdomains,omitempty"`
	Registrar  string   `json:"registrar,omitempty"`
	Created    string   `json:"created,omitempty"`
}

type Service struct {
	Port    int    `json:"port"`
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

type NetworkData struct {
	IP        string    `json:"ip"`
	Country   string    `json:"country,omitempty"`
	City      string    `json:"city,omitempty"`
	ASN       string    `json:"asn,omitempty"`
	OpenPorts []int     `json:"open_ports,omitempty"`
	Services  []Service `json:"services,omitempty"`
}

type DarknetData struct {
	Address         string   `json:"address"`
	Online          bool     `json:"online"`
	Pages           []string `json:"pages,omitempty"`
	Vulnerabilities []string `json:"vulnerabilities,omitempty"`
}

type SocialData struct {
	Profile   FoundProfile `json:"profile"`
	Followers int          `json:"followers"`
	Posts     int          `json:"posts"`
}

type ImageData struct {
	Camera    string            `json:"camera,omitempty"`
	Taken     string            `json:"taken,omitempty"`
	GPS       string            `json:"gps,omitempty"`
	Software  string            `json:"software,omitempty"`
	RawFields map[string]string `json:"fields,omitempty"`
}

type CryptoData struct {
	Address      string  `json:"address"`
	Chain        string  `json:"chain"`
	Balance      float64 `json:"balance"`
	Transactions int     `json:"transactions"`
}

// GenericData carries payloads of categories without a dedicated shape.
type GenericData struct {
	Raw json.RawMessage `json:"raw,omitempty"`
}

func (UsernameData) Category() ToolCategory { return CategoryUsername }
func (EmailData) Category() ToolCategory    { return CategoryEmail }
func (BreachData) Category() ToolCategory   { return CategoryBreach }
func (PhoneData) Category() ToolCategory    { return CategoryPhone }
func (DomainData) Category() ToolCategory   { return CategoryDomain }
func (NetworkData) Category() ToolCategory  { return CategoryNetwork }
func (DarknetData) Category() ToolCategory  { return CategoryDarknet }
func (SocialData) Category() ToolCategory   { return CategorySocial }
func (ImageData) Category() ToolCategory    { return CategoryImage }
func (CryptoData) Category() ToolCategory   { return CategoryCrypto }
func (GenericData) Category() ToolCategory  { return CategoryGeneric }

// DecodeToolData decodes a raw tool payload into the variant for category.
func DecodeToolData(category ToolCategory, raw json.RawMessage) (ToolData, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var (
		out ToolData
		err error
	)
	switch category {
	case CategoryUsername:
		var d UsernameData
		err = json.Unmarshal(raw, &d)
		out = d
	case CategoryEmail:
		var d EmailData
		err = json.Unmarshal(raw, &d)
		out = d
	case CategoryBreach:
		var d BreachData
		err = json.Unmarshal(raw, &d)
		out = d
	case CategoryPhone:
		var d PhoneData
		err = json.Unmarshal(raw, &d)
		out = d
	case CategoryDomain:
		var d DomainData
		err = json.Unmarshal(raw, &d)
		out = d
	case CategoryNetwork:
		var d NetworkData
		err = json.Unmarshal(raw, &d)
		out = d
	case CategoryDarknet:
		var d DarknetData
		err = json.Unmarshal(raw, &d)
		out = d
	case CategorySocial:
		var d SocialData
		err = json.Unmarshal(raw, &d)
		out = d
	case CategoryImage:
		var d ImageData
		err = json.Unmarshal(raw, &d)
		out = d
	case CategoryCrypto:
		var d CryptoData
		err = json.Unmarshal(raw, &d)
		out = d
	case CategoryGeneric:
		out = GenericData{Raw: append(json.RawMessage(nil), raw...)}
	default:
		return nil, fmt.Errorf("decode tool data: unknown category %q", category)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s tool data: %w", category, err)
	}
	return out, nil
}

// FoundProfiles extracts the platform accounts a result reports, whatever its variant.
func FoundProfiles(d ToolData) []FoundProfile {
	switch v := d.(type) {
	case UsernameData:
		return v.Profiles
	case SocialData:
		if v.Profile.Platform == "" || v.Profile.Username == "" {
			return nil
		}
		return []FoundProfile{v.Profile}
	}
	return nil
}
