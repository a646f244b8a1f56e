package domain

import (
	"encoding/json"
	"strconv"
	"time"
)

// Core domain models shared by the orchestrator, the correlation engine and
// the adapters. JSON tags follow the wire format of the control surface.

type TargetType string

const (
	TargetEmail         TargetType = "email"
	TargetUsername      TargetType = "username"
	TargetDomain        TargetType = "domain"
	TargetIP            TargetType = "ip"
	TargetPhone         TargetType = "phone"
	TargetOnionURL      TargetType = "onion_url"
	TargetImage         TargetType = "image"
	TargetCryptoAddress TargetType = "crypto_address"
	// TargetGeneric is the fallback for target types the catalog has no mapping for.
	TargetGeneric TargetType = "generic"
)

// KnownTargetTypes lists the closed enumeration accepted by the registry.
var KnownTargetTypes = []TargetType{
	TargetEmail, TargetUsername, TargetDomain, TargetIP, TargetPhone,
	TargetOnionURL, TargetImage, TargetCryptoAddress,
}

func (t TargetType) Known() bool {
	for _, k := range KnownTargetTypes {
		if k == t {
			return true
		}
	}
	return false
}

type Tool struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Category      ToolCategory  `json:"category"`
	Description   string        `json:"description"`
	TargetTypes   []TargetType  `json:"target_types"`
	Params        []string      `json:"parameters"`
	MinDuration   time.Duration `json:"-"`
	MaxDuration   time.Duration `json:"-"`
	RatePerMinute int           `json:"rate_per_minute"`
}

// ExecutionTime renders the expected duration range in seconds, e.g. "5-15s".
func (t Tool) ExecutionTime() string {
	return seconds(t.MinDuration) + "-" + seconds(t.MaxDuration) + "s"
}

func seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}

// MarshalJSON adds the duration range to the catalog entry.
func (t Tool) MarshalJSON() ([]byte, error) {
	type plain Tool
	return json.Marshal(struct {
		plain
		ExecutionTime string `json:"execution_time"`
		MinDurationMS int64  `json:"min_duration_ms"`
		MaxDurationMS int64  `json:"max_duration_ms"`
	}{plain(t), t.ExecutionTime(), t.MinDuration.Milliseconds(), t.MaxDuration.Milliseconds()})
}

// Accepts reports whether the tool can run against the given target type.
// Generic targets are accepted by every tool.
func (t Tool) Accepts(tt TargetType) bool {
	if tt == TargetGeneric {
		return true
	}
	for _, a := range t.TargetTypes {
		if a == tt {
			return true
		}
	}
	return false
}

// MeanDuration is the midpoint of the expected execution range.
func (t Tool) MeanDuration() time.Duration {
	return (t.MinDuration + t.MaxDuration) / 2
}

type InvestigationStatus string

const (
	StatusPending   InvestigationStatus = "pending"
	StatusRunning   InvestigationStatus = "running"
	StatusCompleted InvestigationStatus = "completed"
	StatusStopped   InvestigationStatus = "stopped"
	StatusFailed    InvestigationStatus = "failed"
)

func (s InvestigationStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusStopped || s == StatusFailed
}

type RunStatus string

const (
	RunQueued    RunStatus = "queued"
	RunRunning   RunStatus = "running"
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)

func (s RunStatus) Terminal() bool { return s == RunSucceeded || s == RunFailed }

// ToolResult is what an executor returns for one tool invocation.
type ToolResult struct {
	Tool            string   `json:"tool"`
	Status          string   `json:"status"` // success|error
	FindingsCount   int      `json:"findings_count"`
	ConfidenceScore int      `json:"confidence_score"` // 0..100
	Data            ToolData `json:"data,omitempty"`
	ExecutionTimeMS int64    `json:"execution_time_ms"`
	Error           string   `json:"error,omitempty"`
}

const (
	ResultSuccess = "success"
	ResultError   = "error"
)

type ToolRun struct {
	ID              string        `json:"id"`
	InvestigationID string        `json:"investigation_id"`
	ToolID          string        `json:"tool"`
	Status          RunStatus     `json:"status"`
	Result          *ToolResult   `json:"result,omitempty"`
	Error           string        `json:"error,omitempty"`
	Duration        time.Duration `json:"duration_ns"`
	StartedAt       *time.Time    `json:"started_at,omitempty"`
	FinishedAt      *time.Time    `json:"finished_at,omitempty"`
}

type Investigation struct {
	ID          string              `json:"investigation_id"`
	Target      string              `json:"target"`
	TargetType  TargetType          `json:"target_type"`
	Status      InvestigationStatus `json:"status"`
	Runs        []ToolRun           `json:"results_by_tool"`
	Progress    float64             `json:"progress"`
	Options     map[string]any      `json:"options,omitempty"`
	Summary     *Summary            `json:"summary,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	StartedAt   *time.Time          `json:"started_at,omitempty"`
	CompletedAt *time.Time          `json:"completed_at,omitempty"`
}

// Summary aggregates the terminal tool runs of an investigation.
type Summary struct {
	TotalFindings     int     `json:"total_findings"`
	OverallConfidence float64 `json:"overall_confidence"`
	ToolsSuccessful   int     `json:"tools_successful"`
	ToolsFailed       int     `json:"tools_failed"`
	ToolsTotal        int     `json:"tools_total"`
	HighConfidence    int     `json:"high_confidence"`
	MediumConfidence  int     `json:"medium_confidence"`
	LowConfidence     int     `json:"low_confidence"`
	ExecutionTime     string  `json:"execution_time"`
}

// StatusReport is the polling view of an investigation.
type StatusReport struct {
	ID             string              `json:"investigation_id"`
	Target         string              `json:"target"`
	TargetType     TargetType          `json:"target_type"`
	Status         InvestigationStatus `json:"status"`
	Progress       float64             `json:"progress"`
	ToolsTotal     int                 `json:"tools_total"`
	ToolsCompleted int                 `json:"tools_completed"`
	ToolsSucceeded int                 `json:"tools_successful"`
	ToolsFailed    int                 `json:"tools_failed"`
	StartedAt      *time.Time          `json:"started_at,omitempty"`
	CompletedAt    *time.Time          `json:"completed_at,omitempty"`
}

// SelectedTool is the catalog view returned when an investigation starts.
type SelectedTool struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Category      ToolCategory `json:"category"`
	EstimatedTime string       `json:"estimated_time"`
}

type Started struct {
	ID                  string              `json:"investigation_id"`
	Target              string              `json:"target"`
	TargetType          TargetType          `json:"target_type"`
	ToolsSelected       []SelectedTool      `json:"tools_selected"`
	Status              InvestigationStatus `json:"status"`
	CreatedAt           time.Time           `json:"created_at"`
	EstimatedCompletion time.Time           `json:"estimated_completion"`
}

type EventType string

const (
	EventInvestigationStarted   EventType = "investigation_started"
	EventToolStarted            EventType = "tool_started"
	EventToolCompleted          EventType = "tool_completed"
	EventToolError              EventType = "tool_error"
	EventInvestigationCompleted EventType = "investigation_completed"
)

// Event is a progress notification emitted by the orchestrator.
type Event struct {
	Type            EventType           `json:"type"`
	InvestigationID string              `json:"investigation_id"`
	Target          string              `json:"target,omitempty"`
	Tool            string              `json:"tool,omitempty"`
	ToolsSelected   []string            `json:"tools_selected,omitempty"`
	Progress        float64             `json:"progress"`
	Status          InvestigationStatus `json:"status,omitempty"`
	Result          *ToolResult         `json:"result,omitempty"`
	Error           string              `json:"error,omitempty"`
	Results         []ToolRun           `json:"results,omitempty"`
	Summary         *Summary            `json:"summary,omitempty"`
	Timestamp       time.Time           `json:"timestamp"`
}

type Profile struct {
	ID                int64             `json:"id"`
	Platform          string            `json:"platform"`
	Username          string            `json:"username"`
	Bio               string            `json:"bio,omitempty"`
	IdentityMarkers   map[string]string `json:"identity_markers,omitempty"`
	UnifiedIdentityID *int64            `json:"unified_identity_id,omitempty"`
	EvidenceHash      string            `json:"evidence_hash"`
	CollectedAt       time.Time         `json:"collected_at"`
}

// Email returns the normalized email identity marker, if any.
func (p Profile) Email() string {
	if p.IdentityMarkers == nil {
		return ""
	}
	return p.IdentityMarkers["email"]
}

type UnifiedIdentity struct {
	ID         int64     `json:"id"`
	MasterHash string    `json:"master_hash"`
	RiskScore  *float64  `json:"risk_score,omitempty"` // nil when the cached value is stale
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type IdentityDetail struct {
	UnifiedIdentity
	Profiles []Profile `json:"profiles"`
}

// IdentitySummary is a row of the identity analytics listing.
type IdentitySummary struct {
	UnifiedIdentity
	Platforms  []string `json:"platforms"`
	AlertCount int      `json:"alert_count"`
}

type IdentityQuery struct {
	MinRisk  float64
	Platform string
	Limit    int
}

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank orders severities; unknown values rank below low.
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	}
	return 0
}

type Alert struct {
	ID                int64     `json:"id"`
	UnifiedIdentityID int64     `json:"unified_identity_id"`
	Severity          Severity  `json:"severity"`
	Title             string    `json:"title"`
	CreatedAt         time.Time `json:"created_at"`
}

type Comment struct {
	ID                int64     `json:"id"`
	ProfileID         int64     `json:"profile_id"`
	UnifiedIdentityID *int64    `json:"unified_identity_id,omitempty"`
	Content           string    `json:"content"`
	ContentHash       string    `json:"content_hash"`
	ToxicityScore     float64   `json:"toxicity_score"`
	PostedAt          time.Time `json:"posted_at"`
}

type Target struct {
	ID                  int64      `json:"id"`
	Value               string     `json:"value"`
	Type                TargetType `json:"target_type"`
	LastInvestigationID string     `json:"last_investigation_id"`
	Investigations      int        `json:"investigations"`
	LastFindings        int        `json:"last_findings"`
	LastConfidence      float64    `json:"last_confidence"`
	FirstSeen           time.Time  `json:"first_seen"`
	LastSeen            time.Time  `json:"last_seen"`
}

// RiskInputs is the data a risk score is derived from.
type RiskInputs struct {
	PlatformCount int
	CommentCount  int
	ToxicComments int
	AlertCount    int
	MaxSeverity   Severity
}

type SignalType string

const (
	SignalExactMarker SignalType = "exact-marker-match"
	SignalBio         SignalType = "bio-similarity"
	SignalTemporal    SignalType = "temporal-coincidence"
	SignalContentHash SignalType = "content-hash-collision"
)

// CorrelationSignal links two profiles; it only lives for one correlation decision.
type CorrelationSignal struct {
	Type       SignalType `json:"type"`
	Source     int64      `json:"source_profile"`
	Target     int64      `json:"target_profile"`
	Confidence float64    `json:"confidence"`
}

type NetworkType string

const (
	NetworkTemporal NetworkType = "temporal-coordination"
	NetworkContent  NetworkType = "content-similarity"
)

type CoordinatedNetwork struct {
	Type     NetworkType `json:"network_type"`
	Members  []int64     `json:"identity_group"`
	Strength int         `json:"interaction_count"`
	Window   string      `json:"window"`
}

// MergePlan describes one transactional identity merge.
type MergePlan struct {
	Target     int64
	Sources    []int64
	Attach     []int64 // profiles that must end up owned by Target
	MasterHash string
}
