package ws

import (
	"time"

	"aura/internal/domain"
)

// Command is a client message. Fields are flat; which ones matter depends on Type.
type Command struct {
	Type            string         `json:"type"`
	InvestigationID string         `json:"investigation_id,omitempty"`
	Target          string         `json:"target,omitempty"`
	TargetType      string         `json:"target_type,omitempty"`
	Tools           []string       `json:"tools,omitempty"`
	Options         map[string]any `json:"options,omitempty"`
	Tool            string         `json:"tool,omitempty"`
	Parameters      map[string]any `json:"parameters,omitempty"`
}

const (
	CmdStartInvestigation = "start_investigation"
	CmdStopInvestigation  = "stop_investigation"
	CmdStatus             = "get_investigation_status"
	CmdExecuteTool        = "execute_tool"
	CmdSubscribe          = "subscribe"
)

const (
	MsgWelcome                = "welcome"
	MsgInvestigationStopped   = "investigation_stopped"
	MsgInvestigationStatus    = "investigation_status"
	MsgInvestigationNotFound  = "investigation_not_found"
	MsgToolExecutionStarted   = "tool_execution_started"
	MsgToolExecutionCompleted = "tool_execution_completed"
	MsgToolExecutionError     = "tool_execution_error"
	MsgError                  = "error"
)

// Reply is every server message that is not an investigation event.
type Reply struct {
	Type            string               `json:"type"`
	InvestigationID string               `json:"investigation_id,omitempty"`
	ExecutionID     string               `json:"execution_id,omitempty"`
	Tool            string               `json:"tool,omitempty"`
	Message         string               `json:"message,omitempty"`
	Error           string               `json:"error,omitempty"`
	Field           string               `json:"field,omitempty"`
	AvailableTools  int                  `json:"available_tools,omitempty"`
	Investigation   *domain.StatusReport `json:"investigation,omitempty"`
	Result          *domain.ToolResult   `json:"result,omitempty"`
	Timestamp       time.Time            `json:"timestamp"`
}
