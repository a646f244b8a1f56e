package ports

import (
	"context"

	"aura/internal/domain"
)

// ToolExecutor runs one OSINT tool against a target. Implementations must
// return promptly once ctx is done.
type ToolExecutor interface {
	Execute(ctx context.Context, toolID, target string, params map[string]any) (domain.ToolResult, error)
}

type ToolExecutorFunc func(ctx context.Context, toolID, target string, params map[string]any) (domain.ToolResult, error)

func (f ToolExecutorFunc) Execute(ctx context.Context, toolID, target string, params map[string]any) (domain.ToolResult, error) {
	return f(ctx, toolID, target, params)
}
