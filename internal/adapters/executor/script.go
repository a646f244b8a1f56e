package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"aura/internal/domain"
	"aura/internal/ports"
)

// Script runs an external program named after the tool id from Dir. The
// program gets the target as its only argument and the parameters as JSON on
// stdin, and prints a JSON result on stdout.
type Script struct {
	Dir     string
	catalog ports.ToolCatalog
}

func NewScript(dir string, catalog ports.ToolCatalog) *Script {
	return &Script{Dir: dir, catalog: catalog}
}

type scriptOutput struct {
	Status          string          `json:"status"`
	FindingsCount   int             `json:"findings_count"`
	ConfidenceScore int             `json:"confidence_score"`
	Data            json.RawMessage `json:"data"`
	Error           string          `json:"error"`
}

func (s *Script) path(toolID string) string { return filepath.Join(s.Dir, toolID) }

// Has reports whether an executable exists for toolID.
func (s *Script) Has(toolID string) bool {
	if s.Dir == "" || strings.ContainsAny(toolID, `/\.`) {
		return false
	}
	fi, err := os.Stat(s.path(toolID))
	return err == nil && !fi.IsDir() && fi.Mode()&0o111 != 0
}

func (s *Script) Execute(ctx context.Context, toolID, target string, params map[string]any) (domain.ToolResult, error) {
	tool, ok := s.catalog.Get(toolID)
	if !ok {
		return domain.ToolResult{}, fmt.Errorf("unknown tool %q", toolID)
	}
	if !s.Has(toolID) {
		return domain.ToolResult{}, fmt.Errorf("no executable for tool %q in %s", toolID, s.Dir)
	}
	in, err := json.Marshal(params)
	if err != nil {
		return domain.ToolResult{}, fmt.Errorf("encode parameters: %w", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.path(toolID), target)
	cmd.Stdin = bytes.NewReader(in)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return domain.ToolResult{}, ctx.Err()
		}
		msg := strings.TrimSpace(stderr.String())
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && msg != "" {
			return domain.ToolResult{}, fmt.Errorf("%s: %s", toolID, msg)
		}
		return domain.ToolResult{}, fmt.Errorf("%s: %w", toolID, err)
	}

	var out scriptOutput
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		return domain.ToolResult{}, fmt.Errorf("%s: decode output: %w", toolID, err)
	}
	data, err := domain.DecodeToolData(tool.Category, out.Data)
	if err != nil {
		return domain.ToolResult{}, fmt.Errorf("%s: %w", toolID, err)
	}
	if out.Status == "" {
		out.Status = domain.ResultSuccess
	}
	return domain.ToolResult{
		Tool:            toolID,
		Status:          out.Status,
		FindingsCount:   out.FindingsCount,
		ConfidenceScore: out.ConfidenceScore,
		Data:            data,
		Error:           out.Error,
	}, nil
}

// Router sends a tool to its script when one is installed and to Fallback otherwise.
type Router struct {
	Script   *Script
	Fallback ports.ToolExecutor
}

func (r Router) Execute(ctx context.Context, toolID, target string, params map[string]any) (domain.ToolResult, error) {
	if r.Script != nil && r.Script.Has(toolID) {
		return r.Script.Execute(ctx, toolID, target, params)
	}
	if r.Fallback == nil {
		return domain.ToolResult{}, fmt.Errorf("no executor for tool %q", toolID)
	}
	return r.Fallback.Execute(ctx, toolID, target, params)
}
