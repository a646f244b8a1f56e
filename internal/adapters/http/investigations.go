package httpadapter

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"aura/internal/api"
	"aura/internal/domain"
	"aura/internal/ports"
)

const (
	defaultWaitTimeout = 30
	maxWaitTimeout     = 600
)

// PostInvestigate starts an investigation. With wait=true it blocks until the
// investigation is terminal or the timeout elapses, then answers with the
// full results.
func (s *Server) PostInvestigate(ctx context.Context, req api.PostInvestigateRequestObject) (api.PostInvestigateResponseObject, error) {
	body := req.Body
	started, err := s.investigations.Start(ctx, ports.StartRequest{
		Target:     body.Target,
		TargetType: deref(body.TargetType),
		Tools:      deref(body.Tools),
		Options:    deref(body.Options),
	})
	if err != nil {
		return nil, err
	}
	if !deref(req.Params.Wait) {
		return api.PostInvestigate202JSONResponse(started), nil
	}

	secs := defaultWaitTimeout
	if t := deref(req.Params.Timeout); t > 0 {
		secs = min(t, maxWaitTimeout)
	}
	wctx, cancel := context.WithTimeout(ctx, time.Duration(secs)*time.Second)
	defer cancel()
	if err := s.investigations.Wait(wctx, started.ID); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return api.PostInvestigate202JSONResponse(started), nil
		}
		return nil, err
	}
	inv, err := s.investigations.Results(ctx, started.ID)
	if err != nil {
		return nil, err
	}
	return api.PostInvestigate200JSONResponse(inv), nil
}

func (s *Server) GetInvestigationsId(ctx context.Context, req api.GetInvestigationsIdRequestObject) (api.GetInvestigationsIdResponseObject, error) {
	st, err := s.investigations.Status(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	return api.GetInvestigationsId200JSONResponse(st), nil
}

func (s *Server) PostInvestigationsIdStop(ctx context.Context, req api.PostInvestigationsIdStopRequestObject) (api.PostInvestigationsIdStopResponseObject, error) {
	st, err := s.investigations.Stop(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	return api.PostInvestigationsIdStop200JSONResponse(st), nil
}

func (s *Server) GetResultsId(ctx context.Context, req api.GetResultsIdRequestObject) (api.GetResultsIdResponseObject, error) {
	inv, err := s.investigations.Results(ctx, req.Id)
	if errors.Is(err, domain.ErrInProgress) {
		return api.GetResultsId409JSONResponse{Error: err.Error()}, nil
	}
	if err != nil {
		return nil, err
	}
	return api.GetResultsId200JSONResponse(inv), nil
}

func (s *Server) GetTools(_ context.Context, _ api.GetToolsRequestObject) (api.GetToolsResponseObject, error) {
	all := s.catalog.List()
	cats := s.catalog.Categories()
	resp := api.GetTools200JSONResponse{
		TotalTools:  len(all),
		Available:   all,
		Categorized: make(map[string][]api.Tool, len(cats)),
		Categories:  make([]string, 0, len(cats)),
	}
	for _, c := range cats {
		resp.Categorized[string(c)] = s.catalog.ByCategory(c)
		resp.Categories = append(resp.Categories, string(c))
	}
	return resp, nil
}

func (s *Server) GetToolsCategory(_ context.Context, req api.GetToolsCategoryRequestObject) (api.GetToolsCategoryResponseObject, error) {
	list := s.catalog.ByCategory(domain.ToolCategory(req.Category))
	if len(list) == 0 {
		return api.GetToolsCategory404JSONResponse{NotFoundJSONResponse: api.NotFoundJSONResponse{Error: domain.ErrNotFound.Error()}}, nil
	}
	return api.GetToolsCategory200JSONResponse{Category: req.Category, Tools: list, TotalTools: len(list)}, nil
}

// PostExecuteToolId runs one tool outside any investigation. The target may
// also be passed as parameters.target.
func (s *Server) PostExecuteToolId(ctx context.Context, req api.PostExecuteToolIdRequestObject) (api.PostExecuteToolIdResponseObject, error) {
	params := deref(req.Body.Parameters)
	target := deref(req.Body.Target)
	if target == "" {
		if t, ok := params["target"].(string); ok {
			target = t
		}
	}
	res, err := s.investigations.ExecuteTool(ctx, ports.ExecuteRequest{ToolID: req.ToolId, Target: target, Params: params})
	if err != nil {
		return nil, err
	}
	return api.PostExecuteToolId200JSONResponse{ExecutionId: "EXEC-" + uuid.NewString(), Tool: req.ToolId, Result: res}, nil
}
