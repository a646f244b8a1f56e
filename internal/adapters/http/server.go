package httpadapter

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"aura/internal/api"
	"aura/internal/ports"
	"aura/internal/workers/correlator"
)

var _ api.StrictServerInterface = (*Server)(nil)

// Pinger reports whether the persistence layer is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server implements the generated StrictServerInterface over the
// investigation and correlation services.
type Server struct {
	investigations ports.Investigations
	catalog        ports.ToolCatalog
	correlation    ports.Correlation
	queue          ports.CorrelationQueue
	processor      correlator.Processor
	store          Pinger
	events         http.Handler
	log            *zap.SugaredLogger

	// RequestTimeout bounds every operation except the blocking investigate call.
	RequestTimeout time.Duration
}

func New(inv ports.Investigations, catalog ports.ToolCatalog, corr ports.Correlation, queue ports.CorrelationQueue, processor correlator.Processor, store Pinger, events http.Handler, log *zap.SugaredLogger) *Server {
	return &Server{
		investigations: inv,
		catalog:        catalog,
		correlation:    corr,
		queue:          queue,
		processor:      processor,
		store:          store,
		events:         events,
		log:            log,
		RequestTimeout: 30 * time.Second,
	}
}

// Routes mounts the generated handlers and the event channel on one router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	if s.events != nil {
		r.Handle("/ws", s.events)
	}

	handler := api.NewStrictHandlerWithOptions(s, []api.StrictMiddlewareFunc{s.deadline}, api.StrictHTTPServerOptions{
		RequestErrorHandlerFunc:  s.requestError,
		ResponseErrorHandlerFunc: s.writeError,
	})
	api.HandlerWithOptions(handler, api.ChiServerOptions{BaseRouter: r, ErrorHandlerFunc: s.requestError})
	return r
}

func (s *Server) deadline(f api.StrictHandlerFunc, operationID string) api.StrictHandlerFunc {
	if operationID == "PostInvestigate" || s.RequestTimeout <= 0 {
		return f
	}
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request, request any) (any, error) {
		ctx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
		defer cancel()
		return f(ctx, w, r, request)
	}
}

func (s *Server) GetHealthz(ctx context.Context, _ api.GetHealthzRequestObject) (api.GetHealthzResponseObject, error) {
	if s.store != nil {
		if err := s.store.Ping(ctx); err != nil {
			s.log.Warnw("health check failed", "error", err)
			return api.GetHealthz503JSONResponse{Status: "unavailable"}, nil
		}
	}
	return api.GetHealthz200JSONResponse{Status: "ok"}, nil
}
