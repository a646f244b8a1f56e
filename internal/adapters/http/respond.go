package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"

	"aura/internal/api"
	"aura/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto status codes.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, api.Error{Error: verr.Error(), Field: &verr.Field})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, api.Error{Error: domain.ErrNotFound.Error()})
	case errors.Is(err, domain.ErrInProgress):
		writeJSON(w, http.StatusConflict, api.Error{Error: err.Error()})
	default:
		s.log.Errorw("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, api.Error{Error: err.Error()})
	}
}

// requestError answers malformed parameters and bodies rejected before an
// operation runs.
func (s *Server) requestError(w http.ResponseWriter, r *http.Request, err error) {
	field := "body"
	var perr *api.InvalidParamFormatError
	if errors.As(err, &perr) {
		field = perr.ParamName
	}
	s.writeError(w, r, domain.Invalid(field, err.Error()))
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
