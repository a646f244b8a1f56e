package httpadapter

import (
	"context"

	"aura/internal/api"
	"aura/internal/domain"
	"aura/internal/workers/correlator"
)

// PostProfiles ingests a scraped profile. With correlate=true the profile is
// folded into an identity before the response is written.
func (s *Server) PostProfiles(ctx context.Context, req api.PostProfilesRequestObject) (api.PostProfilesResponseObject, error) {
	body := req.Body
	p := domain.Profile{
		Platform:        body.Platform,
		Username:        body.Username,
		Bio:             deref(body.Bio),
		IdentityMarkers: deref(body.IdentityMarkers),
		CollectedAt:     deref(body.CollectedAt),
	}
	p, err := s.correlation.IngestProfile(ctx, p)
	if err != nil {
		return nil, err
	}
	if deref(req.Params.Correlate) {
		if _, err := correlator.ProcessInline(ctx, s.queue, s.processor, p.ID); err != nil {
			return nil, err
		}
		if p, err = s.correlation.GetProfile(ctx, p.ID); err != nil {
			return nil, err
		}
	}
	return api.PostProfiles201JSONResponse(p), nil
}

func (s *Server) GetProfilesId(ctx context.Context, req api.GetProfilesIdRequestObject) (api.GetProfilesIdResponseObject, error) {
	p, err := s.correlation.GetProfile(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	return api.GetProfilesId200JSONResponse(p), nil
}

func (s *Server) PostProfilesIdCorrelate(ctx context.Context, req api.PostProfilesIdCorrelateRequestObject) (api.PostProfilesIdCorrelateResponseObject, error) {
	identityID, err := correlator.ProcessInline(ctx, s.queue, s.processor, req.Id)
	if err != nil {
		return nil, err
	}
	identity, err := s.correlation.GetIdentity(ctx, identityID)
	if err != nil {
		return nil, err
	}
	return api.PostProfilesIdCorrelate200JSONResponse{ProfileId: req.Id, UnifiedIdentityId: identityID, Identity: identity}, nil
}

func (s *Server) GetIdentities(ctx context.Context, req api.GetIdentitiesRequestObject) (api.GetIdentitiesResponseObject, error) {
	list, err := s.correlation.ListIdentities(ctx, domain.IdentityQuery{
		MinRisk:  deref(req.Params.MinRisk),
		Platform: deref(req.Params.Platform),
		Limit:    deref(req.Params.Limit),
	})
	if err != nil {
		return nil, err
	}
	return api.GetIdentities200JSONResponse{Identities: list, Count: len(list)}, nil
}

func (s *Server) GetIdentitiesId(ctx context.Context, req api.GetIdentitiesIdRequestObject) (api.GetIdentitiesIdResponseObject, error) {
	identity, err := s.correlation.GetIdentity(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	return api.GetIdentitiesId200JSONResponse(identity), nil
}

func (s *Server) GetIdentitiesIdRisk(ctx context.Context, req api.GetIdentitiesIdRiskRequestObject) (api.GetIdentitiesIdRiskResponseObject, error) {
	score, err := s.correlation.CalculateRiskScore(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	return api.GetIdentitiesIdRisk200JSONResponse{UnifiedIdentityId: req.Id, RiskScore: score}, nil
}

func (s *Server) PostIdentitiesIdAlerts(ctx context.Context, req api.PostIdentitiesIdAlertsRequestObject) (api.PostIdentitiesIdAlertsResponseObject, error) {
	a, err := s.correlation.AddAlert(ctx, domain.Alert{
		UnifiedIdentityID: req.Id,
		Severity:          domain.Severity(req.Body.Severity),
		Title:             req.Body.Title,
	})
	if err != nil {
		return nil, err
	}
	return api.PostIdentitiesIdAlerts201JSONResponse(a), nil
}

// PostComments stores a comment; a comment without toxicity_score is scored
// by the lexical pre-filter.
func (s *Server) PostComments(ctx context.Context, req api.PostCommentsRequestObject) (api.PostCommentsResponseObject, error) {
	body := req.Body
	c := domain.Comment{ProfileID: body.ProfileId, Content: body.Content, ToxicityScore: -1, PostedAt: deref(body.PostedAt)}
	if body.ToxicityScore != nil {
		if *body.ToxicityScore < 0 {
			return nil, domain.Invalid("toxicity_score", "must be within [0,1]")
		}
		c.ToxicityScore = *body.ToxicityScore
	}
	c, err := s.correlation.AddComment(ctx, c)
	if err != nil {
		return nil, err
	}
	return api.PostComments201JSONResponse(c), nil
}

func (s *Server) GetNetworks(ctx context.Context, _ api.GetNetworksRequestObject) (api.GetNetworksResponseObject, error) {
	networks, err := s.correlation.DetectCoordinatedNetworks(ctx)
	if err != nil {
		return nil, err
	}
	return api.GetNetworks200JSONResponse{Networks: networks, Count: len(networks)}, nil
}
