package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/terangaapp/teranga-server/internal/service"
)

func (s *Server) registerVoteRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "castVote",
		Method:      http.MethodPut,
		Path:        "/api/v1/providers/{id}/votes",
		Summary:     "Cast an attribute vote",
		Description: "Records or replaces the caller's vote on one attribute of a provider. One vote per (provider, voter, attribute).",
		Tags:        []string{"Votes"},
	}, s.handleCastVote)

	huma.Register(s.api, huma.Operation{
		OperationID: "getVoteTallies",
		Method:      http.MethodGet,
		Path:        "/api/v1/providers/{id}/votes",
		Summary:     "Get a provider's vote tallies",
		Tags:        []string{"Votes"},
	}, s.handleGetVoteTallies)
}

// === DTOs ===

// CastVoteRequest is the request body for a vote.
type CastVoteRequest struct {
	Attribute string `json:"attribute" validate:"required" enum:"job_quality,timeliness,cleanliness,respectfulness,reliability" doc:"Rated attribute"`
	Kind      string `json:"kind" validate:"required" enum:"like,note" doc:"Vote kind"`
	Text      string `json:"text,omitempty" validate:"max=500" doc:"Observation text, only meaningful for kind=note"`
}

// CastVoteInput wraps the vote request with the identity header for Huma.
type CastVoteInput struct {
	ID      string `path:"id" doc:"Provider ID"`
	Body    CastVoteRequest
	XUserID string `header:"X-User-ID" doc:"Gateway-verified caller identity"`
}

// VoteResponse contains the stored vote.
type VoteResponse struct {
	ProviderID string `json:"provider_id" doc:"Provider"`
	Attribute  string `json:"attribute" doc:"Rated attribute"`
	Kind       string `json:"kind" doc:"Vote kind"`
	Text       string `json:"text,omitempty" doc:"Observation text"`
}

// CastVoteOutput wraps the vote response for Huma.
type CastVoteOutput struct {
	Body VoteResponse
}

// VoteTalliesInput identifies the provider.
type VoteTalliesInput struct {
	ID string `path:"id" doc:"Provider ID"`
}

// VoteTalliesOutput wraps the tallies for Huma.
type VoteTalliesOutput struct {
	Body struct {
		Tallies []AttributeTallyResponse `json:"tallies" doc:"Per-attribute tallies, canonical attribute order"`
	}
}

// === Handlers ===

func (s *Server) handleCastVote(ctx context.Context, input *CastVoteInput) (*CastVoteOutput, error) {
	userID, err := requireUser(input.XUserID)
	if err != nil {
		return nil, err
	}

	vote, err := s.services.Vote.Cast(ctx, service.CastRequest{
		ProviderID: input.ID,
		Attribute:  input.Body.Attribute,
		Kind:       input.Body.Kind,
		Text:       input.Body.Text,
		VoterID:    userID,
	})
	if err != nil {
		return nil, err
	}

	return &CastVoteOutput{
		Body: VoteResponse{
			ProviderID: vote.ProviderID,
			Attribute:  string(vote.Attribute),
			Kind:       string(vote.Kind),
			Text:       vote.Text,
		},
	}, nil
}

func (s *Server) handleGetVoteTallies(ctx context.Context, input *VoteTalliesInput) (*VoteTalliesOutput, error) {
	tallies, err := s.services.Vote.Tallies(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	out := &VoteTalliesOutput{}
	out.Body.Tallies = make([]AttributeTallyResponse, 0, len(tallies))
	for _, tally := range tallies {
		out.Body.Tallies = append(out.Body.Tallies, AttributeTallyResponse{
			Attribute: string(tally.Attribute),
			Likes:     tally.Likes,
			Notes:     tally.Notes,
		})
	}
	return out, nil
}
