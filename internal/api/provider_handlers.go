package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/terangaapp/teranga-server/internal/service"
)

func (s *Server) registerProviderRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listProviders",
		Method:      http.MethodGet,
		Path:        "/api/v1/providers",
		Summary:     "List providers",
		Description: "Lists providers, optionally filtered by category and city.",
		Tags:        []string{"Providers"},
	}, s.handleListProviders)

	huma.Register(s.api, huma.Operation{
		OperationID: "getProviderProfile",
		Method:      http.MethodGet,
		Path:        "/api/v1/providers/{id}",
		Summary:     "Get provider profile",
		Description: "Returns the provider with its recommendation count, ranked liked/watch labels, and attribute vote tallies.",
		Tags:        []string{"Providers"},
	}, s.handleGetProviderProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "claimProvider",
		Method:      http.MethodPost,
		Path:        "/api/v1/providers/claim",
		Summary:     "Claim a listing",
		Description: "Lets a provider take ownership of their listing by proving the phone number it was referred under. First claimant wins; later claimants still see the listing and its social proof.",
		Tags:        []string{"Providers"},
	}, s.handleClaimProvider)

	huma.Register(s.api, huma.Operation{
		OperationID: "revealProviderContact",
		Method:      http.MethodGet,
		Path:        "/api/v1/providers/{id}/contact",
		Summary:     "Reveal provider contact",
		Description: "Decrypts and returns the provider's phone number for contacting them.",
		Tags:        []string{"Providers"},
	}, s.handleRevealContact)
}

// === DTOs ===

// ProviderResponse contains the public fields of a provider.
type ProviderResponse struct {
	ID        string    `json:"id" doc:"Provider ID"`
	Name      string    `json:"name" doc:"Provider name"`
	Category  string    `json:"category" doc:"Service category"`
	City      string    `json:"city" doc:"City"`
	Claimed   bool      `json:"claimed" doc:"Whether the listing has been claimed by its owner"`
	CreatedAt time.Time `json:"created_at" doc:"First referral timestamp"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update timestamp"`
}

// ListProvidersInput contains optional directory filters.
type ListProvidersInput struct {
	Category string `query:"category" doc:"Filter by service category"`
	City     string `query:"city" doc:"Filter by city"`
}

// ListProvidersOutput wraps the provider list for Huma.
type ListProvidersOutput struct {
	Body struct {
		Providers []ProviderResponse `json:"providers" doc:"Matching providers"`
	}
}

// AttributeTallyResponse is one attribute's aggregated votes.
type AttributeTallyResponse struct {
	Attribute string   `json:"attribute" doc:"Attribute name"`
	Likes     int      `json:"likes" doc:"Number of likes"`
	Notes     []string `json:"notes,omitempty" doc:"Free-text observations"`
}

// ProfileResponse is the aggregated public view of a provider.
type ProfileResponse struct {
	Provider            ProviderResponse         `json:"provider" doc:"The provider"`
	RecommendationCount int                      `json:"recommendation_count" doc:"Number of referrals"`
	TopLiked            []string                 `json:"top_liked" doc:"Most-mentioned liked labels, ranked"`
	TopWatch            []string                 `json:"top_watch" doc:"Most-mentioned watch-out labels, ranked"`
	VoteTallies         []AttributeTallyResponse `json:"vote_tallies,omitempty" doc:"Per-attribute vote tallies"`
}

// ProfileInput identifies the provider to profile.
type ProfileInput struct {
	ID string `path:"id" doc:"Provider ID"`
}

// ProfileOutput wraps the profile response for Huma.
type ProfileOutput struct {
	Body ProfileResponse
}

// ClaimRequest is the request body for claiming a listing.
type ClaimRequest struct {
	Phone string `json:"phone" validate:"required,max=32" doc:"The phone number the listing was referred under"`
}

// ClaimInput wraps the claim request with identity and proxy headers for Huma.
type ClaimInput struct {
	Body          ClaimRequest
	XUserID       string `header:"X-User-ID" doc:"Gateway-verified caller identity"`
	XForwardedFor string `header:"X-Forwarded-For"`
	XRealIP       string `header:"X-Real-IP"`
}

// ClaimResponse reports the claim outcome.
type ClaimResponse struct {
	ProviderID          string `json:"provider_id,omitempty" doc:"Provider ID, empty when the number is unknown"`
	Claimed             bool   `json:"claimed" doc:"Whether this call won ownership"`
	RecommendationCount int    `json:"recommendation_count" doc:"Referrals on the listing"`
}

// ClaimOutput wraps the claim response for Huma.
type ClaimOutput struct {
	Body ClaimResponse
}

// RevealContactInput identifies the provider whose number to reveal.
type RevealContactInput struct {
	ID            string `path:"id" doc:"Provider ID"`
	XUserID       string `header:"X-User-ID" doc:"Gateway-verified caller identity"`
	XForwardedFor string `header:"X-Forwarded-For"`
	XRealIP       string `header:"X-Real-IP"`
}

// RevealContactOutput wraps the revealed number for Huma.
type RevealContactOutput struct {
	Body struct {
		Phone string `json:"phone" doc:"The provider's phone number in canonical form"`
	}
}

// === Handlers ===

func (s *Server) handleListProviders(ctx context.Context, input *ListProvidersInput) (*ListProvidersOutput, error) {
	providers, err := s.services.Provider.List(ctx, input.Category, input.City)
	if err != nil {
		return nil, err
	}

	out := &ListProvidersOutput{}
	out.Body.Providers = make([]ProviderResponse, 0, len(providers))
	for _, p := range providers {
		out.Body.Providers = append(out.Body.Providers, ProviderResponse{
			ID:        p.ID,
			Name:      p.Name,
			Category:  p.Category,
			City:      p.City,
			Claimed:   p.IsClaimed(),
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		})
	}
	return out, nil
}

func (s *Server) handleGetProviderProfile(ctx context.Context, input *ProfileInput) (*ProfileOutput, error) {
	profile, err := s.services.Provider.GetProfile(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	resp := ProfileResponse{
		Provider: ProviderResponse{
			ID:        profile.Provider.ID,
			Name:      profile.Provider.Name,
			Category:  profile.Provider.Category,
			City:      profile.Provider.City,
			Claimed:   profile.Provider.IsClaimed(),
			CreatedAt: profile.Provider.CreatedAt,
			UpdatedAt: profile.Provider.UpdatedAt,
		},
		RecommendationCount: profile.RecommendationCount,
		TopLiked:            profile.TopLiked,
		TopWatch:            profile.TopWatch,
	}
	for _, tally := range profile.VoteTallies {
		resp.VoteTallies = append(resp.VoteTallies, AttributeTallyResponse{
			Attribute: string(tally.Attribute),
			Likes:     tally.Likes,
			Notes:     tally.Notes,
		})
	}

	return &ProfileOutput{Body: resp}, nil
}

func (s *Server) handleClaimProvider(ctx context.Context, input *ClaimInput) (*ClaimOutput, error) {
	userID, err := requireUser(input.XUserID)
	if err != nil {
		return nil, err
	}
	if err := s.checkRateLimit(s.claimRateLimiter, clientIP(input.XForwardedFor, input.XRealIP), "claim"); err != nil {
		return nil, err
	}

	result, err := s.services.Provider.Claim(ctx, service.ClaimRequest{
		Phone:  input.Body.Phone,
		UserID: userID,
	})
	if err != nil {
		return nil, err
	}

	return &ClaimOutput{
		Body: ClaimResponse{
			ProviderID:          result.ProviderID,
			Claimed:             result.Claimed,
			RecommendationCount: result.RecommendationCount,
		},
	}, nil
}

func (s *Server) handleRevealContact(ctx context.Context, input *RevealContactInput) (*RevealContactOutput, error) {
	if _, err := requireUser(input.XUserID); err != nil {
		return nil, err
	}
	if err := s.checkRateLimit(s.claimRateLimiter, clientIP(input.XForwardedFor, input.XRealIP), "reveal"); err != nil {
		return nil, err
	}

	number, err := s.services.Provider.RevealContact(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	out := &RevealContactOutput{}
	out.Body.Phone = number
	return out, nil
}
