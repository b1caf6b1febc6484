package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/terangaapp/teranga-server/internal/service"
)

func (s *Server) registerRecommendationRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "addRecommendation",
		Method:        http.MethodPost,
		Path:          "/api/v1/recommendations",
		Summary:       "Refer a provider",
		Description:   "Records a referral: the provider's details as the recommender knows them plus a free-text note. Creates the provider listing on first sighting of the phone number.",
		Tags:          []string{"Recommendations"},
		DefaultStatus: http.StatusCreated,
	}, s.handleAddRecommendation)

	huma.Register(s.api, huma.Operation{
		OperationID: "listProviderRecommendations",
		Method:      http.MethodGet,
		Path:        "/api/v1/providers/{id}/recommendations",
		Summary:     "List a provider's recommendations",
		Tags:        []string{"Recommendations"},
	}, s.handleListRecommendations)
}

// === DTOs ===

// AddRecommendationRequest is the request body for a referral.
type AddRecommendationRequest struct {
	Name     string `json:"name" validate:"required,max=200" doc:"Provider name"`
	Category string `json:"category" validate:"required,max=100" doc:"Service category"`
	City     string `json:"city" validate:"required,max=100" doc:"City"`
	Phone    string `json:"phone" validate:"required,max=32" doc:"Provider phone number, any common format"`
	Note     string `json:"note" validate:"required,max=2000" doc:"Free-text note; may embed 'Liked: a, b | Watch: c' labels"`
}

// AddRecommendationInput wraps the referral request with the identity header for Huma.
type AddRecommendationInput struct {
	Body    AddRecommendationRequest
	XUserID string `header:"X-User-ID" doc:"Gateway-verified caller identity"`
}

// RecommendationResponse contains one referral.
type RecommendationResponse struct {
	ID            string    `json:"id" doc:"Recommendation ID"`
	ProviderID    string    `json:"provider_id" doc:"Referred provider"`
	RecommenderID string    `json:"recommender_id" doc:"Referring user"`
	Note          string    `json:"note" doc:"Referral note"`
	CreatedAt     time.Time `json:"created_at" doc:"Creation timestamp"`
}

// AddRecommendationResponse reports the referral outcome.
type AddRecommendationResponse struct {
	Provider        ProviderResponse       `json:"provider" doc:"The referred provider"`
	Recommendation  RecommendationResponse `json:"recommendation" doc:"The stored referral"`
	ProviderCreated bool                   `json:"provider_created" doc:"Whether this referral created the listing"`
}

// AddRecommendationOutput wraps the referral response for Huma.
type AddRecommendationOutput struct {
	Body AddRecommendationResponse
}

// ListRecommendationsInput identifies the provider.
type ListRecommendationsInput struct {
	ID string `path:"id" doc:"Provider ID"`
}

// ListRecommendationsOutput wraps the recommendation list for Huma.
type ListRecommendationsOutput struct {
	Body struct {
		Recommendations []RecommendationResponse `json:"recommendations" doc:"Referrals, oldest first"`
	}
}

// === Handlers ===

func (s *Server) handleAddRecommendation(ctx context.Context, input *AddRecommendationInput) (*AddRecommendationOutput, error) {
	userID, err := requireUser(input.XUserID)
	if err != nil {
		return nil, err
	}

	result, err := s.services.Recommendation.Add(ctx, service.AddRequest{
		Name:          input.Body.Name,
		Category:      input.Body.Category,
		City:          input.Body.City,
		Phone:         input.Body.Phone,
		Note:          input.Body.Note,
		RecommenderID: userID,
	})
	if err != nil {
		return nil, err
	}

	return &AddRecommendationOutput{
		Body: AddRecommendationResponse{
			Provider: ProviderResponse{
				ID:        result.Provider.ID,
				Name:      result.Provider.Name,
				Category:  result.Provider.Category,
				City:      result.Provider.City,
				Claimed:   result.Provider.IsClaimed(),
				CreatedAt: result.Provider.CreatedAt,
				UpdatedAt: result.Provider.UpdatedAt,
			},
			Recommendation: RecommendationResponse{
				ID:            result.Recommendation.ID,
				ProviderID:    result.Recommendation.ProviderID,
				RecommenderID: result.Recommendation.RecommenderID,
				Note:          result.Recommendation.Note,
				CreatedAt:     result.Recommendation.CreatedAt,
			},
			ProviderCreated: result.ProviderCreated,
		},
	}, nil
}

func (s *Server) handleListRecommendations(ctx context.Context, input *ListRecommendationsInput) (*ListRecommendationsOutput, error) {
	recs, err := s.services.Recommendation.ListByProvider(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	out := &ListRecommendationsOutput{}
	out.Body.Recommendations = make([]RecommendationResponse, 0, len(recs))
	for _, rec := range recs {
		out.Body.Recommendations = append(out.Body.Recommendations, RecommendationResponse{
			ID:            rec.ID,
			ProviderID:    rec.ProviderID,
			RecommenderID: rec.RecommenderID,
			Note:          rec.Note,
			CreatedAt:     rec.CreatedAt,
		})
	}
	return out, nil
}
