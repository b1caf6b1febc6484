package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/terangaapp/teranga-server/internal/domain"
	domainerrors "github.com/terangaapp/teranga-server/internal/errors"
	"github.com/terangaapp/teranga-server/internal/id"
	"github.com/terangaapp/teranga-server/internal/store"
)

// RecommendationService captures referrals: a recommender vouches for a
// provider by phone number and leaves a free-text note.
type RecommendationService struct {
	store     store.Store
	providers *ProviderService
	logger    *slog.Logger
}

// NewRecommendationService creates a new recommendation service.
func NewRecommendationService(store store.Store, providers *ProviderService, logger *slog.Logger) *RecommendationService {
	return &RecommendationService{
		store:     store,
		providers: providers,
		logger:    logger,
	}
}

// AddRequest contains a full referral: the provider's details as the
// recommender knows them, plus the note text.
type AddRequest struct {
	Name          string `json:"name" validate:"required,max=200"`
	Category      string `json:"category" validate:"required,max=100"`
	City          string `json:"city" validate:"required,max=100"`
	Phone         string `json:"phone" validate:"required,max=32"`
	Note          string `json:"note" validate:"required,max=2000"`
	RecommenderID string `json:"-"` // Extracted from request by handler
}

// AddResult reports the referral outcome, including whether this sighting
// created the provider record.
type AddResult struct {
	Provider        *domain.Provider       `json:"provider"`
	Recommendation  *domain.Recommendation `json:"recommendation"`
	ProviderCreated bool                   `json:"provider_created"`
}

// Add runs the full referral flow: resolve the phone number to a provider
// (creating it on first sighting) and attach the note. The note text is
// stored verbatim; the embedded label mini-language is parsed at read time.
func (s *RecommendationService) Add(ctx context.Context, req AddRequest) (*AddResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}
	if req.RecommenderID == "" {
		return nil, domainerrors.Unauthorized("recommendation requires an authenticated user")
	}

	provider, created, err := s.providers.FindOrCreate(ctx, FindOrCreateRequest{
		Name:     req.Name,
		Category: req.Category,
		City:     req.City,
		Phone:    req.Phone,
	})
	if err != nil {
		return nil, err
	}

	recID, err := id.Generate("rec")
	if err != nil {
		return nil, fmt.Errorf("generate recommendation ID: %w", err)
	}

	rec := &domain.Recommendation{
		Record: domain.Record{
			ID: recID,
		},
		ProviderID:    provider.ID,
		RecommenderID: req.RecommenderID,
		Note:          req.Note,
	}
	rec.InitTimestamps()

	if err := s.store.CreateRecommendation(ctx, rec); err != nil {
		return nil, fmt.Errorf("create recommendation: %w", err)
	}

	s.logger.Info("recommendation added",
		"recommendation_id", rec.ID,
		"provider_id", provider.ID,
		"provider_created", created)

	return &AddResult{
		Provider:        provider,
		Recommendation:  rec,
		ProviderCreated: created,
	}, nil
}

// ListByProvider returns a provider's recommendations, oldest first.
func (s *RecommendationService) ListByProvider(ctx context.Context, providerID string) ([]*domain.Recommendation, error) {
	if _, err := s.store.GetProvider(ctx, providerID); err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("provider not found")
		}
		return nil, fmt.Errorf("get provider: %w", err)
	}

	recs, err := s.store.ListRecommendationsByProvider(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}
	return recs, nil
}
