// Package store defines the persistence interface for the Teranga server.
package store

import (
	"context"

	"github.com/terangaapp/teranga-server/internal/domain"
)

// Store defines the interface for all persistence operations.
type Store interface {
	// Lifecycle
	Close() error

	// Providers
	CreateProvider(ctx context.Context, provider *domain.Provider) error
	GetProvider(ctx context.Context, id string) (*domain.Provider, error)
	GetProviderByIdentityHash(ctx context.Context, hash string) (*domain.Provider, error)
	UpdateProvider(ctx context.Context, provider *domain.Provider) error
	ClaimProvider(ctx context.Context, providerID, ownerID string) (bool, error)
	ListProviders(ctx context.Context, category, city string) ([]*domain.Provider, error)

	// Recommendations
	CreateRecommendation(ctx context.Context, rec *domain.Recommendation) error
	ListRecommendationsByProvider(ctx context.Context, providerID string) ([]*domain.Recommendation, error)
	CountRecommendationsByProvider(ctx context.Context, providerID string) (int, error)

	// Attribute votes
	UpsertAttributeVote(ctx context.Context, vote *domain.AttributeVote) error
	ListAttributeVotesByProvider(ctx context.Context, providerID string) ([]*domain.AttributeVote, error)
	TallyAttributeVotes(ctx context.Context, providerID string) ([]domain.AttributeTally, error)
}
