package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/terangaapp/teranga-server/internal/domain"
	domainerrors "github.com/terangaapp/teranga-server/internal/errors"
	"github.com/terangaapp/teranga-server/internal/id"
	"github.com/terangaapp/teranga-server/internal/notes"
	"github.com/terangaapp/teranga-server/internal/phone"
	"github.com/terangaapp/teranga-server/internal/store"
)

// ProviderService resolves phone identities to provider records and handles
// ownership claims. It is the only service with side effects on the provider
// table; all phone material is reduced to hash + ciphertext before it reaches
// the store.
type ProviderService struct {
	store         store.Store
	crypto        *phone.Crypto
	defaultPrefix string
	logger        *slog.Logger
}

// NewProviderService creates a new provider service.
func NewProviderService(store store.Store, crypto *phone.Crypto, defaultPrefix string, logger *slog.Logger) *ProviderService {
	return &ProviderService{
		store:         store,
		crypto:        crypto,
		defaultPrefix: defaultPrefix,
		logger:        logger,
	}
}

// identity normalizes a raw phone input and derives its identity hash.
// The canonical form never leaves this package except through Encrypt.
func (s *ProviderService) identity(raw string) (canonical, hash string, err error) {
	canonical = phone.Normalize(raw, s.defaultPrefix)
	if !phone.IsValid(canonical) {
		return "", "", domainerrors.Validation("phone number is empty or unusable after normalization")
	}
	return canonical, s.crypto.IdentityHash(canonical), nil
}

// FindOrCreateRequest contains the referral data for a provider sighting.
type FindOrCreateRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Category string `json:"category" validate:"required,max=100"`
	City     string `json:"city" validate:"required,max=100"`
	Phone    string `json:"phone" validate:"required,max=32"`
}

// FindOrCreate resolves a phone number to a provider record, creating one on
// first sighting. Safe to call concurrently with the same number: the store's
// uniqueness constraint on the identity hash guarantees a single row, and an
// insert that loses the race falls back to one retry of the lookup.
func (s *ProviderService) FindOrCreate(ctx context.Context, req FindOrCreateRequest) (*domain.Provider, bool, error) {
	if err := validate.Struct(req); err != nil {
		return nil, false, formatValidationError(err)
	}

	canonical, hash, err := s.identity(req.Phone)
	if err != nil {
		return nil, false, err
	}

	// Fast path: the hash is already known.
	existing, err := s.store.GetProviderByIdentityHash(ctx, hash)
	if err == nil {
		return existing, false, nil
	}
	if !domainerrors.Is(err, store.ErrNotFound) {
		return nil, false, fmt.Errorf("lookup provider by hash: %w", err)
	}

	encrypted, err := s.crypto.Encrypt(canonical)
	if err != nil {
		return nil, false, err
	}

	providerID, err := id.Generate("prov")
	if err != nil {
		return nil, false, fmt.Errorf("generate provider ID: %w", err)
	}

	provider := &domain.Provider{
		Record: domain.Record{
			ID: providerID,
		},
		Name:           req.Name,
		Category:       req.Category,
		City:           req.City,
		IdentityHash:   hash,
		EncryptedPhone: encrypted,
	}
	provider.InitTimestamps()

	err = s.store.CreateProvider(ctx, provider)
	if err == nil {
		s.logger.Info("provider created", "provider_id", provider.ID, "category", provider.Category, "city", provider.City)
		return provider, true, nil
	}
	if !domainerrors.Is(err, store.ErrAlreadyExists) {
		return nil, false, fmt.Errorf("create provider: %w", err)
	}

	// Lost the insert race: another request created the row between our
	// lookup and insert. One retry of the lookup, never more.
	winner, err := s.store.GetProviderByIdentityHash(ctx, hash)
	if domainerrors.Is(err, store.ErrNotFound) {
		return nil, false, domainerrors.Conflict("provider insert raced and retry lookup found nothing")
	}
	if err != nil {
		return nil, false, fmt.Errorf("retry lookup provider by hash: %w", err)
	}
	return winner, false, nil
}

// ClaimRequest contains a claimant proving ownership of a listing by its number.
type ClaimRequest struct {
	Phone  string `json:"phone" validate:"required,max=32"`
	UserID string `json:"-"` // Extracted from request by handler
}

// ClaimResult disambiguates the three claim outcomes: no such provider
// (empty ProviderID), claim won (Claimed=true), and already owned
// (Claimed=false with the id and social proof still populated).
type ClaimResult struct {
	ProviderID          string `json:"provider_id,omitempty"`
	Claimed             bool   `json:"claimed"`
	RecommendationCount int    `json:"recommendation_count"`
}

// Claim lets a provider take ownership of their listing by proving the same
// phone number it was referred under. First writer wins; losers still learn
// the provider id and its recommendation count.
func (s *ProviderService) Claim(ctx context.Context, req ClaimRequest) (*ClaimResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}
	if req.UserID == "" {
		return nil, domainerrors.Unauthorized("claim requires an authenticated user")
	}

	_, hash, err := s.identity(req.Phone)
	if err != nil {
		return nil, err
	}

	provider, err := s.store.GetProviderByIdentityHash(ctx, hash)
	if domainerrors.Is(err, store.ErrNotFound) {
		// Nobody has referred this number; nothing to claim.
		return &ClaimResult{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup provider by hash: %w", err)
	}

	claimed, err := s.store.ClaimProvider(ctx, provider.ID, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("claim provider: %w", err)
	}

	count, err := s.store.CountRecommendationsByProvider(ctx, provider.ID)
	if err != nil {
		return nil, fmt.Errorf("count recommendations: %w", err)
	}

	if claimed {
		s.logger.Info("provider claimed", "provider_id", provider.ID, "owner_id", req.UserID)
	}

	return &ClaimResult{
		ProviderID:          provider.ID,
		Claimed:             claimed,
		RecommendationCount: count,
	}, nil
}

// RevealContact decrypts a provider's stored phone number.
// This is the single authorized path from ciphertext back to a dialable
// number; a key or ciphertext problem fails loudly, never silently.
func (s *ProviderService) RevealContact(ctx context.Context, providerID string) (string, error) {
	provider, err := s.store.GetProvider(ctx, providerID)
	if domainerrors.Is(err, store.ErrNotFound) {
		return "", domainerrors.NotFound("provider not found")
	}
	if err != nil {
		return "", fmt.Errorf("get provider: %w", err)
	}

	canonical, err := s.crypto.Decrypt(provider.EncryptedPhone)
	if err != nil {
		s.logger.Error("contact reveal failed", "provider_id", providerID, "error", err)
		return "", err
	}
	return canonical, nil
}

// GetProfile assembles the public view of a provider: the record itself, its
// recommendation count, the ranked liked/watch labels aggregated from every
// note, and the per-attribute vote tallies.
func (s *ProviderService) GetProfile(ctx context.Context, providerID string) (*domain.Profile, error) {
	provider, err := s.store.GetProvider(ctx, providerID)
	if domainerrors.Is(err, store.ErrNotFound) {
		return nil, domainerrors.NotFound("provider not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get provider: %w", err)
	}

	recs, err := s.store.ListRecommendationsByProvider(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}

	parsed := make([]notes.ParsedNote, 0, len(recs))
	for _, rec := range recs {
		parsed = append(parsed, notes.Parse(rec.Note))
	}
	topLiked, topWatch := notes.Rank(parsed)

	tallies, err := s.store.TallyAttributeVotes(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("tally votes: %w", err)
	}

	return &domain.Profile{
		Provider:            provider,
		RecommendationCount: len(recs),
		TopLiked:            topLiked,
		TopWatch:            topWatch,
		VoteTallies:         tallies,
	}, nil
}

// List returns providers filtered by optional category and city.
func (s *ProviderService) List(ctx context.Context, category, city string) ([]*domain.Provider, error) {
	providers, err := s.store.ListProviders(ctx, category, city)
	if err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}
	return providers, nil
}
