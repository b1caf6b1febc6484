package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/terangaapp/teranga-server/internal/domain"
	domainerrors "github.com/terangaapp/teranga-server/internal/errors"
	"github.com/terangaapp/teranga-server/internal/store"
)

// VoteService maintains the per-attribute opinion ledger. One vote per
// (provider, voter, attribute); casting again replaces the previous vote.
type VoteService struct {
	store  store.Store
	logger *slog.Logger
}

// NewVoteService creates a new vote service.
func NewVoteService(store store.Store, logger *slog.Logger) *VoteService {
	return &VoteService{
		store:  store,
		logger: logger,
	}
}

// CastRequest contains one vote on one attribute of one provider.
type CastRequest struct {
	ProviderID string `json:"provider_id" validate:"required"`
	Attribute  string `json:"attribute" validate:"required"`
	Kind       string `json:"kind" validate:"required"`
	Text       string `json:"text" validate:"max=500"`
	VoterID    string `json:"-"` // Extracted from request by handler
}

// Cast records or replaces the voter's opinion on the given attribute.
func (s *VoteService) Cast(ctx context.Context, req CastRequest) (*domain.AttributeVote, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}
	if req.VoterID == "" {
		return nil, domainerrors.Unauthorized("voting requires an authenticated user")
	}

	attribute := domain.AttributeKind(req.Attribute)
	if !attribute.IsValid() {
		return nil, domainerrors.Validationf("unknown attribute %q", req.Attribute)
	}
	kind := domain.VoteKind(req.Kind)
	if !kind.IsValid() {
		return nil, domainerrors.Validationf("unknown vote kind %q", req.Kind)
	}

	text := strings.TrimSpace(req.Text)
	if kind == domain.VoteLike {
		// A like carries no text.
		text = ""
	}

	if _, err := s.store.GetProvider(ctx, req.ProviderID); err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("provider not found")
		}
		return nil, fmt.Errorf("get provider: %w", err)
	}

	vote := &domain.AttributeVote{
		ProviderID: req.ProviderID,
		VoterID:    req.VoterID,
		Attribute:  attribute,
		Kind:       kind,
		Text:       text,
	}
	now := nowUTC()
	vote.CreatedAt = now
	vote.UpdatedAt = now

	if err := s.store.UpsertAttributeVote(ctx, vote); err != nil {
		return nil, fmt.Errorf("upsert vote: %w", err)
	}

	s.logger.Debug("vote cast",
		"provider_id", vote.ProviderID,
		"attribute", string(vote.Attribute),
		"kind", string(vote.Kind))

	return vote, nil
}

// Tallies returns the aggregated vote ledger for a provider.
func (s *VoteService) Tallies(ctx context.Context, providerID string) ([]domain.AttributeTally, error) {
	if _, err := s.store.GetProvider(ctx, providerID); err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("provider not found")
		}
		return nil, fmt.Errorf("get provider: %w", err)
	}

	tallies, err := s.store.TallyAttributeVotes(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("tally votes: %w", err)
	}
	return tallies, nil
}
