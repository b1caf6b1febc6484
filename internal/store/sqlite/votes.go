package sqlite

import (
	"context"
	"strings"

	"github.com/terangaapp/teranga-server/internal/domain"
	"github.com/terangaapp/teranga-server/internal/store"
)

// UpsertAttributeVote records a voter's current opinion about one attribute
// of a provider. A repeat vote on the same (provider, voter, attribute)
// overwrites the previous kind and text in place; created_at is preserved.
// Returns store.ErrInvalidInput if the referenced provider does not exist.
func (s *Store) UpsertAttributeVote(ctx context.Context, vote *domain.AttributeVote) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attribute_votes (
			provider_id, voter_id, attribute, kind, text, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(provider_id, voter_id, attribute) DO UPDATE SET
			kind = excluded.kind,
			text = excluded.text,
			updated_at = excluded.updated_at`,
		vote.ProviderID,
		vote.VoterID,
		string(vote.Attribute),
		string(vote.Kind),
		vote.Text,
		formatTime(vote.CreatedAt),
		formatTime(vote.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return store.ErrInvalidInput.WithMessage("provider does not exist")
		}
		return err
	}
	return nil
}

// ListAttributeVotesByProvider lists all votes cast on a provider, grouped by
// attribute and most recently updated first within each group.
func (s *Store) ListAttributeVotesByProvider(ctx context.Context, providerID string) ([]*domain.AttributeVote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT provider_id, voter_id, attribute, kind, text, created_at, updated_at
		FROM attribute_votes
		WHERE provider_id = ?
		ORDER BY attribute ASC, updated_at DESC`, providerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var votes []*domain.AttributeVote
	for rows.Next() {
		var v domain.AttributeVote
		var attribute, kind, createdAt, updatedAt string
		if err := rows.Scan(&v.ProviderID, &v.VoterID, &attribute, &kind, &v.Text, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		v.Attribute = domain.AttributeKind(attribute)
		v.Kind = domain.VoteKind(kind)
		v.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, err
		}
		v.UpdatedAt, err = parseTime(updatedAt)
		if err != nil {
			return nil, err
		}
		votes = append(votes, &v)
	}
	return votes, rows.Err()
}

// TallyAttributeVotes aggregates a provider's vote ledger: like counts and
// note texts per attribute, in the canonical attribute order. Attributes with
// no votes are omitted.
func (s *Store) TallyAttributeVotes(ctx context.Context, providerID string) ([]domain.AttributeTally, error) {
	votes, err := s.ListAttributeVotesByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	byAttribute := make(map[domain.AttributeKind]*domain.AttributeTally)
	for _, v := range votes {
		tally, ok := byAttribute[v.Attribute]
		if !ok {
			tally = &domain.AttributeTally{Attribute: v.Attribute}
			byAttribute[v.Attribute] = tally
		}
		switch v.Kind {
		case domain.VoteLike:
			tally.Likes++
		case domain.VoteNote:
			if v.Text != "" {
				tally.Notes = append(tally.Notes, v.Text)
			}
		}
	}

	var tallies []domain.AttributeTally
	for _, attr := range domain.AttributeKinds() {
		if tally, ok := byAttribute[attr]; ok {
			tallies = append(tallies, *tally)
		}
	}
	return tallies, nil
}
