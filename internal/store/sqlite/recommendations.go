package sqlite

import (
	"context"
	"strings"

	"github.com/terangaapp/teranga-server/internal/domain"
	"github.com/terangaapp/teranga-server/internal/store"
)

const recommendationColumns = `id, created_at, updated_at, provider_id, recommender_id, note`

func scanRecommendation(scanner interface{ Scan(dest ...any) error }) (*domain.Recommendation, error) {
	var r domain.Recommendation

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&r.ID,
		&createdAt,
		&updatedAt,
		&r.ProviderID,
		&r.RecommenderID,
		&r.Note,
	)
	if err != nil {
		return nil, err
	}

	r.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	r.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// CreateRecommendation inserts a new recommendation.
// Returns store.ErrInvalidInput if the referenced provider does not exist.
func (s *Store) CreateRecommendation(ctx context.Context, rec *domain.Recommendation) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO recommendations (
			id, created_at, updated_at, provider_id, recommender_id, note
		) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID,
		formatTime(rec.CreatedAt),
		formatTime(rec.UpdatedAt),
		rec.ProviderID,
		rec.RecommenderID,
		rec.Note,
	)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return store.ErrInvalidInput.WithMessage("provider does not exist")
		}
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// ListRecommendationsByProvider lists a provider's recommendations,
// oldest first so note aggregation sees them in arrival order.
func (s *Store) ListRecommendationsByProvider(ctx context.Context, providerID string) ([]*domain.Recommendation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+recommendationColumns+` FROM recommendations
		WHERE provider_id = ? ORDER BY created_at ASC, id ASC`, providerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*domain.Recommendation
	for rows.Next() {
		r, err := scanRecommendation(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// CountRecommendationsByProvider counts a provider's recommendations.
func (s *Store) CountRecommendationsByProvider(ctx context.Context, providerID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM recommendations WHERE provider_id = ?`, providerID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
