package service

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/terangaapp/teranga-server/internal/errors"
)

func setupTestRecommendations(t *testing.T) (*RecommendationService, *ProviderService) {
	t.Helper()
	providers, testStore := setupTestProviders(t)
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return NewRecommendationService(testStore, providers, logger), providers
}

func TestAdd_CreatesProviderOnFirstReferral(t *testing.T) {
	svc, _ := setupTestRecommendations(t)
	ctx := context.Background()

	result, err := svc.Add(ctx, AddRequest{
		Name:          "Moussa Diop",
		Category:      "plumber",
		City:          "Dakar",
		Phone:         "771234567",
		Note:          "Fixed my sink in an hour. Liked: Punctual",
		RecommenderID: "user-1",
	})
	require.NoError(t, err)
	assert.True(t, result.ProviderCreated)
	assert.NotEmpty(t, result.Provider.ID)
	assert.Equal(t, result.Provider.ID, result.Recommendation.ProviderID)
	assert.Equal(t, "user-1", result.Recommendation.RecommenderID)
	assert.Equal(t, "Fixed my sink in an hour. Liked: Punctual", result.Recommendation.Note)
}

func TestAdd_ReusesExistingProvider(t *testing.T) {
	svc, _ := setupTestRecommendations(t)
	ctx := context.Background()

	first, err := svc.Add(ctx, AddRequest{
		Name:          "Moussa Diop",
		Category:      "plumber",
		City:          "Dakar",
		Phone:         "771234567",
		Note:          "first note",
		RecommenderID: "user-1",
	})
	require.NoError(t, err)

	second, err := svc.Add(ctx, AddRequest{
		Name:          "M. Diop",
		Category:      "plumber",
		City:          "Dakar",
		Phone:         "+221 77 123 45 67",
		Note:          "second note",
		RecommenderID: "user-2",
	})
	require.NoError(t, err)
	assert.False(t, second.ProviderCreated)
	assert.Equal(t, first.Provider.ID, second.Provider.ID)

	recs, err := svc.ListByProvider(ctx, first.Provider.ID)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "first note", recs[0].Note)
	assert.Equal(t, "second note", recs[1].Note)
}

func TestAdd_RequiresUser(t *testing.T) {
	svc, _ := setupTestRecommendations(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, AddRequest{
		Name:     "Moussa Diop",
		Category: "plumber",
		City:     "Dakar",
		Phone:    "771234567",
		Note:     "note",
	})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrUnauthorized))
}

func TestAdd_RequiresNote(t *testing.T) {
	svc, _ := setupTestRecommendations(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, AddRequest{
		Name:          "Moussa Diop",
		Category:      "plumber",
		City:          "Dakar",
		Phone:         "771234567",
		RecommenderID: "user-1",
	})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
}

func TestListByProvider_NotFound(t *testing.T) {
	svc, _ := setupTestRecommendations(t)
	ctx := context.Background()

	_, err := svc.ListByProvider(ctx, "nonexistent")
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}
