package api

import (
	"crypto/rand"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terangaapp/teranga-server/internal/phone"
	"github.com/terangaapp/teranga-server/internal/service"
	"github.com/terangaapp/teranga-server/internal/store/sqlite"
)

// testServer wraps the API server with a humatest client.
type testServer struct {
	*Server
	api humatest.TestAPI
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	st, err := sqlite.Open(dbPath, logger)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	key := make([]byte, phone.KeyLength)
	_, err = rand.Read(key)
	require.NoError(t, err)
	crypto := phone.NewCrypto(key, "test-salt")

	providerService := service.NewProviderService(st, crypto, "+221", logger)
	services := &Services{
		Provider:       providerService,
		Recommendation: service.NewRecommendationService(st, providerService, logger),
		Vote:           service.NewVoteService(st, logger),
	}

	router := chi.NewRouter()
	api := humachi.New(router, huma.DefaultConfig("Teranga API Test", "1.0.0"))
	RegisterErrorHandler()

	s := &Server{
		store:            st,
		services:         services,
		crypto:           crypto,
		router:           router,
		api:              api,
		logger:           logger,
		claimRateLimiter: NewRateLimiter(1000, time.Minute, 1000),
	}
	t.Cleanup(s.Close)

	s.registerHealthRoutes()
	s.registerProviderRoutes()
	s.registerRecommendationRoutes()
	s.registerVoteRoutes()

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, api),
	}
}

// refer adds a recommendation and returns the provider ID.
func (ts *testServer) refer(t *testing.T, userID, phoneNumber, note string) string {
	t.Helper()
	resp := ts.api.Post("/api/v1/recommendations",
		"X-User-ID: "+userID,
		map[string]any{
			"name":     "Moussa Diop",
			"category": "plumber",
			"city":     "Dakar",
			"phone":    phoneNumber,
			"note":     note,
		})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var body AddRecommendationResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body.Provider.ID
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	assert.Equal(t, http.StatusOK, resp.Code)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "healthy", health.Components["database"].Status)
	assert.Equal(t, "healthy", health.Components["crypto"].Status)
}

func TestAddRecommendation(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/recommendations",
		"X-User-ID: user-1",
		map[string]any{
			"name":     "Moussa Diop",
			"category": "plumber",
			"city":     "Dakar",
			"phone":    "77 123 45 67",
			"note":     "Great work! Liked: Punctual, Clean | Watch: Price",
		})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var body AddRecommendationResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.True(t, body.ProviderCreated)
	assert.NotEmpty(t, body.Provider.ID)
	assert.False(t, body.Provider.Claimed)
	assert.Equal(t, body.Provider.ID, body.Recommendation.ProviderID)
}

func TestAddRecommendation_RequiresIdentity(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/recommendations", map[string]any{
		"name":     "Moussa Diop",
		"category": "plumber",
		"city":     "Dakar",
		"phone":    "771234567",
		"note":     "note",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestAddRecommendation_InvalidPhone(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/recommendations",
		"X-User-ID: user-1",
		map[string]any{
			"name":     "Moussa Diop",
			"category": "plumber",
			"city":     "Dakar",
			"phone":    "---",
			"note":     "note",
		})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &apiErr))
	assert.Equal(t, "VALIDATION", apiErr.Code)
}

func TestGetProviderProfile(t *testing.T) {
	ts := setupTestServer(t)

	providerID := ts.refer(t, "user-1", "771234567", "Liked: Punctual, Clean | Watch: Price")
	ts.refer(t, "user-2", "+221 77 123 45 67", "Liked: Punctual")

	resp := ts.api.Get("/api/v1/providers/" + providerID)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var profile ProfileResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &profile))
	assert.Equal(t, providerID, profile.Provider.ID)
	assert.Equal(t, 2, profile.RecommendationCount)
	assert.Equal(t, []string{"Punctual", "Clean"}, profile.TopLiked)
	assert.Equal(t, []string{"Price"}, profile.TopWatch)
}

func TestGetProviderProfile_NotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/providers/nonexistent")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestClaimProvider(t *testing.T) {
	ts := setupTestServer(t)

	providerID := ts.refer(t, "user-1", "771234567", "Liked: Punctual")

	resp := ts.api.Post("/api/v1/providers/claim",
		"X-User-ID: owner-1",
		map[string]any{"phone": "77 123 45 67"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var claim ClaimResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &claim))
	assert.Equal(t, providerID, claim.ProviderID)
	assert.True(t, claim.Claimed)

	// A later claimant loses but still sees the listing.
	resp = ts.api.Post("/api/v1/providers/claim",
		"X-User-ID: owner-2",
		map[string]any{"phone": "771234567"})
	require.Equal(t, http.StatusOK, resp.Code)

	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &claim))
	assert.Equal(t, providerID, claim.ProviderID)
	assert.False(t, claim.Claimed)
	assert.Equal(t, 1, claim.RecommendationCount)
}

func TestClaimProvider_UnknownNumber(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/providers/claim",
		"X-User-ID: owner-1",
		map[string]any{"phone": "771234567"})
	require.Equal(t, http.StatusOK, resp.Code)

	var claim ClaimResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &claim))
	assert.Empty(t, claim.ProviderID)
	assert.False(t, claim.Claimed)
}

func TestRevealContact(t *testing.T) {
	ts := setupTestServer(t)

	providerID := ts.refer(t, "user-1", "77 123 45 67", "Liked: Punctual")

	resp := ts.api.Get("/api/v1/providers/"+providerID+"/contact", "X-User-ID: user-2")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body struct {
		Phone string `json:"phone"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "+221771234567", body.Phone)
}

func TestRevealContact_RequiresIdentity(t *testing.T) {
	ts := setupTestServer(t)

	providerID := ts.refer(t, "user-1", "771234567", "Liked: Punctual")

	resp := ts.api.Get("/api/v1/providers/" + providerID + "/contact")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestCastVoteAndTallies(t *testing.T) {
	ts := setupTestServer(t)

	providerID := ts.refer(t, "user-1", "771234567", "Liked: Punctual")

	resp := ts.api.Put("/api/v1/providers/"+providerID+"/votes",
		"X-User-ID: user-2",
		map[string]any{"attribute": "timeliness", "kind": "like"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = ts.api.Put("/api/v1/providers/"+providerID+"/votes",
		"X-User-ID: user-3",
		map[string]any{"attribute": "timeliness", "kind": "note", "text": "late once"})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/providers/" + providerID + "/votes")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Tallies []AttributeTallyResponse `json:"tallies"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Tallies, 1)
	assert.Equal(t, "timeliness", body.Tallies[0].Attribute)
	assert.Equal(t, 1, body.Tallies[0].Likes)
	assert.Equal(t, []string{"late once"}, body.Tallies[0].Notes)
}

func TestCastVote_UnknownAttribute(t *testing.T) {
	ts := setupTestServer(t)

	providerID := ts.refer(t, "user-1", "771234567", "Liked: Punctual")

	resp := ts.api.Put("/api/v1/providers/"+providerID+"/votes",
		"X-User-ID: user-2",
		map[string]any{"attribute": "punctuality", "kind": "like"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestListProviders(t *testing.T) {
	ts := setupTestServer(t)

	ts.refer(t, "user-1", "771234567", "Liked: Punctual")
	ts.refer(t, "user-1", "771112233", "Liked: Clean")

	resp := ts.api.Get("/api/v1/providers?category=plumber&city=Dakar")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Providers []ProviderResponse `json:"providers"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Len(t, body.Providers, 2)
}

func TestClaimRateLimit(t *testing.T) {
	ts := setupTestServer(t)
	ts.claimRateLimiter.Stop()
	ts.Server.claimRateLimiter = NewRateLimiter(1, time.Minute, 1)

	ts.api.Post("/api/v1/providers/claim",
		"X-User-ID: owner-1",
		"X-Real-IP: 10.0.0.1",
		map[string]any{"phone": "771234567"})

	resp := ts.api.Post("/api/v1/providers/claim",
		"X-User-ID: owner-1",
		"X-Real-IP: 10.0.0.1",
		map[string]any{"phone": "771234567"})
	assert.Equal(t, http.StatusTooManyRequests, resp.Code)
}
