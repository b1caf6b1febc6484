package api

import (
	"github.com/terangaapp/teranga-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Provider       *service.ProviderService
	Recommendation *service.RecommendationService
	Vote           *service.VoteService
}
