package providers

import (
	"github.com/samber/do/v2"

	"github.com/terangaapp/teranga-server/internal/config"
	"github.com/terangaapp/teranga-server/internal/logger"
	"github.com/terangaapp/teranga-server/internal/phone"
	"github.com/terangaapp/teranga-server/internal/service"
)

// ProvideProviderService provides the provider identity service.
func ProvideProviderService(i do.Injector) (*service.ProviderService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	crypto := do.MustInvoke[*phone.Crypto](i)

	return service.NewProviderService(storeHandle.Store, crypto, cfg.Phone.DefaultPrefix, log.Logger), nil
}

// ProvideRecommendationService provides the referral service.
func ProvideRecommendationService(i do.Injector) (*service.RecommendationService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	providerService := do.MustInvoke[*service.ProviderService](i)

	return service.NewRecommendationService(storeHandle.Store, providerService, log.Logger), nil
}

// ProvideVoteService provides the attribute vote service.
func ProvideVoteService(i do.Injector) (*service.VoteService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	return service.NewVoteService(storeHandle.Store, log.Logger), nil
}
