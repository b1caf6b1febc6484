// Package di provides dependency injection configuration for the Teranga server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/terangaapp/teranga-server/internal/config"
	"github.com/terangaapp/teranga-server/internal/di/providers"
	"github.com/terangaapp/teranga-server/internal/logger"
	"github.com/terangaapp/teranga-server/internal/phone"
	"github.com/terangaapp/teranga-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideCrypto)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Business services
	do.Provide(injector, providers.ProvideProviderService)
	do.Provide(injector, providers.ProvideRecommendationService)
	do.Provide(injector, providers.ProvideVoteService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns once the server is running.
// This triggers lazy initialization of the full dependency graph.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*phone.Crypto](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)

	_ = do.MustInvoke[*service.ProviderService](injector)
	_ = do.MustInvoke[*service.RecommendationService](injector)
	_ = do.MustInvoke[*service.VoteService](injector)

	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
