package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/terangaapp/teranga-server/internal/api"
	"github.com/terangaapp/teranga-server/internal/config"
	"github.com/terangaapp/teranga-server/internal/logger"
	"github.com/terangaapp/teranga-server/internal/phone"
	"github.com/terangaapp/teranga-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	apiServer *api.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := h.Server.Shutdown(ctx)
	h.apiServer.Close()
	return err
}

// ProvideHTTPServer provides the HTTP server and starts listening.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	crypto := do.MustInvoke[*phone.Crypto](i)

	services := &api.Services{
		Provider:       do.MustInvoke[*service.ProviderService](i),
		Recommendation: do.MustInvoke[*service.RecommendationService](i),
		Vote:           do.MustInvoke[*service.VoteService](i),
	}

	apiServer := api.NewServer(storeHandle.Store, services, crypto, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      apiServer,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(fmt.Sprintf("HTTP server failed: %v", err))
		}
	}()

	return &HTTPServerHandle{Server: srv, apiServer: apiServer}, nil
}
