// Package providers contains dependency injection providers for the Teranga server.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/terangaapp/teranga-server/internal/config"
	"github.com/terangaapp/teranga-server/internal/logger"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	log.Info("Starting Teranga Server",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"data_path", cfg.Data.BasePath,
		"phone_prefix", cfg.Phone.DefaultPrefix,
	)

	// Degraded-but-running configurations are reported once, at boot.
	for _, warning := range cfg.Warnings() {
		log.Warn(warning)
	}

	return log, nil
}
