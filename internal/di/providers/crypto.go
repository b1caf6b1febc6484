package providers

import (
	"github.com/samber/do/v2"

	"github.com/terangaapp/teranga-server/internal/config"
	"github.com/terangaapp/teranga-server/internal/logger"
	"github.com/terangaapp/teranga-server/internal/phone"
)

// ProvideCrypto loads the encryption key and builds the phone crypto.
//
// A missing or short key does not abort startup: the crypto degrades
// (hashing still works, encryption fails per call) and the condition is
// logged loudly here instead.
func ProvideCrypto(i do.Injector) (*phone.Crypto, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	key, err := phone.LoadOrGenerateKey(cfg.Data.BasePath)
	if err != nil {
		log.Error("Encryption key unusable; referral capture will fail until fixed", "error", err)
		key = nil
	} else {
		cfg.Crypto.Key = key
	}

	crypto := phone.NewCrypto(key, cfg.Crypto.Salt)
	if keyErr := crypto.KeyErr(); keyErr == nil {
		log.Info("Phone encryption key loaded")
	}
	if crypto.UsingDefaultSalt() {
		log.Warn("IDENTITY_SALT not set; identity hashes use the built-in default salt")
	}

	return crypto, nil
}
