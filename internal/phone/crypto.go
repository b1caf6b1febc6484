package phone

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/terangaapp/teranga-server/internal/errors"
)

const (
	// KeyLength is the required symmetric key size (256 bits).
	KeyLength = chacha20poly1305.KeySize
	// nonceLength is the per-message nonce size drawn from crypto/rand.
	nonceLength = chacha20poly1305.NonceSize
	// tagLength is the Poly1305 authentication tag size.
	tagLength = chacha20poly1305.Overhead
)

// defaultSalt backs the identity hash when no deployment salt is configured.
// Running on this salt weakens the hash to a keyless digest; the Crypto
// constructor flags it so the bootstrap can warn at startup.
const defaultSalt = "teranga.identity.v1"

// Crypto derives the two representations of a canonical phone number:
// a deterministic one-way identity hash for exact-match dedup, and an
// authenticated ciphertext for the single authorized reveal flow.
//
// Construct once at process start from validated configuration; the zero
// value is not usable. All methods are safe for concurrent use.
type Crypto struct {
	aead   cipher.AEAD // nil when the key is unusable
	salt   []byte
	keyErr error
}

// NewCrypto builds a Crypto from the process key and identity salt.
//
// A missing or wrong-length key does not fail construction: hashing must keep
// working so reads stay available, and the degraded state is reported through
// KeyErr for startup diagnostics. Encrypt and Decrypt fail per call instead.
func NewCrypto(key []byte, salt string) *Crypto {
	c := &Crypto{}

	if salt == "" {
		c.salt = []byte(defaultSalt)
	} else {
		c.salt = []byte(salt)
	}

	if len(key) != KeyLength {
		c.keyErr = errors.InvalidKey(fmt.Sprintf("encryption key must be %d bytes, got %d", KeyLength, len(key)))
		return c
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		c.keyErr = errors.ErrInvalidKey.WithCause(err)
		return c
	}
	c.aead = aead
	return c
}

// KeyErr returns the key configuration problem detected at construction,
// or nil when encryption is usable.
func (c *Crypto) KeyErr() error {
	return c.keyErr
}

// UsingDefaultSalt reports whether the identity hash is running on the
// built-in fallback salt (a deployment misconfiguration worth warning about).
func (c *Crypto) UsingDefaultSalt() bool {
	return string(c.salt) == defaultSalt
}

// IdentityHash computes the deterministic dedup key for a canonical phone:
// hex-encoded SHA-256 over salt || phone. Equal canonical phones always
// produce byte-equal hashes; the function is not invertible.
func (c *Crypto) IdentityHash(canonical string) string {
	h := sha256.New()
	h.Write(c.salt)
	h.Write([]byte(canonical))
	return hex.EncodeToString(h.Sum(nil))
}

// Encrypt seals a canonical phone under the process key.
// The returned blob is nonce || tag || ciphertext with a fresh random
// 12-byte nonce per call. Returns ErrInvalidKey when the key is unusable.
func (c *Crypto) Encrypt(canonical string) ([]byte, error) {
	if c.aead == nil {
		return nil, c.keyErr
	}

	nonce := make([]byte, nonceLength)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	// Seal produces ciphertext || tag; the stored layout puts the tag before
	// the ciphertext, so split and reorder.
	sealed := c.aead.Seal(nil, nonce, []byte(canonical), nil)
	ctLen := len(sealed) - tagLength

	blob := make([]byte, 0, nonceLength+len(sealed))
	blob = append(blob, nonce...)
	blob = append(blob, sealed[ctLen:]...)
	blob = append(blob, sealed[:ctLen]...)
	return blob, nil
}

// Decrypt opens a blob produced by Encrypt and returns the canonical phone.
// Any tampering, truncation, or key mismatch fails with ErrDecryptionFailed;
// unauthenticated plaintext is never returned.
func (c *Crypto) Decrypt(blob []byte) (string, error) {
	if c.aead == nil {
		return "", c.keyErr
	}
	if len(blob) < nonceLength+tagLength {
		return "", errors.DecryptionFailed("encrypted phone blob too short")
	}

	nonce := blob[:nonceLength]
	tag := blob[nonceLength : nonceLength+tagLength]
	ciphertext := blob[nonceLength+tagLength:]

	// Rebuild the ciphertext || tag layout Open expects.
	sealed := make([]byte, 0, len(ciphertext)+tagLength)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plain, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", errors.ErrDecryptionFailed.WithCause(err)
	}
	return string(plain), nil
}
