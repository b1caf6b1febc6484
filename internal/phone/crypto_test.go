package phone

import (
	"bytes"
	"crypto/rand"
	"testing"

	domainerrors "github.com/terangaapp/teranga-server/internal/errors"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, KeyLength)
	if _, err := rand.Read(key); err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return key
}

func TestIdentityHash_Deterministic(t *testing.T) {
	c := NewCrypto(testKey(t), "deployment-salt")

	h1 := c.IdentityHash("+221771234567")
	h2 := c.IdentityHash("+221771234567")
	if h1 != h2 {
		t.Errorf("same phone hashed differently: %s vs %s", h1, h2)
	}
	if len(h1) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(h1))
	}
}

func TestIdentityHash_DistinctPhones(t *testing.T) {
	c := NewCrypto(testKey(t), "deployment-salt")

	if c.IdentityHash("+221771234567") == c.IdentityHash("+221771234568") {
		t.Error("distinct phones produced the same hash")
	}
}

func TestIdentityHash_SaltChangesHash(t *testing.T) {
	key := testKey(t)
	a := NewCrypto(key, "salt-a")
	b := NewCrypto(key, "salt-b")

	if a.IdentityHash("+221771234567") == b.IdentityHash("+221771234567") {
		t.Error("different salts produced the same hash")
	}
}

func TestIdentityHash_NormalizedEquivalence(t *testing.T) {
	c := NewCrypto(testKey(t), "deployment-salt")

	h1 := c.IdentityHash(Normalize("77 123 45 67", "+221"))
	h2 := c.IdentityHash(Normalize("+221771234567", "+221"))
	if h1 != h2 {
		t.Error("equivalent raw inputs hashed differently")
	}
}

func TestUsingDefaultSalt(t *testing.T) {
	if !NewCrypto(testKey(t), "").UsingDefaultSalt() {
		t.Error("empty salt should fall back to default")
	}
	if NewCrypto(testKey(t), "configured").UsingDefaultSalt() {
		t.Error("configured salt should not report default")
	}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	c := NewCrypto(testKey(t), "deployment-salt")

	phones := []string{
		"+221771234567",
		"+33612345678",
		"+1",
	}
	for _, p := range phones {
		blob, err := c.Encrypt(p)
		if err != nil {
			t.Fatalf("Encrypt(%q): %v", p, err)
		}

		got, err := c.Decrypt(blob)
		if err != nil {
			t.Fatalf("Decrypt(%q): %v", p, err)
		}
		if got != p {
			t.Errorf("round trip mismatch: got %q, want %q", got, p)
		}
	}
}

func TestEncrypt_FreshNoncePerCall(t *testing.T) {
	c := NewCrypto(testKey(t), "deployment-salt")

	blob1, err := c.Encrypt("+221771234567")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	blob2, err := c.Encrypt("+221771234567")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	if bytes.Equal(blob1, blob2) {
		t.Error("two encryptions of the same phone produced identical blobs")
	}
	if bytes.Equal(blob1[:nonceLength], blob2[:nonceLength]) {
		t.Error("nonce was reused")
	}
}

func TestDecrypt_TamperDetection(t *testing.T) {
	c := NewCrypto(testKey(t), "deployment-salt")

	blob, err := c.Encrypt("+221771234567")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	// Flipping any single byte - nonce, tag, or ciphertext - must fail hard.
	for i := range blob {
		tampered := make([]byte, len(blob))
		copy(tampered, blob)
		tampered[i] ^= 0x01

		if _, err := c.Decrypt(tampered); err == nil {
			t.Fatalf("tampering at byte %d went undetected", i)
		} else if !domainerrors.Is(err, domainerrors.ErrDecryptionFailed) {
			t.Fatalf("byte %d: expected ErrDecryptionFailed, got %v", i, err)
		}
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	a := NewCrypto(testKey(t), "s")
	b := NewCrypto(testKey(t), "s")

	blob, err := a.Encrypt("+221771234567")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	if _, err := b.Decrypt(blob); !domainerrors.Is(err, domainerrors.ErrDecryptionFailed) {
		t.Errorf("expected ErrDecryptionFailed with wrong key, got %v", err)
	}
}

func TestDecrypt_TruncatedBlob(t *testing.T) {
	c := NewCrypto(testKey(t), "s")

	for _, n := range []int{0, 1, nonceLength, nonceLength + tagLength - 1} {
		if _, err := c.Decrypt(make([]byte, n)); !domainerrors.Is(err, domainerrors.ErrDecryptionFailed) {
			t.Errorf("blob of %d bytes: expected ErrDecryptionFailed, got %v", n, err)
		}
	}
}

func TestNewCrypto_BadKey(t *testing.T) {
	for _, n := range []int{0, 16, 31, 33, 64} {
		c := NewCrypto(make([]byte, n), "s")

		if c.KeyErr() == nil {
			t.Errorf("%d-byte key should be rejected", n)
		}

		// Hashing still works in the degraded state.
		if c.IdentityHash("+221771234567") == "" {
			t.Error("hashing should survive a bad key")
		}

		// Encryption fails loudly.
		if _, err := c.Encrypt("+221771234567"); !domainerrors.Is(err, domainerrors.ErrInvalidKey) {
			t.Errorf("expected ErrInvalidKey, got %v", err)
		}
		if _, err := c.Decrypt(make([]byte, 64)); !domainerrors.Is(err, domainerrors.ErrInvalidKey) {
			t.Errorf("expected ErrInvalidKey, got %v", err)
		}
	}
}
