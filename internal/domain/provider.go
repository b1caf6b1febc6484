package domain

// Provider represents a service provider referred into the directory.
//
// The provider's phone number is never stored in the clear. IdentityHash is a
// one-way keyed digest used as the exact-match dedup key; EncryptedPhone is an
// authenticated ciphertext used only for the authorized contact flow. The
// canonical phone string exists only transiently in memory between
// normalization and hashing/encryption.
type Provider struct {
	Record
	Name     string `json:"name"`
	Category string `json:"category"` // plumber, electrician, cleaner, ...
	City     string `json:"city"`

	// IdentityHash is unique across all providers; uniqueness is enforced by
	// the store's insert-if-absent, not by application-level checks.
	IdentityHash string `json:"-"`

	// EncryptedPhone is nonce || tag || ciphertext under the process key.
	EncryptedPhone []byte `json:"-"`

	// OwnerID is the user who claimed this listing. Empty until claimed;
	// transitions exactly once from empty to a user ID.
	OwnerID string `json:"owner_id,omitempty"`
}

// IsClaimed returns true once a provider has an owner.
func (p *Provider) IsClaimed() bool {
	return p.OwnerID != ""
}

// Profile is the aggregated public view of a provider: the entity itself plus
// the social-proof signals derived from its recommendations and votes.
type Profile struct {
	Provider            *Provider        `json:"provider"`
	RecommendationCount int              `json:"recommendation_count"`
	TopLiked            []string         `json:"top_liked"`
	TopWatch            []string         `json:"top_watch"`
	VoteTallies         []AttributeTally `json:"vote_tallies,omitempty"`
}
