package domain

import "time"

// AttributeKind names a rateable quality of a provider.
type AttributeKind string

// Rateable provider attributes.
const (
	AttributeJobQuality     AttributeKind = "job_quality"
	AttributeTimeliness     AttributeKind = "timeliness"
	AttributeCleanliness    AttributeKind = "cleanliness"
	AttributeRespectfulness AttributeKind = "respectfulness"
	AttributeReliability    AttributeKind = "reliability"
)

// AttributeKinds lists all valid attribute kinds in display order.
func AttributeKinds() []AttributeKind {
	return []AttributeKind{
		AttributeJobQuality,
		AttributeTimeliness,
		AttributeCleanliness,
		AttributeRespectfulness,
		AttributeReliability,
	}
}

// IsValid reports whether k names a known attribute.
func (k AttributeKind) IsValid() bool {
	switch k {
	case AttributeJobQuality, AttributeTimeliness, AttributeCleanliness,
		AttributeRespectfulness, AttributeReliability:
		return true
	}
	return false
}

// VoteKind distinguishes a thumbs-up from a textual observation.
type VoteKind string

const (
	// VoteLike is a simple endorsement of the attribute.
	VoteLike VoteKind = "like"
	// VoteNote carries free text about the attribute.
	VoteNote VoteKind = "note"
)

// IsValid reports whether k names a known vote kind.
func (k VoteKind) IsValid() bool {
	return k == VoteLike || k == VoteNote
}

// AttributeVote is one voter's current opinion about one attribute of one
// provider. At most one vote exists per (provider, voter, attribute); casting
// again overwrites the previous vote.
type AttributeVote struct {
	ProviderID string        `json:"provider_id"`
	VoterID    string        `json:"voter_id"`
	Attribute  AttributeKind `json:"attribute"`
	Kind       VoteKind      `json:"kind"`
	Text       string        `json:"text,omitempty"` // only meaningful for VoteNote
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// AttributeTally is the aggregated read side of the vote ledger for one
// attribute of a provider.
type AttributeTally struct {
	Attribute AttributeKind `json:"attribute"`
	Likes     int           `json:"likes"`
	Notes     []string      `json:"notes,omitempty"`
}
