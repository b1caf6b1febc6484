package domain

// Recommendation is a free-text referral note attached to a provider by a
// recommender. The note may embed the "Liked: ... | Watch: ..." mini-language;
// parsing happens at read time, the stored text is never mutated.
type Recommendation struct {
	Record
	ProviderID    string `json:"provider_id"`
	RecommenderID string `json:"recommender_id"`
	Note          string `json:"note"`
}
