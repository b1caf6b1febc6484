package domain

import "testing"

func TestAttributeKind_IsValid(t *testing.T) {
	for _, k := range AttributeKinds() {
		if !k.IsValid() {
			t.Errorf("%q should be valid", k)
		}
	}

	invalid := []AttributeKind{"", "quality", "JOB_QUALITY", "speed"}
	for _, k := range invalid {
		if k.IsValid() {
			t.Errorf("%q should be invalid", k)
		}
	}
}

func TestVoteKind_IsValid(t *testing.T) {
	if !VoteLike.IsValid() || !VoteNote.IsValid() {
		t.Error("like and note should be valid")
	}
	for _, k := range []VoteKind{"", "dislike", "Like"} {
		if k.IsValid() {
			t.Errorf("%q should be invalid", k)
		}
	}
}

func TestProvider_IsClaimed(t *testing.T) {
	p := &Provider{}
	if p.IsClaimed() {
		t.Error("new provider should be unclaimed")
	}
	p.OwnerID = "user-1"
	if !p.IsClaimed() {
		t.Error("provider with owner should be claimed")
	}
}
