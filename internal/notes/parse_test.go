package notes

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		note      string
		wantLiked []string
		wantWatch []string
	}{
		{
			name:      "both markers",
			note:      "Great work! Liked: Punctual, Clean | Watch: Price",
			wantLiked: []string{"Punctual", "Clean"},
			wantWatch: []string{"Price"},
		},
		{
			name:      "no markers",
			note:      "no markers here",
			wantLiked: nil,
			wantWatch: nil,
		},
		{
			name:      "case insensitive markers",
			note:      "LIKED: Fast | watch: Availability",
			wantLiked: []string{"Fast"},
			wantWatch: []string{"Availability"},
		},
		{
			name:      "liked only",
			note:      "Solid plumber. Liked: Honest pricing, Tidy",
			wantLiked: []string{"Honest pricing", "Tidy"},
			wantWatch: nil,
		},
		{
			name:      "watch only",
			note:      "Watch: Slow to reply",
			wantLiked: nil,
			wantWatch: []string{"Slow to reply"},
		},
		{
			name:      "payload stops at pipe",
			note:      "Liked: A, B | some trailing chatter",
			wantLiked: []string{"A", "B"},
			wantWatch: nil,
		},
		{
			name:      "empty labels discarded",
			note:      "Liked: , A, ,B, |",
			wantLiked: []string{"A", "B"},
			wantWatch: nil,
		},
		{
			name:      "empty payload",
			note:      "Liked: | Watch:",
			wantLiked: nil,
			wantWatch: nil,
		},
		{
			name:      "order preserved",
			note:      "Liked: Zebra, Apple, Mango",
			wantLiked: []string{"Zebra", "Apple", "Mango"},
			wantWatch: nil,
		},
		{
			name:      "empty note",
			note:      "",
			wantLiked: nil,
			wantWatch: nil,
		},
		{
			// "Ⱥ" (U+023A) is 2 bytes but its lowercase form is 3, so an
			// offset taken in a lowered copy would overrun the original.
			name:      "rune lowercase grows in bytes before marker",
			note:      "ȺȺȺȺȺȺLiked: A",
			wantLiked: []string{"A"},
			wantWatch: nil,
		},
		{
			// "İ" (U+0130) lowercases to two runes, shifting byte offsets.
			name:      "rune lowercase shifts offsets before marker",
			note:      "İİİİLiked: A",
			wantLiked: []string{"A"},
			wantWatch: nil,
		},
		{
			name:      "non-ascii labels kept verbatim",
			note:      "Liked: Ponctuel, Propreté | Watch: Tarifs élevés",
			wantLiked: []string{"Ponctuel", "Propreté"},
			wantWatch: []string{"Tarifs élevés"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.note)
			if !reflect.DeepEqual(got.Liked, tt.wantLiked) {
				t.Errorf("Liked: got %v, want %v", got.Liked, tt.wantLiked)
			}
			if !reflect.DeepEqual(got.Watch, tt.wantWatch) {
				t.Errorf("Watch: got %v, want %v", got.Watch, tt.wantWatch)
			}
		})
	}
}
