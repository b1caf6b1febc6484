// Package notes parses the structured mini-language embedded in free-text
// recommendation notes and aggregates many parsed notes into ranked labels.
//
// The format is intentionally tiny: "Liked:" and "Watch:" markers introduce
// comma-separated labels running to the next "|" or the end of the note.
// It lets unstructured text carry a small amount of structured signal without
// dedicated input fields, and this package is the single parser for it so the
// two label sets can never drift apart.
package notes

import "strings"

// Segment markers, matched case-insensitively.
const (
	likedMarker = "liked:"
	watchMarker = "watch:"
)

// ParsedNote holds the label sets extracted from one recommendation note.
// Order within each set follows the order in the note text.
type ParsedNote struct {
	Liked []string
	Watch []string
}

// Parse extracts the mini-language labels from a note.
// A note with neither marker yields two empty sets; Parse never fails.
func Parse(note string) ParsedNote {
	return ParsedNote{
		Liked: extractLabels(note, likedMarker),
		Watch: extractLabels(note, watchMarker),
	}
}

// extractLabels finds the marker case-insensitively, takes the payload up to
// the next "|" or end of string, and splits it into trimmed labels.
func extractLabels(note, marker string) []string {
	idx := indexFold(note, marker)
	if idx < 0 {
		return nil
	}

	payload := note[idx+len(marker):]
	if pipe := strings.IndexByte(payload, '|'); pipe >= 0 {
		payload = payload[:pipe]
	}

	var labels []string
	for part := range strings.SplitSeq(payload, ",") {
		label := strings.TrimSpace(part)
		if label == "" {
			continue
		}
		labels = append(labels, label)
	}
	return labels
}

// indexFold returns the byte offset of the first case-insensitive match of an
// ASCII marker in s, or -1. Matching equal-length windows of the original
// string keeps offsets valid: lowercasing the whole note first can change its
// byte length for some Unicode runes, so indexes into a lowered copy do not
// map back onto s.
func indexFold(s, marker string) int {
	for i := 0; i+len(marker) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(marker)], marker) {
			return i
		}
	}
	return -1
}
