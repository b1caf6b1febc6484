package notes

import "sort"

// Display cutoffs for the ranked lists. These are product decisions (bounded
// lists for UI consumption), not algorithmic limits.
const (
	TopLikedLimit = 3
	TopWatchLimit = 2
)

// Rank combines many parsed notes for one provider into the ranked display
// lists: at most TopLikedLimit liked labels and TopWatchLimit watch labels.
//
// Labels are counted case-sensitively. A label repeated inside a single note
// counts once for that note; a label appearing in five different notes counts
// five. Ordering is by descending count, ties broken by first appearance
// across the input sequence. Zero notes yields two empty lists.
func Rank(parsed []ParsedNote) (topLiked, topWatch []string) {
	liked := make([][]string, 0, len(parsed))
	watch := make([][]string, 0, len(parsed))
	for _, n := range parsed {
		liked = append(liked, n.Liked)
		watch = append(watch, n.Watch)
	}

	return rankLabels(liked, TopLikedLimit), rankLabels(watch, TopWatchLimit)
}

// rankLabels counts each label once per note, then returns the top labels by
// count with first-seen tie-breaking.
func rankLabels(perNote [][]string, limit int) []string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	var order []string

	pos := 0
	for _, labels := range perNote {
		seenInNote := make(map[string]bool, len(labels))
		for _, label := range labels {
			if seenInNote[label] {
				continue
			}
			seenInNote[label] = true

			if _, ok := firstSeen[label]; !ok {
				firstSeen[label] = pos
				order = append(order, label)
				pos++
			}
			counts[label]++
		}
	}

	// Stable sort keeps first-seen order for equal counts.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > limit {
		order = order[:limit]
	}
	return order
}
