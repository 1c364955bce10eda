package entity

import (
	"fmt"
	"sort"
	"strings"
)

// Result holds the anonymized text produced from a set of detections.
type Result struct {
	Text string `json:"text"`
}

// Anonymizer replaces detected entity spans with placeholder tokens.
type Anonymizer struct{}

// NewAnonymizer returns a ready-to-use Anonymizer.
func NewAnonymizer() *Anonymizer {
	return &Anonymizer{}
}

// Anonymize replaces each detection's span in text with a placeholder naming the entity type, e.g.
// "<EMAIL_ADDRESS>". Overlapping detections are resolved before replacement: the higher score wins, with the
// longer span breaking ties.
func (an *Anonymizer) Anonymize(text string, detections []Detection) Result {
	resolved := resolveOverlaps(detections)

	// Replace right to left so earlier offsets stay valid.
	var b strings.Builder
	out := text
	for i := len(resolved) - 1; i >= 0; i-- {
		d := resolved[i]
		if d.Start < 0 || d.End > len(out) || d.Start > d.End {
			continue
		}
		b.Reset()
		b.WriteString(out[:d.Start])
		b.WriteString(fmt.Sprintf("<%s>", d.EntityType))
		b.WriteString(out[d.End:])
		out = b.String()
	}
	return Result{Text: out}
}

// resolveOverlaps returns a copy of detections with overlapping spans reduced to a single winner each,
// sorted by start offset.
func resolveOverlaps(detections []Detection) []Detection {
	sorted := make([]Detection, len(detections))
	copy(sorted, detections)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return (sorted[i].End - sorted[i].Start) > (sorted[j].End - sorted[j].Start)
	})

	var kept []Detection
	for _, d := range sorted {
		overlaps := false
		for _, k := range kept {
			if d.Start < k.End && k.Start < d.End {
				overlaps = true
				break
			}
		}
		if !overlaps {
			kept = append(kept, d)
		}
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].Start < kept[j].Start })
	return kept
}
