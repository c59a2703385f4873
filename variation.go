package repurpose

import "strings"

// VariationCount is the number of rewrites produced per post.
const VariationCount = 3

// VariationMarker is the token the prompt asks the model to put before each
// variation ("VARIATION 1:", "VARIATION 2:", ...).
const VariationMarker = "VARIATION"

// FallbackVariation fills slots that could not be recovered from the model output.
const FallbackVariation = "Error: Could not generate variation. Please try again."

// paragraphBreak separates variations when the model ignores the markers.
const paragraphBreak = "\n\n\n"

// VariationSet holds exactly VariationCount candidate posts, in the order the
// model produced them. Style labels follow from the index (see VariationStyles).
type VariationSet [VariationCount]string

// Padded reports how many entries are FallbackVariation.
func (s VariationSet) Padded() int {
	var n int
	for _, v := range s {
		if v == FallbackVariation {
			n++
		}
	}
	return n
}

// Slice returns the variations as a slice.
func (s VariationSet) Slice() []string {
	return s[:]
}

// ParseVariations recovers three posts from raw model output.
//
// The marker split is tried first and accepted only if it yields exactly
// three posts. Otherwise the text is split on blank-paragraph breaks instead.
// The result is padded with FallbackVariation or truncated to three entries.
// ParseVariations never fails.
func ParseVariations(raw string) VariationSet {
	candidates := splitOnMarkers(raw)
	if len(candidates) != VariationCount {
		candidates = splitOnParagraphs(raw)
	}

	var set VariationSet
	for i := range set {
		if i < len(candidates) {
			set[i] = candidates[i]
		} else {
			set[i] = FallbackVariation
		}
	}
	return set
}

// splitOnMarkers splits on VariationMarker, drops the preamble, and strips the
// "<n>:" line from each segment. Segments with no body are dropped.
func splitOnMarkers(raw string) []string {
	parts := strings.Split(raw, VariationMarker)

	var posts []string
	for _, part := range parts[1:] {
		lines := strings.SplitN(strings.TrimSpace(part), "\n", 2)
		if len(lines) < 2 {
			continue
		}
		if body := strings.TrimSpace(lines[1]); body != "" {
			posts = append(posts, body)
		}
	}
	return posts
}

// splitOnParagraphs splits on triple newlines and keeps non-empty segments.
func splitOnParagraphs(raw string) []string {
	var posts []string
	for _, part := range strings.Split(raw, paragraphBreak) {
		if part = strings.TrimSpace(part); part != "" {
			posts = append(posts, part)
		}
	}
	return posts
}
