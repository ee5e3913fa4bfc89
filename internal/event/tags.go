package event

import "strings"

// canonicalTags is the fixed allow-list backing the tag cloud. Declared
// order doubles as the tie-break order when cloud counts are equal.
var canonicalTags = []string{
	"AI",
	"Hackathon",
	"Design",
	"Career",
	"Workshop",
}

// CanonicalTags returns the tag allow-list in declared order.
func CanonicalTags() []string {
	out := make([]string, len(canonicalTags))
	copy(out, canonicalTags)
	return out
}

// NormalizeTag returns the comparison form of a tag: trimmed and lower-cased.
// Display always uses the original spelling.
func NormalizeTag(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// TagSet builds a normalized lookup set from raw tags.
// Entries that normalize to the empty string are dropped.
func TagSet(tags []string) map[string]bool {
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		if n := NormalizeTag(t); n != "" {
			set[n] = true
		}
	}
	return set
}
