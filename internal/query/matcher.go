// Package query provides the free-text event matcher.
// It is a pure predicate: no state, no side effects.
package query

import (
	"strings"

	"github.com/abelbrown/campusfeed/internal/event"
)

// Matches reports whether e matches the free-text query q.
//
// q is split on whitespace and lower-cased; every token must appear as a
// substring of the lower-cased concatenation of the event's title,
// description, organizer, location, and tags (AND across tokens, no OR
// support). An empty or whitespace-only query matches everything.
func Matches(e event.Event, q string) bool {
	tokens := strings.Fields(strings.ToLower(q))
	if len(tokens) == 0 {
		return true
	}

	hay := searchText(e)
	for _, tok := range tokens {
		if !strings.Contains(hay, tok) {
			return false
		}
	}
	return true
}

// searchText builds the haystack the matcher scans: the searchable fields
// joined with spaces and lower-cased. Absent fields contribute empty
// strings rather than erroring.
func searchText(e event.Event) string {
	parts := make([]string, 0, 4+len(e.Tags))
	parts = append(parts, e.Title, e.Description, e.Organizer, e.Location)
	parts = append(parts, e.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}
