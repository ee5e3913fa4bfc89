package catalog

import "github.com/abelbrown/campusfeed/internal/event"

// Merge combines fetched catalog events with locally submitted ones.
// Custom events come first, and when the same id appears in both, the
// custom version wins: a catalog refresh never replaces a student's own
// submission.
func Merge(fetched, custom []event.Event) []event.Event {
	merged := make([]event.Event, 0, len(fetched)+len(custom))
	seen := make(map[string]bool, len(fetched)+len(custom))

	for _, e := range custom {
		if e.ID == "" || seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		merged = append(merged, e)
	}
	for _, e := range fetched {
		if e.ID == "" || seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		merged = append(merged, e)
	}
	return merged
}
