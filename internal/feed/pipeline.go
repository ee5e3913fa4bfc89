// Package feed derives the visible event feed from raw events, user
// preferences, and save state. All functions are pure: events in, events
// out. No side effects.
package feed

import (
	"sort"

	"github.com/abelbrown/campusfeed/internal/event"
	"github.com/abelbrown/campusfeed/internal/query"
)

// maxCloudTags caps the tag cloud length.
const maxCloudTags = 5

// maxTrending caps the trending list length.
const maxTrending = 3

// TagCount is one tag cloud entry. Tag carries the canonical spelling from
// the allow-list, never an event's raw tag text.
type TagCount struct {
	Tag   string
	Count int
}

// Snapshot holds every derived value for one set of inputs.
type Snapshot struct {
	BasePool []event.Event
	TagCloud []TagCount
	Trending []event.Event
	Visible  []event.Event
}

// Compute re-derives the whole feed in dependency order. Call it whenever
// any input changes: events, preferences, save counts, saved set, the
// selection, or the store version after a save toggle.
func Compute(events []event.Event, prefs *event.Prefs, counts map[string]int, saved map[string]bool, sel Selection) Snapshot {
	pool := BasePool(events, prefs, sel.View)
	return Snapshot{
		BasePool: pool,
		TagCloud: TagCloud(pool),
		Trending: Trending(pool, counts),
		Visible:  Visible(pool, saved, sel),
	}
}

// BasePool applies personalization. In personalized view with a profile
// present, an event stays when its faculty is open to the user (absent,
// All, or an exact match) AND its tag set intersects the user's interests.
// Any other view/profile combination passes the full list through.
func BasePool(events []event.Event, prefs *event.Prefs, view ViewMode) []event.Event {
	if len(events) == 0 {
		return []event.Event{}
	}
	if view != ViewPersonalized || prefs == nil {
		return events
	}

	interests := event.TagSet(prefs.Interests)
	result := make([]event.Event, 0, len(events))
	for _, e := range events {
		if !e.OpenToAll() && e.Faculty != prefs.Faculty {
			continue
		}
		if !tagsIntersect(e.Tags, interests) {
			continue
		}
		result = append(result, e)
	}
	return result
}

// TagCloud counts pool tags whose normalized form is on the allow-list.
// Entries sort descending by count; ties keep the allow-list's declared
// order. Tags with no occurrences are omitted.
func TagCloud(pool []event.Event) []TagCount {
	counts := make(map[string]int)
	for _, e := range pool {
		for _, t := range e.Tags {
			counts[event.NormalizeTag(t)]++
		}
	}

	// Build in declared order so the stable sort preserves it for equal counts.
	canonical := event.CanonicalTags()
	cloud := make([]TagCount, 0, len(canonical))
	for _, tag := range canonical {
		if c := counts[event.NormalizeTag(tag)]; c > 0 {
			cloud = append(cloud, TagCount{Tag: tag, Count: c})
		}
	}

	sort.SliceStable(cloud, func(i, j int) bool {
		return cloud[i].Count > cloud[j].Count
	})

	if len(cloud) > maxCloudTags {
		cloud = cloud[:maxCloudTags]
	}
	return cloud
}

// Trending returns the top saved events: pool members with a save count
// above zero, descending by count, ties broken by id ascending so the
// order is deterministic across runs and processes.
func Trending(pool []event.Event, counts map[string]int) []event.Event {
	if len(pool) == 0 || len(counts) == 0 {
		return []event.Event{}
	}

	result := make([]event.Event, 0, len(pool))
	for _, e := range pool {
		if counts[e.ID] > 0 {
			result = append(result, e)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		ci, cj := counts[result[i].ID], counts[result[j].ID]
		if ci != cj {
			return ci > cj
		}
		return result[i].ID < result[j].ID
	})

	if len(result) > maxTrending {
		result = result[:maxTrending]
	}
	return result
}

// Visible filters the pool by level, selected tags, and query, then sorts.
// Date sort is start ascending with unscheduled events last; trending sort
// puts saved events first and falls back to the date order. Both sorts are
// stable for equal keys.
func Visible(pool []event.Event, saved map[string]bool, sel Selection) []event.Event {
	selected := event.TagSet(sel.Tags)
	levelAll := sel.Level == "" || sel.Level == LevelAll

	result := make([]event.Event, 0, len(pool))
	for _, e := range pool {
		if !levelAll && string(e.Level) != sel.Level {
			continue
		}
		if len(selected) > 0 && !tagsIntersect(e.Tags, selected) {
			continue
		}
		if !query.Matches(e, sel.Query) {
			continue
		}
		result = append(result, e)
	}

	switch sel.Sort {
	case SortTrending:
		sort.SliceStable(result, func(i, j int) bool {
			si, sj := saved[result[i].ID], saved[result[j].ID]
			if si != sj {
				return si
			}
			return startBefore(result[i], result[j])
		})
	default:
		sort.SliceStable(result, func(i, j int) bool {
			return startBefore(result[i], result[j])
		})
	}

	return result
}

// startBefore orders by start time ascending, unscheduled events strictly
// after every scheduled one. Two unscheduled events compare equal and keep
// their input order under a stable sort.
func startBefore(a, b event.Event) bool {
	if a.Scheduled() != b.Scheduled() {
		return a.Scheduled()
	}
	if !a.Scheduled() {
		return false
	}
	return a.Start.Before(b.Start)
}

// tagsIntersect reports whether any of tags, normalized, is in set.
func tagsIntersect(tags []string, set map[string]bool) bool {
	for _, t := range tags {
		if set[event.NormalizeTag(t)] {
			return true
		}
	}
	return false
}
