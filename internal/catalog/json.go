package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abelbrown/campusfeed/internal/event"
)

// eventEntry is the wire form of one event in a JSON catalog.
// Dates are strings so catalogs can carry full timestamps or bare days.
type eventEntry struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Organizer   string   `json:"organizer"`
	Location    string   `json:"location"`
	URL         string   `json:"url"`
	Level       string   `json:"level"`
	Faculty     string   `json:"faculty"`
	Tags        []string `json:"tags"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
}

// ParseJSON decodes a JSON catalog payload into events.
// Entries without a title are dropped. Entries without an id get a
// deterministic one so saves survive refetches.
func ParseJSON(body []byte, src Source) ([]event.Event, error) {
	var entries []eventEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	events := make([]event.Event, 0, len(entries))
	for _, entry := range entries {
		e, ok := convertEntry(entry, src)
		if !ok {
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

func convertEntry(entry eventEntry, src Source) (event.Event, bool) {
	title := strings.TrimSpace(entry.Title)
	if title == "" {
		return event.Event{}, false
	}

	start := parseWhen(entry.Start)
	id := entry.ID
	if id == "" {
		id = hashID(title + entry.Start)
	}

	organizer := entry.Organizer
	if organizer == "" {
		organizer = src.Name
	}

	return event.Event{
		ID:          id,
		Title:       title,
		Description: entry.Description,
		Organizer:   organizer,
		Location:    entry.Location,
		URL:         entry.URL,
		Level:       event.ParseLevel(entry.Level),
		Faculty:     strings.TrimSpace(entry.Faculty),
		Tags:        entry.Tags,
		Start:       start,
		End:         parseWhen(entry.End),
	}, true
}

// parseWhen parses a catalog date. Accepts RFC 3339 timestamps and bare
// dates; anything else reads as "not scheduled yet".
func parseWhen(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Time{}
}
