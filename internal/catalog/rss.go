package catalog

import (
	"bytes"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/abelbrown/campusfeed/internal/event"
)

// ParseRSS decodes an RSS or Atom payload into events. Feed items rarely
// carry structured schedule data, so the published time stands in for the
// event start and categories become tags.
func ParseRSS(body []byte, src Source) ([]event.Event, error) {
	parser := gofeed.NewParser()
	feed, err := parser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	events := make([]event.Event, 0, len(feed.Items))
	for _, item := range feed.Items {
		events = append(events, convertFeedItem(item, src))
	}
	return events, nil
}

// convertFeedItem converts a gofeed.Item to an event.
func convertFeedItem(item *gofeed.Item, src Source) event.Event {
	var start time.Time
	if item.PublishedParsed != nil {
		start = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		start = *item.UpdatedParsed
	}

	organizer := src.Name
	if item.Author != nil && item.Author.Name != "" {
		organizer = item.Author.Name
	}

	// Prefer Description, fallback to Content snippet
	description := item.Description
	if description == "" && item.Content != "" {
		description = truncate(item.Content, 500)
	}

	return event.Event{
		ID:          feedItemID(item),
		Title:       item.Title,
		Description: description,
		Organizer:   organizer,
		URL:         item.Link,
		Tags:        item.Categories,
		Start:       start,
	}
}

// feedItemID creates a deterministic id for a feed item.
// Uses the GUID if available, otherwise hashes the URL.
func feedItemID(item *gofeed.Item) string {
	if item.GUID != "" {
		return hashID(item.GUID)
	}
	if item.Link != "" {
		return hashID(item.Link)
	}
	key := item.Title
	if item.PublishedParsed != nil {
		key += item.PublishedParsed.String()
	}
	return hashID(key)
}
