package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/abelbrown/campusfeed/internal/event"
)

func TestFetchJSONOverHTTP(t *testing.T) {
	body := `[
  {
    "id": "1",
    "title": "AI Hackathon",
    "description": "48 hour build sprint",
    "organizer": "CS Society",
    "location": "Building 7",
    "level": "beginner",
    "faculty": "Science",
    "tags": ["AI", "Hackathon"],
    "start": "2025-01-10T18:00:00Z",
    "end": "2025-01-10T21:00:00Z"
  },
  {
    "id": "2",
    "title": "Design Talk",
    "tags": ["Design"]
  }
]`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer server.Close()

	fetcher := NewFetcher(5 * time.Second)
	events, err := fetcher.Fetch(context.Background(), Source{Type: SourceJSON, Name: "Campus Events", URL: server.URL})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	first := events[0]
	if first.ID != "1" || first.Title != "AI Hackathon" {
		t.Errorf("unexpected first event: %+v", first)
	}
	if first.Level != event.LevelBeginner {
		t.Errorf("expected beginner level, got %q", first.Level)
	}
	want := time.Date(2025, 1, 10, 18, 0, 0, 0, time.UTC)
	if !first.Start.Equal(want) {
		t.Errorf("expected start %v, got %v", want, first.Start)
	}

	second := events[1]
	if second.Scheduled() {
		t.Errorf("expected unscheduled event, got start %v", second.Start)
	}
	if second.Level != "" {
		t.Errorf("expected absent level, got %q", second.Level)
	}
	// Organizer falls back to the source name
	if second.Organizer != "Campus Events" {
		t.Errorf("expected source name organizer, got %q", second.Organizer)
	}
}

func TestFetchRSS(t *testing.T) {
	rss := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Campus Announcements</title>
    <item>
      <title>Career Fair Opens</title>
      <link>http://example.edu/career-fair</link>
      <description>Meet forty employers</description>
      <category>Career</category>
      <pubDate>Mon, 01 Jan 2024 12:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Workshop Signups</title>
      <link>http://example.edu/workshops</link>
      <description>Spots are limited</description>
      <pubDate>Mon, 01 Jan 2024 11:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(rss))
	}))
	defer server.Close()

	fetcher := NewFetcher(5 * time.Second)
	events, err := fetcher.Fetch(context.Background(), Source{Type: SourceRSS, Name: "Announcements", URL: server.URL})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	first := events[0]
	if first.Title != "Career Fair Opens" {
		t.Errorf("expected 'Career Fair Opens', got %s", first.Title)
	}
	if first.URL != "http://example.edu/career-fair" {
		t.Errorf("unexpected URL: %s", first.URL)
	}
	if len(first.Tags) != 1 || first.Tags[0] != "Career" {
		t.Errorf("expected category as tag, got %v", first.Tags)
	}
	want := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	if !first.Start.Equal(want) {
		t.Errorf("expected start %v, got %v", want, first.Start)
	}
	if first.ID == "" {
		t.Error("expected deterministic id, got empty")
	}

	// Same payload, same ids
	again, err := fetcher.Fetch(context.Background(), Source{Type: SourceRSS, Name: "Announcements", URL: server.URL})
	if err != nil {
		t.Fatalf("second Fetch failed: %v", err)
	}
	if again[0].ID != first.ID {
		t.Errorf("ids not stable across fetches: %s vs %s", again[0].ID, first.ID)
	}
}

func TestFetchICS(t *testing.T) {
	ics := `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//Campus//Events//EN
BEGIN:VEVENT
UID:hack-2025@example.edu
DTSTAMP:20250105T090000Z
DTSTART:20250110T180000Z
DTEND:20250110T210000Z
SUMMARY:AI Hackathon
LOCATION:Building 7
DESCRIPTION:48 hour build sprint
CATEGORIES:AI,Hackathon
URL:https://example.edu/hack
END:VEVENT
END:VCALENDAR
`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/calendar")
		w.Write([]byte(ics))
	}))
	defer server.Close()

	fetcher := NewFetcher(5 * time.Second)
	events, err := fetcher.Fetch(context.Background(), Source{Type: SourceICS, Name: "Faculty Calendar", URL: server.URL})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	got := events[0]
	if got.Title != "AI Hackathon" || got.Location != "Building 7" {
		t.Errorf("unexpected event: %+v", got)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "AI" || got.Tags[1] != "Hackathon" {
		t.Errorf("expected categories as tags, got %v", got.Tags)
	}
	want := time.Date(2025, 1, 10, 18, 0, 0, 0, time.UTC)
	if !got.Start.Equal(want) {
		t.Errorf("expected start %v, got %v", want, got.Start)
	}
	if got.Organizer != "Faculty Calendar" {
		t.Errorf("expected source name organizer, got %q", got.Organizer)
	}
}

func TestFetchLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	body := `[{"id": "1", "title": "Open Day", "tags": ["Workshop"]}]`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	fetcher := NewFetcher(5 * time.Second)
	events, err := fetcher.Fetch(context.Background(), Source{Type: SourceJSON, Name: "Local", URL: path})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(events) != 1 || events[0].Title != "Open Day" {
		t.Errorf("unexpected events: %+v", events)
	}
}

func TestFetchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := NewFetcher(5 * time.Second)
	_, err := fetcher.Fetch(context.Background(), Source{Type: SourceJSON, Name: "Bad", URL: server.URL})
	if err == nil {
		t.Error("expected error for 404 response")
	}
}

func TestFetchUnknownSourceType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	fetcher := NewFetcher(5 * time.Second)
	_, err := fetcher.Fetch(context.Background(), Source{Type: "carrier-pigeon", Name: "Bad", URL: path})
	if err == nil {
		t.Error("expected error for unknown source type")
	}
}

func TestFetchCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := NewFetcher(5 * time.Second)
	_, err := fetcher.Fetch(ctx, Source{Type: SourceJSON, Name: "X", URL: "http://example.invalid/catalog.json"})
	if err == nil {
		t.Error("expected error for cancelled context")
	}
}
