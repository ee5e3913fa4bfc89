package query

import (
	"testing"

	"github.com/abelbrown/campusfeed/internal/event"
)

func sampleEvent() event.Event {
	return event.Event{
		ID:          "1",
		Title:       "AI Hackathon Kickoff",
		Description: "Build something over a weekend",
		Organizer:   "CS Society",
		Location:    "Engineering Hall",
		Tags:        []string{"AI", "Hackathon"},
	}
}

func TestMatchesEmptyQuery(t *testing.T) {
	e := sampleEvent()
	if !Matches(e, "") {
		t.Error("empty query should match every event")
	}
	if !Matches(e, "   ") {
		t.Error("whitespace-only query should match every event")
	}
	if !Matches(event.Event{}, "") {
		t.Error("empty query should match an empty event")
	}
}

func TestMatchesSingleToken(t *testing.T) {
	e := sampleEvent()
	if !Matches(e, "hackathon") {
		t.Error("expected title match")
	}
	if !Matches(e, "WEEKEND") {
		t.Error("matching should be case-insensitive")
	}
	if !Matches(e, "society") {
		t.Error("expected organizer match")
	}
	if !Matches(e, "hall") {
		t.Error("expected location match")
	}
	if Matches(e, "robotics") {
		t.Error("unexpected match for absent token")
	}
}

func TestMatchesAllTokensRequired(t *testing.T) {
	e := sampleEvent()
	if !Matches(e, "ai weekend") {
		t.Error("expected match when every token is present")
	}
	if Matches(e, "ai robotics") {
		t.Error("one missing token should fail the whole query")
	}
}

func TestMatchesSubstring(t *testing.T) {
	e := sampleEvent()
	// "hack" is a substring of "Hackathon"; whole-word matching is not required.
	if !Matches(e, "hack") {
		t.Error("expected substring match")
	}
}

func TestMatchesTags(t *testing.T) {
	e := event.Event{ID: "2", Title: "Evening Mixer", Tags: []string{"Career"}}
	if !Matches(e, "career") {
		t.Error("tags should be searchable")
	}
}

func TestMatchesAbsentFields(t *testing.T) {
	e := event.Event{ID: "3", Title: "Minimal"}
	if !Matches(e, "minimal") {
		t.Error("expected match on title only")
	}
	if Matches(e, "anything") {
		t.Error("unexpected match on absent fields")
	}
}
