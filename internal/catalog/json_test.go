package catalog

import (
	"testing"
	"time"
)

func TestParseJSONMinimalEntry(t *testing.T) {
	events, err := ParseJSON([]byte(`[{"title": "Pizza Night"}]`), Source{Name: "Clubs"})
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	got := events[0]
	if len(got.ID) != 16 {
		t.Errorf("expected generated 16 char id, got %q", got.ID)
	}
	if got.Scheduled() {
		t.Errorf("expected unscheduled event, got start %v", got.Start)
	}
	if got.Level != "" {
		t.Errorf("expected absent level, got %q", got.Level)
	}
}

func TestParseJSONGeneratedIDStable(t *testing.T) {
	body := []byte(`[{"title": "Pizza Night", "start": "2025-02-01"}]`)
	a, err := ParseJSON(body, Source{Name: "Clubs"})
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	b, err := ParseJSON(body, Source{Name: "Clubs"})
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	if a[0].ID != b[0].ID {
		t.Errorf("generated ids not stable: %s vs %s", a[0].ID, b[0].ID)
	}
}

func TestParseJSONDropsUntitled(t *testing.T) {
	body := []byte(`[{"id": "1", "title": "  "}, {"id": "2", "title": "Kept"}]`)
	events, err := ParseJSON(body, Source{Name: "Clubs"})
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	if len(events) != 1 || events[0].ID != "2" {
		t.Errorf("expected only titled entry, got %+v", events)
	}
}

func TestParseJSONBadDateReadsAsUnscheduled(t *testing.T) {
	body := []byte(`[{"id": "1", "title": "X", "start": "next tuesday-ish"}]`)
	events, err := ParseJSON(body, Source{Name: "Clubs"})
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	if events[0].Scheduled() {
		t.Errorf("expected bad date to read as unscheduled, got %v", events[0].Start)
	}
}

func TestParseJSONBareDate(t *testing.T) {
	body := []byte(`[{"id": "1", "title": "X", "start": "2025-01-10"}]`)
	events, err := ParseJSON(body, Source{Name: "Clubs"})
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	want := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	if !events[0].Start.Equal(want) {
		t.Errorf("expected %v, got %v", want, events[0].Start)
	}
}

func TestParseJSONUnknownLevelReadsAsAbsent(t *testing.T) {
	body := []byte(`[{"id": "1", "title": "X", "level": "wizard"}]`)
	events, err := ParseJSON(body, Source{Name: "Clubs"})
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	if events[0].Level != "" {
		t.Errorf("expected absent level, got %q", events[0].Level)
	}
}

func TestParseJSONInvalidPayload(t *testing.T) {
	if _, err := ParseJSON([]byte(`{"not": "an array"}`), Source{}); err == nil {
		t.Error("expected error for non-array payload")
	}
	if _, err := ParseJSON([]byte(`garbage`), Source{}); err == nil {
		t.Error("expected error for malformed payload")
	}
}
