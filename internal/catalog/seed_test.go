package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSeedFileWritesParseableCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := SeedFile(path); err != nil {
		t.Fatalf("SeedFile failed: %v", err)
	}

	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read seeded catalog: %v", err)
	}
	events, err := ParseJSON(body, Source{Name: "Campus Catalog"})
	if err != nil {
		t.Fatalf("seeded catalog does not parse: %v", err)
	}
	if len(events) < 5 {
		t.Errorf("expected a useful starter catalog, got %d events", len(events))
	}

	// The starter set should exercise the absent-field paths too
	var sawUnscheduled, sawNoLevel, sawNoFaculty bool
	for _, e := range events {
		if !e.Scheduled() {
			sawUnscheduled = true
		}
		if e.Level == "" {
			sawNoLevel = true
		}
		if e.Faculty == "" {
			sawNoFaculty = true
		}
	}
	if !sawUnscheduled || !sawNoLevel || !sawNoFaculty {
		t.Errorf("starter catalog missing absent-field coverage: unscheduled=%v nolevel=%v nofaculty=%v",
			sawUnscheduled, sawNoLevel, sawNoFaculty)
	}
}

func TestSeedFileKeepsExistingCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	existing := `[{"id": "mine", "title": "My Event"}]`
	if err := os.WriteFile(path, []byte(existing), 0o644); err != nil {
		t.Fatalf("write existing: %v", err)
	}

	if err := SeedFile(path); err != nil {
		t.Fatalf("SeedFile failed: %v", err)
	}

	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read catalog: %v", err)
	}
	if string(body) != existing {
		t.Error("SeedFile overwrote an existing catalog")
	}
}
