package e2e

import (
	"os"
	"path/filepath"

	"github.com/abelbrown/campusfeed/internal/store"
)

// fixtureCatalog is a tiny deterministic catalog for UI tests. Two events,
// both scheduled, dates chosen so the default order is hackathon first.
const fixtureCatalog = `[
  {
    "id": "fix-hack",
    "title": "Fixture Hackathon",
    "description": "A deterministic hackathon for UI tests.",
    "organizer": "Test Club",
    "location": "Lab 1",
    "level": "beginner",
    "faculty": "Science",
    "tags": ["AI", "Hackathon"],
    "start": "2026-09-12T18:00:00Z"
  },
  {
    "id": "fix-workshop",
    "title": "Fixture Workshop",
    "description": "A deterministic workshop for UI tests.",
    "organizer": "Test Office",
    "location": "Room 2",
    "level": "intermediate",
    "faculty": "All",
    "tags": ["Workshop"],
    "start": "2026-09-13T10:00:00Z"
  }
]
`

// seedFixtureHome writes the fixture catalog and an empty database under
// homeDir. The default config points at ~/.campusfeed/catalog.json, so a
// pre-seeded file keeps the app deterministic and offline.
func seedFixtureHome(homeDir string) error {
	dataDir := filepath.Join(homeDir, ".campusfeed")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dataDir, "catalog.json"), []byte(fixtureCatalog), 0644); err != nil {
		return err
	}
	st, err := store.Open(filepath.Join(dataDir, "feed.db"))
	if err != nil {
		return err
	}
	return st.Close()
}
