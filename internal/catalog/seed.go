package catalog

import (
	"os"
	"path/filepath"
)

// starterCatalog ships a handful of events so a fresh install has
// something to browse before real sources are configured.
const starterCatalog = `[
  {
    "id": "ai-hackathon-2026",
    "title": "AI Hackathon",
    "description": "48 hours to build something clever with machine learning. Teams of up to four, mentors on site, pizza included.",
    "organizer": "CS Society",
    "location": "Building 7, Level 2",
    "url": "https://events.example.edu/ai-hackathon",
    "level": "beginner",
    "faculty": "Science",
    "tags": ["AI", "Hackathon"],
    "start": "2026-09-12T18:00:00Z",
    "end": "2026-09-14T18:00:00Z"
  },
  {
    "id": "design-systems-talk",
    "title": "Design Systems in the Wild",
    "description": "How three campus products keep their interfaces consistent.",
    "organizer": "Design Collective",
    "location": "Media Lab",
    "url": "https://events.example.edu/design-systems",
    "level": "intermediate",
    "faculty": "All",
    "tags": ["Design"],
    "start": "2026-09-18T17:30:00Z"
  },
  {
    "id": "career-fair-spring",
    "title": "Spring Career Fair",
    "description": "Forty employers across tech, consulting, and public service. Bring printed resumes.",
    "organizer": "Careers Office",
    "location": "Great Hall",
    "url": "https://events.example.edu/career-fair",
    "tags": ["Career"],
    "start": "2026-10-02T09:00:00Z",
    "end": "2026-10-02T16:00:00Z"
  },
  {
    "id": "soldering-workshop",
    "title": "Intro to Soldering",
    "description": "Hands-on workshop. All kit provided, no experience needed.",
    "organizer": "Makers Guild",
    "location": "Engineering Workshop B",
    "level": "beginner",
    "faculty": "Engineering",
    "tags": ["Workshop"],
    "start": "2026-09-25T15:00:00Z"
  },
  {
    "id": "ml-reading-group",
    "title": "Advanced ML Reading Group",
    "description": "Weekly paper discussion. This term: reasoning models. First session date to be announced.",
    "organizer": "ML Lab",
    "level": "advanced",
    "faculty": "Science",
    "tags": ["AI"]
  },
  {
    "id": "pitch-night",
    "title": "Startup Pitch Night",
    "description": "Six student teams, five minutes each, a panel of alumni founders.",
    "organizer": "Entrepreneurship Club",
    "location": "Commerce Auditorium",
    "url": "https://events.example.edu/pitch-night",
    "level": "intermediate",
    "faculty": "Commerce",
    "tags": ["Career", "Design"],
    "start": "2026-10-15T18:00:00Z"
  },
  {
    "id": "anatomy-drawing",
    "title": "Anatomy Drawing Session",
    "description": "Figure drawing for medical illustration. Materials provided.",
    "organizer": "Medical Arts Society",
    "location": "Anatomy Theatre",
    "faculty": "Medicine",
    "tags": ["Workshop", "Design"],
    "start": "2026-09-30T16:00:00Z"
  },
  {
    "id": "teaching-with-tech",
    "title": "Teaching with Technology Seminar",
    "description": "Classroom uses of AI tools, with live demos from practicum students.",
    "organizer": "Education Faculty",
    "location": "Seminar Room 12",
    "level": "beginner",
    "faculty": "Education",
    "tags": ["Workshop", "AI"],
    "start": "2026-11-05T13:00:00Z"
  }
]
`

// SeedFile writes the starter catalog to path when no file exists there.
// An existing catalog is never touched.
func SeedFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(starterCatalog), 0644)
}
