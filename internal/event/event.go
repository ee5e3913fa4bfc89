// Package event defines the campus event domain model.
package event

import (
	"fmt"
	"strings"
	"time"
)

// Level is an event's difficulty level. The zero value means unspecified.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// ParseLevel maps a raw string to a Level. Unknown or empty input yields
// the unspecified level rather than an error.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner":
		return LevelBeginner
	case "intermediate":
		return LevelIntermediate
	case "advanced":
		return LevelAdvanced
	}
	return ""
}

// FacultyAll is the sentinel faculty meaning "open to all faculties".
// An empty Faculty field means the same thing.
const FacultyAll = "All"

// faculties is the fixed list offered during onboarding. FacultyAll is an
// event-side sentinel, not a profile choice, so it is not listed here.
var faculties = []string{
	"Science",
	"Arts",
	"Engineering",
	"Commerce",
	"Medicine",
	"Education",
}

// Faculties returns the fixed faculty list in display order.
func Faculties() []string {
	out := make([]string, len(faculties))
	copy(out, faculties)
	return out
}

// ValidFaculty reports whether name is one of the fixed faculties.
func ValidFaculty(name string) bool {
	for _, f := range faculties {
		if f == name {
			return true
		}
	}
	return false
}

// Event is a single campus event. Immutable once loaded into the pipeline.
type Event struct {
	ID          string
	Title       string
	Description string
	Organizer   string
	Location    string
	URL         string
	Level       Level     // empty = unspecified
	Faculty     string    // empty or FacultyAll = open to every faculty
	Tags        []string  // display spelling; compare via NormalizeTag
	Start       time.Time // zero = unscheduled, sorts after all dated events
	End         time.Time
	IsCustom    bool
}

// Scheduled reports whether the event has a start time.
func (e Event) Scheduled() bool {
	return !e.Start.IsZero()
}

// OpenToAll reports whether the event is open to every faculty.
func (e Event) OpenToAll() bool {
	return e.Faculty == "" || e.Faculty == FacultyAll
}

// Prefs is the user's personalization profile.
// Absence (a nil *Prefs) is a valid state: no profile yet.
type Prefs struct {
	Name      string
	Faculty   string
	Interests []string
}

// Interest cardinality bounds, enforced at profile creation only.
const (
	MinInterests = 2
	MaxInterests = 5
)

// ValidatePrefs checks a profile at creation time. The feed pipeline never
// re-validates stored preferences; only the producing workflows (onboarding
// form, the feedctl prefs command) call this.
func ValidatePrefs(p Prefs) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if !ValidFaculty(p.Faculty) {
		return fmt.Errorf("unknown faculty %q", p.Faculty)
	}
	if n := len(p.Interests); n < MinInterests || n > MaxInterests {
		return fmt.Errorf("interests must number between %d and %d, got %d", MinInterests, MaxInterests, n)
	}
	return nil
}
