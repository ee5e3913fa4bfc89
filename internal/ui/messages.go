// Package ui provides the Bubble Tea TUI for campusfeed.
package ui

import "github.com/abelbrown/campusfeed/internal/event"

// CatalogLoaded is sent when the merged catalog is ready after a refresh
// or a re-merge of custom events.
type CatalogLoaded struct {
	Events []event.Event
	Failed int // sources that failed this cycle
}

// StateLoaded is sent when persisted state has been read from the store.
type StateLoaded struct {
	Prefs  *event.Prefs
	Saved  map[string]bool
	Counts map[string]int
}

// PrefsSaved is sent when a profile has been written to the store.
type PrefsSaved struct {
	Prefs event.Prefs
}

// SaveToggled is sent when a save toggle has been persisted.
type SaveToggled struct {
	ID string
}

// EventAdded is sent when a custom event has been written to the store.
type EventAdded struct {
	ID string
}

// StoreChanged is sent when another process mutates the shared store.
type StoreChanged struct {
	Version uint64
}

// ExportDone reports the outcome of a calendar export.
type ExportDone struct {
	Path  string
	Count int
	Err   error
}
