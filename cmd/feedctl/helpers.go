package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/abelbrown/campusfeed/internal/catalog"
	"github.com/abelbrown/campusfeed/internal/config"
	"github.com/abelbrown/campusfeed/internal/event"
	"github.com/abelbrown/campusfeed/internal/store"
)

// fetchTimeout bounds a single source fetch.
const fetchTimeout = 30 * time.Second

// openDB opens the store or fatals.
func openDB() *store.Store {
	st, err := store.Open(config.DatabasePath())
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	return st
}

// loadCatalog fetches every configured source and merges in the custom
// events, the same way the TUI coordinator assembles the feed. Failed
// sources are reported on stderr and skipped.
func loadCatalog(st *store.Store) []event.Event {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := catalog.SeedFile(config.DefaultCatalogPath()); err != nil {
		log.Fatalf("failed to write starter catalog: %v", err)
	}

	fetcher := catalog.NewFetcher(fetchTimeout)

	var all []event.Event
	for _, src := range cfg.CatalogSources() {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		events, err := fetcher.Fetch(ctx, src)
		cancel()
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: source %s: %v\n", src.Name, err)
			continue
		}
		all = append(all, events...)
	}

	return catalog.Merge(all, st.GetCustomEvents())
}

// findEvent returns the catalog event with the given ID, or nil.
func findEvent(events []event.Event, id string) *event.Event {
	for i := range events {
		if events[i].ID == id {
			return &events[i]
		}
	}
	return nil
}

// when formats an event's start for column output.
func when(e event.Event) string {
	if !e.Scheduled() {
		return "TBA"
	}
	return e.Start.Format("Jan _2 15:04")
}

// truncate shortens a string to max runes, appending "..." if truncated.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
