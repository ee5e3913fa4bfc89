package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/campusfeed/internal/catalog"
	"github.com/abelbrown/campusfeed/internal/config"
	"github.com/abelbrown/campusfeed/internal/coord"
	"github.com/abelbrown/campusfeed/internal/event"
	"github.com/abelbrown/campusfeed/internal/export"
	"github.com/abelbrown/campusfeed/internal/logging"
	"github.com/abelbrown/campusfeed/internal/store"
	"github.com/abelbrown/campusfeed/internal/ui"
)

// fetchTimeout bounds a single source fetch.
const fetchTimeout = 30 * time.Second

func main() {
	// Initialize logging
	if err := logging.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}
	defer logging.Close()

	logging.Info("campusfeed starting")

	// Setup context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())

	cfg, err := config.Load()
	if err != nil {
		fatal("Failed to load config: %v", err)
	}

	// First run: write the starter catalog so the feed is never empty
	if err := catalog.SeedFile(config.DefaultCatalogPath()); err != nil {
		logging.Warn("could not write starter catalog", "error", err)
	}

	// Open store. A broken database file degrades to an in-memory store:
	// the session works, nothing persists.
	st, err := store.Open(config.DatabasePath())
	if err != nil {
		logging.Error("falling back to in-memory store", "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open database, changes will not persist: %v\n", err)
		if st, err = store.Open(":memory:"); err != nil {
			fatal("Failed to open database: %v", err)
		}
	}
	defer st.Close()
	logging.Info("store opened", "path", config.DatabasePath())

	fetcher := catalog.NewFetcher(fetchTimeout)
	coordinator := coord.NewCoordinator(st, fetcher, cfg.CatalogSources(), cfg.RefreshInterval())

	exportPath := filepath.Join(config.DataDir(), "saved.ics")

	// Create UI app with dependency injection
	appCfg := ui.AppConfig{
		LoadState: func() tea.Cmd {
			return func() tea.Msg {
				return ui.StateLoaded{
					Prefs:  st.GetPreferences(),
					Saved:  st.GetSavedIDs(),
					Counts: st.GetSaveCounts(),
				}
			}
		},
		// loadEvents re-merges the last fetched batches; it never blocks on the network
		LoadEvents: func() tea.Cmd {
			return func() tea.Msg {
				return ui.CatalogLoaded{Events: coordinator.Merged()}
			}
		},
		// The saved profile comes back through the store's push channel,
		// so every in-process writer lands in the UI the same way
		SavePrefs: func(p event.Prefs) tea.Cmd {
			return func() tea.Msg {
				st.SavePreferences(p)
				return nil
			}
		},
		ToggleSave: func(id string) tea.Cmd {
			return func() tea.Msg {
				st.ToggleSaved(id)
				return ui.SaveToggled{ID: id}
			}
		},
		AddEvent: func(e event.Event) tea.Cmd {
			return func() tea.Msg {
				id := st.AddCustomEvent(e)
				return ui.EventAdded{ID: id}
			}
		},
		ExportSaved: func(events []event.Event) tea.Cmd {
			return func() tea.Msg {
				err := export.WriteICSFile(exportPath, events)
				count := 0
				for _, e := range events {
					if e.Scheduled() {
						count++
					}
				}
				return ui.ExportDone{Path: exportPath, Count: count, Err: err}
			}
		},
	}

	app := ui.NewApp(appCfg)

	// Create program
	program := tea.NewProgram(app, tea.WithAltScreen())

	// In-process preference pushes become messages
	if err := st.Subscribe("tui", func(p event.Prefs) {
		program.Send(ui.PrefsSaved{Prefs: p})
	}); err != nil {
		logging.Warn("prefs push channel unavailable", "error", err)
	}

	// Create and start coordinator
	coordinator.Start(ctx, program)

	// Watch for writes from other campusfeed processes
	if err := coordinator.StartSyncWatcher(ctx, program, cfg.SyncPollInterval()); err != nil {
		logging.Warn("cross-process sync disabled", "error", err)
	}

	// Run UI (blocks until quit)
	if _, err := program.Run(); err != nil {
		logging.Error("application error", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	// Graceful shutdown
	cancel()
	coordinator.Wait()
	logging.Info("campusfeed exiting")
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
