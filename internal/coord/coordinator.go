// Package coord drives background catalog refresh and cross-process sync
// for campusfeed.
package coord

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/abelbrown/campusfeed/internal/catalog"
	"github.com/abelbrown/campusfeed/internal/event"
	"github.com/abelbrown/campusfeed/internal/logging"
	"github.com/abelbrown/campusfeed/internal/store"
	"github.com/abelbrown/campusfeed/internal/ui"
)

// defaultRefreshInterval is used when the configured interval is unset.
const defaultRefreshInterval = 15 * time.Minute

// refreshTimeout bounds each individual source fetch.
const refreshTimeout = 30 * time.Second

// maxConcurrentFetches limits parallel source fetches.
const maxConcurrentFetches = 4

// fetcher interface for dependency injection (testing).
type fetcher interface {
	Fetch(ctx context.Context, src catalog.Source) ([]event.Event, error)
}

// Coordinator refreshes the catalog in the background and forwards store
// changes made by other processes to the UI.
// Uses context cancellation as the ONLY stop mechanism.
type Coordinator struct {
	store    *store.Store
	fetcher  fetcher          // interface for testing
	sources  []catalog.Source // IMMUTABLE: set at construction, never modified
	interval time.Duration

	mu      sync.Mutex
	fetched [][]event.Event // last good batch per source, index-aligned with sources

	wg sync.WaitGroup
}

// NewCoordinator creates a Coordinator with the real fetcher.
func NewCoordinator(s *store.Store, f *catalog.Fetcher, sources []catalog.Source, interval time.Duration) *Coordinator {
	return NewCoordinatorWithFetcher(s, f, sources, interval)
}

// NewCoordinatorWithFetcher allows injecting a custom fetcher (for testing).
func NewCoordinatorWithFetcher(s *store.Store, f fetcher, sources []catalog.Source, interval time.Duration) *Coordinator {
	// Copy sources slice to ensure immutability
	sourcesCopy := make([]catalog.Source, len(sources))
	copy(sourcesCopy, sources)

	if interval <= 0 {
		interval = defaultRefreshInterval
	}

	return &Coordinator{
		store:    s,
		fetcher:  f,
		sources:  sourcesCopy,
		interval: interval,
		fetched:  make([][]event.Event, len(sourcesCopy)),
	}
}

// Start begins background refreshing. Call with a cancellable context.
// Performs an initial refresh immediately, then one per interval.
func (c *Coordinator) Start(ctx context.Context, program *tea.Program) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		c.refreshAll(ctx, program)

		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.refreshAll(ctx, program)
			}
		}
	}()
}

// StartSyncWatcher polls the store version and forwards changes written
// by other processes to the program.
func (c *Coordinator) StartSyncWatcher(ctx context.Context, program *tea.Program, poll time.Duration) error {
	w := store.NewWatcher(c.store, poll, func(v uint64) {
		if program != nil {
			program.Send(ui.StoreChanged{Version: v})
		}
	})
	if err := w.Start(ctx); err != nil {
		return err
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		<-ctx.Done()
		_ = w.Stop()
	}()
	return nil
}

// Wait blocks until all background goroutines exit.
// Call after canceling the context passed to Start.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// Merged returns the current catalog without refetching: the last good
// batch from every source plus the store's custom events.
func (c *Coordinator) Merged() []event.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mergeLocked()
}

// refreshAll runs one refresh cycle and sends the aggregated result to
// the program. Handle nil program gracefully for testing.
func (c *Coordinator) refreshAll(ctx context.Context, program *tea.Program) {
	msg := c.refresh(ctx)
	if program != nil {
		program.Send(msg)
	}
}

// refresh fetches all sources in parallel and aggregates them into one
// ui.CatalogLoaded. Each fetch has its own timeout. A failed source
// keeps its last good batch, so one dead host never blanks the feed.
func (c *Coordinator) refresh(ctx context.Context) ui.CatalogLoaded {
	res := make([][]event.Event, len(c.sources))
	errs := make([]error, len(c.sources))

	var g errgroup.Group
	g.SetLimit(maxConcurrentFetches)

	for i, src := range c.sources {
		g.Go(func() error {
			// Early exit if context cancelled
			if ctx.Err() != nil {
				errs[i] = ctx.Err()
				return nil
			}

			fetchCtx, cancel := context.WithTimeout(ctx, refreshTimeout)
			defer cancel()

			events, err := c.fetcher.Fetch(fetchCtx, src)
			if err != nil {
				logging.Warn("coord: source fetch failed", "source", src.Name, "error", err)
				errs[i] = err
				return nil // never fail the group - failures degrade per-source
			}
			res[i] = events
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	c.mu.Lock()
	for i := range c.sources {
		if errs[i] != nil {
			failed++
			continue
		}
		c.fetched[i] = res[i]
	}
	merged := c.mergeLocked()
	c.mu.Unlock()

	logging.Debug("coord: refresh complete", "events", len(merged), "failed", failed)
	return ui.CatalogLoaded{Events: merged, Failed: failed}
}

// mergeLocked flattens the per-source batches and folds in custom events.
// Callers must hold c.mu.
func (c *Coordinator) mergeLocked() []event.Event {
	var all []event.Event
	for _, batch := range c.fetched {
		all = append(all, batch...)
	}
	return catalog.Merge(all, c.store.GetCustomEvents())
}
