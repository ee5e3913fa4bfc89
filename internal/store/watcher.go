package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/abelbrown/campusfeed/internal/logging"
)

var (
	// ErrWatcherRunning is returned when starting a watcher that is already running.
	ErrWatcherRunning = errors.New("watcher already running")
	// ErrWatcherNotRunning is returned when stopping a watcher that is not running.
	ErrWatcherNotRunning = errors.New("watcher not running")
)

// Watcher polls the durable state version and reports changes made by
// other processes sharing the same database file. Changes written by this
// process are suppressed; the UI already reflects them.
//
// Two writes landing between polls coalesce into one signal. That is
// fine for consumers that re-read everything on signal.
type Watcher struct {
	store    *Store
	interval time.Duration
	onChange func(version uint64)

	mu       sync.Mutex
	running  bool
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	lastSeen uint64
}

// NewWatcher creates a watcher that invokes onChange with the new version
// whenever another process advances the state. An interval <= 0 defaults
// to one second.
func NewWatcher(st *Store, interval time.Duration, onChange func(version uint64)) *Watcher {
	if interval <= 0 {
		interval = time.Second
	}
	return &Watcher{
		store:    st,
		interval: interval,
		onChange: onChange,
	}
}

// Start begins polling until ctx is cancelled or Stop is called.
// Returns ErrWatcherRunning if already started.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return ErrWatcherRunning
	}

	// Changes older than Start are history, not news.
	w.lastSeen = w.store.StateVersion()

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.running = true

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		logging.Debug("watcher: started", "interval", w.interval)
		for {
			select {
			case <-ctx.Done():
				logging.Debug("watcher: stopped")
				return
			case <-ticker.C:
				w.poll()
			}
		}
	}()

	return nil
}

// Stop halts polling and waits for the poll goroutine to exit.
// Returns ErrWatcherNotRunning if the watcher is not running.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return ErrWatcherNotRunning
	}
	w.running = false
	cancel := w.cancel
	w.mu.Unlock()

	cancel()
	w.wg.Wait()
	return nil
}

// poll reads the durable version and fires onChange when another process
// moved it. The local high-water mark is read before the durable version:
// a local write racing the poll can then at worst look remote and cost one
// spurious re-read. Reading in the other order could attribute a remote
// write to ourselves and drop it for good.
func (w *Watcher) poll() {
	local := w.store.LastLocalVersion()
	v := w.store.StateVersion()

	w.mu.Lock()
	defer w.mu.Unlock()

	if v <= w.lastSeen {
		return
	}
	remote := v > local
	w.lastSeen = v
	if !remote {
		return
	}

	logging.Debug("watcher: external change", "version", v)
	if w.onChange != nil {
		w.onChange(v)
	}
}
