package store

import (
	"errors"

	"github.com/abelbrown/campusfeed/internal/event"
	"github.com/abelbrown/campusfeed/internal/logging"
)

var (
	// ErrObserverExists is returned when subscribing with a name already in use.
	ErrObserverExists = errors.New("observer already subscribed")
	// ErrObserverNotFound is returned when unsubscribing an unknown name.
	ErrObserverNotFound = errors.New("observer not subscribed")
)

// Subscribe registers handler to be called whenever the profile is saved,
// with the newly stored value. Names must be unique; Subscribe a second
// time under the same name returns ErrObserverExists.
//
// Handlers run synchronously on the saving goroutine, after the write is
// durable and outside the store's lock, so they may read the store.
func (s *Store) Subscribe(name string, handler func(event.Prefs)) error {
	if handler == nil {
		return errors.New("nil handler")
	}

	s.obsMu.Lock()
	defer s.obsMu.Unlock()

	if _, exists := s.observers[name]; exists {
		return ErrObserverExists
	}
	s.observers[name] = handler
	return nil
}

// Unsubscribe removes a previously registered handler.
func (s *Store) Unsubscribe(name string) error {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()

	if _, exists := s.observers[name]; !exists {
		return ErrObserverNotFound
	}
	delete(s.observers, name)
	return nil
}

// notifyPrefs delivers p to every observer. The handler snapshot is taken
// under the read lock and the calls happen outside it, so a handler may
// subscribe, unsubscribe, or hit the store without deadlocking.
func (s *Store) notifyPrefs(p event.Prefs) {
	s.obsMu.RLock()
	handlers := make([]func(event.Prefs), 0, len(s.observers))
	for _, h := range s.observers {
		handlers = append(handlers, h)
	}
	s.obsMu.RUnlock()

	logging.Debug("store: notifying profile observers", "count", len(handlers))
	for _, h := range handlers {
		h(p)
	}
}
