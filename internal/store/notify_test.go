package store

import (
	"errors"
	"testing"

	"github.com/abelbrown/campusfeed/internal/event"
)

func TestSubscribeReceivesSavedPrefs(t *testing.T) {
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	var got *event.Prefs
	if err := st.Subscribe("test", func(p event.Prefs) { got = &p }); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	st.SavePreferences(event.Prefs{Name: "Maya", Faculty: "Science", Interests: []string{"ai", "design"}})

	// Handlers run synchronously on the saving goroutine
	if got == nil {
		t.Fatal("expected handler to run on save")
	}
	if got.Name != "Maya" || got.Faculty != "Science" {
		t.Errorf("handler received %+v", got)
	}
}

func TestSubscribeDuplicateName(t *testing.T) {
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	if err := st.Subscribe("ui", func(event.Prefs) {}); err != nil {
		t.Fatalf("first Subscribe failed: %v", err)
	}
	err = st.Subscribe("ui", func(event.Prefs) {})
	if !errors.Is(err, ErrObserverExists) {
		t.Errorf("expected ErrObserverExists, got %v", err)
	}
}

func TestSubscribeNilHandler(t *testing.T) {
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	if err := st.Subscribe("ui", nil); err == nil {
		t.Error("expected error for nil handler")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	calls := 0
	if err := st.Subscribe("ui", func(event.Prefs) { calls++ }); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	st.SavePreferences(event.Prefs{Name: "Maya", Faculty: "Science", Interests: []string{"ai", "design"}})
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}

	if err := st.Unsubscribe("ui"); err != nil {
		t.Fatalf("Unsubscribe failed: %v", err)
	}
	st.SavePreferences(event.Prefs{Name: "Ira", Faculty: "Arts", Interests: []string{"career", "design"}})
	if calls != 1 {
		t.Errorf("expected no delivery after unsubscribe, got %d calls", calls)
	}
}

func TestUnsubscribeUnknownName(t *testing.T) {
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	err = st.Unsubscribe("nobody")
	if !errors.Is(err, ErrObserverNotFound) {
		t.Errorf("expected ErrObserverNotFound, got %v", err)
	}
}

func TestObserverMayReadStore(t *testing.T) {
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	// The write must be committed before handlers run, so a re-read from
	// inside a handler sees the new value without deadlocking.
	var rereadName string
	if err := st.Subscribe("reader", func(event.Prefs) {
		if p := st.GetPreferences(); p != nil {
			rereadName = p.Name
		}
	}); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	st.SavePreferences(event.Prefs{Name: "Maya", Faculty: "Science", Interests: []string{"ai", "design"}})
	if rereadName != "Maya" {
		t.Errorf("expected handler to re-read committed prefs, got %q", rereadName)
	}
}
