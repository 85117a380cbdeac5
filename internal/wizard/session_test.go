package wizard

import (
	"testing"
	"time"
)

func TestStoreStartAndLookup(t *testing.T) {
	store := NewStore(time.Hour)

	session := store.Start()
	if session.CurrentStep != StepCategory {
		t.Fatalf("new session should start at category, got %s", session.CurrentStep)
	}

	found, err := store.With(session.ID, func(s *Session) error {
		s.Form.Category = "display"
		return nil
	})
	if err != nil || !found {
		t.Fatalf("lookup failed: found=%v err=%v", found, err)
	}

	found, _ = store.With("missing", func(s *Session) error { return nil })
	if found {
		t.Fatal("unknown id reported as found")
	}
}

func TestStoreDeleteDiscardsSession(t *testing.T) {
	store := NewStore(time.Hour)
	session := store.Start()

	store.Delete(session.ID)

	if found, _ := store.With(session.ID, func(s *Session) error { return nil }); found {
		t.Fatal("deleted session still accessible")
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d sessions", store.Len())
	}
}

func TestStoreSweepRemovesIdleSessions(t *testing.T) {
	store := NewStore(30 * time.Minute)
	current := time.Unix(1000, 0)
	store.now = func() time.Time { return current }

	idle := store.Start()
	current = current.Add(10 * time.Minute)
	fresh := store.Start()

	current = current.Add(25 * time.Minute)
	if removed := store.Sweep(); removed != 1 {
		t.Fatalf("expected 1 swept session, got %d", removed)
	}

	if found, _ := store.With(idle.ID, func(s *Session) error { return nil }); found {
		t.Fatal("idle session survived the sweep")
	}
	if found, _ := store.With(fresh.ID, func(s *Session) error { return nil }); !found {
		t.Fatal("fresh session was swept")
	}
}

func TestStoreWithExpiresLazily(t *testing.T) {
	store := NewStore(10 * time.Minute)
	current := time.Unix(1000, 0)
	store.now = func() time.Time { return current }

	session := store.Start()
	current = current.Add(11 * time.Minute)

	if found, _ := store.With(session.ID, func(s *Session) error { return nil }); found {
		t.Fatal("expired session still accessible")
	}
}
