package artifact

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStore_FreshnessWindow(t *testing.T) {
	t.Parallel()

	fetchedAt := time.Date(2026, time.August, 30, 10, 0, 0, 0, time.UTC)
	store := NewStore(t.TempDir()).WithClock(func() time.Time { return fetchedAt })

	if err := store.Save(EntityFixtures, "2026-08-30", []string{"payload"}); err != nil {
		t.Fatalf("save artifact: %v", err)
	}

	t.Run("fresh same day", func(t *testing.T) {
		if !store.IsFresh(EntityFixtures, "2026-08-30") {
			t.Fatalf("expected artifact to be fresh on the day it was fetched")
		}
	})

	t.Run("stale next day", func(t *testing.T) {
		store.WithClock(func() time.Time { return fetchedAt.Add(24 * time.Hour) })
		if store.IsFresh(EntityFixtures, "2026-08-30") {
			t.Fatalf("expected artifact to be stale the next day")
		}
		store.WithClock(func() time.Time { return fetchedAt })
	})

	t.Run("missing artifact", func(t *testing.T) {
		if store.IsFresh(EntityFixtures, "2026-08-31") {
			t.Fatalf("expected missing artifact to be stale")
		}
	})
}

func TestStore_CorruptAndEmptyFilesAreStale(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewStore(dir)

	entityDir := filepath.Join(dir, EntityPredictions)
	if err := os.MkdirAll(entityDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(entityDir, "1.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(entityDir, "2.json"), nil, 0o644); err != nil {
		t.Fatalf("write empty file: %v", err)
	}

	if store.IsFresh(EntityPredictions, "1") {
		t.Fatalf("expected corrupt artifact to be stale")
	}
	if store.IsFresh(EntityPredictions, "2") {
		t.Fatalf("expected empty artifact to be stale")
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	store := NewStore(t.TempDir())
	want := payload{Name: "standings", Count: 20}
	if err := store.Save(EntityStandings, "39", want); err != nil {
		t.Fatalf("save artifact: %v", err)
	}

	var got payload
	if err := store.Load(EntityStandings, "39", &got); err != nil {
		t.Fatalf("load artifact: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got=%+v want=%+v", got, want)
	}
}

func TestStore_EmptyPayloadPersistsButIsFresh(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	if err := store.Save(EntityStandings, "99", []string{}); err != nil {
		t.Fatalf("save empty payload: %v", err)
	}

	// An empty list is still a valid cached negative result.
	if !store.IsFresh(EntityStandings, "99") {
		t.Fatalf("expected empty payload artifact to be fresh")
	}
	var rows []string
	if err := store.Load(EntityStandings, "99", &rows); err != nil {
		t.Fatalf("load empty payload: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("unexpected rows: %v", rows)
	}
}
