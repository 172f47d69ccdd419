package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/parabola-world/internal/levels"
	"github.com/vovakirdan/parabola-world/internal/progression"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreLoadMissingProfile(t *testing.T) {
	store := openTestStore(t)

	p, ok, err := store.LoadProgress("nobody")
	if err != nil {
		t.Fatalf("LoadProgress() failed: %v", err)
	}
	if ok {
		t.Errorf("LoadProgress() ok = true for unknown profile, got %+v", p)
	}
}

func TestStoreSaveAndLoad(t *testing.T) {
	store := openTestStore(t)

	want := progression.Persisted{Level: 2, MaxLevel: 3, MusicMuted: true, BootComplete: true, UserName: "Ada"}
	if err := store.SaveProgress("alice", want); err != nil {
		t.Fatalf("SaveProgress() failed: %v", err)
	}

	got, ok, err := store.LoadProgress("alice")
	if err != nil || !ok {
		t.Fatalf("LoadProgress() = %v, %v", ok, err)
	}
	if got != want {
		t.Errorf("LoadProgress() = %+v, want %+v", got, want)
	}

	// Upsert replaces the row.
	want.Level = 0
	want.MusicMuted = false
	if err := store.SaveProgress("alice", want); err != nil {
		t.Fatalf("SaveProgress() failed: %v", err)
	}
	got, _, _ = store.LoadProgress("alice")
	if got != want {
		t.Errorf("after upsert LoadProgress() = %+v, want %+v", got, want)
	}

	profiles, err := store.Profiles()
	if err != nil {
		t.Fatalf("Profiles() failed: %v", err)
	}
	if len(profiles) != 1 || profiles[0] != "alice" {
		t.Errorf("Profiles() = %v, want [alice]", profiles)
	}
}

func TestStoreProfilesIsolated(t *testing.T) {
	store := openTestStore(t)

	store.SaveProgress("bob", progression.Persisted{Level: 1, MaxLevel: 1})
	store.SaveProgress("alice", progression.Persisted{Level: 3, MaxLevel: 3})

	bob, _, _ := store.LoadProgress("bob")
	if bob.Level != 1 {
		t.Errorf("bob.Level = %d, want 1", bob.Level)
	}

	profiles, _ := store.Profiles()
	if len(profiles) != 2 || profiles[0] != "alice" || profiles[1] != "bob" {
		t.Errorf("Profiles() = %v, want [alice bob]", profiles)
	}
}

func TestStoreResetProgress(t *testing.T) {
	store := openTestStore(t)

	store.SaveProgress("alice", progression.Persisted{Level: 2, MaxLevel: 2})
	store.SaveProgress("bob", progression.Persisted{Level: 1, MaxLevel: 1})
	store.RecordCompletion("alice", "story", 0, 3)

	if err := store.ResetProgress("alice"); err != nil {
		t.Fatalf("ResetProgress() failed: %v", err)
	}

	if _, ok, _ := store.LoadProgress("alice"); ok {
		t.Error("alice still has progress after reset")
	}
	if entries, _ := store.Completions("alice", 10); len(entries) != 0 {
		t.Errorf("alice has %d completions after reset, want 0", len(entries))
	}
	if _, ok, _ := store.LoadProgress("bob"); !ok {
		t.Error("bob should not be affected by resetting alice")
	}
}

func TestStoreCompletions(t *testing.T) {
	store := openTestStore(t)

	store.RecordCompletion("alice", "classic", 0, 7)
	store.RecordCompletion("alice", "classic", 0, 4)
	store.RecordCompletion("alice", "classic", 1, 9)
	store.RecordCompletion("bob", "story", 0, 1)

	entries, err := store.Completions("alice", 2)
	if err != nil {
		t.Fatalf("Completions() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Completions() returned %d entries, want 2", len(entries))
	}
	if entries[0].Level != 1 || entries[0].Attempts != 9 {
		t.Errorf("newest entry = %+v, want level 1 with 9 attempts", entries[0])
	}

	stats, err := store.LevelStats("alice")
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("LevelStats() has %d levels, want 2", len(stats))
	}
	if s := stats[0]; s.Completions != 2 || s.BestAttempts != 4 {
		t.Errorf("stats[0] = %+v, want 2 completions, best 4", s)
	}
}

func TestProfilePersister(t *testing.T) {
	store := openTestStore(t)
	profile := ForProfile(store, "carol")

	ps := progression.New(levels.Default(), progression.WithPersister(profile))
	ps.SetUserName("Carol")
	ps.CompleteSystemBoot()
	ps.AdvanceLevel()

	got, ok, err := profile.Load()
	if err != nil || !ok {
		t.Fatalf("Load() = %v, %v", ok, err)
	}
	if got.Level != 1 || got.MaxLevel != 1 || got.UserName != "Carol" || !got.BootComplete {
		t.Errorf("Load() = %+v, want level 1 for Carol with boot complete", got)
	}

	restored := progression.New(levels.Default())
	restored.Restore(got)
	if restored.Snapshot().Level != 1 {
		t.Errorf("restored level = %d, want 1", restored.Snapshot().Level)
	}

	if err := profile.RecordCompletion("story", 1, 5); err != nil {
		t.Fatalf("RecordCompletion() failed: %v", err)
	}
	entries, _ := store.Completions("carol", 10)
	if len(entries) != 1 || entries[0].Mode != "story" {
		t.Errorf("Completions() = %+v, want one story entry", entries)
	}
}

func TestForProfileDefaultName(t *testing.T) {
	store := openTestStore(t)
	if got := ForProfile(store, "").Name(); got != DefaultProfile {
		t.Errorf("Name() = %q, want %q", got, DefaultProfile)
	}
}

func TestOpenBackendUnknown(t *testing.T) {
	if _, err := OpenBackend("redis", ""); err == nil {
		t.Error("OpenBackend(redis) should fail")
	}
}
