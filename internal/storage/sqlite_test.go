package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/helix/internal/host"
	"github.com/vovakirdan/helix/internal/state"
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

func newBlock(t *testing.T) *state.Block {
	t.Helper()
	b, err := state.New(4096)
	if err != nil {
		t.Fatalf("state.New() failed: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSnapshotSaveAndRestore(t *testing.T) {
	store := openTestStore(t)
	b := newBlock(t)

	if err := b.Write(2, []byte("first")); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveSnapshot("helix", b); err != nil {
		t.Fatalf("SaveSnapshot() failed: %v", err)
	}
	if err := b.Write(2, []byte("second")); err != nil {
		t.Fatal(err)
	}
	id, err := store.SaveSnapshot("helix", b)
	if err != nil {
		t.Fatalf("SaveSnapshot() failed: %v", err)
	}

	snap, err := store.LatestSnapshot("helix")
	if err != nil {
		t.Fatalf("LatestSnapshot() failed: %v", err)
	}
	if snap == nil || snap.ID != id {
		t.Fatalf("LatestSnapshot() = %+v, want id %d", snap, id)
	}
	if string(snap.Payload) != "second" || snap.Schema != 2 {
		t.Errorf("snapshot = schema %d payload %q", snap.Schema, snap.Payload)
	}

	fresh := newBlock(t)
	if err := snap.Restore(fresh); err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	want, _ := b.Record()
	got, err := fresh.Record()
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("restored record differs from saved one")
	}
}

func TestLatestSnapshotFiltersSchema(t *testing.T) {
	store := openTestStore(t)
	b := newBlock(t)

	b.Write(1, []byte("v1"))
	store.SaveSnapshot("helix", b)
	b.Write(2, []byte("v2"))
	store.SaveSnapshot("helix", b)
	b.Write(9, []byte("future"))
	store.SaveSnapshot("helix", b)

	tests := []struct {
		schemas []uint16
		want    string
	}{
		{nil, "future"},
		{[]uint16{1, 2}, "v2"},
		{[]uint16{1}, "v1"},
	}
	for _, tt := range tests {
		snap, err := store.LatestSnapshot("helix", tt.schemas...)
		if err != nil {
			t.Fatalf("LatestSnapshot(%v) failed: %v", tt.schemas, err)
		}
		if snap == nil || string(snap.Payload) != tt.want {
			t.Errorf("LatestSnapshot(%v) = %+v, want payload %q", tt.schemas, snap, tt.want)
		}
	}

	snap, err := store.LatestSnapshot("helix", 3)
	if err != nil || snap != nil {
		t.Errorf("LatestSnapshot(3) = %+v, %v; want nil, nil", snap, err)
	}
	snap, err = store.LatestSnapshot("other")
	if err != nil || snap != nil {
		t.Errorf("LatestSnapshot(other) = %+v, %v; want nil, nil", snap, err)
	}
}

func TestSnapshotEmptyBlock(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveSnapshot("helix", newBlock(t)); err == nil {
		t.Error("SaveSnapshot() on empty block should fail")
	}
}

func TestSnapshotForeign(t *testing.T) {
	store := openTestStore(t)
	b := newBlock(t)
	copy(b.Payload(), "raw c struct")
	b.MarkForeign(0)

	if _, err := store.SaveSnapshot("libhelix.so", b); err != nil {
		t.Fatalf("SaveSnapshot() failed: %v", err)
	}
	snap, err := store.LatestSnapshot("libhelix.so")
	if err != nil || snap == nil {
		t.Fatalf("LatestSnapshot() = %v, %v", snap, err)
	}
	if snap.Flags&state.FlagForeign == 0 {
		t.Errorf("Flags = %d, want foreign", snap.Flags)
	}

	fresh := newBlock(t)
	if err := snap.Restore(fresh); err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	h, err := fresh.Header()
	if err != nil {
		t.Fatal(err)
	}
	if h.Flags&state.FlagForeign == 0 {
		t.Error("restored header lost foreign flag")
	}
	if !bytes.HasPrefix(fresh.Payload(), []byte("raw c struct")) {
		t.Error("restored payload mismatch")
	}
}

func TestSnapshotsListAndDelete(t *testing.T) {
	store := openTestStore(t)
	b := newBlock(t)
	for _, p := range []string{"a", "b", "c"} {
		b.Write(2, []byte(p))
		if _, err := store.SaveSnapshot("helix", b); err != nil {
			t.Fatal(err)
		}
	}

	snaps, err := store.Snapshots("helix", 2)
	if err != nil {
		t.Fatalf("Snapshots() failed: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("len(Snapshots) = %d, want 2", len(snaps))
	}
	if string(snaps[0].Payload) != "c" || string(snaps[1].Payload) != "b" {
		t.Errorf("order = %q, %q; want newest first", snaps[0].Payload, snaps[1].Payload)
	}
	if snaps[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not parsed")
	}

	all, _ := store.Snapshots("helix", 0)
	if len(all) != 3 {
		t.Errorf("len(Snapshots(0)) = %d, want 3", len(all))
	}

	if err := store.DeleteSnapshots("helix"); err != nil {
		t.Fatalf("DeleteSnapshots() failed: %v", err)
	}
	all, _ = store.Snapshots("helix", 0)
	if len(all) != 0 {
		t.Errorf("Snapshots after delete = %d, want 0", len(all))
	}
}

func TestJournal(t *testing.T) {
	store := openTestStore(t)

	events := []host.Event{
		{Module: "helix", Generation: 1, Kind: host.EventLoad, Detail: "resume=false"},
		{Module: "helix", Generation: 2, Kind: host.EventReload},
		{Module: "helix", Generation: 3, Kind: host.EventFailure, Detail: "config: invalid"},
		{Module: "other", Generation: 1, Kind: host.EventLoad},
	}
	for _, ev := range events {
		if err := store.Record(ev); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}

	entries, err := store.Events("helix", 10)
	if err != nil {
		t.Fatalf("Events() failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len(Events(helix)) = %d, want 3", len(entries))
	}
	if entries[0].Kind != host.EventFailure || entries[0].Detail != "config: invalid" {
		t.Errorf("newest = %+v", entries[0])
	}

	all, _ := store.Events("", 10)
	if len(all) != 4 {
		t.Errorf("len(Events(\"\")) = %d, want 4", len(all))
	}
	limited, _ := store.Events("", 2)
	if len(limited) != 2 {
		t.Errorf("len(Events limit 2) = %d, want 2", len(limited))
	}

	stats, err := store.JournalStats()
	if err != nil {
		t.Fatalf("JournalStats() failed: %v", err)
	}
	h := stats["helix"]
	if h == nil {
		t.Fatal("no stats for helix")
	}
	if h.Loads != 1 || h.Reloads != 1 || h.Failures != 1 || h.MaxGeneration != 3 {
		t.Errorf("helix stats = %+v", h)
	}
	if stats["other"] == nil || stats["other"].Loads != 1 {
		t.Errorf("other stats = %+v", stats["other"])
	}
}
