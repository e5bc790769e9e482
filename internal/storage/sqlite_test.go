package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreRecordAndTopRuns(t *testing.T) {
	store := openTemp(t)

	runs := []struct {
		stage       string
		gold, level int
	}{
		{"meadow", 100, 2},
		{"meadow", 50, 1},
		{"meadow", 200, 3},
		{"meadow", 200, 4},
		{"ravine", 500, 5},
	}
	for _, r := range runs {
		if _, err := store.RecordRun(r.stage, r.gold, r.level); err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns("meadow", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 4 {
		t.Fatalf("Expected 4 runs, got %d", len(top))
	}

	want := []struct{ gold, level int }{{200, 4}, {200, 3}, {100, 2}, {50, 1}}
	for i, w := range want {
		if top[i].Gold != w.gold || top[i].Level != w.level {
			t.Errorf("run %d = %d gold lv %d, want %d gold lv %d", i, top[i].Gold, top[i].Level, w.gold, w.level)
		}
		if top[i].StageID != "meadow" {
			t.Errorf("run %d stage = %q", i, top[i].StageID)
		}
	}

	ravine, err := store.TopRuns("ravine", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(ravine) != 1 {
		t.Errorf("Expected 1 ravine run, got %d", len(ravine))
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTemp(t)

	for i := 0; i < 5; i++ {
		store.RecordRun("test", (i+1)*100, 1)
	}

	top, err := store.TopRuns("test", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(top))
	}
	if top[0].Gold != 500 || top[1].Gold != 400 || top[2].Gold != 300 {
		t.Errorf("Runs not in expected order: %v", top)
	}

	all, err := store.AllRuns("test")
	if err != nil {
		t.Fatalf("AllRuns() failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("Expected 5 runs, got %d", len(all))
	}
}

func TestStoreBestGold(t *testing.T) {
	store := openTemp(t)

	best, err := store.BestGold("meadow")
	if err != nil {
		t.Fatalf("BestGold() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected 0 for an unplayed stage, got %d", best)
	}

	store.RecordRun("meadow", 100, 1)
	store.RecordRun("meadow", 300, 2)
	store.RecordRun("meadow", 200, 2)

	best, err = store.BestGold("meadow")
	if err != nil {
		t.Fatalf("BestGold() failed: %v", err)
	}
	if best != 300 {
		t.Errorf("Expected best gold of 300, got %d", best)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTemp(t)

	store.RecordRun("meadow", 100, 1)
	store.RecordRun("meadow", 200, 1)
	store.RecordRun("ravine", 300, 1)

	if err := store.ClearRuns("meadow"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	if runs, _ := store.TopRuns("meadow", 10); len(runs) != 0 {
		t.Errorf("Expected 0 meadow runs after clear, got %d", len(runs))
	}
	if runs, _ := store.TopRuns("ravine", 10); len(runs) != 1 {
		t.Error("Ravine runs should not be affected by clearing meadow")
	}
}

func TestStoreStats(t *testing.T) {
	store := openTemp(t)

	empty, err := store.Stats("meadow")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.Runs != 0 || empty.BestGold != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("unexpected stats for unplayed stage: %+v", empty)
	}

	store.RecordRun("meadow", 100, 2)
	store.RecordRun("meadow", 300, 4)
	store.RecordRun("ravine", 50, 1)

	st, err := store.Stats("meadow")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.Runs != 2 || st.BestGold != 300 || st.BestLevel != 4 || st.TotalGold != 400 || st.AvgGold != 200 {
		t.Errorf("stats = %+v", st)
	}

	all, err := store.AllStats()
	if err != nil {
		t.Fatalf("AllStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 stages, got %d", len(all))
	}
	if all["ravine"].Runs != 1 || all["ravine"].BestGold != 50 {
		t.Errorf("ravine stats = %+v", all["ravine"])
	}
}

func TestStoreSaveSlot(t *testing.T) {
	store := openTemp(t)

	data, err := store.LoadSlot("meadow")
	if err != nil {
		t.Fatalf("LoadSlot() failed: %v", err)
	}
	if data != nil {
		t.Errorf("Expected no slot, got %q", data)
	}

	if err := store.SaveSlot("meadow", []byte("gold: 10\n")); err != nil {
		t.Fatalf("SaveSlot() failed: %v", err)
	}
	if err := store.SaveSlot("meadow", []byte("gold: 20\n")); err != nil {
		t.Fatalf("SaveSlot() overwrite failed: %v", err)
	}

	data, err = store.LoadSlot("meadow")
	if err != nil {
		t.Fatalf("LoadSlot() failed: %v", err)
	}
	if string(data) != "gold: 20\n" {
		t.Errorf("slot = %q, want the latest save", data)
	}

	if other, _ := store.LoadSlot("ravine"); other != nil {
		t.Errorf("slots leaked between stages: %q", other)
	}

	if err := store.ClearSlot("meadow"); err != nil {
		t.Fatalf("ClearSlot() failed: %v", err)
	}
	if data, _ := store.LoadSlot("meadow"); data != nil {
		t.Errorf("slot survived clear: %q", data)
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
