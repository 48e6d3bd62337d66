package db

import (
	"database/sql"
	"testing"

	"fauna-warden/internal/engine"

	_ "modernc.org/sqlite"
)

// openTestDB opens an in-memory SQLite DB and runs migrations (for testing only).
func openTestDB(t *testing.T) *DB {
	t.Helper()
	sqlDB, err := sql.Open("sqlite", ":memory:?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	d := &DB{sql: sqlDB}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		t.Fatalf("migrate: %v", err)
	}
	return d
}

func TestDB_MigrateAndRunRoundTrip(t *testing.T) {
	d := openTestDB(t)
	defer d.Close()

	id := d.InsertRun("australia", "animals.csv", 5, 3, 12)
	if id == "" {
		t.Fatal("InsertRun returned an empty ID")
	}

	records := d.GetHistory(5)
	if len(records) != 1 {
		t.Fatalf("GetHistory(5) len = %d, want 1", len(records))
	}
	r := records[0]
	if r.ID != id {
		t.Errorf("ID = %s, want %s", r.ID, id)
	}
	if r.Territory != "australia" || r.Source != "animals.csv" {
		t.Errorf("Territory/Source = %q/%q, want australia/animals.csv", r.Territory, r.Source)
	}
	if r.Total != 5 || r.Relocated != 3 {
		t.Errorf("Total/Relocated = %d/%d, want 5/3", r.Total, r.Relocated)
	}
	if r.DurationMs != 12 {
		t.Errorf("DurationMs = %d, want 12", r.DurationMs)
	}

	if got := d.GetRunByID(id); got == nil || got.ID != id {
		t.Errorf("GetRunByID(%s) = %+v, want the inserted run", id, got)
	}
	if got := d.GetRunByID("no-such-run"); got != nil {
		t.Errorf("GetRunByID(no-such-run) = %+v, want nil", got)
	}
}

func TestDB_GetHistoryNewestFirst(t *testing.T) {
	d := openTestDB(t)
	defer d.Close()

	d.InsertRun("australia", "a.csv", 1, 1, 0)
	d.InsertRun("australia", "b.csv", 2, 2, 0)
	third := d.InsertRun("australia", "c.csv", 3, 3, 0)

	records := d.GetHistory(2)
	if len(records) != 2 {
		t.Fatalf("GetHistory(2) len = %d, want 2", len(records))
	}
	if records[0].ID != third {
		t.Errorf("records[0].ID = %s, want the most recent run %s", records[0].ID, third)
	}
}

func TestDB_GetHistoryEmpty(t *testing.T) {
	d := openTestDB(t)
	defer d.Close()

	records := d.GetHistory(0)
	if records == nil {
		t.Fatal("GetHistory on an empty db returned nil, want empty slice")
	}
	if len(records) != 0 {
		t.Fatalf("len = %d, want 0", len(records))
	}
}

func TestDB_PlacementsRoundTrip(t *testing.T) {
	d := openTestDB(t)
	defer d.Close()

	id := d.InsertRun("australia", "animals.csv", 2, 1, 0)
	d.InsertPlacements(id, []engine.Assignment{
		{Name: "koala", Habitat: "forest", Threat: "eagle", State: "NSW", Moved: true},
		{Name: "eagle", Habitat: "ranges", Threat: "", State: "ACT", Moved: false},
	})

	got := d.GetPlacements(id)
	if len(got) != 2 {
		t.Fatalf("GetPlacements len = %d, want 2", len(got))
	}
	if got[0].Name != "koala" || got[0].State != "NSW" || !got[0].Moved {
		t.Errorf("got[0] = %+v, want koala in NSW, moved", got[0])
	}
	if got[1].Name != "eagle" || got[1].State != "ACT" || got[1].Moved {
		t.Errorf("got[1] = %+v, want eagle still in ACT", got[1])
	}
}

func TestDB_InsertPlacementsGuards(t *testing.T) {
	d := openTestDB(t)
	defer d.Close()

	id := d.InsertRun("australia", "animals.csv", 0, 0, 0)
	d.InsertPlacements("", []engine.Assignment{{Name: "koala", State: "NSW"}})
	d.InsertPlacements(id, nil)

	if got := d.GetPlacements(id); len(got) != 0 {
		t.Fatalf("GetPlacements = %v, want none after guarded inserts", got)
	}
}

func TestDB_DeleteRun(t *testing.T) {
	d := openTestDB(t)
	defer d.Close()

	id := d.InsertRun("australia", "animals.csv", 1, 1, 0)
	d.InsertPlacements(id, []engine.Assignment{{Name: "koala", State: "NSW", Moved: true}})

	if err := d.DeleteRun(id); err != nil {
		t.Fatalf("DeleteRun() error = %v", err)
	}
	if got := d.GetRunByID(id); got != nil {
		t.Errorf("run still present after delete: %+v", got)
	}
	if got := d.GetPlacements(id); len(got) != 0 {
		t.Errorf("placements still present after delete: %v", got)
	}
}

func TestDB_ClearHistory(t *testing.T) {
	d := openTestDB(t)
	defer d.Close()

	old := d.InsertRun("australia", "old.csv", 1, 0, 0)
	recent := d.InsertRun("australia", "recent.csv", 1, 0, 0)

	// Backdate the first run past the cutoff.
	if _, err := d.sql.Exec("UPDATE runs SET created_at = '2001-01-01T00:00:00Z' WHERE id = ?", old); err != nil {
		t.Fatal(err)
	}

	removed, err := d.ClearHistory(30)
	if err != nil {
		t.Fatalf("ClearHistory() error = %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if d.GetRunByID(old) != nil {
		t.Error("backdated run survived ClearHistory")
	}
	if d.GetRunByID(recent) == nil {
		t.Error("recent run was removed by ClearHistory")
	}
}

func TestDB_ConfigRoundTrip(t *testing.T) {
	d := openTestDB(t)
	defer d.Close()

	cfg := d.LoadConfig()
	if cfg.Territory != "australia" || cfg.Port != 8090 {
		t.Fatalf("empty db should load defaults, got %+v", cfg)
	}

	cfg.Territory = "outback"
	cfg.RosterPath = "herd.csv"
	cfg.HistoryLimit = 10
	cfg.WatchDebounceMs = 250
	cfg.Port = 9001
	cfg.NotifyDesktop = false
	if err := d.SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}

	loaded := d.LoadConfig()
	if loaded.Territory != "outback" || loaded.RosterPath != "herd.csv" {
		t.Errorf("Territory/RosterPath = %q/%q, want outback/herd.csv", loaded.Territory, loaded.RosterPath)
	}
	if loaded.HistoryLimit != 10 || loaded.WatchDebounceMs != 250 || loaded.Port != 9001 {
		t.Errorf("numbers = %d/%d/%d, want 10/250/9001", loaded.HistoryLimit, loaded.WatchDebounceMs, loaded.Port)
	}
	if loaded.NotifyDesktop {
		t.Error("NotifyDesktop = true after saving false")
	}
}
