package db

import (
	"log"
	"time"

	"github.com/google/uuid"
)

// RunRecord represents one saved planning run.
type RunRecord struct {
	ID         string `json:"id"`
	CreatedAt  string `json:"created_at"`
	Territory  string `json:"territory"`
	Source     string `json:"source"`
	Total      int    `json:"total"`
	Relocated  int    `json:"relocated"`
	DurationMs int64  `json:"duration_ms"`
}

// InsertRun records a completed planning run and returns its ID.
func (d *DB) InsertRun(territory, source string, total, relocated int, durationMs int64) string {
	id := uuid.NewString()
	_, err := d.sql.Exec(
		"INSERT INTO runs (id, created_at, territory, source, total, relocated, duration_ms) VALUES (?, ?, ?, ?, ?, ?, ?)",
		id, time.Now().Format(time.RFC3339), territory, source, total, relocated, durationMs,
	)
	if err != nil {
		log.Printf("[DB] InsertRun: %v", err)
		return ""
	}
	return id
}

// GetHistory returns the last N runs (newest first).
func (d *DB) GetHistory(limit int) []RunRecord {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.sql.Query(
		`SELECT id, created_at, territory, source, total, relocated, duration_ms
		 FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return []RunRecord{}
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		rows.Scan(&r.ID, &r.CreatedAt, &r.Territory, &r.Source, &r.Total, &r.Relocated, &r.DurationMs)
		records = append(records, r)
	}
	if records == nil {
		return []RunRecord{}
	}
	return records
}

// GetRunByID returns a single run record, or nil when no run has that ID.
func (d *DB) GetRunByID(id string) *RunRecord {
	row := d.sql.QueryRow(
		`SELECT id, created_at, territory, source, total, relocated, duration_ms
		 FROM runs WHERE id = ?`,
		id,
	)
	var r RunRecord
	if err := row.Scan(&r.ID, &r.CreatedAt, &r.Territory, &r.Source, &r.Total, &r.Relocated, &r.DurationMs); err != nil {
		return nil
	}
	return &r
}

// DeleteRun deletes a run and its placements.
func (d *DB) DeleteRun(id string) error {
	tx, err := d.sql.Begin()
	if err != nil {
		return err
	}
	tx.Exec("DELETE FROM placements WHERE run_id = ?", id)
	tx.Exec("DELETE FROM runs WHERE id = ?", id)
	return tx.Commit()
}

// ClearHistory deletes all runs older than the given number of days and
// returns how many were removed.
func (d *DB) ClearHistory(olderThanDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -olderThanDays).Format(time.RFC3339)

	rows, err := d.sql.Query("SELECT id FROM runs WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, err
	}
	var ids []string
	for rows.Next() {
		var id string
		rows.Scan(&id)
		ids = append(ids, id)
	}
	rows.Close()

	if len(ids) == 0 {
		return 0, nil
	}

	tx, err := d.sql.Begin()
	if err != nil {
		return 0, err
	}
	for _, id := range ids {
		tx.Exec("DELETE FROM placements WHERE run_id = ?", id)
		tx.Exec("DELETE FROM runs WHERE id = ?", id)
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}
