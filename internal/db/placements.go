package db

import (
	"log"

	"fauna-warden/internal/engine"
)

// InsertPlacements bulk-inserts the assignments of a run.
func (d *DB) InsertPlacements(runID string, assignments []engine.Assignment) {
	if runID == "" || len(assignments) == 0 {
		return
	}

	tx, err := d.sql.Begin()
	if err != nil {
		log.Printf("[DB] InsertPlacements begin tx: %v", err)
		return
	}

	stmt, err := tx.Prepare(`INSERT INTO placements (
		run_id, name, habitat, threat, state, moved
	) VALUES (?,?,?,?,?,?)`)
	if err != nil {
		tx.Rollback()
		log.Printf("[DB] InsertPlacements prepare: %v", err)
		return
	}
	defer stmt.Close()

	for _, a := range assignments {
		stmt.Exec(runID, a.Name, a.Habitat, a.Threat, a.State, a.Moved)
	}

	if err := tx.Commit(); err != nil {
		log.Printf("[DB] InsertPlacements commit: %v", err)
	}
}

// GetPlacements retrieves the assignments of a run in roster order.
func (d *DB) GetPlacements(runID string) []engine.Assignment {
	rows, err := d.sql.Query(
		`SELECT name, habitat, threat, state, moved
		 FROM placements WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var assignments []engine.Assignment
	for rows.Next() {
		var a engine.Assignment
		rows.Scan(&a.Name, &a.Habitat, &a.Threat, &a.State, &a.Moved)
		assignments = append(assignments, a)
	}
	return assignments
}
