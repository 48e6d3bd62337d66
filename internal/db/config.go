package db

import (
	"strconv"

	"fauna-warden/internal/config"
)

// LoadConfig reads config from SQLite. If empty, returns defaults.
func (d *DB) LoadConfig() *config.Config {
	cfg := config.Default()

	rows, err := d.sql.Query("SELECT key, value FROM config")
	if err != nil {
		return cfg
	}
	defer rows.Close()

	m := make(map[string]string)
	for rows.Next() {
		var k, v string
		rows.Scan(&k, &v)
		m[k] = v
	}

	if len(m) == 0 {
		return cfg
	}

	if v, ok := m["territory"]; ok {
		cfg.Territory = v
	}
	if v, ok := m["roster_path"]; ok {
		cfg.RosterPath = v
	}
	if v, ok := m["history_limit"]; ok {
		cfg.HistoryLimit, _ = strconv.Atoi(v)
	}
	if v, ok := m["watch_debounce_ms"]; ok {
		cfg.WatchDebounceMs, _ = strconv.Atoi(v)
	}
	if v, ok := m["port"]; ok {
		cfg.Port, _ = strconv.Atoi(v)
	}
	if v, ok := m["notify_desktop"]; ok {
		cfg.NotifyDesktop, _ = strconv.ParseBool(v)
	}

	return cfg
}

// SaveConfig writes config to SQLite (upsert all fields).
func (d *DB) SaveConfig(cfg *config.Config) error {
	pairs := map[string]string{
		"territory":         cfg.Territory,
		"roster_path":       cfg.RosterPath,
		"history_limit":     strconv.Itoa(cfg.HistoryLimit),
		"watch_debounce_ms": strconv.Itoa(cfg.WatchDebounceMs),
		"port":              strconv.Itoa(cfg.Port),
		"notify_desktop":    strconv.FormatBool(cfg.NotifyDesktop),
	}

	tx, err := d.sql.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare("INSERT OR REPLACE INTO config (key, value) VALUES (?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for k, v := range pairs {
		if _, err := stmt.Exec(k, v); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
