package config

// Config holds application settings (in-memory representation).
// Persistence is handled by the internal/db package.
type Config struct {
	Territory       string `json:"territory"`
	RosterPath      string `json:"roster_path"`
	HistoryLimit    int    `json:"history_limit"`
	WatchDebounceMs int    `json:"watch_debounce_ms"`
	Port            int    `json:"port"`
	NotifyDesktop   bool   `json:"notify_desktop"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Territory:       "australia",
		RosterPath:      "animals.csv",
		HistoryLimit:    50,
		WatchDebounceMs: 400,
		Port:            8090,
		NotifyDesktop:   true,
	}
}
