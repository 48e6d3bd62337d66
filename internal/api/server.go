package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"fauna-warden/internal/config"
	"fauna-warden/internal/db"
	"fauna-warden/internal/engine"
	"fauna-warden/internal/roster"
	"fauna-warden/internal/territory"
)

// Server is the HTTP API server that connects the territory store, the
// planner, and the database.
type Server struct {
	cfg   *config.Config
	store *territory.Store
	db    *db.DB
	mu    sync.RWMutex // guards cfg
}

// NewServer creates a Server with the given config, territory store, and database.
func NewServer(cfg *config.Config, store *territory.Store, database *db.DB) *Server {
	return &Server{cfg: cfg, store: store, db: database}
}

// Handler returns the HTTP handler with all API routes and CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/config", s.handleGetConfig)
	mux.HandleFunc("POST /api/config", s.handleSetConfig)
	mux.HandleFunc("GET /api/territory", s.handleGetTerritory)
	mux.HandleFunc("GET /api/territories", s.handleListTerritories)
	mux.HandleFunc("POST /api/plan", s.handlePlan)
	mux.HandleFunc("GET /api/history", s.handleGetHistory)
	mux.HandleFunc("GET /api/history/{id}", s.handleGetRun)
	mux.HandleFunc("DELETE /api/history/{id}", s.handleDeleteRun)
	mux.HandleFunc("POST /api/history/clear", s.handleClearHistory)
	return corsMiddleware(mux)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(204)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	name := s.cfg.Territory
	s.mu.RUnlock()

	result := map[string]interface{}{
		"territory": name,
		"builtins":  territory.Builtin(),
	}
	if tmap, err := s.store.Get(name); err == nil {
		result["states"] = len(tmap.Order)
		result["default_state"] = tmap.Default
	}
	if runs := s.db.GetHistory(1); len(runs) > 0 {
		result["last_run"] = runs[0].CreatedAt
	}
	writeJSON(w, result)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	writeJSON(w, s.cfg)
}

func (s *Server) handleSetConfig(w http.ResponseWriter, r *http.Request) {
	var patch map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, 400, "invalid json")
		return
	}

	s.mu.Lock()
	if v, ok := patch["territory"]; ok {
		json.Unmarshal(v, &s.cfg.Territory)
	}
	if v, ok := patch["roster_path"]; ok {
		json.Unmarshal(v, &s.cfg.RosterPath)
	}
	if v, ok := patch["history_limit"]; ok {
		json.Unmarshal(v, &s.cfg.HistoryLimit)
	}
	if v, ok := patch["watch_debounce_ms"]; ok {
		json.Unmarshal(v, &s.cfg.WatchDebounceMs)
	}
	if v, ok := patch["port"]; ok {
		json.Unmarshal(v, &s.cfg.Port)
	}
	if v, ok := patch["notify_desktop"]; ok {
		json.Unmarshal(v, &s.cfg.NotifyDesktop)
	}

	// Validate bounds
	if s.cfg.HistoryLimit < 1 {
		s.cfg.HistoryLimit = 1
	} else if s.cfg.HistoryLimit > 500 {
		s.cfg.HistoryLimit = 500
	}
	if s.cfg.WatchDebounceMs < 50 {
		s.cfg.WatchDebounceMs = 50
	} else if s.cfg.WatchDebounceMs > 10000 {
		s.cfg.WatchDebounceMs = 10000
	}
	if s.cfg.Port < 1 {
		s.cfg.Port = 1
	} else if s.cfg.Port > 65535 {
		s.cfg.Port = 65535
	}

	s.db.SaveConfig(s.cfg)
	cfg := *s.cfg
	s.mu.Unlock()

	writeJSON(w, &cfg)
}

func (s *Server) handleGetTerritory(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		s.mu.RLock()
		name = s.cfg.Territory
		s.mu.RUnlock()
	}
	tmap, err := s.store.Get(name)
	if err != nil {
		writeError(w, 404, err.Error())
		return
	}

	// How many other states each state can reach along the borders.
	reach := make(map[string]int, len(tmap.Order))
	for _, state := range tmap.Order {
		reach[state] = len(tmap.ReachableFrom(state)) - 1
	}
	writeJSON(w, struct {
		*territory.Map
		Reach map[string]int `json:"reach"`
	}{tmap, reach})
}

func (s *Server) handleListTerritories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{"builtin": territory.Builtin()})
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Territory  string          `json:"territory"`
		RosterPath string          `json:"roster_path"`
		Animals    []roster.Animal `json:"animals"`
		Save       *bool           `json:"save"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, "invalid json")
		return
	}

	s.mu.RLock()
	name := s.cfg.Territory
	path := s.cfg.RosterPath
	s.mu.RUnlock()
	if req.Territory != "" {
		name = req.Territory
	}
	if req.RosterPath != "" {
		path = req.RosterPath
	}

	tmap, err := s.store.Get(name)
	if err != nil {
		writeError(w, 400, err.Error())
		return
	}

	animals := req.Animals
	source := "api"
	if animals == nil {
		loaded, err := roster.LoadFile(path)
		if err != nil {
			writeError(w, 400, err.Error())
			return
		}
		animals = loaded
		source = path
	}

	planner := engine.NewPlanner(tmap)
	start := time.Now()
	plan := planner.Plan(animals)
	durationMs := time.Since(start).Milliseconds()

	runID := ""
	if req.Save == nil || *req.Save {
		runID = s.db.InsertRun(plan.Territory, source, plan.Total, plan.Relocated, durationMs)
		s.db.InsertPlacements(runID, plan.Assignments)
	}

	writeJSON(w, map[string]interface{}{
		"run_id":      runID,
		"duration_ms": durationMs,
		"plan":        plan,
		"separations": planner.Separations(plan),
	})
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	limit := s.cfg.HistoryLimit
	s.mu.RUnlock()
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 {
		limit = l
	}
	writeJSON(w, s.db.GetHistory(limit))
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	run := s.db.GetRunByID(id)
	if run == nil {
		writeError(w, 404, "run not found")
		return
	}
	writeJSON(w, map[string]interface{}{
		"run":        run,
		"placements": s.db.GetPlacements(id),
	})
}

func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.db.DeleteRun(id); err != nil {
		writeError(w, 500, "delete failed: "+err.Error())
		return
	}
	writeJSON(w, map[string]string{"status": "deleted"})
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OlderThanDays int `json:"older_than_days"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		req.OlderThanDays = 7 // default: clear older than 7 days
	}
	if req.OlderThanDays < 1 {
		req.OlderThanDays = 7
	}
	count, err := s.db.ClearHistory(req.OlderThanDays)
	if err != nil {
		writeError(w, 500, "clear failed: "+err.Error())
		return
	}
	writeJSON(w, map[string]interface{}{"status": "cleared", "deleted": count})
}
