// Package api exposes the motion-list engine over HTTP. Configuration
// editors and run dashboards talk to this instead of linking the engine
// directly.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/banshee-data/probe.motion/internal/db"
	"github.com/banshee-data/probe.motion/internal/monitoring"
	"github.com/banshee-data/probe.motion/internal/motion"
)

// Server serves motion-list generation and stored-configuration
// endpoints. The db handle may be nil, which disables the store routes.
type Server struct {
	db *db.DB
}

// NewServer creates an API server. Pass a nil db to run without
// persistence.
func NewServer(database *db.DB) *Server {
	return &Server{db: database}
}

// loggingResponseWriter captures the status code for request logs.
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(lrw, r)
		monitoring.Logf("%s %s %d %s", r.Method, r.URL.Path, lrw.statusCode, time.Since(start))
	})
}

// Routes returns the server's handler tree.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/motion/types", s.handleTypes)
	mux.HandleFunc("POST /api/motion/generate", s.handleGenerate)
	mux.HandleFunc("POST /api/motion/check", s.handleCheck)
	if s.db != nil {
		mux.HandleFunc("GET /api/motion/configs", s.handleListConfigs)
		mux.HandleFunc("GET /api/motion/configs/{name}", s.handleGetConfig)
		mux.HandleFunc("PUT /api/motion/configs/{name}", s.handleSaveConfig)
		mux.HandleFunc("GET /api/motion/runs", s.handleListRuns)
	}
	return logRequests(mux)
}

// ListenAndServe runs the API server on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	monitoring.Logf("motion API listening on %s", addr)
	return http.ListenAndServe(addr, s.Routes())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		monitoring.Logf("failed to encode response: %v", err)
	}
}

// writeEngineError maps engine error kinds onto status codes: contract
// violations are the caller's fault, anything else is ours.
func writeEngineError(w http.ResponseWriter, err error) {
	var vErr *motion.ValidationError
	var rErr *motion.RegistryError
	var dErr *motion.DimensionMismatchError
	status := http.StatusInternalServerError
	if errors.As(err, &vErr) || errors.As(err, &rErr) || errors.As(err, &dErr) {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"exclusions": motion.ExclusionTypes(),
		"layers":     motion.LayerTypes(),
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var cfg motion.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("malformed config: %v", err)})
		return
	}

	ml, err := motion.NewMotionListFromConfig(cfg)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	points := ml.Points()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":  len(points),
		"points": points,
	})
}

type checkRequest struct {
	Config motion.Config `json:"config"`
	Point  []float64     `json:"point"`
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("malformed request: %v", err)})
		return
	}

	ml, err := motion.NewMotionListFromConfig(req.Config)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	excluded, err := ml.IsExcluded(req.Point)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"excluded": excluded})
}

func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := s.db.ListConfigs()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, configs)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.db.GetConfig(r.PathValue("name"))
	if errors.Is(err, db.ErrConfigNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleSaveConfig(w http.ResponseWriter, r *http.Request) {
	var cfg motion.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("malformed config: %v", err)})
		return
	}

	// Validate by constructing before storing; a config that cannot
	// build a motion list has no business in the store.
	if _, err := motion.NewMotionListFromConfig(cfg); err != nil {
		writeEngineError(w, err)
		return
	}

	encoded, err := toml.Marshal(cfg)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if err := s.db.SaveConfig(r.PathValue("name"), string(encoded)); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"saved": r.PathValue("name")})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.db.ListRuns(r.URL.Query().Get("config"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, runs)
}
