// Package server implements the pvscene HTTP API.
//
// The server exposes scene building and artifact retrieval over REST:
// a POST creates a scene handle, and GETs against the handle return the
// snapshot and mesh exports. Saved projects are exposed as a small CRUD
// surface backed by the configured store.
package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mkarlsen/pvscene/pkg/errors"
	"github.com/mkarlsen/pvscene/pkg/export"
	"github.com/mkarlsen/pvscene/pkg/pipeline"
	"github.com/mkarlsen/pvscene/pkg/scene"
	"github.com/mkarlsen/pvscene/pkg/snapshot"
	"github.com/mkarlsen/pvscene/pkg/store"
)

// sceneTTL bounds how long an unused scene handle stays resident.
const sceneTTL = 30 * time.Minute

// sceneEntry is one built scene held for artifact requests.
type sceneEntry struct {
	scene     *scene.Scene
	summary   scene.Summary
	hash      string
	createdAt time.Time
}

// Server is the pvscene HTTP API.
type Server struct {
	router  chi.Router
	runner  *pipeline.Runner
	store   store.Store
	logger  *log.Logger
	metrics *Metrics

	mu     sync.RWMutex
	scenes map[string]*sceneEntry
}

// New creates a server wired to the given runner and project store.
// The registry receives the service metrics; pass a fresh registry per
// server so tests do not collide.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger, reg *prometheus.Registry) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:  runner,
		store:   st,
		logger:  logger,
		metrics: NewMetrics(reg),
		scenes:  make(map[string]*sceneEntry),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/scenes", s.handleCreateScene)
		r.Get("/scenes/{id}", s.handleGetScene)
		r.Get("/scenes/{id}/snapshot.png", s.handleSnapshot)
		r.Get("/scenes/{id}/export.stl", s.handleExportSTL)
		r.Get("/scenes/{id}/export.glb", s.handleExportGLB)

		r.Get("/projects", s.handleListProjects)
		r.Get("/projects/{name}", s.handleGetProject)
		r.Put("/projects/{name}", s.handlePutProject)
		r.Delete("/projects/{name}", s.handleDeleteProject)
	})

	s.router = r
	return s
}

// Metrics exposes the server's metric collectors so callers can bridge
// them into the observability hooks.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// instrument records request counts and latency per route.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		s.metrics.requestsTotal.WithLabelValues(route, http.StatusText(ww.Status())).Inc()
		s.metrics.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// =============================================================================
// Scene handlers
// =============================================================================

type createSceneResponse struct {
	ID      string        `json:"id"`
	Hash    string        `json:"hash"`
	Summary scene.Summary `json:"summary"`
}

func (s *Server) handleCreateScene(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		s.respondError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decoding request"))
		return
	}
	opts.Logger = s.logger

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.respondError(w, err)
		return
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.scenes[id] = &sceneEntry{
		scene:     result.Scene,
		summary:   result.Summary,
		hash:      result.OptionsHash,
		createdAt: time.Now(),
	}
	s.evictExpiredLocked()
	s.mu.Unlock()

	s.respondJSON(w, http.StatusCreated, createSceneResponse{
		ID:      id,
		Hash:    result.OptionsHash,
		Summary: result.Summary,
	})
}

func (s *Server) handleGetScene(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.lookupScene(chi.URLParam(r, "id"))
	if !ok {
		s.respondError(w, errors.New(errors.ErrCodeSceneNotFound, "scene not found"))
		return
	}
	s.respondJSON(w, http.StatusOK, createSceneResponse{
		ID:      chi.URLParam(r, "id"),
		Hash:    entry.hash,
		Summary: entry.summary,
	})
}

// handleSnapshot serves the raster preview. An unavailable renderer
// degrades to 204 so clients can fall back to the mesh exports.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.lookupScene(chi.URLParam(r, "id"))
	if !ok {
		s.respondError(w, errors.New(errors.ErrCodeSceneNotFound, "scene not found"))
		return
	}
	data := snapshot.PNG(entry.scene)
	if data == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(data)
}

func (s *Server) handleExportSTL(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.lookupScene(chi.URLParam(r, "id"))
	if !ok {
		s.respondError(w, errors.New(errors.ErrCodeSceneNotFound, "scene not found"))
		return
	}
	w.Header().Set("Content-Type", "model/stl")
	_, _ = w.Write(export.STL(entry.scene, export.Everything))
}

func (s *Server) handleExportGLB(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.lookupScene(chi.URLParam(r, "id"))
	if !ok {
		s.respondError(w, errors.New(errors.ErrCodeSceneNotFound, "scene not found"))
		return
	}
	w.Header().Set("Content-Type", "model/gltf-binary")
	_, _ = w.Write(export.GLB(entry.scene, export.Everything))
}

func (s *Server) lookupScene(id string) (*sceneEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.scenes[id]
	if !ok || time.Since(entry.createdAt) > sceneTTL {
		return nil, false
	}
	return entry, true
}

// evictExpiredLocked drops handles past their TTL. Caller holds mu.
func (s *Server) evictExpiredLocked() {
	for id, entry := range s.scenes {
		if time.Since(entry.createdAt) > sceneTTL {
			delete(s.scenes, id)
		}
	}
}

// =============================================================================
// Project handlers
// =============================================================================

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	s.respondJSON(w, http.StatusOK, map[string][]string{"projects": names})
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, p)
}

func (s *Server) handlePutProject(w http.ResponseWriter, r *http.Request) {
	var cfg scene.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		s.respondError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decoding project"))
		return
	}
	p, err := store.NewProject(chi.URLParam(r, "name"), cfg)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if err := s.store.Put(r.Context(), p); err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Responses
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", "err", err)
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidDimension,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidLayout,
		errors.ErrCodeInvalidProject:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeProjectNotFound, errors.ErrCodeSceneNotFound:
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "code", code, "err", err)
	}
	s.respondJSON(w, status, errorResponse{Code: string(code), Message: errors.UserMessage(err)})
}
