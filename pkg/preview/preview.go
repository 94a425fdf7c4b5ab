// Package preview serves the most recently generated project files over
// HTTP so an external dev server or browser tab can pull them.
package preview

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Manifest describes the current published file set.
type Manifest struct {
	Generation int       `json:"generation"`
	Files      []string  `json:"files"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Server holds the published files and the HTTP listener.
type Server struct {
	mu         sync.RWMutex
	files      map[string]string
	generation int
	updatedAt  time.Time

	log  *slog.Logger
	http *http.Server
}

// New returns an unstarted server with an empty file set.
func New(log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{files: map[string]string{}, log: log}
}

// Publish replaces the published file set and bumps the generation.
func (s *Server) Publish(files map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make(map[string]string, len(files))
	for k, v := range files {
		cp[k] = v
	}
	s.files = cp
	s.generation++
	s.updatedAt = time.Now().UTC()
	s.log.Info("preview published", "generation", s.generation, "files", len(cp))
}

// Manifest returns the current generation and sorted file list.
func (s *Server) Manifest() Manifest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return Manifest{Generation: s.generation, Files: names, UpdatedAt: s.updatedAt}
}

// Handler builds the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/manifest", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(s.Manifest())
	})

	r.Get("/files/*", func(w http.ResponseWriter, req *http.Request) {
		name := chi.URLParam(req, "*")
		s.mu.RLock()
		content, ok := s.files[name]
		s.mu.RUnlock()
		if !ok {
			http.NotFound(w, req)
			return
		}
		w.Header().Set("Content-Type", contentType(name))
		w.Write([]byte(content))
	})

	return r
}

// Start begins listening on addr in a background goroutine.
func (s *Server) Start(addr string) error {
	if s.http != nil {
		return errors.New("preview: already started")
	}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("preview server stopped", "err", err)
		}
	}()
	s.log.Info("preview server listening", "addr", addr)
	return nil
}

// Shutdown stops the listener if it was started.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func contentType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".jsx", ".js", ".mjs":
		return "text/javascript; charset=utf-8"
	case ".css":
		return "text/css; charset=utf-8"
	case ".html":
		return "text/html; charset=utf-8"
	case ".json":
		return "application/json"
	case ".svg":
		return "image/svg+xml"
	default:
		return "text/plain; charset=utf-8"
	}
}
