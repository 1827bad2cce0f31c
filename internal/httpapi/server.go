// Package httpapi exposes floor plans over HTTP.
//
// The API is a thin shell over the project store and the task synthesizer:
// snapshots go in and out as JSON, and derived views (task lists, installation
// graphs, summaries) are computed per request from the stored snapshot.
// Rendered graph artifacts are cached by content hash.
package httpapi

import (
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/floorlay/floorlay/pkg/cache"
	"github.com/floorlay/floorlay/pkg/store"
)

// Options configures the HTTP server.
type Options struct {
	Store  store.ProjectStore
	Cache  cache.Cache
	Logger *log.Logger
}

func (o *Options) validateAndSetDefaults() error {
	if o.Store == nil {
		o.Store = store.NewMemoryStore()
	}
	if o.Cache == nil {
		o.Cache = cache.NewNullCache()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// Server serves the project API.
type Server struct {
	store  store.ProjectStore
	cache  cache.Cache
	logger *log.Logger
}

// NewServer creates a server with the given options.
func NewServer(opts Options) (*Server, error) {
	if err := opts.validateAndSetDefaults(); err != nil {
		return nil, err
	}
	return &Server{store: opts.Store, cache: opts.Cache, logger: opts.Logger}, nil
}

// Router builds the route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/projects", func(r chi.Router) {
		r.Get("/", s.handleListProjects)
		r.Post("/", s.handleCreateProject)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetProject)
			r.Put("/", s.handlePutProject)
			r.Delete("/", s.handleDeleteProject)

			r.Get("/summary", s.handleSummary)
			r.Get("/tasks", s.handleTasks)
			r.Get("/tasks.dot", s.handleTasksDOT)
			r.Get("/tasks.svg", s.handleTasksRender("svg"))
			r.Get("/tasks.png", s.handleTasksRender("png"))
		})
	})

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
