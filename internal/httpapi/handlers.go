package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/floorlay/floorlay/pkg/cache"
	"github.com/floorlay/floorlay/pkg/errors"
	"github.com/floorlay/floorlay/pkg/plan"
	"github.com/floorlay/floorlay/pkg/tasks"
)

// =============================================================================
// Projects
// =============================================================================

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"projects": ids})
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request"))
		return
	}
	if err := errors.ValidateName(req.Name); err != nil {
		s.writeError(w, err)
		return
	}

	p := plan.New(req.Name)
	if err := s.store.Put(r.Context(), p); err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("project created", "id", p.ID, "name", p.Name)
	writeJSON(w, http.StatusCreated, p)
}

// loadProject fetches the project named in the URL, translating absence
// into PROJECT_NOT_FOUND.
func (s *Server) loadProject(r *http.Request) (*plan.Project, error) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateIdentity(id); err != nil {
		return nil, err
	}
	p, err := s.store.Get(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.New(errors.ErrCodeProjectNotFound, "project %s not found", id)
	}
	return p, nil
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.loadProject(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePutProject(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	p, err := plan.UnmarshalProject(data)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if p.ID != chi.URLParam(r, "id") {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "body project id %q does not match URL", p.ID))
		return
	}

	if err := s.store.Put(r.Context(), p); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateIdentity(id); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Derived Views
// =============================================================================

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	p, err := s.loadProject(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"placed":   p.PlacedSummary(),
		"unplaced": p.UnplacedSummary(),
	})
}

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	p, err := s.loadProject(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks.Synthesize(p)})
}

func (s *Server) handleTasksDOT(w http.ResponseWriter, r *http.Request) {
	p, err := s.loadProject(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	w.Write([]byte(tasks.ToDOT(tasks.Synthesize(p))))
}

var renderContentTypes = map[string]string{
	"svg": "image/svg+xml",
	"png": "image/png",
}

func (s *Server) handleTasksRender(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := s.loadProject(r)
		if err != nil {
			s.writeError(w, err)
			return
		}
		ctx := r.Context()

		dot := tasks.ToDOT(tasks.Synthesize(p))
		key := cache.ArtifactKey([]byte(dot), format)

		data, hit, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("artifact cache get failed", "err", err)
		}
		if !hit {
			switch format {
			case "svg":
				data, err = tasks.RenderSVG(ctx, dot)
			case "png":
				data, err = tasks.RenderPNG(ctx, dot)
			}
			if err != nil {
				s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format))
				return
			}
			if err := s.cache.Set(ctx, key, data, 0); err != nil {
				s.logger.Warn("artifact cache set failed", "err", err)
			}
		}

		w.Header().Set("Content-Type", renderContentTypes[format])
		w.Write(data)
	}
}
