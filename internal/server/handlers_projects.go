package server

import (
	"net/http"

	"github.com/jonathan/rolodex/internal/db"
	"github.com/jonathan/rolodex/internal/types"
)

// ---------------------------------------------------------------------
// Project Handlers
// ---------------------------------------------------------------------

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	q := r.URL.Query()
	projects, err := s.store.ListProjects(r.Context(), db.ProjectFilters{
		Status: q.Get("status"),
		Owner:  q.Get("owner"),
		Limit:  limit,
	})
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"projects": projects, "count": len(projects)})
}

func decodeProjectInput(r *http.Request) (*types.ProjectInput, error) {
	var in types.ProjectInput
	if err := decodeJSON(r, &in); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, validationError(err)
	}
	return &in, nil
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	in, err := decodeProjectInput(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	p, err := s.store.CreateProject(r.Context(), in)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, p)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	p, err := s.store.GetProject(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if p == nil {
		s.handleError(w, r, &ErrNotFound{Entity: "project"})
		return
	}
	s.jsonResponse(w, http.StatusOK, p)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	in, err := decodeProjectInput(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	p, err := s.store.UpdateProject(r.Context(), id, in)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := s.store.DeleteProject(r.Context(), id); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ---------------------------------------------------------------------
// Task Handlers
// ---------------------------------------------------------------------

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	tasks, err := s.store.ListTasks(r.Context(), projectID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"tasks": tasks, "count": len(tasks)})
}

func decodeTaskInput(r *http.Request) (*types.TaskInput, error) {
	var in types.TaskInput
	if err := decodeJSON(r, &in); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, validationError(err)
	}
	return &in, nil
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	in, err := decodeTaskInput(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	t, err := s.store.CreateTask(r.Context(), projectID, in)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, t)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	in, err := decodeTaskInput(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	t, err := s.store.UpdateTask(r.Context(), id, in)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, t)
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	t, err := s.store.CompleteTask(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := s.store.DeleteTask(r.Context(), id); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}
