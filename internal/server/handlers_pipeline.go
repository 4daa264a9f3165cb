package server

import (
	"net/http"
	"time"

	"github.com/jonathan/rolodex/internal/db"
	"github.com/jonathan/rolodex/internal/pipeline"
	"github.com/jonathan/rolodex/internal/types"
)

// ActionCategory is one group of the next-action picker.
type ActionCategory struct {
	Name    string   `json:"name"`
	Actions []string `json:"actions"`
}

// ActionCatalog describes the next actions offered for a pipeline kind.
type ActionCatalog struct {
	Kind       pipeline.Kind               `json:"kind"`
	Stages     []pipeline.Stage            `json:"stages"`
	Default    pipeline.Stage              `json:"default_stage"`
	Categories []ActionCategory            `json:"categories"`
	Actions    []pipeline.ActionDefinition `json:"actions"`
}

func actionCatalog(kind pipeline.Kind) ActionCatalog {
	byCategory := pipeline.ActionsByCategory(kind)
	cats := make([]ActionCategory, 0, len(byCategory))
	for _, name := range pipeline.Categories(kind) {
		cats = append(cats, ActionCategory{Name: name, Actions: byCategory[name]})
	}
	return ActionCatalog{
		Kind:       kind,
		Stages:     pipeline.Stages(kind),
		Default:    pipeline.DefaultStage(kind),
		Categories: cats,
		Actions:    pipeline.Actions(kind),
	}
}

func pipelineFilters(r *http.Request, stageParam string) (db.PipelineFilters, error) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		return db.PipelineFilters{}, err
	}
	f := db.PipelineFilters{Stage: r.URL.Query().Get(stageParam), Limit: limit}
	if v := r.URL.Query().Get("due_before"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return db.PipelineFilters{}, &ErrValidation{Field: "due_before", Message: "must be an RFC 3339 timestamp"}
		}
		f.DueBefore = &t
	}
	return f, nil
}

func decodeNextAction(r *http.Request) (*types.NextActionRequest, error) {
	var req types.NextActionRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}
	return &req, nil
}

// ---------------------------------------------------------------------
// Relationship Pipeline Handlers
// ---------------------------------------------------------------------

func (s *Server) handlePipelineActions(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, actionCatalog(pipeline.KindRelationship))
}

func (s *Server) handleListPipeline(w http.ResponseWriter, r *http.Request) {
	filters, err := pipelineFilters(r, "stage")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	items, err := s.store.ListPipelineItems(r.Context(), filters)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

func decodePipelineInput(r *http.Request) (db.EntryFields, error) {
	var in types.PipelineEntryInput
	if err := decodeJSON(r, &in); err != nil {
		return db.EntryFields{}, err
	}
	if err := in.Validate(); err != nil {
		return db.EntryFields{}, validationError(err)
	}
	return db.PipelineFields(&in), nil
}

func (s *Server) handleCreatePipelineEntry(w http.ResponseWriter, r *http.Request) {
	fields, err := decodePipelineInput(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	e, err := s.store.CreatePipelineEntry(r.Context(), fields)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, e)
}

func (s *Server) handleGetPipelineEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	item, err := s.store.GetPipelineItem(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if item == nil {
		s.handleError(w, r, &ErrNotFound{Entity: "pipeline entry"})
		return
	}
	s.jsonResponse(w, http.StatusOK, item)
}

func (s *Server) handleUpdatePipelineEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	fields, err := decodePipelineInput(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	e, err := s.store.UpdatePipelineEntry(r.Context(), id, fields)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, e)
}

func (s *Server) handleDeletePipelineEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := s.store.DeletePipelineEntry(r.Context(), id); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handlePipelineNextAction records a chosen next action. The stage moves to the
// one the action implies; free-form actions keep the current stage.
func (s *Server) handlePipelineNextAction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	req, err := decodeNextAction(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	e, err := s.store.RecordPipelineNextAction(r.Context(), id, req)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, e)
}

// ---------------------------------------------------------------------
// CTO Club Handlers
// ---------------------------------------------------------------------

func (s *Server) handleCTOActions(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, actionCatalog(pipeline.KindCTO))
}

func (s *Server) handleListCTO(w http.ResponseWriter, r *http.Request) {
	filters, err := pipelineFilters(r, "status")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	items, err := s.store.ListCTOItems(r.Context(), filters)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

func decodeCTOInput(r *http.Request) (db.EntryFields, error) {
	var in types.CTOEntryInput
	if err := decodeJSON(r, &in); err != nil {
		return db.EntryFields{}, err
	}
	if err := in.Validate(); err != nil {
		return db.EntryFields{}, validationError(err)
	}
	return db.CTOFields(&in), nil
}

func (s *Server) handleCreateCTOEntry(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeCTOInput(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	e, err := s.store.CreateCTOEntry(r.Context(), fields)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, e)
}

func (s *Server) handleGetCTOEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	item, err := s.store.GetCTOItem(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if item == nil {
		s.handleError(w, r, &ErrNotFound{Entity: "cto club entry"})
		return
	}
	s.jsonResponse(w, http.StatusOK, item)
}

func (s *Server) handleUpdateCTOEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	fields, err := decodeCTOInput(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	e, err := s.store.UpdateCTOEntry(r.Context(), id, fields)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, e)
}

func (s *Server) handleDeleteCTOEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := s.store.DeleteCTOEntry(r.Context(), id); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleCTONextAction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	req, err := decodeNextAction(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	e, err := s.store.RecordCTONextAction(r.Context(), id, req)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, e)
}
