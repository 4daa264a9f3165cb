package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/rolodex/internal/csvio"
	"github.com/jonathan/rolodex/internal/db"
	"github.com/jonathan/rolodex/internal/types"
	"go.uber.org/zap"
)

// maxImportBytes caps the size of an uploaded CSV.
const maxImportBytes = 10 << 20

// ---------------------------------------------------------------------
// Contact Handlers
// ---------------------------------------------------------------------

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	q := r.URL.Query()
	contacts, err := s.store.ListContacts(r.Context(), db.ContactFilters{
		Query:       q.Get("q"),
		ContactType: q.Get("type"),
		Company:     q.Get("company"),
		Limit:       limit,
	})
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"contacts": contacts, "count": len(contacts)})
}

func decodeContactInput(r *http.Request) (*types.ContactInput, error) {
	var in types.ContactInput
	if err := decodeJSON(r, &in); err != nil {
		return nil, err
	}
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, validationError(err)
	}
	return &in, nil
}

func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	in, err := decodeContactInput(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	c, err := s.store.CreateContact(r.Context(), in)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, c)
}

func (s *Server) handleGetContact(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	c, err := s.store.GetContact(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if c == nil {
		s.handleError(w, r, &ErrNotFound{Entity: "contact"})
		return
	}
	s.jsonResponse(w, http.StatusOK, c)
}

func (s *Server) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	in, err := decodeContactInput(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	c, err := s.store.UpdateContact(r.Context(), id, in)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, c)
}

func (s *Server) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := s.store.DeleteContact(r.Context(), id); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ---------------------------------------------------------------------
// Import / Export
// ---------------------------------------------------------------------

func (s *Server) handleExportContacts(w http.ResponseWriter, r *http.Request) {
	contactType := r.URL.Query().Get("type")
	contacts, err := db.CollectPages(r.Context(), s.pageSize, func(ctx context.Context, limit, offset int) ([]types.Contact, error) {
		return s.store.ListContacts(ctx, db.ContactFilters{ContactType: contactType, Limit: limit, Offset: offset})
	})
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	filename := fmt.Sprintf("contacts-%s.csv", s.now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if err := csvio.WriteContacts(w, contacts); err != nil {
		s.logger.Error("contact export failed", zap.Error(err))
	}
}

func (s *Server) handleImportContacts(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxImportBytes)
	res, err := csvio.Import(r.Context(), body, s.store, csvio.DefaultWorkers)
	if err != nil {
		// Anything but cancellation is a problem with the uploaded file.
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			err = &ErrValidation{Field: "file", Message: err.Error()}
		}
		s.handleError(w, r, err)
		return
	}

	s.logger.Info("contacts imported",
		zap.Int("created", res.Created),
		zap.Int("updated", res.Updated),
		zap.Int("skipped", res.Skipped))
	s.jsonResponse(w, http.StatusOK, res)
}
