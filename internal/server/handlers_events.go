package server

import (
	"net/http"

	"github.com/jonathan/rolodex/internal/db"
	"github.com/jonathan/rolodex/internal/types"
)

// ---------------------------------------------------------------------
// Event Handlers
// ---------------------------------------------------------------------

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	events, err := s.store.ListEvents(r.Context(), db.EventFilters{
		Status:    r.URL.Query().Get("status"),
		EventType: r.URL.Query().Get("type"),
		Limit:     limit,
	})
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"events": events, "count": len(events)})
}

func decodeEventInput(r *http.Request) (*types.EventInput, error) {
	var in types.EventInput
	if err := decodeJSON(r, &in); err != nil {
		return nil, err
	}
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, validationError(err)
	}
	return &in, nil
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	in, err := decodeEventInput(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	e, err := s.store.CreateEvent(r.Context(), in)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, e)
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	e, err := s.store.GetEvent(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if e == nil {
		s.handleError(w, r, &ErrNotFound{Entity: "event"})
		return
	}
	s.jsonResponse(w, http.StatusOK, e)
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	in, err := decodeEventInput(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	e, err := s.store.UpdateEvent(r.Context(), id, in)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, e)
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := s.store.DeleteEvent(r.Context(), id); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ---------------------------------------------------------------------
// Attendee Handlers
// ---------------------------------------------------------------------

func (s *Server) handleListAttendees(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	attendees, err := s.store.ListAttendees(r.Context(), eventID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"attendees": attendees, "count": len(attendees)})
}

func (s *Server) handleAddAttendee(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	var in types.AttendeeInput
	if err := decodeJSON(r, &in); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := in.Validate(); err != nil {
		s.handleError(w, r, validationError(err))
		return
	}
	if err := s.store.AddAttendee(r.Context(), eventID, &in); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, map[string]string{"status": "added"})
}

func (s *Server) handleRemoveAttendee(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	contactID, err := pathID(r, "contact_id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := s.store.RemoveAttendee(r.Context(), eventID, contactID); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "removed"})
}
