package server

import (
	"net/http"
	"time"

	"github.com/jonathan/rolodex/internal/db"
	"github.com/jonathan/rolodex/internal/types"
)

// vipView adds the derived touch schedule to a VIP.
type vipView struct {
	*types.VIP
	NextTouchDue *time.Time `json:"next_touch_due,omitempty"`
	Overdue      bool       `json:"overdue"`
}

func (s *Server) viewVIP(v *types.VIP) vipView {
	view := vipView{VIP: v, Overdue: v.IsOverdue(s.now())}
	if due := v.NextTouchDue(); !due.IsZero() {
		view.NextTouchDue = &due
	}
	return view
}

// ---------------------------------------------------------------------
// VIP Handlers
// ---------------------------------------------------------------------

func (s *Server) handleListVIPs(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	q := r.URL.Query()
	filters := db.VIPFilters{Tier: q.Get("tier"), Owner: q.Get("owner"), Limit: limit}
	if q.Get("overdue") == "true" {
		now := s.now()
		filters.OverdueAt = &now
	}
	vips, err := s.store.ListVIPs(r.Context(), filters)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	views := make([]vipView, 0, len(vips))
	for i := range vips {
		views = append(views, s.viewVIP(&vips[i]))
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"vips": views, "count": len(views)})
}

func decodeVIPInput(r *http.Request) (*types.VIPInput, error) {
	var in types.VIPInput
	if err := decodeJSON(r, &in); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, validationError(err)
	}
	return &in, nil
}

func (s *Server) handleCreateVIP(w http.ResponseWriter, r *http.Request) {
	in, err := decodeVIPInput(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	v, err := s.store.CreateVIP(r.Context(), in)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, s.viewVIP(v))
}

func (s *Server) handleGetVIP(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	v, err := s.store.GetVIP(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if v == nil {
		s.handleError(w, r, &ErrNotFound{Entity: "vip"})
		return
	}
	s.jsonResponse(w, http.StatusOK, s.viewVIP(v))
}

func (s *Server) handleUpdateVIP(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	in, err := decodeVIPInput(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	v, err := s.store.UpdateVIP(r.Context(), id, in)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.viewVIP(v))
}

func (s *Server) handleDeleteVIP(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := s.store.DeleteVIP(r.Context(), id); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// touchRequest optionally backdates a touch; an empty body means now.
type touchRequest struct {
	At *time.Time `json:"at,omitempty"`
}

func (s *Server) handleTouchVIP(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	var req touchRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			s.handleError(w, r, err)
			return
		}
	}
	at := s.now()
	if req.At != nil {
		if req.At.After(at) {
			s.handleError(w, r, &ErrValidation{Field: "at", Message: "must not be in the future"})
			return
		}
		at = *req.At
	}

	v, err := s.store.TouchVIP(r.Context(), id, at)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.viewVIP(v))
}
