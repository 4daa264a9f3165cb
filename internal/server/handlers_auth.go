package server

import (
	"net/http"

	"github.com/jonathan/rolodex/internal/types"
	"go.uber.org/zap"
)

// handleLogin exchanges the shared dev gate password for a session token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.sessions == nil {
		s.handleError(w, r, &ErrGateDisabled{})
		return
	}

	var req types.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, validationError(err))
		return
	}

	if !s.gate.VerifyPassword(req.Password) {
		s.logger.Warn("dev gate login rejected", zap.String("client", clientID(r)))
		s.handleError(w, r, &ErrInvalidCredentials{})
		return
	}

	token, expiresAt, err := s.sessions.GenerateToken()
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, types.LoginResponse{Token: token, ExpiresAt: expiresAt})
}
