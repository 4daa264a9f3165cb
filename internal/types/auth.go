package types

import "time"

// LoginRequest represents the dev gate login request.
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the dev gate session token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	return validate.Struct(r)
}
