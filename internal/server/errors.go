package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/rolodex/internal/db"
	"github.com/jonathan/rolodex/internal/types"
)

// ErrInvalidCredentials indicates a wrong dev gate password
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid password"
}

// ErrGateDisabled indicates a login attempt while no gate password is configured
type ErrGateDisabled struct{}

func (e *ErrGateDisabled) Error() string {
	return "dev gate is disabled"
}

// ErrNotFound indicates a record looked up by a handler does not exist
type ErrNotFound struct {
	Entity string
}

func (e *ErrNotFound) Error() string {
	return e.Entity + " not found"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// validationError turns a validator error into an ErrValidation naming the
// first failing field. Other errors pass through.
func validationError(err error) error {
	fe, ok := types.FirstFieldError(err)
	if !ok {
		return err
	}
	return &ErrValidation{Field: fe.Field, Message: validationMessage(fe.Tag)}
}

func validationMessage(tag string) string {
	switch tag {
	case "required", "required_without":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "is not an allowed value"
	case "max":
		return "is too long"
	case "min":
		return "is too small"
	case "gtefield":
		return "must not be before the start"
	case "relationship_stage", "cto_status":
		return "is not a known stage"
	default:
		return "is invalid (" + tag + ")"
	}
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation *ErrValidation
		notFound   *ErrNotFound
		dbNotFound *db.NotFoundError
		conflict   *db.ConflictError
		reference  *db.ReferenceError
		badCreds   *ErrInvalidCredentials
		disabled   *ErrGateDisabled
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &reference):
		return http.StatusBadRequest
	case errors.As(err, &notFound), errors.As(err, &dbNotFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &badCreds):
		return http.StatusUnauthorized
	case errors.As(err, &disabled):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
