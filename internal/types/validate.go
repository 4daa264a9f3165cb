package types

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/rolodex/internal/pipeline"
)

// validate is shared by every request type; validator instances cache struct
// metadata and are safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("relationship_stage", func(fl validator.FieldLevel) bool {
		return pipeline.IsValidStage(pipeline.KindRelationship, pipeline.Stage(fl.Field().String()))
	})
	_ = v.RegisterValidation("cto_status", func(fl validator.FieldLevel) bool {
		return pipeline.IsValidStage(pipeline.KindCTO, pipeline.Stage(fl.Field().String()))
	})
	return v
}

// FieldError describes the first failing field of a validation error.
type FieldError struct {
	Field string
	Tag   string
}

// FirstFieldError extracts the first failing field from a validator error.
func FirstFieldError(err error) (FieldError, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return FieldError{}, false
	}
	return FieldError{Field: verrs[0].Field(), Tag: verrs[0].Tag()}, true
}
