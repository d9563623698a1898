package controllers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// ValidationErrors maps a JSON field name to a message for the user.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for field, msg := range v {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

var fieldLabels = map[string]string{
	"title":       "Title",
	"description": "Description",
	"location":    "Location",
	"category":    "Category",
	"priority":    "Priority",
	"status":      "Status",
	"imageUrl":    "Image URL",
	"latitude":    "Latitude",
	"longitude":   "Longitude",
	"message":     "Message",
	"hours":       "Hours",
}

var registerOnce sync.Once

// setupValidator teaches gin's validator about blank strings and makes it
// report JSON field names.
func setupValidator() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("notblank", validators.NotBlank)
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// validationErrors converts a binding error into field-keyed messages. It
// returns false for errors that are not about individual fields, such as
// malformed JSON.
func validationErrors(err error) (ValidationErrors, bool) {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil, false
	}

	out := make(ValidationErrors, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = fieldMessage(fe)
	}
	return out, true
}

func fieldMessage(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required", "notblank":
		return label + " is required"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", label, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "url":
		return label + " must be a valid URL"
	}
	return label + " is invalid"
}
