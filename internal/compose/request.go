// Package compose turns an email request into a generated email: it checks
// the required fields, builds the prompt and makes exactly one generator call.
package compose

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Purposes are the email categories the form offers. The backend does not
// restrict emailPurpose to this list.
var Purposes = []string{"Meeting Request", "Follow Up", "Thank You"}

// ErrMissingFields is matched by every *ValidationError.
var ErrMissingFields = errors.New("compose: missing required fields")

// Request is the body of a generation request.
type Request struct {
	RecipientName string `json:"recipientName" validate:"required"`
	EmailPurpose  string `json:"emailPurpose"  validate:"required"`
	KeyPoints     string `json:"keyPoints"     validate:"required"`
}

// ValidationError lists the JSON names of the fields that were empty.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("compose: missing required fields: %s", strings.Join(e.Fields, ", "))
}

// Is lets errors.Is(err, ErrMissingFields) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrMissingFields
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			return name
		})
	})
	return validate
}

// Normalize trims surrounding whitespace from every field, so a field that
// holds only whitespace counts as empty.
func (r Request) Normalize() Request {
	return Request{
		RecipientName: strings.TrimSpace(r.RecipientName),
		EmailPurpose:  strings.TrimSpace(r.EmailPurpose),
		KeyPoints:     strings.TrimSpace(r.KeyPoints),
	}
}

// Validate reports a *ValidationError when any required field is empty.
func (r Request) Validate() error {
	err := getValidator().Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("compose: validate request: %w", err)
	}

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
	}
	return &ValidationError{Fields: fields}
}
