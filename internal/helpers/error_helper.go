package helpers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError pins a rejected value to the attribute that caused it.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError is returned before any write happens. It is distinct from
// MediaError so callers can tell bad input from a failed derivation step.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// FromValidator flattens validator.ValidationErrors into field-level errors.
// Any other error passes through unchanged.
func FromValidator(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	ve := &ValidationError{}
	for _, fe := range verrs {
		ve.Fields = append(ve.Fields, FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: fmt.Sprintf("failed on the %q rule", fe.Tag()),
		})
	}
	return ve
}

// MediaError wraps an image read/decode/write failure during derivation.
type MediaError struct {
	Path string
	Err  error
}

func (e *MediaError) Error() string {
	return fmt.Sprintf("media %s: %v", e.Path, e.Err)
}

func (e *MediaError) Unwrap() error {
	return e.Err
}
