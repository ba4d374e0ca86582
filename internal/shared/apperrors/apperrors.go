package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError is a client-caused error that names the offending
// request parameter. It is always raised before any storage access.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validation builds a ValidationError for a request parameter.
func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError means a referenced resource does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func NotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// CheckError maps an error to its HTTP status code. Anything not in the
// taxonomy is treated as a storage/infrastructure failure.
func CheckError(err error) int {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest
	}

	var nf *NotFoundError
	if errors.As(err, &nf) {
		return http.StatusNotFound
	}

	return http.StatusInternalServerError
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
