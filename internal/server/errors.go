package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-ranker/internal/schemas"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return "validation error: " + e.Message
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates the requested resource does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrStoreUnavailable indicates persistence was requested but no store is configured
type ErrStoreUnavailable struct{}

func (e *ErrStoreUnavailable) Error() string {
	return "ranking store is not configured"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		notFoundErr   *ErrNotFound
		storeErr      *ErrStoreUnavailable
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &storeErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// validationError converts schema and struct validation failures into ErrValidation
func validationError(err error) error {
	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) && len(schemaErr.Errors) > 0 {
		first := schemaErr.Errors[0]
		return &ErrValidation{Field: first.Field, Message: first.Message}
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		message := "failed '" + first.Tag() + "'"
		if first.Param() != "" {
			message += " (" + first.Param() + ")"
		}
		return &ErrValidation{Field: jsonFieldPath(first.Namespace()), Message: message}
	}

	return &ErrValidation{Message: err.Error()}
}

// jsonFieldPath turns "RankRequest.Job.MinExperience" into "Job.MinExperience"
func jsonFieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
