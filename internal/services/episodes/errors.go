package episodes

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrEpisodeNotFound  = errors.New("episode not found")
	ErrDuplicateEpisode = errors.New("duplicate episode")
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotPlaceholder   = errors.New("episode already has a file")
)

// NotFoundError represents an error when an episode is not found
type NotFoundError struct {
	Resource string
	ID       interface{}
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s with identifier %v not found", e.Resource, e.ID)
}

func (e NotFoundError) Is(target error) bool {
	return target == ErrEpisodeNotFound
}

// DuplicateError is returned when an episode guid is already registered
type DuplicateError struct {
	GUID string
}

func (e DuplicateError) Error() string {
	return fmt.Sprintf("episode with guid %q already exists", e.GUID)
}

func (e DuplicateError) Is(target error) bool {
	return target == ErrDuplicateEpisode
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

func (e ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource string, id interface{}) error {
	return NotFoundError{Resource: resource, ID: id}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return ValidationError{Field: field, Message: message}
}
