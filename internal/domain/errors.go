package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string   { return e.Message }
func (e *ValidationError) Error() string { return e.Message }

func (e *NotFoundError) StatusCode() int   { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }

// Is allows errors.Is() to match the typed errors against their sentinels
func (e *NotFoundError) Is(target error) bool   { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation failed")
	ErrConfiguration = errors.New("configuration error")
	ErrStorage       = errors.New("storage error")
	ErrModelProvider = errors.New("model provider error")
)

// StorageError wraps a failure reported by the document store client.
// Op names the repository operation that failed (e.g. "load structure").
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string   { return e.Op + ": " + e.Err.Error() }
func (e *StorageError) Unwrap() error   { return e.Err }
func (e *StorageError) StatusCode() int { return http.StatusInternalServerError }

// Is allows errors.Is() to match against ErrStorage
func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// NewStorageError returns nil when err is nil so callers can wrap unconditionally
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// ModelError wraps a failure reported by the generative model provider.
type ModelError struct {
	Provider string
	Err      error
}

func (e *ModelError) Error() string   { return e.Provider + ": " + e.Err.Error() }
func (e *ModelError) Unwrap() error   { return e.Err }
func (e *ModelError) StatusCode() int { return http.StatusInternalServerError }

// Is allows errors.Is() to match against ErrModelProvider
func (e *ModelError) Is(target error) bool { return target == ErrModelProvider }

// NewModelError returns nil when err is nil so callers can wrap unconditionally
func NewModelError(provider string, err error) error {
	if err == nil {
		return nil
	}
	return &ModelError{Provider: provider, Err: err}
}
