package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrInvalidFormat      = errors.New("invalid token format")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Engine errors
var (
	// ErrScopeResolution marks a natural key that did not resolve within its
	// required scope. Row-local: the importer skips the row and continues.
	ErrScopeResolution = errors.New("scope resolution failed")

	// ErrDeleteBlocked marks a safe delete refused because live dependents
	// exist. Nothing is mutated.
	ErrDeleteBlocked = errors.New("delete blocked by dependents")

	// ErrUnknownTable marks an import request for a table the schema graph
	// does not recognize.
	ErrUnknownTable = errors.New("unknown import table")

	// ErrUsernameExists marks a duplicate username on user creation.
	ErrUsernameExists = errors.New("username already exists")
)

// ScopeError reports an unresolvable natural key together with the scope it
// was searched in, so batch diagnostics can name the offending reference.
type ScopeError struct {
	Entity string // human label, e.g. "College"
	Key    string // the natural key that failed to resolve
	Scope  string // description of the resolved scope, e.g. `college "ABC"`; empty for global keys
}

// Error implements the error interface.
func (e *ScopeError) Error() string {
	if e.Scope != "" {
		return fmt.Sprintf("%s %s not found in %s", e.Entity, e.Key, e.Scope)
	}
	return fmt.Sprintf("%s %s not found", e.Entity, e.Key)
}

// Unwrap lets errors.Is match ErrScopeResolution.
func (e *ScopeError) Unwrap() error {
	return ErrScopeResolution
}

// NewScopeError creates a scope-resolution failure for a natural key.
func NewScopeError(entity, key, scope string) *ScopeError {
	return &ScopeError{Entity: entity, Key: key, Scope: scope}
}

// BlockedError carries the direct-dependent counts that refused a safe
// delete.
type BlockedError struct {
	Entity     string
	Dependents map[string]int64
}

// Error implements the error interface.
func (e *BlockedError) Error() string {
	parts := make([]string, 0, len(e.Dependents))
	for table, n := range e.Dependents {
		parts = append(parts, fmt.Sprintf("%s: %d", table, n))
	}
	sort.Strings(parts)
	return fmt.Sprintf("%s has dependent records (%s)", e.Entity, strings.Join(parts, ", "))
}

// Unwrap lets errors.Is match ErrDeleteBlocked.
func (e *BlockedError) Unwrap() error {
	return ErrDeleteBlocked
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{Err: err, Message: message}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewValidationError creates a new custom error for a failed field validation
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}
