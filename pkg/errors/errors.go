// Package errors provides custom error types for the partsync system.
// These errors enable programmatic error checking with errors.Is and
// errors.As, and carry enough context (file, component, field) to act on.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is is an alias for the standard library errors.Is.
var Is = errors.Is

// As is an alias for the standard library errors.As.
var As = errors.As

// Common sentinel errors for the partsync system
var (
	// ErrNotFound indicates that a requested component or field was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a component already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidFormat indicates a file with the wrong extension or an unparseable layout
	ErrInvalidFormat = errors.New("invalid format")

	// ErrMissingName indicates a record without an identifier
	ErrMissingName = errors.New("missing name")

	// ErrMissingTemplate indicates additions were requested without a template
	ErrMissingTemplate = errors.New("missing template")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")

	// ErrPairsFailed indicates that some library/CSV pairs of a batch were skipped
	ErrPairsFailed = errors.New("some library/CSV pairs failed")
)

// MissingNameError is returned when a record has no identifier.
// The record is dropped from its side's record set.
type MissingNameError struct {
	Source string // "library" or "csv"
	Index  int    // position of the record within its source
}

// Error implements the error interface
func (e *MissingNameError) Error() string {
	return fmt.Sprintf("%s record %d has no name", e.Source, e.Index)
}

// Is implements errors.Is support
func (e *MissingNameError) Is(target error) bool {
	return target == ErrMissingName
}

// NewMissingNameError creates a new MissingNameError
func NewMissingNameError(source string, index int) *MissingNameError {
	return &MissingNameError{Source: source, Index: index}
}

// FormatError is returned when a file has the wrong extension or its
// header cannot be parsed. It aborts the run for that file pair.
type FormatError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// Error implements the error interface
func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("format error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("format error in %s: %s", e.Path, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

// NewFormatError creates a new FormatError
func NewFormatError(path, message string) *FormatError {
	return &FormatError{Path: path, Message: message}
}

// LookupError is returned when a component or field cannot be found by
// name during replace, delete or update. Only that item is skipped.
type LookupError struct {
	Resource string // "component" or "field"
	Name     string
	Parent   string // owning component for field lookups
}

// Error implements the error interface
func (e *LookupError) Error() string {
	if e.Parent != "" {
		return fmt.Sprintf("%s %s not found in %s", e.Resource, e.Name, e.Parent)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.Name)
}

// Is implements errors.Is support
func (e *LookupError) Is(target error) bool {
	return target == ErrNotFound
}

// NewLookupError creates a new LookupError
func NewLookupError(resource, name string) *LookupError {
	return &LookupError{Resource: resource, Name: name}
}

// NewFieldLookupError creates a LookupError for a field of a component
func NewFieldLookupError(field, component string) *LookupError {
	return &LookupError{Resource: "field", Name: field, Parent: component}
}

// MissingTemplateError is returned when additions are pending but no
// template component is configured.
type MissingTemplateError struct {
	Pending []string
}

// Error implements the error interface
func (e *MissingTemplateError) Error() string {
	return fmt.Sprintf("no template configured for %d pending additions: %v", len(e.Pending), e.Pending)
}

// Is implements errors.Is support
func (e *MissingTemplateError) Is(target error) bool {
	return target == ErrMissingTemplate
}

// NewMissingTemplateError creates a new MissingTemplateError
func NewMissingTemplateError(pending []string) *MissingTemplateError {
	return &MissingTemplateError{Pending: pending}
}

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "delete", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// ResourceError represents an error during resource operations
type ResourceError struct {
	Operation string // "replace", "delete", "add", "update", "publish"
	Resource  string // "library", "component", "field", "sink"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError creates a new ResourceError
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ResourceError{
		Operation: operation,
		Resource:  resource,
		ID:        id,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsFormatError checks if an error is a format error
func IsFormatError(err error) bool {
	return errors.Is(err, ErrInvalidFormat)
}

// IsMissingName checks if an error is a missing name error
func IsMissingName(err error) bool {
	return errors.Is(err, ErrMissingName)
}

// IsMissingTemplate checks if an error is a missing template error
func IsMissingTemplate(err error) bool {
	return errors.Is(err, ErrMissingTemplate)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapResource wraps an error as a ResourceError
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}
