// Package errors provides structured error types for ontoview.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the HTTP service and the core renderers
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Two codes make up the rendering taxonomy:
//   - INVALID_CONTEXT: the vocabulary context is not a mapping or lacks a required table
//   - INVALID_NODE: the instance document violates the node/list shape contract
//
// The remaining codes serve the CLI and HTTP surfaces.
//
// # Usage
//
//	err := errors.Structural("has value[1]", "not a string or node: %v", item)
//	if errors.IsStructuralError(err) {
//	    // Report the malformed document
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidContext, yamlErr, "parse context")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Rendering taxonomy
	ErrCodeInvalidContext Code = "INVALID_CONTEXT"
	ErrCodeInvalidNode    Code = "INVALID_NODE"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Path    string // Location of the offending value (optional)
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Context creates a ContextError: the vocabulary context is malformed.
func Context(format string, args ...any) *Error {
	return New(ErrCodeInvalidContext, format, args...)
}

// Structural creates a StructuralError located at path, the dotted field
// path of the offending value within the document ("" for the root).
func Structural(path, format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeInvalidNode,
		Path:    path,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsContextError reports whether err is a ContextError.
func IsContextError(err error) bool {
	return Is(err, ErrCodeInvalidContext)
}

// IsStructuralError reports whether err is a StructuralError.
func IsStructuralError(err error) bool {
	return Is(err, ErrCodeInvalidNode)
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message (prefixed by its path) without the code.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Path != "" {
			return e.Path + ": " + e.Message
		}
		return e.Message
	}
	return err.Error()
}
