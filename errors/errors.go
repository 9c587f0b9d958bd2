// Package errors provides unified error handling for fluent-lm.
// It implements structured error types with machine-readable codes,
// retryable detection, and cause wrapping compatible with errors.Is/As.
package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// IsCode reports whether err (or any error it wraps) is an AppError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// IsRetryable reports whether err (or any error it wraps) is an AppError
// marked retryable.
func IsRetryable(err error) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Retryable
	}
	return false
}

// CodeOf returns the ErrorCode of err, or "" if err is not an AppError.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// --- Common Error Constructors ---

// UnknownIdentifier creates a new AppError for a positional argument that
// cannot be classified as provider, model, or prompt.
func UnknownIdentifier(token string) *AppError {
	return &AppError{
		Code: ErrCodeUnknownIdentifier, Message: fmt.Sprintf("Argument %q matches no known provider, model, or alias.", token),
		Details: map[string]any{"token": token},
	}
}

// UnknownProvider creates a new AppError for a provider name absent from the catalog.
func UnknownProvider(name string) *AppError {
	return &AppError{
		Code: ErrCodeUnknownProvider, Message: fmt.Sprintf("Provider %q is not configured.", name),
		Details: map[string]any{"provider": name},
	}
}

// UnknownModel creates a new AppError for a model the provider does not offer.
func UnknownModel(provider, model string) *AppError {
	return &AppError{
		Code: ErrCodeUnknownModel, Message: fmt.Sprintf("Model %q is not known to provider %q.", model, provider),
		Details: map[string]any{"provider": provider, "model": model},
	}
}

// MissingPrompt creates a new AppError for a call that supplied no prompt.
func MissingPrompt() *AppError {
	return &AppError{
		Code: ErrCodeMissingPrompt, Message: "No prompt was supplied and no default prompt is permitted here.",
	}
}

// MissingVariable creates a new AppError for a template placeholder with no
// value in either the explicit variables or the context store.
func MissingVariable(name string) *AppError {
	return &AppError{
		Code: ErrCodeMissingVariable, Message: fmt.Sprintf("Template placeholder {%s} has no value in scope.", name),
		Details: map[string]any{"variable": name},
	}
}

// MalformedTemplate creates a new AppError for invalid placeholder syntax.
func MalformedTemplate(reason string) *AppError {
	return &AppError{
		Code: ErrCodeMalformedTemplate, Message: fmt.Sprintf("Malformed template: %s", reason),
	}
}

// MissingContextKey creates a new AppError for a step input key that is unset
// at execution time.
func MissingContextKey(key string) *AppError {
	return &AppError{
		Code: ErrCodeMissingContextKey, Message: fmt.Sprintf("Context key %q is not set.", key),
		Details: map[string]any{"key": key},
	}
}

// BuilderValidation creates a new AppError for an invalid step sequence.
func BuilderValidation(reason string) *AppError {
	return &AppError{
		Code: ErrCodeBuilderValidation, Message: reason,
	}
}

// ModelInvocation creates a new AppError wrapping a failed external LLM call.
func ModelInvocation(provider string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeModelInvocation, Message: fmt.Sprintf("Call to provider %q failed.", provider),
		Retryable: true,
		Details:   map[string]any{"provider": provider},
		Cause:     cause,
	}
}

// ConfigInvalid creates a new AppError for configuration that failed validation.
func ConfigInvalid(reason string) *AppError {
	return &AppError{
		Code: ErrCodeConfigInvalid, Message: reason,
	}
}
