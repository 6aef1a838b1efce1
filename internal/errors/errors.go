// Package errors provides centralized error definitions and error handling utilities
// for the storefront. It defines sentinel errors, typed errors carrying context,
// and classification helpers used by the presenter to decide what reaches the
// user.
//
// # Error Types
//
//   - ConfigError: a required DOM anchor or template is missing at startup (fatal)
//   - TransportError: a catalog fetch or order submission failed
//   - NotFoundError: a product or other resource could not be resolved
//
// Buyer validation failures are not errors: they are reported as a
// field-to-message map by the Buyer model and rendered inline.
//
// # Usage
//
//	err := errors.NewConfigError("button[type=submit]", "form[name=order]")
//	if errors.Is(err, errors.ErrMissingElement) { ... }
//
//	var terr *errors.TransportError
//	if errors.As(err, &terr) && terr.StatusCode == 400 { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that prevent the storefront from starting.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Markup-related sentinel errors
var (
	// ErrMissingElement indicates that a required element is absent from its scope.
	ErrMissingElement = New("required element not found")
	// ErrMissingTemplate indicates that a named template does not exist.
	ErrMissingTemplate = New("template not found")
	// ErrInvalidSelector indicates that a selector could not be compiled.
	ErrInvalidSelector = New("invalid selector")
)

// Transport-related sentinel errors
var (
	// ErrRequestFailed indicates that a request never produced a response.
	ErrRequestFailed = New("request failed")
	// ErrBadStatus indicates that the server answered with a non-2xx status.
	ErrBadStatus = New("unexpected response status")
	// ErrDecode indicates that a response body could not be decoded.
	ErrDecode = New("malformed response body")
)

// Domain sentinel errors
var (
	// ErrProductNotFound indicates that a product ID is not in the catalog.
	ErrProductNotFound = New("product not found")
	// ErrNotForSale indicates that a product has no price.
	ErrNotForSale = New("product is not for sale")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// StoreError is the base interface for all storefront errors.
type StoreError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsRetryable returns true if the operation may succeed when repeated.
	IsRetryable() bool

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	retryable  bool
	userFacing bool
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Unwrap() error        { return e.cause }
func (e *baseError) Severity() Severity   { return e.severity }
func (e *baseError) IsRetryable() bool    { return e.retryable }
func (e *baseError) IsUserFacing() bool   { return e.userFacing }
func (e *baseError) Is(target error) bool { return e.cause != nil && errors.Is(e.cause, target) }

// -----------------------------------------------------------------------------
// Configuration Errors
// -----------------------------------------------------------------------------

// ConfigError reports markup that does not satisfy a view's contract: a
// selector that matched nothing inside its scope, or a template that does
// not exist. These are raised while binding views at startup and are fatal.
//
// Example:
//
//	err := errors.NewConfigError(".basket__list", "template#basket")
//	fmt.Println(err) // "config error [selector=.basket__list, scope=template#basket]: required element not found"
type ConfigError struct {
	baseError
	Selector string
	Scope    string
}

// NewConfigError creates a ConfigError for a selector missing from scope.
func NewConfigError(selector, scope string) *ConfigError {
	return &ConfigError{
		baseError: baseError{
			message:  "required element not found",
			cause:    ErrMissingElement,
			severity: SeverityCritical,
		},
		Selector: selector,
		Scope:    scope,
	}
}

// NewTemplateError creates a ConfigError for a missing template.
func NewTemplateError(id string) *ConfigError {
	return &ConfigError{
		baseError: baseError{
			message:  "template not found",
			cause:    ErrMissingTemplate,
			severity: SeverityCritical,
		},
		Selector: "template#" + id,
	}
}

// WithCause replaces the underlying cause.
func (e *ConfigError) WithCause(cause error) *ConfigError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ConfigError) Error() string {
	var parts []string
	if e.Selector != "" {
		parts = append(parts, fmt.Sprintf("selector=%s", e.Selector))
	}
	if e.Scope != "" {
		parts = append(parts, fmt.Sprintf("scope=%s", e.Scope))
	}

	prefix := "config error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("config error [%s]", strings.Join(parts, ", "))
	}
	if e.cause != nil && e.cause.Error() != e.message {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ConfigError) Is(target error) bool {
	if _, ok := target.(*ConfigError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Transport Errors
// -----------------------------------------------------------------------------

// TransportError represents a failed call to the shop backend.
//
// Example:
//
//	err := errors.NewTransportError("POST", "/order", errors.ErrBadStatus).
//		WithStatus(400).WithServerMessage("Wrong order total")
type TransportError struct {
	baseError
	Method        string
	Path          string
	StatusCode    int
	ServerMessage string
}

// NewTransportError creates a new TransportError.
func NewTransportError(method, path string, cause error) *TransportError {
	return &TransportError{
		baseError: baseError{
			message:    "request to shop API failed",
			cause:      cause,
			severity:   SeverityError,
			retryable:  true,
			userFacing: false,
		},
		Method: method,
		Path:   path,
	}
}

// WithStatus records the HTTP status. 4xx responses are not retryable and
// have warning severity.
func (e *TransportError) WithStatus(code int) *TransportError {
	e.StatusCode = code
	e.retryable = code == 0 || code >= 500 || code == 429
	if code >= 400 && code < 500 {
		e.severity = SeverityWarning
	} else {
		e.severity = SeverityError
	}
	return e
}

// WithRetryable overrides whether the request may be repeated.
func (e *TransportError) WithRetryable(retryable bool) *TransportError {
	e.retryable = retryable
	return e
}

// WithServerMessage records the `error` field returned by the server.
// Server messages are written for shoppers and are safe to display.
func (e *TransportError) WithServerMessage(msg string) *TransportError {
	e.ServerMessage = msg
	e.userFacing = msg != ""
	return e
}

// Error returns the formatted error message.
func (e *TransportError) Error() string {
	var parts []string
	if e.Method != "" || e.Path != "" {
		parts = append(parts, strings.TrimSpace(e.Method+" "+e.Path))
	}
	if e.StatusCode != 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	prefix := "transport error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("transport error [%s]", strings.Join(parts, ", "))
	}

	msg := e.message
	if e.ServerMessage != "" {
		msg = e.ServerMessage
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, msg, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, msg)
}

// Is checks if this error matches the target.
func (e *TransportError) Is(target error) bool {
	if _, ok := target.(*TransportError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// NotFoundError represents a resource that could not be found.
//
// Example:
//
//	err := errors.NewNotFoundError("product", "c101ab44")
//	fmt.Println(err) // "product 'c101ab44' not found"
type NotFoundError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			message:    fmt.Sprintf("%s '%s' not found", resourceType, resourceID),
			severity:   SeverityWarning,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// WithCause adds a cause to the error.
func (e *NotFoundError) WithCause(cause error) *NotFoundError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *NotFoundError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s '%s' not found: %v", e.ResourceType, e.ResourceID, e.cause)
	}
	return fmt.Sprintf("%s '%s' not found", e.ResourceType, e.ResourceID)
}

// Is checks if this error matches the target.
func (e *NotFoundError) Is(target error) bool {
	if _, ok := target.(*NotFoundError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Classification
// -----------------------------------------------------------------------------

// IsRetryable returns true if the error is transient and the operation
// may succeed on retry.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var storeErr StoreError
	if As(err, &storeErr) {
		return storeErr.IsRetryable()
	}
	return Is(err, ErrRequestFailed)
}

// IsUserFacing returns true if the error message is safe to display to end users.
//
// Example:
//
//	if errors.IsUserFacing(err) {
//	    notice.Show(err.Error())
//	} else {
//	    notice.Show("Something went wrong")
//	    logger.Error("internal error", "error", err)
//	}
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	var storeErr StoreError
	if As(err, &storeErr) {
		return storeErr.IsUserFacing()
	}
	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement StoreError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}
	var storeErr StoreError
	if As(err, &storeErr) {
		return storeErr.Severity()
	}
	return SeverityError
}

// UserMessage returns the text to show a shopper for err, falling back to
// fallback when the error is internal.
func UserMessage(err error, fallback string) string {
	if !IsUserFacing(err) {
		return fallback
	}
	var terr *TransportError
	if As(err, &terr) && terr.ServerMessage != "" {
		return terr.ServerMessage
	}
	var nf *NotFoundError
	if As(err, &nf) {
		return nf.Error()
	}
	return fallback
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
//
// Example:
//
//	err := errors.Wrap(baseErr, "failed to load catalog")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
