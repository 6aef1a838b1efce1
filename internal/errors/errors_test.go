package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// -----------------------------------------------------------------------------
// Severity Tests
// -----------------------------------------------------------------------------

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityDebug, "debug"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{SeverityCritical, "critical"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.want {
				t.Errorf("Severity.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// ConfigError Tests
// -----------------------------------------------------------------------------

func TestNewConfigError(t *testing.T) {
	err := NewConfigError(".basket__list", "template#basket")

	if err.Severity() != SeverityCritical {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityCritical)
	}
	if err.IsRetryable() {
		t.Error("IsRetryable() = true, want false")
	}
	want := "config error [selector=.basket__list, scope=template#basket]: required element not found"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !Is(err, ErrMissingElement) {
		t.Error("expected ConfigError to match ErrMissingElement")
	}
	if Is(err, ErrMissingTemplate) {
		t.Error("element error should not match ErrMissingTemplate")
	}
}

func TestNewTemplateError(t *testing.T) {
	err := NewTemplateError("card-catalog")

	if !Is(err, ErrMissingTemplate) {
		t.Error("expected template error to match ErrMissingTemplate")
	}
	if !strings.Contains(err.Error(), "template#card-catalog") {
		t.Errorf("Error() = %q, want it to name the template", err.Error())
	}

	var cfgErr *ConfigError
	wrapped := fmt.Errorf("binding views: %w", err)
	if !As(wrapped, &cfgErr) {
		t.Fatal("expected As to find ConfigError through wrapping")
	}
	if cfgErr.Selector != "template#card-catalog" {
		t.Errorf("Selector = %q", cfgErr.Selector)
	}
}

// -----------------------------------------------------------------------------
// TransportError Tests
// -----------------------------------------------------------------------------

func TestTransportError_Status(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		retryable bool
		severity  Severity
	}{
		{"no response", 0, true, SeverityError},
		{"bad request", 400, false, SeverityWarning},
		{"not found", 404, false, SeverityWarning},
		{"too many requests", 429, true, SeverityWarning},
		{"server error", 502, true, SeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewTransportError("POST", "/order", ErrBadStatus).WithStatus(tt.status)
			if err.IsRetryable() != tt.retryable {
				t.Errorf("IsRetryable() = %v, want %v", err.IsRetryable(), tt.retryable)
			}
			if IsRetryable(err) != tt.retryable {
				t.Errorf("IsRetryable(err) = %v, want %v", IsRetryable(err), tt.retryable)
			}
			if got := GetSeverity(fmt.Errorf("placing order: %w", err)); got != tt.severity {
				t.Errorf("GetSeverity() = %v, want %v", got, tt.severity)
			}
		})
	}
}

func TestTransportError_ServerMessage(t *testing.T) {
	err := NewTransportError("POST", "/order", ErrBadStatus).
		WithStatus(400).
		WithServerMessage("Wrong order total")

	if !IsUserFacing(err) {
		t.Error("errors carrying a server message should be user facing")
	}
	if got := UserMessage(err, "fallback"); got != "Wrong order total" {
		t.Errorf("UserMessage() = %q", got)
	}
	if !strings.Contains(err.Error(), "status=400") {
		t.Errorf("Error() = %q, want status", err.Error())
	}
	if !Is(err, ErrBadStatus) {
		t.Error("expected match on ErrBadStatus")
	}
}

func TestTransportError_Internal(t *testing.T) {
	err := NewTransportError("GET", "/product/", errors.New("dial tcp: refused"))

	if IsUserFacing(err) {
		t.Error("network failures should not be user facing")
	}
	if got := UserMessage(err, "fallback"); got != "fallback" {
		t.Errorf("UserMessage() = %q, want fallback", got)
	}
	if GetSeverity(err) != SeverityError {
		t.Errorf("GetSeverity() = %v", GetSeverity(err))
	}
}

// -----------------------------------------------------------------------------
// NotFoundError Tests
// -----------------------------------------------------------------------------

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("product", "abc")

	if err.Error() != "product 'abc' not found" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !Is(err, &NotFoundError{}) {
		t.Error("expected Is to match any NotFoundError")
	}

	withCause := NewNotFoundError("product", "abc").WithCause(ErrProductNotFound)
	if !Is(withCause, ErrProductNotFound) {
		t.Error("expected match on cause")
	}
}

// -----------------------------------------------------------------------------
// Helper Tests
// -----------------------------------------------------------------------------

func TestClassification_NilAndForeign(t *testing.T) {
	if IsRetryable(nil) || IsUserFacing(nil) {
		t.Error("nil error should not be retryable or user facing")
	}
	if GetSeverity(nil) != SeverityDebug {
		t.Error("nil error should have debug severity")
	}

	foreign := errors.New("boom")
	if GetSeverity(foreign) != SeverityError {
		t.Error("foreign errors default to SeverityError")
	}
	if !IsRetryable(fmt.Errorf("x: %w", ErrRequestFailed)) {
		t.Error("ErrRequestFailed should be retryable")
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "fallback"},
		{"foreign", errors.New("boom"), "fallback"},
		{"server message", NewTransportError("POST", "/order", ErrBadStatus).WithStatus(400).WithServerMessage("Wrong order total"), "Wrong order total"},
		{"server message cleared", NewTransportError("POST", "/order", ErrBadStatus).WithServerMessage("x").WithServerMessage(""), "fallback"},
		{"config error", NewTemplateError("card-catalog"), "fallback"},
		{"not found", fmt.Errorf("select: %w", NewNotFoundError("product", "abc")), "product 'abc' not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err, "fallback"); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
			if (tt.want != "fallback") != IsUserFacing(tt.err) {
				t.Errorf("IsUserFacing() = %v disagrees with UserMessage", IsUserFacing(tt.err))
			}
		})
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "ctx") != nil {
		t.Error("Wrap(nil) should be nil")
	}
	err := Wrapf(ErrNotForSale, "adding %s", "p1")
	if err.Error() != "adding p1: product is not for sale" {
		t.Errorf("Wrapf() = %q", err.Error())
	}
	if !Is(err, ErrNotForSale) {
		t.Error("expected wrapped sentinel to match")
	}
}
