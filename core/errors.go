package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a Gauss failure. The orchestration layer never
// branches on provider specifics; it only needs to distinguish
// configuration mistakes, execution failures and structural problems, plus
// whether a failure is worth retrying at a higher layer.
type ErrorKind string

const (
	// ErrKindConfig marks invalid construction input (empty team, unknown
	// dependency reference, duplicate identifier).
	ErrKindConfig ErrorKind = "config"
	// ErrKindAgent marks a unit of work failing during execution.
	ErrKindAgent ErrorKind = "agent"
	// ErrKindProvider marks a transient upstream provider failure.
	ErrKindProvider ErrorKind = "provider"
	// ErrKindRateLimited marks a provider rate limit rejection.
	ErrKindRateLimited ErrorKind = "rate_limited"
	// ErrKindAuth marks an authentication failure; never retryable.
	ErrKindAuth ErrorKind = "auth"
	// ErrKindPlugin marks a plugin lifecycle failure.
	ErrKindPlugin ErrorKind = "plugin"
	// ErrKindCycle marks a circular dependency detected in a workflow run
	// or during plugin initialization.
	ErrKindCycle ErrorKind = "cycle"
	// ErrKindInternal marks an unexpected library-internal failure.
	ErrKindInternal ErrorKind = "internal"
)

// Error is the typed failure value returned by every Gauss operation.
// Subject names the unit, step, plugin or provider that raised the error.
type Error struct {
	Kind    ErrorKind
	Subject string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Subject != "" {
		return fmt.Sprintf("%s error in %q: %s", e.Kind, e.Subject, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is / errors.As chains.
func (e *Error) Unwrap() error { return e.Err }

// Retryable reports whether a higher layer may reasonably retry the failed
// operation. Only transient provider conditions qualify.
func (e *Error) Retryable() bool {
	return e.Kind == ErrKindProvider || e.Kind == ErrKindRateLimited
}

// IsKind reports whether err is (or wraps) a Gauss Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ge *Error
	return errors.As(err, &ge) && ge.Kind == kind
}

// NewConfigError creates a configuration error for the named subject.
func NewConfigError(subject, format string, args ...any) *Error {
	return &Error{Kind: ErrKindConfig, Subject: subject, Message: fmt.Sprintf(format, args...)}
}

// NewAgentError wraps a unit-of-work failure with its identity.
func NewAgentError(subject string, err error) *Error {
	return &Error{Kind: ErrKindAgent, Subject: subject, Message: err.Error(), Err: err}
}

// NewProviderError creates a transient provider failure.
func NewProviderError(provider string, err error) *Error {
	return &Error{Kind: ErrKindProvider, Subject: provider, Message: err.Error(), Err: err}
}

// NewRateLimitedError creates a rate-limit rejection for the named provider.
func NewRateLimitedError(provider string, err error) *Error {
	return &Error{Kind: ErrKindRateLimited, Subject: provider, Message: err.Error(), Err: err}
}

// NewAuthError creates an authentication failure for the named provider.
func NewAuthError(provider string, err error) *Error {
	return &Error{Kind: ErrKindAuth, Subject: provider, Message: err.Error(), Err: err}
}

// NewPluginError creates a plugin lifecycle failure.
func NewPluginError(plugin string, err error) *Error {
	return &Error{Kind: ErrKindPlugin, Subject: plugin, Message: err.Error(), Err: err}
}

// NewCycleError creates a circular-dependency error. Subject carries the
// component ("workflow", "plugin registry"); message lists the stuck names.
func NewCycleError(subject, format string, args ...any) *Error {
	return &Error{Kind: ErrKindCycle, Subject: subject, Message: fmt.Sprintf(format, args...)}
}

// NewInternalError creates an internal error.
func NewInternalError(format string, args ...any) *Error {
	return &Error{Kind: ErrKindInternal, Message: fmt.Sprintf(format, args...)}
}
