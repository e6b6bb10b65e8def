package postgen

import (
	"errors"
	"fmt"
)

// Kind classifies a failed generation call.
type Kind int

const (
	KindUnknown Kind = iota
	KindConfigurationMissing
	KindProviderError
	KindEmptyResult
)

func (k Kind) String() string {
	switch k {
	case KindConfigurationMissing:
		return "configuration_missing"
	case KindProviderError:
		return "provider_error"
	case KindEmptyResult:
		return "empty_result"
	default:
		return "unknown"
	}
}

const (
	MsgKeyNotConfigured = "provider API key not configured"
	MsgNoImage          = "no image generated"
)

// Error is the classified failure returned by every generation call.
// Status is the provider's HTTP status, or 0 when no response was received.
type Error struct {
	Kind    Kind
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrConfigurationMissing = &Error{Kind: KindConfigurationMissing, Message: MsgKeyNotConfigured}
	ErrProviderError        = &Error{Kind: KindProviderError, Message: "provider error"}
	ErrEmptyResult          = &Error{Kind: KindEmptyResult, Message: MsgNoImage}
)

// KindOf reports the classification of err, or KindUnknown for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// ConfigurationMissing returns the error for an unresolved API key.
func ConfigurationMissing() *Error {
	return &Error{Kind: KindConfigurationMissing, Message: MsgKeyNotConfigured}
}

// ProviderError returns the error for a non-success provider response. An empty
// message is replaced with "Erro <status>".
func ProviderError(status int, message string) *Error {
	if message == "" {
		message = fmt.Sprintf("Erro %d", status)
	}
	return &Error{Kind: KindProviderError, Message: message, Status: status}
}

// EmptyResult returns the error for a successful call without a usable payload.
func EmptyResult(message string) *Error {
	return &Error{Kind: KindEmptyResult, Message: message}
}
