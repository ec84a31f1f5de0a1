package model

import (
	"errors"
	"fmt"
)

// ErrVerificationMismatch is returned when the configuration read back after a
// write differs from what was sent.
var ErrVerificationMismatch = errors.New("stored advisor configuration does not match the submitted one")

// ErrThresholdNotSupported is returned when a low CPU threshold is sent for a
// resource group. Advisor accepts it for subscriptions only.
var ErrThresholdNotSupported = errors.New("low CPU threshold can only be set for a subscription")

// ErrUnexpectedResponse is returned together with the response when Advisor
// accepted a write but its reply could not be read.
var ErrUnexpectedResponse = errors.New("unexpected advisor configuration in response")

type ErrorKind int

const (
	UnknownError ErrorKind = iota
	AuthenticationError
	TransportError
	ValidationError
	AuthorizationError
	NotFoundError
)

func (k ErrorKind) String() string {
	switch k {
	case AuthenticationError:
		return "authentication"
	case TransportError:
		return "transport"
	case ValidationError:
		return "validation"
	case AuthorizationError:
		return "authorization"
	case NotFoundError:
		return "not found"
	default:
		return "unknown"
	}
}

// ConfigurationError tags an error returned by the identity or management layer
// with its failure class. The wrapped error is left untouched.
type ConfigurationError struct {
	Kind       ErrorKind
	StatusCode int
	ErrorCode  string
	Err        error
}

func (e *ConfigurationError) Error() string {
	if e.ErrorCode != "" {
		return fmt.Sprintf("%s error (%s): %v", e.Kind, e.ErrorCode, e.Err)
	}
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err carries a ConfigurationError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr) && cfgErr.Kind == kind
}
