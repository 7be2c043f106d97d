// Package apperror classifies gateway errors so both translators map them
// the same way: NotFound and InvalidInput are client facing, everything else
// collapses to a generic server error.
package apperror

import (
	"errors"
	"fmt"
)

// Kind is the error taxonomy shared by the REST and GraphQL translators
type Kind int

const (
	// KindInternal is the zero value so unclassified errors are never client facing
	KindInternal Kind = iota
	KindNotFound
	KindInvalidInput
	KindUnavailable
	KindPublishFailure
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidInput:
		return "invalid_input"
	case KindUnavailable:
		return "backend_unavailable"
	case KindPublishFailure:
		return "publish_failure"
	default:
		return "internal"
	}
}

// Error carries a Kind plus where it happened. Message is safe to log;
// translators decide separately what callers see.
type Error struct {
	Kind      Kind
	Component string
	Operation string
	Message   string
	Err       error
}

func (e *Error) Error() string {
	prefix := e.Component
	if e.Operation != "" {
		prefix += "." + e.Operation
	}
	switch {
	case e.Err != nil && e.Message != "":
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", prefix, e.Err)
	default:
		return fmt.Sprintf("%s: %s", prefix, e.Message)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrap(kind Kind, err error, component, operation, message string) *Error {
	return &Error{
		Kind:      kind,
		Component: component,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

func WrapNotFound(err error, component, operation, message string) error {
	return wrap(KindNotFound, err, component, operation, message)
}

func WrapInvalid(err error, component, operation, message string) error {
	return wrap(KindInvalidInput, err, component, operation, message)
}

func WrapInternal(err error, component, operation, message string) error {
	return wrap(KindInternal, err, component, operation, message)
}

func WrapUnavailable(err error, component, operation, message string) error {
	return wrap(KindUnavailable, err, component, operation, message)
}

// WrapPublish marks a write that persisted but whose event was not delivered
func WrapPublish(err error, component, operation, message string) error {
	return wrap(KindPublishFailure, err, component, operation, message)
}

// KindOf returns the outermost classification, KindInternal if none
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == KindNotFound
}

func IsInvalid(err error) bool {
	return err != nil && KindOf(err) == KindInvalidInput
}

func IsUnavailable(err error) bool {
	return err != nil && KindOf(err) == KindUnavailable
}

func IsPublishFailure(err error) bool {
	return err != nil && KindOf(err) == KindPublishFailure
}
