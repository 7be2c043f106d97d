// Package rpc is the request/reply adapter between the gateway and the
// domain services. Each service exposes Get, Search and Add on
// <prefix>.<service>.<Method>; every reply is an envelope carrying either a
// result or a status.
package rpc

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Code is the status code carried on the wire
type Code string

const (
	CodeOK              Code = "OK"
	CodeNotFound        Code = "NOT_FOUND"
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeInternal        Code = "INTERNAL"

	// Raised by the client itself, never sent by a service
	CodeUnavailable      Code = "UNAVAILABLE"
	CodeDeadlineExceeded Code = "DEADLINE_EXCEEDED"
)

type Method string

const (
	MethodGet    Method = "Get"
	MethodSearch Method = "Search"
	MethodAdd    Method = "Add"
)

// Error is the typed failure of a call. Message is set by whoever raised it
// and is not guaranteed to be safe for end users.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc error: code = %s desc = %s", e.Code, e.Message)
}

func Errorf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the status code of err. Errors that did not come from
// this package are INTERNAL.
func CodeOf(err error) Code {
	if err == nil {
		return CodeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// Subject builds the NATS subject a method is served on
func Subject(prefix, service string, method Method) string {
	return prefix + "." + service + "." + string(method)
}

type envelope struct {
	Status *Error          `json:"status,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
}
