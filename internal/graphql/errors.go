package graphql

import (
	"errors"

	gqlerrors "github.com/graph-gophers/graphql-go/errors"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// Extension codes, the only classification a client sees
const (
	CodeBadUserInput       = "BAD_USER_INPUT"
	CodeNotFound           = "NOT_FOUND"
	CodeInternal           = "INTERNAL_SERVER_ERROR"
	CodeValidationFailed   = "GRAPHQL_VALIDATION_FAILED"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	msgInternalServerError = "Internal server error"
)

// fieldError is what resolvers return. graphql-go copies Extensions onto
// the response error and places it at the failing field.
type fieldError struct {
	code    string
	message string
}

func (e *fieldError) Error() string { return e.message }

func (e *fieldError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

func newError(code, message string) *gqlerrors.QueryError {
	return &gqlerrors.QueryError{
		Message:    message,
		Extensions: map[string]interface{}{"code": code},
	}
}

// fromParser converts a gqlparser validation error
func fromParser(err *gqlerror.Error) *gqlerrors.QueryError {
	out := newError(CodeValidationFailed, err.Message)
	for _, loc := range err.Locations {
		out.Locations = append(out.Locations, gqlerrors.Location{Line: loc.Line, Column: loc.Column})
	}
	return out
}

// requestError converts variable coercion failures
func requestError(err error) *gqlerrors.QueryError {
	var gqlErr *gqlerror.Error
	if errors.As(err, &gqlErr) {
		return fromParser(gqlErr)
	}
	return newError(CodeValidationFailed, err.Error())
}

// sanitize replaces anything a resolver did not classify, such as a
// recovered panic, with a generic internal error
func sanitize(err *gqlerrors.QueryError) {
	if _, ok := err.Extensions["code"]; ok {
		return
	}
	err.Message = msgInternalServerError
	err.Extensions = map[string]interface{}{"code": CodeInternal}
}
