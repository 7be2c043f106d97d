package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	graphqlgo "github.com/graph-gophers/graphql-go"
	gqlerrors "github.com/graph-gophers/graphql-go/errors"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/validator"
)

// Request is the standard GraphQL over HTTP body
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName,omitempty"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

// Response omits data when the document was rejected before execution.
// Status is the HTTP status the handler should answer with.
type Response struct {
	Data   json.RawMessage         `json:"data,omitempty"`
	Errors []*gqlerrors.QueryError `json:"errors,omitempty"`
	Status int                     `json:"-"`
}

// Executed reports whether the operation ran, as opposed to being rejected
func (r *Response) Executed() bool {
	return r.Data != nil
}

type Executor struct {
	schema *ast.Schema
	exec   *graphqlgo.Schema
}

// NewExecutor panics when the resolver does not satisfy the embedded SDL
func NewExecutor(schema *ast.Schema, resolver *Resolver) *Executor {
	exec, err := executableSchema(resolver)
	if err != nil {
		panic(fmt.Sprintf("graphql: bind resolver: %v", err))
	}
	return &Executor{schema: schema, exec: exec}
}

// Execute runs one request. Mutations are refused unless allowMutations is
// set, GET requests must not change state.
func (e *Executor) Execute(ctx context.Context, req Request, allowMutations bool) *Response {
	doc, errs := gqlparser.LoadQuery(e.schema, req.Query)
	if len(errs) > 0 {
		out := make([]*gqlerrors.QueryError, 0, len(errs))
		for _, err := range errs {
			out = append(out, fromParser(err))
		}
		return &Response{Errors: out, Status: http.StatusBadRequest}
	}

	op := doc.Operations.ForName(req.OperationName)
	if op == nil {
		msg := "operation name is required when the document has several operations"
		if req.OperationName != "" {
			msg = fmt.Sprintf("unknown operation %q", req.OperationName)
		}
		return reject(http.StatusBadRequest, newError(CodeValidationFailed, msg))
	}

	switch op.Operation {
	case ast.Query:
	case ast.Mutation:
		if !allowMutations {
			return reject(http.StatusMethodNotAllowed, newError(CodeMethodNotAllowed, "mutations must be sent with POST"))
		}
	default:
		return reject(http.StatusBadRequest, newError(CodeValidationFailed, "subscriptions are not supported"))
	}

	if _, err := validator.VariableValues(e.schema, op, req.Variables); err != nil {
		return reject(http.StatusBadRequest, requestError(err))
	}
	if selectsIntrospection(doc, op.SelectionSet) {
		return reject(http.StatusBadRequest, newError(CodeValidationFailed, "introspection is not supported"))
	}

	res := e.exec.Exec(ctx, req.Query, op.Name, req.Variables)

	data := res.Data
	if len(data) == 0 {
		data = json.RawMessage("null")
	}
	for _, err := range res.Errors {
		sanitize(err)
	}
	return &Response{Data: data, Errors: res.Errors, Status: http.StatusOK}
}

func reject(status int, err *gqlerrors.QueryError) *Response {
	return &Response{Errors: []*gqlerrors.QueryError{err}, Status: status}
}

// selectsIntrospection looks for __schema or __type among the root fields,
// following fragments
func selectsIntrospection(doc *ast.QueryDocument, set ast.SelectionSet) bool {
	return walkRoot(doc, set, map[string]bool{})
}

func walkRoot(doc *ast.QueryDocument, set ast.SelectionSet, visited map[string]bool) bool {
	for _, sel := range set {
		switch s := sel.(type) {
		case *ast.Field:
			if s.Name == "__schema" || s.Name == "__type" {
				return true
			}
		case *ast.InlineFragment:
			if walkRoot(doc, s.SelectionSet, visited) {
				return true
			}
		case *ast.FragmentSpread:
			if visited[s.Name] {
				continue
			}
			visited[s.Name] = true
			frag := s.Definition
			if frag == nil {
				frag = doc.Fragments.ForName(s.Name)
			}
			if frag != nil && walkRoot(doc, frag.SelectionSet, visited) {
				return true
			}
		}
	}
	return false
}
