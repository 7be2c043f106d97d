// Package graphql serves the catalog over GraphQL. Documents are checked
// against the schema with gqlparser before graphql-go executes them; every
// root field resolves with exactly one catalog call.
package graphql

import (
	_ "embed"
	"fmt"

	graphqlgo "github.com/graph-gophers/graphql-go"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

//go:embed schema.graphql
var schemaSDL string

// LoadSchema parses and validates the embedded SDL
func LoadSchema() (*ast.Schema, error) {
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: schemaSDL})
	if err != nil {
		return nil, fmt.Errorf("load graphql schema: %s", err.Error())
	}
	return schema, nil
}

// executableSchema binds the SDL to the resolver methods. It fails when a
// field has no matching method or the Go types disagree with the schema.
func executableSchema(resolver *Resolver) (*graphqlgo.Schema, error) {
	return graphqlgo.ParseSchema(schemaSDL, resolver,
		graphqlgo.MaxParallelism(4),
		graphqlgo.DisableIntrospection(),
	)
}
