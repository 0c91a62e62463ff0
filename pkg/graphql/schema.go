// Package graphql wraps graphql-go schema construction and query execution
// for Velora's read-only catalog endpoint.
package graphql

import (
	"context"

	"github.com/graphql-go/graphql"
)

// NewSchema creates a GraphQL schema from a root query object.
func NewSchema(query *graphql.Object) (graphql.Schema, error) {
	return graphql.NewSchema(graphql.SchemaConfig{
		Query: query,
	})
}

// Do executes a query against schema with optional variables.
func Do(ctx context.Context, schema graphql.Schema, query string, variables map[string]interface{}) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  query,
		VariableValues: variables,
		Context:        ctx,
	})
}
