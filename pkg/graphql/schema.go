package graphql

import (
	"github.com/graphql-go/graphql"
)

// NewSchema wraps a root query object into an executable schema. The
// application schema (items, bills, reports) lives in app/graphql.
func NewSchema(query *graphql.Object) (graphql.Schema, error) {
	return graphql.NewSchema(graphql.SchemaConfig{
		Query: query,
	})
}
