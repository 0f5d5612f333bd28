package query

import "context"

// Repository executes candidate queries. Implementations decide how clauses
// map onto their store; result order is whatever the store returns, the
// option layer never re-sorts.
type Repository interface {
	All(ctx context.Context, q Builder) ([]Record, error)
}
