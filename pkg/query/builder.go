// Package query defines the candidate-set query contract: an immutable
// builder, the Transform callback resource definitions use to constrain
// candidates, and the Repository seam that executes queries.
package query

import "github.com/goliatone/go-relationfield/pkg/render"

// Comparison operators understood by repositories.
const (
	OpEq       = "eq"
	OpNeq      = "neq"
	OpGt       = "gt"
	OpGte      = "gte"
	OpLt       = "lt"
	OpLte      = "lte"
	OpIn       = "in"
	OpContains = "contains"
)

// Sort directions.
const (
	DirAsc  = "asc"
	DirDesc = "desc"
)

// Where is a single field comparison.
type Where struct {
	Field    string
	Operator string
	Value    any
}

// Order is a single sort clause.
type Order struct {
	Field string
	Dir   string
}

// Predicate evaluates a record in-process. Repositories that compile queries
// down to a remote store may reject builders carrying predicates.
type Predicate func(Record) (bool, error)

// Builder is an immutable description of a candidate query. Chained calls
// return copies, so a base query can be handed to a Transform without the
// caller's value changing underneath it.
type Builder struct {
	collection string
	wheres     []Where
	orders     []Order
	predicates []Predicate
	limit      int
}

// From starts a query over every record of a collection.
func From(collection string) Builder {
	return Builder{collection: collection}
}

// Where appends a comparison clause.
func (b Builder) Where(field, operator string, value any) Builder {
	b.wheres = appendCopy(b.wheres, Where{Field: field, Operator: operator, Value: value})
	return b
}

// OrderBy appends a sort clause. Direction defaults to ascending.
func (b Builder) OrderBy(field, dir string) Builder {
	if dir == "" {
		dir = DirAsc
	}
	b.orders = appendCopy(b.orders, Order{Field: field, Dir: dir})
	return b
}

// Limit caps the number of returned records. Zero means no cap.
func (b Builder) Limit(n int) Builder {
	b.limit = n
	return b
}

// Filter appends an in-process predicate.
func (b Builder) Filter(pred Predicate) Builder {
	if pred == nil {
		return b
	}
	b.predicates = appendCopy(b.predicates, pred)
	return b
}

// Collection returns the collection the query targets.
func (b Builder) Collection() string { return b.collection }

// Wheres returns the comparison clauses in application order.
func (b Builder) Wheres() []Where { return b.wheres }

// Orders returns the sort clauses in application order.
func (b Builder) Orders() []Order { return b.orders }

// Predicates returns the in-process predicates in application order.
func (b Builder) Predicates() []Predicate { return b.predicates }

// LimitValue returns the configured cap, zero when uncapped.
func (b Builder) LimitValue() int { return b.limit }

// Transform rewrites a candidate query using per-request context. Resource
// definitions supply transforms to scope candidates to the current actor,
// parent record, or request parameters. Transforms must be pure: same inputs,
// same output, no side effects.
type Transform func(q Builder, rctx render.Context) Builder

func appendCopy[T any](src []T, extra T) []T {
	out := make([]T, len(src), len(src)+1)
	copy(out, src)
	return append(out, extra)
}
