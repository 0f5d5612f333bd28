package query

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MemoryRepository is an in-process Repository backed by seeded records. It
// exists for tests, examples, and hosts whose candidate sets are small enough
// to hold in memory; insertion order is preserved unless the query sorts.
type MemoryRepository struct {
	mu          sync.RWMutex
	collections map[string][]Record
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{collections: make(map[string][]Record)}
}

// Seed appends records to a collection.
func (m *MemoryRepository) Seed(collection string, records ...Record) {
	if m == nil || collection == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections[collection] = append(m.collections[collection], records...)
}

// All applies the builder's clauses against the seeded collection.
func (m *MemoryRepository) All(ctx context.Context, q Builder) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("query: memory repository is nil")
	}

	m.mu.RLock()
	source := m.collections[q.Collection()]
	records := make([]Record, len(source))
	copy(records, source)
	m.mu.RUnlock()

	matched := make([]Record, 0, len(records))
	for _, rec := range records {
		ok, err := matches(rec, q)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, rec)
		}
	}

	if orders := q.Orders(); len(orders) > 0 {
		sort.SliceStable(matched, func(i, j int) bool {
			return lessByOrders(matched[i], matched[j], orders)
		})
	}

	if limit := q.LimitValue(); limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func matches(rec Record, q Builder) (bool, error) {
	for _, clause := range q.Wheres() {
		value, _ := rec.Attr(clause.Field)
		ok, err := evalWhere(value, clause)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	for _, pred := range q.Predicates() {
		ok, err := pred(rec)
		if err != nil {
			return false, fmt.Errorf("query: evaluate predicate: %w", err)
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func evalWhere(value any, clause Where) (bool, error) {
	switch clause.Operator {
	case OpEq, "":
		return compare(value, clause.Value) == 0, nil
	case OpNeq:
		return compare(value, clause.Value) != 0, nil
	case OpGt:
		return compare(value, clause.Value) > 0, nil
	case OpGte:
		return compare(value, clause.Value) >= 0, nil
	case OpLt:
		return compare(value, clause.Value) < 0, nil
	case OpLte:
		return compare(value, clause.Value) <= 0, nil
	case OpIn:
		options, ok := clause.Value.([]any)
		if !ok {
			return false, fmt.Errorf("query: operator %q needs a []any value, got %T", OpIn, clause.Value)
		}
		for _, option := range options {
			if compare(value, option) == 0 {
				return true, nil
			}
		}
		return false, nil
	case OpContains:
		haystack, _ := value.(string)
		needle, _ := clause.Value.(string)
		return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle)), nil
	default:
		return false, fmt.Errorf("query: unsupported operator %q", clause.Operator)
	}
}

func lessByOrders(a, b Record, orders []Order) bool {
	for _, order := range orders {
		left, _ := a.Attr(order.Field)
		right, _ := b.Attr(order.Field)
		cmp := compare(left, right)
		if cmp == 0 {
			continue
		}
		if order.Dir == DirDesc {
			return cmp > 0
		}
		return cmp < 0
	}
	return false
}

// compare orders two attribute values: numerically when both coerce to
// numbers, lexically otherwise. Nil sorts first.
func compare(a, b any) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	if fa, okA := toFloat(a); okA {
		if fb, okB := toFloat(b); okB {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			default:
				return 0
			}
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}
