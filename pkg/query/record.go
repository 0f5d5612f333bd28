package query

// Record is the minimal view of a stored row the relation field needs:
// an identifier plus named attribute access. Missing attributes report
// ok=false instead of failing so presentation can degrade gracefully.
type Record interface {
	PrimaryKey() any
	Attr(name string) (any, bool)
}

// MapRecord adapts a plain map into a Record. The identifier lives under the
// "id" key.
type MapRecord map[string]any

// PrimaryKey returns the value stored under "id", or nil.
func (m MapRecord) PrimaryKey() any {
	return m["id"]
}

// Attr returns the named attribute and whether it exists.
func (m MapRecord) Attr(name string) (any, bool) {
	value, ok := m[name]
	return value, ok
}

// Attrs exposes the underlying map so expression filters can bind the whole
// record. Callers must treat the result as read-only.
func (m MapRecord) Attrs() map[string]any {
	return m
}
