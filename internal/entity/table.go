package entity

// Table is a container for one component type. Each component kind lives
// in its own table keyed by entity identity, so entity "kinds" are just
// sets of attached components rather than a type hierarchy.
//
// The simulation is single-threaded by design (one mutator at a time), so
// tables carry no locking.
type Table[T any] struct {
	values map[ID]T
	order  []ID // entities in attachment order
}

// NewTable creates an empty component table.
func NewTable[T any]() *Table[T] {
	return &Table[T]{
		values: make(map[ID]T),
		order:  make([]ID, 0, 64),
	}
}

// Get retrieves the component for an entity. The second result is false
// when the component is absent; callers must check it.
func (t *Table[T]) Get(id ID) (T, bool) {
	v, ok := t.values[id]
	return v, ok
}

// Set attaches or updates the component for an entity.
func (t *Table[T]) Set(id ID, v T) {
	if _, exists := t.values[id]; !exists {
		t.order = append(t.order, id)
	}
	t.values[id] = v
}

// Has reports whether the entity carries this component.
func (t *Table[T]) Has(id ID) bool {
	_, ok := t.values[id]
	return ok
}

// Remove detaches the component from an entity.
func (t *Table[T]) Remove(id ID) {
	if _, exists := t.values[id]; !exists {
		return
	}
	delete(t.values, id)
	for i, e := range t.order {
		if e == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// IDs returns the entities carrying this component in attachment order.
// The order is stable across a turn; mutation only happens between
// resolver calls. The returned slice is a copy.
func (t *Table[T]) IDs() []ID {
	out := make([]ID, len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the number of entities carrying this component.
func (t *Table[T]) Len() int {
	return len(t.values)
}

// remove implements the untyped hook Store.Destroy uses to clear every
// table atomically.
func (t *Table[T]) remove(id ID) {
	t.Remove(id)
}
