package value

import (
	"strings"

	cascata "github.com/shibukawa/cascata"
)

// Map is an insertion-ordered key/value container. A duplicate key
// keeps its first position but takes the last value; the first
// duplicate observed is remembered so the evaluator can warn.
type Map struct {
	base
	keys   []Value
	values []Value

	// DuplicateKey is the first key that occurred more than once while
	// the map was built, or nil.
	DuplicateKey Value
}

// NewMap builds an empty map value.
func NewMap(state cascata.ParserState) *Map {
	return &Map{base: base{state: state}}
}

func (m *Map) Kind() Kind { return KindMap }

// Put inserts or replaces an entry. The key keeps its first position;
// the value is last-wins.
func (m *Map) Put(key, val Value) {
	for i, k := range m.keys {
		if k.Equal(key) {
			m.values[i] = val
			if m.DuplicateKey == nil {
				m.DuplicateKey = key
			}
			return
		}
	}
	m.keys = append(m.keys, key)
	m.values = append(m.values, val)
}

// Get looks a key up by structural equality.
func (m *Map) Get(key Value) (Value, bool) {
	for i, k := range m.keys {
		if k.Equal(key) {
			return m.values[i], true
		}
	}
	return nil, false
}

// Len reports the number of entries.
func (m *Map) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order.
func (m *Map) Keys() []Value { return m.keys }

// Values returns the values in key order.
func (m *Map) Values() []Value { return m.values }

// Equal is set equality of entries; insertion order does not matter.
func (m *Map) Equal(other Value) bool {
	o, ok := other.(*Map)
	if !ok || o.Len() != m.Len() {
		return false
	}
	for i, k := range m.keys {
		v, found := o.Get(k)
		if !found || !v.Equal(m.values[i]) {
			return false
		}
	}
	return true
}

// Hash folds entry hashes order-independently so it agrees with Equal.
func (m *Map) Hash() uint64 {
	var entries uint64
	for i, k := range m.keys {
		entries ^= hashCombine(k.Hash(), m.values[i].Hash())
	}
	return hashCombine(uint64(KindMap), entries)
}

// Invisible reports whether the map is empty.
func (m *Map) Invisible() bool { return len(m.keys) == 0 }

func (m *Map) String() string {
	parts := make([]string, 0, len(m.keys))
	for i, k := range m.keys {
		parts = append(parts, k.String()+": "+m.values[i].String())
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// SetDelayed propagates to every key and value.
func (m *Map) SetDelayed(d bool) {
	m.base.SetDelayed(d)
	for i, k := range m.keys {
		k.SetDelayed(d)
		m.values[i].SetDelayed(d)
	}
}
