package value

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestMapLastWinsKeepsFirstKeyPosition(t *testing.T) {
	m := NewMap(state())
	m.Put(NewStringConst(state(), "a"), NewStringConst(state(), "1"))
	m.Put(NewStringConst(state(), "b"), NewStringConst(state(), "2"))
	m.Put(NewStringConst(state(), "a"), NewStringConst(state(), "3"))

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, "a", m.Keys()[0].String())
	got, ok := m.Get(NewStringConst(state(), "a"))
	assert.True(t, ok)
	assert.Equal(t, "3", got.String())

	// The duplicate is remembered so the evaluator can warn.
	assert.NotZero(t, m.DuplicateKey)
	assert.Equal(t, "a", m.DuplicateKey.String())
}

func TestMapEqualityIgnoresInsertionOrder(t *testing.T) {
	a := NewMap(state())
	a.Put(NewStringConst(state(), "x"), NewStringConst(state(), "1"))
	a.Put(NewStringConst(state(), "y"), NewStringConst(state(), "2"))

	b := NewMap(state())
	b.Put(NewStringConst(state(), "y"), NewStringConst(state(), "2"))
	b.Put(NewStringConst(state(), "x"), NewStringConst(state(), "1"))

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())

	b.Put(NewStringConst(state(), "z"), NewStringConst(state(), "3"))
	assert.False(t, a.Equal(b))
}

func TestMapString(t *testing.T) {
	m := NewMap(state())
	m.Put(NewStringConst(state(), "a"), NewStringConst(state(), "1"))
	m.Put(NewStringConst(state(), "b"), NewStringConst(state(), "2"))
	assert.Equal(t, "(a: 1, b: 2)", m.String())
}
