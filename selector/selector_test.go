package selector

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/cascata/arena"
)

func TestSpecificityWeights(t *testing.T) {
	a := arena.New()
	defer a.Release()

	tests := []struct {
		selector string
		expected int
	}{
		{"*", 0},
		{"a", SpecType},
		{".foo", SpecClass},
		{"#id", SpecID},
		{"%p", SpecClass},
		{"[href]", SpecAttribute},
		{"a:hover", SpecType + SpecClass},
		{"a::before", SpecType + SpecType},
		{"a.foo#id", SpecType + SpecClass + SpecID},
		{":not(#id)", SpecID},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			list := mustList(t, a, tt.selector)
			assert.Equal(t, tt.expected, list.Specificity())
		})
	}
}

func TestSpecificityHomomorphism(t *testing.T) {
	a := arena.New()
	defer a.Release()

	// specificity(list) = max over alternatives
	list := mustList(t, a, "a, .foo, #id, a b.c")
	max := 0
	for _, m := range list.Members {
		if s := m.Specificity(); s > max {
			max = s
		}
	}
	assert.Equal(t, max, list.Specificity())
	assert.Equal(t, SpecID, list.Specificity())

	// specificity(complex) = head + tail
	chain := mustList(t, a, "a b.c").Members[0]
	assert.Equal(t, chain.Head.Specificity()+chain.Tail.Specificity(), chain.Specificity())
}

func TestEqualityModes(t *testing.T) {
	a := arena.New()
	defer a.Release()

	ab := mustList(t, a, ".a.b").Members[0].Head
	ba := mustList(t, a, ".b.a").Members[0].Head

	// Order-dependent equality tells them apart, the set-like mode
	// used by extend does not.
	assert.False(t, ab.Equal(ba))
	assert.True(t, ab.EqualSet(ba))
	assert.Equal(t, ab.Hash(), ba.Hash())
}

func TestCompoundMinus(t *testing.T) {
	a := arena.New()
	defer a.Release()

	abc := mustList(t, a, "a.b.c").Members[0].Head
	b := mustList(t, a, ".b").Members[0].Head
	assert.Equal(t, "a.c", abc.Minus(a, b).String())

	all := abc.Minus(a, abc)
	assert.Equal(t, 0, all.Len())
}

func TestCompoundSubsetOf(t *testing.T) {
	a := arena.New()
	defer a.Release()

	ab := mustList(t, a, ".a.b").Members[0].Head
	abc := mustList(t, a, ".a.b.c").Members[0].Head
	assert.True(t, ab.SubsetOf(abc))
	assert.False(t, abc.SubsetOf(ab))
	assert.True(t, ab.SubsetOf(ab))
}

func TestSourceSet(t *testing.T) {
	a := arena.New()
	defer a.Release()

	x := mustList(t, a, ".x").Members[0]
	y := mustList(t, a, ".y").Members[0]

	s := NewSourceSet()
	s.Add(x)
	assert.True(t, s.Contains(x))
	assert.False(t, s.Contains(y))

	other := NewSourceSet()
	other.Add(y)
	other.Union(s)
	assert.Equal(t, 2, other.Len())
	assert.True(t, s.SubsetOf(other))
	assert.False(t, other.SubsetOf(s))
}

func TestListInvisible(t *testing.T) {
	a := arena.New()
	defer a.Release()

	assert.True(t, mustList(t, a, "%p").IsInvisible())
	assert.True(t, mustList(t, a, "%p, %q").IsInvisible())
	assert.False(t, mustList(t, a, "%p, .x").IsInvisible())
	assert.False(t, mustList(t, a, ".x").IsInvisible())
}
