package selector

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	cascata "github.com/shibukawa/cascata"
	"github.com/shibukawa/cascata/arena"
)

func TestParentizeImplicitDescendant(t *testing.T) {
	a := arena.New()
	defer a.Release()

	// a { b { ... } } resolves to "a b"
	child := mustList(t, a, "b")
	parent := mustList(t, a, "a")
	result, err := Parentize(a, child, parent)
	assert.NoError(t, err)
	assert.Equal(t, "a b", result.String())
}

func TestParentizeCompoundMerge(t *testing.T) {
	a := arena.New()
	defer a.Release()

	// a { &:hover { ... } } resolves to "a:hover"
	child := mustList(t, a, "&:hover")
	parent := mustList(t, a, "a")
	result, err := Parentize(a, child, parent)
	assert.NoError(t, err)
	assert.Equal(t, "a:hover", result.String())
}

func TestParentizeLoneAmpersand(t *testing.T) {
	a := arena.New()
	defer a.Release()

	child := mustList(t, a, "& b")
	parent := mustList(t, a, "x > y")
	result, err := Parentize(a, child, parent)
	assert.NoError(t, err)
	assert.Equal(t, "x > y b", result.String())
}

func TestParentizeDistributesOverCommas(t *testing.T) {
	a := arena.New()
	defer a.Release()

	child := mustList(t, a, "&:hover, .active &")
	parent := mustList(t, a, "a, b")
	result, err := Parentize(a, child, parent)
	assert.NoError(t, err)
	assert.Equal(t, "a:hover, b:hover, .active a, .active b", result.String())
}

func TestParentizeWithoutReferencesPassesThrough(t *testing.T) {
	a := arena.New()
	defer a.Release()

	child := mustList(t, a, "a > b")
	result, err := Parentize(a, child, nil)
	assert.NoError(t, err)
	assert.Equal(t, child, result)
}

func TestParentizeTopLevelReferenceFails(t *testing.T) {
	a := arena.New()
	defer a.Release()

	child := mustList(t, a, "&:hover")
	_, err := Parentize(a, child, nil)
	assert.Error(t, err)
	assert.IsError(t, err, cascata.ErrTopLevelParentReference)
}

func TestParentizeWrappedInner(t *testing.T) {
	a := arena.New()
	defer a.Release()

	// ":not(&)" re-parentizes at its own site.
	child := mustList(t, a, "b:not(&)")
	parent := mustList(t, a, "a")
	result, err := Parentize(a, child, parent)
	assert.NoError(t, err)
	assert.Equal(t, "a b:not(a)", result.String())
}

func TestParentizeFixedPoint(t *testing.T) {
	a := arena.New()
	defer a.Release()

	// After parentize, no "&" remains anywhere.
	for _, input := range []string{"&", "&:hover", "& b", "b &", "&.x > &.y", "b:not(&)"} {
		child := mustList(t, a, input)
		parent := mustList(t, a, "a, .c")
		result, err := Parentize(a, child, parent)
		assert.NoError(t, err)
		assert.False(t, result.HasParentRef(), "parent reference survived in %q", result)
	}
}

func TestParentizePreservesCombinators(t *testing.T) {
	a := arena.New()
	defer a.Release()

	child := mustList(t, a, "& > b")
	parent := mustList(t, a, "a")
	result, err := Parentize(a, child, parent)
	assert.NoError(t, err)
	assert.Equal(t, "a > b", result.String())
}
