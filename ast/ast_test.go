package ast

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	cascata "github.com/shibukawa/cascata"
	"github.com/shibukawa/cascata/arena"
	"github.com/shibukawa/cascata/selector"
	"github.com/shibukawa/cascata/value"
)

func state() cascata.ParserState {
	return cascata.NewParserState("test.scss", cascata.Position{}, cascata.Offset{})
}

func sel(t *testing.T, a *arena.Arena, input string) *selector.List {
	t.Helper()
	list, err := selector.ParseList(a, "test.scss", input)
	assert.NoError(t, err)
	return list
}

func TestBlockCumulativeFlags(t *testing.T) {
	a := arena.New()
	defer a.Release()

	b := NewBlock(a, state())
	assert.False(t, b.HasHoistable)
	assert.False(t, b.HasNonHoistable)

	b.Append(NewDeclaration(a, state(), value.NewStringConst(state(), "color"), value.NewStringConst(state(), "red")))
	assert.False(t, b.HasHoistable)
	assert.True(t, b.HasNonHoistable)

	b.Append(NewRuleset(a, state(), sel(t, a, "a"), NewBlock(a, state())))
	assert.True(t, b.HasHoistable)
	assert.True(t, b.HasNonHoistable)
}

func TestStatementTraits(t *testing.T) {
	a := arena.New()
	defer a.Release()

	rule := NewRuleset(a, state(), sel(t, a, "a"), NewBlock(a, state()))
	media := NewMediaBlock(a, state(), value.NewStringConst(state(), "screen"), NewBlock(a, state()))
	supports := NewSupportsBlock(a, state(), value.NewStringConst(state(), "(display: flex)"), NewBlock(a, state()))
	decl := NewDeclaration(a, state(), value.NewStringConst(state(), "color"), value.NewStringConst(state(), "red"))

	assert.True(t, rule.Hoistable())
	assert.False(t, rule.Bubbles())
	assert.True(t, media.Hoistable())
	assert.True(t, media.Bubbles())
	assert.True(t, supports.Bubbles())
	assert.False(t, decl.Hoistable())
}

func TestAtRuleBubbling(t *testing.T) {
	a := arena.New()
	defer a.Release()

	tests := []struct {
		keyword  string
		expected bool
	}{
		{"@media", true},
		{"@keyframes", true},
		{"@-webkit-keyframes", true},
		{"@-moz-keyframes", true},
		{"@font-face", false},
		{"@page", false},
	}
	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			r := NewAtRule(a, state(), tt.keyword)
			assert.Equal(t, tt.expected, r.Bubbles())
		})
	}
}

func TestInvisibility(t *testing.T) {
	a := arena.New()
	defer a.Release()

	// A placeholder-only ruleset is invisible.
	placeholder := NewRuleset(a, state(), sel(t, a, "%p"), declBlock(a))
	assert.True(t, placeholder.Invisible())

	visible := NewRuleset(a, state(), sel(t, a, ".x"), declBlock(a))
	assert.False(t, visible.Invisible())

	// A declaration whose value is null is invisible, and a media
	// block of invisible children is too.
	nullDecl := NewDeclaration(a, state(), value.NewStringConst(state(), "color"), value.NewNull(state()))
	assert.True(t, nullDecl.Invisible())

	body := NewBlock(a, state())
	body.Append(nullDecl)
	media := NewMediaBlock(a, state(), value.NewStringConst(state(), "screen"), body)
	assert.True(t, media.Invisible())
}

func declBlock(a *arena.Arena) *Block {
	b := NewBlock(a, state())
	b.Append(NewDeclaration(a, state(), value.NewStringConst(state(), "color"), value.NewStringConst(state(), "red")))
	return b
}

func TestParameterInvariants(t *testing.T) {
	params := NewParameters(state())

	assert.NoError(t, params.Add(NewParameter(state(), "$a", nil, false)))
	assert.NoError(t, params.Add(NewParameter(state(), "$b", value.NewStringConst(state(), "10"), false)))

	// Required after optional is rejected.
	err := params.Add(NewParameter(state(), "$c", nil, false))
	assert.Error(t, err)
	assert.IsError(t, err, cascata.ErrRequiredAfterOptional)

	// A rest parameter must not carry a default.
	err = params.Add(NewParameter(state(), "$rest", value.NewStringConst(state(), "x"), true))
	assert.Error(t, err)
	assert.IsError(t, err, cascata.ErrDefaultRestParameter)

	assert.NoError(t, params.Add(NewParameter(state(), "$rest", nil, true)))
	assert.True(t, params.HasRest())
}

func TestArgumentInvariants(t *testing.T) {
	args := NewArgumentList(state())

	assert.NoError(t, args.Add(NewArgument(state(), value.NewStringConst(state(), "1"), "", false)))
	assert.NoError(t, args.Add(NewArgument(state(), value.NewStringConst(state(), "2"), "$named", false)))

	err := args.Add(NewArgument(state(), value.NewStringConst(state(), "3"), "$rest", true))
	assert.Error(t, err)
	assert.IsError(t, err, cascata.ErrNamedRestArgument)

	assert.NoError(t, args.Add(NewArgument(state(), value.NewStringConst(state(), "3"), "", true)))
	assert.Equal(t, 3, args.Len())
}

func TestAtRootExclude(t *testing.T) {
	// (without: media) strips media wrappers only.
	without := NewAtRootExpr(state(), "without", []string{"media"})
	assert.True(t, without.Exclude("media"))
	assert.False(t, without.Exclude("rule"))
	assert.False(t, without.Exclude("supports"))

	// (with: media) keeps media, strips everything else.
	with := NewAtRootExpr(state(), "with", []string{"media"})
	assert.False(t, with.Exclude("media"))
	assert.True(t, with.Exclude("rule"))
	assert.True(t, with.Exclude("supports"))

	// "all" covers every wrapper; keyframes variants group together.
	all := NewAtRootExpr(state(), "without", []string{"all"})
	assert.True(t, all.Exclude("media"))
	assert.True(t, all.Exclude("rule"))

	kf := NewAtRootExpr(state(), "without", []string{"keyframes"})
	assert.True(t, kf.Exclude("@-webkit-keyframes"))
	assert.True(t, kf.Exclude("keyframes"))
	assert.False(t, kf.Exclude("media"))
}

func TestAtRootExcludeNode(t *testing.T) {
	a := arena.New()
	defer a.Release()

	bare := NewAtRootBlock(a, state(), NewBlock(a, state()), nil)
	rule := NewRuleset(a, state(), sel(t, a, "a"), NewBlock(a, state()))
	media := NewMediaBlock(a, state(), value.NewStringConst(state(), "screen"), NewBlock(a, state()))

	// Bare @at-root escapes rules but keeps media wrappers.
	assert.True(t, bare.ExcludeNode(rule))
	assert.False(t, bare.ExcludeNode(media))

	withoutMedia := NewAtRootBlock(a, state(), NewBlock(a, state()),
		NewAtRootExpr(state(), "without", []string{"media"}))
	assert.True(t, withoutMedia.ExcludeNode(media))
	assert.False(t, withoutMedia.ExcludeNode(rule))
}

func TestBubbleWrapsNode(t *testing.T) {
	a := arena.New()
	defer a.Release()

	media := NewMediaBlock(a, state(), value.NewStringConst(state(), "screen"), NewBlock(a, state()))
	media.SetTabs(2)
	bubble := NewBubble(a, media)

	assert.True(t, bubble.Hoistable())
	assert.True(t, bubble.Bubbles())
	assert.Equal(t, 2, bubble.Tabs())
	assert.True(t, bubble.Invisible()) // empty media body
}
