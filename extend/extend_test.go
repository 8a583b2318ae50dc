package extend

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	cascata "github.com/shibukawa/cascata"
	"github.com/shibukawa/cascata/arena"
	"github.com/shibukawa/cascata/ast"
	"github.com/shibukawa/cascata/selector"
	"github.com/shibukawa/cascata/value"
)

func newCtx(t *testing.T) *cascata.Context {
	t.Helper()
	ctx := cascata.NewContext(nil)
	t.Cleanup(ctx.Close)
	return ctx
}

func mustList(t *testing.T, a *arena.Arena, input string) *selector.List {
	t.Helper()
	list, err := selector.ParseList(a, "test.scss", input)
	assert.NoError(t, err)
	return list
}

func state() cascata.ParserState {
	return cascata.NewParserState("test.scss", cascata.Position{}, cascata.Offset{})
}

// rule builds a ruleset with a single color declaration.
func rule(t *testing.T, ctx *cascata.Context, sel string) *ast.Ruleset {
	t.Helper()
	body := ast.NewBlock(ctx.Arena, state())
	body.Append(ast.NewDeclaration(ctx.Arena, state(),
		value.NewStringConst(state(), "color"),
		value.NewStringConst(state(), "red")))
	return ast.NewRuleset(ctx.Arena, state(), mustList(t, ctx.Arena, sel), body)
}

func addExtend(ctx *cascata.Context, r *ast.Ruleset, target *selector.List) {
	r.Body.Append(ast.NewExtension(ctx.Arena, state(), target))
}

func TestSubsetMapLookup(t *testing.T) {
	ctx := newCtx(t)
	a := ctx.Arena

	m := NewSubsetMap()
	extA := &Extension{Target: mustList(t, a, ".a").Members[0].Head, Extender: mustList(t, a, ".x").Members[0]}
	extAB := &Extension{Target: mustList(t, a, ".a.b").Members[0].Head, Extender: mustList(t, a, ".y").Members[0]}
	m.Put(extA)
	m.Put(extAB)

	// ".a.b.c" is a superset of both keys; ".a" only of the first.
	matches := m.Get(mustList(t, a, ".a.b.c").Members[0].Head)
	assert.Equal(t, 2, len(matches))
	matches = m.Get(mustList(t, a, ".a").Members[0].Head)
	assert.Equal(t, 1, len(matches))
	matches = m.Get(mustList(t, a, ".c").Members[0].Head)
	assert.Equal(t, 0, len(matches))
}

func TestSubsetMapKeysAreSetLike(t *testing.T) {
	ctx := newCtx(t)
	a := ctx.Arena

	m := NewSubsetMap()
	m.Put(&Extension{Target: mustList(t, a, ".a.b").Members[0].Head, Extender: mustList(t, a, ".x").Members[0]})
	m.Put(&Extension{Target: mustList(t, a, ".b.a").Members[0].Head, Extender: mustList(t, a, ".y").Members[0]})
	assert.Equal(t, 1, m.Len())
}

func TestExtendSimple(t *testing.T) {
	ctx := newCtx(t)

	// .a { color: red }  .b { @extend .a }
	root := ast.NewRootBlock(ctx.Arena, state())
	ruleA := rule(t, ctx, ".a")
	ruleB := rule(t, ctx, ".b")
	addExtend(ctx, ruleB, mustList(t, ctx.Arena, ".a"))
	root.Append(ruleA)
	root.Append(ruleB)

	engine := New(ctx)
	assert.NoError(t, engine.Collect(root))
	assert.NoError(t, engine.Apply(root))

	assert.Equal(t, ".a, .b", ruleA.Selector.String())
	assert.Equal(t, ".b", ruleB.Selector.String())
}

func TestExtendPlaceholderStripped(t *testing.T) {
	ctx := newCtx(t)

	// %p { color: red }  .x { @extend %p }
	root := ast.NewRootBlock(ctx.Arena, state())
	ruleP := rule(t, ctx, "%p")
	ruleX := rule(t, ctx, ".x")
	addExtend(ctx, ruleX, mustList(t, ctx.Arena, "%p"))
	root.Append(ruleP)
	root.Append(ruleX)

	engine := New(ctx)
	assert.NoError(t, engine.Collect(root))
	assert.NoError(t, engine.Apply(root))

	// The placeholder alternative is dropped from the emission list.
	assert.Equal(t, ".x", ruleP.Selector.String())
}

func TestExtendIdempotent(t *testing.T) {
	ctx := newCtx(t)

	build := func() (*ast.Block, *ast.Ruleset) {
		root := ast.NewRootBlock(ctx.Arena, state())
		ruleA := rule(t, ctx, ".a")
		ruleB := rule(t, ctx, ".b")
		addExtend(ctx, ruleB, mustList(t, ctx.Arena, ".a"))
		root.Append(ruleA)
		root.Append(ruleB)
		return root, ruleA
	}

	root, ruleA := build()
	engine := New(ctx)
	assert.NoError(t, engine.Collect(root))
	assert.NoError(t, engine.Apply(root))
	once := ruleA.Selector.String()

	// Running the engine again over its own output changes nothing.
	second := New(ctx)
	assert.NoError(t, second.Collect(root))
	assert.NoError(t, second.Apply(root))
	assert.Equal(t, once, ruleA.Selector.String())
}

func TestExtendChained(t *testing.T) {
	ctx := newCtx(t)

	// .a <- .b <- .c: extensions chain through the fixed point.
	root := ast.NewRootBlock(ctx.Arena, state())
	ruleA := rule(t, ctx, ".a")
	ruleB := rule(t, ctx, ".b")
	ruleC := rule(t, ctx, ".c")
	addExtend(ctx, ruleB, mustList(t, ctx.Arena, ".a"))
	addExtend(ctx, ruleC, mustList(t, ctx.Arena, ".b"))
	root.Append(ruleA)
	root.Append(ruleB)
	root.Append(ruleC)

	engine := New(ctx)
	assert.NoError(t, engine.Collect(root))
	assert.NoError(t, engine.Apply(root))

	assert.Equal(t, ".a, .b, .c", ruleA.Selector.String())
	assert.Equal(t, ".b, .c", ruleB.Selector.String())
}

func TestExtendCycleTerminates(t *testing.T) {
	ctx := newCtx(t)

	// .a { @extend .b }  .b { @extend .a } must reach a fixed point.
	root := ast.NewRootBlock(ctx.Arena, state())
	ruleA := rule(t, ctx, ".a")
	ruleB := rule(t, ctx, ".b")
	addExtend(ctx, ruleA, mustList(t, ctx.Arena, ".b"))
	addExtend(ctx, ruleB, mustList(t, ctx.Arena, ".a"))
	root.Append(ruleA)
	root.Append(ruleB)

	engine := New(ctx)
	assert.NoError(t, engine.Collect(root))
	assert.NoError(t, engine.Apply(root))

	assert.Equal(t, ".a, .b", ruleA.Selector.String())
	assert.Equal(t, ".b, .a", ruleB.Selector.String())
}

func TestExtendCompoundTarget(t *testing.T) {
	ctx := newCtx(t)

	// .a.b { ... }  .x { @extend .a } rewrites the matching compound:
	// (.a.b − .a) unified with .x.
	root := ast.NewRootBlock(ctx.Arena, state())
	ruleAB := rule(t, ctx, ".a.b")
	ruleX := rule(t, ctx, ".x")
	addExtend(ctx, ruleX, mustList(t, ctx.Arena, ".a"))
	root.Append(ruleAB)
	root.Append(ruleX)

	engine := New(ctx)
	assert.NoError(t, engine.Collect(root))
	assert.NoError(t, engine.Apply(root))

	assert.Equal(t, ".a.b, .b.x", ruleAB.Selector.String())
}

func TestExtendThreadsExtenderChain(t *testing.T) {
	ctx := newCtx(t)

	// The extender's whole complex chain replaces the compound.
	root := ast.NewRootBlock(ctx.Arena, state())
	ruleA := rule(t, ctx, ".a")
	ruleNav := rule(t, ctx, "nav > .x")
	addExtend(ctx, ruleNav, mustList(t, ctx.Arena, ".a"))
	root.Append(ruleA)
	root.Append(ruleNav)

	engine := New(ctx)
	assert.NoError(t, engine.Collect(root))
	assert.NoError(t, engine.Apply(root))

	assert.Equal(t, ".a, nav > .x", ruleA.Selector.String())
}

func TestExtendUnmatchedWarns(t *testing.T) {
	ctx := newCtx(t)

	root := ast.NewRootBlock(ctx.Arena, state())
	ruleX := rule(t, ctx, ".x")
	addExtend(ctx, ruleX, mustList(t, ctx.Arena, ".missing"))
	root.Append(ruleX)

	engine := New(ctx)
	assert.NoError(t, engine.Collect(root))
	assert.NoError(t, engine.Apply(root))

	sink := ctx.Sink.(*cascata.BufferSink)
	assert.Equal(t, 1, len(sink.Diagnostics))
	assert.Equal(t, cascata.LevelWarning, sink.Diagnostics[0].Level)
}

func TestExtendUnmatchedRejected(t *testing.T) {
	config := cascata.DefaultConfig()
	config.Extend.RejectUnmatched = true
	ctx := cascata.NewContext(config)
	t.Cleanup(ctx.Close)

	root := ast.NewRootBlock(ctx.Arena, state())
	ruleX := rule(t, ctx, ".x")
	addExtend(ctx, ruleX, mustList(t, ctx.Arena, ".missing"))
	root.Append(ruleX)

	engine := New(ctx)
	assert.NoError(t, engine.Collect(root))
	err := engine.Apply(root)
	assert.Error(t, err)
	assert.IsError(t, err, cascata.ErrExtendTargetNotFound)
}

func TestExtendInsideMedia(t *testing.T) {
	ctx := newCtx(t)

	// Rules inside @media participate in collection and application.
	root := ast.NewRootBlock(ctx.Arena, state())
	inner := ast.NewBlock(ctx.Arena, state())
	ruleA := rule(t, ctx, ".a")
	ruleB := rule(t, ctx, ".b")
	addExtend(ctx, ruleB, mustList(t, ctx.Arena, ".a"))
	inner.Append(ruleA)
	inner.Append(ruleB)
	media := ast.NewMediaBlock(ctx.Arena, state(), value.NewStringConst(state(), "screen"), inner)
	root.Append(media)

	engine := New(ctx)
	assert.NoError(t, engine.Collect(root))
	assert.NoError(t, engine.Apply(root))

	assert.Equal(t, ".a, .b", ruleA.Selector.String())
}
