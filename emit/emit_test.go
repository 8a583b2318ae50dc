package emit

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	cascata "github.com/shibukawa/cascata"
	"github.com/shibukawa/cascata/ast"
	"github.com/shibukawa/cascata/extend"
	"github.com/shibukawa/cascata/selector"
	"github.com/shibukawa/cascata/value"
)

func newCtx(t *testing.T, style cascata.OutputStyle) *cascata.Context {
	t.Helper()
	config := cascata.DefaultConfig()
	config.Style = style
	ctx := cascata.NewContext(config)
	t.Cleanup(ctx.Close)
	return ctx
}

func pstate(line, column int, text string) cascata.ParserState {
	return cascata.NewParserState("main.scss",
		cascata.Position{Line: line, Column: column}, cascata.OffsetOf(text))
}

func sel(t *testing.T, ctx *cascata.Context, input string) *selector.List {
	t.Helper()
	list, err := selector.ParseList(ctx.Arena, "main.scss", input)
	assert.NoError(t, err)
	return list
}

func decl(ctx *cascata.Context, state cascata.ParserState, property, val string) *ast.Declaration {
	return ast.NewDeclaration(ctx.Arena, state,
		value.NewStringConst(state, property),
		value.NewStringConst(state, val))
}

func ruleWithDecl(t *testing.T, ctx *cascata.Context, selText, property, val string) *ast.Ruleset {
	t.Helper()
	body := ast.NewBlock(ctx.Arena, pstate(0, 0, ""))
	body.Append(decl(ctx, pstate(0, 0, property), property, val))
	return ast.NewRuleset(ctx.Arena, pstate(0, 0, selText), sel(t, ctx, selText), body)
}

func emitAll(t *testing.T, ctx *cascata.Context, root *ast.Block) string {
	t.Helper()
	flat, err := Flatten(ctx, root)
	assert.NoError(t, err)
	buf, err := New(ctx, "out.css").Emit(flat)
	assert.NoError(t, err)
	return buf.String()
}

func TestEmitNesting(t *testing.T) {
	ctx := newCtx(t, cascata.StyleNested)

	// a { b { color: red } } -> a b { color: red; }
	inner := ast.NewRuleset(ctx.Arena, pstate(0, 4, "b"), sel(t, ctx, "b"), ast.NewBlock(ctx.Arena, pstate(0, 4, "")))
	inner.Body.Append(decl(ctx, pstate(0, 8, "color"), "color", "red"))
	outer := ast.NewRuleset(ctx.Arena, pstate(0, 0, "a"), sel(t, ctx, "a"), ast.NewBlock(ctx.Arena, pstate(0, 0, "")))
	outer.Body.Append(inner)
	root := ast.NewRootBlock(ctx.Arena, pstate(0, 0, ""))
	root.Append(outer)

	css := emitAll(t, ctx, root)
	assert.Equal(t, "a b {\n  color: red;\n}\n", css)
}

func TestEmitParentMerge(t *testing.T) {
	ctx := newCtx(t, cascata.StyleCompressed)

	// a { &:hover { color: red } } -> a:hover{color:red}
	inner := ast.NewRuleset(ctx.Arena, pstate(0, 4, "&:hover"), sel(t, ctx, "&:hover"), ast.NewBlock(ctx.Arena, pstate(0, 4, "")))
	inner.Body.Append(decl(ctx, pstate(0, 13, "color"), "color", "red"))
	outer := ast.NewRuleset(ctx.Arena, pstate(0, 0, "a"), sel(t, ctx, "a"), ast.NewBlock(ctx.Arena, pstate(0, 0, "")))
	outer.Body.Append(inner)
	root := ast.NewRootBlock(ctx.Arena, pstate(0, 0, ""))
	root.Append(outer)

	css := emitAll(t, ctx, root)
	assert.Equal(t, "a:hover{color:red}", css)
}

func TestEmitDeclsBeforeNestedRules(t *testing.T) {
	ctx := newCtx(t, cascata.StyleCompressed)

	outer := ast.NewRuleset(ctx.Arena, pstate(0, 0, "a"), sel(t, ctx, "a"), ast.NewBlock(ctx.Arena, pstate(0, 0, "")))
	outer.Body.Append(decl(ctx, pstate(0, 2, "color"), "color", "red"))
	inner := ast.NewRuleset(ctx.Arena, pstate(1, 2, "b"), sel(t, ctx, "b"), ast.NewBlock(ctx.Arena, pstate(1, 2, "")))
	inner.Body.Append(decl(ctx, pstate(1, 6, "margin"), "margin", "0"))
	outer.Body.Append(inner)
	root := ast.NewRootBlock(ctx.Arena, pstate(0, 0, ""))
	root.Append(outer)

	css := emitAll(t, ctx, root)
	assert.Equal(t, "a{color:red}a b{margin:0}", css)
}

func TestEmitMediaBubbles(t *testing.T) {
	ctx := newCtx(t, cascata.StyleCompressed)

	// a { @media screen { color: red } } bubbles the media block out.
	media := ast.NewMediaBlock(ctx.Arena, pstate(1, 2, "@media screen"),
		value.NewStringConst(pstate(1, 9, "screen"), "screen"),
		ast.NewBlock(ctx.Arena, pstate(1, 2, "")))
	media.Body.Append(decl(ctx, pstate(2, 4, "color"), "color", "red"))
	outer := ast.NewRuleset(ctx.Arena, pstate(0, 0, "a"), sel(t, ctx, "a"), ast.NewBlock(ctx.Arena, pstate(0, 0, "")))
	outer.Body.Append(media)
	root := ast.NewRootBlock(ctx.Arena, pstate(0, 0, ""))
	root.Append(outer)

	css := emitAll(t, ctx, root)
	assert.Equal(t, "@media screen{a{color:red}}", css)
}

func TestEmitAtRootEscapesRule(t *testing.T) {
	ctx := newCtx(t, cascata.StyleCompressed)

	// a { @at-root { b { color: red } } } -> b{color:red}
	inner := ruleWithDecl(t, ctx, "b", "color", "red")
	atRoot := ast.NewAtRootBlock(ctx.Arena, pstate(1, 2, "@at-root"), ast.NewBlock(ctx.Arena, pstate(1, 2, "")), nil)
	atRoot.Body.Append(inner)
	outer := ast.NewRuleset(ctx.Arena, pstate(0, 0, "a"), sel(t, ctx, "a"), ast.NewBlock(ctx.Arena, pstate(0, 0, "")))
	outer.Body.Append(atRoot)
	root := ast.NewRootBlock(ctx.Arena, pstate(0, 0, ""))
	root.Append(outer)

	css := emitAll(t, ctx, root)
	assert.Equal(t, "b{color:red}", css)
}

func TestEmitSkipsInvisible(t *testing.T) {
	ctx := newCtx(t, cascata.StyleCompressed)

	root := ast.NewRootBlock(ctx.Arena, pstate(0, 0, ""))
	// Placeholder-only rule and a null declaration both vanish.
	root.Append(ruleWithDecl(t, ctx, "%p", "color", "red"))
	visible := ast.NewRuleset(ctx.Arena, pstate(1, 0, ".x"), sel(t, ctx, ".x"), ast.NewBlock(ctx.Arena, pstate(1, 0, "")))
	visible.Body.Append(decl(ctx, pstate(1, 5, "color"), "color", "blue"))
	visible.Body.Append(ast.NewDeclaration(ctx.Arena, pstate(2, 0, "margin"),
		value.NewStringConst(pstate(2, 0, "margin"), "margin"), value.NewNull(pstate(2, 8, ""))))
	root.Append(visible)

	css := emitAll(t, ctx, root)
	assert.Equal(t, ".x{color:blue}", css)
}

func TestEmitExtendEndToEnd(t *testing.T) {
	ctx := newCtx(t, cascata.StyleCompressed)

	// .a { color: red }  .b { @extend .a } -> .a,.b{color:red}
	root := ast.NewRootBlock(ctx.Arena, pstate(0, 0, ""))
	ruleA := ruleWithDecl(t, ctx, ".a", "color", "red")
	ruleB := ast.NewRuleset(ctx.Arena, pstate(1, 0, ".b"), sel(t, ctx, ".b"), ast.NewBlock(ctx.Arena, pstate(1, 0, "")))
	ruleB.Body.Append(ast.NewExtension(ctx.Arena, pstate(1, 5, "@extend .a"), sel(t, ctx, ".a")))
	root.Append(ruleA)
	root.Append(ruleB)

	engine := extend.New(ctx)
	assert.NoError(t, engine.Collect(root))
	assert.NoError(t, engine.Apply(root))

	css := emitAll(t, ctx, root)
	assert.Equal(t, ".a,.b{color:red}", css)
}

func TestEmitSourceMapScenario(t *testing.T) {
	ctx := newCtx(t, cascata.StyleCompressed)

	// Emitting a{color:red} yields exactly two mappings on one line.
	root := ast.NewRootBlock(ctx.Arena, pstate(0, 0, ""))
	rule := ast.NewRuleset(ctx.Arena, pstate(0, 0, "a"), sel(t, ctx, "a"), ast.NewBlock(ctx.Arena, pstate(0, 0, "")))
	prop := value.NewStringConst(pstate(0, 2, "color"), "color")
	val := value.NewStringConst(pstate(0, 8, "red"), "red")
	rule.Body.Append(ast.NewDeclaration(ctx.Arena, pstate(0, 2, "color:red"), prop, val))
	root.Append(rule)

	flat, err := Flatten(ctx, root)
	assert.NoError(t, err)
	buf, err := New(ctx, "out.css").Emit(flat)
	assert.NoError(t, err)
	assert.Equal(t, "a{color:red}", buf.String())

	mappings := buf.Map().Mappings()
	assert.Equal(t, 2, len(mappings))
	assert.Equal(t, cascata.Position{Line: 0, Column: 0}, mappings[0].Generated)
	assert.Equal(t, cascata.Position{Line: 0, Column: 0}, mappings[0].Original)
	assert.Equal(t, cascata.Position{Line: 0, Column: 8}, mappings[1].Generated)
	assert.Equal(t, cascata.Position{Line: 0, Column: 8}, mappings[1].Original)

	serialized, _ := buf.Map().Serialize()
	assert.Equal(t, "AAAA,QAAQ", serialized)
	assert.False(t, strings.Contains(serialized, ";"))
}

func TestEmitExpandedStyle(t *testing.T) {
	ctx := newCtx(t, cascata.StyleExpanded)

	root := ast.NewRootBlock(ctx.Arena, pstate(0, 0, ""))
	rule := ruleWithDecl(t, ctx, "a", "color", "red")
	rule.Body.Append(decl(ctx, pstate(1, 2, "margin"), "margin", "0"))
	root.Append(rule)

	css := emitAll(t, ctx, root)
	assert.Equal(t, "a {\n  color: red;\n  margin: 0;\n}\n", css)
}

func TestEmitImportantAndPrecision(t *testing.T) {
	ctx := newCtx(t, cascata.StyleCompressed)
	ctx.Config.Precision = 2

	root := ast.NewRootBlock(ctx.Arena, pstate(0, 0, ""))
	body := ast.NewBlock(ctx.Arena, pstate(0, 0, ""))
	d := ast.NewDeclaration(ctx.Arena, pstate(0, 2, ""),
		value.NewStringConst(pstate(0, 2, "width"), "width"),
		value.NewNumberFromFloat(pstate(0, 9, "3.14159"), 3.14159))
	d.Important = true
	body.Append(d)
	root.Append(ast.NewRuleset(ctx.Arena, pstate(0, 0, "a"), sel(t, ctx, "a"), body))

	css := emitAll(t, ctx, root)
	assert.Equal(t, "a{width:3.14!important}", css)
}
