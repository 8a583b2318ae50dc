package ast

import (
	"strings"

	cascata "github.com/shibukawa/cascata"
	"github.com/shibukawa/cascata/arena"
	"github.com/shibukawa/cascata/selector"
	"github.com/shibukawa/cascata/value"
)

// Ruleset is a style rule: a selector list and a body. It is hoistable
// and invisible when its whole selector list is placeholder-only.
type Ruleset struct {
	stmtBase
	Selector *selector.List
	Body     *Block
}

// NewRuleset allocates a style rule.
func NewRuleset(a *arena.Arena, state cascata.ParserState, sel *selector.List, body *Block) *Ruleset {
	return arena.Alloc(a, Ruleset{stmtBase: stmtBase{state: state}, Selector: sel, Body: body})
}

func (r *Ruleset) Hoistable() bool { return true }

func (r *Ruleset) Invisible() bool {
	if r.Selector != nil && r.Selector.IsInvisible() {
		return true
	}
	return r.Body != nil && r.Body.Invisible()
}

// MediaBlock is an @media rule. It is hoistable and bubbles out of
// enclosing rules during emission. It also serves as the media context
// rules reference while @extend runs.
type MediaBlock struct {
	stmtBase
	Queries value.Value
	Body    *Block
}

// NewMediaBlock allocates an @media rule.
func NewMediaBlock(a *arena.Arena, state cascata.ParserState, queries value.Value, body *Block) *MediaBlock {
	return arena.Alloc(a, MediaBlock{stmtBase: stmtBase{state: state}, Queries: queries, Body: body})
}

func (m *MediaBlock) Hoistable() bool { return true }
func (m *MediaBlock) Bubbles() bool   { return true }

func (m *MediaBlock) Invisible() bool {
	return m.Body != nil && m.Body.Invisible()
}

// MediaState implements selector.MediaContext.
func (m *MediaBlock) MediaState() cascata.ParserState { return m.state }

// SupportsBlock is an @supports rule; hoistable and bubbling like
// @media.
type SupportsBlock struct {
	stmtBase
	Query value.Value
	Body  *Block
}

// NewSupportsBlock allocates an @supports rule.
func NewSupportsBlock(a *arena.Arena, state cascata.ParserState, query value.Value, body *Block) *SupportsBlock {
	return arena.Alloc(a, SupportsBlock{stmtBase: stmtBase{state: state}, Query: query, Body: body})
}

func (s *SupportsBlock) Hoistable() bool { return true }
func (s *SupportsBlock) Bubbles() bool   { return true }

func (s *SupportsBlock) Invisible() bool {
	return s.Body != nil && s.Body.Invisible()
}

// AtRule is a generic at-rule with an optional selector, value and
// body.
type AtRule struct {
	stmtBase
	Keyword  string
	Selector *selector.List
	Value    value.Value
	Body     *Block
}

// NewAtRule allocates a generic at-rule. Keyword carries the leading
// "@".
func NewAtRule(a *arena.Arena, state cascata.ParserState, keyword string) *AtRule {
	return arena.Alloc(a, AtRule{stmtBase: stmtBase{state: state}, Keyword: keyword})
}

func (r *AtRule) Hoistable() bool { return true }

// Bubbles reports whether the keyword denotes a media or keyframes
// rule, including vendor variants like "@-webkit-keyframes".
func (r *AtRule) Bubbles() bool {
	name := trimVendor(r.Keyword)
	return name == "@media" || name == "@keyframes"
}

// trimVendor strips a "-vendor-" infix from an at-keyword.
func trimVendor(keyword string) string {
	rest, ok := strings.CutPrefix(keyword, "@-")
	if !ok {
		return keyword
	}
	if i := strings.IndexByte(rest, '-'); i >= 0 {
		return "@" + rest[i+1:]
	}
	return keyword
}

// KeyframeRule is one "from"/"to"/percentage rule inside @keyframes.
type KeyframeRule struct {
	stmtBase
	Selector value.Value
	Body     *Block
}

// NewKeyframeRule allocates a keyframe rule.
func NewKeyframeRule(a *arena.Arena, state cascata.ParserState, sel value.Value, body *Block) *KeyframeRule {
	return arena.Alloc(a, KeyframeRule{stmtBase: stmtBase{state: state}, Selector: sel, Body: body})
}

// Declaration is a "property: value" pair. Declarations whose value is
// invisible (null, empty list or map) are suppressed during emission.
type Declaration struct {
	stmtBase
	Property  value.Value
	Value     value.Value
	Important bool
	Indented  bool
}

// NewDeclaration allocates a property declaration.
func NewDeclaration(a *arena.Arena, state cascata.ParserState, property, val value.Value) *Declaration {
	return arena.Alloc(a, Declaration{stmtBase: stmtBase{state: state}, Property: property, Value: val})
}

func (d *Declaration) Invisible() bool {
	return d.Value == nil || d.Value.Invisible()
}

// Assignment is a "$var: value" statement with the !default and
// !global flags.
type Assignment struct {
	stmtBase
	Variable  string
	Value     value.Value
	IsDefault bool
	IsGlobal  bool
}

// NewAssignment allocates a variable assignment.
func NewAssignment(a *arena.Arena, state cascata.ParserState, variable string, val value.Value) *Assignment {
	return arena.Alloc(a, Assignment{stmtBase: stmtBase{state: state}, Variable: variable, Value: val})
}

func (s *Assignment) Invisible() bool { return true }

// Import is an @import of one or more files or URLs with optional
// media queries.
type Import struct {
	stmtBase
	Files []string
	URLs  []value.Value
	Media []value.Value
}

// NewImport allocates an @import statement.
func NewImport(a *arena.Arena, state cascata.ParserState) *Import {
	return arena.Alloc(a, Import{stmtBase: stmtBase{state: state}})
}

// ImportStub marks the point where an imported file's statements were
// spliced in.
type ImportStub struct {
	stmtBase
	File string
}

// NewImportStub allocates an import stub.
func NewImportStub(a *arena.Arena, state cascata.ParserState, file string) *ImportStub {
	return arena.Alloc(a, ImportStub{stmtBase: stmtBase{state: state}, File: file})
}

func (s *ImportStub) Invisible() bool { return true }

// Warning is an @warn statement; it surfaces through the diagnostic
// sink at evaluation time.
type Warning struct {
	stmtBase
	Message value.Value
}

// NewWarning allocates an @warn statement.
func NewWarning(a *arena.Arena, state cascata.ParserState, message value.Value) *Warning {
	return arena.Alloc(a, Warning{stmtBase: stmtBase{state: state}, Message: message})
}

func (w *Warning) Invisible() bool { return true }

// ErrorStmt is an @error statement; evaluating it aborts the
// compilation.
type ErrorStmt struct {
	stmtBase
	Message value.Value
}

// NewErrorStmt allocates an @error statement.
func NewErrorStmt(a *arena.Arena, state cascata.ParserState, message value.Value) *ErrorStmt {
	return arena.Alloc(a, ErrorStmt{stmtBase: stmtBase{state: state}, Message: message})
}

func (e *ErrorStmt) Invisible() bool { return true }

// Debug is a @debug statement.
type Debug struct {
	stmtBase
	Value value.Value
}

// NewDebug allocates a @debug statement.
func NewDebug(a *arena.Arena, state cascata.ParserState, val value.Value) *Debug {
	return arena.Alloc(a, Debug{stmtBase: stmtBase{state: state}, Value: val})
}

func (d *Debug) Invisible() bool { return true }

// Comment is a CSS comment. Important comments ("/*!") survive even
// compressed output.
type Comment struct {
	stmtBase
	Text        string
	IsImportant bool
}

// NewComment allocates a comment.
func NewComment(a *arena.Arena, state cascata.ParserState, text string, important bool) *Comment {
	return arena.Alloc(a, Comment{stmtBase: stmtBase{state: state}, Text: text, IsImportant: important})
}

// If is an @if/@else chain.
type If struct {
	stmtBase
	Predicate value.Value
	Then      *Block
	Else      *Block
}

// NewIf allocates an @if statement.
func NewIf(a *arena.Arena, state cascata.ParserState, pred value.Value, then, els *Block) *If {
	return arena.Alloc(a, If{stmtBase: stmtBase{state: state}, Predicate: pred, Then: then, Else: els})
}

// For is a @for loop over a numeric range.
type For struct {
	stmtBase
	Variable  string
	Lower     value.Value
	Upper     value.Value
	Inclusive bool
	Body      *Block
}

// NewFor allocates a @for statement.
func NewFor(a *arena.Arena, state cascata.ParserState, variable string, lower, upper value.Value, inclusive bool, body *Block) *For {
	return arena.Alloc(a, For{stmtBase: stmtBase{state: state}, Variable: variable, Lower: lower, Upper: upper, Inclusive: inclusive, Body: body})
}

// Each is an @each loop over a list or map.
type Each struct {
	stmtBase
	Variables []string
	List      value.Value
	Body      *Block
}

// NewEach allocates an @each statement.
func NewEach(a *arena.Arena, state cascata.ParserState, variables []string, list value.Value, body *Block) *Each {
	return arena.Alloc(a, Each{stmtBase: stmtBase{state: state}, Variables: variables, List: list, Body: body})
}

// While is a @while loop.
type While struct {
	stmtBase
	Predicate value.Value
	Body      *Block
}

// NewWhile allocates a @while statement.
func NewWhile(a *arena.Arena, state cascata.ParserState, pred value.Value, body *Block) *While {
	return arena.Alloc(a, While{stmtBase: stmtBase{state: state}, Predicate: pred, Body: body})
}

// Return is a @return inside a function body.
type Return struct {
	stmtBase
	Value value.Value
}

// NewReturn allocates a @return statement.
func NewReturn(a *arena.Arena, state cascata.ParserState, val value.Value) *Return {
	return arena.Alloc(a, Return{stmtBase: stmtBase{state: state}, Value: val})
}

// Extension is an @extend target: the selector list the current rule
// wants to extend into.
type Extension struct {
	stmtBase
	Selector *selector.List
}

// NewExtension allocates an @extend statement.
func NewExtension(a *arena.Arena, state cascata.ParserState, sel *selector.List) *Extension {
	return arena.Alloc(a, Extension{stmtBase: stmtBase{state: state}, Selector: sel})
}

func (e *Extension) Invisible() bool { return true }

// MixinCall is an "@include name(args) { body? }" statement.
type MixinCall struct {
	stmtBase
	Name string
	Args *ArgumentList
	Body *Block
}

// NewMixinCall allocates a mixin call.
func NewMixinCall(a *arena.Arena, state cascata.ParserState, name string, args *ArgumentList, body *Block) *MixinCall {
	return arena.Alloc(a, MixinCall{stmtBase: stmtBase{state: state}, Name: name, Args: args, Body: body})
}

// Content is the @content marker inside a mixin body.
type Content struct {
	stmtBase
}

// NewContent allocates a @content statement.
func NewContent(a *arena.Arena, state cascata.ParserState) *Content {
	return arena.Alloc(a, Content{stmtBase{state: state}})
}

// Bubble wraps a nested hoistable that floats outward during emission.
type Bubble struct {
	stmtBase
	Node Statement
}

// NewBubble wraps a statement for hoisting.
func NewBubble(a *arena.Arena, node Statement) *Bubble {
	b := arena.Alloc(a, Bubble{stmtBase: stmtBase{state: node.State()}, Node: node})
	b.SetTabs(node.Tabs())
	return b
}

func (b *Bubble) Hoistable() bool { return true }
func (b *Bubble) Bubbles() bool   { return true }

func (b *Bubble) Invisible() bool { return b.Node.Invisible() }
