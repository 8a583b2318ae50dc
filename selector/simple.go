package selector

import (
	"strings"

	cascata "github.com/shibukawa/cascata"
	"github.com/shibukawa/cascata/arena"
)

// Simple is a single simple selector: "&", "%x", "div", ".c", "#i",
// "[a=b]", ":hover" or a wrapped pseudo like ":not(a, b)".
type Simple interface {
	State() cascata.ParserState
	NS() Namespace
	Specificity() int
	// Equal is structural equality; it is the order-dependent mode of
	// the selector equality pair.
	Equal(other Simple) bool
	Hash() uint64
	String() string
	simpleNode()
}

// simpleBase carries the parser state and namespace shared by every
// simple selector variant.
type simpleBase struct {
	state cascata.ParserState
	ns    Namespace
}

func (b *simpleBase) State() cascata.ParserState { return b.state }
func (b *simpleBase) NS() Namespace              { return b.ns }
func (b *simpleBase) simpleNode()                {}

const hashSeed = 0x9e3779b97f4a7c15

const (
	kindParent uint64 = iota + 11
	kindPlaceholder
	kindType
	kindQualifier
	kindAttribute
	kindPseudo
	kindWrapped
)

func combine(seed, h uint64) uint64 {
	return seed ^ (h + hashSeed + (seed << 6) + (seed >> 2))
}

func strhash(s string) uint64 {
	var h uint64 = 14695981039346656037
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return h
}

// Parent is the "&" reference to the enclosing selector list.
type Parent struct {
	simpleBase
}

// NewParent allocates a parent reference.
func NewParent(a *arena.Arena, state cascata.ParserState) *Parent {
	return arena.Alloc(a, Parent{simpleBase{state: state}})
}

func (p *Parent) Specificity() int { return 0 }

func (p *Parent) Equal(other Simple) bool {
	_, ok := other.(*Parent)
	return ok
}

func (p *Parent) Hash() uint64   { return combine(kindParent, 0) }
func (p *Parent) String() string { return "&" }

// Placeholder is a "%name" selector. Rules whose selectors are made of
// placeholders only are invisible; placeholders count as classes for
// specificity.
type Placeholder struct {
	simpleBase
	Name string
}

// NewPlaceholder allocates a placeholder selector. Name carries the
// leading "%".
func NewPlaceholder(a *arena.Arena, state cascata.ParserState, name string) *Placeholder {
	return arena.Alloc(a, Placeholder{simpleBase{state: state}, name})
}

func (p *Placeholder) Specificity() int { return SpecClass }

func (p *Placeholder) Equal(other Simple) bool {
	o, ok := other.(*Placeholder)
	return ok && o.Name == p.Name && o.ns == p.ns
}

func (p *Placeholder) Hash() uint64   { return combine(kindPlaceholder, strhash(p.Name)) }
func (p *Placeholder) String() string { return p.ns.String() + p.Name }

// Type is an element selector such as "div" or the universal "*".
type Type struct {
	simpleBase
	Name string
}

// NewType allocates an element selector.
func NewType(a *arena.Arena, state cascata.ParserState, name string) *Type {
	return arena.Alloc(a, Type{simpleBase{state: state}, name})
}

// NewTypeNS allocates an element selector with a namespace prefix.
func NewTypeNS(a *arena.Arena, state cascata.ParserState, ns Namespace, name string) *Type {
	return arena.Alloc(a, Type{simpleBase{state: state, ns: ns}, name})
}

// IsUniversal reports whether the selector is "*".
func (t *Type) IsUniversal() bool { return t.Name == "*" }

func (t *Type) Specificity() int {
	if t.IsUniversal() {
		return 0
	}
	return SpecType
}

func (t *Type) Equal(other Simple) bool {
	o, ok := other.(*Type)
	return ok && o.Name == t.Name && o.ns == t.ns
}

func (t *Type) Hash() uint64   { return combine(kindType, strhash(t.ns.String()+t.Name)) }
func (t *Type) String() string { return t.ns.String() + t.Name }

// Qualifier is a class or id selector; Name carries the leading "."
// or "#".
type Qualifier struct {
	simpleBase
	Name string
}

// NewQualifier allocates a class or id selector. Name carries the
// leading "." or "#".
func NewQualifier(a *arena.Arena, state cascata.ParserState, name string) *Qualifier {
	return arena.Alloc(a, Qualifier{simpleBase{state: state}, name})
}

// IsID reports whether the qualifier is an id selector.
func (q *Qualifier) IsID() bool { return strings.HasPrefix(q.Name, "#") }

// IsClass reports whether the qualifier is a class selector.
func (q *Qualifier) IsClass() bool { return strings.HasPrefix(q.Name, ".") }

func (q *Qualifier) Specificity() int {
	switch {
	case q.IsID():
		return SpecID
	case q.IsClass():
		return SpecClass
	}
	return SpecType
}

func (q *Qualifier) Equal(other Simple) bool {
	o, ok := other.(*Qualifier)
	return ok && o.Name == q.Name && o.ns == q.ns
}

func (q *Qualifier) Hash() uint64   { return combine(kindQualifier, strhash(q.Name)) }
func (q *Qualifier) String() string { return q.ns.String() + q.Name }

// Attribute is an "[name matcher value]" selector. Matcher is one of
// "", "=", "~=", "|=", "^=", "$=", "*="; an empty matcher means a bare
// existence test.
type Attribute struct {
	simpleBase
	Name    string
	Matcher string
	Value   string
}

// NewAttribute allocates an attribute selector.
func NewAttribute(a *arena.Arena, state cascata.ParserState, name, matcher, value string) *Attribute {
	return arena.Alloc(a, Attribute{simpleBase{state: state}, name, matcher, value})
}

func (at *Attribute) Specificity() int { return SpecAttribute }

func (at *Attribute) Equal(other Simple) bool {
	o, ok := other.(*Attribute)
	return ok && o.Name == at.Name && o.Matcher == at.Matcher && o.Value == at.Value && o.ns == at.ns
}

func (at *Attribute) Hash() uint64 {
	return combine(kindAttribute, strhash(at.Name+at.Matcher+at.Value))
}

func (at *Attribute) String() string {
	return "[" + at.ns.String() + at.Name + at.Matcher + at.Value + "]"
}

// Pseudo is a pseudo-class or pseudo-element; Name carries the leading
// colon(s). Arg holds a raw functional argument such as "2n+1".
type Pseudo struct {
	simpleBase
	Name string
	Arg  string
}

// NewPseudo allocates a pseudo selector. Name carries the leading
// colon(s).
func NewPseudo(a *arena.Arena, state cascata.ParserState, name, arg string) *Pseudo {
	return arena.Alloc(a, Pseudo{simpleBase{state: state}, name, arg})
}

// IsElement reports whether the pseudo is a pseudo-element. The four
// CSS1/CSS2 single-colon names stay pseudo-elements.
func (p *Pseudo) IsElement() bool {
	if strings.HasPrefix(p.Name, "::") {
		return true
	}
	switch p.Name {
	case ":after", ":before", ":first-line", ":first-letter":
		return true
	}
	return false
}

func (p *Pseudo) Specificity() int {
	if p.IsElement() {
		return SpecType
	}
	return SpecClass
}

func (p *Pseudo) Equal(other Simple) bool {
	o, ok := other.(*Pseudo)
	return ok && o.Name == p.Name && o.Arg == p.Arg
}

func (p *Pseudo) Hash() uint64 { return combine(kindPseudo, strhash(p.Name+"("+p.Arg+")")) }

func (p *Pseudo) String() string {
	if p.Arg == "" {
		return p.Name
	}
	return p.Name + "(" + p.Arg + ")"
}

// Wrapped is a pseudo whose argument is itself a selector list, such
// as ":not(a, b)" or ":matches(.x)". Its specificity is the inner
// list's maximum.
type Wrapped struct {
	simpleBase
	Name  string
	Inner *List
}

// NewWrapped allocates a wrapped selector. Name carries the leading
// colon(s).
func NewWrapped(a *arena.Arena, state cascata.ParserState, name string, inner *List) *Wrapped {
	return arena.Alloc(a, Wrapped{simpleBase{state: state}, name, inner})
}

func (w *Wrapped) Specificity() int { return w.Inner.Specificity() }

func (w *Wrapped) Equal(other Simple) bool {
	o, ok := other.(*Wrapped)
	return ok && o.Name == w.Name && w.Inner.Equal(o.Inner)
}

func (w *Wrapped) Hash() uint64 {
	return combine(kindWrapped, combine(strhash(w.Name), w.Inner.Hash()))
}

func (w *Wrapped) String() string {
	return w.Name + "(" + w.Inner.String() + ")"
}
