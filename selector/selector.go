// Package selector implements the four-level selector model (simple,
// compound, complex, list) together with the algebra the compiler
// needs: parent resolution, unification, the superselector relation
// and the naive-trim deduplication used by @extend.
package selector

import (
	cascata "github.com/shibukawa/cascata"
)

// Combinator links two compounds inside a complex selector.
type Combinator int

const (
	// Descendant is the whitespace combinator. It also terminates a
	// chain: the last link of every complex selector carries it.
	Descendant Combinator = iota
	Child                 // >
	Sibling               // ~
	Adjacent              // +
	Reference             // /
)

func (c Combinator) String() string {
	switch c {
	case Child:
		return ">"
	case Sibling:
		return "~"
	case Adjacent:
		return "+"
	case Reference:
		return "/"
	}
	return " "
}

// Specificity weights. A selector's specificity is the plain sum of
// its parts' weights.
const (
	SpecType      = 1
	SpecClass     = 1000
	SpecAttribute = SpecClass
	SpecID        = 1000000
)

// MediaContext is a non-owning reference to the enclosing @media
// statement. It exists so rules produced under a media query can be
// told apart during @extend without the selector package depending on
// the AST.
type MediaContext interface {
	MediaState() cascata.ParserState
}

// Namespace is the optional namespace prefix a simple selector may
// carry. The empty string and "*" are the two special values.
type Namespace struct {
	Has  bool
	Name string
}

// IsUniversal reports whether the namespace is the "*|" wildcard.
func (n Namespace) IsUniversal() bool { return n.Has && n.Name == "*" }

// IsEmpty reports whether the namespace is the explicit "|" empty one.
func (n Namespace) IsEmpty() bool { return n.Has && n.Name == "" }

// String renders the prefix including the separator, or nothing.
func (n Namespace) String() string {
	if !n.Has {
		return ""
	}
	return n.Name + "|"
}

// unifiable reports whether two namespaces can denote the same
// element: universal absorbs any, empty only matches empty, and two
// concrete prefixes must be equal. The surviving namespace is the more
// specific one.
func (n Namespace) unifiable(other Namespace) (Namespace, bool) {
	switch {
	case !n.Has || n.IsUniversal():
		return other, true
	case !other.Has || other.IsUniversal():
		return n, true
	case n.Name == other.Name:
		return n, true
	}
	return Namespace{}, false
}

// contains reports whether n, read as a pattern, matches other. Used
// by the superselector relation.
func (n Namespace) contains(other Namespace) bool {
	if !n.Has || n.IsUniversal() {
		return true
	}
	return other.Has && n.Name == other.Name
}
