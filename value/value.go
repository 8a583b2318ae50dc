// Package value implements the tagged union of evaluable things: the
// scalar and container values the expression evaluator reduces to and
// the emitter stringifies. Values compare by structure and carry a hash
// that agrees with equality.
package value

import (
	cascata "github.com/shibukawa/cascata"
)

// Kind discriminates the value union.
type Kind int

const (
	KindBool Kind = iota
	KindNumber
	KindColor
	KindString
	KindStringSchema
	KindList
	KindMap
	KindNull
	KindCustomError
	KindCustomWarning
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindColor:
		return "color"
	case KindString:
		return "string"
	case KindStringSchema:
		return "string schema"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindNull:
		return "null"
	case KindCustomError:
		return "error"
	case KindCustomWarning:
		return "warning"
	}
	return "unknown"
}

// Value is one evaluable value. Equal is structural; Hash agrees with
// Equal. Invisible values contribute nothing to the CSS output.
type Value interface {
	Kind() Kind
	State() cascata.ParserState
	Equal(other Value) bool
	Hash() uint64
	String() string
	Invisible() bool

	Delayed() bool
	SetDelayed(bool)
	Expanded() bool
	SetExpanded(bool)
	Interpolant() bool
	SetInterpolant(bool)
}

// base carries the parser state and the three evaluation-phase flags
// shared by every value kind. is_delayed and is_expanded are
// independent flags; the evaluator owns their meaning.
type base struct {
	state       cascata.ParserState
	delayed     bool
	expanded    bool
	interpolant bool
}

func (b *base) State() cascata.ParserState { return b.state }
func (b *base) Delayed() bool              { return b.delayed }
func (b *base) SetDelayed(d bool)          { b.delayed = d }
func (b *base) Expanded() bool             { return b.expanded }
func (b *base) SetExpanded(e bool)         { b.expanded = e }
func (b *base) Interpolant() bool          { return b.interpolant }
func (b *base) SetInterpolant(i bool)      { b.interpolant = i }
func (b *base) Invisible() bool            { return false }

const hashSeed = 0x9e3779b97f4a7c15

// hashCombine folds one component hash into a running seed.
func hashCombine(seed, h uint64) uint64 {
	return seed ^ (h + hashSeed + (seed << 6) + (seed >> 2))
}

func hashString(s string) uint64 {
	// FNV-1a
	var h uint64 = 14695981039346656037
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return h
}

func hashBool(b bool) uint64 {
	if b {
		return 1231
	}
	return 1237
}
