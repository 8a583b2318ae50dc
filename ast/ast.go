// Package ast defines the statement side of the node graph: blocks,
// rules, directives and control flow. Expression values live in the
// value package; selectors in the selector package. All nodes are
// allocated in the compilation's arena and carry the parser state of
// the span that produced them.
package ast

import (
	cascata "github.com/shibukawa/cascata"
	"github.com/shibukawa/cascata/arena"
)

// Statement is one node of a stylesheet body. Hoistable statements
// float past non-hoistable siblings during emission; bubbling
// statements additionally float out of their enclosing rule. Invisible
// statements contribute nothing to the CSS output.
type Statement interface {
	State() cascata.ParserState
	Hoistable() bool
	Bubbles() bool
	Invisible() bool
	Tabs() int
	SetTabs(int)
	GroupEnd() bool
	SetGroupEnd(bool)
	stmtNode()
}

// stmtBase carries the parser state plus the two emitter-only fields
// every statement records: the tabs depth and the group_end flag that
// separates adjacent rules in the output.
type stmtBase struct {
	state    cascata.ParserState
	tabs     int
	groupEnd bool
}

func (b *stmtBase) State() cascata.ParserState { return b.state }
func (b *stmtBase) Hoistable() bool            { return false }
func (b *stmtBase) Bubbles() bool              { return false }
func (b *stmtBase) Invisible() bool            { return false }
func (b *stmtBase) Tabs() int                  { return b.tabs }
func (b *stmtBase) SetTabs(tabs int)           { b.tabs = tabs }
func (b *stmtBase) GroupEnd() bool             { return b.groupEnd }
func (b *stmtBase) SetGroupEnd(end bool)       { b.groupEnd = end }
func (b *stmtBase) stmtNode()                  {}

// Block is an ordered sequence of statements. The two cumulative
// flags are maintained as statements are appended so the emitter can
// decide hoisting without rescanning.
type Block struct {
	state           cascata.ParserState
	Statements      []Statement
	HasHoistable    bool
	HasNonHoistable bool
	IsRoot          bool
}

// NewBlock allocates an empty block.
func NewBlock(a *arena.Arena, state cascata.ParserState) *Block {
	return arena.Alloc(a, Block{state: state})
}

// NewRootBlock allocates the top-level block of a stylesheet.
func NewRootBlock(a *arena.Arena, state cascata.ParserState) *Block {
	b := NewBlock(a, state)
	b.IsRoot = true
	return b
}

// State returns the parser state of the block.
func (b *Block) State() cascata.ParserState { return b.state }

// Append adds a statement and updates the cumulative flags.
func (b *Block) Append(s Statement) {
	if s.Hoistable() {
		b.HasHoistable = true
	} else {
		b.HasNonHoistable = true
	}
	b.Statements = append(b.Statements, s)
}

// Len reports the number of statements.
func (b *Block) Len() int { return len(b.Statements) }

// Invisible reports whether every statement of the block is invisible.
func (b *Block) Invisible() bool {
	for _, s := range b.Statements {
		if !s.Invisible() {
			return false
		}
	}
	return true
}
