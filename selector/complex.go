package selector

import (
	"strings"

	cascata "github.com/shibukawa/cascata"
	"github.com/shibukawa/cascata/arena"
)

// Complex is a combinator-linked chain of compounds, e.g. "a > b c".
// The chain reads left to right; the terminal link has a nil Tail and
// the Descendant combinator.
type Complex struct {
	state      cascata.ParserState
	Head       *Compound
	Combinator Combinator
	Tail       *Complex

	// Media is a non-owning reference to the enclosing @media context,
	// or nil.
	Media MediaContext
}

// NewComplex allocates one chain link.
func NewComplex(a *arena.Arena, state cascata.ParserState, head *Compound, comb Combinator, tail *Complex) *Complex {
	return arena.Alloc(a, Complex{state: state, Head: head, Combinator: comb, Tail: tail})
}

// FromCompound wraps a single compound into a one-link chain.
func FromCompound(a *arena.Arena, head *Compound) *Complex {
	return NewComplex(a, head.State(), head, Descendant, nil)
}

// State returns the parser state of the first link.
func (c *Complex) State() cascata.ParserState { return c.state }

// Last returns the terminal link of the chain.
func (c *Complex) Last() *Complex {
	cur := c
	for cur.Tail != nil {
		cur = cur.Tail
	}
	return cur
}

// Length reports the number of links.
func (c *Complex) Length() int {
	n := 0
	for cur := c; cur != nil; cur = cur.Tail {
		n++
	}
	return n
}

// HasParentRef reports whether any compound in the chain references
// "&".
func (c *Complex) HasParentRef() bool {
	for cur := c; cur != nil; cur = cur.Tail {
		if cur.Head != nil && cur.Head.HasParentRef() {
			return true
		}
		if cur.Head != nil {
			for _, s := range cur.Head.Simples {
				if w, ok := s.(*Wrapped); ok && w.Inner.HasParentRef() {
					return true
				}
			}
		}
	}
	return false
}

// HasPlaceholder reports whether any compound contains a placeholder.
func (c *Complex) HasPlaceholder() bool {
	for cur := c; cur != nil; cur = cur.Tail {
		if cur.Head != nil && cur.Head.HasPlaceholder() {
			return true
		}
	}
	return false
}

// Specificity is the head's weight plus the tail's.
func (c *Complex) Specificity() int {
	total := 0
	for cur := c; cur != nil; cur = cur.Tail {
		if cur.Head != nil {
			total += cur.Head.Specificity()
		}
	}
	return total
}

// Equal is the order-dependent mode applied link by link.
func (c *Complex) Equal(other *Complex) bool {
	a, b := c, other
	for a != nil && b != nil {
		if a.Combinator != b.Combinator {
			return false
		}
		if (a.Head == nil) != (b.Head == nil) {
			return false
		}
		if a.Head != nil && !a.Head.Equal(b.Head) {
			return false
		}
		a, b = a.Tail, b.Tail
	}
	return a == nil && b == nil
}

// EqualSet compares link by link with set-like compound equality.
func (c *Complex) EqualSet(other *Complex) bool {
	a, b := c, other
	for a != nil && b != nil {
		if a.Combinator != b.Combinator {
			return false
		}
		if (a.Head == nil) != (b.Head == nil) {
			return false
		}
		if a.Head != nil && !a.Head.EqualSet(b.Head) {
			return false
		}
		a, b = a.Tail, b.Tail
	}
	return a == nil && b == nil
}

// Clone copies every link of the chain; compounds are cloned, simple
// selectors shared.
func (c *Complex) Clone(a *arena.Arena) *Complex {
	if c == nil {
		return nil
	}
	var head *Compound
	if c.Head != nil {
		head = c.Head.Clone(a)
	}
	clone := NewComplex(a, c.state, head, c.Combinator, c.Tail.Clone(a))
	clone.Media = c.Media
	return clone
}

// links flattens the chain into a slice. Each entry carries the
// combinator that precedes its compound; the first entry's combinator
// is always Descendant.
type link struct {
	head *Compound
	comb Combinator
}

func (c *Complex) links() []link {
	var result []link
	prev := Descendant
	for cur := c; cur != nil; cur = cur.Tail {
		result = append(result, link{head: cur.Head, comb: prev})
		prev = cur.Combinator
	}
	return result
}

// fromLinks rebuilds a chain from the flattened form.
func fromLinks(a *arena.Arena, state cascata.ParserState, ls []link) *Complex {
	var head *Complex
	var tail *Complex
	for i, l := range ls {
		comb := Descendant
		if i+1 < len(ls) {
			comb = ls[i+1].comb
		}
		node := NewComplex(a, state, l.head, comb, nil)
		if head == nil {
			head = node
		} else {
			tail.Tail = node
		}
		tail = node
	}
	return head
}

func (c *Complex) String() string {
	var sb strings.Builder
	for cur := c; cur != nil; cur = cur.Tail {
		if cur.Head != nil {
			sb.WriteString(cur.Head.String())
		}
		if cur.Tail != nil {
			if cur.Combinator == Descendant {
				sb.WriteByte(' ')
			} else {
				sb.WriteString(" " + cur.Combinator.String() + " ")
			}
		}
	}
	return sb.String()
}

// Less orders chains lexicographically over their canonical text.
func (c *Complex) Less(other *Complex) bool {
	return c.String() < other.String()
}
