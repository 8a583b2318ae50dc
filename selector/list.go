package selector

import (
	"strings"

	cascata "github.com/shibukawa/cascata"
	"github.com/shibukawa/cascata/arena"
)

// List is the comma level: an ordered list of complex alternatives.
type List struct {
	state   cascata.ParserState
	Members []*Complex
}

// NewList allocates a selector list.
func NewList(a *arena.Arena, state cascata.ParserState, members ...*Complex) *List {
	return arena.Alloc(a, List{state: state, Members: members})
}

// State returns the parser state of the list.
func (l *List) State() cascata.ParserState { return l.state }

// Len reports the number of alternatives.
func (l *List) Len() int { return len(l.Members) }

// HasParentRef reports whether any alternative references "&".
func (l *List) HasParentRef() bool {
	for _, m := range l.Members {
		if m.HasParentRef() {
			return true
		}
	}
	return false
}

// HasPlaceholder reports whether any alternative contains a
// placeholder.
func (l *List) HasPlaceholder() bool {
	for _, m := range l.Members {
		if m.HasPlaceholder() {
			return true
		}
	}
	return false
}

// IsInvisible reports whether every alternative is placeholder-only,
// which suppresses the owning rule during emission.
func (l *List) IsInvisible() bool {
	if len(l.Members) == 0 {
		return true
	}
	for _, m := range l.Members {
		visible := false
		for cur := m; cur != nil; cur = cur.Tail {
			if cur.Head != nil && !cur.Head.IsPlaceholderOnly() {
				visible = true
				break
			}
		}
		if visible {
			return false
		}
	}
	return true
}

// Specificity is the maximum over the alternatives.
func (l *List) Specificity() int {
	max := 0
	for _, m := range l.Members {
		if s := m.Specificity(); s > max {
			max = s
		}
	}
	return max
}

// Equal is the order-dependent mode: same alternatives in order.
func (l *List) Equal(other *List) bool {
	if other == nil || len(other.Members) != len(l.Members) {
		return false
	}
	for i, m := range l.Members {
		if !m.Equal(other.Members[i]) {
			return false
		}
	}
	return true
}

// Contains reports set-like membership of a complex selector.
func (l *List) Contains(c *Complex) bool {
	for _, m := range l.Members {
		if m.EqualSet(c) {
			return true
		}
	}
	return false
}

// Hash agrees with Equal.
func (l *List) Hash() uint64 {
	h := uint64(len(l.Members))
	for _, m := range l.Members {
		h = combine(h, strhash(m.String()))
	}
	return h
}

// Clone copies the list and every chain in it.
func (l *List) Clone(a *arena.Arena) *List {
	members := make([]*Complex, 0, len(l.Members))
	for _, m := range l.Members {
		members = append(members, m.Clone(a))
	}
	return NewList(a, l.state, members...)
}

func (l *List) String() string {
	parts := make([]string, 0, len(l.Members))
	for _, m := range l.Members {
		parts = append(parts, m.String())
	}
	return strings.Join(parts, ", ")
}
