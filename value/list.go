package value

import (
	"strings"

	cascata "github.com/shibukawa/cascata"
)

// Separator is the delimiter of a list value.
type Separator int

const (
	SepSpace Separator = iota
	SepComma
)

func (s Separator) String() string {
	if s == SepComma {
		return ", "
	}
	return " "
}

// List is an ordered sequence of values. IsArglist marks lists that
// came from a rest argument expansion.
type List struct {
	base
	Items     []Value
	Separator Separator
	IsArglist bool
}

// NewList builds a list value.
func NewList(state cascata.ParserState, sep Separator, items ...Value) *List {
	return &List{base: base{state: state}, Items: items, Separator: sep}
}

func (l *List) Kind() Kind { return KindList }

// Equal requires the same separator and pairwise equal items in order.
func (l *List) Equal(other Value) bool {
	o, ok := other.(*List)
	if !ok || o.Separator != l.Separator || len(o.Items) != len(l.Items) {
		return false
	}
	for i, item := range l.Items {
		if !item.Equal(o.Items[i]) {
			return false
		}
	}
	return true
}

func (l *List) Hash() uint64 {
	h := hashCombine(uint64(KindList), uint64(l.Separator))
	for _, item := range l.Items {
		h = hashCombine(h, item.Hash())
	}
	return h
}

// Invisible reports whether the list contributes nothing to the output:
// empty lists and lists of invisible items are suppressed.
func (l *List) Invisible() bool {
	for _, item := range l.Items {
		if !item.Invisible() {
			return false
		}
	}
	return true
}

func (l *List) String() string {
	parts := make([]string, 0, len(l.Items))
	for _, item := range l.Items {
		if item.Invisible() {
			continue
		}
		parts = append(parts, item.String())
	}
	return strings.Join(parts, l.Separator.String())
}

// SetDelayed propagates to every item.
func (l *List) SetDelayed(d bool) {
	l.base.SetDelayed(d)
	for _, item := range l.Items {
		item.SetDelayed(d)
	}
}

// Append adds an item to the list.
func (l *List) Append(item Value) {
	l.Items = append(l.Items, item)
}
