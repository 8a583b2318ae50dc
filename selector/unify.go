package selector

import (
	"sort"

	"github.com/shibukawa/cascata/arena"
)

// Unify computes the intersection of two selector lists: the set of
// elements matching both. Incompatible pairs contribute nothing, so
// the result may be empty.
func Unify(a *arena.Arena, x, y *List) *List {
	var members []*Complex
	for _, cx := range x.Members {
		for _, cy := range y.Members {
			for _, merged := range UnifyComplex(a, cx, cy) {
				members = append(members, merged)
			}
		}
	}
	members = NaiveTrim(members)
	return NewList(a, x.State(), members...)
}

// UnifyComplex weaves two chains into every chain matching both, or
// nothing when the chains cannot both hold.
func UnifyComplex(a *arena.Arena, x, y *Complex) []*Complex {
	xl := x.links()
	yl := y.links()

	last, ok := UnifyCompound(a, xl[len(xl)-1].head, yl[len(yl)-1].head)
	if !ok {
		return nil
	}

	joint, ok := reduceCombinators(xl[len(xl)-1].comb, yl[len(yl)-1].comb)
	if !ok {
		return nil
	}

	xPrefix := cloneLinks(a, xl[:len(xl)-1])
	yPrefix := cloneLinks(a, yl[:len(yl)-1])

	var result []*Complex
	for _, woven := range weave(xPrefix, yPrefix) {
		chain := append(append([]link(nil), woven...), link{head: last.Clone(a), comb: joint})
		result = append(result, fromLinks(a, x.State(), chain))
	}
	return NaiveTrim(result)
}

// weave produces every interleaving of the two link sequences that
// preserves both relative orders. The empty weave yields one empty
// sequence so a caller can always append the unified tail.
func weave(x, y []link) [][]link {
	if len(x) == 0 {
		return [][]link{append([]link(nil), y...)}
	}
	if len(y) == 0 {
		return [][]link{append([]link(nil), x...)}
	}
	var result [][]link
	for _, rest := range weave(x[1:], y) {
		result = append(result, append([]link{x[0]}, rest...))
	}
	for _, rest := range weave(x, y[1:]) {
		result = append(result, append([]link{y[0]}, rest...))
	}
	return result
}

// UnifyCompound intersects two compounds. The result keeps x's
// simples first and folds y's in, with at most one surviving element
// selector, which is then moved to the front; a conflict (two
// different element names, duplicate pseudo-elements) fails. The sources set of the result is the union
// of the inputs'.
func UnifyCompound(a *arena.Arena, x, y *Compound) (*Compound, bool) {
	if x == nil || y == nil {
		return nil, false
	}
	result := x.Clone(a)
	for _, s := range y.Simples {
		var ok bool
		result, ok = unifySimpleInto(a, s, result)
		if !ok {
			return nil, false
		}
	}
	sortCompound(result)
	if x.Sources != nil || y.Sources != nil {
		sources := NewSourceSet()
		sources.Union(x.Sources)
		sources.Union(y.Sources)
		result.Sources = sources
	}
	return result, true
}

// unifySimpleInto augments a compound with one simple selector,
// failing when a conflicting simple already exists.
func unifySimpleInto(a *arena.Arena, s Simple, c *Compound) (*Compound, bool) {
	if c.Contains(s) {
		return c, true
	}
	switch v := s.(type) {
	case *Type:
		return unifyTypeInto(a, v, c)
	case *Pseudo:
		if v.IsElement() {
			for _, existing := range c.Simples {
				if p, ok := existing.(*Pseudo); ok && p.IsElement() {
					return nil, false
				}
			}
		}
	}
	c.Simples = append(c.Simples, s)
	return c, true
}

// unifyTypeInto merges an element selector into a compound: two
// element names unify iff they are equal or one is universal, taking
// the non-universal name and the more specific namespace.
func unifyTypeInto(a *arena.Arena, t *Type, c *Compound) (*Compound, bool) {
	for i, existing := range c.Simples {
		other, ok := existing.(*Type)
		if !ok {
			continue
		}
		ns, ok := t.NS().unifiable(other.NS())
		if !ok {
			return nil, false
		}
		var name string
		switch {
		case t.IsUniversal():
			name = other.Name
		case other.IsUniversal(), t.Name == other.Name:
			name = t.Name
		default:
			return nil, false
		}
		c.Simples[i] = NewTypeNS(a, other.State(), ns, name)
		return c, true
	}
	c.Simples = append(c.Simples, t)
	return c, true
}

// sortCompound moves the element selector to the front and keeps the
// rest stable, matching the textual form CSS requires.
func sortCompound(c *Compound) {
	sort.SliceStable(c.Simples, func(i, j int) bool {
		_, iType := c.Simples[i].(*Type)
		_, jType := c.Simples[j].(*Type)
		return iType && !jType
	})
}
