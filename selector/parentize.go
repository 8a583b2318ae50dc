package selector

import (
	cascata "github.com/shibukawa/cascata"
	"github.com/shibukawa/cascata/arena"
)

// Parentize resolves every "&" in child against the enclosing parent
// list, distributing over commas. With a nil parent a child without
// parent references passes through unchanged and one with them is a
// top-level error. Under a parent, a child without references gets the
// implicit descendant prefix.
func Parentize(a *arena.Arena, child, parent *List) (*List, error) {
	if parent == nil || parent.Len() == 0 {
		if child.HasParentRef() {
			return nil, cascata.Positioned(child.State(), cascata.ErrTopLevelParentReference)
		}
		return child, nil
	}

	var members []*Complex
	for _, c := range child.Members {
		for _, p := range parent.Members {
			merged, err := parentizeComplex(a, c, p)
			if err != nil {
				return nil, err
			}
			members = append(members, merged)
		}
	}
	return NewList(a, child.State(), members...), nil
}

// parentizeComplex resolves one child chain against one parent chain.
// Only a "&" that appears directly in a compound suppresses the
// implicit descendant prefix; references inside wrapped pseudos are
// rewritten in place first.
func parentizeComplex(a *arena.Arena, c, p *Complex) (*Complex, error) {
	direct := false
	for cur := c; cur != nil; cur = cur.Tail {
		if cur.Head != nil && cur.Head.HasParentRef() {
			direct = true
			break
		}
	}
	if !direct {
		resolved, err := resolveWrapped(a, c, p)
		if err != nil {
			return nil, err
		}
		// Implicit nesting: the child becomes a descendant of the parent.
		chain := p.Clone(a)
		chain.Last().Tail = resolved
		return chain, nil
	}

	cl := c.links()
	pl := p.links()
	var out []link

	for _, l := range cl {
		if l.head == nil || !l.head.HasParentRef() {
			head := l.head
			if head != nil {
				replaced, err := parentizeWrapped(a, head, p)
				if err != nil {
					return nil, err
				}
				head = replaced
			}
			out = append(out, link{head: head, comb: l.comb})
			continue
		}

		rest := withoutParent(a, l.head)
		if rest.Len() == 0 {
			// A lone "&" takes the parent's entire chain.
			spliced := cloneLinks(a, pl)
			if _, ok := reduceCombinators(l.comb, spliced[0].comb); !ok {
				return nil, cascata.Positioned(l.head.State(), cascata.ErrIncompatibleCombinators)
			}
			spliced[0].comb = l.comb
			out = append(out, spliced...)
			continue
		}

		// "&" inside a compound merges the parent's last compound with
		// the remaining simples.
		spliced := cloneLinks(a, pl)
		last := spliced[len(spliced)-1]
		merged := NewCompound(a, l.head.State())
		merged.Simples = append(merged.Simples, last.head.Simples...)
		for _, s := range rest.Simples {
			if !merged.Contains(s) {
				merged.Simples = append(merged.Simples, s)
			}
		}
		if last.head.Sources != nil {
			merged.Sources = last.head.Sources.Clone()
		}
		spliced[len(spliced)-1] = link{head: merged, comb: last.comb}
		if _, ok := reduceCombinators(l.comb, spliced[0].comb); !ok {
			return nil, cascata.Positioned(l.head.State(), cascata.ErrIncompatibleCombinators)
		}
		spliced[0].comb = l.comb
		out = append(out, spliced...)
	}

	return fromLinks(a, c.State(), out), nil
}

// resolveWrapped rewrites wrapped inner lists along a whole chain.
func resolveWrapped(a *arena.Arena, c, p *Complex) (*Complex, error) {
	cl := cloneLinks(a, c.links())
	for i, l := range cl {
		if l.head == nil {
			continue
		}
		head, err := parentizeWrapped(a, l.head, p)
		if err != nil {
			return nil, err
		}
		cl[i].head = head
	}
	return fromLinks(a, c.State(), cl), nil
}

// parentizeWrapped re-parentizes wrapped inner lists at their own
// site, so ":not(&)" resolves like any other nested selector.
func parentizeWrapped(a *arena.Arena, head *Compound, p *Complex) (*Compound, error) {
	touched := false
	for _, s := range head.Simples {
		if w, ok := s.(*Wrapped); ok && w.Inner.HasParentRef() {
			touched = true
			break
		}
	}
	if !touched {
		return head, nil
	}

	result := NewCompound(a, head.State())
	if head.Sources != nil {
		result.Sources = head.Sources.Clone()
	}
	parentList := NewList(a, p.State(), p)
	for _, s := range head.Simples {
		w, ok := s.(*Wrapped)
		if !ok || !w.Inner.HasParentRef() {
			result.Simples = append(result.Simples, s)
			continue
		}
		inner, err := Parentize(a, w.Inner, parentList)
		if err != nil {
			return nil, err
		}
		result.Simples = append(result.Simples, NewWrapped(a, w.State(), w.Name, inner))
	}
	return result, nil
}

// withoutParent strips every "&" from a compound.
func withoutParent(a *arena.Arena, c *Compound) *Compound {
	result := NewCompound(a, c.State())
	for _, s := range c.Simples {
		if _, ok := s.(*Parent); ok {
			continue
		}
		result.Simples = append(result.Simples, s)
	}
	if c.Sources != nil {
		result.Sources = c.Sources.Clone()
	}
	return result
}

func cloneLinks(a *arena.Arena, ls []link) []link {
	out := make([]link, len(ls))
	for i, l := range ls {
		head := l.head
		if head != nil {
			head = head.Clone(a)
		}
		out[i] = link{head: head, comb: l.comb}
	}
	return out
}

// reduceCombinators merges the combinators meeting at a splice or
// unification point. Descendant merges with anything; a combinator
// pairs with itself; sibling absorbs into adjacent. Any other pairing
// (child with sibling or adjacent) is incompatible.
func reduceCombinators(x, y Combinator) (Combinator, bool) {
	switch {
	case x == Descendant:
		return y, true
	case y == Descendant:
		return x, true
	case x == y && x == Child:
		return Child, true
	case x == Sibling && y == Adjacent, x == Adjacent && y == Sibling:
		return Adjacent, true
	case x == y:
		return x, true
	}
	return Descendant, false
}
