package selector

import (
	"sort"
	"strings"

	cascata "github.com/shibukawa/cascata"
	"github.com/shibukawa/cascata/arena"
)

// SourceSet tracks which complex selectors extended into a compound.
// It is the provenance record the extend engine uses to detect cycles.
type SourceSet struct {
	members map[string]*Complex
}

// NewSourceSet builds an empty source set.
func NewSourceSet() *SourceSet {
	return &SourceSet{members: map[string]*Complex{}}
}

// Add records a source selector. Two selectors with the same canonical
// text count as one.
func (s *SourceSet) Add(c *Complex) {
	s.members[c.String()] = c
}

// Contains reports whether a selector with c's canonical text is a
// member.
func (s *SourceSet) Contains(c *Complex) bool {
	_, ok := s.members[c.String()]
	return ok
}

// Len reports the number of members.
func (s *SourceSet) Len() int { return len(s.members) }

// Union merges another set into this one.
func (s *SourceSet) Union(other *SourceSet) {
	if other == nil {
		return
	}
	for k, v := range other.members {
		s.members[k] = v
	}
}

// SubsetOf reports whether every member is also in other.
func (s *SourceSet) SubsetOf(other *SourceSet) bool {
	if other == nil {
		return len(s.members) == 0
	}
	for k := range s.members {
		if _, ok := other.members[k]; !ok {
			return false
		}
	}
	return true
}

// Members returns the sources in canonical text order.
func (s *SourceSet) Members() []*Complex {
	keys := make([]string, 0, len(s.members))
	for k := range s.members {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	result := make([]*Complex, 0, len(keys))
	for _, k := range keys {
		result = append(result, s.members[k])
	}
	return result
}

// Clone copies the set.
func (s *SourceSet) Clone() *SourceSet {
	c := NewSourceSet()
	c.Union(s)
	return c
}

// Compound is an ordered conjunction of simple selectors treated as a
// set-like unit, e.g. "a.foo#bar".
type Compound struct {
	state   cascata.ParserState
	Simples []Simple

	// Sources is the provenance set of complex selectors that extended
	// into this compound. Nil means no extension touched it.
	Sources *SourceSet
}

// NewCompound allocates a compound from simple selectors.
func NewCompound(a *arena.Arena, state cascata.ParserState, simples ...Simple) *Compound {
	return arena.Alloc(a, Compound{state: state, Simples: simples})
}

// State returns the parser state of the compound.
func (c *Compound) State() cascata.ParserState { return c.state }

// Len reports the number of simple selectors.
func (c *Compound) Len() int { return len(c.Simples) }

// HasParentRef reports whether a "&" occurs directly in the compound.
func (c *Compound) HasParentRef() bool {
	for _, s := range c.Simples {
		if _, ok := s.(*Parent); ok {
			return true
		}
	}
	return false
}

// HasPlaceholder reports whether a "%name" occurs in the compound,
// including inside wrapped inner lists.
func (c *Compound) HasPlaceholder() bool {
	for _, s := range c.Simples {
		switch v := s.(type) {
		case *Placeholder:
			return true
		case *Wrapped:
			if v.Inner.HasPlaceholder() {
				return true
			}
		}
	}
	return false
}

// IsPlaceholderOnly reports whether every simple is a placeholder. A
// rule whose whole selector list is placeholder-only is invisible.
func (c *Compound) IsPlaceholderOnly() bool {
	if len(c.Simples) == 0 {
		return false
	}
	for _, s := range c.Simples {
		if _, ok := s.(*Placeholder); !ok {
			return false
		}
	}
	return true
}

// Specificity is the sum over the simple selectors.
func (c *Compound) Specificity() int {
	total := 0
	for _, s := range c.Simples {
		total += s.Specificity()
	}
	return total
}

// Contains reports whether an equal simple selector is present.
func (c *Compound) Contains(simple Simple) bool {
	for _, s := range c.Simples {
		if s.Equal(simple) {
			return true
		}
	}
	return false
}

// Equal is the order-dependent mode: same simples in the same order.
func (c *Compound) Equal(other *Compound) bool {
	if other == nil || len(other.Simples) != len(c.Simples) {
		return false
	}
	for i, s := range c.Simples {
		if !s.Equal(other.Simples[i]) {
			return false
		}
	}
	return true
}

// EqualSet is the order-independent mode: the two compounds hold the
// same set of simples. Extend uses this mode.
func (c *Compound) EqualSet(other *Compound) bool {
	if other == nil || len(other.Simples) != len(c.Simples) {
		return false
	}
	return c.SubsetOf(other) && other.SubsetOf(c)
}

// SubsetOf reports whether every simple of c occurs in other.
func (c *Compound) SubsetOf(other *Compound) bool {
	if other == nil {
		return len(c.Simples) == 0
	}
	for _, s := range c.Simples {
		if !other.Contains(s) {
			return false
		}
	}
	return true
}

// Minus returns a new compound holding the simples of c that do not
// occur in other.
func (c *Compound) Minus(a *arena.Arena, other *Compound) *Compound {
	var rest []Simple
	for _, s := range c.Simples {
		if other == nil || !other.Contains(s) {
			rest = append(rest, s)
		}
	}
	result := NewCompound(a, c.state, rest...)
	if c.Sources != nil {
		result.Sources = c.Sources.Clone()
	}
	return result
}

// Clone copies the compound, sharing the simple selector nodes.
func (c *Compound) Clone(a *arena.Arena) *Compound {
	clone := NewCompound(a, c.state)
	clone.Simples = append(clone.Simples, c.Simples...)
	if c.Sources != nil {
		clone.Sources = c.Sources.Clone()
	}
	return clone
}

// Hash agrees with EqualSet: simple hashes fold order-independently.
func (c *Compound) Hash() uint64 {
	var h uint64
	for _, s := range c.Simples {
		h ^= s.Hash()
	}
	return combine(uint64(len(c.Simples)), h)
}

func (c *Compound) String() string {
	var sb strings.Builder
	for _, s := range c.Simples {
		sb.WriteString(s.String())
	}
	return sb.String()
}

// Less orders compounds lexicographically over their canonical text.
// Unification does not use it; sortCompound orders unified simples.
func (c *Compound) Less(other *Compound) bool {
	return c.String() < other.String()
}
