// Package extend implements @extend: collection of extension pairs
// into a subset map and their propagation across the rule list until a
// fixed point, with provenance-based cycle detection and placeholder
// stripping.
package extend

import (
	cascata "github.com/shibukawa/cascata"
	"github.com/shibukawa/cascata/selector"
)

// Extension is one collected "@extend target" request: the compound
// being extended and the complex selector of the rule that requested
// it.
type Extension struct {
	Target   *selector.Compound
	Extender *selector.Complex
	State    cascata.ParserState

	// matched flips when propagation applies the extension at least
	// once, so unmatched extensions can be reported afterwards.
	matched bool
}

// SubsetMap stores extensions keyed by their target compound and
// answers subset lookups: all keys contained in a queried compound.
type SubsetMap struct {
	entries []*subsetEntry
}

type subsetEntry struct {
	key        *selector.Compound
	extensions []*Extension
}

// Match is one subset lookup hit.
type Match struct {
	Key        *selector.Compound
	Extensions []*Extension
}

// NewSubsetMap builds an empty map.
func NewSubsetMap() *SubsetMap {
	return &SubsetMap{}
}

// Put records an extension under its target compound. Keys compare
// set-like, so ".a.b" and ".b.a" share an entry.
func (m *SubsetMap) Put(ext *Extension) {
	for _, e := range m.entries {
		if e.key.EqualSet(ext.Target) {
			e.extensions = append(e.extensions, ext)
			return
		}
	}
	m.entries = append(m.entries, &subsetEntry{key: ext.Target, extensions: []*Extension{ext}})
}

// Len reports the number of distinct target compounds.
func (m *SubsetMap) Len() int { return len(m.entries) }

// Get enumerates every key that is a subset of the queried compound,
// in the order the keys were first inserted. Declaration order drives
// the deterministic application order of extensions.
func (m *SubsetMap) Get(c *selector.Compound) []Match {
	var result []Match
	for _, e := range m.entries {
		if e.key.SubsetOf(c) {
			result = append(result, Match{Key: e.key, Extensions: e.extensions})
		}
	}
	return result
}

// Unmatched returns the extensions propagation never applied, in
// insertion order.
func (m *SubsetMap) Unmatched() []*Extension {
	var result []*Extension
	for _, e := range m.entries {
		for _, ext := range e.extensions {
			if !ext.matched {
				result = append(result, ext)
			}
		}
	}
	return result
}
