package extend

import (
	"fmt"

	cascata "github.com/shibukawa/cascata"
	"github.com/shibukawa/cascata/arena"
	"github.com/shibukawa/cascata/ast"
	"github.com/shibukawa/cascata/selector"
)

// Engine propagates collected extensions across rule selector lists.
type Engine struct {
	ctx *cascata.Context
	m   *SubsetMap
}

// New builds an engine over a compilation context.
func New(ctx *cascata.Context) *Engine {
	return &Engine{ctx: ctx, m: NewSubsetMap()}
}

// Map exposes the collected subset map.
func (e *Engine) Map() *SubsetMap { return e.m }

// Collect walks a block and gathers every @extend into the subset
// map: one extension per (target compound, extending alternative)
// pair, in source order.
func (e *Engine) Collect(block *ast.Block) error {
	return e.collectBlock(block)
}

func (e *Engine) collectBlock(block *ast.Block) error {
	for _, s := range block.Statements {
		switch v := s.(type) {
		case *ast.Ruleset:
			if err := e.collectRule(v); err != nil {
				return err
			}
		case *ast.MediaBlock:
			if err := e.collectBlock(v.Body); err != nil {
				return err
			}
		case *ast.SupportsBlock:
			if err := e.collectBlock(v.Body); err != nil {
				return err
			}
		case *ast.AtRootBlock:
			if err := e.collectBlock(v.Body); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Engine) collectRule(rule *ast.Ruleset) error {
	for _, s := range rule.Body.Statements {
		ext, ok := s.(*ast.Extension)
		if !ok {
			if nested, ok := s.(*ast.Ruleset); ok {
				if err := e.collectRule(nested); err != nil {
					return err
				}
			}
			continue
		}
		for _, target := range ext.Selector.Members {
			if target.Tail != nil {
				return cascata.Positioned(ext.State(), fmt.Errorf("%w: @extend target must be a compound selector", cascata.ErrMalformedWrappedSelector))
			}
			for _, extender := range rule.Selector.Members {
				e.m.Put(&Extension{
					Target:   target.Head,
					Extender: extender,
					State:    ext.State(),
				})
			}
		}
	}
	return nil
}

// Apply rewrites every rule's selector list with the extended
// alternatives and finally drops the alternatives that still contain
// placeholders. Unmatched extensions are reported as warnings, or as
// an error when the configuration rejects them.
func (e *Engine) Apply(block *ast.Block) error {
	if err := e.applyBlock(block); err != nil {
		return err
	}
	for _, ext := range e.m.Unmatched() {
		if e.ctx.Config.Extend.RejectUnmatched {
			return cascata.Positioned(ext.State, cascata.ErrExtendTargetNotFound)
		}
		e.ctx.Report(cascata.LevelWarning, fmt.Sprintf("%q failed to @extend %q", ext.Extender, ext.Target), ext.State)
	}
	return nil
}

func (e *Engine) applyBlock(block *ast.Block) error {
	for _, s := range block.Statements {
		switch v := s.(type) {
		case *ast.Ruleset:
			v.Selector = FilterPlaceholders(e.ctx.Arena, e.ExtendList(v.Selector))
			if err := e.applyBlock(v.Body); err != nil {
				return err
			}
		case *ast.MediaBlock:
			if err := e.applyBlock(v.Body); err != nil {
				return err
			}
		case *ast.SupportsBlock:
			if err := e.applyBlock(v.Body); err != nil {
				return err
			}
		case *ast.AtRootBlock:
			if err := e.applyBlock(v.Body); err != nil {
				return err
			}
		}
	}
	return nil
}

// ExtendList grows a selector list with every alternative the
// collected extensions produce, iterated to a fixed point and
// deduplicated by naive trim. Placeholder alternatives stay in the
// result; FilterPlaceholders runs as the final step before emission.
func (e *Engine) ExtendList(list *selector.List) *selector.List {
	a := e.ctx.Arena
	members := append([]*selector.Complex(nil), list.Members...)
	work := append([]*selector.Complex(nil), list.Members...)

	for len(work) > 0 {
		current := work[0]
		work = work[1:]
		for _, produced := range e.extendAlternative(current) {
			fresh := true
			for _, m := range members {
				if m.EqualSet(produced) {
					fresh = false
					break
				}
			}
			if fresh {
				members = append(members, produced)
				work = append(work, produced)
			}
		}
	}

	members = selector.NaiveTrim(members)
	return selector.NewList(a, list.State(), members...)
}

// extendAlternative produces the direct extensions of one chain: for
// each compound position and each matching subset-map entry, the
// compound minus the key is unified with the extender's last compound
// and threaded through the extender's chain.
func (e *Engine) extendAlternative(c *selector.Complex) []*selector.Complex {
	a := e.ctx.Arena
	var produced []*selector.Complex

	pos := 0
	for cur := c; cur != nil; cur, pos = cur.Tail, pos+1 {
		if cur.Head == nil {
			continue
		}
		for _, match := range e.m.Get(cur.Head) {
			for _, ext := range match.Extensions {
				if cur.Head.Sources != nil && cur.Head.Sources.Contains(ext.Extender) {
					// The extender already flowed into this compound;
					// going further would loop forever.
					continue
				}
				replacement := e.buildReplacement(cur.Head, match.Key, ext)
				if replacement == nil {
					continue
				}
				ext.matched = true
				produced = append(produced, spliceAt(a, c, pos, replacement))
			}
		}
	}
	return produced
}

// buildReplacement computes (p − K) ⊔ extender_compound on the
// extender's chain, carrying provenance forward.
func (e *Engine) buildReplacement(head, key *selector.Compound, ext *Extension) *selector.Complex {
	a := e.ctx.Arena
	rest := head.Minus(a, key)
	extender := ext.Extender.Clone(a)
	last := extender.Last()
	// (p − K) comes first in the unified compound, the extender's
	// simples follow.
	unified, ok := selector.UnifyCompound(a, rest, last.Head)
	if !ok {
		return nil
	}
	sources := selector.NewSourceSet()
	if head.Sources != nil {
		sources.Union(head.Sources)
	}
	if last.Head.Sources != nil {
		sources.Union(last.Head.Sources)
	}
	sources.Add(ext.Extender)
	unified.Sources = sources
	last.Head = unified
	return extender
}

// spliceAt replaces the link at index pos of chain c with the
// replacement chain, preserving the surrounding combinators.
func spliceAt(a *arena.Arena, c *selector.Complex, pos int, replacement *selector.Complex) *selector.Complex {
	var head, tail *selector.Complex
	appendLink := func(n *selector.Complex) {
		if head == nil {
			head = n
		} else {
			tail.Tail = n
		}
		tail = n
	}

	i := 0
	for cur := c; cur != nil; cur, i = cur.Tail, i+1 {
		if i != pos {
			var h *selector.Compound
			if cur.Head != nil {
				h = cur.Head.Clone(a)
			}
			appendLink(selector.NewComplex(a, cur.State(), h, cur.Combinator, nil))
			continue
		}
		for r := replacement; r != nil; r = r.Tail {
			comb := r.Combinator
			if r.Tail == nil {
				// The replacement's terminal link adopts the original
				// link's combinator.
				comb = cur.Combinator
			}
			appendLink(selector.NewComplex(a, r.State(), r.Head, comb, nil))
		}
	}
	return head
}

// FilterPlaceholders drops the alternatives that still contain a
// placeholder after propagation; what remains is the emission list.
func FilterPlaceholders(a *arena.Arena, list *selector.List) *selector.List {
	var members []*selector.Complex
	for _, m := range list.Members {
		if m.HasPlaceholder() {
			continue
		}
		members = append(members, m)
	}
	return selector.NewList(a, list.State(), members...)
}
