// Package emit turns a resolved AST into CSS text. Flatten resolves
// nesting (parent selectors, bubbling of @media/@supports, @at-root
// gating) into a flat statement list; Emitter renders that list in one
// of the output styles while driving the source-map hooks.
package emit

import (
	cascata "github.com/shibukawa/cascata"
	"github.com/shibukawa/cascata/ast"
	"github.com/shibukawa/cascata/selector"
)

// Flatten resolves nested rules into a flat block: nested selectors
// are parentized, hoistable children float past their siblings, media
// and supports blocks bubble out of rules wrapped in Bubble markers,
// and @at-root strips the wrappers its query excludes.
func Flatten(ctx *cascata.Context, root *ast.Block) (*ast.Block, error) {
	out := ast.NewRootBlock(ctx.Arena, root.State())
	if err := flattenInto(ctx, root, nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func flattenInto(ctx *cascata.Context, block *ast.Block, parent *selector.List, media *ast.MediaBlock, out *ast.Block) error {
	// Loose declarations under a parent selector re-wrap into a rule
	// for that selector.
	var loose *ast.Block
	flushLoose := func() {
		if loose == nil || loose.Len() == 0 {
			return
		}
		rule := ast.NewRuleset(ctx.Arena, loose.State(), parent, loose)
		out.Append(rule)
		loose = nil
	}

	for _, s := range block.Statements {
		switch v := s.(type) {
		case *ast.Ruleset:
			flushLoose()
			if err := flattenRule(ctx, v, parent, media, out); err != nil {
				return err
			}
		case *ast.MediaBlock:
			flushLoose()
			if err := flattenMedia(ctx, v, parent, out); err != nil {
				return err
			}
		case *ast.SupportsBlock:
			flushLoose()
			inner := ast.NewBlock(ctx.Arena, v.Body.State())
			if err := flattenInto(ctx, v.Body, parent, media, inner); err != nil {
				return err
			}
			wrapped := ast.NewSupportsBlock(ctx.Arena, v.State(), v.Query, inner)
			if parent != nil {
				out.Append(ast.NewBubble(ctx.Arena, wrapped))
			} else {
				out.Append(wrapped)
			}
		case *ast.AtRootBlock:
			flushLoose()
			nextParent := parent
			nextMedia := media
			if v.ExcludeNode(&ast.Ruleset{}) {
				nextParent = nil
			}
			if media != nil && v.ExcludeNode(media) {
				nextMedia = nil
			}
			if err := flattenInto(ctx, v.Body, nextParent, nextMedia, out); err != nil {
				return err
			}
		default:
			if parent != nil {
				if loose == nil {
					loose = ast.NewBlock(ctx.Arena, s.State())
				}
				loose.Append(s)
				continue
			}
			out.Append(s)
		}
	}
	flushLoose()
	return nil
}

func flattenRule(ctx *cascata.Context, rule *ast.Ruleset, parent *selector.List, media *ast.MediaBlock, out *ast.Block) error {
	sel, err := selector.Parentize(ctx.Arena, rule.Selector, parent)
	if err != nil {
		return err
	}
	if media != nil {
		for _, m := range sel.Members {
			m.Media = media
		}
	}

	body := ast.NewBlock(ctx.Arena, rule.Body.State())
	var hoisted []ast.Statement
	for _, s := range rule.Body.Statements {
		if s.Hoistable() {
			hoisted = append(hoisted, s)
			continue
		}
		body.Append(s)
	}

	if body.Len() > 0 {
		flat := ast.NewRuleset(ctx.Arena, rule.State(), sel, body)
		flat.SetTabs(rule.Tabs())
		flat.SetGroupEnd(rule.GroupEnd())
		out.Append(flat)
	}

	for _, h := range hoisted {
		nested := ast.NewBlock(ctx.Arena, rule.Body.State())
		nested.Append(h)
		if err := flattenInto(ctx, nested, sel, media, out); err != nil {
			return err
		}
	}
	return nil
}

func flattenMedia(ctx *cascata.Context, m *ast.MediaBlock, parent *selector.List, out *ast.Block) error {
	bubbled := ast.NewMediaBlock(ctx.Arena, m.State(), m.Queries, ast.NewBlock(ctx.Arena, m.Body.State()))
	if err := flattenInto(ctx, m.Body, parent, bubbled, bubbled.Body); err != nil {
		return err
	}
	if parent != nil {
		// The media block floats out of the enclosing rule.
		out.Append(ast.NewBubble(ctx.Arena, bubbled))
		return nil
	}
	out.Append(bubbled)
	return nil
}
