package ast

import (
	"strings"

	cascata "github.com/shibukawa/cascata"
	"github.com/shibukawa/cascata/arena"
)

// AtRootExpr is the "(with: ...)" / "(without: ...)" query of an
// @at-root block. Kinds holds the listed directive names; "all" covers
// every wrapper.
type AtRootExpr struct {
	state   cascata.ParserState
	Feature string // "with" or "without"
	Kinds   []string
}

// NewAtRootExpr builds an @at-root query.
func NewAtRootExpr(state cascata.ParserState, feature string, kinds []string) *AtRootExpr {
	return &AtRootExpr{state: state, Feature: feature, Kinds: kinds}
}

// Exclude reports whether a wrapper of the given kind is stripped when
// the block moves to the root. With a "with" feature only the listed
// kinds (or "all") are kept; otherwise the listed kinds are stripped.
func (e *AtRootExpr) Exclude(kind string) bool {
	kind = normalizeKind(kind)
	listed := false
	for _, k := range e.Kinds {
		if k == "all" || k == kind {
			listed = true
			break
		}
	}
	if e.Feature == "with" {
		return !listed
	}
	return listed
}

// normalizeKind groups @keyframes vendor variants under "keyframes".
func normalizeKind(kind string) string {
	kind = strings.TrimPrefix(kind, "@")
	if strings.HasSuffix(kind, "keyframes") {
		return "keyframes"
	}
	return kind
}

// AtRootBlock hoists its body to the stylesheet root, stripping the
// wrappers its expression excludes.
type AtRootBlock struct {
	stmtBase
	Body *Block
	Expr *AtRootExpr
}

// NewAtRootBlock allocates an @at-root block. A nil expression means
// the default query "(without: rule)".
func NewAtRootBlock(a *arena.Arena, state cascata.ParserState, body *Block, expr *AtRootExpr) *AtRootBlock {
	return arena.Alloc(a, AtRootBlock{stmtBase: stmtBase{state: state}, Body: body, Expr: expr})
}

func (r *AtRootBlock) Hoistable() bool { return true }
func (r *AtRootBlock) Bubbles() bool   { return true }

// ExcludeNode decides per enclosing wrapper statement whether it is
// stripped while this block floats to the root.
func (r *AtRootBlock) ExcludeNode(s Statement) bool {
	var kind string
	switch v := s.(type) {
	case *Ruleset:
		kind = "rule"
	case *MediaBlock:
		kind = "media"
	case *SupportsBlock:
		kind = "supports"
	case *AtRule:
		kind = v.Keyword
	default:
		return false
	}
	if r.Expr == nil {
		// Bare @at-root escapes style rules only.
		return kind == "rule"
	}
	return r.Expr.Exclude(kind)
}
