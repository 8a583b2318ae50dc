package emit

import (
	"strings"

	cascata "github.com/shibukawa/cascata"
	"github.com/shibukawa/cascata/ast"
	"github.com/shibukawa/cascata/selector"
	"github.com/shibukawa/cascata/sourcemap"
	"github.com/shibukawa/cascata/value"
)

// Emitter renders a flattened block as CSS in the configured output
// style, pushing a mapping for every rule selector and declaration
// value it writes.
type Emitter struct {
	ctx   *cascata.Context
	buf   *sourcemap.OutputBuffer
	style cascata.OutputStyle
}

// New creates an emitter writing to a fresh output buffer named after
// the output file.
func New(ctx *cascata.Context, outputFile string) *Emitter {
	return &Emitter{
		ctx:   ctx,
		buf:   sourcemap.NewOutputBuffer(outputFile),
		style: ctx.Config.Style,
	}
}

// Buffer exposes the output buffer with its source map.
func (e *Emitter) Buffer() *sourcemap.OutputBuffer { return e.buf }

// Emit renders a flattened block. The returned buffer carries both the
// CSS text and the mapping stream.
func (e *Emitter) Emit(root *ast.Block) (*sourcemap.OutputBuffer, error) {
	if err := e.emitStatements(root.Statements, 0); err != nil {
		return nil, err
	}
	return e.buf, nil
}

func (e *Emitter) compressed() bool { return e.style == cascata.StyleCompressed }

func (e *Emitter) lf() string {
	if e.compressed() {
		return ""
	}
	return e.ctx.Config.Linefeed
}

func (e *Emitter) indent(depth int) string {
	if e.compressed() || e.style == cascata.StyleCompact {
		return ""
	}
	return strings.Repeat(e.ctx.Config.Indent, depth)
}

func (e *Emitter) emitStatements(stmts []ast.Statement, depth int) error {
	first := true
	for _, s := range stmts {
		if s.Invisible() {
			continue
		}
		if b, ok := s.(*ast.Bubble); ok {
			s = b.Node
		}
		if !first && !e.compressed() {
			if s.GroupEnd() {
				e.buf.Write(e.ctx.Config.Linefeed)
			}
		}
		if err := e.emitStatement(s, depth); err != nil {
			return err
		}
		first = false
	}
	return nil
}

func (e *Emitter) emitStatement(s ast.Statement, depth int) error {
	switch v := s.(type) {
	case *ast.Ruleset:
		return e.emitRuleset(v, depth)
	case *ast.MediaBlock:
		return e.emitDirectiveBlock(v, "@media", v.Queries, v.Body, depth)
	case *ast.SupportsBlock:
		return e.emitDirectiveBlock(v, "@supports", v.Query, v.Body, depth)
	case *ast.AtRule:
		return e.emitAtRule(v, depth)
	case *ast.KeyframeRule:
		return e.emitKeyframeRule(v, depth)
	case *ast.Comment:
		e.emitComment(v, depth)
		return nil
	case *ast.Declaration:
		e.emitDeclaration(v, depth, true)
		return nil
	case *ast.Import:
		e.emitImport(v, depth)
		return nil
	}
	// Remaining statement kinds are evaluation-time only.
	return nil
}

// selectorText renders a selector list for output; compressed style
// drops the space after commas.
func (e *Emitter) selectorText(l *selector.List) string {
	if !e.compressed() {
		return l.String()
	}
	parts := make([]string, 0, len(l.Members))
	for _, m := range l.Members {
		parts = append(parts, m.String())
	}
	return strings.Join(parts, ",")
}

func (e *Emitter) emitRuleset(r *ast.Ruleset, depth int) error {
	decls := visibleStatements(r.Body)
	if len(decls) == 0 {
		return nil
	}

	e.buf.Write(e.indent(depth))
	e.buf.Open(r, e.selectorText(r.Selector))
	if e.compressed() {
		e.buf.Write("{")
	} else {
		e.buf.Write(" {" + e.lf())
	}

	for i, d := range decls {
		switch decl := d.(type) {
		case *ast.Declaration:
			e.emitDeclaration(decl, depth+1, !e.compressed() || i < len(decls)-1)
		case *ast.Comment:
			e.emitComment(decl, depth+1)
		default:
			if err := e.emitStatement(d, depth+1); err != nil {
				return err
			}
		}
	}

	if e.compressed() {
		e.buf.Write("}")
	} else {
		e.buf.Write(e.indent(depth) + "}" + e.lf())
	}
	return nil
}

func visibleStatements(b *ast.Block) []ast.Statement {
	var result []ast.Statement
	for _, s := range b.Statements {
		if s.Invisible() {
			continue
		}
		result = append(result, s)
	}
	return result
}

// emitDeclaration writes "prop: value;"; the value gets its own
// mapping so a consumer can trace each emitted value to its source.
func (e *Emitter) emitDeclaration(d *ast.Declaration, depth int, semicolon bool) {
	e.buf.Write(e.indent(depth))
	e.buf.Write(d.Property.String())
	if e.compressed() {
		e.buf.Write(":")
	} else {
		e.buf.Write(": ")
	}
	e.buf.Open(d.Value, e.valueText(d.Value))
	if d.Important {
		if e.compressed() {
			e.buf.Write("!important")
		} else {
			e.buf.Write(" !important")
		}
	}
	if semicolon {
		e.buf.Write(";")
	}
	e.buf.Write(e.lf())
}

func (e *Emitter) valueText(v value.Value) string {
	if n, ok := v.(*value.Number); ok {
		return n.Format(e.ctx.Config.Precision)
	}
	return v.String()
}

func (e *Emitter) emitComment(c *ast.Comment, depth int) {
	if e.compressed() && !c.IsImportant {
		return
	}
	e.buf.Write(e.indent(depth))
	e.buf.Open(c, c.Text)
	e.buf.Write(e.lf())
}

func (e *Emitter) emitDirectiveBlock(node sourcemap.Node, keyword string, query value.Value, body *ast.Block, depth int) error {
	e.buf.Write(e.indent(depth))
	header := keyword
	if query != nil && !query.Invisible() {
		header += " " + query.String()
	}
	e.buf.Open(node, header)
	if e.compressed() {
		e.buf.Write("{")
	} else {
		e.buf.Write(" {" + e.lf())
	}
	if err := e.emitStatements(body.Statements, depth+1); err != nil {
		return err
	}
	if e.compressed() {
		e.buf.Write("}")
	} else {
		e.buf.Write(e.indent(depth) + "}" + e.lf())
	}
	return nil
}

func (e *Emitter) emitAtRule(r *ast.AtRule, depth int) error {
	e.buf.Write(e.indent(depth))
	header := r.Keyword
	if r.Selector != nil && r.Selector.Len() > 0 {
		header += " " + e.selectorText(r.Selector)
	}
	if r.Value != nil && !r.Value.Invisible() {
		header += " " + r.Value.String()
	}
	e.buf.Open(r, header)
	if r.Body == nil {
		e.buf.Write(";" + e.lf())
		return nil
	}
	if e.compressed() {
		e.buf.Write("{")
	} else {
		e.buf.Write(" {" + e.lf())
	}
	if err := e.emitStatements(r.Body.Statements, depth+1); err != nil {
		return err
	}
	if e.compressed() {
		e.buf.Write("}")
	} else {
		e.buf.Write(e.indent(depth) + "}" + e.lf())
	}
	return nil
}

func (e *Emitter) emitKeyframeRule(r *ast.KeyframeRule, depth int) error {
	e.buf.Write(e.indent(depth))
	e.buf.Open(r, r.Selector.String())
	if e.compressed() {
		e.buf.Write("{")
	} else {
		e.buf.Write(" {" + e.lf())
	}
	decls := visibleStatements(r.Body)
	for i, d := range decls {
		if decl, ok := d.(*ast.Declaration); ok {
			e.emitDeclaration(decl, depth+1, !e.compressed() || i < len(decls)-1)
		}
	}
	if e.compressed() {
		e.buf.Write("}")
	} else {
		e.buf.Write(e.indent(depth) + "}" + e.lf())
	}
	return nil
}

func (e *Emitter) emitImport(imp *ast.Import, depth int) {
	for _, url := range imp.URLs {
		e.buf.Write(e.indent(depth))
		e.buf.Open(imp, "@import "+url.String())
		media := make([]string, 0, len(imp.Media))
		for _, m := range imp.Media {
			media = append(media, m.String())
		}
		if len(media) > 0 {
			e.buf.Write(" " + strings.Join(media, ", "))
		}
		e.buf.Write(";" + e.lf())
	}
}
