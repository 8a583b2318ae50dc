package selector

import (
	"fmt"
	"strings"

	pc "github.com/shibukawa/parsercombinator"

	cascata "github.com/shibukawa/cascata"
	"github.com/shibukawa/cascata/arena"
)

// entity is the value threaded through the parser combinators: the
// original token plus whichever selector level a rule produced.
type entity struct {
	tok     Token
	simple  Simple
	comb    Combinator
	complex *Complex
	list    *List
}

// textParser builds selector nodes from selector text. It is the
// narrow front end used by the CLI, the REPL and the test suites; the
// full stylesheet parser is an external collaborator.
type textParser struct {
	arena *arena.Arena
	path  string
	file  int
}

// ParseList parses selector text into a selector list.
func ParseList(a *arena.Arena, path string, input string) (*List, error) {
	tokens, err := Tokenize(0, input)
	if err != nil {
		return nil, err
	}
	p := &textParser{arena: a, path: path}
	return p.parse(tokens, input)
}

// ParseComplex parses selector text that must hold exactly one
// alternative.
func ParseComplex(a *arena.Arena, path string, input string) (*Complex, error) {
	list, err := ParseList(a, path, input)
	if err != nil {
		return nil, err
	}
	if list.Len() != 1 {
		return nil, fmt.Errorf("%w: expected a single selector, got %d alternatives", cascata.ErrSelectorSyntax, list.Len())
	}
	return list.Members[0], nil
}

// ParseCompound parses selector text that must be a single compound.
func ParseCompound(a *arena.Arena, path string, input string) (*Compound, error) {
	complexSel, err := ParseComplex(a, path, input)
	if err != nil {
		return nil, err
	}
	if complexSel.Tail != nil {
		return nil, fmt.Errorf("%w: expected a compound selector without combinators", cascata.ErrSelectorSyntax)
	}
	return complexSel.Head, nil
}

func (p *textParser) parse(tokens []Token, input string) (*List, error) {
	ents := p.entities(tokens)
	if len(ents) == 0 {
		return nil, fmt.Errorf("%w: empty selector", cascata.ErrSelectorSyntax)
	}
	pctx := pc.NewParseContext[entity]()
	consumed, parsed, err := p.list()(pctx, ents)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", cascata.ErrSelectorSyntax, input)
	}
	if consumed != len(ents) || len(parsed) == 0 || parsed[0].Val.list == nil {
		return nil, fmt.Errorf("%w: trailing input in %q", cascata.ErrSelectorSyntax, input)
	}
	return parsed[0].Val.list, nil
}

func (p *textParser) entities(tokens []Token) []pc.Token[entity] {
	results := make([]pc.Token[entity], 0, len(tokens))
	for _, token := range tokens {
		if token.Type == EOF {
			continue
		}
		results = append(results, pc.Token[entity]{
			Type: "raw",
			Pos: &pc.Pos{
				Line:  token.Pos.Line,
				Col:   token.Pos.Column,
				Index: token.Pos.Column,
			},
			Val: entity{tok: token},
			Raw: token.Value,
		})
	}
	return results
}

func (p *textParser) state(tok Token) cascata.ParserState {
	return cascata.NewParserState(p.path, tok.Pos, cascata.OffsetOf(tok.Value))
}

func (p *textParser) ws() pc.Parser[entity] {
	return pc.Trace("space", func(pctx *pc.ParseContext[entity], tokens []pc.Token[entity]) (int, []pc.Token[entity], error) {
		if len(tokens) == 0 {
			return 0, nil, pc.ErrNotMatch
		}
		if tokens[0].Val.tok.Type == WHITESPACE {
			return 1, tokens[:1], nil
		}
		return 0, nil, pc.ErrNotMatch
	})
}

func (p *textParser) sp() pc.Parser[entity] {
	return pc.Drop(pc.ZeroOrMore("space", p.ws()))
}

func (p *textParser) token(kind TokenType, name string) pc.Parser[entity] {
	return pc.Trace(name, func(pctx *pc.ParseContext[entity], tokens []pc.Token[entity]) (int, []pc.Token[entity], error) {
		if len(tokens) == 0 {
			return 0, nil, pc.ErrNotMatch
		}
		if tokens[0].Val.tok.Type == kind {
			return 1, tokens[:1], nil
		}
		return 0, nil, pc.ErrNotMatch
	})
}

// simple recognises one simple selector, including namespace prefixes
// and wrapped pseudos.
func (p *textParser) simple() pc.Parser[entity] {
	return pc.Trace("simple", func(pctx *pc.ParseContext[entity], tokens []pc.Token[entity]) (int, []pc.Token[entity], error) {
		if len(tokens) == 0 {
			return 0, nil, pc.ErrNotMatch
		}
		tok := tokens[0].Val.tok
		switch tok.Type {
		case AMPERSAND:
			return p.yield(tokens, 1, NewParent(p.arena, p.state(tok)))
		case CLASS, HASH:
			return p.yield(tokens, 1, NewQualifier(p.arena, p.state(tok), tok.Value))
		case PLACEHOLDER_NAME:
			return p.yield(tokens, 1, NewPlaceholder(p.arena, p.state(tok), tok.Value))
		case IDENT, ASTERISK, PIPE:
			return p.typeSelector(tokens)
		case LBRACKET:
			return p.attribute(tokens)
		case COLON, DOUBLE_COLON:
			return p.pseudo(tokens)
		}
		return 0, nil, pc.ErrNotMatch
	})
}

func (p *textParser) yield(tokens []pc.Token[entity], consumed int, s Simple) (int, []pc.Token[entity], error) {
	return consumed, []pc.Token[entity]{{
		Type: "simple",
		Pos:  tokens[0].Pos,
		Val:  entity{tok: tokens[0].Val.tok, simple: s},
	}}, nil
}

// typeSelector handles "div", "*", "ns|div", "*|div" and "|div".
func (p *textParser) typeSelector(tokens []pc.Token[entity]) (int, []pc.Token[entity], error) {
	tok := tokens[0].Val.tok
	name := func(t Token) (string, bool) {
		switch t.Type {
		case IDENT, ASTERISK:
			return t.Value, true
		}
		return "", false
	}

	first, ok := name(tok)
	if !ok && tok.Type != PIPE {
		return 0, nil, pc.ErrNotMatch
	}

	if tok.Type == PIPE {
		// "|div": explicit empty namespace
		if len(tokens) < 2 {
			return 0, nil, pc.ErrNotMatch
		}
		n, ok := name(tokens[1].Val.tok)
		if !ok {
			return 0, nil, pc.ErrNotMatch
		}
		return p.yield(tokens, 2, NewTypeNS(p.arena, p.state(tok), Namespace{Has: true, Name: ""}, n))
	}

	if len(tokens) >= 3 && tokens[1].Val.tok.Type == PIPE {
		if n, ok := name(tokens[2].Val.tok); ok {
			return p.yield(tokens, 3, NewTypeNS(p.arena, p.state(tok), Namespace{Has: true, Name: first}, n))
		}
	}
	return p.yield(tokens, 1, NewType(p.arena, p.state(tok), first))
}

// attribute consumes "[ns|name matcher value]".
func (p *textParser) attribute(tokens []pc.Token[entity]) (int, []pc.Token[entity], error) {
	i := 1
	skipWS := func() {
		for i < len(tokens) && tokens[i].Val.tok.Type == WHITESPACE {
			i++
		}
	}
	skipWS()
	var ns Namespace
	if i < len(tokens) && tokens[i].Val.tok.Type == PIPE {
		ns = Namespace{Has: true}
		i++
	}
	if i >= len(tokens) || tokens[i].Val.tok.Type != IDENT && tokens[i].Val.tok.Type != ASTERISK {
		return 0, nil, pc.ErrNotMatch
	}
	name := tokens[i].Val.tok.Value
	i++
	if i < len(tokens) && tokens[i].Val.tok.Type == PIPE && !ns.Has {
		if i+1 < len(tokens) && tokens[i+1].Val.tok.Type == IDENT {
			ns = Namespace{Has: true, Name: name}
			name = tokens[i+1].Val.tok.Value
			i += 2
		}
	}
	skipWS()
	matcher, value := "", ""
	if i < len(tokens) && tokens[i].Val.tok.Type == MATCHER {
		matcher = tokens[i].Val.tok.Value
		i++
		skipWS()
		if i >= len(tokens) || (tokens[i].Val.tok.Type != IDENT && tokens[i].Val.tok.Type != STRING) {
			return 0, nil, pc.ErrNotMatch
		}
		value = tokens[i].Val.tok.Value
		i++
		skipWS()
	}
	if i >= len(tokens) || tokens[i].Val.tok.Type != RBRACKET {
		return 0, nil, pc.ErrNotMatch
	}
	i++
	at := NewAttribute(p.arena, p.state(tokens[0].Val.tok), name, matcher, value)
	at.ns = ns
	return p.yield(tokens, i, at)
}

// wrappedNames are the pseudos whose argument is itself a selector
// list and therefore participates in the selector algebra.
var wrappedNames = map[string]bool{
	"not":      true,
	"matches":  true,
	"is":       true,
	"where":    true,
	"has":      true,
	"-moz-any": true,
	"any":      true,
}

// pseudo consumes ":name", "::name", ":name(raw)" or a wrapped
// ":not(selector list)".
func (p *textParser) pseudo(tokens []pc.Token[entity]) (int, []pc.Token[entity], error) {
	mark := tokens[0].Val.tok
	if len(tokens) < 2 || tokens[1].Val.tok.Type != IDENT {
		return 0, nil, pc.ErrNotMatch
	}
	name := mark.Value + tokens[1].Val.tok.Value
	i := 2
	if i >= len(tokens) || tokens[i].Val.tok.Type != LPAREN {
		return p.yield(tokens, i, NewPseudo(p.arena, p.state(mark), name, ""))
	}

	// Find the matching close paren.
	depth := 1
	j := i + 1
	for j < len(tokens) && depth > 0 {
		switch tokens[j].Val.tok.Type {
		case LPAREN:
			depth++
		case RPAREN:
			depth--
		}
		j++
	}
	if depth != 0 {
		return 0, nil, fmt.Errorf("%w: unbalanced parenthesis in %s", cascata.ErrMalformedWrappedSelector, name)
	}
	inner := tokens[i+1 : j-1]

	if wrappedNames[tokens[1].Val.tok.Value] {
		innerList, err := p.subList(inner)
		if err != nil {
			return 0, nil, err
		}
		return p.yield(tokens, j, NewWrapped(p.arena, p.state(mark), name, innerList))
	}

	var raw strings.Builder
	for _, e := range inner {
		raw.WriteString(e.Val.tok.Value)
	}
	return p.yield(tokens, j, NewPseudo(p.arena, p.state(mark), name, strings.TrimSpace(raw.String())))
}

// subList parses an inner token range as its own selector list.
func (p *textParser) subList(inner []pc.Token[entity]) (*List, error) {
	if len(inner) == 0 {
		return nil, cascata.ErrMalformedWrappedSelector
	}
	pctx := pc.NewParseContext[entity]()
	consumed, parsed, err := p.list()(pctx, inner)
	if err != nil || consumed != len(inner) || len(parsed) == 0 || parsed[0].Val.list == nil {
		return nil, cascata.ErrMalformedWrappedSelector
	}
	return parsed[0].Val.list, nil
}

// compound is one or more adjacent simple selectors.
func (p *textParser) compound() pc.Parser[entity] {
	return pc.Trans(
		pc.SeqWithLabel("compound",
			p.simple(),
			pc.ZeroOrMore("more simples", p.simple()),
		),
		func(pctx *pc.ParseContext[entity], tokens []pc.Token[entity]) ([]pc.Token[entity], error) {
			state := p.state(tokens[0].Val.tok)
			c := NewCompound(p.arena, state)
			for _, t := range tokens {
				c.Simples = append(c.Simples, t.Val.simple)
			}
			return []pc.Token[entity]{{
				Type: "compound",
				Pos:  tokens[0].Pos,
				Val:  entity{tok: tokens[0].Val.tok, complex: FromCompound(p.arena, c)},
			}}, nil
		},
	)
}

// combinator recognises an explicit combinator (optionally padded by
// whitespace) or plain whitespace as the descendant combinator.
func (p *textParser) combinator() pc.Parser[entity] {
	explicit := pc.Trace("combinator", func(pctx *pc.ParseContext[entity], tokens []pc.Token[entity]) (int, []pc.Token[entity], error) {
		i := 0
		for i < len(tokens) && tokens[i].Val.tok.Type == WHITESPACE {
			i++
		}
		if i >= len(tokens) {
			return 0, nil, pc.ErrNotMatch
		}
		var comb Combinator
		switch tokens[i].Val.tok.Type {
		case GREATER:
			comb = Child
		case TILDE:
			comb = Sibling
		case PLUS:
			comb = Adjacent
		case SLASH:
			comb = Reference
		default:
			return 0, nil, pc.ErrNotMatch
		}
		i++
		for i < len(tokens) && tokens[i].Val.tok.Type == WHITESPACE {
			i++
		}
		return i, []pc.Token[entity]{{
			Type: "combinator",
			Pos:  tokens[0].Pos,
			Val:  entity{tok: tokens[0].Val.tok, comb: comb},
		}}, nil
	})
	descendant := pc.Trans(p.ws(), func(pctx *pc.ParseContext[entity], tokens []pc.Token[entity]) ([]pc.Token[entity], error) {
		return []pc.Token[entity]{{
			Type: "combinator",
			Pos:  tokens[0].Pos,
			Val:  entity{tok: tokens[0].Val.tok, comb: Descendant},
		}}, nil
	})
	return pc.Or(explicit, descendant)
}

// complexSel chains compounds with combinators into one alternative.
func (p *textParser) complexSel() pc.Parser[entity] {
	return pc.Trans(
		pc.SeqWithLabel("complex selector",
			p.compound(),
			pc.ZeroOrMore("chain", pc.Seq(p.combinator(), p.compound())),
		),
		func(pctx *pc.ParseContext[entity], tokens []pc.Token[entity]) ([]pc.Token[entity], error) {
			head := tokens[0].Val.complex
			current := head
			for i := 1; i+1 < len(tokens); i += 2 {
				comb := tokens[i].Val.comb
				next := tokens[i+1].Val.complex
				current.Combinator = comb
				current.Tail = next
				current = next
			}
			return []pc.Token[entity]{{
				Type: "complex",
				Pos:  tokens[0].Pos,
				Val:  entity{tok: tokens[0].Val.tok, complex: head},
			}}, nil
		},
	)
}

// list parses the comma level.
func (p *textParser) list() pc.Parser[entity] {
	return pc.Trans(
		pc.SeqWithLabel("selector list",
			p.sp(),
			p.complexSel(),
			pc.ZeroOrMore("alternatives", pc.Seq(p.sp(), p.token(COMMA, "comma"), p.sp(), p.complexSel())),
			p.sp(),
		),
		func(pctx *pc.ParseContext[entity], tokens []pc.Token[entity]) ([]pc.Token[entity], error) {
			var members []*Complex
			for _, t := range tokens {
				if t.Val.complex != nil {
					members = append(members, t.Val.complex)
				}
			}
			state := p.state(tokens[0].Val.tok)
			return []pc.Token[entity]{{
				Type: "list",
				Pos:  tokens[0].Pos,
				Val:  entity{tok: tokens[0].Val.tok, list: NewList(p.arena, state, members...)},
			}}, nil
		},
	)
}
