package value

import (
	"strings"

	cascata "github.com/shibukawa/cascata"
)

// QuoteMark is the quote character of a string constant, or QuoteNone
// for unquoted identifiers.
type QuoteMark byte

const (
	QuoteNone   QuoteMark = 0
	QuoteSingle QuoteMark = '\''
	QuoteDouble QuoteMark = '"'
)

// StringConst is a literal string value.
type StringConst struct {
	base
	Text       string
	Quote      QuoteMark
	CompressWS bool
}

// NewStringConst builds an unquoted string.
func NewStringConst(state cascata.ParserState, text string) *StringConst {
	return &StringConst{base: base{state: state}, Text: text}
}

// NewQuotedString builds a quoted string.
func NewQuotedString(state cascata.ParserState, text string, quote QuoteMark) *StringConst {
	return &StringConst{base: base{state: state}, Text: text, Quote: quote}
}

func (s *StringConst) Kind() Kind { return KindString }

// Equal compares the text only; the quote mark is a display property.
func (s *StringConst) Equal(other Value) bool {
	o, ok := other.(*StringConst)
	return ok && o.Text == s.Text
}

func (s *StringConst) Hash() uint64 {
	return hashCombine(uint64(KindString), hashString(s.Text))
}

func (s *StringConst) String() string {
	text := s.Text
	if s.CompressWS {
		text = strings.Join(strings.Fields(text), " ")
	}
	if s.Quote == QuoteNone {
		return text
	}
	q := string(rune(s.Quote))
	return q + text + q
}

// Unquoted returns the text without quote marks.
func (s *StringConst) Unquoted() string {
	return s.Text
}

// StringSchema is an interpolated string: a sequence of parts whose
// textual forms concatenate once every part is reduced.
type StringSchema struct {
	base
	Parts []Value
}

// NewStringSchema builds an interpolated string from parts.
func NewStringSchema(state cascata.ParserState, parts ...Value) *StringSchema {
	return &StringSchema{base: base{state: state}, Parts: parts}
}

func (s *StringSchema) Kind() Kind { return KindStringSchema }

func (s *StringSchema) Equal(other Value) bool {
	o, ok := other.(*StringSchema)
	if !ok || len(o.Parts) != len(s.Parts) {
		return false
	}
	for i, p := range s.Parts {
		if !p.Equal(o.Parts[i]) {
			return false
		}
	}
	return true
}

func (s *StringSchema) Hash() uint64 {
	h := hashCombine(uint64(KindStringSchema), uint64(len(s.Parts)))
	for _, p := range s.Parts {
		h = hashCombine(h, p.Hash())
	}
	return h
}

func (s *StringSchema) String() string {
	var sb strings.Builder
	for _, p := range s.Parts {
		sb.WriteString(p.String())
	}
	return sb.String()
}

// SetDelayed propagates to every part.
func (s *StringSchema) SetDelayed(d bool) {
	s.base.SetDelayed(d)
	for _, p := range s.Parts {
		p.SetDelayed(d)
	}
}
