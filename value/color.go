package value

import (
	"fmt"
	"math"
	"strings"

	"github.com/mazznoer/csscolorparser"

	cascata "github.com/shibukawa/cascata"
)

// Color is an RGBA color. Channels are 0-255, alpha 0-1. Hint keeps
// the author's spelling of a named color so the emitter can reproduce
// it; hex and functional notations are rendered from the channels.
type Color struct {
	base
	R, G, B float64
	A       float64
	Hint    string
}

// NewColor builds a color from channel values.
func NewColor(state cascata.ParserState, r, g, b, a float64) *Color {
	return &Color{base: base{state: state}, R: r, G: g, B: b, A: a}
}

// ParseColor builds a color from any CSS color notation, keeping the
// original text as the display hint when it names the color.
func ParseColor(state cascata.ParserState, text string) (*Color, error) {
	parsed, err := csscolorparser.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse color %q: %w", text, err)
	}
	c := &Color{
		base: base{state: state},
		R:    parsed.R * 255,
		G:    parsed.G * 255,
		B:    parsed.B * 255,
		A:    parsed.A,
	}
	if !strings.HasPrefix(text, "#") && !strings.ContainsRune(text, '(') {
		c.Hint = text
	}
	return c, nil
}

func (c *Color) Kind() Kind { return KindColor }

func (c *Color) Equal(other Value) bool {
	o, ok := other.(*Color)
	if !ok {
		return false
	}
	return c.R == o.R && c.G == o.G && c.B == o.B && c.A == o.A
}

func (c *Color) Hash() uint64 {
	h := hashCombine(uint64(KindColor), math.Float64bits(c.R))
	h = hashCombine(h, math.Float64bits(c.G))
	h = hashCombine(h, math.Float64bits(c.B))
	h = hashCombine(h, math.Float64bits(c.A))
	return h
}

func (c *Color) String() string {
	if c.Hint != "" {
		return c.Hint
	}
	if c.A < 1 {
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", channel(c.R), channel(c.G), channel(c.B), alphaString(c.A))
	}
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) int {
	r := int(math.Round(v))
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return r
}

func alphaString(a float64) string {
	s := fmt.Sprintf("%.5f", a)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		s = "0"
	}
	return s
}
