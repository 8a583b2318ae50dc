package value

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	cascata "github.com/shibukawa/cascata"
)

// Number is a numeric value with an optional unit fraction. A number is
// unitless iff both unit vectors are empty. The numeric payload is kept
// as a decimal so unit arithmetic and printing stay exact up to the
// configured precision.
type Number struct {
	base
	Value        decimal.Decimal
	Numerators   []string
	Denominators []string
}

// NewNumber builds a unitless number.
func NewNumber(state cascata.ParserState, v decimal.Decimal) *Number {
	return &Number{base: base{state: state}, Value: v}
}

// NewNumberWithUnits builds a number with numerator and denominator units.
func NewNumberWithUnits(state cascata.ParserState, v decimal.Decimal, numerators, denominators []string) *Number {
	n := &Number{base: base{state: state}, Value: v}
	n.Numerators = append(n.Numerators, numerators...)
	n.Denominators = append(n.Denominators, denominators...)
	n.Normalize()
	return n
}

// NewNumberFromFloat builds a unitless number from a float.
func NewNumberFromFloat(state cascata.ParserState, f float64) *Number {
	return NewNumber(state, decimal.NewFromFloat(f))
}

func (n *Number) Kind() Kind { return KindNumber }

// Unitless reports whether the number carries no units at all.
func (n *Number) Unitless() bool {
	return len(n.Numerators) == 0 && len(n.Denominators) == 0
}

// Normalize cancels units that appear both above and below the
// fraction bar and sorts each side, giving every number one canonical
// unit form.
func (n *Number) Normalize() {
	nums := append([]string(nil), n.Numerators...)
	dens := append([]string(nil), n.Denominators...)
	for i := 0; i < len(nums); {
		cancelled := false
		for j := 0; j < len(dens); j++ {
			if nums[i] == dens[j] {
				nums = append(nums[:i], nums[i+1:]...)
				dens = append(dens[:j], dens[j+1:]...)
				cancelled = true
				break
			}
		}
		if !cancelled {
			i++
		}
	}
	sort.Strings(nums)
	sort.Strings(dens)
	n.Numerators = nums
	n.Denominators = dens
}

// UnitString renders the canonical unit fraction, e.g. "px" or "em*px/s".
func (n *Number) UnitString() string {
	var sb strings.Builder
	sb.WriteString(strings.Join(n.Numerators, "*"))
	for _, d := range n.Denominators {
		sb.WriteByte('/')
		sb.WriteString(d)
	}
	return sb.String()
}

// Equal compares numeric payloads after unit canonicalisation: the
// unit multisets must match and the decimals must be equal.
func (n *Number) Equal(other Value) bool {
	o, ok := other.(*Number)
	if !ok {
		return false
	}
	a, b := n.canonical(), o.canonical()
	if !sliceEqual(a.Numerators, b.Numerators) || !sliceEqual(a.Denominators, b.Denominators) {
		return false
	}
	return a.Value.Equal(b.Value)
}

func (n *Number) canonical() *Number {
	c := &Number{base: n.base, Value: n.Value}
	c.Numerators = append(c.Numerators, n.Numerators...)
	c.Denominators = append(c.Denominators, n.Denominators...)
	c.Normalize()
	return c
}

func sliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (n *Number) Hash() uint64 {
	c := n.canonical()
	// Decimal.String preserves the literal's scale ("1.50" vs "1.5"),
	// while Equal compares numerically; hash the reduced rational form
	// so equal numbers always hash alike.
	h := hashCombine(uint64(KindNumber), hashString(c.Value.Rat().RatString()))
	for _, u := range c.Numerators {
		h = hashCombine(h, hashString(u))
	}
	for _, u := range c.Denominators {
		h = hashCombine(h, hashString("/"+u))
	}
	return h
}

// String renders the number at the default precision of five digits.
func (n *Number) String() string {
	return n.Format(5)
}

// Format renders the number with at most precision fractional digits,
// trailing zeros trimmed.
func (n *Number) Format(precision int) string {
	rounded := n.Value.Round(int32(precision))
	text := rounded.String()
	if strings.ContainsRune(text, '.') {
		text = strings.TrimRight(text, "0")
		text = strings.TrimSuffix(text, ".")
	}
	if text == "-0" {
		text = "0"
	}
	return text + n.UnitString()
}
