package value

import (
	cascata "github.com/shibukawa/cascata"
)

// Bool is a boolean value.
type Bool struct {
	base
	Value bool
}

// NewBool builds a boolean tagged with state.
func NewBool(state cascata.ParserState, v bool) *Bool {
	return &Bool{base: base{state: state}, Value: v}
}

func (b *Bool) Kind() Kind { return KindBool }

func (b *Bool) Equal(other Value) bool {
	o, ok := other.(*Bool)
	return ok && o.Value == b.Value
}

func (b *Bool) Hash() uint64 {
	return hashCombine(uint64(KindBool), hashBool(b.Value))
}

func (b *Bool) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// Null is the null value. It is invisible during emission.
type Null struct {
	base
}

// NewNull builds a null tagged with state.
func NewNull(state cascata.ParserState) *Null {
	return &Null{base: base{state: state}}
}

func (n *Null) Kind() Kind { return KindNull }

func (n *Null) Equal(other Value) bool {
	_, ok := other.(*Null)
	return ok
}

func (n *Null) Hash() uint64 { return hashCombine(uint64(KindNull), 0) }

func (n *Null) String() string { return "" }

func (n *Null) Invisible() bool { return true }

// CustomError is an error value produced by a foreign callback.
type CustomError struct {
	base
	Message string
}

// NewCustomError builds an error value.
func NewCustomError(state cascata.ParserState, message string) *CustomError {
	return &CustomError{base: base{state: state}, Message: message}
}

func (c *CustomError) Kind() Kind { return KindCustomError }

func (c *CustomError) Equal(other Value) bool {
	o, ok := other.(*CustomError)
	return ok && o.Message == c.Message
}

func (c *CustomError) Hash() uint64 {
	return hashCombine(uint64(KindCustomError), hashString(c.Message))
}

func (c *CustomError) String() string { return c.Message }

// CustomWarning is a warning value produced by a foreign callback.
// Warnings are buffered for the host rather than surfaced as failures.
type CustomWarning struct {
	base
	Message string
}

// NewCustomWarning builds a warning value.
func NewCustomWarning(state cascata.ParserState, message string) *CustomWarning {
	return &CustomWarning{base: base{state: state}, Message: message}
}

func (c *CustomWarning) Kind() Kind { return KindCustomWarning }

func (c *CustomWarning) Equal(other Value) bool {
	o, ok := other.(*CustomWarning)
	return ok && o.Message == c.Message
}

func (c *CustomWarning) Hash() uint64 {
	return hashCombine(uint64(KindCustomWarning), hashString(c.Message))
}

func (c *CustomWarning) String() string { return c.Message }
