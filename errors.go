package cascata

import (
	"errors"
	"fmt"
)

// Common errors used throughout the cascata packages
var (
	// ErrTopLevelParentReference is returned when "&" is used outside of any rule.
	// Selector errors
	ErrTopLevelParentReference = errors.New("parent selector used at the top level")
	// ErrIncompatibleCombinators indicates two non-descendant combinators met at a splice point.
	ErrIncompatibleCombinators = errors.New("selectors carry incompatible combinators")
	// ErrMalformedWrappedSelector indicates a pseudo wrapper whose inner selector list could not be built.
	ErrMalformedWrappedSelector = errors.New("malformed wrapped selector")
	// ErrSelectorSyntax indicates the selector text front end could not parse its input.
	ErrSelectorSyntax = errors.New("invalid selector syntax")

	// ErrExtendTargetNotFound is returned when @extend names a selector no rule produces
	// and the configuration rejects unmatched extensions.
	// Extend errors
	ErrExtendTargetNotFound = errors.New("@extend target was not found")
	// ErrCyclicExtension indicates an extender reached itself through the sources set.
	ErrCyclicExtension = errors.New("cyclic @extend detected")

	// ErrNamedRestArgument is returned when a rest argument carries a name.
	// Argument errors
	ErrNamedRestArgument = errors.New("rest argument must not be named")
	// ErrDefaultRestParameter is returned when a rest parameter declares a default value.
	ErrDefaultRestParameter = errors.New("rest parameter must not have a default value")
	// ErrRequiredAfterOptional indicates a required parameter follows an optional one.
	ErrRequiredAfterOptional = errors.New("required parameter follows an optional parameter")

	// ErrDuplicateMapKey indicates the same key occurred twice while building a map literal.
	// Value errors
	ErrDuplicateMapKey = errors.New("duplicate key in map literal")

	// ErrPrependTooLarge is returned when a prepended buffer's mappings exceed the buffer size.
	// Source-map errors
	ErrPrependTooLarge = errors.New("prepended source map exceeds buffer size")
	// ErrInvalidVLQ indicates a mappings string that is not valid Base64-VLQ.
	ErrInvalidVLQ = errors.New("invalid base64 VLQ segment")

	// ErrConfigValidation is returned when configuration validation fails.
	// Configuration errors
	ErrConfigValidation = errors.New("configuration validation failed")
)

// PositionedError attaches the parser state of the offending node to an
// underlying sentinel error. Fatal compilation failures surface to the
// caller wrapped in this type.
type PositionedError struct {
	State ParserState
	Err   error
}

func (e *PositionedError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.State.Path, e.State.Pos.Line+1, e.State.Pos.Column+1, e.Err)
}

func (e *PositionedError) Unwrap() error {
	return e.Err
}

// Positioned wraps err with the parser state of the node that caused it.
func Positioned(state ParserState, err error) error {
	return &PositionedError{State: state, Err: err}
}
