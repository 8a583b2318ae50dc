package ast

import (
	cascata "github.com/shibukawa/cascata"
	"github.com/shibukawa/cascata/arena"
	"github.com/shibukawa/cascata/value"
)

// DefinitionKind distinguishes mixins from functions.
type DefinitionKind int

const (
	MixinDef DefinitionKind = iota
	FunctionDef
)

func (k DefinitionKind) String() string {
	if k == FunctionDef {
		return "function"
	}
	return "mixin"
}

// NativeFunction is a function implemented by the host rather than by
// a stylesheet body.
type NativeFunction func(ctx *cascata.Context, args *ArgumentList) (value.Value, error)

// Definition declares a mixin or function. Env is a non-owning
// reference to the defining lexical environment; it is owned by the
// evaluator and confined to the compilation's lifetime.
type Definition struct {
	stmtBase
	Name           string
	Params         *Parameters
	Body           *Block
	Kind           DefinitionKind
	Env            any
	Native         NativeFunction
	IsOverloadStub bool
	Signature      string
}

// NewDefinition allocates a mixin or function definition.
func NewDefinition(a *arena.Arena, state cascata.ParserState, name string, params *Parameters, body *Block, kind DefinitionKind) *Definition {
	return arena.Alloc(a, Definition{stmtBase: stmtBase{state: state}, Name: name, Params: params, Body: body, Kind: kind})
}

// NewNativeDefinition allocates a definition backed by a host
// function. Signature keeps the textual form used for overload
// resolution.
func NewNativeDefinition(a *arena.Arena, state cascata.ParserState, name string, params *Parameters, fn NativeFunction, signature string) *Definition {
	d := NewDefinition(a, state, name, params, nil, FunctionDef)
	d.Native = fn
	d.Signature = signature
	return d
}

func (d *Definition) Invisible() bool { return true }

// Parameter is one formal parameter of a definition.
type Parameter struct {
	state   cascata.ParserState
	Name    string
	Default value.Value
	IsRest  bool
}

// NewParameter builds a formal parameter.
func NewParameter(state cascata.ParserState, name string, def value.Value, isRest bool) *Parameter {
	return &Parameter{state: state, Name: name, Default: def, IsRest: isRest}
}

// State returns the parser state of the parameter.
func (p *Parameter) State() cascata.ParserState { return p.state }

// IsOptional reports whether the parameter has a default.
func (p *Parameter) IsOptional() bool { return p.Default != nil }

// Parameters is an ordered parameter list that enforces the
// construction invariants: no default on a rest parameter, no required
// parameter after an optional one, at most one rest parameter and only
// in last position.
type Parameters struct {
	state       cascata.ParserState
	list        []*Parameter
	hasOptional bool
	hasRest     bool
}

// NewParameters builds an empty parameter list.
func NewParameters(state cascata.ParserState) *Parameters {
	return &Parameters{state: state}
}

// Add appends a parameter, validating the ordering invariants.
func (p *Parameters) Add(param *Parameter) error {
	if param.IsRest {
		if param.Default != nil {
			return cascata.Positioned(param.state, cascata.ErrDefaultRestParameter)
		}
		if p.hasRest {
			return cascata.Positioned(param.state, cascata.ErrRequiredAfterOptional)
		}
		p.hasRest = true
		p.list = append(p.list, param)
		return nil
	}
	if p.hasRest {
		return cascata.Positioned(param.state, cascata.ErrRequiredAfterOptional)
	}
	if param.IsOptional() {
		p.hasOptional = true
	} else if p.hasOptional {
		return cascata.Positioned(param.state, cascata.ErrRequiredAfterOptional)
	}
	p.list = append(p.list, param)
	return nil
}

// Len reports the number of parameters.
func (p *Parameters) Len() int { return len(p.list) }

// At returns the parameter at an index.
func (p *Parameters) At(i int) *Parameter { return p.list[i] }

// HasRest reports whether a rest parameter is present.
func (p *Parameters) HasRest() bool { return p.hasRest }

// Argument is one actual argument of a call.
type Argument struct {
	state  cascata.ParserState
	Value  value.Value
	Name   string
	IsRest bool
}

// NewArgument builds an actual argument. Name is empty for positional
// arguments.
func NewArgument(state cascata.ParserState, val value.Value, name string, isRest bool) *Argument {
	return &Argument{state: state, Value: val, Name: name, IsRest: isRest}
}

// State returns the parser state of the argument.
func (a *Argument) State() cascata.ParserState { return a.state }

// ArgumentList is an ordered argument list that rejects named rest
// arguments at construction time.
type ArgumentList struct {
	state cascata.ParserState
	list  []*Argument
}

// NewArgumentList builds an empty argument list.
func NewArgumentList(state cascata.ParserState) *ArgumentList {
	return &ArgumentList{state: state}
}

// Add appends an argument, validating it.
func (al *ArgumentList) Add(arg *Argument) error {
	if arg.IsRest && arg.Name != "" {
		return cascata.Positioned(arg.state, cascata.ErrNamedRestArgument)
	}
	al.list = append(al.list, arg)
	return nil
}

// Len reports the number of arguments.
func (al *ArgumentList) Len() int { return len(al.list) }

// At returns the argument at an index.
func (al *ArgumentList) At(i int) *Argument { return al.list[i] }
