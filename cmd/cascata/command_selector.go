package main

import (
	"fmt"

	"github.com/shibukawa/cascata/extend"
	"github.com/shibukawa/cascata/selector"
)

// UnifyCmd intersects two selector lists.
type UnifyCmd struct {
	A string `arg:"" help:"First selector"`
	B string `arg:"" help:"Second selector"`
}

// Run executes the unify command
func (cmd *UnifyCmd) Run(ctx *Context) error {
	comp, err := ctx.NewCompilation()
	if err != nil {
		return err
	}
	defer comp.Close()

	a, err := selector.ParseList(comp.Arena, "<arg>", cmd.A)
	if err != nil {
		return err
	}
	b, err := selector.ParseList(comp.Arena, "<arg>", cmd.B)
	if err != nil {
		return err
	}
	result := selector.Unify(comp.Arena, a, b)
	if result.Len() == 0 {
		fmt.Println("(no match)")
		return nil
	}
	fmt.Println(result)
	return nil
}

// SuperCmd tests whether the first selector is a superselector of the
// second.
type SuperCmd struct {
	A string `arg:"" help:"Candidate superselector"`
	B string `arg:"" help:"Subject selector"`
}

// Run executes the super command
func (cmd *SuperCmd) Run(ctx *Context) error {
	comp, err := ctx.NewCompilation()
	if err != nil {
		return err
	}
	defer comp.Close()

	a, err := selector.ParseList(comp.Arena, "<arg>", cmd.A)
	if err != nil {
		return err
	}
	b, err := selector.ParseList(comp.Arena, "<arg>", cmd.B)
	if err != nil {
		return err
	}
	fmt.Println(selector.IsSuperselector(a, b))
	return nil
}

// ParentizeCmd resolves "&" references against an enclosing selector.
type ParentizeCmd struct {
	Child  string `arg:"" help:"Nested selector (may contain &)"`
	Parent string `arg:"" optional:"" help:"Enclosing selector"`
}

// Run executes the parentize command
func (cmd *ParentizeCmd) Run(ctx *Context) error {
	comp, err := ctx.NewCompilation()
	if err != nil {
		return err
	}
	defer comp.Close()

	child, err := selector.ParseList(comp.Arena, "<arg>", cmd.Child)
	if err != nil {
		return err
	}
	var parent *selector.List
	if cmd.Parent != "" {
		parent, err = selector.ParseList(comp.Arena, "<arg>", cmd.Parent)
		if err != nil {
			return err
		}
	}
	result, err := selector.Parentize(comp.Arena, child, parent)
	if err != nil {
		return err
	}
	fmt.Println(result)
	return nil
}

// ExtendCmd applies a single "@extend target" pair to a selector.
type ExtendCmd struct {
	Selector string `arg:"" help:"Selector list to rewrite"`
	Target   string `arg:"" help:"Compound the extender extends"`
	Extender string `arg:"" help:"Extending selector"`
}

// Run executes the extend command
func (cmd *ExtendCmd) Run(ctx *Context) error {
	comp, err := ctx.NewCompilation()
	if err != nil {
		return err
	}
	defer comp.Close()

	sel, err := selector.ParseList(comp.Arena, "<arg>", cmd.Selector)
	if err != nil {
		return err
	}
	target, err := selector.ParseCompound(comp.Arena, "<arg>", cmd.Target)
	if err != nil {
		return err
	}
	extender, err := selector.ParseComplex(comp.Arena, "<arg>", cmd.Extender)
	if err != nil {
		return err
	}

	engine := extend.New(comp)
	engine.Map().Put(&extend.Extension{Target: target, Extender: extender})
	result := extend.FilterPlaceholders(comp.Arena, engine.ExtendList(sel))
	fmt.Println(result)
	return nil
}

// SpecificityCmd prints the specificity of each alternative.
type SpecificityCmd struct {
	Selector string `arg:"" help:"Selector list"`
}

// Run executes the specificity command
func (cmd *SpecificityCmd) Run(ctx *Context) error {
	comp, err := ctx.NewCompilation()
	if err != nil {
		return err
	}
	defer comp.Close()

	list, err := selector.ParseList(comp.Arena, "<arg>", cmd.Selector)
	if err != nil {
		return err
	}
	for _, m := range list.Members {
		fmt.Printf("%-40s %d\n", m, m.Specificity())
	}
	fmt.Printf("%-40s %d\n", "(max)", list.Specificity())
	return nil
}
