package main

import "fmt"

// IncludesCmd resolves the configured include path patterns against
// the filesystem and prints them in load order.
type IncludesCmd struct{}

// Run executes the includes command
func (cmd *IncludesCmd) Run(ctx *Context) error {
	config, err := ctx.LoadConfig()
	if err != nil {
		return err
	}
	paths, err := config.ExpandIncludePaths()
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Println("(no include paths configured)")
		return nil
	}
	for _, p := range paths {
		fmt.Println(p)
	}
	return nil
}
