package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	cascata "github.com/shibukawa/cascata"
)

// Context represents the global context for commands
type Context struct {
	Config  string
	Verbose bool
	Quiet   bool
}

// LoadConfig reads the configured configuration file.
func (c *Context) LoadConfig() (*cascata.Config, error) {
	config, err := cascata.LoadConfig(c.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return config, nil
}

// NewCompilation builds a compilation context with a console sink.
func (c *Context) NewCompilation() (*cascata.Context, error) {
	config, err := c.LoadConfig()
	if err != nil {
		return nil, err
	}
	ctx := cascata.NewContext(config)
	ctx.Sink = &consoleSink{quiet: c.Quiet, verbose: c.Verbose}
	if c.Verbose {
		fmt.Fprintf(os.Stderr, "compilation %s\n", ctx.ID)
	}
	return ctx, nil
}

// consoleSink renders diagnostics to stderr with per-level colors.
type consoleSink struct {
	quiet   bool
	verbose bool
}

func (s *consoleSink) Report(d cascata.Diagnostic) {
	if s.quiet {
		return
	}
	if d.Level == cascata.LevelDebug && !s.verbose {
		return
	}
	var paint *color.Color
	switch d.Level {
	case cascata.LevelError:
		paint = color.New(color.FgRed, color.Bold)
	case cascata.LevelWarning:
		paint = color.New(color.FgYellow)
	default:
		paint = color.New(color.FgCyan)
	}
	paint.Fprintf(os.Stderr, "%s: %s\n", d.Level, d.Message)
	if d.State.Path != "" {
		fmt.Fprintf(os.Stderr, "  at %s:%d:%d\n", d.State.Path, d.State.Pos.Line+1, d.State.Pos.Column+1)
	}
}

// CLI represents the command-line interface
var CLI struct {
	Config    string         `help:"Configuration file path" default:".cascata.yaml"`
	Verbose   bool           `help:"Enable verbose output" short:"v"`
	Quiet     bool           `help:"Suppress output" short:"q"`
	Unify     UnifyCmd       `cmd:"" help:"Intersect two selectors"`
	Super     SuperCmd       `cmd:"" help:"Test the superselector relation"`
	Parentize ParentizeCmd   `cmd:"" help:"Resolve parent references against an enclosing selector"`
	Extend    ExtendCmd      `cmd:"" help:"Apply one @extend pair to a selector"`
	Specify   SpecificityCmd `cmd:"" help:"Show selector specificity"`
	Includes  IncludesCmd    `cmd:"" help:"Resolve configured include paths"`
	Sourcemap SourcemapCmd   `cmd:"" help:"Source map tooling"`
	Repl      ReplCmd        `cmd:"" help:"Interactive selector algebra shell"`
	Version   VersionCmd     `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run() error {
	fmt.Println("cascata v0.1.0")
	return nil
}

func main() {
	ctx := kong.Parse(&CLI)

	appCtx := &Context{
		Config:  CLI.Config,
		Verbose: CLI.Verbose,
		Quiet:   CLI.Quiet,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
