package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/shibukawa/cascata/arena"
	"github.com/shibukawa/cascata/selector"
)

// ReplCmd starts an interactive selector algebra shell.
type ReplCmd struct{}

// Run executes the repl command
func (cmd *ReplCmd) Run(ctx *Context) error {
	comp, err := ctx.NewCompilation()
	if err != nil {
		return err
	}
	defer comp.Close()

	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)

	historyPath := replHistoryPath()
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(historyPath); err == nil {
				state.WriteHistory(f)
				f.Close()
			}
		}()
	}

	fmt.Println("cascata selector shell. Commands: unify A ; B, super A ; B, parentize A ; B, spec A, quit")

	for {
		input, err := state.Prompt("cascata> ")
		if err != nil {
			switch {
			case errors.Is(err, liner.ErrPromptAborted):
				fmt.Println()
				continue
			case errors.Is(err, io.EOF):
				fmt.Println()
				return nil
			default:
				fmt.Fprintf(os.Stderr, "read error: %v\n", err)
				return nil
			}
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		state.AppendHistory(input)
		if input == "quit" || input == "exit" {
			return nil
		}
		if err := evalReplLine(comp.Arena, input); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
}

func evalReplLine(a *arena.Arena, input string) error {
	verb, rest, _ := strings.Cut(input, " ")
	switch verb {
	case "unify":
		left, right, err := splitPair(rest)
		if err != nil {
			return err
		}
		x, err := selector.ParseList(a, "<repl>", left)
		if err != nil {
			return err
		}
		y, err := selector.ParseList(a, "<repl>", right)
		if err != nil {
			return err
		}
		result := selector.Unify(a, x, y)
		if result.Len() == 0 {
			fmt.Println("(no match)")
			return nil
		}
		fmt.Println(result)
		return nil
	case "super":
		left, right, err := splitPair(rest)
		if err != nil {
			return err
		}
		x, err := selector.ParseList(a, "<repl>", left)
		if err != nil {
			return err
		}
		y, err := selector.ParseList(a, "<repl>", right)
		if err != nil {
			return err
		}
		fmt.Println(selector.IsSuperselector(x, y))
		return nil
	case "parentize":
		left, right, err := splitPair(rest)
		if err != nil {
			return err
		}
		child, err := selector.ParseList(a, "<repl>", left)
		if err != nil {
			return err
		}
		parent, err := selector.ParseList(a, "<repl>", right)
		if err != nil {
			return err
		}
		result, err := selector.Parentize(a, child, parent)
		if err != nil {
			return err
		}
		fmt.Println(result)
		return nil
	case "spec":
		list, err := selector.ParseList(a, "<repl>", strings.TrimSpace(rest))
		if err != nil {
			return err
		}
		for _, m := range list.Members {
			fmt.Printf("%-40s %d\n", m, m.Specificity())
		}
		return nil
	}
	return fmt.Errorf("unknown command %q", verb)
}

func replHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".cascata_history")
}

func splitPair(rest string) (string, string, error) {
	parts := strings.SplitN(rest, ";", 2)
	if len(parts) != 2 {
		return "", "", errors.New("expected two selectors separated by \";\"")
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}
