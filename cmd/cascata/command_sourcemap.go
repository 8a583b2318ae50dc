package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shibukawa/cascata/sourcemap"
)

// SourcemapCmd groups the source-map tools.
type SourcemapCmd struct {
	Decode DecodeCmd `cmd:"" help:"Decode a V3 mappings string into absolute positions"`
	Encode EncodeCmd `cmd:"" help:"Encode integers as Base64-VLQ"`
}

// DecodeCmd decodes a mappings string or a whole source-map file.
type DecodeCmd struct {
	Input string `arg:"" help:"A mappings string, or a path to a .map file with --file"`
	File  bool   `help:"Treat the input as a source-map JSON file path"`
}

// Run executes the decode command
func (cmd *DecodeCmd) Run(ctx *Context) error {
	mappings := cmd.Input
	var sources []string
	if cmd.File {
		data, err := os.ReadFile(cmd.Input)
		if err != nil {
			return fmt.Errorf("failed to read source map: %w", err)
		}
		var parsed struct {
			Mappings string   `json:"mappings"`
			Sources  []string `json:"sources"`
		}
		if err := json.Unmarshal(data, &parsed); err != nil {
			return fmt.Errorf("failed to parse source map: %w", err)
		}
		mappings = parsed.Mappings
		sources = parsed.Sources
	}

	lines, err := sourcemap.DecodeMappings(mappings)
	if err != nil {
		return err
	}
	for lineNo, segments := range lines {
		for _, seg := range segments {
			source := fmt.Sprintf("#%d", seg.SourceIndex)
			if seg.SourceIndex < len(sources) {
				source = sources[seg.SourceIndex]
			}
			if !seg.HasSource {
				fmt.Printf("%d:%d\n", lineNo, seg.GeneratedColumn)
				continue
			}
			fmt.Printf("%d:%d -> %s %d:%d\n", lineNo, seg.GeneratedColumn, source, seg.OriginalLine, seg.OriginalColumn)
		}
	}
	return nil
}

// EncodeCmd encodes integers as Base64-VLQ segments.
type EncodeCmd struct {
	Values []int `arg:"" help:"Integers to encode"`
}

// Run executes the encode command
func (cmd *EncodeCmd) Run(ctx *Context) error {
	for _, v := range cmd.Values {
		fmt.Printf("%d -> %s\n", v, sourcemap.EncodeVLQ(v))
	}
	return nil
}
