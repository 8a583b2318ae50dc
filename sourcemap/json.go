package sourcemap

import (
	"encoding/json"
	"fmt"

	cascata "github.com/shibukawa/cascata"
)

// sourceMapJSON mirrors the V3 source-map layout. Field order matters:
// encoding/json preserves declaration order, giving the bit-exact key
// sequence version, sourceRoot, file, sources, sourcesContent,
// mappings, names.
type sourceMapJSON struct {
	Version        int      `json:"version"`
	SourceRoot     string   `json:"sourceRoot,omitempty"`
	File           string   `json:"file"`
	Sources        []string `json:"sources"`
	SourcesContent []string `json:"sourcesContent"`
	Mappings       string   `json:"mappings"`
	Names          []string `json:"names"`
}

// Generate serializes the builder into source-map JSON. The sources
// array lists the include-table paths the mappings reference, in
// first-use order; contents are embedded when the configuration asks
// for it.
func (b *Builder) Generate(ctx *cascata.Context) (string, error) {
	mappings, sourceOrder := b.Serialize()

	out := sourceMapJSON{
		Version:        3,
		SourceRoot:     ctx.Config.SourceMap.Root,
		File:           b.file,
		Sources:        []string{},
		SourcesContent: []string{},
		Mappings:       mappings,
		Names:          []string{},
	}
	for _, fileIndex := range sourceOrder {
		include, ok := ctx.Include(fileIndex)
		if !ok {
			return "", fmt.Errorf("source map references unknown file index %d", fileIndex)
		}
		out.Sources = append(out.Sources, include.Path)
		if ctx.Config.SourceMap.EmbedContents {
			out.SourcesContent = append(out.SourcesContent, include.Source)
		}
	}

	data, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("failed to serialize source map: %w", err)
	}
	return string(data), nil
}
