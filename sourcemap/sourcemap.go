// Package sourcemap builds V3 source maps as a function of emitted
// output: the emitter opens and closes mappings around nodes and
// advances the builder past emitted text; serialization produces the
// Base64-VLQ mappings stream and the surrounding JSON.
package sourcemap

import (
	"strings"

	cascata "github.com/shibukawa/cascata"
)

// Node is anything carrying a parser state; every AST and selector
// node qualifies.
type Node interface {
	State() cascata.ParserState
}

// Mapping ties a position in a source file to a position in the
// generated output.
type Mapping struct {
	Original  cascata.Position
	Generated cascata.Position
}

// Builder owns the ordered mapping stream and the current generated
// position, which advances as the emitter appends output. Only the
// emitter mutates it once emission starts.
type Builder struct {
	file     string
	mappings []Mapping
	current  cascata.Position
}

// NewBuilder creates a builder for an output file name. The name
// becomes the "file" key of the serialized map.
func NewBuilder(file string) *Builder {
	if file == "" {
		file = "stdin"
	}
	return &Builder{file: file}
}

// File returns the output file name.
func (b *Builder) File() string { return b.file }

// Mappings returns the mapping stream in append order.
func (b *Builder) Mappings() []Mapping { return b.mappings }

// Position returns the current generated position.
func (b *Builder) Position() cascata.Position { return b.current }

// Open appends a mapping from the node's start to the current
// generated position.
func (b *Builder) Open(node Node) {
	b.mappings = append(b.mappings, Mapping{
		Original:  node.State().Pos,
		Generated: b.current,
	})
}

// Close appends a mapping for the node's end (start plus span offset).
func (b *Builder) Close(node Node) {
	b.mappings = append(b.mappings, Mapping{
		Original:  node.State().End(),
		Generated: b.current,
	})
}

// Advance moves the generated position forward by an offset.
func (b *Builder) Advance(off cascata.Offset) {
	b.current = b.current.Add(off)
}

// AdvanceText moves the generated position past a piece of emitted
// text.
func (b *Builder) AdvanceText(text string) {
	b.Advance(cascata.OffsetOf(text))
}

// PrependMappings shifts every existing mapping (and the current
// position) by the offset of an incoming front buffer and unshifts the
// buffer's own mappings. It fails when the incoming mappings lie
// beyond the incoming buffer's size.
func (b *Builder) PrependMappings(front *Builder, off cascata.Offset) error {
	size := front.current
	for _, m := range front.mappings {
		if m.Generated.Line > size.Line {
			return cascata.ErrPrependTooLarge
		}
		if m.Generated.Line == size.Line && m.Generated.Column > size.Column {
			return cascata.ErrPrependTooLarge
		}
	}
	b.shift(off)
	b.mappings = append(append([]Mapping(nil), front.mappings...), b.mappings...)
	return nil
}

// shift moves all mappings to make room for off lines/columns at the
// front: mappings on the first line move right, every mapping moves
// down.
func (b *Builder) shift(off cascata.Offset) {
	if !off.IsZero() {
		for i := range b.mappings {
			if b.mappings[i].Generated.Line == 0 {
				b.mappings[i].Generated.Column += off.Column
			}
			b.mappings[i].Generated.Line += off.Line
		}
	}
	if b.current.Line == 0 {
		b.current.Column += off.Column
	}
	b.current.Line += off.Line
}

// AppendMappings adds a back buffer's mappings, shifted by the current
// position, and advances past its text offset.
func (b *Builder) AppendMappings(back *Builder, off cascata.Offset) {
	base := b.current
	for _, m := range back.mappings {
		g := m.Generated
		if g.Line == 0 {
			g.Column += base.Column
		}
		g.Line += base.Line
		b.mappings = append(b.mappings, Mapping{Original: m.Original, Generated: g})
	}
	b.Advance(off)
}

// Remap resolves a generated position back to the original position of
// the first matching mapping.
func (b *Builder) Remap(generated cascata.Position) (cascata.Position, bool) {
	for _, m := range b.mappings {
		if m.Generated.File == generated.File &&
			m.Generated.Line == generated.Line &&
			m.Generated.Column == generated.Column {
			return m.Original, true
		}
	}
	return cascata.Position{File: -1, Line: -1, Column: -1}, false
}

// Serialize renders the mappings stream: entries grouped per generated
// line with ";", separated by "," within a line, each entry holding
// the four signed VLQ deltas. It also returns the referenced file
// indices in first-use order; the VLQ source index refers into that
// list.
func (b *Builder) Serialize() (string, []int) {
	var sb strings.Builder

	sourceIndex := map[int]int{}
	var sourceOrder []int

	prevGeneratedLine := 0
	prevGeneratedColumn := 0
	prevOriginalLine := 0
	prevOriginalColumn := 0
	prevOriginalFile := 0

	for i, m := range b.mappings {
		dense, ok := sourceIndex[m.Original.File]
		if !ok {
			dense = len(sourceOrder)
			sourceIndex[m.Original.File] = dense
			sourceOrder = append(sourceOrder, m.Original.File)
		}

		if m.Generated.Line != prevGeneratedLine {
			prevGeneratedColumn = 0
			if m.Generated.Line > prevGeneratedLine {
				sb.WriteString(strings.Repeat(";", m.Generated.Line-prevGeneratedLine))
				prevGeneratedLine = m.Generated.Line
			}
		} else if i > 0 {
			sb.WriteString(",")
		}

		sb.WriteString(EncodeVLQ(m.Generated.Column - prevGeneratedColumn))
		prevGeneratedColumn = m.Generated.Column
		sb.WriteString(EncodeVLQ(dense - prevOriginalFile))
		prevOriginalFile = dense
		sb.WriteString(EncodeVLQ(m.Original.Line - prevOriginalLine))
		prevOriginalLine = m.Original.Line
		sb.WriteString(EncodeVLQ(m.Original.Column - prevOriginalColumn))
		prevOriginalColumn = m.Original.Column
	}

	return sb.String(), sourceOrder
}
