package sourcemap

import (
	"strings"

	cascata "github.com/shibukawa/cascata"
)

// OutputBuffer pairs emitted text with the builder that tracks its
// mappings. Buffers compose: a whole emission can be assembled from
// fragments with Prepend and Append while every mapping stays aligned.
type OutputBuffer struct {
	text strings.Builder
	smap *Builder
}

// NewOutputBuffer creates an empty buffer whose map names the given
// output file.
func NewOutputBuffer(file string) *OutputBuffer {
	return &OutputBuffer{smap: NewBuilder(file)}
}

// Map exposes the underlying builder.
func (o *OutputBuffer) Map() *Builder { return o.smap }

// String returns the emitted text so far.
func (o *OutputBuffer) String() string { return o.text.String() }

// Len reports the emitted byte count.
func (o *OutputBuffer) Len() int { return o.text.Len() }

// Write appends text and advances the mapping position past it.
func (o *OutputBuffer) Write(text string) {
	o.text.WriteString(text)
	o.smap.AdvanceText(text)
}

// Open records a mapping from node's start to the current output
// position, then emits text.
func (o *OutputBuffer) Open(node Node, text string) {
	o.smap.Open(node)
	o.Write(text)
}

// Close emits text, then records a mapping for node's end.
func (o *OutputBuffer) Close(node Node, text string) {
	o.Write(text)
	o.smap.Close(node)
}

// Prepend inserts another buffer's text in front of this one, shifting
// every existing mapping by the incoming text's offset and unshifting
// the incoming mappings.
func (o *OutputBuffer) Prepend(front *OutputBuffer) error {
	off := cascata.OffsetOf(front.String())
	if err := o.smap.PrependMappings(front.smap, off); err != nil {
		return err
	}
	var sb strings.Builder
	sb.WriteString(front.String())
	sb.WriteString(o.text.String())
	o.text = sb
	return nil
}

// Append adds another buffer's text and mappings at the end.
func (o *OutputBuffer) Append(back *OutputBuffer) {
	off := cascata.OffsetOf(back.String())
	o.smap.AppendMappings(back.smap, off)
	o.text.WriteString(back.String())
}
