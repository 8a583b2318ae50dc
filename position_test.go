package cascata

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestOffsetOf(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected Offset
	}{
		{"empty", "", Offset{0, 0}},
		{"single line", "color: red;", Offset{0, 11}},
		{"one newline", "a {\n", Offset{1, 0}},
		{"multi line", "a {\n  color: red;\n}", Offset{2, 1}},
		{"trailing newline", "a{}\n", Offset{1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, OffsetOf(tt.text))
		})
	}
}

func TestOffsetAdd(t *testing.T) {
	// Adding the offsets of two texts equals the offset of the
	// concatenation.
	a := "a {\n  color"
	b := ": red;\n}"
	assert.Equal(t, OffsetOf(a+b), OffsetOf(a).Add(OffsetOf(b)))

	sameLine := OffsetOf("abc").Add(OffsetOf("def"))
	assert.Equal(t, Offset{0, 6}, sameLine)
}

func TestPositionAdd(t *testing.T) {
	p := Position{File: 1, Line: 3, Column: 5}
	assert.Equal(t, Position{File: 1, Line: 3, Column: 9}, p.Add(Offset{0, 4}))
	assert.Equal(t, Position{File: 1, Line: 5, Column: 2}, p.Add(Offset{2, 2}))
}

func TestParserStateEnd(t *testing.T) {
	state := NewParserState("main.scss", Position{File: 0, Line: 2, Column: 4}, OffsetOf("color: red"))
	assert.Equal(t, Position{File: 0, Line: 2, Column: 14}, state.End())

	multi := NewParserState("main.scss", Position{File: 0, Line: 2, Column: 4}, OffsetOf("a {\n}"))
	assert.Equal(t, Position{File: 0, Line: 3, Column: 1}, multi.End())
}

func TestPositionBefore(t *testing.T) {
	assert.True(t, Position{Line: 1, Column: 9}.Before(Position{Line: 2, Column: 0}))
	assert.True(t, Position{Line: 1, Column: 2}.Before(Position{Line: 1, Column: 3}))
	assert.False(t, Position{Line: 1, Column: 3}.Before(Position{Line: 1, Column: 3}))
}
