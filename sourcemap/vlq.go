package sourcemap

import (
	"fmt"
	"strings"

	cascata "github.com/shibukawa/cascata"
)

const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// EncodeVLQ encodes a signed integer as Base64-VLQ: groups of five
// data bits, least significant first, with the sign in the lowest bit
// of the first group and bit six as the continuation marker.
func EncodeVLQ(n int) string {
	v := n << 1
	if n < 0 {
		v = (-n)<<1 | 1
	}
	var sb strings.Builder
	for {
		digit := v & 0x1f
		v >>= 5
		if v > 0 {
			digit |= 0x20
		}
		sb.WriteByte(base64Alphabet[digit])
		if v == 0 {
			return sb.String()
		}
	}
}

// decodeVLQ reads one VLQ value from s starting at *pos, advancing
// *pos past it.
func decodeVLQ(s string, pos *int) (int, error) {
	result := 0
	shift := 0
	for {
		if *pos >= len(s) {
			return 0, fmt.Errorf("%w: truncated at offset %d", cascata.ErrInvalidVLQ, *pos)
		}
		i := strings.IndexByte(base64Alphabet, s[*pos])
		if i < 0 {
			return 0, fmt.Errorf("%w: bad character %q", cascata.ErrInvalidVLQ, string(s[*pos]))
		}
		*pos++
		result |= (i & 0x1f) << shift
		if i&0x20 == 0 {
			break
		}
		shift += 5
	}
	value := result >> 1
	if result&1 != 0 {
		value = -value
	}
	return value, nil
}

// Segment is one decoded mappings entry.
type Segment struct {
	GeneratedColumn int
	SourceIndex     int
	OriginalLine    int
	OriginalColumn  int
	HasSource       bool
}

// DecodeMappings parses a V3 mappings string into per-generated-line
// segments with the delta accumulators resolved to absolute values.
func DecodeMappings(mappings string) ([][]Segment, error) {
	var lines [][]Segment
	prevSource, prevLine, prevColumn := 0, 0, 0
	for _, lineText := range strings.Split(mappings, ";") {
		var segments []Segment
		prevGenerated := 0
		for _, segText := range strings.Split(lineText, ",") {
			if segText == "" {
				continue
			}
			pos := 0
			var fields []int
			for pos < len(segText) {
				v, err := decodeVLQ(segText, &pos)
				if err != nil {
					return nil, err
				}
				fields = append(fields, v)
			}
			if len(fields) != 1 && len(fields) != 4 && len(fields) != 5 {
				return nil, fmt.Errorf("%w: segment with %d fields", cascata.ErrInvalidVLQ, len(fields))
			}
			seg := Segment{GeneratedColumn: prevGenerated + fields[0]}
			prevGenerated = seg.GeneratedColumn
			if len(fields) >= 4 {
				seg.HasSource = true
				seg.SourceIndex = prevSource + fields[1]
				seg.OriginalLine = prevLine + fields[2]
				seg.OriginalColumn = prevColumn + fields[3]
				prevSource, prevLine, prevColumn = seg.SourceIndex, seg.OriginalLine, seg.OriginalColumn
			}
			segments = append(segments, seg)
		}
		lines = append(lines, segments)
	}
	return lines, nil
}
