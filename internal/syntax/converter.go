package syntax

import (
	"unicode/utf8"

	tt "github.com/swlin/swlin/internal/types"
)

// Converter maps absolute byte offsets to line/column positions and across
// text encodings. All position arithmetic that crosses an encoding boundary
// must go through a Converter; the engine itself never mixes offset views.
type Converter struct {
	src        []byte
	lineStarts []int
}

// NewConverter indexes the source once. Lines are 1-based.
func NewConverter(src []byte) *Converter {
	lineStarts := []int{0}
	for i, b := range src {
		if b == '\n' {
			lineStarts = append(lineStarts, i+1)
		}
	}
	return &Converter{src: src, lineStarts: lineStarts}
}

// NumLines returns the number of lines in the source. A trailing newline
// starts a final empty line, matching editor conventions.
func (c *Converter) NumLines() int { return len(c.lineStarts) }

// LineRange returns the half-open byte range [start, end) of the 1-based
// line, where end is the start of the following line (or len(src)). The
// range therefore covers the line's newline byte.
func (c *Converter) LineRange(line int) (int, int) {
	if line < 1 || line > len(c.lineStarts) {
		return 0, 0
	}
	start := c.lineStarts[line-1]
	if line == len(c.lineStarts) {
		return start, len(c.src)
	}
	return start, c.lineStarts[line]
}

// LineText returns the 1-based line without its newline.
func (c *Converter) LineText(line int) string {
	start, end := c.LineRange(line)
	for end > start && (c.src[end-1] == '\n' || c.src[end-1] == '\r') {
		end--
	}
	return string(c.src[start:end])
}

// PositionFor converts a byte offset into a full Position. Column counts
// runes from the line start, 1-based.
func (c *Converter) PositionFor(offset int) tt.Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(c.src) {
		offset = len(c.src)
	}
	line := c.lineOf(offset)
	start := c.lineStarts[line-1]
	column := utf8.RuneCount(c.src[start:offset]) + 1
	return tt.Position{Offset: offset, Line: line, Column: column}
}

func (c *Converter) lineOf(offset int) int {
	lo, hi := 0, len(c.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if c.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1
}

// UTF16Offset converts a byte offset into a UTF-16 code-unit offset.
func (c *Converter) UTF16Offset(offset int) int {
	if offset > len(c.src) {
		offset = len(c.src)
	}
	units := 0
	for i := 0; i < offset; {
		r, size := utf8.DecodeRune(c.src[i:])
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
		i += size
	}
	return units
}

// OffsetFromUTF16 converts a UTF-16 code-unit offset into a byte offset.
func (c *Converter) OffsetFromUTF16(u16 int) int {
	units := 0
	for i := 0; i < len(c.src); {
		if units >= u16 {
			return i
		}
		r, size := utf8.DecodeRune(c.src[i:])
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
		i += size
	}
	return len(c.src)
}
