package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConverterPositions(t *testing.T) {
	t.Parallel()
	src := []byte("let a = 1\nlet b = 2\n")
	conv := NewConverter(src)

	tests := []struct {
		name   string
		offset int
		line   int
		column int
	}{
		{name: "start of file", offset: 0, line: 1, column: 1},
		{name: "middle of first line", offset: 4, line: 1, column: 5},
		{name: "start of second line", offset: 10, line: 2, column: 1},
		{name: "end of file", offset: 20, line: 3, column: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			pos := conv.PositionFor(tc.offset)
			assert.Equal(t, tc.offset, pos.Offset)
			assert.Equal(t, tc.line, pos.Line)
			assert.Equal(t, tc.column, pos.Column)
		})
	}
}

func TestConverterMultibyteColumns(t *testing.T) {
	t.Parallel()
	// "é" is two bytes but one column
	src := []byte("let é = 1\n")
	conv := NewConverter(src)

	pos := conv.PositionFor(6) // byte offset just past "é"
	assert.Equal(t, 1, pos.Line)
	assert.Equal(t, 6, pos.Column)
}

func TestConverterLines(t *testing.T) {
	t.Parallel()
	src := []byte("first\nsecond\r\nthird")
	conv := NewConverter(src)

	assert.Equal(t, 3, conv.NumLines())
	assert.Equal(t, "first", conv.LineText(1))
	assert.Equal(t, "second", conv.LineText(2))
	assert.Equal(t, "third", conv.LineText(3))

	start, end := conv.LineRange(1)
	assert.Equal(t, 0, start)
	assert.Equal(t, 6, end, "line range covers the newline byte")
}

func TestConverterUTF16(t *testing.T) {
	t.Parallel()
	// U+1F600 occupies four UTF-8 bytes and two UTF-16 code units
	src := []byte("a\U0001F600b")
	conv := NewConverter(src)

	assert.Equal(t, 0, conv.UTF16Offset(0))
	assert.Equal(t, 1, conv.UTF16Offset(1))
	assert.Equal(t, 3, conv.UTF16Offset(5))
	assert.Equal(t, 4, conv.UTF16Offset(6))

	for _, byteOffset := range []int{0, 1, 5, 6} {
		u16 := conv.UTF16Offset(byteOffset)
		assert.Equal(t, byteOffset, conv.OffsetFromUTF16(u16))
	}
}
