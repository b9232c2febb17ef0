package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		max      int
		expected string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello w…"},
		{"hello", 5, "hello"},
		{"hello", 4, "hel…"},
		{"", 5, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, truncate(tt.input, tt.max), "truncate(%q, %d)", tt.input, tt.max)
	}
}

func TestBufferEdits(t *testing.T) {
	text, cur := insertAt("héllo", 1, "ab")
	assert.Equal(t, "habéllo", text)
	assert.Equal(t, 3, cur)

	text, cur = backspaceAt(text, cur)
	assert.Equal(t, "haéllo", text)
	assert.Equal(t, 2, cur)

	text, cur = deleteAt(text, cur)
	assert.Equal(t, "hallo", text)
	assert.Equal(t, 2, cur)

	text, cur = backspaceAt("x", 0)
	assert.Equal(t, "x", text)
	assert.Equal(t, 0, cur)

	text, cur = deleteAt("x", 1)
	assert.Equal(t, "x", text)
	assert.Equal(t, 1, cur)
}

func TestCursorLines(t *testing.T) {
	text := "one\nlonger line\nxy"

	line, col := lineCol(text, 6)
	assert.Equal(t, 1, line)
	assert.Equal(t, 2, col)
	assert.Equal(t, 6, offsetOf(text, 1, 2))

	next, ok := moveVertical(text, 10, 1) // line 1 col 6 -> line 2 clamps to 2
	assert.True(t, ok)
	assert.Equal(t, len([]rune(text)), next)

	_, ok = moveVertical(text, 1, -1)
	assert.False(t, ok)
	_, ok = moveVertical(text, len(text), 1)
	assert.False(t, ok)

	assert.Equal(t, 4, lineStart(text, 8))
	assert.Equal(t, 15, lineEnd(text, 8))
	assert.Equal(t, 0, clampCursor(text, -5))
}

func TestWithCursor(t *testing.T) {
	assert.Contains(t, withCursor("ab", 2), "ab")
	assert.Contains(t, withCursor("a\nb", 1), "\nb")
}
