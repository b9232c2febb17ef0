package ui

import "strings"

// Editing helpers over a document's text and a rune-offset cursor. They never
// mutate; callers hand the result to the draft editor.

func clampCursor(text string, cursor int) int {
	n := len([]rune(text))
	if cursor < 0 {
		return 0
	}
	if cursor > n {
		return n
	}
	return cursor
}

func insertAt(text string, cursor int, s string) (string, int) {
	r := []rune(text)
	cursor = clampCursor(text, cursor)
	ins := []rune(s)
	out := make([]rune, 0, len(r)+len(ins))
	out = append(out, r[:cursor]...)
	out = append(out, ins...)
	out = append(out, r[cursor:]...)
	return string(out), cursor + len(ins)
}

func backspaceAt(text string, cursor int) (string, int) {
	r := []rune(text)
	cursor = clampCursor(text, cursor)
	if cursor == 0 {
		return text, 0
	}
	return string(append(r[:cursor-1:cursor-1], r[cursor:]...)), cursor - 1
}

func deleteAt(text string, cursor int) (string, int) {
	r := []rune(text)
	cursor = clampCursor(text, cursor)
	if cursor >= len(r) {
		return text, cursor
	}
	return string(append(r[:cursor:cursor], r[cursor+1:]...)), cursor
}

// lineCol splits a cursor into a zero-based line and column.
func lineCol(text string, cursor int) (int, int) {
	r := []rune(text)
	cursor = clampCursor(text, cursor)
	line, col := 0, 0
	for _, c := range r[:cursor] {
		if c == '\n' {
			line++
			col = 0
			continue
		}
		col++
	}
	return line, col
}

// offsetOf is the inverse of lineCol, clamping col to the line length.
func offsetOf(text string, line, col int) int {
	lines := strings.Split(text, "\n")
	if line < 0 {
		return 0
	}
	if line >= len(lines) {
		return len([]rune(text))
	}
	off := 0
	for _, l := range lines[:line] {
		off += len([]rune(l)) + 1
	}
	if n := len([]rune(lines[line])); col > n {
		col = n
	}
	return off + col
}

// moveVertical moves the cursor dy lines, keeping the column where possible.
// ok is false when the move would leave the document.
func moveVertical(text string, cursor, dy int) (int, bool) {
	line, col := lineCol(text, cursor)
	target := line + dy
	if target < 0 || target > strings.Count(text, "\n") {
		return cursor, false
	}
	return offsetOf(text, target, col), true
}

func lineStart(text string, cursor int) int {
	line, _ := lineCol(text, cursor)
	return offsetOf(text, line, 0)
}

func lineEnd(text string, cursor int) int {
	line, _ := lineCol(text, cursor)
	return offsetOf(text, line, len([]rune(text)))
}
