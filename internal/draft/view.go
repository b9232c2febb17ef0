package draft

import (
	"strings"
	"unicode/utf8"
)

// Pane is the view-model of one document box.
type Pane struct {
	ID      string
	Content string
	Active  bool
	// Busy is set on the document a rewrite is streaming into.
	Busy bool
}

// Panes returns one pane per document in collection order. It is a pure
// function of the editor's documents, active id and rewrite state.
func (e *Editor) Panes() []Pane {
	out := make([]Pane, 0, e.docs.Len())
	for _, d := range e.docs.Docs {
		out = append(out, Pane{
			ID:      d.ID,
			Content: d.Content,
			Active:  d.ID == e.active,
			Busy:    e.rw.mode == ModeStop && d.ID == e.rw.docID,
		})
	}
	return out
}

// Height is the number of rows a box of the given width needs to show
// content without scrolling, plus one spare row for the line being typed.
func Height(content string, width int) int {
	if width < 1 {
		width = 1
	}
	rows := 0
	for _, line := range strings.Split(content, "\n") {
		n := utf8.RuneCountInString(line)
		if n == 0 {
			rows++
			continue
		}
		rows += (n + width - 1) / width
	}
	return rows + 1
}
