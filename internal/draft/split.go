package draft

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/yash-srivastava19/docstudio/internal/notes"
)

var (
	trailingBlankLines = regexp.MustCompile(`\n{2,}$`)
	trailingNewlines   = regexp.MustCompile(`\n+$`)
	leadingNewlines    = regexp.MustCompile(`^\n+`)
)

// SplitParts computes the outcome of splitting text at cursor (a rune
// offset). keep is the new text of the split document, fresh the text of the
// inserted document, and before reports whether the fresh document goes in
// front of the current one. ok is false when both halves are blank.
func SplitParts(text string, cursor int) (keep, fresh string, before, ok bool) {
	runes := []rune(text)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	head, tail := string(runes[:cursor]), string(runes[cursor:])
	hasHead := strings.TrimSpace(head) != ""
	hasTail := strings.TrimSpace(tail) != ""

	switch {
	case hasHead && hasTail:
		return trailingBlankLines.ReplaceAllString(head, "\n"), leadingNewlines.ReplaceAllString(tail, ""), false, true
	case !hasHead && hasTail:
		return leadingNewlines.ReplaceAllString(tail, ""), "", true, true
	case hasHead && !hasTail:
		return trailingNewlines.ReplaceAllString(head, ""), "", false, true
	default:
		return text, "", false, false
	}
}

// Split divides document id at cursor, persists immediately and makes the
// new document active. It returns the new document's id, or "" when the
// split was a no-op.
func (e *Editor) Split(id string, cursor int) (string, error) {
	i := e.docs.Index(id)
	if i < 0 {
		return "", nil
	}
	doc := e.docs.Docs[i]
	keep, fresh, before, ok := SplitParts(doc.Content, cursor)
	if !ok {
		return "", nil
	}

	doc.Content = keep
	nd := &notes.Document{ID: e.uniqueID(), Content: fresh}
	at := i + 1
	if before {
		at = i
	}
	e.docs.InsertAt(at, nd)
	e.active = nd.ID
	e.enters = 0
	e.saveSeq++

	e.log.Debug("split document",
		zap.String("from", id),
		zap.String("new", nd.ID),
		zap.Int("at", at),
		zap.Int("count", e.docs.Len()))
	return nd.ID, e.persist("split")
}

func (e *Editor) uniqueID() string {
	for {
		id := e.newID()
		if !e.used[id] {
			e.used[id] = true
			return id
		}
	}
}
