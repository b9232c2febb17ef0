package notes

import (
	"strings"

	"github.com/google/uuid"
)

// Document is one independently editable block of plain text.
type Document struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// IsBlank reports whether the document has no non-whitespace content.
func (d *Document) IsBlank() bool {
	return strings.TrimSpace(d.Content) == ""
}

// NewID returns a fresh, time-ordered document id.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return "note-" + uuid.NewString()
	}
	return "note-" + id.String()
}

// Collection is the ordered list of documents shown top to bottom.
// It always holds at least one document once built through Load or New.
type Collection struct {
	Docs []*Document
}

// New returns a collection holding a single empty document.
func New() *Collection {
	return &Collection{Docs: []*Document{{ID: NewID()}}}
}

func (c *Collection) Len() int {
	return len(c.Docs)
}

// Index returns the position of id, or -1.
func (c *Collection) Index(id string) int {
	for i, d := range c.Docs {
		if d.ID == id {
			return i
		}
	}
	return -1
}

func (c *Collection) Get(id string) *Document {
	if i := c.Index(id); i >= 0 {
		return c.Docs[i]
	}
	return nil
}

// InsertAt places doc at position i, clamped to the collection bounds.
func (c *Collection) InsertAt(i int, doc *Document) {
	if i < 0 {
		i = 0
	}
	if i > len(c.Docs) {
		i = len(c.Docs)
	}
	c.Docs = append(c.Docs, nil)
	copy(c.Docs[i+1:], c.Docs[i:])
	c.Docs[i] = doc
}

// Remove drops the document with the given id. It refuses to remove the last
// remaining document.
func (c *Collection) Remove(id string) bool {
	i := c.Index(id)
	if i < 0 || len(c.Docs) <= 1 {
		return false
	}
	c.Docs = append(c.Docs[:i], c.Docs[i+1:]...)
	return true
}

// Contents returns the document texts in order.
func (c *Collection) Contents() []string {
	out := make([]string, len(c.Docs))
	for i, d := range c.Docs {
		out[i] = d.Content
	}
	return out
}

// Markdown joins all non-blank documents with a blank line between them.
func (c *Collection) Markdown() string {
	var parts []string
	for _, d := range c.Docs {
		if !d.IsBlank() {
			parts = append(parts, strings.TrimRight(d.Content, "\n"))
		}
	}
	return strings.Join(parts, "\n\n")
}

// Title derives a short title from the first non-empty line of content,
// stripping markdown heading markers.
func Title(content string) string {
	for _, line := range strings.Split(content, "\n") {
		l := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
		if l != "" {
			return l
		}
	}
	return "untitled"
}
