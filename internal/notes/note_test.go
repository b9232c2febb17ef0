package notes

import (
	"strings"
	"testing"
)

func TestNewID_unique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := NewID()
		if !strings.HasPrefix(id, "note-") {
			t.Fatalf("id %q missing prefix", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestCollection_InsertAt(t *testing.T) {
	c := &Collection{Docs: []*Document{{ID: "a"}, {ID: "c"}}}
	c.InsertAt(1, &Document{ID: "b"})
	c.InsertAt(0, &Document{ID: "first"})
	c.InsertAt(99, &Document{ID: "last"})

	got := make([]string, 0, c.Len())
	for _, d := range c.Docs {
		got = append(got, d.ID)
	}
	want := "first,a,b,c,last"
	if strings.Join(got, ",") != want {
		t.Errorf("order: got %v, want %s", got, want)
	}
}

func TestCollection_RemoveKeepsOne(t *testing.T) {
	c := &Collection{Docs: []*Document{{ID: "a"}, {ID: "b"}}}
	if !c.Remove("a") {
		t.Fatal("expected remove of a")
	}
	if c.Remove("b") {
		t.Error("last document must not be removable")
	}
	if c.Remove("nope") {
		t.Error("unknown id removed")
	}
	if c.Len() != 1 {
		t.Errorf("len: got %d", c.Len())
	}
}

func TestCollection_Markdown(t *testing.T) {
	c := &Collection{Docs: []*Document{
		{ID: "a", Content: "# One\n"},
		{ID: "b", Content: "  \n"},
		{ID: "c", Content: "two"},
	}}
	if got := c.Markdown(); got != "# One\n\ntwo" {
		t.Errorf("Markdown: got %q", got)
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"# Heading\nbody", "Heading"},
		{"\n\n  plain line  \n", "plain line"},
		{"", "untitled"},
		{"###\n", "untitled"},
	}
	for _, tt := range tests {
		if got := Title(tt.input); got != tt.expected {
			t.Errorf("Title(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
