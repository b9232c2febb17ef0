package notes

import (
	"encoding/json"
	"fmt"

	"github.com/yash-srivastava19/docstudio/internal/kv"
)

// StorageKey is the key the serialized collection lives under.
const StorageKey = "docstudio_documents"

type Store struct {
	kv kv.Storage
}

func NewStore(storage kv.Storage) *Store {
	return &Store{kv: storage}
}

// Load reads the collection. Missing or malformed data yields a collection
// with one empty document rather than an error. A document whose id is empty
// or already taken gets a fresh id so its text is not lost.
func (s *Store) Load() *Collection {
	raw, ok := s.kv.GetItem(StorageKey)
	if !ok {
		return New()
	}
	var docs []*Document
	if err := json.Unmarshal([]byte(raw), &docs); err != nil {
		return New()
	}

	seen := make(map[string]bool, len(docs))
	c := &Collection{}
	for _, d := range docs {
		if d == nil {
			continue
		}
		for d.ID == "" || seen[d.ID] {
			d.ID = NewID()
		}
		seen[d.ID] = true
		c.Docs = append(c.Docs, d)
	}
	if len(c.Docs) == 0 {
		return New()
	}
	return c
}

// Save overwrites the stored collection with c in full.
func (s *Store) Save(c *Collection) error {
	docs := c.Docs
	if docs == nil {
		docs = []*Document{}
	}
	data, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("encoding documents: %w", err)
	}
	return s.kv.SetItem(StorageKey, string(data))
}
