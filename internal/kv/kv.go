// Package kv is the local key/value store every other component persists into.
// Keys are short ASCII names, values are opaque strings (usually JSON).
package kv

import (
	"fmt"
	"os"
	"sync"

	"github.com/peterbourgon/diskv/v3"
)

type Storage interface {
	GetItem(key string) (string, bool)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

// Disk stores each key as one file under a base directory.
type Disk struct {
	d *diskv.Diskv
}

// Open creates the base directory if needed. Writes go through a sibling
// temp directory and are renamed into place, so a reader never observes a
// half-written value.
func Open(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating store dir %s: %w", dir, err)
	}
	tmp := dir + ".tmp"
	if err := os.MkdirAll(tmp, 0755); err != nil {
		return nil, fmt.Errorf("creating store temp dir %s: %w", tmp, err)
	}
	return &Disk{d: diskv.New(diskv.Options{
		BasePath:     dir,
		TempDir:      tmp,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024, // 1MB
	})}, nil
}

func (s *Disk) GetItem(key string) (string, bool) {
	if !s.d.Has(key) {
		return "", false
	}
	val, err := s.d.Read(key)
	if err != nil {
		return "", false
	}
	return string(val), true
}

func (s *Disk) SetItem(key, value string) error {
	if err := s.d.Write(key, []byte(value)); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

func (s *Disk) RemoveItem(key string) error {
	if !s.d.Has(key) {
		return nil
	}
	return s.d.Erase(key)
}

// Memory is an in-process Storage, used by tests and dry runs.
type Memory struct {
	mu     sync.Mutex
	items  map[string]string
	writes map[string]int
}

func NewMemory() *Memory {
	return &Memory{items: map[string]string{}, writes: map[string]int{}}
}

func (m *Memory) GetItem(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	return v, ok
}

func (m *Memory) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	m.writes[key]++
	return nil
}

func (m *Memory) RemoveItem(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

// Writes reports how many times key has been written.
func (m *Memory) Writes(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes[key]
}
