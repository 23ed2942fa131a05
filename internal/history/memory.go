package history

import (
	"fmt"
	"os"
	"path/filepath"
)

// Memory is the retained-memory block behind the store. Load returns the
// whole block; Store rewrites it in one go. There is exactly one writer.
type Memory interface {
	Load() ([]byte, error)
	Store(block []byte) error
}

// FileMemory persists the block in a single file. Every Store is a complete
// rewrite of the record; a torn write is caught by the marker check on the
// next load.
type FileMemory struct {
	path string
}

// NewFileMemory creates a file-backed Memory at the given path.
func NewFileMemory(path string) *FileMemory {
	return &FileMemory{path: path}
}

// Load reads the whole block from disk.
func (m *FileMemory) Load() ([]byte, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return nil, fmt.Errorf("read retained block: %w", err)
	}
	return data, nil
}

// Store rewrites the whole block, creating the parent directory on first use.
func (m *FileMemory) Store(block []byte) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	if err := os.WriteFile(m.path, block, 0644); err != nil {
		return fmt.Errorf("write retained block: %w", err)
	}
	return nil
}

// FakeMemory is an in-memory Memory for tests.
type FakeMemory struct {
	// Block is the current stored block; nil means never written.
	Block []byte

	// Stores counts how many times Store was called.
	Stores int

	// LoadError, if set, will be returned by Load.
	LoadError error

	// StoreError, if set, will be returned by Store.
	StoreError error
}

// NewFakeMemory creates a FakeMemory with an optional initial block.
func NewFakeMemory(block []byte) *FakeMemory {
	return &FakeMemory{Block: block}
}

// Load returns the current block, or an error if none was ever stored.
func (m *FakeMemory) Load() ([]byte, error) {
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	if m.Block == nil {
		return nil, fmt.Errorf("no block stored")
	}
	return append([]byte(nil), m.Block...), nil
}

// Store replaces the current block.
func (m *FakeMemory) Store(block []byte) error {
	if m.StoreError != nil {
		return m.StoreError
	}
	m.Block = append([]byte(nil), block...)
	m.Stores++
	return nil
}
