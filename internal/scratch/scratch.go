// Package scratch manages a temporary working directory with an explicit
// lifecycle: the directory is created on first use and removed by Cleanup.
package scratch

import (
	"fmt"
	"os"
	"sync"
)

// Dir is a lazily created temporary directory. The zero value is not usable;
// create one with New.
type Dir struct {
	parent  string
	pattern string

	mu   sync.Mutex
	path string
}

// New returns a Dir that will be created under parent on first use.
// An empty parent means os.TempDir.
func New(parent, pattern string) *Dir {
	if pattern == "" {
		pattern = "yi-*"
	}

	return &Dir{parent: parent, pattern: pattern}
}

// Path returns the directory path, creating the directory if needed.
func (d *Dir) Path() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.path != "" {
		return d.path, nil
	}

	path, err := os.MkdirTemp(d.parent, d.pattern)
	if err != nil {
		return "", fmt.Errorf("create scratch dir: %w", err)
	}
	d.path = path

	return path, nil
}

// CreateTemp creates a new file in the directory.
func (d *Dir) CreateTemp(pattern string) (*os.File, error) {
	path, err := d.Path()
	if err != nil {
		return nil, err
	}

	return os.CreateTemp(path, pattern)
}

// Cleanup removes the directory and everything in it. It is a no-op if the
// directory was never created, and the Dir may be reused afterwards.
func (d *Dir) Cleanup() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.path == "" {
		return nil
	}

	err := os.RemoveAll(d.path)
	d.path = ""

	return err
}
