// Package tempfile creates temporary files that are tracked and removed
// together when the owner is done with them.
package tempfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// Tracker creates temporary files and remembers them for Cleanup.
// The zero value is not usable; use New.
type Tracker struct {
	dir    string
	prefix string

	mu    sync.Mutex
	paths []string
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithDir places files in dir instead of os.TempDir().
func WithDir(dir string) Option {
	return func(t *Tracker) {
		t.dir = dir
	}
}

// WithPrefix sets the file name prefix (default "kraken-").
func WithPrefix(prefix string) Option {
	return func(t *Tracker) {
		t.prefix = prefix
	}
}

// New returns an empty Tracker.
func New(opts ...Option) *Tracker {
	t := &Tracker{
		dir:    os.TempDir(),
		prefix: "kraken-",
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Create writes content to a new uniquely named file ending in suffix and
// returns its absolute path. The file is removed by Cleanup.
func (t *Tracker) Create(suffix string, content []byte) (string, error) {
	name := filepath.Join(t.dir, t.prefix+uuid.NewString()+suffix)
	path, err := filepath.Abs(name)
	if err != nil {
		return "", fmt.Errorf("resolve temp path: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	t.mu.Lock()
	t.paths = append(t.paths, path)
	t.mu.Unlock()

	if _, err := f.Write(content); err != nil {
		f.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return path, nil
}

// Paths returns the files currently tracked.
func (t *Tracker) Paths() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.paths...)
}

// Cleanup removes every tracked file. Files that are already gone are not
// an error. Cleanup is safe to call more than once.
func (t *Tracker) Cleanup() error {
	t.mu.Lock()
	paths := t.paths
	t.paths = nil
	t.mu.Unlock()

	var errs []error
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
