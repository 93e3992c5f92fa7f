package launcher

import (
	"bytes"
	"io"
	"sync"
)

// DefaultStderrFilters are dropped from the child's stderr unless
// configured otherwise. The JavaScriptCore framework on macOS logs noise
// that is unrelated to the running app.
var DefaultStderrFilters = []string{"JavaScriptCore.framework"}

// LineFilter is an io.Writer that filters each chunk as it arrives: the
// chunk is split on newlines, segments containing one of the patterns are
// removed, and the rest is rejoined and forwarded at once. Nothing is held
// between writes, so a line split across two chunks is matched per part.
type LineFilter struct {
	w        io.Writer
	patterns [][]byte

	mu      sync.Mutex
	dropped int
}

// NewLineFilter wraps w. With no patterns every chunk passes through
// unchanged. Empty patterns are ignored.
func NewLineFilter(w io.Writer, patterns []string) *LineFilter {
	f := &LineFilter{w: w}
	for _, p := range patterns {
		if p != "" {
			f.patterns = append(f.patterns, []byte(p))
		}
	}
	return f
}

func (f *LineFilter) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := p
	if len(f.patterns) > 0 {
		segments := bytes.Split(p, []byte{'\n'})
		kept := segments[:0]
		for _, seg := range segments {
			if f.matches(seg) {
				f.dropped++
				continue
			}
			kept = append(kept, seg)
		}
		out = bytes.Join(kept, []byte{'\n'})
	}

	if len(out) > 0 {
		if _, err := f.w.Write(out); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

// Dropped returns the number of segments suppressed so far.
func (f *LineFilter) Dropped() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dropped
}

func (f *LineFilter) matches(seg []byte) bool {
	for _, p := range f.patterns {
		if bytes.Contains(seg, p) {
			return true
		}
	}
	return false
}
