package launcher

import (
	"bytes"
	"testing"
)

func TestLineFilterDropsMatchingLines(t *testing.T) {
	var out bytes.Buffer
	f := NewLineFilter(&out, DefaultStderrFilters)

	input := "first\n" +
		"objc[1]: Class X is implemented in /System/Library/Frameworks/JavaScriptCore.framework/Versions/A\n" +
		"second\n"
	if _, err := f.Write([]byte(input)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if out.String() != "first\nsecond\n" {
		t.Errorf("output = %q", out.String())
	}
	if f.Dropped() != 1 {
		t.Errorf("Dropped = %d, want 1", f.Dropped())
	}
}

func TestLineFilterForwardsPartialLineImmediately(t *testing.T) {
	var out bytes.Buffer
	f := NewLineFilter(&out, DefaultStderrFilters)

	msg := "Waiting for debugger on port 9229..."
	n, err := f.Write([]byte(msg))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != len(msg) {
		t.Errorf("Write returned %d, want %d", n, len(msg))
	}
	if out.String() != msg {
		t.Errorf("output = %q, want %q", out.String(), msg)
	}
}

func TestLineFilterEachChunkFilteredOnItsOwn(t *testing.T) {
	var out bytes.Buffer
	f := NewLineFilter(&out, []string{"NOISE"})

	chunks := []string{"hel", "lo\nNOISE here\nwor", "ld"}
	for _, c := range chunks {
		n, err := f.Write([]byte(c))
		if err != nil {
			t.Fatalf("Write: %v", err)
		}
		if n != len(c) {
			t.Errorf("Write returned %d, want %d", n, len(c))
		}
	}

	if out.String() != "hello\nworld" {
		t.Errorf("output = %q, want %q", out.String(), "hello\nworld")
	}
	if f.Dropped() != 1 {
		t.Errorf("Dropped = %d, want 1", f.Dropped())
	}
}

func TestLineFilterChunkEntirelyDropped(t *testing.T) {
	var out bytes.Buffer
	f := NewLineFilter(&out, []string{"NOISE"})

	f.Write([]byte("ok\n"))
	f.Write([]byte("NOISE without newline"))

	if out.String() != "ok\n" {
		t.Errorf("output = %q", out.String())
	}
	if f.Dropped() != 1 {
		t.Errorf("Dropped = %d, want 1", f.Dropped())
	}
}

func TestLineFilterNoPatterns(t *testing.T) {
	var out bytes.Buffer
	f := NewLineFilter(&out, nil)

	f.Write([]byte("a\nJavaScriptCore.framework\n\nb"))

	if out.String() != "a\nJavaScriptCore.framework\n\nb" {
		t.Errorf("output = %q", out.String())
	}
}

func TestLineFilterEmptyPatternIgnored(t *testing.T) {
	var out bytes.Buffer
	f := NewLineFilter(&out, []string{""})

	f.Write([]byte("kept\n"))
	if out.String() != "kept\n" {
		t.Errorf("empty pattern should not match everything, got %q", out.String())
	}
}
