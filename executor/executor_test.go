package executor_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/openkraken/cli/executor"
	"github.com/openkraken/cli/language/javascript"
)

// Shared executor to avoid compiling QuickJS for every test.
var (
	sharedExec *executor.Executor
	sharedLang = javascript.New()
)

func TestMain(m *testing.M) {
	var err error
	sharedExec, err = executor.New(executor.WithPrecompile(sharedLang))
	if err != nil {
		panic("failed to create shared executor: " + err.Error())
	}

	code := m.Run()

	sharedExec.Close()
	os.Exit(code)
}

func TestRunStdout(t *testing.T) {
	result := sharedExec.Run(context.Background(), sharedLang, `console.log("hello")`)
	if result.Error != nil {
		t.Fatalf("unexpected error: %v", result.Error)
	}
	if strings.TrimSpace(string(result.Stdout)) != "hello" {
		t.Errorf("expected 'hello', got %q", result.Stdout)
	}
	if result.Duration <= 0 {
		t.Error("duration should be recorded")
	}
}

func TestRunExitCode(t *testing.T) {
	result := sharedExec.Run(context.Background(), sharedLang, `std.err.puts("bad things"); std.exit(3);`)

	var exitErr *executor.ExitError
	if !errors.As(result.Error, &exitErr) {
		t.Fatalf("expected ExitError, got %v", result.Error)
	}
	if exitErr.Code != 3 {
		t.Errorf("exit code = %d, want 3", exitErr.Code)
	}
	if !strings.Contains(exitErr.Stderr, "bad things") {
		t.Errorf("stderr = %q", exitErr.Stderr)
	}
}

func TestRunTimeout(t *testing.T) {
	result := sharedExec.Run(context.Background(), sharedLang, `while(true){}`,
		executor.WithTimeout(2*time.Second))

	if result.Error == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(result.Error.Error(), "timeout") {
		t.Errorf("expected timeout error, got %v", result.Error)
	}
}

func TestRunAfterClose(t *testing.T) {
	exec, err := executor.New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := exec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := exec.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}

	result := exec.Run(context.Background(), sharedLang, `1`)
	if result.Error == nil {
		t.Error("expected error running on a closed executor")
	}
}

func TestDiskCache(t *testing.T) {
	dir := t.TempDir()
	exec, err := executor.New(executor.WithDiskCache(dir))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer exec.Close()

	result := exec.Run(context.Background(), sharedLang, `console.log(6*7)`)
	if result.Error != nil {
		t.Fatalf("unexpected error: %v", result.Error)
	}
	if strings.TrimSpace(string(result.Stdout)) != "42" {
		t.Errorf("expected 42, got %q", result.Stdout)
	}
}

func TestParseMemoryLimit(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"", 0, false},
		{"1mb", executor.MemoryLimit1MB, false},
		{"16MB", executor.MemoryLimit16MB, false},
		{"64mb", executor.MemoryLimit64MB, false},
		{"256mb", executor.MemoryLimit256MB, false},
		{"1gb", executor.MemoryLimit1GB, false},
		{"2gb", 0, true},
	}

	for _, tc := range tests {
		got, err := executor.ParseMemoryLimit(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseMemoryLimit(%q) should fail", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMemoryLimit(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseMemoryLimit(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
