package javascript

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openkraken/cli/executor"
)

//go:embed compile.js
var compileScript string

// Compiler produces QuickJS bytecode by running the interpreter with a
// compile-only bootstrap script.
type Compiler struct {
	exec    *executor.Executor
	lang    *JavaScript
	timeout time.Duration
}

// CompilerOption configures a Compiler.
type CompilerOption func(*Compiler)

// WithCompileTimeout bounds a single compilation. Zero disables the limit.
func WithCompileTimeout(d time.Duration) CompilerOption {
	return func(c *Compiler) {
		c.timeout = d
	}
}

// NewCompiler returns a Compiler running on exec.
func NewCompiler(exec *executor.Executor, opts ...CompilerOption) *Compiler {
	c := &Compiler{
		exec:    exec,
		lang:    New(),
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile compiles source as a global script and returns the serialized
// function. Syntax errors are reported with origin as the file name.
func (c *Compiler) Compile(ctx context.Context, source, origin string) ([]byte, error) {
	script, err := bootstrap(source, origin)
	if err != nil {
		return nil, err
	}

	result := c.exec.Run(ctx, c.lang, script, executor.WithTimeout(c.timeout))
	if result.Error != nil {
		var exitErr *executor.ExitError
		if errors.As(result.Error, &exitErr) {
			msg := strings.TrimSpace(exitErr.Stderr)
			if msg == "" {
				msg = exitErr.Error()
			}
			return nil, &CompileError{Origin: origin, Message: msg}
		}
		return nil, result.Error
	}
	if len(result.Stdout) == 0 {
		return nil, &CompileError{Origin: origin, Message: "compiler produced no output"}
	}
	return result.Stdout, nil
}

// CompileError is a failure reported by QuickJS.
type CompileError struct {
	Origin  string
	Message string
}

func (e *CompileError) Error() string {
	if strings.HasPrefix(e.Message, e.Origin) {
		return e.Message
	}
	return e.Origin + ": " + e.Message
}

func bootstrap(source, origin string) (string, error) {
	src, err := json.Marshal(source)
	if err != nil {
		return "", fmt.Errorf("encode source: %w", err)
	}
	org, err := json.Marshal(origin)
	if err != nil {
		return "", fmt.Errorf("encode origin: %w", err)
	}
	return fmt.Sprintf("const origin = %s;\nconst source = %s;\n%s", org, src, compileScript), nil
}
