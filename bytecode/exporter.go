// Package bytecode compiles JavaScript files to QuickJS bytecode and writes
// the result either raw or wrapped as Dart source.
package bytecode

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// OriginTag is the synthetic file name compiled plugin code is attributed to.
const OriginTag = "plugin://"

// Compiler turns JavaScript source into bytecode.
type Compiler interface {
	Compile(ctx context.Context, source, origin string) ([]byte, error)
}

// Formatter renders bytecode for a plugin as source text.
type Formatter func(bytecode []byte, pluginName string) (string, error)

// Request describes one export.
type Request struct {
	Source      string
	Destination string
	PluginName  string
	AsDart      bool
}

// Exporter runs the read, compile, format and write steps.
type Exporter struct {
	compiler  Compiler
	formatter Formatter
	workDir   string
	out       io.Writer
	logger    *log.Logger
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithFormatter replaces DartFormatter.
func WithFormatter(f Formatter) Option {
	return func(e *Exporter) {
		e.formatter = f
	}
}

// WithWorkDir sets the directory relative paths resolve against.
func WithWorkDir(dir string) Option {
	return func(e *Exporter) {
		e.workDir = dir
	}
}

// WithOutput sets where the confirmation message is printed.
func WithOutput(w io.Writer) Option {
	return func(e *Exporter) {
		e.out = w
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *log.Logger) Option {
	return func(e *Exporter) {
		e.logger = logger
	}
}

// NewExporter returns an Exporter backed by compiler.
func NewExporter(compiler Compiler, opts ...Option) *Exporter {
	e := &Exporter{
		compiler:  compiler,
		formatter: DartFormatter,
		out:       os.Stdout,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.Default()
	}
	return e
}

// Export compiles req.Source and writes req.Destination, returning the
// absolute destination path. Read, compile and write errors are returned
// as produced.
func (e *Exporter) Export(ctx context.Context, req Request) (string, error) {
	workDir := e.workDir
	if workDir == "" {
		dir, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
		workDir = dir
	}

	src := resolve(workDir, req.Source)
	dest := req.Destination
	if dest == "" {
		dest = DefaultDestination(req.Source, req.AsDart)
	}
	dest = resolve(workDir, dest)

	code, err := os.ReadFile(src)
	if err != nil {
		return "", err
	}

	start := time.Now()
	buf, err := e.compiler.Compile(ctx, string(code), OriginTag)
	if err != nil {
		return "", err
	}
	e.logger.Debug("compiled", "source", src, "bytes", len(buf), "took", time.Since(start))

	output := buf
	if req.AsDart {
		text, err := e.formatter(buf, req.PluginName)
		if err != nil {
			return "", err
		}
		output = []byte(text)
	}

	if err := os.WriteFile(dest, output, 0644); err != nil {
		return "", err
	}

	fmt.Fprintln(e.out, "Bytecode generated at "+dest)
	return dest, nil
}

// DefaultDestination derives an output path from the source path: the
// extension is replaced by .kbc1, or by .dart when exporting Dart.
func DefaultDestination(source string, asDart bool) string {
	ext := ".kbc1"
	if asDart {
		ext = ".dart"
	}
	return source[:len(source)-len(filepath.Ext(source))] + ext
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}
