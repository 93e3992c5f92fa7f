package launcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/openkraken/cli/internal/tempfile"
)

// Launcher prepares and runs the Kraken binary.
type Launcher struct {
	goos        string
	installRoot string
	workDir     string
	filters     []string
	spawner     Spawner
	temp        *tempfile.Tracker
	environ     func() []string
	stdout      io.Writer
	stderr      io.Writer
	logger      *log.Logger
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithGOOS overrides the host platform identifier.
func WithGOOS(goos string) Option {
	return func(l *Launcher) {
		l.goos = goos
	}
}

// WithInstallRoot sets the directory containing the build/ output.
func WithInstallRoot(dir string) Option {
	return func(l *Launcher) {
		l.installRoot = dir
	}
}

// WithWorkDir sets the directory relative option paths resolve against.
// Without it the process working directory at Prepare time is used.
func WithWorkDir(dir string) Option {
	return func(l *Launcher) {
		l.workDir = dir
	}
}

// WithStderrFilters replaces DefaultStderrFilters.
func WithStderrFilters(patterns []string) Option {
	return func(l *Launcher) {
		l.filters = patterns
	}
}

// WithSpawner replaces ExecSpawner.
func WithSpawner(s Spawner) Option {
	return func(l *Launcher) {
		l.spawner = s
	}
}

// WithTempTracker sets where inline source files are created.
func WithTempTracker(t *tempfile.Tracker) Option {
	return func(l *Launcher) {
		l.temp = t
	}
}

// WithEnviron replaces os.Environ as the inherited environment.
func WithEnviron(fn func() []string) Option {
	return func(l *Launcher) {
		l.environ = fn
	}
}

// WithOutput sets the writers child output is relayed to.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(l *Launcher) {
		l.stdout = stdout
		l.stderr = stderr
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *log.Logger) Option {
	return func(l *Launcher) {
		l.logger = logger
	}
}

// New returns a Launcher. Without WithInstallRoot the install root is
// DefaultInstallRoot().
func New(opts ...Option) *Launcher {
	l := &Launcher{
		goos:    runtime.GOOS,
		filters: DefaultStderrFilters,
		spawner: ExecSpawner{},
		environ: os.Environ,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
	for _, opt := range opts {
		opt(l)
	}

	if l.installRoot == "" {
		l.installRoot = DefaultInstallRoot()
	}
	if abs, err := filepath.Abs(l.installRoot); err == nil {
		l.installRoot = abs
	}
	if l.temp == nil {
		l.temp = tempfile.New()
	}
	if l.logger == nil {
		l.logger = log.Default()
	}
	return l
}

// DefaultInstallRoot is the parent of the directory holding the running
// executable, matching an install layout of <root>/bin/kraken and
// <root>/build/...
func DefaultInstallRoot() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(filepath.Dir(exe))
}

// Plan is a prepared launch.
type Plan struct {
	Platform Platform
	Binary   string
	Env      map[string]string
}

// Prepare resolves the platform, binary and environment for opts. It fails
// with ErrUnsupportedPlatform, ErrInvalidEngine or ErrBinaryNotFound
// before anything is spawned. Temp files created for inline source are
// removed when Prepare fails.
func (l *Launcher) Prepare(opts Options) (*Plan, error) {
	platform, err := DetectPlatform(l.goos)
	if err != nil {
		return nil, err
	}

	mode := opts.RuntimeMode
	if mode == "" {
		mode = RuntimeDebug
	}
	binary := BinaryPath(l.installRoot, platform, mode)

	workDir, err := l.workingDir()
	if err != nil {
		return nil, err
	}

	env, err := BuildEnv(opts, EnvConfig{
		Platform:    platform,
		InstallRoot: l.installRoot,
		WorkDir:     workDir,
		Temp:        l.temp,
	})
	if err != nil {
		l.cleanup()
		return nil, err
	}

	if _, err := os.Stat(binary); err != nil {
		l.cleanup()
		return nil, fmt.Errorf("%w: %s", ErrBinaryNotFound, binary)
	}

	l.logger.Debug("prepared launch", "platform", platform.Name, "binary", binary, "mode", mode)
	for _, kv := range EnvToSlice(env) {
		l.logger.Debug("env", "var", kv)
	}

	return &Plan{Platform: platform, Binary: binary, Env: env}, nil
}

// Run spawns the planned binary and waits for it. The returned code is
// the child's exit code.
func (l *Launcher) Run(ctx context.Context, plan *Plan) (int, error) {
	defer l.cleanup()

	stderr := NewLineFilter(l.stderr, l.filters)
	code, err := l.spawner.Spawn(ctx, SpawnRequest{
		Path:   plan.Binary,
		Env:    MergeEnv(l.environ(), plan.Env),
		Stdout: l.stdout,
		Stderr: stderr,
	})
	if n := stderr.Dropped(); n > 0 {
		l.logger.Debug("suppressed stderr lines", "count", n)
	}
	if err != nil {
		return code, err
	}

	l.logger.Debug("binary exited", "code", code)
	return code, nil
}

func (l *Launcher) workingDir() (string, error) {
	if l.workDir != "" {
		return l.workDir, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	return dir, nil
}

func (l *Launcher) cleanup() {
	if err := l.temp.Cleanup(); err != nil {
		l.logger.Warn("remove temp files", "error", err)
	}
}
