package launcher

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Environment variables read by the Kraken binary.
const (
	EnvLibraryPath        = "KRAKEN_LIBRARY_PATH"
	EnvBundlePath         = "KRAKEN_BUNDLE_PATH"
	EnvBundleURL          = "KRAKEN_BUNDLE_URL"
	EnvJSLog              = "ENABLE_KRAKEN_JS_LOG"
	EnvPerformanceOverlay = "KRAKEN_ENABLE_PERFORMANCE_OVERLAY"
	EnvDebugLayout        = "KRAKEN_ENABLE_DEBUG"
	EnvJSEngine           = "KRAKEN_JS_ENGINE"
	EnvInstructPath       = "KRAKEN_INSTRUCT_PATH"
)

// SourceSuffix is the file suffix of the temp file holding inline source.
const SourceSuffix = ".js"

// TempCreator materializes inline source text as a file.
type TempCreator interface {
	Create(suffix string, content []byte) (string, error)
}

// EnvConfig carries everything BuildEnv needs besides the options.
type EnvConfig struct {
	Platform    Platform
	InstallRoot string
	// WorkDir is the directory relative paths are resolved against.
	WorkDir string
	Temp    TempCreator
}

// BuildEnv computes the environment map for opts. All values are strings;
// boolean toggles are written as "true" and omitted when off.
func BuildEnv(opts Options, cfg EnvConfig) (map[string]string, error) {
	env := make(map[string]string)

	if cfg.Platform.NeedsLibraryPath {
		env[EnvLibraryPath] = resolvePath(cfg.WorkDir, LibraryPath(cfg.InstallRoot))
	}

	if opts.EnableJSLog {
		env[EnvJSLog] = "true"
	}
	if opts.ShowPerformanceMonitor {
		env[EnvPerformanceOverlay] = "true"
	}
	if opts.DebugLayout {
		env[EnvDebugLayout] = "true"
	}

	if opts.Engine != "" {
		if err := opts.Engine.Validate(); err != nil {
			return nil, err
		}
		env[EnvJSEngine] = string(opts.Engine)
	}

	if opts.InstructPath != "" {
		env[EnvInstructPath] = resolvePath(cfg.WorkDir, opts.InstructPath)
	}

	switch {
	case opts.BundlePath != "":
		env[EnvBundlePath] = resolvePath(cfg.WorkDir, opts.BundlePath)
	case opts.BundleURL != "":
		env[EnvBundleURL] = opts.BundleURL
	case opts.Source != "":
		if cfg.Temp == nil {
			return nil, fmt.Errorf("inline source given but no temp file creator configured")
		}
		path, err := cfg.Temp.Create(SourceSuffix, []byte(opts.Source))
		if err != nil {
			return nil, fmt.Errorf("materialize inline source: %w", err)
		}
		env[EnvBundlePath] = path
	}

	return env, nil
}

// MergeEnv returns the inherited environment with the bundle origin keys
// removed, followed by env sorted by key.
func MergeEnv(inherited []string, env map[string]string) []string {
	result := make([]string, 0, len(inherited)+len(env))
	for _, kv := range inherited {
		name, _, _ := strings.Cut(kv, "=")
		if name == EnvBundlePath || name == EnvBundleURL {
			continue
		}
		if _, ok := env[name]; ok {
			continue
		}
		result = append(result, kv)
	}
	return append(result, EnvToSlice(env)...)
}

// EnvToSlice converts an environment map to sorted KEY=VALUE strings.
func EnvToSlice(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	result := make([]string, 0, len(env))
	for _, k := range keys {
		result = append(result, k+"="+env[k])
	}
	return result
}

func resolvePath(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}
