package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/openkraken/cli/launcher"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestDefaultStderrFiltersMatchLauncher(t *testing.T) {
	cfg := DefaultConfig()
	if !slices.Equal(cfg.StderrFilters, launcher.DefaultStderrFilters) {
		t.Fatalf("filters = %v, want %v", cfg.StderrFilters, launcher.DefaultStderrFilters)
	}

	cfg.StderrFilters[0] = "changed"
	if launcher.DefaultStderrFilters[0] == "changed" {
		t.Error("DefaultConfig should copy the launcher defaults")
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, used, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if used != "" {
		t.Errorf("no config file expected, got %q", used)
	}

	want := DefaultConfig()
	if cfg.RuntimeMode != want.RuntimeMode {
		t.Errorf("runtime mode = %q", cfg.RuntimeMode)
	}
	if !slices.Equal(cfg.StderrFilters, want.StderrFilters) {
		t.Errorf("filters = %v", cfg.StderrFilters)
	}
	if cfg.Compile != want.Compile {
		t.Errorf("compile = %+v, want %+v", cfg.Compile, want.Compile)
	}
	if cfg.InstallRoot != "" || cfg.Verbose {
		t.Errorf("unexpected values: %+v", cfg)
	}
}

func TestLoadDefaultLocation(t *testing.T) {
	dir := isolate(t)
	cfgDir := filepath.Join(dir, AppName)
	os.MkdirAll(cfgDir, 0755)
	content := `install_root: /opt/kraken
runtime_mode: release
verbose: true
stderr_filters:
  - JavaScriptCore.framework
  - CoreText
compile:
  timeout: 5s
  disk_cache: false
  memory_limit: 64mb
`
	os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(content), 0644)

	cfg, used, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if used != filepath.Join(cfgDir, "config.yaml") {
		t.Errorf("used = %q", used)
	}
	if cfg.InstallRoot != "/opt/kraken" || cfg.RuntimeMode != "release" || !cfg.Verbose {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if !slices.Equal(cfg.StderrFilters, []string{"JavaScriptCore.framework", "CoreText"}) {
		t.Errorf("filters = %v", cfg.StderrFilters)
	}
	want := CompileConfig{Timeout: 5 * time.Second, DiskCache: false, MemoryLimit: "64mb"}
	if cfg.Compile != want {
		t.Errorf("compile = %+v, want %+v", cfg.Compile, want)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "kraken.json")
	os.WriteFile(path, []byte(`{"install_root": "/srv/kraken"}`), 0644)

	cfg, used, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if used != path {
		t.Errorf("used = %q, want %q", used, path)
	}
	if cfg.InstallRoot != "/srv/kraken" {
		t.Errorf("install root = %q", cfg.InstallRoot)
	}
	if cfg.RuntimeMode != "debug" {
		t.Errorf("defaults should still apply, runtime mode = %q", cfg.RuntimeMode)
	}
}

func TestLoadExplicitFileMissing(t *testing.T) {
	isolate(t)
	if _, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("KRAKEN_CLI_INSTALL_ROOT", "/env/root")
	t.Setenv("KRAKEN_CLI_COMPILE_TIMEOUT", "90s")
	t.Setenv("KRAKEN_CLI_VERBOSE", "true")

	cfg, _, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.InstallRoot != "/env/root" {
		t.Errorf("install root = %q", cfg.InstallRoot)
	}
	if cfg.Compile.Timeout != 90*time.Second {
		t.Errorf("timeout = %v", cfg.Compile.Timeout)
	}
	if !cfg.Verbose {
		t.Error("verbose should be set from env")
	}
}
