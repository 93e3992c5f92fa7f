package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/openkraken/cli/bytecode"
	"github.com/openkraken/cli/executor"
	"github.com/openkraken/cli/internal/config"
	"github.com/openkraken/cli/language/javascript"
	"github.com/openkraken/cli/launcher"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
)

// app holds what the command handlers share. Tests replace the spawner
// and the compiler factory.
type app struct {
	goos        string
	spawner     launcher.Spawner
	newCompiler func(config.CompileConfig) (bytecode.Compiler, io.Closer, error)

	cfgFile string
	verbose bool
	cfg     *config.Config
	logger  *log.Logger
}

func newApp() *app {
	return &app{
		goos:        runtime.GOOS,
		spawner:     launcher.ExecSpawner{},
		newCompiler: newQuickJSCompiler,
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "kraken [filename|URL]",
		Short: "Start a kraken app",
		Long: `kraken - Start a kraken app.

Runs a JavaScript bundle with the prebuilt Kraken binary for this platform.
The bundle is given as a file, a URL, or inline source. If more than one is
given, the bundle path wins over the URL, and the URL wins over the source.

` + SubtitleStyle.Render("Examples:") + `
  kraken ./dist/app.js
  kraken http://localhost:8080/app.js
  kraken -s "document.body.appendChild(document.createTextNode('hi'))"
  kraken compile plugin.js plugin.kbc1 --pluginName my_plugin`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		PersistentPreRunE: a.init,
		RunE:              a.runLaunch,
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "Config file (default $XDG_CONFIG_HOME/kraken/config.yaml)")

	addLaunchFlags(root)
	root.AddCommand(a.newCompileCmd())

	return root
}

// init loads configuration and sets up logging before any command runs.
func (a *app) init(cmd *cobra.Command, args []string) error {
	var used string
	if a.cfg == nil {
		cfg, file, err := config.Load(a.cfgFile)
		if err != nil {
			return err
		}
		a.cfg, used = cfg, file
	}

	a.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: "kraken",
		Level:  log.InfoLevel,
	})
	if a.verbose || a.cfg.Verbose {
		a.logger.SetLevel(log.DebugLevel)
	}
	if used != "" {
		a.logger.Debug("loaded config", "file", used)
	}
	return nil
}

func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// Execute runs the CLI and exits with the resulting status.
func Execute() {
	root := newRootCmd(newApp())
	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(errorHandler),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// errorHandler skips exit errors whose message was already printed.
func errorHandler(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

func newQuickJSCompiler(cc config.CompileConfig) (bytecode.Compiler, io.Closer, error) {
	opts := []executor.ExecutorOption{executor.WithPrecompile(javascript.New())}
	if cc.DiskCache {
		opts = append(opts, executor.WithDiskCache())
	}
	pages, err := executor.ParseMemoryLimit(cc.MemoryLimit)
	if err != nil {
		return nil, nil, err
	}
	if pages > 0 {
		opts = append(opts, executor.WithMemoryLimit(pages))
	}

	exec, err := executor.New(opts...)
	if err != nil {
		return nil, nil, err
	}
	return javascript.NewCompiler(exec, javascript.WithCompileTimeout(cc.Timeout)), exec, nil
}
