package main

import (
	"errors"
	"fmt"

	"github.com/openkraken/cli/launcher"
	"github.com/spf13/cobra"
)

func addLaunchFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("bundle", "b", "", "Bundle path. One of bundle or url or source are required.")
	f.StringP("url", "u", "", "Bundle URL. One of bundle or url or source are required.")
	f.StringP("instruct", "i", "", "instruct file path.")
	f.StringP("source", "s", "", "Source code. One of bundle or url or source are required.")
	f.StringP("runtime-mode", "m", string(launcher.RuntimeDebug), "Runtime mode, debug | release.")
	f.Bool("enable-kraken-js-log", false, "print kraken js to dart log")
	f.Bool("show-performance-monitor", false, "show performance monitor")
	f.BoolP("debug-layout", "d", false, "debug element's paint layout")
	f.String("js-engine", "", "the JavaScript engine the kraken binary should use (jsc)")
}

// launchOptions turns flags and the optional positional target into
// launcher.Options.
func (a *app) launchOptions(cmd *cobra.Command, args []string) (launcher.Options, error) {
	f := cmd.Flags()

	modeValue, _ := f.GetString("runtime-mode")
	if !f.Changed("runtime-mode") && a.cfg.RuntimeMode != "" {
		modeValue = a.cfg.RuntimeMode
	}
	mode, err := launcher.ParseRuntimeMode(modeValue)
	if err != nil {
		return launcher.Options{}, err
	}

	engineValue, _ := f.GetString("js-engine")
	engine, err := launcher.ParseEngine(engineValue)
	if err != nil {
		return launcher.Options{}, err
	}

	opts := launcher.Options{RuntimeMode: mode, Engine: engine}
	opts.BundlePath, _ = f.GetString("bundle")
	opts.BundleURL, _ = f.GetString("url")
	opts.Source, _ = f.GetString("source")
	opts.InstructPath, _ = f.GetString("instruct")
	opts.EnableJSLog, _ = f.GetBool("enable-kraken-js-log")
	opts.ShowPerformanceMonitor, _ = f.GetBool("show-performance-monitor")
	opts.DebugLayout, _ = f.GetBool("debug-layout")

	if len(args) > 0 {
		opts = opts.WithTarget(args[0])
	}
	return opts, nil
}

func (a *app) runLaunch(cmd *cobra.Command, args []string) error {
	opts, err := a.launchOptions(cmd, args)
	if err != nil {
		return err
	}
	if !opts.HasBundle() {
		return cmd.Help()
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	l := launcher.New(
		launcher.WithGOOS(a.goos),
		launcher.WithInstallRoot(a.cfg.InstallRoot),
		launcher.WithStderrFilters(a.cfg.StderrFilters),
		launcher.WithSpawner(a.spawner),
		launcher.WithOutput(stdout, stderr),
		launcher.WithLogger(a.logger),
	)

	plan, err := l.Prepare(opts)
	switch {
	case errors.Is(err, launcher.ErrUnsupportedPlatform):
		fmt.Fprintln(stderr, ErrorStyle.Render("[ERROR]: "+err.Error()))
		return &ExitError{Code: 1}
	case errors.Is(err, launcher.ErrBinaryNotFound):
		a.logger.Debug("binary lookup failed", "error", err)
		fmt.Fprintln(stderr, ErrorStyle.Render("Kraken Binary NOT exists, try reinstall."))
		return &ExitError{Code: 1}
	case err != nil:
		return err
	}

	fmt.Fprintln(stdout, SuccessStyle.Render("Execute binary:"), plan.Binary)
	fmt.Fprintln(stdout)

	code, err := l.Run(cmd.Context(), plan)
	if err != nil {
		return fmt.Errorf("run %s: %w", plan.Binary, err)
	}
	if code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}
