package main

import (
	"github.com/openkraken/cli/bytecode"
	"github.com/spf13/cobra"
)

func (a *app) newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "compile <source> [destination]",
		Aliases: []string{"qjsc"},
		Short:   "Convert javascript code into quickjs bytecode",
		Long: `Compile a JavaScript file into QuickJS bytecode.

The destination defaults to the source path with a .kbc1 extension, or
.dart when --dart is set. With --dart the bytecode is wrapped in a Dart
source file that a Flutter plugin can embed.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: a.runCompile,
	}

	cmd.Flags().String("pluginName", "", "the flutter plugin name")
	cmd.Flags().Bool("dart", false, "export dart source file contains bytecode")
	cmd.Flags().Duration("timeout", 0, "compilation timeout (default from config)")
	cmd.Flags().Bool("no-cache", false, "disable the compiled module disk cache")
	_ = cmd.MarkFlagRequired("pluginName")

	return cmd
}

func (a *app) runCompile(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	pluginName, _ := f.GetString("pluginName")
	asDart, _ := f.GetBool("dart")

	settings := a.cfg.Compile
	if f.Changed("timeout") {
		settings.Timeout, _ = f.GetDuration("timeout")
	}
	if noCache, _ := f.GetBool("no-cache"); noCache {
		settings.DiskCache = false
	}

	compiler, closer, err := a.newCompiler(settings)
	if err != nil {
		return err
	}
	defer func() {
		if err := closer.Close(); err != nil {
			a.logger.Debug("close compiler", "error", err)
		}
	}()

	req := bytecode.Request{
		Source:     args[0],
		PluginName: pluginName,
		AsDart:     asDart,
	}
	if len(args) > 1 {
		req.Destination = args[1]
	}

	exporter := bytecode.NewExporter(compiler,
		bytecode.WithOutput(cmd.OutOrStdout()),
		bytecode.WithLogger(a.logger),
	)
	_, err = exporter.Export(cmd.Context(), req)
	return err
}
