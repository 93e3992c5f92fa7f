// Package cli is the kraken command-line tool.
//
// # Overview
//
// kraken starts a Kraken app: it picks the prebuilt binary for the host
// platform, describes the app to it through environment variables and
// relays its output. It also compiles JavaScript plugins into QuickJS
// bytecode.
//
// # Launching
//
//	kraken ./dist/app.js
//	kraken http://localhost:8080/app.js
//	kraken -s "console.log('hi')"
//
// The launcher package holds the reusable parts:
//
//	l := launcher.New()
//	plan, err := l.Prepare(launcher.Options{BundlePath: "app.js"})
//	if err != nil {
//	    return err
//	}
//	code, err := l.Run(ctx, plan)
//
// # Compiling
//
//	kraken compile plugin.js plugin.kbc1 --pluginName my_plugin
//	kraken compile plugin.js --pluginName my_plugin --dart
//
// Compilation runs QuickJS as a WASI module on wazero, so no native
// toolchain is needed:
//
//	exec, _ := executor.New(executor.WithDiskCache())
//	defer exec.Close()
//	exporter := bytecode.NewExporter(javascript.NewCompiler(exec))
//	dest, err := exporter.Export(ctx, bytecode.Request{Source: "plugin.js", PluginName: "p"})
//
// # Packages
//
//   - launcher: platform detection, environment and process spawning
//   - bytecode: the compile-and-export pipeline and the Dart wrapper
//   - executor: WASM runtime with compiled-module caching
//   - language/javascript: QuickJS module and bytecode compiler
//   - internal/config: configuration file and environment overrides
//   - internal/tempfile: tracked temporary files
package cli
