// Package executor runs WebAssembly command modules on wazero.
//
// # Overview
//
// The executor owns one wazero runtime with WASI preview1 instantiated,
// compiles each [Language] module once and keeps it cached for later runs.
// A run instantiates the cached module with arguments built by the
// language, captures stdout as raw bytes and stderr as text.
//
// # Basic Usage
//
//	exec, err := executor.New(executor.WithDiskCache())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer exec.Close()
//
//	result := exec.Run(ctx, javascript.New(), script,
//	    executor.WithTimeout(10*time.Second))
//	if result.Error != nil {
//	    log.Fatal(result.Error)
//	}
//
// # Exit Codes
//
// A module that exits with a non-zero status yields a [*ExitError] carrying
// the code and whatever the module wrote to stderr.
package executor
