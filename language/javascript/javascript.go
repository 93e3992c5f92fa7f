// Package javascript runs the QuickJS interpreter (WASI build) on the
// executor and uses it to compile JavaScript to QuickJS bytecode.
package javascript

import (
	quickjswasi "github.com/paralin/go-quickjs-wasi"
)

// JavaScript implements the executor.Language interface for QuickJS.
type JavaScript struct{}

// New returns a QuickJS language adapter.
func New() *JavaScript {
	return &JavaScript{}
}

// Name returns "quickjs".
func (j *JavaScript) Name() string {
	return "quickjs"
}

// Module returns the QuickJS WASM binary.
func (j *JavaScript) Module() []byte {
	return quickjswasi.QuickJSWASM
}

// Args evaluates script with the std, os and bjson modules exposed as
// globals.
func (j *JavaScript) Args(script string) []string {
	return []string{"qjs", "--std", "-e", script}
}
