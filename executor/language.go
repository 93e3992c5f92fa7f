package executor

// Language defines a WASM command module and how to invoke it.
type Language interface {
	// Name returns a unique identifier, used as the cache key for the
	// compiled module.
	Name() string

	// Module returns the WASM binary.
	Module() []byte

	// Args returns the command-line arguments for one run with input.
	// For QuickJS: []string{"qjs", "--std", "-e", input}
	Args(input string) []string
}
