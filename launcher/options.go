package launcher

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidEngine      = errors.New("unknown js engine")
	ErrInvalidRuntimeMode = errors.New("unknown runtime mode")
)

// RuntimeMode selects the debug or release build of the binary.
type RuntimeMode string

const (
	RuntimeDebug   RuntimeMode = "debug"
	RuntimeRelease RuntimeMode = "release"
)

// ParseRuntimeMode validates s. An empty string means debug.
func ParseRuntimeMode(s string) (RuntimeMode, error) {
	switch RuntimeMode(strings.ToLower(s)) {
	case "", RuntimeDebug:
		return RuntimeDebug, nil
	case RuntimeRelease:
		return RuntimeRelease, nil
	default:
		return "", fmt.Errorf("%w: %s, supported: %s,%s", ErrInvalidRuntimeMode, s, RuntimeDebug, RuntimeRelease)
	}
}

// Engine names a JavaScript engine backend of the binary.
type Engine string

const EngineJSC Engine = "jsc"

// SupportedEngines is the allow-list for the engine selector.
var SupportedEngines = []Engine{EngineJSC}

// ParseEngine validates s against SupportedEngines. An empty string means
// no engine was selected.
func ParseEngine(s string) (Engine, error) {
	e := Engine(s)
	if err := e.Validate(); err != nil {
		return "", err
	}
	return e, nil
}

// Validate reports an error naming e and the allowed set when e is set but
// not supported.
func (e Engine) Validate() error {
	if e == "" {
		return nil
	}
	for _, s := range SupportedEngines {
		if e == s {
			return nil
		}
	}
	names := make([]string, len(SupportedEngines))
	for i, s := range SupportedEngines {
		names[i] = string(s)
	}
	return fmt.Errorf("%w: %s, supported: %s", ErrInvalidEngine, e, strings.Join(names, ","))
}

// Options is the immutable result of argument parsing.
type Options struct {
	// Exactly one bundle origin is used: BundlePath, else BundleURL, else Source.
	BundlePath string
	BundleURL  string
	Source     string

	InstructPath string
	RuntimeMode  RuntimeMode
	Engine       Engine

	EnableJSLog            bool
	ShowPerformanceMonitor bool
	DebugLayout            bool
}

// HasBundle reports whether any bundle origin is set.
func (o Options) HasBundle() bool {
	return o.BundlePath != "" || o.BundleURL != "" || o.Source != ""
}

// WithTarget returns a copy of o with the positional target applied.
// URLs (http:// or https://) replace BundleURL, anything else replaces
// BundlePath.
func (o Options) WithTarget(target string) Options {
	if target == "" {
		return o
	}
	if IsURL(target) {
		o.BundleURL = target
	} else {
		o.BundlePath = target
	}
	return o
}

// IsURL reports whether target looks like an HTTP(S) URL.
func IsURL(target string) bool {
	lower := strings.ToLower(target)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
