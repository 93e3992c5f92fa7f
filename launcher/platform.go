package launcher

import (
	"errors"
	"fmt"
	"path/filepath"
)

var (
	ErrUnsupportedPlatform = errors.New("platform not supported")
	ErrBinaryNotFound      = errors.New("kraken binary not found")
)

// ProductName is used in user-facing platform errors.
const ProductName = "kraken-cli"

// Platform describes how the binary is laid out on a host OS.
type Platform struct {
	Name string
	// NeedsLibraryPath is true when the binary must be told where its
	// shared libraries live.
	NeedsLibraryPath bool
}

var platforms = map[string]Platform{
	"darwin": {Name: "darwin"},
	"linux":  {Name: "linux", NeedsLibraryPath: true},
}

// DetectPlatform returns the descriptor for a GOOS value.
func DetectPlatform(goos string) (Platform, error) {
	p, ok := platforms[goos]
	if !ok {
		return Platform{}, &PlatformError{Platform: goos}
	}
	return p, nil
}

// PlatformError reports an unsupported host platform.
type PlatformError struct {
	Platform string
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("Platform %s not supported by %s.", e.Platform, ProductName)
}

func (e *PlatformError) Unwrap() error {
	return ErrUnsupportedPlatform
}

// BuildDir returns the build output root under the install root.
func BuildDir(installRoot string) string {
	return filepath.Join(installRoot, "build")
}

// BinaryPath returns the location of the prebuilt binary.
//
//	darwin: <root>/build/darwin/<mode>/app.app/Contents/MacOS/app
//	linux:  <root>/build/linux/kraken
func BinaryPath(installRoot string, p Platform, mode RuntimeMode) string {
	appPath := filepath.Join(BuildDir(installRoot), p.Name)
	if p.Name == "darwin" {
		return filepath.Join(appPath, string(mode), "app.app", "Contents", "MacOS", "app")
	}
	return filepath.Join(appPath, "kraken")
}

// LibraryPath returns the shared library directory passed to the binary on
// platforms that need it.
func LibraryPath(installRoot string) string {
	return filepath.Join(BuildDir(installRoot), "lib")
}
