// SPDX-License-Identifier: MPL-2.0

//go:build !(darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris)

package hostenv

import (
	"errors"
	"fmt"
	"os"
	"runtime"
)

// ErrUnsupportedHost is returned by OS.Identity on hosts without a passwd database.
var ErrUnsupportedHost = errors.New("host account database not supported")

// OS is the Provider backed by the real process environment.
type OS struct{}

// NewOS returns the host provider for the running process.
func NewOS() *OS { return &OS{} }

// Identity is not available on this platform.
func (*OS) Identity() (Identity, error) {
	return Identity{}, fmt.Errorf("%w: %s", ErrUnsupportedHost, runtime.GOOS)
}

// HomeDir returns the user's home directory.
func (*OS) HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine home directory: %w", err)
	}
	return home, nil
}

// LookupGroupID is not available on this platform.
func (*OS) LookupGroupID(name string) (int, error) {
	return 0, fmt.Errorf("%w: %s", ErrNoSuchGroup, name)
}

// Getenv returns os.Getenv(key).
func (*OS) Getenv(key string) string { return os.Getenv(key) }

// Exists reports whether path exists on the host.
func (*OS) Exists(path string) bool { return pathExists(path) }
