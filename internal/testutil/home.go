// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"
)

// EnvPrefix is the prefix of environment variables read by the config layer.
const EnvPrefix = "DOCKWRIGHT_"

// SetHomeDir sets the appropriate HOME environment variable based on platform
// and returns a cleanup function to restore the original value.
//
// Platform handling:
//   - Windows: Sets USERPROFILE
//   - Linux/macOS: Sets HOME
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    t.Cleanup(testutil.SetHomeDir(t, t.TempDir()))
//	    // Test code that uses the home directory...
//	}
func SetHomeDir(t testing.TB, dir string) func() {
	t.Helper()

	switch runtime.GOOS {
	case "windows":
		return MustSetenv(t, "USERPROFILE", dir)
	default:
		return MustSetenv(t, "HOME", dir)
	}
}

// IsolateEnv points the home and XDG config directories at dir and clears
// every DOCKWRIGHT_* variable, so a test sees neither the developer's config
// file nor their environment overrides. The returned cleanup restores all of
// it.
func IsolateEnv(t testing.TB, dir string) func() {
	t.Helper()

	cleanups := []func(){
		SetHomeDir(t, dir),
		MustSetenv(t, "XDG_CONFIG_HOME", filepath.Join(dir, ".config")),
	}
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, EnvPrefix) {
			cleanups = append(cleanups, MustUnsetenv(t, key))
		}
	}

	return func() {
		for _, cleanup := range slices.Backward(cleanups) {
			cleanup()
		}
	}
}
