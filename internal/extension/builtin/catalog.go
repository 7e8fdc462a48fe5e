// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"fmt"
	"strings"

	"github.com/dockwright/dockwright/internal/extension"
	"github.com/dockwright/dockwright/internal/hostenv"
	"github.com/dockwright/dockwright/internal/render"
)

// DefaultDevHelperPackages are installed by dev_helpers unless configured otherwise.
var DefaultDevHelperPackages = []string{"byobu", "emacs"}

// Options configures the built-in extensions.
type Options struct {
	// Host answers identity and environment queries. Defaults to a cached
	// OS provider.
	Host hostenv.Provider
	// DevHelperPackages overrides DefaultDevHelperPackages when non-empty.
	DevHelperPackages []string
}

// Catalog returns every built-in extension in declaration order.
// The order is also the activation order: run-argument extensions first,
// then mounts, then extensions that add image content, with user last so
// that its USER/WORKDIR instructions end the generated Dockerfile.
func Catalog(opts Options) []extension.Extension {
	host := opts.Host
	if host == nil {
		host = hostenv.NewCached(hostenv.NewOS())
	}
	pkgs := opts.DevHelperPackages
	if len(pkgs) == 0 {
		pkgs = DefaultDevHelperPackages
	}

	return []extension.Extension{
		&Devices{host: host},
		&Network{},
		&Env{},
		&Volume{},
		&ContainerName{},
		&Privileged{},
		&Home{host: host},
		&Git{host: host},
		&SSH{host: host},
		&X11{host: host},
		&Pulse{host: host},
		&DevHelpers{packages: append([]string(nil), pkgs...)},
		&User{host: host},
	}
}

// NewRegistry registers the catalog in a fresh registry.
func NewRegistry(opts Options) (*extension.Registry, error) {
	reg := extension.NewRegistry()
	for _, ext := range Catalog(opts) {
		if err := reg.Register(ext); err != nil {
			return nil, fmt.Errorf("register built-in extensions: %w", err)
		}
	}
	return reg, nil
}

// quote shell-quotes a single run-argument word.
func quote(s string) (string, error) {
	return render.ShellQuote(s)
}

// quoteMount quotes a "src:dst[:opts]" volume specification as one word.
func quoteMount(parts ...string) (string, error) {
	return quote(strings.Join(parts, ":"))
}
