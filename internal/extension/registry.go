// SPDX-License-Identifier: MPL-2.0

package extension

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"
)

var (
	// ErrDuplicateExtension is returned when two extensions share a name.
	ErrDuplicateExtension = errors.New("duplicate extension")
	// ErrUnknownExtension is returned when a name has no registered extension.
	ErrUnknownExtension = errors.New("unknown extension")
)

// Registry is a static table of extensions keyed by name.
// It preserves declaration order, which is also the activation order used
// when composing output.
type Registry struct {
	order  []string
	byName map[string]Extension
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: map[string]Extension{}}
}

// Register adds ext under ext.Name().
func (r *Registry) Register(ext Extension) error {
	name := ext.Name()
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateExtension, name)
	}
	r.byName[name] = ext
	r.order = append(r.order, name)
	return nil
}

// Get returns the extension registered under name.
func (r *Registry) Get(name string) (Extension, error) {
	ext, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownExtension, name)
	}
	return ext, nil
}

// Names returns registered names in declaration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// All returns registered extensions in declaration order.
func (r *Registry) All() []Extension {
	exts := make([]Extension, 0, len(r.order))
	for _, name := range r.order {
		exts = append(exts, r.byName[name])
	}
	return exts
}

// RegisterFlags lets every extension register its flags on fs.
func (r *Registry) RegisterFlags(fs *pflag.FlagSet) {
	for _, ext := range r.All() {
		ext.RegisterFlags(fs)
	}
}

// Active returns the extensions whose name is active in args, in declaration order.
func (r *Registry) Active(args Args) []Extension {
	var active []Extension
	for _, name := range r.order {
		if args.Active(name) {
			active = append(active, r.byName[name])
		}
	}
	return active
}
