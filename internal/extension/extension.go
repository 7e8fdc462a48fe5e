// SPDX-License-Identifier: MPL-2.0

package extension

import (
	"strings"

	"github.com/spf13/pflag"
)

type (
	// Extension is the interface every dockwright extension implements.
	//
	// All methods except RegisterFlags are pure functions of args plus read-only
	// host queries. An inactive extension, or one with nothing to contribute for a
	// given artifact, returns the empty string. A non-empty DockerArgs result
	// always starts with a single space so results can be concatenated directly.
	Extension interface {
		// Name returns the stable identifier used as registry key and, after
		// NameToArgument, as the activating flag.
		Name() string
		// RegisterFlags registers the activating flag (and any related flags) on fs.
		RegisterFlags(fs *pflag.FlagSet)
		// Preamble returns Dockerfile text emitted before the main stage.
		Preamble(args Args) (string, error)
		// Snippet returns Dockerfile instructions for the main stage.
		Snippet(args Args) (string, error)
		// DockerArgs returns extra arguments for the engine's run command.
		DockerArgs(args Args) (string, error)
	}

	// IdentityAware is implemented by extensions whose output depends on the
	// invoking host user. EnvironmentSubs returns the values substituted into
	// the extension's templates (uid, gid, name, dir, gecos, shell).
	IdentityAware interface {
		EnvironmentSubs() (map[string]any, error)
	}

	// Describer is implemented by extensions that carry Markdown help text.
	Describer interface {
		Description() string
	}
)

// NameToArgument converts an extension name into its flag spelling:
// underscores become hyphens and the result is prefixed with "--".
func NameToArgument(name string) string {
	return "--" + strings.ReplaceAll(name, "_", "-")
}

// FlagName is NameToArgument without the leading dashes, the form pflag expects.
func FlagName(name string) string {
	return strings.TrimPrefix(NameToArgument(name), "--")
}

// ArgKey converts a flag name back into the Args key it is stored under.
// It is the inverse of FlagName for names that never contained hyphens.
func ArgKey(flagName string) string {
	return strings.ReplaceAll(strings.TrimLeft(flagName, "-"), "-", "_")
}

// Base provides the empty implementations of Preamble, Snippet and DockerArgs.
// Built-in extensions embed it and override only what they contribute.
type Base struct{}

// Preamble returns "".
func (Base) Preamble(Args) (string, error) { return "", nil }

// Snippet returns "".
func (Base) Snippet(Args) (string, error) { return "", nil }

// DockerArgs returns "".
func (Base) DockerArgs(Args) (string, error) { return "", nil }
