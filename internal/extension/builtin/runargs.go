// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"github.com/dockwright/dockwright/internal/extension"
	"github.com/dockwright/dockwright/internal/hostenv"
)

type (
	// Devices exposes host devices with --device.
	Devices struct {
		extension.Base
		host hostenv.Provider
	}

	// Network selects the container network mode.
	Network struct {
		extension.Base
	}

	// Env sets container environment variables. Each occurrence of the flag
	// is one group of KEY=VALUE assignments.
	Env struct {
		extension.Base
	}

	// ContainerName sets the container name.
	ContainerName struct {
		extension.Base
	}

	// Privileged runs the container in privileged mode.
	Privileged struct {
		extension.Base
	}
)

// Name implements extension.Extension.
func (*Devices) Name() string { return "devices" }

// RegisterFlags implements extension.Extension.
func (d *Devices) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringSlice(extension.FlagName(d.Name()), nil, "host device paths to expose in the container (repeatable, comma separated)")
}

// DockerArgs emits one --device per path, in order. Paths that do not exist
// on the host are still passed on, with a warning.
func (d *Devices) DockerArgs(args extension.Args) (string, error) {
	var sb strings.Builder
	for _, dev := range args.Strings("devices") {
		if !d.host.Exists(dev) {
			slog.Warn("device not found on host", "device", dev)
		}
		q, err := quote(dev)
		if err != nil {
			return "", err
		}
		sb.WriteString(" --device " + q)
	}
	return sb.String(), nil
}

// Description implements extension.Describer.
func (*Devices) Description() string {
	return `# devices

Pass host devices into the container.

    dockwright render --devices /dev/dri,/dev/video0

Each path becomes a ` + "`--device`" + ` argument. Missing paths are reported
but still passed, since the device may appear before the container starts.
`
}

// Name implements extension.Extension.
func (*Network) Name() string { return "network" }

// RegisterFlags implements extension.Extension.
func (n *Network) RegisterFlags(fs *pflag.FlagSet) {
	fs.String(extension.FlagName(n.Name()), "", "network mode: none, host, bridge, container:<id> or a user-defined network")
}

// DockerArgs emits --network with the requested mode.
func (*Network) DockerArgs(args extension.Args) (string, error) {
	mode := args.String("network")
	if mode == "" {
		return "", nil
	}
	q, err := quote(mode)
	if err != nil {
		return "", err
	}
	return " --network " + q, nil
}

// Description implements extension.Describer.
func (*Network) Description() string {
	return `# network

Select the container network.

    dockwright render --network host

Accepts ` + "`none`, `host`, `bridge`, `container:<id>`" + ` or the name of a
user-defined network.
`
}

// Name implements extension.Extension.
func (*Env) Name() string { return "env" }

// RegisterFlags implements extension.Extension.
func (e *Env) RegisterFlags(fs *pflag.FlagSet) {
	fs.Var(&extension.GroupsValue{}, extension.FlagName(e.Name()), "`KEY=VALUE` assignments to set in the container (repeatable, space separated)")
}

// DockerArgs emits -e for every assignment, preserving order across and
// within groups.
func (*Env) DockerArgs(args extension.Args) (string, error) {
	var sb strings.Builder
	for _, group := range args.Groups("env") {
		for _, assignment := range group {
			q, err := quoteAssignment(assignment)
			if err != nil {
				return "", err
			}
			sb.WriteString(" -e " + q)
		}
	}
	return sb.String(), nil
}

// Description implements extension.Describer.
func (*Env) Description() string {
	return `# env

Set environment variables in the container.

    dockwright render --env "LANG=C.UTF-8 EDITOR=vim" --env DEBUG=1

Every occurrence is split with shell word rules, so values containing
spaces must be quoted.
`
}

// quoteAssignment quotes the name and value of KEY=VALUE separately so that
// plain assignments stay readable. A bare KEY is forwarded from the host.
func quoteAssignment(s string) (string, error) {
	key, value, ok := strings.Cut(s, "=")
	qk, err := quote(key)
	if err != nil {
		return "", err
	}
	if !ok {
		return qk, nil
	}
	qv, err := quote(value)
	if err != nil {
		return "", fmt.Errorf("value of %s: %w", key, err)
	}
	return qk + "=" + qv, nil
}

// Name implements extension.Extension.
func (*ContainerName) Name() string { return "name" }

// RegisterFlags implements extension.Extension.
func (n *ContainerName) RegisterFlags(fs *pflag.FlagSet) {
	fs.String(extension.FlagName(n.Name()), "", "container name")
}

// DockerArgs emits --name.
func (*ContainerName) DockerArgs(args extension.Args) (string, error) {
	name := args.String("name")
	if name == "" {
		return "", nil
	}
	q, err := quote(name)
	if err != nil {
		return "", err
	}
	return " --name " + q, nil
}

// Description implements extension.Describer.
func (*ContainerName) Description() string {
	return "# name\n\nGive the container a fixed name.\n"
}

// Name implements extension.Extension.
func (*Privileged) Name() string { return "privileged" }

// RegisterFlags implements extension.Extension.
func (p *Privileged) RegisterFlags(fs *pflag.FlagSet) {
	fs.Bool(extension.FlagName(p.Name()), false, "run the container in privileged mode")
}

// DockerArgs emits --privileged.
func (*Privileged) DockerArgs(extension.Args) (string, error) {
	return " --privileged", nil
}

// Description implements extension.Describer.
func (*Privileged) Description() string {
	return `# privileged

Run the container with extended privileges. This disables most of the
isolation the engine provides; use it only for trusted images.
`
}
