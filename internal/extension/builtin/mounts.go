// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/spf13/pflag"

	"github.com/dockwright/dockwright/internal/extension"
	"github.com/dockwright/dockwright/internal/hostenv"
)

const (
	x11SocketDir  = "/tmp/.X11-unix"
	gitConfigDest = "/etc/gitconfig"
)

type (
	// Home mounts the invoking user's home directory at the same path.
	Home struct {
		extension.Base
		host hostenv.Provider
	}

	// Volume bind-mounts arbitrary host paths.
	Volume struct {
		extension.Base
	}

	// Git shares the host user's git configuration.
	Git struct {
		extension.Base
		host hostenv.Provider
	}

	// SSH forwards the host ssh-agent socket.
	SSH struct {
		extension.Base
		host hostenv.Provider
	}

	// X11 forwards the host X server.
	X11 struct {
		extension.Base
		host hostenv.Provider
	}
)

// Name implements extension.Extension.
func (*Home) Name() string { return "home" }

// RegisterFlags implements extension.Extension.
func (h *Home) RegisterFlags(fs *pflag.FlagSet) {
	fs.Bool(extension.FlagName(h.Name()), false, "mount the host home directory into the container")
}

// DockerArgs mounts the home directory at the same path.
func (h *Home) DockerArgs(extension.Args) (string, error) {
	home, err := h.host.HomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	q, err := quoteMount(home, home)
	if err != nil {
		return "", err
	}
	return " -v " + q, nil
}

// Description implements extension.Describer.
func (*Home) Description() string {
	return `# home

Mount your home directory into the container at the same path.

Combine with ` + "`--user`" + ` so files keep their ownership. When home is
mounted, the user extension does not create a fresh home directory in the
image.
`
}

// Name implements extension.Extension.
func (*Volume) Name() string { return "volume" }

// RegisterFlags implements extension.Extension.
func (v *Volume) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringArray(extension.FlagName(v.Name()), nil, "bind mount `SRC[:DST[:OPTS]]` (repeatable)")
}

// DockerArgs emits -v for each volume. The destination defaults to the
// source path. Specifications without a source are skipped with a warning.
func (*Volume) DockerArgs(args extension.Args) (string, error) {
	var sb strings.Builder
	for _, spec := range args.Strings("volume") {
		parts := strings.SplitN(spec, ":", 3)
		if parts[0] == "" {
			slog.Warn("ignoring volume without source", "volume", spec)
			continue
		}
		if len(parts) == 1 || parts[1] == "" {
			parts = append([]string{parts[0], parts[0]}, parts[min(2, len(parts)):]...)
		}
		q, err := quoteMount(parts...)
		if err != nil {
			return "", err
		}
		sb.WriteString(" -v " + q)
	}
	return sb.String(), nil
}

// Description implements extension.Describer.
func (*Volume) Description() string {
	return `# volume

Bind-mount host paths.

    dockwright render --volume /srv/data --volume ./src:/workspace:ro

The destination defaults to the source path.
`
}

// Name implements extension.Extension.
func (*Git) Name() string { return "git" }

// RegisterFlags implements extension.Extension.
func (g *Git) RegisterFlags(fs *pflag.FlagSet) {
	fs.Bool(extension.FlagName(g.Name()), false, "share the host ~/.gitconfig with the container")
}

// DockerArgs mounts ~/.gitconfig read-only as the system git configuration,
// when the file exists.
func (g *Git) DockerArgs(extension.Args) (string, error) {
	home, err := g.host.HomeDir()
	if err != nil {
		return "", fmt.Errorf("git: %w", err)
	}
	src := path.Join(home, ".gitconfig")
	if !g.host.Exists(src) {
		slog.Debug("no git configuration to share", "path", src)
		return "", nil
	}
	q, err := quoteMount(src, gitConfigDest, "ro")
	if err != nil {
		return "", err
	}
	return " -v " + q, nil
}

// Description implements extension.Describer.
func (*Git) Description() string {
	return "# git\n\nMount `~/.gitconfig` read-only at `/etc/gitconfig` so commits made in the\ncontainer carry your identity.\n"
}

// Name implements extension.Extension.
func (*SSH) Name() string { return "ssh" }

// RegisterFlags implements extension.Extension.
func (s *SSH) RegisterFlags(fs *pflag.FlagSet) {
	fs.Bool(extension.FlagName(s.Name()), false, "forward the host ssh-agent socket")
}

// DockerArgs forwards SSH_AUTH_SOCK and mounts the socket.
func (s *SSH) DockerArgs(extension.Args) (string, error) {
	sock := s.host.Getenv("SSH_AUTH_SOCK")
	if sock == "" {
		slog.Warn("ssh requested but SSH_AUTH_SOCK is not set")
		return "", nil
	}
	q, err := quoteMount(sock, sock)
	if err != nil {
		return "", err
	}
	return " -e SSH_AUTH_SOCK -v " + q, nil
}

// Description implements extension.Describer.
func (*SSH) Description() string {
	return "# ssh\n\nForward the ssh-agent running on the host. Requires `SSH_AUTH_SOCK`.\n"
}

// Name implements extension.Extension.
func (*X11) Name() string { return "x11" }

// RegisterFlags implements extension.Extension.
func (x *X11) RegisterFlags(fs *pflag.FlagSet) {
	fs.Bool(extension.FlagName(x.Name()), false, "forward the host X11 display")
}

// DockerArgs forwards the display and mounts the X socket directory, plus
// the Xauthority file when XAUTHORITY is set.
func (x *X11) DockerArgs(extension.Args) (string, error) {
	out := " -e DISPLAY -e TERM -e QT_X11_NO_MITSHM=1 -v " + x11SocketDir + ":" + x11SocketDir + ":rw"
	xauth := x.host.Getenv("XAUTHORITY")
	if xauth == "" {
		return out, nil
	}
	qa, err := quoteAssignment("XAUTHORITY=" + xauth)
	if err != nil {
		return "", err
	}
	qm, err := quoteMount(xauth, xauth)
	if err != nil {
		return "", err
	}
	return out + " -e " + qa + " -v " + qm, nil
}

// Description implements extension.Describer.
func (*X11) Description() string {
	return `# x11

Run graphical applications against the host X server. The display socket
directory is mounted and ` + "`XAUTHORITY`" + ` is shared when set. You may
need ` + "`xhost +local:`" + ` on the host.
`
}
