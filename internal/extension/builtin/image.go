// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/dockwright/dockwright/internal/dockerfile"
	"github.com/dockwright/dockwright/internal/extension"
	"github.com/dockwright/dockwright/internal/hostenv"
)

const (
	pulseClientConf = "/etc/pulse/client.conf"
	audioGroup      = "audio"
)

type (
	// Pulse connects the container to the host PulseAudio server through
	// its UNIX socket.
	Pulse struct {
		extension.Base
		host hostenv.Provider
	}

	// DevHelpers installs a set of convenience packages.
	DevHelpers struct {
		extension.Base
		packages []string
	}
)

// Name implements extension.Extension.
func (*Pulse) Name() string { return "pulse" }

// RegisterFlags implements extension.Extension.
func (p *Pulse) RegisterFlags(fs *pflag.FlagSet) {
	fs.Bool(extension.FlagName(p.Name()), false, "share the host PulseAudio server")
}

// Snippet writes a client.conf pointing at the mounted host socket.
func (p *Pulse) Snippet(extension.Args) (string, error) {
	id, err := p.host.Identity()
	if err != nil {
		return "", fmt.Errorf("pulse: %w", err)
	}
	conf := []string{
		"# Connect to the host's server using the mounted UNIX socket",
		fmt.Sprintf("default-server = unix:/run/user/%d/pulse/native", id.UID),
		"",
		"# Prevent a server running in the container",
		"autospawn = no",
		"daemon-binary = /bin/true",
		"",
		"# Prevent the use of shared memory",
		"enable-shm = false",
		"",
	}
	return "RUN mkdir -p /etc/pulse\n" + dockerfile.EchoToFile(conf, pulseClientConf), nil
}

// DockerArgs mounts the user's pulse runtime directory and the sound
// devices, points PULSE_SERVER at the socket and adds the audio group.
func (p *Pulse) DockerArgs(extension.Args) (string, error) {
	id, err := p.host.Identity()
	if err != nil {
		return "", fmt.Errorf("pulse: %w", err)
	}
	runDir := fmt.Sprintf("/run/user/%d", id.UID)
	xdg := p.host.Getenv("XDG_RUNTIME_DIR")
	if xdg == "" {
		xdg = runDir
	}
	audio, err := p.audioGroup()
	if err != nil {
		return "", err
	}
	socket := xdg + "/pulse/native"

	runMount, err := quoteMount(runDir+"/pulse", runDir+"/pulse")
	if err != nil {
		return "", fmt.Errorf("pulse: %w", err)
	}
	server, err := quoteAssignment("PULSE_SERVER=unix:" + socket)
	if err != nil {
		return "", fmt.Errorf("pulse: %w", err)
	}
	socketMount, err := quoteMount(socket, socket)
	if err != nil {
		return "", fmt.Errorf("pulse: %w", err)
	}
	group, err := quote(audio)
	if err != nil {
		return "", fmt.Errorf("pulse: %w", err)
	}
	return " -v " + runMount + " --device /dev/snd -e " + server + " -v " + socketMount + " --group-add " + group, nil
}

// audioGroup returns the host audio group id, or the group name when the
// host has no such group.
func (p *Pulse) audioGroup() (string, error) {
	gid, err := p.host.LookupGroupID(audioGroup)
	if err != nil {
		if errors.Is(err, hostenv.ErrNoSuchGroup) {
			slog.Debug("host has no audio group, adding by name", "group", audioGroup)
			return audioGroup, nil
		}
		return "", fmt.Errorf("pulse: %w", err)
	}
	return strconv.Itoa(gid), nil
}

// Description implements extension.Describer.
func (*Pulse) Description() string {
	return `# pulse

Play sound through the host PulseAudio server. The host socket under
` + "`$XDG_RUNTIME_DIR/pulse`" + ` is mounted, ` + "`/dev/snd`" + ` is passed through and the
container joins the host ` + "`audio`" + ` group. A client configuration that
never spawns a local server is written to ` + "`/etc/pulse/client.conf`" + `.
`
}

// Name implements extension.Extension.
func (*DevHelpers) Name() string { return "dev_helpers" }

// RegisterFlags implements extension.Extension.
func (d *DevHelpers) RegisterFlags(fs *pflag.FlagSet) {
	fs.Bool(extension.FlagName(d.Name()), false, "install development helper packages")
}

// Snippet installs the configured packages.
func (d *DevHelpers) Snippet(extension.Args) (string, error) {
	install, err := dockerfile.AptInstall(d.packages)
	if err != nil {
		return "", fmt.Errorf("dev_helpers: %w", err)
	}
	return "# workspace development helpers\n" + install, nil
}

// Description implements extension.Describer.
func (*DevHelpers) Description() string {
	return `# dev_helpers

Install a few packages that make interactive work in the container nicer.
The default set is byobu and emacs; change it with the
` + "`extensions.dev_helpers.packages`" + ` configuration key.
`
}
