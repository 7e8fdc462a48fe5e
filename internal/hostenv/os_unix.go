// SPDX-License-Identifier: MPL-2.0

//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package hostenv

import (
	"errors"
	"fmt"
	"os"

	"github.com/moby/sys/user"
	"golang.org/x/sys/unix"
)

// OS is the Provider backed by the real process and account database.
type OS struct{}

// NewOS returns the host provider for the running process.
func NewOS() *OS { return &OS{} }

// Identity looks up the real uid of the process in the passwd database.
// The gid is the process's real gid, not the passwd primary group, so that
// `newgrp` sessions are honored.
func (*OS) Identity() (Identity, error) {
	uid := unix.Getuid()
	u, err := user.LookupUid(uid)
	if err != nil {
		return Identity{}, fmt.Errorf("look up passwd entry for uid %d: %w", uid, err)
	}
	return Identity{
		UID:   uid,
		GID:   unix.Getgid(),
		Name:  u.Name,
		Dir:   u.Home,
		Gecos: u.Gecos,
		Shell: u.Shell,
	}, nil
}

// HomeDir returns $HOME.
func (*OS) HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine home directory: %w", err)
	}
	return home, nil
}

// LookupGroupID resolves a group name through /etc/group.
func (*OS) LookupGroupID(name string) (int, error) {
	g, err := user.LookupGroup(name)
	if err != nil {
		if errors.Is(err, user.ErrNoGroupEntries) {
			return 0, fmt.Errorf("%w: %s", ErrNoSuchGroup, name)
		}
		return 0, fmt.Errorf("look up group %s: %w", name, err)
	}
	return g.Gid, nil
}

// Getenv returns os.Getenv(key).
func (*OS) Getenv(key string) string { return os.Getenv(key) }

// Exists reports whether path exists on the host.
func (*OS) Exists(path string) bool { return pathExists(path) }
