// SPDX-License-Identifier: MPL-2.0

// Package hostenv answers questions about the invoking host user.
//
// Extensions never read process identity directly; they receive a Provider.
// Production code uses the OS provider (optionally wrapped in Cached so the
// account database is read once per invocation) and tests use Static.
package hostenv

import (
	"errors"
	"os"
	"sync"
)

// Environment substitution keys returned by Identity.Subs.
const (
	SubUID   = "uid"
	SubGID   = "gid"
	SubName  = "name"
	SubDir   = "dir"
	SubGecos = "gecos"
	SubShell = "shell"
)

// ErrNoSuchGroup is returned by LookupGroupID when the group does not exist.
var ErrNoSuchGroup = errors.New("no such group")

type (
	// Identity is the invoking user's account record.
	Identity struct {
		UID   int
		GID   int
		Name  string
		Dir   string
		Gecos string
		Shell string
	}

	// Provider is the host introspection surface extensions depend on.
	Provider interface {
		// Identity returns the account record of the invoking user.
		Identity() (Identity, error)
		// HomeDir returns the invoking user's home directory as seen by the
		// process environment ($HOME on unix).
		HomeDir() (string, error)
		// LookupGroupID returns the numeric id of a named host group.
		LookupGroupID(name string) (int, error)
		// Getenv returns the value of a host environment variable.
		Getenv(key string) string
		// Exists reports whether a host path exists.
		Exists(path string) bool
	}

	// Static is a Provider with fixed answers, for tests and dry runs.
	Static struct {
		ID     Identity
		Home   string
		Groups map[string]int
		Env    map[string]string
		Paths  map[string]bool
		Err    error
	}

	// Cached memoizes Identity and HomeDir of an underlying Provider.
	Cached struct {
		Provider

		identity func() (Identity, error)
		home     func() (string, error)
	}
)

// Subs returns the identity as template substitutions.
func (id Identity) Subs() map[string]any {
	return map[string]any{
		SubUID:   id.UID,
		SubGID:   id.GID,
		SubName:  id.Name,
		SubDir:   id.Dir,
		SubGecos: id.Gecos,
		SubShell: id.Shell,
	}
}

// NewCached wraps p so that the account database and home directory are
// consulted at most once.
func NewCached(p Provider) *Cached {
	return &Cached{
		Provider: p,
		identity: sync.OnceValues(p.Identity),
		home:     sync.OnceValues(p.HomeDir),
	}
}

// Identity returns the memoized identity.
func (c *Cached) Identity() (Identity, error) { return c.identity() }

// HomeDir returns the memoized home directory.
func (c *Cached) HomeDir() (string, error) { return c.home() }

// Identity returns s.ID, or s.Err when set.
func (s *Static) Identity() (Identity, error) {
	if s.Err != nil {
		return Identity{}, s.Err
	}
	return s.ID, nil
}

// HomeDir returns s.Home, falling back to the identity's directory.
func (s *Static) HomeDir() (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	if s.Home != "" {
		return s.Home, nil
	}
	return s.ID.Dir, nil
}

// LookupGroupID returns the id configured in s.Groups.
func (s *Static) LookupGroupID(name string) (int, error) {
	gid, ok := s.Groups[name]
	if !ok {
		return 0, ErrNoSuchGroup
	}
	return gid, nil
}

// Getenv returns the value configured in s.Env.
func (s *Static) Getenv(key string) string { return s.Env[key] }

// Exists reports whether path is marked present in s.Paths.
func (s *Static) Exists(path string) bool { return s.Paths[path] }

// pathExists is shared by the OS providers.
func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
