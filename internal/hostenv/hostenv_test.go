// SPDX-License-Identifier: MPL-2.0

package hostenv

import (
	"errors"
	"testing"
)

func TestIdentity_Subs(t *testing.T) {
	t.Parallel()

	id := Identity{UID: 1000, GID: 1001, Name: "dev", Dir: "/home/dev", Gecos: "Dev User,,,", Shell: "/bin/zsh"}
	subs := id.Subs()

	want := map[string]any{
		"uid":   1000,
		"gid":   1001,
		"name":  "dev",
		"dir":   "/home/dev",
		"gecos": "Dev User,,,",
		"shell": "/bin/zsh",
	}
	for k, v := range want {
		if subs[k] != v {
			t.Errorf("Subs()[%q] = %v, want %v", k, subs[k], v)
		}
	}
	if len(subs) != len(want) {
		t.Errorf("Subs() has %d keys, want %d", len(subs), len(want))
	}
}

func TestStatic(t *testing.T) {
	t.Parallel()

	s := &Static{
		ID:     Identity{UID: 42, Dir: "/home/x"},
		Groups: map[string]int{"audio": 29},
		Env:    map[string]string{"DISPLAY": ":0"},
		Paths:  map[string]bool{"/dev/snd": true},
	}

	home, err := s.HomeDir()
	if err != nil || home != "/home/x" {
		t.Errorf("HomeDir() = %q, %v; want identity dir", home, err)
	}
	if gid, err := s.LookupGroupID("audio"); err != nil || gid != 29 {
		t.Errorf("LookupGroupID(audio) = %d, %v", gid, err)
	}
	if _, err := s.LookupGroupID("video"); !errors.Is(err, ErrNoSuchGroup) {
		t.Errorf("LookupGroupID(video) error = %v, want ErrNoSuchGroup", err)
	}
	if s.Getenv("DISPLAY") != ":0" || s.Getenv("XAUTHORITY") != "" {
		t.Error("Getenv() returned unexpected values")
	}
	if !s.Exists("/dev/snd") || s.Exists("/dev/null") {
		t.Error("Exists() returned unexpected values")
	}
}

func TestStatic_Error(t *testing.T) {
	t.Parallel()

	boom := errors.New("passwd unreadable")
	s := &Static{Err: boom}
	if _, err := s.Identity(); !errors.Is(err, boom) {
		t.Errorf("Identity() error = %v, want %v", err, boom)
	}
	if _, err := s.HomeDir(); !errors.Is(err, boom) {
		t.Errorf("HomeDir() error = %v, want %v", err, boom)
	}
}

type countingProvider struct {
	Static
	identityCalls int
	homeCalls     int
}

func (c *countingProvider) Identity() (Identity, error) {
	c.identityCalls++
	return c.Static.Identity()
}

func (c *countingProvider) HomeDir() (string, error) {
	c.homeCalls++
	return c.Static.HomeDir()
}

func TestCached(t *testing.T) {
	t.Parallel()

	inner := &countingProvider{Static: Static{ID: Identity{UID: 7, Name: "seven"}, Home: "/h"}}
	c := NewCached(inner)

	for range 3 {
		id, err := c.Identity()
		if err != nil || id.Name != "seven" {
			t.Fatalf("Identity() = %+v, %v", id, err)
		}
		if home, _ := c.HomeDir(); home != "/h" {
			t.Fatalf("HomeDir() = %q", home)
		}
	}
	if inner.identityCalls != 1 || inner.homeCalls != 1 {
		t.Errorf("underlying calls = %d/%d, want 1/1", inner.identityCalls, inner.homeCalls)
	}

	// Non-memoized methods pass through.
	if c.Getenv("NOPE") != "" {
		t.Error("Getenv() should pass through to the wrapped provider")
	}
}
