// SPDX-License-Identifier: MPL-2.0

package extension

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"mvdan.cc/sh/v3/shell"
)

// groupsFlagType is the pflag type name reported by GroupsValue.
const groupsFlagType = "stringGroups"

// ErrInvalidArgument is wrapped by extensions that reject a flag value.
var ErrInvalidArgument = errors.New("invalid extension argument")

type (
	// Args is the parsed command-line state handed to every extension method.
	//
	// Keys are flag names with hyphens replaced by underscores. Value shapes vary
	// per extension: bool for presence-only flags, string for scalar flags,
	// []string for repeatable flags and [][]string for repeatable flags where each
	// occurrence carries several values. A missing key means the flag was not
	// passed. Accessors return zero values for unexpected shapes.
	Args map[string]any

	// GroupsValue is a pflag.Value that keeps one group of words per occurrence
	// of a repeatable flag, e.g. `--env "A=1 B=2" --env C=3` yields
	// [[A=1 B=2] [C=3]]. Each occurrence is split with shell word rules.
	GroupsValue struct {
		groups [][]string
	}
)

// Active reports whether name is present in args with a truthy value.
func (a Args) Active(name string) bool {
	v, ok := a[name]
	if !ok {
		return false
	}
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case []string:
		return len(t) > 0
	case [][]string:
		return len(t) > 0
	default:
		return true
	}
}

// String returns the scalar value stored under name.
func (a Args) String(name string) string {
	switch t := a[name].(type) {
	case string:
		return t
	case []string:
		if len(t) > 0 {
			return t[len(t)-1]
		}
	}
	return ""
}

// Strings returns the list value stored under name. A scalar string is
// returned as a one-element list and groups are flattened.
func (a Args) Strings(name string) []string {
	switch t := a[name].(type) {
	case []string:
		return t
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case [][]string:
		var out []string
		for _, g := range t {
			out = append(out, g...)
		}
		return out
	}
	return nil
}

// Groups returns the grouped value stored under name. A flat list is returned
// as a single group.
func (a Args) Groups(name string) [][]string {
	switch t := a[name].(type) {
	case [][]string:
		return t
	case []string:
		if len(t) == 0 {
			return nil
		}
		return [][]string{t}
	}
	return nil
}

// Clone returns a shallow copy of a.
func (a Args) Clone() Args {
	out := make(Args, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// ArgsFromFlags collects every flag that was set on fs into Args.
// Flags left at their default are omitted so that absence keeps meaning
// "not passed".
func ArgsFromFlags(fs *pflag.FlagSet) (Args, error) {
	args := Args{}
	var firstErr error
	fs.Visit(func(f *pflag.Flag) {
		v, err := flagValue(f)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("flag --%s: %w", f.Name, err)
			}
			return
		}
		args[ArgKey(f.Name)] = v
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return args, nil
}

func flagValue(f *pflag.Flag) (any, error) {
	switch v := f.Value.(type) {
	case *GroupsValue:
		return v.Groups(), nil
	case pflag.SliceValue:
		return v.GetSlice(), nil
	}
	if f.Value.Type() == "bool" {
		return strconv.ParseBool(f.Value.String())
	}
	return f.Value.String(), nil
}

// Set appends one occurrence.
func (g *GroupsValue) Set(s string) error {
	words, err := shell.Fields(s, nil)
	if err != nil {
		return fmt.Errorf("split %q: %w", s, err)
	}
	if len(words) == 0 {
		return nil
	}
	g.groups = append(g.groups, words)
	return nil
}

// String renders the groups the way they were given on the command line.
func (g *GroupsValue) String() string {
	parts := make([]string, 0, len(g.groups))
	for _, grp := range g.groups {
		parts = append(parts, "["+strings.Join(grp, " ")+"]")
	}
	return strings.Join(parts, " ")
}

// Type implements pflag.Value.
func (g *GroupsValue) Type() string { return groupsFlagType }

// Groups returns a copy of the collected groups.
func (g *GroupsValue) Groups() [][]string {
	out := make([][]string, len(g.groups))
	for i, grp := range g.groups {
		out[i] = append([]string(nil), grp...)
	}
	return out
}
