// SPDX-License-Identifier: MPL-2.0

package container

import (
	"errors"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/shell"
	"mvdan.cc/sh/v3/syntax"
)

// ErrEmptyImage is returned when a command is built without an image.
var ErrEmptyImage = errors.New("image must not be empty")

type (
	// RunCommand describes `<engine> run` for a generated image.
	RunCommand struct {
		Engine EngineType
		Image  string
		// DockerArgs is the concatenated extension output: a string of shell
		// words, each part starting with a space.
		DockerArgs string
		// Command is appended after the image.
		Command []string
		// Interactive adds -it.
		Interactive bool
		// Remove adds --rm.
		Remove bool
	}

	// BuildCommand describes `<engine> build` for a generated Dockerfile.
	BuildCommand struct {
		Engine     EngineType
		Tag        string
		Dockerfile string
		ContextDir string
		NoCache    bool
	}
)

// Argv returns the command as an argument vector, binary first.
//
// Generated command: <binary> run [-it] [--rm] <docker args...> <image> [command...]
func (c RunCommand) Argv() ([]string, error) {
	if err := c.Engine.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(c.Image) == "" {
		return nil, ErrEmptyImage
	}

	args := []string{c.Engine.Binary(), "run"}
	if c.Interactive {
		args = append(args, "-it")
	}
	if c.Remove {
		args = append(args, "--rm")
	}

	// Extension output is quoted; expansions never read the process environment.
	extra, err := shell.Fields(c.DockerArgs, func(string) string { return "" })
	if err != nil {
		return nil, fmt.Errorf("split run arguments %q: %w", c.DockerArgs, err)
	}
	args = append(args, extra...)

	args = append(args, c.Image)
	args = append(args, c.Command...)
	return args, nil
}

// String returns the command as a single shell-quoted line.
func (c RunCommand) String() (string, error) {
	argv, err := c.Argv()
	if err != nil {
		return "", err
	}
	return joinQuoted(argv)
}

// Argv returns the command as an argument vector, binary first.
//
// Generated command: <binary> build [-f <dockerfile>] -t <tag> [--no-cache] <context>
func (c BuildCommand) Argv() ([]string, error) {
	if err := c.Engine.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(c.Tag) == "" {
		return nil, ErrEmptyImage
	}

	args := []string{c.Engine.Binary(), "build"}
	if c.Dockerfile != "" {
		args = append(args, "-f", c.Dockerfile)
	}
	args = append(args, "-t", c.Tag)
	if c.NoCache {
		args = append(args, "--no-cache")
	}

	ctxDir := c.ContextDir
	if ctxDir == "" {
		ctxDir = "."
	}
	return append(args, ctxDir), nil
}

// String returns the command as a single shell-quoted line.
func (c BuildCommand) String() (string, error) {
	argv, err := c.Argv()
	if err != nil {
		return "", err
	}
	return joinQuoted(argv)
}

func joinQuoted(argv []string) (string, error) {
	words := make([]string, len(argv))
	for i, a := range argv {
		q, err := quoteWord(a)
		if err != nil {
			return "", fmt.Errorf("quote argument %d: %w", i, err)
		}
		words[i] = q
	}
	return strings.Join(words, " "), nil
}

// quoteWord quotes a for a POSIX shell. KEY=VALUE words keep the "=" outside
// the quotes since they are never in command position.
func quoteWord(a string) (string, error) {
	key, value, ok := strings.Cut(a, "=")
	if !ok || key == "" {
		return syntax.Quote(a, syntax.LangPOSIX)
	}
	qk, err := syntax.Quote(key, syntax.LangPOSIX)
	if err != nil {
		return "", err
	}
	qv, err := syntax.Quote(value, syntax.LangPOSIX)
	if err != nil {
		return "", err
	}
	return qk + "=" + qv, nil
}
