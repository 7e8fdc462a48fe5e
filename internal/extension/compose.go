// SPDX-License-Identifier: MPL-2.0

package extension

import (
	"fmt"
	"log/slog"
	"strings"
)

type (
	// Contribution is what a single extension produced for one invocation.
	Contribution struct {
		Name       string
		Preamble   string
		Snippet    string
		DockerArgs string
	}

	// Composition holds the contributions of all active extensions in
	// activation order.
	Composition struct {
		Contributions []Contribution
	}
)

// Compose asks each extension for its preamble, snippet and docker args, in
// that order, and collects the results. The first error aborts composition.
func Compose(exts []Extension, args Args) (*Composition, error) {
	comp := &Composition{Contributions: make([]Contribution, 0, len(exts))}
	for _, ext := range exts {
		c, err := contribute(ext, args)
		if err != nil {
			return nil, err
		}
		slog.Debug("extension contributed",
			"extension", c.Name,
			"preamble_bytes", len(c.Preamble),
			"snippet_bytes", len(c.Snippet),
			"docker_args", c.DockerArgs)
		comp.Contributions = append(comp.Contributions, c)
	}
	return comp, nil
}

func contribute(ext Extension, args Args) (Contribution, error) {
	c := Contribution{Name: ext.Name()}
	var err error
	if c.Preamble, err = ext.Preamble(args); err != nil {
		return c, fmt.Errorf("extension %s: preamble: %w", c.Name, err)
	}
	if c.Snippet, err = ext.Snippet(args); err != nil {
		return c, fmt.Errorf("extension %s: snippet: %w", c.Name, err)
	}
	if c.DockerArgs, err = ext.DockerArgs(args); err != nil {
		return c, fmt.Errorf("extension %s: docker args: %w", c.Name, err)
	}
	return c, nil
}

// Names returns the names of the contributing extensions.
func (c *Composition) Names() []string {
	names := make([]string, len(c.Contributions))
	for i, contrib := range c.Contributions {
		names[i] = contrib.Name
	}
	return names
}

// Preamble concatenates every preamble.
func (c *Composition) Preamble() string {
	return c.join(func(x Contribution) string { return x.Preamble })
}

// Snippet concatenates every snippet.
func (c *Composition) Snippet() string {
	return c.join(func(x Contribution) string { return x.Snippet })
}

// DockerArgs concatenates every docker args string. Each non-empty part
// already starts with a space, so the result does too.
func (c *Composition) DockerArgs() string {
	return c.join(func(x Contribution) string { return x.DockerArgs })
}

func (c *Composition) join(part func(Contribution) string) string {
	var sb strings.Builder
	for _, contrib := range c.Contributions {
		sb.WriteString(part(contrib))
	}
	return sb.String()
}
