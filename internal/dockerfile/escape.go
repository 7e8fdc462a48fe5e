// SPDX-License-Identifier: MPL-2.0

package dockerfile

import (
	"fmt"
	"strings"

	"github.com/dockwright/dockwright/internal/render"
)

// EchoToFile returns a RUN instruction that writes lines to dest inside the
// image using a single-quoted echo. Each line is terminated with an escaped
// newline and a Dockerfile line continuation, so the file content stays
// readable in the generated Dockerfile:
//
//	RUN echo '\n\
//	first line\n\
//	second line\n\
//	'\
//	> /etc/example.conf
//
// Single quotes and backslashes in lines are escaped for the shell.
func EchoToFile(lines []string, dest string) string {
	var sb strings.Builder
	sb.WriteString("RUN echo '\\n\\\n")
	for _, line := range lines {
		sb.WriteString(escapeEchoLine(line))
		sb.WriteString("\\n\\\n")
	}
	sb.WriteString("'\\\n")
	fmt.Fprintf(&sb, "> %s\n", dest)
	return sb.String()
}

// escapeEchoLine makes line safe inside a single-quoted echo argument.
// Backslashes are doubled because echo interprets escape sequences, and a
// single quote closes the string, emits an escaped quote and reopens it.
func escapeEchoLine(line string) string {
	line = strings.ReplaceAll(line, `\`, `\\`)
	return strings.ReplaceAll(line, `'`, `'\''`)
}

// AptInstall returns a RUN instruction installing packages with apt-get,
// one shell-quoted package per continued line, cleaning the package cache
// afterwards.
func AptInstall(packages []string) (string, error) {
	var sb strings.Builder
	sb.WriteString("RUN apt-get update \\\n")
	sb.WriteString(" && apt-get install -y \\\n")
	for _, pkg := range packages {
		q, err := render.ShellQuote(pkg)
		if err != nil {
			return "", fmt.Errorf("apt package: %w", err)
		}
		fmt.Fprintf(&sb, "    %s \\\n", q)
	}
	sb.WriteString(" && apt-get clean\n")
	return sb.String(), nil
}
