// SPDX-License-Identifier: MPL-2.0

package dockerfile

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/dockwright/dockwright/internal/extension"
)

const (
	// TagPrefix is prepended to content-derived image tags.
	TagPrefix = "dockwright-"
	// tagHashLen is the number of hex characters of the hash kept in a tag.
	tagHashLen = 12
)

// ErrEmptyBaseImage is returned by Assemble when no base image is given.
var ErrEmptyBaseImage = errors.New("base image must not be empty")

// Assemble renders the Dockerfile for baseImage from the contributions in
// comp. Every contribution gets a header comment in both sections, even when
// its text is empty, so the file records which extensions were active.
func Assemble(baseImage string, comp *extension.Composition) (string, error) {
	if strings.TrimSpace(baseImage) == "" {
		return "", ErrEmptyBaseImage
	}

	var sb strings.Builder
	for _, c := range comp.Contributions {
		fmt.Fprintf(&sb, "# Preamble from extension [%s]\n", c.Name)
		sb.WriteString(c.Preamble)
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "\nFROM %s\n", baseImage)
	sb.WriteString("USER root\n")

	for _, c := range comp.Contributions {
		fmt.Fprintf(&sb, "# Snippet from extension [%s]\n", c.Name)
		sb.WriteString(c.Snippet)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// ImageTag returns a tag derived from the Dockerfile content.
func ImageTag(dockerfile string) string {
	sum := sha256.Sum256([]byte(dockerfile))
	return TagPrefix + hex.EncodeToString(sum[:])[:tagHashLen]
}
