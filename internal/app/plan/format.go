// SPDX-License-Identifier: MPL-2.0

package plan

import (
	"fmt"
	"io"

	"github.com/dockwright/dockwright/internal/format"
)

// Write encodes p to w. The text format prints the Dockerfile followed by
// comment lines carrying the tag and command lines, so the output can be
// piped to `docker build -f -`.
func Write(w io.Writer, p *Plan, f format.Format) error {
	if f != format.Text {
		return format.Encode(w, p, f)
	}
	_, err := fmt.Fprintf(w, "%s\n# image: %s\n# build: %s\n# run: %s\n",
		p.Dockerfile, p.Tag, p.BuildCommand, p.RunCommand)
	return err
}
