// SPDX-License-Identifier: MPL-2.0

package plan

import (
	"os"
	"path/filepath"

	"github.com/dockwright/dockwright/internal/issue"
)

// DockerfileName is the file name used by WriteDockerfile.
const DockerfileName = "Dockerfile"

// DockerfilePath returns where WriteDockerfile stores the Dockerfile in dir.
func DockerfilePath(dir string) string {
	return filepath.Join(dir, DockerfileName)
}

// WriteDockerfile writes p.Dockerfile into dir, creating dir if needed, and
// returns the written path.
func WriteDockerfile(dir string, p *Plan) (string, error) {
	path := DockerfilePath(dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", writeError(dir, err)
	}
	if err := os.WriteFile(path, []byte(p.Dockerfile), 0o644); err != nil {
		return "", writeError(path, err)
	}
	return path, nil
}

func writeError(resource string, err error) error {
	return issue.NewErrorContext().
		WithOperation("write Dockerfile").
		WithResource(resource).
		WithIssue(issue.OutputWriteFailedId).
		Wrap(err).
		BuildError()
}
