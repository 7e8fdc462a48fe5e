// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strings"
	"testing"

	"github.com/dockwright/dockwright/internal/config"
	"github.com/dockwright/dockwright/internal/issue"
)

func TestExtensions_List(t *testing.T) {
	deps := withConfig(func(cfg *config.Config) { cfg.Extensions.Defaults = []string{"user"} })

	stdout, _, err := runCLI(t, deps, "extensions")
	if err != nil {
		t.Fatalf("extensions error: %v", err)
	}

	for _, want := range []string{"Available Extensions", "dev_helpers", "--dev-helpers", "Pass host devices into the container."} {
		if !strings.Contains(stdout, want) {
			t.Errorf("listing missing %q:\n%s", want, stdout)
		}
	}

	devices := strings.Index(stdout, "--devices")
	user := strings.Index(stdout, "--user ")
	if devices < 0 || user < 0 || devices > user {
		t.Errorf("extensions should be listed in declaration order:\n%s", stdout)
	}

	for line := range strings.SplitSeq(stdout, "\n") {
		if strings.Contains(line, "--user ") && !strings.Contains(line, "(default)") {
			t.Errorf("configured default should be marked: %q", line)
		}
		if strings.Contains(line, "--home") && strings.Contains(line, "(default)") {
			t.Errorf("home is not a configured default: %q", line)
		}
	}
}

func TestExtensions_Describe(t *testing.T) {
	stdout, _, err := runCLI(t, Dependencies{}, "extensions", "describe", "network")
	if err != nil {
		t.Fatalf("describe error: %v", err)
	}
	if !strings.Contains(stdout, "network") || !strings.Contains(stdout, "container:<id>") {
		t.Errorf("description not rendered:\n%s", stdout)
	}
}

func TestExtensions_DescribeUnknown(t *testing.T) {
	_, _, err := runCLI(t, Dependencies{}, "extensions", "describe", "gpu")
	if err == nil {
		t.Fatal("describe should fail for an unknown extension")
	}
	svcErr := asServiceError(err, false)
	if svcErr == nil || svcErr.IssueID != issue.ExtensionNotFoundId {
		t.Errorf("ServiceError = %+v, want ExtensionNotFoundId", svcErr)
	}
	if !strings.Contains(svcErr.StyledMessage, "dev_helpers") {
		t.Errorf("suggestions should list the extensions: %q", svcErr.StyledMessage)
	}
}

func TestExtensions_BrokenConfigFallsBack(t *testing.T) {
	deps := Dependencies{Config: stubConfigProvider{err: errBrokenConfig}}

	stdout, stderr, err := runCLI(t, deps, "extensions")
	if err != nil {
		t.Fatalf("extensions error: %v", err)
	}
	if !strings.Contains(stdout, "--pulse") {
		t.Errorf("listing should still work:\n%s", stdout)
	}
	if !strings.Contains(stderr, "using default configuration") {
		t.Errorf("fallback should be logged, stderr:\n%s", stderr)
	}
}
