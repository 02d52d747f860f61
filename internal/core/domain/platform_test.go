// internal/core/domain/platform_test.go
package domain_test

import (
	"testing"

	"github.com/cmwen/mcp-dev-env-setup/internal/core/domain"
	"github.com/cmwen/mcp-dev-env-setup/internal/testutil"
)

func TestCommandOutcome_Output(t *testing.T) {
	tests := []struct {
		name     string
		outcome  domain.CommandOutcome
		combined string
		detail   string
	}{
		{"stdout only", domain.CommandOutcome{Stdout: "ok\n", Succeeded: true}, "ok", "ok"},
		{"stderr only", domain.CommandOutcome{Stderr: " E: locked ", FailureReason: "exit status 100"}, "E: locked", "exit status 100\nE: locked"},
		{"both streams", domain.CommandOutcome{Stdout: "a", Stderr: "b"}, "a\nb", "a\nb"},
		{"reason without output", domain.CommandOutcome{FailureReason: "timed out after 10s", TimedOut: true}, "", "timed out after 10s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, tt.outcome.CombinedOutput(), tt.combined, "combined output")
			testutil.AssertEqual(t, tt.outcome.FailureDetail(), tt.detail, "failure detail")
		})
	}
}

func TestPackageManagerDescriptor(t *testing.T) {
	d := domain.PackageManagerDescriptor{ID: domain.PackageManagerApt, ProbeCommand: "apt-get", InstallCommandPrefix: "sudo apt-get install -y "}
	testutil.AssertEqual(t, d.InstallCommand("git"), "sudo apt-get install -y git", "install command")

	s := d.Summary()
	testutil.AssertEqual(t, s.ID, domain.PackageManagerApt, "summary id")
	testutil.AssertEqual(t, s.ProbeCommand, "apt-get", "summary probe")
}

func TestSystemStatus(t *testing.T) {
	st := domain.SystemStatus{Tools: []domain.ToolStatus{
		{Name: "git", IsInstalled: true, DetectedVersion: "git version 2.43.0"},
		{Name: "python"},
	}}

	git, ok := st.Status("git")
	testutil.AssertTrue(t, ok, "git status present")
	testutil.AssertTrue(t, git.IsInstalled, "git installed")

	_, ok = st.Status("rust")
	testutil.AssertFalse(t, ok, "rust not in status")
	testutil.AssertEqual(t, st.InstalledCount(), 1, "installed count")
}
