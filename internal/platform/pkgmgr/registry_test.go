// internal/platform/pkgmgr/registry_test.go
package pkgmgr

import (
	"context"
	"testing"

	"github.com/cmwen/mcp-dev-env-setup/internal/core/domain"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/probe"
	"github.com/cmwen/mcp-dev-env-setup/internal/testutil"
)

func newRegistry(goos string, binaries ...string) (*Registry, *testutil.FakeRunner) {
	runner := testutil.NewFakeRunner(binaries...)
	p := probe.New(probe.Options{Runner: runner, Env: probe.Environment{GOOS: goos}})
	return NewRegistry(p, nil), runner
}

func TestCandidates(t *testing.T) {
	testutil.AssertDeepEqual(t, Candidates(domain.OSFamilyMacOS),
		[]domain.PackageManagerID{domain.PackageManagerHomebrew}, "macOS candidates")
	testutil.AssertDeepEqual(t, Candidates(domain.OSFamilyLinux),
		[]domain.PackageManagerID{
			domain.PackageManagerApt,
			domain.PackageManagerDnf,
			domain.PackageManagerYum,
			domain.PackageManagerPacman,
			domain.PackageManagerZypper,
		}, "linux candidates")
	testutil.AssertLen(t, Candidates(domain.OSFamilyWindows), 0, "windows has no candidates")
	testutil.AssertLen(t, Candidates(domain.OSFamilyUnknown), 0, "unknown has no candidates")
}

func TestDescriptor_CoversEveryManager(t *testing.T) {
	for _, id := range domain.AllPackageManagers {
		d, ok := Descriptor(id)
		testutil.AssertTrue(t, ok, "template for "+id.String())
		testutil.AssertEqual(t, d.ID, id, "template id")
		testutil.AssertFalse(t, d.IsAvailable, "static templates are never available")
		testutil.AssertTrue(t, d.InstallCommandPrefix != "", "install prefix for "+id.String())
	}
	_, ok := Descriptor(domain.PackageManagerUnknown)
	testutil.AssertFalse(t, ok, "unknown has no template")
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		goos     string
		binaries []string
		want     domain.PackageManagerID
		found    bool
	}{
		{"macOS with brew", "darwin", []string{"brew"}, domain.PackageManagerHomebrew, true},
		{"macOS without brew", "darwin", nil, "", false},
		{"debian", "linux", []string{"apt-get"}, domain.PackageManagerApt, true},
		{"fedora", "linux", []string{"dnf", "yum"}, domain.PackageManagerDnf, true},
		{"arch", "linux", []string{"pacman"}, domain.PackageManagerPacman, true},
		{"suse", "linux", []string{"zypper"}, domain.PackageManagerZypper, true},
		{"apt preferred over pacman", "linux", []string{"pacman", "apt-get"}, domain.PackageManagerApt, true},
		{"linux without managers", "linux", []string{"git"}, "", false},
		{"brew on linux is ignored", "linux", []string{"brew"}, "", false},
		{"unknown platform", "solaris", []string{"apt-get", "brew"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, _ := newRegistry(tt.goos, tt.binaries...)

			d, ok := reg.Detect(context.Background())
			testutil.AssertEqual(t, ok, tt.found, "found")
			testutil.AssertEqual(t, d.ID, tt.want, "manager")
			testutil.AssertEqual(t, d.IsAvailable, tt.found, "available only after a successful probe")
		})
	}
}

func TestDetect_DeterministicTieBreak(t *testing.T) {
	reg, runner := newRegistry("linux", "zypper", "dnf", "apt-get")

	for i := 0; i < 5; i++ {
		d, ok := reg.Detect(context.Background())
		testutil.AssertTrue(t, ok, "detected")
		testutil.AssertEqual(t, d.ID, domain.PackageManagerApt, "first candidate wins")
	}
	for _, call := range runner.Calls() {
		testutil.AssertEqual(t, call, "command -v apt-get", "probing stops at the first hit")
	}
}

func TestDetect_UnknownPlatformSpawnsNothing(t *testing.T) {
	reg, runner := newRegistry("plan9", "apt-get")

	_, ok := reg.Detect(context.Background())
	testutil.AssertFalse(t, ok, "nothing detected")
	testutil.AssertLen(t, runner.Calls(), 0, "no probes for an empty candidate list")
}

func TestBootstrap(t *testing.T) {
	testutil.AssertTrue(t, NeedsBootstrap(domain.OSFamilyMacOS), "macOS needs bootstrap")
	testutil.AssertFalse(t, NeedsBootstrap(domain.OSFamilyLinux), "linux ships its manager")
	testutil.AssertFalse(t, NeedsBootstrap(domain.OSFamilyUnknown), "unknown has nothing to bootstrap")

	cmd, ok := BootstrapCommand(domain.OSFamilyMacOS)
	testutil.AssertTrue(t, ok, "macOS bootstrap command")
	testutil.AssertContains(t, cmd, "Homebrew/install", "homebrew install script")

	_, ok = BootstrapCommand(domain.OSFamilyLinux)
	testutil.AssertFalse(t, ok, "no linux bootstrap command")

	tool, ok := BootstrapTool(domain.OSFamilyMacOS)
	testutil.AssertTrue(t, ok, "homebrew tool")
	testutil.AssertEqual(t, tool.VerifyCommand, "brew", "verify brew")
	testutil.AssertTrue(t, tool.NeedsShellConfiguration(), "shellenv snippet")
	testutil.AssertNoError(t, tool.Validate(), "bootstrap tool is a valid descriptor")
}
