// internal/cli/cli_test.go
package cli

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/spf13/afero"

	"github.com/cmwen/mcp-dev-env-setup/internal/core/domain"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/errors"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/logx"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/probe"
	"github.com/cmwen/mcp-dev-env-setup/internal/testutil"
)

type fixture struct {
	fs     afero.Fs
	runner *testutil.FakeRunner
}

func newFixture(binaries ...string) *fixture {
	return &fixture{fs: afero.NewMemMapFs(), runner: testutil.NewFakeRunner(binaries...)}
}

func (f *fixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DEVENV_CONFIG", "")
	cmd := NewRootCmd(Deps{
		Fs:     f.fs,
		Env:    &probe.Environment{GOOS: "linux", GOARCH: "amd64", Home: "/home/dev", Shell: "/bin/bash"},
		Runner: f.runner,
		Logger: logx.NewNop(),
	})
	stdout := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func exitCode(err error) int {
	var ee exitError
	if stderrors.As(err, &ee) {
		return ee.code
	}
	if err != nil {
		return 2
	}
	return 0
}

func TestPlatformCommand_JSON(t *testing.T) {
	f := newFixture("pacman")

	out, err := f.run(t, "platform", "--json")
	testutil.AssertNoError(t, err, "platform")

	var view platformView
	testutil.AssertNoError(t, json.Unmarshal([]byte(out), &view), "json output")
	testutil.AssertEqual(t, view.Platform.OSFamily, domain.OSFamilyLinux, "family")
	testutil.AssertEqual(t, view.PackageManager.ID, domain.PackageManagerPacman, "pacman")
}

func TestInstallCommand(t *testing.T) {
	t.Run("success exits 0", func(t *testing.T) {
		f := newFixture("apt-get")
		f.runner.Succeed("sudo apt-get install -y git", "").Provides("sudo apt-get install -y git", "git")

		out, err := f.run(t, "install", "git", "--json")
		testutil.AssertEqual(t, exitCode(err), 0, "exit code")

		var views []installView
		testutil.AssertNoError(t, json.Unmarshal([]byte(out), &views), "json output")
		testutil.AssertLen(t, views, 1, "one result")
		testutil.AssertTrue(t, views[0].Result.Succeeded, "installed")
	})

	t.Run("any failure exits 1", func(t *testing.T) {
		f := newFixture("apt-get")
		f.runner.Succeed("sudo apt-get install -y git", "").Provides("sudo apt-get install -y git", "git")

		out, err := f.run(t, "install", "git", "perl", "git", "--json")
		testutil.AssertEqual(t, exitCode(err), 1, "exit code")

		var views []installView
		testutil.AssertNoError(t, json.Unmarshal([]byte(out), &views), "json output")
		testutil.AssertLen(t, views, 2, "duplicates collapsed")
		testutil.AssertFalse(t, views[1].Result.Succeeded, "perl unknown")
		testutil.AssertNotNil(t, views[1].Analysis, "failure analysed")
	})

	t.Run("version with several tools is rejected", func(t *testing.T) {
		f := newFixture("apt-get")

		_, err := f.run(t, "install", "git", "node", "--version", "20")
		testutil.AssertTrue(t, errors.IsInvalidInput(err), "invalid input")
		testutil.AssertLen(t, f.runner.Calls(), 0, "nothing probed")
	})

	t.Run("raw ui prints steps and result", func(t *testing.T) {
		f := newFixture("apt-get")
		f.runner.Fail("sudo apt-get install -y git", "E: Unable to locate package git")

		out, err := f.run(t, "install", "git", "--ui", "raw")
		testutil.AssertEqual(t, exitCode(err), 1, "exit code")
		testutil.AssertContains(t, out, "install_step", "progress lines")
		testutil.AssertContains(t, out, "status=error", "result line")
		testutil.AssertContains(t, out, "failure_analysis", "analysis line")
	})
}

func TestReadyCommand(t *testing.T) {
	tests := []struct {
		name     string
		binaries []string
		args     []string
		wantCode int
	}{
		{"ready", []string{"git", "python3"}, []string{"ready", "git", "python", "--json"}, 0},
		{"missing", []string{"git"}, []string{"ready", "git", "python", "--json"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.binaries...)
			out, err := f.run(t, tt.args...)
			testutil.AssertEqual(t, exitCode(err), tt.wantCode, "exit code")

			var report domain.ReadinessReport
			testutil.AssertNoError(t, json.Unmarshal([]byte(out), &report), "json output")
			testutil.AssertEqual(t, report.Ready, tt.wantCode == 0, "ready flag")
		})
	}
}

func TestStatusCommand_Save(t *testing.T) {
	f := newFixture("apt-get", "git")

	out, err := f.run(t, "status", "--json", "--save", "/reports")
	testutil.AssertNoError(t, err, "status")

	var view statusView
	testutil.AssertNoError(t, json.Unmarshal([]byte(out), &view), "json output")
	testutil.AssertNotNil(t, view.PackageManager, "apt detected")
	testutil.AssertTrue(t, len(view.Recommendations) > 0, "recommendations included")
	testutil.AssertContains(t, view.SavedTo, "/reports/devenv_status_", "snapshot path")

	exists, _ := afero.Exists(f.fs, view.SavedTo)
	testutil.AssertTrue(t, exists, "snapshot written")
}

func TestListCommand(t *testing.T) {
	f := newFixture()

	out, err := f.run(t, "list", "--category", "versionManager", "--json")
	testutil.AssertNoError(t, err, "list")

	var tools []domain.ToolDescriptor
	testutil.AssertNoError(t, json.Unmarshal([]byte(out), &tools), "json output")
	for _, tool := range tools {
		testutil.AssertEqual(t, tool.Category, domain.CategoryVersionManager, "filtered")
	}

	_, err = f.run(t, "list", "--category", "editor")
	testutil.AssertTrue(t, errors.IsInvalidInput(err), "bad category")
}

func TestCheckCommand_Quiet(t *testing.T) {
	f := newFixture("git")

	out, err := f.run(t, "check", "git", "docker", "-q")
	testutil.AssertNoError(t, err, "check")
	testutil.AssertContains(t, out, "tool=git", "git line")
	testutil.AssertContains(t, out, "installed=false", "docker missing")
}

func TestSearchCommand(t *testing.T) {
	f := newFixture("apt-get")
	f.runner.Succeed("apt-cache search ripgrep", "ripgrep - recursively searches directories")

	out, err := f.run(t, "search", "ripgrep", "--ui", "raw")
	testutil.AssertNoError(t, err, "search")
	testutil.AssertContains(t, out, "recursively searches", "raw output")

	_, err = f.run(t, "search", "a;b")
	testutil.AssertTrue(t, errors.IsInvalidInput(err), "metacharacters rejected")
}

func TestConfigCommand(t *testing.T) {
	f := newFixture()
	testutil.AssertNoError(t, afero.WriteFile(f.fs, "/etc/devenv.yaml", []byte("probe_workers: 3\n"), 0o644), "seed")

	out, err := f.run(t, "config", "--config", "/etc/devenv.yaml", "--workers", "5")
	testutil.AssertNoError(t, err, "config")
	testutil.AssertContains(t, out, `"probe_workers": 5`, "flag wins over file")
	testutil.AssertContains(t, out, `"config_file": "/etc/devenv.yaml"`, "file recorded")
}
