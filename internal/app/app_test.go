// internal/app/app_test.go
package app

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/cmwen/mcp-dev-env-setup/internal/core/ports"
	"github.com/cmwen/mcp-dev-env-setup/internal/core/usecases"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/config"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/errors"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/probe"
	"github.com/cmwen/mcp-dev-env-setup/internal/testutil"
)

func testEnv() *probe.Environment {
	return &probe.Environment{GOOS: "linux", GOARCH: "amd64", Home: "/home/dev", Shell: "/bin/bash"}
}

func TestNew_WiresServiceFromConfig(t *testing.T) {
	fsys := afero.NewMemMapFs()
	runner := testutil.NewFakeRunner("apt-get")
	runner.Succeed("sudo apt-get install -y git", "").Provides("sudo apt-get install -y git", "git")

	cfg := config.DefaultConfig()
	cfg.EventLog = "/home/dev/.local/state/devenv/events.jsonl"
	cfg.Shell = "zsh"

	a, err := New(Options{Config: cfg, Fs: fsys, Env: testEnv(), Runner: runner})
	testutil.AssertNoError(t, err, "assemble")

	res := a.Service.InstallTool(context.Background(), "git", usecases.InstallOptions{})
	testutil.AssertTrue(t, res.Succeeded, "install through the wired service")
	testutil.AssertNoError(t, a.Close(), "close")

	data, err := afero.ReadFile(fsys, cfg.EventLog)
	testutil.AssertNoError(t, err, "event log written")
	testutil.AssertContains(t, string(data), string(ports.EventTypeInstallStarted), "started event")
	testutil.AssertContains(t, string(data), string(ports.EventTypeInstallCompleted), "completed event")
}

func TestNew_EventLogKeepsChronologicalOrder(t *testing.T) {
	fsys := afero.NewMemMapFs()
	runner := testutil.NewFakeRunner("apt-get", "git")

	cfg := config.DefaultConfig()
	cfg.EventLog = "/var/log/devenv/events.jsonl"

	a, err := New(Options{Config: cfg, Fs: fsys, Env: testEnv(), Runner: runner})
	testutil.AssertNoError(t, err, "assemble")

	a.Service.InstallTool(context.Background(), "git", usecases.InstallOptions{})
	a.Service.InstallTool(context.Background(), "perl", usecases.InstallOptions{})
	testutil.AssertNoError(t, a.Close(), "close")

	data, err := afero.ReadFile(fsys, cfg.EventLog)
	testutil.AssertNoError(t, err, "event log written")

	var got []ports.EventType
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		var e struct {
			Type ports.EventType `json:"type"`
		}
		testutil.AssertNoError(t, json.Unmarshal([]byte(line), &e), "decode line")
		got = append(got, e.Type)
	}
	testutil.AssertDeepEqual(t, got, []ports.EventType{
		ports.EventTypeInstallStarted, ports.EventTypeInstallCompleted,
		ports.EventTypeInstallStarted, ports.EventTypeInstallFailed,
	}, "log lines follow the installs")
}

func TestNew_ShellOverridePicksProfile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	runner := testutil.NewFakeRunner("apt-get")
	runner.Succeed("sudo apt-get install -y golang-go", "").Provides("sudo apt-get install -y golang-go", "go")

	cfg := config.DefaultConfig()
	cfg.Shell = "zsh"

	a, err := New(Options{Config: cfg, Fs: fsys, Env: testEnv(), Runner: runner})
	testutil.AssertNoError(t, err, "assemble")

	a.Service.InstallTool(context.Background(), "go", usecases.InstallOptions{})

	exists, _ := afero.Exists(fsys, "/home/dev/.zshrc")
	testutil.AssertTrue(t, exists, "zsh profile configured instead of bash")
}

func TestNew_CatalogOverlay(t *testing.T) {
	fsys := afero.NewMemMapFs()
	overlay := `
tools:
  - name: ripgrep
    display_name: ripgrep
    category: utility
    verify_command: rg
    version_flag: --version
    install:
      apt: {package: ripgrep}
`
	testutil.AssertNoError(t, afero.WriteFile(fsys, "/etc/devenv/tools.yaml", []byte(overlay), 0o644), "seed")

	cfg := config.DefaultConfig()
	cfg.CatalogFile = "/etc/devenv/tools.yaml"

	a, err := New(Options{Config: cfg, Fs: fsys, Env: testEnv(), Runner: testutil.NewFakeRunner()})
	testutil.AssertNoError(t, err, "assemble")

	_, ok := a.Service.Tool("ripgrep")
	testutil.AssertTrue(t, ok, "overlay tool available")
	_, ok = a.Service.Tool("git")
	testutil.AssertTrue(t, ok, "built-in tools kept")
}

func TestNew_Errors(t *testing.T) {
	t.Run("missing catalog file", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.CatalogFile = "/nope.yaml"

		_, err := New(Options{Config: cfg, Fs: afero.NewMemMapFs(), Env: testEnv(), Runner: testutil.NewFakeRunner()})
		testutil.AssertTrue(t, errors.IsInvalidConfig(err), "invalid config")
	})

	t.Run("unwritable event log", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.EventLog = "/logs/events.jsonl"

		_, err := New(Options{Config: cfg, Fs: afero.NewReadOnlyFs(afero.NewMemMapFs()), Env: testEnv(), Runner: testutil.NewFakeRunner()})
		testutil.AssertTrue(t, errors.IsInvalidConfig(err), "invalid config")
	})
}

func TestRootContextWithSignals(t *testing.T) {
	ctx, cancel := RootContextWithSignals(10 * time.Millisecond)
	defer cancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context did not time out")
	}

	ctx2, cancel2 := RootContextWithSignals(0)
	cancel2()
	testutil.AssertError(t, ctx2.Err(), "cleanup cancels the context")
}
