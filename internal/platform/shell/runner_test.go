// internal/platform/shell/runner_test.go
package shell

import (
	"context"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/cmwen/mcp-dev-env-setup/internal/core/ports"
	"github.com/cmwen/mcp-dev-env-setup/internal/testutil"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	if _, err := exec.LookPath(DefaultShell); err != nil {
		t.Skipf("%s not available: %v", DefaultShell, err)
	}
	return NewRunner(RunnerOptions{DefaultTimeout: 5 * time.Second})
}

func TestRunner_Success(t *testing.T) {
	r := newTestRunner(t)

	out := r.Run(context.Background(), "echo hello; echo oops 1>&2", ports.RunOptions{})

	testutil.AssertTrue(t, out.Succeeded, "command should succeed")
	testutil.AssertEqual(t, out.FailureReason, "", "no failure reason")
	testutil.AssertEqual(t, strings.TrimSpace(out.Stdout), "hello", "stdout")
	testutil.AssertEqual(t, strings.TrimSpace(out.Stderr), "oops", "stderr")
}

func TestRunner_NonZeroExit(t *testing.T) {
	r := newTestRunner(t)

	out := r.Run(context.Background(), "echo broken 1>&2; exit 3", ports.RunOptions{})

	testutil.AssertFalse(t, out.Succeeded, "command should fail")
	testutil.AssertFalse(t, out.TimedOut, "not a timeout")
	testutil.AssertEqual(t, out.FailureReason, "exit status 3", "failure reason")
	testutil.AssertContains(t, out.Stderr, "broken", "stderr captured")
}

func TestRunner_Timeout(t *testing.T) {
	r := newTestRunner(t)

	start := time.Now()
	out := r.Run(context.Background(), "sleep 5", ports.RunOptions{Timeout: 100 * time.Millisecond})

	testutil.AssertFalse(t, out.Succeeded, "timed out command should fail")
	testutil.AssertTrue(t, out.TimedOut, "timeout flag")
	testutil.AssertContains(t, out.FailureReason, "timed out", "failure reason")
	testutil.AssertTrue(t, time.Since(start) < 4*time.Second, "run should return soon after the timeout")
}

func TestRunner_DirAndEnv(t *testing.T) {
	r := newTestRunner(t)
	dir := t.TempDir()

	out := r.Run(context.Background(), `pwd; echo "$DEVENV_TEST_VALUE"`, ports.RunOptions{
		Dir: dir,
		Env: []string{"DEVENV_TEST_VALUE=42"},
	})

	testutil.AssertTrue(t, out.Succeeded, "command should succeed")
	lines := strings.Split(strings.TrimSpace(out.Stdout), "\n")
	testutil.AssertLen(t, lines, 2, "two output lines")
	testutil.AssertTrue(t, strings.HasSuffix(lines[0], strings.TrimPrefix(dir, "/private")), "working directory applied")
	testutil.AssertEqual(t, lines[1], "42", "extra env applied")
}

func TestRunner_MissingShell(t *testing.T) {
	r := NewRunner(RunnerOptions{Shell: "/nonexistent/shell"})

	out := r.Run(context.Background(), "true", ports.RunOptions{})

	testutil.AssertFalse(t, out.Succeeded, "start failure is a failed outcome")
	testutil.AssertTrue(t, out.FailureReason != "", "reason set")
}

func TestRunner_CancelledContext(t *testing.T) {
	r := newTestRunner(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := r.Run(ctx, "sleep 1", ports.RunOptions{})

	testutil.AssertFalse(t, out.Succeeded, "cancelled command fails")
	testutil.AssertFalse(t, out.TimedOut, "cancellation is not a timeout")
}
