// internal/platform/shell/runner.go
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/cmwen/mcp-dev-env-setup/internal/core/domain"
	"github.com/cmwen/mcp-dev-env-setup/internal/core/ports"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/logx"
)

const (
	// DefaultShell interprets every command string.
	DefaultShell = "/bin/sh"

	// DefaultTimeout applies when neither RunOptions nor RunnerOptions set one.
	DefaultTimeout = 60 * time.Second

	// waitDelay bounds how long Wait blocks on pipes held open by orphaned
	// grandchildren once the shell itself has been killed.
	waitDelay = 2 * time.Second
)

// RunnerOptions configura el Runner.
type RunnerOptions struct {
	Shell          string        // Interpreter invoked as "<shell> -c <command>"
	DefaultTimeout time.Duration // Used when RunOptions.Timeout is zero
	Logger         logx.Logger
}

// Runner ejecuta comandos de shell y captura su salida.
// It implements ports.CommandRunner and never returns an error: start
// failures, non-zero exits and timeouts all come back as a failed outcome.
type Runner struct {
	shell          string
	defaultTimeout time.Duration
	logger         logx.Logger
}

var _ ports.CommandRunner = (*Runner)(nil)

// NewRunner crea un Runner aplicando valores por defecto.
func NewRunner(opts RunnerOptions) *Runner {
	if opts.Shell == "" {
		opts.Shell = DefaultShell
	}
	if opts.DefaultTimeout <= 0 {
		opts.DefaultTimeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logx.NewNop()
	}
	return &Runner{
		shell:          opts.Shell,
		defaultTimeout: opts.DefaultTimeout,
		logger:         opts.Logger.With("component", "shell"),
	}
}

// Run executes command through the shell with a bounded timeout.
func (r *Runner) Run(ctx context.Context, command string, opts ports.RunOptions) domain.CommandOutcome {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = r.defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.shell, "-c", command)
	cmd.Dir = opts.Dir
	cmd.WaitDelay = waitDelay
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	r.logger.Debug("running command", "cmd", command, "timeout", timeout.String(), "dir", opts.Dir)

	err := cmd.Run()
	outcome := domain.CommandOutcome{
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
		Succeeded: err == nil,
	}

	switch {
	case err == nil:
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		outcome.Succeeded = false
		outcome.TimedOut = true
		outcome.FailureReason = fmt.Sprintf("timed out after %s", timeout)
	case errors.Is(ctx.Err(), context.Canceled):
		outcome.FailureReason = "cancelled"
	default:
		outcome.FailureReason = failureReason(err)
	}

	if outcome.Succeeded {
		r.logger.Debug("command finished", "cmd", command, "duration", time.Since(start).Round(time.Millisecond).String())
	} else {
		r.logger.Debug("command failed",
			"cmd", command,
			"reason", outcome.FailureReason,
			"duration", time.Since(start).Round(time.Millisecond).String(),
		)
	}
	return outcome
}

func failureReason(err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Sprintf("exit status %d", exitErr.ExitCode())
	}
	return err.Error()
}
