// internal/core/ports/runner.go
package ports

import (
	"context"
	"time"

	"github.com/cmwen/mcp-dev-env-setup/internal/core/domain"
)

// RunOptions configura una invocación de comando.
type RunOptions struct {
	// Dir is the working directory; empty means the current one.
	Dir string

	// Timeout bounds the invocation. Zero means the runner default.
	Timeout time.Duration

	// Env holds extra KEY=VALUE pairs appended to the process environment.
	Env []string
}

// CommandRunner es el port de ejecución de comandos de shell.
// Implementations never return an error: timeouts and non-zero exits are
// reported through CommandOutcome.Succeeded / FailureReason.
type CommandRunner interface {
	Run(ctx context.Context, command string, opts RunOptions) domain.CommandOutcome
}

// ProgressFunc receives install progress; presenters use it to drive spinners.
type ProgressFunc func(tool string, step InstallStep, message string)

// InstallStep names a state of the install sequence for progress reporting.
type InstallStep string

const (
	StepResolve     InstallStep = "resolve"
	StepCheck       InstallStep = "check"
	StepSelect      InstallStep = "select_manager"
	StepInstall     InstallStep = "install"
	StepAlternate   InstallStep = "alternate"
	StepBootstrap   InstallStep = "bootstrap"
	StepPostInstall InstallStep = "post_install"
	StepConfigure   InstallStep = "configure_shell"
	StepVerify      InstallStep = "verify"
)
