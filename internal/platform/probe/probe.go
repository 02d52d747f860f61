// internal/platform/probe/probe.go
package probe

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/cmwen/mcp-dev-env-setup/internal/core/domain"
	"github.com/cmwen/mcp-dev-env-setup/internal/core/ports"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/logx"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/validator"
)

// DefaultTimeout bounds existence and version probes.
const DefaultTimeout = 10 * time.Second

// Environment holds the read-only process inputs the probe depends on.
type Environment struct {
	GOOS   string
	GOARCH string
	Home   string
	Shell  string // value of $SHELL, full path or bare name
}

// EnvironmentFromOS lee el entorno real del proceso.
func EnvironmentFromOS() Environment {
	home := os.Getenv("HOME")
	if home == "" {
		home = os.Getenv("USERPROFILE")
	}
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	return Environment{
		GOOS:   runtime.GOOS,
		GOARCH: runtime.GOARCH,
		Home:   home,
		Shell:  os.Getenv("SHELL"),
	}
}

// Options configura el Probe.
type Options struct {
	Runner      ports.CommandRunner
	Env         Environment
	Timeout     time.Duration
	ProfilePath string // overrides the derived shell profile path
	Logger      logx.Logger
}

// Probe answers questions about the host: OS family, command presence,
// command versions and the shell profile location.
type Probe struct {
	runner      ports.CommandRunner
	env         Environment
	timeout     time.Duration
	profilePath string
	logger      logx.Logger
}

// New crea un Probe aplicando valores por defecto.
func New(opts Options) *Probe {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logx.NewNop()
	}
	return &Probe{
		runner:      opts.Runner,
		env:         opts.Env,
		timeout:     opts.Timeout,
		profilePath: opts.ProfilePath,
		logger:      opts.Logger.With("component", "probe"),
	}
}

// DetectPlatform is a pure function of the environment. Unrecognised
// platforms map to OSFamilyUnknown.
func (p *Probe) DetectPlatform() domain.PlatformDescriptor {
	return domain.PlatformDescriptor{
		OSFamily:        domain.OSFamilyFromGOOS(p.env.GOOS),
		RawPlatformName: p.env.GOOS,
		Architecture:    p.env.GOARCH,
	}
}

// CommandExists reports whether name resolves on PATH. Any failure,
// including an unsafe name, yields false.
func (p *Probe) CommandExists(ctx context.Context, name string) bool {
	if !validator.IsCommandName(name) {
		p.logger.Debug("rejected unsafe command name", "name", name)
		return false
	}
	out := p.runner.Run(ctx, "command -v "+name, ports.RunOptions{Timeout: p.timeout})
	return out.Succeeded
}

// ResolveVersion runs "<name> <flag>" once and returns the first non-empty
// line of stdout, or of stderr when stdout is empty.
func (p *Probe) ResolveVersion(ctx context.Context, name, flag string) (string, bool) {
	if !validator.IsCommandName(name) {
		return "", false
	}
	command := name
	if flag = strings.TrimSpace(flag); flag != "" {
		command += " " + flag
	}
	out := p.runner.Run(ctx, command, ports.RunOptions{Timeout: p.timeout})
	if !out.Succeeded {
		p.logger.Debug("version probe failed", "name", name, "reason", out.FailureReason)
		return "", false
	}
	if line := firstLine(out.Stdout); line != "" {
		return line, true
	}
	if line := firstLine(out.Stderr); line != "" {
		return line, true
	}
	return "", false
}

// ShellName devuelve el nombre base del shell activo.
func (p *Probe) ShellName() string {
	return filepath.Base(strings.TrimSpace(p.env.Shell))
}

// ShellProfilePath derives the profile file from shell and OS family:
// zsh uses .zshrc, bash uses .bash_profile on macOS and .bashrc elsewhere,
// anything else uses .profile.
func (p *Probe) ShellProfilePath() string {
	if p.profilePath != "" {
		return p.profilePath
	}
	var file string
	switch p.ShellName() {
	case "zsh":
		file = ".zshrc"
	case "bash":
		if p.DetectPlatform().OSFamily == domain.OSFamilyMacOS {
			file = ".bash_profile"
		} else {
			file = ".bashrc"
		}
	default:
		file = ".profile"
	}
	if p.env.Home == "" {
		return "~/" + file
	}
	return filepath.Join(p.env.Home, file)
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
