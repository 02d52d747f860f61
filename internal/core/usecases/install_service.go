// internal/core/usecases/install_service.go
package usecases

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cmwen/mcp-dev-env-setup/internal/core/domain"
	"github.com/cmwen/mcp-dev-env-setup/internal/core/ports"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/logx"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/validator"
)

// Timeouts acota cada clase de invocación de shell.
type Timeouts struct {
	Probe   time.Duration // existence and version probes
	Command time.Duration // post-install steps and other short commands
	Install time.Duration // package installs and bootstrap scripts
}

// DefaultTimeouts are used for any zero field.
var DefaultTimeouts = Timeouts{
	Probe:   10 * time.Second,
	Command: 60 * time.Second,
	Install: 10 * time.Minute,
}

func (t Timeouts) withDefaults() Timeouts {
	if t.Probe <= 0 {
		t.Probe = DefaultTimeouts.Probe
	}
	if t.Command <= 0 {
		t.Command = DefaultTimeouts.Command
	}
	if t.Install <= 0 {
		t.Install = DefaultTimeouts.Install
	}
	return t
}

// InstallerOptions configura el Installer.
type InstallerOptions struct {
	Catalog      ports.ToolCatalog
	Probe        ports.PlatformProbe
	Registry     ports.PackageManagerRegistry
	Configurator ports.ShellConfigurator
	Runner       ports.CommandRunner
	Observers    []ports.Notifier
	Progress     ports.ProgressFunc
	Logger       logx.Logger
	Timeouts     Timeouts
}

// InstallOptions ajusta una instalación individual.
type InstallOptions struct {
	// Version pins the tool version when the install method supports it.
	Version string
}

// Installer drives the install sequence of a tool: resolve, short-circuit,
// select manager, method lookup, primary attempt with alternates,
// post-install, shell configuration and verify.
//
// Public methods never return errors: every outcome is an
// InstallationResult. Installs are serialised, so two callers never run
// package manager commands or profile writes at the same time.
type Installer struct {
	catalog      ports.ToolCatalog
	probe        ports.PlatformProbe
	registry     ports.PackageManagerRegistry
	configurator ports.ShellConfigurator
	runner       ports.CommandRunner
	observers    []ports.Notifier
	progress     ports.ProgressFunc
	logger       logx.Logger
	timeouts     Timeouts
	notifyLimit  time.Duration

	mu sync.Mutex
}

// NewInstaller crea un Installer aplicando valores por defecto.
func NewInstaller(opts InstallerOptions) *Installer {
	if opts.Logger == nil {
		opts.Logger = logx.NewNop()
	}
	if opts.Progress == nil {
		opts.Progress = func(string, ports.InstallStep, string) {}
	}
	return &Installer{
		catalog:      opts.Catalog,
		probe:        opts.Probe,
		registry:     opts.Registry,
		configurator: opts.Configurator,
		runner:       opts.Runner,
		observers:    opts.Observers,
		progress:     opts.Progress,
		logger:       opts.Logger.With("component", "installer"),
		timeouts:     opts.Timeouts.withDefaults(),
		notifyLimit:  notificationTimeout,
	}
}

// installRun holds the state of one public call.
type installRun struct {
	id       string
	logger   logx.Logger
	platform domain.PlatformDescriptor
	warnings []domain.Warning
	visiting map[string]bool
}

func (i *Installer) newRun() *installRun {
	id := uuid.NewString()
	return &installRun{
		id:       id,
		logger:   i.logger.With("run", id),
		platform: i.probe.DetectPlatform(),
		visiting: make(map[string]bool),
	}
}

func (i *Installer) warn(ctx context.Context, run *installRun, tool string, step ports.InstallStep, msg string) {
	run.warnings = append(run.warnings, domain.Warning{Step: string(step), Message: msg})
	run.logger.Warn("best-effort step failed", "tool", tool, "step", string(step), "detail", msg)
	i.notify(ctx, ports.NewEvent(ports.EventTypeStepWarning, "installer", run.id,
		domain.Warning{Step: string(step), Message: msg}))
}

// InstallTool instala una herramienta del catálogo.
func (i *Installer) InstallTool(ctx context.Context, name string, opts InstallOptions) domain.InstallationResult {
	return i.InstallToolReport(ctx, name, opts).Result
}

// InstallToolReport is InstallTool plus the warnings absorbed by best-effort
// steps (post-install commands, shell configuration, bootstrap fallback).
func (i *Installer) InstallToolReport(ctx context.Context, name string, opts InstallOptions) domain.InstallReport {
	i.mu.Lock()
	defer i.mu.Unlock()

	run := i.newRun()
	start := time.Now()
	run.logger.Info("install started", "tool", name, "version", opts.Version)
	i.notify(ctx, ports.NewEvent(ports.EventTypeInstallStarted, "installer", run.id,
		ports.InstallStartedEvent{Tool: name, Version: opts.Version}))

	var result domain.InstallationResult
	if version := validator.NormalizeVersion(opts.Version); version != "" && !validator.IsVersion(version) {
		result = domain.Failure(
			fmt.Sprintf("Invalid version %q for %s", opts.Version, name),
			"Versions may only contain letters, digits, dots, hyphens and plus signs",
		)
	} else {
		result = i.install(ctx, run, name, version)
	}

	eventType := ports.EventTypeInstallCompleted
	if result.Succeeded {
		run.logger.Info("install finished", "tool", name, "message", result.Message,
			"restart", result.RequiresShellRestart, "warnings", len(run.warnings))
	} else {
		eventType = ports.EventTypeInstallFailed
		run.logger.Warn("install failed", "tool", name, "message", result.Message)
	}
	i.notify(ctx, ports.NewEvent(eventType, "installer", run.id, ports.InstallCompletedEvent{
		Tool:     name,
		Result:   result,
		Warnings: run.warnings,
		Duration: time.Since(start),
	}))

	return domain.InstallReport{Result: result, Warnings: run.warnings}
}

// InstallMultipleTools runs InstallTool for each name in order. A failure
// never stops the remaining tools; duplicate names overwrite earlier results.
func (i *Installer) InstallMultipleTools(ctx context.Context, names []string) map[string]domain.InstallationResult {
	results := make(map[string]domain.InstallationResult, len(names))
	for _, name := range names {
		results[name] = i.InstallTool(ctx, name, InstallOptions{})
	}
	return results
}

// install is the recursive body of InstallTool. Prerequisites re-enter it
// with the same run.
func (i *Installer) install(ctx context.Context, run *installRun, name, version string) domain.InstallationResult {
	i.progress(name, ports.StepResolve, "resolving "+name)
	tool, ok := i.catalog.Get(name)
	if !ok {
		return domain.Failure(
			fmt.Sprintf("Unknown tool: %s", name),
			"Available tools: "+strings.Join(i.catalog.Names(), ", "),
		)
	}
	if run.visiting[tool.Name] {
		return domain.Failure(fmt.Sprintf("Prerequisite cycle detected at %s", tool.Label()), "")
	}
	run.visiting[tool.Name] = true
	defer delete(run.visiting, tool.Name)

	i.progress(tool.Name, ports.StepCheck, "checking for "+tool.VerifyCommand)
	if i.probe.CommandExists(ctx, tool.VerifyCommand) {
		detected, _ := i.probe.ResolveVersion(ctx, tool.VerifyCommand, tool.VersionFlag)
		run.logger.Debug("already installed", "tool", tool.Name, "version", detected)
		return domain.Success(fmt.Sprintf("%s is already installed", tool.Label()), detected)
	}

	for _, pre := range tool.Prerequisites {
		i.progress(tool.Name, ports.StepResolve, "installing prerequisite "+pre)
		res := i.install(ctx, run, pre, "")
		if !res.Succeeded {
			return domain.Failure(
				fmt.Sprintf("Cannot install %s: prerequisite %s failed", tool.Label(), pre),
				joinLines(res.Message, res.Details),
			)
		}
	}

	if tool.EffectiveStrategy() == domain.StrategyVersionManager && tool.Bootstrap != nil {
		if res, handled := i.installWithVersionManager(ctx, run, tool, version); handled {
			return res
		}
	}
	return i.installWithPackageManager(ctx, run, tool, version)
}

// installWithVersionManager returns handled=false when the version manager
// bootstrap failed and the caller should fall back to the package manager.
func (i *Installer) installWithVersionManager(ctx context.Context, run *installRun, tool domain.ToolDescriptor, version string) (domain.InstallationResult, bool) {
	spec := *tool.Bootstrap

	if !i.versionManagerPresent(ctx, spec) {
		i.progress(tool.Name, ports.StepBootstrap, "installing "+spec.Manager)
		out := i.runner.Run(ctx, spec.Command, ports.RunOptions{Timeout: i.timeouts.Install})
		if !out.Succeeded {
			i.warn(ctx, run, tool.Name, ports.StepBootstrap,
				fmt.Sprintf("%s bootstrap failed, falling back to the package manager: %s", spec.Manager, out.FailureReason))
			return domain.InstallationResult{}, false
		}
		run.logger.Info("version manager installed", "tool", tool.Name, "manager", spec.Manager)
	}

	i.progress(tool.Name, ports.StepInstall, fmt.Sprintf("installing %s with %s", tool.Label(), spec.Manager))
	out := i.runner.Run(ctx, spec.RuntimeCommand(version), ports.RunOptions{Timeout: i.timeouts.Install})
	if !out.Succeeded {
		return domain.Failure(
			fmt.Sprintf("Failed to install %s with %s", tool.Label(), spec.Manager),
			out.FailureDetail(),
		), true
	}
	return i.finish(ctx, run, tool, nil, out), true
}

func (i *Installer) versionManagerPresent(ctx context.Context, spec domain.BootstrapSpec) bool {
	if spec.CheckCommand == "" {
		return i.probe.CommandExists(ctx, spec.Manager)
	}
	out := i.runner.Run(ctx, spec.CheckCommand, ports.RunOptions{Timeout: i.timeouts.Probe})
	return out.Succeeded
}

func (i *Installer) installWithPackageManager(ctx context.Context, run *installRun, tool domain.ToolDescriptor, version string) domain.InstallationResult {
	i.progress(tool.Name, ports.StepSelect, "detecting package manager")
	pm, ok := i.registry.Detect(ctx)
	if !ok {
		return domain.Failure(noPackageManagerMessage(run.platform), "")
	}

	method, ok := tool.Methods.For(pm.ID)
	if !ok {
		msg := fmt.Sprintf("No install method for %s with %s", tool.Label(), pm.ID)
		if tool.ManualInstallURL != "" {
			msg += ". Install manually: " + tool.ManualInstallURL
		}
		return domain.Failure(msg, "")
	}

	specifier, exact := method.Specifier(version)
	if !exact {
		i.warn(ctx, run, tool.Name, ports.StepInstall,
			fmt.Sprintf("%s has no versioned package for %s; installing %s", pm.ID, version, specifier))
	}

	primary := pm.InstallCommand(specifier)
	i.progress(tool.Name, ports.StepInstall, primary)
	out := i.runner.Run(ctx, primary, ports.RunOptions{Timeout: i.timeouts.Install})
	if out.Succeeded {
		return i.finish(ctx, run, tool, method.PostInstallSteps, out)
	}
	run.logger.Warn("primary install failed", "tool", tool.Name, "command", primary, "reason", out.FailureReason)

	for _, alt := range method.AlternateCommands {
		i.progress(tool.Name, ports.StepAlternate, alt)
		altOut := i.runner.Run(ctx, alt, ports.RunOptions{Timeout: i.timeouts.Install})
		if altOut.Succeeded {
			run.logger.Info("alternate install succeeded", "tool", tool.Name, "command", alt)
			return i.finish(ctx, run, tool, method.PostInstallSteps, altOut)
		}
		run.logger.Debug("alternate install failed", "tool", tool.Name, "command", alt, "reason", altOut.FailureReason)
	}

	return domain.Failure(fmt.Sprintf("Failed to install %s with %s", tool.Label(), pm.ID), out.FailureDetail())
}

// finish runs the steps shared by every successful install command:
// post-install, shell configuration and verify.
func (i *Installer) finish(ctx context.Context, run *installRun, tool domain.ToolDescriptor, postInstall []string, installed domain.CommandOutcome) domain.InstallationResult {
	for _, step := range postInstall {
		i.progress(tool.Name, ports.StepPostInstall, step)
		out := i.runner.Run(ctx, step, ports.RunOptions{Timeout: i.timeouts.Command})
		if !out.Succeeded {
			i.warn(ctx, run, tool.Name, ports.StepPostInstall, fmt.Sprintf("%s: %s", step, out.FailureReason))
		}
	}

	restart := false
	if tool.NeedsShellConfiguration() && i.configurator != nil {
		i.progress(tool.Name, ports.StepConfigure, "updating shell profile")
		wrote, err := i.configurator.Apply(tool)
		if err != nil {
			i.warn(ctx, run, tool.Name, ports.StepConfigure, err.Error())
		}
		restart = wrote
	}

	i.progress(tool.Name, ports.StepVerify, "verifying "+tool.VerifyCommand)
	verified := i.probe.CommandExists(ctx, tool.VerifyCommand)
	details := installed.CombinedOutput()

	if verified || restart {
		res := domain.Success(fmt.Sprintf("%s installed successfully", tool.Label()), details)
		res.RequiresShellRestart = restart
		return res
	}
	return domain.Failure(
		fmt.Sprintf("%s was installed but %s is not on PATH yet. Open a new shell and check again", tool.Label(), tool.VerifyCommand),
		details,
	)
}

// InstallPackageManager instala el gestor de paquetes del sistema cuando el
// SO lo necesita (Homebrew en macOS).
func (i *Installer) InstallPackageManager(ctx context.Context) domain.InstallationResult {
	return i.InstallPackageManagerReport(ctx).Result
}

// InstallPackageManagerReport is InstallPackageManager plus warnings.
func (i *Installer) InstallPackageManagerReport(ctx context.Context) domain.InstallReport {
	i.mu.Lock()
	defer i.mu.Unlock()

	run := i.newRun()
	result := i.installPackageManager(ctx, run)
	return domain.InstallReport{Result: result, Warnings: run.warnings}
}

func (i *Installer) installPackageManager(ctx context.Context, run *installRun) domain.InstallationResult {
	const name = "package-manager"

	i.progress(name, ports.StepSelect, "detecting package manager")
	if pm, ok := i.registry.Detect(ctx); ok {
		return domain.Success(fmt.Sprintf("%s is already installed", pm.ID), pm.ProbeCommand)
	}

	family := run.platform.OSFamily
	command, ok := i.registry.BootstrapCommand(family)
	if !ok {
		return domain.Failure(noPackageManagerMessage(run.platform), "")
	}
	tool, ok := i.registry.BootstrapTool(family)
	if !ok {
		tool = domain.ToolDescriptor{Name: name, DisplayName: "Package manager", VerifyCommand: name}
	}

	run.logger.Info("bootstrapping package manager", "os", family.String(), "tool", tool.Name)
	i.notify(ctx, ports.NewEvent(ports.EventTypeBootstrapStarted, "installer", run.id,
		ports.InstallStartedEvent{Tool: tool.Name}))

	i.progress(tool.Name, ports.StepBootstrap, "installing "+tool.Label())
	out := i.runner.Run(ctx, command, ports.RunOptions{Timeout: i.timeouts.Install})
	if !out.Succeeded {
		res := domain.Failure(fmt.Sprintf("Failed to install %s", tool.Label()), out.FailureDetail())
		i.notify(ctx, ports.NewEvent(ports.EventTypeBootstrapFailed, "installer", run.id,
			ports.InstallCompletedEvent{Tool: tool.Name, Result: res}))
		return res
	}

	res := i.finish(ctx, run, tool, nil, out)
	i.notify(ctx, ports.NewEvent(ports.EventTypeBootstrapCompleted, "installer", run.id,
		ports.InstallCompletedEvent{Tool: tool.Name, Result: res, Warnings: run.warnings}))
	return res
}

func noPackageManagerMessage(platform domain.PlatformDescriptor) string {
	switch platform.OSFamily {
	case domain.OSFamilyMacOS:
		return "No package manager detected. Install Homebrew first (devenv install-pm)"
	case domain.OSFamilyLinux:
		return "No supported package manager detected. Linux distributions are expected to ship apt, dnf, yum, pacman or zypper"
	default:
		raw := platform.RawPlatformName
		if raw == "" {
			raw = platform.OSFamily.String()
		}
		return fmt.Sprintf("Environment unsupported: no package manager strategy for %s", raw)
	}
}

// notificationTimeout acota cada llamada a un observer.
const notificationTimeout = 5 * time.Second

// notify entrega el evento a cada observer, en orden de emisión. Cancelling
// ctx does not drop events; a slow observer is abandoned after notifyLimit.
func (i *Installer) notify(ctx context.Context, event ports.Event) {
	base := context.WithoutCancel(ctx)
	for _, observer := range i.observers {
		i.deliver(base, observer, event)
	}
}

func (i *Installer) deliver(ctx context.Context, notifier ports.Notifier, event ports.Event) {
	notifyCtx, cancel := context.WithTimeout(ctx, i.notifyLimit)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- notifier.Notify(notifyCtx, event)
	}()

	select {
	case err := <-done:
		if err != nil {
			i.logger.Warn("notification failed", "event_type", string(event.Type), "error", err.Error())
		}
	case <-notifyCtx.Done():
		i.logger.Warn("notification timeout exceeded",
			"timeout", i.notifyLimit,
			"event_type", string(event.Type),
		)
	}
}

func joinLines(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n")
}
