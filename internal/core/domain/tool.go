// internal/core/domain/tool.go
package domain

import (
	"fmt"
	"strings"
)

// VersionPlaceholder is replaced by the requested version in versioned
// specifiers and runtime install templates.
const VersionPlaceholder = "{version}"

// InstallMethod describes how to install a tool with one package manager.
type InstallMethod struct {
	PackageSpecifier   string   `yaml:"package" json:"package"`
	VersionedSpecifier string   `yaml:"versioned_package,omitempty" json:"versioned_package,omitempty"`
	AlternateCommands  []string `yaml:"alternates,omitempty" json:"alternates,omitempty"`
	PostInstallSteps   []string `yaml:"post_install,omitempty" json:"post_install,omitempty"`
}

// Specifier returns the package specifier for the requested version. The
// second value is false when a version was requested but the method has no
// versioned form, in which case the default specifier is returned.
func (m InstallMethod) Specifier(version string) (string, bool) {
	version = strings.TrimSpace(version)
	if version == "" {
		return m.PackageSpecifier, true
	}
	if m.VersionedSpecifier == "" {
		return m.PackageSpecifier, false
	}
	return strings.ReplaceAll(m.VersionedSpecifier, VersionPlaceholder, version), true
}

// InstallMethods holds at most one method per concrete package manager.
type InstallMethods struct {
	Homebrew *InstallMethod `yaml:"homebrew,omitempty" json:"homebrew,omitempty"`
	Apt      *InstallMethod `yaml:"apt,omitempty" json:"apt,omitempty"`
	Dnf      *InstallMethod `yaml:"dnf,omitempty" json:"dnf,omitempty"`
	Yum      *InstallMethod `yaml:"yum,omitempty" json:"yum,omitempty"`
	Pacman   *InstallMethod `yaml:"pacman,omitempty" json:"pacman,omitempty"`
	Zypper   *InstallMethod `yaml:"zypper,omitempty" json:"zypper,omitempty"`
}

// For returns the method registered for the manager.
func (m InstallMethods) For(id PackageManagerID) (InstallMethod, bool) {
	var method *InstallMethod
	switch id {
	case PackageManagerHomebrew:
		method = m.Homebrew
	case PackageManagerApt:
		method = m.Apt
	case PackageManagerDnf:
		method = m.Dnf
	case PackageManagerYum:
		method = m.Yum
	case PackageManagerPacman:
		method = m.Pacman
	case PackageManagerZypper:
		method = m.Zypper
	case PackageManagerUnknown:
		return InstallMethod{}, false
	default:
		return InstallMethod{}, false
	}
	if method == nil {
		return InstallMethod{}, false
	}
	return *method, true
}

func (m InstallMethods) clone() InstallMethods {
	cp := func(in *InstallMethod) *InstallMethod {
		if in == nil {
			return nil
		}
		out := *in
		out.AlternateCommands = append([]string(nil), in.AlternateCommands...)
		out.PostInstallSteps = append([]string(nil), in.PostInstallSteps...)
		return &out
	}
	return InstallMethods{
		Homebrew: cp(m.Homebrew),
		Apt:      cp(m.Apt),
		Dnf:      cp(m.Dnf),
		Yum:      cp(m.Yum),
		Pacman:   cp(m.Pacman),
		Zypper:   cp(m.Zypper),
	}
}

// Managers lists the managers that have a method, in AllPackageManagers order.
func (m InstallMethods) Managers() []PackageManagerID {
	out := make([]PackageManagerID, 0, len(AllPackageManagers))
	for _, id := range AllPackageManagers {
		if _, ok := m.For(id); ok {
			out = append(out, id)
		}
	}
	return out
}

// BootstrapSpec drives the version-manager strategy: CheckCommand tells
// whether the version manager is already present, Command installs it,
// ActivateCommand loads it into a fresh shell and RuntimeInstall (with
// {version}) installs the runtime through it.
type BootstrapSpec struct {
	Manager         string `yaml:"manager" json:"manager"`
	CheckCommand    string `yaml:"check,omitempty" json:"check,omitempty"`
	Command         string `yaml:"command" json:"command"`
	ActivateCommand string `yaml:"activate,omitempty" json:"activate,omitempty"`
	RuntimeInstall  string `yaml:"runtime_install" json:"runtime_install"`
	DefaultVersion  string `yaml:"default_version,omitempty" json:"default_version,omitempty"`
}

// RuntimeCommand renders the runtime install command for a version, prefixed
// with the activation command when there is one.
func (b BootstrapSpec) RuntimeCommand(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		version = b.DefaultVersion
	}
	install := strings.ReplaceAll(b.RuntimeInstall, VersionPlaceholder, version)
	if b.ActivateCommand == "" {
		return install
	}
	return b.ActivateCommand + " && " + install
}

// ToolDescriptor is a static catalog entry.
type ToolDescriptor struct {
	Name                 string            `yaml:"name" json:"name"`
	DisplayName          string            `yaml:"display_name" json:"display_name"`
	Category             Category          `yaml:"category" json:"category"`
	VerifyCommand        string            `yaml:"verify_command" json:"verify_command"`
	VersionFlag          string            `yaml:"version_flag" json:"version_flag"`
	Methods              InstallMethods    `yaml:"install" json:"install"`
	ManualInstallURL     string            `yaml:"manual_install_url,omitempty" json:"manual_install_url,omitempty"`
	EnvironmentVariables map[string]string `yaml:"env,omitempty" json:"env,omitempty"`
	ShellProfileSnippet  string            `yaml:"shell_snippet,omitempty" json:"shell_snippet,omitempty"`
	ProfileBlock         string            `yaml:"profile_block,omitempty" json:"profile_block,omitempty"`
	Aliases              []string          `yaml:"aliases,omitempty" json:"aliases,omitempty"`
	Strategy             InstallStrategy   `yaml:"strategy,omitempty" json:"strategy,omitempty"`
	Bootstrap            *BootstrapSpec    `yaml:"bootstrap,omitempty" json:"bootstrap,omitempty"`
	Prerequisites        []string          `yaml:"prerequisites,omitempty" json:"prerequisites,omitempty"`
}

// Clone devuelve una copia profunda del descriptor.
func (t ToolDescriptor) Clone() ToolDescriptor {
	out := t
	out.Methods = t.Methods.clone()
	out.Aliases = append([]string(nil), t.Aliases...)
	out.Prerequisites = append([]string(nil), t.Prerequisites...)
	if t.EnvironmentVariables != nil {
		out.EnvironmentVariables = make(map[string]string, len(t.EnvironmentVariables))
		for k, v := range t.EnvironmentVariables {
			out.EnvironmentVariables[k] = v
		}
	}
	if t.Bootstrap != nil {
		b := *t.Bootstrap
		out.Bootstrap = &b
	}
	return out
}

// NeedsShellConfiguration reports whether the Configurator has anything to
// write for this tool.
func (t ToolDescriptor) NeedsShellConfiguration() bool {
	return len(t.EnvironmentVariables) > 0 || strings.TrimSpace(t.ShellProfileSnippet) != ""
}

// BlockName is the marker name of the tool's shell profile block. Tools
// that set the same ProfileBlock share one block.
func (t ToolDescriptor) BlockName() string {
	if b := strings.TrimSpace(t.ProfileBlock); b != "" {
		return b
	}
	return t.Name
}

// EffectiveStrategy resolves the empty strategy to generic.
func (t ToolDescriptor) EffectiveStrategy() InstallStrategy {
	if t.Strategy == "" {
		return StrategyGeneric
	}
	return t.Strategy
}

// Label returns the display name, falling back to the canonical name.
func (t ToolDescriptor) Label() string {
	if t.DisplayName != "" {
		return t.DisplayName
	}
	return t.Name
}

// Validate checks the invariants the orchestrator relies on.
func (t ToolDescriptor) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidTool)
	}
	if strings.TrimSpace(t.VerifyCommand) == "" {
		return fmt.Errorf("%w: %s has no verify command", ErrInvalidTool, t.Name)
	}
	if !t.Category.IsValid() {
		return fmt.Errorf("%w: %s has category %q", ErrInvalidCategory, t.Name, t.Category)
	}
	if !t.Strategy.IsValid() {
		return fmt.Errorf("%w: %s has strategy %q", ErrInvalidTool, t.Name, t.Strategy)
	}
	if t.Strategy == StrategyVersionManager {
		if t.Bootstrap == nil || t.Bootstrap.Command == "" || t.Bootstrap.RuntimeInstall == "" {
			return fmt.Errorf("%w: %s uses the version manager strategy without a bootstrap", ErrInvalidTool, t.Name)
		}
	}
	for name, value := range t.EnvironmentVariables {
		if !isEnvName(name) {
			return fmt.Errorf("%w: %s exports invalid variable name %q", ErrInvalidTool, t.Name, name)
		}
		if strings.ContainsAny(value, "\n\r") {
			return fmt.Errorf("%w: %s variable %s spans several lines", ErrInvalidTool, t.Name, name)
		}
	}
	for _, pre := range t.Prerequisites {
		if strings.EqualFold(pre, t.Name) {
			return fmt.Errorf("%w: %s lists itself as a prerequisite", ErrPrerequisiteCycle, t.Name)
		}
	}
	return nil
}

func isEnvName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
