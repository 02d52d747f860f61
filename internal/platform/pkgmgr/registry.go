// internal/platform/pkgmgr/registry.go
package pkgmgr

import (
	"context"

	"github.com/cmwen/mcp-dev-env-setup/internal/core/domain"
	"github.com/cmwen/mcp-dev-env-setup/internal/core/ports"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/logx"
)

var _ ports.PackageManagerRegistry = (*Registry)(nil)

// HomebrewInstallCommand is the network-fetched Homebrew install script,
// run non-interactively.
const HomebrewInstallCommand = `NONINTERACTIVE=1 /bin/bash -c "$(curl -fsSL https://raw.githubusercontent.com/Homebrew/install/HEAD/install.sh)"`

// homebrewShellEnv loads brew into PATH for both Apple Silicon and Intel prefixes.
const homebrewShellEnv = `if [ -x /opt/homebrew/bin/brew ]; then
  eval "$(/opt/homebrew/bin/brew shellenv)"
elif [ -x /usr/local/bin/brew ]; then
  eval "$(/usr/local/bin/brew shellenv)"
fi`

// templates holds the invocation templates of every concrete manager.
var templates = map[domain.PackageManagerID]domain.PackageManagerDescriptor{
	domain.PackageManagerHomebrew: {
		ID:                   domain.PackageManagerHomebrew,
		ProbeCommand:         "brew",
		InstallCommandPrefix: "brew install ",
		UpdateCommandPrefix:  "brew update",
		SearchCommandPrefix:  "brew search ",
	},
	domain.PackageManagerApt: {
		ID:                   domain.PackageManagerApt,
		ProbeCommand:         "apt-get",
		InstallCommandPrefix: "sudo apt-get install -y ",
		UpdateCommandPrefix:  "sudo apt-get update",
		SearchCommandPrefix:  "apt-cache search ",
	},
	domain.PackageManagerDnf: {
		ID:                   domain.PackageManagerDnf,
		ProbeCommand:         "dnf",
		InstallCommandPrefix: "sudo dnf install -y ",
		UpdateCommandPrefix:  "sudo dnf check-update",
		SearchCommandPrefix:  "dnf search ",
	},
	domain.PackageManagerYum: {
		ID:                   domain.PackageManagerYum,
		ProbeCommand:         "yum",
		InstallCommandPrefix: "sudo yum install -y ",
		UpdateCommandPrefix:  "sudo yum check-update",
		SearchCommandPrefix:  "yum search ",
	},
	domain.PackageManagerPacman: {
		ID:                   domain.PackageManagerPacman,
		ProbeCommand:         "pacman",
		InstallCommandPrefix: "sudo pacman -S --noconfirm ",
		UpdateCommandPrefix:  "sudo pacman -Sy",
		SearchCommandPrefix:  "pacman -Ss ",
	},
	domain.PackageManagerZypper: {
		ID:                   domain.PackageManagerZypper,
		ProbeCommand:         "zypper",
		InstallCommandPrefix: "sudo zypper install -y ",
		UpdateCommandPrefix:  "sudo zypper refresh",
		SearchCommandPrefix:  "zypper search ",
	},
}

// HostProbe is the part of the platform probe the registry needs.
type HostProbe interface {
	DetectPlatform() domain.PlatformDescriptor
	CommandExists(ctx context.Context, name string) bool
}

// Registry selects the package manager for the host.
type Registry struct {
	probe  HostProbe
	logger logx.Logger
}

// NewRegistry crea un Registry.
func NewRegistry(probe HostProbe, logger logx.Logger) *Registry {
	if logger == nil {
		logger = logx.NewNop()
	}
	return &Registry{
		probe:  probe,
		logger: logger.With("component", "pkgmgr"),
	}
}

// Candidates returns the managers to probe for an OS family, in priority
// order. The order is the tie-break when several are installed.
func Candidates(family domain.OSFamily) []domain.PackageManagerID {
	switch family {
	case domain.OSFamilyMacOS:
		return []domain.PackageManagerID{domain.PackageManagerHomebrew}
	case domain.OSFamilyLinux:
		return []domain.PackageManagerID{
			domain.PackageManagerApt,
			domain.PackageManagerDnf,
			domain.PackageManagerYum,
			domain.PackageManagerPacman,
			domain.PackageManagerZypper,
		}
	default:
		return nil
	}
}

// Descriptor returns the static templates for a manager, IsAvailable unset.
func Descriptor(id domain.PackageManagerID) (domain.PackageManagerDescriptor, bool) {
	d, ok := templates[id]
	return d, ok
}

// Detect probes the candidates of the host OS in order and returns the first
// one present.
func (r *Registry) Detect(ctx context.Context) (domain.PackageManagerDescriptor, bool) {
	platform := r.probe.DetectPlatform()
	for _, id := range Candidates(platform.OSFamily) {
		d, ok := Descriptor(id)
		if !ok {
			continue
		}
		if r.probe.CommandExists(ctx, d.ProbeCommand) {
			d.IsAvailable = true
			r.logger.Debug("package manager detected", "manager", d.ID.String())
			return d, true
		}
	}
	r.logger.Debug("no package manager detected", "os", platform.OSFamily.String())
	return domain.PackageManagerDescriptor{}, false
}

// NeedsBootstrap is true only on macOS: Homebrew never ships with the OS,
// while Linux distributions carry their native manager.
func NeedsBootstrap(family domain.OSFamily) bool {
	return family == domain.OSFamilyMacOS
}

// BootstrapCommand returns the command that installs the package manager
// itself, when the OS family has one.
func BootstrapCommand(family domain.OSFamily) (string, bool) {
	if !NeedsBootstrap(family) {
		return "", false
	}
	return HomebrewInstallCommand, true
}

// BootstrapTool describes the package manager of an OS family as a tool so
// the shell configurator can manage its profile block.
func BootstrapTool(family domain.OSFamily) (domain.ToolDescriptor, bool) {
	if !NeedsBootstrap(family) {
		return domain.ToolDescriptor{}, false
	}
	return domain.ToolDescriptor{
		Name:                "homebrew",
		DisplayName:         "Homebrew",
		Category:            domain.CategoryPackageManager,
		VerifyCommand:       "brew",
		VersionFlag:         "--version",
		ManualInstallURL:    "https://brew.sh",
		ShellProfileSnippet: homebrewShellEnv,
	}, true
}

// NeedsBootstrap implements ports.PackageManagerRegistry.
func (r *Registry) NeedsBootstrap(family domain.OSFamily) bool {
	return NeedsBootstrap(family)
}

// BootstrapCommand implements ports.PackageManagerRegistry.
func (r *Registry) BootstrapCommand(family domain.OSFamily) (string, bool) {
	return BootstrapCommand(family)
}

// BootstrapTool implements ports.PackageManagerRegistry.
func (r *Registry) BootstrapTool(family domain.OSFamily) (domain.ToolDescriptor, bool) {
	return BootstrapTool(family)
}
