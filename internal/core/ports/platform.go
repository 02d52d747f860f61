// internal/core/ports/platform.go
package ports

import (
	"context"

	"github.com/cmwen/mcp-dev-env-setup/internal/core/domain"
)

// ToolCatalog es la tabla estática de herramientas instalables.
type ToolCatalog interface {
	// Get resolves a canonical name or alias.
	Get(name string) (domain.ToolDescriptor, bool)

	// Names lists canonical names in definition order.
	Names() []string

	// All returns every descriptor in definition order.
	All() []domain.ToolDescriptor

	// ByCategory filters by category, keeping definition order.
	ByCategory(category domain.Category) []domain.ToolDescriptor
}

// PlatformProbe answers questions about the local machine.
type PlatformProbe interface {
	DetectPlatform() domain.PlatformDescriptor
	CommandExists(ctx context.Context, name string) bool
	ResolveVersion(ctx context.Context, name, flag string) (string, bool)
	ShellProfilePath() string
}

// PackageManagerRegistry selects and bootstraps the host package manager.
type PackageManagerRegistry interface {
	// Detect returns the first available candidate for the host OS.
	Detect(ctx context.Context) (domain.PackageManagerDescriptor, bool)

	NeedsBootstrap(family domain.OSFamily) bool
	BootstrapCommand(family domain.OSFamily) (string, bool)

	// BootstrapTool describes the package manager itself as a tool so it
	// can be verified and get a shell profile block.
	BootstrapTool(family domain.OSFamily) (domain.ToolDescriptor, bool)
}

// ShellConfigurator escribe bloques idempotentes en el perfil del shell.
type ShellConfigurator interface {
	// Apply returns true only when it wrote to the profile.
	Apply(tool domain.ToolDescriptor) (bool, error)
}
