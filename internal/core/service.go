// internal/core/service.go
package core

import (
	"context"
	"strings"

	"github.com/cmwen/mcp-dev-env-setup/internal/core/domain"
	"github.com/cmwen/mcp-dev-env-setup/internal/core/ports"
	"github.com/cmwen/mcp-dev-env-setup/internal/core/usecases"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/errors"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/logx"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/validator"
)

// ServiceOptions reúne los puertos que necesita el Service.
type ServiceOptions struct {
	Catalog      ports.ToolCatalog
	Probe        ports.PlatformProbe
	Registry     ports.PackageManagerRegistry
	Configurator ports.ShellConfigurator
	Runner       ports.CommandRunner
	Observers    []ports.Notifier
	Progress     ports.ProgressFunc
	Logger       logx.Logger
	Timeouts     usecases.Timeouts
	ProbeWorkers int
}

// Service is the single entry point of the presentation adapters (CLI and
// MCP server). Every call returns domain values; none of them fails on a
// tool-level problem.
type Service struct {
	catalog   ports.ToolCatalog
	probe     ports.PlatformProbe
	runner    ports.CommandRunner
	installer *usecases.Installer
	validator *usecases.Validator
	timeouts  usecases.Timeouts
	logger    logx.Logger
}

// NewService crea el Service y sus casos de uso.
func NewService(opts ServiceOptions) *Service {
	if opts.Logger == nil {
		opts.Logger = logx.NewNop()
	}
	if opts.Timeouts.Command <= 0 {
		opts.Timeouts.Command = usecases.DefaultTimeouts.Command
	}
	return &Service{
		catalog: opts.Catalog,
		probe:   opts.Probe,
		runner:  opts.Runner,
		installer: usecases.NewInstaller(usecases.InstallerOptions{
			Catalog:      opts.Catalog,
			Probe:        opts.Probe,
			Registry:     opts.Registry,
			Configurator: opts.Configurator,
			Runner:       opts.Runner,
			Observers:    opts.Observers,
			Progress:     opts.Progress,
			Logger:       opts.Logger,
			Timeouts:     opts.Timeouts,
		}),
		validator: usecases.NewValidator(usecases.ValidatorOptions{
			Catalog:  opts.Catalog,
			Probe:    opts.Probe,
			Registry: opts.Registry,
			Logger:   opts.Logger,
			Workers:  opts.ProbeWorkers,
		}),
		timeouts: opts.Timeouts,
		logger:   opts.Logger.With("component", "service"),
	}
}

// DetectPlatform describe el sistema anfitrión.
func (s *Service) DetectPlatform() domain.PlatformDescriptor {
	return s.probe.DetectPlatform()
}

// DetectPackageManager returns the first available package manager for the
// host, or false when there is none.
func (s *Service) DetectPackageManager(ctx context.Context) (domain.PackageManagerDescriptor, bool) {
	return s.validator.DetectPackageManager(ctx)
}

// InstallPackageManager instala el gestor de paquetes si hace falta.
func (s *Service) InstallPackageManager(ctx context.Context) domain.InstallationResult {
	return s.installer.InstallPackageManager(ctx)
}

// InstallPackageManagerReport is InstallPackageManager plus warnings.
func (s *Service) InstallPackageManagerReport(ctx context.Context) domain.InstallReport {
	return s.installer.InstallPackageManagerReport(ctx)
}

// InstallTool instala una herramienta del catálogo.
func (s *Service) InstallTool(ctx context.Context, name string, opts usecases.InstallOptions) domain.InstallationResult {
	return s.installer.InstallTool(ctx, name, opts)
}

// InstallToolReport is InstallTool plus best-effort warnings.
func (s *Service) InstallToolReport(ctx context.Context, name string, opts usecases.InstallOptions) domain.InstallReport {
	return s.installer.InstallToolReport(ctx, name, opts)
}

// InstallMultipleTools installs the names in order, independently.
func (s *Service) InstallMultipleTools(ctx context.Context, names []string) map[string]domain.InstallationResult {
	return s.installer.InstallMultipleTools(ctx, names)
}

// CheckTool consulta el estado de una herramienta.
func (s *Service) CheckTool(ctx context.Context, name string) domain.ToolStatus {
	return s.validator.CheckTool(ctx, name)
}

// CheckAllTools consulta todas las herramientas del catálogo.
func (s *Service) CheckAllTools(ctx context.Context) []domain.ToolStatus {
	return s.validator.CheckAllTools(ctx)
}

// SystemStatus agrega plataforma, gestor y herramientas.
func (s *Service) SystemStatus(ctx context.Context) domain.SystemStatus {
	return s.validator.SystemStatus(ctx)
}

// IsReady partitions the required tools by installed status.
func (s *Service) IsReady(ctx context.Context, names []string) domain.ReadinessReport {
	return s.validator.IsReady(ctx, names)
}

// Recommendations derives advisory suggestions from a status.
func (s *Service) Recommendations(status domain.SystemStatus) []string {
	return usecases.Recommendations(status)
}

// ListTools returns the catalog, optionally filtered by category. An empty
// category means every tool.
func (s *Service) ListTools(category string) ([]domain.ToolDescriptor, error) {
	if strings.TrimSpace(category) == "" {
		return s.catalog.All(), nil
	}
	c, ok := domain.ParseCategory(category)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown category %q", category)
	}
	return s.catalog.ByCategory(c), nil
}

// Tool devuelve la entrada del catálogo para un nombre o alias.
func (s *Service) Tool(name string) (domain.ToolDescriptor, bool) {
	return s.catalog.Get(name)
}

// AnalyzeFailure explains a failed result for the named tool.
func (s *Service) AnalyzeFailure(name string, result domain.InstallationResult) (usecases.FailureAnalysis, bool) {
	tool, ok := s.catalog.Get(name)
	if !ok {
		tool = domain.ToolDescriptor{Name: name}
	}
	return usecases.AnalyzeFailure(tool, result)
}

// SearchPackages runs the detected package manager's search for a term.
func (s *Service) SearchPackages(ctx context.Context, term string) (domain.CommandOutcome, error) {
	term = strings.TrimSpace(term)
	if !validator.IsSearchTerm(term) {
		return domain.CommandOutcome{}, errors.Wrapf(errors.ErrInvalidInput, "invalid search term %q", term)
	}
	pm, ok := s.validator.DetectPackageManager(ctx)
	if !ok {
		return domain.CommandOutcome{}, errors.Wrap(errors.ErrUnsupported, domain.ErrNoPackageManager.Error())
	}
	command := pm.SearchCommand(term)
	s.logger.Debug("searching packages", "manager", pm.ID.String(), "term", term)
	out := s.runner.Run(ctx, command, ports.RunOptions{Timeout: s.timeouts.Command})
	if !out.Succeeded {
		return out, errors.NewCommandError(command, out.FailureReason, out.Stderr, out.TimedOut)
	}
	return out, nil
}
