// internal/core/usecases/validator_service.go
package usecases

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/cmwen/mcp-dev-env-setup/internal/core/domain"
	"github.com/cmwen/mcp-dev-env-setup/internal/core/ports"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/logx"
)

// DefaultProbeWorkers limita los probes concurrentes de CheckAllTools.
const DefaultProbeWorkers = 8

// ValidatorOptions configura el Validator.
type ValidatorOptions struct {
	Catalog  ports.ToolCatalog
	Probe    ports.PlatformProbe
	Registry ports.PackageManagerRegistry
	Logger   logx.Logger
	Workers  int
}

// Validator answers read-only questions about the installed environment.
// Nothing is cached: every call re-probes the machine.
type Validator struct {
	catalog  ports.ToolCatalog
	probe    ports.PlatformProbe
	registry ports.PackageManagerRegistry
	logger   logx.Logger
	workers  int
}

// NewValidator crea un Validator aplicando valores por defecto.
func NewValidator(opts ValidatorOptions) *Validator {
	if opts.Workers <= 0 {
		opts.Workers = DefaultProbeWorkers
	}
	if opts.Logger == nil {
		opts.Logger = logx.NewNop()
	}
	return &Validator{
		catalog:  opts.Catalog,
		probe:    opts.Probe,
		registry: opts.Registry,
		logger:   opts.Logger.With("component", "validator"),
		workers:  opts.Workers,
	}
}

// CheckTool probes one tool. Unknown names report not installed and spawn
// nothing.
func (v *Validator) CheckTool(ctx context.Context, name string) domain.ToolStatus {
	tool, ok := v.catalog.Get(name)
	if !ok {
		v.logger.Debug("unknown tool queried", "tool", name)
		return domain.ToolStatus{Name: name, DisplayName: name}
	}
	return v.status(ctx, tool)
}

func (v *Validator) status(ctx context.Context, tool domain.ToolDescriptor) domain.ToolStatus {
	st := domain.ToolStatus{Name: tool.Name, DisplayName: tool.Label()}
	if !v.probe.CommandExists(ctx, tool.VerifyCommand) {
		return st
	}
	st.IsInstalled = true
	if version, ok := v.probe.ResolveVersion(ctx, tool.VerifyCommand, tool.VersionFlag); ok {
		st.DetectedVersion = version
	}
	return st
}

// CheckAllTools probes every catalog tool concurrently and returns the
// statuses in catalog order.
func (v *Validator) CheckAllTools(ctx context.Context) []domain.ToolStatus {
	return v.checkTools(ctx, v.catalog.All())
}

func (v *Validator) checkTools(ctx context.Context, tools []domain.ToolDescriptor) []domain.ToolStatus {
	statuses := make([]domain.ToolStatus, len(tools))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.workers)
	for idx, tool := range tools {
		g.Go(func() error {
			statuses[idx] = v.status(gctx, tool)
			return nil
		})
	}
	_ = g.Wait()

	v.logger.Debug("tools checked", "count", len(statuses))
	return statuses
}

// DetectPackageManager devuelve el gestor detectado, si hay alguno.
func (v *Validator) DetectPackageManager(ctx context.Context) (domain.PackageManagerDescriptor, bool) {
	return v.registry.Detect(ctx)
}

// SystemStatus agrega plataforma, gestor de paquetes y estado de cada
// herramienta.
func (v *Validator) SystemStatus(ctx context.Context) domain.SystemStatus {
	status := domain.SystemStatus{
		Platform: v.probe.DetectPlatform(),
		Tools:    v.CheckAllTools(ctx),
	}
	if pm, ok := v.registry.Detect(ctx); ok {
		status.PackageManager = pm.Summary()
	}
	return status
}

// IsReady partitions the required names by installed status. Names are
// reported as first given, in input order; an alias of a name already seen
// counts once.
func (v *Validator) IsReady(ctx context.Context, names []string) domain.ReadinessReport {
	seen := make(map[string]bool, len(names))
	unique := make([]string, 0, len(names))
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if tool, ok := v.catalog.Get(key); ok {
			key = tool.Name
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, name)
	}

	installed := make([]bool, len(unique))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.workers)
	for idx, name := range unique {
		g.Go(func() error {
			installed[idx] = v.CheckTool(gctx, name).IsInstalled
			return nil
		})
	}
	_ = g.Wait()

	report := domain.ReadinessReport{Missing: []string{}, Present: []string{}}
	for idx, name := range unique {
		if installed[idx] {
			report.Present = append(report.Present, name)
		} else {
			report.Missing = append(report.Missing, name)
		}
	}
	report.Ready = len(report.Missing) == 0
	return report
}

// recommendation fires when a well-known tool is in the status and missing.
type recommendation struct {
	tool string
	text string
}

var toolRecommendations = []recommendation{
	{"git", "Install Git for version control: devenv install git"},
	{"python", "Install Python for scripting and automation: devenv install python"},
	{"node", "Install Node.js for JavaScript development: devenv install node"},
	{"docker", "Install Docker to run containers: devenv install docker"},
	{"java", "Install Java (OpenJDK) for JVM development: devenv install java"},
}

// Recommendations derives advisory suggestions from a status. They are
// never executed.
func Recommendations(status domain.SystemStatus) []string {
	out := []string{}
	if status.PackageManager == nil {
		switch status.Platform.OSFamily {
		case domain.OSFamilyMacOS:
			out = append(out, "Install Homebrew to enable tool installation: devenv install-pm")
		case domain.OSFamilyLinux:
			out = append(out, "No supported package manager found. Install apt, dnf, yum, pacman or zypper")
		default:
			out = append(out, "Obtain a supported package manager. This platform has no automatic install strategy")
		}
	}
	for _, rec := range toolRecommendations {
		if st, ok := status.Status(rec.tool); ok && !st.IsInstalled {
			out = append(out, rec.text)
		}
	}
	return out
}
