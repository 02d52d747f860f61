// internal/adapters/mcpserver/server.go
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cmwen/mcp-dev-env-setup/internal/core/domain"
	"github.com/cmwen/mcp-dev-env-setup/internal/core/usecases"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/logx"
)

// ServerName es el nombre que anuncia el servidor en el handshake.
const ServerName = "devenv"

// Service es el subconjunto de core.Service que exponen las herramientas MCP.
type Service interface {
	DetectPlatform() domain.PlatformDescriptor
	DetectPackageManager(ctx context.Context) (domain.PackageManagerDescriptor, bool)
	InstallPackageManagerReport(ctx context.Context) domain.InstallReport
	InstallToolReport(ctx context.Context, name string, opts usecases.InstallOptions) domain.InstallReport
	InstallMultipleTools(ctx context.Context, names []string) map[string]domain.InstallationResult
	CheckTool(ctx context.Context, name string) domain.ToolStatus
	CheckAllTools(ctx context.Context) []domain.ToolStatus
	SystemStatus(ctx context.Context) domain.SystemStatus
	IsReady(ctx context.Context, names []string) domain.ReadinessReport
	Recommendations(status domain.SystemStatus) []string
	ListTools(category string) ([]domain.ToolDescriptor, error)
	AnalyzeFailure(name string, result domain.InstallationResult) (usecases.FailureAnalysis, bool)
	SearchPackages(ctx context.Context, term string) (domain.CommandOutcome, error)
}

// Options configura el servidor MCP.
type Options struct {
	Service Service
	Version string
	Logger  logx.Logger
}

// NewServer registra todas las herramientas sobre un servidor del SDK.
func NewServer(opts Options) *mcp.Server {
	if opts.Logger == nil {
		opts.Logger = logx.NewNop()
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	server := mcp.NewServer(&mcp.Implementation{Name: ServerName, Version: opts.Version}, nil)
	h := &handlers{svc: opts.Service, logger: opts.Logger.With("component", "mcp")}
	h.register(server)
	return server
}

// Run sirve el protocolo sobre stdin/stdout hasta que el cliente cierra o
// ctx se cancela.
func Run(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

func (h *handlers) register(s *mcp.Server) {
	mcp.AddTool(s, &mcp.Tool{
		Name:        "detect_platform",
		Description: "Detect the host operating system family, raw platform name and CPU architecture.",
	}, h.detectPlatform)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "detect_package_manager",
		Description: "Detect the first available package manager for this platform (Homebrew on macOS; apt, dnf, yum, pacman or zypper on Linux).",
	}, h.detectPackageManager)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "install_package_manager",
		Description: "Install the platform package manager when none is present. Only Homebrew on macOS can be bootstrapped.",
	}, h.installPackageManager)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "install_tool",
		Description: "Install one development tool from the catalog, optionally at a specific version. Already installed tools are left untouched.",
	}, h.installTool)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "install_tools",
		Description: "Install several tools in order. Each install is independent: one failure does not stop the others.",
	}, h.installTools)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "check_tool",
		Description: "Check whether a tool is installed and report its version.",
	}, h.checkTool)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "check_all_tools",
		Description: "Check every catalog tool and report which are installed.",
	}, h.checkAllTools)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "system_status",
		Description: "Report platform, package manager and the status of every catalog tool.",
	}, h.systemStatus)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "check_ready",
		Description: "Check whether all the named tools are installed and list the missing ones.",
	}, h.checkReady)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_recommendations",
		Description: "Suggest next steps (package manager, Git, Python, Node.js, Docker, Java) based on the current system status.",
	}, h.recommendations)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_tools",
		Description: "List the tools the catalog knows how to install, optionally filtered by category.",
	}, h.listTools)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "search_packages",
		Description: "Search the detected package manager for packages matching a term.",
	}, h.searchPackages)
}
