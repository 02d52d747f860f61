// internal/adapters/mcpserver/handlers.go
package mcpserver

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cmwen/mcp-dev-env-setup/internal/adapters/output"
	"github.com/cmwen/mcp-dev-env-setup/internal/core/domain"
	"github.com/cmwen/mcp-dev-env-setup/internal/core/usecases"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/errors"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/logx"
)

type handlers struct {
	svc    Service
	logger logx.Logger
}

// Inputs

type emptyInput struct{}

type toolInput struct {
	Name string `json:"name" jsonschema:"catalog name or alias of the tool such as git or python"`
}

type installToolInput struct {
	Name    string `json:"name" jsonschema:"catalog name or alias of the tool such as git or node"`
	Version string `json:"version,omitempty" jsonschema:"optional version to install such as 20 or 3.12"`
}

type namesInput struct {
	Names []string `json:"names" jsonschema:"catalog names or aliases of the tools"`
}

type listToolsInput struct {
	Category string `json:"category,omitempty" jsonschema:"optional category: language or runtime or sdk or packageManager or versionManager or utility"`
}

type searchInput struct {
	Term string `json:"term" jsonschema:"package name or keyword to search for"`
}

// Outputs

// PackageManagerOutput reports the detected manager, if any.
type PackageManagerOutput struct {
	Detected       bool                             `json:"detected"`
	PackageManager *domain.PackageManagerDescriptor `json:"package_manager,omitempty"`
}

// InstallOutput wraps one install with the failure analysis when it failed.
type InstallOutput struct {
	Tool     string                    `json:"tool"`
	Result   domain.InstallationResult `json:"result"`
	Warnings []domain.Warning          `json:"warnings,omitempty"`
	Analysis *usecases.FailureAnalysis `json:"analysis,omitempty"`
}

// InstallManyOutput is the batch result keyed by requested name.
type InstallManyOutput struct {
	Results   map[string]domain.InstallationResult `json:"results"`
	Succeeded []string                             `json:"succeeded"`
	Failed    []string                             `json:"failed"`
}

// ToolsOutput lists tool statuses in catalog order.
type ToolsOutput struct {
	Tools []domain.ToolStatus `json:"tools"`
}

// RecommendationsOutput lists suggested next steps.
type RecommendationsOutput struct {
	Recommendations []string `json:"recommendations"`
}

// ToolSummary is the catalog entry shape returned by list_tools.
type ToolSummary struct {
	Name             string   `json:"name"`
	DisplayName      string   `json:"display_name"`
	Category         string   `json:"category"`
	Strategy         string   `json:"strategy"`
	Aliases          []string `json:"aliases,omitempty"`
	ManualInstallURL string   `json:"manual_install_url,omitempty"`
}

// CatalogOutput lists catalog entries.
type CatalogOutput struct {
	Tools []ToolSummary `json:"tools"`
}

// SearchOutput carries the raw package manager output.
type SearchOutput struct {
	Term   string `json:"term"`
	Output string `json:"output"`
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: text}}}
}

func tableText(render func(*strings.Builder) error) string {
	var b strings.Builder
	if err := render(&b); err != nil {
		return err.Error()
	}
	return b.String()
}

func requireName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.Wrap(errors.ErrInvalidInput, "name is required")
	}
	return nil
}

func (h *handlers) detectPlatform(ctx context.Context, req *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, domain.PlatformDescriptor, error) {
	p := h.svc.DetectPlatform()
	return textResult(fmt.Sprintf("Platform: %s (%s/%s)", p.OSFamily, p.RawPlatformName, p.Architecture)), p, nil
}

func (h *handlers) detectPackageManager(ctx context.Context, req *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, PackageManagerOutput, error) {
	pm, ok := h.svc.DetectPackageManager(ctx)
	if !ok {
		return textResult("No supported package manager detected"), PackageManagerOutput{}, nil
	}
	return textResult(fmt.Sprintf("Package manager: %s (%s)", pm.ID, pm.ProbeCommand)),
		PackageManagerOutput{Detected: true, PackageManager: &pm}, nil
}

func (h *handlers) installPackageManager(ctx context.Context, req *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, InstallOutput, error) {
	h.logger.Info("install_package_manager called")
	report := h.svc.InstallPackageManagerReport(ctx)
	out := h.installOutput("homebrew", report)
	return textResult(output.ResultText(report)), out, nil
}

func (h *handlers) installTool(ctx context.Context, req *mcp.CallToolRequest, in installToolInput) (*mcp.CallToolResult, InstallOutput, error) {
	if err := requireName(in.Name); err != nil {
		return nil, InstallOutput{}, err
	}
	h.logger.Info("install_tool called", "tool", in.Name, "version", in.Version)

	report := h.svc.InstallToolReport(ctx, in.Name, usecases.InstallOptions{Version: in.Version})
	out := h.installOutput(in.Name, report)

	text := output.ResultText(report)
	if out.Analysis != nil {
		text += "\n\n" + out.Analysis.String()
	}
	return textResult(text), out, nil
}

func (h *handlers) installOutput(name string, report domain.InstallReport) InstallOutput {
	out := InstallOutput{Tool: name, Result: report.Result, Warnings: report.Warnings}
	if fa, ok := h.svc.AnalyzeFailure(name, report.Result); ok {
		out.Analysis = &fa
	}
	return out
}

func (h *handlers) installTools(ctx context.Context, req *mcp.CallToolRequest, in namesInput) (*mcp.CallToolResult, InstallManyOutput, error) {
	if len(in.Names) == 0 {
		return nil, InstallManyOutput{}, errors.Wrap(errors.ErrInvalidInput, "names must not be empty")
	}
	h.logger.Info("install_tools called", "tools", strings.Join(in.Names, ","))

	results := h.svc.InstallMultipleTools(ctx, in.Names)
	out := InstallManyOutput{Results: results, Succeeded: []string{}, Failed: []string{}}

	keys := make([]string, 0, len(results))
	for name := range results {
		keys = append(keys, name)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, name := range keys {
		res := results[name]
		if res.Succeeded {
			out.Succeeded = append(out.Succeeded, name)
		} else {
			out.Failed = append(out.Failed, name)
		}
		fmt.Fprintln(&b, output.ResultText(domain.InstallReport{Result: res}))
	}
	fmt.Fprintf(&b, "\n%d succeeded, %d failed", len(out.Succeeded), len(out.Failed))
	return textResult(b.String()), out, nil
}

func (h *handlers) checkTool(ctx context.Context, req *mcp.CallToolRequest, in toolInput) (*mcp.CallToolResult, domain.ToolStatus, error) {
	if err := requireName(in.Name); err != nil {
		return nil, domain.ToolStatus{}, err
	}
	st := h.svc.CheckTool(ctx, in.Name)
	text := fmt.Sprintf("%s is not installed", st.DisplayName)
	if st.IsInstalled {
		text = fmt.Sprintf("%s is installed: %s", st.DisplayName, st.DetectedVersion)
	}
	return textResult(text), st, nil
}

func (h *handlers) checkAllTools(ctx context.Context, req *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, ToolsOutput, error) {
	statuses := h.svc.CheckAllTools(ctx)
	if statuses == nil {
		statuses = []domain.ToolStatus{}
	}
	text := tableText(func(b *strings.Builder) error { return output.ToolStatusTable(b, statuses) })
	return textResult(text), ToolsOutput{Tools: statuses}, nil
}

func (h *handlers) systemStatus(ctx context.Context, req *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, domain.SystemStatus, error) {
	status := h.svc.SystemStatus(ctx)
	if status.Tools == nil {
		status.Tools = []domain.ToolStatus{}
	}
	text := tableText(func(b *strings.Builder) error { return output.StatusTable(b, status) })
	return textResult(text), status, nil
}

func (h *handlers) checkReady(ctx context.Context, req *mcp.CallToolRequest, in namesInput) (*mcp.CallToolResult, domain.ReadinessReport, error) {
	report := h.svc.IsReady(ctx, in.Names)
	text := "All required tools are installed"
	if !report.Ready {
		text = "Missing tools: " + strings.Join(report.Missing, ", ")
	}
	return textResult(text), report, nil
}

func (h *handlers) recommendations(ctx context.Context, req *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, RecommendationsOutput, error) {
	recs := h.svc.Recommendations(h.svc.SystemStatus(ctx))
	if recs == nil {
		recs = []string{}
	}
	text := "Your development environment looks complete"
	if len(recs) > 0 {
		text = "- " + strings.Join(recs, "\n- ")
	}
	return textResult(text), RecommendationsOutput{Recommendations: recs}, nil
}

func (h *handlers) listTools(ctx context.Context, req *mcp.CallToolRequest, in listToolsInput) (*mcp.CallToolResult, CatalogOutput, error) {
	tools, err := h.svc.ListTools(in.Category)
	if err != nil {
		return nil, CatalogOutput{}, err
	}
	out := CatalogOutput{Tools: make([]ToolSummary, 0, len(tools))}
	for _, t := range tools {
		out.Tools = append(out.Tools, ToolSummary{
			Name:             t.Name,
			DisplayName:      t.Label(),
			Category:         string(t.Category),
			Strategy:         string(t.EffectiveStrategy()),
			Aliases:          t.Aliases,
			ManualInstallURL: t.ManualInstallURL,
		})
	}
	text := tableText(func(b *strings.Builder) error { return output.CatalogTable(b, tools) })
	return textResult(text), out, nil
}

func (h *handlers) searchPackages(ctx context.Context, req *mcp.CallToolRequest, in searchInput) (*mcp.CallToolResult, SearchOutput, error) {
	outcome, err := h.svc.SearchPackages(ctx, in.Term)
	if err != nil {
		h.logger.Warn("search_packages failed", "term", in.Term, "kind", errors.Kind(err), "error", err.Error())
		return nil, SearchOutput{}, err
	}
	text := strings.TrimSpace(outcome.Stdout)
	if text == "" {
		text = "No packages found"
	}
	return textResult(text), SearchOutput{Term: in.Term, Output: outcome.Stdout}, nil
}
