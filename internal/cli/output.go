// internal/cli/output.go
package cli

import (
	"io"

	"github.com/cmwen/mcp-dev-env-setup/internal/adapters/output"
	"github.com/cmwen/mcp-dev-env-setup/internal/core/domain"
	"github.com/cmwen/mcp-dev-env-setup/internal/core/usecases"
)

func writeJSON(w io.Writer, v any) error {
	return output.WriteJSON(w, v, true)
}

// platformView es la salida JSON de `devenv platform`.
type platformView struct {
	Platform       domain.PlatformDescriptor     `json:"platform"`
	PackageManager *domain.PackageManagerSummary `json:"package_manager"`
}

// installView es una entrada de la salida JSON de `devenv install`.
type installView struct {
	Tool     string                    `json:"tool"`
	Result   domain.InstallationResult `json:"result"`
	Warnings []domain.Warning          `json:"warnings,omitempty"`
	Analysis *usecases.FailureAnalysis `json:"analysis,omitempty"`
}

// statusView es la salida JSON de `devenv status`.
type statusView struct {
	domain.SystemStatus
	Recommendations []string `json:"recommendations"`
	SavedTo         string   `json:"saved_to,omitempty"`
}

// uniqueNames elimina duplicados conservando el orden.
func uniqueNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
