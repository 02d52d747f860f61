// internal/platform/ui/symbols.go
package ui

import (
	"github.com/pterm/pterm"

	"github.com/cmwen/mcp-dev-env-setup/internal/core/domain"
)

// Status representa el estado de una herramienta o instalación en pantalla.
type Status int

const (
	StatusPending Status = iota
	StatusRunning
	StatusSuccess
	StatusWarning
	StatusError
	StatusSkipped
)

// String convierte el status a string
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusSuccess:
		return "success"
	case StatusWarning:
		return "warning"
	case StatusError:
		return "error"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Symbol retorna el símbolo Unicode para cada estado
func (s Status) Symbol() string {
	switch s {
	case StatusPending:
		return "⏸"
	case StatusRunning:
		return "⣾"
	case StatusSuccess:
		return "✓"
	case StatusWarning:
		return "⚠"
	case StatusError:
		return "✗"
	case StatusSkipped:
		return "⊘"
	default:
		return "?"
	}
}

// Color retorna el color pterm para cada estado
func (s Status) Color() pterm.Color {
	switch s {
	case StatusPending, StatusSkipped:
		return pterm.FgGray
	case StatusRunning:
		return pterm.FgCyan
	case StatusSuccess:
		return pterm.FgGreen
	case StatusWarning:
		return pterm.FgYellow
	case StatusError:
		return pterm.FgRed
	default:
		return pterm.FgDefault
	}
}

// Style retorna un pterm.Style configurado para el estado
func (s Status) Style() *pterm.Style {
	return pterm.NewStyle(s.Color())
}

// ReportStatus maps an install report to its display status. A success that
// absorbed warnings or needs a new shell shows as a warning.
func ReportStatus(report domain.InstallReport) Status {
	switch {
	case !report.Result.Succeeded:
		return StatusError
	case len(report.Warnings) > 0 || report.Result.RequiresShellRestart:
		return StatusWarning
	default:
		return StatusSuccess
	}
}

// InstalledStatus maps a probe result to its display status.
func InstalledStatus(installed bool) Status {
	if installed {
		return StatusSuccess
	}
	return StatusError
}

// Icons globales para diferentes elementos de la UI
var (
	IconPlatform = "💻"
	IconPackage  = "📦"
	IconTool     = "🔧"
	IconShell    = "🐚"
	IconTime     = "⏱"
	IconHint     = "💡"
	IconDocs     = "📖"
)

// Separadores
var (
	SeparatorHeavy = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"
	SeparatorLight = "────────────────────────────────────────────"
)
