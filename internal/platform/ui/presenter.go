// internal/platform/ui/presenter.go
package ui

import (
	"io"

	"github.com/cmwen/mcp-dev-env-setup/internal/core/domain"
	"github.com/cmwen/mcp-dev-env-setup/internal/core/ports"
)

// Presenter define la interfaz para presentar el progreso de instalación y
// los informes de estado en la terminal.
type Presenter interface {
	// Header muestra el título de un comando.
	Header(title string)

	// Progress recibe los pasos del orquestador. Su firma coincide con
	// ports.ProgressFunc para poder pasarlo directamente.
	Progress(tool string, step ports.InstallStep, message string)

	// InstallResult cierra el progreso de una herramienta y muestra el resultado.
	InstallResult(tool string, report domain.InstallReport)

	Platform(p domain.PlatformDescriptor, pm *domain.PackageManagerSummary)
	Status(status domain.SystemStatus)
	ToolStatus(st domain.ToolStatus)
	Tools(tools []domain.ToolDescriptor)
	Readiness(report domain.ReadinessReport)
	Recommendations(recs []string)
	Analysis(reason string, solutions []string, docsURL string)
	Text(title, body string)

	Info(msg string)
	Warning(msg string)
	Error(msg string)

	// Close detiene cualquier spinner activo.
	Close()
}

// UIMode define el modo de visualización.
type UIMode string

const (
	UIModePretty UIMode = "pretty" // spinners, tablas y colores (pterm)
	UIModeRaw    UIMode = "raw"    // una línea logfmt por evento
	UIModeQuiet  UIMode = "quiet"  // solo resultados, sin progreso
)

// ParseUIMode devuelve el modo para flags de CLI; desconocido es pretty.
func ParseUIMode(s string) UIMode {
	switch UIMode(s) {
	case UIModeRaw, UIModeQuiet:
		return UIMode(s)
	default:
		return UIModePretty
	}
}

// New construye el presenter del modo indicado escribiendo en w.
func New(mode UIMode, w io.Writer) Presenter {
	switch mode {
	case UIModeRaw:
		return NewRawPresenter(w, LogFormatText)
	case UIModeQuiet:
		return NewRawPresenter(w, LogFormatText).WithoutProgress()
	default:
		return NewPTermPresenter(w)
	}
}

// Compile-time checks.
var (
	_ Presenter = (*PTermPresenter)(nil)
	_ Presenter = (*RawPresenter)(nil)
	_ Presenter = (*NoopPresenter)(nil)
)
