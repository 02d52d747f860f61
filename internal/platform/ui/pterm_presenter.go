// internal/platform/ui/pterm_presenter.go
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/pterm/pterm"

	"github.com/cmwen/mcp-dev-env-setup/internal/core/domain"
	"github.com/cmwen/mcp-dev-env-setup/internal/core/ports"
)

// PTermPresenter implementa Presenter usando la biblioteca pterm
// para renderizar spinners, tablas y colores en la terminal.
type PTermPresenter struct {
	mu  sync.Mutex
	out io.Writer

	// Spinners activos por herramienta
	spinners map[string]*pterm.SpinnerPrinter
	started  map[string]time.Time

	// Spinners desactivados (tests, salida no interactiva)
	static bool
}

// NewPTermPresenter crea una nueva instancia del presenter con pterm.
// Un writer nil escribe en stdout.
func NewPTermPresenter(w io.Writer) *PTermPresenter {
	if w == nil {
		w = os.Stdout
	}
	return &PTermPresenter{
		out:      w,
		spinners: make(map[string]*pterm.SpinnerPrinter),
		started:  make(map[string]time.Time),
	}
}

// WithoutSpinners imprime cada paso como una línea en lugar de animarlo.
func (p *PTermPresenter) WithoutSpinners() *PTermPresenter {
	p.static = true
	return p
}

// Header muestra el título de un comando
func (p *PTermPresenter) Header(title string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintln(p.out, pterm.DefaultHeader.
		WithBackgroundStyle(pterm.NewStyle(pterm.BgCyan)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprint(title))
	fmt.Fprintln(p.out)
}

// Progress actualiza (o crea) el spinner de una herramienta.
func (p *PTermPresenter) Progress(tool string, step ports.InstallStep, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	text := fmt.Sprintf("%s %s: %s", pterm.Cyan(tool), StyleSecondary.Sprint(stepLabel(string(step))), message)

	if _, ok := p.started[tool]; !ok {
		p.started[tool] = time.Now()
	}

	if p.static {
		fmt.Fprintf(p.out, "  %s %s\n", StatusRunning.Symbol(), text)
		return
	}

	if spinner, ok := p.spinners[tool]; ok {
		spinner.UpdateText(text)
		return
	}

	spinner, err := pterm.DefaultSpinner.
		WithWriter(p.out).
		WithStyle(pterm.NewStyle(pterm.FgCyan)).
		WithSequence("⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷").
		WithRemoveWhenDone(true).
		Start(text)
	if err != nil {
		fmt.Fprintf(p.out, "  %s %s\n", StatusRunning.Symbol(), text)
		return
	}
	p.spinners[tool] = spinner
}

// InstallResult detiene el spinner y renderiza el resultado final
func (p *PTermPresenter) InstallResult(tool string, report domain.InstallReport) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopSpinner(tool)

	status := ReportStatus(report)
	line := fmt.Sprintf("%s %s", status.Symbol(), report.Result.Message)
	if start, ok := p.started[tool]; ok {
		line += StyleSecondary.Sprintf(" (%s)", formatDuration(time.Since(start)))
		delete(p.started, tool)
	}
	fmt.Fprintln(p.out, status.Style().Sprint(line))

	if d := strings.TrimSpace(report.Result.Details); d != "" {
		for _, l := range strings.Split(d, "\n") {
			fmt.Fprintln(p.out, StyleSecondary.Sprint("    "+l))
		}
	}
	for _, w := range report.Warnings {
		fmt.Fprint(p.out, pterm.Warning.Sprintln(fmt.Sprintf("%s: %s", stepLabel(w.Step), w.Message)))
	}
	if report.Result.RequiresShellRestart {
		fmt.Fprint(p.out, pterm.Info.Sprintln(IconShell+" Open a new shell (or source your profile) to pick up the changes"))
	}
}

// Platform muestra la plataforma y el gestor de paquetes detectados
func (p *PTermPresenter) Platform(pl domain.PlatformDescriptor, pm *domain.PackageManagerSummary) {
	p.mu.Lock()
	defer p.mu.Unlock()

	data := pterm.TableData{
		{"Property", "Value"},
		{IconPlatform + " OS family", string(pl.OSFamily)},
		{"  Platform", pl.RawPlatformName},
		{"  Architecture", pl.Architecture},
		{IconPackage + " Package manager", pmName(pm)},
	}
	p.renderTable(data)
}

// Status renderiza el estado completo del sistema
func (p *PTermPresenter) Status(status domain.SystemStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprint(p.out, pterm.DefaultSection.Sprintln("Platform"))
	fmt.Fprintf(p.out, "%s %s/%s (%s)\n", IconPlatform, status.Platform.RawPlatformName, status.Platform.Architecture, status.Platform.OSFamily)
	fmt.Fprintf(p.out, "%s %s\n", IconPackage, pmName(status.PackageManager))

	fmt.Fprint(p.out, pterm.DefaultSection.Sprintln(
		fmt.Sprintf("Tools (%d/%d installed)", status.InstalledCount(), len(status.Tools))))
	data := pterm.TableData{{"", "Tool", "Installed", "Version"}}
	for _, st := range status.Tools {
		s := InstalledStatus(st.IsInstalled)
		data = append(data, []string{
			s.Style().Sprint(s.Symbol()),
			st.DisplayName,
			yesNo(st.IsInstalled),
			orDash(st.DetectedVersion),
		})
	}
	p.renderTable(data)
}

// ToolStatus muestra el resultado de una sonda individual
func (p *PTermPresenter) ToolStatus(st domain.ToolStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if st.IsInstalled {
		fmt.Fprint(p.out, pterm.Success.Sprintln(fmt.Sprintf("%s is installed: %s", st.DisplayName, orDash(st.DetectedVersion))))
		return
	}
	fmt.Fprint(p.out, pterm.Error.Sprintln(fmt.Sprintf("%s is not installed (devenv install %s)", st.DisplayName, st.Name)))
}

// Tools lista el catálogo
func (p *PTermPresenter) Tools(tools []domain.ToolDescriptor) {
	p.mu.Lock()
	defer p.mu.Unlock()

	data := pterm.TableData{{"Name", "Display name", "Category", "Managers"}}
	for _, t := range tools {
		managers := make([]string, 0, len(t.Methods.Managers()))
		for _, id := range t.Methods.Managers() {
			managers = append(managers, string(id))
		}
		if t.EffectiveStrategy() == domain.StrategyVersionManager && t.Bootstrap != nil {
			managers = append(managers, t.Bootstrap.Manager)
		}
		data = append(data, []string{t.Name, t.Label(), string(t.Category), orDash(strings.Join(managers, ", "))})
	}
	p.renderTable(data)
}

// Readiness muestra qué herramientas faltan de un conjunto requerido
func (p *PTermPresenter) Readiness(report domain.ReadinessReport) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, name := range report.Present {
		fmt.Fprintln(p.out, StatusSuccess.Style().Sprintf("%s %s", StatusSuccess.Symbol(), name))
	}
	for _, name := range report.Missing {
		fmt.Fprintln(p.out, StatusError.Style().Sprintf("%s %s", StatusError.Symbol(), name))
	}
	if report.Ready {
		fmt.Fprint(p.out, pterm.Success.Sprintln("Environment is ready"))
		return
	}
	fmt.Fprint(p.out, pterm.Warning.Sprintln("Missing: "+strings.Join(report.Missing, ", ")))
}

// Recommendations renderiza las sugerencias como lista
func (p *PTermPresenter) Recommendations(recs []string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(recs) == 0 {
		fmt.Fprint(p.out, pterm.Success.Sprintln("Nothing to recommend, your environment looks complete"))
		return
	}
	fmt.Fprint(p.out, pterm.DefaultSection.Sprintln(IconHint+" Recommendations"))
	p.renderBullets(recs)
}

// Analysis muestra la causa probable de un fallo y cómo resolverlo
func (p *PTermPresenter) Analysis(reason string, solutions []string, docsURL string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintln(p.out, StyleWarning.Sprint("  Reason: ")+reason)
	p.renderBullets(solutions)
	if docsURL != "" {
		fmt.Fprintf(p.out, "  %s %s\n", IconDocs, pterm.Underscore.Sprint(docsURL))
	}
}

// Text muestra un bloque de texto con título (p. ej. resultados de búsqueda)
func (p *PTermPresenter) Text(title, body string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if title != "" {
		fmt.Fprint(p.out, pterm.DefaultSection.Sprintln(title))
	}
	fmt.Fprintln(p.out, strings.TrimRight(body, "\n"))
}

// Info muestra un mensaje informativo
func (p *PTermPresenter) Info(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprint(p.out, pterm.Info.Sprintln(msg))
}

// Warning muestra una advertencia
func (p *PTermPresenter) Warning(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprint(p.out, pterm.Warning.Sprintln(msg))
}

// Error muestra un error
func (p *PTermPresenter) Error(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprint(p.out, pterm.Error.Sprintln(msg))
}

// Close limpia recursos del presenter
func (p *PTermPresenter) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for tool := range p.spinners {
		p.stopSpinner(tool)
	}
}

// stopSpinner requiere p.mu.
func (p *PTermPresenter) stopSpinner(tool string) {
	if spinner, ok := p.spinners[tool]; ok {
		_ = spinner.Stop()
		delete(p.spinners, tool)
	}
}

func (p *PTermPresenter) renderTable(data pterm.TableData) {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		for _, row := range data {
			fmt.Fprintln(p.out, strings.Join(row, "\t"))
		}
		return
	}
	fmt.Fprintln(p.out, out)
}

func (p *PTermPresenter) renderBullets(lines []string) {
	items := make([]pterm.BulletListItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, pterm.BulletListItem{Level: 1, Text: l})
	}
	out, err := pterm.DefaultBulletList.WithItems(items).Srender()
	if err != nil {
		for _, l := range lines {
			fmt.Fprintln(p.out, "  - "+l)
		}
		return
	}
	fmt.Fprint(p.out, out)
}

func pmName(pm *domain.PackageManagerSummary) string {
	if pm == nil {
		return packageManagerName("", "")
	}
	return packageManagerName(string(pm.ID), pm.ProbeCommand)
}
