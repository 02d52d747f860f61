// internal/adapters/output/table.go
package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/cmwen/mcp-dev-env-setup/internal/core/domain"
)

// StatusTable imprime el estado del sistema como tabla de texto plano.
// Es el resumen textual que acompaña a las respuestas MCP.
func StatusTable(out io.Writer, status domain.SystemStatus) error {
	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)

	fmt.Fprintf(w, "Platform:\t%s (%s/%s)\n", status.Platform.OSFamily, status.Platform.RawPlatformName, status.Platform.Architecture)
	if status.PackageManager != nil {
		fmt.Fprintf(w, "Package manager:\t%s\n", status.PackageManager.ID)
	} else {
		fmt.Fprintf(w, "Package manager:\tnone detected\n")
	}
	fmt.Fprintf(w, "Installed:\t%d/%d\n\n", status.InstalledCount(), len(status.Tools))

	if err := writeToolRows(w, status.Tools); err != nil {
		return err
	}
	return w.Flush()
}

// ToolStatusTable imprime una fila por sonda.
func ToolStatusTable(out io.Writer, statuses []domain.ToolStatus) error {
	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	if err := writeToolRows(w, statuses); err != nil {
		return err
	}
	return w.Flush()
}

func writeToolRows(w io.Writer, statuses []domain.ToolStatus) error {
	if len(statuses) == 0 {
		_, err := fmt.Fprintln(w, "No tools checked.")
		return err
	}
	fmt.Fprintln(w, "TOOL\tINSTALLED\tVERSION")
	fmt.Fprintln(w, "----\t---------\t-------")
	for _, st := range statuses {
		installed := "no"
		if st.IsInstalled {
			installed = "yes"
		}
		version := st.DetectedVersion
		if version == "" {
			version = "-"
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", st.DisplayName, installed, version); err != nil {
			return fmt.Errorf("failed to write table: %w", err)
		}
	}
	return nil
}

// CatalogTable imprime las herramientas del catálogo.
func CatalogTable(out io.Writer, tools []domain.ToolDescriptor) error {
	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	if len(tools) == 0 {
		fmt.Fprintln(w, "No tools in this category.")
		return w.Flush()
	}
	fmt.Fprintln(w, "NAME\tDISPLAY NAME\tCATEGORY\tSTRATEGY")
	fmt.Fprintln(w, "----\t------------\t--------\t--------")
	for _, t := range tools {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.Name, t.Label(), t.Category, t.EffectiveStrategy())
	}
	return w.Flush()
}

// ResultText resume un resultado de instalación en unas pocas líneas.
func ResultText(report domain.InstallReport) string {
	var b strings.Builder
	if report.Result.Succeeded {
		b.WriteString("✓ ")
	} else {
		b.WriteString("✗ ")
	}
	b.WriteString(report.Result.Message)
	if d := strings.TrimSpace(report.Result.Details); d != "" {
		b.WriteString("\n")
		b.WriteString(d)
	}
	for _, w := range report.Warnings {
		fmt.Fprintf(&b, "\n⚠ %s: %s", w.Step, w.Message)
	}
	if report.Result.RequiresShellRestart {
		b.WriteString("\nRestart your shell (or source your profile) to use the new tool.")
	}
	return b.String()
}
