// internal/platform/ui/raw_presenter.go
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cmwen/mcp-dev-env-setup/internal/core/domain"
	"github.com/cmwen/mcp-dev-env-setup/internal/core/ports"
)

// LogFormat define el formato de salida para el modo raw
type LogFormat string

const (
	LogFormatText LogFormat = "text" // Formato logfmt (default)
	LogFormatJSON LogFormat = "json" // Formato JSON estructurado
)

// RawPresenter implementa el Presenter para modo raw (una línea por evento,
// sin formato visual). Útil para CI y para redirigir a ficheros.
type RawPresenter struct {
	mu           sync.Mutex
	out          io.Writer
	format       LogFormat
	showProgress bool
	now          func() time.Time
}

// NewRawPresenter crea un nuevo RawPresenter. Un writer nil escribe en stdout.
func NewRawPresenter(w io.Writer, format LogFormat) *RawPresenter {
	if w == nil {
		w = os.Stdout
	}
	return &RawPresenter{
		out:          w,
		format:       format,
		showProgress: true,
		now:          time.Now,
	}
}

// WithoutProgress suprime los pasos intermedios (modo quiet).
func (r *RawPresenter) WithoutProgress() *RawPresenter {
	r.showProgress = false
	return r
}

// log escribe un log en el formato configurado
func (r *RawPresenter) log(level, message string, fields map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	timestamp := r.now().UTC().Format(time.RFC3339)

	if r.format == LogFormatJSON {
		r.logJSON(timestamp, level, message, fields)
	} else {
		r.logText(timestamp, level, message, fields)
	}
}

// logText escribe en formato logfmt: timestamp LEVEL message key=value key2=value2
func (r *RawPresenter) logText(timestamp, level, message string, fields map[string]interface{}) {
	var parts []string
	parts = append(parts, timestamp)
	parts = append(parts, fmt.Sprintf("%-5s", level))
	parts = append(parts, message)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, r.formatValue(fields[k])))
	}

	fmt.Fprintln(r.out, strings.Join(parts, " "))
}

// logJSON escribe en formato JSON estructurado
func (r *RawPresenter) logJSON(timestamp, level, message string, fields map[string]interface{}) {
	logEntry := map[string]interface{}{
		"timestamp": timestamp,
		"level":     level,
		"message":   message,
	}

	if len(fields) > 0 {
		logEntry["data"] = fields
	}

	jsonBytes, _ := json.Marshal(logEntry)
	fmt.Fprintln(r.out, string(jsonBytes))
}

// formatValue formatea valores para logfmt (entrecomilla strings con espacios)
func (r *RawPresenter) formatValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		if val == "" || strings.ContainsAny(val, " \n\t\"=") {
			return fmt.Sprintf("%q", val)
		}
		return val
	case []string:
		return r.formatValue(strings.Join(val, ","))
	case time.Duration:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Header no produce salida en modo raw
func (r *RawPresenter) Header(title string) {}

// Progress registra un paso del orquestador
func (r *RawPresenter) Progress(tool string, step ports.InstallStep, message string) {
	if !r.showProgress {
		return
	}
	r.log("INFO", "install_step", map[string]interface{}{
		"tool": tool,
		"step": string(step),
		"msg":  message,
	})
}

// InstallResult registra el resultado de una instalación
func (r *RawPresenter) InstallResult(tool string, report domain.InstallReport) {
	level := "INFO"
	if !report.Result.Succeeded {
		level = "ERROR"
	}
	fields := map[string]interface{}{
		"tool":          tool,
		"status":        ReportStatus(report).String(),
		"msg":           report.Result.Message,
		"restart_shell": report.Result.RequiresShellRestart,
		"warnings":      len(report.Warnings),
	}
	if report.Result.Details != "" {
		fields["details"] = report.Result.Details
	}
	r.log(level, "install_completed", fields)

	for _, w := range report.Warnings {
		r.log("WARN", "install_warning", map[string]interface{}{
			"tool": tool,
			"step": w.Step,
			"msg":  w.Message,
		})
	}
}

// Platform registra la plataforma detectada
func (r *RawPresenter) Platform(p domain.PlatformDescriptor, pm *domain.PackageManagerSummary) {
	r.log("INFO", "platform", map[string]interface{}{
		"os_family":       string(p.OSFamily),
		"platform":        p.RawPlatformName,
		"arch":            p.Architecture,
		"package_manager": pmName(pm),
	})
}

// Status registra una línea por herramienta
func (r *RawPresenter) Status(status domain.SystemStatus) {
	r.Platform(status.Platform, status.PackageManager)
	for _, st := range status.Tools {
		r.ToolStatus(st)
	}
	r.log("INFO", "status_summary", map[string]interface{}{
		"installed": status.InstalledCount(),
		"total":     len(status.Tools),
	})
}

// ToolStatus registra el resultado de una sonda
func (r *RawPresenter) ToolStatus(st domain.ToolStatus) {
	r.log("INFO", "tool_status", map[string]interface{}{
		"tool":      st.Name,
		"installed": st.IsInstalled,
		"version":   st.DetectedVersion,
	})
}

// Tools registra el catálogo
func (r *RawPresenter) Tools(tools []domain.ToolDescriptor) {
	for _, t := range tools {
		r.log("INFO", "tool", map[string]interface{}{
			"name":     t.Name,
			"display":  t.Label(),
			"category": string(t.Category),
		})
	}
}

// Readiness registra el informe de disponibilidad
func (r *RawPresenter) Readiness(report domain.ReadinessReport) {
	level := "INFO"
	if !report.Ready {
		level = "WARN"
	}
	r.log(level, "readiness", map[string]interface{}{
		"ready":   report.Ready,
		"missing": report.Missing,
		"present": report.Present,
	})
}

// Recommendations registra una línea por sugerencia
func (r *RawPresenter) Recommendations(recs []string) {
	for _, rec := range recs {
		r.log("INFO", "recommendation", map[string]interface{}{"msg": rec})
	}
}

// Analysis registra el diagnóstico de un fallo
func (r *RawPresenter) Analysis(reason string, solutions []string, docsURL string) {
	r.log("INFO", "failure_analysis", map[string]interface{}{
		"reason":    reason,
		"solutions": strings.Join(solutions, "; "),
		"docs":      docsURL,
	})
}

// Text escribe el cuerpo tal cual
func (r *RawPresenter) Text(title, body string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintln(r.out, strings.TrimRight(body, "\n"))
}

// Info muestra un mensaje informativo
func (r *RawPresenter) Info(msg string) {
	r.log("INFO", msg, nil)
}

// Warning muestra una advertencia
func (r *RawPresenter) Warning(msg string) {
	r.log("WARN", msg, nil)
}

// Error muestra un error
func (r *RawPresenter) Error(msg string) {
	r.log("ERROR", msg, nil)
}

// Close no tiene recursos que liberar
func (r *RawPresenter) Close() {}
