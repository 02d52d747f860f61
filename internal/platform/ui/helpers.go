// internal/platform/ui/helpers.go
package ui

import (
	"fmt"
	"strings"
	"time"
)

// formatDuration formatea una duración de manera legible
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	} else if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	} else {
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}
}

// yesNo convierte booleano a string visual
func yesNo(b bool) string {
	if b {
		return StyleSuccess.Sprint("yes")
	}
	return StyleSecondary.Sprint("no")
}

// orDash sustituye los valores vacíos en las tablas.
func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// stepLabel convierte un paso del orquestador en texto legible.
func stepLabel(step string) string {
	return strings.ReplaceAll(step, "_", " ")
}

// packageManagerName describe el gestor detectado o su ausencia.
func packageManagerName(id, probe string) string {
	if id == "" {
		return "none detected"
	}
	if probe == "" || probe == id {
		return id
	}
	return fmt.Sprintf("%s (%s)", id, probe)
}
