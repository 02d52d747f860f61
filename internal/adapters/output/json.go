// internal/adapters/output/json.go
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/cmwen/mcp-dev-env-setup/internal/core/domain"
)

// WriteJSON codifica v en w. Todos los comandos con --json pasan por aquí.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// Snapshot es el documento que guarda `devenv status --save`.
type Snapshot struct {
	Host            string              `json:"host,omitempty"`
	TakenAt         time.Time           `json:"taken_at"`
	Status          domain.SystemStatus `json:"status"`
	InstalledCount  int                 `json:"installed_count"`
	Recommendations []string            `json:"recommendations"`
}

// sanitizeName convierte un nombre de host en un fragmento de fichero válido.
// Ejemplo: "dev.local" -> "dev_local"
func sanitizeName(name string) string {
	sanitized := strings.ReplaceAll(name, ".", "_")
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			return r
		}
		return '_'
	}, sanitized)
}

// SnapshotFilename genera devenv_status_{host}_{timestamp}.json.
func SnapshotFilename(host string, at time.Time) string {
	if host == "" {
		return fmt.Sprintf("devenv_status_%s.json", at.Format("20060102_150405"))
	}
	return fmt.Sprintf("devenv_status_%s_%s.json", sanitizeName(host), at.Format("20060102_150405"))
}

// SaveSnapshot escribe el snapshot indentado en dir y devuelve la ruta.
func SaveSnapshot(fsys afero.Fs, dir string, snap Snapshot) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	if snap.Recommendations == nil {
		snap.Recommendations = []string{}
	}
	snap.InstalledCount = snap.Status.InstalledCount()

	path := filepath.Join(dir, SnapshotFilename(snap.Host, snap.TakenAt))
	f, err := fsys.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := WriteJSON(f, snap, true); err != nil {
		return "", err
	}
	return path, nil
}
