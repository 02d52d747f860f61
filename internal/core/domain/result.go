// internal/core/domain/result.go
package domain

// InstallationResult is the uniform outcome of every install operation.
// Succeeded and Message are always set.
type InstallationResult struct {
	Succeeded            bool   `json:"succeeded"`
	Message              string `json:"message"`
	Details              string `json:"details,omitempty"`
	RequiresShellRestart bool   `json:"requires_shell_restart"`
}

// Success construye un resultado exitoso.
func Success(message, details string) InstallationResult {
	return InstallationResult{Succeeded: true, Message: message, Details: details}
}

// Failure construye un resultado fallido.
func Failure(message, details string) InstallationResult {
	return InstallationResult{Succeeded: false, Message: message, Details: details}
}

// Warning records a best-effort step that failed without failing the install.
type Warning struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

// InstallReport pairs a result with the warnings absorbed while producing it.
type InstallReport struct {
	Result   InstallationResult `json:"result"`
	Warnings []Warning          `json:"warnings,omitempty"`
}

// ToolStatus is derived fresh on every validation call.
type ToolStatus struct {
	Name            string `json:"name"`
	DisplayName     string `json:"display_name"`
	IsInstalled     bool   `json:"is_installed"`
	DetectedVersion string `json:"detected_version,omitempty"`
}

// SystemStatus aggregates platform, package manager and tool statuses.
// A nil PackageManager means none was detected.
type SystemStatus struct {
	Platform       PlatformDescriptor     `json:"platform"`
	PackageManager *PackageManagerSummary `json:"package_manager"`
	Tools          []ToolStatus           `json:"tools"`
}

// Status looks up a tool status by canonical name.
func (s SystemStatus) Status(name string) (ToolStatus, bool) {
	for _, st := range s.Tools {
		if st.Name == name {
			return st, true
		}
	}
	return ToolStatus{}, false
}

// InstalledCount cuenta las herramientas instaladas.
func (s SystemStatus) InstalledCount() int {
	n := 0
	for _, st := range s.Tools {
		if st.IsInstalled {
			n++
		}
	}
	return n
}

// ReadinessReport partitions a required set by installed status.
type ReadinessReport struct {
	Ready   bool     `json:"ready"`
	Missing []string `json:"missing"`
	Present []string `json:"present"`
}
