// internal/core/domain/platform.go
package domain

import "strings"

// CommandOutcome is the captured result of one shell invocation.
// An empty FailureReason means the command succeeded.
type CommandOutcome struct {
	Stdout        string `json:"stdout"`
	Stderr        string `json:"stderr"`
	Succeeded     bool   `json:"succeeded"`
	FailureReason string `json:"failure_reason,omitempty"`
	TimedOut      bool   `json:"timed_out,omitempty"`
}

// CombinedOutput joins stdout and stderr, trimmed, for use as result details.
func (o CommandOutcome) CombinedOutput() string {
	out := strings.TrimSpace(o.Stdout)
	errOut := strings.TrimSpace(o.Stderr)
	switch {
	case out == "":
		return errOut
	case errOut == "":
		return out
	default:
		return out + "\n" + errOut
	}
}

// FailureDetail describes why the command failed: the failure reason followed
// by whatever the command printed.
func (o CommandOutcome) FailureDetail() string {
	output := o.CombinedOutput()
	if o.FailureReason == "" {
		return output
	}
	if output == "" {
		return o.FailureReason
	}
	return o.FailureReason + "\n" + output
}

// PlatformDescriptor is computed once per process from the environment.
type PlatformDescriptor struct {
	OSFamily        OSFamily `json:"os_family"`
	RawPlatformName string   `json:"raw_platform_name"`
	Architecture    string   `json:"architecture"`
}

// PackageManagerDescriptor holds the invocation templates of one manager.
// IsAvailable is only set after a successful existence probe.
type PackageManagerDescriptor struct {
	ID                   PackageManagerID `json:"id"`
	ProbeCommand         string           `json:"probe_command"`
	InstallCommandPrefix string           `json:"install_command_prefix"`
	UpdateCommandPrefix  string           `json:"update_command_prefix"`
	SearchCommandPrefix  string           `json:"search_command_prefix"`
	IsAvailable          bool             `json:"is_available"`
}

// InstallCommand builds the full install command for a package specifier.
func (d PackageManagerDescriptor) InstallCommand(specifier string) string {
	return d.InstallCommandPrefix + specifier
}

// SearchCommand builds the package search command for a term.
func (d PackageManagerDescriptor) SearchCommand(term string) string {
	return d.SearchCommandPrefix + term
}

// PackageManagerSummary is the short form reported in SystemStatus.
type PackageManagerSummary struct {
	ID           PackageManagerID `json:"id"`
	ProbeCommand string           `json:"probe_command"`
}

// Summary reduce el descriptor a su forma corta.
func (d PackageManagerDescriptor) Summary() *PackageManagerSummary {
	return &PackageManagerSummary{ID: d.ID, ProbeCommand: d.ProbeCommand}
}
