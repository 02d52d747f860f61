// internal/core/usecases/failure_analysis.go
package usecases

import (
	"fmt"
	"strings"

	"github.com/cmwen/mcp-dev-env-setup/internal/core/domain"
)

// FailureAnalysis explains a failed install and suggests fixes.
type FailureAnalysis struct {
	Tool      string   `json:"tool"`
	Reason    string   `json:"reason"`
	Solutions []string `json:"solutions"`
	DocsURL   string   `json:"docs_url,omitempty"`
}

// String formats the analysis for display.
func (fa FailureAnalysis) String() string {
	var b strings.Builder

	if fa.Reason != "" {
		b.WriteString(fmt.Sprintf("    REASON: %s\n", fa.Reason))
	}

	if len(fa.Solutions) > 0 {
		b.WriteString("\n    SOLUTIONS:\n")
		for i, solution := range fa.Solutions {
			b.WriteString(fmt.Sprintf("    %d) %s\n", i+1, solution))
		}
	}

	if fa.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n    For more help: %s\n", fa.DocsURL))
	}

	return b.String()
}

// AnalyzeFailure classifies the message and details of a failed result.
// Successful results have nothing to analyse and return false.
func AnalyzeFailure(tool domain.ToolDescriptor, result domain.InstallationResult) (FailureAnalysis, bool) {
	if result.Succeeded {
		return FailureAnalysis{}, false
	}

	name := tool.Name
	fa := FailureAnalysis{Tool: name, DocsURL: tool.ManualInstallURL}
	message := strings.ToLower(result.Message)
	text := message + "\n" + strings.ToLower(result.Details)

	switch {
	case strings.Contains(message, "prerequisite"):
		fa.Reason = "A tool this one depends on could not be installed"
		fa.Solutions = []string{
			"Install the prerequisite on its own to see its error",
		}
		if pre := prerequisiteName(result.Message); pre != "" {
			fa.Solutions[0] = "Install the prerequisite on its own to see its error: devenv install " + pre
		}

	case strings.Contains(text, "unknown tool"):
		fa.Reason = "The tool is not in the catalog"
		fa.Solutions = []string{
			"List the available tools: devenv list",
			"Add it to a user catalog file and pass it with --catalog",
		}

	case strings.Contains(text, "no package manager") || strings.Contains(text, "no supported package manager"):
		fa.Reason = "No package manager is available to install tools"
		fa.Solutions = []string{
			"On macOS install Homebrew first: devenv install-pm",
			"On Linux make sure your distribution's package manager is on PATH",
		}

	case strings.Contains(text, "environment unsupported"):
		fa.Reason = "This platform has no automatic install strategy"
		fa.Solutions = []string{
			"Install the tool manually",
		}

	case strings.Contains(text, "not on path"):
		fa.Reason = "The install finished but the command is not visible in this shell"
		fa.Solutions = []string{
			"Open a new terminal, or reload your profile: source ~/.zshrc (or ~/.bashrc)",
			"Check your PATH: echo $PATH",
			fmt.Sprintf("Check the tool status: devenv check %s", name),
		}

	case strings.Contains(text, "could not get lock") || strings.Contains(text, "dpkg was interrupted") ||
		strings.Contains(text, "lock held"):
		fa.Reason = "Another process holds the package manager lock"
		fa.Solutions = []string{
			"Wait for the other install or update to finish and retry",
			"If dpkg was interrupted, repair it: sudo dpkg --configure -a",
		}

	case strings.Contains(text, "permission denied") || strings.Contains(text, "are you root") ||
		strings.Contains(text, "a password is required") || strings.Contains(text, "sudo:"):
		fa.Reason = "Insufficient permissions to install system packages"
		fa.Solutions = []string{
			"Make sure your user can run sudo",
			"Run the install from an interactive terminal so sudo can prompt for a password",
		}

	case strings.Contains(text, "timed out") || strings.Contains(text, "timeout") ||
		strings.Contains(text, "deadline exceeded"):
		fa.Reason = "The install command did not finish in time - slow or unstable connection"
		fa.Solutions = []string{
			"Check your internet connection and retry",
			"Raise the install timeout: DEVENV_INSTALL_TIMEOUT=20m",
		}

	case strings.Contains(text, "could not resolve") || strings.Contains(text, "no such host") ||
		strings.Contains(text, "temporary failure in name resolution"):
		fa.Reason = "DNS resolution failed - cannot reach the package mirrors"
		fa.Solutions = []string{
			"Check your internet connection",
			"Verify proxy settings if behind a corporate proxy",
			"Try again in a few moments (temporary network issue)",
		}

	case strings.Contains(text, "connection refused") || strings.Contains(text, "connection reset") ||
		strings.Contains(text, "failed to fetch"):
		fa.Reason = "Network connection was refused or reset"
		fa.Solutions = []string{
			"Check if a firewall is blocking outbound connections",
			"Refresh the package index and retry (sudo apt-get update, brew update)",
		}

	case strings.Contains(text, "unable to locate package") || strings.Contains(text, "no match for argument") ||
		strings.Contains(text, "no available formula") || strings.Contains(text, "target not found") ||
		strings.Contains(text, "no install method"):
		fa.Reason = "The package is not available for this package manager"
		fa.Solutions = []string{
			"Refresh the package index and retry",
			"Check the package name for your distribution",
			"Install manually if the issue persists",
		}

	case strings.Contains(text, "no space left"):
		fa.Reason = "Insufficient disk space"
		fa.Solutions = []string{
			"Free up disk space and try again",
			"Check available space: df -h",
		}

	default:
		fa.Reason = "An unexpected error occurred during installation"
		fa.Solutions = []string{
			"Try running with verbose mode: devenv --verbose install " + name,
			"Install manually if the issue persists",
		}
	}

	return fa, true
}

// prerequisiteName extracts Y from "... prerequisite Y failed".
func prerequisiteName(message string) string {
	_, rest, ok := strings.Cut(message, "prerequisite ")
	if !ok {
		return ""
	}
	name, _, ok := strings.Cut(rest, " failed")
	if !ok {
		return ""
	}
	return strings.TrimSpace(name)
}
