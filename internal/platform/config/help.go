// internal/platform/config/help.go
package config

import (
	"fmt"
	"runtime"
)

// EnvHelp is appended to the CLI help.
const EnvHelp = `
CONFIG FILE:
  $XDG_CONFIG_HOME/devenv/config.yaml (or --config / DEVENV_CONFIG)

    catalog_file: ~/.config/devenv/tools.yaml
    profile_path: ~/.zshrc
    probe_workers: 8
    timeouts:
      probe: 10s
      command: 60s
      install: 10m
    log_level: warn
    ui: pretty

ENVIRONMENT VARIABLES:
  DEVENV_CONFIG=/path               Config file
  DEVENV_CATALOG_FILE=/path         Extra tool catalog
  DEVENV_PROFILE_PATH=~/.zshrc      Shell profile to configure
  DEVENV_SHELL=zsh                  Shell used to pick the profile
  DEVENV_PROBE_WORKERS=8            Concurrent probes
  DEVENV_PROBE_TIMEOUT=10s          Existence/version probe timeout
  DEVENV_COMMAND_TIMEOUT=60s        Post-install step timeout
  DEVENV_INSTALL_TIMEOUT=10m        Install command timeout
  DEVENV_LOG_LEVEL=debug            Log level
  DEVENV_EVENT_LOG=/path            JSON lines event log
  DEVENV_UI=raw                     Terminal output: pretty, raw, quiet
  DEVENV_JSON=true                  JSON output
  DEVENV_QUIET=true                 Quiet mode

  Note: CLI flags override environment variables, which override the config file.
`

// VersionString formatea la información de versión.
func VersionString(name, version, commit, date string) string {
	return fmt.Sprintf("%s %s\n  Commit:  %s\n  Built:   %s\n  Go:      %s\n",
		name, version, commit, date, getGoVersion())
}

func getGoVersion() string {
	return runtime.Version()
}
