// cmd/devenv-mcp/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"

	"github.com/cmwen/mcp-dev-env-setup/internal/adapters/mcpserver"
	"github.com/cmwen/mcp-dev-env-setup/internal/app"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/config"
)

var (
	// Rellenables con -ldflags en build
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// 1. Config: same file, env and flags as the CLI. stdout belongs to the
	// MCP transport, so everything else goes to stderr.
	flags := pflag.NewFlagSet("devenv-mcp", pflag.ContinueOnError)
	flags.SetOutput(os.Stderr)
	config.BindFlags(flags)
	showVersion := flags.Bool("version", false, "Print version and exit")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: devenv-mcp [flags]\n\nServes the devenv tools over MCP on stdin/stdout.\n\n")
		flags.PrintDefaults()
		fmt.Fprint(os.Stderr, config.EnvHelp)
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}
	if *showVersion {
		fmt.Fprint(os.Stderr, config.VersionString("devenv-mcp", version, commit, date))
		os.Exit(0)
	}

	fsys := afero.NewOsFs()
	cfg, err := config.Load(fsys, flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: configuration load failed: %v\n", err)
		os.Exit(2)
	}

	// 2. Shared logger (stderr)
	logger := app.NewLogger(cfg)
	logger.Info("devenv-mcp starting", "version", version, "commit", commit)

	// 3. Service
	a, err := app.New(app.Options{Config: cfg, Fs: fsys, Logger: logger})
	if err != nil {
		logger.Err(err, "phase", "assemble")
		os.Exit(2)
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("failed to close observers", "error", err.Error())
		}
	}()

	// 4. Context and signals for clean shutdown
	ctx, cancel := app.RootContextWithSignals(0)
	defer cancel()

	// 5. Serve until the client disconnects
	server := mcpserver.NewServer(mcpserver.Options{Service: a.Service, Version: version, Logger: logger})
	if err := mcpserver.Run(ctx, server); err != nil && ctx.Err() == nil {
		logger.Err(err, "phase", "serve")
		cancel()
		os.Exit(1)
	}
	logger.Info("devenv-mcp stopped")
}
