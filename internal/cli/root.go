// internal/cli/root.go
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/cmwen/mcp-dev-env-setup/internal/app"
	"github.com/cmwen/mcp-dev-env-setup/internal/core/ports"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/config"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/errors"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/logx"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/probe"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/ui"
)

// Deps permite sustituir el sistema de ficheros, el entorno y el runner en
// tests. Los campos nil usan el sistema real.
type Deps struct {
	Fs     afero.Fs
	Env    *probe.Environment
	Runner ports.CommandRunner
	Logger logx.Logger

	Version string
	Commit  string
	Date    string
}

// exitError transporta un código de salida sin mensaje propio.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// Execute ejecuta la CLI y devuelve el código de salida del proceso.
func Execute(deps Deps) int {
	if color.NoColor {
		pterm.DisableStyling()
	}

	cmd := NewRootCmd(deps)
	if err := cmd.Execute(); err != nil {
		var ee exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var ce *errors.CommandError
		if errors.As(err, &ce) && ce.Stderr != "" {
			fmt.Fprintln(os.Stderr, ce.Stderr)
		}
		if errors.Kind(err) == "command_failed" {
			return 1
		}
		return 2
	}
	return 0
}

// NewRootCmd construye el árbol de comandos.
func NewRootCmd(deps Deps) *cobra.Command {
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	if deps.Version == "" {
		deps.Version = "dev"
	}

	cmd := &cobra.Command{
		Use:           "devenv",
		Short:         "Detect, install and configure development tools",
		Long:          "devenv detects the host platform and package manager, installs development tools\nfrom a declarative catalog and configures the shell profile for them.",
		Version:       deps.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate(config.VersionString("devenv", deps.Version, deps.Commit, deps.Date))
	cmd.SetUsageTemplate(cmd.UsageTemplate() + config.EnvHelp)

	config.BindFlags(cmd.PersistentFlags())

	cmd.AddCommand(newPlatformCmd(&deps))
	cmd.AddCommand(newStatusCmd(&deps))
	cmd.AddCommand(newListCmd(&deps))
	cmd.AddCommand(newCheckCmd(&deps))
	cmd.AddCommand(newInstallCmd(&deps))
	cmd.AddCommand(newInstallPMCmd(&deps))
	cmd.AddCommand(newReadyCmd(&deps))
	cmd.AddCommand(newRecommendCmd(&deps))
	cmd.AddCommand(newSearchCmd(&deps))
	cmd.AddCommand(newConfigCmd(&deps))

	return cmd
}

// session agrupa lo que necesita cada comando: config, presenter y app.
type session struct {
	cfg       config.Config
	app       *app.App
	presenter ui.Presenter
	out       io.Writer
	ctx       context.Context
	cancel    context.CancelFunc
}

// open carga la configuración desde los flags del comando y ensambla el
// servicio. El llamador debe invocar close.
func open(cmd *cobra.Command, deps *Deps) (*session, error) {
	cfg, err := config.Load(deps.Fs, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger := deps.Logger
	if logger == nil {
		logger = app.NewLogger(cfg)
	}

	out := cmd.OutOrStdout()
	var presenter ui.Presenter
	if cfg.JSON {
		presenter = ui.NewNoopPresenter()
	} else {
		presenter = ui.New(ui.ParseUIMode(cfg.UI), out)
	}

	a, err := app.New(app.Options{
		Config:   cfg,
		Fs:       deps.Fs,
		Env:      deps.Env,
		Runner:   deps.Runner,
		Logger:   logger,
		Progress: presenter.Progress,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := app.RootContextWithSignals(0)
	if parent := cmd.Context(); parent != nil {
		ctx, cancel = chainCancel(parent, ctx, cancel)
	}

	return &session{
		cfg:       cfg,
		app:       a,
		presenter: presenter,
		out:       out,
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// chainCancel cancela child cuando parent termina.
func chainCancel(parent, child context.Context, cancel context.CancelFunc) (context.Context, context.CancelFunc) {
	stop := context.AfterFunc(parent, cancel)
	return child, func() {
		stop()
		cancel()
	}
}

func (s *session) close() {
	s.presenter.Close()
	if err := s.app.Close(); err != nil {
		s.app.Logger.Warn("failed to close observers", "error", err.Error())
	}
	s.cancel()
}

// emit escribe v como JSON cuando --json está activo; si no, llama a render.
func (s *session) emit(v any, render func()) error {
	if s.cfg.JSON {
		return writeJSON(s.out, v)
	}
	render()
	return nil
}
