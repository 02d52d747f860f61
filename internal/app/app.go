// internal/app/app.go
package app

import (
	"github.com/spf13/afero"

	"github.com/cmwen/mcp-dev-env-setup/internal/adapters/output"
	"github.com/cmwen/mcp-dev-env-setup/internal/catalog"
	"github.com/cmwen/mcp-dev-env-setup/internal/core"
	"github.com/cmwen/mcp-dev-env-setup/internal/core/ports"
	"github.com/cmwen/mcp-dev-env-setup/internal/core/usecases"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/config"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/errors"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/logx"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/pkgmgr"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/probe"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/shell"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/shellprofile"
)

// Options configura el ensamblado. Los campos nil toman la implementación
// real del sistema operativo.
type Options struct {
	Config config.Config
	Fs     afero.Fs
	Env    *probe.Environment
	Runner ports.CommandRunner
	Logger logx.Logger

	// Progress se pasa al orquestador (spinners de la CLI).
	Progress ports.ProgressFunc

	// Observers extra además del event log configurado.
	Observers []ports.Notifier
}

// App agrupa el servicio ensamblado y los recursos que hay que cerrar.
type App struct {
	Service *core.Service
	Config  config.Config
	Logger  logx.Logger

	observers []ports.Notifier
}

// New ensambla runner, probe, registry, catálogo, configurador de perfil y
// observers a partir de la configuración cargada.
func New(opts Options) (*App, error) {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Logger == nil {
		opts.Logger = logx.NewNop()
	}
	cfg := opts.Config

	env := probe.EnvironmentFromOS()
	if opts.Env != nil {
		env = *opts.Env
	}
	if cfg.Shell != "" {
		env.Shell = cfg.Shell
	}

	runner := opts.Runner
	if runner == nil {
		runner = shell.NewRunner(shell.RunnerOptions{
			DefaultTimeout: cfg.Timeouts.Command,
			Logger:         opts.Logger,
		})
	}

	cat, err := catalog.Load(opts.Fs, cfg.CatalogFile)
	if err != nil {
		return nil, errors.Wrap(err, "load catalog")
	}

	p := probe.New(probe.Options{
		Runner:      runner,
		Env:         env,
		Timeout:     cfg.Timeouts.Probe,
		ProfilePath: cfg.ProfilePath,
		Logger:      opts.Logger,
	})

	observers := append([]ports.Notifier(nil), opts.Observers...)
	if cfg.EventLog != "" {
		eventLog, err := output.NewEventLog(opts.Fs, cfg.EventLog, opts.Logger)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "event log %s: %v", cfg.EventLog, err)
		}
		observers = append(observers, eventLog)
	}

	svc := core.NewService(core.ServiceOptions{
		Catalog:      cat,
		Probe:        p,
		Registry:     pkgmgr.NewRegistry(p, opts.Logger),
		Configurator: shellprofile.NewConfigurator(opts.Fs, p.ShellProfilePath, opts.Logger),
		Runner:       runner,
		Observers:    observers,
		Progress:     opts.Progress,
		Logger:       opts.Logger,
		Timeouts: usecases.Timeouts{
			Probe:   cfg.Timeouts.Probe,
			Command: cfg.Timeouts.Command,
			Install: cfg.Timeouts.Install,
		},
		ProbeWorkers: cfg.ProbeWorkers,
	})

	opts.Logger.Debug("service assembled",
		"tools", cat.Len(),
		"platform", env.GOOS,
		"profile", p.ShellProfilePath(),
		"observers", len(observers),
	)

	return &App{
		Service:   svc,
		Config:    cfg,
		Logger:    opts.Logger,
		observers: observers,
	}, nil
}

// Close cierra los observers (event log).
func (a *App) Close() error {
	var errs []error
	for _, o := range a.observers {
		if err := o.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewLogger construye el logger de stderr con el nivel de la configuración.
func NewLogger(cfg config.Config) logx.Logger {
	return logx.NewWithLevel(logx.ParseLevel(cfg.LogLevel))
}
