// internal/cli/commands.go
package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cmwen/mcp-dev-env-setup/internal/adapters/output"
	"github.com/cmwen/mcp-dev-env-setup/internal/core/domain"
)

func newPlatformCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "platform",
		Short: "Show the detected platform and package manager",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd, deps)
			if err != nil {
				return err
			}
			defer s.close()

			view := platformView{Platform: s.app.Service.DetectPlatform()}
			if pm, ok := s.app.Service.DetectPackageManager(s.ctx); ok {
				view.PackageManager = pm.Summary()
			}
			return s.emit(view, func() {
				s.presenter.Platform(view.Platform, view.PackageManager)
			})
		},
	}
}

func newStatusCmd(deps *Deps) *cobra.Command {
	var saveDir string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show platform, package manager and every catalog tool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd, deps)
			if err != nil {
				return err
			}
			defer s.close()

			status := s.app.Service.SystemStatus(s.ctx)
			view := statusView{SystemStatus: status, Recommendations: s.app.Service.Recommendations(status)}

			if saveDir != "" {
				host, _ := os.Hostname()
				path, err := output.SaveSnapshot(deps.Fs, saveDir, output.Snapshot{
					Host:            host,
					TakenAt:         time.Now(),
					Status:          status,
					Recommendations: view.Recommendations,
				})
				if err != nil {
					return err
				}
				view.SavedTo = path
			}

			return s.emit(view, func() {
				s.presenter.Header("Development environment status")
				s.presenter.Status(status)
				s.presenter.Recommendations(view.Recommendations)
				if view.SavedTo != "" {
					s.presenter.Info("Snapshot saved to " + view.SavedTo)
				}
			})
		},
	}
	cmd.Flags().StringVar(&saveDir, "save", "", "Also write a JSON snapshot of the status into this directory")
	return cmd
}

func newListCmd(deps *Deps) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tools the catalog can install",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd, deps)
			if err != nil {
				return err
			}
			defer s.close()

			tools, err := s.app.Service.ListTools(category)
			if err != nil {
				return err
			}
			return s.emit(tools, func() {
				s.presenter.Tools(tools)
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Only list one category (language, runtime, sdk, packageManager, versionManager, utility)")
	return cmd
}

func newCheckCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "check [tool...]",
		Short: "Check whether tools are installed (all catalog tools when none given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(cmd, deps)
			if err != nil {
				return err
			}
			defer s.close()

			var statuses []domain.ToolStatus
			if len(args) == 0 {
				statuses = s.app.Service.CheckAllTools(s.ctx)
			} else {
				for _, name := range uniqueNames(args) {
					statuses = append(statuses, s.app.Service.CheckTool(s.ctx, name))
				}
			}
			return s.emit(statuses, func() {
				for _, st := range statuses {
					s.presenter.ToolStatus(st)
				}
			})
		},
	}
}

func newReadyCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "ready <tool>...",
		Short: "Exit 0 when every named tool is installed, 1 otherwise",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(cmd, deps)
			if err != nil {
				return err
			}
			defer s.close()

			report := s.app.Service.IsReady(s.ctx, args)
			if err := s.emit(report, func() { s.presenter.Readiness(report) }); err != nil {
				return err
			}
			if !report.Ready {
				return exitError{code: 1}
			}
			return nil
		},
	}
}

func newRecommendCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "recommend",
		Short: "Suggest what to install next",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd, deps)
			if err != nil {
				return err
			}
			defer s.close()

			recs := s.app.Service.Recommendations(s.app.Service.SystemStatus(s.ctx))
			return s.emit(recs, func() {
				s.presenter.Recommendations(recs)
			})
		},
	}
}

func newSearchCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Search the detected package manager for packages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(cmd, deps)
			if err != nil {
				return err
			}
			defer s.close()

			outcome, err := s.app.Service.SearchPackages(s.ctx, args[0])
			if err != nil {
				return err
			}
			return s.emit(outcome, func() {
				s.presenter.Text("Results for "+args[0], outcome.Stdout)
			})
		},
	}
}

func newConfigCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd, deps)
			if err != nil {
				return err
			}
			defer s.close()

			text, err := s.cfg.ToJSON()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write([]byte(text + "\n"))
			return err
		},
	}
}
