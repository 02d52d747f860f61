// internal/cli/install.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmwen/mcp-dev-env-setup/internal/core/domain"
	"github.com/cmwen/mcp-dev-env-setup/internal/core/usecases"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/errors"
)

func newInstallCmd(deps *Deps) *cobra.Command {
	var version string

	cmd := &cobra.Command{
		Use:   "install <tool>...",
		Short: "Install one or more tools (exit 1 if any install fails)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := uniqueNames(args)
			if version != "" && len(names) > 1 {
				return errors.Wrap(errors.ErrInvalidInput, "--version applies to a single tool")
			}

			s, err := open(cmd, deps)
			if err != nil {
				return err
			}
			defer s.close()

			if len(names) > 1 {
				s.presenter.Header(fmt.Sprintf("Installing %d tools", len(names)))
			}

			views := make([]installView, 0, len(names))
			failed := 0
			for _, name := range names {
				if s.ctx.Err() != nil {
					break
				}
				report := s.app.Service.InstallToolReport(s.ctx, name, usecases.InstallOptions{Version: version})
				views = append(views, s.present(name, report))
				if !report.Result.Succeeded {
					failed++
				}
			}

			if err := s.emit(views, func() {
				if len(names) > 1 {
					s.presenter.Info(fmt.Sprintf("%d installed, %d failed", len(views)-failed, failed))
				}
			}); err != nil {
				return err
			}
			if failed > 0 {
				return exitError{code: 1}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&version, "version", "", "Install a specific version (single tool only)")
	return cmd
}

func newInstallPMCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "install-pm",
		Short: "Install the platform package manager (Homebrew on macOS)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd, deps)
			if err != nil {
				return err
			}
			defer s.close()

			report := s.app.Service.InstallPackageManagerReport(s.ctx)
			view := s.present("homebrew", report)
			if err := s.emit(view, func() {}); err != nil {
				return err
			}
			if !report.Result.Succeeded {
				return exitError{code: 1}
			}
			return nil
		},
	}
}

// present muestra el resultado y, si falló, el diagnóstico.
func (s *session) present(name string, report domain.InstallReport) installView {
	view := installView{Tool: name, Result: report.Result, Warnings: report.Warnings}
	s.presenter.InstallResult(name, report)
	if fa, ok := s.app.Service.AnalyzeFailure(name, report.Result); ok {
		view.Analysis = &fa
		s.presenter.Analysis(fa.Reason, fa.Solutions, fa.DocsURL)
	}
	return view
}
