// internal/platform/ui/noop_presenter.go
package ui

import (
	"github.com/cmwen/mcp-dev-env-setup/internal/core/domain"
	"github.com/cmwen/mcp-dev-env-setup/internal/core/ports"
)

// NoopPresenter es una implementación vacía del Presenter
// que no produce ninguna salida. Útil cuando la salida es JSON.
type NoopPresenter struct{}

// NewNoopPresenter crea una instancia del presenter sin salida
func NewNoopPresenter() *NoopPresenter {
	return &NoopPresenter{}
}

func (n *NoopPresenter) Header(string)                                                     {}
func (n *NoopPresenter) Progress(string, ports.InstallStep, string)                        {}
func (n *NoopPresenter) InstallResult(string, domain.InstallReport)                        {}
func (n *NoopPresenter) Platform(domain.PlatformDescriptor, *domain.PackageManagerSummary) {}
func (n *NoopPresenter) Status(domain.SystemStatus)                                        {}
func (n *NoopPresenter) ToolStatus(domain.ToolStatus)                                      {}
func (n *NoopPresenter) Tools([]domain.ToolDescriptor)                                     {}
func (n *NoopPresenter) Readiness(domain.ReadinessReport)                                  {}
func (n *NoopPresenter) Recommendations([]string)                                          {}
func (n *NoopPresenter) Analysis(string, []string, string)                                 {}
func (n *NoopPresenter) Text(string, string)                                               {}
func (n *NoopPresenter) Info(string)                                                       {}
func (n *NoopPresenter) Warning(string)                                                    {}
func (n *NoopPresenter) Error(string)                                                      {}
func (n *NoopPresenter) Close()                                                            {}
