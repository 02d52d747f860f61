// internal/core/ports/notifier.go
package ports

import (
	"context"
	"time"

	"github.com/cmwen/mcp-dev-env-setup/internal/core/domain"
)

// Notifier es el port para notificaciones de eventos del sistema.
// Implementa el patrón Observer: el orquestador no sabe si el evento acaba
// en un fichero de eventos, en la terminal o en un cliente MCP.
type Notifier interface {
	// Notify envía una notificación para un evento
	Notify(ctx context.Context, event Event) error

	// Close cierra el notifier y libera recursos
	Close() error
}

// Event representa un evento del sistema.
type Event struct {
	// Type tipo de evento
	Type EventType `json:"type"`

	// Timestamp momento del evento
	Timestamp time.Time `json:"timestamp"`

	// Source componente que generó el evento
	Source string `json:"source"`

	// RunID identifies the install run the event belongs to.
	RunID string `json:"run_id,omitempty"`

	// Data datos específicos del evento
	Data interface{} `json:"data,omitempty"`

	// Severity severidad del evento
	Severity EventSeverity `json:"severity"`
}

// EventType define los tipos de eventos del sistema.
type EventType string

const (
	// Install events
	EventTypeInstallStarted   EventType = "install.started"
	EventTypeInstallCompleted EventType = "install.completed"
	EventTypeInstallFailed    EventType = "install.failed"

	// Package manager events
	EventTypeBootstrapStarted   EventType = "bootstrap.started"
	EventTypeBootstrapCompleted EventType = "bootstrap.completed"
	EventTypeBootstrapFailed    EventType = "bootstrap.failed"

	// Best-effort step that failed without failing the install.
	EventTypeStepWarning EventType = "install.warning"
)

// EventSeverity define la severidad de un evento.
type EventSeverity string

const (
	EventSeverityInfo    EventSeverity = "info"
	EventSeverityWarning EventSeverity = "warning"
	EventSeverityError   EventSeverity = "error"
)

// NewEvent crea un nuevo evento.
func NewEvent(eventType EventType, source, runID string, data interface{}) Event {
	severity := EventSeverityInfo
	switch eventType {
	case EventTypeInstallFailed, EventTypeBootstrapFailed:
		severity = EventSeverityError
	case EventTypeStepWarning:
		severity = EventSeverityWarning
	}
	return Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    source,
		RunID:     runID,
		Data:      data,
		Severity:  severity,
	}
}

// InstallStartedEvent datos para evento de inicio de instalación.
type InstallStartedEvent struct {
	Tool    string `json:"tool"`
	Version string `json:"version,omitempty"`
}

// InstallCompletedEvent datos para evento de fin de instalación, exitosa o no.
type InstallCompletedEvent struct {
	Tool     string                    `json:"tool"`
	Result   domain.InstallationResult `json:"result"`
	Warnings []domain.Warning          `json:"warnings,omitempty"`
	Duration time.Duration             `json:"duration"`
}
