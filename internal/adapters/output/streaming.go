// internal/adapters/output/streaming.go
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/cmwen/mcp-dev-env-setup/internal/core/ports"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/logx"
)

// EventLog es un ports.Notifier que añade cada evento de instalación como
// una línea JSON al fichero configurado (event_log). Las escrituras se
// serializan; cada línea se escribe completa.
type EventLog struct {
	mu     sync.Mutex
	file   afero.File
	path   string
	logger logx.Logger
	closed bool
}

var _ ports.Notifier = (*EventLog)(nil)

// NewEventLog abre (o crea) path en modo append.
func NewEventLog(fsys afero.Fs, path string, logger logx.Logger) (*EventLog, error) {
	if logger == nil {
		logger = logx.NewNop()
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create event log directory: %w", err)
		}
	}
	f, err := fsys.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open event log: %w", err)
	}
	return &EventLog{
		file:   f,
		path:   path,
		logger: logger.With("component", "event-log"),
	}, nil
}

// Path devuelve la ruta del fichero.
func (l *EventLog) Path() string { return l.path }

// Notify escribe el evento como una línea JSON.
func (l *EventLog) Notify(_ context.Context, event ports.Event) error {
	line, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	line = append(line, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return fmt.Errorf("event log %s is closed", l.path)
	}
	if _, err := l.file.Write(line); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	l.logger.Debug("event written", "type", string(event.Type), "run", event.RunID)
	return nil
}

// Close cierra el fichero. Llamadas repetidas no hacen nada.
func (l *EventLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	return l.file.Close()
}
