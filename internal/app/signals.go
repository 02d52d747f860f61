// internal/app/signals.go
package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// RootContextWithSignals crea el contexto raíz con timeout opcional y
// cancelación por SIGINT/SIGTERM. La función devuelta libera la señal,
// el canal y el contexto.
func RootContextWithSignals(timeout time.Duration) (context.Context, context.CancelFunc) {
	var base context.Context
	var baseCancel context.CancelFunc

	if timeout > 0 {
		base, baseCancel = context.WithTimeout(context.Background(), timeout)
	} else {
		base, baseCancel = context.WithCancel(context.Background())
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-ch:
			baseCancel()
		case <-base.Done():
		}
	}()

	cleanup := func() {
		signal.Stop(ch)
		baseCancel()
	}

	return base, cleanup
}
