// app/signals.go
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

// WithShutdownSignals returns a context that is canceled when the process
// receives SIGINT or SIGTERM; context.Cause names the signal. The returned
// cancel function also stops signal delivery.
func WithShutdownSignals(parent context.Context, logger *zap.Logger) (context.Context, context.CancelFunc) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancelCause(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			logger.Warn("shutdown signal received", zap.Stringer("signal", sig))
			cancel(fmt.Errorf("received %s", sig))
		case <-ctx.Done():
		}
	}()

	return ctx, func() { cancel(nil) }
}
