package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// shutdownContext returns a context that is canceled on SIGTERM or SIGINT.
// onSignal, when not nil, is called with the signal before cancellation.
// The returned cancel func stops listening for signals.
func shutdownContext(parent context.Context, onSignal func(os.Signal)) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		select {
		case sig := <-sigChan:
			if onSignal != nil {
				onSignal(sig)
			}
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}
