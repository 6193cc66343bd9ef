//go:build !windows

package terminal

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WatchResize calls fn with the new size whenever the terminal is resized,
// until ctx is done or the returned stop function is called.
func (c *Console) WatchResize(ctx context.Context, fn func(width, height int)) (stop func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGWINCH)

	ctx, cancel := context.WithCancel(ctx)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-sigCh:
				if w, h, err := c.Size(); err == nil {
					fn(w, h)
				}
			}
		}
	}()

	return func() {
		signal.Stop(sigCh)
		cancel()
	}
}
