package vm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/javanstorm/devvm/internal/config"
	"github.com/javanstorm/devvm/internal/guest"
	"github.com/javanstorm/devvm/internal/log"
	"github.com/javanstorm/devvm/pkg/hypervisor"
)

// ErrBootTimeout is returned by PollingWaiter when the guest never became reachable.
var ErrBootTimeout = errors.New("vm: guest did not become reachable before the boot deadline")

// BootWaiter gives a freshly started guest time to come up.
type BootWaiter interface {
	Wait(ctx context.Context, name string) error
}

// FixedDelayWaiter sleeps for Delay and then queries the state once for
// the log. It never fails on VM health; only a cancelled context stops it.
type FixedDelayWaiter struct {
	Client hypervisor.Client
	Delay  time.Duration
}

// Wait implements BootWaiter.
func (w *FixedDelayWaiter) Wait(ctx context.Context, name string) error {
	logger := log.WithContext(ctx)
	logger.Infof("Waiting %s for machine to boot.", w.Delay)

	if err := sleep(ctx, w.Delay); err != nil {
		return err
	}

	state, err := w.Client.Show(ctx, name)
	if err != nil {
		logger.WithError(err).Warn("could not query VM state after boot")
		return nil
	}
	logger.Infof("VM is currently: %s", state)
	return nil
}

// PollingWaiter returns as soon as the VM reports running and the guest
// answers a probe command, or fails with ErrBootTimeout after Timeout.
type PollingWaiter struct {
	Client   hypervisor.Client
	Probe    guest.Runner
	Interval time.Duration
	Timeout  time.Duration
}

// Wait implements BootWaiter.
func (w *PollingWaiter) Wait(ctx context.Context, name string) error {
	logger := log.WithContext(ctx)
	logger.Infof("Waiting up to %s for machine to boot.", w.Timeout)

	deadline := time.Now().Add(w.Timeout)
	for attempt := 1; ; attempt++ {
		state, err := w.Client.Show(ctx, name)
		switch {
		case err != nil:
			logger.WithError(err).Debug("state query failed")
		case state != hypervisor.StateRunning:
			logger.Debugf("VM is %s [attempt %d]", state, attempt)
		default:
			_, err := w.Probe.Run(ctx, "true")
			if err == nil {
				logger.Infof("VM is reachable after %d attempt(s)", attempt)
				return nil
			}
			logger.WithError(err).Debugf("guest not reachable yet [attempt %d]", attempt)
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !time.Now().Add(w.Interval).Before(deadline) {
			return fmt.Errorf("%w (%s)", ErrBootTimeout, w.Timeout)
		}
		if err := sleep(ctx, w.Interval); err != nil {
			return err
		}
	}
}

// NewBootWaiter returns the waiter selected by cfg.BootStrategy.
func NewBootWaiter(cfg *config.Config, client hypervisor.Client, probe guest.Runner) BootWaiter {
	if cfg.BootStrategy == config.BootStrategyPoll {
		return &PollingWaiter{
			Client:   client,
			Probe:    probe,
			Interval: cfg.BootPollInterval,
			Timeout:  cfg.BootWait,
		}
	}
	return &FixedDelayWaiter{Client: client, Delay: cfg.BootWait}
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
