package hypervisor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/javanstorm/devvm/internal/log"
)

// Op is one VBoxManage mutation in an ordered sequence.
type Op struct {
	// Label is the human-readable description logged before the op runs.
	Label string

	Subcommand string
	Args       []string

	// BestEffort ops have command failures suppressed. Used for session
	// unlocks that legitimately fail when no session exists.
	BestEffort bool
}

func (o Op) String() string {
	return strings.TrimSpace(o.Subcommand + " " + strings.Join(o.Args, " "))
}

// Apply runs ops in order against client. It stops at the first failure
// that is not suppressed by a best-effort op.
func Apply(ctx context.Context, client Client, ops ...Op) error {
	logger := log.WithContext(ctx)
	for _, op := range ops {
		if op.Label != "" {
			logger.Info(op.Label)
		}
		logger.WithField("op", op.String()).Debug("VBoxManage")

		_, err := client.Execute(ctx, op.Subcommand, op.Args...)
		if op.BestEffort {
			err = Tolerate(ctx, err)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", op.Subcommand, err)
		}
	}
	return nil
}

// Tolerate suppresses a command failure and returns every other error
// unchanged. Context cancellation and a missing binary are never suppressed.
func Tolerate(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, ErrCommandFailed) {
		log.WithContext(ctx).WithError(err).Debug("ignoring expected failure")
		return nil
	}
	return err
}
