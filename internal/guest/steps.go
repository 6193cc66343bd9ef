package guest

import (
	"context"
	"fmt"

	"github.com/javanstorm/devvm/internal/log"
)

// Step is a labelled guest command.
type Step struct {
	Label   string
	Command string
}

// RunSteps executes steps in order and stops at the first failure.
func RunSteps(ctx context.Context, runner Runner, steps []Step) error {
	logger := log.WithContext(ctx)
	for _, step := range steps {
		logger.WithField("command", step.Command).Info(step.Label)
		if _, err := runner.Run(ctx, step.Command); err != nil {
			return fmt.Errorf("step %q: %w", step.Label, err)
		}
	}
	return nil
}
