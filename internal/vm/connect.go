package vm

import (
	"context"
	"fmt"

	"github.com/javanstorm/devvm/internal/log"
	"github.com/sirupsen/logrus"
)

// Shell opens an interactive session on the guest.
type Shell interface {
	Interactive(ctx context.Context) error
}

// Connector makes sure the VM is running and then hands the terminal to
// an interactive guest shell.
type Connector struct {
	p     *Provisioner
	shell Shell
}

// NewConnector creates a Connector that provisions through p.
func NewConnector(p *Provisioner, shell Shell) *Connector {
	return &Connector{p: p, shell: shell}
}

// Connect resumes a stopped VM, provisions a missing or aborted one, and
// then opens the shell. It returns the shell's result.
func (c *Connector) Connect(ctx context.Context) error {
	if err := c.ensureRunning(ctx); err != nil {
		return err
	}
	return c.shell.Interactive(ctx)
}

func (c *Connector) ensureRunning(ctx context.Context) error {
	name := c.p.id.Name
	ctx = log.ContextWithFields(ctx, logrus.Fields{"vm": name})
	logger := log.WithContext(ctx)

	state, err := c.p.hv.Show(ctx, name)
	if err != nil {
		return fmt.Errorf("query state of %s: %w", name, err)
	}

	switch DecideConnect(state) {
	case ActionAttach:
		logger.Infof("VM %s is running.", name)
		return nil
	case ActionResume:
		logger.Infof("VM %s is in %s state", name, state)
		logger.Infof("Starting the VM: %s", name)
		if err := c.p.start(ctx); err != nil {
			return fmt.Errorf("start %s: %w", name, err)
		}
		if err := c.p.configureHostOnly(ctx); err != nil {
			return fmt.Errorf("configure host-only network on %s: %w", name, err)
		}
		return nil
	default:
		logger.Infof("VM %s is %s, provisioning a new one", name, state)
		return c.p.Up(ctx, true)
	}
}
