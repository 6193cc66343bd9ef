package vm

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/javanstorm/devvm/internal/config"
	"github.com/javanstorm/devvm/internal/distro"
	"github.com/javanstorm/devvm/internal/guest"
	"github.com/javanstorm/devvm/internal/log"
	"github.com/javanstorm/devvm/internal/timing"
	"github.com/javanstorm/devvm/pkg/hypervisor"
	"github.com/sirupsen/logrus"
)

// ErrBaseImageMissing is returned when the bakerx image has not been pulled.
var ErrBaseImageMissing = errors.New("vm: base image not found")

// Deps are the collaborators an orchestrator drives.
type Deps struct {
	Hypervisor hypervisor.Client
	Guest      guest.Runner
	Waiter     BootWaiter

	// Timer records phase durations; nil disables timing.
	Timer *timing.Timer
}

// Provisioner builds the VM for one project directory.
type Provisioner struct {
	cfg    *config.Config
	id     Identity
	hv     hypervisor.Client
	guest  guest.Runner
	waiter BootWaiter
	timer  *timing.Timer
}

// NewProvisioner creates a Provisioner. A nil Waiter defaults to the
// strategy selected in cfg.
func NewProvisioner(cfg *config.Config, id Identity, deps Deps) *Provisioner {
	waiter := deps.Waiter
	if waiter == nil {
		waiter = NewBootWaiter(cfg, deps.Hypervisor, deps.Guest)
	}
	return &Provisioner{
		cfg:    cfg,
		id:     id,
		hv:     deps.Hypervisor,
		guest:  deps.Guest,
		waiter: waiter,
		timer:  deps.Timer,
	}
}

// Identity returns the VM identity this provisioner manages.
func (p *Provisioner) Identity() Identity {
	return p.id
}

// Up brings the VM to a running, configured state. A running or paused VM
// is left alone unless force is set, in which case it is destroyed and
// rebuilt. Powered-off and aborted VMs are always rebuilt.
func (p *Provisioner) Up(ctx context.Context, force bool) error {
	name := p.id.Name
	ctx = log.ContextWithFields(ctx, logrus.Fields{"vm": name})
	logger := log.WithContext(ctx)
	logger.Infof("Bringing up machine %s", name)

	state, err := p.hv.Show(ctx, name)
	if err != nil {
		return fmt.Errorf("query state of %s: %w", name, err)
	}
	logger.Infof("VM is currently: %s", state)

	plan := DecideUp(state, force)
	if plan == PlanRejectRunning {
		logger.Infof("VM %s is %s. Use 'v up --force' to build new machine.", name, state)
		return nil
	}

	// Checked before destroy so a missing image never costs the existing VM.
	if err := p.checkImage(ctx); err != nil {
		return err
	}

	if plan == PlanDestroyAndRebuild {
		logger.Infof("Deleting %s machine %s", state, name)
		err := p.timer.Track("destroy", func() error {
			return hypervisor.Apply(ctx, p.hv, destroyOps(name)...)
		})
		if err != nil {
			return fmt.Errorf("destroy %s: %w", name, err)
		}
	}

	return p.build(ctx)
}

// build runs the fresh-import sequence.
func (p *Provisioner) build(ctx context.Context) error {
	name := p.id.Name

	err := p.timer.Track("import", func() error {
		ops := append(importOps(p.cfg, name), customizeOps(p.cfg, name)...)
		return hypervisor.Apply(ctx, p.hv, ops...)
	})
	if err != nil {
		return fmt.Errorf("import %s: %w", name, err)
	}

	if err := p.timer.Track("boot", func() error { return p.start(ctx) }); err != nil {
		return fmt.Errorf("boot %s: %w", name, err)
	}

	if err := p.timer.Track("post-configure", func() error { return p.postConfigure(ctx) }); err != nil {
		return fmt.Errorf("post-configure %s: %w", name, err)
	}

	log.WithContext(ctx).Infof("Machine %s is ready", name)
	return nil
}

// start boots the VM headless and waits for the guest.
func (p *Provisioner) start(ctx context.Context) error {
	if err := hypervisor.Apply(ctx, p.hv, startOps(p.id.Name)...); err != nil {
		return err
	}
	return p.waiter.Wait(ctx, p.id.Name)
}

func (p *Provisioner) postConfigure(ctx context.Context) error {
	log.WithContext(ctx).Info("Running post-configurations")
	if err := guest.RunSteps(ctx, p.guest, postConfigSteps(p.cfg)); err != nil {
		return err
	}
	if err := p.shareFolder(ctx); err != nil {
		return err
	}
	return p.configureHostOnly(ctx)
}

// shareFolder exposes the project directory read-only at ShareGuestPath.
func (p *Provisioner) shareFolder(ctx context.Context) error {
	logger := log.WithContext(ctx)
	logger.Info("Setting up shared sync folder")

	if state, err := p.hv.Show(ctx, p.id.Name); err != nil {
		logger.WithError(err).Warn("could not query VM state")
	} else {
		logger.Debugf("VM is currently: %s", state)
	}

	if err := hypervisor.Apply(ctx, p.hv, sharedFolderOps(p.cfg, p.id.Name, p.id.WorkDir)...); err != nil {
		return err
	}
	return guest.RunSteps(ctx, p.guest, shareMountSteps(p.cfg))
}

func (p *Provisioner) configureHostOnly(ctx context.Context) error {
	log.WithContext(ctx).Info("Setting up host-only network")
	return guest.RunSteps(ctx, p.guest, hostOnlySteps(p.cfg))
}

// checkImage verifies the base image exists. With RequireImage unset a
// missing image is only reported and import is attempted anyway.
func (p *Provisioner) checkImage(ctx context.Context) error {
	image := p.cfg.BaseImage()
	_, err := os.Stat(image)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("check base image: %w", err)
	}

	hint := fmt.Sprintf("Could not find %s. Please download with '%s'.", image, distro.PullHint(p.cfg.Distro))
	if p.cfg.RequireImage {
		return fmt.Errorf("%w: %s", ErrBaseImageMissing, hint)
	}
	log.WithContext(ctx).Warn(hint)
	return nil
}
