package cli

import (
	"fmt"
	"io"

	"github.com/javanstorm/devvm/internal/config"
	"github.com/javanstorm/devvm/internal/guest"
	"github.com/javanstorm/devvm/internal/timing"
	"github.com/javanstorm/devvm/internal/vm"
	"github.com/javanstorm/devvm/pkg/hypervisor"
)

// guestHost is where the NAT port forward exposes the guest's SSH server.
const guestHost = "127.0.0.1"

// newHypervisor is replaced in tests.
var newHypervisor = func(cfg *config.Config) hypervisor.Client {
	return hypervisor.NewVBoxManage(cfg.VBoxManage)
}

// session is the wiring for one invocation in the current directory.
type session struct {
	cfg    *config.Config
	id     vm.Identity
	hv     hypervisor.Client
	runner *guest.SSHRunner
	timer  *timing.Timer
}

func newSession(cfg *config.Config, out io.Writer) (*session, error) {
	id, err := vm.CurrentIdentity(cfg.NamePrefix)
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:    cfg,
		id:     id,
		hv:     newHypervisor(cfg),
		runner: guest.NewSSHRunner(endpoint(cfg), out),
	}
	if cfg.Timing {
		s.timer = timing.New()
	}
	return s, nil
}

func endpoint(cfg *config.Config) guest.Endpoint {
	return guest.Endpoint{
		Host:    guestHost,
		Port:    cfg.SSHHostPort,
		User:    cfg.SSHUser,
		KeyFile: cfg.SSHKeyPath,
	}
}

func (s *session) provisioner() *vm.Provisioner {
	return vm.NewProvisioner(s.cfg, s.id, vm.Deps{
		Hypervisor: s.hv,
		Guest:      s.runner,
		Timer:      s.timer,
	})
}

// report prints the phase timings when timing is enabled.
func (s *session) report(w io.Writer) {
	s.timer.Report(w)
}

// requireVBoxManage fails early with an install hint when VirtualBox is missing.
func requireVBoxManage(cfg *config.Config) error {
	missing := vm.Missing([]vm.Prerequisite{vm.VBoxManagePrerequisite(cfg.VBoxManage)})
	if len(missing) > 0 {
		return fmt.Errorf("VirtualBox is required:\n%s", vm.FormatMissing(missing))
	}
	return nil
}
