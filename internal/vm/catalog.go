package vm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/javanstorm/devvm/internal/config"
	"github.com/javanstorm/devvm/internal/guest"
	"github.com/javanstorm/devvm/pkg/hypervisor"
)

// unlockOp clears a stale session lock. It fails whenever there is no
// session to stop, which is the common case.
func unlockOp(name string) hypervisor.Op {
	return hypervisor.Op{
		Subcommand: "startvm",
		Args:       []string{name, "--type", "emergencystop"},
		BestEffort: true,
	}
}

// destroyOps powers off and deletes the VM with its disks.
func destroyOps(name string) []hypervisor.Op {
	return []hypervisor.Op{
		unlockOp(name),
		{
			Subcommand: "controlvm",
			Args:       []string{name, "poweroff"},
			// A powered-off or aborted VM rejects poweroff.
			BestEffort: true,
		},
		{
			Label:      fmt.Sprintf("Deleting machine %s", name),
			Subcommand: "unregistervm",
			Args:       []string{name, "--delete"},
		},
	}
}

// importOps registers the base image under name and applies the base
// hardware settings.
func importOps(cfg *config.Config, name string) []hypervisor.Op {
	return []hypervisor.Op{
		{
			Label:      fmt.Sprintf("Importing %s", cfg.BaseImage()),
			Subcommand: "import",
			Args:       []string{cfg.BaseImage(), "--vsys", "0", "--vmname", name},
		},
		{
			Subcommand: "modifyvm",
			Args:       []string{name, "--memory", strconv.Itoa(cfg.MemoryMB), "--cpus", strconv.Itoa(cfg.CPUs)},
		},
		{
			// Serial port is disconnected so the VM does not block on a missing pipe.
			Subcommand: "modifyvm",
			Args:       []string{name, "--uart1", "0x3f8", "4", "--uartmode1", "disconnected"},
		},
	}
}

// customizeOps sets up NAT, host-only networking and the port forwards.
func customizeOps(cfg *config.Config, name string) []hypervisor.Op {
	return []hypervisor.Op{
		{
			Label:      "Running VM customizations",
			Subcommand: "modifyvm",
			Args:       []string{name, "--nic1", "nat"},
		},
		{
			Subcommand: "modifyvm",
			Args:       []string{name, "--nic2", "hostonly", "--hostonlyadapter2", cfg.HostOnlyAdapter},
		},
		{
			Subcommand: "modifyvm",
			Args:       []string{name, "--natpf1", portForward("guestssh", cfg.SSHHostPort, cfg.SSHGuestPort)},
		},
		{
			Subcommand: "modifyvm",
			Args:       []string{name, "--natpf1", portForward("nodeport", cfg.AppHostPort, cfg.AppGuestPort)},
		},
	}
}

// portForward renders a VirtualBox NAT rule: name,proto,hostip,hostport,guestip,guestport.
func portForward(rule string, hostPort, guestPort int) string {
	return fmt.Sprintf("%s,tcp,,%d,,%d", rule, hostPort, guestPort)
}

// startOps unlocks any stale session and boots the VM headless.
func startOps(name string) []hypervisor.Op {
	return []hypervisor.Op{
		unlockOp(name),
		{
			Label:      fmt.Sprintf("Starting machine %s", name),
			Subcommand: "startvm",
			Args:       []string{name, "--type", "headless"},
		},
	}
}

// sharedFolderOps attaches the guest additions ISO and shares hostPath
// read-only for the lifetime of the running VM.
func sharedFolderOps(cfg *config.Config, name, hostPath string) []hypervisor.Op {
	return []hypervisor.Op{
		{
			Label:      "Attaching guest additions",
			Subcommand: "storageattach",
			Args: []string{name,
				"--storagectl", "IDE",
				"--port", "0",
				"--device", "1",
				"--type", "dvddrive",
				"--medium", cfg.GuestAdditionsISO,
			},
		},
		{
			Label:      fmt.Sprintf("Adding shared folder: %s", hostPath),
			Subcommand: "sharedfolder",
			Args: []string{"add", name,
				"--name", cfg.ShareName,
				"--hostpath", hostPath,
				"--transient",
				"--readonly",
			},
		},
	}
}

// postConfigSteps installs the toolchain and the application.
func postConfigSteps(cfg *config.Config) []guest.Step {
	return []guest.Step{
		{Label: "Listing root filesystem", Command: "ls /"},
		{Label: "Updating package index", Command: "sudo apt-get update"},
		{Label: "Installing " + strings.Join(cfg.Packages, " "), Command: "sudo apt-get --yes install " + strings.Join(cfg.Packages, " ")},
		{Label: "Cloning repository", Command: "git clone " + cfg.AppRepo},
		{Label: "Installing node modules", Command: fmt.Sprintf("cd %s ; sudo npm install", cfg.AppDir)},
	}
}

// shareMountSteps mounts the shared folder inside the guest.
func shareMountSteps(cfg *config.Config) []guest.Step {
	return []guest.Step{
		{Label: "Adding user to vboxsf", Command: fmt.Sprintf("sudo usermod -aG vboxsf %s", cfg.SSHUser)},
		{Label: "Creating mount point", Command: fmt.Sprintf("sudo mkdir -p %s", cfg.ShareGuestPath)},
		{Label: fmt.Sprintf("Mounting shared folder in %s", cfg.ShareGuestPath), Command: fmt.Sprintf("sudo mount -t vboxsf %s %s", cfg.ShareName, cfg.ShareGuestPath)},
	}
}

// hostOnlySteps brings up the host-only interface with DHCP.
func hostOnlySteps(cfg *config.Config) []guest.Step {
	iface := cfg.HostOnlyInterface
	return []guest.Step{
		{Label: "Installing ifupdown", Command: "sudo apt-get --yes install ifupdown"},
		{Label: "Modifying /etc/network/interfaces", Command: fmt.Sprintf("echo 'iface %s inet dhcp' | sudo tee -a /etc/network/interfaces", iface)},
		{Label: fmt.Sprintf("Setting %s link up", iface), Command: fmt.Sprintf("sudo ifup %s; ifconfig", iface)},
	}
}
