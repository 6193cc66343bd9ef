// Package hypervisor drives VirtualBox through the VBoxManage command line.
// The orchestrators only see the Client interface so tests can swap in a
// recording fake.
package hypervisor

import (
	"context"
)

// Client is the hypervisor control surface used by the orchestrators.
type Client interface {
	// Execute runs a VBoxManage subcommand and returns its stdout.
	Execute(ctx context.Context, subcommand string, args ...string) (string, error)

	// Show returns the current lifecycle state of the named VM.
	// An unregistered VM is reported as StateNotCreated with a nil error.
	Show(ctx context.Context, name string) (State, error)
}
