package hypervisor

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// DefaultBinary is the VBoxManage executable looked up on PATH.
const DefaultBinary = "VBoxManage"

// VBoxManage implements Client on top of the VBoxManage binary.
type VBoxManage struct {
	binary string
	runner Runner
}

// NewVBoxManage creates a client for the given binary name or path.
// An empty binary falls back to DefaultBinary.
func NewVBoxManage(binary string) *VBoxManage {
	if binary == "" {
		binary = DefaultBinary
	}
	return &VBoxManage{binary: binary, runner: ExecRunner{}}
}

// WithRunner returns a copy of the client that executes through r.
func (v *VBoxManage) WithRunner(r Runner) *VBoxManage {
	return &VBoxManage{binary: v.binary, runner: r}
}

// Execute runs `VBoxManage <subcommand> <args...>`.
func (v *VBoxManage) Execute(ctx context.Context, subcommand string, args ...string) (string, error) {
	argv := append([]string{subcommand}, args...)
	stdout, stderr, exitCode, err := v.runner.Run(ctx, v.binary, argv...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return stdout, ctxErr
		}
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return stdout, fmt.Errorf("run %s: %w", v.binary, err)
		}
		return stdout, &CommandError{
			Subcommand: subcommand,
			Args:       args,
			Stderr:     stderr,
			ExitCode:   exitCode,
			Err:        err,
		}
	}
	return stdout, nil
}

// Show queries `showvminfo --machinereadable` and maps VMState.
func (v *VBoxManage) Show(ctx context.Context, name string) (State, error) {
	out, err := v.Execute(ctx, "showvminfo", name, "--machinereadable")
	if err != nil {
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) && cmdErr.notRegistered() {
			return StateNotCreated, nil
		}
		return StateUnknown, fmt.Errorf("show %s: %w", name, err)
	}
	return parseMachineReadable(out), nil
}
