package hypervisor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCommandFailed is wrapped by every CommandError.
var ErrCommandFailed = errors.New("hypervisor: command failed")

// CommandError describes a failed VBoxManage invocation.
type CommandError struct {
	Subcommand string
	Args       []string
	Stderr     string
	ExitCode   int
	Err        error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("VBoxManage %s %s: exit %d", e.Subcommand, strings.Join(e.Args, " "), e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// Unwrap lets errors.Is match both ErrCommandFailed and the underlying exec error.
func (e *CommandError) Unwrap() []error {
	return []error{ErrCommandFailed, e.Err}
}

// notRegistered reports whether stderr says the VM does not exist.
func (e *CommandError) notRegistered() bool {
	return strings.Contains(e.Stderr, "VBOX_E_OBJECT_NOT_FOUND") ||
		strings.Contains(e.Stderr, "Could not find a registered machine")
}
