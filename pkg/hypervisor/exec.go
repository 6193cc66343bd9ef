package hypervisor

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// Runner executes a host binary. It is the seam tests use to avoid
// spawning the real VBoxManage.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr string, exitCode int, err error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run executes name with args and captures both output streams.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdOut, stdErr bytes.Buffer
	cmd.Stdout = &stdOut
	cmd.Stderr = &stdErr

	err := cmd.Run()
	stdout := strings.TrimSuffix(stdOut.String(), "\n")
	stderr := strings.TrimSuffix(stdErr.String(), "\n")
	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return stdout, stderr, exitCode, err
	}
	return stdout, stderr, 0, nil
}
