// Package testutil provides recording fakes for orchestrator tests.
package testutil

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/javanstorm/devvm/pkg/hypervisor"
)

// Hypervisor is a hypervisor.Client that records every call.
// Execute calls are recorded as "subcommand arg1 arg2 ..." and Show calls
// as "show <name>".
type Hypervisor struct {
	mu      sync.Mutex
	calls   []string
	states  []hypervisor.State
	showErr error
	fail    map[string]error
}

// NewHypervisor returns a fake whose Show returns states in order,
// repeating the last one. With no states it reports StateNotCreated.
func NewHypervisor(states ...hypervisor.State) *Hypervisor {
	return &Hypervisor{states: states, fail: make(map[string]error)}
}

// FailOn makes any Execute whose recorded form starts with prefix fail
// with a *hypervisor.CommandError.
func (h *Hypervisor) FailOn(prefix string) *Hypervisor {
	h.mu.Lock()
	defer h.mu.Unlock()
	sub, _, _ := strings.Cut(prefix, " ")
	h.fail[prefix] = &hypervisor.CommandError{
		Subcommand: sub,
		ExitCode:   1,
		Stderr:     "VBoxManage: error: simulated failure",
		Err:        errors.New("exit status 1"),
	}
	return h
}

// FailShow makes Show return err.
func (h *Hypervisor) FailShow(err error) *Hypervisor {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.showErr = err
	return h
}

// Execute records the call and returns any configured failure.
func (h *Hypervisor) Execute(ctx context.Context, subcommand string, args ...string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	call := strings.TrimSpace(subcommand + " " + strings.Join(args, " "))
	h.calls = append(h.calls, call)
	for prefix, err := range h.fail {
		if strings.HasPrefix(call, prefix) {
			return "", err
		}
	}
	return "", nil
}

// Show records the query and returns the next scripted state.
func (h *Hypervisor) Show(ctx context.Context, name string) (hypervisor.State, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, "show "+name)
	if h.showErr != nil {
		return hypervisor.StateUnknown, h.showErr
	}
	if len(h.states) == 0 {
		return hypervisor.StateNotCreated, nil
	}
	state := h.states[0]
	if len(h.states) > 1 {
		h.states = h.states[1:]
	}
	return state, nil
}

// Calls returns every recorded call in order.
func (h *Hypervisor) Calls() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.calls...)
}

// Mutations returns recorded Execute calls, skipping Show queries.
func (h *Hypervisor) Mutations() []string {
	var out []string
	for _, c := range h.Calls() {
		if !strings.HasPrefix(c, "show ") {
			out = append(out, c)
		}
	}
	return out
}

// ShowCount returns how many times Show was called.
func (h *Hypervisor) ShowCount() int {
	return len(h.Calls()) - len(h.Mutations())
}

// Index returns the position of the first recorded call starting with
// prefix, or -1.
func (h *Hypervisor) Index(prefix string) int {
	for i, c := range h.Calls() {
		if strings.HasPrefix(c, prefix) {
			return i
		}
	}
	return -1
}

// Runner is a guest.Runner that records commands.
type Runner struct {
	mu       sync.Mutex
	commands []string
	failOn   []string
}

// NewRunner returns a runner that succeeds on every command.
func NewRunner() *Runner {
	return &Runner{}
}

// FailOn makes any command containing substr fail.
func (r *Runner) FailOn(substr string) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failOn = append(r.failOn, substr)
	return r
}

// Run records command and returns any configured failure.
func (r *Runner) Run(ctx context.Context, command string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = append(r.commands, command)
	for _, substr := range r.failOn {
		if strings.Contains(command, substr) {
			return "", errors.New("Process exited with status 100")
		}
	}
	return "", nil
}

// Commands returns every recorded command in order.
func (r *Runner) Commands() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.commands...)
}

// Ran reports whether any recorded command contains substr.
func (r *Runner) Ran(substr string) bool {
	for _, c := range r.Commands() {
		if strings.Contains(c, substr) {
			return true
		}
	}
	return false
}

// Shell is an interactive-session fake.
type Shell struct {
	Opened int
	Err    error
}

// Interactive records that a session was opened.
func (s *Shell) Interactive(ctx context.Context) error {
	s.Opened++
	return s.Err
}
