package hypervisor

import (
	"bufio"
	"strings"
)

// State is the lifecycle state VirtualBox reports for a VM.
type State string

const (
	StateRunning    State = "running"
	StatePoweroff   State = "poweroff"
	StatePaused     State = "paused"
	StateAborted    State = "aborted"
	StateNotCreated State = "not-created"
	StateUnknown    State = "unknown"
)

func (s State) String() string {
	return string(s)
}

// ParseState maps a VMState value to a State. Values outside the
// tracked set (saved, starting, stuck, ...) are reported as StateUnknown.
func ParseState(value string) State {
	switch v := State(strings.ToLower(strings.TrimSpace(value))); v {
	case StateRunning, StatePoweroff, StatePaused, StateAborted:
		return v
	default:
		return StateUnknown
	}
}

// parseMachineReadable extracts VMState from `showvminfo --machinereadable` output.
func parseMachineReadable(out string) State {
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), "=")
		if !ok || key != "VMState" {
			continue
		}
		return ParseState(strings.Trim(value, `"`))
	}
	return StateUnknown
}
