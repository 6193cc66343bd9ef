package vm

import "github.com/javanstorm/devvm/pkg/hypervisor"

// Plan is what `up` does for a given state.
type Plan int

const (
	PlanFreshImport Plan = iota
	PlanDestroyAndRebuild
	PlanRejectRunning
)

func (p Plan) String() string {
	switch p {
	case PlanFreshImport:
		return "fresh-import"
	case PlanDestroyAndRebuild:
		return "destroy-and-rebuild"
	case PlanRejectRunning:
		return "reject-running"
	default:
		return "unknown"
	}
}

// DecideUp maps the current VM state and the force flag to a Plan. A
// running or paused VM is only rebuilt when force is set.
func DecideUp(state hypervisor.State, force bool) Plan {
	switch state {
	case hypervisor.StatePoweroff, hypervisor.StateAborted:
		// Most likely an incomplete earlier build.
		return PlanDestroyAndRebuild
	case hypervisor.StateRunning, hypervisor.StatePaused:
		// Still registered, so importing under the same name would fail.
		if force {
			return PlanDestroyAndRebuild
		}
		return PlanRejectRunning
	default:
		return PlanFreshImport
	}
}

// Action is what `ssh` does before opening the session.
type Action int

const (
	ActionProvision Action = iota
	ActionResume
	ActionAttach
)

func (a Action) String() string {
	switch a {
	case ActionProvision:
		return "provision"
	case ActionResume:
		return "resume-by-start"
	case ActionAttach:
		return "attach"
	default:
		return "unknown"
	}
}

// DecideConnect maps the current VM state to an Action.
func DecideConnect(state hypervisor.State) Action {
	switch state {
	case hypervisor.StatePoweroff, hypervisor.StatePaused:
		return ActionResume
	case hypervisor.StateRunning:
		return ActionAttach
	default:
		return ActionProvision
	}
}
