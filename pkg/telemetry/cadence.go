package telemetry

import (
	"github.com/forge-dev/forge/pkg/telemetry/schema/latest"
	"github.com/forge-dev/forge/pkg/telemetry/schema/types"
)

// Status is the user-facing state of telemetry.
type Status string

const (
	StatusUninitialized Status = "uninitialized"
	StatusDisabled      Status = "disabled"
	StatusEnabled       Status = "enabled"
)

// Action is a step the engine takes on one invocation.
type Action string

const (
	ActionInform      Action = "inform"
	ActionSendProject Action = "send-project"
	ActionSendDevice  Action = "send-device"
	ActionSkip        Action = "skip"
)

// Decision is the outcome of Decide. A disabled status has no actions.
type Decision struct {
	Status  Status
	Actions []Action
}

func statusOf(value latest.Value) Status {
	switch value.State {
	case types.OptedOut:
		return StatusDisabled
	case types.Configured:
		return StatusEnabled
	default:
		return StatusUninitialized
	}
}

// Decide returns what to do for the project at cwd on the UTC date today
// (YYYY-MM-DD). An uninformed user is only informed; the project and device
// sends are otherwise decided independently, project first.
func Decide(value latest.Value, cwd, today string) Decision {
	status := statusOf(value)
	if status == StatusDisabled {
		return Decision{Status: status}
	}

	record := value.RecordOrDefault()
	if record.InformedAt == nil {
		return Decision{Status: status, Actions: []Action{ActionInform}}
	}

	var actions []Action
	if project, ok := record.Projects[cwd]; !ok || project == nil || due(&project.LastSentDate, today) {
		actions = append(actions, ActionSendProject)
	}
	if due(record.Device.LastSentDate, today) {
		actions = append(actions, ActionSendDevice)
	}
	if len(actions) == 0 {
		actions = []Action{ActionSkip}
	}
	return Decision{Status: status, Actions: actions}
}

// due reports whether a report last sent on lastSent should be sent again on
// today. Both are zero-padded ISO dates, so string order is date order.
func due(lastSent *string, today string) bool {
	return lastSent == nil || *lastSent < today
}
