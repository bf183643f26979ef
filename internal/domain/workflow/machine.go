package workflow

// Machine validates transitions against the static tables and derives states
// from filling progress. It holds no per-assignment data: the aggregate owns
// the current state and passes it in.
type Machine struct{}

// NewMachine creates a stateless transition validator
func NewMachine() *Machine {
	return &Machine{}
}

// CanTransitionForward returns nil if target is a legal successor of current
// during normal progression, or a *TransitionError describing the rejection.
func (m *Machine) CanTransitionForward(current, target State) error {
	if current.IsTerminal() {
		return newTransitionError(current, target, "assignment is finalized", false)
	}
	entries, ok := forwardTransitions[current]
	if !ok {
		return newTransitionError(current, target, "state has no outgoing transitions", false)
	}
	for _, t := range entries {
		if t.Target == target {
			return nil
		}
	}
	return newTransitionError(current, target, "target is not a legal successor", false)
}

// CanTransitionBackward returns nil if target is a legal reopen destination of
// current and the requesting role is on the allow-list. Role matching is
// case-insensitive; data-scope checks are the caller's responsibility.
func (m *Machine) CanTransitionBackward(current, target State, requester Role) error {
	if current.IsTerminal() {
		return newTransitionError(current, target, "finalized assignments cannot be reopened", true)
	}
	entries, ok := reopenTransitions[current]
	if !ok {
		return newTransitionError(current, target, "state does not support reopening", true)
	}
	for _, t := range entries {
		if t.Target != target {
			continue
		}
		for _, role := range t.AllowedRoles {
			if role.Equals(requester) {
				return nil
			}
		}
		return newTransitionError(current, target, "role "+requester.String()+" is not allowed to reopen", true)
	}
	return newTransitionError(current, target, "target is not a legal reopen destination", true)
}

// ValidNextStates returns the legal forward transitions from the given state
func (m *Machine) ValidNextStates(current State) []StateTransition {
	entries := forwardTransitions[current]
	out := make([]StateTransition, len(entries))
	copy(out, entries)
	return out
}

// ValidReopenStates returns the legal reopen transitions from the given state
func (m *Machine) ValidReopenStates(current State) []ReopenTransition {
	entries := reopenTransitions[current]
	out := make([]ReopenTransition, len(entries))
	copy(out, entries)
	return out
}

// IsReopenable reports whether any reopen transition exists from the state
func (m *Machine) IsReopenable(current State) bool {
	return len(reopenTransitions[current]) > 0
}

// RolesWhoCanReopen returns the roles allowed to reopen current back to target
func (m *Machine) RolesWhoCanReopen(current, target State) []Role {
	for _, t := range reopenTransitions[current] {
		if t.Target == target {
			out := make([]Role, len(t.AllowedRoles))
			copy(out, t.AllowedRoles)
			return out
		}
	}
	return nil
}

// DetermineProgressState derives the workflow state from section completion.
// Once the assignment is at or beyond EmployeeSubmitted the derivation is a
// no-op: completing further sections no longer moves the workflow.
func (m *Machine) DetermineProgressState(hasEmployeeProgress, hasManagerProgress bool, current State) State {
	if current.AtOrBeyond(StateEmployeeSubmitted) {
		return current
	}
	switch {
	case hasEmployeeProgress && hasManagerProgress:
		return StateBothInProgress
	case hasEmployeeProgress:
		return StateEmployeeInProgress
	case hasManagerProgress:
		return StateManagerInProgress
	case current == StateAssigned || current == StateInitialized:
		return current
	default:
		return StateAssigned
	}
}

// DetermineProgressStateFromStartedWork derives the workflow state when a
// party has started working but no section is complete yet.
func (m *Machine) DetermineProgressStateFromStartedWork(current State, employeeStarted, managerStarted bool) State {
	if current.AtOrBeyond(StateEmployeeSubmitted) {
		return current
	}
	switch current {
	case StateAssigned, StateInitialized:
		switch {
		case employeeStarted && managerStarted:
			return StateBothInProgress
		case employeeStarted:
			return StateEmployeeInProgress
		case managerStarted:
			return StateManagerInProgress
		}
	case StateEmployeeInProgress:
		if managerStarted {
			return StateBothInProgress
		}
	case StateManagerInProgress:
		if employeeStarted {
			return StateBothInProgress
		}
	}
	return current
}

// DetermineSubmissionState derives the composite state after a submission.
// An employee submission with no manager review required short-circuits
// straight to Finalized. Calling this with neither side submitted is a
// precondition violation.
func (m *Machine) DetermineSubmissionState(employeeSubmitted, managerSubmitted, requiresManagerReview bool) (State, error) {
	if !employeeSubmitted && !managerSubmitted {
		return "", ErrNothingSubmitted
	}
	if employeeSubmitted && !requiresManagerReview {
		return StateFinalized, nil
	}
	switch {
	case employeeSubmitted && managerSubmitted:
		return StateBothSubmitted, nil
	case employeeSubmitted:
		return StateEmployeeSubmitted, nil
	default:
		return StateManagerSubmitted, nil
	}
}
