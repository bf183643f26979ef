package workflow

import "fmt"

// StateTransition describes a legal forward step in normal progression.
// The trigger text is descriptive only and carries no authorization.
type StateTransition struct {
	Target  State
	Trigger string
}

// ReopenTransition describes a legal backward step. Reopening is role-gated:
// only the listed roles may request it, matched case-insensitively. Data-level
// scoping (a team lead reopening only for their own reports) is the caller's
// responsibility.
type ReopenTransition struct {
	Target       State
	Reason       string
	AllowedRoles []Role
}

// forwardTransitions maps each non-terminal state to its legal successors.
// StateFinalized maps to an empty set: nothing ever leaves it.
var forwardTransitions = map[State][]StateTransition{
	StateAssigned: {
		{StateInitialized, "assignment acknowledged"},
		{StateEmployeeInProgress, "employee started filling"},
		{StateManagerInProgress, "manager started filling"},
		{StateBothInProgress, "both parties started filling"},
	},
	StateInitialized: {
		{StateEmployeeInProgress, "employee started filling"},
		{StateManagerInProgress, "manager started filling"},
		{StateBothInProgress, "both parties started filling"},
	},
	StateEmployeeInProgress: {
		{StateBothInProgress, "manager joined filling"},
		{StateEmployeeSubmitted, "employee submitted questionnaire"},
		{StateFinalized, "employee submitted, no manager review required"},
	},
	StateManagerInProgress: {
		{StateBothInProgress, "employee joined filling"},
		{StateManagerSubmitted, "manager submitted questionnaire"},
	},
	StateBothInProgress: {
		{StateEmployeeSubmitted, "employee submitted questionnaire"},
		{StateManagerSubmitted, "manager submitted questionnaire"},
		{StateFinalized, "employee submitted, no manager review required"},
	},
	StateEmployeeSubmitted: {
		{StateBothSubmitted, "manager submitted questionnaire"},
	},
	StateManagerSubmitted: {
		{StateBothSubmitted, "employee submitted questionnaire"},
		{StateFinalized, "employee submitted, no manager review required"},
	},
	StateBothSubmitted: {
		{StateInReview, "review meeting initiated"},
	},
	StateInReview: {
		{StateReviewFinished, "review meeting finished"},
	},
	StateReviewFinished: {
		{StateEmployeeReviewConfirmed, "employee confirmed review outcome"},
	},
	StateEmployeeReviewConfirmed: {
		{StateManagerReviewConfirmed, "manager confirmed review outcome"},
		{StateFinalized, "manager finalized assignment"},
	},
	StateManagerReviewConfirmed: {
		{StateFinalized, "manager finalized assignment"},
	},
	StateFinalized: {},
}

// reopenTransitions lists the states that support reopening at all. A state
// absent from this map cannot be reopened. StateFinalized is never a key:
// a finalized assignment stays finalized, the only recourse is a new one.
var reopenTransitions = map[State][]ReopenTransition{
	StateInitialized: {
		{StateAssigned, "reset acknowledgement", []Role{RoleAdmin, RoleHRManager}},
	},
	StateEmployeeSubmitted: {
		{StateEmployeeInProgress, "employee needs to revise answers", []Role{RoleAdmin, RoleHRManager, RoleTeamLead}},
	},
	StateManagerSubmitted: {
		{StateManagerInProgress, "manager needs to revise answers", []Role{RoleAdmin, RoleHRManager, RoleTeamLead}},
	},
	StateBothSubmitted: {
		{StateEmployeeSubmitted, "manager submission withdrawn for correction", []Role{RoleAdmin, RoleHRManager}},
		{StateManagerSubmitted, "employee submission withdrawn for correction", []Role{RoleAdmin, RoleHRManager}},
	},
	StateReviewFinished: {
		{StateInReview, "review meeting resumed", []Role{RoleAdmin, RoleHRManager}},
	},
	StateEmployeeReviewConfirmed: {
		{StateReviewFinished, "employee confirmation revoked", []Role{RoleAdmin, RoleHRManager}},
	},
}

func init() {
	// Every non-terminal state needs a forward entry; the ordering slice and
	// the transition tables are maintained by hand and can drift apart.
	for _, s := range orderedStates {
		if s.IsTerminal() {
			continue
		}
		entries, ok := forwardTransitions[s]
		if !ok || len(entries) == 0 {
			panic(fmt.Sprintf("workflow: state %s has no forward transitions", s))
		}
	}
	for from, entries := range forwardTransitions {
		if !from.IsValid() {
			panic(fmt.Sprintf("workflow: forward table keyed by unknown state %s", from))
		}
		for _, t := range entries {
			if !t.Target.IsValid() {
				panic(fmt.Sprintf("workflow: forward target %s from %s is not a state", t.Target, from))
			}
		}
	}
	for from, entries := range reopenTransitions {
		if !from.IsValid() || from.IsTerminal() {
			panic(fmt.Sprintf("workflow: reopen table keyed by illegal state %s", from))
		}
		for _, t := range entries {
			if !t.Target.IsValid() {
				panic(fmt.Sprintf("workflow: reopen target %s from %s is not a state", t.Target, from))
			}
			if t.Target.Rank() >= from.Rank() {
				panic(fmt.Sprintf("workflow: reopen %s -> %s does not move backward", from, t.Target))
			}
			if len(t.AllowedRoles) == 0 {
				panic(fmt.Sprintf("workflow: reopen %s -> %s has no allowed roles", from, t.Target))
			}
		}
	}
}
