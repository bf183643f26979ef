package workflow

// State represents a workflow state in the review assignment lifecycle
type State string

const (
	StateAssigned                State = "ASSIGNED"
	StateInitialized             State = "INITIALIZED"
	StateEmployeeInProgress      State = "EMPLOYEE_IN_PROGRESS"
	StateManagerInProgress       State = "MANAGER_IN_PROGRESS"
	StateBothInProgress          State = "BOTH_IN_PROGRESS"
	StateEmployeeSubmitted       State = "EMPLOYEE_SUBMITTED"
	StateManagerSubmitted        State = "MANAGER_SUBMITTED"
	StateBothSubmitted           State = "BOTH_SUBMITTED"
	StateInReview                State = "IN_REVIEW"
	StateReviewFinished          State = "REVIEW_FINISHED"
	StateEmployeeReviewConfirmed State = "EMPLOYEE_REVIEW_CONFIRMED"
	StateManagerReviewConfirmed  State = "MANAGER_REVIEW_CONFIRMED"
	StateFinalized               State = "FINALIZED"
)

// orderedStates declares lifecycle order. Ordinal comparisons ("at or beyond
// submission") derive from this slice, so new states must be inserted at the
// position matching their lifecycle stage.
var orderedStates = []State{
	StateAssigned,
	StateInitialized,
	StateEmployeeInProgress,
	StateManagerInProgress,
	StateBothInProgress,
	StateEmployeeSubmitted,
	StateManagerSubmitted,
	StateBothSubmitted,
	StateInReview,
	StateReviewFinished,
	StateEmployeeReviewConfirmed,
	StateManagerReviewConfirmed,
	StateFinalized,
}

var stateRank = func() map[State]int {
	ranks := make(map[State]int, len(orderedStates))
	for i, s := range orderedStates {
		ranks[s] = i
	}
	return ranks
}()

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// IsValid returns true if the state is a defined workflow state
func (s State) IsValid() bool {
	_, ok := stateRank[s]
	return ok
}

// IsTerminal returns true if no further transitions are allowed from the state
func (s State) IsTerminal() bool {
	return s == StateFinalized
}

// Rank returns the ordinal position of the state in the lifecycle order.
// Unknown states rank as -1.
func (s State) Rank() int {
	rank, ok := stateRank[s]
	if !ok {
		return -1
	}
	return rank
}

// AtOrBeyond reports whether the state is at or past the given lifecycle stage
func (s State) AtOrBeyond(other State) bool {
	return s.IsValid() && other.IsValid() && s.Rank() >= other.Rank()
}

// AllStates returns the lifecycle states in declared order
func AllStates() []State {
	out := make([]State, len(orderedStates))
	copy(out, orderedStates)
	return out
}
