package assignment

import (
	"time"

	"github.com/da-kil/reviewflow/internal/domain/entity"
	"github.com/da-kil/reviewflow/internal/domain/event"
	"github.com/da-kil/reviewflow/internal/domain/workflow"
)

// machine is the stateless transition validator shared by all aggregates
var machine = workflow.NewMachine()

// ReviewEdit is an audit-trail entry for a manager edit during the live
// review meeting. Edits never move the workflow state.
type ReviewEdit struct {
	SectionID  string    `json:"section_id"`
	QuestionID string    `json:"question_id"`
	NewValue   string    `json:"new_value"`
	EditedBy   string    `json:"edited_by"`
	EditedAt   time.Time `json:"edited_at"`
}

// Assignment is the aggregate root for one collaborative performance-review
// instance shared between an employee and their manager. All mutation goes
// through command methods that raise events; the apply methods that consume
// those events are the same code path used to replay history on load.
type Assignment struct {
	ID                    string
	TemplateID            string
	EmployeeID            string
	AssignedBy            string
	AssignedAt            time.Time
	DueDate               time.Time
	RequiresManagerReview bool
	State                 workflow.State

	Withdrawn      bool
	WithdrawnBy    string
	WithdrawnAt    *time.Time
	WithdrawReason string

	EmployeeWorkStartedAt   *time.Time
	ManagerWorkStartedAt    *time.Time
	EmployeeWorkCompletedAt *time.Time
	ManagerWorkCompletedAt  *time.Time

	Sections []entity.SectionProgress

	EmployeeSubmittedAt *time.Time
	EmployeeSubmittedBy string
	ManagerSubmittedAt  *time.Time
	ManagerSubmittedBy  string

	ReviewStartedAt     *time.Time
	ReviewStartedBy     string
	ReviewFinishedAt    *time.Time
	ReviewFinishedBy    string
	ReviewSummary       string
	EmployeeConfirmedAt *time.Time
	EmployeeConfirmedBy string
	ManagerConfirmedAt  *time.Time
	ManagerConfirmedBy  string
	FinalizedAt         *time.Time
	FinalizedBy         string

	ReviewEdits []ReviewEdit
	Goals       []entity.Goal
	Ratings     []entity.GoalRating

	version int
	changes []event.Event
}

// Replay reconstructs an assignment by folding its full ordered event history
// over a zero-value aggregate. Replayed state is field-for-field identical to
// the state reached by applying the same events incrementally.
func Replay(history []event.Event) (*Assignment, error) {
	if len(history) == 0 {
		return nil, ErrEmptyHistory
	}
	if _, ok := history[0].(*event.AssignmentCreated); !ok {
		return nil, ErrUnexpectedFirstEvent
	}
	a := &Assignment{}
	for _, evt := range history {
		a.apply(evt)
	}
	return a, nil
}

// Version returns the number of events applied to the aggregate, including
// uncommitted ones. The expected version for an optimistic append is
// Version() - len(Changes()).
func (a *Assignment) Version() int {
	return a.version
}

// Changes returns the events raised since the last commit, in order
func (a *Assignment) Changes() []event.Event {
	return a.changes
}

// MarkCommitted discards the uncommitted change list after a successful append
func (a *Assignment) MarkCommitted() {
	a.changes = nil
}

// IsLocked reports whether the assignment is permanently immutable
func (a *Assignment) IsLocked() bool {
	return a.State == workflow.StateFinalized
}

// CanEmployeeEdit reports whether the employee may edit their answers.
// The employee loses edit rights the moment their side is submitted.
func (a *Assignment) CanEmployeeEdit() bool {
	switch a.State {
	case workflow.StateAssigned, workflow.StateInitialized,
		workflow.StateEmployeeInProgress, workflow.StateManagerInProgress,
		workflow.StateBothInProgress, workflow.StateManagerSubmitted:
		return !a.Withdrawn
	default:
		return false
	}
}

// CanManagerEdit reports whether the manager may edit outside the review
// meeting. Review-time editing is covered by CanManagerEditDuringReview.
func (a *Assignment) CanManagerEdit() bool {
	switch a.State {
	case workflow.StateAssigned, workflow.StateInitialized,
		workflow.StateEmployeeInProgress, workflow.StateManagerInProgress,
		workflow.StateBothInProgress, workflow.StateEmployeeSubmitted:
		return !a.Withdrawn
	default:
		return false
	}
}

// CanManagerEditDuringReview reports whether the manager holds full edit
// rights in the live review meeting, regardless of section ownership.
func (a *Assignment) CanManagerEditDuringReview() bool {
	return a.State == workflow.StateInReview
}

// IsEmployeeReadOnlyDuringReview reports whether the employee is locked out
// while the review meeting runs.
func (a *Assignment) IsEmployeeReadOnlyDuringReview() bool {
	return a.State == workflow.StateInReview
}

// ValidNextStates exposes the legal forward transitions for presentation layers
func (a *Assignment) ValidNextStates() []workflow.StateTransition {
	return machine.ValidNextStates(a.State)
}

// ValidReopenStates exposes the legal reopen transitions for presentation layers
func (a *Assignment) ValidReopenStates() []workflow.ReopenTransition {
	return machine.ValidReopenStates(a.State)
}

// raise applies an event to current state and records it as uncommitted
func (a *Assignment) raise(evt event.Event) {
	a.apply(evt)
	a.changes = append(a.changes, evt)
}

// guardMutable is the shared precondition of every mutating command
func (a *Assignment) guardMutable() error {
	if a.Withdrawn {
		return ErrWithdrawn
	}
	if a.IsLocked() {
		return ErrLocked
	}
	return nil
}

func (a *Assignment) sectionIndex(sectionID string) int {
	for i, s := range a.Sections {
		if s.SectionID == sectionID {
			return i
		}
	}
	return -1
}

func (a *Assignment) goalIndex(goalID string) int {
	for i, g := range a.Goals {
		if g.ID == goalID {
			return i
		}
	}
	return -1
}

func (a *Assignment) ratingIndex(ratingID string) int {
	for i, r := range a.Ratings {
		if r.ID == ratingID {
			return i
		}
	}
	return -1
}

func (a *Assignment) anyEmployeeSectionCompleted() bool {
	for _, s := range a.Sections {
		if s.IsEmployeeCompleted {
			return true
		}
	}
	return false
}

func (a *Assignment) anyManagerSectionCompleted() bool {
	for _, s := range a.Sections {
		if s.IsManagerCompleted {
			return true
		}
	}
	return false
}
