package event

import (
	"time"

	"github.com/da-kil/reviewflow/internal/domain/entity"
	"github.com/da-kil/reviewflow/internal/domain/workflow"
)

// AssignmentCreated starts the event stream of every assignment
type AssignmentCreated struct {
	Base
	TemplateID            string    `json:"template_id"`
	EmployeeID            string    `json:"employee_id"`
	AssignedBy            string    `json:"assigned_by"`
	DueDate               time.Time `json:"due_date"`
	RequiresManagerReview bool      `json:"requires_manager_review"`
	SectionIDs            []string  `json:"section_ids"`
}

func (AssignmentCreated) EventType() Type { return TypeAssignmentCreated }

// WorkStarted records that one party began filling the questionnaire
type WorkStarted struct {
	Base
	Role workflow.Role `json:"role"`
}

func (WorkStarted) EventType() Type { return TypeWorkStarted }

// WorkCompleted records that one party finished their filling work
type WorkCompleted struct {
	Base
	Role workflow.Role `json:"role"`
}

func (WorkCompleted) EventType() Type { return TypeWorkCompleted }

// DueDateExtended records a due date change with an optional reason
type DueDateExtended struct {
	Base
	NewDueDate time.Time `json:"new_due_date"`
	Reason     string    `json:"reason,omitempty"`
}

func (DueDateExtended) EventType() Type { return TypeDueDateExtended }

// AssignmentWithdrawn records the terminal side-path of withdrawing the assignment
type AssignmentWithdrawn struct {
	Base
	WithdrawnBy string `json:"withdrawn_by"`
	Reason      string `json:"reason,omitempty"`
}

func (AssignmentWithdrawn) EventType() Type { return TypeAssignmentWithdrawn }

// SectionCompleted records one party completing one section
type SectionCompleted struct {
	Base
	SectionID   string        `json:"section_id"`
	Role        workflow.Role `json:"role"`
	CompletedBy string        `json:"completed_by"`
}

func (SectionCompleted) EventType() Type { return TypeSectionCompleted }

// EmployeeQuestionnaireSubmitted records the employee-side submission
type EmployeeQuestionnaireSubmitted struct {
	Base
	SubmittedBy string `json:"submitted_by"`
}

func (EmployeeQuestionnaireSubmitted) EventType() Type { return TypeEmployeeSubmitted }

// ManagerQuestionnaireSubmitted records the manager-side submission
type ManagerQuestionnaireSubmitted struct {
	Base
	SubmittedBy string `json:"submitted_by"`
}

func (ManagerQuestionnaireSubmitted) EventType() Type { return TypeManagerSubmitted }

// ReviewInitiated records the start of the synchronous review meeting
type ReviewInitiated struct {
	Base
	InitiatedBy string `json:"initiated_by"`
}

func (ReviewInitiated) EventType() Type { return TypeReviewInitiated }

// AnswerEdited is an audit-trail record of a manager edit during the live
// review. It never changes the workflow state.
type AnswerEdited struct {
	Base
	SectionID  string `json:"section_id"`
	QuestionID string `json:"question_id"`
	NewValue   string `json:"new_value"`
	EditedBy   string `json:"edited_by"`
}

func (AnswerEdited) EventType() Type { return TypeAnswerEdited }

// ReviewMeetingFinished records the end of the review meeting with its summary
type ReviewMeetingFinished struct {
	Base
	Summary    string `json:"summary,omitempty"`
	FinishedBy string `json:"finished_by"`
}

func (ReviewMeetingFinished) EventType() Type { return TypeReviewMeetingFinished }

// EmployeeReviewConfirmed records the employee confirming the review outcome
type EmployeeReviewConfirmed struct {
	Base
	ConfirmedBy string `json:"confirmed_by"`
}

func (EmployeeReviewConfirmed) EventType() Type { return TypeEmployeeReviewConfirmed }

// ManagerReviewConfirmed records the manager confirming the review outcome
type ManagerReviewConfirmed struct {
	Base
	ConfirmedBy string `json:"confirmed_by"`
}

func (ManagerReviewConfirmed) EventType() Type { return TypeManagerReviewConfirmed }

// AssignmentFinalized moves the assignment to its immutable terminal state
type AssignmentFinalized struct {
	Base
	FinalizedBy string `json:"finalized_by"`
}

func (AssignmentFinalized) EventType() Type { return TypeAssignmentFinalized }

// AssignmentReopened records an authorized backward transition
type AssignmentReopened struct {
	Base
	Target      workflow.State `json:"target"`
	Reason      string         `json:"reason,omitempty"`
	RequestedBy string         `json:"requested_by"`
	Role        workflow.Role  `json:"role"`
}

func (AssignmentReopened) EventType() Type { return TypeAssignmentReopened }

// GoalAdded records a goal created during an in-progress stage
type GoalAdded struct {
	Base
	Goal entity.Goal `json:"goal"`
}

func (GoalAdded) EventType() Type { return TypeGoalAdded }

// GoalModified records one append-only edit to a goal
type GoalModified struct {
	Base
	GoalID string                        `json:"goal_id"`
	Record entity.GoalModificationRecord `json:"record"`
}

func (GoalModified) EventType() Type { return TypeGoalModified }

// GoalRatingAdded records a rating of a predecessor goal, snapshot included
type GoalRatingAdded struct {
	Base
	Rating entity.GoalRating `json:"rating"`
}

func (GoalRatingAdded) EventType() Type { return TypeGoalRatingAdded }

// GoalRatingModified records one append-only edit to a rating
type GoalRatingModified struct {
	Base
	RatingID string                              `json:"rating_id"`
	Record   entity.GoalRatingModificationRecord `json:"record"`
}

func (GoalRatingModified) EventType() Type { return TypeGoalRatingModified }
