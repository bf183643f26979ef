package event

// Type identifies the type of domain event
type Type string

const (
	TypeAssignmentCreated       Type = "assignment.created"
	TypeWorkStarted             Type = "assignment.work_started"
	TypeWorkCompleted           Type = "assignment.work_completed"
	TypeDueDateExtended         Type = "assignment.due_date_extended"
	TypeAssignmentWithdrawn     Type = "assignment.withdrawn"
	TypeSectionCompleted        Type = "assignment.section_completed"
	TypeEmployeeSubmitted       Type = "assignment.employee_submitted"
	TypeManagerSubmitted        Type = "assignment.manager_submitted"
	TypeReviewInitiated         Type = "review.initiated"
	TypeAnswerEdited            Type = "review.answer_edited"
	TypeReviewMeetingFinished   Type = "review.meeting_finished"
	TypeEmployeeReviewConfirmed Type = "review.employee_confirmed"
	TypeManagerReviewConfirmed  Type = "review.manager_confirmed"
	TypeAssignmentFinalized     Type = "assignment.finalized"
	TypeAssignmentReopened      Type = "assignment.reopened"
	TypeGoalAdded               Type = "goal.added"
	TypeGoalModified            Type = "goal.modified"
	TypeGoalRatingAdded         Type = "goal.rating_added"
	TypeGoalRatingModified      Type = "goal.rating_modified"
)

// String returns the string representation of the event type
func (t Type) String() string {
	return string(t)
}

// IsValid checks if the event type is one of the defined constants
func (t Type) IsValid() bool {
	_, ok := registry[t]
	return ok
}
