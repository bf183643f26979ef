package assignment

import (
	"github.com/da-kil/reviewflow/internal/domain/entity"
	"github.com/da-kil/reviewflow/internal/domain/event"
	"github.com/da-kil/reviewflow/internal/domain/workflow"
)

// apply is the single reducer behind both live command execution and history
// replay. Each branch mutates exactly the fields its event represents;
// anything an event does not carry stays untouched. Events reaching this
// point were validated when they were raised, so apply never fails.
func (a *Assignment) apply(evt event.Event) {
	switch e := evt.(type) {
	case *event.AssignmentCreated:
		a.applyCreated(e)
	case *event.WorkStarted:
		a.applyWorkStarted(e)
	case *event.WorkCompleted:
		a.applyWorkCompleted(e)
	case *event.DueDateExtended:
		a.DueDate = e.NewDueDate
	case *event.AssignmentWithdrawn:
		at := e.Timestamp
		a.Withdrawn = true
		a.WithdrawnBy = e.WithdrawnBy
		a.WithdrawnAt = &at
		a.WithdrawReason = e.Reason
	case *event.SectionCompleted:
		a.applySectionCompleted(e)
	case *event.EmployeeQuestionnaireSubmitted:
		at := e.Timestamp
		a.EmployeeSubmittedAt = &at
		a.EmployeeSubmittedBy = e.SubmittedBy
		a.applySubmissionState()
	case *event.ManagerQuestionnaireSubmitted:
		at := e.Timestamp
		a.ManagerSubmittedAt = &at
		a.ManagerSubmittedBy = e.SubmittedBy
		a.applySubmissionState()
	case *event.ReviewInitiated:
		at := e.Timestamp
		a.State = workflow.StateInReview
		a.ReviewStartedAt = &at
		a.ReviewStartedBy = e.InitiatedBy
	case *event.AnswerEdited:
		a.ReviewEdits = append(a.ReviewEdits, ReviewEdit{
			SectionID:  e.SectionID,
			QuestionID: e.QuestionID,
			NewValue:   e.NewValue,
			EditedBy:   e.EditedBy,
			EditedAt:   e.Timestamp,
		})
	case *event.ReviewMeetingFinished:
		at := e.Timestamp
		a.State = workflow.StateReviewFinished
		a.ReviewFinishedAt = &at
		a.ReviewFinishedBy = e.FinishedBy
		a.ReviewSummary = e.Summary
	case *event.EmployeeReviewConfirmed:
		at := e.Timestamp
		a.State = workflow.StateEmployeeReviewConfirmed
		a.EmployeeConfirmedAt = &at
		a.EmployeeConfirmedBy = e.ConfirmedBy
	case *event.ManagerReviewConfirmed:
		at := e.Timestamp
		a.State = workflow.StateManagerReviewConfirmed
		a.ManagerConfirmedAt = &at
		a.ManagerConfirmedBy = e.ConfirmedBy
	case *event.AssignmentFinalized:
		at := e.Timestamp
		a.State = workflow.StateFinalized
		a.FinalizedAt = &at
		a.FinalizedBy = e.FinalizedBy
	case *event.AssignmentReopened:
		a.applyReopened(e)
	case *event.GoalAdded:
		a.Goals = append(a.Goals, e.Goal)
	case *event.GoalModified:
		if idx := a.goalIndex(e.GoalID); idx >= 0 {
			if next, err := a.Goals[idx].ApplyModification(e.Record); err == nil {
				a.Goals[idx] = next
			}
		}
	case *event.GoalRatingAdded:
		a.Ratings = append(a.Ratings, e.Rating)
	case *event.GoalRatingModified:
		if idx := a.ratingIndex(e.RatingID); idx >= 0 {
			if next, err := a.Ratings[idx].ApplyModification(e.Record); err == nil {
				a.Ratings[idx] = next
			}
		}
	}
	a.version++
}

func (a *Assignment) applyCreated(e *event.AssignmentCreated) {
	a.ID = e.AssignmentID
	a.TemplateID = e.TemplateID
	a.EmployeeID = e.EmployeeID
	a.AssignedBy = e.AssignedBy
	a.AssignedAt = e.Timestamp
	a.DueDate = e.DueDate
	a.RequiresManagerReview = e.RequiresManagerReview
	a.State = workflow.StateAssigned
	a.Sections = make([]entity.SectionProgress, 0, len(e.SectionIDs))
	for _, id := range e.SectionIDs {
		a.Sections = append(a.Sections, entity.NewSectionProgress(id))
	}
}

func (a *Assignment) applyWorkStarted(e *event.WorkStarted) {
	at := e.Timestamp
	if e.Role.Equals(workflow.RoleEmployee) {
		a.EmployeeWorkStartedAt = &at
	} else {
		a.ManagerWorkStartedAt = &at
	}
	a.State = machine.DetermineProgressStateFromStartedWork(a.State,
		a.EmployeeWorkStartedAt != nil, a.ManagerWorkStartedAt != nil)
}

func (a *Assignment) applyWorkCompleted(e *event.WorkCompleted) {
	at := e.Timestamp
	if e.Role.Equals(workflow.RoleEmployee) {
		a.EmployeeWorkCompletedAt = &at
	} else {
		a.ManagerWorkCompletedAt = &at
	}
}

func (a *Assignment) applySectionCompleted(e *event.SectionCompleted) {
	idx := a.sectionIndex(e.SectionID)
	if idx < 0 {
		return
	}
	if e.Role.Equals(workflow.RoleEmployee) {
		a.Sections[idx] = a.Sections[idx].WithEmployeeCompleted(e.Timestamp)
	} else {
		a.Sections[idx] = a.Sections[idx].WithManagerCompleted(e.Timestamp)
	}
	// Section completion stops driving the workflow once submission started.
	// Started work counts as progress too, so completing a section on one side
	// never drops the other side's in-progress standing.
	a.State = machine.DetermineProgressState(
		a.anyEmployeeSectionCompleted() || a.EmployeeWorkStartedAt != nil,
		a.anyManagerSectionCompleted() || a.ManagerWorkStartedAt != nil,
		a.State)
}

func (a *Assignment) applySubmissionState() {
	next, err := machine.DetermineSubmissionState(
		a.EmployeeSubmittedAt != nil, a.ManagerSubmittedAt != nil, a.RequiresManagerReview)
	if err != nil {
		return
	}
	a.State = next
}

// applyReopened moves the state backward and clears the phase markers that
// the reopened stages invalidated, so a re-run of those stages starts clean.
func (a *Assignment) applyReopened(e *event.AssignmentReopened) {
	target := e.Target
	a.State = target

	if target.Rank() < workflow.StateManagerReviewConfirmed.Rank() {
		a.ManagerConfirmedAt = nil
		a.ManagerConfirmedBy = ""
	}
	if target.Rank() < workflow.StateEmployeeReviewConfirmed.Rank() {
		a.EmployeeConfirmedAt = nil
		a.EmployeeConfirmedBy = ""
	}
	if target.Rank() < workflow.StateReviewFinished.Rank() {
		a.ReviewFinishedAt = nil
		a.ReviewFinishedBy = ""
		a.ReviewSummary = ""
	}
	if target.Rank() < workflow.StateInReview.Rank() {
		a.ReviewStartedAt = nil
		a.ReviewStartedBy = ""
	}
	if target != workflow.StateManagerSubmitted && target.Rank() < workflow.StateBothSubmitted.Rank() {
		a.ManagerSubmittedAt = nil
		a.ManagerSubmittedBy = ""
	}
	if target != workflow.StateEmployeeSubmitted && target.Rank() < workflow.StateBothSubmitted.Rank() {
		a.EmployeeSubmittedAt = nil
		a.EmployeeSubmittedBy = ""
	}
}
