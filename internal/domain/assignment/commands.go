package assignment

import (
	"time"

	"github.com/da-kil/reviewflow/internal/domain/entity"
	"github.com/da-kil/reviewflow/internal/domain/event"
	"github.com/da-kil/reviewflow/internal/domain/workflow"
)

// New creates an assignment by raising its first event. The caller supplies
// all identifiers and timestamps; nothing is resolved here.
func New(id, templateID, employeeID, assignedBy string, dueDate time.Time,
	sectionIDs []string, requiresManagerReview bool, at time.Time) (*Assignment, error) {

	if employeeID == "" {
		return nil, ErrEmptyEmployee
	}
	if templateID == "" {
		return nil, ErrEmptyTemplate
	}
	if len(sectionIDs) == 0 {
		return nil, ErrNoSections
	}

	a := &Assignment{}
	a.raise(&event.AssignmentCreated{
		Base:                  event.NewBase(id, at),
		TemplateID:            templateID,
		EmployeeID:            employeeID,
		AssignedBy:            assignedBy,
		DueDate:               dueDate,
		RequiresManagerReview: requiresManagerReview,
		SectionIDs:            sectionIDs,
	})
	return a, nil
}

// StartWork marks one party as having begun filling. Re-starting is rejected.
func (a *Assignment) StartWork(role workflow.Role, at time.Time) error {
	if err := a.guardMutable(); err != nil {
		return err
	}
	switch {
	case role.Equals(workflow.RoleEmployee):
		if a.EmployeeWorkStartedAt != nil {
			return ErrWorkAlreadyStarted
		}
	case role.Equals(workflow.RoleManager):
		if a.ManagerWorkStartedAt != nil {
			return ErrWorkAlreadyStarted
		}
	default:
		return ErrUnknownRole
	}
	a.raise(&event.WorkStarted{Base: event.NewBase(a.ID, at), Role: role})
	return nil
}

// CompleteWork marks one party's filling work as done, auto-starting first if
// work was never explicitly started.
func (a *Assignment) CompleteWork(role workflow.Role, at time.Time) error {
	if err := a.guardMutable(); err != nil {
		return err
	}
	var started, completed *time.Time
	switch {
	case role.Equals(workflow.RoleEmployee):
		started, completed = a.EmployeeWorkStartedAt, a.EmployeeWorkCompletedAt
	case role.Equals(workflow.RoleManager):
		started, completed = a.ManagerWorkStartedAt, a.ManagerWorkCompletedAt
	default:
		return ErrUnknownRole
	}
	if completed != nil {
		return ErrWorkAlreadyCompleted
	}
	if started == nil {
		a.raise(&event.WorkStarted{Base: event.NewBase(a.ID, at), Role: role})
	}
	a.raise(&event.WorkCompleted{Base: event.NewBase(a.ID, at), Role: role})
	return nil
}

// ExtendDueDate moves the due date. An unchanged date is a silent no-op.
func (a *Assignment) ExtendDueDate(newDueDate time.Time, reason string, at time.Time) error {
	if err := a.guardMutable(); err != nil {
		return err
	}
	if newDueDate.Equal(a.DueDate) {
		return nil
	}
	a.raise(&event.DueDateExtended{
		Base:       event.NewBase(a.ID, at),
		NewDueDate: newDueDate,
		Reason:     reason,
	})
	return nil
}

// Withdraw takes the assignment out of circulation. It is a terminal
// side-path independent of the workflow state.
func (a *Assignment) Withdraw(byWhom, reason string, at time.Time) error {
	if a.Withdrawn {
		return ErrAlreadyWithdrawn
	}
	if a.IsLocked() {
		return ErrLocked
	}
	a.raise(&event.AssignmentWithdrawn{
		Base:        event.NewBase(a.ID, at),
		WithdrawnBy: byWhom,
		Reason:      reason,
	})
	return nil
}

// CompleteSectionAsEmployee marks one section complete for the employee side
func (a *Assignment) CompleteSectionAsEmployee(sectionID, completedBy string, at time.Time) error {
	return a.completeSection(sectionID, completedBy, workflow.RoleEmployee, at)
}

// CompleteSectionAsManager marks one section complete for the manager side
func (a *Assignment) CompleteSectionAsManager(sectionID, completedBy string, at time.Time) error {
	return a.completeSection(sectionID, completedBy, workflow.RoleManager, at)
}

func (a *Assignment) completeSection(sectionID, completedBy string, role workflow.Role, at time.Time) error {
	if err := a.guardMutable(); err != nil {
		return err
	}
	idx := a.sectionIndex(sectionID)
	if idx < 0 {
		return ErrUnknownSection
	}
	if a.Sections[idx].IsCompletedBy(role.Equals(workflow.RoleEmployee)) {
		return ErrSectionAlreadyComplete
	}
	a.raise(&event.SectionCompleted{
		Base:        event.NewBase(a.ID, at),
		SectionID:   sectionID,
		Role:        role,
		CompletedBy: completedBy,
	})
	return nil
}

// CompleteSectionsAsEmployee marks several sections complete for the employee
// side, silently skipping sections that side already completed.
func (a *Assignment) CompleteSectionsAsEmployee(sectionIDs []string, completedBy string, at time.Time) error {
	return a.completeSections(sectionIDs, completedBy, workflow.RoleEmployee, at)
}

// CompleteSectionsAsManager is the manager-side bulk variant
func (a *Assignment) CompleteSectionsAsManager(sectionIDs []string, completedBy string, at time.Time) error {
	return a.completeSections(sectionIDs, completedBy, workflow.RoleManager, at)
}

func (a *Assignment) completeSections(sectionIDs []string, completedBy string, role workflow.Role, at time.Time) error {
	if err := a.guardMutable(); err != nil {
		return err
	}
	// Validate the whole batch before raising anything so a bad section id
	// cannot leave the batch half applied.
	for _, id := range sectionIDs {
		if a.sectionIndex(id) < 0 {
			return ErrUnknownSection
		}
	}
	for _, id := range sectionIDs {
		idx := a.sectionIndex(id)
		if a.Sections[idx].IsCompletedBy(role.Equals(workflow.RoleEmployee)) {
			continue
		}
		a.raise(&event.SectionCompleted{
			Base:        event.NewBase(a.ID, at),
			SectionID:   id,
			Role:        role,
			CompletedBy: completedBy,
		})
	}
	return nil
}

// SubmitEmployeeQuestionnaire submits the employee side. Submission requires
// the employee to be mid-filling or the manager to have submitted already, so
// either order works. If no manager review is required the assignment
// finalizes immediately.
func (a *Assignment) SubmitEmployeeQuestionnaire(submittedBy string, at time.Time) error {
	if err := a.guardMutable(); err != nil {
		return err
	}
	if a.EmployeeSubmittedAt != nil {
		return ErrAlreadySubmitted
	}
	employeeInProgress := a.State == workflow.StateEmployeeInProgress || a.State == workflow.StateBothInProgress
	if !employeeInProgress && a.ManagerSubmittedAt == nil {
		return ErrSubmissionNotReady
	}
	a.raise(&event.EmployeeQuestionnaireSubmitted{
		Base:        event.NewBase(a.ID, at),
		SubmittedBy: submittedBy,
	})
	if !a.RequiresManagerReview {
		a.raise(&event.AssignmentFinalized{
			Base:        event.NewBase(a.ID, at),
			FinalizedBy: submittedBy,
		})
	}
	return nil
}

// SubmitManagerQuestionnaire submits the manager side
func (a *Assignment) SubmitManagerQuestionnaire(submittedBy string, at time.Time) error {
	if err := a.guardMutable(); err != nil {
		return err
	}
	if a.ManagerSubmittedAt != nil {
		return ErrAlreadySubmitted
	}
	managerInProgress := a.State == workflow.StateManagerInProgress || a.State == workflow.StateBothInProgress
	if !managerInProgress && a.EmployeeSubmittedAt == nil {
		return ErrSubmissionNotReady
	}
	a.raise(&event.ManagerQuestionnaireSubmitted{
		Base:        event.NewBase(a.ID, at),
		SubmittedBy: submittedBy,
	})
	return nil
}

// InitiateReview starts the synchronous review meeting, legal only once both
// sides have submitted.
func (a *Assignment) InitiateReview(initiatedBy string, at time.Time) error {
	if err := a.guardMutable(); err != nil {
		return err
	}
	if err := machine.CanTransitionForward(a.State, workflow.StateInReview); err != nil {
		return err
	}
	a.raise(&event.ReviewInitiated{
		Base:        event.NewBase(a.ID, at),
		InitiatedBy: initiatedBy,
	})
	return nil
}

// EditAnswerAsManagerDuringReview records a manager edit while the review
// meeting runs. The manager may edit any answer regardless of which role owns
// the section; the event is purely an audit trail and moves no state.
func (a *Assignment) EditAnswerAsManagerDuringReview(sectionID, questionID, newValue, editedBy string, at time.Time) error {
	if err := a.guardMutable(); err != nil {
		return err
	}
	if a.State != workflow.StateInReview {
		return ErrNotInReview
	}
	a.raise(&event.AnswerEdited{
		Base:       event.NewBase(a.ID, at),
		SectionID:  sectionID,
		QuestionID: questionID,
		NewValue:   newValue,
		EditedBy:   editedBy,
	})
	return nil
}

// FinishReviewMeeting ends the review meeting and records its summary
func (a *Assignment) FinishReviewMeeting(summary, finishedBy string, at time.Time) error {
	if err := a.guardMutable(); err != nil {
		return err
	}
	if err := machine.CanTransitionForward(a.State, workflow.StateReviewFinished); err != nil {
		return err
	}
	a.raise(&event.ReviewMeetingFinished{
		Base:       event.NewBase(a.ID, at),
		Summary:    summary,
		FinishedBy: finishedBy,
	})
	return nil
}

// ConfirmReviewOutcomeAsEmployee records the employee accepting the review
// outcome, legal only after the manager finished the meeting.
func (a *Assignment) ConfirmReviewOutcomeAsEmployee(confirmedBy string, at time.Time) error {
	if err := a.guardMutable(); err != nil {
		return err
	}
	if err := machine.CanTransitionForward(a.State, workflow.StateEmployeeReviewConfirmed); err != nil {
		return err
	}
	a.raise(&event.EmployeeReviewConfirmed{
		Base:        event.NewBase(a.ID, at),
		ConfirmedBy: confirmedBy,
	})
	return nil
}

// ConfirmReviewOutcomeAsManager records the manager's explicit confirmation,
// an optional step between the employee confirmation and finalization.
func (a *Assignment) ConfirmReviewOutcomeAsManager(confirmedBy string, at time.Time) error {
	if err := a.guardMutable(); err != nil {
		return err
	}
	if err := machine.CanTransitionForward(a.State, workflow.StateManagerReviewConfirmed); err != nil {
		return err
	}
	a.raise(&event.ManagerReviewConfirmed{
		Base:        event.NewBase(a.ID, at),
		ConfirmedBy: confirmedBy,
	})
	return nil
}

// FinalizeAsManager locks the assignment forever. The employee must have
// confirmed the review outcome first.
func (a *Assignment) FinalizeAsManager(finalizedBy string, at time.Time) error {
	if err := a.guardMutable(); err != nil {
		return err
	}
	if a.EmployeeConfirmedAt == nil {
		return ErrEmployeeNotConfirmed
	}
	if err := machine.CanTransitionForward(a.State, workflow.StateFinalized); err != nil {
		return err
	}
	a.raise(&event.AssignmentFinalized{
		Base:        event.NewBase(a.ID, at),
		FinalizedBy: finalizedBy,
	})
	return nil
}

// Reopen performs a role-gated backward transition. Only role membership is
// validated here; whether the requester may touch this particular employee's
// assignment is the caller's concern.
func (a *Assignment) Reopen(target workflow.State, role workflow.Role, requestedBy, reason string, at time.Time) error {
	if a.Withdrawn {
		return ErrWithdrawn
	}
	if err := machine.CanTransitionBackward(a.State, target, role); err != nil {
		return err
	}
	a.raise(&event.AssignmentReopened{
		Base:        event.NewBase(a.ID, at),
		Target:      target,
		Reason:      reason,
		RequestedBy: requestedBy,
		Role:        role,
	})
	return nil
}

// AddGoal creates a dynamically added objective. Goals only exist during
// in-progress stages, never predefined by the template.
func (a *Assignment) AddGoal(goalID, questionID string, addedByRole workflow.Role,
	from, to time.Time, objective, metric string, weighting float64,
	addedByEmployeeID string, at time.Time) error {

	if err := a.guardMutable(); err != nil {
		return err
	}
	if !a.isInProgress() {
		return ErrNotInProgress
	}
	if a.goalIndex(goalID) >= 0 {
		return ErrDuplicateGoal
	}
	goal, err := entity.NewGoal(goalID, questionID, addedByRole, from, to,
		objective, metric, weighting, at, addedByEmployeeID)
	if err != nil {
		return err
	}
	a.raise(&event.GoalAdded{Base: event.NewBase(a.ID, at), Goal: goal})
	return nil
}

// ModifyGoal appends one modification record to a goal's history
func (a *Assignment) ModifyGoal(goalID string, rec entity.GoalModificationRecord) error {
	if err := a.guardMutable(); err != nil {
		return err
	}
	idx := a.goalIndex(goalID)
	if idx < 0 {
		return ErrGoalNotFound
	}
	for _, existing := range a.Goals[idx].Modifications {
		if existing.Equal(rec) {
			return ErrDuplicateModification
		}
	}
	if _, err := a.Goals[idx].ApplyModification(rec); err != nil {
		return err
	}
	a.raise(&event.GoalModified{
		Base:   event.NewBase(a.ID, rec.ModifiedAt),
		GoalID: goalID,
		Record: rec,
	})
	return nil
}

// RatePredecessorGoal rates a goal carried over from a prior assignment. The
// snapshot is captured by the caller at rating time and never refreshed, so
// the rating reflects what was agreed back then even if the source goal is
// edited later.
func (a *Assignment) RatePredecessorGoal(ratingID, sourceAssignmentID, sourceGoalID, questionID string,
	snapshot entity.PredecessorGoalData, ratedByRole workflow.Role, degree float64,
	justification, ratedByEmployeeID string, at time.Time) error {

	if err := a.guardMutable(); err != nil {
		return err
	}
	if !a.isInProgress() {
		return ErrNotInProgress
	}
	if a.ratingIndex(ratingID) >= 0 {
		return ErrDuplicateRating
	}
	rating, err := entity.NewGoalRating(ratingID, sourceAssignmentID, sourceGoalID, questionID,
		snapshot, ratedByRole, degree, justification, at, ratedByEmployeeID)
	if err != nil {
		return err
	}
	a.raise(&event.GoalRatingAdded{Base: event.NewBase(a.ID, at), Rating: rating})
	return nil
}

// ModifyGoalRating appends one modification record to a rating's history
func (a *Assignment) ModifyGoalRating(ratingID string, rec entity.GoalRatingModificationRecord) error {
	if err := a.guardMutable(); err != nil {
		return err
	}
	idx := a.ratingIndex(ratingID)
	if idx < 0 {
		return ErrRatingNotFound
	}
	for _, existing := range a.Ratings[idx].Modifications {
		if existing.Equal(rec) {
			return ErrDuplicateModification
		}
	}
	if _, err := a.Ratings[idx].ApplyModification(rec); err != nil {
		return err
	}
	a.raise(&event.GoalRatingModified{
		Base:     event.NewBase(a.ID, rec.ModifiedAt),
		RatingID: ratingID,
		Record:   rec,
	})
	return nil
}

func (a *Assignment) isInProgress() bool {
	switch a.State {
	case workflow.StateEmployeeInProgress, workflow.StateManagerInProgress, workflow.StateBothInProgress:
		return true
	default:
		return false
	}
}
