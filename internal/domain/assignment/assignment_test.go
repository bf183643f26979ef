package assignment

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/da-kil/reviewflow/internal/domain/entity"
	"github.com/da-kil/reviewflow/internal/domain/event"
	"github.com/da-kil/reviewflow/internal/domain/workflow"
)

var base = time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

func at(hours int) time.Time {
	return base.Add(time.Duration(hours) * time.Hour)
}

func newTestAssignment(t *testing.T, requiresManagerReview bool) *Assignment {
	t.Helper()
	a, err := New("assignment-1", "tpl-1", "emp-1", "hr-1",
		base.AddDate(0, 1, 0), []string{"s1", "s2"}, requiresManagerReview, base)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return a
}

// submittedAssignment drives a fresh assignment to EmployeeSubmitted
func submittedAssignment(t *testing.T) *Assignment {
	t.Helper()
	a := newTestAssignment(t, true)
	if err := a.StartWork(workflow.RoleEmployee, at(1)); err != nil {
		t.Fatalf("StartWork() error = %v", err)
	}
	if err := a.CompleteSectionsAsEmployee([]string{"s1", "s2"}, "emp-1", at(2)); err != nil {
		t.Fatalf("CompleteSectionsAsEmployee() error = %v", err)
	}
	if err := a.SubmitEmployeeQuestionnaire("emp-1", at(3)); err != nil {
		t.Fatalf("SubmitEmployeeQuestionnaire() error = %v", err)
	}
	return a
}

func TestNewValidation(t *testing.T) {
	due := base.AddDate(0, 1, 0)

	tests := []struct {
		name       string
		templateID string
		employeeID string
		sections   []string
		wantErr    error
	}{
		{"missing employee", "tpl", "", []string{"s1"}, ErrEmptyEmployee},
		{"missing template", "", "emp", []string{"s1"}, ErrEmptyTemplate},
		{"no sections", "tpl", "emp", nil, ErrNoSections},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("id", tt.templateID, tt.employeeID, "hr-1", due, tt.sections, true, base)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewStartsInAssigned(t *testing.T) {
	a := newTestAssignment(t, true)

	if a.State != workflow.StateAssigned {
		t.Errorf("state = %s, want %s", a.State, workflow.StateAssigned)
	}
	if a.Version() != 1 || len(a.Changes()) != 1 {
		t.Errorf("version = %d, changes = %d, want 1/1", a.Version(), len(a.Changes()))
	}
	if len(a.Sections) != 2 {
		t.Errorf("sections = %d, want 2", len(a.Sections))
	}
}

func TestFullLifecycleWithManagerReview(t *testing.T) {
	a := newTestAssignment(t, true)

	steps := []struct {
		name string
		run  func() error
		want workflow.State
	}{
		{"employee starts", func() error { return a.StartWork(workflow.RoleEmployee, at(1)) }, workflow.StateEmployeeInProgress},
		{"manager joins", func() error { return a.StartWork(workflow.RoleManager, at(2)) }, workflow.StateBothInProgress},
		{"employee completes sections", func() error {
			return a.CompleteSectionsAsEmployee([]string{"s1", "s2"}, "emp-1", at(3))
		}, workflow.StateBothInProgress},
		{"employee submits", func() error { return a.SubmitEmployeeQuestionnaire("emp-1", at(4)) }, workflow.StateEmployeeSubmitted},
		{"manager submits", func() error { return a.SubmitManagerQuestionnaire("mgr-1", at(5)) }, workflow.StateBothSubmitted},
		{"review initiated", func() error { return a.InitiateReview("mgr-1", at(6)) }, workflow.StateInReview},
		{"manager edits during review", func() error {
			return a.EditAnswerAsManagerDuringReview("s1", "q3", "revised", "mgr-1", at(7))
		}, workflow.StateInReview},
		{"review finished", func() error { return a.FinishReviewMeeting("went well", "mgr-1", at(8)) }, workflow.StateReviewFinished},
		{"employee confirms", func() error { return a.ConfirmReviewOutcomeAsEmployee("emp-1", at(9)) }, workflow.StateEmployeeReviewConfirmed},
		{"manager confirms", func() error { return a.ConfirmReviewOutcomeAsManager("mgr-1", at(10)) }, workflow.StateManagerReviewConfirmed},
		{"manager finalizes", func() error { return a.FinalizeAsManager("mgr-1", at(11)) }, workflow.StateFinalized},
	}

	for _, step := range steps {
		if err := step.run(); err != nil {
			t.Fatalf("%s: error = %v", step.name, err)
		}
		if a.State != step.want {
			t.Fatalf("%s: state = %s, want %s", step.name, a.State, step.want)
		}
	}

	if !a.IsLocked() {
		t.Error("finalized assignment not locked")
	}
	if len(a.ReviewEdits) != 1 || a.ReviewEdits[0].QuestionID != "q3" {
		t.Errorf("review edits = %+v, want one edit of q3", a.ReviewEdits)
	}
	if a.ReviewSummary != "went well" {
		t.Errorf("review summary = %q", a.ReviewSummary)
	}

	// Nothing moves a finalized assignment
	if err := a.StartWork(workflow.RoleEmployee, at(12)); !errors.Is(err, ErrLocked) {
		t.Errorf("StartWork after finalize error = %v, want ErrLocked", err)
	}
	if err := a.Withdraw("hr-1", "late", at(12)); !errors.Is(err, ErrLocked) {
		t.Errorf("Withdraw after finalize error = %v, want ErrLocked", err)
	}
	if err := a.Reopen(workflow.StateInReview, workflow.RoleAdmin, "admin-1", "undo", at(12)); err == nil {
		t.Error("Reopen after finalize succeeded")
	}
}

func TestFinalizeWithoutEmployeeConfirmation(t *testing.T) {
	a := submittedAssignment(t)
	if err := a.SubmitManagerQuestionnaire("mgr-1", at(4)); err != nil {
		t.Fatalf("SubmitManagerQuestionnaire() error = %v", err)
	}
	if err := a.InitiateReview("mgr-1", at(5)); err != nil {
		t.Fatalf("InitiateReview() error = %v", err)
	}
	if err := a.FinishReviewMeeting("", "mgr-1", at(6)); err != nil {
		t.Fatalf("FinishReviewMeeting() error = %v", err)
	}

	if err := a.FinalizeAsManager("mgr-1", at(7)); !errors.Is(err, ErrEmployeeNotConfirmed) {
		t.Errorf("FinalizeAsManager() error = %v, want ErrEmployeeNotConfirmed", err)
	}
}

func TestAutoFinalizeWithoutManagerReview(t *testing.T) {
	a, err := New("assignment-2", "tpl-1", "emp-1", "hr-1",
		base.AddDate(0, 1, 0), []string{"s1"}, false, base)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := a.StartWork(workflow.RoleEmployee, at(1)); err != nil {
		t.Fatalf("StartWork() error = %v", err)
	}
	if err := a.SubmitEmployeeQuestionnaire("emp-1", at(2)); err != nil {
		t.Fatalf("SubmitEmployeeQuestionnaire() error = %v", err)
	}

	if a.State != workflow.StateFinalized {
		t.Errorf("state = %s, want %s", a.State, workflow.StateFinalized)
	}
	if a.FinalizedAt == nil || a.FinalizedBy != "emp-1" {
		t.Errorf("finalization markers not set: at=%v by=%q", a.FinalizedAt, a.FinalizedBy)
	}
	if !a.IsLocked() {
		t.Error("auto-finalized assignment not locked")
	}
}

func TestSubmissionOrderIsFree(t *testing.T) {
	// Manager first, then employee catches up from a non-in-progress state.
	a := newTestAssignment(t, true)
	if err := a.StartWork(workflow.RoleManager, at(1)); err != nil {
		t.Fatalf("StartWork() error = %v", err)
	}
	if err := a.SubmitManagerQuestionnaire("mgr-1", at(2)); err != nil {
		t.Fatalf("SubmitManagerQuestionnaire() error = %v", err)
	}
	if a.State != workflow.StateManagerSubmitted {
		t.Fatalf("state = %s, want %s", a.State, workflow.StateManagerSubmitted)
	}
	if err := a.SubmitEmployeeQuestionnaire("emp-1", at(3)); err != nil {
		t.Fatalf("SubmitEmployeeQuestionnaire() error = %v", err)
	}
	if a.State != workflow.StateBothSubmitted {
		t.Errorf("state = %s, want %s", a.State, workflow.StateBothSubmitted)
	}
}

func TestSubmissionRequiresProgressOrCounterpart(t *testing.T) {
	a := newTestAssignment(t, true)
	if err := a.SubmitEmployeeQuestionnaire("emp-1", at(1)); !errors.Is(err, ErrSubmissionNotReady) {
		t.Errorf("submit from Assigned error = %v, want ErrSubmissionNotReady", err)
	}

	a = submittedAssignment(t)
	if err := a.SubmitEmployeeQuestionnaire("emp-1", at(4)); !errors.Is(err, ErrAlreadySubmitted) {
		t.Errorf("double submit error = %v, want ErrAlreadySubmitted", err)
	}
}

func TestSectionCompletionFreezesAfterSubmission(t *testing.T) {
	a := submittedAssignment(t)

	// The manager can keep completing sections, but the state stays put.
	if err := a.CompleteSectionAsManager("s1", "mgr-1", at(4)); err != nil {
		t.Fatalf("CompleteSectionAsManager() error = %v", err)
	}
	if a.State != workflow.StateEmployeeSubmitted {
		t.Errorf("state = %s, want %s", a.State, workflow.StateEmployeeSubmitted)
	}
}

func TestSectionCompletionKeepsStartedWorkProgress(t *testing.T) {
	a := newTestAssignment(t, true)
	mustRun(t, a.StartWork(workflow.RoleEmployee, at(1)))
	mustRun(t, a.StartWork(workflow.RoleManager, at(2)))

	// Completing a section on one side must not drop the other side's
	// in-progress standing.
	mustRun(t, a.CompleteSectionAsEmployee("s1", "emp-1", at(3)))
	if a.State != workflow.StateBothInProgress {
		t.Errorf("state after employee completion = %s, want %s", a.State, workflow.StateBothInProgress)
	}
	mustRun(t, a.CompleteSectionAsManager("s2", "mgr-1", at(4)))
	if a.State != workflow.StateBothInProgress {
		t.Errorf("state after manager completion = %s, want %s", a.State, workflow.StateBothInProgress)
	}
}

func TestCompleteSectionErrors(t *testing.T) {
	a := newTestAssignment(t, true)

	if err := a.CompleteSectionAsEmployee("nope", "emp-1", at(1)); !errors.Is(err, ErrUnknownSection) {
		t.Errorf("unknown section error = %v, want ErrUnknownSection", err)
	}
	if err := a.CompleteSectionAsEmployee("s1", "emp-1", at(1)); err != nil {
		t.Fatalf("CompleteSectionAsEmployee() error = %v", err)
	}
	if err := a.CompleteSectionAsEmployee("s1", "emp-1", at(2)); !errors.Is(err, ErrSectionAlreadyComplete) {
		t.Errorf("repeat completion error = %v, want ErrSectionAlreadyComplete", err)
	}

	// The same section is still open on the manager side
	if err := a.CompleteSectionAsManager("s1", "mgr-1", at(3)); err != nil {
		t.Errorf("manager-side completion error = %v", err)
	}
}

func TestBulkSectionCompletionValidatesFirst(t *testing.T) {
	a := newTestAssignment(t, true)

	before := a.Version()
	err := a.CompleteSectionsAsEmployee([]string{"s1", "bogus"}, "emp-1", at(1))
	if !errors.Is(err, ErrUnknownSection) {
		t.Fatalf("error = %v, want ErrUnknownSection", err)
	}
	if a.Version() != before {
		t.Errorf("rejected batch still raised events: version %d -> %d", before, a.Version())
	}

	// Already-complete sections are skipped, not errors
	if err := a.CompleteSectionAsEmployee("s1", "emp-1", at(2)); err != nil {
		t.Fatalf("CompleteSectionAsEmployee() error = %v", err)
	}
	if err := a.CompleteSectionsAsEmployee([]string{"s1", "s2"}, "emp-1", at(3)); err != nil {
		t.Fatalf("bulk completion error = %v", err)
	}
	for _, s := range a.Sections {
		if !s.IsEmployeeCompleted {
			t.Errorf("section %s not completed", s.SectionID)
		}
	}
}

func TestCompleteWorkAutoStarts(t *testing.T) {
	a := newTestAssignment(t, true)

	if err := a.CompleteWork(workflow.RoleEmployee, at(1)); err != nil {
		t.Fatalf("CompleteWork() error = %v", err)
	}
	if a.EmployeeWorkStartedAt == nil || a.EmployeeWorkCompletedAt == nil {
		t.Error("auto-start did not set both timestamps")
	}
	if a.State != workflow.StateEmployeeInProgress {
		t.Errorf("state = %s, want %s", a.State, workflow.StateEmployeeInProgress)
	}
	if err := a.CompleteWork(workflow.RoleEmployee, at(2)); !errors.Is(err, ErrWorkAlreadyCompleted) {
		t.Errorf("repeat completion error = %v, want ErrWorkAlreadyCompleted", err)
	}
	if err := a.StartWork(workflow.Role("Auditor"), at(2)); !errors.Is(err, ErrUnknownRole) {
		t.Errorf("unknown role error = %v, want ErrUnknownRole", err)
	}
}

func TestWithdrawBlocksEverything(t *testing.T) {
	a := newTestAssignment(t, true)

	if err := a.Withdraw("hr-1", "employee left", at(1)); err != nil {
		t.Fatalf("Withdraw() error = %v", err)
	}
	if !a.Withdrawn || a.WithdrawnAt == nil || a.WithdrawReason != "employee left" {
		t.Errorf("withdrawal markers not set: %+v", a)
	}

	if err := a.Withdraw("hr-1", "again", at(2)); !errors.Is(err, ErrAlreadyWithdrawn) {
		t.Errorf("double withdraw error = %v, want ErrAlreadyWithdrawn", err)
	}
	if err := a.StartWork(workflow.RoleEmployee, at(2)); !errors.Is(err, ErrWithdrawn) {
		t.Errorf("StartWork error = %v, want ErrWithdrawn", err)
	}
	if err := a.Reopen(workflow.StateAssigned, workflow.RoleAdmin, "admin-1", "r", at(2)); !errors.Is(err, ErrWithdrawn) {
		t.Errorf("Reopen error = %v, want ErrWithdrawn", err)
	}
}

func TestExtendDueDateNoOpOnSameDate(t *testing.T) {
	a := newTestAssignment(t, true)

	before := a.Version()
	if err := a.ExtendDueDate(a.DueDate, "same", at(1)); err != nil {
		t.Fatalf("ExtendDueDate() error = %v", err)
	}
	if a.Version() != before {
		t.Error("unchanged due date raised an event")
	}

	newDue := a.DueDate.AddDate(0, 0, 14)
	if err := a.ExtendDueDate(newDue, "more time", at(2)); err != nil {
		t.Fatalf("ExtendDueDate() error = %v", err)
	}
	if !a.DueDate.Equal(newDue) {
		t.Errorf("due date = %v, want %v", a.DueDate, newDue)
	}
}

func TestReopenClearsStageMarkers(t *testing.T) {
	a := submittedAssignment(t)

	if err := a.Reopen(workflow.StateEmployeeInProgress, workflow.RoleTeamLead, "lead-1", "revise q2", at(4)); err != nil {
		t.Fatalf("Reopen() error = %v", err)
	}
	if a.State != workflow.StateEmployeeInProgress {
		t.Errorf("state = %s, want %s", a.State, workflow.StateEmployeeInProgress)
	}
	if a.EmployeeSubmittedAt != nil || a.EmployeeSubmittedBy != "" {
		t.Error("employee submission markers survived the reopen")
	}

	// The employee can submit again after revising
	if err := a.SubmitEmployeeQuestionnaire("emp-1", at(5)); err != nil {
		t.Errorf("resubmit after reopen error = %v", err)
	}
}

func TestReopenBothSubmittedKeepsOtherSide(t *testing.T) {
	a := submittedAssignment(t)
	if err := a.SubmitManagerQuestionnaire("mgr-1", at(4)); err != nil {
		t.Fatalf("SubmitManagerQuestionnaire() error = %v", err)
	}

	if err := a.Reopen(workflow.StateEmployeeSubmitted, workflow.RoleHRManager, "hr-1", "manager redo", at(5)); err != nil {
		t.Fatalf("Reopen() error = %v", err)
	}
	if a.EmployeeSubmittedAt == nil {
		t.Error("employee submission cleared when only the manager side was reopened")
	}
	if a.ManagerSubmittedAt != nil {
		t.Error("manager submission survived the reopen")
	}
}

func TestReopenRoleGating(t *testing.T) {
	tests := []struct {
		name    string
		role    workflow.Role
		wantErr bool
	}{
		{"admin allowed", workflow.RoleAdmin, false},
		{"hr manager allowed", workflow.RoleHRManager, false},
		{"team lead allowed", workflow.RoleTeamLead, false},
		{"lowercase role allowed", workflow.Role("teamlead"), false},
		{"employee denied", workflow.RoleEmployee, true},
		{"guest denied", workflow.Role("Guest"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := submittedAssignment(t)
			err := a.Reopen(workflow.StateEmployeeInProgress, tt.role, "user-1", "fix", at(4))
			if (err != nil) != tt.wantErr {
				t.Errorf("Reopen(role=%s) error = %v, wantErr %v", tt.role, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, workflow.ErrInvalidTransition) {
				t.Errorf("error %v does not wrap ErrInvalidTransition", err)
			}
		})
	}
}

func TestReopenReviewStages(t *testing.T) {
	a := submittedAssignment(t)
	if err := a.SubmitManagerQuestionnaire("mgr-1", at(4)); err != nil {
		t.Fatal(err)
	}
	if err := a.InitiateReview("mgr-1", at(5)); err != nil {
		t.Fatal(err)
	}
	if err := a.FinishReviewMeeting("summary", "mgr-1", at(6)); err != nil {
		t.Fatal(err)
	}
	if err := a.ConfirmReviewOutcomeAsEmployee("emp-1", at(7)); err != nil {
		t.Fatal(err)
	}

	// Revoke the confirmation, then resume the meeting itself
	if err := a.Reopen(workflow.StateReviewFinished, workflow.RoleAdmin, "admin-1", "wrong person confirmed", at(8)); err != nil {
		t.Fatalf("Reopen to ReviewFinished error = %v", err)
	}
	if a.EmployeeConfirmedAt != nil {
		t.Error("employee confirmation survived the reopen")
	}
	if a.ReviewFinishedAt == nil || a.ReviewSummary != "summary" {
		t.Error("review-finished markers cleared although that stage was not reopened")
	}

	if err := a.Reopen(workflow.StateInReview, workflow.RoleHRManager, "hr-1", "more to discuss", at(9)); err != nil {
		t.Fatalf("Reopen to InReview error = %v", err)
	}
	if a.ReviewFinishedAt != nil || a.ReviewSummary != "" {
		t.Error("review-finished markers survived the reopen")
	}
	if a.ReviewStartedAt == nil {
		t.Error("review-started marker cleared although the meeting is running again")
	}
}

func TestEditAnswerOnlyDuringReview(t *testing.T) {
	a := submittedAssignment(t)
	if err := a.EditAnswerAsManagerDuringReview("s1", "q1", "v", "mgr-1", at(4)); !errors.Is(err, ErrNotInReview) {
		t.Errorf("edit outside review error = %v, want ErrNotInReview", err)
	}
}

func TestGoalLifecycle(t *testing.T) {
	a := newTestAssignment(t, true)

	// Goals only exist during in-progress stages
	err := a.AddGoal("g1", "q-goals", workflow.RoleEmployee, base, base.AddDate(0, 6, 0),
		"obj", "metric", 30, "emp-1", at(1))
	if !errors.Is(err, ErrNotInProgress) {
		t.Fatalf("AddGoal from Assigned error = %v, want ErrNotInProgress", err)
	}

	if err := a.StartWork(workflow.RoleEmployee, at(1)); err != nil {
		t.Fatal(err)
	}
	if err := a.AddGoal("g1", "q-goals", workflow.RoleEmployee, base, base.AddDate(0, 6, 0),
		"obj", "metric", 30, "emp-1", at(2)); err != nil {
		t.Fatalf("AddGoal() error = %v", err)
	}
	if err := a.AddGoal("g1", "q-goals", workflow.RoleEmployee, base, base.AddDate(0, 6, 0),
		"other", "metric", 30, "emp-1", at(3)); !errors.Is(err, ErrDuplicateGoal) {
		t.Errorf("duplicate goal error = %v, want ErrDuplicateGoal", err)
	}
	if err := a.AddGoal("g2", "q-goals", workflow.RoleEmployee, base, base.AddDate(0, 6, 0),
		"obj", "metric", 150, "emp-1", at(3)); !errors.Is(err, entity.ErrWeightingOutOfRange) {
		t.Errorf("overweighted goal error = %v, want ErrWeightingOutOfRange", err)
	}

	rec := entity.GoalModificationRecord{
		ChangeReason:         "scope change",
		ModifiedByRole:       workflow.RoleManager,
		ModifiedAt:           at(4),
		ModifiedByEmployeeID: "mgr-1",
	}
	newObjective := "bigger obj"
	rec.ObjectiveDescription = &newObjective

	if err := a.ModifyGoal("g1", rec); err != nil {
		t.Fatalf("ModifyGoal() error = %v", err)
	}
	if err := a.ModifyGoal("g1", rec); !errors.Is(err, ErrDuplicateModification) {
		t.Errorf("duplicate modification error = %v, want ErrDuplicateModification", err)
	}
	if err := a.ModifyGoal("missing", rec); !errors.Is(err, ErrGoalNotFound) {
		t.Errorf("missing goal error = %v, want ErrGoalNotFound", err)
	}

	if a.Goals[0].ObjectiveDescription != newObjective || len(a.Goals[0].Modifications) != 1 {
		t.Errorf("goal state after modification = %+v", a.Goals[0])
	}
}

func TestRatePredecessorGoalUsesFrozenSnapshot(t *testing.T) {
	a := newTestAssignment(t, true)
	if err := a.StartWork(workflow.RoleManager, at(1)); err != nil {
		t.Fatal(err)
	}

	snapshot := entity.GoalSnapshot{
		GoalID:               "prev-goal",
		QuestionID:           "q-goals",
		ObjectiveDescription: "last year's objective",
		MeasurementMetric:    "metric",
		WeightingPercentage:  50,
		TimeframeFrom:        base.AddDate(-1, 0, 0),
		TimeframeTo:          base,
	}

	if err := a.RatePredecessorGoal("r1", "assignment-prev", "prev-goal", "q-ratings",
		snapshot, workflow.RoleManager, 85, "well done", "mgr-1", at(2)); err != nil {
		t.Fatalf("RatePredecessorGoal() error = %v", err)
	}
	if err := a.RatePredecessorGoal("r1", "assignment-prev", "prev-goal", "q-ratings",
		snapshot, workflow.RoleManager, 85, "again", "mgr-1", at(3)); !errors.Is(err, ErrDuplicateRating) {
		t.Errorf("duplicate rating error = %v, want ErrDuplicateRating", err)
	}
	if err := a.RatePredecessorGoal("r2", "assignment-prev", "prev-goal", "q-ratings",
		snapshot, workflow.RoleManager, 120, "", "mgr-1", at(3)); !errors.Is(err, entity.ErrAchievementOutOfRange) {
		t.Errorf("out-of-range rating error = %v, want ErrAchievementOutOfRange", err)
	}

	if a.Ratings[0].Snapshot.ObjectiveDescription != "last year's objective" {
		t.Errorf("snapshot = %+v", a.Ratings[0].Snapshot)
	}

	degree := 90.0
	rec := entity.GoalRatingModificationRecord{
		DegreeOfAchievement:  &degree,
		ChangeReason:         "recount",
		ModifiedByRole:       workflow.RoleManager,
		ModifiedAt:           at(4),
		ModifiedByEmployeeID: "mgr-1",
	}
	if err := a.ModifyGoalRating("r1", rec); err != nil {
		t.Fatalf("ModifyGoalRating() error = %v", err)
	}
	if a.Ratings[0].DegreeOfAchievement != 90 || len(a.Ratings[0].Modifications) != 1 {
		t.Errorf("rating after modification = %+v", a.Ratings[0])
	}
}

func TestReplayMatchesIncrementalState(t *testing.T) {
	a := newTestAssignment(t, true)
	mustRun(t, a.StartWork(workflow.RoleEmployee, at(1)))
	mustRun(t, a.StartWork(workflow.RoleManager, at(2)))
	mustRun(t, a.AddGoal("g1", "q-goals", workflow.RoleEmployee, base, base.AddDate(0, 6, 0),
		"obj", "metric", 40, "emp-1", at(3)))
	mustRun(t, a.CompleteSectionsAsEmployee([]string{"s1", "s2"}, "emp-1", at(4)))
	mustRun(t, a.SubmitEmployeeQuestionnaire("emp-1", at(5)))
	mustRun(t, a.SubmitManagerQuestionnaire("mgr-1", at(6)))
	mustRun(t, a.InitiateReview("mgr-1", at(7)))
	mustRun(t, a.EditAnswerAsManagerDuringReview("s1", "q1", "v2", "mgr-1", at(8)))
	mustRun(t, a.FinishReviewMeeting("s", "mgr-1", at(9)))
	mustRun(t, a.ConfirmReviewOutcomeAsEmployee("emp-1", at(10)))
	mustRun(t, a.FinalizeAsManager("mgr-1", at(11)))

	history := make([]event.Event, len(a.Changes()))
	copy(history, a.Changes())
	a.MarkCommitted()

	replayed, err := Replay(history)
	if err != nil {
		t.Fatalf("Replay() error = %v", err)
	}
	if !reflect.DeepEqual(a, replayed) {
		t.Errorf("replayed aggregate differs from incrementally built one:\nlive:     %+v\nreplayed: %+v", a, replayed)
	}
	if replayed.Version() != len(history) {
		t.Errorf("replayed version = %d, want %d", replayed.Version(), len(history))
	}
}

func TestReplayRejectsBrokenHistory(t *testing.T) {
	if _, err := Replay(nil); !errors.Is(err, ErrEmptyHistory) {
		t.Errorf("Replay(nil) error = %v, want ErrEmptyHistory", err)
	}

	history := []event.Event{
		&event.WorkStarted{Base: event.NewBase("assignment-1", base), Role: workflow.RoleEmployee},
	}
	if _, err := Replay(history); !errors.Is(err, ErrUnexpectedFirstEvent) {
		t.Errorf("Replay(bad first event) error = %v, want ErrUnexpectedFirstEvent", err)
	}
}

func TestVersionGrowsMonotonically(t *testing.T) {
	a := newTestAssignment(t, true)
	versions := []int{a.Version()}

	mustRun(t, a.StartWork(workflow.RoleEmployee, at(1)))
	versions = append(versions, a.Version())
	mustRun(t, a.CompleteSectionAsEmployee("s1", "emp-1", at(2)))
	versions = append(versions, a.Version())

	for i := 1; i < len(versions); i++ {
		if versions[i] <= versions[i-1] {
			t.Errorf("version did not grow: %v", versions)
		}
	}
}

func TestEditPermissions(t *testing.T) {
	a := newTestAssignment(t, true)
	if !a.CanEmployeeEdit() || !a.CanManagerEdit() {
		t.Error("both sides should be editable before submission")
	}

	a = submittedAssignment(t)
	if a.CanEmployeeEdit() {
		t.Error("employee can edit after own submission")
	}
	if !a.CanManagerEdit() {
		t.Error("manager blocked although only the employee submitted")
	}

	mustRun(t, a.SubmitManagerQuestionnaire("mgr-1", at(4)))
	mustRun(t, a.InitiateReview("mgr-1", at(5)))
	if !a.CanManagerEditDuringReview() {
		t.Error("manager has no edit rights in the review meeting")
	}
	if !a.IsEmployeeReadOnlyDuringReview() {
		t.Error("employee not read-only in the review meeting")
	}
}

func mustRun(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
