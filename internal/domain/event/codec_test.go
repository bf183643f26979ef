package event

import (
	"testing"
	"time"

	"github.com/da-kil/reviewflow/internal/domain/workflow"
)

func TestUnmarshalRebuildsTypedEvent(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	original := &AssignmentCreated{
		Base:                  NewBase("assignment-1", at),
		TemplateID:            "tpl-1",
		EmployeeID:            "emp-1",
		AssignedBy:            "hr-1",
		DueDate:               at.AddDate(0, 1, 0),
		RequiresManagerReview: true,
		SectionIDs:            []string{"s1", "s2"},
	}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	decoded, err := Unmarshal(TypeAssignmentCreated, data)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	created, ok := decoded.(*AssignmentCreated)
	if !ok {
		t.Fatalf("decoded type = %T, want *AssignmentCreated", decoded)
	}
	if created.EventID() != original.EventID() {
		t.Errorf("event id = %s, want %s", created.EventID(), original.EventID())
	}
	if created.AggregateID() != "assignment-1" {
		t.Errorf("aggregate id = %s, want assignment-1", created.AggregateID())
	}
	if !created.OccurredAt().Equal(at) {
		t.Errorf("occurred at = %v, want %v", created.OccurredAt(), at)
	}
	if created.TemplateID != "tpl-1" || len(created.SectionIDs) != 2 {
		t.Errorf("payload lost in round trip: %+v", created)
	}
}

func TestUnmarshalReopenedKeepsStateAndRole(t *testing.T) {
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	original := &AssignmentReopened{
		Base:        NewBase("assignment-1", at),
		Target:      workflow.StateEmployeeInProgress,
		Reason:      "revise answers",
		RequestedBy: "hr-1",
		Role:        workflow.RoleHRManager,
	}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	decoded, err := Unmarshal(TypeAssignmentReopened, data)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	reopened := decoded.(*AssignmentReopened)
	if reopened.Target != workflow.StateEmployeeInProgress {
		t.Errorf("target = %s, want %s", reopened.Target, workflow.StateEmployeeInProgress)
	}
	if !reopened.Role.Equals(workflow.RoleHRManager) {
		t.Errorf("role = %s, want %s", reopened.Role, workflow.RoleHRManager)
	}
}

func TestUnmarshalRejectsUnknownType(t *testing.T) {
	if _, err := Unmarshal(Type("assignment.teleported"), []byte("{}")); err == nil {
		t.Error("Unmarshal() accepted an unknown event type")
	}
}

func TestRegistryCoversAllTypes(t *testing.T) {
	all := []Type{
		TypeAssignmentCreated, TypeWorkStarted, TypeWorkCompleted,
		TypeDueDateExtended, TypeAssignmentWithdrawn, TypeSectionCompleted,
		TypeEmployeeSubmitted, TypeManagerSubmitted, TypeReviewInitiated,
		TypeAnswerEdited, TypeReviewMeetingFinished, TypeEmployeeReviewConfirmed,
		TypeManagerReviewConfirmed, TypeAssignmentFinalized, TypeAssignmentReopened,
		TypeGoalAdded, TypeGoalModified, TypeGoalRatingAdded, TypeGoalRatingModified,
	}
	for _, typ := range all {
		factory, ok := registry[typ]
		if !ok {
			t.Errorf("type %s missing from registry", typ)
			continue
		}
		if got := factory().EventType(); got != typ {
			t.Errorf("factory for %s builds event of type %s", typ, got)
		}
	}
}

func TestNewBaseAssignsUniqueIDs(t *testing.T) {
	at := time.Now()
	a := NewBase("agg", at)
	b := NewBase("agg", at)
	if a.EventID() == "" || a.EventID() == b.EventID() {
		t.Errorf("event ids not unique: %q vs %q", a.EventID(), b.EventID())
	}
}
