package service

import (
	"context"
	"fmt"
	"time"

	"github.com/da-kil/reviewflow/internal/application/dispatcher"
	"github.com/da-kil/reviewflow/internal/application/port"
	"github.com/da-kil/reviewflow/internal/domain/assignment"
	"github.com/da-kil/reviewflow/internal/domain/entity"
	"github.com/da-kil/reviewflow/internal/domain/event"
	"github.com/da-kil/reviewflow/internal/domain/workflow"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AssignmentService is the command-dispatch layer around the aggregate:
// load the stream, replay, run one command, append with the expected version,
// then hand the committed events to the dispatcher. Access per aggregate
// identity is serialized by the store's optimistic version check; a conflict
// surfaces as port.ErrVersionConflict and the caller retries.
type AssignmentService struct {
	store      port.EventStore
	dispatcher dispatcher.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// Option configures the service
type Option func(*AssignmentService)

// WithClock overrides the time source, used by tests
func WithClock(now func() time.Time) Option {
	return func(s *AssignmentService) {
		s.now = now
	}
}

// NewAssignmentService creates the command service
func NewAssignmentService(store port.EventStore, d dispatcher.Dispatcher, logger *zap.Logger, opts ...Option) *AssignmentService {
	s := &AssignmentService{
		store:      store,
		dispatcher: d,
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateParams carries everything needed to assign a questionnaire
type CreateParams struct {
	TemplateID            string
	EmployeeID            string
	AssignedBy            string
	DueDate               time.Time
	SectionIDs            []string
	RequiresManagerReview bool
}

// Create assigns a new questionnaire and persists its first event
func (s *AssignmentService) Create(ctx context.Context, p CreateParams) (*assignment.Assignment, error) {
	id := uuid.NewString()
	a, err := assignment.New(id, p.TemplateID, p.EmployeeID, p.AssignedBy,
		p.DueDate, p.SectionIDs, p.RequiresManagerReview, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.commit(ctx, a, 0); err != nil {
		return nil, err
	}
	s.logger.Info("Assignment created",
		zap.String("assignment_id", id),
		zap.String("employee_id", p.EmployeeID),
		zap.String("template_id", p.TemplateID))
	return a, nil
}

// Get replays and returns current aggregate state
func (s *AssignmentService) Get(ctx context.Context, id string) (*assignment.Assignment, error) {
	return s.load(ctx, id)
}

// History returns the full ordered event stream of an assignment
func (s *AssignmentService) History(ctx context.Context, id string) ([]event.Event, error) {
	return s.store.Load(ctx, id)
}

// StartWork marks a party as having begun filling
func (s *AssignmentService) StartWork(ctx context.Context, id string, role workflow.Role) (*assignment.Assignment, error) {
	return s.execute(ctx, id, "start work", func(a *assignment.Assignment) error {
		return a.StartWork(role, s.now())
	})
}

// CompleteWork marks a party's filling work as done
func (s *AssignmentService) CompleteWork(ctx context.Context, id string, role workflow.Role) (*assignment.Assignment, error) {
	return s.execute(ctx, id, "complete work", func(a *assignment.Assignment) error {
		return a.CompleteWork(role, s.now())
	})
}

// ExtendDueDate moves the assignment due date
func (s *AssignmentService) ExtendDueDate(ctx context.Context, id string, newDueDate time.Time, reason string) (*assignment.Assignment, error) {
	return s.execute(ctx, id, "extend due date", func(a *assignment.Assignment) error {
		return a.ExtendDueDate(newDueDate, reason, s.now())
	})
}

// Withdraw takes the assignment out of circulation
func (s *AssignmentService) Withdraw(ctx context.Context, id, byWhom, reason string) (*assignment.Assignment, error) {
	return s.execute(ctx, id, "withdraw", func(a *assignment.Assignment) error {
		return a.Withdraw(byWhom, reason, s.now())
	})
}

// CompleteSection marks one section complete for the given role
func (s *AssignmentService) CompleteSection(ctx context.Context, id, sectionID, completedBy string, role workflow.Role) (*assignment.Assignment, error) {
	return s.execute(ctx, id, "complete section", func(a *assignment.Assignment) error {
		if role.Equals(workflow.RoleManager) {
			return a.CompleteSectionAsManager(sectionID, completedBy, s.now())
		}
		return a.CompleteSectionAsEmployee(sectionID, completedBy, s.now())
	})
}

// CompleteSections is the bulk variant of CompleteSection
func (s *AssignmentService) CompleteSections(ctx context.Context, id string, sectionIDs []string, completedBy string, role workflow.Role) (*assignment.Assignment, error) {
	return s.execute(ctx, id, "complete sections", func(a *assignment.Assignment) error {
		if role.Equals(workflow.RoleManager) {
			return a.CompleteSectionsAsManager(sectionIDs, completedBy, s.now())
		}
		return a.CompleteSectionsAsEmployee(sectionIDs, completedBy, s.now())
	})
}

// SubmitEmployee submits the employee questionnaire
func (s *AssignmentService) SubmitEmployee(ctx context.Context, id, submittedBy string) (*assignment.Assignment, error) {
	return s.execute(ctx, id, "submit employee questionnaire", func(a *assignment.Assignment) error {
		return a.SubmitEmployeeQuestionnaire(submittedBy, s.now())
	})
}

// SubmitManager submits the manager questionnaire
func (s *AssignmentService) SubmitManager(ctx context.Context, id, submittedBy string) (*assignment.Assignment, error) {
	return s.execute(ctx, id, "submit manager questionnaire", func(a *assignment.Assignment) error {
		return a.SubmitManagerQuestionnaire(submittedBy, s.now())
	})
}

// InitiateReview starts the review meeting
func (s *AssignmentService) InitiateReview(ctx context.Context, id, initiatedBy string) (*assignment.Assignment, error) {
	return s.execute(ctx, id, "initiate review", func(a *assignment.Assignment) error {
		return a.InitiateReview(initiatedBy, s.now())
	})
}

// EditAnswerDuringReview records a manager edit in the live review
func (s *AssignmentService) EditAnswerDuringReview(ctx context.Context, id, sectionID, questionID, newValue, editedBy string) (*assignment.Assignment, error) {
	return s.execute(ctx, id, "edit answer during review", func(a *assignment.Assignment) error {
		return a.EditAnswerAsManagerDuringReview(sectionID, questionID, newValue, editedBy, s.now())
	})
}

// FinishReview ends the review meeting
func (s *AssignmentService) FinishReview(ctx context.Context, id, summary, finishedBy string) (*assignment.Assignment, error) {
	return s.execute(ctx, id, "finish review", func(a *assignment.Assignment) error {
		return a.FinishReviewMeeting(summary, finishedBy, s.now())
	})
}

// ConfirmAsEmployee records the employee's review-outcome confirmation
func (s *AssignmentService) ConfirmAsEmployee(ctx context.Context, id, confirmedBy string) (*assignment.Assignment, error) {
	return s.execute(ctx, id, "confirm as employee", func(a *assignment.Assignment) error {
		return a.ConfirmReviewOutcomeAsEmployee(confirmedBy, s.now())
	})
}

// ConfirmAsManager records the manager's review-outcome confirmation
func (s *AssignmentService) ConfirmAsManager(ctx context.Context, id, confirmedBy string) (*assignment.Assignment, error) {
	return s.execute(ctx, id, "confirm as manager", func(a *assignment.Assignment) error {
		return a.ConfirmReviewOutcomeAsManager(confirmedBy, s.now())
	})
}

// Finalize locks the assignment permanently
func (s *AssignmentService) Finalize(ctx context.Context, id, finalizedBy string) (*assignment.Assignment, error) {
	return s.execute(ctx, id, "finalize", func(a *assignment.Assignment) error {
		return a.FinalizeAsManager(finalizedBy, s.now())
	})
}

// Reopen performs a role-gated backward transition
func (s *AssignmentService) Reopen(ctx context.Context, id string, target workflow.State, role workflow.Role, requestedBy, reason string) (*assignment.Assignment, error) {
	return s.execute(ctx, id, "reopen", func(a *assignment.Assignment) error {
		return a.Reopen(target, role, requestedBy, reason, s.now())
	})
}

// GoalParams carries the fields of a dynamically added goal
type GoalParams struct {
	QuestionID        string
	AddedByRole       workflow.Role
	TimeframeFrom     time.Time
	TimeframeTo       time.Time
	Objective         string
	MeasurementMetric string
	Weighting         float64
	AddedByEmployeeID string
}

// AddGoal adds a goal with a generated id and returns that id
func (s *AssignmentService) AddGoal(ctx context.Context, id string, p GoalParams) (string, error) {
	goalID := uuid.NewString()
	_, err := s.execute(ctx, id, "add goal", func(a *assignment.Assignment) error {
		return a.AddGoal(goalID, p.QuestionID, p.AddedByRole,
			p.TimeframeFrom, p.TimeframeTo, p.Objective, p.MeasurementMetric,
			p.Weighting, p.AddedByEmployeeID, s.now())
	})
	if err != nil {
		return "", err
	}
	return goalID, nil
}

// ModifyGoal appends a modification record to a goal's history
func (s *AssignmentService) ModifyGoal(ctx context.Context, id, goalID string, rec entity.GoalModificationRecord) (*assignment.Assignment, error) {
	if rec.ModifiedAt.IsZero() {
		rec.ModifiedAt = s.now()
	}
	return s.execute(ctx, id, "modify goal", func(a *assignment.Assignment) error {
		return a.ModifyGoal(goalID, rec)
	})
}

// RatingParams carries the fields of a predecessor-goal rating
type RatingParams struct {
	SourceAssignmentID string
	SourceGoalID       string
	QuestionID         string
	RatedByRole        workflow.Role
	Degree             float64
	Justification      string
	RatedByEmployeeID  string
}

// RatePredecessorGoal rates a goal from a prior assignment. The snapshot of
// the source goal is captured here, at rating time, and never refreshed.
func (s *AssignmentService) RatePredecessorGoal(ctx context.Context, id string, p RatingParams) (string, error) {
	source, err := s.load(ctx, p.SourceAssignmentID)
	if err != nil {
		return "", fmt.Errorf("failed to load source assignment: %w", err)
	}
	var snapshot entity.PredecessorGoalData
	found := false
	for _, g := range source.Goals {
		if g.ID == p.SourceGoalID {
			snapshot = entity.SnapshotOf(g)
			found = true
			break
		}
	}
	if !found {
		return "", assignment.ErrGoalNotFound
	}

	ratingID := uuid.NewString()
	_, err = s.execute(ctx, id, "rate predecessor goal", func(a *assignment.Assignment) error {
		return a.RatePredecessorGoal(ratingID, p.SourceAssignmentID, p.SourceGoalID,
			p.QuestionID, snapshot, p.RatedByRole, p.Degree, p.Justification,
			p.RatedByEmployeeID, s.now())
	})
	if err != nil {
		return "", err
	}
	return ratingID, nil
}

// ModifyRating appends a modification record to a rating's history
func (s *AssignmentService) ModifyRating(ctx context.Context, id, ratingID string, rec entity.GoalRatingModificationRecord) (*assignment.Assignment, error) {
	if rec.ModifiedAt.IsZero() {
		rec.ModifiedAt = s.now()
	}
	return s.execute(ctx, id, "modify rating", func(a *assignment.Assignment) error {
		return a.ModifyGoalRating(ratingID, rec)
	})
}

// load replays an aggregate from its stored history
func (s *AssignmentService) load(ctx context.Context, id string) (*assignment.Assignment, error) {
	history, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return assignment.Replay(history)
}

// execute runs one command against a freshly replayed aggregate and commits
// the resulting events under the pre-command version.
func (s *AssignmentService) execute(ctx context.Context, id, action string, cmd func(*assignment.Assignment) error) (*assignment.Assignment, error) {
	a, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	expected := a.Version()
	if err := cmd(a); err != nil {
		s.logger.Warn("Command rejected",
			zap.String("assignment_id", id),
			zap.String("action", action),
			zap.String("state", a.State.String()),
			zap.Error(err))
		return nil, err
	}
	if err := s.commit(ctx, a, expected); err != nil {
		return nil, err
	}
	s.logger.Info("Command applied",
		zap.String("assignment_id", id),
		zap.String("action", action),
		zap.String("state", a.State.String()))
	return a, nil
}

func (s *AssignmentService) commit(ctx context.Context, a *assignment.Assignment, expectedVersion int) error {
	changes := a.Changes()
	if len(changes) == 0 {
		return nil
	}
	if err := s.store.Append(ctx, a.ID, expectedVersion, changes); err != nil {
		return err
	}
	a.MarkCommitted()
	if s.dispatcher != nil {
		for _, evt := range changes {
			if err := s.dispatcher.Dispatch(ctx, evt); err != nil {
				// Projections lag behind but the command itself is durable.
				s.logger.Error("Event dispatch failed",
					zap.String("assignment_id", a.ID),
					zap.String("event_type", evt.EventType().String()),
					zap.Error(err))
			}
		}
	}
	return nil
}
