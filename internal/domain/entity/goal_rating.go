package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/da-kil/reviewflow/internal/domain/workflow"
)

// ErrAchievementOutOfRange is returned when the degree of achievement leaves [0,100]
var ErrAchievementOutOfRange = errors.New("degree of achievement must be between 0 and 100")

// GoalRating rates a goal from a predecessor assignment. It carries both the
// reference to the source and an immutable snapshot of the source goal taken
// at rating time.
type GoalRating struct {
	ID                  string                         `json:"id"`
	SourceAssignmentID  string                         `json:"source_assignment_id"`
	SourceGoalID        string                         `json:"source_goal_id"`
	QuestionID          string                         `json:"question_id"`
	Snapshot            GoalSnapshot                   `json:"snapshot"`
	RatedByRole         workflow.Role                  `json:"rated_by_role"`
	DegreeOfAchievement float64                        `json:"degree_of_achievement"`
	Justification       string                         `json:"justification"`
	RatedAt             time.Time                      `json:"rated_at"`
	RatedByEmployeeID   string                         `json:"rated_by_employee_id"`
	Modifications       []GoalRatingModificationRecord `json:"modifications,omitempty"`
}

// GoalRatingModificationRecord captures one edit to a rating, changed fields only
type GoalRatingModificationRecord struct {
	DegreeOfAchievement  *float64      `json:"degree_of_achievement,omitempty"`
	Justification        *string       `json:"justification,omitempty"`
	ModifiedByRole       workflow.Role `json:"modified_by_role"`
	ChangeReason         string        `json:"change_reason"`
	ModifiedAt           time.Time     `json:"modified_at"`
	ModifiedByEmployeeID string        `json:"modified_by_employee_id"`
}

// Equal mirrors the loose identity of GoalModificationRecord
func (r GoalRatingModificationRecord) Equal(other GoalRatingModificationRecord) bool {
	return r.ModifiedAt.Equal(other.ModifiedAt) &&
		r.ModifiedByEmployeeID == other.ModifiedByEmployeeID &&
		r.ChangeReason == other.ChangeReason
}

// NewGoalRating creates a rating, validating the achievement range up front
func NewGoalRating(id, sourceAssignmentID, sourceGoalID, questionID string,
	snapshot GoalSnapshot, ratedByRole workflow.Role, degree float64,
	justification string, ratedAt time.Time, ratedByEmployeeID string) (GoalRating, error) {

	if degree < 0 || degree > 100 {
		return GoalRating{}, ErrAchievementOutOfRange
	}
	return GoalRating{
		ID:                  id,
		SourceAssignmentID:  sourceAssignmentID,
		SourceGoalID:        sourceGoalID,
		QuestionID:          questionID,
		Snapshot:            snapshot,
		RatedByRole:         ratedByRole,
		DegreeOfAchievement: degree,
		Justification:       justification,
		RatedAt:             ratedAt,
		RatedByEmployeeID:   ratedByEmployeeID,
	}, nil
}

// ApplyModification returns a new rating with changed fields overlaid and the
// record appended; the history only ever grows.
func (r GoalRating) ApplyModification(rec GoalRatingModificationRecord) (GoalRating, error) {
	next := r
	if rec.DegreeOfAchievement != nil {
		next.DegreeOfAchievement = *rec.DegreeOfAchievement
	}
	if rec.Justification != nil {
		next.Justification = *rec.Justification
	}

	if next.DegreeOfAchievement < 0 || next.DegreeOfAchievement > 100 {
		return GoalRating{}, fmt.Errorf("modification rejected: %w", ErrAchievementOutOfRange)
	}

	history := make([]GoalRatingModificationRecord, len(r.Modifications), len(r.Modifications)+1)
	copy(history, r.Modifications)
	next.Modifications = append(history, rec)
	return next, nil
}
