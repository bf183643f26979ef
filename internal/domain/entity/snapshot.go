package entity

import (
	"time"

	"github.com/da-kil/reviewflow/internal/domain/workflow"
)

// GoalSnapshot is an immutable point-in-time copy of a goal's fields, captured
// once when the goal is linked or rated. It is never refreshed: a rating must
// reflect what was agreed at the time, not what the source goal was later
// changed to.
type GoalSnapshot struct {
	GoalID               string        `json:"goal_id"`
	QuestionID           string        `json:"question_id"`
	AddedByRole          workflow.Role `json:"added_by_role"`
	TimeframeFrom        time.Time     `json:"timeframe_from"`
	TimeframeTo          time.Time     `json:"timeframe_to"`
	ObjectiveDescription string        `json:"objective_description"`
	MeasurementMetric    string        `json:"measurement_metric"`
	WeightingPercentage  float64       `json:"weighting_percentage"`
	AddedAt              time.Time     `json:"added_at"`
	AddedByEmployeeID    string        `json:"added_by_employee_id"`
}

// PredecessorGoalData is structurally identical to GoalSnapshot; the name
// marks the direction of the link (data pulled from a prior assignment).
type PredecessorGoalData = GoalSnapshot

// SnapshotOf captures the current fields of a goal
func SnapshotOf(g Goal) GoalSnapshot {
	return GoalSnapshot{
		GoalID:               g.ID,
		QuestionID:           g.QuestionID,
		AddedByRole:          g.AddedByRole,
		TimeframeFrom:        g.TimeframeFrom,
		TimeframeTo:          g.TimeframeTo,
		ObjectiveDescription: g.ObjectiveDescription,
		MeasurementMetric:    g.MeasurementMetric,
		WeightingPercentage:  g.WeightingPercentage,
		AddedAt:              g.AddedAt,
		AddedByEmployeeID:    g.AddedByEmployeeID,
	}
}
