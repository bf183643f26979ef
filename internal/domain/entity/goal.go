package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/da-kil/reviewflow/internal/domain/workflow"
)

var (
	// ErrInvalidTimeframe is returned when a goal timeframe does not start before it ends
	ErrInvalidTimeframe = errors.New("timeframe start must be before timeframe end")

	// ErrEmptyObjective is returned when the objective description is missing
	ErrEmptyObjective = errors.New("objective description must not be empty")

	// ErrEmptyMetric is returned when the measurement metric is missing
	ErrEmptyMetric = errors.New("measurement metric must not be empty")

	// ErrWeightingOutOfRange is returned when the weighting percentage leaves [0,100]
	ErrWeightingOutOfRange = errors.New("weighting percentage must be between 0 and 100")
)

// Goal is an objective added dynamically during the filling phase, never
// predefined by the template. Identity is the ID; every edit is retained in
// Modifications rather than overwriting prior state.
type Goal struct {
	ID                   string                   `json:"id"`
	QuestionID           string                   `json:"question_id"`
	AddedByRole          workflow.Role            `json:"added_by_role"`
	TimeframeFrom        time.Time                `json:"timeframe_from"`
	TimeframeTo          time.Time                `json:"timeframe_to"`
	ObjectiveDescription string                   `json:"objective_description"`
	MeasurementMetric    string                   `json:"measurement_metric"`
	WeightingPercentage  float64                  `json:"weighting_percentage"`
	AddedAt              time.Time                `json:"added_at"`
	AddedByEmployeeID    string                   `json:"added_by_employee_id"`
	Modifications        []GoalModificationRecord `json:"modifications,omitempty"`
}

// GoalModificationRecord captures one edit to a goal: only the changed fields
// are set, alongside who changed them, when, and why.
type GoalModificationRecord struct {
	ObjectiveDescription *string       `json:"objective_description,omitempty"`
	MeasurementMetric    *string       `json:"measurement_metric,omitempty"`
	WeightingPercentage  *float64      `json:"weighting_percentage,omitempty"`
	TimeframeFrom        *time.Time    `json:"timeframe_from,omitempty"`
	TimeframeTo          *time.Time    `json:"timeframe_to,omitempty"`
	ModifiedByRole       workflow.Role `json:"modified_by_role"`
	ChangeReason         string        `json:"change_reason"`
	ModifiedAt           time.Time     `json:"modified_at"`
	ModifiedByEmployeeID string        `json:"modified_by_employee_id"`
}

// Equal implements the deliberately loose record identity used for
// deduplication: timestamp, author and reason only.
func (r GoalModificationRecord) Equal(other GoalModificationRecord) bool {
	return r.ModifiedAt.Equal(other.ModifiedAt) &&
		r.ModifiedByEmployeeID == other.ModifiedByEmployeeID &&
		r.ChangeReason == other.ChangeReason
}

// NewGoal creates a goal, rejecting invariant violations before any state exists
func NewGoal(id, questionID string, addedByRole workflow.Role, from, to time.Time,
	objective, metric string, weighting float64, addedAt time.Time, addedByEmployeeID string) (Goal, error) {

	if err := validateGoalFields(from, to, objective, metric, weighting); err != nil {
		return Goal{}, err
	}
	return Goal{
		ID:                   id,
		QuestionID:           questionID,
		AddedByRole:          addedByRole,
		TimeframeFrom:        from,
		TimeframeTo:          to,
		ObjectiveDescription: objective,
		MeasurementMetric:    metric,
		WeightingPercentage:  weighting,
		AddedAt:              addedAt,
		AddedByEmployeeID:    addedByEmployeeID,
	}, nil
}

// ApplyModification returns a new Goal with the record's changed fields
// overlaid and the record appended to the history. The prior history is never
// truncated or rewritten.
func (g Goal) ApplyModification(rec GoalModificationRecord) (Goal, error) {
	next := g
	if rec.ObjectiveDescription != nil {
		next.ObjectiveDescription = *rec.ObjectiveDescription
	}
	if rec.MeasurementMetric != nil {
		next.MeasurementMetric = *rec.MeasurementMetric
	}
	if rec.WeightingPercentage != nil {
		next.WeightingPercentage = *rec.WeightingPercentage
	}
	if rec.TimeframeFrom != nil {
		next.TimeframeFrom = *rec.TimeframeFrom
	}
	if rec.TimeframeTo != nil {
		next.TimeframeTo = *rec.TimeframeTo
	}

	if err := validateGoalFields(next.TimeframeFrom, next.TimeframeTo,
		next.ObjectiveDescription, next.MeasurementMetric, next.WeightingPercentage); err != nil {
		return Goal{}, fmt.Errorf("modification rejected: %w", err)
	}

	history := make([]GoalModificationRecord, len(g.Modifications), len(g.Modifications)+1)
	copy(history, g.Modifications)
	next.Modifications = append(history, rec)
	return next, nil
}

func validateGoalFields(from, to time.Time, objective, metric string, weighting float64) error {
	if !from.Before(to) {
		return ErrInvalidTimeframe
	}
	if objective == "" {
		return ErrEmptyObjective
	}
	if metric == "" {
		return ErrEmptyMetric
	}
	if weighting < 0 || weighting > 100 {
		return ErrWeightingOutOfRange
	}
	return nil
}
