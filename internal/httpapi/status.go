package httpapi

import (
	"errors"
	"net/http"

	"github.com/da-kil/reviewflow/internal/application/port"
	"github.com/da-kil/reviewflow/internal/domain/assignment"
	"github.com/da-kil/reviewflow/internal/domain/entity"
	"github.com/da-kil/reviewflow/internal/domain/workflow"
)

// statusForError maps domain errors onto HTTP status codes. Not-found
// lookups are 404, state conflicts 409, validation failures 422, and
// anything unrecognized is a 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, port.ErrStreamNotFound),
		errors.Is(err, assignment.ErrGoalNotFound),
		errors.Is(err, assignment.ErrRatingNotFound),
		errors.Is(err, assignment.ErrUnknownSection):
		return http.StatusNotFound

	case errors.Is(err, port.ErrVersionConflict),
		errors.Is(err, workflow.ErrInvalidTransition),
		errors.Is(err, workflow.ErrNothingSubmitted),
		errors.Is(err, assignment.ErrLocked),
		errors.Is(err, assignment.ErrWithdrawn),
		errors.Is(err, assignment.ErrAlreadyWithdrawn),
		errors.Is(err, assignment.ErrWorkAlreadyStarted),
		errors.Is(err, assignment.ErrWorkAlreadyCompleted),
		errors.Is(err, assignment.ErrSectionAlreadyComplete),
		errors.Is(err, assignment.ErrAlreadySubmitted),
		errors.Is(err, assignment.ErrSubmissionNotReady),
		errors.Is(err, assignment.ErrNotInReview),
		errors.Is(err, assignment.ErrNotInProgress),
		errors.Is(err, assignment.ErrEmployeeNotConfirmed),
		errors.Is(err, assignment.ErrDuplicateGoal),
		errors.Is(err, assignment.ErrDuplicateRating),
		errors.Is(err, assignment.ErrDuplicateModification):
		return http.StatusConflict

	case errors.Is(err, assignment.ErrUnknownRole),
		errors.Is(err, assignment.ErrEmptyEmployee),
		errors.Is(err, assignment.ErrEmptyTemplate),
		errors.Is(err, assignment.ErrNoSections),
		errors.Is(err, entity.ErrInvalidTimeframe),
		errors.Is(err, entity.ErrEmptyObjective),
		errors.Is(err, entity.ErrEmptyMetric),
		errors.Is(err, entity.ErrWeightingOutOfRange),
		errors.Is(err, entity.ErrAchievementOutOfRange):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}
