package assignment

import "errors"

// Precondition violations. Guard clauses return these before any event is
// raised, so a rejected command never leaves partial state behind.
var (
	ErrLocked                 = errors.New("assignment is finalized and locked")
	ErrWithdrawn              = errors.New("assignment has been withdrawn")
	ErrAlreadyWithdrawn       = errors.New("assignment is already withdrawn")
	ErrUnknownRole            = errors.New("role must be Employee or Manager")
	ErrWorkAlreadyStarted     = errors.New("work has already been started by this role")
	ErrWorkAlreadyCompleted   = errors.New("work has already been completed by this role")
	ErrUnknownSection         = errors.New("section does not belong to this assignment")
	ErrSectionAlreadyComplete = errors.New("section is already completed by this role")
	ErrAlreadySubmitted       = errors.New("questionnaire has already been submitted")
	ErrSubmissionNotReady     = errors.New("submission requires in-progress work or the other side's submission")
	ErrNotInReview            = errors.New("assignment is not in a review meeting")
	ErrEmployeeNotConfirmed   = errors.New("employee has not confirmed the review outcome")
	ErrNotInProgress          = errors.New("goals and ratings can only be added while filling is in progress")
	ErrDuplicateGoal          = errors.New("a goal with this id already exists")
	ErrGoalNotFound           = errors.New("goal not found")
	ErrDuplicateRating        = errors.New("a rating with this id already exists")
	ErrRatingNotFound         = errors.New("rating not found")
	ErrDuplicateModification  = errors.New("an identical modification record already exists")
	ErrEmptyEmployee          = errors.New("employee id must not be empty")
	ErrEmptyTemplate          = errors.New("template id must not be empty")
	ErrNoSections             = errors.New("assignment needs at least one section")
	ErrEmptyHistory           = errors.New("cannot replay an empty event history")
	ErrUnexpectedFirstEvent   = errors.New("event history must start with assignment.created")
)
