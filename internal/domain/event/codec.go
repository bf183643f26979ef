package event

import (
	"encoding/json"
	"fmt"
)

// registry maps each event type to its concrete struct for store round-trips
var registry = map[Type]func() Event{
	TypeAssignmentCreated:       func() Event { return &AssignmentCreated{} },
	TypeWorkStarted:             func() Event { return &WorkStarted{} },
	TypeWorkCompleted:           func() Event { return &WorkCompleted{} },
	TypeDueDateExtended:         func() Event { return &DueDateExtended{} },
	TypeAssignmentWithdrawn:     func() Event { return &AssignmentWithdrawn{} },
	TypeSectionCompleted:        func() Event { return &SectionCompleted{} },
	TypeEmployeeSubmitted:       func() Event { return &EmployeeQuestionnaireSubmitted{} },
	TypeManagerSubmitted:        func() Event { return &ManagerQuestionnaireSubmitted{} },
	TypeReviewInitiated:         func() Event { return &ReviewInitiated{} },
	TypeAnswerEdited:            func() Event { return &AnswerEdited{} },
	TypeReviewMeetingFinished:   func() Event { return &ReviewMeetingFinished{} },
	TypeEmployeeReviewConfirmed: func() Event { return &EmployeeReviewConfirmed{} },
	TypeManagerReviewConfirmed:  func() Event { return &ManagerReviewConfirmed{} },
	TypeAssignmentFinalized:     func() Event { return &AssignmentFinalized{} },
	TypeAssignmentReopened:      func() Event { return &AssignmentReopened{} },
	TypeGoalAdded:               func() Event { return &GoalAdded{} },
	TypeGoalModified:            func() Event { return &GoalModified{} },
	TypeGoalRatingAdded:         func() Event { return &GoalRatingAdded{} },
	TypeGoalRatingModified:      func() Event { return &GoalRatingModified{} },
}

// Marshal serializes an event payload for storage
func Marshal(evt Event) ([]byte, error) {
	data, err := json.Marshal(evt)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s event: %w", evt.EventType(), err)
	}
	return data, nil
}

// Unmarshal rebuilds a typed event from its stored type tag and payload
func Unmarshal(t Type, data []byte) (Event, error) {
	factory, ok := registry[t]
	if !ok {
		return nil, fmt.Errorf("unknown event type: %s", t)
	}
	evt := factory()
	if err := json.Unmarshal(data, evt); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s event: %w", t, err)
	}
	return evt, nil
}
