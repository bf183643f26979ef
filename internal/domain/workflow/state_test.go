package workflow

import "testing"

func TestStateRankOrdering(t *testing.T) {
	prev := -1
	for _, s := range AllStates() {
		if s.Rank() <= prev {
			t.Errorf("Rank(%s) = %d, want strictly greater than %d", s, s.Rank(), prev)
		}
		prev = s.Rank()
	}
}

func TestStateIsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  bool
	}{
		{"known state", StateAssigned, true},
		{"known late state", StateManagerReviewConfirmed, true},
		{"unknown state", State("SHIPPED"), false},
		{"empty state", State(""), false},
		{"wrong case", State("assigned"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.state, got, tt.want)
			}
		})
	}
}

func TestStateAtOrBeyond(t *testing.T) {
	tests := []struct {
		name      string
		state     State
		threshold State
		want      bool
	}{
		{"earlier state", StateBothInProgress, StateEmployeeSubmitted, false},
		{"equal state", StateEmployeeSubmitted, StateEmployeeSubmitted, true},
		{"later state", StateInReview, StateEmployeeSubmitted, true},
		{"terminal state", StateFinalized, StateEmployeeSubmitted, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.AtOrBeyond(tt.threshold); got != tt.want {
				t.Errorf("%s.AtOrBeyond(%s) = %v, want %v", tt.state, tt.threshold, got, tt.want)
			}
		})
	}
}

func TestStateIsTerminal(t *testing.T) {
	for _, s := range AllStates() {
		want := s == StateFinalized
		if got := s.IsTerminal(); got != want {
			t.Errorf("IsTerminal(%s) = %v, want %v", s, got, want)
		}
	}
}
