package entity

import "time"

// SectionProgress tracks per-section completion for both parties. It is an
// immutable value: marking a side complete yields a new value instead of
// mutating in place.
type SectionProgress struct {
	SectionID           string     `json:"section_id"`
	IsEmployeeCompleted bool       `json:"is_employee_completed"`
	IsManagerCompleted  bool       `json:"is_manager_completed"`
	EmployeeCompletedAt *time.Time `json:"employee_completed_at,omitempty"`
	ManagerCompletedAt  *time.Time `json:"manager_completed_at,omitempty"`
}

// NewSectionProgress creates an untouched progress value for a section
func NewSectionProgress(sectionID string) SectionProgress {
	return SectionProgress{SectionID: sectionID}
}

// WithEmployeeCompleted returns a copy with the employee side marked complete
func (p SectionProgress) WithEmployeeCompleted(at time.Time) SectionProgress {
	p.IsEmployeeCompleted = true
	p.EmployeeCompletedAt = &at
	return p
}

// WithManagerCompleted returns a copy with the manager side marked complete
func (p SectionProgress) WithManagerCompleted(at time.Time) SectionProgress {
	p.IsManagerCompleted = true
	p.ManagerCompletedAt = &at
	return p
}

// IsCompletedBy reports whether the given side already completed the section
func (p SectionProgress) IsCompletedBy(employee bool) bool {
	if employee {
		return p.IsEmployeeCompleted
	}
	return p.IsManagerCompleted
}
