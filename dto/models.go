package dto

import "time"

// Visa day thresholds for the 462 program: 88 days qualify for the
// second-year visa, 179 days for the third-year visa.
const (
	TargetSecondYear = 88
	TargetThirdYear  = 179
)

// AllowedTargets lists the valid target_days values for a profile.
func AllowedTargets() []int {
	return []int{TargetSecondYear, TargetThirdYear}
}

type EntryKind string

const (
	EntryKindAccrual EntryKind = "accrual"
	EntryKindReset   EntryKind = "reset"
)

// CandidateHours is a numeric value extracted from payslip text that
// plausibly represents hours worked, pending human confirmation.
type CandidateHours struct {
	Value   float64 `json:"value"`
	Context string  `json:"context"`
	Line    int     `json:"line"`
}

// HistoryEntry records one confirmed accrual (or a reset sentinel) on a
// profile. Immutable once created; deleting it reverses its contribution.
// Reset sentinels carry ContributedDays == 0, so reverting one leaves the
// day total unchanged.
type HistoryEntry struct {
	ID              int64     `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	ContributedDays int       `json:"contributed_days"`
	SourceHours     float64   `json:"source_hours"`
	SourceLabel     string    `json:"source_label"`
	Kind            EntryKind `json:"kind"`
}

// Profile is the per-person accrual state. Days always equals the sum of
// ContributedDays over the current history.
type Profile struct {
	Name       string         `json:"name"`
	TargetDays int            `json:"target_days"`
	Days       int            `json:"days"`
	History    []HistoryEntry `json:"history"`
}

// NextEntryID returns the ID for the next history entry on this profile.
func (p *Profile) NextEntryID() int64 {
	var max int64
	for _, e := range p.History {
		if e.ID > max {
			max = e.ID
		}
	}
	return max + 1
}

// RemainingDays returns how many days are still needed to reach the target,
// floored at zero.
func (p *Profile) RemainingDays() int {
	if p.Days >= p.TargetDays {
		return 0
	}
	return p.TargetDays - p.Days
}
