package dto

import "errors"

// Sentinel errors surfaced by the ledger and profile operations.
var (
	ErrProfileExists   = errors.New("profile already exists")
	ErrProfileNotFound = errors.New("profile not found")
	ErrEntryNotFound   = errors.New("history entry not found")
	ErrNegativeDays    = errors.New("revert would drive accumulated days negative")
	ErrInvalidTarget   = errors.New("target must be 88 or 179 days")
	ErrNegativeHours   = errors.New("hours must not be negative")
)

// Extraction status values. Both failure modes are normal outcomes: the
// caller falls back to manual entry, nothing is retried.
const (
	ExtractionOK           = "ok"
	ExtractionNoText       = "no_text"
	ExtractionNoCandidates = "no_candidates"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ExtractionResponse carries the candidate list for one uploaded payslip.
// An empty candidate list is the expected "fall back to manual entry" signal,
// not an error.
type ExtractionResponse struct {
	Status     string           `json:"status"`
	Candidates []CandidateHours `json:"candidates"`
	Message    string           `json:"message,omitempty"`
}

// AccrualResponse reports the result of confirming a set of hour values
// against a profile.
type AccrualResponse struct {
	TotalHours      float64      `json:"total_hours"`
	ContributedDays int          `json:"contributed_days"`
	Warnings        []string     `json:"warnings,omitempty"`
	Entry           HistoryEntry `json:"entry"`
	Profile         Profile      `json:"profile"`
}
