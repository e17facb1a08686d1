package dto

// CreateProfileRequest creates a new profile with a zero day total.
type CreateProfileRequest struct {
	Name       string `json:"name" binding:"required"`
	TargetDays int    `json:"target_days" binding:"required"`
}

// ConfirmHoursRequest commits a human-confirmed set of hour values to a
// profile. Hours come from the candidate list or manual entry; the service
// sums them and converts the total to days.
type ConfirmHoursRequest struct {
	Hours       []float64 `json:"hours" binding:"required"`
	SourceLabel string    `json:"source_label"`
}
