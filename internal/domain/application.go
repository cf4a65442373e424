package domain

import "time"

type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusApproved  ApplicationStatus = "approved"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
	ApplicationStatusWithdrawn ApplicationStatus = "withdrawn"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func ValidGender(g Gender) bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Application is a volunteer's submission to a posting. For a given
// (posting, applicant) pair at most one non-withdrawn row exists at a time;
// re-application after withdrawal creates a new row.
type Application struct {
	ID           int32             `json:"id"`
	PostingID    int32             `json:"posting_id"`
	UserID       string            `json:"user_id"`
	Name         string            `json:"name"`
	Skills       string            `json:"skills"`
	Availability string            `json:"availability"`
	Email        string            `json:"email"`
	PhoneNumber  string            `json:"phone_number"`
	Sex          Gender            `json:"sex"`
	Message      string            `json:"message,omitempty"`
	CVURL        string            `json:"cv_url,omitempty"`
	Status       ApplicationStatus `json:"status"`
	DecidedBy    *string           `json:"decided_by,omitempty"`
	DecidedAt    *time.Time        `json:"decided_at,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// ApplicationStats aggregates per-posting application counts by status.
type ApplicationStats struct {
	PostingID      int32 `json:"posting_id"`
	Total          int32 `json:"total_applications"`
	PendingCount   int32 `json:"pending_count"`
	ApprovedCount  int32 `json:"approved_count"`
	RejectedCount  int32 `json:"rejected_count"`
	WithdrawnCount int32 `json:"withdrawn_count"`
}
