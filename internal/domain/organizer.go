package domain

import "time"

type OrganizerApplicationStatus string

const (
	OrganizerApplicationStatusPending   OrganizerApplicationStatus = "pending"
	OrganizerApplicationStatusVerified  OrganizerApplicationStatus = "verified"
	OrganizerApplicationStatusRejected  OrganizerApplicationStatus = "rejected"
	OrganizerApplicationStatusSuspended OrganizerApplicationStatus = "suspended"
)

type OrganizerType string

const (
	OrganizerTypeNGO         OrganizerType = "ngo"
	OrganizerTypeNonprofit   OrganizerType = "nonprofit"
	OrganizerTypeCommunity   OrganizerType = "community"
	OrganizerTypeEducational OrganizerType = "educational"
	OrganizerTypeReligious   OrganizerType = "religious"
	OrganizerTypeGovernment  OrganizerType = "government"
	OrganizerTypeCorporate   OrganizerType = "corporate"
	OrganizerTypeOther       OrganizerType = "other"
)

func ValidOrganizerType(t OrganizerType) bool {
	switch t {
	case OrganizerTypeNGO, OrganizerTypeNonprofit, OrganizerTypeCommunity,
		OrganizerTypeEducational, OrganizerTypeReligious, OrganizerTypeGovernment,
		OrganizerTypeCorporate, OrganizerTypeOther:
		return true
	}
	return false
}

// OrganizerApplication is one onboarding attempt. An account holds at most
// one application in {pending, verified} at a time; a rejected row is deleted
// on resubmission so re-application creates a fresh row.
type OrganizerApplication struct {
	ID               int32                      `json:"id"`
	UserID           string                     `json:"user_id"`
	OrganizationName string                     `json:"organization_name"`
	Email            string                     `json:"email"`
	Phone            string                     `json:"phone"`
	OrganizerType    OrganizerType              `json:"organizer_type"`
	CardImageURL     string                     `json:"card_image_url,omitempty"`
	Status           OrganizerApplicationStatus `json:"status"`
	SubmittedAt      time.Time                  `json:"submitted_at"`
	ReviewedAt       *time.Time                 `json:"reviewed_at,omitempty"`
	ReviewedBy       *string                    `json:"reviewed_by,omitempty"`
	ReviewReason     string                     `json:"review_reason,omitempty"`
}

// OrganizerProfile is the materialized public organizer record, upserted
// (keyed by user id) exactly once per successful approval.
type OrganizerProfile struct {
	ID                 int32         `json:"id"`
	UserID             string        `json:"user_id"`
	OrganizationName   string        `json:"organization_name"`
	OrganizerType      OrganizerType `json:"organizer_type"`
	Phone              string        `json:"phone"`
	Website            string        `json:"website,omitempty"`
	Address            string        `json:"address,omitempty"`
	Description        string        `json:"description,omitempty"`
	ContactPerson      string        `json:"contact_person,omitempty"`
	RegistrationNumber string        `json:"registration_number,omitempty"`
	CardImageURL       string        `json:"card_image_url,omitempty"`
	VerifiedAt         time.Time     `json:"verified_at"`
	IsActive           bool          `json:"is_active"`
}
