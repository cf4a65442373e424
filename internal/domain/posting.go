package domain

import "time"

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

type PostingStatus string

const (
	PostingStatusActive PostingStatus = "active"
	PostingStatusClosed PostingStatus = "closed"
)

// Posting is a volunteering opportunity. OrganizerID is nil for
// admin-authored postings. A private posting stores only the one-way digest
// of its access key; the plaintext is never persisted or echoed back.
type Posting struct {
	ID            int32         `json:"id"`
	OrganizerID   *int32        `json:"organizer_id,omitempty"`
	Title         string        `json:"title"`
	Description   string        `json:"description,omitempty"`
	Location      string        `json:"location,omitempty"`
	Visibility    Visibility    `json:"visibility"`
	AccessKeyHash string        `json:"-"`
	Status        PostingStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (p *Posting) IsPrivate() bool {
	return p.Visibility == VisibilityPrivate
}
