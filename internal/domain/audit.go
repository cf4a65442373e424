package domain

import "time"

// AuditEntry records one administrative action. The audit log is a
// write-only sink: the core appends to it after a transition commits and
// never reads it back for decisions.
type AuditEntry struct {
	ID         int64     `json:"id"`
	ActorID    string    `json:"actor_id"`
	Action     string    `json:"action"`
	TargetType string    `json:"target_type"`
	TargetID   string    `json:"target_id"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
