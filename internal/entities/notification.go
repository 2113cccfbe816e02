package entities

import (
	"time"

	"apparel-erp/pkg/types"
)

// NotificationTemplate holds a reusable message body with
// {{placeholder}} variables. Name is unique per workspace.
type NotificationTemplate struct {
	ID          uint64 `json:"id" db:"id"`
	WorkspaceID uint64 `json:"workspace_id" db:"workspace_id"`
	Name        string `json:"name" db:"name"`
	Subject     string `json:"subject" db:"subject"`
	Body        string `json:"body" db:"body"`

	types.BaseEntity
}

// Notification is one scheduled message for one recipient. Dispatch is
// best-effort and at-most-once; there is no retry.
type Notification struct {
	ID          uint64  `json:"id" db:"id"`
	WorkspaceID uint64  `json:"workspace_id" db:"workspace_id"`
	TemplateID  *uint64 `json:"template_id,omitempty" db:"template_id"`
	RecipientID uint64  `json:"recipient_id" db:"recipient_id"`

	Subject string `json:"subject" db:"subject"`
	Body    string `json:"body" db:"body"`
	Status  string `json:"status" db:"status"`

	// EventID groups the rows produced by one dispatch call.
	EventID string `json:"event_id" db:"event_id"`

	ReadAt    *time.Time `json:"read_at,omitempty" db:"read_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// DispatchResult is the summary returned by a dispatch call.
// Sent + Failed always equals Total.
type DispatchResult struct {
	EventID string `json:"event_id"`
	Total   int    `json:"total"`
	Sent    int    `json:"sent"`
	Failed  int    `json:"failed"`
}
