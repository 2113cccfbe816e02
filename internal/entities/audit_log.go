package entities

import (
	"encoding/json"
	"time"
)

// AuditLog is append-only: rows record before/after JSON snapshots of
// mutations. There are no update or delete operations for this table.
type AuditLog struct {
	ID          uint64 `json:"id" db:"id"`
	WorkspaceID uint64 `json:"workspace_id" db:"workspace_id"`
	ActorID     uint64 `json:"actor_id" db:"actor_id"`

	EntityType string `json:"entity_type" db:"entity_type"`
	EntityID   uint64 `json:"entity_id" db:"entity_id"`
	Action     string `json:"action" db:"action"`

	Before json.RawMessage `json:"before,omitempty" db:"before"`
	After  json.RawMessage `json:"after,omitempty" db:"after"`

	// BatchID groups rows written by one request.
	BatchID string `json:"batch_id" db:"batch_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
