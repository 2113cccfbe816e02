package entities

import (
	"time"

	"apparel-erp/pkg/types"
)

// MaintenanceSchedule generates recurring work orders for an asset every
// IntervalDays. Completing a generated work order advances NextDueAt.
type MaintenanceSchedule struct {
	ID          uint64 `json:"id" db:"id"`
	WorkspaceID uint64 `json:"workspace_id" db:"workspace_id"`
	AssetID     uint64 `json:"asset_id" db:"asset_id"`

	Title        string `json:"title" db:"title"`
	IntervalDays int    `json:"interval_days" db:"interval_days"`

	LastDoneAt *time.Time `json:"last_done_at,omitempty" db:"last_done_at"`
	NextDueAt  time.Time  `json:"next_due_at" db:"next_due_at"`
	Active     bool       `json:"active" db:"active"`

	Asset *Asset `json:"asset,omitempty" db:"-"`

	types.BaseEntity
}
