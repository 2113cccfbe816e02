package entities

import (
	"time"

	"apparel-erp/pkg/types"
)

// MaintenanceWorkOrder is a scheduled or ad hoc maintenance task against
// an asset. Code is generated per workspace per year, e.g. WO-2025-0001.
type MaintenanceWorkOrder struct {
	ID          uint64 `json:"id" db:"id"`
	WorkspaceID uint64 `json:"workspace_id" db:"workspace_id"`

	Code       string  `json:"code" db:"code"`
	AssetID    uint64  `json:"asset_id" db:"asset_id"`
	ScheduleID *uint64 `json:"schedule_id,omitempty" db:"schedule_id"`

	Title       string  `json:"title" db:"title"`
	Description *string `json:"description,omitempty" db:"description"`

	Status     string  `json:"status" db:"status"`
	AssigneeID *uint64 `json:"assignee_id,omitempty" db:"assignee_id"`

	// Cost rollups, recomputed from cost lines on completion.
	LaborCost float64 `json:"labor_cost" db:"labor_cost"`
	PartsCost float64 `json:"parts_cost" db:"parts_cost"`
	TotalCost float64 `json:"total_cost" db:"total_cost"`

	OpenedAt    time.Time  `json:"opened_at" db:"opened_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`

	Asset *Asset `json:"asset,omitempty" db:"-"`

	types.BaseEntity
}

const (
	CostLineLabor = "LABOR"
	CostLineParts = "PARTS"
)

type WorkOrderCostLine struct {
	ID          uint64    `json:"id" db:"id"`
	WorkOrderID uint64    `json:"work_order_id" db:"work_order_id"`
	Kind        string    `json:"kind" db:"kind"`
	Description string    `json:"description" db:"description"`
	Amount      float64   `json:"amount" db:"amount"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
