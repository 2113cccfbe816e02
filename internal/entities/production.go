package entities

import (
	"time"

	"apparel-erp/pkg/types"
)

// ProductionRun is one stage (cutting, printing, sewing, finishing) of
// an order executed on a machine by an operator.
type ProductionRun struct {
	ID          uint64 `json:"id" db:"id"`
	WorkspaceID uint64 `json:"workspace_id" db:"workspace_id"`
	OrderID     uint64 `json:"order_id" db:"order_id"`

	Stage      string  `json:"stage" db:"stage"`
	AssetID    *uint64 `json:"asset_id,omitempty" db:"asset_id"`
	OperatorID *uint64 `json:"operator_id,omitempty" db:"operator_id"`

	PlannedQty int `json:"planned_qty" db:"planned_qty"`
	ActualQty  int `json:"actual_qty" db:"actual_qty"`

	Status      string     `json:"status" db:"status"`
	StartedAt   *time.Time `json:"started_at,omitempty" db:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`

	types.BaseEntity
}

// QCInspection samples a production run and records defects by reason.
type QCInspection struct {
	ID          uint64 `json:"id" db:"id"`
	WorkspaceID uint64 `json:"workspace_id" db:"workspace_id"`
	RunID       uint64 `json:"run_id" db:"run_id"`
	InspectorID uint64 `json:"inspector_id" db:"inspector_id"`

	SampledQty    int            `json:"sampled_qty" db:"sampled_qty"`
	DefectQty     int            `json:"defect_qty" db:"defect_qty"`
	DefectReasons map[string]int `json:"defect_reasons" db:"defect_reasons"`

	// Passed is derived: defect rate at or below the workspace threshold.
	Passed bool    `json:"passed" db:"passed"`
	Notes  *string `json:"notes,omitempty" db:"notes"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
