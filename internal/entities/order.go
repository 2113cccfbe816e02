package entities

import (
	"time"

	"apparel-erp/pkg/types"
)

// Order is a client purchase order for a production batch.
type Order struct {
	ID          uint64 `json:"id" db:"id"`
	WorkspaceID uint64 `json:"workspace_id" db:"workspace_id"`
	ClientID    uint64 `json:"client_id" db:"client_id"`

	PONumber    string  `json:"po_number" db:"po_number"`
	ProductType string  `json:"product_type" db:"product_type"`
	Description *string `json:"description,omitempty" db:"description"`

	TotalQty  int     `json:"total_qty" db:"total_qty"`
	UnitPrice float64 `json:"unit_price" db:"unit_price"`
	// TotalValue is always TotalQty * UnitPrice; stored for reporting.
	TotalValue float64 `json:"total_value" db:"total_value"`

	Status string `json:"status" db:"status"`

	TargetDeliveryDate *time.Time `json:"target_delivery_date,omitempty" db:"target_delivery_date"`
	ActualDeliveryDate *time.Time `json:"actual_delivery_date,omitempty" db:"actual_delivery_date"`

	Client *Client `json:"client,omitempty" db:"-"`

	types.BaseEntity
}

// StageProgress is a per-stage rollup of production run quantities for
// one order.
type StageProgress struct {
	Stage      string `json:"stage"`
	PlannedQty int    `json:"planned_qty"`
	ActualQty  int    `json:"actual_qty"`
}
