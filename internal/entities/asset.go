package entities

import (
	"time"

	"apparel-erp/pkg/types"
)

const (
	AssetActive  = "ACTIVE"
	AssetDown    = "DOWN"
	AssetRetired = "RETIRED"
)

// Asset is a machine on the factory floor (cutter, printer, sewing
// station). Code is generated per workspace per year, e.g. AST-2025-0001.
type Asset struct {
	ID          uint64 `json:"id" db:"id"`
	WorkspaceID uint64 `json:"workspace_id" db:"workspace_id"`

	Code     string  `json:"code" db:"code"`
	Name     string  `json:"name" db:"name"`
	Category string  `json:"category" db:"category"`
	Location *string `json:"location,omitempty" db:"location"`
	Status   string  `json:"status" db:"status"`

	PurchaseDate *time.Time `json:"purchase_date,omitempty" db:"purchase_date"`

	types.BaseEntity
}
